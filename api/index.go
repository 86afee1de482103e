package api

import (
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"supply-portal/config"
	"supply-portal/middleware"
	"supply-portal/models"
	"supply-portal/routes"
	"supply-portal/services"
)

var (
	router *gin.Engine
	once   sync.Once
)

func initApp() {
	once.Do(func() {
		gin.SetMode(gin.ReleaseMode)

		config.LoadConfig()
		models.InitDB()
		models.InitRedis()

		catalog, err := services.NewCatalogService(config.AppConfig.CatalogPath)
		if err != nil {
			log.Fatalf("Failed to load catalog: %v", err)
		}

		router = gin.New()
		router.Use(gin.Recovery())
		router.Use(middleware.CORSMiddleware())

		routes.SetupRoutes(router, catalog)
	})
}

func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	router.ServeHTTP(w, r)
}
