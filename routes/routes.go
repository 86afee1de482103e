package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"supply-portal/config"
	"supply-portal/controllers"
	"supply-portal/middleware"
	"supply-portal/repositories"
	"supply-portal/services"
)

func SetupRoutes(router *gin.Engine, catalog *services.CatalogService) {
	directory := services.NewDirectoryService(config.AppConfig)
	mail := services.NewMailService(config.AppConfig)
	orderRepo := repositories.NewOrderRepository()
	orderSvc := services.NewOrderService(orderRepo, mail, config.AppConfig)

	authCtrl := controllers.NewAuthController(directory)
	productCtrl := controllers.NewProductController(catalog)
	orderCtrl := controllers.NewOrderController(orderSvc)
	cartCtrl := controllers.NewCartController()

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	router.POST("/api/auth/login", authCtrl.Login)
	router.GET("/api/categories", productCtrl.GetCategories)
	router.GET("/api/products", productCtrl.GetProducts)

	auth := router.Group("/api")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.POST("/auth/logout", authCtrl.Logout)
		auth.POST("/sendOrder", orderCtrl.SendOrder)
		auth.GET("/orders", orderCtrl.GetOrders)

		auth.GET("/cart", cartCtrl.GetCart)
		auth.PUT("/cart", cartCtrl.PutCart)
		auth.DELETE("/cart", cartCtrl.ClearCart)
	}

	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.POST("/catalog", productCtrl.UploadCatalog)
	}
}
