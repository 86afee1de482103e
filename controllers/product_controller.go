package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"supply-portal/config"
	"supply-portal/models"
	"supply-portal/services"
)

type ProductController struct {
	catalog *services.CatalogService
}

func NewProductController(catalog *services.CatalogService) *ProductController {
	return &ProductController{catalog: catalog}
}

func productCacheKey(page, pageSize int, category, search string) string {
	return fmt.Sprintf("products_list_p%d_s%d_c%s_q%s", page, pageSize, category, search)
}

// GetCategories godoc
// @Summary Get catalog categories
// @Description Distinct category values in catalog order
// @Tags Catalog
// @Produce json
// @Success 200 {array} string
// @Failure 500 {object} models.ErrorResponse
// @Router /api/categories [get]
func (ctrl *ProductController) GetCategories(c *gin.Context) {
	categories, err := ctrl.catalog.ListCategories()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, categories)
}

// GetProducts godoc
// @Summary Get paginated catalog
// @Description One page of catalog rows, optionally narrowed by category and search term
// @Tags Catalog
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Rows per page" default(20)
// @Param category query string false "Category filter"
// @Param search query string false "Search term"
// @Success 200 {object} models.ProductPage
// @Failure 500 {object} models.ErrorResponse
// @Router /api/products [get]
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	category := strings.TrimSpace(c.Query("category"))
	search := strings.TrimSpace(c.Query("search"))

	cacheKey := productCacheKey(page, pageSize, category, search)
	ctx := context.Background()

	if models.RedisClient != nil {
		cached, err := models.RedisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			c.Data(200, "application/json", []byte(cached))
			return
		}
	}

	result, err := ctrl.catalog.FilterProducts(page, pageSize, category, search)
	if err != nil {
		respondError(c, err)
		return
	}

	if models.RedisClient != nil {
		jsonData, _ := json.Marshal(result)
		models.RedisClient.Set(ctx, cacheKey, string(jsonData), 5*time.Minute)
	}

	c.JSON(200, result)
}

// UploadCatalog godoc
// @Summary Upload a new catalog spreadsheet
// @Description Replaces the catalog file on disk; the portal reads it on the next restart
// @Tags Admin
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Catalog spreadsheet (.xlsx)"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /api/admin/catalog [post]
func (ctrl *ProductController) UploadCatalog(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Catalog file is required"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".xlsx" && ext != ".xls" {
		c.JSON(400, gin.H{"success": false, "message": "Invalid file type. Only xlsx and xls allowed"})
		return
	}

	if file.Size > 10*1024*1024 {
		c.JSON(400, gin.H{"success": false, "message": "File size too large. Maximum 10MB"})
		return
	}

	destination := config.AppConfig.CatalogPath
	if err := os.MkdirAll(filepath.Dir(destination), os.ModePerm); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to create catalog directory: " + err.Error()})
		return
	}

	if err := c.SaveUploadedFile(file, destination); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to save catalog: " + err.Error()})
		return
	}

	c.JSON(200, models.Response{
		Success: true,
		Message: "Catalog uploaded. It will be loaded on the next restart",
	})
}
