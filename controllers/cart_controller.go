package controllers

import (
	"context"
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"supply-portal/config"
	"supply-portal/models"
)

// CartController keeps the in-progress requisition server-side, keyed by
// the session id embedded in the token. The document expires with the
// session TTL and is removed on logout, so a reload keeps the cart but a
// new login starts clean.
type CartController struct{}

func NewCartController() *CartController {
	return &CartController{}
}

func cartKey(sessionID string) string {
	return "cart:" + sessionID
}

// GetCart godoc
// @Summary Get the session cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Failure 503 {object} models.ErrorResponse
// @Router /api/cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	if models.RedisClient == nil {
		c.JSON(503, gin.H{"success": false, "message": "Session store unavailable"})
		return
	}

	sessionID := c.GetString("session_id")

	cart := models.SessionCart{Items: []models.CartItem{}}
	raw, err := models.RedisClient.Get(context.Background(), cartKey(sessionID)).Result()
	if err == nil {
		if err := json.Unmarshal([]byte(raw), &cart); err != nil {
			cart = models.SessionCart{Items: []models.CartItem{}}
		}
	} else if err != redis.Nil {
		c.JSON(503, gin.H{"success": false, "message": "Session store unavailable"})
		return
	}

	c.JSON(200, models.Response{Success: true, Data: cart})
}

// PutCart godoc
// @Summary Replace the session cart
// @Description Stores cart items, delivery location, comments and cost center for the session
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.SessionCart true "Cart document"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /api/cart [put]
func (ctrl *CartController) PutCart(c *gin.Context) {
	if models.RedisClient == nil {
		c.JSON(503, gin.H{"success": false, "message": "Session store unavailable"})
		return
	}

	var cart models.SessionCart
	if err := c.ShouldBindJSON(&cart); err != nil {
		c.JSON(400, gin.H{"success": false, "error": "invalid cart payload"})
		return
	}

	cart.Normalize()

	raw, err := json.Marshal(cart)
	if err != nil {
		c.JSON(500, gin.H{"error": "failed to encode cart"})
		return
	}

	sessionID := c.GetString("session_id")
	ttl := config.AppConfig.SessionTTL

	if err := models.RedisClient.Set(context.Background(), cartKey(sessionID), raw, ttl).Err(); err != nil {
		c.JSON(503, gin.H{"success": false, "message": "Session store unavailable"})
		return
	}

	c.JSON(200, models.Response{Success: true, Data: cart})
}

// ClearCart godoc
// @Summary Empty the session cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /api/cart [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	if models.RedisClient == nil {
		c.JSON(503, gin.H{"success": false, "message": "Session store unavailable"})
		return
	}

	sessionID := c.GetString("session_id")
	models.RedisClient.Del(context.Background(), cartKey(sessionID))

	c.JSON(200, models.Response{Success: true, Message: "Cart cleared"})
}
