package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"supply-portal/models"
	"supply-portal/services"
)

const (
	orderSentMessage     = "Comanda enviada correctament al departament de compres."
	orderDegradedMessage = "La comanda s'ha registrat correctament, però el correu de notificació " +
		"no s'ha enviat. Imprimiu la comanda i feu-la arribar al departament de compres."
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// SendOrder godoc
// @Summary Submit a material requisition
// @Description Persists the order with its items and mails purchasing plus the requester
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.SendOrderRequest true "Order payload"
// @Success 201 {object} models.SendOrderResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/sendOrder [post]
func (ctrl *OrderController) SendOrder(c *gin.Context) {
	var req models.SendOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "error": "invalid order payload"})
		return
	}

	order, degraded, err := ctrl.orders.Submit(&req)
	if err != nil {
		var validationErr *models.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(400, gin.H{"success": false, "error": validationErr.Message})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Failed to store order"})
		return
	}

	message := orderSentMessage
	if degraded {
		message = orderDegradedMessage
	}

	c.JSON(201, models.SendOrderResponse{
		Success: true,
		Message: message,
		OrderID: order.ID,
	})
}

// GetOrders godoc
// @Summary List submitted orders for a department
// @Description Orders whose department shares the leading numeric segment of the query, newest first
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param department query string true "Department label, e.g. 3145-UCIPO"
// @Success 200 {object} models.OrderListResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/orders [get]
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	department := c.Query("department")

	orders, err := ctrl.orders.History(department)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to retrieve orders"})
		return
	}

	c.JSON(200, models.OrderListResponse{Success: true, Orders: orders})
}
