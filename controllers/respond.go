package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"supply-portal/models"
)

// respondError maps the error taxonomy to the HTTP surface. Notification
// failures never reach here; they are absorbed into degraded successes
// at the order controller.
func respondError(c *gin.Context, err error) {
	var validationErr *models.ValidationError
	var authErr *models.AuthError
	var configErr *models.ConfigurationError
	var persistenceErr *models.PersistenceError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(400, gin.H{"success": false, "error": validationErr.Message})
	case errors.As(err, &authErr):
		c.JSON(401, gin.H{"success": false, "error": authErr.Reason})
	case errors.As(err, &configErr):
		c.JSON(500, gin.H{"error": configErr.Message})
	case errors.As(err, &persistenceErr):
		c.JSON(500, gin.H{"success": false, "message": "Failed to store order"})
	default:
		c.JSON(500, gin.H{"error": err.Error()})
	}
}
