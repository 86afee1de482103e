package controllers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"supply-portal/models"
	"supply-portal/services"
	"supply-portal/utils"
)

type AuthController struct {
	directory *services.DirectoryService
}

func NewAuthController(directory *services.DirectoryService) *AuthController {
	return &AuthController{directory: directory}
}

// Login godoc
// @Summary Authenticate against the corporate directory
// @Description Bind-search-verify the supplied credentials and return the session token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login Request"
// @Success 200 {object} models.LoginResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /api/auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "error": "username and password are required"})
		return
	}

	user, err := ctrl.directory.Authenticate(req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	sessionID := uuid.NewString()
	token, err := utils.GenerateToken(user.Username, user.Email, user.IsAdmin, sessionID)
	if err != nil {
		c.JSON(500, gin.H{"error": "failed to issue session token"})
		return
	}

	c.JSON(200, models.LoginResponse{
		Success: true,
		User:    *user,
		Token:   token,
	})
}

// Logout godoc
// @Summary End the session
// @Description Drops the session cart so a new login starts clean
// @Tags Authentication
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /api/auth/logout [post]
func (ctrl *AuthController) Logout(c *gin.Context) {
	sessionID := c.GetString("session_id")

	if models.RedisClient != nil && sessionID != "" {
		models.RedisClient.Del(context.Background(), cartKey(sessionID))
	}

	c.JSON(200, models.Response{Success: true, Message: "Session closed"})
}
