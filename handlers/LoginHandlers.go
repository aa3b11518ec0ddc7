package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"worksmis/models"
	"worksmis/repository"
	"worksmis/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserLookup finds a user by email; it returns repository.ErrNotFound for unknown users.
type UserLookup func(ctx context.Context, email string) (*models.UserGorm, error)

// LoginHandler handles user authentication
// @Summary Login user
// @Description Authenticate user and return an access token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /api/login [post]
func LoginHandler(findUser UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		user, err := findUser(c.Request.Context(), strings.TrimSpace(req.Email))
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		if err != nil {
			utils.Log.Error("Login lookup failed", zap.String("email", req.Email), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
			return
		}

		if !utils.ValidatePassword(user.Password, req.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		if user.Suspended {
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is suspended"})
			return
		}

		token, err := utils.GenerateJWT(user.Email)
		if err != nil {
			utils.Log.Error("Token generation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(http.StatusOK, models.LoginResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   int(utils.AccessTokenTTL.Seconds()),
		})
	}
}
