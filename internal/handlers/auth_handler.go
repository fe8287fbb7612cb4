package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"instaclone/internal/models"
	"instaclone/internal/services"
)

type AuthHandler struct {
	users     services.UserService
	auth      services.AuthService
	passwords services.PasswordResetService
}

func NewAuthHandler(users services.UserService, auth services.AuthService, passwords services.PasswordResetService) *AuthHandler {
	return &AuthHandler{users: users, auth: auth, passwords: passwords}
}

// @Summary      Log in
// @Description  Accepts username, email or phone as userinput; only users with a completed registration may log in
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Credentials"
// @Success      200    {object}  models.TokenPair
// @Failure      401    {object}  map[string]string
// @Router       /users/login/ [post]
func (h *AuthHandler) Login(c *gin.Context) {
	start := time.Now()

	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[auth][login] bad request: bind json failed: err=%v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input := strings.TrimSpace(req.UserInput)
	log.Printf("[auth][login] attempt userinput=%q", input)

	user, err := h.users.Login(input, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrRegistrationIncomplete) {
			log.Printf("[auth][login] incomplete registration for userinput=%q", input)
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Registration is not complete."})
			return
		}
		log.Printf("[auth][login] rejected userinput=%q: %v", input, err)
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid login or password."})
		return
	}

	pair, err := h.auth.IssueTokenPair(user)
	if err != nil {
		log.Printf("[auth][login] token issue failed for userID=%d: err=%v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate tokens"})
		return
	}
	log.Printf("[auth][login] success userID=%d status=%s took=%s", user.ID, user.UserStatus, time.Since(start).Truncate(time.Millisecond))
	c.JSON(http.StatusOK, pair)
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req struct {
		Refresh string `json:"refresh" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pair, err := h.auth.RefreshTokenPair(strings.TrimSpace(req.Refresh))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}
	c.JSON(http.StatusOK, pair)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := getIntFromCtx(c, "user_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	if err := h.auth.Logout(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "detail": "Logged out."})
}

// ForgotPassword never reveals whether the identifier is registered.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		EmailOrPhone string `json:"email_or_phone" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.passwords.RequestReset(req.EmailOrPhone); err != nil {
		respondServiceError(c, err, "User")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "detail": "If the account exists, a reset token has been sent."})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req struct {
		Token           string `json:"token" binding:"required"`
		Password        string `json:"password" binding:"required"`
		ConfirmPassword string `json:"confirm_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.passwords.ResetPassword(req.Token, req.Password, req.ConfirmPassword); err != nil {
		if _, ok := services.AsValidation(err); ok {
			respondServiceError(c, err, "User")
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "detail": "Invalid or expired token."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "detail": "Password has been reset."})
}
