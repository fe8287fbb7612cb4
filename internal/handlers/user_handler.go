package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"instaclone/internal/models"
	"instaclone/internal/services"
)

type UserHandler struct {
	users        services.UserService
	verification services.VerificationService
	auth         services.AuthService
	filesRoot    string
}

func NewUserHandler(users services.UserService, verification services.VerificationService, auth services.AuthService, filesRoot string) *UserHandler {
	return &UserHandler{users: users, verification: verification, auth: auth, filesRoot: filesRoot}
}

// @Summary      Sign up with email or phone
// @Description  Idempotent get-or-create of a user in status "new"; dispatches a confirmation code and returns a token pair
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        body  body      object{email_or_phone=string}  true  "Identifier"
// @Success      200   {object}  models.TokenPair
// @Failure      400   {object}  map[string]interface{}
// @Router       /users/signup/ [post]
func (h *UserHandler) SignUp(c *gin.Context) {
	var req struct {
		EmailOrPhone string `json:"email_or_phone" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.SignUp(req.EmailOrPhone)
	if err != nil {
		respondServiceError(c, err, "User")
		return
	}

	pair, err := h.auth.IssueTokenPair(user)
	if err != nil {
		log.Printf("[user][signup][err] tokens for userID=%d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate tokens"})
		return
	}
	c.JSON(http.StatusOK, pair)
}

func (h *UserHandler) currentUser(c *gin.Context) (*models.User, bool) {
	id, ok := getIntFromCtx(c, "user_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return nil, false
	}
	user, err := h.users.GetUserByID(id)
	if err != nil || user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return nil, false
	}
	return user, true
}

// VerifyCode handles POST /users/verify/. It consumes the one-time code and
// advances the caller to code_verified.
func (h *UserHandler) VerifyCode(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required,len=4,numeric"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "detail": "Code must be a 4-digit number."})
		return
	}

	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	if err := h.verification.Verify(user, req.Code); err != nil {
		switch {
		case errors.Is(err, services.ErrCodeInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "detail": "Invalid verification code."})
		case errors.Is(err, services.ErrAlreadyVerified):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "detail": "User is already verified."})
		case errors.Is(err, services.ErrCodeExpired):
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Code expired"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "confirmation failed"})
		}
		return
	}

	pair, err := h.auth.IssueTokenPair(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate tokens"})
		return
	}
	c.JSON(http.StatusOK, pair)
}

// NewVerifyCode handles POST /users/new-verify/: resend, throttled to one
// live code at a time.
func (h *UserHandler) NewVerifyCode(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	if err := h.verification.Resend(user); err != nil {
		switch {
		case errors.Is(err, services.ErrAlreadyVerified):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "detail": "User is already verified."})
		case errors.Is(err, services.ErrActiveCodeExists):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "detail": "A valid verification code has already been sent."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "resend failed"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "detail": "A new verification code has been sent."})
}

// @Summary      Complete profile
// @Tags         Users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.TokenPair
// @Failure      400  {object}  map[string]interface{}
// @Router       /users/change-info/ [put]
func (h *UserHandler) ChangeInfo(c *gin.Context) {
	var req services.ProfileInfo
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	if err := h.users.CompleteProfile(user, req); err != nil {
		respondServiceError(c, err, "User")
		return
	}

	pair, err := h.auth.IssueTokenPair(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate tokens"})
		return
	}
	c.JSON(http.StatusOK, pair)
}

// ChangePhoto handles PUT /users/change-photo/: multipart image up to 2MB,
// advances the caller to photo_done.
func (h *UserHandler) ChangePhoto(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "errors": []gin.H{{"field": "photo", "message": "Photo file is required."}}})
		return
	}

	rel, err := saveUpload(c, file, "photo", h.filesRoot, "user_photos", 2*1024*1024, []string{"jpg", "jpeg", "png"})
	if err != nil {
		respondServiceError(c, err, "User")
		return
	}

	if err := h.users.SetPhoto(user, rel); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save photo"})
		return
	}

	pair, err := h.auth.IssueTokenPair(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate tokens"})
		return
	}
	c.JSON(http.StatusOK, pair)
}
