package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"instaclone/internal/services"
)

type CommentHandler struct {
	comments services.CommentService
	likes    services.LikeService
}

func NewCommentHandler(comments services.CommentService, likes services.LikeService) *CommentHandler {
	return &CommentHandler{comments: comments, likes: likes}
}

func (h *CommentHandler) List(c *gin.Context) {
	page, pageSize := parsePage(c)
	result, err := h.comments.List(currentUserID(c), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load comments"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Create handles POST /comments/, optionally threaded under a parent
// comment of the same post.
func (h *CommentHandler) Create(c *gin.Context) {
	userID, ok := getIntFromCtx(c, "user_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req struct {
		PostID  int64  `json:"post" binding:"required"`
		Content string `json:"content" binding:"required"`
		Parent  *int64 `json:"parent"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	detail, err := h.comments.Create(userID, req.PostID, req.Content, req.Parent)
	if err != nil {
		respondServiceError(c, err, "Post")
		return
	}
	c.JSON(http.StatusCreated, detail)
}

func (h *CommentHandler) Get(c *gin.Context) {
	id, ok := parseID64(c, "id")
	if !ok {
		return
	}
	detail, err := h.comments.Get(id, currentUserID(c))
	if err != nil {
		respondServiceError(c, err, "Comment")
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *CommentHandler) Update(c *gin.Context) {
	id, ok := parseID64(c, "id")
	if !ok {
		return
	}
	userID, ok := getIntFromCtx(c, "user_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	detail, err := h.comments.Update(userID, id, req.Content)
	if err != nil {
		respondServiceError(c, err, "Comment")
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := parseID64(c, "id")
	if !ok {
		return
	}
	userID, ok := getIntFromCtx(c, "user_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	if err := h.comments.Delete(userID, id); err != nil {
		respondServiceError(c, err, "Comment")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CommentHandler) LikeToggle(c *gin.Context) {
	id, ok := parseID64(c, "id")
	if !ok {
		return
	}
	userID, ok := getIntFromCtx(c, "user_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	liked, err := h.likes.ToggleComment(id, userID)
	if err != nil {
		respondServiceError(c, err, "Comment")
		return
	}
	if liked {
		c.JSON(http.StatusCreated, gin.H{"detail": "Comment liked."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Comment unliked."})
}
