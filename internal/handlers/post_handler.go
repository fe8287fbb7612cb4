package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"instaclone/internal/services"
)

type PostHandler struct {
	posts     services.PostService
	likes     services.LikeService
	filesRoot string
}

func NewPostHandler(posts services.PostService, likes services.LikeService, filesRoot string) *PostHandler {
	return &PostHandler{posts: posts, likes: likes, filesRoot: filesRoot}
}

// @Summary      Post feed
// @Description  Newest-first paginated feed; anonymous callers see me_liked=false
// @Tags         Posts
// @Produce      json
// @Param        page       query  int  false  "Page number"
// @Param        page_size  query  int  false  "Page size"
// @Success      200  {object}  models.Page
// @Router       /posts/ [get]
func (h *PostHandler) List(c *gin.Context) {
	page, pageSize := parsePage(c)
	feed, err := h.posts.ListFeed(currentUserID(c), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load feed"})
		return
	}
	c.JSON(http.StatusOK, feed)
}

// Create handles POST /posts/create/: multipart image plus caption.
func (h *PostHandler) Create(c *gin.Context) {
	userID, ok := getIntFromCtx(c, "user_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "errors": []gin.H{{"field": "image", "message": "Image file is required."}}})
		return
	}
	rel, err := saveUpload(c, file, "image", h.filesRoot, "post_images", 10*1024*1024, []string{"jpg", "jpeg", "png", "webp"})
	if err != nil {
		respondServiceError(c, err, "Post")
		return
	}

	detail, err := h.posts.Create(userID, rel, c.PostForm("caption"))
	if err != nil {
		respondServiceError(c, err, "Post")
		return
	}
	c.JSON(http.StatusCreated, detail)
}

func (h *PostHandler) Get(c *gin.Context) {
	id, ok := parseID64(c, "id")
	if !ok {
		return
	}
	detail, err := h.posts.Get(id, currentUserID(c))
	if err != nil {
		respondServiceError(c, err, "Post")
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *PostHandler) Update(c *gin.Context) {
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
		Caption string `json:"caption"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	detail, err := h.posts.Update(userID, id, req.Caption)
	if err != nil {
		respondServiceError(c, err, "Post")
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := parseID64(c, "id")
	if !ok {
		return
	}
	userID, ok := getIntFromCtx(c, "user_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	if err := h.posts.Delete(userID, id); err != nil {
		respondServiceError(c, err, "Post")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary      Toggle a post like
// @Description  Creates the like if absent (201), removes it if present (200)
// @Tags         Posts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Post id"
// @Success      200  {object}  map[string]string
// @Success      201  {object}  map[string]string
// @Router       /posts/{id}/like-toggle/ [post]
func (h *PostHandler) LikeToggle(c *gin.Context) {
	id, ok := parseID64(c, "id")
	if !ok {
		return
	}
	userID, ok := getIntFromCtx(c, "user_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	liked, err := h.likes.TogglePost(id, userID)
	if err != nil {
		respondServiceError(c, err, "Post")
		return
	}
	if liked {
		c.JSON(http.StatusCreated, gin.H{"detail": "Post liked."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Post unliked."})
}
