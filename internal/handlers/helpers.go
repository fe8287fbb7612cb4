package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"instaclone/internal/services"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// tolerant to value types coming out of the context (int / int64 / float64 / string)
func getIntFromCtx(c *gin.Context, key string) (int, bool) {
	v, ok := c.Get(key)
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	case string:
		if n, err := strconv.Atoi(t); err == nil {
			return n, true
		}
	}
	return 0, false
}

// currentUserID returns 0 for anonymous callers (optional-auth routes).
func currentUserID(c *gin.Context) int {
	id, _ := getIntFromCtx(c, "user_id")
	return id
}

func parsePage(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

func parseID64(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return id, true
}

// respondServiceError maps the service error taxonomy onto HTTP statuses:
// validation 400, forbidden 403, not-found 404, everything else 500.
func respondServiceError(c *gin.Context, err error, what string) {
	if verrs, ok := services.AsValidation(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "errors": verrs})
		return
	}
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": what + " not found."})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"detail": "You do not have permission to modify this " + strings.ToLower(what) + "."})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// saveUpload validates extension and size, then stores the file under
// rootDir/subDir with a random name. Returns the stored relative path.
func saveUpload(c *gin.Context, file *multipart.FileHeader, field, rootDir, subDir string, maxBytes int64, allowedExts []string) (string, error) {
	if file.Size > maxBytes {
		return "", services.ValidationErrors{{Field: field, Message: fmt.Sprintf("File size should not exceed %d MB.", maxBytes/(1024*1024))}}
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(file.Filename), "."))
	allowed := false
	for _, a := range allowedExts {
		if ext == a {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", services.ValidationErrors{{Field: field, Message: "File extension must be one of: " + strings.Join(allowedExts, ", ") + "."}}
	}

	rel := filepath.Join(subDir, uuid.New().String()+"."+ext)
	if err := c.SaveUploadedFile(file, filepath.Join(rootDir, rel)); err != nil {
		return "", err
	}
	return rel, nil
}
