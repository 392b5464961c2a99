package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/recipebox/backend/internal/service"
)

// MaxImageSize caps uploaded recipe images at 5 MiB
const MaxImageSize = 5 << 20

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ImageUploadResponse represents the response for an image upload
type ImageUploadResponse struct {
	ImageURL string `json:"image_url"`
}

// ImageHandler handles recipe image uploads
type ImageHandler struct {
	imageStore service.IImageStore
}

// NewImageHandler creates a new image handler. A nil store disables uploads.
func NewImageHandler(imageStore service.IImageStore) *ImageHandler {
	return &ImageHandler{imageStore: imageStore}
}

// RegisterRoutes registers the image upload route
func (h *ImageHandler) RegisterRoutes(router *gin.RouterGroup, mutate ...gin.HandlerFunc) {
	router.POST("/images", slices.Concat(mutate, []gin.HandlerFunc{h.UploadImage})...)
}

// UploadImage stores the multipart "image" field and returns its URL
func (h *ImageHandler) UploadImage(c *gin.Context) {
	if h.imageStore == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image storage is not configured"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "An image file is required"})
		return
	}
	if file.Size > MaxImageSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Image must be 5MB or smaller"})
		return
	}

	contentType := file.Header.Get("Content-Type")
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image must be a JPEG, PNG, WebP or GIF"})
		return
	}
	if e := strings.ToLower(filepath.Ext(file.Filename)); e == ".jpeg" || e == ext {
		ext = e
	}

	body, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image"})
		return
	}
	defer body.Close()

	key := fmt.Sprintf("recipe-images/%s%s", uuid.New().String(), ext)
	url, err := h.imageStore.UploadImage(c.Request.Context(), key, contentType, body)
	if err != nil {
		slog.Error("Image upload failed", "key", key, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Image upload failed"})
		return
	}

	slog.Info("Image uploaded", "key", key, "size", file.Size)
	c.JSON(http.StatusCreated, ImageUploadResponse{ImageURL: url})
}
