package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type UploadHandler struct {
	uploadDir     string
	maxUploadSize int64
}

func NewUploadHandler(uploadDir string, maxUploadSize int64) *UploadHandler {
	return &UploadHandler{
		uploadDir:     uploadDir,
		maxUploadSize: maxUploadSize,
	}
}

// UploadImage stores a product image under a generated name and returns
// its public path
// @Summary Upload product image
// @Tags admin
// @Security ApiKeyAuth
// @Router /admin/upload/image [post]
func (h *UploadHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "FILE_REQUIRED", "Please upload an image file")
		return
	}

	if file.Size > h.maxUploadSize {
		respondError(c, http.StatusBadRequest, "FILE_TOO_LARGE",
			fmt.Sprintf("File exceeds the %d byte limit", h.maxUploadSize))
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExtensions[ext] {
		respondError(c, http.StatusBadRequest, "INVALID_FORMAT",
			"Only jpg, jpeg, png, gif and webp images are allowed")
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		logrus.WithError(err).Error("Failed to create upload directory")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to store file")
		return
	}

	// Generated name avoids collisions and path traversal from the
	// client-supplied filename.
	storedName := uuid.New().String() + ext
	dst := filepath.Join(h.uploadDir, storedName)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		logrus.WithError(err).Error("Failed to save uploaded file")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to store file")
		return
	}

	logrus.WithFields(logrus.Fields{
		"original": file.Filename,
		"stored":   storedName,
		"size":     file.Size,
	}).Info("Image uploaded")

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"fileName": file.Filename,
		"filePath": "/images/" + storedName,
	})
}
