package server

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"healthdiary/internal/domain"
	"healthdiary/internal/services"
)

// PhotoHandler serves photo upload and recognition status polling.
type PhotoHandler struct {
	svc domain.RecognitionService
}

func NewPhotoHandler(svc domain.RecognitionService) *PhotoHandler {
	return &PhotoHandler{svc: svc}
}

// POST /api/v1/days/:dayID/photo  multipart: category, file
func (h *PhotoHandler) Upload(c *gin.Context) {
	dayID, ok := parseIDParam(c, "dayID")
	if !ok {
		return
	}

	category := c.PostForm("category")
	if !validCategory(category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category must be one of breakfast, lunch, dinner, snack"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fileHeader.Size > services.MaxPhotoSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("file too large, limit is %d bytes", services.MaxPhotoSize)})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file must be an image"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, services.MaxPhotoSize+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return
	}
	if len(data) > services.MaxPhotoSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("file too large, limit is %d bytes", services.MaxPhotoSize)})
		return
	}

	meal, err := h.svc.Start(c.Request.Context(), dayID, category, fileHeader.Filename, contentType, data)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, domain.UploadResult{
		MealID:  meal.ID,
		Status:  domain.MealStatusProcessing,
		Message: "photo accepted for recognition",
	})
}

// GET /api/v1/meals/:id/processing-status
func (h *PhotoHandler) Status(c *gin.Context) {
	mealID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	status, err := h.svc.Status(c.Request.Context(), mealID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func validCategory(category string) bool {
	switch category {
	case "breakfast", "lunch", "dinner", "snack":
		return true
	}
	return false
}
