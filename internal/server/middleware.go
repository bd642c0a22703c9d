package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "healthdiary/internal/errors"
	"healthdiary/internal/logger"
)

const userIDKey = "user_id"

// UserID resolves the acting user from the X-User-ID header. Token-based
// authentication sits in front of this service; by the time a request gets
// here the gateway has already resolved the user.
func UserID() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := uint(1)
		if raw := c.GetHeader("X-User-ID"); raw != "" {
			parsed, err := strconv.ParseUint(raw, 10, 32)
			if err != nil || parsed == 0 {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid X-User-ID header"})
				return
			}
			userID = uint(parsed)
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

func currentUserID(c *gin.Context) uint {
	return c.GetUint(userIDKey)
}

func respondError(c *gin.Context, err error) {
	apperrors.NewHandler(logger.GetLogger()).Handle(c.Request.Context(), err)

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case apperrors.ErrorTypeNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": appErr.Message})
			return
		case apperrors.ErrorTypeValidation:
			c.JSON(http.StatusBadRequest, gin.H{"error": appErr.Message})
			return
		}
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}
