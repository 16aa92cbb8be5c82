package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pirxey/timetrack-api/internal/csvio"
	"github.com/pirxey/timetrack-api/internal/models"
	"github.com/pirxey/timetrack-api/internal/service"
)

const currentUserKey = "currentUser"

// identifyUser resolves the acting user from the X-User-ID header. Session
// handling lives in front of this API; the header carries the already
// authenticated identity.
func identifyUser(services *service.Services, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "X-User-ID header is required"})
			c.Abort()
			return
		}

		user, err := services.Catalog.GetUser(c.Request.Context(), userID)
		if err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("Failed to resolve user")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			c.Abort()
			return
		}
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// currentUser returns the user placed on the context by identifyUser
func currentUser(c *gin.Context) *models.User {
	v, _ := c.Get(currentUserKey)
	user, _ := v.(*models.User)
	return user
}

// writeServiceError maps service errors onto HTTP responses
func writeServiceError(c *gin.Context, err error) {
	var vf *service.ValidationFailed
	switch {
	case errors.As(err, &vf):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "validation failed",
			"errors": vf.Errors,
		})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrFileTooLarge), errors.Is(err, service.ErrTooManyRows):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
	case errors.Is(err, csvio.ErrEmptyFile), errors.Is(err, csvio.ErrNoDataRows):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
