package middlewares

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/mealbox-app/utils"
)

// LimitBodySize caps the request body, used on the legacy upload route.
func LimitBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// LogImportRequest records who started an import and how it ended.
func LogImportRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		userID, _ := c.Get("userID")

		c.Next()

		utils.InfoLogger.WithFields(logrus.Fields{
			"user_id":  userID,
			"status":   c.Writer.Status(),
			"duration": time.Since(start),
		}).Info("Import request")
	}
}
