package handlers

import (
	"careerpath/middleware"
	"careerpath/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger retrieves a Zap logger from the Gin context or falls back to the
// global one, tagged with the request path and caller when known.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get("logger"); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	logger := utils.GetLogger().With(zap.String("path", c.FullPath()))
	if userID := c.GetString(middleware.ContextUserID); userID != "" {
		logger = logger.With(zap.String("userID", userID))
	}
	return logger
}

// currentUserID returns the authenticated user, answering 401 when absent.
func currentUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(middleware.ContextUserID)
	if userID == "" {
		getLogger(c).Error("User ID not found in context")
		utils.RespondError(c, utils.NewUnauthorized("Unauthorized"))
		return "", false
	}
	return userID, true
}
