package handlers

import (
	"net/http"

	"careerpath/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last dependency health snapshot.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	if !status.Healthy() {
		c.JSON(http.StatusServiceUnavailable, utils.APIResponse{StatusCode: http.StatusServiceUnavailable, Data: status, Message: "Degraded"})
		return
	}
	utils.JSONSuccess(c, http.StatusOK, status, "OK")
}
