package handlers

import (
	"net/http"

	"janjitemu/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler answers uptime probes; hosting platforms ping it to keep the
// process alive. The body carries the latest dependency snapshot from the
// background health monitor.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"dependencies": status,
	})
}
