package handlers

import (
	"net/http"

	"rosa/utils"

	"github.com/gin-gonic/gin"
)

// Health reports the last background health check. Redis is optional, so
// only the store decides the status code.
func Health(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	state := "ok"
	if !status.Store {
		code = http.StatusServiceUnavailable
		state = "degraded"
	}
	c.JSON(code, gin.H{"status": state, "checks": status})
}
