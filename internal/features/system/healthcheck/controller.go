package system_healthcheck

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthcheckController struct {
	healthcheckService *HealthcheckService
}

func (c *HealthcheckController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/healthcheck", c.Healthcheck)
	router.GET("/healthcheck/status", c.SystemStatus)
}

// Healthcheck
// @Summary Liveness probe
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /healthcheck [get]
func (c *HealthcheckController) Healthcheck(ctx *gin.Context) {
	if err := c.healthcheckService.IsAvailable(); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SystemStatus
// @Summary Host resource usage
// @Tags system
// @Produce json
// @Success 200 {object} SystemStatusDTO
// @Router /healthcheck/status [get]
func (c *HealthcheckController) SystemStatus(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.healthcheckService.GetSystemStatus())
}
