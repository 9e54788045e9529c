package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/erandawijewantha/personalized-health-coach/internal/observability"
	"github.com/erandawijewantha/personalized-health-coach/internal/types"
)

// HealthHandler reports component health for the whole service.
type HealthHandler struct {
	monitor *observability.HealthMonitor
}

func NewHealthHandler(monitor *observability.HealthMonitor) *HealthHandler {
	return &HealthHandler{monitor: monitor}
}

// Check runs every registered health check. The response is 200 unless
// some component is unhealthy, in which case it is 503.
func (h *HealthHandler) Check(c *gin.Context) {
	statuses := h.monitor.CheckAll(c.Request.Context())
	overall := observability.Overall(statuses)

	status := http.StatusOK
	if overall == types.HealthStateUnhealthy {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":     overall,
		"components": statuses,
	})
}
