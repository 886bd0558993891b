package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fuzumoe/siteinsight-backend/internal/service"
)

// HealthHandler serves liveness and readiness endpoints.
type HealthHandler struct {
	healthService service.HealthService
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(hs service.HealthService) *HealthHandler {
	return &HealthHandler{healthService: hs}
}

// Home reports that the API process is up.
func (h *HealthHandler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "SiteInsight crawler API",
		"service": h.healthService.Check().Service,
		"status":  "running",
	})
}

// @Summary Service and database health
// @Tags    health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router  /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	stat := h.healthService.Check()
	code, status := http.StatusOK, "ok"
	if !stat.Healthy {
		code, status = http.StatusServiceUnavailable, "degraded"
	}
	c.JSON(code, gin.H{
		"service":  stat.Service,
		"status":   status,
		"database": stat.Database,
		"checked":  stat.Checked.Format(time.RFC3339),
	})
}

// RegisterRoutes mounts the health endpoints on the given router group.
func (h *HealthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.Home)
	rg.GET("/health", h.Health)
}
