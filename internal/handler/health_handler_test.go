package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/fuzumoe/siteinsight-backend/internal/handler"
	"github.com/fuzumoe/siteinsight-backend/internal/service"
)

type stubHealth struct {
	status service.HealthStatus
}

func (s stubHealth) Check() *service.HealthStatus {
	st := s.status
	return &st
}

func setupHealthRouter(hs service.HealthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler.NewHealthHandler(hs).RegisterRoutes(r.Group(""))
	return r
}

func TestHealthHandler(t *testing.T) {
	checked := time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC)

	t.Run("Home", func(t *testing.T) {
		r := setupHealthRouter(stubHealth{service.HealthStatus{Service: "siteinsight"}})

		rec := do(r, http.MethodGet, "/", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "siteinsight", body["service"])
		assert.Equal(t, "running", body["status"])
	})

	t.Run("Healthy", func(t *testing.T) {
		r := setupHealthRouter(stubHealth{service.HealthStatus{
			Service: "siteinsight", Database: "healthy", Healthy: true, Checked: checked,
		}})

		rec := do(r, http.MethodGet, "/health", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "ok", body["status"])
		assert.Equal(t, "healthy", body["database"])
		assert.Equal(t, "2025-07-10T12:00:00Z", body["checked"])
	})

	t.Run("Degraded", func(t *testing.T) {
		r := setupHealthRouter(stubHealth{service.HealthStatus{
			Service: "siteinsight", Database: "unhealthy", Checked: checked,
		}})

		rec := do(r, http.MethodGet, "/health", "")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "degraded", decode(t, rec)["status"])
	})
}
