package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/bikeshare-loader/internal/usecase/dto"
)

const healthTimeout = 2 * time.Second

// HealthChecker is anything that can report its own health
type HealthChecker interface {
	Health(ctx context.Context) error
}

type HealthHandler struct {
	checks map[string]HealthChecker
}

// NewHealthHandler reports on every named dependency; nil checkers are reported as disabled
func NewHealthHandler(checks map[string]HealthChecker) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Health godoc
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /api/v1/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	resp := dto.HealthResponse{
		Status:   "healthy",
		Services: make(map[string]string, len(h.checks)),
		Time:     time.Now().UTC(),
	}

	for name, check := range h.checks {
		if check == nil {
			resp.Services[name] = "disabled"
			continue
		}

		ctx, cancel := context.WithTimeout(c.Context(), healthTimeout)
		err := check.Health(ctx)
		cancel()

		if err != nil {
			resp.Services[name] = "unhealthy: " + err.Error()
			resp.Status = "degraded"
			continue
		}
		resp.Services[name] = "healthy"
	}

	status := fiber.StatusOK
	if resp.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(resp)
}
