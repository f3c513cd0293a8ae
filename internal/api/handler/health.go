package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/furniture-store/storefront/internal/core/domain"
)

// HealthHandler handles GET /health, the liveness probe.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// TierPinger checks both storage tiers.
type TierPinger interface {
	Ping(ctx context.Context) (remote, local error)
}

// ReadinessHandler handles GET /health/ready. The service is ready while the
// fallback tier answers; a remote outage only degrades it.
type ReadinessHandler struct {
	tiers TierPinger
}

func NewReadinessHandler(tiers TierPinger) *ReadinessHandler {
	return &ReadinessHandler{tiers: tiers}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	remoteErr, localErr := h.tiers.Ping(ctx)
	deps := map[string]dependencyStatus{
		"remote":   toDependency(remoteErr),
		"fallback": toDependency(localErr),
	}
	if errors.Is(remoteErr, domain.ErrRemoteNotConfigured) {
		deps["remote"] = dependencyStatus{Status: "not_configured"}
	}

	status, httpStatus := "ok", http.StatusOK
	switch {
	case localErr != nil:
		status, httpStatus = "unavailable", http.StatusServiceUnavailable
	case remoteErr != nil:
		status = "degraded"
	}

	return c.JSON(httpStatus, readinessResponse{Status: status, Dependencies: deps})
}

func toDependency(err error) dependencyStatus {
	if err != nil {
		return dependencyStatus{Status: "unhealthy", Error: err.Error()}
	}
	return dependencyStatus{Status: "ok"}
}
