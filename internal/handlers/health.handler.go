package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/tdnguyen/debt-ledger/internal/services"
	xhttp "github.com/tdnguyen/debt-ledger/pkg/http"
)

type HealthService interface {
	Check(ctx context.Context) services.HealthReport
}

type HealthHandler struct {
	svc HealthService
}

// Health is registered at the router root so the auth middleware's open
// path list and load balancer checks hit the same URL.
func RegisterHealthRoutes(e *router.Router, h *HealthHandler) {
	e.GET("/health", h.GetHealth)
}

func NewHealthHandler(healthService HealthService) *HealthHandler {
	return &HealthHandler{
		svc: healthService,
	}
}

func (h *HealthHandler) GetHealth(ctx *xhttp.RequestCtx) {
	report := h.svc.Check(ctx)
	status := xhttp.StatusOK
	if !report.Healthy {
		status = xhttp.StatusServiceUnavailable
	}
	writeJSON(ctx, status, report)
}
