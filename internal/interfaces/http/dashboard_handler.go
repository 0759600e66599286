package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Seguros-api/internal/application/analytics"
)

// DashboardHandler maneja el resumen del back-office.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve pólizas por estado efectivo, reclamaciones por estado con montos
// y conteos de clientes y productos activos.
// GET /api/dashboard/summary
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
