package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ferreteria-api/internal/application/analytics"
)

// DashboardHandler panel de ventas del administrador.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen de ventas del día y del mes
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	return c.JSON(h.uc.GetSummary(c.UserContext()))
}
