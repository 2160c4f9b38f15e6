package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ferreteria-api/internal/application/commission"
	"github.com/jhoicas/Ferreteria-api/internal/application/dto"
	"github.com/jhoicas/Ferreteria-api/internal/domain"
	"github.com/jhoicas/Ferreteria-api/internal/domain/entity"
)

// CommissionHandler comisiones de vendedores.
type CommissionHandler struct {
	engine *commission.Engine
}

// NewCommissionHandler construye el handler.
func NewCommissionHandler(engine *commission.Engine) *CommissionHandler {
	return &CommissionHandler{engine: engine}
}

// Summaries GET /api/commissions (admin)
func (h *CommissionHandler) Summaries(c *fiber.Ctx) error {
	return c.JSON(h.engine.Summaries(c.UserContext()))
}

// Pending GET /api/commissions/:salespersonId (admin o el propio vendedor)
func (h *CommissionHandler) Pending(c *fiber.Ctx) error {
	id := c.Params("salespersonId")
	caller := CurrentIdentity(c)
	if caller.Role != entity.RoleAdmin && caller.ID != id {
		return writeError(c, domain.ErrForbidden)
	}
	return c.JSON(h.engine.Pending(c.UserContext(), id))
}

// Settle godoc
// @Summary      Liquidar comisión pendiente
// @Tags         commissions
// @Security     Bearer
// @Produce      json
// @Param        salespersonId  path  string  true  "Vendedor"
// @Success      200  {object}  dto.SettleCommissionResponse
// @Router       /api/commissions/{salespersonId}/settle [post]
func (h *CommissionHandler) Settle(c *fiber.Ctx) error {
	id := c.Params("salespersonId")
	amount, err := h.engine.Settle(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.SettleCommissionResponse{SalespersonID: id, Amount: amount})
}
