package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ferreteria-api/internal/application/dto"
	"github.com/jhoicas/Ferreteria-api/internal/application/pos"
	"github.com/jhoicas/Ferreteria-api/internal/application/receipt"
	"github.com/jhoicas/Ferreteria-api/internal/domain/entity"
)

// POSHandler caja: ventas, clientes de mostrador y cortes (back office).
type POSHandler struct {
	ledger    *pos.Ledger
	customers *pos.Customers
	register  *pos.CashRegister
	receipts  *receipt.PDFUseCase
}

// NewPOSHandler construye el handler.
func NewPOSHandler(ledger *pos.Ledger, customers *pos.Customers, register *pos.CashRegister, receipts *receipt.PDFUseCase) *POSHandler {
	return &POSHandler{ledger: ledger, customers: customers, register: register, receipts: receipts}
}

// RecordSale godoc
// @Summary      Registrar venta de mostrador
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordSaleRequest  true  "Venta"
// @Success      201   {object}  entity.PosSale
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/pos/sales [post]
func (h *POSHandler) RecordSale(c *fiber.Ctx) error {
	var in dto.RecordSaleRequest
	if err := parseBody(c, &in); err != nil {
		return nil
	}
	ctx := c.UserContext()
	reqs := make([]pos.LineRequest, 0, len(in.Items))
	for _, it := range in.Items {
		reqs = append(reqs, pos.LineRequest{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	lines, err := h.ledger.PriceLines(ctx, h.customers.RoleFor(ctx, in.CustomerRef), reqs)
	if err != nil {
		return writeError(c, err)
	}
	sale, err := h.ledger.RecordSale(ctx, pos.RecordSaleInput{
		Items:         lines,
		CustomerRef:   in.CustomerRef,
		SoldBy:        GetUserID(c),
		PaymentMethod: entity.PaymentMethod(in.PaymentMethod),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}

// ListSales GET /api/pos/sales?from=RFC3339&to=RFC3339
func (h *POSHandler) ListSales(c *fiber.Ctx) error {
	from, to := c.Query("from"), c.Query("to")
	if from == "" && to == "" {
		return c.JSON(h.ledger.List(c.UserContext()))
	}
	var start, end time.Time
	var err error
	if from != "" {
		if start, err = time.Parse(time.RFC3339, from); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC3339"})
		}
	}
	end = time.Now()
	if to != "" {
		if end, err = time.Parse(time.RFC3339, to); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC3339"})
		}
	}
	return c.JSON(nonNil(h.ledger.ListBetween(c.UserContext(), start, end)))
}

// SalePDF GET /api/pos/sales/:id/pdf
func (h *POSHandler) SalePDF(c *fiber.Ctx) error {
	out, filename, err := h.receipts.SalePDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendPDF(c, out, filename)
}

// CreateCustomer POST /api/pos/customers
func (h *POSHandler) CreateCustomer(c *fiber.Ctx) error {
	var in dto.CreatePosCustomerRequest
	if err := parseBody(c, &in); err != nil {
		return nil
	}
	customer, err := h.customers.CreateCustomer(c.UserContext(), pos.CustomerInput{
		Name:  in.Name,
		TaxID: in.TaxID,
		Email: in.Email,
		Phone: in.Phone,
		Role:  entity.Role(in.Role),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// ListCustomers GET /api/pos/customers?q=
func (h *POSHandler) ListCustomers(c *fiber.Ctx) error {
	return c.JSON(h.customers.ListCustomers(c.UserContext(), c.Query("q")))
}

// CloseRegister POST /api/pos/closings
func (h *POSHandler) CloseRegister(c *fiber.Ctx) error {
	var in dto.CloseRegisterRequest
	if err := parseBody(c, &in); err != nil {
		return nil
	}
	closing, err := h.register.CloseRegister(c.UserContext(), GetUserID(c), in.CountedCash)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(closing)
}

// ListClosings GET /api/pos/closings
func (h *POSHandler) ListClosings(c *fiber.Ctx) error {
	return c.JSON(h.register.ListClosings(c.UserContext()))
}
