package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ferreteria-api/internal/application/dto"
	"github.com/jhoicas/Ferreteria-api/internal/application/identity"
	"github.com/jhoicas/Ferreteria-api/internal/application/quote"
	"github.com/jhoicas/Ferreteria-api/internal/application/receipt"
	"github.com/jhoicas/Ferreteria-api/internal/domain"
	"github.com/jhoicas/Ferreteria-api/internal/domain/entity"
)

// QuoteHandler cotizaciones (requiere sesión).
type QuoteHandler struct {
	ledger     *quote.Ledger
	carts      CartOpener
	identities *identity.Directory
	receipts   *receipt.PDFUseCase
}

// NewQuoteHandler construye el handler.
func NewQuoteHandler(ledger *quote.Ledger, carts CartOpener, identities *identity.Directory, receipts *receipt.PDFUseCase) *QuoteHandler {
	return &QuoteHandler{ledger: ledger, carts: carts, identities: identities, receipts: receipts}
}

// Create godoc
// @Summary      Cotizar las líneas seleccionadas del carrito
// @Tags         quotes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateQuoteRequest  false  "Cliente (solo back office)"
// @Success      201   {object}  entity.Quote
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/quotes [post]
func (h *QuoteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateQuoteRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &in); err != nil {
			return nil
		}
	}
	ctx := c.UserContext()
	caller := CurrentIdentity(c)

	customerID, role, salespersonID := caller.ID, caller.Role, ""
	if isBackOffice(caller) && in.CustomerID != "" && in.CustomerID != caller.ID {
		customer, err := h.identities.GetByID(ctx, in.CustomerID)
		if err != nil {
			return writeError(c, err)
		}
		customerID, role = customer.ID, customer.Role
	}
	if caller.Role == entity.RoleSalesperson {
		salespersonID = caller.ID
	}

	session := h.carts(ctx, caller, "")
	selected := session.SelectedItems()
	if len(selected) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_SELECTION", Message: "no hay líneas seleccionadas en el carrito"})
	}
	q, err := h.ledger.CreateQuote(ctx, customerID, selected, role, salespersonID)
	if err != nil {
		return writeError(c, err)
	}
	session.RemoveSelected(ctx)
	return c.Status(fiber.StatusCreated).JSON(q)
}

// List GET /api/quotes: back office ve todas; un cliente solo las suyas.
func (h *QuoteHandler) List(c *fiber.Ctx) error {
	caller := CurrentIdentity(c)
	if isBackOffice(caller) {
		if customerID := c.Query("customer_id"); customerID != "" {
			return c.JSON(nonNil(h.ledger.ListByCustomer(c.UserContext(), customerID)))
		}
		return c.JSON(h.ledger.List(c.UserContext()))
	}
	return c.JSON(nonNil(h.ledger.ListByCustomer(c.UserContext(), caller.ID)))
}

func (h *QuoteHandler) visible(c *fiber.Ctx) (*entity.Quote, error) {
	q, err := h.ledger.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return nil, err
	}
	caller := CurrentIdentity(c)
	if !isBackOffice(caller) && q.CustomerID != caller.ID {
		return nil, domain.ErrForbidden
	}
	return q, nil
}

// GetByID GET /api/quotes/:id
func (h *QuoteHandler) GetByID(c *fiber.Ctx) error {
	q, err := h.visible(c)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(q)
}

// Transition PATCH /api/quotes/:id/status (back office). Una transición no permitida
// devuelve 200 con la cotización sin cambios.
func (h *QuoteHandler) Transition(c *fiber.Ctx) error {
	var in dto.TransitionQuoteRequest
	if err := parseBody(c, &in); err != nil {
		return nil
	}
	q, err := h.ledger.Transition(c.UserContext(), c.Params("id"), entity.QuoteStatus(in.Status))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(q)
}

// PDF GET /api/quotes/:id/pdf
func (h *QuoteHandler) PDF(c *fiber.Ctx) error {
	q, err := h.visible(c)
	if err != nil {
		return writeError(c, err)
	}
	out, filename, err := h.receipts.QuotePDF(c.UserContext(), q.ID)
	if err != nil {
		return writeError(c, err)
	}
	return sendPDF(c, out, filename)
}

func sendPDF(c *fiber.Ctx, body []byte, filename string) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(body)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
