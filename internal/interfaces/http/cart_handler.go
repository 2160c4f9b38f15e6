package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/Ferreteria-api/internal/application/cart"
	"github.com/jhoicas/Ferreteria-api/internal/application/dto"
	"github.com/jhoicas/Ferreteria-api/internal/domain/entity"
)

// HeaderGuestID identifica el carrito de un invitado entre peticiones.
const HeaderGuestID = "X-Guest-ID"

// CartOpener abre el carrito de una sesión (identidad o invitado).
type CartOpener func(ctx context.Context, ident *entity.Identity, guestID string) *cart.Engine

// CartHandler carrito de la sesión actual: identidad del token o invitado por X-Guest-ID.
type CartHandler struct {
	open CartOpener
}

// NewCartHandler construye el handler.
func NewCartHandler(open CartOpener) *CartHandler {
	return &CartHandler{open: open}
}

func (h *CartHandler) session(c *fiber.Ctx) (*cart.Engine, bool) {
	guestID := c.Get(HeaderGuestID)
	if !validGuestID(guestID) {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_GUEST_ID", Message: HeaderGuestID + " inválido"})
		return nil, false
	}
	ident := CurrentIdentity(c)
	if ident == nil && guestID == "" {
		// invitado nuevo: recibe su propio carrito y debe reenviar el id en X-Guest-ID
		guestID = uuid.New().String()
	}
	if ident == nil {
		c.Set(HeaderGuestID, guestID)
	}
	return h.open(c.UserContext(), ident, guestID), true
}

func cartResponse(e *cart.Engine) dto.CartResponse {
	return dto.CartResponse{
		Namespace:     e.Namespace(),
		Items:         e.Items(),
		ItemCount:     e.ItemCount(),
		SelectedTotal: e.SelectedTotal(),
		AllTotal:      e.AllTotal(),
	}
}

// Get godoc
// @Summary      Carrito de la sesión
// @Tags         cart
// @Produce      json
// @Param        X-Guest-ID  header  string  false  "Carrito de invitado"
// @Success      200  {object}  dto.CartResponse
// @Header       200  {string}  X-Guest-ID  "Id del carrito de invitado"
// @Router       /api/cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	e, ok := h.session(c)
	if !ok {
		return nil
	}
	return c.JSON(cartResponse(e))
}

// AddItem POST /api/cart/items
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddCartItemRequest
	if err := parseBody(c, &in); err != nil {
		return nil
	}
	e, ok := h.session(c)
	if !ok {
		return nil
	}
	if err := e.AddItem(c.UserContext(), in.ProductID, in.Quantity); err != nil {
		return writeError(c, err)
	}
	return c.JSON(cartResponse(e))
}

// SetQuantity PUT /api/cart/items/:productId
func (h *CartHandler) SetQuantity(c *fiber.Ctx) error {
	var in dto.SetCartQuantityRequest
	if err := parseBody(c, &in); err != nil {
		return nil
	}
	e, ok := h.session(c)
	if !ok {
		return nil
	}
	e.SetQuantity(c.UserContext(), c.Params("productId"), in.Quantity)
	return c.JSON(cartResponse(e))
}

// RemoveItem DELETE /api/cart/items/:productId
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	e, ok := h.session(c)
	if !ok {
		return nil
	}
	e.RemoveItem(c.UserContext(), c.Params("productId"))
	return c.JSON(cartResponse(e))
}

// Toggle POST /api/cart/items/:productId/toggle
func (h *CartHandler) Toggle(c *fiber.Ctx) error {
	e, ok := h.session(c)
	if !ok {
		return nil
	}
	e.ToggleSelection(c.UserContext(), c.Params("productId"))
	return c.JSON(cartResponse(e))
}

// Clear DELETE /api/cart
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	e, ok := h.session(c)
	if !ok {
		return nil
	}
	e.Clear(c.UserContext())
	return c.JSON(cartResponse(e))
}
