package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ferreteria-api/internal/application/catalog"
	"github.com/jhoicas/Ferreteria-api/internal/application/dto"
	"github.com/jhoicas/Ferreteria-api/internal/domain"
	"github.com/jhoicas/Ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/Ferreteria-api/internal/domain/pricing"
)

// CatalogHandler catálogo con precios según el rol de quien consulta.
type CatalogHandler struct {
	uc *catalog.UseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

func roleOf(c *fiber.Ctx) entity.Role {
	if ident := CurrentIdentity(c); ident != nil {
		return ident.Role
	}
	return entity.RoleClient
}

func catalogItem(p *entity.Product, role entity.Role) dto.CatalogItemResponse {
	return dto.CatalogItemResponse{
		ID:        p.ID,
		Name:      p.Name,
		UnitPrice: pricing.ResolvePrice(p, role),
		Tier:      pricing.ProductTier(p, role),
		Stock:     p.Stock,
		Category:  p.Category,
		Gallery:   p.Gallery,
	}
}

// List godoc
// @Summary      Catálogo activo con precio por rol
// @Tags         catalog
// @Produce      json
// @Param        category  query  string  false  "Filtro por categoría"
// @Success      200  {array}  dto.CatalogItemResponse
// @Router       /api/catalog [get]
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	role := roleOf(c)
	products := h.uc.ListActive(c.UserContext(), c.Query("category"))
	out := make([]dto.CatalogItemResponse, 0, len(products))
	for i := range products {
		out = append(out, catalogItem(&products[i], role))
	}
	return c.JSON(out)
}

// GetByID GET /api/catalog/:id
func (h *CatalogHandler) GetByID(c *fiber.Ctx) error {
	p, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if !p.IsActive() && !isBackOffice(CurrentIdentity(c)) {
		return writeError(c, domain.ErrNotFound)
	}
	return c.JSON(catalogItem(p, roleOf(c)))
}

// Upsert POST /api/catalog (admin). Devuelve el producto completo con sus tres precios.
func (h *CatalogHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertProductRequest
	if err := parseBody(c, &in); err != nil {
		return nil
	}
	p, err := h.uc.Upsert(c.UserContext(), in.ToEntity())
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// SetStatus PATCH /api/catalog/:id/status (admin)
func (h *CatalogHandler) SetStatus(c *fiber.Ctx) error {
	var in dto.SetProductStatusRequest
	if err := parseBody(c, &in); err != nil {
		return nil
	}
	if err := h.uc.SetStatus(c.UserContext(), c.Params("id"), entity.ProductStatus(in.Status)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
