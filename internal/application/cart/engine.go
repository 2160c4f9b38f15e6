// Package cart implementa el carrito de una sesión: un objeto explícito construido con una
// identidad (nil = invitado) cuyo estado vive en su propio namespace del gateway.
package cart

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ferreteria-api/internal/domain"
	"github.com/jhoicas/Ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/Ferreteria-api/internal/domain/pricing"
	"github.com/jhoicas/Ferreteria-api/internal/domain/repository"
	"github.com/jhoicas/Ferreteria-api/internal/infrastructure/persistence"
	"github.com/jhoicas/Ferreteria-api/pkg/logger"
)

const guestNamespace = repository.CartKeyPrefix + "guest"

// CatalogReader lo que el carrito necesita del catálogo.
type CatalogReader interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	ProductsByID(ctx context.Context) map[string]*entity.Product
}

// Namespace clave del carrito: cart:<identityID>, o cart:guest[:<guestID>] sin identidad.
func Namespace(ident *entity.Identity, guestID string) string {
	if ident != nil && ident.ID != "" {
		return repository.CartKeyPrefix + ident.ID
	}
	if guestID != "" {
		return guestNamespace + ":" + guestID
	}
	return guestNamespace
}

// Engine carrito de una sesión. Seguro para uso concurrente.
type Engine struct {
	mu       sync.Mutex
	gw       *persistence.Gateway
	catalog  CatalogReader
	log      *logger.Logger
	identity *entity.Identity
	guestID  string
	items    []entity.CartItem
}

// NewEngine construye el carrito de la identidad (o del invitado guestID) y carga su namespace.
func NewEngine(ctx context.Context, gw *persistence.Gateway, catalog CatalogReader, log *logger.Logger, ident *entity.Identity, guestID string) *Engine {
	if log == nil {
		log = logger.Nop()
	}
	e := &Engine{gw: gw, catalog: catalog, log: log.Component("cart")}
	e.bind(ctx, ident, guestID)
	return e
}

// Namespace clave de persistencia del carrito actual.
func (e *Engine) Namespace() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Namespace(e.identity, e.guestID)
}

// Role rol con el que se resuelven los precios; el invitado paga como client.
func (e *Engine) Role() entity.Role {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.role()
}

func (e *Engine) role() entity.Role {
	if e.identity == nil {
		return entity.RoleClient
	}
	return e.identity.Role
}

// SwitchIdentity cierra el carrito actual y abre el de la nueva identidad. Nunca fusiona:
// lo que tenía el invitado queda en su namespace.
func (e *Engine) SwitchIdentity(ctx context.Context, ident *entity.Identity, guestID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.bind(ctx, ident, guestID)
}

// Reload vuelve a leer el carrito y recalcula precios contra el catálogo y rol actuales.
func (e *Engine) Reload(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.bind(ctx, e.identity, e.guestID)
}

func (e *Engine) bind(ctx context.Context, ident *entity.Identity, guestID string) {
	if ident != nil {
		copied := *ident
		ident = &copied
	}
	e.identity = ident
	e.guestID = guestID
	stored := persistence.Load(ctx, e.gw, Namespace(ident, guestID), []entity.CartItem{})
	e.items = e.reprice(stored, e.catalog.ProductsByID(ctx))
}

// reprice descarta líneas con cantidad < 1 y actualiza precio y nombre de las que siguen
// en el catálogo; las huérfanas conservan el último precio conocido.
func (e *Engine) reprice(items []entity.CartItem, products map[string]*entity.Product) []entity.CartItem {
	role := e.role()
	out := make([]entity.CartItem, 0, len(items))
	for _, it := range items {
		if it.Quantity < 1 {
			continue
		}
		p, ok := products[it.ProductID]
		if !ok {
			e.log.Debug().Str("product_id", it.ProductID).Msg("producto fuera del catálogo, se conserva el precio guardado")
			out = append(out, it)
			continue
		}
		it.Name = p.Name
		it.UnitPrice = pricing.ResolvePrice(p, role)
		out = append(out, it)
	}
	return out
}

// mutate aplica op sobre el carrito persistido (recién recalculado) en una sola escritura.
// El catálogo se lee antes de tomar el gateway.
func (e *Engine) mutate(ctx context.Context, op func(items []entity.CartItem) []entity.CartItem) {
	products := e.catalog.ProductsByID(ctx)
	if !e.gw.Available() {
		// sin almacenamiento el carrito vive solo en la sesión
		current := make([]entity.CartItem, len(e.items))
		copy(current, e.items)
		e.items = op(e.reprice(current, products))
		return
	}
	ns := Namespace(e.identity, e.guestID)
	next, _ := persistence.Update(ctx, e.gw, ns, []entity.CartItem{}, func(cur []entity.CartItem) ([]entity.CartItem, error) {
		return op(e.reprice(cur, products)), nil
	})
	e.items = next
}

// AddItem agrega qty unidades (qty <= 0 cuenta como 1). Si la línea existe suma la cantidad;
// una línea nueva entra sin seleccionar.
func (e *Engine) AddItem(ctx context.Context, productID string, qty int) error {
	p, err := e.catalog.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if !p.IsActive() {
		return domain.ErrProductUnavailable
	}
	if qty <= 0 {
		qty = 1
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	price := pricing.ResolvePrice(p, e.role())
	e.mutate(ctx, func(items []entity.CartItem) []entity.CartItem {
		for i := range items {
			if items[i].ProductID == productID {
				items[i].Quantity += qty
				items[i].UnitPrice = price
				return items
			}
		}
		return append(items, entity.CartItem{
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  qty,
			UnitPrice: price,
		})
	})
	return nil
}

// RemoveItem quita la línea del producto. Sin la línea no hace nada.
func (e *Engine) RemoveItem(ctx context.Context, productID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mutate(ctx, func(items []entity.CartItem) []entity.CartItem {
		return removeLine(items, productID)
	})
}

// SetQuantity fija la cantidad; n <= 0 quita la línea.
func (e *Engine) SetQuantity(ctx context.Context, productID string, n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mutate(ctx, func(items []entity.CartItem) []entity.CartItem {
		if n <= 0 {
			return removeLine(items, productID)
		}
		for i := range items {
			if items[i].ProductID == productID {
				items[i].Quantity = n
			}
		}
		return items
	})
}

// ToggleSelection invierte la selección de la línea.
func (e *Engine) ToggleSelection(ctx context.Context, productID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mutate(ctx, func(items []entity.CartItem) []entity.CartItem {
		for i := range items {
			if items[i].ProductID == productID {
				items[i].Selected = !items[i].Selected
			}
		}
		return items
	})
}

// Clear vacía el carrito.
func (e *Engine) Clear(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mutate(ctx, func([]entity.CartItem) []entity.CartItem {
		return []entity.CartItem{}
	})
}

// RemoveSelected quita las líneas seleccionadas (tras convertirlas en cotización).
func (e *Engine) RemoveSelected(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mutate(ctx, func(items []entity.CartItem) []entity.CartItem {
		out := items[:0]
		for _, it := range items {
			if !it.Selected {
				out = append(out, it)
			}
		}
		return out
	})
}

// Items copia de las líneas actuales.
func (e *Engine) Items() []entity.CartItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]entity.CartItem, len(e.items))
	copy(out, e.items)
	return out
}

// SelectedItems copia de las líneas seleccionadas.
func (e *Engine) SelectedItems() []entity.CartItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []entity.CartItem
	for _, it := range e.items {
		if it.Selected {
			out = append(out, it)
		}
	}
	return out
}

// SelectedTotal suma de las líneas seleccionadas.
func (e *Engine) SelectedTotal() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()
	total := decimal.Zero
	for _, it := range e.items {
		if it.Selected {
			total = total.Add(it.LineTotal())
		}
	}
	return total
}

// AllTotal suma de todas las líneas.
func (e *Engine) AllTotal() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()
	total := decimal.Zero
	for _, it := range e.items {
		total = total.Add(it.LineTotal())
	}
	return total
}

// ItemCount suma de cantidades.
func (e *Engine) ItemCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, it := range e.items {
		n += it.Quantity
	}
	return n
}

func removeLine(items []entity.CartItem, productID string) []entity.CartItem {
	out := items[:0]
	for _, it := range items {
		if it.ProductID != productID {
			out = append(out, it)
		}
	}
	return out
}
