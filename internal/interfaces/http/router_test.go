package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ferreteria-api/internal/application/analytics"
	"github.com/jhoicas/Ferreteria-api/internal/application/cart"
	"github.com/jhoicas/Ferreteria-api/internal/application/catalog"
	"github.com/jhoicas/Ferreteria-api/internal/application/commission"
	"github.com/jhoicas/Ferreteria-api/internal/application/dto"
	"github.com/jhoicas/Ferreteria-api/internal/application/identity"
	"github.com/jhoicas/Ferreteria-api/internal/application/pos"
	"github.com/jhoicas/Ferreteria-api/internal/application/quote"
	"github.com/jhoicas/Ferreteria-api/internal/application/receipt"
	"github.com/jhoicas/Ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/Ferreteria-api/internal/infrastructure/memory"
	"github.com/jhoicas/Ferreteria-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Ferreteria-api/internal/infrastructure/persistence"
	apphttp "github.com/jhoicas/Ferreteria-api/internal/interfaces/http"
)

const (
	adminID  = "admin-1"
	sellerID = "vend-1"
	clientID = "cli-1"
)

// newAPI arma la API completa sobre un almacén en memoria con catálogo e identidades de prueba.
func newAPI(t *testing.T) *fiber.App {
	t.Helper()
	ctx := context.Background()
	gw := persistence.NewGateway(memory.NewDocumentStore(), nil)

	cat := catalog.NewUseCase(gw)
	for _, p := range []entity.Product{
		{ID: "cemento", Name: "Cemento", BasePrice: decimal.NewFromInt(500), Stock: 100, Category: "obra", Tiers: &entity.TierPrices{
			Tier1: decimal.NewFromInt(500), Tier2: decimal.NewFromInt(450), Tier3: decimal.NewFromInt(400),
		}},
		{ID: "martillo", Name: "Martillo", BasePrice: decimal.NewFromInt(100), Stock: 10, Category: "herramienta"},
		{ID: "serrucho", Name: "Serrucho", BasePrice: decimal.NewFromInt(80), Status: entity.ProductStatusInactive},
	} {
		_, err := cat.Upsert(ctx, p)
		require.NoError(t, err)
	}

	dir := identity.NewDirectory(gw)
	for _, ident := range []entity.Identity{
		{ID: adminID, Name: "Admin", Email: "admin@ferre.mx", Role: entity.RoleAdmin},
		{ID: sellerID, Name: "Ana", Email: "ana@ferre.mx", Role: entity.RoleSalesperson},
		{ID: clientID, Name: "Carla", Email: "carla@mail.mx", Role: entity.RoleSpecialClient},
	} {
		_, err := dir.Register(ctx, ident)
		require.NoError(t, err)
	}

	sales := pos.NewLedger(gw, cat)
	customers := pos.NewCustomers(gw)
	quotes := quote.NewLedger(gw, cat)
	receipts := receipt.NewPDFUseCase(quotes, sales, dir, customers, pdf.NewMarotoReceiptGenerator("Ferretería de prueba"))

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Catalog:    cat,
		Identities: dir,
		Carts: func(ctx context.Context, ident *entity.Identity, guestID string) *cart.Engine {
			return cart.NewEngine(ctx, gw, cat, nil, ident, guestID)
		},
		Quotes:      quotes,
		Sales:       sales,
		Customers:   customers,
		Register:    pos.NewCashRegister(gw, sales),
		Commissions: commission.NewEngine(gw, sales, cat, dir),
		Receipts:    receipts,
		Dashboard:   analytics.NewDashboardUseCase(sales, cat),
		JWTSecret:   testJWTSecret,
	})
	return app
}

type call struct {
	method string
	path   string
	body   any
	auth   string
	guest  string
}

func do(t *testing.T, app *fiber.App, c call) (*http.Response, []byte) {
	t.Helper()
	var body io.Reader
	if c.body != nil {
		raw, err := json.Marshal(c.body)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(c.method, c.path, body)
	if c.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.auth != "" {
		req.Header.Set("Authorization", c.auth)
	}
	if c.guest != "" {
		req.Header.Set(apphttp.HeaderGuestID, c.guest)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func TestCatalog_PrecioSegunRol(t *testing.T) {
	app := newAPI(t)

	resp, raw := do(t, app, call{method: http.MethodGet, path: "/api/catalog?category=obra"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items := decode[[]dto.CatalogItemResponse](t, raw)
	require.Len(t, items, 1)
	assert.True(t, decimal.NewFromInt(500).Equal(items[0].UnitPrice))

	_, raw = do(t, app, call{method: http.MethodGet, path: "/api/catalog/cemento", auth: tokenFor(t, sellerID, "salesperson")})
	item := decode[dto.CatalogItemResponse](t, raw)
	assert.True(t, decimal.NewFromInt(400).Equal(item.UnitPrice))
	assert.Equal(t, entity.Tier3, item.Tier)

	resp, _ = do(t, app, call{method: http.MethodGet, path: "/api/catalog/serrucho"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	_, raw = do(t, app, call{method: http.MethodGet, path: "/api/catalog"})
	assert.Len(t, decode[[]dto.CatalogItemResponse](t, raw), 2)
}

func TestCatalog_SoloAdminEdita(t *testing.T) {
	app := newAPI(t)
	body := dto.UpsertProductRequest{Name: "Pala", BasePrice: decimal.NewFromInt(250), Stock: 4}

	resp, _ := do(t, app, call{method: http.MethodPost, path: "/api/catalog", body: body, auth: tokenFor(t, clientID, "specialClient")})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = do(t, app, call{method: http.MethodPost, path: "/api/catalog", body: body, auth: tokenFor(t, adminID, "admin")})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, raw := do(t, app, call{method: http.MethodPost, path: "/api/catalog", body: dto.UpsertProductRequest{Stock: -1}, auth: tokenFor(t, adminID, "admin")})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errBody := decode[dto.ErrorResponse](t, raw)
	assert.Equal(t, "VALIDATION", errBody.Code)
	assert.Contains(t, errBody.Details, "name")
	assert.Contains(t, errBody.Details, "stock")
}

func TestCart_InvitadoYLoginSinFusion(t *testing.T) {
	app := newAPI(t)
	const guest = "3f2a9c4e-7b1d-4e8a-9f00-123456789abc"

	resp, raw := do(t, app, call{method: http.MethodPost, path: "/api/cart/items", body: dto.AddCartItemRequest{ProductID: "martillo", Quantity: 3}, guest: guest})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	guestCart := decode[dto.CartResponse](t, raw)
	assert.Equal(t, "cart:guest:"+guest, guestCart.Namespace)
	assert.Equal(t, 3, guestCart.ItemCount)

	_, raw = do(t, app, call{method: http.MethodGet, path: "/api/cart", auth: tokenFor(t, clientID, "specialClient"), guest: guest})
	userCart := decode[dto.CartResponse](t, raw)
	assert.Equal(t, "cart:"+clientID, userCart.Namespace)
	assert.Empty(t, userCart.Items)

	_, raw = do(t, app, call{method: http.MethodGet, path: "/api/cart", guest: guest})
	assert.Len(t, decode[dto.CartResponse](t, raw).Items, 1)
}

func TestCart_InvitadosSinIDNoCompartenCarrito(t *testing.T) {
	app := newAPI(t)

	resp, raw := do(t, app, call{method: http.MethodPost, path: "/api/cart/items", body: dto.AddCartItemRequest{ProductID: "martillo", Quantity: 2}})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	first := resp.Header.Get(apphttp.HeaderGuestID)
	require.NotEmpty(t, first)
	firstCart := decode[dto.CartResponse](t, raw)
	assert.Equal(t, "cart:guest:"+first, firstCart.Namespace)
	assert.Equal(t, 2, firstCart.ItemCount)

	resp, raw = do(t, app, call{method: http.MethodGet, path: "/api/cart"})
	second := resp.Header.Get(apphttp.HeaderGuestID)
	assert.NotEmpty(t, second)
	assert.NotEqual(t, first, second)
	assert.Empty(t, decode[dto.CartResponse](t, raw).Items)

	resp, raw = do(t, app, call{method: http.MethodGet, path: "/api/cart", guest: first})
	assert.Equal(t, first, resp.Header.Get(apphttp.HeaderGuestID))
	assert.Equal(t, 2, decode[dto.CartResponse](t, raw).ItemCount)
}

func TestCart_TotalesYSeleccion(t *testing.T) {
	app := newAPI(t)
	auth := tokenFor(t, clientID, "specialClient")

	do(t, app, call{method: http.MethodPost, path: "/api/cart/items", body: dto.AddCartItemRequest{ProductID: "cemento", Quantity: 2}, auth: auth})
	do(t, app, call{method: http.MethodPost, path: "/api/cart/items", body: dto.AddCartItemRequest{ProductID: "martillo"}, auth: auth})
	_, raw := do(t, app, call{method: http.MethodPost, path: "/api/cart/items/cemento/toggle", auth: auth})
	c := decode[dto.CartResponse](t, raw)
	assert.True(t, decimal.NewFromInt(900).Equal(c.SelectedTotal), "selected %s", c.SelectedTotal)
	assert.True(t, decimal.NewFromInt(1000).Equal(c.AllTotal), "all %s", c.AllTotal)

	_, raw = do(t, app, call{method: http.MethodPut, path: "/api/cart/items/martillo", body: dto.SetCartQuantityRequest{Quantity: 0}, auth: auth})
	assert.Len(t, decode[dto.CartResponse](t, raw).Items, 1)

	resp, _ := do(t, app, call{method: http.MethodPost, path: "/api/cart/items", body: dto.AddCartItemRequest{ProductID: "serrucho"}, auth: auth})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, _ = do(t, app, call{method: http.MethodGet, path: "/api/cart", guest: "no valido!"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestQuotes_DesdeCarritoYTransiciones(t *testing.T) {
	app := newAPI(t)
	client := tokenFor(t, clientID, "specialClient")
	admin := tokenFor(t, adminID, "admin")

	resp, _ := do(t, app, call{method: http.MethodPost, path: "/api/quotes", auth: client})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "sin líneas seleccionadas")

	do(t, app, call{method: http.MethodPost, path: "/api/cart/items", body: dto.AddCartItemRequest{ProductID: "cemento", Quantity: 2}, auth: client})
	do(t, app, call{method: http.MethodPost, path: "/api/cart/items/cemento/toggle", auth: client})

	resp, raw := do(t, app, call{method: http.MethodPost, path: "/api/quotes", auth: client})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	q := decode[entity.Quote](t, raw)
	assert.Equal(t, entity.QuoteStatusDraft, q.Status)
	assert.True(t, decimal.NewFromInt(900).Equal(q.Total))

	_, raw = do(t, app, call{method: http.MethodGet, path: "/api/cart", auth: client})
	assert.Empty(t, decode[dto.CartResponse](t, raw).Items, "las líneas cotizadas salen del carrito")

	resp, _ = do(t, app, call{method: http.MethodPatch, path: "/api/quotes/" + q.ID + "/status", body: dto.TransitionQuoteRequest{Status: "Sent"}, auth: client})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	_, raw = do(t, app, call{method: http.MethodPatch, path: "/api/quotes/" + q.ID + "/status", body: dto.TransitionQuoteRequest{Status: "Paid"}, auth: admin})
	assert.Equal(t, entity.QuoteStatusDraft, decode[entity.Quote](t, raw).Status)

	resp, _ = do(t, app, call{method: http.MethodPatch, path: "/api/quotes/" + q.ID + "/status", body: dto.TransitionQuoteRequest{Status: "Archived"}, auth: admin})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_, raw = do(t, app, call{method: http.MethodGet, path: "/api/quotes", auth: client})
	assert.Len(t, decode[[]entity.Quote](t, raw), 1)

	resp, _ = do(t, app, call{method: http.MethodGet, path: "/api/quotes/" + q.ID, auth: tokenFor(t, "otro", "client")})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, raw = do(t, app, call{method: http.MethodGet, path: "/api/quotes/" + q.ID + "/pdf", auth: client})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestPOS_VentaYComision(t *testing.T) {
	app := newAPI(t)
	seller := tokenFor(t, sellerID, "salesperson")
	admin := tokenFor(t, adminID, "admin")

	resp, _ := do(t, app, call{method: http.MethodPost, path: "/api/pos/sales", auth: tokenFor(t, clientID, "specialClient"), body: dto.RecordSaleRequest{}})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, raw := do(t, app, call{method: http.MethodPost, path: "/api/pos/sales", auth: seller, body: dto.RecordSaleRequest{
		PaymentMethod: "Cash",
		Items:         []dto.SaleLineRequest{{ProductID: "cemento", Quantity: 2}},
	}})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	sale := decode[entity.PosSale](t, raw)
	assert.True(t, decimal.NewFromInt(1000).Equal(sale.Subtotal))
	assert.True(t, decimal.NewFromInt(160).Equal(sale.Tax))
	assert.True(t, decimal.NewFromInt(1160).Equal(sale.Total))
	assert.Equal(t, sellerID, sale.SoldBy)

	resp, _ = do(t, app, call{method: http.MethodPost, path: "/api/pos/sales", auth: seller, body: dto.RecordSaleRequest{
		PaymentMethod: "Bitcoin",
		Items:         []dto.SaleLineRequest{{ProductID: "cemento", Quantity: 1}},
	}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_, raw = do(t, app, call{method: http.MethodGet, path: "/api/commissions/" + sellerID, auth: seller})
	pending := decode[entity.CommissionSummary](t, raw)
	assert.True(t, decimal.NewFromInt(50).Equal(pending.Pending), "pendiente %s", pending.Pending)

	resp, _ = do(t, app, call{method: http.MethodPost, path: "/api/commissions/" + sellerID + "/settle", auth: seller})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	_, raw = do(t, app, call{method: http.MethodPost, path: "/api/commissions/" + sellerID + "/settle", auth: admin})
	assert.True(t, decimal.NewFromInt(50).Equal(decode[dto.SettleCommissionResponse](t, raw).Amount))

	_, raw = do(t, app, call{method: http.MethodPost, path: "/api/commissions/" + sellerID + "/settle", auth: admin})
	assert.True(t, decode[dto.SettleCommissionResponse](t, raw).Amount.IsZero())

	resp, raw = do(t, app, call{method: http.MethodGet, path: "/api/pos/sales/" + sale.ID + "/pdf", auth: seller})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	resp, _ = do(t, app, call{method: http.MethodGet, path: "/api/dashboard/summary", auth: seller})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	_, raw = do(t, app, call{method: http.MethodGet, path: "/api/dashboard/summary", auth: admin})
	summary := decode[dto.DashboardSummaryDTO](t, raw)
	assert.Equal(t, 1, summary.TodayCount)
	assert.True(t, decimal.NewFromInt(200).Equal(summary.TodayMargin), "margen %s", summary.TodayMargin)
}

func TestPOS_ClientesYCorte(t *testing.T) {
	app := newAPI(t)
	seller := tokenFor(t, sellerID, "salesperson")

	resp, raw := do(t, app, call{method: http.MethodPost, path: "/api/pos/customers", auth: seller, body: dto.CreatePosCustomerRequest{Name: "Constructora Sur", Role: "specialClient"}})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	customer := decode[entity.PosCustomer](t, raw)

	_, raw = do(t, app, call{method: http.MethodPost, path: "/api/pos/sales", auth: seller, body: dto.RecordSaleRequest{
		CustomerRef:   customer.ID,
		PaymentMethod: "Card",
		Items:         []dto.SaleLineRequest{{ProductID: "cemento", Quantity: 1}},
	}})
	sale := decode[entity.PosSale](t, raw)
	assert.True(t, decimal.NewFromInt(450).Equal(sale.Subtotal), "el cliente de caja paga tier2")

	resp, raw = do(t, app, call{method: http.MethodPost, path: "/api/pos/closings", auth: seller, body: dto.CloseRegisterRequest{CountedCash: decimal.Zero}})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	closing := decode[entity.CashClosing](t, raw)
	assert.Equal(t, 1, closing.SalesCount)
	assert.Equal(t, sellerID, closing.ClosedBy)

	_, raw = do(t, app, call{method: http.MethodGet, path: "/api/pos/customers?q=sur", auth: seller})
	assert.Len(t, decode[[]entity.PosCustomer](t, raw), 1)
}
