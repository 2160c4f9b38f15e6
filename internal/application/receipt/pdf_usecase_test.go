package receipt_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ferreteria-api/internal/application/catalog"
	"github.com/jhoicas/Ferreteria-api/internal/application/identity"
	"github.com/jhoicas/Ferreteria-api/internal/application/pos"
	"github.com/jhoicas/Ferreteria-api/internal/application/quote"
	"github.com/jhoicas/Ferreteria-api/internal/application/receipt"
	"github.com/jhoicas/Ferreteria-api/internal/domain"
	"github.com/jhoicas/Ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/Ferreteria-api/internal/infrastructure/memory"
	"github.com/jhoicas/Ferreteria-api/internal/infrastructure/persistence"
)

type fakeGenerator struct {
	party receipt.Party
	err   error
}

func (f *fakeGenerator) GenerateQuotePDF(_ context.Context, _ *entity.Quote, c receipt.Party) ([]byte, error) {
	f.party = c
	return []byte("%PDF-quote"), f.err
}

func (f *fakeGenerator) GenerateSalePDF(_ context.Context, _ *entity.PosSale, c receipt.Party) ([]byte, error) {
	f.party = c
	return []byte("%PDF-sale"), f.err
}

type fixture struct {
	uc        *receipt.PDFUseCase
	gen       *fakeGenerator
	quotes    *quote.Ledger
	sales     *pos.Ledger
	customers *pos.Customers
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	gw := persistence.NewGateway(memory.NewDocumentStore(), nil)
	cat := catalog.NewUseCase(gw)
	dir := identity.NewDirectory(gw)
	_, err := dir.Register(context.Background(), entity.Identity{ID: "u1", Name: "Carla Ruiz", Email: "carla@mail.mx", Role: entity.RoleClient})
	require.NoError(t, err)

	gen := &fakeGenerator{}
	quotes := quote.NewLedger(gw, cat)
	sales := pos.NewLedger(gw, cat)
	customers := pos.NewCustomers(gw)
	return fixture{
		uc:        receipt.NewPDFUseCase(quotes, sales, dir, customers, gen),
		gen:       gen,
		quotes:    quotes,
		sales:     sales,
		customers: customers,
	}
}

func TestQuotePDF_ClienteDesdeIdentidad(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	q, err := f.quotes.CreateQuote(ctx, "u1", []entity.CartItem{{ProductID: "x", Name: "Lija", Quantity: 1, UnitPrice: decimal.NewFromInt(10)}}, entity.RoleClient, "")
	require.NoError(t, err)

	out, name, err := f.uc.QuotePDF(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-quote", string(out))
	assert.Regexp(t, `^cotizacion_[0-9a-f]{8}\.pdf$`, name)
	assert.Equal(t, "Carla Ruiz", f.gen.party.Name)
}

func TestSalePDF_ClienteDeCajaYPublico(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c, err := f.customers.CreateCustomer(ctx, pos.CustomerInput{Name: "Constructora Sur", TaxID: "CSU010101AA1"})
	require.NoError(t, err)

	sale, err := f.sales.RecordSale(ctx, pos.RecordSaleInput{CustomerRef: c.ID, PaymentMethod: entity.PaymentCard})
	require.NoError(t, err)
	_, _, err = f.uc.SalePDF(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, "CSU010101AA1", f.gen.party.TaxID)

	anon, err := f.sales.RecordSale(ctx, pos.RecordSaleInput{PaymentMethod: entity.PaymentCash})
	require.NoError(t, err)
	_, name, err := f.uc.SalePDF(ctx, anon.ID)
	require.NoError(t, err)
	assert.Equal(t, "Público en general", f.gen.party.Name)
	assert.Regexp(t, `^ticket_`, name)
}

func TestPDF_NoEncontradoYFallaDelGenerador(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, _, err := f.uc.QuotePDF(ctx, "nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, _, err = f.uc.SalePDF(ctx, "nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	sale, err := f.sales.RecordSale(ctx, pos.RecordSaleInput{PaymentMethod: entity.PaymentCash})
	require.NoError(t, err)
	f.gen.err = errors.New("sin fuentes")
	_, _, err = f.uc.SalePDF(ctx, sale.ID)
	assert.Error(t, err)
}
