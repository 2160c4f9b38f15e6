package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ferreteria-api/internal/application/receipt"
	"github.com/jhoicas/Ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/Ferreteria-api/internal/infrastructure/pdf"
)

func items() []entity.LineItem {
	return []entity.LineItem{
		{ProductID: "cemento", Name: "Cemento gris 50kg", Quantity: 2, UnitPrice: decimal.NewFromInt(500), Tier: entity.Tier1},
	}
}

func TestGenerateSalePDF_DevuelvePDF(t *testing.T) {
	g := pdf.NewMarotoReceiptGenerator("Ferretería El Tornillo")
	sale := &entity.PosSale{
		ID: "0d6f7c1e-1111-2222-3333-444455556666", Date: time.Now(), Items: items(),
		Subtotal: decimal.NewFromInt(1000), Tax: decimal.NewFromInt(160), Total: decimal.NewFromInt(1160),
		PaymentMethod: entity.PaymentCash, Status: entity.SaleStatusCompleted,
	}

	out, err := g.GenerateSalePDF(context.Background(), sale, receipt.Party{Name: "Público en general"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateQuotePDF_DevuelvePDF(t *testing.T) {
	g := pdf.NewMarotoReceiptGenerator("Ferretería El Tornillo")
	q := &entity.Quote{ID: "q-1", CustomerID: "c1", Date: time.Now(), Status: entity.QuoteStatusDraft, Items: items(), Total: decimal.NewFromInt(1000)}

	out, err := g.GenerateQuotePDF(context.Background(), q, receipt.Party{Name: "Constructora Sur", TaxID: "CSU010101AA1"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$1,160.00", pdf.FormatMoney(decimal.NewFromInt(1160)))
	assert.Equal(t, "$0.50", pdf.FormatMoney(decimal.RequireFromString("0.5")))
}
