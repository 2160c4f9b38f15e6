package receipt

import (
	"context"

	"github.com/jhoicas/Ferreteria-api/internal/domain/entity"
)

// Party datos del cliente impresos en el comprobante.
type Party struct {
	Name  string
	TaxID string
	Email string
	Phone string
}

// ReceiptPDFGenerator puerto de salida para la representación impresa de cotizaciones y ventas.
type ReceiptPDFGenerator interface {
	GenerateQuotePDF(ctx context.Context, quote *entity.Quote, customer Party) ([]byte, error)
	GenerateSalePDF(ctx context.Context, sale *entity.PosSale, customer Party) ([]byte, error)
}

// QuoteReader lectura de cotizaciones.
type QuoteReader interface {
	GetByID(ctx context.Context, id string) (*entity.Quote, error)
}

// SaleReader lectura de ventas POS.
type SaleReader interface {
	GetByID(ctx context.Context, id string) (*entity.PosSale, error)
}

// IdentityReader identidades registradas.
type IdentityReader interface {
	GetByID(ctx context.Context, id string) (*entity.Identity, error)
}

// PosCustomerReader clientes de caja.
type PosCustomerReader interface {
	GetCustomer(ctx context.Context, id string) (*entity.PosCustomer, error)
}
