package receipt

import (
	"context"
	"fmt"
	"strings"
)

const publicCustomer = "Público en general"

// PDFUseCase arma los comprobantes imprimibles de cotizaciones y ventas.
type PDFUseCase struct {
	quotes     QuoteReader
	sales      SaleReader
	identities IdentityReader
	customers  PosCustomerReader
	generator  ReceiptPDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(quotes QuoteReader, sales SaleReader, identities IdentityReader, customers PosCustomerReader, generator ReceiptPDFGenerator) *PDFUseCase {
	return &PDFUseCase{
		quotes:     quotes,
		sales:      sales,
		identities: identities,
		customers:  customers,
		generator:  generator,
	}
}

// QuotePDF devuelve el PDF de la cotización y su nombre de archivo.
func (uc *PDFUseCase) QuotePDF(ctx context.Context, id string) (pdfBytes []byte, filename string, err error) {
	q, err := uc.quotes.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerateQuotePDF(ctx, q, uc.party(ctx, q.CustomerID))
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("cotizacion_%s.pdf", shortID(q.ID)), nil
}

// SalePDF devuelve el ticket de la venta y su nombre de archivo.
func (uc *PDFUseCase) SalePDF(ctx context.Context, id string) (pdfBytes []byte, filename string, err error) {
	s, err := uc.sales.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerateSalePDF(ctx, s, uc.party(ctx, s.CustomerRef))
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("ticket_%s.pdf", shortID(s.ID)), nil
}

// party busca la referencia primero entre los clientes de caja y luego entre las identidades.
func (uc *PDFUseCase) party(ctx context.Context, ref string) Party {
	if ref == "" {
		return Party{Name: publicCustomer}
	}
	if c, err := uc.customers.GetCustomer(ctx, ref); err == nil {
		return Party{Name: c.Name, TaxID: c.TaxID, Email: c.Email, Phone: c.Phone}
	}
	if ident, err := uc.identities.GetByID(ctx, ref); err == nil {
		return Party{Name: ident.Name, Email: ident.Email}
	}
	return Party{Name: ref}
}

func shortID(id string) string {
	id = strings.ReplaceAll(id, "-", "")
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
