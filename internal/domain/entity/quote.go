package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// QuoteStatus estado de una cotización. Paid y Cancelled son terminales.
type QuoteStatus string

const (
	QuoteStatusDraft     QuoteStatus = "Draft"
	QuoteStatusSent      QuoteStatus = "Sent"
	QuoteStatusPaid      QuoteStatus = "Paid"
	QuoteStatusCancelled QuoteStatus = "Cancelled"
)

// IsValid indica si el estado es conocido.
func (s QuoteStatus) IsValid() bool {
	switch s {
	case QuoteStatusDraft, QuoteStatusSent, QuoteStatusPaid, QuoteStatusCancelled:
		return true
	}
	return false
}

// IsTerminal indica si el estado ya no admite transiciones.
func (s QuoteStatus) IsTerminal() bool {
	return s == QuoteStatusPaid || s == QuoteStatusCancelled
}

// CanTransitionTo Draft→Sent→Paid, Draft→Cancelled, Sent→Cancelled.
func (s QuoteStatus) CanTransitionTo(next QuoteStatus) bool {
	switch s {
	case QuoteStatusDraft:
		return next == QuoteStatusSent || next == QuoteStatusCancelled
	case QuoteStatusSent:
		return next == QuoteStatusPaid || next == QuoteStatusCancelled
	case QuoteStatusPaid, QuoteStatusCancelled:
		return false
	}
	return false
}

// ParseQuoteStatus convierte texto libre en QuoteStatus.
func ParseQuoteStatus(value string) (QuoteStatus, error) {
	s := QuoteStatus(value)
	if !s.IsValid() {
		return "", fmt.Errorf("estado de cotización inválido %q", value)
	}
	return s, nil
}

// Quote cotización a cliente con precios congelados. Total se fija al crearla.
type Quote struct {
	ID            string          `json:"id"`
	CustomerID    string          `json:"customerId"`
	SalespersonID string          `json:"salespersonId,omitempty"`
	Date          time.Time       `json:"date"`
	Status        QuoteStatus     `json:"status"`
	Items         []LineItem      `json:"items"`
	Total         decimal.Decimal `json:"total"`
}
