// Package metrics registra los contadores Prometheus del core de ventas.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ferreteria"

var (
	// GatewayFallbacks cuenta las lecturas/escrituras del gateway que degradaron al valor por defecto.
	GatewayFallbacks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "persistence",
		Name:      "fallbacks_total",
		Help:      "Operaciones del gateway de persistencia que degradaron a la colección por defecto.",
	}, []string{"key", "op"})

	// SalesRecorded cuenta ventas POS registradas por método de pago.
	SalesRecorded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "pos",
		Name:      "sales_recorded_total",
		Help:      "Ventas POS registradas.",
	}, []string{"payment_method"})

	// QuotesCreated cuenta cotizaciones creadas.
	QuotesCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "quotes",
		Name:      "created_total",
		Help:      "Cotizaciones creadas.",
	})

	// CommissionsSettled cuenta las liquidaciones de comisión que movieron al menos una venta.
	CommissionsSettled = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "commissions",
		Name:      "settlements_total",
		Help:      "Liquidaciones de comisión con monto mayor a cero.",
	})
)

// Register registra los colectores en el registry indicado (prometheus.DefaultRegisterer si es nil).
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range []prometheus.Collector{GatewayFallbacks, SalesRecorded, QuotesCreated, CommissionsSettled} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}
