package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ReservationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_reservations_total",
			Help: "Total slot reservation attempts by outcome",
		},
		[]string{"outcome"},
	)

	GateRedirects = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "access_gate_redirects_total",
			Help: "Access gate redirects by target page",
		},
		[]string{"target"},
	)
)

// Resultados de reserva.
const (
	OutcomeCreated  = "created"
	OutcomeConflict = "conflict"
	OutcomeInvalid  = "invalid_slot"
)

// Init registers metrics with Prometheus
func Init() {
	prometheus.MustRegister(ReservationsTotal)
	prometheus.MustRegister(GateRedirects)
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
