package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamRequests cuenta las llamadas al backend REST por endpoint y resultado
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "restaurante_upstream_requests_total",
		Help: "Total de llamadas al backend por endpoint y estado",
	}, []string{"endpoint", "status"}) // status=ok/error/empty

	// UpstreamDuration mide la latencia de cada llamada al backend
	UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "restaurante_upstream_duration_seconds",
		Help:    "Latencia de las llamadas al backend",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})

	// LabelLookupFailures cuenta fallos aislados al resolver nombres de cliente
	// para etiquetas de candidatos (se sustituyen por placeholder, no se propagan)
	LabelLookupFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "restaurante_label_lookup_failures_total",
		Help: "Fallos al resolver el nombre de cliente de una venta candidata",
	})

	// TicketExports cuenta exportaciones de ticket PDF por resultado
	TicketExports = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "restaurante_ticket_exports_total",
		Help: "Exportaciones de ticket PDF por resultado",
	}, []string{"status"})
)
