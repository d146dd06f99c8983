package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PedidosCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pedidos_created_total",
		Help: "Total number of pedidos created via checkout",
	})

	PedidosFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pedidos_failed_total",
		Help: "Total number of failed pedido submissions",
	}, []string{"reason"})

	PedidoStatusUpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pedido_status_updates_total",
		Help: "Total number of pedido status transitions",
	}, []string{"status"})

	CartOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_operations_total",
		Help: "Total number of cart state transitions",
	}, []string{"action"})

	CacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "query_cache_hits_total",
		Help: "Total number of query cache hits",
	}, []string{"table"})

	CacheMissesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "query_cache_misses_total",
		Help: "Total number of query cache misses",
	}, []string{"table"})

	CacheInvalidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "query_cache_invalidations_total",
		Help: "Total number of query cache invalidations",
	}, []string{"table"})

	ChangeEventsPublishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "table_change_events_published_total",
		Help: "Total number of table change events published",
	}, []string{"table", "operation"})

	ChangeEventsConsumedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "table_change_events_consumed_total",
		Help: "Total number of table change events consumed",
	}, []string{"table", "operation"})

	ConnectivityProbeFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "connectivity_probe_failures_total",
		Help: "Total number of failed backend connectivity probes",
	})

	CEPLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cep_lookups_total",
		Help: "Total number of ViaCEP postal code lookups",
	}, []string{"outcome"})

	CheckoutLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "checkout_latency_seconds",
		Help:    "Latency of checkout submissions",
		Buckets: prometheus.DefBuckets,
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
