package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	LedgerMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_mutations_total",
			Help: "Committed ledger mutations",
		},
		[]string{"kind", "op"}, // income|expense x add|update|delete
	)

	TokensSwept = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "refresh_tokens_swept_total",
			Help: "Expired refresh tokens removed by the sweeper",
		},
	)

	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)
)

// Handler serves /metrics.
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(LedgerMutations)
	prometheus.MustRegister(TokensSwept)
	prometheus.MustRegister(WorkerQueueDepth)
}
