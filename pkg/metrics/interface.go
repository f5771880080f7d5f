package metrics

// Provider é o destino das métricas dos lotes (Datadog, log ou Noop, ver
// pkg/observability).
type Provider interface {
	Count(name string, value float64, tags []string) error
	Gauge(name string, value float64, tags []string) error
	Histogram(name string, value float64, tags []string) error
}

// Nomes das métricas emitidas pelas operações em lote.
const (
	ItemsMetric    = "items"
	DurationMetric = "batch.duration_ms"
	FailedMetric   = "batch.failed"
)

// Status possíveis de um item processado.
const (
	StatusOK    = "ok"
	StatusError = "error"
)
