package metrics

import (
	"time"

	"github.com/rs/zerolog"
)

// Recorder traduz eventos de lote em métricas. Falhas de envio são apenas
// logadas: métricas nunca interrompem uma operação administrativa.
type Recorder struct {
	provider Provider
	logger   zerolog.Logger
}

// NewRecorder cria um Recorder. provider nil equivale a não enviar nada.
func NewRecorder(provider Provider, logger zerolog.Logger) *Recorder {
	return &Recorder{provider: provider, logger: logger}
}

// Item registra o resultado de um item.
func (r *Recorder) Item(operation string, ok bool) {
	if r == nil || r.provider == nil {
		return
	}
	status := StatusOK
	if !ok {
		status = StatusError
	}
	tags := []string{"operation:" + operation, "status:" + status}
	if err := r.provider.Count(ItemsMetric, 1, tags); err != nil {
		r.logger.Warn().Err(err).Str("metric", ItemsMetric).Msg("falha ao enviar métrica")
	}
}

// Batch registra a duração e o total de falhas de um lote concluído.
func (r *Recorder) Batch(operation string, elapsed time.Duration, failed int) {
	if r == nil || r.provider == nil {
		return
	}
	tags := []string{"operation:" + operation}
	if err := r.provider.Histogram(DurationMetric, float64(elapsed.Milliseconds()), tags); err != nil {
		r.logger.Warn().Err(err).Str("metric", DurationMetric).Msg("falha ao enviar métrica")
	}
	if err := r.provider.Gauge(FailedMetric, float64(failed), tags); err != nil {
		r.logger.Warn().Err(err).Str("metric", FailedMetric).Msg("falha ao enviar métrica")
	}
}
