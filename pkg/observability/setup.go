package observability

import (
	"fmt"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/raywall/book-library-toolkit/pkg/config"
	"github.com/raywall/book-library-toolkit/pkg/metrics"
	"github.com/rs/zerolog"
)

// Provider é um metrics.Provider que precisa ser encerrado ao fim do comando.
type Provider interface {
	metrics.Provider
	Close() error
}

// NoopProvider descarta todas as métricas.
type NoopProvider struct{}

func (n *NoopProvider) Count(name string, value float64, tags []string) error     { return nil }
func (n *NoopProvider) Gauge(name string, value float64, tags []string) error     { return nil }
func (n *NoopProvider) Histogram(name string, value float64, tags []string) error { return nil }
func (n *NoopProvider) Close() error                                              { return nil }

// LogProvider escreve cada métrica como um evento debug do zerolog.
type LogProvider struct {
	logger zerolog.Logger
}

// NewLogProvider cria um LogProvider.
func NewLogProvider(logger zerolog.Logger) *LogProvider {
	return &LogProvider{logger: logger}
}

func (l *LogProvider) emit(kind, name string, value float64, tags []string) error {
	l.logger.Debug().
		Str("metric", name).
		Str("kind", kind).
		Float64("value", value).
		Strs("tags", tags).
		Msg("metric")
	return nil
}

func (l *LogProvider) Count(name string, value float64, tags []string) error {
	return l.emit("count", name, value, tags)
}

func (l *LogProvider) Gauge(name string, value float64, tags []string) error {
	return l.emit("gauge", name, value, tags)
}

func (l *LogProvider) Histogram(name string, value float64, tags []string) error {
	return l.emit("histogram", name, value, tags)
}

func (l *LogProvider) Close() error { return nil }

// DatadogProvider adapta a lib oficial do Datadog para nossa interface.
type DatadogProvider struct {
	client statsd.ClientInterface
}

// NewDatadogProvider envolve um cliente StatsD já criado.
func NewDatadogProvider(client statsd.ClientInterface) *DatadogProvider {
	return &DatadogProvider{client: client}
}

func (d *DatadogProvider) Count(name string, value float64, tags []string) error {
	return d.client.Count(name, int64(value), tags, 1)
}

func (d *DatadogProvider) Gauge(name string, value float64, tags []string) error {
	return d.client.Gauge(name, value, tags, 1)
}

func (d *DatadogProvider) Histogram(name string, value float64, tags []string) error {
	return d.client.Histogram(name, value, tags, 1)
}

// Close descarrega o buffer do StatsD; o processo termina logo após o lote.
func (d *DatadogProvider) Close() error {
	return d.client.Close()
}

// SetupMetrics escolhe o provedor: Datadog quando habilitado, log quando
// metrics.log, e Noop nos demais casos.
func SetupMetrics(cfg config.MetricsConf, logger zerolog.Logger) (Provider, error) {
	if !cfg.Datadog.Enabled {
		if cfg.Log {
			return NewLogProvider(logger), nil
		}
		return &NoopProvider{}, nil
	}

	opts := []statsd.Option{
		statsd.WithNamespace(cfg.Datadog.Namespace),
	}
	if len(cfg.Datadog.Tags) > 0 {
		opts = append(opts, statsd.WithTags(cfg.Datadog.Tags))
	}

	client, err := statsd.New(cfg.Datadog.Addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar no datadog statsd: %w", err)
	}

	logger.Debug().Str("addr", cfg.Datadog.Addr).Str("namespace", cfg.Datadog.Namespace).Msg("métricas via datadog")
	return NewDatadogProvider(client), nil
}
