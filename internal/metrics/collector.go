package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// =============================================================================
// 📊 Collector
// =============================================================================

// Collector records counting, persistence and export metrics.
type Collector struct {
	registry *prometheus.Registry

	documentsTotal *prometheus.CounterVec
	tokensTotal    *prometheus.CounterVec
	batchesTotal   *prometheus.CounterVec
	batchDuration  *prometheus.HistogramVec
	vocabularySize *prometheus.GaugeVec

	persistDuration *prometheus.HistogramVec
	exportsTotal    *prometheus.CounterVec

	logger *zap.Logger
}

// NewCollector creates a collector with its own registry.
func NewCollector(namespace string, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}

	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	c := &Collector{
		registry: reg,
		logger:   logger.With(zap.String("component", "metrics")),
	}

	c.documentsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_total",
			Help:      "Total number of documents processed",
		},
		[]string{"tokenizer", "status"}, // status: read, skipped
	)

	c.tokensTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_total",
			Help:      "Total number of tokens counted",
		},
		[]string{"tokenizer"},
	)

	c.batchesTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches_total",
			Help:      "Total number of document batches counted",
		},
		[]string{"tokenizer"},
	)

	c.batchDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_duration_seconds",
			Help:      "Time to read, tokenize and count one batch",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"tokenizer"},
	)

	c.vocabularySize = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "vocabulary_size",
			Help:      "Number of distinct tokens after partitioning",
		},
		[]string{"tokenizer", "part"}, // part: kept, removed
	)

	c.persistDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "persist_duration_seconds",
			Help:      "Vocabulary save duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"format", "status"},
	)

	c.exportsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Total number of vocabulary exports to sinks",
		},
		[]string{"sink", "status"},
	)

	c.logger.Debug("metrics collector initialized", zap.String("namespace", namespace))

	return c
}

// Registry returns the registry holding the collector's metrics.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// =============================================================================
// 🔢 Counting
// =============================================================================

// RecordDocument records one document, read or skipped.
func (c *Collector) RecordDocument(tokenizer string, skipped bool) {
	if c == nil {
		return
	}
	status := "read"
	if skipped {
		status = "skipped"
	}
	c.documentsTotal.WithLabelValues(tokenizer, status).Inc()
}

// RecordBatch records a counted batch.
func (c *Collector) RecordBatch(tokenizer string, tokens int, duration time.Duration) {
	if c == nil {
		return
	}
	c.batchesTotal.WithLabelValues(tokenizer).Inc()
	c.tokensTotal.WithLabelValues(tokenizer).Add(float64(tokens))
	c.batchDuration.WithLabelValues(tokenizer).Observe(duration.Seconds())
}

// SetVocabularySize records the sizes of the kept and removed halves.
func (c *Collector) SetVocabularySize(tokenizer string, kept, removed int) {
	if c == nil {
		return
	}
	c.vocabularySize.WithLabelValues(tokenizer, "kept").Set(float64(kept))
	c.vocabularySize.WithLabelValues(tokenizer, "removed").Set(float64(removed))
}

// =============================================================================
// 💾 Persistence
// =============================================================================

// RecordPersist records a Save call.
func (c *Collector) RecordPersist(format string, duration time.Duration, err error) {
	if c == nil {
		return
	}
	c.persistDuration.WithLabelValues(format, status(err)).Observe(duration.Seconds())
}

// RecordExport records a sink export.
func (c *Collector) RecordExport(sink string, err error) {
	if c == nil {
		return
	}
	c.exportsTotal.WithLabelValues(sink, status(err)).Inc()
}

// WriteTextfile writes all metrics to path in the Prometheus text format.
func (c *Collector) WriteTextfile(path string) error {
	if c == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return err
	}
	c.logger.Info("metrics written", zap.String("path", path))
	return nil
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
