package summarizer

import (
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SummaryMetricsRecorder receives one observation per generated summary.
// Extractive calls it only for successful summaries.
type SummaryMetricsRecorder interface {
	// RecordLength takes the summary length in runes.
	RecordLength(length int)
	RecordSentences(selected, total int)
	RecordDuration(duration time.Duration)
}

// PrometheusSummaryMetrics exports summaries to the default registry.
type PrometheusSummaryMetrics struct {
	lengthHistogram    prometheus.Histogram
	selectedHistogram  prometheus.Histogram
	sourceHistogram    prometheus.Histogram
	compressionGauge   prometheus.Gauge
	durationHistogram  prometheus.Histogram
	summariesGenerated prometheus.Counter
}

var (
	defaultSummaryMetrics     *PrometheusSummaryMetrics
	defaultSummaryMetricsOnce sync.Once
)

// register adds c to the default registry, or returns the collector already
// registered under the same descriptor.
func register[C prometheus.Collector](c C) C {
	if err := prometheus.Register(c); err != nil {
		var dup prometheus.AlreadyRegisteredError
		if errors.As(err, &dup) {
			if existing, ok := dup.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

// NewPrometheusSummaryMetrics returns the process-wide recorder, creating it on first use.
func NewPrometheusSummaryMetrics() *PrometheusSummaryMetrics {
	defaultSummaryMetricsOnce.Do(func() {
		defaultSummaryMetrics = &PrometheusSummaryMetrics{
			lengthHistogram: register(prometheus.NewHistogram(prometheus.HistogramOpts{
				Name:    "note_summary_length_characters",
				Help:    "Distribution of summary lengths in characters (Unicode runes)",
				Buckets: []float64{50, 100, 200, 400, 800, 1200, 2000},
			})),
			selectedHistogram: register(prometheus.NewHistogram(prometheus.HistogramOpts{
				Name:    "note_summary_selected_sentences",
				Help:    "Number of sentences selected for a summary",
				Buckets: []float64{0, 1, 2, 3, 5, 7, 10},
			})),
			sourceHistogram: register(prometheus.NewHistogram(prometheus.HistogramOpts{
				Name:    "note_summary_source_sentences",
				Help:    "Number of sentences found in the summarized note",
				Buckets: []float64{0, 1, 3, 5, 10, 20, 50, 100},
			})),
			compressionGauge: register(prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "note_summary_compression_ratio",
				Help: "Selected sentences divided by source sentences for the last summary (0.0-1.0)",
			})),
			durationHistogram: register(prometheus.NewHistogram(prometheus.HistogramOpts{
				Name:    "note_summarization_duration_seconds",
				Help:    "Time taken to generate an extractive summary",
				Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12),
			})),
			summariesGenerated: register(prometheus.NewCounter(prometheus.CounterOpts{
				Name: "note_summaries_generated_total",
				Help: "Total number of summaries generated",
			})),
		}
	})
	return defaultSummaryMetrics
}

func (p *PrometheusSummaryMetrics) RecordLength(length int) {
	p.lengthHistogram.Observe(float64(length))
	p.summariesGenerated.Inc()
}

// RecordSentences also sets the compression ratio unless the source was empty.
func (p *PrometheusSummaryMetrics) RecordSentences(selected, total int) {
	p.selectedHistogram.Observe(float64(selected))
	p.sourceHistogram.Observe(float64(total))
	if total > 0 {
		p.compressionGauge.Set(float64(selected) / float64(total))
	}
}

func (p *PrometheusSummaryMetrics) RecordDuration(duration time.Duration) {
	p.durationHistogram.Observe(duration.Seconds())
}
