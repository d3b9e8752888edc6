// Package slo publishes service level indicators for the notes API.
// A Tracker derives them from the HTTP request metrics between two refreshes.
package slo

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Objectives are the limits each indicator is judged against.
// Ratios are 0-1 and latencies are seconds.
type Objectives struct {
	Availability float64
	ErrorRate    float64
	LatencyP95   float64
	LatencyP99   float64
}

// Targets are the notes API objectives.
var Targets = Objectives{
	Availability: 0.999,
	ErrorRate:    0.001,
	LatencyP95:   0.200,
	LatencyP99:   0.500,
}

// Met reports per indicator name whether ind stays within o.
func (o Objectives) Met(ind Indicators) map[string]bool {
	return map[string]bool{
		"availability": ind.Availability >= o.Availability,
		"error_rate":   ind.ErrorRate <= o.ErrorRate,
		"latency_p95":  ind.LatencyP95 <= o.LatencyP95,
		"latency_p99":  ind.LatencyP99 <= o.LatencyP99,
	}
}

var (
	availability = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slo_availability_ratio",
		Help: "Share of non-5xx responses over the last refresh window (0-1)",
	})
	errorRate = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slo_error_rate_ratio",
		Help: "Share of 5xx responses over the last refresh window (0-1)",
	})
	latencyP95 = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slo_latency_p95_seconds",
		Help: "Estimated p95 request latency over the last refresh window",
	})
	latencyP99 = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slo_latency_p99_seconds",
		Help: "Estimated p99 request latency over the last refresh window",
	})
	withinTarget = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "slo_within_target",
		Help: "1 when the indicator met its objective in the last refresh window, else 0",
	}, []string{"indicator"})
)

func publish(ind Indicators, o Objectives) {
	availability.Set(ind.Availability)
	errorRate.Set(ind.ErrorRate)
	latencyP95.Set(ind.LatencyP95)
	latencyP99.Set(ind.LatencyP99)
	for name, ok := range o.Met(ind) {
		v := 0.0
		if ok {
			v = 1
		}
		withinTarget.WithLabelValues(name).Set(v)
	}
}
