package slo

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Source metric names, as registered by the HTTP metrics middleware.
const (
	RequestsMetric = "http_requests_total"
	DurationMetric = "http_request_duration_seconds"
)

// snapshot is the cumulative state of the request metrics at one refresh.
type snapshot struct {
	total   float64
	errors  float64
	count   uint64
	buckets map[float64]uint64 // upper bound -> cumulative count, summed over label sets
}

// Tracker turns the cumulative request metrics into windowed indicators.
// Each Refresh covers the requests served since the previous one.
type Tracker struct {
	gatherer prometheus.Gatherer

	mu   sync.Mutex
	prev snapshot
}

// NewTracker creates a tracker reading from g; nil means the default registry.
func NewTracker(g prometheus.Gatherer) *Tracker {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	return &Tracker{gatherer: g, prev: snapshot{buckets: map[float64]uint64{}}}
}

// Indicators are the values computed by one refresh.
type Indicators struct {
	Requests     float64
	Availability float64
	ErrorRate    float64
	LatencyP95   float64
	LatencyP99   float64
}

// Refresh gathers the request metrics, updates the SLO gauges and returns the
// indicators. When no request was served since the last refresh the gauges
// keep their previous values and ok is false.
func (t *Tracker) Refresh() (ind Indicators, ok bool, err error) {
	families, err := t.gatherer.Gather()
	if err != nil {
		return Indicators{}, false, fmt.Errorf("gather metrics: %w", err)
	}
	cur := collect(families)

	t.mu.Lock()
	prev := t.prev
	t.prev = cur
	t.mu.Unlock()

	requests := delta(cur.total, prev.total)
	if requests == 0 {
		return Indicators{}, false, nil
	}
	errs := delta(cur.errors, prev.errors)

	ind = Indicators{
		Requests:  requests,
		ErrorRate: errs / requests,
	}
	ind.Availability = 1 - ind.ErrorRate

	window := diffBuckets(cur, prev)
	ind.LatencyP95 = quantile(0.95, window)
	ind.LatencyP99 = quantile(0.99, window)

	publish(ind, Targets)
	return ind, true, nil
}

func collect(families []*dto.MetricFamily) snapshot {
	s := snapshot{buckets: map[float64]uint64{}}
	for _, mf := range families {
		switch mf.GetName() {
		case RequestsMetric:
			for _, m := range mf.GetMetric() {
				v := m.GetCounter().GetValue()
				s.total += v
				if strings.HasPrefix(labelValue(m, "status"), "5") {
					s.errors += v
				}
			}
		case DurationMetric:
			for _, m := range mf.GetMetric() {
				h := m.GetHistogram()
				s.count += h.GetSampleCount()
				for _, b := range h.GetBucket() {
					s.buckets[b.GetUpperBound()] += b.GetCumulativeCount()
				}
			}
		}
	}
	return s
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}

// delta treats a decrease as a reset of the source counter.
func delta(cur, prev float64) float64 {
	if cur < prev {
		return cur
	}
	return cur - prev
}

type bucket struct {
	upper      float64
	cumulative float64
}

// diffBuckets returns the per-window cumulative buckets in ascending order,
// closed by a +Inf bucket holding the window's sample count.
func diffBuckets(cur, prev snapshot) []bucket {
	out := make([]bucket, 0, len(cur.buckets)+1)
	for upper, c := range cur.buckets {
		out = append(out, bucket{upper: upper, cumulative: delta(float64(c), float64(prev.buckets[upper]))})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].upper < out[j].upper })
	out = append(out, bucket{upper: math.Inf(1), cumulative: delta(float64(cur.count), float64(prev.count))})
	return out
}

// quantile estimates the q-quantile by linear interpolation inside the bucket
// that holds it, like PromQL's histogram_quantile. Observations above the
// highest finite bound report that bound.
func quantile(q float64, buckets []bucket) float64 {
	if len(buckets) == 0 {
		return 0
	}
	total := buckets[len(buckets)-1].cumulative
	if total == 0 {
		return 0
	}
	rank := q * total

	lowerBound, lowerCount := 0.0, 0.0
	for _, b := range buckets {
		if b.cumulative >= rank {
			if math.IsInf(b.upper, 1) {
				return lowerBound
			}
			if b.cumulative == lowerCount {
				return b.upper
			}
			return lowerBound + (b.upper-lowerBound)*(rank-lowerCount)/(b.cumulative-lowerCount)
		}
		lowerBound, lowerCount = b.upper, b.cumulative
	}
	return lowerBound
}
