// Package metrics aggregates exchange latencies observed by a dispatcher.
package metrics

import (
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	"github.com/wesleyorama2/reqspec/http"
)

const (
	// Histogram bounds in microseconds: 1µs to 1 hour, 3 significant figures.
	histogramMin     = 1
	histogramMax     = 3600000000
	histogramSigFigs = 3
)

// Summary is a point-in-time view of recorded latencies.
type Summary struct {
	Count    int64
	Failures int64
	Bytes    int64
	Min      time.Duration
	Max      time.Duration
	Mean     time.Duration
	P50      time.Duration
	P90      time.Duration
	P99      time.Duration
}

// LatencyRecorder is an http.Observer that records the latency of every
// successful exchange in an HDR histogram and counts transport failures.
// It is safe for concurrent use.
type LatencyRecorder struct {
	mu       sync.Mutex
	hist     *hdrhistogram.Histogram
	failures int64
	bytes    int64
}

// NewLatencyRecorder creates an empty recorder.
func NewLatencyRecorder() *LatencyRecorder {
	return &LatencyRecorder{
		hist: hdrhistogram.New(histogramMin, histogramMax, histogramSigFigs),
	}
}

// BeforeSend implements http.Observer.
func (r *LatencyRecorder) BeforeSend(*http.ResolvedRequest, *http.ExchangeContext) {}

// AfterReceive implements http.Observer.
func (r *LatencyRecorder) AfterReceive(resp *http.Response, xc *http.ExchangeContext) {
	r.Record(xc.Elapsed(), xc.ResponseSize)
}

// OnError implements http.Observer.
func (r *LatencyRecorder) OnError(err error, req *http.ResolvedRequest, xc *http.ExchangeContext) {
	r.mu.Lock()
	r.failures++
	r.mu.Unlock()
}

// Record adds one latency sample. Values outside the histogram range are
// clamped.
func (r *LatencyRecorder) Record(d time.Duration, bytes int64) {
	micros := d.Microseconds()
	if micros < histogramMin {
		micros = histogramMin
	}
	if micros > histogramMax {
		micros = histogramMax
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// RecordValue only fails for out-of-range values, which are clamped above.
	_ = r.hist.RecordValue(micros)
	r.bytes += bytes
}

// Summary returns the current statistics.
func (r *LatencyRecorder) Summary() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := Summary{
		Count:    r.hist.TotalCount(),
		Failures: r.failures,
		Bytes:    r.bytes,
	}
	if s.Count == 0 {
		return s
	}

	s.Min = micros(r.hist.Min())
	s.Max = micros(r.hist.Max())
	s.Mean = time.Duration(r.hist.Mean() * float64(time.Microsecond))
	s.P50 = micros(r.hist.ValueAtQuantile(50))
	s.P90 = micros(r.hist.ValueAtQuantile(90))
	s.P99 = micros(r.hist.ValueAtQuantile(99))
	return s
}

// Reset discards every recorded sample.
func (r *LatencyRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hist.Reset()
	r.failures = 0
	r.bytes = 0
}

func micros(v int64) time.Duration {
	return time.Duration(v) * time.Microsecond
}
