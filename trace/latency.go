package trace

import (
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	makeservice "github.com/gustavoguichard/make-service"
)

// Latency records request wall time in milliseconds, from 1ms to one
// minute at three significant figures.
const (
	latencyMin         = 1
	latencyMax         = 60_000
	latencyPrecision   = 3
	latencyMillisFloor = time.Millisecond
)

// LatencyRecorder accumulates per-request latencies into an
// HdrHistogram. It is safe for concurrent use, matching the service
// builder's concurrency model.
type LatencyRecorder struct {
	mu   sync.Mutex
	hist *hdrhistogram.Histogram
}

// Latency creates a new recorder.
func Latency() *LatencyRecorder {
	return &LatencyRecorder{
		hist: hdrhistogram.New(latencyMin, latencyMax, latencyPrecision),
	}
}

// Hook returns the trace hook that feeds the recorder. It records on
// the post-dispatch invocation only.
func (l *LatencyRecorder) Hook() makeservice.TraceFunc {
	return func(info makeservice.TraceInfo) {
		if info.Response == nil {
			return
		}
		l.mu.Lock()
		defer l.mu.Unlock()
		_ = l.hist.RecordValue(elapsedMillis(info))
	}
}

// Count returns the number of recorded requests.
func (l *LatencyRecorder) Count() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hist.TotalCount()
}

// Mean returns the mean latency in milliseconds.
func (l *LatencyRecorder) Mean() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hist.Mean()
}

// Percentile returns the latency in milliseconds at percentile q
// (for example 99.0).
func (l *LatencyRecorder) Percentile(q float64) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hist.ValueAtQuantile(q)
}

// Max returns the maximum recorded latency in milliseconds.
func (l *LatencyRecorder) Max() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hist.Max()
}

// Reset clears all recorded values.
func (l *LatencyRecorder) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hist.Reset()
}

func elapsedMillis(info makeservice.TraceInfo) int64 {
	if info.Start.IsZero() {
		return 0
	}
	elapsed := time.Since(info.Start)
	if elapsed < latencyMillisFloor {
		return latencyMin
	}
	return elapsed.Milliseconds()
}
