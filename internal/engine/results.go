package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/google/uuid"
)

// Results aggregates the outcome of a replay run.
//
// Counters use atomics and the latency histogram is mutex-protected, so
// workers record results concurrently without coordination.
type Results struct {
	// RunID uniquely identifies this run in reports.
	RunID string

	start time.Time
	end   time.Time

	total     atomic.Int64
	succeeded atomic.Int64
	failed    atomic.Int64
	bytes     atomic.Int64

	// Latency in microseconds, 1us to 1 hour, 3 significant figures.
	histMu sync.Mutex
	hist   *hdrhistogram.Histogram
}

// NewResults creates an empty result set with a fresh run ID; the clock
// starts now.
func NewResults() *Results {
	return &Results{
		RunID: uuid.NewString(),
		start: time.Now(),
		hist:  hdrhistogram.New(1, 3_600_000_000, 3),
	}
}

// Record adds one request outcome. Safe for concurrent use.
func (r *Results) Record(latency time.Duration, success bool, bytes int64) {
	r.total.Add(1)
	if success {
		r.succeeded.Add(1)
	} else {
		r.failed.Add(1)
	}
	r.bytes.Add(bytes)

	r.histMu.Lock()
	_ = r.hist.RecordValue(latency.Microseconds())
	r.histMu.Unlock()
}

// Finish stamps the end of the run; Duration and RPS settle afterwards.
func (r *Results) Finish() {
	r.end = time.Now()
}

// Total returns the number of requests issued.
func (r *Results) Total() int64 { return r.total.Load() }

// Succeeded returns the number of requests that completed with a status
// below 400.
func (r *Results) Succeeded() int64 { return r.succeeded.Load() }

// Failed returns the number of requests that errored or returned a status
// of 400 or above.
func (r *Results) Failed() int64 { return r.failed.Load() }

// BytesReceived returns the total response body bytes read.
func (r *Results) BytesReceived() int64 { return r.bytes.Load() }

// Duration returns the wall time of the run.
func (r *Results) Duration() time.Duration {
	end := r.end
	if end.IsZero() {
		end = time.Now()
	}
	return end.Sub(r.start)
}

// RPS returns the effective request rate over the whole run.
func (r *Results) RPS() float64 {
	d := r.Duration().Seconds()
	if d <= 0 {
		return 0
	}
	return float64(r.Total()) / d
}

// LatencyPercentile returns the latency at quantile q (0-100).
func (r *Results) LatencyPercentile(q float64) time.Duration {
	r.histMu.Lock()
	defer r.histMu.Unlock()
	return time.Duration(r.hist.ValueAtQuantile(q)) * time.Microsecond
}

// LatencyMean returns the mean request latency.
func (r *Results) LatencyMean() time.Duration {
	r.histMu.Lock()
	defer r.histMu.Unlock()
	return time.Duration(r.hist.Mean()) * time.Microsecond
}

// LatencyMax returns the maximum observed request latency.
func (r *Results) LatencyMax() time.Duration {
	r.histMu.Lock()
	defer r.histMu.Unlock()
	return time.Duration(r.hist.Max()) * time.Microsecond
}
