package monitor

import (
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// SystemMetrics tracks overall service performance for /api/system/status.
type SystemMetrics struct {
	// Latency histograms
	APILatency *LatencyHistogram
	DBLatency  *LatencyHistogram

	// Counters
	apiRequests    uint64
	apiErrors      uint64
	tradesRecorded uint64
	tradesRejected uint64

	startedAt time.Time
}

// NewSystemMetrics creates a new metrics instance.
func NewSystemMetrics() *SystemMetrics {
	return &SystemMetrics{
		APILatency: NewLatencyHistogram(1000),
		DBLatency:  NewLatencyHistogram(1000),
		startedAt:  time.Now(),
	}
}

// LatencyHistogram tracks latency samples with a sliding window and lazy
// stats computation.
type LatencyHistogram struct {
	mu          sync.Mutex
	samples     []float64
	maxSize     int
	dirty       bool
	cachedStats LatencyStats
}

// NewLatencyHistogram creates a sliding window histogram.
func NewLatencyHistogram(size int) *LatencyHistogram {
	if size <= 0 {
		size = 1000
	}
	return &LatencyHistogram{
		samples: make([]float64, 0, size),
		maxSize: size,
		dirty:   true,
	}
}

// Record adds a latency sample in milliseconds.
func (h *LatencyHistogram) Record(latencyMs float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.samples) >= h.maxSize {
		// Shift window: remove oldest
		h.samples = h.samples[1:]
	}
	h.samples = append(h.samples, latencyMs)
	h.dirty = true
}

// RecordDuration converts duration to ms and records.
func (h *LatencyHistogram) RecordDuration(d time.Duration) {
	h.Record(float64(d.Nanoseconds()) / 1e6)
}

// LatencyStats holds computed latency statistics.
type LatencyStats struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Avg   float64 `json:"avg"`
	P50   float64 `json:"p50"`
	P95   float64 `json:"p95"`
	P99   float64 `json:"p99"`
	Count int     `json:"count"`
}

// Stats returns min, max, avg, p50, p95, p99. Only recomputes when samples
// have changed since the last call.
func (h *LatencyHistogram) Stats() LatencyStats {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.dirty && h.cachedStats.Count > 0 {
		return h.cachedStats
	}

	n := len(h.samples)
	if n == 0 {
		return LatencyStats{}
	}

	sorted := make([]float64, n)
	copy(sorted, h.samples)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}

	h.cachedStats = LatencyStats{
		Min:   sorted[0],
		Max:   sorted[n-1],
		Avg:   sum / float64(n),
		P50:   sorted[n/2],
		P95:   sorted[int(float64(n)*0.95)],
		P99:   sorted[int(float64(n)*0.99)],
		Count: n,
	}
	h.dirty = false

	return h.cachedStats
}

// IncrementAPI increments the handled request counter.
func (m *SystemMetrics) IncrementAPI() {
	atomic.AddUint64(&m.apiRequests, 1)
}

// IncrementAPIErrors increments the 4xx/5xx response counter.
func (m *SystemMetrics) IncrementAPIErrors() {
	atomic.AddUint64(&m.apiErrors, 1)
}

// IncrementTrades increments the recorded-trade counter.
func (m *SystemMetrics) IncrementTrades() {
	atomic.AddUint64(&m.tradesRecorded, 1)
}

// IncrementTradeRejections increments the rejected-trade counter.
func (m *SystemMetrics) IncrementTradeRejections() {
	atomic.AddUint64(&m.tradesRejected, 1)
}

// MetricsSnapshot is a point-in-time metrics view.
type MetricsSnapshot struct {
	APILatency     LatencyStats `json:"api_latency"`
	DBLatency      LatencyStats `json:"db_latency"`
	APIRequests    uint64       `json:"api_requests"`
	APIErrors      uint64       `json:"api_errors"`
	TradesRecorded uint64       `json:"trades_recorded"`
	TradesRejected uint64       `json:"trades_rejected"`
	UptimeSeconds  float64      `json:"uptime_seconds"`
	GoroutineCount int          `json:"goroutine_count"`
	HeapAlloc      uint64       `json:"heap_alloc_bytes"`
	Timestamp      time.Time    `json:"timestamp"`
}

// GetSnapshot returns a point-in-time metrics snapshot.
func (m *SystemMetrics) GetSnapshot() MetricsSnapshot {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return MetricsSnapshot{
		APILatency:     m.APILatency.Stats(),
		DBLatency:      m.DBLatency.Stats(),
		APIRequests:    atomic.LoadUint64(&m.apiRequests),
		APIErrors:      atomic.LoadUint64(&m.apiErrors),
		TradesRecorded: atomic.LoadUint64(&m.tradesRecorded),
		TradesRejected: atomic.LoadUint64(&m.tradesRejected),
		UptimeSeconds:  time.Since(m.startedAt).Seconds(),
		GoroutineCount: runtime.NumGoroutine(),
		HeapAlloc:      memStats.HeapAlloc,
		Timestamp:      time.Now(),
	}
}
