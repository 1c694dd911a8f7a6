package utils

import (
	"sync"
	"time"
)

// Tracks performance metrics across the system
type MetricsCollector struct {
	mu           sync.RWMutex
	requestCount uint64
	errorCount   uint64

	// Maps operation name to list of latencies in nanoseconds
	operationTimes map[string][]int64

	systemStartTime time.Time
}

func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		operationTimes:  make(map[string][]int64),
		systemStartTime: time.Now(),
	}
}

func (mc *MetricsCollector) IncrementRequests() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.requestCount++
}

func (mc *MetricsCollector) IncrementErrors() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.errorCount++
}

func (mc *MetricsCollector) AddOperationLatency(operationName string, duration time.Duration) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if _, exists := mc.operationTimes[operationName]; !exists {
		mc.operationTimes[operationName] = make([]int64, 0)
	}
	mc.operationTimes[operationName] = append(
		mc.operationTimes[operationName],
		duration.Nanoseconds(),
	)
}

// MetricsSnapshot is a point-in-time view of collected metrics
type MetricsSnapshot struct {
	Uptime       string           `json:"uptime"`
	RequestCount uint64           `json:"requestCount"`
	ErrorCount   uint64           `json:"errorCount"`
	AvgLatencyMs map[string]int64 `json:"avgLatencyMs"`
}

// Snapshot returns current counters and per-operation average latencies
func (mc *MetricsCollector) Snapshot() MetricsSnapshot {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	averages := make(map[string]int64, len(mc.operationTimes))
	for name, times := range mc.operationTimes {
		if len(times) == 0 {
			continue
		}
		var total int64
		for _, t := range times {
			total += t
		}
		averages[name] = total / int64(len(times)) / int64(time.Millisecond)
	}

	return MetricsSnapshot{
		Uptime:       time.Since(mc.systemStartTime).String(),
		RequestCount: mc.requestCount,
		ErrorCount:   mc.errorCount,
		AvgLatencyMs: averages,
	}
}
