package generation

import (
	"sync/atomic"
	"time"
)

// Metrics tracks provider call metrics
type Metrics struct {
	providerCalls   int64
	providerErrors  int64
	providerLatency int64 // Total latency in nanoseconds
	generateCalls   int64
	analyzeCalls    int64
	projectCalls    int64
}

var globalMetrics = &Metrics{}

// GetMetrics returns the current metrics snapshot
func GetMetrics() Metrics {
	return Metrics{
		providerCalls:   atomic.LoadInt64(&globalMetrics.providerCalls),
		providerErrors:  atomic.LoadInt64(&globalMetrics.providerErrors),
		providerLatency: atomic.LoadInt64(&globalMetrics.providerLatency),
		generateCalls:   atomic.LoadInt64(&globalMetrics.generateCalls),
		analyzeCalls:    atomic.LoadInt64(&globalMetrics.analyzeCalls),
		projectCalls:    atomic.LoadInt64(&globalMetrics.projectCalls),
	}
}

// ResetMetrics resets all metrics (useful for testing)
func ResetMetrics() {
	atomic.StoreInt64(&globalMetrics.providerCalls, 0)
	atomic.StoreInt64(&globalMetrics.providerErrors, 0)
	atomic.StoreInt64(&globalMetrics.providerLatency, 0)
	atomic.StoreInt64(&globalMetrics.generateCalls, 0)
	atomic.StoreInt64(&globalMetrics.analyzeCalls, 0)
	atomic.StoreInt64(&globalMetrics.projectCalls, 0)
}

// recordProviderCall records a remote provider call
func recordProviderCall(duration time.Duration, err error) {
	atomic.AddInt64(&globalMetrics.providerCalls, 1)
	atomic.AddInt64(&globalMetrics.providerLatency, duration.Nanoseconds())
	if err != nil {
		atomic.AddInt64(&globalMetrics.providerErrors, 1)
	}
}

func recordGenerateCall() {
	atomic.AddInt64(&globalMetrics.generateCalls, 1)
}

func recordAnalyzeCall() {
	atomic.AddInt64(&globalMetrics.analyzeCalls, 1)
}

func recordProjectCall() {
	atomic.AddInt64(&globalMetrics.projectCalls, 1)
}

// ProviderCalls returns the number of remote provider calls recorded.
func (m Metrics) ProviderCalls() int64 { return m.providerCalls }

// ProviderErrors returns the number of failed remote provider calls.
func (m Metrics) ProviderErrors() int64 { return m.providerErrors }

// AverageProviderLatency returns the average latency in milliseconds
func (m Metrics) AverageProviderLatency() float64 {
	if m.providerCalls == 0 {
		return 0
	}
	avgNs := float64(m.providerLatency) / float64(m.providerCalls)
	return avgNs / 1e6 // Convert nanoseconds to milliseconds
}

// ProviderErrorRate returns the error rate as a percentage
func (m Metrics) ProviderErrorRate() float64 {
	if m.providerCalls == 0 {
		return 0
	}
	return float64(m.providerErrors) / float64(m.providerCalls) * 100
}
