package quote

import (
	"context"
	"time"

	"relist/internal/services/pricing"
)

// Service is the engine's entry point for callers (HTTP handlers, CLI
// tools, batch jobs).
type Service interface {
	ComputeQuote(ctx context.Context, req QuoteRequest) (*pricing.PriceQuote, error)
	RecommendPrice(ctx context.Context, req RecommendRequest) (*RecommendResult, error)
	CompareRegimes(ctx context.Context, req CompareRequest) (*DualRegimeResult, error)
}

// Recorder persists a completed comparison for later reporting.
type Recorder interface {
	SaveComparison(ctx context.Context, req CompareRequest, result *DualRegimeResult) (string, error)
}

// MetricsCollector defines the interface for collecting computation metrics
type MetricsCollector interface {
	RecordComputation(kind string, duration time.Duration)
	RecordError(kind, errType string)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordComputation(string, time.Duration) {}
func (n *NoopMetricsCollector) RecordError(string, string)              {}
