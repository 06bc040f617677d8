package model

import (
	"context"
	"slices"
	"time"

	"github.com/lumynops/sreagent/internal/agent"
)

// Instrumented wraps an agent.Model and records the wall-clock latency of
// every query for the final report.
type Instrumented struct {
	agent.Model
	latencies []float64 // seconds, in call order
}

// NewInstrumented wraps inner with latency recording.
func NewInstrumented(inner agent.Model) *Instrumented {
	return &Instrumented{Model: inner}
}

// Query implements agent.Model.Query.
func (m *Instrumented) Query(ctx context.Context, messages []agent.Message) (agent.Response, error) {
	start := time.Now()
	resp, err := m.Model.Query(ctx, messages)
	m.latencies = append(m.latencies, time.Since(start).Seconds())
	return resp, err
}

// Latencies returns the recorded per-call latencies in seconds.
func (m *Instrumented) Latencies() []float64 {
	return slices.Clone(m.latencies)
}

// AvgLatency returns the mean query latency in seconds, or 0 with no calls.
func (m *Instrumented) AvgLatency() float64 {
	if len(m.latencies) == 0 {
		return 0
	}
	var sum float64
	for _, l := range m.latencies {
		sum += l
	}
	return sum / float64(len(m.latencies))
}
