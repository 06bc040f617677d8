package agent

import "slices"

// Metrics tallies action executions for the lifetime of an Agent instance.
// Counters are monotonic within a run and incremented exactly once per
// attempted execution, regardless of which exit path the attempt takes.
type Metrics struct {
	ToolCalls  int
	ToolErrors int
	Latencies  []float64 // wall-clock seconds, in execution order
}

func (m *Metrics) record(latencySeconds float64, isError bool) {
	m.ToolCalls++
	if isError {
		m.ToolErrors++
	}
	m.Latencies = append(m.Latencies, latencySeconds)
}

// AvgLatency returns the mean tool latency in seconds, or 0 with no calls.
func (m *Metrics) AvgLatency() float64 {
	if len(m.Latencies) == 0 {
		return 0
	}
	var sum float64
	for _, l := range m.Latencies {
		sum += l
	}
	return sum / float64(len(m.Latencies))
}

// ErrorRate returns the fraction of attempts classified as errors, or 0
// with no calls.
func (m *Metrics) ErrorRate() float64 {
	if m.ToolCalls == 0 {
		return 0
	}
	return float64(m.ToolErrors) / float64(m.ToolCalls)
}

func (m *Metrics) snapshot() Metrics {
	return Metrics{
		ToolCalls:  m.ToolCalls,
		ToolErrors: m.ToolErrors,
		Latencies:  slices.Clone(m.Latencies),
	}
}
