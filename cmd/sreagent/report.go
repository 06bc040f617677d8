package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lumynops/sreagent/internal/agent"
	"github.com/lumynops/sreagent/internal/model"
)

// Report is the final metrics summary of one run, printed to the console
// and persisted as metrics.json for the harness.
type Report struct {
	Status                  string  `json:"status"`
	DurationSeconds         float64 `json:"duration_seconds"`
	LLMCalls                int     `json:"llm_calls"`
	AvgLLMLatencySeconds    float64 `json:"avg_llm_latency_seconds"`
	MaxLLMLatencySeconds    float64 `json:"max_llm_latency_seconds"`
	TotalCost               float64 `json:"total_cost"`
	InputTokens             int     `json:"input_tokens"`
	OutputTokens            int     `json:"output_tokens"`
	TotalTokens             int     `json:"total_tokens"`
	ReasoningTokens         int     `json:"reasoning_tokens"`
	PlanningOverheadPercent float64 `json:"planning_overhead_percent"`
	ToolCalls               int     `json:"tool_calls"`
	ToolFailures            int     `json:"tool_failures"`
	ToolErrorRatePercent    float64 `json:"tool_error_rate_percent"`
	AvgToolLatencySeconds   float64 `json:"avg_tool_latency_seconds"`
}

func buildReport(duration time.Duration, result agent.Result, llm *model.Instrumented, metrics agent.Metrics) Report {
	stats := llm.Stats()

	report := Report{
		Status:                string(result.Status),
		DurationSeconds:       duration.Seconds(),
		LLMCalls:              stats.Calls,
		AvgLLMLatencySeconds:  llm.AvgLatency(),
		TotalCost:             stats.Cost,
		InputTokens:           stats.InputTokens,
		OutputTokens:          stats.OutputTokens,
		TotalTokens:           stats.InputTokens + stats.OutputTokens,
		ReasoningTokens:       stats.ReasoningTokens,
		ToolCalls:             metrics.ToolCalls,
		ToolFailures:          metrics.ToolErrors,
		ToolErrorRatePercent:  metrics.ErrorRate() * 100,
		AvgToolLatencySeconds: metrics.AvgLatency(),
	}
	for _, latency := range llm.Latencies() {
		if latency > report.MaxLLMLatencySeconds {
			report.MaxLLMLatencySeconds = latency
		}
	}
	if stats.OutputTokens > 0 {
		report.PlanningOverheadPercent = float64(stats.ReasoningTokens) / float64(stats.OutputTokens) * 100
	}
	return report
}

// Print writes the human-readable report.
func (r Report) Print(w io.Writer) {
	line := "=================================================="
	fmt.Fprintln(w)
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, "FINAL AGENT METRICS REPORT")
	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "End-to-End Duration: %.2fs\n", r.DurationSeconds)
	fmt.Fprintf(w, "Total LLM Calls:     %d\n", r.LLMCalls)
	fmt.Fprintf(w, "Avg LLM Latency:     %.4fs\n", r.AvgLLMLatencySeconds)
	fmt.Fprintf(w, "Max LLM Latency:     %.4fs\n", r.MaxLLMLatencySeconds)
	fmt.Fprintf(w, "Total Cost:          $%.4f\n", r.TotalCost)
	fmt.Fprintf(w, "Total Input Tokens:  %d\n", r.InputTokens)
	fmt.Fprintf(w, "Total Output Tokens: %d\n", r.OutputTokens)
	fmt.Fprintf(w, "Total Tokens:        %d\n", r.TotalTokens)
	fmt.Fprintf(w, "Reasoning Tokens:    %d\n", r.ReasoningTokens)
	fmt.Fprintf(w, "Planning Overhead:   %.2f%%\n", r.PlanningOverheadPercent)
	fmt.Fprintf(w, "Total Tool Calls:    %d\n", r.ToolCalls)
	fmt.Fprintf(w, "Tool Failures:       %d\n", r.ToolFailures)
	fmt.Fprintf(w, "Tool Error Rate:     %.1f%%\n", r.ToolErrorRatePercent)
	fmt.Fprintf(w, "Avg Tool Latency:    %.4fs\n", r.AvgToolLatencySeconds)
	fmt.Fprintln(w, line)
	fmt.Fprintln(w)
}

// WriteFile persists the report as indented JSON.
func (r Report) WriteFile(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
