package main

import (
	"log"
	"strings"

	"github.com/lumynops/sreagent/internal/agent"
)

// consoleHook narrates the run on the standard logger, one line group per
// event, so an operator tailing the output can follow what the agent is
// doing without parsing the transcript afterwards.
type consoleHook struct {
	agent.NopHook
	logger *log.Logger
	step   int
}

func newConsoleHook(logger *log.Logger) *consoleHook {
	if logger == nil {
		logger = log.Default()
	}
	return &consoleHook{logger: logger}
}

func (h *consoleHook) OnAssistant(resp agent.Response) {
	h.step++
	h.logger.Printf("--- Step %d ---", h.step)
	h.logger.Printf("Agent response:\n%s", strings.TrimSpace(resp.Content))
}

func (h *consoleHook) OnExecute(action agent.Action) {
	h.logger.Printf("Executing: %s", action.Command)
}

func (h *consoleHook) OnObservation(result agent.ExecutionResult) {
	h.logger.Printf("Observation (rc=%d):\n%s", result.ReturnCode, truncateForLog(result.Output))
}

func (h *consoleHook) OnAttempt(latencySeconds float64, isError bool) {
	status := "ok"
	if isError {
		status = "error"
	}
	h.logger.Printf("Tool call finished in %.2fs (%s)", latencySeconds, status)
}

func (h *consoleHook) OnDone(result agent.Result) {
	h.logger.Printf("Run finished with status %s after %d steps", result.Status, h.step)
}

// truncateForLog keeps console output readable when a command dumps a
// large amount of text; the full output still reaches the model.
func truncateForLog(s string) string {
	const limit = 2000
	s = strings.TrimSpace(s)
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "\n... (truncated)"
}
