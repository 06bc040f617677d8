package agent

import (
	"context"
	"fmt"
)

// MessageRole represents the role of a conversation message.
type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message is one turn of the conversation replayed to the model on every
// query. Messages are append-only within a run; insertion order is the
// conversation order.
type Message struct {
	Role      MessageRole    `json:"role"`
	Content   string         `json:"content"`
	Timestamp float64        `json:"timestamp"`
	Extra     map[string]any `json:"extra,omitempty"` // provider-specific response fields
}

// Validate checks if the Message is well formed.
func (m Message) Validate() error {
	switch m.Role {
	case RoleSystem, RoleUser, RoleAssistant:
		return nil
	default:
		return fmt.Errorf("invalid message role: %s", m.Role)
	}
}

// Response is a normalized result of one model call.
type Response struct {
	Content string         // assistant text
	Extra   map[string]any // provider fields carried into the history entry
}

// Stats holds the running counters a model implementation accumulates
// across calls. Cost is in USD.
type Stats struct {
	Calls           int
	Cost            float64
	InputTokens     int
	OutputTokens    int
	ReasoningTokens int
}

// Model abstracts the LLM backend (OpenAI-compatible, Anthropic, etc.).
type Model interface {
	// Query sends the full conversation history and returns the response.
	Query(ctx context.Context, messages []Message) (Response, error)
	// Stats returns the counters accumulated so far.
	Stats() Stats
	// TemplateVars exposes model-level variables to the template renderer.
	TemplateVars() map[string]any
}

// ExecutionResult captures the outcome of one executed command.
type ExecutionResult struct {
	Output     string // combined stdout+stderr
	ReturnCode int
	Action     string // the command that produced this output
}

// Environment abstracts the command-execution backend (host shell, Docker
// container, ...).
type Environment interface {
	// Execute runs a shell command and returns its combined output.
	// A command that exceeds the environment's timeout fails with
	// *TimeoutError carrying whatever output was captured.
	Execute(ctx context.Context, command string) (ExecutionResult, error)
	// TemplateVars exposes environment-level variables to the template renderer.
	TemplateVars() map[string]any
}

// TimeoutError is returned by an Environment when a command exceeded its
// execution timeout. The partially captured output is preserved so the
// agent can feed it back to the model.
type TimeoutError struct {
	Output string
}

func (e *TimeoutError) Error() string {
	return "command execution timed out"
}

// Action is the single shell command extracted from a model response.
type Action struct {
	Command  string
	Response Response // the response the command was parsed from
}
