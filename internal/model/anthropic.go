package model

import (
	"context"
	"fmt"

	anthropic "github.com/liushuangls/go-anthropic/v2"

	"github.com/lumynops/sreagent/internal/agent"
)

// anthropicMaxTokens is the output token ceiling for a single call.
const anthropicMaxTokens = 8192

// AnthropicModel implements agent.Model against the Anthropic messages API.
type AnthropicModel struct {
	client *anthropic.Client
	name   string
	stats  agent.Stats
}

// NewAnthropicModel creates an Anthropic model client.
func NewAnthropicModel(apiKey, modelName string) (*AnthropicModel, error) {
	if modelName == "" {
		return nil, fmt.Errorf("model name is required")
	}
	return &AnthropicModel{
		client: anthropic.NewClient(apiKey),
		name:   modelName,
	}, nil
}

// Query implements agent.Model.Query. System messages are lifted into the
// request's system field; Anthropic does not accept them in the message
// list.
func (m *AnthropicModel) Query(ctx context.Context, messages []agent.Message) (agent.Response, error) {
	var systemParts []anthropic.MessageSystemPart
	var anthropicMsgs []anthropic.Message

	for _, msg := range messages {
		if err := msg.Validate(); err != nil {
			return agent.Response{}, err
		}
		switch msg.Role {
		case agent.RoleSystem:
			systemParts = append(systemParts, anthropic.MessageSystemPart{
				Type: "text",
				Text: msg.Content,
			})
		case agent.RoleUser:
			anthropicMsgs = append(anthropicMsgs, anthropic.Message{
				Role:    anthropic.RoleUser,
				Content: []anthropic.MessageContent{anthropic.NewTextMessageContent(msg.Content)},
			})
		case agent.RoleAssistant:
			anthropicMsgs = append(anthropicMsgs, anthropic.Message{
				Role:    anthropic.RoleAssistant,
				Content: []anthropic.MessageContent{anthropic.NewTextMessageContent(msg.Content)},
			})
		}
	}

	req := anthropic.MessagesRequest{
		Model:     anthropic.Model(m.name),
		Messages:  anthropicMsgs,
		MaxTokens: anthropicMaxTokens,
	}
	if len(systemParts) > 0 {
		req.MultiSystem = systemParts
	}

	resp, err := m.client.CreateMessages(ctx, req)
	if err != nil {
		return agent.Response{}, fmt.Errorf("anthropic messages call failed: %w", err)
	}

	var content string
	for _, block := range resp.Content {
		if block.Type == anthropic.MessagesContentTypeText && block.Text != nil {
			content += *block.Text
		}
	}

	m.stats.Calls++
	m.stats.InputTokens += resp.Usage.InputTokens
	m.stats.OutputTokens += resp.Usage.OutputTokens
	m.stats.Cost += CallCost(m.name, resp.Usage.InputTokens, resp.Usage.OutputTokens)

	return agent.Response{
		Content: content,
		Extra: map[string]any{
			"model":       string(resp.Model),
			"stop_reason": string(resp.StopReason),
		},
	}, nil
}

// Stats implements agent.Model.Stats.
func (m *AnthropicModel) Stats() agent.Stats {
	return m.stats
}

// TemplateVars implements agent.Model.TemplateVars.
func (m *AnthropicModel) TemplateVars() map[string]any {
	return map[string]any{"model_name": m.name}
}
