// Package model provides agent.Model implementations for the supported
// LLM providers, each tracking call counts, token usage, and accumulated
// cost across a run.
package model

import (
	"context"
	"fmt"

	openai "github.com/meguminnnnnnnnn/go-openai"

	"github.com/lumynops/sreagent/internal/agent"
)

// OpenAIModel implements agent.Model against the OpenAI chat completions
// API, including OpenAI-compatible backends (Kimi, DeepSeek, Groq, Ollama,
// ...) selected via base URL.
type OpenAIModel struct {
	client *openai.Client
	name   string
	stats  agent.Stats
}

// NewOpenAIModel creates an OpenAI-compatible model client. baseURL may be
// empty for the default OpenAI endpoint.
func NewOpenAIModel(apiKey, modelName, baseURL string) (*OpenAIModel, error) {
	if modelName == "" {
		return nil, fmt.Errorf("model name is required")
	}
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIModel{
		client: openai.NewClientWithConfig(config),
		name:   modelName,
	}, nil
}

// Query implements agent.Model.Query.
func (m *OpenAIModel) Query(ctx context.Context, messages []agent.Message) (agent.Response, error) {
	req := openai.ChatCompletionRequest{
		Model:    m.name,
		Messages: make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, msg := range messages {
		if err := msg.Validate(); err != nil {
			return agent.Response{}, err
		}
		var role string
		switch msg.Role {
		case agent.RoleSystem:
			role = openai.ChatMessageRoleSystem
		case agent.RoleUser:
			role = openai.ChatMessageRoleUser
		case agent.RoleAssistant:
			role = openai.ChatMessageRoleAssistant
		}
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		})
	}

	resp, err := m.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return agent.Response{}, fmt.Errorf("openai chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return agent.Response{}, fmt.Errorf("empty response from OpenAI")
	}

	m.stats.Calls++
	m.stats.InputTokens += resp.Usage.PromptTokens
	m.stats.OutputTokens += resp.Usage.CompletionTokens
	if details := resp.Usage.CompletionTokensDetails; details != nil {
		m.stats.ReasoningTokens += details.ReasoningTokens
	}
	m.stats.Cost += CallCost(m.name, resp.Usage.PromptTokens, resp.Usage.CompletionTokens)

	choice := resp.Choices[0]
	return agent.Response{
		Content: choice.Message.Content,
		Extra: map[string]any{
			"model":         resp.Model,
			"finish_reason": string(choice.FinishReason),
		},
	}, nil
}

// Stats implements agent.Model.Stats.
func (m *OpenAIModel) Stats() agent.Stats {
	return m.stats
}

// TemplateVars implements agent.Model.TemplateVars.
func (m *OpenAIModel) TemplateVars() map[string]any {
	return map[string]any{"model_name": m.name}
}
