package model

import (
	"fmt"
	"os"

	"github.com/lumynops/sreagent/internal/agent"
)

// NewFromEnv creates an agent.Model based on environment variables.
// LLM_PROVIDER selects the backend; each provider reads its own key,
// model, and base URL variables. OpenAI-compatible providers (deepseek,
// groq, ollama) reuse the OpenAI client with a different base URL.
func NewFromEnv() (agent.Model, string, error) {
	provider := os.Getenv("LLM_PROVIDER")
	if provider == "" {
		provider = "openai"
	}

	switch provider {
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, "", fmt.Errorf("OPENAI_API_KEY not set")
		}
		modelName := envOrDefault("MODEL_NAME", envOrDefault("OPENAI_MODEL", "gpt-4o"))
		client, err := NewOpenAIModel(apiKey, modelName, os.Getenv("OPENAI_BASE_URL"))
		if err != nil {
			return nil, "", fmt.Errorf("failed to create OpenAI client: %w", err)
		}
		return client, modelName, nil

	case "anthropic":
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return nil, "", fmt.Errorf("ANTHROPIC_API_KEY not set")
		}
		modelName := envOrDefault("MODEL_NAME", envOrDefault("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"))
		client, err := NewAnthropicModel(apiKey, modelName)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create Anthropic client: %w", err)
		}
		return client, modelName, nil

	case "deepseek":
		apiKey := os.Getenv("DEEPSEEK_API_KEY")
		if apiKey == "" {
			return nil, "", fmt.Errorf("DEEPSEEK_API_KEY not set")
		}
		modelName := envOrDefault("DEEPSEEK_MODEL", "deepseek-chat")
		client, err := NewOpenAIModel(apiKey, modelName, "https://api.deepseek.com/v1")
		if err != nil {
			return nil, "", fmt.Errorf("failed to create DeepSeek client: %w", err)
		}
		return client, modelName, nil

	case "groq":
		apiKey := os.Getenv("GROQ_API_KEY")
		if apiKey == "" {
			return nil, "", fmt.Errorf("GROQ_API_KEY not set")
		}
		modelName := envOrDefault("GROQ_MODEL", "llama-3.1-70b-versatile")
		client, err := NewOpenAIModel(apiKey, modelName, "https://api.groq.com/openai/v1")
		if err != nil {
			return nil, "", fmt.Errorf("failed to create Groq client: %w", err)
		}
		return client, modelName, nil

	case "ollama":
		baseURL := envOrDefault("OLLAMA_BASE_URL", "http://localhost:11434/v1")
		modelName := envOrDefault("OLLAMA_MODEL", "llama3.1")
		client, err := NewOpenAIModel(envOrDefault("OLLAMA_API_KEY", "ollama"), modelName, baseURL)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create Ollama client: %w", err)
		}
		return client, modelName, nil

	default:
		return nil, "", fmt.Errorf("unknown LLM_PROVIDER: %s (supported: openai, anthropic, deepseek, groq, ollama)", provider)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
