package model

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lumynops/sreagent/internal/agent"
)

const completionBody = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gpt-4o-2024-08-06",
  "choices": [
    {
      "index": 0,
      "message": {"role": "assistant", "content": "hello there"},
      "finish_reason": "stop"
    }
  ],
  "usage": {"prompt_tokens": 100, "completion_tokens": 10, "total_tokens": 110}
}`

func TestOpenAIQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionBody))
	}))
	defer srv.Close()

	m, err := NewOpenAIModel("test-key", "gpt-4o", srv.URL)
	if err != nil {
		t.Fatalf("NewOpenAIModel() error = %v", err)
	}

	resp, err := m.Query(context.Background(), []agent.Message{
		{Role: agent.RoleSystem, Content: "be brief"},
		{Role: agent.RoleUser, Content: "hi"},
	})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if resp.Content != "hello there" {
		t.Errorf("content = %q, want %q", resp.Content, "hello there")
	}
	if resp.Extra["finish_reason"] != "stop" {
		t.Errorf("finish_reason = %v, want stop", resp.Extra["finish_reason"])
	}

	stats := m.Stats()
	if stats.Calls != 1 {
		t.Errorf("calls = %d, want 1", stats.Calls)
	}
	if stats.InputTokens != 100 || stats.OutputTokens != 10 {
		t.Errorf("tokens = %d/%d, want 100/10", stats.InputTokens, stats.OutputTokens)
	}
	if stats.Cost <= 0 {
		t.Errorf("cost = %v, want > 0", stats.Cost)
	}
}

func TestOpenAIQuery_InvalidRole(t *testing.T) {
	// The message is rejected before any request is made, so no server is
	// needed.
	m, err := NewOpenAIModel("test-key", "gpt-4o", "http://127.0.0.1:0")
	if err != nil {
		t.Fatalf("NewOpenAIModel() error = %v", err)
	}

	_, err = m.Query(context.Background(), []agent.Message{{Role: "tool", Content: "x"}})
	if err == nil {
		t.Fatal("Query() accepted an invalid message role")
	}
	if m.Stats().Calls != 0 {
		t.Errorf("calls = %d, want 0", m.Stats().Calls)
	}
}

func TestAnthropicQuery_InvalidRole(t *testing.T) {
	m, err := NewAnthropicModel("test-key", "claude-sonnet-4-20250514")
	if err != nil {
		t.Fatalf("NewAnthropicModel() error = %v", err)
	}

	_, err = m.Query(context.Background(), []agent.Message{{Role: "function", Content: "x"}})
	if err == nil {
		t.Fatal("Query() accepted an invalid message role")
	}
	if m.Stats().Calls != 0 {
		t.Errorf("calls = %d, want 0", m.Stats().Calls)
	}
}
