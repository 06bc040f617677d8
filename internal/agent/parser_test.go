package agent

import (
	"strings"
	"testing"
)

func newTestAgent(t *testing.T) *Agent {
	t.Helper()
	return New(&scriptedModel{}, &scriptedEnv{}, DefaultConfig())
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantCommand string
		wantFormat  bool
	}{
		{
			name:        "single block",
			content:     "Let me check.\n```bash\necho hi\n```",
			wantCommand: "echo hi",
		},
		{
			name:        "surrounding whitespace trimmed",
			content:     "```bash\n  kubectl get pods  \n```",
			wantCommand: "kubectl get pods",
		},
		{
			name:        "multiline command",
			content:     "```bash\nfor i in 1 2 3; do\n  echo $i\ndone\n```",
			wantCommand: "for i in 1 2 3; do\n  echo $i\ndone",
		},
		{
			name:       "no block",
			content:    "I am not sure what to run.",
			wantFormat: true,
		},
		{
			name:       "wrong fence language",
			content:    "```python\nprint('hi')\n```",
			wantFormat: true,
		},
		{
			name:       "two blocks",
			content:    "```bash\nls\n```\nand\n```bash\npwd\n```",
			wantFormat: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAgent(t)
			resp := Response{Content: tt.content}
			action, cond, err := a.parseAction(resp)
			if err != nil {
				t.Fatalf("parseAction() error = %v", err)
			}
			if tt.wantFormat {
				if cond == nil {
					t.Fatalf("parseAction() = %q, want format condition", action.Command)
				}
				if cond.terminal {
					t.Error("format condition must be recoverable, got terminal")
				}
				if !strings.Contains(cond.message, "EXACTLY ONE action") {
					t.Errorf("format message = %q", cond.message)
				}
				return
			}
			if cond != nil {
				t.Fatalf("parseAction() condition = %+v, want command %q", cond, tt.wantCommand)
			}
			if action.Command != tt.wantCommand {
				t.Errorf("command = %q, want %q", action.Command, tt.wantCommand)
			}
			if action.Response.Content != tt.content {
				t.Errorf("action should carry the originating response")
			}
		})
	}
}

func TestParseAction_InvalidPattern(t *testing.T) {
	config := DefaultConfig()
	config.ActionPattern = "(unclosed"
	a := New(&scriptedModel{}, &scriptedEnv{}, config)

	_, cond, err := a.parseAction(Response{Content: "anything"})
	if err == nil {
		t.Fatal("parseAction() succeeded with an invalid pattern")
	}
	if cond != nil {
		t.Errorf("condition = %+v, want nil on fatal error", cond)
	}
}
