package agent

import "testing"

func TestRender(t *testing.T) {
	tests := []struct {
		name    string
		tmpl    string
		vars    map[string]any
		want    string
		wantErr bool
	}{
		{
			name: "plain substitution",
			tmpl: "Hello {{.name}}",
			vars: map[string]any{"name": "world"},
			want: "Hello world",
		},
		{
			name: "no variables",
			tmpl: "static text",
			vars: nil,
			want: "static text",
		},
		{
			name:    "missing variable is an error",
			tmpl:    "Hello {{.name}}",
			vars:    map[string]any{},
			wantErr: true,
		},
		{
			name:    "malformed template",
			tmpl:    "Hello {{.name",
			vars:    map[string]any{"name": "world"},
			wantErr: true,
		},
		{
			name: "conditional branch",
			tmpl: "{{if .truncated}}short{{else}}full{{end}}",
			vars: map[string]any{"truncated": true},
			want: "short",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.tmpl, tt.vars)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Render() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRender_Deterministic(t *testing.T) {
	vars := map[string]any{"a": 1, "b": "two", "c": 3.0}
	first, err := Render("{{.a}}-{{.b}}-{{.c}}", vars)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		got, err := Render("{{.a}}-{{.b}}-{{.c}}", vars)
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if got != first {
			t.Fatalf("render %d = %q, first = %q", i, got, first)
		}
	}
}

type varsEnv struct {
	scriptedEnv
	vars map[string]any
}

func (e *varsEnv) TemplateVars() map[string]any { return e.vars }

type varsModel struct {
	scriptedModel
	vars map[string]any
}

func (m *varsModel) TemplateVars() map[string]any { return m.vars }

// Precedence, lowest to highest: config, environment, model, run-scoped
// extras, call-site variables.
func TestRenderMergePrecedence(t *testing.T) {
	config := DefaultConfig()
	config.ObservationTemplate = "from config"

	env := &varsEnv{vars: map[string]any{
		"observation_template": "from env",
		"cwd":                  "/env",
	}}
	model := &varsModel{vars: map[string]any{
		"cwd":   "/model",
		"model": "test-model",
	}}
	a := New(model, env, config)
	a.SetTemplateVar("model", "run-override")

	tests := []struct {
		name     string
		tmpl     string
		callVars map[string]any
		want     string
	}{
		{"env beats config", "{{.observation_template}}", nil, "from env"},
		{"model beats env", "{{.cwd}}", nil, "/model"},
		{"extra beats model", "{{.model}}", nil, "run-override"},
		{"call vars beat everything", "{{.model}}", map[string]any{"model": "call"}, "call"},
		{"config still visible", "{{.action_pattern}}", nil, DefaultConfig().ActionPattern},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.render(tt.tmpl, tt.callVars)
			if err != nil {
				t.Fatalf("render() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("render() = %q, want %q", got, tt.want)
			}
		})
	}
}
