package agent

import (
	"fmt"
	"strings"
	"text/template"
)

// Render renders a prompt template against an explicit variable map.
// Referencing a variable that is not present in vars is an error, not a
// silent substitution: a template/configuration mismatch must surface
// immediately instead of producing a corrupted prompt.
//
// Rendering is deterministic: identical template and variables produce
// byte-identical output.
func Render(tmpl string, vars map[string]any) (string, error) {
	t, err := template.New("prompt").Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("invalid template: %w", err)
	}
	var sb strings.Builder
	if err := t.Execute(&sb, vars); err != nil {
		return "", fmt.Errorf("template rendering failed: %w", err)
	}
	return sb.String(), nil
}

// render renders tmpl against the merged variable namespace. Precedence,
// lowest to highest: config fields, environment template vars, model
// template vars, run-scoped extra vars, then callVars.
func (a *Agent) render(tmpl string, callVars map[string]any) (string, error) {
	merged := a.config.templateVars()
	for k, v := range a.env.TemplateVars() {
		merged[k] = v
	}
	for k, v := range a.model.TemplateVars() {
		merged[k] = v
	}
	for k, v := range a.extraVars {
		merged[k] = v
	}
	for k, v := range callVars {
		merged[k] = v
	}
	return Render(tmpl, merged)
}
