package agent

// Config holds the immutable parameter set for an agent run: prompt
// templates, the action extraction pattern, and resource limits. It is
// constructed once per run and never mutated.
type Config struct {
	SystemTemplate      string
	InstanceTemplate    string
	TimeoutTemplate     string
	FormatErrorTemplate string
	ObservationTemplate string

	// ActionPattern extracts the shell command from a model response.
	// It must match exactly once per response.
	ActionPattern string

	// StepLimit bounds the number of model calls per run (0 = unlimited).
	StepLimit int
	// CostLimit bounds the accumulated model cost in USD (0 = unlimited).
	CostLimit float64
}

// SubmitMarker ends the run when it is the first output line of an
// executed command. LegacySubmitMarker is accepted equivalently for
// compatibility with older prompt sets.
const (
	SubmitMarker       = "COMPLETE_TASK_AND_SUBMIT_FINAL_OUTPUT"
	LegacySubmitMarker = "MINI_SWE_AGENT_FINAL_OUTPUT"
)

const defaultTimeoutTemplate = `The last command <command>{{.action}}</command> timed out and has been killed.
The output of the command was:
{{if .output_truncated}}<warning>Output was too long and has been truncated.</warning>
<output_head>
{{.output_head}}
</output_head>
<elided_chars>{{.elided_chars}} characters elided</elided_chars>
<output_tail>
{{.output_tail}}
</output_tail>{{else}}<output>
{{.output}}
</output>{{end}}
Please try another command and make sure to avoid those requiring interactive input.`

// DefaultConfig returns the bare-minimum configuration to run the agent.
// Drivers are expected to replace the system and instance templates with
// task-specific prompts.
func DefaultConfig() Config {
	return Config{
		SystemTemplate: "You are a helpful assistant that can do anything.",
		InstanceTemplate: "Your task: {{.task}}. Please reply with a single shell command in triple backticks. " +
			"To finish, the first line of the output of the shell command must be '" + SubmitMarker + "'.",
		TimeoutTemplate:     defaultTimeoutTemplate,
		FormatErrorTemplate: "Please always provide EXACTLY ONE action in triple backticks.",
		ObservationTemplate: "Observation: {{.output}}",
		ActionPattern:       "(?s)```bash\\s*\\n(.*?)\\n```",
		StepLimit:           0,
		CostLimit:           3.0,
	}
}

// templateVars exposes the configuration fields to the template renderer.
// Config fields have the lowest precedence in the merged namespace.
func (c Config) templateVars() map[string]any {
	return map[string]any{
		"system_template":       c.SystemTemplate,
		"instance_template":     c.InstanceTemplate,
		"timeout_template":      c.TimeoutTemplate,
		"format_error_template": c.FormatErrorTemplate,
		"observation_template":  c.ObservationTemplate,
		"action_pattern":        c.ActionPattern,
		"step_limit":            c.StepLimit,
		"cost_limit":            c.CostLimit,
	}
}
