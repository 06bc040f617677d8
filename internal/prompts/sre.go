// Package prompts holds the SRE prompt set: the system persona and the
// task prompt built from the current alert state.
package prompts

import (
	"encoding/json"
	"fmt"

	"github.com/lumynops/sreagent/internal/agent"
	"github.com/lumynops/sreagent/internal/alerts"
)

// SRESystemPrompt is the system persona for incident diagnosis runs.
const SRESystemPrompt = "You are a Site Reliability Engineer (SRE). " +
	"Your goal is to diagnose and remediate issues in a Kubernetes environment. " +
	"You have access to bash commands, including `kubectl`, `curl`, and standard linux utilities. " +
	"Execute commands to investigate the issue and fix it."

// BuildTaskPrompt composes the task prompt handed to the agent: the firing
// alerts as a fenced JSON block, the diagnosis/remediation instructions,
// and the artifact contract the run is expected to fulfill.
func BuildTaskPrompt(firing []alerts.Alert) (string, error) {
	alertsJSON, err := json.MarshalIndent(firing, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize alerts: %w", err)
	}

	return fmt.Sprintf("There are currently %d firing alerts in the system.\n\n"+
		"Active Alerts:\n"+
		"```json\n%s\n```\n\n"+
		"Your Task:\n"+
		"1. Diagnose the root cause of these alerts.\n"+
		"2. Fix the issue if possible.\n"+
		"3. Once you are confident the issue is resolved (or you have a diagnosis), create the following output files in the current directory:\n"+
		"   - `diagnosis_struct_out.json`: A JSON block with diagnosis details (fields: `root_cause`, `evidence`).\n"+
		"   - `remediation_struct_out.json`: A JSON block with remediation details (fields: `action_taken`, `result`).\n"+
		"   - `agent_output.json`: A combined JSON with any other relevant info.\n\n"+
		"When you are done and the files are created, reply with '%s'.",
		len(firing), alertsJSON, agent.SubmitMarker), nil
}
