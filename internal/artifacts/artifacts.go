// Package artifacts describes the JSON files a successful run is expected
// to leave in the working directory. The control loop never creates them;
// the driver uses this package to verify the model's claim after a
// submission and to observe files appearing during the run.
package artifacts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xeipuuv/gojsonschema"
)

// Expected artifact file names.
const (
	DiagnosisFile   = "diagnosis_struct_out.json"
	RemediationFile = "remediation_struct_out.json"
	OutputFile      = "agent_output.json"
)

const diagnosisSchema = `{
	"type": "object",
	"properties": {
		"root_cause": {"type": "string"},
		"evidence": {}
	},
	"required": ["root_cause", "evidence"]
}`

const remediationSchema = `{
	"type": "object",
	"properties": {
		"action_taken": {"type": "string"},
		"result": {}
	},
	"required": ["action_taken", "result"]
}`

// Check is the verification result for one expected artifact.
type Check struct {
	Name   string
	Exists bool
	Valid  bool
	Issues []string
}

// Verify inspects the working directory for the three expected artifacts
// and validates the structured ones against their schemas. agent_output.json
// is free-form, so existence is all that is checked for it.
func Verify(dir string) []Check {
	return []Check{
		checkFile(dir, DiagnosisFile, diagnosisSchema),
		checkFile(dir, RemediationFile, remediationSchema),
		checkFile(dir, OutputFile, ""),
	}
}

func checkFile(dir, name, schema string) Check {
	check := Check{Name: name}

	path := filepath.Join(dir, name)
	raw, err := os.ReadFile(path)
	if err != nil {
		check.Issues = append(check.Issues, fmt.Sprintf("not found: %v", err))
		return check
	}
	check.Exists = true

	if schema == "" {
		check.Valid = json.Valid(raw)
		if !check.Valid {
			check.Issues = append(check.Issues, "not valid JSON")
		}
		return check
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		check.Issues = append(check.Issues, fmt.Sprintf("validation failed: %v", err))
		return check
	}
	if !result.Valid() {
		for _, e := range result.Errors() {
			check.Issues = append(check.Issues, e.String())
		}
		return check
	}
	check.Valid = true
	return check
}
