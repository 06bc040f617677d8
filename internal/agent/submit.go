package agent

import (
	"strings"
	"unicode"
)

// finalOutput checks execution output for the submission marker. If the
// first non-empty line, stripped, equals the marker (or its legacy alias),
// it returns the remaining lines joined in original order and true.
//
// This runs after every executed action, not only at end of run: the model
// can submit on any turn.
func finalOutput(output string) (string, bool) {
	trimmed := strings.TrimLeftFunc(output, unicode.IsSpace)
	if trimmed == "" {
		return "", false
	}

	first := trimmed
	rest := ""
	if i := strings.IndexByte(trimmed, '\n'); i >= 0 {
		first, rest = trimmed[:i], trimmed[i+1:]
	}

	switch strings.TrimSpace(first) {
	case SubmitMarker, LegacySubmitMarker:
		return rest, true
	}
	return "", false
}
