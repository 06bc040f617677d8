package agent

import (
	"fmt"
	"regexp"
	"strings"
)

// parseAction extracts the single shell command from a model response by
// applying the configured action pattern. Exactly one match is required:
// anything else produces a recoverable format condition carrying the
// rendered format-error message (with the list of what was found bound as
// a template variable) so the model can correct itself.
//
// Enforcing one action per turn keeps execution deterministic and keeps
// the submission marker check unambiguous.
func (a *Agent) parseAction(resp Response) (Action, *condition, error) {
	re, err := regexp.Compile(a.config.ActionPattern)
	if err != nil {
		return Action{}, nil, fmt.Errorf("invalid action pattern %q: %w", a.config.ActionPattern, err)
	}

	var actions []string
	for _, m := range re.FindAllStringSubmatch(resp.Content, -1) {
		if len(m) > 1 {
			actions = append(actions, m[1])
		}
	}

	if len(actions) != 1 {
		msg, rerr := a.render(a.config.FormatErrorTemplate, map[string]any{"actions": actions})
		if rerr != nil {
			return Action{}, nil, rerr
		}
		return Action{}, recoverable(msg), nil
	}

	return Action{Command: strings.TrimSpace(actions[0]), Response: resp}, nil, nil
}
