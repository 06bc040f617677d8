package agent

// Status is the terminal state of a run.
type Status string

const (
	// StatusSubmitted means the model declared the task finished via the
	// submission marker.
	StatusSubmitted Status = "Submitted"
	// StatusLimitsExceeded means the configured step or cost limit was
	// reached before the task finished.
	StatusLimitsExceeded Status = "LimitsExceeded"
)

// Result is the terminal outcome of a run. For StatusSubmitted the message
// is the final output the model submitted (everything after the marker
// line).
type Result struct {
	Status  Status
	Message string
}

// condition is a modeled interruption of a step. It replaces the
// recoverable/terminal exception pair of exception-driven designs with an
// explicit tagged value the loop switches on:
//
//   - nil condition: the step completed normally, loop continues.
//   - recoverable (terminal == false): the message is appended as a user
//     turn so the model can self-correct, loop continues.
//   - terminal: the message is appended as a final user turn and the run
//     returns Result{status, message}.
//
// Anything else (model transport failures, unexpected environment faults)
// is a plain error and propagates out of the loop untouched: the agent only
// recovers from conditions it explicitly models.
type condition struct {
	terminal bool
	status   Status // set when terminal
	message  string
}

func recoverable(message string) *condition {
	return &condition{message: message}
}

func terminal(status Status, message string) *condition {
	return &condition{terminal: true, status: status, message: message}
}
