package agent

// Hook receives notifications as the loop progresses. Hooks are
// observational: they cannot alter the run.
type Hook interface {
	// OnAssistant fires after the model's response is appended to history.
	OnAssistant(resp Response)
	// OnExecute fires just before an action is executed.
	OnExecute(action Action)
	// OnObservation fires after a successful (non-terminal) execution,
	// with the result the observation was rendered from.
	OnObservation(result ExecutionResult)
	// OnAttempt fires once per attempted execution, after metrics are
	// recorded, on every exit path.
	OnAttempt(latencySeconds float64, isError bool)
	// OnDone fires when the run reaches a terminal status.
	OnDone(result Result)
}

// NopHook lets you implement only the callbacks you need.
type NopHook struct{}

func (NopHook) OnAssistant(Response)          {}
func (NopHook) OnExecute(Action)              {}
func (NopHook) OnObservation(ExecutionResult) {}
func (NopHook) OnAttempt(float64, bool)       {}
func (NopHook) OnDone(Result)                 {}
