// Package agent implements the autonomous task-agent control loop: it
// repeatedly queries a model, extracts exactly one shell action from the
// reply, executes it against an environment, feeds the observation back
// into the conversation, and repeats until the model submits or a
// configured limit is reached.
package agent

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Agent owns the conversation history and drives the query → parse →
// execute → observe cycle. It is single-threaded by construction: every
// step blocks on the model call and then the execution call, in that
// order, and nothing else touches its state.
type Agent struct {
	config    Config
	model     Model
	env       Environment
	messages  []Message
	extraVars map[string]any
	metrics   Metrics
	hook      Hook
}

// New creates an Agent. The configuration is treated as immutable from
// this point on; metrics live for the lifetime of the instance.
func New(model Model, env Environment, config Config) *Agent {
	return &Agent{
		config:    config,
		model:     model,
		env:       env,
		extraVars: make(map[string]any),
		hook:      NopHook{},
	}
}

// SetHook installs an observer for the run. Passing nil restores the
// no-op default.
func (a *Agent) SetHook(h Hook) {
	if h == nil {
		h = NopHook{}
	}
	a.hook = h
}

// SetTemplateVar registers a run-scoped template variable. It overrides
// config, environment, and model variables of the same name.
func (a *Agent) SetTemplateVar(name string, value any) {
	a.extraVars[name] = value
}

// Messages returns the conversation history accumulated so far.
func (a *Agent) Messages() []Message {
	return a.messages
}

// Metrics returns a snapshot of the execution counters.
func (a *Agent) Metrics() Metrics {
	return a.metrics.snapshot()
}

func (a *Agent) addMessage(role MessageRole, content string, extra map[string]any) {
	a.messages = append(a.messages, Message{
		Role:      role,
		Content:   content,
		Timestamp: float64(time.Now().UnixNano()) / 1e9,
		Extra:     extra,
	})
}

// Run executes steps until the model submits or a limit is reached. The
// history is rebuilt from scratch: one system message, one instance
// message with the task bound, then the step loop.
//
// Faults outside the modeled recoverable/terminal conditions (model
// transport errors, unexpected environment failures, template mistakes)
// return as a non-nil error; the surrounding driver is responsible for
// producing a failure artifact in that case.
func (a *Agent) Run(ctx context.Context, task string) (Result, error) {
	a.extraVars["task"] = task
	a.messages = nil

	system, err := a.render(a.config.SystemTemplate, nil)
	if err != nil {
		return Result{}, err
	}
	a.addMessage(RoleSystem, system, nil)

	instance, err := a.render(a.config.InstanceTemplate, nil)
	if err != nil {
		return Result{}, err
	}
	a.addMessage(RoleUser, instance, nil)

	for {
		cond, err := a.step(ctx)
		if err != nil {
			return Result{}, err
		}
		if cond == nil {
			continue
		}
		a.addMessage(RoleUser, cond.message, nil)
		if cond.terminal {
			result := Result{Status: cond.status, Message: cond.message}
			a.hook.OnDone(result)
			return result, nil
		}
	}
}

// step runs one full model-query → parse → execute → observe cycle. It
// returns a non-nil condition when the cycle was interrupted by a modeled
// recoverable or terminal event; the caller decides what to append and
// whether to keep looping. Assistant messages already appended stay in the
// history either way.
func (a *Agent) step(ctx context.Context) (*condition, error) {
	resp, cond, err := a.query(ctx)
	if cond != nil || err != nil {
		return cond, err
	}

	action, cond, err := a.parseAction(resp)
	if cond != nil || err != nil {
		return cond, err
	}

	result, cond, err := a.executeAction(ctx, action)
	if cond != nil || err != nil {
		return cond, err
	}

	observation, err := a.render(a.config.ObservationTemplate, map[string]any{"output": result.Output})
	if err != nil {
		return nil, err
	}
	a.addMessage(RoleUser, observation, nil)
	a.hook.OnObservation(result)
	return nil, nil
}

// query checks the step and cost limits, then sends the full history to
// the model and appends the response as an assistant message.
//
// Limits are checked only here, at the start of a step, so a single step
// can overshoot the cost limit by at most one model call's cost. That
// slack is accepted: checking mid-call would require cancelling work the
// provider already billed.
func (a *Agent) query(ctx context.Context) (Response, *condition, error) {
	stats := a.model.Stats()
	if (a.config.StepLimit > 0 && stats.Calls >= a.config.StepLimit) ||
		(a.config.CostLimit > 0 && stats.Cost >= a.config.CostLimit) {
		msg := fmt.Sprintf("Agent exceeded its limits: %d model calls made, $%.4f spent.", stats.Calls, stats.Cost)
		return Response{}, terminal(StatusLimitsExceeded, msg), nil
	}

	resp, err := a.model.Query(ctx, a.messages)
	if err != nil {
		return Response{}, nil, err
	}
	a.addMessage(RoleAssistant, resp.Content, resp.Extra)
	a.hook.OnAssistant(resp)
	return resp, nil, nil
}

// executeAction runs one action against the environment and classifies the
// outcome. Every attempt records exactly one latency sample and one
// tool-call increment, on every exit path, because the attempt consumed
// resources whether or not it succeeded.
//
// A non-zero return code is an error for metrics purposes but is still
// reported to the model as data, never retried. A detected submission
// overrides the error classification: a failing command whose output
// starts with the marker still submits (see DESIGN.md).
func (a *Agent) executeAction(ctx context.Context, action Action) (ExecutionResult, *condition, error) {
	a.hook.OnExecute(action)
	start := time.Now()
	isError := false
	defer func() {
		latency := time.Since(start).Seconds()
		a.metrics.record(latency, isError)
		a.hook.OnAttempt(latency, isError)
	}()

	result, err := a.env.Execute(ctx, action.Command)
	if err != nil {
		isError = true
		var timeout *TimeoutError
		if errors.As(err, &timeout) {
			msg, rerr := a.render(a.config.TimeoutTemplate, timeoutVars(action.Command, timeout.Output))
			if rerr != nil {
				return ExecutionResult{}, nil, rerr
			}
			return ExecutionResult{}, recoverable(msg), nil
		}
		// Anything else from the environment is outside the agent's
		// contract and propagates to the driver.
		return ExecutionResult{}, nil, err
	}

	if result.ReturnCode != 0 {
		isError = true
	}

	if final, ok := finalOutput(result.Output); ok {
		isError = false
		return result, terminal(StatusSubmitted, final), nil
	}

	result.Action = action.Command
	return result, nil, nil
}

// timeoutOutputLimit bounds how much timed-out command output is replayed
// to the model; beyond it only the head and tail are kept.
const timeoutOutputLimit = 10000

func timeoutVars(command, output string) map[string]any {
	vars := map[string]any{
		"action":           command,
		"output":           output,
		"output_truncated": false,
		"output_head":      "",
		"output_tail":      "",
		"elided_chars":     0,
	}
	runes := []rune(output)
	if len(runes) >= timeoutOutputLimit {
		half := timeoutOutputLimit / 2
		vars["output_truncated"] = true
		vars["output_head"] = string(runes[:half])
		vars["output_tail"] = string(runes[len(runes)-half:])
		vars["elided_chars"] = len(runes) - timeoutOutputLimit
	}
	return vars
}
