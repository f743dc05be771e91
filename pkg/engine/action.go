package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ecetin/boza/pkg/feature"
)

// ScenarioAction binds one scenario's resolved steps and in-scope hooks
// into a single invocable. It holds no state between invocations, so it may
// be invoked repeatedly; re-invocation re-runs hooks and steps.
type ScenarioAction struct {
	// ID uniquely identifies this generated scenario within the process.
	ID string

	// Name is the scenario name; outline-derived scenarios carry their
	// 0-based ordinal suffix.
	Name string

	// Description is the newline-joined step texts.
	Description string

	// Tags are the scenario's tags, feature tags included.
	Tags []string

	// Parameters holds the example-row values an outline-derived scenario
	// was expanded with. Empty for plain scenarios.
	Parameters []feature.Param

	scenario feature.Scenario
	steps    []*ResolvedStep
	hooks    []*Hooks
}

// NewScenarioAction assembles the executable for one scenario.
func NewScenarioAction(sc feature.Scenario, steps []*ResolvedStep, hooks []*Hooks) *ScenarioAction {
	texts := make([]string, len(sc.Steps))
	for i, s := range sc.Steps {
		texts[i] = s.Text
	}
	return &ScenarioAction{
		ID:          uuid.NewString(),
		Name:        sc.Name,
		Description: strings.Join(texts, "\n"),
		Tags:        sc.Tags,
		Parameters:  sc.Params,
		scenario:    sc,
		steps:       steps,
		hooks:       hooks,
	}
}

// Invoke runs the scenario synchronously in the calling goroutine: all
// in-scope BeforeScenario hooks, then per step the BeforeStep hooks, the
// step itself and the AfterStep hooks, and finally the AfterScenario hooks.
// AfterScenario hooks run even when a step failed; a failing teardown hook
// is joined with the original failure rather than replacing it.
func (a *ScenarioAction) Invoke() error {
	failure := a.beforeScenario()
	if failure == nil {
		failure = a.runSteps()
	}
	teardown := a.afterScenario(failure)

	switch {
	case failure != nil && teardown != nil:
		return errors.Join(failure, teardown)
	case failure != nil:
		return failure
	default:
		return teardown
	}
}

func (a *ScenarioAction) beforeScenario() error {
	for _, h := range a.hooks {
		if h.BeforeScenario == nil {
			continue
		}
		if err := capture(func() { h.BeforeScenario(a.scenario) }); err != nil {
			return fmt.Errorf("scenario %q: before scenario hook: %w", a.Name, err)
		}
	}
	return nil
}

func (a *ScenarioAction) afterScenario(failure error) error {
	var errs []error
	for _, h := range a.hooks {
		if h.AfterScenario == nil {
			continue
		}
		if err := capture(func() { h.AfterScenario(a.scenario, failure) }); err != nil {
			errs = append(errs, fmt.Errorf("scenario %q: after scenario hook: %w", a.Name, err))
		}
	}
	return errors.Join(errs...)
}

func (a *ScenarioAction) runSteps() error {
	for _, rs := range a.steps {
		step := rs.Step

		for _, h := range a.hooks {
			if h.BeforeStep == nil {
				continue
			}
			if err := capture(func() { h.BeforeStep(step) }); err != nil {
				return &StepError{Scenario: a.Name, Line: step.Line.Number, Err: fmt.Errorf("before step hook: %w", err)}
			}
		}

		stepErr := rs.invoke()

		var hookErr error
		for _, h := range a.hooks {
			if h.AfterStep == nil {
				continue
			}
			if err := capture(func() { h.AfterStep(step, stepErr) }); err != nil && hookErr == nil {
				hookErr = fmt.Errorf("after step hook: %w", err)
			}
		}

		if stepErr != nil {
			return &StepError{Scenario: a.Name, Line: step.Line.Number, Err: stepErr}
		}
		if hookErr != nil {
			return &StepError{Scenario: a.Name, Line: step.Line.Number, Err: hookErr}
		}
	}
	return nil
}

// capture runs fn and converts a panic into an error. Step handlers and
// hooks signal failure by panicking.
func capture(fn func()) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = recoveredError(rec)
		}
	}()
	fn()
	return nil
}
