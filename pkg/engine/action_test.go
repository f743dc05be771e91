package engine

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ecetin/boza/pkg/feature"
)

const twoStepFeature = `Feature: X
Scenario: s
  Given step one
  When step two
`

func TestScenarioActionInvoke(t *testing.T) {
	t.Run("should run hooks and steps in order", func(t *testing.T) {
		var trace []string
		record := func(event string) { trace = append(trace, event) }

		e := New(nil)
		require.NoError(t, e.AddStep(feature.Given, Definition{Name: "one", Patterns: []string{`^step one$`}, Handler: func() { record("step one") }}))
		require.NoError(t, e.AddStep(feature.When, Definition{Name: "two", Patterns: []string{`^step two$`}, Handler: func() { record("step two") }}))
		e.AddHook(&Hooks{
			BeforeScenario: func(feature.Scenario) { record("before scenario") },
			AfterScenario:  func(feature.Scenario, error) { record("after scenario") },
			BeforeStep:     func(s feature.Step) { record("before " + s.Text) },
			AfterStep:      func(s feature.Step, _ error) { record("after " + s.Text) },
		})

		actions, err := e.GenerateScenarios(twoStepFeature)
		require.NoError(t, err)
		require.Len(t, actions, 1)
		require.NoError(t, actions[0].Invoke())

		require.Equal(t, []string{
			"before scenario",
			"before step one", "step one", "after step one",
			"before step two", "step two", "after step two",
			"after scenario",
		}, trace)
	})

	t.Run("should interleave hooks from multiple registrations in order", func(t *testing.T) {
		var trace []string

		e := New(nil)
		require.NoError(t, e.AddStep(feature.Given, Definition{Name: "one", Patterns: []string{`^step one$`}, Handler: func() {}}))
		e.AddHook(&Hooks{BeforeStep: func(feature.Step) { trace = append(trace, "first") }})
		e.AddHook(&Hooks{BeforeStep: func(feature.Step) { trace = append(trace, "second") }})

		actions, err := e.GenerateScenarios("Feature: X\nScenario: s\n  Given step one\n")
		require.NoError(t, err)
		require.NoError(t, actions[0].Invoke())
		require.Equal(t, []string{"first", "second"}, trace)
	})

	t.Run("should stop at the first failing step but still run scenario teardown", func(t *testing.T) {
		var trace []string

		e := New(nil)
		require.NoError(t, e.AddStep(feature.Given, Definition{Name: "one", Patterns: []string{`^step one$`}, Handler: func() { panic("boom") }}))
		require.NoError(t, e.AddStep(feature.When, Definition{Name: "two", Patterns: []string{`^step two$`}, Handler: func() { trace = append(trace, "step two") }}))
		e.AddHook(&Hooks{AfterScenario: func(_ feature.Scenario, failure error) {
			trace = append(trace, fmt.Sprintf("teardown failure=%v", failure != nil))
		}})

		actions, err := e.GenerateScenarios(twoStepFeature)
		require.NoError(t, err)

		err = actions[0].Invoke()
		require.ErrorContains(t, err, "boom")
		require.Equal(t, []string{"teardown failure=true"}, trace)
	})

	t.Run("should wrap step failures with scenario name and source line", func(t *testing.T) {
		e := New(nil)
		require.NoError(t, e.AddStep(feature.Given, Definition{Name: "one", Patterns: []string{`^step one$`}, Handler: func() { panic("boom") }}))
		require.NoError(t, e.AddStep(feature.When, Definition{Name: "two", Patterns: []string{`^step two$`}, Handler: func() {}}))

		actions, err := e.GenerateScenarios(twoStepFeature)
		require.NoError(t, err)

		err = actions[0].Invoke()

		var stepErr *StepError
		require.ErrorAs(t, err, &stepErr)
		require.Equal(t, "s", stepErr.Scenario)
		require.Equal(t, 3, stepErr.Line)
		require.ErrorContains(t, stepErr.Unwrap(), "boom")
	})

	t.Run("should join a failing teardown hook with the original failure", func(t *testing.T) {
		e := New(nil)
		require.NoError(t, e.AddStep(feature.Given, Definition{Name: "one", Patterns: []string{`^step one$`}, Handler: func() { panic("step failed") }}))
		require.NoError(t, e.AddStep(feature.When, Definition{Name: "two", Patterns: []string{`^step two$`}, Handler: func() {}}))
		e.AddHook(&Hooks{AfterScenario: func(feature.Scenario, error) { panic("teardown failed") }})

		actions, err := e.GenerateScenarios(twoStepFeature)
		require.NoError(t, err)

		err = actions[0].Invoke()
		require.ErrorContains(t, err, "step failed")
		require.ErrorContains(t, err, "teardown failed")
	})

	t.Run("should abort before any step when a before scenario hook fails", func(t *testing.T) {
		var stepRan bool

		e := New(nil)
		require.NoError(t, e.AddStep(feature.Given, Definition{Name: "one", Patterns: []string{`^step one$`}, Handler: func() { stepRan = true }}))
		e.AddHook(&Hooks{BeforeScenario: func(feature.Scenario) { panic("setup failed") }})

		actions, err := e.GenerateScenarios("Feature: X\nScenario: s\n  Given step one\n")
		require.NoError(t, err)

		err = actions[0].Invoke()
		require.ErrorContains(t, err, "setup failed")
		require.False(t, stepRan)
	})

	t.Run("should pass the step error to after step hooks", func(t *testing.T) {
		var seen []error

		e := New(nil)
		require.NoError(t, e.AddStep(feature.Given, Definition{Name: "one", Patterns: []string{`^step one$`}, Handler: func() { panic("boom") }}))
		e.AddHook(&Hooks{AfterStep: func(_ feature.Step, err error) { seen = append(seen, err) }})

		actions, err := e.GenerateScenarios("Feature: X\nScenario: s\n  Given step one\n")
		require.NoError(t, err)

		require.Error(t, actions[0].Invoke())
		require.Len(t, seen, 1)
		require.ErrorContains(t, seen[0], "boom")
	})

	t.Run("should only see hooks whose tag scope matches the scenario", func(t *testing.T) {
		var trace []string

		e := New(nil)
		require.NoError(t, e.AddStep(feature.Given, Definition{Name: "one", Patterns: []string{`^step one$`}, Handler: func() {}}))
		e.AddHook(&Hooks{TagScope: []string{"smoke"}, BeforeScenario: func(feature.Scenario) { trace = append(trace, "smoke") }})
		e.AddHook(&Hooks{TagScope: []string{"nightly"}, BeforeScenario: func(feature.Scenario) { trace = append(trace, "nightly") }})

		actions, err := e.GenerateScenarios("Feature: X\n@smoke\nScenario: s\n  Given step one\n")
		require.NoError(t, err)
		require.NoError(t, actions[0].Invoke())
		require.Equal(t, []string{"smoke"}, trace)
	})

	t.Run("should be invocable repeatedly", func(t *testing.T) {
		var count int

		e := New(nil)
		require.NoError(t, e.AddStep(feature.Given, Definition{Name: "one", Patterns: []string{`^step one$`}, Handler: func() { count++ }}))

		actions, err := e.GenerateScenarios("Feature: X\nScenario: s\n  Given step one\n")
		require.NoError(t, err)
		require.NoError(t, actions[0].Invoke())
		require.NoError(t, actions[0].Invoke())
		require.Equal(t, 2, count)
	})
}

func TestCapture(t *testing.T) {
	require.NoError(t, capture(func() {}))

	err := capture(func() { panic("plain panic") })
	require.EqualError(t, err, "plain panic")

	wrapped := errors.New("typed failure")
	err = capture(func() { panic(wrapped) })
	require.Same(t, wrapped, err)
}
