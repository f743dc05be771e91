package engine

import "github.com/ecetin/boza/pkg/feature"

// Hooks holds tag-scoped lifecycle hooks. A hook whose TagScope is empty
// fires for every scenario; otherwise it fires only for scenarios carrying
// at least one of its tags. Unset fields are skipped.
type Hooks struct {
	// TagScope restricts which scenarios the hooks fire for.
	TagScope []string

	// BeforeScenario runs before the scenario's first step.
	BeforeScenario func(feature.Scenario)

	// AfterScenario runs after the last step, even when a step failed.
	// The error is nil when the scenario passed so far.
	AfterScenario func(feature.Scenario, error)

	// BeforeStep runs before each step.
	BeforeStep func(feature.Step)

	// AfterStep runs after each step. The error is nil when the step
	// passed.
	AfterStep func(feature.Step, error)
}

// Dispatcher holds the registered hooks in registration order. Like the
// step registry it is built once and read-only afterwards.
type Dispatcher struct {
	hooks []*Hooks
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Add appends hooks, dropping nil entries.
func (d *Dispatcher) Add(hooks ...*Hooks) {
	for _, h := range hooks {
		if h != nil {
			d.hooks = append(d.hooks, h)
		}
	}
}

// InScope returns the hooks applying to a scenario with the given tags,
// preserving registration order.
func (d *Dispatcher) InScope(tags []string) []*Hooks {
	selected := make([]*Hooks, 0, len(d.hooks))
	for _, h := range d.hooks {
		if inScope(tags, h.TagScope) {
			selected = append(selected, h)
		}
	}
	return selected
}
