// Package engine resolves parsed feature scenarios against a registry of
// step definitions and assembles them into executable scenario actions.
//
// All registries (step definitions, hooks, value parsers) are built once
// during setup and never mutated afterwards; generation and execution are
// synchronous and free of I/O.
package engine

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ecetin/boza/pkg/feature"
)

// Engine owns the step registry, the value-parser table and the hook
// dispatcher, and turns feature text into executable scenario actions.
type Engine struct {
	registry *Registry
	values   *Values
	hooks    *Dispatcher
	config   *Config
}

// New creates an engine with empty registries. A nil config gets defaults.
func New(cfg *Config) *Engine {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Logger == nil {
		cfg.Logger = noopLogger{}
	}
	return &Engine{
		registry: NewRegistry(),
		values:   NewValues(),
		hooks:    NewDispatcher(),
		config:   cfg,
	}
}

// AddStep registers a step definition for the given kind.
func (e *Engine) AddStep(kind feature.StepKind, def Definition) error {
	return e.registry.Add(kind, def)
}

// AddHook registers lifecycle hooks.
func (e *Engine) AddHook(hooks ...*Hooks) {
	e.hooks.Add(hooks...)
}

// AddParser registers a value parser for the type of specimen.
func (e *Engine) AddParser(specimen any, fn ParserFunc) {
	e.values.Register(specimen, fn)
}

// Feature bundles the parsed feature name, its source locator and the
// generated scenario actions.
type Feature struct {
	ID        string
	Name      string
	Source    string
	Scenarios []*ScenarioAction
}

// GenerateScenarios parses and expands the feature text and binds every
// scenario to its handlers and in-scope hooks. All resolution errors
// (missing or ambiguous definitions, arity mismatches, parse errors)
// surface here, before anything executes.
func (e *Engine) GenerateScenarios(text string) ([]*ScenarioAction, error) {
	_, actions, err := e.generate(text)
	return actions, err
}

// GenerateFeature is GenerateScenarios plus the feature metadata.
func (e *Engine) GenerateFeature(source, text string) (*Feature, error) {
	doc, actions, err := e.generate(text)
	if err != nil {
		return nil, err
	}
	return &Feature{
		ID:        uuid.NewString(),
		Name:      doc.Name,
		Source:    source,
		Scenarios: actions,
	}, nil
}

// Execute generates and invokes every scenario action in document order.
// Without FailFast every scenario runs and the first failure is returned.
func (e *Engine) Execute(text string) error {
	actions, err := e.GenerateScenarios(text)
	if err != nil {
		return err
	}

	var first error
	for _, action := range actions {
		if err := action.Invoke(); err != nil {
			e.config.Logger.Error("scenario failed", "scenario", action.Name, "error", err)
			if e.config.FailFast {
				return err
			}
			if first == nil {
				first = err
			}
			continue
		}
		e.config.Logger.Debug("scenario passed", "scenario", action.Name)
	}
	return first
}

func (e *Engine) generate(text string) (*feature.Document, []*ScenarioAction, error) {
	doc, err := feature.Parse(text)
	if err != nil {
		return nil, nil, err
	}

	scenarios := doc.Scenarios()
	actions := make([]*ScenarioAction, 0, len(scenarios))
	for _, sc := range scenarios {
		resolved := make([]*ResolvedStep, 0, len(sc.Steps))
		for _, step := range sc.Steps {
			rs, err := e.registry.Resolve(sc.Tags, step, e.values)
			if err != nil {
				return nil, nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
			}
			resolved = append(resolved, rs)
		}
		actions = append(actions, NewScenarioAction(sc, resolved, e.hooks.InScope(sc.Tags)))
	}
	return doc, actions, nil
}
