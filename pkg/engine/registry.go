package engine

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"slices"

	"github.com/ecetin/boza/pkg/feature"
)

// Definition is the registration tuple handed over by the handler-discovery
// collaborator. When Patterns is empty the Name is used as a literal
// pattern. Generic marks a definition discovered as an uninstantiated
// generic function; it registers but can never be invoked.
type Definition struct {
	Name     string
	Patterns []string
	TagScope []string
	Handler  any
	Generic  bool
}

// StepDefinition is a compiled Definition held by the Registry.
type StepDefinition struct {
	Definition
	patterns []*regexp.Regexp
}

// Registry holds the Given/When/Then pattern lists. It is built once from
// the discovery output and treated as read-only afterwards, so concurrent
// resolution is safe.
type Registry struct {
	defs map[feature.StepKind][]*StepDefinition
	seen map[feature.StepKind]map[string]bool
}

func NewRegistry() *Registry {
	return &Registry{
		defs: make(map[feature.StepKind][]*StepDefinition),
		seen: make(map[feature.StepKind]map[string]bool),
	}
}

// Add compiles and registers one step definition. Duplicate pattern strings
// attached to the same definition collapse to one; a pattern already
// registered for the same kind is rejected.
func (r *Registry) Add(kind feature.StepKind, def Definition) error {
	if def.Handler == nil && !def.Generic {
		return fmt.Errorf("step definition %q has no handler", def.Name)
	}
	if def.Handler != nil && reflect.TypeOf(def.Handler).Kind() != reflect.Func {
		return fmt.Errorf("step handler must be a function, got %T", def.Handler)
	}

	raw := dedupe(def.Patterns)
	if len(raw) == 0 {
		if def.Name == "" {
			return errors.New("step definition needs a pattern or a name")
		}
		raw = []string{regexp.QuoteMeta(def.Name)}
	}

	compiled := make([]*regexp.Regexp, 0, len(raw))
	for _, p := range raw {
		if r.seen[kind] == nil {
			r.seen[kind] = make(map[string]bool)
		}
		if r.seen[kind][p] {
			return fmt.Errorf("duplicate step pattern: %s", p)
		}
		re, err := regexp.Compile(p)
		if err != nil {
			return fmt.Errorf("invalid step pattern %q: %w", p, err)
		}
		r.seen[kind][p] = true
		compiled = append(compiled, re)
	}

	def.Patterns = raw
	r.defs[kind] = append(r.defs[kind], &StepDefinition{Definition: def, patterns: compiled})
	return nil
}

// ResolvedStep is the binding of one step line to exactly one definition,
// with its arguments already extracted and converted. Args holds the raw
// capture-group strings; call holds the fully converted argument list.
type ResolvedStep struct {
	Step feature.Step
	Def  *StepDefinition
	Args []string

	call []reflect.Value
}

// Resolve matches a step line against the registry, enforcing tag scope,
// the exactly-one-match rule, return-type and arity checks, and converts
// the captured arguments to the handler's parameter types.
func (r *Registry) Resolve(tags []string, step feature.Step, values *Values) (*ResolvedStep, error) {
	type candidate struct {
		def     *StepDefinition
		pattern string
		groups  []string
	}

	var matches []candidate
	for _, def := range r.defs[step.Kind] {
		if !inScope(tags, def.TagScope) {
			continue
		}
		for i, re := range def.patterns {
			if m := re.FindStringSubmatch(step.Text); m != nil {
				matches = append(matches, candidate{def, def.Patterns[i], m[1:]})
			}
		}
	}

	switch len(matches) {
	case 0:
		return nil, &MissingStepError{Kind: step.Kind, Text: step.Text, Line: step.Line.Number}
	case 1:
	default:
		patterns := make([]string, len(matches))
		for i, m := range matches {
			patterns[i] = m.pattern
		}
		return nil, &AmbiguousStepError{Text: step.Text, Line: step.Line.Number, Patterns: patterns}
	}

	m := matches[0]
	if m.def.Generic {
		return nil, &GenericStepError{Name: m.def.Name, Text: step.Text, Line: step.Line.Number}
	}

	fnType := reflect.TypeOf(m.def.Handler)
	if fnType.NumOut() != 0 {
		return nil, &ReturnTypeError{Pattern: m.pattern, Text: step.Text, Line: step.Line.Number}
	}

	got := len(m.groups)
	if step.Line.Table != nil {
		got++
	}
	if len(step.Line.Bullets) > 0 {
		got++
	}
	if got != fnType.NumIn() {
		return nil, &ArityError{Text: step.Text, Line: step.Line.Number, Want: fnType.NumIn(), Got: got}
	}

	call := make([]reflect.Value, 0, got)
	for i := 0; i < fnType.NumIn(); i++ {
		var raw any
		switch {
		case i < len(m.groups):
			raw = m.groups[i]
		case step.Line.Table != nil && i == len(m.groups):
			raw = *step.Line.Table
		default:
			raw = step.Line.Bullets
		}
		cv, err := values.convert(raw, fnType.In(i))
		if err != nil {
			return nil, fmt.Errorf("step %q (line %d): argument %d: %w", step.Text, step.Line.Number, i+1, err)
		}
		call = append(call, cv)
	}

	return &ResolvedStep{Step: step, Def: m.def, Args: m.groups, call: call}, nil
}

// invoke calls the bound handler, turning a panic into an error.
func (rs *ResolvedStep) invoke() (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = recoveredError(rec)
		}
	}()
	reflect.ValueOf(rs.Def.Handler).Call(rs.call)
	return nil
}

func recoveredError(rec any) error {
	if e, ok := rec.(error); ok {
		return e
	}
	return fmt.Errorf("%v", rec)
}

// inScope reports whether a tag-scoped definition or hook applies to a
// scenario. An empty scope is always in scope; a non-empty scope needs at
// least one of its tags on the scenario.
func inScope(tags, scope []string) bool {
	if len(scope) == 0 {
		return true
	}
	for _, s := range scope {
		if slices.Contains(tags, s) {
			return true
		}
	}
	return false
}

func dedupe(patterns []string) []string {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	return out
}
