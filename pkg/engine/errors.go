package engine

import (
	"fmt"
	"strings"

	"github.com/ecetin/boza/pkg/feature"
)

// MissingStepError is returned when no registered in-scope pattern of the
// step's kind matches its text.
type MissingStepError struct {
	Kind feature.StepKind
	Text string
	Line int
}

func (e *MissingStepError) Error() string {
	return fmt.Sprintf("no step definition matches %s %q (line %d)", e.Kind, e.Text, e.Line)
}

// AmbiguousStepError is returned when more than one in-scope pattern
// matches a step's text.
type AmbiguousStepError struct {
	Text     string
	Line     int
	Patterns []string
}

func (e *AmbiguousStepError) Error() string {
	return fmt.Sprintf("step %q (line %d) matches %d step definitions: %s",
		e.Text, e.Line, len(e.Patterns), strings.Join(e.Patterns, ", "))
}

// ReturnTypeError is returned when the matched handler declares return
// values. Step handlers signal failure by panicking, not by returning.
type ReturnTypeError struct {
	Pattern string
	Text    string
	Line    int
}

func (e *ReturnTypeError) Error() string {
	return fmt.Sprintf("step definition %q matched by %q (line %d) must not return values", e.Pattern, e.Text, e.Line)
}

// GenericStepError is returned when the matched definition was discovered
// as an uninstantiated generic function and therefore cannot be invoked.
type GenericStepError struct {
	Name string
	Text string
	Line int
}

func (e *GenericStepError) Error() string {
	return fmt.Sprintf("step definition %s matched by %q (line %d) is generic and cannot be invoked", e.Name, e.Text, e.Line)
}

// ArityError is returned when the captured argument count (regex groups
// plus table plus bullets) disagrees with the handler's parameter count.
type ArityError struct {
	Text string
	Line int
	Want int // handler parameter count
	Got  int // captured argument count
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("step %q (line %d): handler takes %d parameters but %d arguments were captured",
		e.Text, e.Line, e.Want, e.Got)
}

// StepError wraps a failure raised while invoking a bound step or a
// step-level hook, carrying the scenario name and source line.
type StepError struct {
	Scenario string
	Line     int
	Err      error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("scenario %q: step at line %d failed: %v", e.Scenario, e.Line, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
