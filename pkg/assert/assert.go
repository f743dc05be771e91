// Package assert provides fail-fast assertion helpers for step handlers.
// A failing assertion panics; the engine recovers the panic and records it
// as the step's failure.
package assert

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Failure is the panic value raised by a failing assertion.
type Failure struct {
	Msg string
}

func (f *Failure) Error() string { return f.Msg }

func fail(msgAndArgs []any, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if len(msgAndArgs) > 0 {
		if head, ok := msgAndArgs[0].(string); ok {
			msg = fmt.Sprintf(head, msgAndArgs[1:]...) + ": " + msg
		}
	}
	panic(&Failure{Msg: msg})
}

// Equal asserts that expected and actual are deeply equal.
func Equal(expected, actual any, msgAndArgs ...any) {
	if !reflect.DeepEqual(expected, actual) {
		fail(msgAndArgs, "expected %v, got %v", expected, actual)
	}
}

// NotEqual asserts that expected and actual differ.
func NotEqual(expected, actual any, msgAndArgs ...any) {
	if reflect.DeepEqual(expected, actual) {
		fail(msgAndArgs, "expected values to differ, both are %v", expected)
	}
}

// True asserts that condition holds.
func True(condition bool, msgAndArgs ...any) {
	if !condition {
		fail(msgAndArgs, "expected true, got false")
	}
}

// False asserts that condition does not hold.
func False(condition bool, msgAndArgs ...any) {
	if condition {
		fail(msgAndArgs, "expected false, got true")
	}
}

// NoError asserts that err is nil.
func NoError(err error, msgAndArgs ...any) {
	if err != nil {
		fail(msgAndArgs, "unexpected error: %v", err)
	}
}

// Error asserts that err is not nil.
func Error(err error, msgAndArgs ...any) {
	if err == nil {
		fail(msgAndArgs, "expected an error, got nil")
	}
}

// ErrorIs asserts that target is in err's chain.
func ErrorIs(err, target error, msgAndArgs ...any) {
	if !errors.Is(err, target) {
		fail(msgAndArgs, "expected error %v, got %v", target, err)
	}
}

// Contains asserts that the string s contains substr.
func Contains(s, substr string, msgAndArgs ...any) {
	if !strings.Contains(s, substr) {
		fail(msgAndArgs, "%q does not contain %q", s, substr)
	}
}

// Len asserts that the collection has the given length.
func Len(collection any, length int, msgAndArgs ...any) {
	v := reflect.ValueOf(collection)
	switch v.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.String, reflect.Chan:
		if v.Len() != length {
			fail(msgAndArgs, "expected length %d, got %d", length, v.Len())
		}
	default:
		fail(msgAndArgs, "cannot take the length of %T", collection)
	}
}

// Failf fails the step unconditionally with a formatted message.
func Failf(format string, args ...any) {
	fail(nil, format, args...)
}
