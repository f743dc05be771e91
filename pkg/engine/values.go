package engine

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// ParserFunc converts a raw captured value (a capture-group string, a
// feature.Table or a []string bullet list) into the handler's declared
// parameter type.
type ParserFunc func(raw any) (any, error)

// Values maps a target parameter type to its converter. The table is built
// once during registration and read-only afterwards.
type Values struct {
	parsers map[reflect.Type]ParserFunc
}

func NewValues() *Values {
	return &Values{parsers: make(map[reflect.Type]ParserFunc)}
}

// Register installs a converter for the type of specimen.
func (v *Values) Register(specimen any, fn ParserFunc) {
	v.parsers[reflect.TypeOf(specimen)] = fn
}

// convert produces a value of the target type from a raw captured argument.
// Exact type matches pass through untouched, then registered parsers are
// consulted, then plain string conversions for primitive kinds.
func (v *Values) convert(raw any, target reflect.Type) (reflect.Value, error) {
	rv := reflect.ValueOf(raw)
	if rv.Type() == target {
		return rv, nil
	}

	if fn, ok := v.parsers[target]; ok {
		parsed, err := fn(raw)
		if err != nil {
			return reflect.Value{}, err
		}
		pv := reflect.ValueOf(parsed)
		if pv.Type().AssignableTo(target) {
			return pv, nil
		}
		if pv.Type().ConvertibleTo(target) {
			return pv.Convert(target), nil
		}
		return reflect.Value{}, fmt.Errorf("value parser for %s returned %T", target, parsed)
	}

	if s, ok := raw.(string); ok {
		return convertString(s, target)
	}
	if rv.Type().ConvertibleTo(target) {
		return rv.Convert(target), nil
	}
	return reflect.Value{}, fmt.Errorf("no value parser registered for %s", target)
}

// convertString converts a captured string to a primitive-kinded target,
// including named types with a primitive underlying type.
func convertString(arg string, target reflect.Type) (reflect.Value, error) {
	out := reflect.New(target).Elem()

	switch target.Kind() {
	case reflect.String:
		out.SetString(arg)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(arg, 10, target.Bits())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("cannot parse %q as %s: %w", arg, target, err)
		}
		out.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(arg, 10, target.Bits())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("cannot parse %q as %s: %w", arg, target, err)
		}
		out.SetUint(n)

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(arg, target.Bits())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("cannot parse %q as %s: %w", arg, target, err)
		}
		out.SetFloat(f)

	case reflect.Bool:
		b, err := parseBoolWord(arg)
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetBool(b)

	default:
		return reflect.Value{}, fmt.Errorf("no value parser registered for %s", target)
	}
	return out, nil
}

// parseBoolWord accepts the usual strconv spellings plus the toggle words
// that show up in feature text.
func parseBoolWord(arg string) (bool, error) {
	switch strings.ToLower(arg) {
	case "true", "1", "yes", "on", "enabled":
		return true, nil
	case "false", "0", "no", "off", "disabled":
		return false, nil
	default:
		return false, fmt.Errorf("cannot parse %q as bool", arg)
	}
}
