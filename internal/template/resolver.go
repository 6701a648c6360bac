package template

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dop251/goja"

	"github.com/ricekit/ricekit/internal/vars"
	rkerrors "github.com/ricekit/ricekit/pkg/errors"
)

// The resolver evaluates {{ ... }} expressions against the variable context.
// Expressions are single ECMAScript expressions run in a throwaway VM with
// only the context bound; there are no loops or function definitions in the
// sublanguage itself. Anything fancier belongs in a script action.
//
// Resolution is strict: a name missing from the context fails the action
// instead of substituting an empty string. Theming failures are otherwise
// close to impossible to diagnose.

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

var referenceErrorPattern = regexp.MustCompile(`ReferenceError: ([A-Za-z_$][A-Za-z0-9_$]*) is not defined`)

// Resolve substitutes every expression in input and returns the resulting
// string. Inputs without delimiters pass through untouched. Resolution has no
// side effects and is idempotent for a given context.
func Resolve(input string, ctx vars.Context) (string, error) {
	if !strings.Contains(input, openDelim) {
		return input, nil
	}

	vm := newVM(ctx)

	var out strings.Builder
	rest := input
	for {
		start := strings.Index(rest, openDelim)
		if start < 0 {
			out.WriteString(rest)
			return out.String(), nil
		}

		out.WriteString(rest[:start])
		rest = rest[start+len(openDelim):]

		end := strings.Index(rest, closeDelim)
		if end < 0 {
			return "", fmt.Errorf("unterminated expression delimiter in %q", input)
		}

		expr := strings.TrimSpace(rest[:end])
		rest = rest[end+len(closeDelim):]

		value, err := eval(vm, expr)
		if err != nil {
			return "", err
		}
		out.WriteString(value.String())
	}
}

// ResolveValue behaves like Resolve, except that an input consisting of
// exactly one expression yields the expression's typed value rather than its
// string form. Used for non-string action parameters.
func ResolveValue(input string, ctx vars.Context) (any, error) {
	trimmed := strings.TrimSpace(input)
	if strings.HasPrefix(trimmed, openDelim) && strings.HasSuffix(trimmed, closeDelim) {
		inner := trimmed[len(openDelim) : len(trimmed)-len(closeDelim)]
		if !strings.Contains(inner, closeDelim) {
			value, err := eval(newVM(ctx), strings.TrimSpace(inner))
			if err != nil {
				return nil, err
			}
			return value.Export(), nil
		}
	}

	return Resolve(input, ctx)
}

// EvalBool evaluates a condition expression to its truthiness. The expression
// may be written bare ("waybar.ready") or delimiter-wrapped.
func EvalBool(condition string, ctx vars.Context) (bool, error) {
	expr := strings.TrimSpace(condition)
	if strings.HasPrefix(expr, openDelim) && strings.HasSuffix(expr, closeDelim) {
		expr = strings.TrimSpace(expr[len(openDelim) : len(expr)-len(closeDelim)])
	}
	if expr == "" {
		return false, rkerrors.NewValidationError("condition", "empty condition expression", nil)
	}

	value, err := eval(newVM(ctx), expr)
	if err != nil {
		return false, err
	}
	return value.ToBoolean(), nil
}

func newVM(ctx vars.Context) *goja.Runtime {
	vm := goja.New()
	for key, value := range ctx {
		_ = vm.Set(key, value)
	}
	return vm
}

func eval(vm *goja.Runtime, expr string) (goja.Value, error) {
	if expr == "" {
		return nil, rkerrors.NewValidationError("expression", "empty expression", nil)
	}

	value, err := vm.RunString("(" + expr + ")")
	if err != nil {
		if ref, ok := referenceName(err); ok {
			return nil, rkerrors.NewUnresolvedReferenceError(ref, expr)
		}
		return nil, fmt.Errorf("evaluating %q: %w", expr, err)
	}

	if value == nil || goja.IsUndefined(value) {
		return nil, rkerrors.NewUnresolvedReferenceError(expr, expr)
	}
	return value, nil
}

func referenceName(err error) (string, bool) {
	var exception *goja.Exception
	if !errors.As(err, &exception) {
		return "", false
	}
	matches := referenceErrorPattern.FindStringSubmatch(exception.Error())
	if len(matches) != 2 {
		return "", false
	}
	return matches[1], true
}
