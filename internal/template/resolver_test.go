package template

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ricekit/ricekit/internal/vars"
	rkerrors "github.com/ricekit/ricekit/pkg/errors"
)

func testContext() vars.Context {
	return vars.Context{
		"accent": "#ff7700",
		"wallpaper": map[string]any{
			"path": "/walls/sunset.png",
			"mode": "fill",
		},
		"font_size": 13,
		"dark":      true,
	}
}

func TestResolvePassThrough(t *testing.T) {
	t.Parallel()

	out, err := Resolve("no expressions here", testContext())
	require.NoError(t, err)
	require.Equal(t, "no expressions here", out)
}

func TestResolveSubstitutesVariables(t *testing.T) {
	t.Parallel()

	out, err := Resolve("color {{ accent }} on {{ wallpaper.path }}", testContext())
	require.NoError(t, err)
	require.Equal(t, "color #ff7700 on /walls/sunset.png", out)
}

func TestResolveSupportsExpressions(t *testing.T) {
	t.Parallel()

	out, err := Resolve("size={{ font_size + 2 }}", testContext())
	require.NoError(t, err)
	require.Equal(t, "size=15", out)
}

func TestResolveUndefinedNameFails(t *testing.T) {
	t.Parallel()

	_, err := Resolve("{{ missing_var }}", testContext())
	require.Error(t, err)

	var refErr *rkerrors.UnresolvedReferenceError
	require.True(t, errors.As(err, &refErr))
	require.Equal(t, "missing_var", refErr.Reference)
}

func TestResolveUndefinedAttributeFails(t *testing.T) {
	t.Parallel()

	_, err := Resolve("{{ wallpaper.resolution }}", testContext())
	require.Error(t, err)

	var refErr *rkerrors.UnresolvedReferenceError
	require.True(t, errors.As(err, &refErr), "attribute misses must not substitute empty strings")
}

func TestResolveNeverSubstitutesEmpty(t *testing.T) {
	t.Parallel()

	out, err := Resolve("pre {{ nope }} post", testContext())
	require.Error(t, err)
	require.Empty(t, out)
}

func TestResolveUnterminatedDelimiter(t *testing.T) {
	t.Parallel()

	_, err := Resolve("{{ accent", testContext())
	require.Error(t, err)
	require.Contains(t, err.Error(), "unterminated")
}

func TestResolveIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := testContext()
	first, err := Resolve("{{ accent }}/{{ wallpaper.mode }}", ctx)
	require.NoError(t, err)
	second, err := Resolve("{{ accent }}/{{ wallpaper.mode }}", ctx)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestResolveValueReturnsTypedResult(t *testing.T) {
	t.Parallel()

	value, err := ResolveValue("{{ dark }}", testContext())
	require.NoError(t, err)
	require.Equal(t, true, value)

	value, err = ResolveValue("{{ font_size }}", testContext())
	require.NoError(t, err)
	require.EqualValues(t, 13, value)

	value, err = ResolveValue("{{ wallpaper }}", testContext())
	require.NoError(t, err)
	require.Equal(t, map[string]any{"path": "/walls/sunset.png", "mode": "fill"}, value)
}

func TestResolveValueMixedInputStaysString(t *testing.T) {
	t.Parallel()

	value, err := ResolveValue("size: {{ font_size }}", testContext())
	require.NoError(t, err)
	require.Equal(t, "size: 13", value)
}

func TestEvalBoolTruthiness(t *testing.T) {
	t.Parallel()

	ok, err := EvalBool("dark", testContext())
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = EvalBool("font_size > 20", testContext())
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = EvalBool("{{ wallpaper.mode == 'fill' }}", testContext())
	require.NoError(t, err)
	require.True(t, ok)
}

func TestEvalBoolUnknownNameIsError(t *testing.T) {
	t.Parallel()

	_, err := EvalBool("no_such_flag", testContext())
	require.Error(t, err)

	var refErr *rkerrors.UnresolvedReferenceError
	require.True(t, errors.As(err, &refErr))
}
