package actions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ricekit/ricekit/internal/config"
	"github.com/ricekit/ricekit/internal/model"
)

func scriptAction(code string) config.Action {
	return config.Action{Type: "script", Script: &config.ScriptAction{Code: code}}
}

func TestScriptReadsContextVariables(t *testing.T) {
	t.Parallel()

	run := newRunContext(t, map[string]any{
		"wallpaper": map[string]any{"path": "/walls/a.png"},
	})

	outcome := Execute(context.Background(), scriptAction(`
		if (wallpaper.path !== "/walls/a.png") {
			throw new Error("wrong wallpaper");
		}
	`), run)

	require.Equal(t, model.StatusCompleted, outcome.Status)
}

func TestScriptThrownErrorFails(t *testing.T) {
	t.Parallel()

	run := newRunContext(t, nil)
	outcome := Execute(context.Background(), scriptAction(`throw new Error("custom failure")`), run)

	require.Equal(t, model.StatusFailed, outcome.Status)
	require.Contains(t, outcome.Message, "custom failure")
}

func TestScriptReturnedObjectBecomesVars(t *testing.T) {
	t.Parallel()

	run := newRunContext(t, map[string]any{"accent": "#123456"})
	outcome := Execute(context.Background(), scriptAction(`({derived: accent + "ff"})`), run)

	require.Equal(t, model.StatusCompleted, outcome.Status)
	require.Equal(t, map[string]any{"derived": "#123456ff"}, outcome.Vars)
}

func TestScriptNonObjectResultYieldsNoVars(t *testing.T) {
	t.Parallel()

	run := newRunContext(t, nil)
	outcome := Execute(context.Background(), scriptAction(`42`), run)

	require.Equal(t, model.StatusCompleted, outcome.Status)
	require.Nil(t, outcome.Vars)
}

func TestScriptCtxAliasExposesContext(t *testing.T) {
	t.Parallel()

	run := newRunContext(t, map[string]any{"accent": "#fff"})
	outcome := Execute(context.Background(), scriptAction(`
		if (ctx.accent !== accent) { throw new Error("mismatch"); }
	`), run)

	require.Equal(t, model.StatusCompleted, outcome.Status)
}
