package actions

import (
	"context"
	"fmt"

	"github.com/dop251/goja"

	"github.com/ricekit/ricekit/internal/config"
)

type scriptExecutor struct{}

func init() {
	register("script", &scriptExecutor{})
}

// Execute runs the inline snippet in a throwaway interpreter with only the
// variable context in scope. Manifests are local, user-authored content; the
// snippet is trusted by the same argument as the shell action.
func (e *scriptExecutor) Execute(ctx context.Context, action config.Action, run *RunContext) Outcome {
	cfg := action.Script
	if cfg == nil {
		return failed(fmt.Errorf("script configuration missing"))
	}

	vm := goja.New()
	for key, value := range run.Vars {
		if err := vm.Set(key, value); err != nil {
			return failed(fmt.Errorf("binding %q: %w", key, err))
		}
	}
	if err := vm.Set("ctx", map[string]any(run.Vars)); err != nil {
		return failed(err)
	}
	if err := vm.Set("log", func(args ...any) {
		run.Logger.Infof("script: %s", fmt.Sprintln(args...))
	}); err != nil {
		return failed(err)
	}

	value, err := vm.RunString(cfg.Code)
	if err != nil {
		return failed(fmt.Errorf("script failed: %w", err))
	}

	outcome := completed("script executed")
	if value != nil && !goja.IsUndefined(value) && !goja.IsNull(value) {
		if returned, ok := value.Export().(map[string]any); ok {
			outcome.Vars = returned
		}
	}
	return outcome
}
