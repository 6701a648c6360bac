package actions

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ricekit/ricekit/internal/config"
	"github.com/ricekit/ricekit/internal/template"
	"github.com/ricekit/ricekit/internal/vars"
	rkerrors "github.com/ricekit/ricekit/pkg/errors"
)

type waitForExecutor struct {
	isRunning func(ctx context.Context, name string) (bool, error)
}

func init() {
	register("wait_for", &waitForExecutor{isRunning: processRunning})
}

// Execute polls the condition at the configured interval until it turns
// truthy or the timeout elapses. The loop never polls tighter than the
// interval and honors the timeout even for a permanently false condition.
func (e *waitForExecutor) Execute(ctx context.Context, action config.Action, run *RunContext) Outcome {
	cfg := action.WaitFor
	if cfg == nil {
		return failed(fmt.Errorf("wait_for configuration missing"))
	}

	condCtx := e.conditionContext(ctx, run.Vars)

	start := time.Now()
	deadline := start.Add(cfg.Timeout)

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		ok, err := template.EvalBool(cfg.Condition, condCtx)
		if err != nil {
			// A broken expression is a hard failure, not a false condition.
			return failed(err)
		}
		if ok {
			return completed(fmt.Sprintf("condition %q met after %s", cfg.Condition, time.Since(start).Round(time.Millisecond)))
		}

		if !time.Now().Before(deadline) {
			return failed(&rkerrors.WaitTimeoutError{
				Condition: cfg.Condition,
				Elapsed:   time.Since(start).Round(time.Millisecond).String(),
			})
		}

		select {
		case <-ctx.Done():
			return failed(ctx.Err())
		case <-ticker.C:
		}
	}
}

// conditionContext extends the run's variables with the probe helpers that
// let a condition observe the system: running(name) and exists(path).
func (e *waitForExecutor) conditionContext(ctx context.Context, base vars.Context) vars.Context {
	condCtx := base.Clone()
	condCtx["running"] = func(name string) bool {
		ok, err := e.isRunning(ctx, name)
		return err == nil && ok
	}
	condCtx["exists"] = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}
	return condCtx
}
