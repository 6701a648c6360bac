package actions

import (
	"context"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/ricekit/ricekit/internal/config"
	"github.com/ricekit/ricekit/internal/template"
)

type ifRunningExecutor struct {
	// isRunning is swappable so pipeline behavior is testable without
	// depending on the host's process table.
	isRunning func(ctx context.Context, name string) (bool, error)
}

func init() {
	register("if_running", &ifRunningExecutor{isRunning: processRunning})
}

// Execute checks the gate. A mismatch is not a failure: it skips the rest of
// the pipeline so a module only configures an app that is actually in use.
func (e *ifRunningExecutor) Execute(ctx context.Context, action config.Action, run *RunContext) Outcome {
	cfg := action.IfRunning
	if cfg == nil {
		return failed(fmt.Errorf("if_running configuration missing"))
	}

	program, err := template.Resolve(cfg.Program, run.Vars)
	if err != nil {
		return failed(err)
	}

	running, err := e.isRunning(ctx, program)
	if err != nil {
		return failed(fmt.Errorf("query process list: %w", err))
	}

	if running == cfg.ShouldRun() {
		return completed(fmt.Sprintf("gate open: %q running=%t", program, running))
	}

	if cfg.ShouldRun() {
		return gateSkipped(fmt.Sprintf("%q is not running", program))
	}
	return gateSkipped(fmt.Sprintf("%q is running", program))
}

// processRunning reports whether any process name contains the pattern.
// Substring matching tolerates the kernel's 15-character comm truncation.
func processRunning(ctx context.Context, pattern string) (bool, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return false, err
	}

	for _, proc := range procs {
		name, err := proc.NameWithContext(ctx)
		if err != nil {
			continue
		}
		if strings.Contains(name, pattern) {
			return true, nil
		}
	}
	return false, nil
}
