package actions

import (
	"context"
	"fmt"
	"strings"

	"github.com/ricekit/ricekit/internal/config"
	"github.com/ricekit/ricekit/internal/execx"
	"github.com/ricekit/ricekit/internal/template"
)

type shellExecutor struct{}

func init() {
	register("shell", &shellExecutor{})
}

func (e *shellExecutor) Execute(ctx context.Context, action config.Action, run *RunContext) Outcome {
	cfg := action.Shell
	if cfg == nil {
		return failed(fmt.Errorf("shell configuration missing"))
	}

	command, err := template.Resolve(cfg.Command, run.Vars)
	if err != nil {
		return failed(err)
	}

	// A trailing "&" also selects detached mode, matching the shell idiom
	// module authors reach for anyway.
	detached := cfg.Detached
	if strings.HasSuffix(strings.TrimSpace(command), "&") {
		detached = true
		command = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(command), "&"))
	}

	if detached {
		if err := execx.Start(command, run.Module.Dir); err != nil {
			return failed(err)
		}
		return completed(fmt.Sprintf("started %q in background", command))
	}

	res, err := execx.Run(ctx, command, run.Module.Dir)
	if err != nil {
		return failed(err)
	}

	if res.Stdout != "" {
		run.Logger.Debugf("%s: %s", command, res.Stdout)
	}
	if res.Stderr != "" {
		run.Logger.Warnf("command %q wrote to stderr:\n%s", command, res.Stderr)
	}

	return completed(fmt.Sprintf("executed %q", command))
}
