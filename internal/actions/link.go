package actions

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ricekit/ricekit/internal/config"
	"github.com/ricekit/ricekit/internal/template"
)

type linkExecutor struct{}

func init() {
	register("link", &linkExecutor{})
}

func (e *linkExecutor) Execute(ctx context.Context, action config.Action, run *RunContext) Outcome {
	cfg := action.Link
	if cfg == nil {
		return failed(fmt.Errorf("link configuration missing"))
	}

	origin, err := template.Resolve(cfg.Origin, run.Vars)
	if err != nil {
		return failed(err)
	}
	destination, err := template.Resolve(cfg.Destination, run.Vars)
	if err != nil {
		return failed(err)
	}

	origin = run.Paths.ExpandUser(origin)
	destination = run.Paths.ExpandUser(destination)

	if !filepath.IsAbs(origin) {
		origin = filepath.Join(run.Module.FilesDir(), origin)
	}

	if info, lerr := os.Lstat(destination); lerr == nil {
		if info.Mode()&os.ModeSymlink != 0 {
			existing, rerr := os.Readlink(destination)
			if rerr == nil && existing == origin {
				return completed(fmt.Sprintf("%q already linked to %q", destination, origin))
			}
		}
		// Never silently replace whatever is already there.
		return failed(fmt.Errorf("destination %q already exists and does not link to %q", destination, origin))
	}

	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return failed(fmt.Errorf("create destination directory: %w", err))
	}
	if err := os.Symlink(origin, destination); err != nil {
		return failed(err)
	}

	return completed(fmt.Sprintf("linked %q -> %q", destination, origin))
}
