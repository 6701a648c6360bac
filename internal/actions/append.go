package actions

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ricekit/ricekit/internal/config"
	"github.com/ricekit/ricekit/internal/template"
)

type appendExecutor struct{}

func init() {
	register("append", &appendExecutor{})
}

func (e *appendExecutor) Execute(ctx context.Context, action config.Action, run *RunContext) Outcome {
	cfg := action.Append
	if cfg == nil {
		return failed(fmt.Errorf("append configuration missing"))
	}

	target, err := template.Resolve(cfg.Target, run.Vars)
	if err != nil {
		return failed(err)
	}
	content, err := template.Resolve(cfg.Content, run.Vars)
	if err != nil {
		return failed(err)
	}
	target = run.Paths.ExpandUser(target)

	existing, err := os.ReadFile(target)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return failed(fmt.Errorf("read %q: %w", target, err))
	}

	if strings.Contains(string(existing), content) {
		return completed(fmt.Sprintf("%q already contains content", target))
	}

	updated := string(existing)
	if updated != "" && !strings.HasSuffix(updated, "\n") {
		updated += "\n"
	}
	updated += content
	if !strings.HasSuffix(updated, "\n") {
		updated += "\n"
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return failed(fmt.Errorf("create target directory: %w", err))
	}
	if err := os.WriteFile(target, []byte(updated), 0o644); err != nil {
		return failed(fmt.Errorf("write %q: %w", target, err))
	}

	return completed(fmt.Sprintf("appended to %q", target))
}
