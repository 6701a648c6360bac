package actions

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ricekit/ricekit/internal/config"
	"github.com/ricekit/ricekit/internal/template"
)

type fileExecutor struct{}

func init() {
	register("file", &fileExecutor{})
}

func (e *fileExecutor) Execute(ctx context.Context, action config.Action, run *RunContext) Outcome {
	cfg := action.File
	if cfg == nil {
		return failed(fmt.Errorf("file configuration missing"))
	}

	templateName, err := template.Resolve(cfg.TemplateName(), run.Vars)
	if err != nil {
		return failed(err)
	}
	target, err := template.Resolve(cfg.Target, run.Vars)
	if err != nil {
		return failed(err)
	}
	target = run.Paths.ExpandUser(target)

	templatePath, err := e.locateTemplate(templateName, run)
	if err != nil {
		return failed(err)
	}

	raw, err := os.ReadFile(templatePath)
	if err != nil {
		return failed(fmt.Errorf("read template %q: %w", templatePath, err))
	}

	rendered, err := template.Resolve(string(raw), run.Vars)
	if err != nil {
		return failed(fmt.Errorf("render template %q: %w", templatePath, err))
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return failed(fmt.Errorf("create target directory: %w", err))
	}
	if err := os.WriteFile(target, []byte(rendered), 0o644); err != nil {
		return failed(fmt.Errorf("write %q: %w", target, err))
	}

	return completed(fmt.Sprintf("generated %q", filepath.Base(target)))
}

// locateTemplate searches the module's templates directory first, then treats
// the name as an explicit path.
func (e *fileExecutor) locateTemplate(name string, run *RunContext) (string, error) {
	name = run.Paths.ExpandUser(name)

	if !filepath.IsAbs(name) {
		candidate := filepath.Join(run.Module.TemplatesDir(), name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	return "", fmt.Errorf("template %q not found in %q or as explicit path", name, run.Module.TemplatesDir())
}
