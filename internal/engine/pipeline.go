package engine

import (
	"context"
	"time"

	"github.com/ricekit/ricekit/internal/actions"
	"github.com/ricekit/ricekit/internal/config"
	"github.com/ricekit/ricekit/internal/events"
	"github.com/ricekit/ricekit/internal/model"
	"github.com/ricekit/ricekit/internal/vars"
	rkerrors "github.com/ricekit/ricekit/pkg/errors"
)

// runPipeline executes one module's action list for one event label, in
// manifest order. The first failure marks every remaining action skipped, as
// does a closed if_running gate; either way every action produces a result.
// Variables exported by script actions flow into the context of later actions
// and are returned so the caller can fold them into subsequent phases.
func (e *Engine) runPipeline(ctx context.Context, module *config.Module, label string, actionList []config.Action, base vars.Context) (model.PipelineResult, map[string]any) {
	start := time.Now()

	result := model.PipelineResult{
		Module:  module.Name,
		Event:   label,
		Actions: make([]model.ActionResult, len(actionList)),
	}
	for i, action := range actionList {
		result.Actions[i] = model.ActionResult{
			Index:       i,
			Description: action.Describe(),
			Status:      model.StatusPending,
		}
	}

	e.publish(ctx, events.PipelineStarted{Module: module.Name, Event: label})

	// Module layer over the caller's globals/theme layers, then any
	// modules_styles.<name> overrides from the theme.
	runVars := base.Merge(map[string]any{
		"module_name":   module.Name,
		"module_dir":    module.Dir,
		"templates_dir": module.TemplatesDir(),
		"files_dir":     module.FilesDir(),
	})
	if styles := base.ModuleStyles(module.Name); len(styles) > 0 {
		runVars = runVars.Merge(styles)
	}

	run := &actions.RunContext{
		Module: module,
		Vars:   runVars,
		Paths:  e.paths,
		Logger: e.logger.WithModule(module.Name),
	}

	exported := map[string]any{}
	cascade := model.StatusPending
	var cascadeReason string

	for i, action := range actionList {
		entry := &result.Actions[i]

		if cascade.Terminal() {
			entry.Status = model.StatusSkipped
			entry.Message = cascadeReason
			entry.Timestamp = time.Now()
			e.publish(ctx, events.ActionFinished{Module: module.Name, Event: label, Result: *entry})
			continue
		}

		entry.Status = model.StatusRunning
		actionStart := time.Now()

		outcome := actions.Execute(ctx, action, run)

		entry.Status = outcome.Status
		entry.Message = outcome.Message
		entry.Duration = time.Since(actionStart)
		entry.Timestamp = time.Now()

		switch outcome.Status {
		case model.StatusFailed:
			entry.Error = rkerrors.NewExecutionError(module.Name, entry.Description, outcome.Err)
			run.Logger.Error(entry.Error, "action failed")
			cascade = model.StatusFailed
			cascadeReason = "earlier action failed"
		case model.StatusSkipped:
			// A closed gate skips the rest of the pipeline without failing it.
			run.Logger.Debugf("pipeline gated: %s", outcome.Message)
			cascade = model.StatusSkipped
			cascadeReason = outcome.Message
		case model.StatusCompleted:
			if len(outcome.Vars) > 0 {
				run.Vars = run.Vars.Merge(outcome.Vars)
				for key, value := range outcome.Vars {
					exported[key] = value
				}
			}
		}

		e.publish(ctx, events.ActionFinished{Module: module.Name, Event: label, Result: *entry})
	}

	result.Duration = time.Since(start)
	e.publish(ctx, events.PipelineFinished{Result: result})

	return result, exported
}
