package engine

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/ricekit/ricekit/internal/config"
	"github.com/ricekit/ricekit/internal/events"
	"github.com/ricekit/ricekit/internal/logger"
	"github.com/ricekit/ricekit/internal/model"
	"github.com/ricekit/ricekit/internal/paths"
	"github.com/ricekit/ricekit/internal/vars"
)

// Engine dispatches lifecycle events to module pipelines. Each module runs in
// isolation; one module's failure never stops its siblings.
type Engine struct {
	paths     paths.Paths
	logger    *logger.Logger
	publisher events.Publisher
	goos      string
}

// Option configures an engine instance.
type Option func(*Engine)

// WithPublisher injects the notification publisher.
func WithPublisher(publisher events.Publisher) Option {
	return func(e *Engine) {
		e.publisher = publisher
	}
}

// WithGOOS overrides the host OS used for module filtering.
func WithGOOS(goos string) Option {
	return func(e *Engine) {
		e.goos = goos
	}
}

// New constructs an engine over the given filesystem layout.
func New(layout paths.Paths, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		paths:  layout,
		logger: log,
		goos:   runtime.GOOS,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) publish(ctx context.Context, n events.Notification) {
	if e.publisher == nil {
		return
	}
	if err := e.publisher.Publish(ctx, n); err != nil {
		e.logger.Warnf("publish %s: %v", n.Kind(), err)
	}
}

// eligible filters modules down to the ones that should see the event: enabled,
// supported on this OS, and binding at least one action to it.
func (e *Engine) eligible(modules []*config.Module, event config.EventName) []*config.Module {
	var out []*config.Module
	for _, module := range modules {
		if !module.Enabled {
			e.logger.Debugf("module %s disabled, skipping", module.Name)
			continue
		}
		if !module.SupportsOS(e.goos) {
			e.logger.Debugf("module %s does not support %s, skipping", module.Name, e.goos)
			continue
		}
		if len(module.ActionsFor(event)) == 0 {
			continue
		}
		out = append(out, module)
	}
	return out
}

// Fire dispatches one lifecycle event to every eligible module concurrently.
// The event must belong to the recognized set; anything else is a caller bug
// surfaced as an error rather than silently ignored.
func (e *Engine) Fire(ctx context.Context, event config.EventName, modules []*config.Module, base vars.Context) (model.EventReport, error) {
	if !config.IsKnownEvent(event) {
		return model.EventReport{}, fmt.Errorf("unknown event %q", event)
	}

	start := time.Now()
	targets := e.eligible(modules, event)

	report := model.EventReport{
		Event:     string(event),
		Pipelines: make([]model.PipelineResult, len(targets)),
		Timestamp: start,
	}

	var wg sync.WaitGroup
	for i, module := range targets {
		wg.Add(1)
		go func(index int, m *config.Module) {
			defer wg.Done()
			result, _ := e.runPipeline(ctx, m, string(event), m.ActionsFor(event), base)
			report.Pipelines[index] = result
		}(i, module)
	}
	wg.Wait()

	report.Duration = time.Since(start)
	e.publish(ctx, events.EventFinished{Report: report})

	return report, nil
}

// fireSequential dispatches one event to eligible modules one at a time, in
// slice order, folding the variables each pipeline exports into the context
// seen by the next. Used for the ordered phases around a theme apply.
func (e *Engine) fireSequential(ctx context.Context, event config.EventName, modules []*config.Module, base vars.Context) (model.EventReport, vars.Context) {
	start := time.Now()
	targets := e.eligible(modules, event)

	report := model.EventReport{
		Event:     string(event),
		Timestamp: start,
	}

	current := base
	for _, module := range targets {
		result, exported := e.runPipeline(ctx, module, string(event), module.ActionsFor(event), current)
		report.Pipelines = append(report.Pipelines, result)
		if len(exported) > 0 {
			current = current.Merge(exported)
		}
	}

	report.Duration = time.Since(start)
	e.publish(ctx, events.EventFinished{Report: report})

	return report, current
}

// ApplyReport aggregates the phase reports of one theme application.
type ApplyReport struct {
	Phases   []model.EventReport
	Duration time.Duration
}

// Failed reports whether any pipeline of any phase failed.
func (r *ApplyReport) Failed() bool {
	for i := range r.Phases {
		if len(r.Phases[i].FailedModules()) > 0 {
			return true
		}
	}
	return false
}

// ApplyTheme runs the full theme application sequence: before_theme_apply
// sequentially (letting script exports enrich the context), theme_apply
// concurrently, after_theme_apply sequentially, then theme_applied. A process
// lock guards the sequence so concurrent applies cannot interleave.
func (e *Engine) ApplyTheme(ctx context.Context, modules []*config.Module, base vars.Context) (ApplyReport, error) {
	lock, err := acquireLock(ctx, e.paths.LockFile)
	if err != nil {
		return ApplyReport{}, err
	}
	defer lock.release()

	start := time.Now()
	var report ApplyReport

	beforeReport, enriched := e.fireSequential(ctx, config.EventBeforeThemeApply, modules, base)
	report.Phases = append(report.Phases, beforeReport)

	applyReport, err := e.Fire(ctx, config.EventThemeApply, modules, enriched)
	if err != nil {
		return report, err
	}
	report.Phases = append(report.Phases, applyReport)

	afterReport, enriched := e.fireSequential(ctx, config.EventAfterThemeApply, modules, enriched)
	report.Phases = append(report.Phases, afterReport)

	appliedReport, err := e.Fire(ctx, config.EventThemeApplied, modules, enriched)
	if err != nil {
		return report, err
	}
	report.Phases = append(report.Phases, appliedReport)

	report.Duration = time.Since(start)
	return report, nil
}

// RunScript executes one module's named script pipeline.
func (e *Engine) RunScript(ctx context.Context, module *config.Module, name string, base vars.Context) (model.PipelineResult, error) {
	actionList, ok := module.Scripts[name]
	if !ok {
		return model.PipelineResult{}, fmt.Errorf("module %s has no script %q", module.Name, name)
	}
	if !module.SupportsOS(e.goos) {
		return model.PipelineResult{}, fmt.Errorf("module %s does not support %s", module.Name, e.goos)
	}

	result, _ := e.runPipeline(ctx, module, "script:"+name, actionList, base)
	return result, nil
}
