package events

import "github.com/ricekit/ricekit/internal/model"

// PipelineStarted announces that a module pipeline began running for an event.
type PipelineStarted struct {
	Module string
	Event  string
}

func (PipelineStarted) Kind() string { return KindPipelineStarted }

func (n PipelineStarted) Payload() map[string]any {
	return map[string]any{"module": n.Module, "event": n.Event}
}

// ActionFinished announces that one action inside a pipeline settled.
type ActionFinished struct {
	Module string
	Event  string
	Result model.ActionResult
}

func (ActionFinished) Kind() string { return KindActionFinished }

func (n ActionFinished) Payload() map[string]any {
	p := map[string]any{
		"module":   n.Module,
		"event":    n.Event,
		"action":   n.Result.Description,
		"index":    n.Result.Index,
		"status":   string(n.Result.Status),
		"duration": n.Result.Duration.String(),
	}
	if n.Result.Message != "" {
		p["message"] = n.Result.Message
	}
	if n.Result.Error != nil {
		p["error"] = n.Result.Error.Error()
	}
	return p
}

// PipelineFinished announces that a module pipeline reached a terminal state.
type PipelineFinished struct {
	Result model.PipelineResult
}

func (PipelineFinished) Kind() string { return KindPipelineFinished }

func (n PipelineFinished) Payload() map[string]any {
	completed, failed, skipped := n.Result.Counts()
	p := map[string]any{
		"module":    n.Result.Module,
		"event":     n.Result.Event,
		"completed": completed,
		"failed":    failed,
		"skipped":   skipped,
		"duration":  n.Result.Duration.String(),
	}
	if first := n.Result.FirstFailure(); first != nil && first.Error != nil {
		p["error"] = first.Error.Error()
	}
	return p
}

// EventFinished announces that every pipeline of a fired event has settled.
type EventFinished struct {
	Report model.EventReport
}

func (EventFinished) Kind() string { return KindEventFinished }

func (n EventFinished) Payload() map[string]any {
	p := map[string]any{
		"event":     n.Report.Event,
		"pipelines": len(n.Report.Pipelines),
		"duration":  n.Report.Duration.String(),
	}
	if failed := n.Report.FailedModules(); len(failed) > 0 {
		p["failed_modules"] = failed
	}
	return p
}
