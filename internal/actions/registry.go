package actions

import (
	"context"
	"fmt"
	"sync"

	"github.com/ricekit/ricekit/internal/config"
	"github.com/ricekit/ricekit/internal/logger"
	"github.com/ricekit/ricekit/internal/model"
	"github.com/ricekit/ricekit/internal/paths"
	"github.com/ricekit/ricekit/internal/vars"
	rkerrors "github.com/ricekit/ricekit/pkg/errors"
)

// RunContext carries the per-run state an executor needs: the owning module,
// the resolved variable context, and the filesystem layout. Each pipeline run
// owns its own instance; executors never share mutable state across runs.
type RunContext struct {
	Module *config.Module
	Vars   vars.Context
	Paths  paths.Paths
	Logger *logger.Logger
}

// Outcome is the terminal result of executing one action.
type Outcome struct {
	Status  model.Status
	Message string
	Err     error
	// Vars carries values a script action hands back to the caller; the
	// dispatcher folds them into the theme layer during before_theme_apply.
	Vars map[string]any
}

func completed(message string) Outcome {
	return Outcome{Status: model.StatusCompleted, Message: message}
}

func failed(err error) Outcome {
	return Outcome{Status: model.StatusFailed, Message: err.Error(), Err: err}
}

func gateSkipped(message string) Outcome {
	return Outcome{Status: model.StatusSkipped, Message: message}
}

// Executor runs one action variant. Implementations resolve their templated
// parameters against the run's variable context immediately before acting.
type Executor interface {
	Execute(ctx context.Context, action config.Action, run *RunContext) Outcome
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Executor)
)

// register adds an executor for an action type; each variant registers itself
// at package initialization.
func register(actionType string, exec Executor) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[actionType]; exists {
		panic(fmt.Sprintf("action executor %q already registered", actionType))
	}
	registry[actionType] = exec
}

// Get retrieves the executor for an action type.
func Get(actionType string) (Executor, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	exec, ok := registry[actionType]
	if !ok {
		return nil, rkerrors.NewExecutionError("", actionType, fmt.Errorf("no executor registered"))
	}
	return exec, nil
}

// Execute looks up and runs the executor for the action.
func Execute(ctx context.Context, action config.Action, run *RunContext) Outcome {
	exec, err := Get(action.Type)
	if err != nil {
		return failed(err)
	}
	return exec.Execute(ctx, action, run)
}
