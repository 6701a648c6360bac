package main

import (
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/ricekit/ricekit/internal/engine"
	"github.com/ricekit/ricekit/internal/events"
	"github.com/ricekit/ricekit/internal/logger"
	"github.com/ricekit/ricekit/internal/module"
	"github.com/ricekit/ricekit/internal/paths"
	"github.com/ricekit/ricekit/internal/vars"
)

// appContext wires the shared services a command needs: filesystem layout,
// logger, engine, and module manager.
type appContext struct {
	paths   paths.Paths
	logger  *logger.Logger
	engine  *engine.Engine
	manager *module.Manager
}

func newAppContext(flags *rootFlags) (*appContext, error) {
	var layout paths.Paths
	var err error
	if flags.configDir != "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, homeErr
		}
		abs, absErr := filepath.Abs(flags.configDir)
		if absErr != nil {
			return nil, absErr
		}
		layout = paths.At(home, abs)
	} else {
		layout, err = paths.Default()
		if err != nil {
			return nil, err
		}
	}
	if err := layout.EnsureLayout(); err != nil {
		return nil, err
	}

	level := "info"
	if flags.verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{
		Level:         level,
		HumanReadable: term.IsTerminal(int(os.Stderr.Fd())),
	})
	if err != nil {
		return nil, err
	}

	eng := engine.New(layout, log, engine.WithPublisher(events.NewLoggingPublisher(log)))

	return &appContext{
		paths:   layout,
		logger:  log,
		engine:  eng,
		manager: module.NewManager(layout, log, eng),
	}, nil
}

// baseVars builds the globals layer merged with an optional theme layer.
func (a *appContext) baseVars(theme map[string]any) vars.Context {
	globals := map[string]any{
		"home_dir":    a.paths.Home,
		"config_dir":  a.paths.ConfigRoot,
		"modules_dir": a.paths.ModulesDir,
		"themes_dir":  a.paths.ThemesDir,
	}
	return vars.Layered(globals, theme)
}
