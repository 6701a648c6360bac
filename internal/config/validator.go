package config

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	rkerrors "github.com/ricekit/ricekit/pkg/errors"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateModule checks the loaded manifest: recognized event names and
// complete, well-formed action parameters.
func ValidateModule(m *Module) error {
	for event, actions := range m.OnEvents {
		if !IsKnownEvent(event) {
			return rkerrors.NewValidationError("on_events", fmt.Sprintf("unknown event %q", event), nil)
		}
		if err := validateActions(string(event), actions); err != nil {
			return err
		}
	}

	for name, actions := range m.Scripts {
		if name == "" {
			return rkerrors.NewValidationError("scripts", "script name must not be empty", nil)
		}
		if err := validateActions("scripts."+name, actions); err != nil {
			return err
		}
	}

	return nil
}

func validateActions(field string, actions []Action) error {
	for i, action := range actions {
		variant := action.variant()
		if variant == nil {
			return rkerrors.NewValidationError(
				fmt.Sprintf("%s[%d]", field, i),
				fmt.Sprintf("action %q carries no configuration", action.Type),
				nil,
			)
		}
		if err := validatorInstance().Struct(variant); err != nil {
			return rkerrors.NewValidationError(
				fmt.Sprintf("%s[%d]", field, i),
				fmt.Sprintf("invalid %s action", action.Type),
				err,
			)
		}
		if action.WaitFor != nil && action.WaitFor.Interval <= 0 {
			return rkerrors.NewValidationError(
				fmt.Sprintf("%s[%d]", field, i),
				"wait_for interval must be positive",
				nil,
			)
		}
		if action.WaitFor != nil && action.WaitFor.Timeout <= 0 {
			return rkerrors.NewValidationError(
				fmt.Sprintf("%s[%d]", field, i),
				"wait_for timeout must be positive",
				nil,
			)
		}
	}
	return nil
}

func (a Action) variant() any {
	switch {
	case a.Shell != nil:
		return a.Shell
	case a.File != nil:
		return a.File
	case a.Script != nil:
		return a.Script
	case a.IfRunning != nil:
		return a.IfRunning
	case a.Link != nil:
		return a.Link
	case a.Append != nil:
		return a.Append
	case a.WaitFor != nil:
		return a.WaitFor
	}
	return nil
}
