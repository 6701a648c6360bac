package config

import (
	"fmt"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// EventName identifies a lifecycle trigger a module can bind actions to.
type EventName string

// The recognized event set is closed; dispatching anything else is a caller
// bug, not a manifest concern.
const (
	EventModuleInstall    EventName = "module_install"
	EventBeforeThemeApply EventName = "before_theme_apply"
	EventThemeApply       EventName = "theme_apply"
	EventAfterThemeApply  EventName = "after_theme_apply"
	EventThemeApplied     EventName = "theme_applied"
	EventThemesChanged    EventName = "themes_changed"
)

// KnownEvents lists every recognized lifecycle event.
var KnownEvents = []EventName{
	EventModuleInstall,
	EventBeforeThemeApply,
	EventThemeApply,
	EventAfterThemeApply,
	EventThemeApplied,
	EventThemesChanged,
}

// IsKnownEvent reports whether name belongs to the closed event set.
func IsKnownEvent(name EventName) bool {
	for _, event := range KnownEvents {
		if event == name {
			return true
		}
	}
	return false
}

// Module is a loaded manifest: a user-authored unit of desktop-app
// integration bound to lifecycle events. Immutable once loaded; reloading
// means re-reading the manifest file.
type Module struct {
	Name    string `yaml:"-"`
	Dir     string `yaml:"-"`
	Enabled bool   `yaml:"enabled"`
	// OS restricts the module to the listed GOOS values; empty means all.
	OS       []string               `yaml:"os,omitempty"`
	OnEvents map[EventName][]Action `yaml:"on_events,omitempty"`
	Scripts  map[string][]Action    `yaml:"scripts,omitempty"`
}

// UnmarshalYAML decodes a module manifest, defaulting enabled to true.
func (m *Module) UnmarshalYAML(value *yaml.Node) error {
	type rawModule struct {
		Enabled  *bool                  `yaml:"enabled"`
		OS       []string               `yaml:"os"`
		OnEvents map[EventName][]Action `yaml:"on_events"`
		Scripts  map[string][]Action    `yaml:"scripts"`
	}

	var raw rawModule
	if err := value.Decode(&raw); err != nil {
		return err
	}

	m.Enabled = raw.Enabled == nil || *raw.Enabled
	m.OS = raw.OS
	m.OnEvents = raw.OnEvents
	m.Scripts = raw.Scripts
	return nil
}

// ActionsFor returns the action list bound to the event, or nil.
func (m *Module) ActionsFor(event EventName) []Action {
	if m.OnEvents == nil {
		return nil
	}
	return m.OnEvents[event]
}

// SupportsOS reports whether the module runs on the given GOOS.
func (m *Module) SupportsOS(goos string) bool {
	if len(m.OS) == 0 {
		return true
	}
	for _, candidate := range m.OS {
		if candidate == goos {
			return true
		}
	}
	return false
}

// TemplatesDir returns the module's template search directory.
func (m *Module) TemplatesDir() string {
	return filepath.Join(m.Dir, "templates")
}

// FilesDir returns the module's static files directory.
func (m *Module) FilesDir() string {
	return filepath.Join(m.Dir, "files")
}

// Action is a tagged variant: exactly one of the typed configurations is set,
// selected by the "action" discriminator in the manifest.
type Action struct {
	Type string

	Shell     *ShellAction
	File      *FileAction
	Script    *ScriptAction
	IfRunning *IfRunningAction
	Link      *LinkAction
	Append    *AppendAction
	WaitFor   *WaitForAction
}

// UnmarshalYAML customises action decoding to populate the variant matching
// the discriminator.
func (a *Action) UnmarshalYAML(value *yaml.Node) error {
	type baseAction struct {
		Action string `yaml:"action"`
	}

	var base baseAction
	if err := value.Decode(&base); err != nil {
		return err
	}
	if base.Action == "" {
		return fmt.Errorf("action descriptor missing \"action\" discriminator")
	}

	a.Type = base.Action
	a.Shell = nil
	a.File = nil
	a.Script = nil
	a.IfRunning = nil
	a.Link = nil
	a.Append = nil
	a.WaitFor = nil

	switch base.Action {
	case "shell":
		var shell ShellAction
		if err := value.Decode(&shell); err != nil {
			return err
		}
		a.Shell = &shell
	case "file":
		var file FileAction
		if err := value.Decode(&file); err != nil {
			return err
		}
		a.File = &file
	case "script":
		var script ScriptAction
		if err := value.Decode(&script); err != nil {
			return err
		}
		a.Script = &script
	case "if_running":
		var gate IfRunningAction
		if err := value.Decode(&gate); err != nil {
			return err
		}
		a.IfRunning = &gate
	case "link":
		var link LinkAction
		if err := value.Decode(&link); err != nil {
			return err
		}
		a.Link = &link
	case "append":
		var app AppendAction
		if err := value.Decode(&app); err != nil {
			return err
		}
		a.Append = &app
	case "wait_for":
		var wait WaitForAction
		if err := value.Decode(&wait); err != nil {
			return err
		}
		a.WaitFor = &wait
	case "python":
		return fmt.Errorf("python actions are no longer supported; port the snippet to a \"script\" action")
	default:
		return fmt.Errorf("unknown action type %q", base.Action)
	}

	return nil
}

// Describe renders a short human-readable form for logs and reports.
func (a Action) Describe() string {
	switch a.Type {
	case "shell":
		if a.Shell != nil && a.Shell.Detached {
			return fmt.Sprintf("shell (detached): %s", a.Shell.Command)
		}
		if a.Shell != nil {
			return fmt.Sprintf("shell: %s", a.Shell.Command)
		}
	case "file":
		if a.File != nil {
			return fmt.Sprintf("file: %s", a.File.Target)
		}
	case "script":
		return "script"
	case "if_running":
		if a.IfRunning != nil {
			if a.IfRunning.ShouldRun() {
				return fmt.Sprintf("if %q running", a.IfRunning.Program)
			}
			return fmt.Sprintf("if %q not running", a.IfRunning.Program)
		}
	case "link":
		if a.Link != nil {
			return fmt.Sprintf("link: %s -> %s", a.Link.Destination, a.Link.Origin)
		}
	case "append":
		if a.Append != nil {
			return fmt.Sprintf("append: %s", a.Append.Target)
		}
	case "wait_for":
		if a.WaitFor != nil {
			return fmt.Sprintf("wait for %q", a.WaitFor.Condition)
		}
	}
	return a.Type
}

// ShellAction runs a command through the OS shell. Detached commands are
// spawned and immediately considered complete; the engine never tracks the
// child afterward.
type ShellAction struct {
	Command  string `yaml:"command" validate:"required"`
	Detached bool   `yaml:"detached,omitempty"`
}

// FileAction renders a template against the variable context and writes the
// result to the target path. An omitted template defaults to
// "<basename(target)>.j2" looked up in the module's templates directory.
type FileAction struct {
	Target   string `yaml:"target" validate:"required"`
	Template string `yaml:"template,omitempty"`
}

// TemplateName returns the configured template or the target-derived default.
func (f *FileAction) TemplateName() string {
	if f.Template != "" {
		return f.Template
	}
	return filepath.Base(f.Target) + ".j2"
}

// ScriptAction executes an inline snippet in the embedded interpreter with
// the variable context in scope. Manifests are local and user-authored;
// snippets are trusted content.
type ScriptAction struct {
	Code string `yaml:"code" validate:"required"`
}

// IfRunningAction gates the remainder of the pipeline on a process being (or
// not being) present in the OS process list.
type IfRunningAction struct {
	Program         string `yaml:"program" validate:"required"`
	ShouldBeRunning *bool  `yaml:"should_be_running,omitempty"`
}

// ShouldRun returns the gate polarity, defaulting to true.
func (g *IfRunningAction) ShouldRun() bool {
	return g.ShouldBeRunning == nil || *g.ShouldBeRunning
}

// LinkAction creates a symbolic link at destination pointing at origin. A
// relative origin resolves under the module's files directory.
type LinkAction struct {
	Origin      string `yaml:"origin" validate:"required"`
	Destination string `yaml:"destination" validate:"required"`
}

// WaitForAction polls a condition expression until it turns truthy or the
// timeout elapses.
type WaitForAction struct {
	Condition string        `yaml:"-" validate:"required"`
	Interval  time.Duration `yaml:"-"`
	Timeout   time.Duration `yaml:"-"`
}

const (
	defaultWaitInterval = 500 * time.Millisecond
	defaultWaitTimeout  = 30 * time.Second
)

// UnmarshalYAML decodes duration strings and applies polling defaults.
func (w *WaitForAction) UnmarshalYAML(value *yaml.Node) error {
	type rawWaitFor struct {
		Condition string `yaml:"condition"`
		Interval  string `yaml:"interval"`
		Timeout   string `yaml:"timeout"`
	}

	var raw rawWaitFor
	if err := value.Decode(&raw); err != nil {
		return err
	}

	w.Condition = raw.Condition

	w.Interval = defaultWaitInterval
	if raw.Interval != "" {
		interval, err := time.ParseDuration(raw.Interval)
		if err != nil {
			return fmt.Errorf("wait_for interval: %w", err)
		}
		w.Interval = interval
	}

	w.Timeout = defaultWaitTimeout
	if raw.Timeout != "" {
		timeout, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return fmt.Errorf("wait_for timeout: %w", err)
		}
		w.Timeout = timeout
	}

	return nil
}

// AppendAction adds content to the target file when not already present
// verbatim. Idempotent under repeated runs.
type AppendAction struct {
	Target  string `yaml:"target" validate:"required"`
	Content string `yaml:"content" validate:"required"`
}
