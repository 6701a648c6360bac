package module

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	git "github.com/go-git/go-git/v5"
	"gopkg.in/yaml.v3"

	"github.com/ricekit/ricekit/internal/config"
	"github.com/ricekit/ricekit/internal/engine"
	"github.com/ricekit/ricekit/internal/logger"
	"github.com/ricekit/ricekit/internal/paths"
	"github.com/ricekit/ricekit/internal/vars"
)

// Manager owns the modules directory: discovery, install, scaffolding, and
// the enabled flag.
type Manager struct {
	paths  paths.Paths
	logger *logger.Logger
	engine *engine.Engine
}

// NewManager constructs a manager over the given layout.
func NewManager(layout paths.Paths, log *logger.Logger, eng *engine.Engine) *Manager {
	return &Manager{paths: layout, logger: log, engine: eng}
}

// LoadAll reads every module under the modules directory, sorted by name.
// Directories without a manifest are ignored; a manifest that fails to load
// is logged and skipped so one broken module never takes down the rest.
func (m *Manager) LoadAll() ([]*config.Module, error) {
	entries, err := os.ReadDir(m.paths.ModulesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var modules []*config.Module
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(m.paths.ModulesDir, entry.Name())
		if !config.IsModuleDir(dir) {
			continue
		}
		module, err := config.LoadModule(dir)
		if err != nil {
			m.logger.Warnf("skipping module %s: %v", entry.Name(), err)
			continue
		}
		modules = append(modules, module)
	}

	sort.Slice(modules, func(i, j int) bool { return modules[i].Name < modules[j].Name })
	return modules, nil
}

// Load reads one module by name.
func (m *Manager) Load(name string) (*config.Module, error) {
	dir := m.paths.ModuleDir(name)
	if !config.IsModuleDir(dir) {
		return nil, fmt.Errorf("module %q not found", name)
	}
	return config.LoadModule(dir)
}

// Install fetches a module from a git URL or copies it from a local folder,
// then fires the module_install event for the new module.
func (m *Manager) Install(ctx context.Context, source string, base vars.Context) (*config.Module, error) {
	name := moduleNameFromSource(source)
	if name == "" {
		return nil, fmt.Errorf("cannot derive a module name from %q", source)
	}

	dest := m.paths.ModuleDir(name)
	if _, err := os.Stat(dest); err == nil {
		return nil, fmt.Errorf("module %q already installed", name)
	}
	if err := os.MkdirAll(m.paths.ModulesDir, 0o755); err != nil {
		return nil, err
	}

	if isGitSource(source) {
		m.logger.Infof("cloning %s", source)
		if _, err := git.PlainCloneContext(ctx, dest, false, &git.CloneOptions{URL: source, Depth: 1}); err != nil {
			_ = os.RemoveAll(dest)
			return nil, fmt.Errorf("cloning %s: %w", source, err)
		}
	} else {
		src := m.paths.ExpandUser(source)
		info, err := os.Stat(src)
		if err != nil || !info.IsDir() {
			return nil, fmt.Errorf("source %q is not a directory", source)
		}
		if err := copyTree(src, dest); err != nil {
			_ = os.RemoveAll(dest)
			return nil, fmt.Errorf("copying %s: %w", source, err)
		}
	}

	module, err := config.LoadModule(dest)
	if err != nil {
		_ = os.RemoveAll(dest)
		return nil, fmt.Errorf("installed module is invalid: %w", err)
	}

	if m.engine != nil {
		report, err := m.engine.Fire(ctx, config.EventModuleInstall, []*config.Module{module}, base)
		if err != nil {
			return module, err
		}
		if failed := report.FailedModules(); len(failed) > 0 {
			return module, fmt.Errorf("module %s install hooks failed", name)
		}
	}

	return module, nil
}

const scaffoldManifest = `enabled: true

on_events:
  theme_apply:
    - action: file
      target: ~/.config/%[1]s/colors.conf
    - action: shell
      command: "true"
`

const scaffoldTemplate = `# colors for %[1]s
# accent {{ accent }}
`

// Create scaffolds a new module skeleton: manifest, templates dir with an
// example template, and an empty files dir.
func (m *Manager) Create(name string) (*config.Module, error) {
	if name == "" || strings.ContainsAny(name, "/\\") {
		return nil, fmt.Errorf("invalid module name %q", name)
	}

	dir := m.paths.ModuleDir(name)
	if _, err := os.Stat(dir); err == nil {
		return nil, fmt.Errorf("module %q already exists", name)
	}

	if err := os.MkdirAll(filepath.Join(dir, "templates"), 0o755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Join(dir, "files"), 0o755); err != nil {
		return nil, err
	}

	manifest := fmt.Sprintf(scaffoldManifest, name)
	if err := os.WriteFile(filepath.Join(dir, config.ManifestName), []byte(manifest), 0o644); err != nil {
		return nil, err
	}

	template := fmt.Sprintf(scaffoldTemplate, name)
	if err := os.WriteFile(filepath.Join(dir, "templates", "colors.conf.j2"), []byte(template), 0o644); err != nil {
		return nil, err
	}

	return config.LoadModule(dir)
}

// Delete removes a module and everything under it.
func (m *Manager) Delete(name string) error {
	dir := m.paths.ModuleDir(name)
	if !config.IsModuleDir(dir) {
		return fmt.Errorf("module %q not found", name)
	}
	return os.RemoveAll(dir)
}

// SetEnabled persists the enabled flag back into the manifest. The edit works
// on the raw document so unrelated manifest content survives untouched.
func (m *Manager) SetEnabled(name string, enabled bool) error {
	dir := m.paths.ModuleDir(name)
	manifestPath := filepath.Join(dir, config.ManifestName)

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return fmt.Errorf("module %q not found", name)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		raw = map[string]any{}
	}
	raw["enabled"] = enabled

	out, err := yaml.Marshal(raw)
	if err != nil {
		return err
	}
	return os.WriteFile(manifestPath, out, 0o644)
}

func moduleNameFromSource(source string) string {
	trimmed := strings.TrimSuffix(strings.TrimRight(source, "/"), ".git")
	return filepath.Base(filepath.ToSlash(trimmed))
}

func isGitSource(source string) bool {
	for _, prefix := range []string{"http://", "https://", "git://", "ssh://", "git@"} {
		if strings.HasPrefix(source, prefix) {
			return true
		}
	}
	return false
}

// copyTree duplicates a directory recursively, skipping any .git metadata.
func copyTree(src, dest string) error {
	return filepath.WalkDir(src, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if rel == ".git" || strings.HasPrefix(rel, ".git"+string(filepath.Separator)) {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		target := filepath.Join(dest, rel)
		if entry.IsDir() {
			return os.MkdirAll(target, 0o755)
		}

		info, err := entry.Info()
		if err != nil {
			return err
		}
		if info.Mode()&os.ModeSymlink != 0 {
			linked, err := os.Readlink(path)
			if err != nil {
				return err
			}
			return os.Symlink(linked, target)
		}

		in, err := os.Open(path)
		if err != nil {
			return err
		}
		defer in.Close()

		out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
		if err != nil {
			return err
		}
		defer out.Close()

		_, err = io.Copy(out, in)
		return err
	})
}
