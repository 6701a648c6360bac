package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// Paths describes the on-disk layout the engine operates on. Constructing it
// explicitly keeps the filesystem root injectable for tests.
type Paths struct {
	Home       string
	ConfigRoot string
	ModulesDir string
	ThemesDir  string
	LockFile   string
}

// Default resolves the layout under the user's config directory.
func Default() (Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Paths{}, err
	}

	configBase, err := os.UserConfigDir()
	if err != nil {
		return Paths{}, err
	}

	return At(home, filepath.Join(configBase, "ricekit")), nil
}

// At builds the layout for an explicit home directory and config root.
func At(home, configRoot string) Paths {
	return Paths{
		Home:       home,
		ConfigRoot: configRoot,
		ModulesDir: filepath.Join(configRoot, "modules"),
		ThemesDir:  filepath.Join(configRoot, "themes"),
		LockFile:   filepath.Join(configRoot, "ricekit.lock"),
	}
}

// EnsureLayout creates the directory tree if missing.
func (p Paths) EnsureLayout() error {
	for _, dir := range []string{p.ConfigRoot, p.ModulesDir, p.ThemesDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// ModuleDir returns the root directory of a module.
func (p Paths) ModuleDir(name string) string {
	return filepath.Join(p.ModulesDir, name)
}

// ModuleTemplatesDir returns a module's template search directory.
func (p Paths) ModuleTemplatesDir(name string) string {
	return filepath.Join(p.ModulesDir, name, "templates")
}

// ModuleFilesDir returns a module's static files directory.
func (p Paths) ModuleFilesDir(name string) string {
	return filepath.Join(p.ModulesDir, name, "files")
}

// ExpandUser replaces a leading ~ with the configured home directory.
func (p Paths) ExpandUser(path string) string {
	if path == "~" {
		return p.Home
	}
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		return filepath.Join(p.Home, path[2:])
	}
	return path
}
