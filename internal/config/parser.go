package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	rkerrors "github.com/ricekit/ricekit/pkg/errors"
)

// ManifestName is the manifest file a module directory must contain.
const ManifestName = "module.yaml"

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// LoadModule reads, migrates, validates, and returns the module manifest
// found in dir. The module takes its name from the directory.
func LoadModule(dir string) (*Module, error) {
	path := filepath.Join(dir, ManifestName)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, rkerrors.NewParseError(path, 0, err)
	}

	// Decode loosely first so the migration adapter can rewrite deprecated
	// structure before the strict tagged-union decode sees it.
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, rkerrors.NewParseError(path, extractLine(err), err)
	}

	migrated := MigrateManifest(raw)
	if NeedsMigration(raw) {
		data, err = yaml.Marshal(migrated)
		if err != nil {
			return nil, rkerrors.NewParseError(path, 0, err)
		}
	}

	var module Module
	if err := yaml.Unmarshal(data, &module); err != nil {
		return nil, rkerrors.NewParseError(path, extractLine(err), err)
	}

	module.Name = filepath.Base(dir)
	module.Dir = dir

	if err := ValidateModule(&module); err != nil {
		return nil, err
	}

	return &module, nil
}

// IsModuleDir reports whether dir contains a module manifest.
func IsModuleDir(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ManifestName))
	return err == nil && info.Mode().IsRegular()
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
