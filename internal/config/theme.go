package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadTheme reads a theme document from the themes directory by name, trying
// the .yaml then .yml extension. The result becomes the theme layer of the
// variable context.
func LoadTheme(themesDir, name string) (map[string]any, error) {
	path, err := findTheme(themesDir, name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var theme map[string]any
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return nil, fmt.Errorf("theme %s: %w", name, err)
	}
	return theme, nil
}

// ListThemes returns the theme names available in the themes directory.
func ListThemes(themesDir string) ([]string, error) {
	entries, err := os.ReadDir(themesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ext))
	}
	sort.Strings(names)
	return names, nil
}

func findTheme(themesDir, name string) (string, error) {
	for _, ext := range []string{".yaml", ".yml"} {
		path := filepath.Join(themesDir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("theme %q not found in %s", name, themesDir)
}
