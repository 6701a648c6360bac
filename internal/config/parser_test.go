package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	rkerrors "github.com/ricekit/ricekit/pkg/errors"
)

func writeManifest(t *testing.T, name, content string) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestName), []byte(content), 0o644))
	return dir
}

func TestLoadModuleCurrentStructure(t *testing.T) {
	t.Parallel()

	dir := writeManifest(t, "kitty", `
on_events:
  theme_apply:
    - action: if_running
      program: kitty
    - action: file
      target: "{{home_dir}}/.config/kitty/colors.conf"
    - action: shell
      command: "kill -SIGUSR1 $(pidof kitty)"
scripts:
  refresh:
    - action: shell
      command: kitty-refresh
`)

	module, err := LoadModule(dir)
	require.NoError(t, err)
	require.Equal(t, "kitty", module.Name)
	require.Equal(t, dir, module.Dir)
	require.True(t, module.Enabled)
	require.Len(t, module.ActionsFor(EventThemeApply), 3)
	require.Len(t, module.Scripts["refresh"], 1)
	require.Nil(t, module.ActionsFor(EventModuleInstall))
}

func TestLoadModuleMigratesLegacyStructure(t *testing.T) {
	t.Parallel()

	dir := writeManifest(t, "legacy", `
init:
  - action: link
    origin: gtkrc
    destination: "~/.gtkrc-2.0"
pre_run:
  - action: script
    code: "({})"
run:
  - action: file
    target: "~/.config/waybar/colors.css"
  - action: shell
    command: "pkill -SIGUSR2 waybar"
`)

	module, err := LoadModule(dir)
	require.NoError(t, err)
	require.Len(t, module.ActionsFor(EventModuleInstall), 1)
	require.Len(t, module.ActionsFor(EventBeforeThemeApply), 1)

	run := module.ActionsFor(EventThemeApply)
	require.Len(t, run, 2)
	require.Equal(t, "file", run[0].Type)
	require.Equal(t, "shell", run[1].Type)
}

func TestLoadModuleMissingManifest(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "ghost")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	_, err := LoadModule(dir)
	require.Error(t, err)

	var parseErr *rkerrors.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestLoadModuleRejectsUnknownEvent(t *testing.T) {
	t.Parallel()

	dir := writeManifest(t, "odd", `
on_events:
  theme_exploded:
    - action: shell
      command: "true"
`)

	_, err := LoadModule(dir)
	require.Error(t, err)

	var valErr *rkerrors.ValidationError
	require.ErrorAs(t, err, &valErr)
	require.Contains(t, err.Error(), "theme_exploded")
}

func TestLoadModuleRejectsIncompleteAction(t *testing.T) {
	t.Parallel()

	dir := writeManifest(t, "incomplete", `
on_events:
  theme_apply:
    - action: link
      origin: somewhere
`)

	_, err := LoadModule(dir)
	require.Error(t, err)

	var valErr *rkerrors.ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestIsModuleDir(t *testing.T) {
	t.Parallel()

	dir := writeManifest(t, "real", "enabled: true\n")
	require.True(t, IsModuleDir(dir))
	require.False(t, IsModuleDir(t.TempDir()))
}
