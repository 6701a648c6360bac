package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadTheme(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nord.yaml"), []byte(`
accent: "#88c0d0"
wallpaper:
  path: ~/pictures/nord.png
modules_styles:
  kitty:
    accent: "#81a1c1"
`), 0o644))

	theme, err := LoadTheme(dir, "nord")
	require.NoError(t, err)
	require.Equal(t, "#88c0d0", theme["accent"])

	wallpaper, ok := theme["wallpaper"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "~/pictures/nord.png", wallpaper["path"])
}

func TestLoadThemeYmlFallbackAndMissing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gruvbox.yml"), []byte("accent: '#fe8019'"), 0o644))

	theme, err := LoadTheme(dir, "gruvbox")
	require.NoError(t, err)
	require.Equal(t, "#fe8019", theme["accent"])

	_, err = LoadTheme(dir, "missing")
	require.Error(t, err)
	require.Contains(t, err.Error(), "not found")
}

func TestListThemes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nord.yaml"), []byte("a: 1"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gruvbox.yml"), []byte("a: 1"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "subdir"), 0o755))

	names, err := ListThemes(dir)
	require.NoError(t, err)
	require.Equal(t, []string{"gruvbox", "nord"}, names)

	empty, err := ListThemes(filepath.Join(dir, "does-not-exist"))
	require.NoError(t, err)
	require.Empty(t, empty)
}
