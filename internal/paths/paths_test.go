package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAtLayout(t *testing.T) {
	t.Parallel()

	p := At("/home/rice", "/home/rice/.config/ricekit")
	require.Equal(t, filepath.Join("/home/rice/.config/ricekit", "modules"), p.ModulesDir)
	require.Equal(t, filepath.Join("/home/rice/.config/ricekit", "themes"), p.ThemesDir)
	require.Equal(t, filepath.Join(p.ModulesDir, "kitty"), p.ModuleDir("kitty"))
	require.Equal(t, filepath.Join(p.ModulesDir, "kitty", "templates"), p.ModuleTemplatesDir("kitty"))
}

func TestEnsureLayout(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	p := At(root, filepath.Join(root, ".config", "ricekit"))
	require.NoError(t, p.EnsureLayout())
	require.DirExists(t, p.ModulesDir)
	require.DirExists(t, p.ThemesDir)
}

func TestExpandUser(t *testing.T) {
	t.Parallel()

	p := At("/home/rice", "/home/rice/.config/ricekit")
	require.Equal(t, "/home/rice", p.ExpandUser("~"))
	require.Equal(t, filepath.Join("/home/rice", ".config", "kitty"), p.ExpandUser("~/.config/kitty"))
	require.Equal(t, "/etc/motd", p.ExpandUser("/etc/motd"))
	require.Equal(t, "relative/file", p.ExpandUser("relative/file"))
}
