package vars

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLayeredShadowsEarlierLayers(t *testing.T) {
	t.Parallel()

	global := map[string]any{"home_dir": "/home/a", "accent": "red"}
	theme := map[string]any{"accent": "blue"}

	ctx := Layered(global, nil, theme)

	require.Equal(t, "/home/a", ctx["home_dir"])
	require.Equal(t, "blue", ctx["accent"])
}

func TestMergeIsDeepForNestedMaps(t *testing.T) {
	t.Parallel()

	base := Context{
		"wallpaper": map[string]any{"path": "/w/a.png", "mode": "fill"},
	}
	merged := base.Merge(map[string]any{
		"wallpaper": map[string]any{"path": "/w/b.png"},
	})

	wallpaper := merged["wallpaper"].(map[string]any)
	require.Equal(t, "/w/b.png", wallpaper["path"])
	require.Equal(t, "fill", wallpaper["mode"])
}

func TestMergeDoesNotMutateReceiver(t *testing.T) {
	t.Parallel()

	base := Context{"colors": map[string]any{"bg": "#000"}}
	merged := base.Merge(map[string]any{"colors": map[string]any{"bg": "#fff"}})

	require.Equal(t, "#000", base["colors"].(map[string]any)["bg"])
	require.Equal(t, "#fff", merged["colors"].(map[string]any)["bg"])
}

func TestCloneIsIndependent(t *testing.T) {
	t.Parallel()

	base := Context{"nested": map[string]any{"k": "v"}}
	cloned := base.Clone()
	cloned["nested"].(map[string]any)["k"] = "changed"

	require.Equal(t, "v", base["nested"].(map[string]any)["k"])
}

func TestLookupDottedPath(t *testing.T) {
	t.Parallel()

	ctx := Context{
		"wallpaper": map[string]any{"path": "/w/a.png"},
	}

	value, ok := ctx.Lookup("wallpaper.path")
	require.True(t, ok)
	require.Equal(t, "/w/a.png", value)

	_, ok = ctx.Lookup("wallpaper.missing")
	require.False(t, ok)

	_, ok = ctx.Lookup("missing")
	require.False(t, ok)
}

func TestModuleStyles(t *testing.T) {
	t.Parallel()

	ctx := Context{
		"modules_styles": map[string]any{
			"kitty": map[string]any{"font_size": 13},
		},
	}

	require.Equal(t, map[string]any{"font_size": 13}, ctx.ModuleStyles("kitty"))
	require.Nil(t, ctx.ModuleStyles("alacritty"))
}
