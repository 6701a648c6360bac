package vars

import (
	"strings"
)

// Context is the name->value mapping available to template resolution during
// one pipeline run. Layers are combined with Merge; every operation returns a
// fresh copy so concurrent pipeline runs never share mutable state.
type Context map[string]any

// New returns an empty context.
func New() Context {
	return Context{}
}

// Layered builds a context from ordered layers, later layers shadowing
// earlier ones on name collision. Nil layers are skipped.
func Layered(layers ...map[string]any) Context {
	ctx := Context{}
	for _, layer := range layers {
		ctx = ctx.Merge(layer)
	}
	return ctx
}

// Merge returns a deep-merged copy with other's values shadowing the
// receiver's. Nested maps merge key-by-key; any other value replaces wholesale.
func (c Context) Merge(other map[string]any) Context {
	merged := c.Clone()
	for key, value := range other {
		if sub, ok := value.(map[string]any); ok {
			if existing, ok := merged[key].(map[string]any); ok {
				merged[key] = map[string]any(Context(existing).Merge(sub))
				continue
			}
			merged[key] = map[string]any(Context{}.Merge(sub))
			continue
		}
		merged[key] = value
	}
	return merged
}

// Clone returns a deep copy of the context.
func (c Context) Clone() Context {
	cloned := make(Context, len(c))
	for key, value := range c {
		if sub, ok := value.(map[string]any); ok {
			cloned[key] = map[string]any(Context(sub).Clone())
			continue
		}
		cloned[key] = value
	}
	return cloned
}

// Lookup resolves a dotted path ("wallpaper.path") against the context.
func (c Context) Lookup(path string) (any, bool) {
	parts := strings.Split(path, ".")
	var current any = map[string]any(c)
	for _, part := range parts {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = node[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// ModuleStyles extracts the per-module style overrides a theme may carry
// under "modules_styles.<name>". Returns nil when absent.
func (c Context) ModuleStyles(module string) map[string]any {
	styles, ok := c["modules_styles"].(map[string]any)
	if !ok {
		return nil
	}
	override, ok := styles[module].(map[string]any)
	if !ok {
		return nil
	}
	return override
}
