// Package theme resolves the configured color scheme into terminal colors
package theme

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/argon-hud/config"
)

// VarPrefix prefixes every flattened color variable
const VarPrefix = "--ech-"

// ErrFetch reports a preset that could not be loaded or parsed
// Not fatal: callers fall back to Default
var ErrFetch = errors.New("theme fetch failed")

//go:embed presets/*.yaml
var presets embed.FS

// Palette maps flattened variable names to colors
type Palette struct {
	name string
	vars map[string]tcell.Color
}

// Name returns the preset name, or "custom"
func (p *Palette) Name() string { return p.name }

// Color returns the color for a variable, with or without the --ech- prefix
func (p *Palette) Color(name string) (tcell.Color, bool) {
	if !strings.HasPrefix(name, VarPrefix) {
		name = VarPrefix + name
	}
	c, ok := p.vars[name]
	return c, ok
}

// ColorOr returns the named color or fallback
func (p *Palette) ColorOr(name string, fallback tcell.Color) tcell.Color {
	if c, ok := p.Color(name); ok {
		return c
	}
	return fallback
}

// Vars returns variable names in sorted order
func (p *Palette) Vars() []string {
	keys := make([]string, 0, len(p.vars))
	for k := range p.vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Default is the unstyled palette used when a theme cannot be loaded
func Default() *Palette {
	return &Palette{name: "default", vars: map[string]tcell.Color{}}
}

// Loader resolves presets from a file system
type Loader struct {
	fsys fs.FS
	dir  string
}

// NewLoader creates a loader over the embedded presets
func NewLoader() *Loader {
	return &Loader{fsys: presets, dir: "presets"}
}

// NewDirLoader creates a loader over an external preset directory
func NewDirLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys, dir: "."}
}

// Presets lists the available preset names
func (l *Loader) Presets() []string {
	entries, err := fs.ReadDir(l.fsys, l.dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".yaml"); ok && !e.IsDir() {
			names = append(names, name)
		}
	}
	return names
}

// Load resolves a theme descriptor into a palette
func (l *Loader) Load(t config.Theme) (*Palette, error) {
	if t.IsCustom() {
		return FromTree(config.ThemeCustom, t.Colors)
	}

	name := t.Name
	if name == "" {
		name = config.DefaultThemeName
	}
	data, err := fs.ReadFile(l.fsys, path.Join(l.dir, name+".yaml"))
	if err != nil {
		return nil, errors.Wrapf(ErrFetch, "preset %q: %v", name, err)
	}
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, errors.Wrapf(ErrFetch, "preset %q: %v", name, err)
	}
	return FromTree(name, tree)
}

// FromTree builds a palette from a nested color tree
func FromTree(name string, tree map[string]any) (*Palette, error) {
	flat := Flatten(tree)
	p := &Palette{name: name, vars: make(map[string]tcell.Color, len(flat))}
	for key, raw := range flat {
		s, ok := raw.(string)
		if !ok {
			continue
		}
		c, err := ParseColor(s)
		if err != nil {
			return nil, errors.Wrapf(ErrFetch, "%s %s: %v", name, key, err)
		}
		p.vars[VarPrefix+strings.ReplaceAll(key, ".", "-")] = c
	}
	return p, nil
}

// ParseColor accepts #rgb / #rrggbb hex or a terminal color name
func ParseColor(s string) (tcell.Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return tcell.ColorDefault, err
		}
		r, g, b := c.RGB255()
		return tcell.NewRGBColor(int32(r), int32(g), int32(b)), nil
	}
	if c := tcell.GetColor(strings.ToLower(s)); c != tcell.ColorDefault {
		return c, nil
	}
	return tcell.ColorDefault, errors.Errorf("unrecognized color %q", s)
}

// Flatten turns a nested tree into dotted keys; list elements use key[i]
func Flatten(tree map[string]any) map[string]any {
	out := make(map[string]any)
	flattenInto(out, "", tree)
	return out
}

func flattenInto(out map[string]any, prefix string, v any) {
	switch node := v.(type) {
	case map[string]any:
		if len(node) == 0 && prefix != "" {
			out[prefix] = map[string]any{}
			return
		}
		for k, child := range node {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			flattenInto(out, key, child)
		}
	case []any:
		if len(node) == 0 {
			out[prefix] = []any{}
			return
		}
		for i, child := range node {
			flattenInto(out, fmt.Sprintf("%s[%d]", prefix, i), child)
		}
	default:
		out[prefix] = v
	}
}
