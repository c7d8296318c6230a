package theme

import (
	"testing"
	"testing/fstest"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/argon-hud/config"
)

func TestFlatten(t *testing.T) {
	flat := Flatten(map[string]any{
		"accent": "#fff",
		"font": map[string]any{
			"primary": "#000",
			"sizes":   []any{"a", "b"},
		},
		"empty": map[string]any{},
	})
	assert.Equal(t, "#fff", flat["accent"])
	assert.Equal(t, "#000", flat["font.primary"])
	assert.Equal(t, "a", flat["font.sizes[0]"])
	assert.Equal(t, "b", flat["font.sizes[1]"])
	assert.Equal(t, map[string]any{}, flat["empty"])
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff0000")
	require.NoError(t, err)
	r, g, b := c.RGB()
	assert.Equal(t, [3]int32{255, 0, 0}, [3]int32{r, g, b})

	c, err = ParseColor(" #0f0 ")
	require.NoError(t, err)
	r, g, b = c.RGB()
	assert.Equal(t, [3]int32{0, 255, 0}, [3]int32{r, g, b})

	c, err = ParseColor("Red")
	require.NoError(t, err)
	assert.Equal(t, tcell.ColorRed, c)

	_, err = ParseColor("#zzzzzz")
	assert.Error(t, err)
	_, err = ParseColor("not-a-color")
	assert.Error(t, err)
}

func TestLoadEmbeddedPresets(t *testing.T) {
	l := NewLoader()
	names := l.Presets()
	require.Contains(t, names, config.DefaultThemeName)

	for _, name := range names {
		p, err := l.Load(config.Theme{Name: name})
		require.NoError(t, err, name)
		assert.Equal(t, name, p.Name())
		_, ok := p.Color("font-primary")
		assert.True(t, ok, "%s defines font.primary", name)
		_, ok = p.Color(VarPrefix + "accent")
		assert.True(t, ok, "%s defines accent", name)
	}
}

func TestLoadEmptyNameUsesDefault(t *testing.T) {
	p, err := NewLoader().Load(config.Theme{})
	require.NoError(t, err)
	assert.Equal(t, config.DefaultThemeName, p.Name())
}

func TestLoadUnknownPreset(t *testing.T) {
	_, err := NewLoader().Load(config.Theme{Name: "no-such-theme"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFetch))
}

func TestLoadCustom(t *testing.T) {
	p, err := NewLoader().Load(config.Theme{
		Name: config.ThemeCustom,
		Colors: map[string]any{
			"font":   map[string]any{"primary": "#112233"},
			"accent": "blue",
			"width":  4, // non-string leaves are ignored
		},
	})
	require.NoError(t, err)
	assert.Equal(t, config.ThemeCustom, p.Name())
	assert.Equal(t, []string{"--ech-accent", "--ech-font-primary"}, p.Vars())
	assert.Equal(t, tcell.ColorBlue, p.ColorOr("accent", tcell.ColorDefault))
	assert.Equal(t, tcell.ColorWhite, p.ColorOr("missing", tcell.ColorWhite))
}

func TestLoadCustomBadColor(t *testing.T) {
	_, err := NewLoader().Load(config.Theme{
		Name:   config.ThemeCustom,
		Colors: map[string]any{"accent": "#12"},
	})
	assert.True(t, errors.Is(err, ErrFetch))
}

func TestDirLoader(t *testing.T) {
	fsys := fstest.MapFS{
		"night.yaml":  {Data: []byte("accent: \"#010203\"\n")},
		"broken.yaml": {Data: []byte("accent: [\n")},
		"notes.txt":   {Data: []byte("ignored")},
	}
	l := NewDirLoader(fsys)
	assert.ElementsMatch(t, []string{"night", "broken"}, l.Presets())

	p, err := l.Load(config.Theme{Name: "night"})
	require.NoError(t, err)
	c, ok := p.Color("accent")
	require.True(t, ok)
	r, g, b := c.RGB()
	assert.Equal(t, [3]int32{1, 2, 3}, [3]int32{r, g, b})

	_, err = l.Load(config.Theme{Name: "broken"})
	assert.True(t, errors.Is(err, ErrFetch))
}

func TestDefaultPalette(t *testing.T) {
	p := Default()
	assert.Empty(t, p.Vars())
	assert.Equal(t, tcell.ColorGray, p.ColorOr("accent", tcell.ColorGray))
}
