package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSettings = `
open_combat_start = true
always_on = true
hide_macro_players = false
bot_pos = 3
scale = 0.8

[theme]
theme = "custom"

[theme.colors.font]
primary = "#ffffff"
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDefaults(t *testing.T) {
	s := Default()
	assert.True(t, s.HideMacroPlayers)
	assert.Equal(t, 1.0, s.Scale)
	assert.Equal(t, DefaultThemeName, s.Theme.Name)
	assert.False(t, s.Theme.IsCustom())
}

func TestDecode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hud.toml")
	writeFile(t, path, sampleSettings)

	s, err := Decode(path)
	require.NoError(t, err)

	assert.True(t, s.OpenCombatStart)
	assert.True(t, s.AlwaysOn)
	assert.False(t, s.HideMacroPlayers)
	assert.Equal(t, 3, s.BotPos)
	assert.InDelta(t, 0.8, s.Scale, 1e-9)
	assert.True(t, s.Theme.IsCustom())

	font, ok := s.Theme.Colors["font"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "#ffffff", font["primary"])
}

func TestDecodePartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hud.toml")
	writeFile(t, path, "always_on = true\nscale = 0\n")

	s, err := Decode(path)
	require.NoError(t, err)
	assert.True(t, s.AlwaysOn)
	assert.True(t, s.HideMacroPlayers)
	assert.Equal(t, 1.0, s.Scale, "non-positive scale normalizes to 1")
	assert.Equal(t, DefaultThemeName, s.Theme.Name)
}

func TestDecodeInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hud.toml")
	writeFile(t, path, "scale = = 2")

	_, err := Decode(path)
	assert.Error(t, err)
}

func TestStoreLoadMissingFile(t *testing.T) {
	st := NewStore(Default())
	require.NoError(t, st.Load(filepath.Join(t.TempDir(), "absent.toml")))
	assert.Equal(t, Default(), st.Get())
}

func TestStoreUpdate(t *testing.T) {
	st := NewStore(Default())
	got := st.Update(func(s *Settings) {
		s.AlwaysOn = true
		s.BotPos = -4
	})
	assert.True(t, got.AlwaysOn)
	assert.Equal(t, 0, got.BotPos)
	assert.Equal(t, got, st.Get())
}

func TestStoreWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hud.toml")
	writeFile(t, path, "bot_pos = 1\n")

	st := NewStore(Default())
	require.NoError(t, st.Load(path))
	require.Equal(t, 1, st.Get().BotPos)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan Settings, 8)
	require.NoError(t, st.Watch(ctx, path, func(s Settings) { changed <- s }))

	writeFile(t, path, "bot_pos = 7\n")

	// A truncating write may surface an intermediate empty-file reload first
	deadline := time.After(5 * time.Second)
	for {
		select {
		case s := <-changed:
			if s.BotPos != 7 {
				continue
			}
			assert.Equal(t, 7, st.Get().BotPos)
			return
		case <-deadline:
			t.Fatal("Expected settings reload after write")
		}
	}
}
