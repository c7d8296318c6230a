// Package config holds the user settings the HUD consumes
// Settings are owned by the external store; the HUD only reads snapshots
package config

// ThemeCustom selects the explicit color map instead of a named preset
const ThemeCustom = "custom"

// DefaultThemeName is the preset used when none is configured
const DefaultThemeName = "tokyonight"

// Theme describes the HUD color scheme: a named preset or an explicit color tree
type Theme struct {
	Name   string         `toml:"theme"`
	Colors map[string]any `toml:"colors"`
}

// IsCustom reports whether the explicit color tree is in use
func (t Theme) IsCustom() bool {
	return t.Name == ThemeCustom
}

// Settings is the read-only configuration surface of the HUD
type Settings struct {
	// OpenCombatStart binds the controlled token when an encounter starts
	OpenCombatStart bool `toml:"open_combat_start"`
	// AlwaysOn binds every newly selected token
	AlwaysOn bool `toml:"always_on"`
	// HideMacroPlayers hides the hotbar, fps and players list while bound
	HideMacroPlayers bool `toml:"hide_macro_players"`
	// BotPos is the vertical offset from the bottom edge, in rows
	BotPos int `toml:"bot_pos"`
	// Scale is the HUD scale factor, clamped to 1 when applied
	Scale float64 `toml:"scale"`

	Theme Theme `toml:"theme"`
}

// Default returns the settings used when no file is present
func Default() Settings {
	return Settings{
		HideMacroPlayers: true,
		Scale:            1,
		Theme:            Theme{Name: DefaultThemeName},
	}
}

// normalize fills zero values a decoded file may leave behind
func (s *Settings) normalize() {
	if s.Scale <= 0 {
		s.Scale = 1
	}
	if s.BotPos < 0 {
		s.BotPos = 0
	}
	if s.Theme.Name == "" {
		s.Theme.Name = DefaultThemeName
	}
}
