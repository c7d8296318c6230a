package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/argon-hud/component"
	"github.com/lixenwraith/argon-hud/theme"
)

// Palette variables read by the presenter
const (
	VarBackground = "background"
	VarBorder     = "border"
	VarPrimary    = "font-primary"
	VarSecondary  = "font-secondary"
	VarMuted      = "font-muted"
	VarAccent     = "accent"
	VarAlert      = "alert"
	VarActive     = "active"
)

// Fallbacks used when a palette omits a variable
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38) // Tokyo Night background
	RgbPrimary    = tcell.NewRGBColor(192, 202, 245)
	RgbAccent     = tcell.NewRGBColor(122, 162, 247)
	RgbAlert      = tcell.NewRGBColor(247, 118, 142)
	RgbActive     = tcell.NewRGBColor(158, 206, 106)
)

// BaseStyle is the HUD background style
func BaseStyle(p *theme.Palette) tcell.Style {
	return tcell.StyleDefault.
		Background(p.ColorOr(VarBackground, RgbBackground)).
		Foreground(p.ColorOr(VarPrimary, RgbPrimary))
}

// ToneStyle maps a line tone to a palette style
func ToneStyle(p *theme.Palette, tone component.Tone) tcell.Style {
	base := BaseStyle(p)
	bg := p.ColorOr(VarBackground, RgbBackground)
	primary := p.ColorOr(VarPrimary, RgbPrimary)

	switch tone {
	case component.ToneTitle:
		return base.Foreground(primary).Bold(true)
	case component.ToneAccent:
		return base.Foreground(p.ColorOr(VarAccent, RgbAccent))
	case component.ToneMuted:
		if c, ok := p.Color(VarMuted); ok {
			return base.Foreground(c)
		}
		return base.Foreground(Blend(primary, bg, 0.5))
	case component.ToneAlert:
		return base.Foreground(p.ColorOr(VarAlert, RgbAlert)).Bold(true)
	case component.ToneActive:
		return base.Foreground(p.ColorOr(VarActive, RgbActive))
	}
	return base
}

// Blend mixes a toward b in Lab space; t=0 returns a
func Blend(a, b tcell.Color, t float64) tcell.Color {
	ca, okA := toColorful(a)
	cb, okB := toColorful(b)
	if !okA || !okB {
		return a
	}
	r, g, bl := ca.BlendLab(cb, t).Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(bl))
}

func toColorful(c tcell.Color) (colorful.Color, bool) {
	if c == tcell.ColorDefault {
		return colorful.Color{}, false
	}
	r, g, b := c.RGB()
	if r < 0 {
		return colorful.Color{}, false
	}
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}, true
}
