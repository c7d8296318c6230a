package render

import (
	"time"

	"github.com/lixenwraith/argon-hud/theme"
)

// RenderContext provides frame state for renderers, passed by value
type RenderContext struct {
	Now time.Time

	// Screen dimensions (terminal size)
	ScreenWidth  int
	ScreenHeight int

	Palette *theme.Palette
}

// Row clamps y into the screen; ok is false when the screen has no rows
func (rc RenderContext) Row(y int) (int, bool) {
	if rc.ScreenHeight <= 0 {
		return 0, false
	}
	if y < 0 {
		y = 0
	}
	if y >= rc.ScreenHeight {
		y = rc.ScreenHeight - 1
	}
	return y, true
}
