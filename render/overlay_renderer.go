package render

import (
	"github.com/lixenwraith/argon-hud/component"
	"github.com/lixenwraith/argon-hud/notify"
)

// NoticeSource yields the notices currently on display
type NoticeSource interface {
	Active() []notify.Notice
}

// BannerRenderer draws notices top-down from the first row, newest last
type BannerRenderer struct {
	src NoticeSource
}

// NewBannerRenderer creates a renderer over src
func NewBannerRenderer(src NoticeSource) *BannerRenderer {
	return &BannerRenderer{src: src}
}

// Render implements Renderer
func (r *BannerRenderer) Render(ctx RenderContext, buf *Buffer) {
	for i, n := range r.src.Active() {
		if i >= ctx.ScreenHeight {
			return
		}
		tone := component.ToneAccent
		if n.Level == notify.LevelError {
			tone = component.ToneAlert
		}
		buf.SetString(0, i, n.Message, ToneStyle(ctx.Palette, tone), ctx.ScreenWidth)
	}
}

// LineSource yields a single text line
type LineSource func() string

// StatusRenderer draws a debug line on the last row
type StatusRenderer struct {
	line    LineSource
	enabled bool
}

// NewStatusRenderer creates a status renderer; disabled renderers draw nothing
func NewStatusRenderer(line LineSource, enabled bool) *StatusRenderer {
	return &StatusRenderer{line: line, enabled: enabled}
}

// IsVisible implements VisibilityToggle
func (r *StatusRenderer) IsVisible() bool {
	return r.enabled
}

// Render implements Renderer
func (r *StatusRenderer) Render(ctx RenderContext, buf *Buffer) {
	y, ok := ctx.Row(ctx.ScreenHeight - 1)
	if !ok {
		return
	}
	buf.SetString(0, y, r.line(), ToneStyle(ctx.Palette, component.ToneMuted), ctx.ScreenWidth)
}
