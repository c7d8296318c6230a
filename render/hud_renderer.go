package render

import (
	"github.com/lixenwraith/argon-hud/component"
	"github.com/lixenwraith/argon-hud/layout"
)

// TreeSource is the slice of the HUD the presenter reads
type TreeSource interface {
	Visible() bool
	Root() *component.Container
	Placement() layout.Placement
}

// HudRenderer draws the published component tree at its computed placement
// Children of a container are laid out left to right below its own lines
type HudRenderer struct {
	src TreeSource
}

// NewHudRenderer creates a renderer over src
func NewHudRenderer(src TreeSource) *HudRenderer {
	return &HudRenderer{src: src}
}

// IsVisible implements VisibilityToggle
func (r *HudRenderer) IsVisible() bool {
	return r.src.Visible()
}

// Render implements Renderer
func (r *HudRenderer) Render(ctx RenderContext, buf *Buffer) {
	root := r.src.Root()
	if root == nil {
		return
	}
	p := r.src.Placement()
	if !p.Visible(ctx.ScreenHeight) {
		return
	}

	buf.Fill(p.X, p.Y, root.Width(), root.Height(), BaseStyle(ctx.Palette))
	r.draw(ctx, buf, root, p.X, p.Y)
}

// draw renders c at x, y and returns the columns it occupies
func (r *HudRenderer) draw(ctx RenderContext, buf *Buffer, c *component.Container, x, y int) int {
	if c.Hidden() {
		return 0
	}
	width := c.ContentWidth()
	lines := c.Lines()
	for i, l := range lines {
		buf.SetString(x, y+i, l.Text, ToneStyle(ctx.Palette, l.Tone), width)
	}

	cx := x
	for _, ch := range c.Children() {
		cx += r.draw(ctx, buf, ch, cx, y+len(lines))
	}
	return c.Width()
}
