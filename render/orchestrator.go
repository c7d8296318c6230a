// Package render draws the HUD tree, notices and the debug line to a terminal screen
package render

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/argon-hud/theme"
)

type rendererEntry struct {
	renderer Renderer
	priority RenderPriority
	index    int // registration order for stable sort
}

// Orchestrator coordinates the render pipeline
type Orchestrator struct {
	mu        sync.Mutex
	screen    tcell.Screen
	buffer    *Buffer
	renderers []rendererEntry
	regCount  int
	palette   func() *theme.Palette
}

// NewOrchestrator creates an orchestrator sized to screen
// palette is read once per frame; nil uses theme.Default
func NewOrchestrator(screen tcell.Screen, palette func() *theme.Palette) *Orchestrator {
	w, h := screen.Size()
	if palette == nil {
		palette = theme.Default
	}
	return &Orchestrator{
		screen:    screen,
		buffer:    NewBuffer(w, h),
		renderers: make([]rendererEntry, 0, 4),
		palette:   palette,
	}
}

// Register adds a renderer at the specified priority. Maintains sorted order via insertion sort
func (o *Orchestrator) Register(r Renderer, priority RenderPriority) {
	o.mu.Lock()
	defer o.mu.Unlock()

	entry := rendererEntry{
		renderer: r,
		priority: priority,
		index:    o.regCount,
	}
	o.regCount++

	pos := len(o.renderers)
	for i, e := range o.renderers {
		if priority < e.priority || (priority == e.priority && entry.index < e.index) {
			pos = i
			break
		}
	}

	o.renderers = append(o.renderers, rendererEntry{})
	copy(o.renderers[pos+1:], o.renderers[pos:])
	o.renderers[pos] = entry
}

// Resize re-reads the screen size and syncs the terminal
func (o *Orchestrator) Resize() (int, int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	w, h := o.screen.Size()
	o.buffer.Resize(w, h)
	o.screen.Sync()
	return w, h
}

// RenderFrame executes the render pipeline: clear, render all, flush, show
func (o *Orchestrator) RenderFrame() {
	o.mu.Lock()
	defer o.mu.Unlock()

	w, h := o.buffer.Size()
	p := o.palette()
	ctx := RenderContext{
		Now:          time.Now(),
		ScreenWidth:  w,
		ScreenHeight: h,
		Palette:      p,
	}

	o.buffer.SetBackground(BaseStyle(p))
	o.buffer.Clear()

	for _, entry := range o.renderers {
		if vt, ok := entry.renderer.(VisibilityToggle); ok && !vt.IsVisible() {
			continue
		}
		entry.renderer.Render(ctx, o.buffer)
	}

	o.screen.Clear()
	o.buffer.Flush(o.screen)
	o.screen.Show()
}

// Buffer exposes the frame buffer for inspection
func (o *Orchestrator) Buffer() *Buffer {
	return o.buffer
}
