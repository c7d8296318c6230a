package component

import (
	"sync"

	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"
)

// ErrStaleBuild is returned by Commit when the owning build was superseded
// The caller should stop work; it is not a render failure
var ErrStaleBuild = errors.New("stale build: container no longer part of the live tree")

// Tone selects a palette slot for a line; the presenter maps tones to theme colors
type Tone uint8

const (
	ToneDefault Tone = iota
	ToneTitle
	ToneAccent
	ToneMuted
	ToneAlert
	ToneActive
)

// Line is a single row of container content
type Line struct {
	Text string
	Tone Tone
}

// Text builds default-toned lines from strings
func Text(texts ...string) []Line {
	lines := make([]Line, len(texts))
	for i, t := range texts {
		lines[i] = Line{Text: t}
	}
	return lines
}

// Container is the mount target of a component
// Content is replaced wholesale by Commit; layout flags are set by the owning component or the Composer
type Container struct {
	mu          sync.RWMutex
	name        string
	lines       []Line
	children    []*Container
	hidden      bool
	collapsed   bool
	marginRight int
	guard       func() bool
	commits     int
}

// NewContainer creates a detached container
// A nil guard accepts every commit
func NewContainer(name string, guard func() bool) *Container {
	return &Container{name: name, guard: guard, marginRight: 1}
}

// Name returns the container name (role or panel name)
func (c *Container) Name() string {
	return c.name
}

// Live reports whether commits to this container are still accepted
func (c *Container) Live() bool {
	c.mu.RLock()
	guard := c.guard
	c.mu.RUnlock()
	return guard == nil || guard()
}

// Commit replaces the visible content
// Rejected with ErrStaleBuild when the owning build is no longer current
func (c *Container) Commit(lines ...Line) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.guard != nil && !c.guard() {
		return ErrStaleBuild
	}
	c.lines = append(c.lines[:0:0], lines...)
	c.commits++
	return nil
}

// Lines returns a copy of the committed content
func (c *Container) Lines() []Line {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Line(nil), c.lines...)
}

// Commits returns how many commits were accepted
func (c *Container) Commits() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.commits
}

// AppendChild inserts child at the end of this container
func (c *Container) AppendChild(child *Container) {
	if child == nil {
		return
	}
	c.mu.Lock()
	c.children = append(c.children, child)
	c.mu.Unlock()
}

// ClearChildren drops every child, leaving content and the commit guard untouched
func (c *Container) ClearChildren() {
	c.mu.Lock()
	c.children = nil
	c.mu.Unlock()
}

// Children returns a copy of the child list in insertion order
func (c *Container) Children() []*Container {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*Container(nil), c.children...)
}

// SetHidden toggles visibility; hidden containers are skipped by the presenter
func (c *Container) SetHidden(hidden bool) {
	c.mu.Lock()
	c.hidden = hidden
	c.mu.Unlock()
}

// Hidden reports the visibility flag
func (c *Container) Hidden() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hidden
}

// SetCollapsed toggles the expanded state of an expandable panel
func (c *Container) SetCollapsed(collapsed bool) {
	c.mu.Lock()
	c.collapsed = collapsed
	c.mu.Unlock()
}

// Collapsed reports the expanded state
func (c *Container) Collapsed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.collapsed
}

// SetMarginRight sets the spacing reserved after the container, in columns
func (c *Container) SetMarginRight(cols int) {
	if cols < 0 {
		cols = 0
	}
	c.mu.Lock()
	c.marginRight = cols
	c.mu.Unlock()
}

// MarginRight returns the reserved trailing spacing
func (c *Container) MarginRight() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.marginRight
}

// Detach clears content and children and rejects further commits
func (c *Container) Detach() {
	c.mu.Lock()
	c.lines = nil
	c.children = nil
	c.guard = func() bool { return false }
	c.mu.Unlock()
}

// ContentWidth is the display width of the widest line or the children row, whichever is larger
func (c *Container) ContentWidth() int {
	c.mu.RLock()
	lines := c.lines
	children := c.children
	c.mu.RUnlock()

	w := 0
	for _, l := range lines {
		if lw := runewidth.StringWidth(l.Text); lw > w {
			w = lw
		}
	}
	row := 0
	for _, ch := range children {
		if ch.Hidden() {
			continue
		}
		row += ch.Width()
	}
	if row > w {
		w = row
	}
	return w
}

// Width is ContentWidth plus the trailing margin; zero when hidden
func (c *Container) Width() int {
	if c.Hidden() {
		return 0
	}
	return c.ContentWidth() + c.MarginRight()
}

// Height is the number of rows the container occupies: own lines plus the tallest child
func (c *Container) Height() int {
	if c.Hidden() {
		return 0
	}
	c.mu.RLock()
	h := len(c.lines)
	children := c.children
	c.mu.RUnlock()

	tallest := 0
	for _, ch := range children {
		if ch.Hidden() {
			continue
		}
		if chh := ch.Height(); chh > tallest {
			tallest = chh
		}
	}
	return h + tallest
}
