package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Cell is one screen position
type Cell struct {
	Rune  rune
	Style tcell.Style
}

// Buffer is a cell compositor with dirty tracking, flushed to a tcell.Screen once per frame
type Buffer struct {
	cells   []Cell
	touched []bool
	width   int
	height  int
	bg      tcell.Style
}

// NewBuffer creates a buffer with the specified dimensions
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{bg: tcell.StyleDefault}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *Buffer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
		b.touched = make([]bool, size)
	} else {
		b.cells = b.cells[:size]
		b.touched = b.touched[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Size returns the buffer dimensions
func (b *Buffer) Size() (int, int) {
	return b.width, b.height
}

// SetBackground sets the style of untouched cells
func (b *Buffer) SetBackground(style tcell.Style) {
	b.bg = style
}

// Clear resets all cells to empty using exponential copy
func (b *Buffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = Cell{Rune: ' ', Style: b.bg}
	b.touched[0] = false
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
	for filled := 1; filled < len(b.touched); filled *= 2 {
		copy(b.touched[filled:], b.touched[:filled])
	}
}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Set writes a single cell
func (b *Buffer) Set(x, y int, r rune, style tcell.Style) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	b.cells[idx] = Cell{Rune: r, Style: style}
	b.touched[idx] = true
}

// Fill paints a rectangle with blanks in style
func (b *Buffer) Fill(x, y, w, h int, style tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			b.Set(col, row, ' ', style)
		}
	}
}

// SetString writes s starting at x, clipped to maxW columns; returns columns used
// Wide runes occupy two cells, the second left as a zero-rune placeholder
func (b *Buffer) SetString(x, y int, s string, style tcell.Style, maxW int) int {
	col := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if maxW >= 0 && col+w > maxW {
			break
		}
		b.Set(x+col, y, r, style)
		if w == 2 {
			b.Set(x+col+1, y, 0, style)
		}
		col += w
	}
	return col
}

// Get returns the cell at x, y
func (b *Buffer) Get(x, y int) (Cell, bool) {
	if !b.inBounds(x, y) {
		return Cell{}, false
	}
	return b.cells[y*b.width+x], true
}

// Row returns the runes of row y as a string, placeholders skipped
func (b *Buffer) Row(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	out := make([]rune, 0, b.width)
	for x := 0; x < b.width; x++ {
		if r := b.cells[y*b.width+x].Rune; r != 0 {
			out = append(out, r)
		}
	}
	return string(out)
}

// Flush writes the buffer to screen; untouched cells get the background style
func (b *Buffer) Flush(screen tcell.Screen) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			idx := y*b.width + x
			c := b.cells[idx]
			if c.Rune == 0 {
				continue
			}
			style := c.Style
			if !b.touched[idx] {
				style = b.bg
			}
			screen.SetContent(x, y, c.Rune, nil, style)
		}
	}
}
