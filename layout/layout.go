// Package layout derives the HUD placement from settings and measured widths
// Pure functions only; no state
package layout

import (
	"math"
)

// ReservedWidth is the screen width kept free for the host sidebar
const ReservedWidth = 34

// Input collects everything placement depends on
type Input struct {
	BotPos    int     // Configured offset from the bottom edge, rows
	Scale     float64 // Configured scale factor
	Minimized bool
	ScreenW   int
	ScreenH   int
	ContentW  int // Measured HUD width, columns
	ContentH  int // Measured HUD height, rows
}

// Placement is the computed on-screen position
type Placement struct {
	// Bottom is the gap between the HUD and the bottom edge, rows
	Bottom int
	// Scale is the applied scale, never above 1
	Scale float64
	// WidthFactor widens the layout box to compensate for down-scaling
	WidthFactor float64
	// TranslateY pushes the HUD below the edge when minimized (1 = full height)
	TranslateY float64
	// X, Y is the top-left anchor; Y may lie below the screen when minimized
	X, Y int
	// Width, Height is the scaled box size
	Width, Height int
}

// Compute places the HUD
// Minimized: bottom offset is dropped and the box translates fully below the edge
func Compute(in Input) Placement {
	scale := in.Scale
	if scale <= 0 {
		scale = 1
	}
	applied := math.Min(scale, 1)

	p := Placement{
		Bottom:      in.BotPos,
		Scale:       applied,
		WidthFactor: 1,
	}
	if scale < 1 {
		p.WidthFactor = 1 + (1 - scale)
	}
	if in.Minimized {
		p.Bottom = 0
		p.TranslateY = 1
	}

	p.Width = int(math.Ceil(float64(in.ContentW) * applied))
	p.Height = int(math.Ceil(float64(in.ContentH) * applied))

	avail := in.ScreenW - ReservedWidth
	if avail < p.Width {
		avail = in.ScreenW
	}
	p.X = (avail - p.Width) / 2
	if p.X < 0 {
		p.X = 0
	}
	p.Y = in.ScreenH - p.Bottom - p.Height + int(float64(p.Height)*p.TranslateY)
	return p
}

// Visible reports whether any row of the placement is on screen
func (p Placement) Visible(screenH int) bool {
	return p.Height > 0 && p.Y < screenH
}
