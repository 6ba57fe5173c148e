package tui

import (
	"math"

	"github.com/runoshun/taskring/internal/domain"
)

// Screen layout constants.
const (
	cellAspect     = 2.0 // A terminal cell is about twice as tall as it is wide
	sidePanelWidth = 36
	headerHeight   = 2
	footerHeight   = 3
	labelMargin    = 3 // Columns kept outside the ring for hour labels
	minDialSize    = 24
)

// Layout places the dial and the side panel on screen and converts between
// terminal cells and ring coordinates.
//
// Ring coordinates use one unit per column and cellAspect units per row so
// the ring is round on screen.
// Fields are ordered to minimize memory padding.
type Layout struct {
	Center     domain.Point // Ring center in ring coordinates
	Radius     float64      // Outer radius of the task band
	DialCols   int          // Dial canvas width in cells
	DialRows   int          // Dial canvas height in cells
	Top        int          // Screen row of the first canvas row
	PanelCol   int          // Screen column where the side panel starts
	PaletteTop int          // Screen row of the first palette entry
}

// NewLayout fits the dial into a width x height terminal.
func NewLayout(width, height int) Layout {
	cols := width - sidePanelWidth - 1
	rows := height - headerHeight - footerHeight
	size := min(cols, rows*2)
	if size < minDialSize {
		size = minDialSize
	}
	size -= size % 2

	l := Layout{
		DialCols:   size,
		DialRows:   size / 2,
		Top:        headerHeight,
		PanelCol:   size + 1,
		PaletteTop: headerHeight + 1,
	}
	l.Center = domain.Point{X: float64(size) / 2, Y: float64(l.DialRows) * cellAspect / 2}
	l.Radius = float64(size)/2 - labelMargin
	return l
}

// RingWidth returns the thickness of the task band.
func (l Layout) RingWidth() float64 {
	return math.Max(2, l.Radius*0.2)
}

// PointAt converts a screen cell to ring coordinates, using the cell center.
func (l Layout) PointAt(col, row int) domain.Point {
	return domain.Point{
		X: float64(col) + 0.5,
		Y: (float64(row-l.Top) + 0.5) * cellAspect,
	}
}

// CellFor converts ring coordinates to a canvas cell (row relative to Top).
// ok is false when the point falls outside the canvas.
func (l Layout) CellFor(p domain.Point) (col, row int, ok bool) {
	col = int(math.Floor(p.X))
	row = int(math.Floor(p.Y / cellAspect))
	ok = col >= 0 && col < l.DialCols && row >= 0 && row < l.DialRows
	return col, row, ok
}

// PaletteIndex returns the palette entry under a screen cell.
func (l Layout) PaletteIndex(col, row, n int) (int, bool) {
	if col < l.PanelCol {
		return 0, false
	}
	i := row - l.PaletteTop
	if i < 0 || i >= n {
		return 0, false
	}
	return i, true
}

// Configure copies the dial geometry into cfg. hitFraction scales the
// radius into the extra hit tolerance.
func (l Layout) Configure(cfg domain.RingConfiguration, hitFraction float64) domain.RingConfiguration {
	cfg.Center = l.Center
	cfg.Radius = l.Radius
	cfg.HitTolerance = l.Radius * hitFraction
	return cfg
}
