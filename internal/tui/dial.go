package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/runoshun/taskring/internal/domain"
	"github.com/runoshun/taskring/internal/geometry"
)

// cell is one character of the dial canvas. Adjacent cells with the same
// key are rendered as one styled run.
type cell struct {
	style lipgloss.Style
	key   string
	ch    rune
}

// dial draws the ring for one frame.
// Fields are ordered to minimize memory padding.
type dial struct {
	tasks      []domain.Task
	session    domain.DragSession
	styles     Styles
	cfg        domain.RingConfiguration
	layout     Layout
	selectedID string
}

func (d dial) render() string {
	l := d.layout
	grid := make([][]cell, l.DialRows)
	for r := range grid {
		grid[r] = make([]cell, l.DialCols)
		for c := range grid[r] {
			grid[r][c] = cell{ch: ' '}
		}
	}

	d.drawBand(grid)
	d.drawHandles(grid)
	d.drawHourLabels(grid)
	d.drawCenter(grid)

	lines := make([]string, len(grid))
	for r, row := range grid {
		lines[r] = renderRow(row)
	}
	return strings.Join(lines, "\n")
}

func (d dial) preview() *domain.Task {
	if d.session.Preview == nil || d.session.Outside {
		return nil
	}
	return d.session.Preview
}

func (d dial) drawBand(grid [][]cell) {
	l := d.layout
	inner := l.Radius - l.RingWidth()
	zero := d.cfg.ZeroPosition

	arcs := make([]geometry.Arc, len(d.tasks))
	for i, t := range d.tasks {
		arcs[i] = geometry.AnglesForTask(t, zero)
	}
	preview := d.preview()
	var previewArc geometry.Arc
	if preview != nil {
		previewArc = geometry.AnglesForTask(*preview, zero)
	}

	for r := range grid {
		for c := range grid[r] {
			p := domain.Point{X: float64(c) + 0.5, Y: (float64(r) + 0.5) * cellAspect}
			dist := geometry.Distance(p, l.Center)
			if dist < inner || dist > l.Radius {
				continue
			}
			angle := geometry.PointAngle(p, l.Center, zero)

			if preview != nil && previewArc.Contains(angle) {
				grid[r][c] = cell{ch: '▒', key: "preview", style: d.styles.Preview}
				continue
			}
			grid[r][c] = cell{ch: '·', key: "track", style: d.styles.Track}
			for i := len(arcs) - 1; i >= 0; i-- {
				if !arcs[i].Contains(angle) {
					continue
				}
				t := d.tasks[i]
				ch := '█'
				if t.Completed {
					ch = '▓'
				}
				grid[r][c] = cell{
					ch:    ch,
					key:   "task:" + t.Category.Color + fmt.Sprint(t.Completed),
					style: d.styles.CategoryStyle(t.Category.Color),
				}
				break
			}
		}
	}
}

func (d dial) drawHandles(grid [][]cell) {
	l := d.layout
	mid := l.Radius - l.RingWidth()/2
	zero := d.cfg.ZeroPosition

	mark := func(t domain.Task) {
		arc := geometry.AnglesForTask(t, zero)
		for _, angle := range []float64{arc.Start, arc.End} {
			if c, r, ok := l.CellFor(geometry.PointAt(l.Center, mid, angle)); ok {
				grid[r][c] = cell{ch: '●', key: "handle", style: d.styles.Handle}
			}
		}
	}

	for _, t := range d.tasks {
		if t.ID == d.selectedID || t.ID == d.session.TaskID || t.ID == d.session.EditingID {
			mark(t)
		}
	}
	if p := d.preview(); p != nil {
		mark(*p)
	}
}

func (d dial) drawHourLabels(grid [][]cell) {
	l := d.layout
	step := 3
	if l.Radius >= 24 {
		step = 1
	}
	for h := 0; h < 24; h += step {
		angle := geometry.TimeToAngle(geometry.AtMinutes(d.cfg.BaseDate, h*60), d.cfg.ZeroPosition)
		p := geometry.PointAt(l.Center, l.Radius+1.5, angle)
		c, r, ok := l.CellFor(p)
		if !ok {
			continue
		}
		writeText(grid, r, c-len(fmt.Sprint(h))/2, fmt.Sprint(h), "label", d.styles.HourLabel)
	}
}

func (d dial) drawCenter(grid [][]cell) {
	l := d.layout
	_, r, ok := l.CellFor(l.Center)
	if !ok {
		return
	}
	lines := []string{d.cfg.BaseDate.Format("Mon 02 Jan")}
	if t := d.session.LastTime; t != nil && d.session.Active() {
		lines = append(lines, t.Format("15:04"))
	}
	for i, s := range lines {
		writeText(grid, r-1+i, l.DialCols/2-len(s)/2, s, "center", d.styles.Center)
	}
}

// writeText writes s into row r starting at column c, clipping at the edges.
func writeText(grid [][]cell, r, c int, s, key string, style lipgloss.Style) {
	if r < 0 || r >= len(grid) {
		return
	}
	for i, ch := range []rune(s) {
		col := c + i
		if col < 0 || col >= len(grid[r]) {
			continue
		}
		grid[r][col] = cell{ch: ch, key: key, style: style}
	}
}

func renderRow(row []cell) string {
	var b strings.Builder
	start := 0
	for i := 1; i <= len(row); i++ {
		if i < len(row) && row[i].key == row[start].key {
			continue
		}
		run := make([]rune, 0, i-start)
		for _, c := range row[start:i] {
			run = append(run, c.ch)
		}
		if row[start].key == "" {
			b.WriteString(string(run))
		} else {
			b.WriteString(row[start].style.Render(string(run)))
		}
		start = i
	}
	return b.String()
}

// formatSpan renders a task interval, marking a next-day end.
func formatSpan(start, end time.Time) string {
	s := start.Format("15:04") + "-" + end.Format("15:04")
	t := domain.Task{Start: start, End: end}
	if t.Wraps() {
		s += "+1"
	}
	return s
}
