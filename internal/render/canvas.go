package render

import (
	"strings"

	plot "github.com/chriskim06/drawille-go"
)

// Canvas draws frames on a braille canvas of cols x rows terminal cells.
//
// The braille plot only knows series, so horizontal grid lines are constant
// series under the trace and the vertical grid goes to a ruler line below.
type Canvas struct {
	cols, rows int
	canvas     *plot.Canvas

	series [][]float64
	colors []plot.Color

	Trace plot.Color
	Grid  plot.Color
}

// NewCanvas builds a canvas covering cols x rows cells.
func NewCanvas(cols, rows int) (*Canvas, error) {
	if cols < 1 || rows < 1 {
		return nil, ErrBadSize
	}
	c := &Canvas{Trace: plot.Red, Grid: plot.DimGray}
	c.Resize(cols, rows)
	return c, nil
}

// Resize replaces the underlying canvas. Sizes below one cell are raised.
func (c *Canvas) Resize(cols, rows int) {
	c.cols, c.rows = max(1, cols), max(1, rows)
	p := plot.NewCanvas(c.cols, c.rows)
	p.ShowAxis = false
	c.canvas = &p
}

func (c *Canvas) Size() (cols, rows int) { return c.cols, c.rows }

// Draw plots f and returns the canvas text.
func (c *Canvas) Draw(f Frame) string {
	// One series per horizontal grid line, one for the bottom edge, one for
	// the trace. The edge pins the vertical scale to [0, Height].
	n := len(f.GridY) + 2
	c.ensureSeries(n, len(f.Path))

	for i, gy := range f.GridY {
		fillConst(c.series[i], f.Height-gy)
		c.colors[i] = c.Grid
	}
	fillConst(c.series[n-2], 0)
	c.colors[n-2] = c.Grid

	trace := c.series[n-1]
	for i, p := range f.Path {
		trace[i] = f.Height - p.Y
	}
	c.colors[n-1] = c.Trace

	c.canvas.NumDataPoints = len(f.Path)
	c.canvas.LineColors = c.colors[:n]
	c.canvas.Fill(c.series[:n])
	return c.canvas.String()
}

// Ruler marks the vertical grid lines on a line as wide as the canvas. The
// last cell is left for the head marker.
func (c *Canvas) Ruler(f Frame) string {
	if c.cols < 2 || f.Width < 1 {
		return strings.Repeat(" ", c.cols)
	}
	cells := []rune(strings.Repeat("─", c.cols-1))
	for _, gx := range f.GridX {
		col := int(gx / float64(f.Width) * float64(c.cols))
		if col < len(cells) {
			cells[col] = '┴'
		}
	}
	return string(cells)
}

func (c *Canvas) ensureSeries(n, points int) {
	if len(c.series) < n {
		c.series = append(c.series, make([][]float64, n-len(c.series))...)
		c.colors = append(c.colors, make([]plot.Color, n-len(c.colors))...)
	}
	for i := 0; i < n; i++ {
		if len(c.series[i]) != points {
			c.series[i] = make([]float64, points)
		}
	}
}

func fillConst(s []float64, v float64) {
	for i := range s {
		s[i] = v
	}
}
