// Package render turns the EKG sample window into a drawable frame and draws
// it either on a braille terminal canvas or on a raster image.
package render

import "errors"

const (
	// GridStepX is the spacing of the vertical grid lines.
	GridStepX = 30
	// GridStepY is the spacing of the horizontal grid lines.
	GridStepY = 20
)

// ErrBadSize is returned when a surface has no drawable area.
var ErrBadSize = errors.New("render: surface must have positive width and height")

// Point is a position in surface units. Y grows downwards.
type Point struct {
	X, Y float64
}

// Frame is everything drawn for one tick.
type Frame struct {
	Width  int
	Height float64

	GridX []float64
	GridY []float64
	Path  []Point
	Head  Point
}

// NewFrame lays out the grid and connects the samples left to right, one
// horizontal unit apart. The newest sample becomes the head.
func NewFrame(samples []float64, width int, height float64) (Frame, error) {
	if width < 1 || height <= 0 || len(samples) == 0 {
		return Frame{}, ErrBadSize
	}
	f := Frame{Width: width, Height: height}
	for x := 0; x < width; x += GridStepX {
		f.GridX = append(f.GridX, float64(x))
	}
	for y := 0.0; y < height; y += GridStepY {
		f.GridY = append(f.GridY, y)
	}
	f.Path = make([]Point, len(samples))
	for x, y := range samples {
		f.Path[x] = Point{X: float64(x), Y: y}
	}
	f.Head = f.Path[len(f.Path)-1]
	return f, nil
}
