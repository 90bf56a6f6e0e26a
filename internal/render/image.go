package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"
)

var (
	Background = color.NRGBA{R: 0x0a, G: 0x0a, B: 0x0f, A: 0xff}
	Fade       = color.NRGBA{R: 0x0a, G: 0x0a, B: 0x0f, A: 0x40}
	GridColor  = color.NRGBA{R: 0x00, G: 0xff, B: 0x41, A: 0x20}
	TraceColor = color.NRGBA{R: 0x00, G: 0xff, B: 0x41, A: 0xff}
	GlowColor  = color.NRGBA{R: 0x00, G: 0xff, B: 0x41, A: 0x30}
)

const (
	gridWidth  = 0.5
	traceWidth = 1.8
	glowWidth  = 6
	headRadius = 2
	glowRadius = 4
)

// Image draws frames onto a persistent raster. Every draw fades what is
// already there instead of clearing it, which leaves a short afterglow
// behind the trace.
type Image struct {
	img   *image.RGBA
	z     *vector.Rasterizer
	scale float64
}

// NewImage builds a raster for a surface of width x height units, scale
// pixels per unit.
func NewImage(width int, height float64, scale int) (*Image, error) {
	if width < 1 || height <= 0 || scale < 1 {
		return nil, ErrBadSize
	}
	w := width * scale
	h := int(math.Ceil(height * float64(scale)))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)
	return &Image{
		img:   img,
		z:     vector.NewRasterizer(w, h),
		scale: float64(scale),
	}, nil
}

// Draw fades the previous contents and paints f on top.
func (im *Image) Draw(f Frame) {
	b := im.img.Bounds()
	draw.Draw(im.img, b, image.NewUniform(Fade), image.Point{}, draw.Over)

	im.reset()
	for _, gx := range f.GridX {
		im.segment(Point{gx, 0}, Point{gx, f.Height}, gridWidth)
	}
	for _, gy := range f.GridY {
		im.segment(Point{0, gy}, Point{float64(f.Width), gy}, gridWidth)
	}
	im.fill(GridColor)

	im.reset()
	im.path(f.Path, glowWidth)
	im.fill(GlowColor)

	im.reset()
	im.path(f.Path, traceWidth)
	im.fill(TraceColor)

	im.reset()
	im.circle(f.Head, glowRadius)
	im.fill(GlowColor)

	im.reset()
	im.circle(f.Head, headRadius)
	im.fill(TraceColor)
}

// Image exposes the current raster.
func (im *Image) Image() image.Image { return im.img }

// WritePNG encodes the current raster.
func (im *Image) WritePNG(w io.Writer) error {
	if err := png.Encode(w, im.img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func (im *Image) reset() {
	b := im.img.Bounds()
	im.z.Reset(b.Dx(), b.Dy())
}

func (im *Image) fill(c color.Color) {
	im.z.Draw(im.img, im.img.Bounds(), image.NewUniform(c), image.Point{})
}

func (im *Image) path(pts []Point, width float64) {
	for i := 1; i < len(pts); i++ {
		im.segment(pts[i-1], pts[i], width)
	}
}

// segment adds a stroked line as a quad. All quads share one orientation so
// overlaps do not cancel out.
func (im *Image) segment(a, b Point, width float64) {
	ax, ay := a.X*im.scale, a.Y*im.scale
	bx, by := b.X*im.scale, b.Y*im.scale
	if bx < ax || (bx == ax && by < ay) {
		ax, ay, bx, by = bx, by, ax, ay
	}
	dx, dy := bx-ax, by-ay
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	hw := width * im.scale / 2
	nx, ny := -dy/l*hw, dx/l*hw

	im.z.MoveTo(float32(ax+nx), float32(ay+ny))
	im.z.LineTo(float32(bx+nx), float32(by+ny))
	im.z.LineTo(float32(bx-nx), float32(by-ny))
	im.z.LineTo(float32(ax-nx), float32(ay-ny))
	im.z.ClosePath()
}

func (im *Image) circle(c Point, r float64) {
	const steps = 24
	cx, cy, rr := c.X*im.scale, c.Y*im.scale, r*im.scale
	im.z.MoveTo(float32(cx+rr), float32(cy))
	for i := 1; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / steps
		im.z.LineTo(float32(cx+rr*math.Cos(a)), float32(cy+rr*math.Sin(a)))
	}
	im.z.ClosePath()
}
