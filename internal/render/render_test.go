package render

import (
	"bytes"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func testSamples(n int, v float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = v
	}
	return s
}

func TestNewFrameLayout(t *testing.T) {
	samples := testSamples(300, 50)
	samples[299] = 65

	f, err := NewFrame(samples, 300, 100)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 30, 60, 90, 120, 150, 180, 210, 240, 270}, f.GridX)
	require.Equal(t, []float64{0, 20, 40, 60, 80}, f.GridY)
	require.Len(t, f.Path, 300)
	require.Equal(t, Point{X: 0, Y: 50}, f.Path[0])
	require.Equal(t, Point{X: 299, Y: 65}, f.Head)
}

func TestNewFrameRejectsEmptySurface(t *testing.T) {
	_, err := NewFrame(testSamples(10, 1), 0, 100)
	require.ErrorIs(t, err, ErrBadSize)
	_, err = NewFrame(testSamples(10, 1), 10, 0)
	require.ErrorIs(t, err, ErrBadSize)
	_, err = NewFrame(nil, 10, 10)
	require.ErrorIs(t, err, ErrBadSize)
}

func TestCanvasRuler(t *testing.T) {
	c, err := NewCanvas(40, 10)
	require.NoError(t, err)
	f, err := NewFrame(testSamples(300, 50), 300, 100)
	require.NoError(t, err)

	r := []rune(c.Ruler(f))
	require.Len(t, r, 39)
	require.Equal(t, 10, strings.Count(string(r), "┴"))
	require.Equal(t, '┴', r[0])
	require.Equal(t, '┴', r[4])
}

func TestCanvasDrawAndResize(t *testing.T) {
	_, err := NewCanvas(0, 5)
	require.ErrorIs(t, err, ErrBadSize)

	c, err := NewCanvas(40, 10)
	require.NoError(t, err)
	f, err := NewFrame(testSamples(300, 50), 300, 100)
	require.NoError(t, err)
	require.NotPanics(t, func() { c.Draw(f) })

	c.Resize(0, -3)
	cols, rows := c.Size()
	require.Equal(t, 1, cols)
	require.Equal(t, 1, rows)
}

func TestImageDrawsTraceAndHead(t *testing.T) {
	im, err := NewImage(300, 100, 2)
	require.NoError(t, err)

	samples := testSamples(300, 50)
	f, err := NewFrame(samples, 300, 100)
	require.NoError(t, err)
	im.Draw(f)

	img := im.Image()
	require.Equal(t, 600, img.Bounds().Dx())
	require.Equal(t, 200, img.Bounds().Dy())

	on := color.RGBAModel.Convert(img.At(300, 100)).(color.RGBA)
	require.Greater(t, on.G, uint8(0xc0))

	head := color.RGBAModel.Convert(img.At(598, 100)).(color.RGBA)
	require.Greater(t, head.G, uint8(0xc0))

	off := color.RGBAModel.Convert(img.At(301, 170)).(color.RGBA)
	require.Less(t, off.G, uint8(0x40))
}

func TestImageFadesPreviousFrame(t *testing.T) {
	im, err := NewImage(300, 100, 1)
	require.NoError(t, err)

	high, err := NewFrame(testSamples(300, 20), 300, 100)
	require.NoError(t, err)
	low, err := NewFrame(testSamples(300, 70), 300, 100)
	require.NoError(t, err)

	im.Draw(high)
	before := color.RGBAModel.Convert(im.Image().At(151, 20)).(color.RGBA).G
	im.Draw(low)
	after := color.RGBAModel.Convert(im.Image().At(151, 20)).(color.RGBA).G
	require.Less(t, after, before)
	require.Greater(t, after, uint8(0))
}

func TestImageWritePNG(t *testing.T) {
	_, err := NewImage(0, 100, 1)
	require.ErrorIs(t, err, ErrBadSize)

	im, err := NewImage(30, 20, 3)
	require.NoError(t, err)
	f, err := NewFrame(testSamples(30, 10), 30, 20)
	require.NoError(t, err)
	im.Draw(f)

	var buf bytes.Buffer
	require.NoError(t, im.WritePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, 90, img.Bounds().Dx())
	require.Equal(t, 60, img.Bounds().Dy())
}
