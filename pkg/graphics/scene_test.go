package graphics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSceneRasterizeFillRect(t *testing.T) {
	s := NewScene()
	s.Save()
	s.Translate(Offset{X: 2, Y: 3})
	s.FillRect(RectFromLTWH(0, 0, 2, 2), ColorRed)
	s.Restore()

	img := s.Rasterize(Size{Width: 6, Height: 6})
	require.Equal(t, 6, img.Bounds().Dx())

	assert.Equal(t, ColorRed.NRGBA().R, img.RGBAAt(2, 3).R)
	assert.Equal(t, ColorRed.NRGBA().R, img.RGBAAt(3, 4).R)
	assert.Zero(t, img.RGBAAt(4, 4).A)
	assert.Zero(t, img.RGBAAt(1, 3).A)
}

func TestSceneClipRect(t *testing.T) {
	s := NewScene()
	s.Save()
	s.ClipRect(RectFromLTWH(0, 0, 2, 2))
	s.FillRect(RectFromLTWH(0, 0, 4, 4), ColorBlue)
	s.Restore()
	s.FillRect(RectFromLTWH(3, 3, 1, 1), ColorGreen)

	img := s.Rasterize(Size{Width: 4, Height: 4})
	assert.Equal(t, uint8(0xFF), img.RGBAAt(1, 1).B)
	assert.Zero(t, img.RGBAAt(2, 2).A)
	assert.Equal(t, uint8(0xFF), img.RGBAAt(3, 3).G)
}

func TestSceneUnbalancedRestoreIgnored(t *testing.T) {
	s := NewScene()
	s.Restore()
	assert.Equal(t, 0, s.Len())
}

func TestSceneDrawTextMarksPixels(t *testing.T) {
	layout := LayoutText("H", TextStyle{Color: ColorBlack})
	s := NewScene()
	s.DrawText(layout, Offset{})
	img := s.Rasterize(layout.Size)

	painted := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y).A != 0 {
				painted++
			}
		}
	}
	assert.Positive(t, painted)
}

func TestLayoutTextMetrics(t *testing.T) {
	layout := LayoutText("hello", TextStyle{Face: FontFaceBasic})
	assert.Equal(t, 35.0, layout.Size.Width)
	assert.Equal(t, layout.Ascent+layout.Descent, layout.Size.Height)
	assert.Equal(t, layout.Descent, layout.Baseline())

	tall := LayoutText("hello", TextStyle{Face: FontFaceInconsolata})
	assert.Equal(t, 40.0, tall.Size.Width)
	assert.Greater(t, tall.Size.Height, layout.Size.Height)
}
