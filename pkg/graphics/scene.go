package graphics

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
)

// Scene is an append-only list of drawing operations recorded during the
// paint pass. It can be replayed into a raster image with Rasterize.
type Scene struct {
	ops   []SceneOp
	depth int
}

// SceneOp is one recorded drawing operation.
type SceneOp interface {
	apply(r *rasterizer)
}

// OpSave pushes the current transform and clip.
type OpSave struct{}

// OpRestore pops the transform and clip pushed by the matching OpSave.
type OpRestore struct{}

// OpTranslate moves the origin by Offset.
type OpTranslate struct {
	Offset Offset
}

// OpClipRect intersects the clip with Rect in local coordinates.
type OpClipRect struct {
	Rect Rect
}

// OpFillRect fills Rect with Color.
type OpFillRect struct {
	Rect  Rect
	Color Color
}

// OpText draws a text layout with its top-left corner at Position.
type OpText struct {
	Layout   *TextLayout
	Position Offset
}

// NewScene returns an empty scene.
func NewScene() *Scene {
	return &Scene{}
}

// Save pushes the current drawing state.
func (s *Scene) Save() {
	s.depth++
	s.ops = append(s.ops, OpSave{})
}

// Restore pops the drawing state. Unbalanced restores are ignored.
func (s *Scene) Restore() {
	if s.depth == 0 {
		return
	}
	s.depth--
	s.ops = append(s.ops, OpRestore{})
}

// Translate moves the local origin.
func (s *Scene) Translate(o Offset) {
	if o == (Offset{}) {
		return
	}
	s.ops = append(s.ops, OpTranslate{Offset: o})
}

// ClipRect restricts subsequent drawing to rect.
func (s *Scene) ClipRect(rect Rect) {
	s.ops = append(s.ops, OpClipRect{Rect: rect})
}

// FillRect fills rect with c.
func (s *Scene) FillRect(rect Rect, c Color) {
	s.ops = append(s.ops, OpFillRect{Rect: rect, Color: c})
}

// DrawText draws layout with its top-left corner at position.
func (s *Scene) DrawText(layout *TextLayout, position Offset) {
	if layout == nil {
		return
	}
	s.ops = append(s.ops, OpText{Layout: layout, Position: position})
}

// Ops returns the recorded operations.
func (s *Scene) Ops() []SceneOp {
	return s.ops
}

// Len returns the number of recorded operations.
func (s *Scene) Len() int {
	return len(s.ops)
}

// Reset discards all recorded operations.
func (s *Scene) Reset() {
	s.ops = s.ops[:0]
	s.depth = 0
}

// Rasterize replays the scene into a new RGBA image of the given size,
// starting from a transparent background. Coordinates are truncated to
// whole pixels.
func (s *Scene) Rasterize(size Size) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, int(math.Ceil(size.Width)), int(math.Ceil(size.Height))))
	r := &rasterizer{dst: img, clip: img.Bounds()}
	for _, op := range s.ops {
		op.apply(r)
	}
	return img
}

type rasterState struct {
	origin Offset
	clip   image.Rectangle
}

type rasterizer struct {
	dst    *image.RGBA
	origin Offset
	clip   image.Rectangle
	stack  []rasterState
}

func (r *rasterizer) toDevice(rect Rect) image.Rectangle {
	rect = rect.Translate(r.origin)
	return image.Rect(
		int(math.Floor(rect.Left)),
		int(math.Floor(rect.Top)),
		int(math.Floor(rect.Right)),
		int(math.Floor(rect.Bottom)),
	)
}

func (OpSave) apply(r *rasterizer) {
	r.stack = append(r.stack, rasterState{origin: r.origin, clip: r.clip})
}

func (OpRestore) apply(r *rasterizer) {
	if len(r.stack) == 0 {
		return
	}
	top := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	r.origin = top.origin
	r.clip = top.clip
}

func (op OpTranslate) apply(r *rasterizer) {
	r.origin = r.origin.Add(op.Offset)
}

func (op OpClipRect) apply(r *rasterizer) {
	r.clip = r.clip.Intersect(r.toDevice(op.Rect))
}

func (op OpFillRect) apply(r *rasterizer) {
	bounds := r.toDevice(op.Rect).Intersect(r.clip)
	if bounds.Empty() {
		return
	}
	draw.Draw(r.dst, bounds, image.NewUniform(op.Color.NRGBA()), image.Point{}, draw.Over)
}

func (op OpText) apply(r *rasterizer) {
	if r.clip.Empty() {
		return
	}
	// Draw into a clip-sized view so glyphs outside the clip are discarded.
	sub, ok := r.dst.SubImage(r.clip).(*image.RGBA)
	if !ok {
		return
	}
	d := font.Drawer{
		Dst:  sub,
		Src:  image.NewUniform(op.Layout.Style.Color.NRGBA()),
		Face: op.Layout.Face,
		Dot:  op.Layout.dot(op.Position.Add(r.origin)),
	}
	d.DrawString(op.Layout.Text)
}
