package graphics

import "math"

// Offset represents a 2D point or vector in logical pixels.
type Offset struct {
	X float64
	Y float64
}

// Add returns the component-wise sum of two offsets.
func (o Offset) Add(other Offset) Offset {
	return Offset{X: o.X + other.X, Y: o.Y + other.Y}
}

// Sub returns the component-wise difference of two offsets.
func (o Offset) Sub(other Offset) Offset {
	return Offset{X: o.X - other.X, Y: o.Y - other.Y}
}

// Size represents width and height dimensions in logical pixels.
type Size struct {
	Width  float64
	Height float64
}

// IsFinite reports whether both dimensions are finite.
func (s Size) IsFinite() bool {
	return !math.IsInf(s.Width, 0) && !math.IsInf(s.Height, 0) &&
		!math.IsNaN(s.Width) && !math.IsNaN(s.Height)
}

// Expand returns a size with each dimension rounded away from zero to the
// nearest integer.
func (s Size) Expand() Size {
	return Size{Width: Expand(s.Width), Height: Expand(s.Height)}
}

// ToRect returns a rectangle of this size anchored at the origin.
func (s Size) ToRect() Rect {
	return RectFromLTWH(0, 0, s.Width, s.Height)
}

// Expand rounds v away from zero to the nearest integer.
// Zero, negative zero and subnormal values collapse to 0.
func Expand(v float64) float64 {
	if math.Abs(v) < minNormal {
		return 0
	}
	return math.Copysign(math.Ceil(math.Abs(v)), v)
}

// minNormal is the smallest positive normal float64.
const minNormal = 0x1p-1022

// Rect represents a rectangle using left, top, right, bottom coordinates.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// RectFromLTWH constructs a Rect from left, top, width, height values.
func RectFromLTWH(left, top, width, height float64) Rect {
	return Rect{
		Left:   left,
		Top:    top,
		Right:  left + width,
		Bottom: top + height,
	}
}

// RectFromOriginSize constructs a Rect from an origin and a size.
func RectFromOriginSize(origin Offset, size Size) Rect {
	return RectFromLTWH(origin.X, origin.Y, size.Width, size.Height)
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Right - r.Left
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// Size returns the size of the rectangle.
func (r Rect) Size() Size {
	return Size{Width: r.Width(), Height: r.Height()}
}

// Origin returns the top-left corner of the rectangle.
func (r Rect) Origin() Offset {
	return Offset{X: r.Left, Y: r.Top}
}

// IsEmpty returns true if the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

// Contains reports whether p lies inside the rectangle.
// The left and top edges are inclusive, the right and bottom edges exclusive.
func (r Rect) Contains(p Offset) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// Translate returns a new rect offset by o.
func (r Rect) Translate(o Offset) Rect {
	return Rect{
		Left:   r.Left + o.X,
		Top:    r.Top + o.Y,
		Right:  r.Right + o.X,
		Bottom: r.Bottom + o.Y,
	}
}

// Union returns the smallest rect containing both r and other.
// An empty rect contributes nothing.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	return Rect{
		Left:   math.Min(r.Left, other.Left),
		Top:    math.Min(r.Top, other.Top),
		Right:  math.Max(r.Right, other.Right),
		Bottom: math.Max(r.Bottom, other.Bottom),
	}
}

// Intersect returns the intersection of two rectangles.
// Returns empty rect if they don't overlap.
func (r Rect) Intersect(other Rect) Rect {
	left := math.Max(r.Left, other.Left)
	top := math.Max(r.Top, other.Top)
	right := math.Min(r.Right, other.Right)
	bottom := math.Min(r.Bottom, other.Bottom)
	if left >= right || top >= bottom {
		return Rect{}
	}
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// Inset grows the rectangle outward by the given insets.
func (r Rect) Inset(in Insets) Rect {
	return Rect{
		Left:   r.Left - in.Left,
		Top:    r.Top - in.Top,
		Right:  r.Right + in.Right,
		Bottom: r.Bottom + in.Bottom,
	}
}

// Insets describes how far painting extends past each edge of a layout rect.
// Positive values extend outward.
type Insets struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// InsetsBetween returns the insets that grow inner until it covers outer.
// Edges where outer lies inside inner yield zero.
func InsetsBetween(outer, inner Rect) Insets {
	return Insets{
		Left:   math.Max(inner.Left-outer.Left, 0),
		Top:    math.Max(inner.Top-outer.Top, 0),
		Right:  math.Max(outer.Right-inner.Right, 0),
		Bottom: math.Max(outer.Bottom-inner.Bottom, 0),
	}
}

// NonNegative clamps every edge to zero or more.
func (in Insets) NonNegative() Insets {
	return Insets{
		Left:   math.Max(in.Left, 0),
		Top:    math.Max(in.Top, 0),
		Right:  math.Max(in.Right, 0),
		Bottom: math.Max(in.Bottom, 0),
	}
}
