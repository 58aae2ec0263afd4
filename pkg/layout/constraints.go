// Package layout provides box constraints and axis helpers used by the
// layout pass.
package layout

import (
	"fmt"
	"math"

	"github.com/go-drift/trellis/pkg/errors"
	"github.com/go-drift/trellis/pkg/graphics"
)

// BoxConstraints bound the size a widget may choose during layout.
//
// Min and Max are rounded away from zero on construction so that layout
// works in whole pixels. A dimension whose Max is +Inf is unbounded.
type BoxConstraints struct {
	Min graphics.Size
	Max graphics.Size
}

// UnboundedConstraints accept any size.
var UnboundedConstraints = BoxConstraints{
	Max: graphics.Size{Width: math.Inf(1), Height: math.Inf(1)},
}

// NewBoxConstraints creates constraints from minimum and maximum sizes.
func NewBoxConstraints(min, max graphics.Size) BoxConstraints {
	return BoxConstraints{Min: min.Expand(), Max: max.Expand()}
}

// Tight creates constraints that only accept exactly size.
func Tight(size graphics.Size) BoxConstraints {
	size = size.Expand()
	return BoxConstraints{Min: size, Max: size}
}

// Loose creates constraints from zero up to size.
func Loose(size graphics.Size) BoxConstraints {
	return BoxConstraints{Max: size.Expand()}
}

// Loosen returns a copy with the minimum dropped to zero.
func (c BoxConstraints) Loosen() BoxConstraints {
	return BoxConstraints{Max: c.Max}
}

// Constrain clamps size into the constraints.
func (c BoxConstraints) Constrain(size graphics.Size) graphics.Size {
	return graphics.Size{
		Width:  clamp(size.Width, c.Min.Width, c.Max.Width),
		Height: clamp(size.Height, c.Min.Height, c.Max.Height),
	}
}

// IsTight reports whether the constraints accept only one size.
func (c BoxConstraints) IsTight() bool {
	return c.Min == c.Max
}

// IsWidthBounded reports whether the maximum width is finite.
func (c BoxConstraints) IsWidthBounded() bool {
	return !math.IsInf(c.Max.Width, 1)
}

// IsHeightBounded reports whether the maximum height is finite.
func (c BoxConstraints) IsHeightBounded() bool {
	return !math.IsInf(c.Max.Height, 1)
}

// Shrink returns constraints reduced by diff on each axis, never below zero.
func (c BoxConstraints) Shrink(diff graphics.Size) BoxConstraints {
	return NewBoxConstraints(
		graphics.Size{
			Width:  math.Max(c.Min.Width-diff.Width, 0),
			Height: math.Max(c.Min.Height-diff.Height, 0),
		},
		graphics.Size{
			Width:  math.Max(c.Max.Width-diff.Width, 0),
			Height: math.Max(c.Max.Height-diff.Height, 0),
		},
	)
}

// Contains reports whether size satisfies the constraints.
func (c BoxConstraints) Contains(size graphics.Size) bool {
	return size.Width >= c.Min.Width && size.Width <= c.Max.Width &&
		size.Height >= c.Min.Height && size.Height <= c.Max.Height
}

// DebugCheck reports malformed constraints passed to the named widget.
// Malformed constraints are a configuration warning, not a fatal error.
func (c BoxConstraints) DebugCheck(name string) {
	if !(0 <= c.Min.Width && c.Min.Width <= c.Max.Width) ||
		!(0 <= c.Min.Height && c.Min.Height <= c.Max.Height) {
		errors.Warn(&errors.TreeError{
			Op:     "layout.BoxConstraints",
			Kind:   errors.KindLayout,
			Widget: name,
			Err:    fmt.Errorf("bad constraints %v", c),
		})
	}
	if math.IsInf(c.Min.Width, 1) {
		errors.Warn(&errors.TreeError{
			Op:     "layout.BoxConstraints",
			Kind:   errors.KindLayout,
			Widget: name,
			Err:    fmt.Errorf("infinite minimum width"),
		})
	}
	if math.IsInf(c.Min.Height, 1) {
		errors.Warn(&errors.TreeError{
			Op:     "layout.BoxConstraints",
			Kind:   errors.KindLayout,
			Widget: name,
			Err:    fmt.Errorf("infinite minimum height"),
		})
	}
}

// String returns a compact representation such as "[0x0, 100x+Inf]".
func (c BoxConstraints) String() string {
	return fmt.Sprintf("[%gx%g, %gx%g]", c.Min.Width, c.Min.Height, c.Max.Width, c.Max.Height)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
