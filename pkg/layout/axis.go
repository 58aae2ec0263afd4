package layout

import (
	"fmt"

	"github.com/go-drift/trellis/pkg/graphics"
)

// Axis represents a layout direction.
type Axis int

const (
	AxisHorizontal Axis = iota
	AxisVertical
)

// String returns a human-readable representation of the axis.
func (a Axis) String() string {
	switch a {
	case AxisHorizontal:
		return "horizontal"
	case AxisVertical:
		return "vertical"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Cross returns the perpendicular axis.
func (a Axis) Cross() Axis {
	if a == AxisHorizontal {
		return AxisVertical
	}
	return AxisHorizontal
}

// Major extracts the component of size along this axis.
func (a Axis) Major(size graphics.Size) float64 {
	if a == AxisHorizontal {
		return size.Width
	}
	return size.Height
}

// Minor extracts the component of size across this axis.
func (a Axis) Minor(size graphics.Size) float64 {
	if a == AxisHorizontal {
		return size.Height
	}
	return size.Width
}

// PackSize builds a size from main- and cross-axis components.
func (a Axis) PackSize(major, minor float64) graphics.Size {
	if a == AxisHorizontal {
		return graphics.Size{Width: major, Height: minor}
	}
	return graphics.Size{Width: minor, Height: major}
}

// PackOffset builds an offset from main- and cross-axis components.
func (a Axis) PackOffset(major, minor float64) graphics.Offset {
	if a == AxisHorizontal {
		return graphics.Offset{X: major, Y: minor}
	}
	return graphics.Offset{X: minor, Y: major}
}

// Constraints replaces the main-axis range of bc with [minMajor, major],
// keeping the cross-axis range.
func (a Axis) Constraints(bc BoxConstraints, minMajor, major float64) BoxConstraints {
	if a == AxisHorizontal {
		return NewBoxConstraints(
			graphics.Size{Width: minMajor, Height: bc.Min.Height},
			graphics.Size{Width: major, Height: bc.Max.Height},
		)
	}
	return NewBoxConstraints(
		graphics.Size{Width: bc.Min.Width, Height: minMajor},
		graphics.Size{Width: bc.Max.Width, Height: major},
	)
}
