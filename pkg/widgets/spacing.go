package widgets

import "math"

// Spacing yields the gaps a [Flex] leaves along its main axis.
//
// For n children it yields exactly n+1 gaps: one before the first child, one
// after each child. Gaps that split space evenly are rounded to whole pixels
// and the rounding error is carried into the next gap, so the gaps always
// add up to round(extra).
type Spacing struct {
	alignment  MainAxisAlignment
	extra      float64
	n          int
	index      int
	equalSpace float64
	remainder  float64
}

// NewSpacing creates the gap generator for n children sharing extra pixels.
// A non-finite extra is treated as 0.
func NewSpacing(alignment MainAxisAlignment, extra float64, n int) *Spacing {
	if math.IsInf(extra, 0) || math.IsNaN(extra) {
		extra = 0
	}
	var equal float64
	if n > 0 {
		switch alignment {
		case MainAxisAlignmentCenter:
			equal = extra / 2
		case MainAxisAlignmentSpaceBetween:
			equal = extra / float64(max(n-1, 1))
		case MainAxisAlignmentSpaceEvenly:
			equal = extra / float64(n+1)
		case MainAxisAlignmentSpaceAround:
			equal = extra / float64(2*n)
		}
	}
	return &Spacing{alignment: alignment, extra: extra, n: n, equalSpace: equal}
}

func (s *Spacing) nextSpace() float64 {
	desired := s.equalSpace + s.remainder
	actual := math.Round(desired)
	s.remainder = desired - actual
	return actual
}

// Next returns the next gap, or false once all n+1 gaps were produced.
func (s *Spacing) Next() (float64, bool) {
	if s.index > s.n {
		return 0, false
	}
	first, last := s.index == 0, s.index == s.n
	s.index++

	if s.n == 0 {
		return math.Round(s.extra), true
	}
	switch s.alignment {
	case MainAxisAlignmentEnd:
		if first {
			return math.Round(s.extra), true
		}
		return 0, true
	case MainAxisAlignmentCenter:
		if first || last {
			return s.nextSpace(), true
		}
		return 0, true
	case MainAxisAlignmentSpaceBetween:
		switch {
		case first:
			return 0, true
		case !last:
			return s.nextSpace(), true
		case s.n == 1:
			return s.nextSpace(), true
		default:
			return 0, true
		}
	case MainAxisAlignmentSpaceEvenly:
		return s.nextSpace(), true
	case MainAxisAlignmentSpaceAround:
		if first || last {
			return s.nextSpace(), true
		}
		return s.nextSpace() + s.nextSpace(), true
	default: // start
		if last {
			return math.Round(s.extra), true
		}
		return 0, true
	}
}

// Gaps collects every gap of a fresh generator.
func Gaps(alignment MainAxisAlignment, extra float64, n int) []float64 {
	s := NewSpacing(alignment, extra, n)
	gaps := make([]float64, 0, n+1)
	for {
		g, ok := s.Next()
		if !ok {
			return gaps
		}
		gaps = append(gaps, g)
	}
}
