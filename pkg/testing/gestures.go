package testing

import (
	"fmt"

	"github.com/go-drift/trellis/pkg/core"
	"github.com/go-drift/trellis/pkg/graphics"
)

// Tap clicks the center of the first widget matched by finder.
func (h *Harness) Tap(finder Finder) error {
	states := finder.Evaluate(h)
	if len(states) == 0 {
		return fmt.Errorf("tap: no widget found for %s", finder.Description())
	}
	h.TapAt(center(states[0]))
	return nil
}

// TapAt moves the pointer to pos and clicks the primary button.
func (h *Harness) TapAt(pos graphics.Offset) bool {
	h.MouseMove(pos)
	h.PointerEvent(core.PointerDown{Position: pos})
	return h.PointerEvent(core.PointerUp{Position: pos})
}

// DragFrom presses at start, moves by delta and releases.
func (h *Harness) DragFrom(start, delta graphics.Offset) {
	end := start.Add(delta)
	h.MouseMove(start)
	h.PointerEvent(core.PointerDown{Position: start})
	h.MouseMove(end)
	h.PointerEvent(core.PointerUp{Position: end})
}

func center(s *core.WidgetState) graphics.Offset {
	r := s.WindowLayoutRect()
	return graphics.Offset{X: (r.Left + r.Right) / 2, Y: (r.Top + r.Bottom) / 2}
}
