package core

import (
	"fmt"

	"github.com/go-drift/trellis/pkg/errors"
	"github.com/go-drift/trellis/pkg/graphics"
)

// The drivers below walk registered states without calling widgets. They
// follow the child lists recorded after each widget call.

// recurseOnChildren calls visit for every registered child of s, in order.
func recurseOnChildren(a *stateArena, s *WidgetState, visit func(child *WidgetState)) {
	for _, id := range s.childIDs {
		if child := a.get(id); child != nil {
			visit(child)
		}
	}
}

// walkTree visits s and its descendants depth first. Returning false from
// visit skips the subtree.
func walkTree(a *stateArena, s *WidgetState, visit func(*WidgetState) bool) {
	if !visit(s) {
		return
	}
	recurseOnChildren(a, s, func(child *WidgetState) {
		walkTree(a, child, visit)
	})
}

// updateWindowOrigins recomputes the window origin of every descendant of s.
func updateWindowOrigins(a *stateArena, s *WidgetState) {
	s.needsWindowOrigin = false
	origin := s.WindowOrigin()
	recurseOnChildren(a, s, func(child *WidgetState) {
		child.parentWindowOrigin = origin
		updateWindowOrigins(a, child)
	})
}

// removeSubtree unregisters s and all its descendants.
func removeSubtree(a *stateArena, id WidgetID) {
	s := a.get(id)
	if s == nil {
		return
	}
	recurseOnChildren(a, s, func(child *WidgetState) {
		removeSubtree(a, child.id)
	})
	a.remove(id)
}

// checkLayoutDone reports widgets that still need layout or placement after
// a layout pass.
func checkLayoutDone(a *stateArena, root *WidgetState) {
	walkTree(a, root, func(s *WidgetState) bool {
		if s.isStashed {
			return false
		}
		if s.isExpectingPlaceChildCall {
			debugPanic(s, "layout", "widget was laid out but never placed")
		}
		if s.needsLayout {
			errors.Warn(&errors.TreeError{
				Op:     "core.RenderRoot.Layout",
				Kind:   errors.KindLayout,
				Widget: s.debugName,
				ID:     uint64(s.id),
				Err:    fmt.Errorf("layout requested during the layout pass"),
			})
		}
		return true
	})
}

// hitTest returns the ids of the widgets containing the window position p,
// outermost first.
func hitTest(a *stateArena, root *WidgetState, p graphics.Offset) []WidgetID {
	var path []WidgetID
	walkTree(a, root, func(s *WidgetState) bool {
		if s.isStashed || !s.WindowLayoutRect().Contains(p) {
			return false
		}
		path = append(path, s.id)
		return true
	})
	return path
}
