package core

import (
	"github.com/bits-and-blooms/bloom/v3"

	"github.com/go-drift/trellis/pkg/graphics"
)

// Bloom filter parameters for the descendant-id summary.
const (
	childFilterBits   = 256
	childFilterHashes = 3
)

type focusChangeKind int

const (
	focusTo focusChangeKind = iota
	focusResign
	focusNext
	focusPrevious
)

// focusChange is a pending focus request travelling up to the root.
type focusChange struct {
	kind focusChangeKind
	id   WidgetID
}

// TextFieldRegistration announces a widget that accepts text input.
type TextFieldRegistration struct {
	ID WidgetID
}

// WidgetState is the framework-side record kept for every widget.
//
// Widgets read it through their contexts. Only the runtime writes it.
type WidgetState struct {
	id        WidgetID
	parentID  WidgetID
	debugName string

	size               graphics.Size
	origin             graphics.Offset
	parentWindowOrigin graphics.Offset
	paintInsets        graphics.Insets
	baselineOffset     float64

	isNew                     bool
	needsLayout               bool
	needsPaint                bool
	needsWindowOrigin         bool
	requestAnim               bool
	childrenChanged           bool
	childrenDisabledChanged   bool
	updateFocusChain          bool
	isExpectingPlaceChildCall bool

	isHot     bool
	isActive  bool
	hasActive bool
	hasFocus  bool

	isExplicitlyDisabled    bool
	isExplicitlyDisabledNew bool
	ancestorDisabled        bool
	isStashed               bool

	// children summarizes the ids of every descendant. False positives are
	// possible; false negatives are not.
	children          *bloom.BloomFilter
	focusChain        []WidgetID
	requestFocus      *focusChange
	textRegistrations []TextFieldRegistration

	cursorChange CursorChange
	cursor       CursorIcon
	hasCursor    bool

	// childIDs is the child list observed after the last widget call.
	childIDs []WidgetID
	visited  bool
}

func newWidgetState(id WidgetID, debugName string) WidgetState {
	return WidgetState{
		id:                id,
		debugName:         debugName,
		isNew:             true,
		needsLayout:       true,
		needsPaint:        true,
		needsWindowOrigin: true,
		childrenChanged:   true,
		updateFocusChain:  true,
		children:          bloom.New(childFilterBits, childFilterHashes),
	}
}

// MergeUp folds the state of a child that has just been visited into s.
//
// Dirty flags are OR-ed, the descendant filter absorbs the child's filter and
// id, a pending focus request and text registrations move up, and the cursor
// is resolved. Merging the same child twice leaves s unchanged.
func (s *WidgetState) MergeUp(child *WidgetState) {
	s.needsLayout = s.needsLayout || child.needsLayout
	s.needsPaint = s.needsPaint || child.needsPaint
	s.needsWindowOrigin = s.needsWindowOrigin || child.needsWindowOrigin
	s.requestAnim = s.requestAnim || child.requestAnim
	s.childrenChanged = s.childrenChanged || child.childrenChanged
	s.childrenDisabledChanged = s.childrenDisabledChanged || child.childrenDisabledChanged
	s.updateFocusChain = s.updateFocusChain || child.updateFocusChain
	s.hasActive = s.hasActive || child.isActive || child.hasActive
	s.hasFocus = s.hasFocus || child.hasFocus

	if s.children == nil {
		s.children = bloom.New(childFilterBits, childFilterHashes)
	}
	if child.children != nil {
		// Filters share parameters, so Merge cannot fail.
		_ = s.children.Merge(child.children)
	}
	s.children.Add(child.id.bytes())

	if s.requestFocus == nil && child.requestFocus != nil {
		s.requestFocus = child.requestFocus
		child.requestFocus = nil
	}
	if len(child.textRegistrations) > 0 {
		s.textRegistrations = append(s.textRegistrations, child.textRegistrations...)
		child.textRegistrations = nil
	}

	switch {
	case s.cursorChange.IsOverride():
		s.cursor, s.hasCursor = s.cursorChange.icon, true
	case (child.isHot || child.isActive) && child.hasCursor:
		s.cursor, s.hasCursor = child.cursor, true
	case !s.hasCursor:
		s.cursor, s.hasCursor = s.cursorChange.Icon()
	}
	child.hasCursor = false
}

// ID returns the widget id.
func (s *WidgetState) ID() WidgetID { return s.id }

// ParentID returns the id of the parent, or zero for the root.
func (s *WidgetState) ParentID() WidgetID { return s.parentID }

// DebugName returns the widget's short type name.
func (s *WidgetState) DebugName() string { return s.debugName }

// Size returns the size computed by the last layout.
func (s *WidgetState) Size() graphics.Size { return s.size }

// Origin returns the offset in the parent's coordinate space.
func (s *WidgetState) Origin() graphics.Offset { return s.origin }

// LayoutRect returns the widget's rect in the parent's coordinate space.
func (s *WidgetState) LayoutRect() graphics.Rect {
	return graphics.RectFromOriginSize(s.origin, s.size)
}

// WindowOrigin returns the widget origin in window coordinates.
func (s *WidgetState) WindowOrigin() graphics.Offset {
	return s.parentWindowOrigin.Add(s.origin)
}

// WindowLayoutRect returns the layout rect in window coordinates.
func (s *WidgetState) WindowLayoutRect() graphics.Rect {
	return graphics.RectFromOriginSize(s.WindowOrigin(), s.size)
}

// PaintRect returns the area the widget paints to, in the parent's
// coordinate space.
func (s *WidgetState) PaintRect() graphics.Rect {
	return s.LayoutRect().Inset(s.paintInsets)
}

// PaintInsets returns how far painting extends beyond the layout rect.
func (s *WidgetState) PaintInsets() graphics.Insets { return s.paintInsets }

// BaselineOffset returns the distance from the bottom edge to the baseline.
func (s *WidgetState) BaselineOffset() float64 { return s.baselineOffset }

// IsNew reports whether the widget has not yet received WidgetAdded.
func (s *WidgetState) IsNew() bool { return s.isNew }

// NeedsLayout reports whether the widget or a descendant needs layout.
func (s *WidgetState) NeedsLayout() bool { return s.needsLayout }

// NeedsPaint reports whether the widget or a descendant needs painting.
func (s *WidgetState) NeedsPaint() bool { return s.needsPaint }

// NeedsWindowOrigin reports whether window origins below the widget are stale.
func (s *WidgetState) NeedsWindowOrigin() bool { return s.needsWindowOrigin }

// RequestedAnimFrame reports whether the widget or a descendant wants an
// animation frame.
func (s *WidgetState) RequestedAnimFrame() bool { return s.requestAnim }

// ChildrenChanged reports whether children were added or removed since the
// last RouteWidgetAdded pass.
func (s *WidgetState) ChildrenChanged() bool { return s.childrenChanged }

// IsExpectingPlaceChild reports whether the widget was laid out but not yet
// placed by its parent.
func (s *WidgetState) IsExpectingPlaceChild() bool { return s.isExpectingPlaceChildCall }

// IsHot reports whether the pointer is over the widget.
func (s *WidgetState) IsHot() bool { return s.isHot }

// IsActive reports whether the widget captured the pointer.
func (s *WidgetState) IsActive() bool { return s.isActive }

// HasActive reports whether a descendant is active.
func (s *WidgetState) HasActive() bool { return s.hasActive }

// HasFocus reports whether the widget or a descendant holds focus.
func (s *WidgetState) HasFocus() bool { return s.hasFocus }

// IsDisabled reports whether the widget or an ancestor is disabled.
func (s *WidgetState) IsDisabled() bool {
	return s.isExplicitlyDisabled || s.ancestorDisabled
}

// IsStashed reports whether the widget is excluded from layout and paint.
func (s *WidgetState) IsStashed() bool { return s.isStashed }

// MayContain reports whether id could be a descendant. A false result is exact.
func (s *WidgetState) MayContain(id WidgetID) bool {
	return s.children != nil && s.children.Test(id.bytes())
}

// FocusChain returns the focusable descendants in tab order.
func (s *WidgetState) FocusChain() []WidgetID { return s.focusChain }

// Cursor returns the resolved cursor and whether one is set.
func (s *WidgetState) Cursor() (CursorIcon, bool) { return s.cursor, s.hasCursor }

// CursorChange returns the widget's own cursor request.
func (s *WidgetState) CursorChange() CursorChange { return s.cursorChange }

// ChildIDs returns the children observed after the last widget call.
func (s *WidgetState) ChildIDs() []WidgetID { return s.childIDs }
