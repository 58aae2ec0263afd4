package widgets

import (
	"fmt"
	"math"

	"github.com/go-drift/trellis/pkg/core"
	"github.com/go-drift/trellis/pkg/errors"
	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/layout"
)

// SizedBox forces a width and/or height on its optional child, and can fill
// its area with a background color.
//
// An unset dimension follows the child, or collapses to the minimum
// constraint when there is no child. Common uses:
//
//	// Fixed-size colored block
//	widgets.EmptyBox().Width(40).Height(20).Background(graphics.ColorRed)
//
//	// Child stretched to the available width
//	widgets.NewSizedBox(label).ExpandWidth()
type SizedBox struct {
	child      *core.WidgetPod[core.Widget]
	width      float64
	height     float64
	hasWidth   bool
	hasHeight  bool
	background graphics.Color
}

// NewSizedBox creates a box around child.
func NewSizedBox(child core.Widget) *SizedBox {
	return &SizedBox{child: core.Boxed(child)}
}

// EmptyBox creates a box without a child.
func EmptyBox() *SizedBox { return &SizedBox{} }

// Width sets the width.
func (s *SizedBox) Width(w float64) *SizedBox {
	s.width, s.hasWidth = w, true
	return s
}

// Height sets the height.
func (s *SizedBox) Height(h float64) *SizedBox {
	s.height, s.hasHeight = h, true
	return s
}

// ExpandWidth takes the full available width.
func (s *SizedBox) ExpandWidth() *SizedBox { return s.Width(math.Inf(1)) }

// ExpandHeight takes the full available height.
func (s *SizedBox) ExpandHeight() *SizedBox { return s.Height(math.Inf(1)) }

// Background sets the fill color.
func (s *SizedBox) Background(c graphics.Color) *SizedBox {
	s.background = c
	return s
}

// Child returns the child pod, or nil.
func (s *SizedBox) Child() *core.WidgetPod[core.Widget] { return s.child }

func (s *SizedBox) childConstraints(bc layout.BoxConstraints) layout.BoxConstraints {
	minW, maxW := bc.Min.Width, bc.Max.Width
	if s.hasWidth {
		w := math.Min(math.Max(s.width, bc.Min.Width), bc.Max.Width)
		minW, maxW = w, w
	}
	minH, maxH := bc.Min.Height, bc.Max.Height
	if s.hasHeight {
		h := math.Min(math.Max(s.height, bc.Min.Height), bc.Max.Height)
		minH, maxH = h, h
	}
	return layout.NewBoxConstraints(
		graphics.Size{Width: minW, Height: minH},
		graphics.Size{Width: maxW, Height: maxH},
	)
}

func (s *SizedBox) OnEvent(ctx *core.EventCtx, event core.Event) {
	if s.child != nil {
		s.child.OnEvent(ctx, event)
	}
}

func (s *SizedBox) Lifecycle(ctx *core.LifeCycleCtx, event core.LifeCycle) {
	if s.child != nil {
		s.child.Lifecycle(ctx, event)
	}
}

func (s *SizedBox) Layout(ctx *core.LayoutCtx, bc layout.BoxConstraints) graphics.Size {
	cbc := s.childConstraints(bc)
	var size graphics.Size
	if s.child != nil {
		size = ctx.RunLayout(s.child, cbc)
		ctx.PlaceChild(s.child, graphics.Offset{})
		ctx.SetBaselineOffset(ctx.ChildBaselineOffset(s.child))
	} else {
		var w, h float64
		if s.hasWidth {
			w = s.width
		}
		if s.hasHeight {
			h = s.height
		}
		size = bc.Constrain(graphics.Size{Width: w, Height: h})
		ctx.SetBaselineOffset(0)
	}
	if !size.IsFinite() {
		errors.Warn(&errors.TreeError{
			Op:     "widgets.SizedBox.Layout",
			Kind:   errors.KindLayout,
			Widget: "SizedBox",
			ID:     uint64(ctx.WidgetID()),
			Err:    fmt.Errorf("infinite size %gx%g; is an expanded box inside an unbounded container?", size.Width, size.Height),
		})
	}
	return size
}

func (s *SizedBox) Paint(ctx *core.PaintCtx, scene *graphics.Scene) {
	if s.background != graphics.ColorTransparent {
		scene.FillRect(ctx.Size().ToRect(), s.background)
	}
	if s.child != nil {
		s.child.Paint(ctx, scene)
	}
}

func (s *SizedBox) Accessibility(ctx *core.AccessCtx) {
	if s.child != nil {
		s.child.Accessibility(ctx)
	}
}

func (s *SizedBox) ChildrenIDs() []core.WidgetID {
	if s.child == nil {
		return nil
	}
	return []core.WidgetID{s.child.ID()}
}

// SizedBoxMut edits a [SizedBox] through a [core.WidgetMut].
type SizedBoxMut struct {
	m *core.WidgetMut[*SizedBox]
}

// EditSizedBox wraps m.
func EditSizedBox(m *core.WidgetMut[*SizedBox]) SizedBoxMut { return SizedBoxMut{m: m} }

// SetWidth sets the width.
func (s SizedBoxMut) SetWidth(w float64) {
	s.m.Widget().Width(w)
	s.m.Ctx().RequestLayout()
}

// SetHeight sets the height.
func (s SizedBoxMut) SetHeight(h float64) {
	s.m.Widget().Height(h)
	s.m.Ctx().RequestLayout()
}

// UnsetWidth lets the width follow the child again.
func (s SizedBoxMut) UnsetWidth() {
	s.m.Widget().hasWidth = false
	s.m.Ctx().RequestLayout()
}

// UnsetHeight lets the height follow the child again.
func (s SizedBoxMut) UnsetHeight() {
	s.m.Widget().hasHeight = false
	s.m.Ctx().RequestLayout()
}

// SetBackground changes the fill color.
func (s SizedBoxMut) SetBackground(c graphics.Color) {
	s.m.Widget().background = c
	s.m.Ctx().RequestPaint()
}

// SetChild replaces the child, unregistering the previous one.
func (s SizedBoxMut) SetChild(w core.Widget) {
	s.RemoveChild()
	s.m.Widget().child = core.Boxed(w)
	s.m.Ctx().ChildrenChanged()
}

// RemoveChild drops the child, if any.
func (s SizedBoxMut) RemoveChild() {
	box := s.m.Widget()
	if box.child == nil {
		return
	}
	s.m.Ctx().RemoveChild(box.child)
	box.child = nil
}

// ChildMut passes a handle to the child to fn. It reports false, without
// calling fn, if there is no child.
func (s SizedBoxMut) ChildMut(fn func(*core.WidgetMut[core.Widget])) bool {
	box := s.m.Widget()
	if box.child == nil {
		return false
	}
	core.GetMut(s.m.Ctx(), box.child, fn)
	return true
}
