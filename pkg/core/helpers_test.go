package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/trellis/pkg/core"
	"github.com/go-drift/trellis/pkg/errors"
	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/layout"
	wtest "github.com/go-drift/trellis/pkg/testing"
)

type pods = []*core.WidgetPod[core.Widget]

type leafState struct {
	size     graphics.Size
	focus    bool
	text     bool
	cursor   core.CursorIcon
	handled  bool
	events   []core.Event
	statuses []core.LifeCycle
}

type leafWidget = wtest.ModularWidget[leafState]

// leaf is a childless widget of a fixed size recording the events and
// status changes it receives.
func leaf(w, h float64) *leafWidget {
	return wtest.NewModularWidget(leafState{size: graphics.Size{Width: w, Height: h}}).
		WithEvent(func(s *leafState, ctx *core.EventCtx, ev core.Event) {
			s.events = append(s.events, ev)
			if s.cursor != core.CursorDefault {
				ctx.SetCursor(s.cursor)
			}
			if s.handled {
				ctx.SetHandled()
			}
		}).
		WithLifecycle(func(s *leafState, ctx *core.LifeCycleCtx, ev core.LifeCycle) {
			switch ev.(type) {
			case core.BuildFocusChain:
				if s.focus {
					ctx.RegisterForFocus()
				}
			case core.WidgetAdded:
				if s.text {
					ctx.RegisterTextInput()
				}
			case core.HotChanged, core.FocusChanged, core.DisabledChanged:
				s.statuses = append(s.statuses, ev)
			}
		}).
		WithLayout(func(s *leafState, _ *core.LayoutCtx, bc layout.BoxConstraints) graphics.Size {
			return bc.Constrain(s.size)
		})
}

func focusable(w, h float64) *leafWidget {
	l := leaf(w, h)
	l.State.focus = true
	return l
}

type columnWidget = wtest.ModularWidget[pods]

// column stacks its children top to bottom and skips stashed ones in layout
// and paint.
func column(children ...core.Widget) *columnWidget {
	var ps pods
	for _, c := range children {
		ps = append(ps, core.Boxed(c))
	}
	return wtest.NewModularWidget(ps).
		WithEvent(func(s *pods, ctx *core.EventCtx, ev core.Event) {
			for _, p := range *s {
				p.OnEvent(ctx, ev)
			}
		}).
		WithLifecycle(func(s *pods, ctx *core.LifeCycleCtx, ev core.LifeCycle) {
			for _, p := range *s {
				p.Lifecycle(ctx, ev)
			}
		}).
		WithLayout(func(s *pods, ctx *core.LayoutCtx, bc layout.BoxConstraints) graphics.Size {
			var size graphics.Size
			for _, p := range *s {
				if p.IsStashed() {
					continue
				}
				cs := ctx.RunLayout(p, bc.Loosen())
				ctx.PlaceChild(p, graphics.Offset{Y: size.Height})
				size.Height += cs.Height
				size.Width = max(size.Width, cs.Width)
			}
			return bc.Constrain(size)
		}).
		WithPaint(func(s *pods, ctx *core.PaintCtx, scene *graphics.Scene) {
			for _, p := range *s {
				if !p.IsStashed() {
					p.Paint(ctx, scene)
				}
			}
		}).
		WithAccess(func(s *pods, ctx *core.AccessCtx) {
			for _, p := range *s {
				p.Accessibility(ctx)
			}
		}).
		WithChildren(func(s *pods) []core.WidgetID {
			ids := make([]core.WidgetID, len(*s))
			for i, p := range *s {
				ids[i] = p.ID()
			}
			return ids
		})
}

// offset places its single child at *at with loosened constraints.
func offset(child core.Widget, at *graphics.Offset) *wtest.Parent {
	return wtest.NewParent(child).WithLayout(func(c **core.WidgetPod[core.Widget], ctx *core.LayoutCtx, bc layout.BoxConstraints) graphics.Size {
		ctx.RunLayout(*c, bc.Loosen())
		ctx.PlaceChild(*c, *at)
		return bc.Max
	})
}

// editColumn runs fn on the root column.
func editColumn(h *wtest.Harness, fn func(m *core.WidgetMut[*columnWidget])) {
	h.Edit(func(m *core.WidgetMut[core.Widget]) {
		core.Downcast(m, fn)
	})
}

// requireInvariant runs fn and returns the safety-rail failure it panics with.
func requireInvariant(t *testing.T, msg string, fn func()) *errors.InvariantError {
	t.Helper()
	if !core.DebugAssertions {
		t.Skip("safety rails disabled")
	}
	var got any
	func() {
		defer func() { got = recover() }()
		fn()
	}()
	require.NotNil(t, got, "expected a panic")
	err, ok := got.(*errors.InvariantError)
	require.True(t, ok, "expected *errors.InvariantError, got %T: %v", got, got)
	assert.Contains(t, err.Msg, msg)
	return err
}

func signalsOf[S core.Signal](signals []core.Signal) []S {
	var out []S
	for _, s := range signals {
		if v, ok := s.(S); ok {
			out = append(out, v)
		}
	}
	return out
}
