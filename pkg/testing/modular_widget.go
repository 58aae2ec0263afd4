package testing

import (
	"github.com/go-drift/trellis/pkg/core"
	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/layout"
)

// ModularWidget is a widget assembled from closures over a state value of
// type S. Unset closures do nothing; the default layout picks the smallest
// allowed size.
type ModularWidget[S any] struct {
	State S

	onEvent   func(s *S, ctx *core.EventCtx, event core.Event)
	lifecycle func(s *S, ctx *core.LifeCycleCtx, event core.LifeCycle)
	layout    func(s *S, ctx *core.LayoutCtx, bc layout.BoxConstraints) graphics.Size
	paint     func(s *S, ctx *core.PaintCtx, scene *graphics.Scene)
	access    func(s *S, ctx *core.AccessCtx)
	children  func(s *S) []core.WidgetID
}

// NewModularWidget returns a widget holding state.
func NewModularWidget[S any](state S) *ModularWidget[S] {
	return &ModularWidget[S]{State: state}
}

// WithEvent sets the OnEvent behavior.
func (w *ModularWidget[S]) WithEvent(fn func(s *S, ctx *core.EventCtx, event core.Event)) *ModularWidget[S] {
	w.onEvent = fn
	return w
}

// WithLifecycle sets the Lifecycle behavior.
func (w *ModularWidget[S]) WithLifecycle(fn func(s *S, ctx *core.LifeCycleCtx, event core.LifeCycle)) *ModularWidget[S] {
	w.lifecycle = fn
	return w
}

// WithLayout sets the Layout behavior.
func (w *ModularWidget[S]) WithLayout(fn func(s *S, ctx *core.LayoutCtx, bc layout.BoxConstraints) graphics.Size) *ModularWidget[S] {
	w.layout = fn
	return w
}

// WithPaint sets the Paint behavior.
func (w *ModularWidget[S]) WithPaint(fn func(s *S, ctx *core.PaintCtx, scene *graphics.Scene)) *ModularWidget[S] {
	w.paint = fn
	return w
}

// WithAccess sets the Accessibility behavior.
func (w *ModularWidget[S]) WithAccess(fn func(s *S, ctx *core.AccessCtx)) *ModularWidget[S] {
	w.access = fn
	return w
}

// WithChildren sets how the owned pods are reported.
func (w *ModularWidget[S]) WithChildren(fn func(s *S) []core.WidgetID) *ModularWidget[S] {
	w.children = fn
	return w
}

func (w *ModularWidget[S]) OnEvent(ctx *core.EventCtx, event core.Event) {
	if w.onEvent != nil {
		w.onEvent(&w.State, ctx, event)
	}
}

func (w *ModularWidget[S]) Lifecycle(ctx *core.LifeCycleCtx, event core.LifeCycle) {
	if w.lifecycle != nil {
		w.lifecycle(&w.State, ctx, event)
	}
}

func (w *ModularWidget[S]) Layout(ctx *core.LayoutCtx, bc layout.BoxConstraints) graphics.Size {
	if w.layout != nil {
		return w.layout(&w.State, ctx, bc)
	}
	return bc.Min
}

func (w *ModularWidget[S]) Paint(ctx *core.PaintCtx, scene *graphics.Scene) {
	if w.paint != nil {
		w.paint(&w.State, ctx, scene)
	}
}

func (w *ModularWidget[S]) Accessibility(ctx *core.AccessCtx) {
	if w.access != nil {
		w.access(&w.State, ctx)
	}
}

func (w *ModularWidget[S]) ChildrenIDs() []core.WidgetID {
	if w.children != nil {
		return w.children(&w.State)
	}
	return nil
}

// Parent is a ModularWidget owning one child pod and forwarding every pass
// to it. The child is laid out with the parent's constraints at the origin.
type Parent = ModularWidget[*core.WidgetPod[core.Widget]]

// NewParent wraps child in a well-behaved single-child container. Replace
// one of its closures to break a specific part of the container contract.
func NewParent(child core.Widget) *Parent {
	return NewModularWidget(core.Boxed(child)).
		WithEvent(func(c **core.WidgetPod[core.Widget], ctx *core.EventCtx, event core.Event) {
			(*c).OnEvent(ctx, event)
		}).
		WithLifecycle(func(c **core.WidgetPod[core.Widget], ctx *core.LifeCycleCtx, event core.LifeCycle) {
			(*c).Lifecycle(ctx, event)
		}).
		WithLayout(func(c **core.WidgetPod[core.Widget], ctx *core.LayoutCtx, bc layout.BoxConstraints) graphics.Size {
			size := ctx.RunLayout(*c, bc)
			ctx.PlaceChild(*c, graphics.Offset{})
			return size
		}).
		WithPaint(func(c **core.WidgetPod[core.Widget], ctx *core.PaintCtx, scene *graphics.Scene) {
			(*c).Paint(ctx, scene)
		}).
		WithAccess(func(c **core.WidgetPod[core.Widget], ctx *core.AccessCtx) {
			(*c).Accessibility(ctx)
		}).
		WithChildren(func(c **core.WidgetPod[core.Widget]) []core.WidgetID {
			return []core.WidgetID{(*c).ID()}
		})
}
