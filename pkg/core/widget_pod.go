package core

import (
	"fmt"
	"slices"

	"github.com/go-drift/trellis/pkg/errors"
	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/layout"
)

// WidgetPod owns a widget and its [WidgetState].
//
// Containers hold their children as pods and enter every pass through the
// pod methods, never by calling the child widget directly. Pods must not be
// copied.
type WidgetPod[W Widget] struct {
	state WidgetState
	inner W
}

// NewWidgetPod wraps w with a fresh id.
func NewWidgetPod[W Widget](w W) *WidgetPod[W] {
	return NewWidgetPodWithID(w, NewWidgetID())
}

// NewWidgetPodWithID wraps w with a caller-chosen id.
func NewWidgetPodWithID[W Widget](w W, id WidgetID) *WidgetPod[W] {
	return &WidgetPod[W]{state: newWidgetState(id, ShortTypeName(w)), inner: w}
}

// Boxed wraps w in a pod of the interface type, for heterogeneous children.
func Boxed(w Widget) *WidgetPod[Widget] {
	return NewWidgetPod[Widget](w)
}

// ID returns the widget id.
func (p *WidgetPod[W]) ID() WidgetID { return p.state.id }

// State returns the widget state. It must be treated as read-only.
func (p *WidgetPod[W]) State() *WidgetState { return &p.state }

// Widget returns the wrapped widget for inspection. Use [GetMut] to modify it.
func (p *WidgetPod[W]) Widget() W { return p.inner }

// IsInitialized reports whether the widget received WidgetAdded.
func (p *WidgetPod[W]) IsInitialized() bool { return !p.state.isNew }

// LayoutRect returns the layout rect in the parent's coordinate space.
func (p *WidgetPod[W]) LayoutRect() graphics.Rect { return p.state.LayoutRect() }

// PaintRect returns the paint rect in the parent's coordinate space.
func (p *WidgetPod[W]) PaintRect() graphics.Rect { return p.state.PaintRect() }

// BaselineOffset returns the distance from the bottom edge to the baseline.
func (p *WidgetPod[W]) BaselineOffset() float64 { return p.state.baselineOffset }

// IsStashed reports whether the widget is stashed.
func (p *WidgetPod[W]) IsStashed() bool { return p.state.isStashed }

func (p *WidgetPod[W]) markVisited(method string) {
	if !DebugAssertions {
		return
	}
	remeasure := method == "layout" && p.state.isExpectingPlaceChildCall
	if p.state.visited && !remeasure {
		debugPanic(&p.state, method, "widget visited twice in the same pass")
	}
	p.state.visited = true
}

// methodStatusChange names calls delivering HotChanged and FocusChanged.
// Child pods ignore these, so containers need not forward them.
const methodStatusChange = "status change"

// callWidget runs one widget method and checks the container contract
// around it.
func (p *WidgetPod[W]) callWidget(g *globalState, method string, call func()) {
	before := p.inner.ChildrenIDs()
	if DebugAssertions {
		for _, id := range before {
			if st := g.arena.get(id); st != nil {
				st.visited = false
			}
		}
	}
	call()
	after := p.inner.ChildrenIDs()
	if DebugAssertions {
		p.checkChildList(g, method, before, after)
		if method != methodStatusChange {
			p.checkChildrenVisited(g, method, after)
		}
	}
	p.state.childIDs = slices.Clone(after)
}

func (p *WidgetPod[W]) checkChildList(g *globalState, method string, before, after []WidgetID) {
	if slices.Equal(before, after) {
		return
	}
	if !p.state.childrenChanged {
		debugPanic(&p.state, method, "child list changed without a call to ChildrenChanged")
	}
	for _, id := range before {
		if !slices.Contains(after, id) && g.arena.get(id) != nil {
			debugPanic(&p.state, method, "child %s dropped without a call to RemoveChild", id)
		}
	}
}

func (p *WidgetPod[W]) checkChildrenVisited(g *globalState, method string, children []WidgetID) {
	for _, id := range children {
		st := g.arena.get(id)
		if st == nil {
			if !p.state.childrenChanged {
				debugPanic(&p.state, method, "child %s never received WidgetAdded", id)
			}
			continue
		}
		if st.isStashed && (method == "layout" || method == "paint") {
			continue
		}
		if !st.visited {
			debugPanic(&p.state, method, "missing call to %s on child %s%s", method, st.debugName, id)
		}
		if method == "layout" && st.isExpectingPlaceChildCall {
			debugPanic(&p.state, method, "missing call to PlaceChild on child %s%s", st.debugName, id)
		}
	}
}

func (p *WidgetPod[W]) lifecycleCtx(g *globalState) *LifeCycleCtx {
	return &LifeCycleCtx{mutCtx: mutCtx{ctxBase: ctxBase{state: &p.state, global: g}}}
}

// updateHot recomputes the hot status from a window position, nil meaning
// the pointer left. It reports whether the status changed.
func (p *WidgetPod[W]) updateHot(g *globalState, pos *graphics.Offset) bool {
	hot := pos != nil && p.state.WindowLayoutRect().Contains(*pos)
	if hot == p.state.isHot {
		return false
	}
	p.state.isHot = hot
	ctx := p.lifecycleCtx(g)
	p.callWidget(g, methodStatusChange, func() { p.inner.Lifecycle(ctx, HotChanged{Hot: hot}) })
	return true
}

// OnEvent routes event to the widget if it concerns it.
func (p *WidgetPod[W]) OnEvent(parent *EventCtx, event Event) {
	g := parent.global
	if p.state.isNew {
		return
	}
	p.markVisited("event")
	if p.state.isStashed || parent.isHandled {
		return
	}
	p.state.hasCursor = false
	hadActive := p.state.isActive || p.state.hasActive

	var recurse bool
	switch ev := event.(type) {
	case PointerMove:
		changed := p.updateHot(g, &ev.Position)
		recurse = hadActive || changed || p.state.isHot
	case PointerDown:
		p.updateHot(g, &ev.Position)
		recurse = hadActive || p.state.isHot
	case PointerUp:
		p.updateHot(g, &ev.Position)
		recurse = hadActive || p.state.isHot
	case PointerLeave:
		changed := p.updateHot(g, nil)
		recurse = hadActive || changed
	case TextEvent:
		recurse = p.state.hasFocus
	}
	if p.state.IsDisabled() && !isHoverEvent(event) {
		recurse = false
	}

	if recurse {
		ctx := &EventCtx{mutCtx: mutCtx{ctxBase: ctxBase{state: &p.state, global: g}}}
		p.state.hasActive = false
		p.callWidget(g, "event", func() { p.inner.OnEvent(ctx, event) })
		if icon, ok := p.state.cursorChange.Icon(); ok && (p.state.cursorChange.IsOverride() || !p.state.hasCursor) {
			p.state.cursor, p.state.hasCursor = icon, true
		}
		parent.isHandled = parent.isHandled || ctx.isHandled
	}
	parent.state.MergeUp(&p.state)
}

// Lifecycle delivers event to the widget and, through it, to its children.
func (p *WidgetPod[W]) Lifecycle(parent *LifeCycleCtx, event LifeCycle) {
	g := parent.global
	p.markVisited("lifecycle")

	if p.state.isNew {
		switch event.(type) {
		case WidgetAdded, RouteWidgetAdded:
		default:
			debugPanic(&p.state, "lifecycle", "received %T before WidgetAdded", event)
			return
		}
		event = WidgetAdded{}
		p.state.isNew = false
		p.state.childrenChanged = false
		p.state.parentID = parent.state.id
		p.state.ancestorDisabled = parent.state.IsDisabled()
		p.state.isExplicitlyDisabled = p.state.isExplicitlyDisabledNew
		g.arena.register(&p.state)
	} else if _, ok := event.(WidgetAdded); ok {
		event = RouteWidgetAdded{}
	}

	if p.state.isStashed && !event.reachesStashed() {
		parent.state.MergeUp(&p.state)
		return
	}

	recurse := true
	var extra LifeCycle
	switch ev := event.(type) {
	case RouteWidgetAdded:
		recurse = p.state.childrenChanged
		if recurse {
			p.state.childrenChanged = false
			p.state.children.ClearAll()
		}
	case AnimFrame:
		recurse = p.state.requestAnim
		p.state.requestAnim = false
	case DisabledChanged, RouteDisabledChanged:
		ancestor := p.state.ancestorDisabled
		if dc, ok := ev.(DisabledChanged); ok {
			ancestor = dc.Disabled
		}
		was := p.state.IsDisabled()
		p.state.isExplicitlyDisabled = p.state.isExplicitlyDisabledNew
		p.state.ancestorDisabled = ancestor
		p.state.updateFocusChain = true
		switch {
		case was != p.state.IsDisabled():
			event = DisabledChanged{Disabled: p.state.IsDisabled()}
		case p.state.childrenDisabledChanged:
			event = RouteDisabledChanged{}
		default:
			recurse = false
		}
		p.state.childrenDisabledChanged = false
	case BuildFocusChain:
		recurse = p.state.updateFocusChain
		if recurse {
			p.state.focusChain = p.state.focusChain[:0]
		}
	case HotChanged, FocusChanged:
		recurse = false
	case RouteFocusChanged:
		switch p.state.id {
		case ev.Old:
			extra = FocusChanged{Focused: false}
		case ev.New:
			extra = FocusChanged{Focused: true}
		}
		p.state.hasFocus = ev.New == p.state.id
		recurse = (!ev.Old.IsZero() && p.state.MayContain(ev.Old)) ||
			(!ev.New.IsZero() && p.state.MayContain(ev.New))
	}

	ctx := p.lifecycleCtx(g)
	if recurse {
		p.callWidget(g, "lifecycle", func() { p.inner.Lifecycle(ctx, event) })
	}
	if extra != nil {
		p.callWidget(g, methodStatusChange, func() { p.inner.Lifecycle(ctx, extra) })
	}

	if _, ok := event.(BuildFocusChain); ok {
		p.state.updateFocusChain = false
		if !p.state.IsDisabled() {
			parent.state.focusChain = append(parent.state.focusChain, p.state.focusChain...)
		}
	}
	parent.state.MergeUp(&p.state)
}

func (p *WidgetPod[W]) layout(parent *LayoutCtx, bc layout.BoxConstraints) graphics.Size {
	g := parent.global
	if p.state.isStashed {
		debugPanic(&p.state, "layout", "RunLayout called on a stashed widget")
		return graphics.Size{}
	}
	if p.state.isNew {
		debugPanic(&p.state, "layout", "layout called before WidgetAdded")
		return graphics.Size{}
	}
	p.markVisited("layout")
	p.state.needsLayout = false
	p.state.needsPaint = true
	p.state.isExpectingPlaceChildCall = true
	bc.DebugCheck(p.state.debugName)

	ctx := &LayoutCtx{ctxBase: ctxBase{state: &p.state, global: g}}
	var size graphics.Size
	p.callWidget(g, "layout", func() { size = p.inner.Layout(ctx, bc) })

	if !size.IsFinite() {
		errors.Warn(&errors.TreeError{
			Op:     "core.WidgetPod.Layout",
			Kind:   errors.KindLayout,
			Widget: p.state.debugName,
			ID:     uint64(p.state.id),
			Err:    fmt.Errorf("widget returned a non-finite size %gx%g", size.Width, size.Height),
		})
	}
	p.state.size = size
	parent.state.MergeUp(&p.state)
	return size
}

// Paint records the widget into scene, translated to its origin.
func (p *WidgetPod[W]) Paint(parent *PaintCtx, scene *graphics.Scene) {
	if p.state.isStashed {
		debugPanic(&p.state, "paint", "Paint called on a stashed widget")
		return
	}
	if p.state.isNew {
		debugPanic(&p.state, "paint", "paint called before WidgetAdded")
		return
	}
	p.markVisited("paint")
	p.state.needsPaint = false

	ctx := &PaintCtx{ctxBase: ctxBase{state: &p.state, global: parent.global}, depth: parent.depth + 1}
	scene.Save()
	scene.Translate(p.state.origin)
	p.callWidget(parent.global, "paint", func() { p.inner.Paint(ctx, scene) })
	scene.Restore()
	parent.state.MergeUp(&p.state)
}

// Accessibility adds the widget's node to the tree being built.
func (p *WidgetPod[W]) Accessibility(parent *AccessCtx) {
	g := parent.global
	if p.state.isNew {
		return
	}
	p.markVisited("accessibility")
	if p.state.isStashed {
		return
	}
	node := &AccessNode{
		ID:       p.state.id,
		Role:     RoleGenericContainer,
		Bounds:   p.state.WindowLayoutRect(),
		Disabled: p.state.IsDisabled(),
		Focused:  g.focused == p.state.id,
	}
	ctx := &AccessCtx{ctxBase: ctxBase{state: &p.state, global: g}, node: node, tree: parent.tree}
	p.callWidget(g, "accessibility", func() { p.inner.Accessibility(ctx) })

	parent.tree.Nodes[node.ID] = node
	if parent.node != nil {
		parent.node.Children = append(parent.node.Children, node.ID)
	}
	parent.state.MergeUp(&p.state)
}
