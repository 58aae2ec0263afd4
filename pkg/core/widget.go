package core

import (
	"reflect"

	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/layout"
)

// Widget is a node of the retained tree.
//
// A container owns its children as [WidgetPod] values and must forward every
// pass to each of them: OnEvent, Lifecycle and Accessibility to all
// children, Layout (RunLayout followed by PlaceChild) and Paint to every
// child that is not stashed.
type Widget interface {
	OnEvent(ctx *EventCtx, event Event)
	Lifecycle(ctx *LifeCycleCtx, event LifeCycle)
	Layout(ctx *LayoutCtx, bc layout.BoxConstraints) graphics.Size
	Paint(ctx *PaintCtx, scene *graphics.Scene)
	Accessibility(ctx *AccessCtx)
	// ChildrenIDs returns the ids of the owned pods in order.
	ChildrenIDs() []WidgetID
}

// Leaf provides no-op pass methods for widgets without children.
// Embed it and implement Layout and Paint.
type Leaf struct{}

func (Leaf) OnEvent(*EventCtx, Event)           {}
func (Leaf) Lifecycle(*LifeCycleCtx, LifeCycle) {}
func (Leaf) Accessibility(*AccessCtx)           {}
func (Leaf) ChildrenIDs() []WidgetID            { return nil }

// ShortTypeName returns the unqualified type name of w, without pointer or
// type arguments.
func ShortTypeName(w any) string {
	t := reflect.TypeOf(w)
	if t == nil {
		return "<nil>"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name := t.Name()
	for i := 0; i < len(name); i++ {
		if name[i] == '[' {
			return name[:i]
		}
	}
	return name
}
