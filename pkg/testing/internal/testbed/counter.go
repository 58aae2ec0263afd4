package testbed

import (
	"github.com/go-drift/trellis/pkg/core"
	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/layout"
)

// Counter counts primary clicks and grabs focus when clicked.
type Counter struct {
	Size   graphics.Size
	Clicks int
	Keys   []string
}

func (c *Counter) OnEvent(ctx *core.EventCtx, event core.Event) {
	switch ev := event.(type) {
	case core.PointerDown:
		ctx.SetActive(true)
		ctx.SetCursor(core.CursorPointer)
	case core.PointerUp:
		if ctx.IsActive() && ctx.IsHot() {
			c.Clicks++
			ctx.RequestFocus()
			ctx.RequestPaint()
			ctx.SetHandled()
		}
		ctx.SetActive(false)
	case core.TextEvent:
		c.Keys = append(c.Keys, ev.Key+ev.Text)
		ctx.SetHandled()
	}
}

func (c *Counter) Lifecycle(ctx *core.LifeCycleCtx, event core.LifeCycle) {
	if _, ok := event.(core.BuildFocusChain); ok {
		ctx.RegisterForFocus()
	}
}

func (c *Counter) Layout(_ *core.LayoutCtx, bc layout.BoxConstraints) graphics.Size {
	return bc.Constrain(c.Size)
}

func (c *Counter) Paint(*core.PaintCtx, *graphics.Scene) {}

func (c *Counter) Accessibility(ctx *core.AccessCtx) {
	ctx.SetRole(core.RoleButton)
}

func (c *Counter) ChildrenIDs() []core.WidgetID { return nil }
