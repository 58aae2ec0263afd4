package testbed

import (
	"time"

	"github.com/go-drift/trellis/pkg/core"
	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/layout"
)

// Animated requests animation frames until Frames of them were delivered.
type Animated struct {
	core.Leaf
	Frames  int
	Elapsed []time.Duration
}

func (a *Animated) Lifecycle(ctx *core.LifeCycleCtx, event core.LifeCycle) {
	switch ev := event.(type) {
	case core.WidgetAdded:
		ctx.RequestAnimFrame()
	case core.AnimFrame:
		a.Elapsed = append(a.Elapsed, ev.Interval)
		if len(a.Elapsed) < a.Frames {
			ctx.RequestAnimFrame()
		}
	}
}

func (a *Animated) Layout(_ *core.LayoutCtx, bc layout.BoxConstraints) graphics.Size {
	return bc.Min
}

func (a *Animated) Paint(*core.PaintCtx, *graphics.Scene) {}
