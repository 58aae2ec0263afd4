package testbed

import (
	"github.com/go-drift/trellis/pkg/core"
	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/layout"
)

// LayoutBox is a fixed-size colored box for layout testing.
type LayoutBox struct {
	core.Leaf
	Width  float64
	Height float64
	Color  graphics.Color
}

func (b *LayoutBox) Layout(_ *core.LayoutCtx, bc layout.BoxConstraints) graphics.Size {
	return bc.Constrain(graphics.Size{Width: b.Width, Height: b.Height})
}

func (b *LayoutBox) Paint(ctx *core.PaintCtx, scene *graphics.Scene) {
	if b.Color != 0 {
		scene.FillRect(ctx.Size().ToRect(), b.Color)
	}
}
