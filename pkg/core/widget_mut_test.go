package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/trellis/pkg/core"
	wtest "github.com/go-drift/trellis/pkg/testing"
)

func TestGetMut_MergesIntoParent(t *testing.T) {
	w := wtest.NewParent(leaf(10, 10))
	h := wtest.NewHarness(t, w)
	require.False(t, h.Root().NeedsLayout())

	h.Root().Edit(func(m *core.WidgetMut[core.Widget]) {
		core.Downcast(m, func(pm *core.WidgetMut[*wtest.Parent]) {
			core.GetMut(pm.Ctx(), pm.Widget().State, func(cm *core.WidgetMut[core.Widget]) {
				cm.Ctx().RequestLayout()
			})
			assert.True(t, pm.State().NeedsLayout(), "child flags must reach the parent when the callback returns")
		})
	})
	assert.True(t, h.Root().NeedsLayout())
}

func TestGetMut_MergesOnPanic(t *testing.T) {
	w := wtest.NewParent(leaf(10, 10))
	h := wtest.NewHarness(t, w)

	assert.PanicsWithValue(t, "boom", func() {
		h.Root().Edit(func(m *core.WidgetMut[core.Widget]) {
			core.Downcast(m, func(pm *core.WidgetMut[*wtest.Parent]) {
				core.GetMut(pm.Ctx(), pm.Widget().State, func(cm *core.WidgetMut[core.Widget]) {
					cm.Ctx().RequestLayout()
					panic("boom")
				})
			})
		})
	})
	assert.True(t, w.State.State().NeedsLayout())
	assert.True(t, h.Root().RootState().NeedsLayout())
}

func TestDowncast(t *testing.T) {
	h := wtest.NewHarness(t, wtest.NewParent(leaf(10, 10)))

	h.Edit(func(m *core.WidgetMut[core.Widget]) {
		called := false
		ok := core.TryDowncast(m, func(*core.WidgetMut[*wtest.Recorder]) { called = true })
		assert.False(t, ok)
		assert.False(t, called)

		assert.PanicsWithValue(t,
			"core.Downcast: widget ModularWidget"+m.ID().String()+" is ModularWidget, not Recorder",
			func() { core.Downcast(m, func(*core.WidgetMut[*wtest.Recorder]) {}) })

		ok = core.TryDowncast(m, func(pm *core.WidgetMut[*wtest.Parent]) {
			assert.Equal(t, m.ID(), pm.ID())
		})
		assert.True(t, ok)
	})
}

func TestReborrow_SameWidget(t *testing.T) {
	l := leaf(10, 10)
	h := wtest.NewHarness(t, l, wtest.WithContentSize())

	h.Edit(func(m *core.WidgetMut[core.Widget]) {
		m.Reborrow(func(inner *core.WidgetMut[core.Widget]) {
			core.Downcast(inner, func(lm *core.WidgetMut[*leafWidget]) {
				lm.Widget().State.size.Width = 25
				lm.Ctx().RequestLayout()
			})
		})
		m.Ctx().RequestPaint()
	})
	assert.Equal(t, 25.0, h.Root().Size().Width)
}
