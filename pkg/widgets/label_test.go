package widgets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/trellis/pkg/core"
	"github.com/go-drift/trellis/pkg/graphics"
	wtest "github.com/go-drift/trellis/pkg/testing"
)

func TestLabel_SizeAndBaseline(t *testing.T) {
	label := NewLabel("hello").WithFace(graphics.FontFaceInconsolata)
	h := wtest.NewHarness(t, label, wtest.WithContentSize())

	text := graphics.LayoutText("hello", graphics.TextStyle{Face: graphics.FontFaceInconsolata})
	st := h.Root().RootState()
	assert.Equal(t, text.Size, st.Size())
	assert.Equal(t, text.Descent, st.BaselineOffset())
	assert.Equal(t, 5*8.0, st.Size().Width)
}

func TestLabel_BaselineFromTopWhenStretched(t *testing.T) {
	h := wtest.NewHarness(t, NewLabel("x"), wtest.WithSize(graphics.Size{Width: 50, Height: 40}))

	text := graphics.LayoutText("x", graphics.TextStyle{})
	st := h.Root().RootState()
	assert.Equal(t, 40.0, st.Size().Height)
	assert.Equal(t, 40-text.Ascent, st.BaselineOffset())
}

func TestLabel_PaintsText(t *testing.T) {
	h := wtest.NewHarness(t, NewLabel("W").WithColor(graphics.ColorRed), wtest.WithContentSize())

	ops := h.Scene().Ops()
	var text *graphics.OpText
	for _, op := range ops {
		if o, ok := op.(graphics.OpText); ok {
			text = &o
		}
	}
	require.NotNil(t, text)
	assert.Equal(t, "W", text.Layout.Text)
	assert.Equal(t, graphics.ColorRed, text.Layout.Style.Color)

	img := h.Render()
	var inked bool
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i+3] != 0 {
			inked = true
			break
		}
	}
	assert.True(t, inked, "expected glyph pixels")
}

func TestLabel_EmptyTextPaintsNothing(t *testing.T) {
	h := wtest.NewHarness(t, NewLabel(""))
	for _, op := range h.Scene().Ops() {
		_, isText := op.(graphics.OpText)
		assert.False(t, isText)
	}
}

func TestLabelMut(t *testing.T) {
	label := NewLabel("a")
	h := wtest.NewHarness(t, label, wtest.WithContentSize())
	narrow := h.Root().Size().Width

	edit := func(fn func(LabelMut)) {
		h.Edit(func(m *core.WidgetMut[core.Widget]) {
			core.Downcast(m, func(lm *core.WidgetMut[*Label]) { fn(EditLabel(lm)) })
		})
	}

	edit(func(l LabelMut) { l.SetText("abcd") })
	assert.Equal(t, "abcd", label.Text())
	assert.Greater(t, h.Root().Size().Width, narrow)

	edit(func(l LabelMut) { l.SetColor(graphics.ColorBlue) })
	assert.Equal(t, graphics.ColorBlue, label.Style().Color)
	assert.True(t, h.Root().NeedsPaint())
	assert.False(t, h.Root().NeedsLayout())

	edit(func(l LabelMut) { l.SetFace(graphics.FontFaceInconsolataBold) })
	bold := graphics.LayoutText("abcd", graphics.TextStyle{Face: graphics.FontFaceInconsolataBold})
	assert.Equal(t, bold.Size, h.Root().Size())
}

func TestLabel_Accessibility(t *testing.T) {
	h := wtest.NewHarness(t, NewLabel("Name"))
	tree := h.Accessibility()
	node := tree.Node(tree.Root)
	require.NotNil(t, node)
	assert.Equal(t, core.RoleLabel, node.Role)
	assert.Equal(t, "Name", node.Label)
}
