package widgets

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/trellis/pkg/config"
	"github.com/go-drift/trellis/pkg/core"
	"github.com/go-drift/trellis/pkg/errors"
	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/layout"
	wtest "github.com/go-drift/trellis/pkg/testing"
)

func box(w, h float64) *SizedBox { return EmptyBox().Width(w).Height(h) }

// loose lays child out with the window constraints loosened.
func loose(child core.Widget) *wtest.Parent {
	return wtest.NewParent(child).WithLayout(func(c **core.WidgetPod[core.Widget], ctx *core.LayoutCtx, bc layout.BoxConstraints) graphics.Size {
		size := ctx.RunLayout(*c, bc.Loosen())
		ctx.PlaceChild(*c, graphics.Offset{})
		return bc.Constrain(size)
	})
}

func podAt(t *testing.T, f *Flex, i int) *core.WidgetPod[core.Widget] {
	t.Helper()
	pod, _, ok := entryWidget(f.Child(i))
	require.True(t, ok, "entry %d is a spacer", i)
	return pod
}

func originsX(t *testing.T, f *Flex, idx ...int) []float64 {
	t.Helper()
	xs := make([]float64, 0, len(idx))
	for _, i := range idx {
		xs = append(xs, podAt(t, f, i).State().Origin().X)
	}
	return xs
}

func editRootFlex(h *wtest.Harness, fn func(FlexMut)) {
	h.Edit(func(m *core.WidgetMut[core.Widget]) {
		core.Downcast(m, func(fm *core.WidgetMut[*Flex]) { fn(EditFlex(fm)) })
	})
}

func warningsOf(h *wtest.Harness, kind errors.ErrorKind, op string) []*errors.TreeError {
	var out []*errors.TreeError
	for _, w := range h.Warnings() {
		if w.Kind == kind && w.Op == op {
			out = append(out, w)
		}
	}
	return out
}

func TestFlex_FixedChildrenShrinkWrap(t *testing.T) {
	row := Row().WithChild(box(10, 20)).WithChild(box(30, 10))
	h := wtest.NewHarness(t, loose(row))

	state := h.Find(wtest.ByType("Flex")).First()
	require.NotNil(t, state)
	assert.Equal(t, graphics.Size{Width: 40, Height: 20}, state.Size())
	assert.Equal(t, graphics.Offset{X: 0, Y: 0}, podAt(t, row, 0).State().Origin())
	assert.Equal(t, graphics.Offset{X: 10, Y: 5}, podAt(t, row, 1).State().Origin())
}

func TestFlex_FlexAllocation(t *testing.T) {
	row := Row().
		WithChild(box(100, 10)).
		WithFlexChild(EmptyBox(), FlexParams{Flex: 1}).
		WithFlexChild(EmptyBox(), FlexParams{Flex: 2})
	h := wtest.NewHarness(t, row)

	assert.Equal(t, 100.0, podAt(t, row, 1).State().Size().Width)
	assert.Equal(t, 200.0, podAt(t, row, 2).State().Size().Width)
	assert.Equal(t, []float64{0, 100, 200}, originsX(t, row, 0, 1, 2))
	assert.Equal(t, h.Root().Size(), h.Root().RootState().Size())
}

func TestFlex_FlexAllocationCarriesRemainder(t *testing.T) {
	row := Row().WithChild(box(300, 10))
	for range 3 {
		row.WithFlexChild(EmptyBox(), FlexParams{Flex: 1})
	}
	wtest.NewHarness(t, row)

	var widths []float64
	var sum float64
	for i := 1; i <= 3; i++ {
		w := podAt(t, row, i).State().Size().Width
		widths = append(widths, w)
		sum += w
	}
	assert.Equal(t, []float64{33, 34, 33}, widths)
	assert.Equal(t, 100.0, sum)
}

func TestFlex_FlexSpacers(t *testing.T) {
	row := Row().
		WithChild(box(100, 10)).
		WithFlexSpacer(1).
		WithChild(box(100, 10)).
		WithFlexSpacer(1)
	wtest.NewHarness(t, row)

	assert.Equal(t, 100.0, row.Child(1).(*FlexSpacer).size)
	assert.Equal(t, 100.0, row.Child(3).(*FlexSpacer).size)
	assert.Equal(t, []float64{0, 200}, originsX(t, row, 0, 2))
}

func TestFlex_MainAxisAlignment(t *testing.T) {
	tests := []struct {
		alignment MainAxisAlignment
		width     float64
		want      []float64
	}{
		{MainAxisAlignmentStart, 47, []float64{0, 10, 20}},
		{MainAxisAlignmentEnd, 47, []float64{17, 27, 37}},
		{MainAxisAlignmentCenter, 47, []float64{9, 19, 29}},
		{MainAxisAlignmentSpaceBetween, 400, []float64{0, 195, 390}},
		{MainAxisAlignmentSpaceEvenly, 50, []float64{5, 20, 35}},
		{MainAxisAlignmentSpaceAround, 60, []float64{5, 25, 45}},
	}
	for _, tt := range tests {
		t.Run(tt.alignment.String(), func(t *testing.T) {
			row := Row().
				MustFillMainAxis(true).
				WithMainAxisAlignment(tt.alignment).
				WithChild(box(10, 10)).
				WithChild(box(10, 10)).
				WithChild(box(10, 10))
			h := wtest.NewHarness(t, loose(row), wtest.WithSize(graphics.Size{Width: tt.width, Height: 20}))

			assert.Equal(t, tt.want, originsX(t, row, 0, 1, 2))
			assert.Equal(t, tt.width, h.Find(wtest.ByType("Flex")).First().Size().Width)
		})
	}
}

func TestFlex_ShrinkWrapIgnoresMainAxisAlignment(t *testing.T) {
	row := Row().
		WithMainAxisAlignment(MainAxisAlignmentEnd).
		WithChild(box(10, 10)).
		WithChild(box(10, 10))
	h := wtest.NewHarness(t, loose(row))

	assert.Equal(t, []float64{0, 10}, originsX(t, row, 0, 1))
	assert.Equal(t, 20.0, h.Find(wtest.ByType("Flex")).First().Size().Width)
}

func TestFlex_CrossAxisAlignment(t *testing.T) {
	tests := []struct {
		alignment CrossAxisAlignment
		wantY     float64
		wantH     float64
	}{
		{CrossAxisAlignmentStart, 0, 10},
		{CrossAxisAlignmentCenter, 10, 10},
		{CrossAxisAlignmentEnd, 20, 10},
		{CrossAxisAlignmentFill, 0, 30},
	}
	for _, tt := range tests {
		t.Run(tt.alignment.String(), func(t *testing.T) {
			row := Row().
				WithCrossAxisAlignment(tt.alignment).
				WithChild(box(10, 10)).
				WithChild(box(10, 30))
			wtest.NewHarness(t, loose(row))

			small := podAt(t, row, 0).State()
			assert.Equal(t, tt.wantY, small.Origin().Y)
			assert.Equal(t, tt.wantH, small.Size().Height)
		})
	}
}

func TestFlex_ChildAlignmentOverride(t *testing.T) {
	row := Row().
		WithCrossAxisAlignment(CrossAxisAlignmentStart).
		WithAlignedChild(box(10, 10), CrossAxisAlignmentEnd).
		WithChild(box(10, 30))
	wtest.NewHarness(t, loose(row))

	assert.Equal(t, 20.0, podAt(t, row, 0).State().Origin().Y)
	assert.Equal(t, 0.0, podAt(t, row, 1).State().Origin().Y)
}

func TestFlex_FillLaysOutTwice(t *testing.T) {
	rec, recording := wtest.NewRecorder(box(10, 10))
	row := Row().
		WithCrossAxisAlignment(CrossAxisAlignmentFill).
		WithChild(rec).
		WithChild(box(10, 30))
	wtest.NewHarness(t, loose(row))

	assert.Equal(t, 2, recording.Count(wtest.RecordLayout))
	layouts := recording.Records()
	var last wtest.Record
	for _, r := range layouts {
		if r.Kind == wtest.RecordLayout {
			last = r
		}
	}
	assert.True(t, last.Constraints.IsTight())
	assert.Equal(t, graphics.Size{Width: 10, Height: 30}, last.Size)
}

func TestFlex_BaselineAlignment(t *testing.T) {
	basic := graphics.LayoutText("bar", graphics.TextStyle{Face: graphics.FontFaceBasic})
	mono := graphics.LayoutText("bar", graphics.TextStyle{Face: graphics.FontFaceInconsolata})
	tallest := graphics.FontFaceBasic
	if mono.Ascent > basic.Ascent {
		tallest = graphics.FontFaceInconsolata
	}

	row := Row().
		WithCrossAxisAlignment(CrossAxisAlignmentBaseline).
		WithChild(NewLabel("hello")).
		WithFlexChild(NewLabel("world").WithFace(graphics.FontFaceInconsolata), FlexParams{Flex: 1}).
		WithChild(NewLabel("foo")).
		WithFlexChild(NewLabel("bar").WithFace(tallest), FlexParams{Flex: 2, Alignment: CrossAxisAlignmentStart})
	h := wtest.NewHarness(t, loose(row))

	var baselines []float64
	for i := range row.Len() {
		s := podAt(t, row, i).State()
		baselines = append(baselines, s.Origin().Y+s.Size().Height-s.BaselineOffset())
	}
	for _, b := range baselines[1:] {
		assert.Equal(t, baselines[0], b, "baselines %v", baselines)
	}

	flex := h.Find(wtest.ByType("Flex")).First()
	assert.Equal(t, math.Max(basic.Descent, mono.Descent), flex.BaselineOffset())
	assert.Equal(t, 400.0, flex.Size().Width)
}

func TestFlex_ColumnBaselineFollowsLastChild(t *testing.T) {
	col := Column().
		WithChild(box(20, 10)).
		WithChild(NewLabel("x"))
	h := wtest.NewHarness(t, loose(col))

	text := graphics.LayoutText("x", graphics.TextStyle{})
	flex := h.Find(wtest.ByType("Flex")).First()
	assert.Equal(t, 10+text.Size.Height, flex.Size().Height)
	assert.Equal(t, text.Descent, flex.BaselineOffset())
}

func TestFlex_DefaultSpacerUsesThemePadding(t *testing.T) {
	row := Row().WithChild(box(10, 10)).WithDefaultSpacer().WithChild(box(10, 10))
	wtest.NewHarness(t, loose(row))
	assert.Equal(t, 10+config.DefaultWidgetPaddingHorizontal, podAt(t, row, 2).State().Origin().X)

	padding := 3.0
	cfg := config.Default()
	cfg.Theme.WidgetPaddingVertical = &padding
	col := Column().WithChild(box(10, 10)).WithDefaultSpacer().WithChild(box(10, 10))
	wtest.NewHarness(t, loose(col), wtest.WithConfig(cfg))
	assert.Equal(t, 13.0, podAt(t, col, 2).State().Origin().Y)
}

func TestFlex_NegativeSpacerIsClamped(t *testing.T) {
	row := Row().WithChild(box(10, 10)).WithSpacer(-5).WithChild(box(10, 10))
	h := wtest.NewHarness(t, loose(row))

	assert.Equal(t, 10.0, podAt(t, row, 2).State().Origin().X)
	assert.NotEmpty(t, warningsOf(h, errors.KindConfig, "widgets.Flex.Layout"))
}

func TestFlex_NonPositiveFlexBecomesFixed(t *testing.T) {
	var warned []*errors.TreeError
	errors.SetHandler(recordingHandler(func(err *errors.TreeError) { warned = append(warned, err) }))
	t.Cleanup(func() { errors.SetHandler(nil) })

	row := Row().WithFlexChild(box(10, 10), FlexParams{Flex: 0, Alignment: CrossAxisAlignmentEnd})
	fixed, ok := row.Child(0).(*FixedChild)
	require.True(t, ok)
	assert.Equal(t, CrossAxisAlignmentEnd, fixed.Alignment)
	require.Len(t, warned, 1)
	assert.Equal(t, errors.KindConfig, warned[0].Kind)

	row.WithFlexSpacer(-1)
	assert.Equal(t, 0.0, row.Child(1).(*FlexSpacer).Flex)
	assert.Len(t, warned, 2)
}

type recordingHandler func(*errors.TreeError)

func (h recordingHandler) HandleWarning(err *errors.TreeError) { h(err) }
func (recordingHandler) HandlePanic(*errors.PanicError) {}

func TestFlex_UnboundedMainAxisWarnsOnce(t *testing.T) {
	row := Row().
		WithChild(box(10, 10)).
		WithFlexChild(EmptyBox(), FlexParams{Flex: 1})
	h := wtest.NewHarness(t, row, wtest.WithContentSize())

	assert.Len(t, warningsOf(h, errors.KindLayout, "widgets.Flex.Layout"), 1)
	assert.Equal(t, 0.0, podAt(t, row, 1).State().Size().Width)
	assert.Equal(t, graphics.Size{Width: 10, Height: 10}, h.Root().Size())

	editRootFlex(h, func(f FlexMut) { f.SetMainAxisAlignment(MainAxisAlignmentCenter) })
	assert.False(t, h.Root().NeedsLayout())
	assert.Len(t, warningsOf(h, errors.KindLayout, "widgets.Flex.Layout"), 1)
}

func TestFlex_PaintInsetsCoverOverflow(t *testing.T) {
	row := Row().WithChild(box(500, 10))
	h := wtest.NewHarness(t, row)

	st := h.Root().RootState()
	assert.Equal(t, 400.0, st.Size().Width)
	assert.Equal(t, graphics.Insets{Right: 100}, st.PaintInsets())
}

func TestFlex_Accessibility(t *testing.T) {
	col := Column().WithChild(NewLabel("a")).WithSpacer(4).WithChild(NewLabel("b"))
	h := wtest.NewHarness(t, col)

	tree := h.Accessibility()
	root := tree.Node(tree.Root)
	require.NotNil(t, root)
	assert.Equal(t, core.RoleColumn, root.Role)
	require.Len(t, root.Children, 2)
	assert.Equal(t, "a", tree.Node(root.Children[0]).Label)
	assert.Equal(t, "b", tree.Node(root.Children[1]).Label)
}

func TestFlex_ChildrenIDsSkipSpacers(t *testing.T) {
	row := Row().WithChild(box(1, 1)).WithSpacer(3).WithFlexSpacer(1).WithFlexChild(box(1, 1), FlexParams{Flex: 1})
	ids := row.ChildrenIDs()
	assert.Equal(t, []core.WidgetID{podAt(t, row, 0).ID(), podAt(t, row, 3).ID()}, ids)
}

// build returns the row both round-trip tests must end up with.
func build() *Flex {
	return Row().
		WithChild(box(20, 20).Background(graphics.ColorRed)).
		WithSpacer(10).
		WithFlexChild(EmptyBox().Height(20).Background(graphics.ColorGreen), FlexParams{Flex: 1}).
		WithChild(box(30, 10).Background(graphics.ColorBlue))
}

func TestFlexMut_RoundTripMatchesDirectBuild(t *testing.T) {
	size := wtest.WithSize(graphics.Size{Width: 120, Height: 40})
	direct := wtest.NewHarness(t, build(), size)

	row := Row().
		WithChild(box(50, 50).Background(graphics.ColorWhite)).
		WithChild(box(30, 10).Background(graphics.ColorBlue))
	edited := wtest.NewHarness(t, row, size)
	editRootFlex(edited, func(f FlexMut) {
		f.RemoveChild(0)
		f.InsertChild(0, box(20, 20).Background(graphics.ColorRed))
		f.InsertDefaultSpacer(1)
		f.InsertFlexChild(2, EmptyBox().Height(20).Background(graphics.ColorGreen), FlexParams{Flex: 3})
	})
	editRootFlex(edited, func(f FlexMut) {
		f.UpdateSpacerFixed(1, 10)
		f.UpdateChildFlexParams(2, FlexParams{Flex: 1})
	})

	assert.Equal(t, direct.Root().WidgetCount(), edited.Root().WidgetCount())
	assert.True(t, bytes.Equal(direct.Render().Pix, edited.Render().Pix), "rendered rows differ")
}

func TestFlexMut_AppendMatchesDirectBuild(t *testing.T) {
	direct := wtest.NewHarness(t, build())

	edited := wtest.NewHarness(t, Row())
	editRootFlex(edited, func(f FlexMut) {
		f.AddChild(box(20, 20).Background(graphics.ColorRed))
		f.AddFlexSpacer(1)
		f.AddFlexChild(EmptyBox().Height(20).Background(graphics.ColorGreen), FlexParams{Flex: 1})
		f.AddChild(box(30, 10).Background(graphics.ColorBlue))
		f.UpdateSpacerFixed(1, 10)
	})

	assert.True(t, bytes.Equal(direct.Render().Pix, edited.Render().Pix), "rendered rows differ")
}

func TestFlexMut_Clear(t *testing.T) {
	h := wtest.NewHarness(t, Row().WithChild(box(10, 10)).WithSpacer(5).WithChild(box(10, 10)))
	require.Equal(t, 3, h.Root().WidgetCount())

	editRootFlex(h, func(f FlexMut) {
		f.Clear()
		assert.Equal(t, 0, f.Len())
	})
	assert.Equal(t, 1, h.Root().WidgetCount())
	assert.Empty(t, h.Root().RootState().ChildIDs())
}

func TestFlexMut_ChildMutRelayouts(t *testing.T) {
	label := NewLabel("a")
	row := Row().WithSpacer(2).WithChild(label)
	h := wtest.NewHarness(t, loose(row))
	before := podAt(t, row, 1).State().Size().Width

	h.Edit(func(m *core.WidgetMut[core.Widget]) {
		core.Downcast(m, func(pm *core.WidgetMut[*wtest.Parent]) {
			core.GetMut(pm.Ctx(), pm.Widget().State, func(cm *core.WidgetMut[core.Widget]) {
				core.Downcast(cm, func(fm *core.WidgetMut[*Flex]) {
					f := EditFlex(fm)
					assert.False(t, f.ChildMut(0, func(*core.WidgetMut[core.Widget]) { t.Error("spacer handed out") }))
					assert.True(t, f.ChildMut(1, func(lm *core.WidgetMut[core.Widget]) {
						core.Downcast(lm, func(l *core.WidgetMut[*Label]) { EditLabel(l).SetText("abc") })
					}))
				})
			})
		})
	})

	assert.Equal(t, "abc", label.Text())
	assert.Greater(t, podAt(t, row, 1).State().Size().Width, before)
	assert.False(t, h.Root().NeedsLayout())
}

func TestFlexMut_SpacerUpdatesPanicOnWidgets(t *testing.T) {
	h := wtest.NewHarness(t, Row().WithChild(box(10, 10)).WithSpacer(1))
	editRootFlex(h, func(f FlexMut) {
		assert.Panics(t, func() { f.UpdateSpacerFlex(0, 1) })
		assert.Panics(t, func() { f.UpdateChildFlexParams(1, FlexParams{Flex: 1}) })
		assert.Panics(t, func() { f.InsertSpacer(5, 1) })
	})
}

func TestFlexMut_SetDirection(t *testing.T) {
	row := Row().WithChild(box(10, 10)).WithChild(box(10, 10))
	h := wtest.NewHarness(t, loose(row))

	h.Edit(func(m *core.WidgetMut[core.Widget]) {
		core.Downcast(m, func(pm *core.WidgetMut[*wtest.Parent]) {
			core.GetMut(pm.Ctx(), pm.Widget().State, func(cm *core.WidgetMut[core.Widget]) {
				core.Downcast(cm, func(fm *core.WidgetMut[*Flex]) {
					EditFlex(fm).SetDirection(layout.AxisVertical)
				})
			})
		})
	})

	assert.Equal(t, graphics.Offset{X: 0, Y: 10}, podAt(t, row, 1).State().Origin())
	assert.Equal(t, graphics.Size{Width: 10, Height: 20}, h.Find(wtest.ByType("Flex")).First().Size())
}

func fillColors(scene *graphics.Scene) []graphics.Color {
	var colors []graphics.Color
	for _, op := range scene.Ops() {
		if fill, ok := op.(graphics.OpFillRect); ok {
			colors = append(colors, fill.Color)
		}
	}
	return colors
}

func TestFlex_StashedChildSkipped(t *testing.T) {
	row := Row().
		WithChild(box(10, 10).Background(graphics.ColorRed)).
		WithChild(box(20, 10).Background(graphics.ColorBlue))
	h := wtest.NewHarness(t, row, wtest.WithContentSize())
	require.Equal(t, 30.0, h.Root().Size().Width)

	editRootFlex(h, func(f FlexMut) { f.m.Ctx().SetStashed(podAt(t, row, 0), true) })
	assert.Empty(t, h.Panics())
	assert.Equal(t, 20.0, h.Root().Size().Width)
	assert.Equal(t, 0.0, podAt(t, row, 1).State().Origin().X)
	assert.Equal(t, []graphics.Color{graphics.ColorBlue}, fillColors(h.Scene()))

	editRootFlex(h, func(f FlexMut) { f.m.Ctx().SetStashed(podAt(t, row, 0), false) })
	assert.Equal(t, 30.0, h.Root().Size().Width)
	assert.Equal(t, 10.0, podAt(t, row, 1).State().Origin().X)
	assert.Equal(t, []graphics.Color{graphics.ColorRed, graphics.ColorBlue}, fillColors(h.Scene()))
}

func TestFlexMut_UpdateChildFlexParamsWarns(t *testing.T) {
	row := Row().WithFlexChild(box(10, 10), FlexParams{Flex: 1})
	h := wtest.NewHarness(t, row)
	op := "widgets.FlexMut.UpdateChildFlexParams"

	editRootFlex(h, func(f FlexMut) {
		f.UpdateChildFlexParams(0, FlexParams{Flex: -2, Alignment: CrossAxisAlignmentEnd})
	})
	fixed, ok := row.Child(0).(*FixedChild)
	require.True(t, ok)
	assert.Equal(t, CrossAxisAlignmentEnd, fixed.Alignment)
	assert.Len(t, warningsOf(h, errors.KindConfig, op), 1)

	editRootFlex(h, func(f FlexMut) { f.UpdateChildFlexParams(0, FlexParams{Flex: 3}) })
	flex, ok := row.Child(0).(*FlexChild)
	require.True(t, ok)
	assert.Equal(t, 3.0, flex.Flex)
	assert.Len(t, warningsOf(h, errors.KindConfig, op), 1)
}
