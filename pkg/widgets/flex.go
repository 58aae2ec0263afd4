package widgets

import (
	"fmt"
	"math"

	"github.com/go-drift/trellis/pkg/core"
	"github.com/go-drift/trellis/pkg/errors"
	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/layout"
)

// MainAxisAlignment controls how free space is distributed along the main
// axis (horizontal for a row, vertical for a column).
type MainAxisAlignment int

const (
	// MainAxisAlignmentStart packs children at the start and leaves the free
	// space after the last child.
	MainAxisAlignmentStart MainAxisAlignment = iota
	// MainAxisAlignmentCenter splits the free space between both ends.
	MainAxisAlignmentCenter
	// MainAxisAlignmentEnd leaves the free space before the first child.
	MainAxisAlignmentEnd
	// MainAxisAlignmentSpaceBetween distributes free space between children,
	// with none before the first or after the last child.
	MainAxisAlignmentSpaceBetween
	// MainAxisAlignmentSpaceEvenly distributes free space evenly, including
	// before the first and after the last child.
	MainAxisAlignmentSpaceEvenly
	// MainAxisAlignmentSpaceAround distributes free space evenly, with
	// half-sized spaces at the start and end.
	MainAxisAlignmentSpaceAround
)

// String returns a human-readable representation of the main axis alignment.
func (a MainAxisAlignment) String() string {
	switch a {
	case MainAxisAlignmentStart:
		return "start"
	case MainAxisAlignmentCenter:
		return "center"
	case MainAxisAlignmentEnd:
		return "end"
	case MainAxisAlignmentSpaceBetween:
		return "space_between"
	case MainAxisAlignmentSpaceEvenly:
		return "space_evenly"
	case MainAxisAlignmentSpaceAround:
		return "space_around"
	default:
		return fmt.Sprintf("MainAxisAlignment(%d)", int(a))
	}
}

// CrossAxisAlignment controls how children are positioned along the cross
// axis (vertical for a row, horizontal for a column).
type CrossAxisAlignment int

const (
	// CrossAxisAlignmentDefault defers to the container's alignment. As a
	// container alignment it means center.
	CrossAxisAlignmentDefault CrossAxisAlignment = iota
	// CrossAxisAlignmentStart places children at the start of the cross axis.
	CrossAxisAlignmentStart
	// CrossAxisAlignmentCenter centers children along the cross axis.
	CrossAxisAlignmentCenter
	// CrossAxisAlignmentEnd places children at the end of the cross axis.
	CrossAxisAlignmentEnd
	// CrossAxisAlignmentBaseline aligns the baselines of a row's children.
	// In a column it behaves like center.
	CrossAxisAlignmentBaseline
	// CrossAxisAlignmentFill lays children out again at the full cross
	// extent of the container.
	CrossAxisAlignmentFill
)

// String returns a human-readable representation of the cross axis alignment.
func (a CrossAxisAlignment) String() string {
	switch a {
	case CrossAxisAlignmentDefault:
		return "default"
	case CrossAxisAlignmentStart:
		return "start"
	case CrossAxisAlignmentCenter:
		return "center"
	case CrossAxisAlignmentEnd:
		return "end"
	case CrossAxisAlignmentBaseline:
		return "baseline"
	case CrossAxisAlignmentFill:
		return "fill"
	default:
		return fmt.Sprintf("CrossAxisAlignment(%d)", int(a))
	}
}

// align returns the offset of a child given the free cross-axis space.
func (a CrossAxisAlignment) align(free float64) float64 {
	switch a {
	case CrossAxisAlignmentStart, CrossAxisAlignmentFill:
		return 0
	case CrossAxisAlignmentEnd:
		return free
	default:
		return math.Round(free / 2)
	}
}

func (a CrossAxisAlignment) or(fallback CrossAxisAlignment) CrossAxisAlignment {
	if a == CrossAxisAlignmentDefault {
		return fallback
	}
	return a
}

// FlexParams configure a flex child: its share of the free main-axis space
// and an optional cross-axis alignment override.
type FlexParams struct {
	Flex      float64
	Alignment CrossAxisAlignment
}

// Child is one entry of a [Flex]: a [*FixedChild], [*FlexChild],
// [*FixedSpacer] or [*FlexSpacer].
type Child interface {
	isFlexEntry()
}

// FixedChild is a widget laid out at its own main-axis size.
type FixedChild struct {
	Widget    *core.WidgetPod[core.Widget]
	Alignment CrossAxisAlignment
}

// FlexChild is a widget sized to its share of the free main-axis space.
type FlexChild struct {
	Widget    *core.WidgetPod[core.Widget]
	Alignment CrossAxisAlignment
	Flex      float64
}

// FixedSpacer is empty space of a fixed length. A Default spacer takes its
// length from the theme padding of the container's axis.
type FixedSpacer struct {
	Len     float64
	Default bool
	size    float64
}

// FlexSpacer is empty space sized like a flex child.
type FlexSpacer struct {
	Flex float64
	size float64
}

func (*FixedChild) isFlexEntry()  {}
func (*FlexChild) isFlexEntry()   {}
func (*FixedSpacer) isFlexEntry() {}
func (*FlexSpacer) isFlexEntry()  {}

func entryWidget(c Child) (*core.WidgetPod[core.Widget], CrossAxisAlignment, bool) {
	switch c := c.(type) {
	case *FixedChild:
		return c.Widget, c.Alignment, true
	case *FlexChild:
		return c.Widget, c.Alignment, true
	}
	return nil, 0, false
}

// Flex lays out its children in a row or a column.
//
// Fixed children are measured first, then the remaining main-axis space is
// shared between flex children and flex spacers in proportion to their
// factors. Whatever is left is distributed by the main axis alignment.
type Flex struct {
	direction       layout.Axis
	crossAlignment  CrossAxisAlignment
	mainAlignment   MainAxisAlignment
	fillMajorAxis   bool
	children        []Child
	warnedUnbounded bool
}

// Row creates an empty horizontal Flex.
func Row() *Flex { return ForAxis(layout.AxisHorizontal) }

// Column creates an empty vertical Flex.
func Column() *Flex { return ForAxis(layout.AxisVertical) }

// ForAxis creates an empty Flex along axis.
func ForAxis(axis layout.Axis) *Flex {
	return &Flex{direction: axis, crossAlignment: CrossAxisAlignmentCenter}
}

// WithCrossAxisAlignment sets the default cross axis alignment.
func (f *Flex) WithCrossAxisAlignment(a CrossAxisAlignment) *Flex {
	f.crossAlignment = a.or(CrossAxisAlignmentCenter)
	return f
}

// WithMainAxisAlignment sets how free main-axis space is distributed.
func (f *Flex) WithMainAxisAlignment(a MainAxisAlignment) *Flex {
	f.mainAlignment = a
	return f
}

// MustFillMainAxis makes the container take all the main-axis space it is
// offered when fill is true.
func (f *Flex) MustFillMainAxis(fill bool) *Flex {
	f.fillMajorAxis = fill
	return f
}

// WithChild appends a fixed child.
func (f *Flex) WithChild(w core.Widget) *Flex {
	f.children = append(f.children, newFixedChild(w, CrossAxisAlignmentDefault))
	return f
}

// WithAlignedChild appends a fixed child with its own cross axis alignment.
func (f *Flex) WithAlignedChild(w core.Widget, a CrossAxisAlignment) *Flex {
	f.children = append(f.children, newFixedChild(w, a))
	return f
}

// WithFlexChild appends a flex child. A non-positive factor adds a fixed
// child instead and reports a warning.
func (f *Flex) WithFlexChild(w core.Widget, params FlexParams) *Flex {
	f.children = append(f.children, newFlexChild(w, params, 0))
	return f
}

// WithSpacer appends a fixed spacer. Negative lengths are treated as 0.
func (f *Flex) WithSpacer(length float64) *Flex {
	f.children = append(f.children, &FixedSpacer{Len: length})
	return f
}

// WithDefaultSpacer appends a spacer as long as the theme padding.
func (f *Flex) WithDefaultSpacer() *Flex {
	f.children = append(f.children, &FixedSpacer{Default: true})
	return f
}

// WithFlexSpacer appends a flex spacer. Negative factors are treated as 0.
func (f *Flex) WithFlexSpacer(flex float64) *Flex {
	f.children = append(f.children, newFlexSpacer(flex, 0))
	return f
}

// Direction returns the main axis.
func (f *Flex) Direction() layout.Axis { return f.direction }

// CrossAxisAlignment returns the default cross axis alignment.
func (f *Flex) CrossAxisAlignment() CrossAxisAlignment { return f.crossAlignment }

// MainAxisAlignment returns the main axis alignment.
func (f *Flex) MainAxisAlignment() MainAxisAlignment { return f.mainAlignment }

// Len returns the number of entries, spacers included.
func (f *Flex) Len() int { return len(f.children) }

// Child returns the entry at index i.
func (f *Flex) Child(i int) Child { return f.children[i] }

func newFixedChild(w core.Widget, a CrossAxisAlignment) *FixedChild {
	return &FixedChild{Widget: core.Boxed(w), Alignment: a}
}

func newFlexChild(w core.Widget, params FlexParams, id core.WidgetID) Child {
	return flexEntry(core.Boxed(w), params, "widgets.Flex.AddFlexChild", id)
}

// flexEntry wraps pod as a flex child, or as a fixed child with a warning
// when the factor is not positive.
func flexEntry(pod *core.WidgetPod[core.Widget], params FlexParams, op string, id core.WidgetID) Child {
	if params.Flex <= 0 || math.IsNaN(params.Flex) {
		warnConfig(op, id, fmt.Errorf("flex factor %g must be > 0; using a fixed child", params.Flex))
		return &FixedChild{Widget: pod, Alignment: params.Alignment}
	}
	return &FlexChild{Widget: pod, Alignment: params.Alignment, Flex: params.Flex}
}

func newFlexSpacer(flex float64, id core.WidgetID) *FlexSpacer {
	if flex < 0 || math.IsNaN(flex) {
		warnConfig("widgets.Flex.AddFlexSpacer", id, fmt.Errorf("flex spacer factor %g must be >= 0", flex))
		flex = 0
	}
	return &FlexSpacer{Flex: flex}
}

func warnConfig(op string, id core.WidgetID, err error) {
	errors.Warn(&errors.TreeError{Op: op, Kind: errors.KindConfig, Widget: "Flex", ID: uint64(id), Err: err})
}

func warnLayout(op string, id core.WidgetID, err error) {
	errors.Warn(&errors.TreeError{Op: op, Kind: errors.KindLayout, Widget: "Flex", ID: uint64(id), Err: err})
}

// OnEvent forwards the event to every child.
func (f *Flex) OnEvent(ctx *core.EventCtx, event core.Event) {
	for _, c := range f.children {
		if pod, _, ok := entryWidget(c); ok {
			pod.OnEvent(ctx, event)
		}
	}
}

// Lifecycle forwards the event to every child.
func (f *Flex) Lifecycle(ctx *core.LifeCycleCtx, event core.LifeCycle) {
	for _, c := range f.children {
		if pod, _, ok := entryWidget(c); ok {
			pod.Lifecycle(ctx, event)
		}
	}
}

// Layout runs the two flex passes and places every child.
func (f *Flex) Layout(ctx *core.LayoutCtx, bc layout.BoxConstraints) graphics.Size {
	axis := f.direction
	loosened := bc.Loosen()

	minor := axis.Minor(bc.Min)
	var maxAbove, maxBelow float64
	anyUseBaseline := f.crossAlignment == CrossAxisAlignmentBaseline

	// Fixed children and spacers. Stashed children take no space and no gap.
	var majorNonFlex, flexSum float64
	var stashed int
	for _, c := range f.children {
		if pod, _, ok := entryWidget(c); ok && pod.IsStashed() {
			stashed++
			continue
		}
		switch c := c.(type) {
		case *FixedChild:
			if c.Alignment != CrossAxisAlignmentDefault && c.Alignment != CrossAxisAlignmentBaseline {
				anyUseBaseline = false
			}
			size := ctx.RunLayout(c.Widget, axis.Constraints(loosened, 0, math.Inf(1)))
			baseline := ctx.ChildBaselineOffset(c.Widget)
			if !size.IsFinite() {
				warnLayout("widgets.Flex.Layout", ctx.WidgetID(), fmt.Errorf("fixed child %s has a non-finite size", c.Widget.ID()))
			}
			majorNonFlex += graphics.Expand(axis.Major(size))
			minor = math.Max(minor, graphics.Expand(axis.Minor(size)))
			maxAbove = math.Max(maxAbove, size.Height-baseline)
			maxBelow = math.Max(maxBelow, baseline)
		case *FixedSpacer:
			length := c.Len
			if c.Default {
				length = ctx.WidgetPadding(axis)
			}
			if length < 0 {
				warnConfig("widgets.Flex.Layout", ctx.WidgetID(), fmt.Errorf("spacer length %g is negative", length))
				length = 0
			}
			c.size = length
			majorNonFlex += length
		case *FlexChild:
			flexSum += c.Flex
		case *FlexSpacer:
			flexSum += c.Flex
		}
	}

	totalMajor := axis.Major(bc.Max)
	unbounded := math.IsInf(totalMajor, 1)
	remaining := math.Max(totalMajor-majorNonFlex, 0)
	if flexSum > 0 && unbounded {
		if !f.warnedUnbounded {
			f.warnedUnbounded = true
			warnLayout("widgets.Flex.Layout", ctx.WidgetID(),
				fmt.Errorf("flex children in a container with an unbounded %s axis get no space", axis))
		}
		remaining = 0
	}
	var pxPerFlex float64
	if flexSum > 0 {
		pxPerFlex = remaining / flexSum
	}

	// Flex children and spacers.
	var majorFlex, remainder float64
	for _, c := range f.children {
		switch c := c.(type) {
		case *FlexChild:
			if c.Widget.IsStashed() {
				continue
			}
			desired := c.Flex*pxPerFlex + remainder
			actual := math.Round(desired)
			remainder = desired - actual

			size := ctx.RunLayout(c.Widget, axis.Constraints(loosened, actual, actual))
			baseline := ctx.ChildBaselineOffset(c.Widget)
			majorFlex += graphics.Expand(axis.Major(size))
			minor = math.Max(minor, graphics.Expand(axis.Minor(size)))
			maxAbove = math.Max(maxAbove, size.Height-baseline)
			maxBelow = math.Max(maxBelow, baseline)
		case *FlexSpacer:
			desired := c.Flex*pxPerFlex + remainder
			c.size = math.Round(desired)
			remainder = desired - c.size
			majorFlex += c.size
		}
	}

	var extra float64
	if f.fillMajorAxis && !unbounded {
		extra = math.Max(remaining-majorFlex, 0)
	} else {
		extra = math.Max(axis.Major(bc.Min)-(majorNonFlex+majorFlex), 0)
	}
	spacing := NewSpacing(f.mainAlignment, extra, len(f.children)-stashed)

	// Cross extent needed to fit the children, ignoring bc.
	minorDim := minor
	useBaseline := anyUseBaseline && axis == layout.AxisHorizontal
	if useBaseline {
		minorDim = maxAbove + maxBelow
	}
	extraHeight := minor - math.Min(minorDim, minor)

	major, _ := spacing.Next()
	var paintRect graphics.Rect
	var last *core.WidgetPod[core.Widget]
	for _, c := range f.children {
		switch c := c.(type) {
		case *FixedChild, *FlexChild:
			pod, own, _ := entryWidget(c)
			if pod.IsStashed() {
				continue
			}
			size := ctx.ChildSize(pod)
			alignment := own.or(f.crossAlignment)

			var offset float64
			switch {
			case alignment == CrossAxisAlignmentBaseline && useBaseline:
				above := size.Height - ctx.ChildBaselineOffset(pod)
				offset = extraHeight + (maxAbove - above)
			case alignment == CrossAxisAlignmentFill:
				ctx.RunLayout(pod, layout.Tight(axis.PackSize(axis.Major(size), minorDim)))
			default:
				offset = alignment.align(minorDim - axis.Minor(size))
			}

			ctx.PlaceChild(pod, axis.PackOffset(major, offset))
			paintRect = paintRect.Union(ctx.ChildPaintRect(pod))
			major += graphics.Expand(axis.Major(size))
			gap, _ := spacing.Next()
			major += gap
			last = pod
		case *FixedSpacer:
			major += c.size
		case *FlexSpacer:
			major += c.size
		}
	}

	if flexSum > 0 && !unbounded {
		major = totalMajor
	}
	size := axis.PackSize(major, minorDim)
	if f.fillMajorAxis {
		size = bc.Constrain(size)
	} else {
		size = axis.Constraints(bc, 0, axis.Major(bc.Max)).Constrain(size)
	}

	ctx.SetPaintInsets(graphics.InsetsBetween(paintRect, size.ToRect()))

	var baseline float64
	if axis == layout.AxisHorizontal {
		baseline = maxBelow
	} else if last != nil {
		below := size.Height - ctx.ChildLayoutRect(last).Bottom
		baseline = ctx.ChildBaselineOffset(last) + below
	}
	ctx.SetBaselineOffset(baseline)
	return size
}

// Paint paints every child that is not stashed.
func (f *Flex) Paint(ctx *core.PaintCtx, scene *graphics.Scene) {
	for _, c := range f.children {
		if pod, _, ok := entryWidget(c); ok && !pod.IsStashed() {
			pod.Paint(ctx, scene)
		}
	}
}

// Accessibility reports a row or column node holding the children.
func (f *Flex) Accessibility(ctx *core.AccessCtx) {
	if f.direction == layout.AxisHorizontal {
		ctx.SetRole(core.RoleRow)
	} else {
		ctx.SetRole(core.RoleColumn)
	}
	for _, c := range f.children {
		if pod, _, ok := entryWidget(c); ok {
			pod.Accessibility(ctx)
		}
	}
}

// ChildrenIDs returns the ids of the widget children in order.
func (f *Flex) ChildrenIDs() []core.WidgetID {
	ids := make([]core.WidgetID, 0, len(f.children))
	for _, c := range f.children {
		if pod, _, ok := entryWidget(c); ok {
			ids = append(ids, pod.ID())
		}
	}
	return ids
}
