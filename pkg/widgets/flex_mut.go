package widgets

import (
	"fmt"
	"slices"

	"github.com/go-drift/trellis/pkg/core"
	"github.com/go-drift/trellis/pkg/layout"
)

// FlexMut edits a [Flex] through a [core.WidgetMut]. Every method requests
// a new layout; methods that add or remove widgets also report the change
// to the runtime.
//
//	core.GetMut(ctx, row, func(m *core.WidgetMut[*widgets.Flex]) {
//	    widgets.EditFlex(m).AddChild(widgets.NewLabel("new"))
//	})
type FlexMut struct {
	m *core.WidgetMut[*Flex]
}

// EditFlex wraps m.
func EditFlex(m *core.WidgetMut[*Flex]) FlexMut { return FlexMut{m: m} }

func (f FlexMut) flex() *Flex { return f.m.Widget() }

// Len returns the number of entries, spacers included.
func (f FlexMut) Len() int { return len(f.flex().children) }

// SetDirection changes the main axis.
func (f FlexMut) SetDirection(axis layout.Axis) {
	f.flex().direction = axis
	f.m.Ctx().RequestLayout()
}

// SetCrossAxisAlignment changes the default cross axis alignment.
func (f FlexMut) SetCrossAxisAlignment(a CrossAxisAlignment) {
	f.flex().crossAlignment = a.or(CrossAxisAlignmentCenter)
	f.m.Ctx().RequestLayout()
}

// SetMainAxisAlignment changes how free main-axis space is distributed.
func (f FlexMut) SetMainAxisAlignment(a MainAxisAlignment) {
	f.flex().mainAlignment = a
	f.m.Ctx().RequestLayout()
}

// SetMustFillMainAxis changes whether the container takes all the main-axis
// space it is offered.
func (f FlexMut) SetMustFillMainAxis(fill bool) {
	f.flex().fillMajorAxis = fill
	f.m.Ctx().RequestLayout()
}

func (f FlexMut) insert(i int, c Child) {
	fl := f.flex()
	if i < 0 || i > len(fl.children) {
		panic(fmt.Sprintf("widgets.FlexMut: insert index %d out of range [0, %d]", i, len(fl.children)))
	}
	fl.children = slices.Insert(fl.children, i, c)
	if _, _, ok := entryWidget(c); ok {
		f.m.Ctx().ChildrenChanged()
	}
	f.m.Ctx().RequestLayout()
}

// AddChild appends a fixed child.
func (f FlexMut) AddChild(w core.Widget) { f.InsertChild(f.Len(), w) }

// AddFlexChild appends a flex child.
func (f FlexMut) AddFlexChild(w core.Widget, params FlexParams) {
	f.InsertFlexChild(f.Len(), w, params)
}

// AddSpacer appends a fixed spacer.
func (f FlexMut) AddSpacer(length float64) { f.InsertSpacer(f.Len(), length) }

// AddDefaultSpacer appends a spacer as long as the theme padding.
func (f FlexMut) AddDefaultSpacer() { f.InsertDefaultSpacer(f.Len()) }

// AddFlexSpacer appends a flex spacer.
func (f FlexMut) AddFlexSpacer(flex float64) { f.InsertFlexSpacer(f.Len(), flex) }

// InsertChild inserts a fixed child at index i.
func (f FlexMut) InsertChild(i int, w core.Widget) {
	f.insert(i, newFixedChild(w, CrossAxisAlignmentDefault))
}

// InsertFlexChild inserts a flex child at index i.
func (f FlexMut) InsertFlexChild(i int, w core.Widget, params FlexParams) {
	f.insert(i, newFlexChild(w, params, f.m.ID()))
}

// InsertSpacer inserts a fixed spacer at index i.
func (f FlexMut) InsertSpacer(i int, length float64) {
	f.insert(i, &FixedSpacer{Len: length})
}

// InsertDefaultSpacer inserts a theme-padding spacer at index i.
func (f FlexMut) InsertDefaultSpacer(i int) {
	f.insert(i, &FixedSpacer{Default: true})
}

// InsertFlexSpacer inserts a flex spacer at index i.
func (f FlexMut) InsertFlexSpacer(i int, flex float64) {
	f.insert(i, newFlexSpacer(flex, f.m.ID()))
}

// RemoveChild removes the entry at index i, unregistering its widget.
func (f FlexMut) RemoveChild(i int) {
	fl := f.flex()
	if pod, _, ok := entryWidget(fl.children[i]); ok {
		f.m.Ctx().RemoveChild(pod)
	}
	fl.children = slices.Delete(fl.children, i, i+1)
	f.m.Ctx().RequestLayout()
}

// Clear removes every entry.
func (f FlexMut) Clear() {
	fl := f.flex()
	for _, c := range fl.children {
		if pod, _, ok := entryWidget(c); ok {
			f.m.Ctx().RemoveChild(pod)
		}
	}
	fl.children = nil
	f.m.Ctx().RequestLayout()
}

// ChildMut passes a handle to the widget at index i to fn. It reports false,
// without calling fn, if the entry is a spacer.
func (f FlexMut) ChildMut(i int, fn func(*core.WidgetMut[core.Widget])) bool {
	pod, _, ok := entryWidget(f.flex().children[i])
	if !ok {
		return false
	}
	core.GetMut(f.m.Ctx(), pod, fn)
	return true
}

// UpdateChildFlexParams changes the flex factor and alignment of the widget
// at index i. A positive factor makes it a flex child; anything else is
// reported and makes it a fixed child. It panics if the entry is a spacer.
func (f FlexMut) UpdateChildFlexParams(i int, params FlexParams) {
	fl := f.flex()
	pod, _, ok := entryWidget(fl.children[i])
	if !ok {
		panic(fmt.Sprintf("widgets.FlexMut: entry %d is a spacer, not a widget", i))
	}
	fl.children[i] = flexEntry(pod, params, "widgets.FlexMut.UpdateChildFlexParams", f.m.ID())
	f.m.Ctx().RequestLayout()
}

// UpdateSpacerFixed turns the spacer at index i into a fixed spacer of the
// given length. It panics if the entry is a widget.
func (f FlexMut) UpdateSpacerFixed(i int, length float64) {
	f.replaceSpacer(i, &FixedSpacer{Len: length})
}

// UpdateSpacerFlex turns the spacer at index i into a flex spacer. It
// panics if the entry is a widget.
func (f FlexMut) UpdateSpacerFlex(i int, flex float64) {
	f.replaceSpacer(i, newFlexSpacer(flex, f.m.ID()))
}

func (f FlexMut) replaceSpacer(i int, c Child) {
	fl := f.flex()
	if _, _, ok := entryWidget(fl.children[i]); ok {
		panic(fmt.Sprintf("widgets.FlexMut: entry %d is a widget, not a spacer", i))
	}
	fl.children[i] = c
	f.m.Ctx().RequestLayout()
}
