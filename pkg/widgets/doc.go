// Package widgets provides the stock widgets built on pkg/core.
//
// [Flex] is the layout workhorse: a row or column of fixed children, flex
// children and spacers.
//
//	row := widgets.Row().
//	    WithCrossAxisAlignment(widgets.CrossAxisAlignmentBaseline).
//	    WithChild(widgets.NewLabel("Name")).
//	    WithDefaultSpacer().
//	    WithFlexChild(widgets.NewLabel("value"), widgets.FlexParams{Flex: 1})
//
// [Label] shows one line of text, [SizedBox] forces a size on an optional
// child.
//
// # Mutation
//
// Widgets are changed after creation through their Mut wrappers, obtained
// from a [core.WidgetMut]:
//
//	h.Edit(func(m *core.WidgetMut[core.Widget]) {
//	    core.Downcast(m, func(fm *core.WidgetMut[*widgets.Flex]) {
//	        widgets.EditFlex(fm).AddSpacer(12)
//	    })
//	})
//
// Setters request layout or paint as needed; adding or removing widgets
// also reports the change so that new children receive WidgetAdded.
package widgets
