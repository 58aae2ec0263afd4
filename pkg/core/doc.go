// Package core provides the retained widget tree runtime.
//
// A tree is made of [Widget] values, each owned by a [WidgetPod] that keeps
// the framework-side [WidgetState] for it: layout rect, dirty flags, hot and
// active status, focus and disabled state. The runtime drives the tree
// through five passes, each entered through the pod:
//
//   - OnEvent routes pointer and text events.
//   - Lifecycle delivers tree notifications (widget added, animation frame,
//     disabled and focus changes, focus chain rebuild).
//   - Layout measures children with box constraints and places them.
//   - Paint records drawing commands into a [graphics.Scene].
//   - Accessibility builds an [AccessTree].
//
// After every child visit the child's state is merged into its parent, so
// a flag raised deep in the tree is visible on the root when the pass ends.
// [RenderRoot] owns the root pod and runs the follow-up passes implied by
// those flags.
//
// # Mutation
//
// Widgets are never edited directly. A parent obtains a scoped handle to a
// child with [GetMut]; the handle's [WidgetCtx] raises flags on the child's
// state and the child is merged into the parent when the callback returns,
// including when it panics:
//
//	core.GetMut(ctx, flex.child, func(m *core.WidgetMut[*widgets.Label]) {
//	    widgets.LabelMut{WidgetMut: m}.SetText("done")
//	})
//
// While a child handle is live the parent handle is frozen.
//
// # Safety rails
//
// Unless built with the release tag, pods verify the container contract on
// every pass: each non-stashed child must be visited exactly once, laid out
// children must be placed, child lists may only change together with
// ChildrenChanged, and removed children must go through RemoveChild.
// Violations panic with an [*errors.InvariantError].
package core
