package testing

import (
	"github.com/go-drift/trellis/pkg/core"
	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/layout"
)

// RecordKind identifies the pass a Record was captured in.
type RecordKind string

const (
	RecordEvent     RecordKind = "event"
	RecordLifecycle RecordKind = "lifecycle"
	RecordLayout    RecordKind = "layout"
	RecordPaint     RecordKind = "paint"
	RecordAccess    RecordKind = "access"
)

// Record is one widget method call seen by a Recorder.
type Record struct {
	Kind RecordKind
	// Event is the core.Event or core.LifeCycle delivered, if any.
	Event any
	// Constraints is set for layout records.
	Constraints layout.BoxConstraints
	// Size is the size returned by layout.
	Size graphics.Size
}

// Recording accumulates the calls observed by a Recorder.
type Recording struct {
	records []Record
}

// Records returns the calls in order.
func (r *Recording) Records() []Record { return r.records }

// Len returns the number of records.
func (r *Recording) Len() int { return len(r.records) }

// Clear drops every record.
func (r *Recording) Clear() { r.records = nil }

// Lifecycles returns the lifecycle events seen, in order.
func (r *Recording) Lifecycles() []core.LifeCycle {
	var out []core.LifeCycle
	for _, rec := range r.records {
		if rec.Kind == RecordLifecycle {
			out = append(out, rec.Event.(core.LifeCycle))
		}
	}
	return out
}

// Count returns the number of records of kind.
func (r *Recording) Count(kind RecordKind) int {
	n := 0
	for _, rec := range r.records {
		if rec.Kind == kind {
			n++
		}
	}
	return n
}

// Recorder wraps a widget and records each call before forwarding it.
type Recorder struct {
	inner     core.Widget
	recording *Recording
}

// NewRecorder wraps w.
func NewRecorder(w core.Widget) (*Recorder, *Recording) {
	rec := &Recording{}
	return &Recorder{inner: w, recording: rec}, rec
}

// Inner returns the wrapped widget.
func (r *Recorder) Inner() core.Widget { return r.inner }

func (r *Recorder) OnEvent(ctx *core.EventCtx, event core.Event) {
	r.recording.records = append(r.recording.records, Record{Kind: RecordEvent, Event: event})
	r.inner.OnEvent(ctx, event)
}

func (r *Recorder) Lifecycle(ctx *core.LifeCycleCtx, event core.LifeCycle) {
	r.recording.records = append(r.recording.records, Record{Kind: RecordLifecycle, Event: event})
	r.inner.Lifecycle(ctx, event)
}

func (r *Recorder) Layout(ctx *core.LayoutCtx, bc layout.BoxConstraints) graphics.Size {
	size := r.inner.Layout(ctx, bc)
	r.recording.records = append(r.recording.records, Record{Kind: RecordLayout, Constraints: bc, Size: size})
	return size
}

func (r *Recorder) Paint(ctx *core.PaintCtx, scene *graphics.Scene) {
	r.recording.records = append(r.recording.records, Record{Kind: RecordPaint})
	r.inner.Paint(ctx, scene)
}

func (r *Recorder) Accessibility(ctx *core.AccessCtx) {
	r.recording.records = append(r.recording.records, Record{Kind: RecordAccess})
	r.inner.Accessibility(ctx)
}

func (r *Recorder) ChildrenIDs() []core.WidgetID { return r.inner.ChildrenIDs() }
