package testing

import (
	"fmt"
	"math"

	"github.com/go-drift/trellis/pkg/graphics"
)

// DisplayOp represents a serialized scene operation.
type DisplayOp struct {
	Op     string         `json:"op"`
	Params map[string]any `json:"params,omitempty"`
}

// serializeScene converts the recorded operations of scene.
func serializeScene(scene *graphics.Scene) []DisplayOp {
	var ops []DisplayOp
	for _, op := range scene.Ops() {
		switch o := op.(type) {
		case graphics.OpSave:
			ops = append(ops, DisplayOp{Op: "save"})
		case graphics.OpRestore:
			ops = append(ops, DisplayOp{Op: "restore"})
		case graphics.OpTranslate:
			ops = append(ops, DisplayOp{Op: "translate", Params: sortedMap("dx", round2(o.Offset.X), "dy", round2(o.Offset.Y))})
		case graphics.OpClipRect:
			ops = append(ops, DisplayOp{Op: "clipRect", Params: sortedMap("rect", serializeRect(o.Rect))})
		case graphics.OpFillRect:
			ops = append(ops, DisplayOp{Op: "fillRect", Params: sortedMap("rect", serializeRect(o.Rect), "color", serializeColor(o.Color))})
		case graphics.OpText:
			ops = append(ops, DisplayOp{Op: "text", Params: sortedMap(
				"text", o.Layout.Text,
				"face", o.Layout.Style.Face.String(),
				"x", round2(o.Position.X),
				"y", round2(o.Position.Y),
			)})
		default:
			ops = append(ops, DisplayOp{Op: fmt.Sprintf("%T", op)})
		}
	}
	return ops
}

// --- Serialization helpers ---

func serializeRect(r graphics.Rect) map[string]any {
	return sortedMap(
		"left", round2(r.Left),
		"top", round2(r.Top),
		"right", round2(r.Right),
		"bottom", round2(r.Bottom),
	)
}

func serializeColor(c graphics.Color) string {
	return fmt.Sprintf("0x%08X", uint32(c))
}

// round2 rounds a float64 to 2 decimal places.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// sortedMap creates a map from alternating key-value pairs. The snapshot
// encoder writes map keys in sorted order.
func sortedMap(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		m[kvs[i].(string)] = kvs[i+1]
	}
	return m
}
