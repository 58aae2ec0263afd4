package widgets

import (
	"github.com/go-drift/trellis/pkg/core"
	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/layout"
)

// Label displays a single line of text in one of the bundled faces.
//
// The text is drawn at the top-left of the label's box; the baseline offset
// reported to the parent follows the face ascent, so labels in a
// baseline-aligned row line up whatever their face.
type Label struct {
	core.Leaf
	text   string
	style  graphics.TextStyle
	layout *graphics.TextLayout
}

// NewLabel creates a black label in the basic face.
func NewLabel(text string) *Label {
	return &Label{text: text, style: graphics.TextStyle{Color: graphics.ColorBlack}}
}

// WithColor sets the text color.
func (l *Label) WithColor(c graphics.Color) *Label {
	l.style.Color = c
	return l
}

// WithFace sets the font face.
func (l *Label) WithFace(f graphics.FontFace) *Label {
	l.style.Face = f
	return l
}

// Text returns the displayed text.
func (l *Label) Text() string { return l.text }

// Style returns the text style.
func (l *Label) Style() graphics.TextStyle { return l.style }

func (l *Label) Layout(ctx *core.LayoutCtx, bc layout.BoxConstraints) graphics.Size {
	l.layout = graphics.LayoutText(l.text, l.style)
	size := bc.Constrain(l.layout.Size)
	ctx.SetBaselineOffset(size.Height - l.layout.Ascent)
	return size
}

func (l *Label) Paint(ctx *core.PaintCtx, scene *graphics.Scene) {
	if l.layout == nil || l.text == "" {
		return
	}
	scene.Save()
	scene.ClipRect(ctx.Size().ToRect())
	scene.DrawText(l.layout, graphics.Offset{})
	scene.Restore()
}

func (l *Label) Accessibility(ctx *core.AccessCtx) {
	ctx.SetRole(core.RoleLabel)
	ctx.SetLabel(l.text)
}

// LabelMut edits a [Label] through a [core.WidgetMut].
type LabelMut struct {
	m *core.WidgetMut[*Label]
}

// EditLabel wraps m.
func EditLabel(m *core.WidgetMut[*Label]) LabelMut { return LabelMut{m: m} }

// SetText replaces the text.
func (l LabelMut) SetText(text string) {
	l.m.Widget().text = text
	l.m.Ctx().RequestLayout()
}

// SetColor changes the text color.
func (l LabelMut) SetColor(c graphics.Color) {
	l.m.Widget().style.Color = c
	l.m.Ctx().RequestPaint()
}

// SetFace changes the font face.
func (l LabelMut) SetFace(f graphics.FontFace) {
	l.m.Widget().style.Face = f
	l.m.Ctx().RequestLayout()
}
