package graphics

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/math/fixed"
)

// FontFace names one of the bundled bitmap faces.
type FontFace int

const (
	// FontFaceBasic is the 7x13 fixed face.
	FontFaceBasic FontFace = iota
	// FontFaceInconsolata is the 8x16 Inconsolata regular face.
	FontFaceInconsolata
	// FontFaceInconsolataBold is the 8x16 Inconsolata bold face.
	FontFaceInconsolataBold
)

// String returns a human-readable representation of the face.
func (f FontFace) String() string {
	switch f {
	case FontFaceBasic:
		return "basic"
	case FontFaceInconsolata:
		return "inconsolata"
	case FontFaceInconsolataBold:
		return "inconsolata_bold"
	default:
		return fmt.Sprintf("FontFace(%d)", int(f))
	}
}

// Face resolves the bundled font.Face for f. Unknown values fall back to
// the basic face.
func (f FontFace) Face() font.Face {
	switch f {
	case FontFaceInconsolata:
		return inconsolata.Regular8x16
	case FontFaceInconsolataBold:
		return inconsolata.Bold8x16
	default:
		return basicfont.Face7x13
	}
}

// TextStyle describes how text should be rendered.
type TextStyle struct {
	Color Color
	Face  FontFace
}

// TextLayout contains measured single-line text metrics and the resolved face.
type TextLayout struct {
	Text    string
	Style   TextStyle
	Size    Size
	Ascent  float64
	Descent float64
	Face    font.Face
}

// LayoutText measures text in the given style.
func LayoutText(text string, style TextStyle) *TextLayout {
	face := style.Face.Face()
	metrics := face.Metrics()
	ascent := float64(metrics.Ascent.Ceil())
	descent := float64(metrics.Descent.Ceil())
	width := float64(font.MeasureString(face, text).Ceil())
	return &TextLayout{
		Text:    text,
		Style:   style,
		Size:    Size{Width: width, Height: ascent + descent},
		Ascent:  ascent,
		Descent: descent,
		Face:    face,
	}
}

// Baseline returns the distance from the bottom of the layout box up to the
// text baseline.
func (l *TextLayout) Baseline() float64 {
	return l.Descent
}

// dot returns the glyph origin for drawing the layout with its top-left at p.
func (l *TextLayout) dot(p Offset) fixed.Point26_6 {
	return fixed.P(int(p.X), int(p.Y+l.Ascent))
}
