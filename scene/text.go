package scene

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Font wraps Ebitengine's text/v2 for TrueType font rendering.
type Font struct {
	face *text.GoTextFace
	lh   float64 // cached line height
}

// LoadFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadFont(ttfData []byte, size float64) (*Font, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("scene: parse TTF data: %w", err)
	}
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &Font{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}, nil
}

// WithSize returns a font sharing f's face source at another size.
func (f *Font) WithSize(size float64) *Font {
	face := &text.GoTextFace{Source: f.face.Source, Size: size}
	m := face.Metrics()
	return &Font{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}
}

// MeasureString returns the width and height of the rendered text.
func (f *Font) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *Font) LineHeight() float64 {
	return f.lh
}

// Face returns the underlying GoTextFace.
func (f *Font) Face() *text.GoTextFace {
	return f.face
}

// TextBlock is the content of a text node. Text is vertically centered on
// the node origin and aligned horizontally by Align.
type TextBlock struct {
	Content string
	Font    *Font
	Align   TextAlign

	// OutlineWidth draws the text in OutlineColor at that offset in eight
	// directions underneath the fill. Zero disables the outline.
	OutlineWidth float64
	OutlineColor Color
}

// Measure returns the laid-out size of the content, or zero without a font.
func (tb *TextBlock) Measure() (w, h float64) {
	if tb.Font == nil || tb.Content == "" {
		return 0, 0
	}
	return tb.Font.MeasureString(tb.Content)
}

// SetText replaces the content of a text node. It is a no-op on other nodes.
func (n *Node) SetText(s string) {
	if n.Text != nil {
		n.Text.Content = s
	}
}

var outlineDirs = [8][2]float64{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// drawText renders a text node with its world transform.
func drawText(dst *ebiten.Image, n *Node, geo ebiten.GeoM, alpha float64) {
	tb := n.Text
	if tb == nil || tb.Font == nil || tb.Content == "" {
		return
	}

	op := &text.DrawOptions{}
	op.LineSpacing = tb.Font.lh
	op.SecondaryAlign = text.AlignCenter
	switch tb.Align {
	case TextAlignLeft:
		op.PrimaryAlign = text.AlignStart
	case TextAlignRight:
		op.PrimaryAlign = text.AlignEnd
	default:
		op.PrimaryAlign = text.AlignCenter
	}

	if tb.OutlineWidth > 0 {
		oc := tb.OutlineColor
		for _, d := range outlineDirs {
			op.GeoM.Reset()
			op.GeoM.Translate(d[0]*tb.OutlineWidth, d[1]*tb.OutlineWidth)
			op.GeoM.Concat(geo)
			op.ColorScale.Reset()
			applyColorScale(&op.ColorScale, oc, alpha)
			text.Draw(dst, tb.Content, tb.Font.face, op)
		}
	}

	op.GeoM = geo
	op.ColorScale.Reset()
	applyColorScale(&op.ColorScale, n.Color, alpha)
	text.Draw(dst, tb.Content, tb.Font.face, op)
}
