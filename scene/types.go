package scene

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication happens when a draw is submitted.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// RGB converts a 0xRRGGBB value to an opaque Color.
func RGB(hex uint32) Color {
	return Color{
		R: float64(hex>>16&0xff) / 255,
		G: float64(hex>>8&0xff) / 255,
		B: float64(hex&0xff) / 255,
		A: 1,
	}
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// whitePixelImg is created on first use so that importing the package never
// touches the graphics driver.
var whitePixelImg *ebiten.Image

// whitePixel returns a 1x1 white image used to draw solid rectangles.
func whitePixel() *ebiten.Image {
	if whitePixelImg == nil {
		whitePixelImg = ebiten.NewImage(1, 1)
		whitePixelImg.Fill(ColorWhite.toRGBA())
	}
	return whitePixelImg
}

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no visual output
	NodeTypeRect                      // solid rectangle of Width x Height
	NodeTypeCircle                    // solid circle of Radius centered on the node origin
	NodeTypeImage                     // an ebiten image, optionally stretched to Width x Height
	NodeTypeText                      // a TextBlock drawn with a TTF face
)

// EventType identifies a kind of interaction event.
type EventType uint8

const (
	EventPointerDown EventType = iota // fires when a pointer button is pressed
	EventPointerUp                    // fires when the pressed pointer is released
	EventClick                        // fires on press then release over the same node
	EventDragStart                    // fires when movement exceeds the drag dead zone
	EventDrag                         // fires each frame the held pointer moves while dragging
	EventDragEnd                      // fires when the pointer is released after dragging
)

func (e EventType) String() string {
	switch e {
	case EventPointerDown:
		return "pointer_down"
	case EventPointerUp:
		return "pointer_up"
	case EventClick:
		return "click"
	case EventDragStart:
		return "drag_start"
	case EventDrag:
		return "drag"
	case EventDragEnd:
		return "drag_end"
	default:
		return "unknown"
	}
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// TextAlign controls horizontal text alignment around a text node's origin.
type TextAlign uint8

const (
	TextAlignCenter TextAlign = iota // center on the origin (default)
	TextAlignLeft                    // start at the origin
	TextAlignRight                   // end at the origin
)
