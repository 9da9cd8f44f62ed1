package game

import (
	"github.com/phanxgames/cupcake"
	"github.com/phanxgames/cupcake/scene"
)

// Colors used by the board and the placeholders.
var (
	colorBackground = scene.RGB(0x1099bb)
	colorCupcake    = scene.RGB(0xDDDDFF)
	colorRedFill    = scene.RGB(0xFF0000)
	colorBanner     = scene.RGB(0x66B2B2)
	colorGoal       = scene.RGB(0x00AA00)
	colorPoints     = scene.RGB(0xFFFF00)
	colorBlack      = scene.RGB(0x000000)
	colorResultBg   = scene.RGB(0x0f5566)
	colorLogo       = scene.RGB(0x1abc9c)
	colorButton     = scene.RGB(0xF5B041)
)

// piecePalette colors placeholder pieces by index.
var piecePalette = [...]scene.Color{
	scene.RGB(0xE74C3C),
	scene.RGB(0x3498DB),
	scene.RGB(0x2ECC71),
	scene.RGB(0x9B59B6),
	scene.RGB(0xF39C12),
	scene.RGB(0x1ABC9C),
}

// Z-order inside the game layer. Pieces are ordered by the session.
const (
	zBackground = 1
	zCupcake    = 5
	zRedFill    = 6
	zCupcakeBg  = 7
	zGrid       = 8
	zBanner     = 10
	zBannerText = 11
	zHint       = 999
	zEffects    = 1000
)

// Placeholder sizes.
const (
	cupcakeW       = 300
	cupcakeH       = 400
	bannerW        = 600
	bannerH        = 70
	flashSize      = 100
	pieceRadius    = 45
	hintRadius     = 20
	cornerTileSize = 80
	cornerOffset   = 50
	buttonW        = 600
	buttonH        = 170
)

// Layout derives every screen position from the logical screen size.
type Layout struct {
	W, H float64
}

// GridCenter is where the cupcake and its grid sit.
func (l Layout) GridCenter() cupcake.Point {
	return cupcake.Point{X: l.W / 2, Y: l.H / 2}
}

// PieceOrigins returns the resting positions of pieces 1 to 6.
func (l Layout) PieceOrigins() []cupcake.Point {
	w, h := l.W, l.H
	return []cupcake.Point{
		{X: w / 6, Y: h / 5},
		{X: w / 6, Y: h - h/5},
		{X: w - w/6, Y: h / 5},
		{X: w / 7, Y: h / 2},
		{X: w - w/7, Y: h / 2},
		{X: w - w/6, Y: h - h/5},
	}
}

// BannerPos is the top-left corner of the banner.
func (l Layout) BannerPos() cupcake.Point {
	return cupcake.Point{X: l.W/2 - bannerW/2, Y: 50}
}

// BannerTextPos centers the banner caption.
func (l Layout) BannerTextPos() cupcake.Point { return cupcake.Point{X: l.W / 2, Y: 85} }

// ScorePos centers the "iq = N" label.
func (l Layout) ScorePos() cupcake.Point { return cupcake.Point{X: l.W / 2, Y: 180} }

// FeedbackPos centers the "try again" and "well done" label.
func (l Layout) FeedbackPos() cupcake.Point { return cupcake.Point{X: l.W / 2, Y: l.H/2 - 150} }

// LogoPos centers the result logo.
func (l Layout) LogoPos() cupcake.Point { return cupcake.Point{X: l.W / 2, Y: l.H * 0.3} }

// ButtonPos centers the result play button.
func (l Layout) ButtonPos() cupcake.Point { return cupcake.Point{X: l.W / 2, Y: l.H * 0.6} }

// CornerPos returns the centers of the four result corner tiles: top-left,
// top-right, bottom-left, bottom-right.
func (l Layout) CornerPos() [4]cupcake.Point {
	return [4]cupcake.Point{
		{X: cornerOffset, Y: cornerOffset},
		{X: l.W - cornerOffset, Y: cornerOffset},
		{X: cornerOffset, Y: l.H - cornerOffset},
		{X: l.W - cornerOffset, Y: l.H - cornerOffset},
	}
}
