package scene

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// NewFPSWidget creates an image node showing the current FPS and TPS,
// refreshed about twice a second. Put it on top with a high ZIndex.
func NewFPSWidget() *Node {
	node := NewImage("fps_widget", nil)
	node.ZIndex = 1 << 20

	var since float64
	node.OnUpdate = func(dt float64) {
		since += dt
		if node.Image != nil && since < 0.5 {
			return
		}
		since = 0
		if node.Image == nil {
			// 100x32 fits "FPS: 60.0\nTPS: 60.0".
			node.Image = ebiten.NewImage(100, 32)
		}
		img := node.Image
		img.Clear()
		img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	return node
}
