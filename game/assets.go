package game

import (
	"fmt"
	_ "image/png" // register the PNG decoder for ebitenutil
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/phanxgames/cupcake/scene"
	"github.com/rs/zerolog"
	"golang.org/x/image/font/gofont/gobold"
)

// Assets holds the images and font the board is built from. A nil image
// is drawn as a placeholder.
type Assets struct {
	Background    *ebiten.Image
	WinBackground *ebiten.Image
	CupcakeBg     *ebiten.Image
	RedFill       *ebiten.Image
	Hand          *ebiten.Image
	Logo          *ebiten.Image
	Button        *ebiten.Image
	Figures       [6]*ebiten.Image
	Corners       [4]*ebiten.Image

	// Font is the base face; labels derive their sizes from it.
	Font *scene.Font
}

type imageSlot struct {
	file string
	dst  **ebiten.Image
}

func (a *Assets) slots() []imageSlot {
	s := []imageSlot{
		{"BG.png", &a.Background},
		{"win-bg.png", &a.WinBackground},
		{"cupcake-bg.png", &a.CupcakeBg},
		{"cupcake-red_fill.png", &a.RedFill},
		{"Hand.png", &a.Hand},
		{"logo.png", &a.Logo},
		{"button.png", &a.Button},
	}
	for i := range a.Figures {
		s = append(s, imageSlot{fmt.Sprintf("figure_%d.png", i+1), &a.Figures[i]})
	}
	for i := range a.Corners {
		s = append(s, imageSlot{fmt.Sprintf("play%d.png", i+1), &a.Corners[i]})
	}
	return s
}

// NewAssets returns a set with the default font and no images, so every
// visual uses its placeholder.
func NewAssets() (*Assets, error) {
	font, err := scene.LoadFont(gobold.TTF, 28)
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	return &Assets{Font: font}, nil
}

// LoadAssets reads every image from dir. Missing or unreadable images are
// logged and left nil. Only a font failure is an error.
func LoadAssets(dir string, log zerolog.Logger) (*Assets, error) {
	a, err := NewAssets()
	if err != nil {
		return nil, err
	}
	missing := 0
	for _, s := range a.slots() {
		path := filepath.Join(dir, s.file)
		img, _, err := ebitenutil.NewImageFromFile(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("asset unavailable, using placeholder")
			missing++
			continue
		}
		*s.dst = img
	}
	log.Info().Str("dir", dir).Int("missing", missing).Msg("assets loaded")
	return a, nil
}

// fontSize returns the base font at size, or nil without a font.
func (a *Assets) fontSize(size float64) *scene.Font {
	if a.Font == nil {
		return nil
	}
	return a.Font.WithSize(size)
}
