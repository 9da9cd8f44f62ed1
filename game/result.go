package game

import (
	"github.com/phanxgames/cupcake"
	"github.com/phanxgames/cupcake/scene"
	"github.com/rs/zerolog"
	"github.com/tanema/gween/ease"
)

// playButtonEntity tags the play button's interaction events.
const playButtonEntity = 100

// Result screen timing in seconds.
const (
	resultFadeOut   = 0.5
	resultFadeIn    = 0.5
	logoIntro       = 0.7
	buttonIntro     = 0.6
	buttonDelay     = 0.4
	tileIntro       = 0.6
	firstTileDelay  = 0.6
	tileStagger     = 0.2
	cornerTileTurn  = 0.6
	cornerTileScale = 1.1
)

// resultScreen is shown once the puzzle is complete.
type resultScreen struct {
	layer  *scene.Node
	game   *scene.Node
	logo   *scene.Node
	button *scene.Node
	tiles  [4]*scene.Node

	logoHome, buttonHome cupcake.Point
	logoScale            float64

	tweens *scene.Tweens
	seq    *cupcake.Sequencer
	log    zerolog.Logger
	shown  bool
}

func buildResult(l Layout, a *Assets, game *scene.Node, tweens *scene.Tweens, seq *cupcake.Sequencer, log zerolog.Logger) *resultScreen {
	r := &resultScreen{
		layer:      scene.NewContainer("result"),
		game:       game,
		logoHome:   l.LogoPos(),
		buttonHome: l.ButtonPos(),
		logoScale:  1,
		tweens:     tweens,
		seq:        seq,
		log:        log,
	}
	r.layer.Interactable = true
	r.layer.Visible = false

	r.layer.AddChild(fullScreen("result_background", a.WinBackground, colorResultBg, l))

	if a.Logo != nil {
		r.logo = scene.NewImage("logo", a.Logo)
	} else {
		r.logo = scene.NewText("logo", "PLAYDOKU", a.fontSize(60))
		r.logo.Color = colorLogo
		r.logo.Text.OutlineWidth = 5
		r.logo.Text.OutlineColor = scene.ColorWhite
	}
	r.layer.AddChild(r.logo)

	r.button = scene.NewContainer("play_button")
	r.button.Interactable = true
	r.button.EntityID = playButtonEntity
	r.button.SetScale(0.6, 0.6)
	var face *scene.Node
	if a.Button != nil {
		face = scene.NewImage("button_face", a.Button)
	} else {
		face = scene.NewImage("button_face", stadiumImage(buttonW, buttonH))
		face.Color = colorButton
	}
	w, h := face.Size()
	r.button.HitShape = scene.HitRect{X: -w / 2, Y: -h / 2, Width: w, Height: h}
	r.button.AddChild(face)
	caption := scene.NewText("button_text", "PLAY NOW", a.fontSize(48))
	caption.Color = colorBlack
	if caption.Text.Font != nil {
		caption.Y = -0.2 * caption.Text.Font.LineHeight()
	}
	r.button.AddChild(caption)
	r.layer.AddChild(r.button)

	for i, pos := range l.CornerPos() {
		var tile *scene.Node
		if a.Corners[i] != nil {
			tile = scene.NewImage("corner_tile", a.Corners[i])
		} else {
			tile = centeredRect("corner_tile", cornerTileSize, cornerTileSize, piecePalette[i])
		}
		tile.SetPosition(pos.X, pos.Y)
		tile.SetScale(cornerTileScale, cornerTileScale)
		r.layer.AddChild(tile)
		r.tiles[i] = tile
	}

	r.resetIntro()
	return r
}

// Trigger fades the game out and the result screen in, then plays the
// intro. It implements cupcake.ResultTransition.
func (r *resultScreen) Trigger() {
	if r.shown {
		return
	}
	r.shown = true
	r.log.Info().Msg("showing result screen")
	r.tweens.Add(scene.TweenAlpha(r.game, 0, resultFadeOut, ease.Linear)).Then(func() {
		r.game.SetVisible(false)
		r.layer.SetAlpha(0)
		r.layer.SetVisible(true)
		r.tweens.Add(scene.TweenAlpha(r.layer, 1, resultFadeIn, ease.Linear)).Then(r.intro)
	})
}

// intro brings in the logo, then the button, then the corner tiles one
// after another.
func (r *resultScreen) intro() {
	r.tweens.Add(scene.TweenPosition(r.logo, r.logoHome.X, r.logoHome.Y, logoIntro, ease.OutBack))
	r.tweens.Add(scene.TweenAlpha(r.logo, 1, logoIntro, ease.Linear))
	r.tweens.Add(scene.TweenScale(r.logo, r.logoScale, r.logoScale, logoIntro, ease.OutBack))

	r.seq.After(buttonDelay, func() {
		r.tweens.Add(scene.TweenPosition(r.button, r.buttonHome.X, r.buttonHome.Y, buttonIntro, ease.OutBack))
		r.tweens.Add(scene.TweenAlpha(r.button, 1, buttonIntro, ease.Linear))
	})
	for i, tile := range r.tiles {
		turn := -cornerTileTurn
		if i%2 == 1 {
			turn = cornerTileTurn
		}
		r.seq.After(firstTileDelay+float32(i)*tileStagger, func() {
			r.tweens.Add(scene.TweenRotation(tile, turn, tileIntro, ease.OutBack))
			r.tweens.Add(scene.TweenAlpha(tile, 1, tileIntro, ease.Linear))
		})
	}
}

// resetIntro puts the intro elements at their start values.
func (r *resultScreen) resetIntro() {
	r.logo.SetPosition(r.logoHome.X, r.logoHome.Y+80)
	r.logo.SetScale(0.4, 0.4)
	r.logo.SetAlpha(0)
	r.button.SetPosition(r.buttonHome.X, r.buttonHome.Y-100)
	r.button.SetAlpha(0)
	for _, tile := range r.tiles {
		tile.SetRotation(0)
		tile.SetAlpha(0)
	}
}

// hide returns to the game layer. Running tweens must already be cleared.
func (r *resultScreen) hide() {
	r.shown = false
	r.layer.SetVisible(false)
	r.layer.SetAlpha(1)
	r.game.SetAlpha(1)
	r.game.SetVisible(true)
	r.resetIntro()
}

// Shown reports whether the result screen has been triggered.
func (r *resultScreen) Shown() bool { return r.shown }
