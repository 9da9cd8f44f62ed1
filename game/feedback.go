package game

import (
	"fmt"

	"github.com/phanxgames/cupcake"
	"github.com/phanxgames/cupcake/scene"
	"github.com/rs/zerolog"
	"github.com/tanema/gween/ease"
)

// feedback turns session events into the board's visual effects: score
// label, banner, cell flashes, floating points and the try again and well
// done captions.
type feedback struct {
	b      *board
	tweens *scene.Tweens
	seq    *cupcake.Sequencer
	font   *scene.Font
	goal   int
	log    zerolog.Logger

	goalReached bool
	fade        *cupcake.Sequence // pending caption fade-out
}

func newFeedback(b *board, a *Assets, tweens *scene.Tweens, seq *cupcake.Sequencer, goal int, log zerolog.Logger) *feedback {
	return &feedback{
		b:      b,
		tweens: tweens,
		seq:    seq,
		font:   a.fontSize(24),
		goal:   goal,
		log:    log,
	}
}

// handle applies one session event.
func (f *feedback) handle(e cupcake.Event) {
	switch e.Kind {
	case cupcake.EventSessionStarted:
		f.reset()
	case cupcake.EventScoreChanged:
		f.setScore(e.Score)
	case cupcake.EventPieceAccepted:
		if l := f.b.labels[e.PieceID]; l != nil {
			l.SetVisible(false)
		}
		f.flash(e.Cell)
		f.floatPoints(e.Cell, e.Points)
	case cupcake.EventPlacementRejected:
		f.tryAgain()
	case cupcake.EventPuzzleReset:
		f.showLabels()
	case cupcake.EventSessionCompleted:
		f.wellDone()
	}
}

// reset returns the board's overlays to their start state.
func (f *feedback) reset() {
	f.cancelFade()
	f.goalReached = false
	f.b.bannerText.SetText(bannerPrompt)
	f.b.banner.Color = colorBanner
	f.b.redFill.SetVisible(false)
	f.hideCaption()
	f.b.flashes.RemoveChildren()
	f.b.effects.RemoveChildren()
	f.showLabels()
}

func (f *feedback) showLabels() {
	for _, l := range f.b.labels {
		l.SetVisible(true)
	}
}

// setScore updates the score label with a short pop. Reaching the goal
// switches the banner, which stays until the session restarts.
func (f *feedback) setScore(score int) {
	s := f.b.score
	s.SetText(fmt.Sprintf("iq = %d", score))
	f.tweens.Stop(s)
	s.SetScale(1.2, 1.2)
	f.tweens.Add(scene.TweenScale(s, 1, 1, 0.3, ease.OutElastic))

	if score >= f.goal && !f.goalReached {
		f.goalReached = true
		f.b.bannerText.SetText(bannerGoal)
		f.tweens.Add(scene.TweenColor(f.b.banner, colorGoal, 0.5, ease.Linear))
		f.log.Info().Int("score", score).Msg("goal reached")
	}
}

// flash briefly lights the accepted cell.
func (f *feedback) flash(cell cupcake.Point) {
	n := centeredRect("flash", flashSize, flashSize, scene.ColorWhite.WithAlpha(0.7))
	n.SetPosition(cell.X, cell.Y)
	f.b.flashes.AddChild(n)
	f.tweens.Add(scene.TweenAlpha(n, 0, 0.5, ease.Linear)).Then(n.Dispose)
}

// floatPoints shows "+N" above the cell, rising and fading out.
func (f *feedback) floatPoints(cell cupcake.Point, points int) {
	wx, wy, ok := f.b.grid.ToWorld(cell.X, cell.Y)
	if !ok {
		return
	}
	n := scene.NewText("points", fmt.Sprintf("+%d", points), f.font)
	n.Color = colorPoints
	n.Text.OutlineWidth = 4
	n.Text.OutlineColor = colorBlack
	n.SetPosition(wx, wy-30)
	f.b.effects.AddChild(n)
	f.tweens.Add(scene.TweenPosition(n, wx, wy-80, 1, ease.OutQuad))
	f.tweens.Add(scene.TweenAlpha(n, 0, 1, ease.Linear)).Then(n.Dispose)
}

// tryAgain flashes the red overlay and shows the caption for a moment.
func (f *feedback) tryAgain() {
	red := f.b.redFill
	f.tweens.Stop(red)
	red.SetVisible(true)
	red.SetAlpha(0.7)
	f.tweens.Add(scene.TweenAlpha(red, 0, 0.8, ease.InOutQuad)).Then(func() {
		red.SetVisible(false)
	})

	fb := f.showCaption(textTryAgain)
	f.tweens.Add(scene.TweenScale(fb, 1.2, 1.2, 0.3, ease.OutQuad)).Then(func() {
		f.tweens.Add(scene.TweenScale(fb, 1, 1, 0.3, ease.InQuad))
	})
	f.fade = f.seq.After(1, func() {
		f.fade = nil
		f.tweens.Add(scene.TweenAlpha(fb, 0, 0.5, ease.Linear)).Then(f.hideCaption)
	})
}

// wellDone pops the completion caption.
func (f *feedback) wellDone() {
	f.tweens.Stop(f.b.redFill)
	f.b.redFill.SetVisible(false)

	fb := f.showCaption(textWellDone)
	fb.SetScale(0.5, 0.5)
	f.tweens.Add(scene.TweenScale(fb, 1, 1, 0.5, ease.OutBack))
}

// showCaption replaces whatever the caption is doing with text at full
// opacity.
func (f *feedback) showCaption(text string) *scene.Node {
	f.cancelFade()
	fb := f.b.feedback
	f.tweens.Stop(fb)
	fb.SetText(text)
	fb.SetScale(1, 1)
	fb.SetAlpha(1)
	fb.SetVisible(true)
	return fb
}

func (f *feedback) hideCaption() {
	fb := f.b.feedback
	f.tweens.Stop(fb)
	fb.SetVisible(false)
	fb.SetAlpha(1)
	fb.SetScale(1, 1)
}

func (f *feedback) cancelFade() {
	if f.fade != nil {
		f.fade.Cancel()
		f.fade = nil
	}
}
