package cupcake

import "github.com/tanema/gween/ease"

// TutorialState is the lifecycle of the tutorial hint.
type TutorialState uint8

const (
	TutorialActive    TutorialState = iota // hint loop is running
	TutorialCancelled                      // the player has started dragging
)

// Hint animation constants.
const (
	hintRestScale  = 0.7
	hintPressScale = 0.8
)

// hintGrip offsets the hint from the piece anchor so the indicator sits over
// the piece rather than on its pivot.
var hintGrip = Point{X: 30, Y: 30}

// Tutorial is the looping hint that demonstrates the first move. It owns no
// gameplay state; its only transition is Active → Cancelled.
type Tutorial struct {
	state    TutorialState
	renderer Renderer
	seq      *Sequence
	pos      Point
	scale    float64
}

// newTutorial starts the hint loop moving between from and to (world space).
func newTutorial(seqr *Sequencer, r Renderer, from, to Point) *Tutorial {
	t := &Tutorial{renderer: r, pos: from, scale: hintRestScale}
	r.SetPosition(HintEntity, from.X, from.Y)
	r.SetScale(HintEntity, hintRestScale)
	r.SetVisible(HintEntity, true)

	t.seq = seqr.Run(
		Wait(0.5),
		Step{Duration: 0.2, Apply: t.scaleBetween(hintRestScale, hintPressScale)},
		Step{Duration: 1.5, Ease: ease.InOutQuad, Apply: t.moveBetween(from, to)},
		Step{Duration: 0.2, Apply: t.scaleBetween(hintPressScale, hintRestScale)},
		Wait(0.8),
		Step{Duration: 1.0, Ease: ease.InOutQuad, Apply: t.moveBetween(to, from)},
		Wait(0.8),
	).Loop()
	return t
}

// cancelledTutorial returns a tutorial that never shows, used when the hint
// path cannot be computed.
func cancelledTutorial(r Renderer) *Tutorial {
	r.SetVisible(HintEntity, false)
	return &Tutorial{state: TutorialCancelled, renderer: r, scale: hintRestScale}
}

func (t *Tutorial) moveBetween(a, b Point) func(float64) {
	return func(k float64) {
		t.pos = lerpPoint(a, b, k)
		t.renderer.SetPosition(HintEntity, t.pos.X, t.pos.Y)
	}
}

func (t *Tutorial) scaleBetween(a, b float64) func(float64) {
	return func(k float64) {
		t.scale = a + (b-a)*k
		t.renderer.SetScale(HintEntity, t.scale)
	}
}

// State returns the tutorial state.
func (t *Tutorial) State() TutorialState { return t.state }

// Active reports whether the hint loop is still running.
func (t *Tutorial) Active() bool { return t.state == TutorialActive }

// Position returns the hint's current world position.
func (t *Tutorial) Position() Point { return t.pos }

// Scale returns the hint's current scale.
func (t *Tutorial) Scale() float64 { return t.scale }

// Cancel stops the hint and hides it. Calling it again does nothing.
func (t *Tutorial) Cancel() {
	if t.state == TutorialCancelled {
		return
	}
	t.state = TutorialCancelled
	if t.seq != nil {
		t.seq.Cancel()
		t.seq = nil
	}
	t.renderer.SetVisible(HintEntity, false)
}
