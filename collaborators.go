package cupcake

// EntityKind identifies what a Renderer entity refers to.
type EntityKind uint8

const (
	EntityPiece EntityKind = iota // a puzzle piece; ID is the piece id
	EntityHint                    // the tutorial hint indicator
)

// Entity names something the core asks the renderer to move or restyle.
type Entity struct {
	Kind EntityKind
	ID   int
}

// PieceEntity returns the entity for the piece with the given id.
func PieceEntity(id int) Entity { return Entity{Kind: EntityPiece, ID: id} }

// HintEntity is the tutorial hint indicator.
var HintEntity = Entity{Kind: EntityHint}

// Renderer receives visual mutations. Positions are world space.
type Renderer interface {
	SetPosition(e Entity, x, y float64)
	SetVisible(e Entity, visible bool)
	SetScale(e Entity, scale float64)
	SetAlpha(e Entity, alpha float64)
	SetZIndex(e Entity, z int)
}

// AudioCues plays sound cues. Implementations must never panic or block;
// failures are handled and logged on their side.
type AudioCues interface {
	PlayPlace()
	PlaySuccess()
	PlayFail()
	// ToggleMute flips the mute state and reports whether audio is now muted.
	ToggleMute() bool
	// Unlock enables playback after the first user interaction.
	Unlock()
}

// ResultTransition switches to the result screen.
type ResultTransition interface {
	Trigger()
}

// ResultTransitionFunc adapts a function to ResultTransition.
type ResultTransitionFunc func()

// Trigger calls f.
func (f ResultTransitionFunc) Trigger() { f() }

type nopRenderer struct{}

func (nopRenderer) SetPosition(Entity, float64, float64) {}
func (nopRenderer) SetVisible(Entity, bool)              {}
func (nopRenderer) SetScale(Entity, float64)             {}
func (nopRenderer) SetAlpha(Entity, float64)             {}
func (nopRenderer) SetZIndex(Entity, int)                {}

type nopAudio struct{ muted bool }

func (nopAudio) PlayPlace()   {}
func (nopAudio) PlaySuccess() {}
func (nopAudio) PlayFail()    {}
func (nopAudio) Unlock()      {}

func (a *nopAudio) ToggleMute() bool {
	a.muted = !a.muted
	return a.muted
}

type nopSink struct{}

func (nopSink) EmitEvent(Event) {}
