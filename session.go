package cupcake

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/tanema/gween/ease"
)

// Gameplay defaults.
const (
	DefaultBaselineScore = 60
	DefaultPointValue    = 10
)

// Z-order used for pieces at rest and while dragged.
const (
	pieceRestZ = 10
	pieceDragZ = 100
)

// Drag scale used while a piece is held.
const pieceDragScale = 1.1

// Phase is the session lifecycle.
type Phase uint8

const (
	PhasePlaying   Phase = iota // pieces may be dragged
	PhaseCompleted              // every cell filled; terminal for the session
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Timing holds animation durations in seconds.
type Timing struct {
	DragScale   float32 // pickup and drop scale tween
	Snap        float32 // accepted piece gliding into its cell
	Return      float32 // rejected piece returning to its origin
	ResetReturn float32 // placed pieces returning home after a reset
	// CompletionDelay runs from the last acceptance to the result transition.
	CompletionDelay float32
}

// DefaultTiming returns the stock animation timings.
func DefaultTiming() Timing {
	return Timing{
		DragScale:       0.2,
		Snap:            0.2,
		Return:          0.3,
		ResetReturn:     0.5,
		CompletionDelay: 2.0,
	}
}

// Options configures a Session. Zero values select defaults; nil
// collaborators are replaced with no-ops.
type Options struct {
	// Cells defaults to DefaultCells.
	Cells []Cell
	// Origins are the world-space resting positions of the pieces, in the
	// same order as Cells. Piece i gets the id of cell i.
	Origins []Point

	PointValue    int
	BaselineScore int
	Tolerance     float64
	Timing        Timing

	Renderer  Renderer
	Audio     AudioCues
	Result    ResultTransition
	Transform CoordinateTransform
	Events    EventSink
	Logger    *zerolog.Logger
}

// Session is the controller for one puzzle: it owns the grid, the pieces,
// the score and the completion state, and drives every core animation.
type Session struct {
	opts      Options
	grid      *Grid
	pieces    []*Piece
	placement Placement
	timing    Timing
	seq       Sequencer
	tutorial  *Tutorial

	score      int
	phase      Phase
	dragging   *Piece // nil when no drag is active
	triggered  bool
	unlocked   bool

	renderer  Renderer
	audio     AudioCues
	result    ResultTransition
	transform CoordinateTransform
	events    EventSink
	log       zerolog.Logger
}

// NewSession builds a session and starts it: pieces rest at their origins,
// the score is at baseline and the tutorial hint is running.
func NewSession(opts Options) (*Session, error) {
	if opts.Cells == nil {
		opts.Cells = DefaultCells()
	}
	if len(opts.Origins) != len(opts.Cells) {
		return nil, fmt.Errorf("new session: %d origins for %d cells: %w",
			len(opts.Origins), len(opts.Cells), ErrPieceCount)
	}
	if opts.PointValue == 0 {
		opts.PointValue = DefaultPointValue
	}
	if opts.BaselineScore == 0 {
		opts.BaselineScore = DefaultBaselineScore
	}
	if opts.Tolerance == 0 {
		opts.Tolerance = DefaultTolerance
	}
	if opts.Timing == (Timing{}) {
		opts.Timing = DefaultTiming()
	}

	grid, err := NewGrid(opts.Cells)
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}

	s := &Session{
		opts:      opts,
		grid:      grid,
		placement: Placement{Tolerance: opts.Tolerance},
		timing:    opts.Timing,
		renderer:  opts.Renderer,
		audio:     opts.Audio,
		result:    opts.Result,
		transform: opts.Transform,
		events:    opts.Events,
	}
	if s.renderer == nil {
		s.renderer = nopRenderer{}
	}
	if s.audio == nil {
		s.audio = &nopAudio{}
	}
	if s.result == nil {
		s.result = ResultTransitionFunc(func() {})
	}
	if s.events == nil {
		s.events = nopSink{}
	}
	if opts.Logger != nil {
		s.log = opts.Logger.With().Str("component", "session").Logger()
	} else {
		s.log = zerolog.Nop()
	}

	s.pieces = make([]*Piece, len(opts.Cells))
	for i, c := range opts.Cells {
		s.pieces[i] = NewPiece(c.ID, opts.PointValue, opts.Origins[i])
	}
	s.start()
	return s, nil
}

// start puts every piece at rest and begins a fresh session.
func (s *Session) start() {
	s.seq.Clear()
	s.grid.ClearAll()
	s.score = s.opts.BaselineScore
	s.phase = PhasePlaying
	s.dragging = nil
	s.triggered = false

	for _, p := range s.pieces {
		p.stopMotion()
		p.stopScale()
		p.reset()
		p.pos = p.Origin
		e := PieceEntity(p.ID)
		s.renderer.SetPosition(e, p.pos.X, p.pos.Y)
		s.renderer.SetScale(e, 1)
		s.renderer.SetZIndex(e, pieceRestZ)
		s.renderer.SetVisible(e, true)
	}
	s.tutorial = s.startTutorial()

	s.emit(Event{Kind: EventSessionStarted, Score: s.score})
	s.emit(Event{Kind: EventScoreChanged, Score: s.score})
	s.log.Info().Int("score", s.score).Int("pieces", len(s.pieces)).Msg("session started")
}

// startTutorial points the hint from the first piece to its cell.
func (s *Session) startTutorial() *Tutorial {
	if len(s.pieces) == 0 || s.transform == nil {
		return cancelledTutorial(s.renderer)
	}
	first := s.pieces[0]
	cell, ok := s.grid.CellFor(first.ID)
	if !ok {
		return cancelledTutorial(s.renderer)
	}
	target, ok := s.transform.ToWorld(cell.Pos())
	if !ok {
		s.log.Warn().Msg("tutorial target unavailable, hint disabled")
		return cancelledTutorial(s.renderer)
	}
	return newTutorial(&s.seq, s.renderer, first.Origin.Add(hintGrip), target)
}

// Restart discards the current session, finished or not, and starts a new
// one with the same collaborators.
func (s *Session) Restart() {
	s.log.Info().Str("phase", s.phase.String()).Msg("session restart")
	s.start()
}

// Update advances all core animations by dt seconds.
func (s *Session) Update(dt float32) {
	s.seq.Update(dt)
}

// Interact records a user interaction. The first one unlocks audio; later
// calls do nothing.
func (s *Session) Interact() {
	if s.unlocked {
		return
	}
	s.unlocked = true
	s.log.Debug().Msg("audio unlocked by first interaction")
	s.audio.Unlock()
}

// AudioUnlocked reports whether Interact has unlocked audio.
func (s *Session) AudioUnlocked() bool { return s.unlocked }

// ToggleMute forwards to the audio cues and reports whether audio is now muted.
func (s *Session) ToggleMute() bool {
	muted := s.audio.ToggleMute()
	s.log.Debug().Bool("muted", muted).Msg("mute toggled")
	return muted
}

// BeginDrag picks up the piece with the given id at the world-space pointer
// position. It is a no-op returning false unless the session is playing, no
// other drag is active and the piece is idle.
func (s *Session) BeginDrag(pieceID int, pointer Point) bool {
	if s.phase != PhasePlaying || s.dragging != nil {
		return false
	}
	p := s.Piece(pieceID)
	if p == nil || !p.beginDrag(pointer) {
		return false
	}
	s.dragging = p
	s.tutorial.Cancel()

	e := PieceEntity(p.ID)
	s.renderer.SetZIndex(e, pieceDragZ)
	s.tweenScale(p, pieceDragScale)
	s.audio.PlayPlace()

	s.emit(Event{Kind: EventDragStarted, PieceID: p.ID, Score: s.score})
	s.log.Debug().Int("piece", p.ID).Float64("x", pointer.X).Float64("y", pointer.Y).Msg("drag started")
	return true
}

// UpdateDrag moves the dragged piece so it keeps its grip on the pointer.
func (s *Session) UpdateDrag(pieceID int, pointer Point) bool {
	p := s.dragging
	if p == nil || p.ID != pieceID || !p.updateDrag(pointer) {
		return false
	}
	s.renderer.SetPosition(PieceEntity(p.ID), p.pos.X, p.pos.Y)
	return true
}

// EndDrag releases the dragged piece at the world-space pointer position and
// applies the verdict. The second result is false when no drag of this piece
// was active.
func (s *Session) EndDrag(pieceID int, pointer Point) (Verdict, bool) {
	p := s.dragging
	if p == nil || p.ID != pieceID || !p.release() {
		return Verdict{}, false
	}
	s.dragging = nil

	s.renderer.SetZIndex(PieceEntity(p.ID), pieceRestZ)
	s.tweenScale(p, 1)

	v := s.placement.EvaluateGlobal(p, s.grid, s.transform, pointer)
	s.onDragEnd(p, v)
	return v, true
}

// onDragEnd applies a verdict for a released piece.
func (s *Session) onDragEnd(p *Piece, v Verdict) {
	if v.Accepted {
		if err := s.grid.MarkFilled(v.CellID); err != nil {
			var filled *AlreadyFilledError
			if errors.As(err, &filled) {
				v = reject(RejectOccupied)
			} else {
				v = reject(RejectUnknownCell)
			}
			s.log.Error().Err(err).Int("piece", p.ID).Msg("accepted verdict could not fill cell")
			s.rejectDrop(p, v)
			return
		}
		s.acceptDrop(p, v)
		return
	}
	s.rejectDrop(p, v)
}

func (s *Session) acceptDrop(p *Piece, v Verdict) {
	cell, _ := s.grid.CellFor(v.CellID)
	p.place()
	s.score += p.PointValue

	if target, ok := s.cellWorld(cell); ok {
		s.moveTo(p, target, s.timing.Snap, ease.OutQuad)
	}
	s.audio.PlayPlace()

	s.log.Info().Int("piece", p.ID).Int("cell", cell.ID).Int("score", s.score).Msg("piece accepted")
	s.emit(Event{Kind: EventPieceAccepted, PieceID: p.ID, CellID: cell.ID, Cell: cell.Pos(), Points: p.PointValue, Score: s.score})
	s.emit(Event{Kind: EventScoreChanged, Score: s.score})

	if s.grid.IsComplete() {
		s.completeSession()
	}
}

func (s *Session) rejectDrop(p *Piece, v Verdict) {
	s.moveTo(p, p.Origin, s.timing.Return, ease.OutBack)
	s.audio.PlayFail()

	s.log.Info().Int("piece", p.ID).Str("reason", v.Reason.String()).Msg("placement rejected")
	s.emit(Event{Kind: EventPlacementRejected, PieceID: p.ID, Reason: v.Reason, Score: s.score})
	s.resetPuzzle()
}

// resetPuzzle discards every placement. The state change is immediate; the
// placed pieces animate home afterwards.
func (s *Session) resetPuzzle() {
	discarded := 0
	for _, q := range s.pieces {
		if !q.Placed() {
			continue
		}
		q.reset()
		s.moveTo(q, q.Origin, s.timing.ResetReturn, ease.OutBack)
		discarded++
	}
	s.grid.ClearAll()
	s.score = s.opts.BaselineScore

	s.log.Info().Int("discarded", discarded).Msg("puzzle reset")
	s.emit(Event{Kind: EventPuzzleReset, Score: s.score})
	s.emit(Event{Kind: EventScoreChanged, Score: s.score})
}

// completeSession ends the session once; repeated calls do nothing.
func (s *Session) completeSession() {
	if s.phase == PhaseCompleted {
		return
	}
	s.phase = PhaseCompleted
	s.dragging = nil
	s.tutorial.Cancel()
	s.audio.PlaySuccess()

	s.log.Info().Int("score", s.score).Msg("session completed")
	s.emit(Event{Kind: EventSessionCompleted, Score: s.score})

	s.seq.After(s.timing.CompletionDelay, func() {
		if s.triggered {
			return
		}
		s.triggered = true
		s.log.Debug().Msg("result transition")
		s.result.Trigger()
	})
}

// moveTo glides p to target over d seconds, replacing any running move.
func (s *Session) moveTo(p *Piece, target Point, d float32, fn ease.TweenFunc) {
	p.stopMotion()
	from := p.pos
	e := PieceEntity(p.ID)
	p.motion = s.seq.Run(Step{
		Duration: d,
		Ease:     fn,
		Apply: func(k float64) {
			p.pos = lerpPoint(from, target, k)
			s.renderer.SetPosition(e, p.pos.X, p.pos.Y)
		},
		Then: func() { p.motion = nil },
	})
}

// tweenScale animates the rendered scale of p; the scale has no gameplay
// meaning.
func (s *Session) tweenScale(p *Piece, to float64) {
	from := 1.0
	if to == 1 {
		from = pieceDragScale
	}
	p.stopScale()
	e := PieceEntity(p.ID)
	p.scale = s.seq.Run(Step{
		Duration: s.timing.DragScale,
		Apply:    func(k float64) { s.renderer.SetScale(e, from+(to-from)*k) },
		Then:     func() { p.scale = nil },
	})
}

func (s *Session) cellWorld(c Cell) (Point, bool) {
	if s.transform == nil {
		return Point{}, false
	}
	return s.transform.ToWorld(c.Pos())
}

func (s *Session) emit(e Event) {
	s.events.EmitEvent(e)
}

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Phase returns the session phase.
func (s *Session) Phase() Phase { return s.phase }

// Completed reports whether every cell has been filled.
func (s *Session) Completed() bool { return s.phase == PhaseCompleted }

// ActiveDrag returns the id of the piece being dragged and whether there is one.
func (s *Session) ActiveDrag() (int, bool) {
	if s.dragging == nil {
		return 0, false
	}
	return s.dragging.ID, true
}

// Grid returns a snapshot of the session's grid. Changes to the snapshot do
// not reach the session.
func (s *Session) Grid() *Grid { return s.grid.clone() }

// Pieces returns the pieces in cell order. The slice must not be mutated.
func (s *Session) Pieces() []*Piece { return s.pieces }

// Piece returns the piece with the given id, or nil.
func (s *Session) Piece(id int) *Piece {
	for _, p := range s.pieces {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Tutorial returns the tutorial hint director for the current session.
func (s *Session) Tutorial() *Tutorial { return s.tutorial }

// BaselineScore returns the score a session starts and resets to.
func (s *Session) BaselineScore() int { return s.opts.BaselineScore }
