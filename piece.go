package cupcake

// PieceState is the drag lifecycle state of a piece.
type PieceState uint8

const (
	PieceIdle     PieceState = iota // resting, may be picked up
	PieceDragging                   // following the pointer
	PiecePlaced                     // accepted into its cell until the next reset
)

func (s PieceState) String() string {
	switch s {
	case PieceIdle:
		return "idle"
	case PieceDragging:
		return "dragging"
	case PiecePlaced:
		return "placed"
	default:
		return "unknown"
	}
}

// Piece is a draggable element permanently paired with the cell of the same
// id. Position is in world space.
type Piece struct {
	ID         int
	PointValue int
	Origin     Point

	pos        Point
	state      PieceState
	dragOffset Point

	// motion is the running move animation (snap, return), scale the running
	// pickup/drop scale animation. Either may be nil.
	motion *Sequence
	scale  *Sequence
}

// NewPiece creates an idle piece resting at origin.
func NewPiece(id, pointValue int, origin Point) *Piece {
	return &Piece{ID: id, PointValue: pointValue, Origin: origin, pos: origin}
}

// Position returns the piece's current world position.
func (p *Piece) Position() Point { return p.pos }

// State returns the lifecycle state.
func (p *Piece) State() PieceState { return p.state }

// Placed reports whether the piece has been accepted into its cell.
func (p *Piece) Placed() bool { return p.state == PiecePlaced }

// Dragging reports whether the piece is following the pointer.
func (p *Piece) Dragging() bool { return p.state == PieceDragging }

// DragOffset returns the offset between the piece anchor and the pointer
// captured when the drag began.
func (p *Piece) DragOffset() Point { return p.dragOffset }

// beginDrag moves Idle → Dragging and captures the pointer offset so the
// piece keeps its grip point instead of snapping its anchor to the pointer.
func (p *Piece) beginDrag(pointer Point) bool {
	if p.state != PieceIdle {
		return false
	}
	p.stopMotion()
	p.dragOffset = p.pos.Sub(pointer)
	p.state = PieceDragging
	return true
}

func (p *Piece) updateDrag(pointer Point) bool {
	if p.state != PieceDragging {
		return false
	}
	p.pos = pointer.Add(p.dragOffset)
	return true
}

// release leaves Dragging. The piece is Idle until the verdict places it.
func (p *Piece) release() bool {
	if p.state != PieceDragging {
		return false
	}
	p.state = PieceIdle
	p.dragOffset = Point{}
	return true
}

func (p *Piece) place() {
	p.state = PiecePlaced
}

// reset returns a placed piece to Idle. The caller animates it home.
func (p *Piece) reset() {
	p.state = PieceIdle
	p.dragOffset = Point{}
}

func (p *Piece) stopMotion() {
	if p.motion != nil {
		p.motion.Cancel()
		p.motion = nil
	}
}

func (p *Piece) stopScale() {
	if p.scale != nil {
		p.scale.Cancel()
		p.scale = nil
	}
}
