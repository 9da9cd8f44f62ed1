package cupcake

// EventKind identifies a session event.
type EventKind uint8

const (
	EventSessionStarted    EventKind = iota // a fresh session began
	EventDragStarted                        // a piece was picked up
	EventPieceAccepted                      // a piece was accepted into its cell
	EventPlacementRejected                  // a drop was rejected
	EventPuzzleReset                        // all placements were discarded
	EventScoreChanged                       // the score changed
	EventSessionCompleted                   // every cell is filled
)

func (k EventKind) String() string {
	switch k {
	case EventSessionStarted:
		return "session_started"
	case EventDragStarted:
		return "drag_started"
	case EventPieceAccepted:
		return "piece_accepted"
	case EventPlacementRejected:
		return "placement_rejected"
	case EventPuzzleReset:
		return "puzzle_reset"
	case EventScoreChanged:
		return "score_changed"
	case EventSessionCompleted:
		return "session_completed"
	default:
		return "unknown"
	}
}

// Event carries what happened in a session. Fields that do not apply to the
// event kind are zero.
type Event struct {
	Kind    EventKind
	PieceID int
	CellID  int
	// Cell is the grid-local position of CellID (EventPieceAccepted).
	Cell   Point
	Points int
	Score  int
	Reason RejectReason
}

// EventSink receives session events in the order they happen.
type EventSink interface {
	EmitEvent(event Event)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(Event)

// EmitEvent calls f.
func (f EventSinkFunc) EmitEvent(e Event) { f(e) }
