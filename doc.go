// Package cupcake is the placement state machine behind the cupcake IQ
// puzzle: six pieces, six fixed cells, one drag at a time.
//
// The package owns no graphics. A [Session] holds the [Grid], the [Piece]
// set, the score and the completion flag, and talks to the outside world only
// through small collaborator interfaces:
//
//   - [Renderer] receives position, visibility, scale, alpha and z-order
//     mutations for pieces and the tutorial hint.
//   - [AudioCues] plays fire-and-forget sound cues.
//   - [ResultTransition] is triggered once when the puzzle is solved.
//   - [CoordinateTransform] maps pointer (world) coordinates into the grid's
//     local space and back.
//   - [EventSink] receives a stream of [Event] values for presentation
//     feedback.
//
// # Drag lifecycle
//
// Pointer input is routed to [Session.BeginDrag], [Session.UpdateDrag] and
// [Session.EndDrag]. Calls that are not valid for the current state are
// silent no-ops that return false:
//
//	if s.BeginDrag(3, cupcake.Point{X: 120, Y: 300}) {
//		s.UpdateDrag(3, cupcake.Point{X: 200, Y: 420})
//		verdict, _ := s.EndDrag(3, cupcake.Point{X: 410, Y: 690})
//		_ = verdict
//	}
//
// A release is judged by [Placement.Evaluate]: a piece is only ever accepted
// into the cell that shares its id, within a per-axis tolerance box. Any
// rejection resets the whole puzzle back to the baseline score.
//
// # Time
//
// Every animation the core drives runs on a [Sequencer]. Call
// [Session.Update] once per tick with the frame delta in seconds.
package cupcake
