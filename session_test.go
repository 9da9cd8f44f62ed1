package cupcake

import (
	"errors"
	"math"
	"testing"
)

// --- fakes ---

type fakeRenderer struct {
	pos     map[Entity]Point
	visible map[Entity]bool
	scale   map[Entity]float64
	z       map[Entity]int
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{
		pos:     map[Entity]Point{},
		visible: map[Entity]bool{},
		scale:   map[Entity]float64{},
		z:       map[Entity]int{},
	}
}

func (r *fakeRenderer) SetPosition(e Entity, x, y float64) { r.pos[e] = Point{x, y} }
func (r *fakeRenderer) SetVisible(e Entity, v bool)        { r.visible[e] = v }
func (r *fakeRenderer) SetScale(e Entity, s float64)       { r.scale[e] = s }
func (r *fakeRenderer) SetAlpha(Entity, float64)           {}
func (r *fakeRenderer) SetZIndex(e Entity, z int)          { r.z[e] = z }

type fakeAudio struct {
	place, success, fail, unlock int
	muted                        bool
	musicPlaying                 bool
}

func (a *fakeAudio) PlayPlace()   { a.place++ }
func (a *fakeAudio) PlaySuccess() { a.success++ }
func (a *fakeAudio) PlayFail()    { a.fail++ }

func (a *fakeAudio) Unlock() {
	a.unlock++
	a.musicPlaying = true
}

func (a *fakeAudio) ToggleMute() bool {
	a.muted = !a.muted
	a.musicPlaying = !a.muted
	return a.muted
}

type countingResult struct{ n int }

func (c *countingResult) Trigger() { c.n++ }

type recorder struct{ events []Event }

func (r *recorder) EmitEvent(e Event) { r.events = append(r.events, e) }

func (r *recorder) kinds() []EventKind {
	out := make([]EventKind, len(r.events))
	for i, e := range r.events {
		out[i] = e.Kind
	}
	return out
}

// --- harness ---

var gridOrigin = Point{360, 640}

type harness struct {
	s      *Session
	r      *fakeRenderer
	audio  *fakeAudio
	result *countingResult
	events *recorder
}

func testOrigins() []Point {
	return []Point{
		{120, 256}, {120, 1024}, {600, 256},
		{103, 640}, {617, 640}, {600, 1024},
	}
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		r:      newFakeRenderer(),
		audio:  &fakeAudio{},
		result: &countingResult{},
		events: &recorder{},
	}
	s, err := NewSession(Options{
		Origins:   testOrigins(),
		Renderer:  h.r,
		Audio:     h.audio,
		Result:    h.result,
		Transform: offsetTransform{origin: gridOrigin},
		Events:    h.events,
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	h.s = s
	return h
}

// cellWorld returns the world position of the cell paired with piece id.
func (h *harness) cellWorld(id int) Point {
	c, _ := h.s.Grid().CellFor(id)
	return c.Pos().Add(gridOrigin)
}

// drop drags piece id from its current position and releases at world.
func (h *harness) drop(id int, world Point) Verdict {
	p := h.s.Piece(id)
	start := p.Position()
	if !h.s.BeginDrag(id, start) {
		return Verdict{Reason: 255}
	}
	h.s.UpdateDrag(id, world)
	v, _ := h.s.EndDrag(id, world)
	return v
}

// run advances the session by secs in 60 TPS ticks.
func (h *harness) run(secs float64) {
	for i := 0; i < int(secs*60)+1; i++ {
		h.s.Update(1.0 / 60)
	}
}

func (h *harness) placedCount() int {
	n := 0
	for _, p := range h.s.Pieces() {
		if p.Placed() {
			n++
		}
	}
	return n
}

func (h *harness) checkInvariant(t *testing.T) {
	t.Helper()
	if got, want := h.s.Grid().FilledCount(), h.placedCount(); got != want {
		t.Fatalf("filled cells = %d, placed pieces = %d", got, want)
	}
}

func near(a, b Point) bool {
	return math.Abs(a.X-b.X) < 1e-6 && math.Abs(a.Y-b.Y) < 1e-6
}

// --- tests ---

func TestNewSessionDefaults(t *testing.T) {
	h := newHarness(t)
	if h.s.Score() != 60 {
		t.Errorf("Score = %d, want 60", h.s.Score())
	}
	if h.s.Phase() != PhasePlaying {
		t.Errorf("Phase = %v", h.s.Phase())
	}
	if len(h.s.Pieces()) != 6 {
		t.Fatalf("pieces = %d", len(h.s.Pieces()))
	}
	for i, p := range h.s.Pieces() {
		if p.ID != i+1 || p.PointValue != 10 || p.State() != PieceIdle {
			t.Errorf("piece %d = %+v", i, p)
		}
		if h.r.pos[PieceEntity(p.ID)] != p.Origin {
			t.Errorf("piece %d rendered at %v, want %v", p.ID, h.r.pos[PieceEntity(p.ID)], p.Origin)
		}
	}
	if !h.s.Tutorial().Active() {
		t.Error("tutorial should be active at session start")
	}
}

func TestNewSessionPieceCount(t *testing.T) {
	_, err := NewSession(Options{Origins: testOrigins()[:3]})
	if !errors.Is(err, ErrPieceCount) {
		t.Errorf("err = %v, want ErrPieceCount", err)
	}
}

func TestScenarioA_AcceptAtExactCell(t *testing.T) {
	h := newHarness(t)
	v := h.drop(1, h.cellWorld(1))
	if !v.Accepted || v.CellID != 1 {
		t.Fatalf("verdict = %+v", v)
	}
	if h.s.Score() != 70 {
		t.Errorf("Score = %d, want 70", h.s.Score())
	}
	if h.s.Grid().IsComplete() {
		t.Error("grid should not be complete")
	}
	if !h.s.Piece(1).Placed() {
		t.Error("piece 1 should be placed")
	}
	h.checkInvariant(t)

	h.run(0.5)
	if !near(h.s.Piece(1).Position(), h.cellWorld(1)) {
		t.Errorf("piece 1 at %v, want snapped to %v", h.s.Piece(1).Position(), h.cellWorld(1))
	}
}

func TestScenarioB_RejectResetsEverything(t *testing.T) {
	h := newHarness(t)
	if v := h.drop(1, h.cellWorld(1)); !v.Accepted {
		t.Fatalf("piece 1 rejected: %+v", v)
	}
	h.run(0.5)

	off := h.cellWorld(2).Add(Point{80, 0})
	v := h.drop(2, off)
	if v.Accepted || v.Reason != RejectOutOfRange {
		t.Fatalf("verdict = %+v, want out_of_range", v)
	}

	h.run(1)
	if !near(h.s.Piece(1).Position(), h.s.Piece(1).Origin) {
		t.Errorf("piece 1 at %v, want origin %v", h.s.Piece(1).Position(), h.s.Piece(1).Origin)
	}
	if !near(h.s.Piece(2).Position(), h.s.Piece(2).Origin) {
		t.Errorf("piece 2 at %v, want origin", h.s.Piece(2).Position())
	}
	if h.s.Score() != 60 {
		t.Errorf("Score = %d, want 60", h.s.Score())
	}
	if h.s.Grid().FilledCount() != 0 {
		t.Errorf("filled = %d, want 0", h.s.Grid().FilledCount())
	}
	if h.audio.fail != 1 {
		t.Errorf("fail cues = %d, want 1", h.audio.fail)
	}
}

func TestResetLawHoldsImmediately(t *testing.T) {
	for placed := 0; placed <= 5; placed++ {
		h := newHarness(t)
		for id := 1; id <= placed; id++ {
			if v := h.drop(id, h.cellWorld(id)); !v.Accepted {
				t.Fatalf("piece %d rejected", id)
			}
		}
		miss := placed + 1
		h.drop(miss, h.cellWorld(miss).Add(Point{0, 51}))

		if h.s.Score() != 60 {
			t.Errorf("placed=%d: Score = %d", placed, h.s.Score())
		}
		for _, c := range h.s.Grid().Cells() {
			if c.Filled {
				t.Errorf("placed=%d: cell %d still filled", placed, c.ID)
			}
		}
		for _, p := range h.s.Pieces() {
			if p.Placed() {
				t.Errorf("placed=%d: piece %d still placed", placed, p.ID)
			}
		}
	}
}

func TestScenarioC_CompleteInAnyOrder(t *testing.T) {
	h := newHarness(t)
	order := []int{4, 2, 6, 1, 5, 3}
	for i, id := range order {
		v := h.drop(id, h.cellWorld(id))
		if !v.Accepted {
			t.Fatalf("piece %d rejected: %+v", id, v)
		}
		h.checkInvariant(t)
		if want := 60 + 10*(i+1); h.s.Score() != want {
			t.Errorf("after %d placements Score = %d, want %d", i+1, h.s.Score(), want)
		}
		h.run(0.25)
	}

	if !h.s.Completed() {
		t.Fatal("session should be completed")
	}
	if h.result.n != 0 {
		t.Fatal("result triggered before the post-animation delay")
	}
	h.run(2.5)
	if h.result.n != 1 {
		t.Fatalf("result triggered %d times, want 1", h.result.n)
	}
	h.run(5)
	if h.result.n != 1 {
		t.Fatalf("result triggered %d times after idle, want 1", h.result.n)
	}
	if h.audio.success != 1 {
		t.Errorf("success cues = %d, want 1", h.audio.success)
	}
}

func TestCompleteSessionIdempotent(t *testing.T) {
	h := newHarness(t)
	for id := 1; id <= 6; id++ {
		h.drop(id, h.cellWorld(id))
	}
	score := h.s.Score()
	events := len(h.events.events)

	h.s.completeSession()
	h.s.completeSession()
	h.run(3)

	if h.s.Score() != score {
		t.Errorf("Score changed: %d -> %d", score, h.s.Score())
	}
	if h.result.n != 1 {
		t.Errorf("result triggered %d times", h.result.n)
	}
	if h.audio.success != 1 {
		t.Errorf("success cues = %d", h.audio.success)
	}
	if len(h.events.events) != events {
		t.Errorf("repeat completion emitted %d extra events", len(h.events.events)-events)
	}
}

func TestNoDragAfterCompletion(t *testing.T) {
	h := newHarness(t)
	for id := 1; id <= 6; id++ {
		h.drop(id, h.cellWorld(id))
	}
	for _, p := range h.s.Pieces() {
		if h.s.BeginDrag(p.ID, p.Position()) {
			t.Errorf("BeginDrag(%d) succeeded after completion", p.ID)
		}
	}
}

func TestScenarioD_SecondDragIsNoop(t *testing.T) {
	h := newHarness(t)
	p1 := h.s.Piece(1)
	if !h.s.BeginDrag(1, p1.Position()) {
		t.Fatal("first BeginDrag failed")
	}
	p2 := h.s.Piece(2)
	if h.s.BeginDrag(2, p2.Position()) {
		t.Fatal("second BeginDrag should be a no-op")
	}
	if p2.State() != PieceIdle {
		t.Errorf("piece 2 state = %v", p2.State())
	}
	if h.s.UpdateDrag(2, Point{0, 0}) {
		t.Error("UpdateDrag on the non-active piece should be a no-op")
	}
	if _, ok := h.s.EndDrag(2, Point{0, 0}); ok {
		t.Error("EndDrag on the non-active piece should be a no-op")
	}

	target := h.cellWorld(1)
	if !h.s.UpdateDrag(1, target) {
		t.Fatal("first drag was interrupted")
	}
	v, ok := h.s.EndDrag(1, target)
	if !ok || !v.Accepted {
		t.Errorf("first drag verdict = %+v, %v", v, ok)
	}
	if id, active := h.s.ActiveDrag(); active {
		t.Errorf("ActiveDrag = %d after EndDrag", id)
	}
}

func TestDragKeepsGripOffset(t *testing.T) {
	h := newHarness(t)
	p := h.s.Piece(3)
	grip := p.Position().Add(Point{12, -7})
	h.s.BeginDrag(3, grip)
	if p.DragOffset() != (Point{-12, 7}) {
		t.Errorf("DragOffset = %v", p.DragOffset())
	}
	h.s.UpdateDrag(3, Point{400, 500})
	if want := (Point{388, 507}); p.Position() != want {
		t.Errorf("Position = %v, want %v", p.Position(), want)
	}
	if h.r.pos[PieceEntity(3)] != p.Position() {
		t.Error("renderer not updated during drag")
	}
	if h.r.z[PieceEntity(3)] != pieceDragZ {
		t.Errorf("z = %d while dragging", h.r.z[PieceEntity(3)])
	}
}

func TestInvalidTransitionsAreSilent(t *testing.T) {
	h := newHarness(t)
	if h.s.UpdateDrag(1, Point{}) {
		t.Error("UpdateDrag while idle")
	}
	if _, ok := h.s.EndDrag(1, Point{}); ok {
		t.Error("EndDrag while idle")
	}
	if h.s.BeginDrag(99, Point{}) {
		t.Error("BeginDrag on unknown piece")
	}

	h.drop(1, h.cellWorld(1))
	if h.s.BeginDrag(1, h.cellWorld(1)) {
		t.Error("BeginDrag on a placed piece")
	}
	if h.s.Score() != 70 {
		t.Errorf("Score = %d", h.s.Score())
	}
}

func TestTransformUnavailableRejects(t *testing.T) {
	r := newFakeRenderer()
	s, err := NewSession(Options{Origins: testOrigins(), Renderer: r})
	if err != nil {
		t.Fatal(err)
	}
	s.BeginDrag(1, s.Piece(1).Position())
	v, ok := s.EndDrag(1, Point{340, 448})
	if !ok || v.Accepted || v.Reason != RejectTransformUnavailable {
		t.Errorf("verdict = %+v, %v", v, ok)
	}
	if s.Tutorial().Active() {
		t.Error("tutorial cannot run without a transform")
	}
}

func TestFirstDragCancelsTutorial(t *testing.T) {
	h := newHarness(t)
	h.run(1)
	if !h.r.visible[HintEntity] {
		t.Fatal("hint should be visible")
	}
	h.s.BeginDrag(2, h.s.Piece(2).Position())
	if h.s.Tutorial().State() != TutorialCancelled {
		t.Fatal("tutorial should be cancelled by the first drag")
	}
	if h.r.visible[HintEntity] {
		t.Error("hint should be hidden")
	}
	h.s.EndDrag(2, h.s.Piece(2).Origin)
	h.run(2)
	if h.s.Tutorial().Active() {
		t.Error("tutorial came back after a reset")
	}
}

func TestScenarioE_ToggleMute(t *testing.T) {
	h := newHarness(t)
	h.s.Interact()
	if !h.audio.musicPlaying {
		t.Fatal("music should play after unlock")
	}
	if !h.s.ToggleMute() {
		t.Fatal("first ToggleMute should report muted")
	}
	if h.audio.musicPlaying {
		t.Error("music should stop when muted")
	}
	if h.s.ToggleMute() {
		t.Fatal("second ToggleMute should report unmuted")
	}
	if !h.audio.musicPlaying {
		t.Error("music should resume when unmuted")
	}
}

func TestInteractUnlocksOnce(t *testing.T) {
	h := newHarness(t)
	if h.s.AudioUnlocked() {
		t.Fatal("audio unlocked before interaction")
	}
	h.s.Interact()
	h.s.Interact()
	h.s.Interact()
	if h.audio.unlock != 1 {
		t.Errorf("Unlock calls = %d, want 1", h.audio.unlock)
	}
}

func TestEventStream(t *testing.T) {
	h := newHarness(t)
	h.events.events = nil

	h.drop(1, h.cellWorld(1))
	h.drop(2, h.cellWorld(2).Add(Point{0, 200}))

	want := []EventKind{
		EventDragStarted, EventPieceAccepted, EventScoreChanged,
		EventDragStarted, EventPlacementRejected, EventPuzzleReset, EventScoreChanged,
	}
	got := h.events.kinds()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events[%d] = %v, want %v (all: %v)", i, got[i], want[i], got)
		}
	}
	acc := h.events.events[1]
	if acc.PieceID != 1 || acc.CellID != 1 || acc.Points != 10 || acc.Score != 70 {
		t.Errorf("accept event = %+v", acc)
	}
	if acc.Cell != (Point{-20, -192}) {
		t.Errorf("accept event cell = %v", acc.Cell)
	}
	if h.events.events[4].Reason != RejectOutOfRange {
		t.Errorf("reject reason = %v", h.events.events[4].Reason)
	}
	if h.events.events[6].Score != 60 {
		t.Errorf("reset score = %d", h.events.events[6].Score)
	}
}

func TestDragDuringReturnCancelsReturn(t *testing.T) {
	h := newHarness(t)
	h.drop(4, Point{0, 0})
	h.run(0.1) // mid-return

	p := h.s.Piece(4)
	mid := p.Position()
	if !h.s.BeginDrag(4, mid) {
		t.Fatal("BeginDrag during return animation failed")
	}
	h.run(1)
	if p.Position() != mid {
		t.Errorf("return animation kept moving the dragged piece: %v -> %v", mid, p.Position())
	}
}

func TestRestart(t *testing.T) {
	h := newHarness(t)
	for id := 1; id <= 6; id++ {
		h.drop(id, h.cellWorld(id))
	}
	h.run(3)
	if h.result.n != 1 {
		t.Fatal("expected result transition")
	}

	h.s.Restart()
	if h.s.Phase() != PhasePlaying || h.s.Score() != 60 {
		t.Errorf("after Restart phase=%v score=%d", h.s.Phase(), h.s.Score())
	}
	if h.placedCount() != 0 || h.s.Grid().FilledCount() != 0 {
		t.Error("Restart left placements behind")
	}
	for _, p := range h.s.Pieces() {
		if p.Position() != p.Origin {
			t.Errorf("piece %d at %v after Restart", p.ID, p.Position())
		}
	}
	if !h.s.Tutorial().Active() {
		t.Error("Restart should start a new tutorial")
	}
	if v := h.drop(1, h.cellWorld(1)); !v.Accepted {
		t.Error("cannot play after Restart")
	}
}

func TestScoreOnlyIncreasesDuringPlay(t *testing.T) {
	h := newHarness(t)
	prev := h.s.Score()
	for id := 1; id <= 6; id++ {
		h.drop(id, h.cellWorld(id))
		if h.s.Score() <= prev {
			t.Fatalf("score did not increase: %d -> %d", prev, h.s.Score())
		}
		prev = h.s.Score()
	}
	if prev != 120 {
		t.Errorf("final score = %d, want 120", prev)
	}
}

func TestDragGateHoldsForPieceZero(t *testing.T) {
	a := &fakeAudio{}
	s, err := NewSession(Options{
		Cells:     []Cell{{ID: 0}, {ID: 1, X: 200}},
		Origins:   []Point{{0, 500}, {200, 500}},
		Audio:     a,
		Transform: offsetTransform{},
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if !s.BeginDrag(0, Point{0, 500}) {
		t.Fatal("BeginDrag(0) failed")
	}
	if s.BeginDrag(1, Point{200, 500}) {
		t.Fatal("second piece picked up while piece 0 is dragging")
	}
	if s.Piece(1).State() != PieceIdle {
		t.Errorf("piece 1 state = %v", s.Piece(1).State())
	}
	if id, ok := s.ActiveDrag(); !ok || id != 0 {
		t.Errorf("ActiveDrag = %d, %v; want 0, true", id, ok)
	}
	if !s.UpdateDrag(0, Point{0, 0}) {
		t.Error("UpdateDrag(0) ignored")
	}
	v, ok := s.EndDrag(0, Point{0, 0})
	if !ok || !v.Accepted || v.CellID != 0 {
		t.Fatalf("EndDrag(0) = %+v, %v", v, ok)
	}
	if _, ok := s.ActiveDrag(); ok {
		t.Error("drag still active after EndDrag")
	}
	if s.Score() != 70 {
		t.Errorf("Score = %d, want 70", s.Score())
	}
}

func TestDropOnFilledCellResets(t *testing.T) {
	h := newHarness(t)
	if v := h.drop(1, h.cellWorld(1)); !v.Accepted {
		t.Fatalf("piece 1 verdict = %+v", v)
	}
	if err := h.s.grid.MarkFilled(2); err != nil {
		t.Fatal(err)
	}

	v := h.drop(2, h.cellWorld(2))
	if v.Accepted || v.Reason != RejectOccupied {
		t.Fatalf("verdict = %+v, want occupied", v)
	}
	if h.audio.fail != 1 {
		t.Errorf("fail cues = %d, want 1", h.audio.fail)
	}
	if h.s.Score() != 60 {
		t.Errorf("Score = %d, want 60", h.s.Score())
	}
	if n := h.s.Grid().FilledCount(); n != 0 {
		t.Errorf("filled = %d, want 0", n)
	}
	h.checkInvariant(t)
}

func TestAcceptedVerdictThatCannotFillRejects(t *testing.T) {
	tests := []struct {
		name   string
		piece  int
		cellID int
		want   RejectReason
	}{
		{"already filled", 3, 3, RejectOccupied},
		{"unknown cell", 4, 99, RejectUnknownCell},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			if tt.cellID == tt.piece {
				if err := h.s.grid.MarkFilled(tt.cellID); err != nil {
					t.Fatal(err)
				}
			}
			p := h.s.Piece(tt.piece)
			h.s.onDragEnd(p, accept(tt.cellID))

			if p.State() != PieceIdle {
				t.Errorf("piece state = %v, want idle", p.State())
			}
			if h.audio.fail != 1 || h.s.Score() != 60 || h.s.Grid().FilledCount() != 0 {
				t.Errorf("fail=%d score=%d filled=%d", h.audio.fail, h.s.Score(), h.s.Grid().FilledCount())
			}
			var rejected []Event
			for _, e := range h.events.events {
				if e.Kind == EventPlacementRejected {
					rejected = append(rejected, e)
				}
			}
			if len(rejected) != 1 || rejected[0].Reason != tt.want {
				t.Errorf("rejections = %+v, want one %v", rejected, tt.want)
			}
		})
	}
}

func TestGridAccessorIsSnapshot(t *testing.T) {
	h := newHarness(t)
	g := h.s.Grid()
	if err := g.MarkFilled(1); err != nil {
		t.Fatal(err)
	}
	if n := h.s.Grid().FilledCount(); n != 0 {
		t.Fatalf("session grid filled = %d after changing the snapshot", n)
	}
	if v := h.drop(1, h.cellWorld(1)); !v.Accepted {
		t.Errorf("verdict = %+v, want accepted", v)
	}
	h.checkInvariant(t)
}
