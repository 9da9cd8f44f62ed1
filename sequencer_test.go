package cupcake

import (
	"math"
	"reflect"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestSequencerRunsStepsInOrder(t *testing.T) {
	var s Sequencer
	var got []string
	s.Run(
		Step{Duration: 0.5, Then: func() { got = append(got, "a") }},
		Step{Duration: 0.5, Then: func() { got = append(got, "b") }},
	)

	s.Update(0.25)
	if len(got) != 0 {
		t.Fatalf("got %v before first step ended", got)
	}
	s.Update(0.25)
	if !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("got %v, want [a]", got)
	}
	s.Update(0.5)
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("got %v, want [a b]", got)
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d after completion", s.Len())
	}
}

func TestSequencerCarriesLeftoverTime(t *testing.T) {
	var s Sequencer
	var progress float64
	var first bool
	s.Run(
		Step{Duration: 0.25, Then: func() { first = true }},
		Step{Duration: 1, Apply: func(k float64) { progress = k }},
	)
	s.Update(0.75)
	if !first {
		t.Fatal("first step should have ended")
	}
	if math.Abs(progress-0.5) > 0.01 {
		t.Errorf("second step progress = %f, want ~0.5", progress)
	}
}

func TestSequencerApplyEndsAtOne(t *testing.T) {
	var s Sequencer
	var last float64
	s.Run(Step{Duration: 0.3, Ease: ease.OutBack, Apply: func(k float64) { last = k }})
	for i := 0; i < 30; i++ {
		s.Update(1.0 / 60)
	}
	if last != 1 {
		t.Errorf("final progress = %v, want 1", last)
	}
}

func TestSequencerStartsNextUpdate(t *testing.T) {
	var s Sequencer
	var innerRan bool
	s.Run(Step{Duration: 0.5, Then: func() {
		s.Run(Step{Then: func() { innerRan = true }})
	}})

	s.Update(0.5)
	if innerRan {
		t.Fatal("sequence started from a callback ran in the same update")
	}
	s.Update(0.01)
	if !innerRan {
		t.Fatal("queued sequence did not run on the next update")
	}
}

func TestSequencerZeroDurationStep(t *testing.T) {
	var s Sequencer
	calls := 0
	s.Run(Step{Apply: func(k float64) {
		if k != 1 {
			t.Errorf("zero-duration progress = %v", k)
		}
	}, Then: func() { calls++ }})
	s.Update(0)
	if calls != 1 {
		t.Errorf("Then calls = %d, want 1", calls)
	}
}

func TestSequenceCancel(t *testing.T) {
	var s Sequencer
	calls := 0
	q := s.Run(Step{Duration: 0.5, Apply: func(float64) { calls++ }, Then: func() { calls += 100 }})
	s.Update(0.1)
	q.Cancel()
	s.Update(1)
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (no callbacks after Cancel)", calls)
	}
	if !q.Done() || !q.Cancelled() {
		t.Error("cancelled sequence should report Done and Cancelled")
	}
}

func TestSequenceLoop(t *testing.T) {
	var s Sequencer
	laps := 0
	q := s.Run(Wait(0.25), Step{Duration: 0.25, Then: func() { laps++ }}).Loop()
	for i := 0; i < 8; i++ {
		s.Update(0.25)
	}
	if laps != 4 {
		t.Errorf("laps = %d, want 4", laps)
	}
	if q.Done() {
		t.Error("looping sequence should not be done")
	}
}

func TestSequenceLoopOfInstantSteps(t *testing.T) {
	var s Sequencer
	calls := 0
	q := s.Run(Step{Then: func() { calls++ }}).Loop()
	s.Update(0.1)
	if !q.Done() {
		t.Error("an all-instant loop should stop instead of spinning")
	}
	if calls == 0 {
		t.Error("instant step never ran")
	}
}

func TestSequencerClear(t *testing.T) {
	var s Sequencer
	ran := false
	a := s.Run(Step{Duration: 1, Then: func() { ran = true }})
	s.Update(0.1)
	b := s.Run(Step{Then: func() { ran = true }})
	s.Clear()
	s.Update(2)
	if ran {
		t.Error("cleared sequences ran")
	}
	if !a.Done() || !b.Done() {
		t.Error("Clear should cancel active and queued sequences")
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d", s.Len())
	}
}

func TestSequencerAfter(t *testing.T) {
	var s Sequencer
	fired := 0
	s.After(2, func() { fired++ })
	for i := 0; i < 7; i++ {
		s.Update(0.25)
	}
	if fired != 0 {
		t.Fatal("fired early")
	}
	s.Update(0.25)
	s.Update(0.25)
	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}
}
