package cupcake

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Step is one timed segment of a Sequence. Apply receives the eased progress
// in [0, 1] every tick while the step runs, ending with exactly 1. Then runs
// once when the step reaches its natural end. Both are optional.
type Step struct {
	Duration float32 // seconds
	Ease     ease.TweenFunc
	Apply    func(progress float64)
	Then     func()
}

// Wait returns a step that only lets time pass.
func Wait(seconds float32) Step { return Step{Duration: seconds} }

// Sequence is an ordered list of steps run by a Sequencer.
type Sequence struct {
	steps     []Step
	index     int
	elapsed   float32
	tween     *gween.Tween
	loop      bool
	cancelled bool
	done      bool
}

// Loop makes the sequence restart from its first step after the last one.
func (q *Sequence) Loop() *Sequence {
	q.loop = true
	return q
}

// Cancel stops the sequence. No further Apply or Then callbacks run.
func (q *Sequence) Cancel() {
	q.cancelled = true
}

// Done reports whether the sequence finished or was cancelled.
func (q *Sequence) Done() bool { return q.done || q.cancelled }

// Cancelled reports whether Cancel was called.
func (q *Sequence) Cancelled() bool { return q.cancelled }

// advance runs the sequence for dt seconds. Time left over when a step ends
// flows into the next step.
func (q *Sequence) advance(dt float32) {
	wrappedIdle := false
	for !q.Done() {
		if q.index >= len(q.steps) {
			if !q.loop || len(q.steps) == 0 || wrappedIdle {
				q.done = true
				return
			}
			q.index = 0
			// A loop whose steps all have zero duration would spin forever.
			wrappedIdle = true
		}
		st := q.steps[q.index]

		if st.Duration <= 0 {
			if st.Apply != nil {
				st.Apply(1)
			}
			q.finishStep(st)
			continue
		}
		wrappedIdle = false

		if q.tween == nil {
			fn := st.Ease
			if fn == nil {
				fn = ease.Linear
			}
			q.tween = gween.New(0, 1, st.Duration, fn)
			q.elapsed = 0
		}
		q.elapsed += dt
		val, finished := q.tween.Update(dt)
		if st.Apply != nil && !q.cancelled {
			if finished {
				val = 1
			}
			st.Apply(float64(val))
		}
		if !finished {
			return
		}
		dt = q.elapsed - st.Duration
		q.finishStep(st)
		if dt <= 0 {
			if q.index >= len(q.steps) && !q.loop {
				q.done = true
			}
			return
		}
	}
}

func (q *Sequence) finishStep(st Step) {
	q.tween = nil
	q.elapsed = 0
	q.index++
	if st.Then != nil && !q.cancelled {
		st.Then()
	}
}

// Sequencer runs sequences on a shared clock. It replaces nested completion
// callbacks: each step carries its own continuation and the sequencer
// advances them all from a single Update call per tick.
//
// There is no concurrency: Update must be called from the game loop.
type Sequencer struct {
	active  []*Sequence
	pending []*Sequence
}

// Run queues a sequence built from steps. It starts advancing on the next
// call to Update, including when Run is called from inside a callback.
func (s *Sequencer) Run(steps ...Step) *Sequence {
	q := &Sequence{steps: steps}
	s.pending = append(s.pending, q)
	return q
}

// After is shorthand for a sequence that waits and then calls fn.
func (s *Sequencer) After(seconds float32, fn func()) *Sequence {
	return s.Run(Step{Duration: seconds, Then: fn})
}

// Update advances every running sequence by dt seconds in the order they were
// started, then drops the ones that are done.
func (s *Sequencer) Update(dt float32) {
	if len(s.pending) > 0 {
		s.active = append(s.active, s.pending...)
		for i := range s.pending {
			s.pending[i] = nil
		}
		s.pending = s.pending[:0]
	}

	for _, q := range s.active {
		q.advance(dt)
	}

	n := 0
	for _, q := range s.active {
		if !q.Done() {
			s.active[n] = q
			n++
		}
	}
	for i := n; i < len(s.active); i++ {
		s.active[i] = nil
	}
	s.active = s.active[:n]
}

// Len returns the number of sequences that are running or queued.
func (s *Sequencer) Len() int {
	n := len(s.pending)
	for _, q := range s.active {
		if !q.Done() {
			n++
		}
	}
	return n
}

// Clear cancels every running and queued sequence.
func (s *Sequencer) Clear() {
	for _, q := range s.active {
		q.Cancel()
	}
	for _, q := range s.pending {
		q.Cancel()
	}
	s.active = s.active[:0]
	s.pending = s.pending[:0]
}
