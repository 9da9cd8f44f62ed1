package scene

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// syntheticPointerEvent is a single injected pointer event in screen
// coordinates, fed through the same state machine as real mouse input.
type syntheticPointerEvent struct {
	screenX, screenY float64
	pressed          bool
	button           MouseButton
}

// InjectPress queues a pointer press event at the given screen coordinates
// (left button). The event is consumed on the next frame's processInput call.
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
		pressed: true,
		button:  MouseButtonLeft,
	})
}

// InjectMove queues a pointer move event with the button held down. Use it
// between InjectPress and InjectRelease to simulate a drag.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
		pressed: true,
		button:  MouseButtonLeft,
	})
}

// InjectRelease queues a pointer release event at the given screen coordinates.
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
		pressed: false,
		button:  MouseButtonLeft,
	})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag: press at (fromX, fromY), frames-2 linearly
// interpolated moves and a release at (toX, toY). The sequence consumes
// frames frames; the minimum is 2.
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// InjectKey makes KeyJustPressed report key as pressed on the next frame.
func (s *Scene) InjectKey(key ebiten.Key) {
	s.pendingKeys = append(s.pendingKeys, key)
}

// KeyJustPressed reports whether key went down this frame, from the keyboard
// or from InjectKey.
func (s *Scene) KeyJustPressed(key ebiten.Key) bool {
	for _, k := range s.frameKeys {
		if k == key {
			return true
		}
	}
	if s.injectOnly {
		return false
	}
	return inpututil.IsKeyJustPressed(key)
}

// AnyKeyJustPressed reports whether any key went down this frame.
func (s *Scene) AnyKeyJustPressed() bool {
	if len(s.frameKeys) > 0 {
		return true
	}
	if s.injectOnly {
		return false
	}
	s.keyBuf = inpututil.AppendJustPressedKeys(s.keyBuf[:0])
	return len(s.keyBuf) > 0
}

// rotateKeys makes keys injected since the last frame visible for this one.
func (s *Scene) rotateKeys() {
	s.frameKeys = append(s.frameKeys[:0], s.pendingKeys...)
	s.pendingKeys = s.pendingKeys[:0]
}

// processInjectedInput pops one event from the inject queue and feeds it
// through processPointer. Returns true if an event was consumed (real mouse
// input is skipped that frame).
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	s.processPointer(0, evt.screenX, evt.screenY, evt.pressed, evt.button)
	return true
}

// PendingInput returns the number of queued synthetic pointer events.
func (s *Scene) PendingInput() int {
	return len(s.injectQueue)
}
