package scene

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// scriptStep is a single action in a play script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Key    string  `json:"key,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// playScript is the top-level JSON structure for a play script.
type playScript struct {
	Steps []scriptStep `json:"steps"`
}

// Script sequences injected input, key presses and screenshots across frames
// for automated playthroughs. Attach it to a Scene with SetScript.
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON play script. Supported actions are click, drag,
// key, wait and screenshot.
func LoadScript(jsonData []byte) (*Script, error) {
	var ps playScript
	if err := json.Unmarshal(jsonData, &ps); err != nil {
		return nil, fmt.Errorf("parse play script: %w", err)
	}
	if len(ps.Steps) == 0 {
		return nil, fmt.Errorf("parse play script: no steps")
	}
	for i, st := range ps.Steps {
		switch st.Action {
		case "click", "drag", "wait", "screenshot":
		case "key":
			if _, ok := keyByName(st.Key); !ok {
				return nil, fmt.Errorf("parse play script: step %d: unknown key %q", i, st.Key)
			}
		default:
			return nil, fmt.Errorf("parse play script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: ps.Steps}, nil
}

// SetScript attaches a play script. Its step method is called from
// Scene.Update before input processing each frame. While a script is
// attached, real mouse, touch and keyboard input is ignored.
func (s *Scene) SetScript(sc *Script) {
	s.script = sc
	s.injectOnly = sc != nil
}

// Done reports whether every step of the script has run.
func (r *Script) Done() bool {
	return r.done
}

// step advances the script by one frame.
func (r *Script) step(s *Scene) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		s.Screenshot(st.Label)
	case "click":
		s.InjectClick(st.X, st.Y)
	case "drag":
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "key":
		if k, ok := keyByName(st.Key); ok {
			s.InjectKey(k)
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}

// keyByName resolves a key name such as "M" or "Space" using ebiten's own
// key names, case-insensitively.
func keyByName(name string) (ebiten.Key, bool) {
	if name == "" {
		return 0, false
	}
	var k ebiten.Key
	if err := k.UnmarshalText([]byte(name)); err == nil {
		return k, true
	}
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		if strings.EqualFold(k.String(), name) {
			return k, true
		}
	}
	return 0, false
}
