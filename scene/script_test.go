package scene

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestLoadScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "screenshot", "label": "initial"},
			{"action": "drag", "fromX": 120, "fromY": 256, "toX": 360, "toY": 640, "frames": 10},
			{"action": "wait", "frames": 3},
			{"action": "key", "key": "M"},
			{"action": "click", "x": 100, "y": 200}
		]
	}`)

	sc, err := LoadScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sc.steps) != 5 {
		t.Fatalf("expected 5 steps, got %d", len(sc.steps))
	}
	if st := sc.steps[1]; st.Action != "drag" || st.ToX != 360 || st.Frames != 10 {
		t.Errorf("step 1 = %+v", st)
	}
	if st := sc.steps[3]; st.Key != "M" {
		t.Errorf("step 3 = %+v", st)
	}
}

func TestLoadScript_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", `not json`},
		{"empty", `{"steps": []}`},
		{"unknown action", `{"steps": [{"action": "jump"}]}`},
		{"unknown key", `{"steps": [{"action": "key", "key": "NoSuchKey"}]}`},
		{"missing key", `{"steps": [{"action": "key"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadScript([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestKeyByName(t *testing.T) {
	tests := []struct {
		name string
		want ebiten.Key
	}{
		{"M", ebiten.KeyM},
		{"r", ebiten.KeyR},
		{"Space", ebiten.KeySpace},
		{"space", ebiten.KeySpace},
	}
	for _, tt := range tests {
		got, ok := keyByName(tt.name)
		if !ok || got != tt.want {
			t.Errorf("keyByName(%q) = %v, %v; want %v", tt.name, got, ok, tt.want)
		}
	}
}

func TestScriptClickRunsThroughUpdate(t *testing.T) {
	r := NewRect("r", 200, 200, ColorWhite)
	s := newHitScene(r)

	clicks := 0
	r.OnClick = func(ClickContext) { clicks++ }

	sc, err := LoadScript([]byte(`{"steps": [{"action": "click", "x": 50, "y": 50}]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetScript(sc)
	if s.Script() != sc {
		t.Fatal("Script() should return the attached script")
	}

	for i := 0; i < 5 && !sc.Done(); i++ {
		s.Update()
	}
	// One more frame drains the release.
	s.Update()

	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
	if !sc.Done() {
		t.Error("script should be done")
	}
}

func TestScriptWaitAndKey(t *testing.T) {
	s := NewScene()
	sc, err := LoadScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "key", "key": "R"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetScript(sc)

	pressedAt := -1
	for frame := 1; frame <= 8; frame++ {
		s.Update()
		if s.KeyJustPressed(ebiten.KeyR) {
			pressedAt = frame
		}
	}
	// Frames 1-3 wait, frame 4 injects the key, frame 5 sees it.
	if pressedAt != 5 {
		t.Errorf("key seen on frame %d, want 5", pressedAt)
	}
	if !sc.Done() {
		t.Error("script should be done")
	}
}

func TestScriptScreenshotQueues(t *testing.T) {
	s := NewScene()
	sc, err := LoadScript([]byte(`{"steps": [{"action": "screenshot", "label": "board"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetScript(sc)
	s.Update()

	if len(s.screenshotQueue) != 1 || s.screenshotQueue[0] != "board" {
		t.Errorf("screenshotQueue = %v, want [board]", s.screenshotQueue)
	}
}

func TestSetScriptNilRestoresRealInput(t *testing.T) {
	s := NewScene()
	sc, _ := LoadScript([]byte(`{"steps": [{"action": "wait", "frames": 1}]}`))
	s.SetScript(sc)
	if !s.injectOnly {
		t.Error("injectOnly should be set with a script attached")
	}
	s.SetScript(nil)
	if s.injectOnly {
		t.Error("injectOnly should clear when the script is detached")
	}
}
