package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

type fakePlayer struct {
	plays, pauses, rewinds int
	playing                bool
	volume                 float64
	panicOnPlay            bool
}

func (p *fakePlayer) Play() {
	if p.panicOnPlay {
		panic("device lost")
	}
	p.plays++
	p.playing = true
}

func (p *fakePlayer) Pause() {
	p.pauses++
	p.playing = false
}

func (p *fakePlayer) Rewind() error {
	p.rewinds++
	return nil
}

func (p *fakePlayer) IsPlaying() bool     { return p.playing }
func (p *fakePlayer) SetVolume(v float64) { p.volume = v }

type fakeBackend struct {
	players []*fakePlayer
	fail    map[int]bool // creation index -> error
}

func (b *fakeBackend) NewPlayer(clip Clip) (Player, error) {
	i := len(b.players)
	if b.fail[i] {
		b.players = append(b.players, nil)
		return nil, errors.New("no device")
	}
	p := &fakePlayer{}
	b.players = append(b.players, p)
	return p, nil
}

func testClips() map[Sound]Clip {
	clips := make(map[Sound]Clip)
	for s := Sound(0); s < numSounds; s++ {
		clips[s] = Clip{PCM: []byte{0, 0, 0, 0}, Loop: s == SoundMusic}
	}
	return clips
}

func newTestCues(b *fakeBackend) (*Cues, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewCues(b, testClips(), DefaultVolumes(), zerolog.New(&buf)), &buf
}

func (b *fakeBackend) player(s Sound) *fakePlayer {
	return b.players[s]
}

func TestCuesLockedUntilUnlock(t *testing.T) {
	b := &fakeBackend{}
	c, _ := newTestCues(b)

	c.PlayPlace()
	c.PlaySuccess()
	if len(b.players) != 0 {
		t.Fatal("players created before unlock")
	}
	if c.Unlocked() || c.MusicPlaying() {
		t.Fatal("gate should start locked with music stopped")
	}

	c.Unlock()
	if len(b.players) != int(numSounds) {
		t.Fatalf("players = %d, want %d", len(b.players), numSounds)
	}
	if !c.MusicPlaying() || b.player(SoundMusic).plays != 1 {
		t.Error("music should start on unlock")
	}

	c.Unlock()
	if len(b.players) != int(numSounds) || b.player(SoundMusic).plays != 1 {
		t.Error("second unlock should do nothing")
	}
}

func TestCuesVolumes(t *testing.T) {
	b := &fakeBackend{}
	c, _ := newTestCues(b)
	c.Unlock()

	want := map[Sound]float64{SoundMusic: 0.2, SoundSuccess: 0.5, SoundFail: 0.5, SoundPlace: 0.3}
	for s, v := range want {
		if got := b.player(s).volume; got != v {
			t.Errorf("%s volume = %v, want %v", s, got, v)
		}
	}
}

func TestCuesPlayRewinds(t *testing.T) {
	b := &fakeBackend{}
	c, _ := newTestCues(b)
	c.Unlock()

	c.PlayPlace()
	c.PlayPlace()
	c.PlayFail()
	c.PlaySuccess()

	if p := b.player(SoundPlace); p.plays != 2 || p.rewinds != 2 {
		t.Errorf("place plays=%d rewinds=%d, want 2 2", p.plays, p.rewinds)
	}
	if b.player(SoundFail).plays != 1 || b.player(SoundSuccess).plays != 1 {
		t.Error("fail and success should play once")
	}
}

func TestCuesToggleMute(t *testing.T) {
	b := &fakeBackend{}
	c, _ := newTestCues(b)
	c.Unlock()
	music := b.player(SoundMusic)

	if !c.ToggleMute() {
		t.Fatal("first toggle should mute")
	}
	if c.MusicPlaying() || music.playing {
		t.Error("mute should stop the music")
	}
	c.PlayPlace()
	if b.player(SoundPlace).plays != 0 {
		t.Error("cues should be silent while muted")
	}

	if c.ToggleMute() {
		t.Fatal("second toggle should unmute")
	}
	if !c.MusicPlaying() || music.plays != 2 {
		t.Errorf("unmute should resume the music (plays=%d)", music.plays)
	}
}

func TestCuesUnmuteAfterFinish(t *testing.T) {
	b := &fakeBackend{}
	c, _ := newTestCues(b)
	c.Unlock()
	c.Finish()

	if !c.MusicPlaying() {
		t.Fatal("finish should not stop the music")
	}
	c.ToggleMute()
	c.ToggleMute()
	if c.MusicPlaying() {
		t.Error("unmute after finish should not restart the music")
	}

	c.Restart()
	if !c.MusicPlaying() {
		t.Error("restart should start the music again")
	}
}

func TestCuesMuteBeforeUnlock(t *testing.T) {
	b := &fakeBackend{}
	c, _ := newTestCues(b)

	c.ToggleMute()
	c.Unlock()
	if c.MusicPlaying() {
		t.Error("music should not start while muted")
	}
	c.ToggleMute()
	if !c.MusicPlaying() {
		t.Error("music should start on unmute")
	}
}

func TestCuesSwallowFailures(t *testing.T) {
	b := &fakeBackend{fail: map[int]bool{int(SoundFail): true}}
	c, logs := newTestCues(b)
	c.Unlock()

	c.PlayFail()
	if !strings.Contains(logs.String(), "create player") {
		t.Errorf("creation failure not logged: %q", logs.String())
	}

	b.player(SoundPlace).panicOnPlay = true
	c.PlayPlace()
	if !strings.Contains(logs.String(), "device lost") {
		t.Errorf("panic not logged: %q", logs.String())
	}

	c.PlaySuccess()
	if b.player(SoundSuccess).plays != 1 {
		t.Error("other cues should keep working")
	}
}

func TestCuesNilBackend(t *testing.T) {
	c := NewCues(nil, nil, DefaultVolumes(), zerolog.Nop())
	c.Unlock()
	c.PlayPlace()
	c.PlaySuccess()
	c.PlayFail()
	if c.ToggleMute() != true {
		t.Error("mute state should still toggle")
	}
	if c.MusicPlaying() {
		t.Error("no music without a backend")
	}
}

func TestSynthesizeLengths(t *testing.T) {
	const rate = 44100
	tests := []struct {
		sound Sound
		secs  float64
	}{
		{SoundPlace, 0.08},
		{SoundSuccess, 0.48},
		{SoundFail, 0.45},
		{SoundMusic, 4.0},
	}
	for _, tt := range tests {
		pcm := Synthesize(tt.sound, rate)
		frames := len(pcm) / 4
		want := int(tt.secs * rate)
		if frames < want-3 || frames > want+3 {
			t.Errorf("%s frames = %d, want ~%d", tt.sound, frames, want)
		}
		if len(pcm)%4 != 0 {
			t.Errorf("%s length %d not frame aligned", tt.sound, len(pcm))
		}
	}
}

func TestSynthesizeIsNotSilent(t *testing.T) {
	pcm := Synthesize(SoundSuccess, 44100)
	var peak int16
	for i := 0; i+1 < len(pcm); i += 2 {
		v := int16(binary.LittleEndian.Uint16(pcm[i:]))
		if v > peak {
			peak = v
		}
	}
	if peak < 1000 {
		t.Errorf("peak = %d, want audible signal", peak)
	}
}

// wavFile builds a 16-bit stereo PCM WAV.
func wavFile(rate int, pcm []byte) []byte {
	var b bytes.Buffer
	le := binary.LittleEndian
	b.WriteString("RIFF")
	binary.Write(&b, le, uint32(36+len(pcm)))
	b.WriteString("WAVEfmt ")
	binary.Write(&b, le, uint32(16))
	binary.Write(&b, le, uint16(1)) // PCM
	binary.Write(&b, le, uint16(2))
	binary.Write(&b, le, uint32(rate))
	binary.Write(&b, le, uint32(rate*4))
	binary.Write(&b, le, uint16(4))
	binary.Write(&b, le, uint16(16))
	b.WriteString("data")
	binary.Write(&b, le, uint32(len(pcm)))
	b.Write(pcm)
	return b.Bytes()
}

func TestDecodeWAV(t *testing.T) {
	pcm := Synthesize(SoundPlace, 44100)
	got, err := decodeWAV(wavFile(44100, pcm), 44100)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(got, pcm) {
		t.Errorf("decoded %d bytes, want %d identical bytes", len(got), len(pcm))
	}

	if _, err := decodeWAV([]byte("not a wav"), 44100); err == nil {
		t.Error("expected error for garbage input")
	}
}

func TestLoadClipsFallback(t *testing.T) {
	dir := t.TempDir()
	place := Synthesize(SoundFail, 44100)
	if err := os.WriteFile(filepath.Join(dir, "place.wav"), wavFile(44100, place), 0o644); err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	clips := LoadClips(dir, 44100, zerolog.New(&logs))

	if len(clips) != int(numSounds) {
		t.Fatalf("clips = %d, want %d", len(clips), numSounds)
	}
	if !bytes.Equal(clips[SoundPlace].PCM, place) {
		t.Error("place.wav should be loaded from disk")
	}
	if !bytes.Equal(clips[SoundSuccess].PCM, Synthesize(SoundSuccess, 44100)) {
		t.Error("missing success.wav should fall back to the synthesized clip")
	}
	if !clips[SoundMusic].Loop || clips[SoundPlace].Loop {
		t.Error("only music loops")
	}
	if n := strings.Count(logs.String(), "using synthesized clip"); n != 3 {
		t.Errorf("fallback warnings = %d, want 3", n)
	}
}
