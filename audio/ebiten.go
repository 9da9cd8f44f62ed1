package audio

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/rs/zerolog"
)

// EbitenBackend plays clips through an Ebitengine audio context.
type EbitenBackend struct {
	ctx *audio.Context
}

// NewEbitenBackend returns a backend on the process-wide audio context,
// creating it at sampleRate if none exists yet.
func NewEbitenBackend(sampleRate int) (*EbitenBackend, error) {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	} else if ctx.SampleRate() != sampleRate {
		return nil, fmt.Errorf("audio context already running at %d Hz, want %d", ctx.SampleRate(), sampleRate)
	}
	return &EbitenBackend{ctx: ctx}, nil
}

// SampleRate returns the context's sample rate.
func (b *EbitenBackend) SampleRate() int {
	return b.ctx.SampleRate()
}

// NewPlayer creates a player for clip. Looping clips repeat forever.
func (b *EbitenBackend) NewPlayer(clip Clip) (Player, error) {
	if !clip.Loop {
		return b.ctx.NewPlayerFromBytes(clip.PCM), nil
	}
	loop := audio.NewInfiniteLoop(bytes.NewReader(clip.PCM), int64(len(clip.PCM)))
	p, err := b.ctx.NewPlayer(loop)
	if err != nil {
		return nil, fmt.Errorf("new loop player: %w", err)
	}
	return p, nil
}

// clipFiles maps each sound to its file under the sound directory.
var clipFiles = [numSounds]string{
	SoundMusic:   "bg-music.wav",
	SoundSuccess: "success.wav",
	SoundFail:    "fail.wav",
	SoundPlace:   "place.wav",
}

// LoadClips decodes the WAV files in dir, resampled to sampleRate. A sound
// whose file is missing or unreadable gets a synthesized clip and a warning.
func LoadClips(dir string, sampleRate int, log zerolog.Logger) map[Sound]Clip {
	clips := make(map[Sound]Clip, numSounds)
	for s := Sound(0); s < numSounds; s++ {
		path := filepath.Join(dir, clipFiles[s])
		pcm, err := decodeWAVFile(path, sampleRate)
		if err != nil {
			log.Warn().Err(err).Stringer("sound", s).Msg("using synthesized clip")
			pcm = Synthesize(s, sampleRate)
		}
		clips[s] = Clip{PCM: pcm, Loop: s == SoundMusic}
	}
	return clips
}

func decodeWAVFile(path string, sampleRate int) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return decodeWAV(data, sampleRate)
}

func decodeWAV(data []byte, sampleRate int) ([]byte, error) {
	stream, err := wav.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("read wav: %w", err)
	}
	return pcm, nil
}
