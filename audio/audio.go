// Package audio plays the game's music and sound cues. Playback stays
// locked until the first user interaction; every failure is logged and
// swallowed.
package audio

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Sound names one of the game's clips.
type Sound uint8

const (
	SoundMusic Sound = iota
	SoundSuccess
	SoundFail
	SoundPlace
	numSounds
)

func (s Sound) String() string {
	switch s {
	case SoundMusic:
		return "music"
	case SoundSuccess:
		return "success"
	case SoundFail:
		return "fail"
	case SoundPlace:
		return "place"
	default:
		return "unknown"
	}
}

// Clip is decoded audio: 16-bit little-endian stereo PCM at the backend's
// sample rate.
type Clip struct {
	PCM  []byte
	Loop bool
}

// Player is a single playable clip.
type Player interface {
	Play()
	Pause()
	Rewind() error
	IsPlaying() bool
	SetVolume(v float64)
}

// Backend creates players.
type Backend interface {
	NewPlayer(clip Clip) (Player, error)
}

// Volumes per sound, in [0, 1].
type Volumes struct {
	Music, Success, Fail, Place float64
}

// DefaultVolumes returns the stock mix.
func DefaultVolumes() Volumes {
	return Volumes{Music: 0.2, Success: 0.5, Fail: 0.5, Place: 0.3}
}

func (v Volumes) of(s Sound) float64 {
	switch s {
	case SoundMusic:
		return v.Music
	case SoundSuccess:
		return v.Success
	case SoundFail:
		return v.Fail
	case SoundPlace:
		return v.Place
	}
	return 0
}

type gate uint8

const (
	gateLocked gate = iota
	gateUnlocked
)

type musicState uint8

const (
	musicStopped musicState = iota
	musicPlaying
)

// Cues implements the session's audio collaborator.
type Cues struct {
	backend Backend
	clips   [numSounds]Clip
	volumes Volumes
	players [numSounds]Player

	gate     gate
	music    musicState
	muted    bool
	finished bool

	log zerolog.Logger
}

// NewCues creates cues for the given clips. Players are created on Unlock.
// A nil backend makes every cue a no-op.
func NewCues(backend Backend, clips map[Sound]Clip, volumes Volumes, log zerolog.Logger) *Cues {
	c := &Cues{
		backend: backend,
		volumes: volumes,
		log:     log.With().Str("component", "audio").Logger(),
	}
	for s, clip := range clips {
		if s < numSounds {
			c.clips[s] = clip
		}
	}
	return c
}

// Unlock opens the gate and starts the music. Later calls do nothing.
func (c *Cues) Unlock() {
	if c.gate == gateUnlocked {
		return
	}
	c.gate = gateUnlocked
	if c.backend != nil {
		for s := Sound(0); s < numSounds; s++ {
			c.players[s] = c.newPlayer(s)
		}
	}
	c.log.Debug().Msg("audio unlocked")
	c.startMusic()
}

func (c *Cues) newPlayer(s Sound) (p Player) {
	clip := c.clips[s]
	if len(clip.PCM) == 0 {
		c.log.Warn().Stringer("sound", s).Msg("no clip loaded")
		return nil
	}
	defer c.recoverAs(s, "create player", func() { p = nil })
	p, err := c.backend.NewPlayer(clip)
	if err != nil {
		c.log.Warn().Err(err).Stringer("sound", s).Msg("create player")
		return nil
	}
	p.SetVolume(c.volumes.of(s))
	return p
}

// recoverAs turns a panic from the backend into a log line.
func (c *Cues) recoverAs(s Sound, op string, after func()) {
	if r := recover(); r != nil {
		c.log.Error().Err(fmt.Errorf("%v", r)).Stringer("sound", s).Msg(op)
		if after != nil {
			after()
		}
	}
}

func (c *Cues) PlayPlace()   { c.play(SoundPlace) }
func (c *Cues) PlaySuccess() { c.play(SoundSuccess) }
func (c *Cues) PlayFail()    { c.play(SoundFail) }

// play restarts a one-shot cue from the beginning.
func (c *Cues) play(s Sound) {
	if c.muted || c.gate == gateLocked {
		return
	}
	p := c.players[s]
	if p == nil {
		return
	}
	defer c.recoverAs(s, "play", nil)
	if err := p.Rewind(); err != nil {
		c.log.Warn().Err(err).Stringer("sound", s).Msg("rewind")
	}
	p.Play()
}

// ToggleMute flips the mute state and reports whether audio is now muted.
// Muting stops the music; unmuting restarts it unless the session is over.
func (c *Cues) ToggleMute() bool {
	c.muted = !c.muted
	if c.muted {
		c.stopMusic()
	} else if !c.finished {
		c.startMusic()
	}
	c.log.Debug().Bool("muted", c.muted).Msg("mute toggled")
	return c.muted
}

// Finish marks the session as over: the music keeps playing, but unmuting
// will not start it again.
func (c *Cues) Finish() {
	c.finished = true
}

// Restart clears Finish for a new session and starts the music if allowed.
func (c *Cues) Restart() {
	c.finished = false
	c.startMusic()
}

// Muted reports the mute state.
func (c *Cues) Muted() bool { return c.muted }

// Unlocked reports whether the gate is open.
func (c *Cues) Unlocked() bool { return c.gate == gateUnlocked }

// MusicPlaying reports whether the music loop is running.
func (c *Cues) MusicPlaying() bool { return c.music == musicPlaying }

func (c *Cues) startMusic() {
	if c.muted || c.gate == gateLocked || c.music == musicPlaying {
		return
	}
	p := c.players[SoundMusic]
	if p == nil {
		return
	}
	defer c.recoverAs(SoundMusic, "start music", func() { c.music = musicStopped })
	p.Play()
	c.music = musicPlaying
}

func (c *Cues) stopMusic() {
	if c.music != musicPlaying {
		return
	}
	c.music = musicStopped
	p := c.players[SoundMusic]
	if p == nil {
		return
	}
	defer c.recoverAs(SoundMusic, "stop music", nil)
	p.Pause()
	if err := p.Rewind(); err != nil {
		c.log.Warn().Err(err).Msg("rewind music")
	}
}
