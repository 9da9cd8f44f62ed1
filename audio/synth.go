package audio

import (
	"encoding/binary"
	"math"
)

type note struct {
	freq float64 // Hz; 0 is a rest
	dur  float64 // seconds
	// slide is the frequency reached at the end of the note. Zero holds
	// freq.
	slide float64
}

// cue shapes used when a clip file is missing
var (
	placeNotes   = []note{{freq: 880, dur: 0.08}}
	successNotes = []note{{freq: 523.25, dur: 0.12}, {freq: 659.25, dur: 0.12}, {freq: 783.99, dur: 0.24}}
	failNotes    = []note{{freq: 300, dur: 0.45, slide: 150}}
	musicNotes   = []note{
		{freq: 261.63, dur: 0.5}, {freq: 329.63, dur: 0.5}, {freq: 392.00, dur: 0.5}, {freq: 329.63, dur: 0.5},
		{freq: 293.66, dur: 0.5}, {freq: 349.23, dur: 0.5}, {freq: 440.00, dur: 0.5}, {freq: 0, dur: 0.5},
	}
)

// Synthesize renders a short stand-in for s as 16-bit stereo PCM.
func Synthesize(s Sound, sampleRate int) []byte {
	switch s {
	case SoundPlace:
		return render(placeNotes, sampleRate, 0.6)
	case SoundSuccess:
		return render(successNotes, sampleRate, 0.6)
	case SoundFail:
		return render(failNotes, sampleRate, 0.6)
	default:
		return render(musicNotes, sampleRate, 0.4)
	}
}

// render writes each note as a sine with a short attack and release so
// notes do not click.
func render(notes []note, sampleRate int, amp float64) []byte {
	total := 0
	for _, n := range notes {
		total += int(n.dur * float64(sampleRate))
	}
	buf := make([]byte, total*4)

	const fade = 0.01
	off := 0
	for _, n := range notes {
		count := int(n.dur * float64(sampleRate))
		fadeN := int(fade * float64(sampleRate))
		phase := 0.0
		for i := 0; i < count; i++ {
			var v float64
			if n.freq > 0 {
				f := n.freq
				if n.slide > 0 {
					f += (n.slide - n.freq) * float64(i) / float64(count)
				}
				phase += 2 * math.Pi * f / float64(sampleRate)
				env := 1.0
				if i < fadeN {
					env = float64(i) / float64(fadeN)
				} else if rem := count - i; rem < fadeN {
					env = float64(rem) / float64(fadeN)
				}
				v = math.Sin(phase) * env * amp
			}
			sample := int16(v * math.MaxInt16)
			binary.LittleEndian.PutUint16(buf[off:], uint16(sample))
			binary.LittleEndian.PutUint16(buf[off+2:], uint16(sample))
			off += 4
		}
	}
	return buf
}
