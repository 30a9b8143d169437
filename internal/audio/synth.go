package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// WaveType defines oscillator wave shapes.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a raw wave for a fixed number of samples.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a streamer producing one tone.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack and release to a stream.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s with an attack ramp and a release ramp.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := range n {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.totalSamples - e.releaseSamples
		if e.releaseSamples > 0 && e.position >= releaseStart {
			vol = max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; zero or less is silence.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// tone is one note of a cue.
type tone struct {
	freq     float64
	duration time.Duration
	wave     WaveType
}

// tonesFor lists the notes each cue plays in sequence.
func tonesFor(s core.Sound) []tone {
	const ms = time.Millisecond
	switch s {
	case core.SoundMove:
		return []tone{{380, 25 * ms, WaveSquare}}
	case core.SoundRotate:
		return []tone{{520, 40 * ms, WaveSquare}}
	case core.SoundDrop:
		return []tone{{240, 55 * ms, WaveSaw}}
	case core.SoundLock:
		return []tone{{220, 70 * ms, WaveSine}}
	case core.SoundClear:
		return []tone{{440, 70 * ms, WaveSquare}, {660, 70 * ms, WaveSquare}, {880, 90 * ms, WaveSquare}}
	case core.SoundHold:
		return []tone{{330, 40 * ms, WaveSine}, {494, 50 * ms, WaveSine}}
	case core.SoundWave:
		return []tone{{523, 60 * ms, WaveSquare}, {659, 60 * ms, WaveSquare}, {784, 60 * ms, WaveSquare}, {1047, 120 * ms, WaveSquare}}
	case core.SoundMilestone:
		return []tone{{988, 80 * ms, WaveSquare}, {1319, 160 * ms, WaveSquare}}
	case core.SoundWin:
		return []tone{{523, 100 * ms, WaveSquare}, {659, 100 * ms, WaveSquare}, {784, 100 * ms, WaveSquare}, {1047, 150 * ms, WaveSquare}, {1319, 250 * ms, WaveSine}}
	case core.SoundLose:
		return []tone{{392, 120 * ms, WaveSaw}, {330, 120 * ms, WaveSaw}, {262, 120 * ms, WaveSaw}, {180, 240 * ms, WaveSaw}}
	default:
		return nil
	}
}

// Cue returns a streamer for s at unity gain, or nil for SoundNone.
func Cue(s core.Sound, rate beep.SampleRate) beep.Streamer {
	notes := tonesFor(s)
	if len(notes) == 0 {
		return nil
	}

	const attack, release = 3 * time.Millisecond, 15 * time.Millisecond
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		osc := NewOscillator(n.freq, n.duration, n.wave, rate)
		parts = append(parts, NewEnvelope(osc, n.duration, attack, release, rate))
	}

	seq := beep.Seq(parts...)
	if s == core.SoundDrop {
		// A thud of noise under the drop tone.
		noise := NewEnvelope(NewOscillator(1, 40*time.Millisecond, WaveNoise, rate), 40*time.Millisecond, 0, 30*time.Millisecond, rate)
		seq = beep.Mix(newVolume(seq, 0.7), newVolume(noise, 0.3))
	}
	return newVolume(seq, 0.3)
}

// render drains a finite streamer into memory.
func render(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}
