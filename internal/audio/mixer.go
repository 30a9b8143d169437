package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// activeCue tracks one playing cue.
type activeCue struct {
	buffer [][2]float64
	pos    int
}

// Mixer sums active cues and writes s16le stereo frames to an output at
// real-time pace, writing silence when nothing plays.
type Mixer struct {
	output io.Writer
	volume float64
	cues   map[core.Sound][][2]float64

	queue    chan core.Sound
	stopChan chan struct{}
	stopped  atomic.Bool
	done     sync.WaitGroup

	// Owned by the loop goroutine.
	active []activeCue

	errChan chan error
}

// NewMixer creates a mixer writing to out. Every cue is rendered up front.
func NewMixer(out io.Writer, volume float64) *Mixer {
	m := &Mixer{
		output:   out,
		volume:   clampVolume(volume),
		cues:     make(map[core.Sound][][2]float64),
		queue:    make(chan core.Sound, 32),
		stopChan: make(chan struct{}),
		errChan:  make(chan error, 1),
	}
	for s := core.SoundMove; s <= core.SoundLose; s++ {
		if c := Cue(s, SampleRate); c != nil {
			m.cues[s] = render(c)
		}
	}
	return m
}

// Start begins the mixing loop.
func (m *Mixer) Start() {
	m.done.Add(1)
	go m.loop()
}

// Stop halts the loop and waits for it to exit.
func (m *Mixer) Stop() {
	if m.stopped.CompareAndSwap(false, true) {
		close(m.stopChan)
	}
	m.done.Wait()
}

// Play queues a cue. It never blocks; cues are dropped when the queue is full.
func (m *Mixer) Play(s core.Sound) bool {
	if m.stopped.Load() {
		return false
	}
	select {
	case m.queue <- s:
		return true
	default:
		return false
	}
}

// Errors reports a failed write to the output.
func (m *Mixer) Errors() <-chan error {
	return m.errChan
}

func (m *Mixer) loop() {
	defer m.done.Done()

	ticker := time.NewTicker(bufferDuration)
	defer ticker.Stop()

	frames := SampleRate.N(bufferDuration)
	mix := make([][2]float64, frames)
	out := make([]byte, frames*bytesPerFrame)

	for {
		select {
		case <-m.stopChan:
			return

		case s := <-m.queue:
			if buf := m.cues[s]; len(buf) > 0 {
				m.active = append(m.active, activeCue{buffer: buf})
			}

		case <-ticker.C:
			m.mixInto(mix)
			toBytes(mix, out, m.volume)
			if _, err := m.output.Write(out); err != nil {
				select {
				case m.errChan <- fmt.Errorf("%w: %v", ErrPipeClosed, err):
				default:
				}
				return
			}
		}
	}
}

// mixInto sums the active cues into buf and drops the finished ones.
func (m *Mixer) mixInto(buf [][2]float64) {
	clear(buf)
	remaining := m.active[:0]
	for i := range m.active {
		c := &m.active[i]
		for j := 0; j < len(buf) && c.pos < len(c.buffer); j++ {
			buf[j][0] += c.buffer[c.pos][0]
			buf[j][1] += c.buffer[c.pos][1]
			c.pos++
		}
		if c.pos < len(c.buffer) {
			remaining = append(remaining, *c)
		}
	}
	m.active = remaining
}

// toBytes converts stereo samples to interleaved int16 LE with a hard clip.
func toBytes(in [][2]float64, out []byte, volume float64) {
	for i, frame := range in {
		for ch := range 2 {
			v := min(max(frame[ch]*volume, -1), 1)
			binary.LittleEndian.PutUint16(out[i*bytesPerFrame+ch*2:], uint16(int16(v*32767))) //#nosec G115 -- two's complement reinterpretation
		}
	}
}

func clampVolume(v float64) float64 {
	return min(max(v, 0), 1)
}
