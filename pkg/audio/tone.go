// Package audio produces the CHIP-8 buzzer: a single tone that plays while
// the sound timer is non-zero.
package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
	"sync"
	"sync/atomic"
)

const (
	DefaultSampleRate = 44100
	DefaultFrequency  = 220.0
	DefaultVolume     = 0.2

	bytesPerSample = 4 // mono float32
)

type Waveform int

const (
	Square Waveform = iota
	Sine

	DefaultWaveform = Sine
)

// ParseWaveform accepts "sine" or "square"; an empty string selects
// DefaultWaveform.
func ParseWaveform(s string) (Waveform, error) {
	switch strings.ToLower(s) {
	case "":
		return DefaultWaveform, nil
	case "square":
		return Square, nil
	case "sine":
		return Sine, nil
	}
	return DefaultWaveform, fmt.Errorf("unknown waveform %q", s)
}

func (w Waveform) String() string {
	if w == Sine {
		return "sine"
	}
	return "square"
}

// Tone is an endless mono float32 little-endian stream. It outputs silence
// while inactive; SetActive may be called from any goroutine.
type Tone struct {
	SampleRate int
	Frequency  float64
	Volume     float64
	Waveform   Waveform

	active atomic.Bool

	mu    sync.Mutex
	phase float64
}

func NewTone(sampleRate int, frequency, volume float64, wave Waveform) *Tone {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	if frequency <= 0 {
		frequency = DefaultFrequency
	}
	return &Tone{
		SampleRate: sampleRate,
		Frequency:  frequency,
		Volume:     math.Max(0, math.Min(1, volume)),
		Waveform:   wave,
	}
}

func (t *Tone) SetActive(on bool) {
	t.active.Store(on)
}

func (t *Tone) Active() bool {
	return t.active.Load()
}

// Read fills p with whole samples and never returns an error.
func (t *Tone) Read(p []byte) (int, error) {
	n := len(p) / bytesPerSample * bytesPerSample
	on := t.active.Load()

	t.mu.Lock()
	defer t.mu.Unlock()

	step := t.Frequency / float64(t.SampleRate)
	for i := 0; i < n; i += bytesPerSample {
		var v float64
		if on {
			v = t.sample() * t.Volume
			t.phase += step
			if t.phase >= 1 {
				t.phase -= math.Floor(t.phase)
			}
		} else {
			t.phase = 0
		}
		binary.LittleEndian.PutUint32(p[i:], math.Float32bits(float32(v)))
	}
	return n, nil
}

func (t *Tone) sample() float64 {
	if t.Waveform == Sine {
		return math.Sin(2 * math.Pi * t.phase)
	}
	if t.phase < 0.5 {
		return 1
	}
	return -1
}
