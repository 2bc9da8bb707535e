package audio

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samples(t *testing.T, tone *Tone, n int) []float32 {
	t.Helper()
	buf := make([]byte, n*bytesPerSample)
	got, err := tone.Read(buf)
	require.NoError(t, err)
	require.Equal(t, len(buf), got)

	out := make([]float32, n)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return out
}

func TestToneSilentWhenInactive(t *testing.T) {
	tone := NewTone(8000, 1000, 0.5, Square)
	for _, s := range samples(t, tone, 64) {
		assert.Zero(t, s)
	}
}

func TestToneSquare(t *testing.T) {
	tone := NewTone(8000, 1000, 0.5, Square)
	tone.SetActive(true)
	require.True(t, tone.Active())

	// 8 samples per period: four high, four low.
	got := samples(t, tone, 16)
	want := []float32{0.5, 0.5, 0.5, 0.5, -0.5, -0.5, -0.5, -0.5}
	assert.Equal(t, want, got[:8])
	assert.Equal(t, want, got[8:])
}

func TestToneSine(t *testing.T) {
	tone := NewTone(8000, 2000, 1, Sine)
	tone.SetActive(true)

	got := samples(t, tone, 4)
	assert.InDelta(t, 0, got[0], 1e-6)
	assert.InDelta(t, 1, got[1], 1e-6)
	assert.InDelta(t, 0, got[2], 1e-6)
	assert.InDelta(t, -1, got[3], 1e-6)
}

func TestToneReadsWholeSamples(t *testing.T) {
	tone := NewTone(0, 0, 2, Square)
	assert.Equal(t, DefaultSampleRate, tone.SampleRate)
	assert.Equal(t, DefaultFrequency, tone.Frequency)
	assert.Equal(t, 1.0, tone.Volume)

	n, err := tone.Read(make([]byte, 10))
	require.NoError(t, err)
	assert.Equal(t, 8, n)
}

func TestParseWaveform(t *testing.T) {
	w, err := ParseWaveform("SINE")
	require.NoError(t, err)
	assert.Equal(t, Sine, w)
	assert.Equal(t, "sine", w.String())

	w, err = ParseWaveform("square")
	require.NoError(t, err)
	assert.Equal(t, Square, w)

	w, err = ParseWaveform("")
	require.NoError(t, err)
	assert.Equal(t, DefaultWaveform, w)

	_, err = ParseWaveform("saw")
	assert.Error(t, err)
}
