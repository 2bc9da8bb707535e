package audio

import (
	"sync"

	"github.com/ebitengine/oto/v3"
)

// Beeper plays a Tone through the system audio device.
type Beeper struct {
	tone   *Tone
	ctx    *oto.Context
	player *oto.Player
	mu     sync.Mutex
}

// NewBeeper opens the audio device and starts streaming tone. The stream is
// silent until Update(true).
func NewBeeper(tone *Tone) (*Beeper, error) {
	op := &oto.NewContextOptions{
		SampleRate:   tone.SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	b := &Beeper{tone: tone, ctx: ctx}
	b.player = ctx.NewPlayer(tone)
	b.player.Play()
	return b, nil
}

// Update switches the tone on or off. Hosts call it once per frame with
// Machine.SoundActive().
func (b *Beeper) Update(active bool) {
	b.tone.SetActive(active)
}

func (b *Beeper) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.player == nil {
		return nil
	}
	b.tone.SetActive(false)
	err := b.player.Close()
	b.player = nil
	return err
}
