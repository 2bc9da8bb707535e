package main

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/nsf/termbox-go"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"

	"gochip8/pkg/audio"
	"gochip8/pkg/chip8"
	"gochip8/pkg/clock"
	"gochip8/pkg/config"
	"gochip8/pkg/keypad"
)

var errNotTerminal = errors.New("stdin is not a terminal, use -headless")

const frameInterval = time.Second / 60

// checkTerminal verifies stdin is a terminal large enough for the display
// plus the status line.
func checkTerminal() error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return errNotTerminal
	}
	w, h, err := term.GetSize(fd)
	if err != nil {
		return err
	}
	if w < chip8.Width || h < cellRows+statusRows {
		return fmt.Errorf("terminal is %dx%d, need at least %dx%d", w, h, chip8.Width, cellRows+statusRows)
	}
	return nil
}

func runTerminal(cfg config.Config, logger *log.Logger, vm *chip8.Machine, runner *clock.Runner) error {
	if err := checkTerminal(); err != nil {
		return err
	}

	var beeper *audio.Beeper
	if !cfg.Mute {
		tone := audio.NewTone(audio.DefaultSampleRate, cfg.ToneHz, cfg.Volume, cfg.Waveform)
		b, err := audio.NewBeeper(tone)
		if err != nil {
			logger.Warn("audio disabled", log.Err(err))
		} else {
			beeper = b
			defer beeper.Close()
		}
	}

	if err := termbox.Init(); err != nil {
		return err
	}
	defer termbox.Close()
	termbox.SetOutputMode(termbox.OutputRGB)

	events := make(chan termbox.Event, 16)
	quit := make(chan struct{})
	polled := make(chan struct{})
	go pollEvents(termbox.PollEvent, events, quit, polled)
	defer func() {
		close(quit)
		termbox.Interrupt()
		<-polled
	}()

	latch := keypad.NewLatch(cfg.Hold)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	fg := attribute(cfg.Foreground)
	bg := attribute(cfg.Background)
	last := time.Now()

	for {
		select {
		case ev := <-events:
			switch ev.Type {
			case termbox.EventKey:
				switch {
				case ev.Key == termbox.KeyCtrlC:
					return nil
				case ev.Key == termbox.KeyEsc:
					vm.Restart()
					runner.Clock.Reset()
					latch.ReleaseAll()
				case ev.Ch != 0:
					if k, ok := cfg.Layout.IndexForRune(ev.Ch); ok {
						latch.Press(k, time.Now())
					}
				}
			case termbox.EventError:
				return ev.Err
			}

		case now := <-ticker.C:
			vm.SetKeys(latch.Snapshot(now))
			err := runner.Frame(now.Sub(last))
			last = now
			if beeper != nil {
				beeper.Update(err == nil && vm.SoundActive())
			}
			if err != nil {
				return err
			}
			draw(vm, fg, bg)
		}
	}
}

// pollEvents forwards events from poll until it reports an interrupt. Once
// quit is closed events are dropped; polling continues so that the blocking
// termbox.Interrupt call is always received.
func pollEvents(poll func() termbox.Event, events chan<- termbox.Event, quit <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		ev := poll()
		if ev.Type == termbox.EventInterrupt {
			return
		}
		select {
		case events <- ev:
		case <-quit:
		}
	}
}

func attribute(c color.RGBA) termbox.Attribute {
	return termbox.RGBToAttribute(c.R, c.G, c.B)
}

func draw(vm *chip8.Machine, fg, bg termbox.Attribute) {
	fb := vm.Framebuffer()
	cells := frameCells(&fb)
	for r, row := range cells {
		for x, c := range row {
			top, bottom := bg, bg
			if c.top {
				top = fg
			}
			if c.bottom {
				bottom = fg
			}
			termbox.SetCell(x, r, halfBlock, top, bottom)
		}
	}

	status := fmt.Sprintf("PC 0x%04X  ", vm.PC)
	if op, err := vm.NextOpcode(); err == nil {
		status += fmt.Sprintf("OP 0x%04X  ", op)
	}
	if vm.State() == chip8.WaitingForKey {
		status += "waiting for key  "
	}
	status += "ESC restart  ^C quit"
	for x := 0; x < chip8.Width; x++ {
		ch := ' '
		if x < len(status) {
			ch = rune(status[x])
		}
		termbox.SetCell(x, cellRows+1, ch, termbox.ColorDefault, termbox.ColorDefault)
	}
	termbox.Flush()
}
