// Package config parses host command lines and builds the logger.
package config

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"
	"time"

	"gochip8/pkg/audio"
	"gochip8/pkg/clock"
	"gochip8/pkg/keypad"
)

const (
	DefaultScale = 10
	MaxScale     = 40
)

type Config struct {
	ROM string

	InstructionHz int
	TimerHz       int

	Scale      int
	Foreground color.RGBA
	Background color.RGBA
	Overlay    bool

	ToneHz   float64
	Volume   float64
	Waveform audio.Waveform
	Mute     bool

	Layout keypad.Layout
	Hold   time.Duration

	// Headless runs Cycles instructions without a display (console host only).
	Headless bool
	Cycles   int

	Debug bool
	Quiet bool
}

func Default() Config {
	return Config{
		InstructionHz: clock.DefaultInstructionHz,
		TimerHz:       clock.DefaultTimerHz,
		Scale:         DefaultScale,
		Foreground:    color.RGBA{0x00, 0xFF, 0x00, 0xFF},
		Background:    color.RGBA{0x00, 0x00, 0x00, 0xFF},
		ToneHz:        audio.DefaultFrequency,
		Volume:        audio.DefaultVolume,
		Waveform:      audio.DefaultWaveform,
		Layout:        keypad.DefaultLayout,
		Hold:          keypad.DefaultHold,
	}
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage(w io.Writer) {
	fmt.Fprintf(w, "usage: %s [options] <rom file>\n\n", e.flags.Name())
	e.flags.SetOutput(w)
	e.flags.PrintDefaults()
	fmt.Fprintln(w)
}

// Parse reads args (without the program name). The ROM comes from -rom or
// the first positional argument.
func Parse(name string, args []string) (Config, error) {
	cfg := Default()
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	fg := "#00FF00"
	bg := "#000000"
	wave := cfg.Waveform.String()
	layout := cfg.Layout.String()

	flags.StringVar(&cfg.ROM, "rom", "", "path of the CHIP-8 program to load")
	flags.IntVar(&cfg.InstructionHz, "ips", cfg.InstructionHz, "instructions executed per second")
	flags.IntVar(&cfg.TimerHz, "timer-hz", cfg.TimerHz, "delay and sound timer rate")
	flags.IntVar(&cfg.Scale, "scale", cfg.Scale, "window pixels per CHIP-8 pixel")
	flags.StringVar(&fg, "fg", fg, "colour of lit pixels (#RRGGBB)")
	flags.StringVar(&bg, "bg", bg, "colour of unlit pixels (#RRGGBB)")
	flags.BoolVar(&cfg.Overlay, "overlay", false, "show the PC/OP overlay")
	flags.Float64Var(&cfg.ToneHz, "tone", cfg.ToneHz, "buzzer frequency in Hz")
	flags.Float64Var(&cfg.Volume, "volume", cfg.Volume, "buzzer amplitude (0-1)")
	flags.StringVar(&wave, "wave", wave, "buzzer waveform (sine/square)")
	flags.BoolVar(&cfg.Mute, "mute", false, "disable the buzzer")
	flags.StringVar(&layout, "keys", layout, "host keys for keypad 0-F, in order")
	flags.DurationVar(&cfg.Hold, "hold", cfg.Hold, "how long a terminal key press stays down")
	flags.BoolVar(&cfg.Headless, "headless", false, "run without a display (console only)")
	flags.IntVar(&cfg.Cycles, "cycles", 0, "instructions to run in headless mode, 0 runs until an error")
	flags.BoolVar(&cfg.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&cfg.Quiet, "quiet", false, "perform operations quietly")

	if err := flags.Parse(args); err != nil {
		msg := err.Error()
		if errors.Is(err, flag.ErrHelp) {
			msg = "help requested"
		}
		return cfg, &UsageError{flags: flags, msg: msg}
	}

	rest := flags.Args()
	if cfg.ROM == "" && len(rest) > 0 {
		cfg.ROM, rest = rest[0], rest[1:]
	}
	if len(rest) > 0 {
		return cfg, &UsageError{flags: flags, msg: fmt.Sprintf("unexpected argument %s", rest[0])}
	}
	if cfg.ROM == "" {
		return cfg, &UsageError{flags: flags, msg: "no rom file given"}
	}

	var err error
	if cfg.Foreground, err = ParseColor(fg); err != nil {
		return cfg, fmt.Errorf("-fg: %w", err)
	}
	if cfg.Background, err = ParseColor(bg); err != nil {
		return cfg, fmt.Errorf("-bg: %w", err)
	}
	if cfg.Waveform, err = audio.ParseWaveform(wave); err != nil {
		return cfg, fmt.Errorf("-wave: %w", err)
	}
	if cfg.Layout, err = keypad.ParseLayout(layout); err != nil {
		return cfg, fmt.Errorf("-keys: %w", err)
	}

	return cfg, cfg.Validate()
}

// Validate checks value ranges that flag parsing cannot express.
func (c Config) Validate() error {
	switch {
	case c.InstructionHz <= 0:
		return fmt.Errorf("instruction rate must be positive, got %d", c.InstructionHz)
	case c.TimerHz <= 0:
		return fmt.Errorf("timer rate must be positive, got %d", c.TimerHz)
	case c.Scale < 1 || c.Scale > MaxScale:
		return fmt.Errorf("scale must be between 1 and %d, got %d", MaxScale, c.Scale)
	case c.ToneHz <= 0:
		return fmt.Errorf("tone frequency must be positive, got %g", c.ToneHz)
	case c.Volume < 0 || c.Volume > 1:
		return fmt.Errorf("volume must be between 0 and 1, got %g", c.Volume)
	case c.Hold <= 0:
		return fmt.Errorf("key hold must be positive, got %v", c.Hold)
	case c.Cycles < 0:
		return fmt.Errorf("cycles must not be negative, got %d", c.Cycles)
	}
	return nil
}

// ParseColor accepts #RRGGBB or RRGGBB.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	return color.RGBA{R: byte(v >> 16), G: byte(v >> 8), B: byte(v), A: 0xFF}, nil
}
