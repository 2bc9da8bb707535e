package main

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/retroenv/retrogolib/log"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"

	"gochip8/pkg/audio"
	"gochip8/pkg/chip8"
	"gochip8/pkg/clock"
	"gochip8/pkg/config"
	"gochip8/pkg/keypad"
	"gochip8/pkg/utils"
)

type Game struct {
	cfg    config.Config
	logger *log.Logger

	vm     *chip8.Machine
	runner *clock.Runner
	keys   [keypad.NumKeys]ebiten.Key
	beeper *audio.Beeper // nil when muted or no audio device

	displayImg *ebiten.Image // reused 64×32 canvas
	last       time.Time

	// halt is the engine error that paused the run, if any.
	halt  error
	shots int

	clipboardOnce sync.Once
	clipboardOK   bool
}

func newGame(cfg config.Config, logger *log.Logger, rom []byte) (*Game, error) {
	opts := []chip8.Option{}
	if cfg.Debug {
		opts = append(opts, chip8.WithLogger(logger))
	}
	vm := chip8.New(opts...)
	if err := vm.Load(rom); err != nil {
		return nil, err
	}

	keys, missing := windowKeys(cfg.Layout)
	if len(missing) > 0 {
		return nil, fmt.Errorf("keypad layout %q has no window key for index %X", cfg.Layout, missing[0])
	}

	return &Game{
		cfg:    cfg,
		logger: logger,
		vm:     vm,
		runner: clock.NewRunner(vm, clock.New(cfg.InstructionHz, cfg.TimerHz)),
		keys:   keys,
	}, nil
}

func (g *Game) Update() error {
	now := time.Now()
	var dt time.Duration
	if !g.last.IsZero() {
		dt = now.Sub(g.last)
	}
	g.last = now

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.restart()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.reload()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.cfg.Overlay = !g.cfg.Overlay
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		g.screenshot()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF10) {
		g.copyScreenshot()
	}

	g.advance(dt, pollKeys(g.keys))
	if g.beeper != nil {
		g.beeper.Update(g.halt == nil && g.vm.SoundActive())
	}
	return nil
}

// advance feeds the keypad and runs the instructions due after dt. An engine
// error pauses the machine until restart or reload.
func (g *Game) advance(dt time.Duration, keys [keypad.NumKeys]bool) {
	if g.halt != nil {
		return
	}
	g.vm.SetKeys(keys)
	if err := g.runner.Frame(dt); err != nil {
		g.halt = err
		g.logger.Error("engine halted", log.Err(err))
	}
}

// restart reruns the loaded program from 0x200 with memory untouched.
func (g *Game) restart() {
	g.vm.Restart()
	g.runner.Clock.Reset()
	g.halt = nil
	g.logger.Info("restarted")
}

// reload reads the rom from disk again and performs a full reset.
func (g *Game) reload() {
	rom, err := utils.ReadROM(g.cfg.ROM, chip8.MaxROMSize)
	if err == nil {
		err = g.vm.Load(rom)
	}
	if err != nil {
		g.logger.Error("reload failed", log.String("rom", g.cfg.ROM), log.Err(err))
		return
	}
	g.runner.Clock.Reset()
	g.halt = nil
	g.logger.Info("reloaded", log.String("rom", g.cfg.ROM), log.Int("bytes", len(rom)))
}

func (g *Game) screenshot() {
	dir := filepath.Dir(g.cfg.ROM)
	g.shots++
	name := utils.ScreenshotName(dir, g.cfg.ROM, g.shots)
	if err := g.vm.SaveScreenshot(name, g.cfg.Foreground, g.cfg.Background, g.cfg.Scale); err != nil {
		g.logger.Error("screenshot failed", log.Err(err))
		return
	}
	g.logger.Info("screenshot saved", log.String("file", name))
}

func (g *Game) copyScreenshot() {
	g.clipboardOnce.Do(func() {
		g.clipboardOK = clipboard.Init() == nil
	})
	if !g.clipboardOK {
		g.logger.Warn("clipboard unavailable")
		return
	}
	var buf bytes.Buffer
	if err := g.vm.EncodePNG(&buf, g.cfg.Foreground, g.cfg.Background, g.cfg.Scale); err != nil {
		g.logger.Error("screenshot failed", log.Err(err))
		return
	}
	clipboard.Write(clipboard.FmtImage, buf.Bytes())
	g.logger.Info("screenshot copied to clipboard")
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.displayImg == nil {
		g.displayImg = ebiten.NewImage(chip8.Width, chip8.Height)
	}
	g.displayImg.WritePixels(g.vm.FramebufferRGBA(g.cfg.Foreground, g.cfg.Background))

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.cfg.Scale), float64(g.cfg.Scale))
	screen.DrawImage(g.displayImg, op)

	if g.cfg.Overlay || g.halt != nil {
		g.drawOverlay(screen)
	}
}

var (
	overlayColor = color.RGBA{190, 190, 190, 255}
	haltColor    = color.RGBA{230, 60, 60, 255}
)

func (g *Game) drawOverlay(screen *ebiten.Image) {
	face := basicfont.Face7x13
	for i, line := range overlayLines(g.vm) {
		text.Draw(screen, line, face, 4, 14+i*14, overlayColor)
	}
	if g.halt != nil {
		y := chip8.Height*g.cfg.Scale - 20
		text.Draw(screen, g.halt.Error(), face, 4, y, haltColor)
		text.Draw(screen, "ESC restart  F5 reload", face, 4, y+14, haltColor)
	}
}

// overlayLines lists the program counter and the opcode at it.
func overlayLines(vm *chip8.Machine) []string {
	lines := []string{fmt.Sprintf("PC: 0x%04X", vm.PC)}
	op, err := vm.NextOpcode()
	if err != nil {
		lines = append(lines, "OP: ----")
	} else {
		lines = append(lines, fmt.Sprintf("OP: 0x%04X", op))
	}
	if vm.State() == chip8.WaitingForKey {
		lines = append(lines, "waiting for key")
	}
	return lines
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return chip8.Width * g.cfg.Scale, chip8.Height * g.cfg.Scale
}

func main() {
	cfg, err := config.Parse("chip8-desktop", os.Args[1:])
	if err != nil {
		var usage *config.UsageError
		if errors.As(err, &usage) {
			fmt.Fprintln(os.Stderr, usage)
			usage.ShowUsage(os.Stderr)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := config.CreateLogger(cfg.Debug, cfg.Quiet)

	rom, err := utils.ReadROM(cfg.ROM, chip8.MaxROMSize)
	if err != nil {
		logger.Error("failed to read rom", log.String("rom", cfg.ROM), log.Err(err))
		os.Exit(1)
	}

	game, err := newGame(cfg, logger, rom)
	if err != nil {
		logger.Error("failed to start", log.Err(err))
		os.Exit(1)
	}

	if !cfg.Mute {
		tone := audio.NewTone(audio.DefaultSampleRate, cfg.ToneHz, cfg.Volume, cfg.Waveform)
		beeper, err := audio.NewBeeper(tone)
		if err != nil {
			logger.Warn("audio disabled", log.Err(err))
		} else {
			game.beeper = beeper
			defer beeper.Close()
		}
	}

	ebiten.SetWindowSize(chip8.Width*cfg.Scale, chip8.Height*cfg.Scale)
	ebiten.SetWindowTitle("CHIP-8 - " + filepath.Base(cfg.ROM))
	logger.Info("running", log.String("rom", cfg.ROM), log.Int("bytes", len(rom)), log.Int("ips", cfg.InstructionHz))

	if err := ebiten.RunGame(game); err != nil {
		logger.Error("window closed with error", log.Err(err))
	}
}
