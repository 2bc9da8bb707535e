package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrogolib/log"

	"gochip8/pkg/chip8"
	"gochip8/pkg/clock"
	"gochip8/pkg/config"
	"gochip8/pkg/utils"
)

func main() {
	cfg, err := config.Parse("chip8-console", os.Args[1:])
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

	if err := run(cfg, logger, os.Stdout); err != nil {
		logger.Error("stopped", log.String("rom", cfg.ROM), log.Err(err))
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *log.Logger, out io.Writer) error {
	rom, err := utils.ReadROM(cfg.ROM, chip8.MaxROMSize)
	if err != nil {
		return err
	}

	opts := []chip8.Option{}
	if cfg.Debug {
		opts = append(opts, chip8.WithLogger(logger))
	}
	vm := chip8.New(opts...)
	if err := vm.Load(rom); err != nil {
		return err
	}
	logger.Info("loaded", log.String("rom", cfg.ROM), log.Int("bytes", len(rom)))

	runner := clock.NewRunner(vm, clock.New(cfg.InstructionHz, cfg.TimerHz))
	if cfg.Headless {
		return runHeadless(cfg, vm, runner, out)
	}
	return runTerminal(cfg, logger, vm, runner)
}

// runHeadless executes cfg.Cycles instructions (or until an engine error when
// Cycles is zero) and prints the final machine state and display.
func runHeadless(cfg config.Config, vm *chip8.Machine, runner *clock.Runner, out io.Writer) error {
	var err error
	if cfg.Cycles > 0 {
		err = runner.RunCycles(cfg.Cycles)
	} else {
		for err == nil {
			err = runner.RunCycles(1)
		}
	}

	fmt.Fprintf(out, "steps=%d ticks=%d\n", runner.Steps, runner.Ticks)
	fmt.Fprint(out, vm)
	fmt.Fprint(out, asciiFrame(vm))
	return err
}
