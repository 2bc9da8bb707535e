package main

import (
	"strings"

	"gochip8/pkg/chip8"
)

// Terminal cells are roughly twice as tall as wide, so two display rows
// share one cell row: the upper half block is drawn in the top pixel's
// colour over the bottom pixel's colour.
const (
	halfBlock  = '▀'
	cellRows   = chip8.Height / 2
	statusRows = 2
)

type cell struct {
	top, bottom bool
}

func frameCells(fb *[chip8.Height][chip8.Width]byte) [cellRows][chip8.Width]cell {
	var cells [cellRows][chip8.Width]cell
	for r := 0; r < cellRows; r++ {
		for x := 0; x < chip8.Width; x++ {
			cells[r][x] = cell{
				top:    fb[2*r][x]&1 != 0,
				bottom: fb[2*r+1][x]&1 != 0,
			}
		}
	}
	return cells
}

// asciiFrame renders the display with '#' for lit pixels and '.' for the rest.
func asciiFrame(vm *chip8.Machine) string {
	var b strings.Builder
	b.Grow((chip8.Width + 1) * chip8.Height)
	for y := 0; y < chip8.Height; y++ {
		for x := 0; x < chip8.Width; x++ {
			if vm.Pixel(x, y) {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
