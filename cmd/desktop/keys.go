package main

import (
	"github.com/hajimehoshi/ebiten/v2"

	"gochip8/pkg/keypad"
)

var runeKeys = map[rune]ebiten.Key{
	'0': ebiten.KeyDigit0, '1': ebiten.KeyDigit1, '2': ebiten.KeyDigit2, '3': ebiten.KeyDigit3,
	'4': ebiten.KeyDigit4, '5': ebiten.KeyDigit5, '6': ebiten.KeyDigit6, '7': ebiten.KeyDigit7,
	'8': ebiten.KeyDigit8, '9': ebiten.KeyDigit9,
	'a': ebiten.KeyA, 'b': ebiten.KeyB, 'c': ebiten.KeyC, 'd': ebiten.KeyD,
	'e': ebiten.KeyE, 'f': ebiten.KeyF, 'g': ebiten.KeyG, 'h': ebiten.KeyH,
	'i': ebiten.KeyI, 'j': ebiten.KeyJ, 'k': ebiten.KeyK, 'l': ebiten.KeyL,
	'm': ebiten.KeyM, 'n': ebiten.KeyN, 'o': ebiten.KeyO, 'p': ebiten.KeyP,
	'q': ebiten.KeyQ, 'r': ebiten.KeyR, 's': ebiten.KeyS, 't': ebiten.KeyT,
	'u': ebiten.KeyU, 'v': ebiten.KeyV, 'w': ebiten.KeyW, 'x': ebiten.KeyX,
	'y': ebiten.KeyY, 'z': ebiten.KeyZ,
	',': ebiten.KeyComma, '.': ebiten.KeyPeriod, '/': ebiten.KeySlash,
	';': ebiten.KeySemicolon, '-': ebiten.KeyMinus, '=': ebiten.KeyEqual,
}

// windowKeys resolves a keypad layout to ebiten keys. Runes without a
// physical key are reported by index.
func windowKeys(l keypad.Layout) ([keypad.NumKeys]ebiten.Key, []int) {
	var keys [keypad.NumKeys]ebiten.Key
	var missing []int
	for i, r := range l {
		k, ok := runeKeys[r]
		if !ok {
			missing = append(missing, i)
			continue
		}
		keys[i] = k
	}
	return keys, missing
}

func pollKeys(keys [keypad.NumKeys]ebiten.Key) [keypad.NumKeys]bool {
	var down [keypad.NumKeys]bool
	for i, k := range keys {
		down[i] = ebiten.IsKeyPressed(k)
	}
	return down
}
