// Package keypad maps host keys onto the 16-key CHIP-8 hex keypad.
//
// The default layout places the COSMAC VIP keypad on the left of a QWERTY
// keyboard:
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D  ->  Q W E R
//	7 8 9 E      A S D F
//	A 0 B F      Z X C V
package keypad

import (
	"fmt"
	"strings"
	"unicode"
)

const NumKeys = 16

// Layout holds the host rune for each keypad index 0x0-0xF.
type Layout [NumKeys]rune

var DefaultLayout = Layout{
	'x', '1', '2', '3',
	'q', 'w', 'e', 'a',
	's', 'd', 'z', 'c',
	'4', 'r', 'f', 'v',
}

// ParseLayout builds a layout from a 16-character string listing the host
// key for indices 0 to F in order.
func ParseLayout(s string) (Layout, error) {
	var l Layout
	runes := []rune(strings.ToLower(s))
	if len(runes) != NumKeys {
		return l, fmt.Errorf("keypad layout needs %d keys, got %d", NumKeys, len(runes))
	}
	seen := make(map[rune]int, NumKeys)
	for i, r := range runes {
		if prev, ok := seen[r]; ok {
			return l, fmt.Errorf("keypad layout maps %q to both %X and %X", r, prev, i)
		}
		seen[r] = i
		l[i] = r
	}
	return l, nil
}

// IndexForRune returns the keypad index bound to r, ignoring case.
func (l Layout) IndexForRune(r rune) (int, bool) {
	r = unicode.ToLower(r)
	for i, k := range l {
		if k == r {
			return i, true
		}
	}
	return 0, false
}

func (l Layout) String() string {
	return string(l[:])
}
