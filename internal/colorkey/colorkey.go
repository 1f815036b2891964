// Package colorkey derives a player's stable display color
// deterministically from their id, so that server-rendered chat
// fragments and client-rendered sprites always agree on the color
// without any extra wire field.
//
// The hash-then-derive shape mirrors the deterministic seed derivation
// the teacher codebase uses for procedural level generation (a
// fixed-width input hashed into a PRNG seed); here the "PRNG" is
// replaced by the exact HSL derivation spec.md §6 pins, since any two
// implementations of the algorithm must agree bit-for-bit.
package colorkey

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// FromID returns the uppercase "#RRGGBB" color for the given player id,
// per spec.md §6: a 32-bit polynomial hash of the 16 id bytes, reduced
// to H/S/L, converted to RGB.
func FromID(id uuid.UUID) string {
	var hash uint32
	for _, b := range id {
		hash = hash*31 + uint32(b)
	}

	h := float64(hash % 360)
	s := float64(70+hash%30) / 100.0
	l := float64(50+hash%20) / 100.0

	r, g, b := hslToRGB(h, s, l)
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// hslToRGB converts HSL (h in [0,360), s and l in [0,1]) to 8-bit RGB
// using the standard chroma/hue-segment construction.
func hslToRGB(h, s, l float64) (r, g, b uint8) {
	c := (1 - math.Abs(2*l-1)) * s
	hPrime := h / 60.0
	x := c * (1 - math.Abs(math.Mod(hPrime, 2)-1))
	m := l - c/2

	var r1, g1, b1 float64
	switch {
	case hPrime < 1:
		r1, g1, b1 = c, x, 0
	case hPrime < 2:
		r1, g1, b1 = x, c, 0
	case hPrime < 3:
		r1, g1, b1 = 0, c, x
	case hPrime < 4:
		r1, g1, b1 = 0, x, c
	case hPrime < 5:
		r1, g1, b1 = x, 0, c
	default:
		r1, g1, b1 = c, 0, x
	}

	return to8bit(r1 + m), to8bit(g1 + m), to8bit(b1 + m)
}

func to8bit(v float64) uint8 {
	scaled := v * 255.0
	if scaled < 0 {
		scaled = 0
	}
	if scaled > 255 {
		scaled = 255
	}
	return uint8(math.Round(scaled))
}
