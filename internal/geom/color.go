package geom

import (
	"strings"

	"github.com/coreman2200/funtimes-arcanim/internal/diagnostics"
)

type Color struct{ R, G, B float32 }

var (
	White  = Color{1, 1, 1}
	Black  = Color{0, 0, 0}
	Red    = Color{R: 1}
	Yellow = Color{R: 1, G: 1}
	Blue   = Color{B: 1}
)

// Mix blends a and b by alpha (0..1). Channels are linear; no gamma assumed.
func Mix(a, b Color, alpha float64) Color {
	if alpha <= 0 {
		return a
	}
	if alpha >= 1 {
		return b
	}
	af := float32(1.0 - alpha)
	bf := float32(alpha)
	return Color{
		R: a.R*af + b.R*bf,
		G: a.G*af + b.G*bf,
		B: a.B*af + b.B*bf,
	}
}

// Gradient spreads n colors evenly across the stops.
func Gradient(stops []Color, n int) []Color {
	if n <= 0 {
		return nil
	}
	out := make([]Color, n)
	switch len(stops) {
	case 0:
		for i := range out {
			out[i] = White
		}
		return out
	case 1:
		for i := range out {
			out[i] = stops[0]
		}
		return out
	}
	if n == 1 {
		out[0] = stops[0]
		return out
	}
	segs := float64(len(stops) - 1)
	for i := range out {
		p := float64(i) / float64(n-1) * segs
		k := int(p)
		if k >= len(stops)-1 {
			out[i] = stops[len(stops)-1]
			continue
		}
		out[i] = Mix(stops[k], stops[k+1], p-float64(k))
	}
	return out
}

var named = map[string]Color{
	"white":  White,
	"black":  Black,
	"red":    Red,
	"yellow": Yellow,
	"blue":   Blue,
	"green":  {G: 1},
	"purple": {R: 0.5, B: 0.5},
}

// ParseColor looks up a named color (case-insensitive).
func ParseColor(name string) (Color, error) {
	c, ok := named[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Color{}, diagnostics.Configf("color", name, "unknown color")
	}
	return c, nil
}
