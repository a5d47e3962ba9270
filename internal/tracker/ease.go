package tracker

import (
	"sort"

	"github.com/coreman2200/funtimes-arcanim/internal/diagnostics"
)

// Ease maps normalized progress in [0,1] to eased progress in [0,1].
type Ease func(x float64) float64

var (
	// Linear is constant speed.
	Linear Ease = func(x float64) float64 { return x }
	// Smooth is the classic smoothstep 3x^2 - 2x^3.
	Smooth Ease = func(x float64) float64 { return x * x * (3 - 2*x) }
	// Cubic is smootherstep 6x^5 - 15x^4 + 10x^3.
	Cubic Ease = func(x float64) float64 { return x * x * x * (x*(x*6-15) + 10) }
)

var eases = map[string]Ease{
	"":       Linear,
	"linear": Linear,
	"smooth": Smooth,
	"cubic":  Cubic,
}

// ParseEase resolves a curve by name ("linear", "smooth", "cubic").
func ParseEase(name string) (Ease, error) {
	e, ok := eases[name]
	if !ok {
		return nil, diagnostics.Configf("ease", name, "unknown easing curve; want one of %v", EaseNames())
	}
	return e, nil
}

// EaseNames lists the named curves accepted by ParseEase.
func EaseNames() []string {
	out := make([]string, 0, len(eases))
	for k := range eases {
		if k != "" {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func (e Ease) at(x float64) float64 {
	x = clamp01(x)
	if e == nil {
		return x
	}
	return e(x)
}

// clamp01 clamps x in [0,1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
