package tracker

import (
	"github.com/coreman2200/funtimes-arcanim/internal/diagnostics"
)

// Keyframe represents a value at time T (seconds) with an easing curve
// that applies to the segment starting at this keyframe.
type Keyframe struct {
	T    float64 `json:"t" yaml:"t" mapstructure:"t"`
	V    float64 `json:"v" yaml:"v" mapstructure:"v"`
	Ease string  `json:"ease,omitempty" yaml:"ease,omitempty" mapstructure:"ease"` // "linear","smooth","cubic"
}

// Envelope is a sorted list of keyframes; Eval(t) interpolates a value.
type Envelope struct {
	Keys []Keyframe `json:"keys" yaml:"keys" mapstructure:"keys"`
}

// Validate checks keys are sorted by T and name known curves.
func (e Envelope) Validate() error {
	for i, k := range e.Keys {
		if _, err := ParseEase(k.Ease); err != nil {
			return err
		}
		if i > 0 && k.T < e.Keys[i-1].T {
			return diagnostics.Configf("envelope", "", "key %d at t=%v precedes key %d at t=%v", i, k.T, i-1, e.Keys[i-1].T)
		}
	}
	return nil
}

// Eval returns the value of the envelope at time t (seconds).
// If there are no keys, returns 0; if one key, returns its value.
func (e Envelope) Eval(t float64) float64 {
	n := len(e.Keys)
	if n == 0 {
		return 0
	}
	if n == 1 || t <= e.Keys[0].T {
		return e.Keys[0].V
	}
	if t >= e.Keys[n-1].T {
		return e.Keys[n-1].V
	}
	for i := 0; i < n-1; i++ {
		a := e.Keys[i]
		b := e.Keys[i+1]
		if t >= a.T && t <= b.T {
			den := b.T - a.T
			if den <= 0 {
				return b.V
			}
			ease := eases[a.Ease]
			return a.V + (b.V-a.V)*ease.at((t-a.T)/den)
		}
	}
	return e.Keys[n-1].V
}

// End is the time of the last key.
func (e Envelope) End() float64 {
	if len(e.Keys) == 0 {
		return 0
	}
	return e.Keys[len(e.Keys)-1].T
}
