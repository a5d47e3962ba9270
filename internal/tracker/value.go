// Package tracker holds the time-varying scalars that drive derived geometry.
//
// A Value is advanced once per frame by its owning clock, either from a
// closed-form function of accumulated time (pull) or toward a target set by
// an external driver (push). Values never read the wall clock.
package tracker

import (
	"math"

	"github.com/coreman2200/funtimes-arcanim/internal/diagnostics"
)

// Value is a named scalar tracked across frames.
type Value interface {
	Name() string
	Get() float64
	Set(v float64) error
	Advance(dt float64) (float64, error)
}

// Owned is implemented by values that can be claimed by a single clock.
type Owned interface {
	Claim(owner any) error
	Release(owner any)
}

// Option configures the shared parts of a Value.
type Option func(*base)

// WithBounds clamps the value into [min, max].
func WithBounds(min, max float64) Option {
	return func(b *base) {
		b.bounded = true
		b.min, b.max = min, max
	}
}

// WithTimeScale multiplies every dt before accumulation.
func WithTimeScale(s float64) Option {
	return func(b *base) { b.scale = s }
}

type base struct {
	name    string
	bounded bool
	min     float64
	max     float64
	scale   float64
	owner   any
}

func newBase(name string, opts []Option) (base, error) {
	b := base{name: name, scale: 1}
	for _, o := range opts {
		o(&b)
	}
	if b.bounded && (b.min > b.max || math.IsNaN(b.min) || math.IsNaN(b.max)) {
		return b, diagnostics.Configf("new", name, "bounds [%v, %v] are empty", b.min, b.max)
	}
	if !(b.scale > 0) || math.IsInf(b.scale, 0) {
		return b, diagnostics.Configf("new", name, "time scale %v must be positive and finite", b.scale)
	}
	return b, nil
}

func (b *base) Name() string { return b.name }

// Claim records owner as the exclusive driver of this value.
func (b *base) Claim(owner any) error {
	if b.owner != nil && b.owner != owner {
		return diagnostics.Configf("claim", b.name, "value is already owned by another clock")
	}
	b.owner = owner
	return nil
}

// Release drops the claim if owner holds it.
func (b *base) Release(owner any) {
	if b.owner == owner {
		b.owner = nil
	}
}

func (b *base) clamp(v float64) float64 {
	if !b.bounded {
		return v
	}
	return math.Max(b.min, math.Min(b.max, v))
}

func (b *base) checkDT(dt float64) error {
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return diagnostics.Domainf("advance", b.name, "dt %v must be finite and non-negative", dt)
	}
	return nil
}

// accum is a Neumaier-compensated running sum so accumulated time does not
// depend on how dt is chunked.
type accum struct {
	sum, c float64
}

func (a *accum) add(x float64) {
	t := a.sum + x
	if math.Abs(a.sum) >= math.Abs(x) {
		a.c += (a.sum - t) + x
	} else {
		a.c += (x - t) + a.sum
	}
	a.sum = t
}

func (a *accum) value() float64 { return a.sum + a.c }
