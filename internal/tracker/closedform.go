package tracker

import (
	"math"

	"github.com/coreman2200/funtimes-arcanim/internal/diagnostics"
)

// Func is a closed-form function of accumulated time in seconds.
type Func func(t float64) float64

// Harmonic returns the small-angle pendulum solution
// amplitude*cos(t*sqrt(g/length)).
func Harmonic(amplitude, g, length float64) (Func, error) {
	if !(length > 0) {
		return nil, diagnostics.Configf("harmonic", "", "length %v must be positive", length)
	}
	if g < 0 || math.IsNaN(g) {
		return nil, diagnostics.Configf("harmonic", "", "gravity %v must be non-negative", g)
	}
	w := math.Sqrt(g / length)
	return func(t float64) float64 { return amplitude * math.Cos(t*w) }, nil
}

// ClosedForm evaluates f at its own accumulated time.
type ClosedForm struct {
	base
	f Func
	t accum
	v float64
}

// NewClosedForm builds a pull-based value; the initial value is f(0).
func NewClosedForm(name string, f Func, opts ...Option) (*ClosedForm, error) {
	if f == nil {
		return nil, diagnostics.Configf("new", name, "rate function is nil")
	}
	b, err := newBase(name, opts)
	if err != nil {
		return nil, err
	}
	c := &ClosedForm{base: b, f: f}
	c.v = c.clamp(f(0))
	return c, nil
}

func (c *ClosedForm) Get() float64 { return c.v }

// Set pins the value until the next Advance recomputes f(t).
func (c *ClosedForm) Set(v float64) error {
	c.v = c.clamp(v)
	return nil
}

// Advance accumulates dt (scaled) and returns f(t).
func (c *ClosedForm) Advance(dt float64) (float64, error) {
	if c.f == nil {
		return 0, diagnostics.Configf("advance", c.name, "undefined rate function")
	}
	if err := c.checkDT(dt); err != nil {
		return c.v, err
	}
	c.t.add(dt * c.scale)
	v := c.f(c.t.value())
	if math.IsNaN(v) {
		return c.v, diagnostics.Domainf("advance", c.name, "rate function undefined at t=%v", c.t.value())
	}
	c.v = c.clamp(v)
	return c.v, nil
}

// Elapsed is the accumulated (scaled) time.
func (c *ClosedForm) Elapsed() float64 { return c.t.value() }

// Reset rewinds accumulated time to zero.
func (c *ClosedForm) Reset() {
	c.t = accum{}
	if c.f != nil {
		c.v = c.clamp(c.f(0))
	}
}
