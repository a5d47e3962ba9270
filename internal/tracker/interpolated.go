package tracker

import (
	"math"

	"github.com/coreman2200/funtimes-arcanim/internal/diagnostics"
)

// settle absorbs rounding in accumulated time so a run of dts that sums to
// the duration lands exactly on the target.
const settle = 1e-12

// Interpolated moves from its current value toward a target over a
// duration, driven by Advance.
type Interpolated struct {
	base
	v       float64
	from    float64
	to      float64
	dur     float64
	elapsed accum
	ease    Ease
	active  bool
}

func NewInterpolated(name string, initial float64, opts ...Option) (*Interpolated, error) {
	b, err := newBase(name, opts)
	if err != nil {
		return nil, err
	}
	i := &Interpolated{base: b}
	i.v = i.clamp(initial)
	i.to = i.v
	return i, nil
}

func (i *Interpolated) Get() float64 { return i.v }

// Set assigns v immediately and cancels any running animation.
func (i *Interpolated) Set(v float64) error {
	if math.IsNaN(v) {
		return diagnostics.Domainf("set", i.name, "value is NaN")
	}
	i.v = i.clamp(v)
	i.to = i.v
	i.active = false
	return nil
}

// AnimateTo starts moving from the current value to target over duration
// seconds. A nil ease is linear; a zero duration snaps.
func (i *Interpolated) AnimateTo(target, duration float64, ease Ease) error {
	if duration < 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return diagnostics.Domainf("animate", i.name, "duration %v must be finite and non-negative", duration)
	}
	if math.IsNaN(target) {
		return diagnostics.Domainf("animate", i.name, "target is NaN")
	}
	if ease == nil {
		ease = Linear
	}
	i.from = i.v
	i.to = i.clamp(target)
	i.dur = duration
	i.ease = ease
	i.elapsed = accum{}
	i.active = duration > 0
	if !i.active {
		i.v = i.to
	}
	return nil
}

func (i *Interpolated) Advance(dt float64) (float64, error) {
	if err := i.checkDT(dt); err != nil {
		return i.v, err
	}
	if !i.active {
		return i.v, nil
	}
	i.elapsed.add(dt)
	t := i.elapsed.value()
	if t >= i.dur*(1-settle) {
		i.v = i.to
		i.active = false
		return i.v, nil
	}
	i.v = i.from + (i.to-i.from)*i.ease.at(t/i.dur)
	return i.v, nil
}

// Active reports whether an animation is in progress.
func (i *Interpolated) Active() bool { return i.active }

// Target is the value the current (or last) animation ends on.
func (i *Interpolated) Target() float64 { return i.to }
