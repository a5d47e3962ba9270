// Package clock drives tracked values and their geometry bindings once per
// frame.
//
// A tick runs in three phases on the caller's goroutine:
//
//  1. drivers (push-based animators such as the timeline player) run;
//  2. every registered value advances exactly once, in registration order;
//  3. every binding computes from that one snapshot, in registration order,
//     and its state is applied to the live target.
//
// Register, Unregister and Stop issued from inside a tick are queued and take
// effect once the tick completes. Any error in a tick stops the clock.
package clock

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-arcanim/internal/diagnostics"
	"github.com/coreman2200/funtimes-arcanim/internal/geom"
	"github.com/coreman2200/funtimes-arcanim/internal/tracker"
)

// State enumerates clock lifecycle states.
type State string

const (
	Idle    State = "idle"
	Running State = "running"
	Stopped State = "stopped"
)

// ErrStopped is returned by operations on a stopped clock.
var ErrStopped = errors.New("clock stopped")

// Inputs are a binding's tracked values for this tick, in the order they
// were registered.
type Inputs []float64

// Binding derives geometry from tracked values. Implementations must be
// comparable (pointer types) and pure.
type Binding interface {
	Name() string
	Compute(in Inputs) (geom.State, error)
}

// Target is the live object a binding's snapshot is copied onto.
type Target interface {
	Apply(s geom.State) error
}

// TargetFunc adapts a function to Target.
type TargetFunc func(s geom.State) error

func (f TargetFunc) Apply(s geom.State) error { return f(s) }

// Driver runs at the start of every tick, before values advance.
type Driver interface {
	Drive(dt float64) error
}

// DriverFunc adapts a function to Driver.
type DriverFunc func(dt float64) error

func (f DriverFunc) Drive(dt float64) error { return f(dt) }

// Observer is notified of completed ticks and faults.
type Observer interface {
	ObserveTick(frame uint64, bindings int, took time.Duration)
	ObserveFault(err error)
}

type registration struct {
	binding Binding
	target  Target
	values  []tracker.Value
}

type op struct {
	add *registration
	del Binding
}

type Clock struct {
	name    string
	state   State
	regs    []*registration
	drivers []Driver

	inTick   bool
	pending  []op
	stopping bool

	frame   uint64
	elapsed float64
	last    map[string]float64
	err     error

	log zerolog.Logger
	obs []Observer
}

type Option func(*Clock)

func WithLogger(l zerolog.Logger) Option { return func(c *Clock) { c.log = l } }

func WithObserver(o Observer) Option {
	return func(c *Clock) {
		if o != nil {
			c.obs = append(c.obs, o)
		}
	}
}

func WithName(name string) Option { return func(c *Clock) { c.name = name } }

// New returns an Idle clock.
func New(opts ...Option) *Clock {
	c := &Clock{
		name:  "clock",
		state: Idle,
		log:   zerolog.Nop(),
		last:  map[string]float64{},
	}
	for _, o := range opts {
		o(c)
	}
	c.log = c.log.With().Str("clock", c.name).Logger()
	return c
}

func (c *Clock) State() State { return c.state }

// Frame is the number of completed ticks.
func (c *Clock) Frame() uint64 { return c.frame }

// Elapsed is the sum of dt over completed ticks.
func (c *Clock) Elapsed() float64 { return c.elapsed }

// Err is the fault that stopped the clock, if any.
func (c *Clock) Err() error { return c.err }

// Len is the number of active bindings.
func (c *Clock) Len() int { return len(c.regs) }

// Values returns the tracked values read by the last tick, keyed by name.
func (c *Clock) Values() map[string]float64 {
	out := make(map[string]float64, len(c.last))
	for k, v := range c.last {
		out[k] = v
	}
	return out
}

// Start moves Idle to Running. Starting a running clock is a no-op.
func (c *Clock) Start() error {
	switch c.state {
	case Stopped:
		return ErrStopped
	case Running:
		return nil
	}
	c.state = Running
	c.log.Info().Int("bindings", len(c.regs)).Msg("clock started")
	return nil
}

// Stop halts ticking; values and targets keep their last state. Stop is
// idempotent and, from inside a tick, takes effect after the tick.
func (c *Clock) Stop() {
	if c.state == Stopped {
		return
	}
	if c.inTick {
		c.stopping = true
		return
	}
	c.halt()
	c.log.Info().Uint64("frame", c.frame).Float64("elapsed", c.elapsed).Msg("clock stopped")
}

// AddDriver appends a driver; drivers run in the order added.
func (c *Clock) AddDriver(d Driver) error {
	if d == nil {
		return diagnostics.Configf("driver", c.name, "driver is nil")
	}
	if c.state == Stopped {
		return ErrStopped
	}
	c.drivers = append(c.drivers, d)
	return nil
}

// Register adds a binding reading values and applying to target. During a
// tick the registration is queued and first fires on the next tick.
func (c *Clock) Register(b Binding, target Target, values ...tracker.Value) error {
	if c.state == Stopped {
		return ErrStopped
	}
	if b == nil {
		return diagnostics.Configf("register", "", "binding is nil")
	}
	if target == nil {
		return diagnostics.Configf("register", b.Name(), "target is nil")
	}
	if c.registered(b) {
		return diagnostics.Configf("register", b.Name(), "binding already registered")
	}
	for i, v := range values {
		if v == nil {
			return diagnostics.Configf("register", b.Name(), "value %d is nil", i)
		}
	}
	for i, v := range values {
		if o, ok := v.(tracker.Owned); ok {
			if err := o.Claim(c); err != nil {
				for _, prev := range values[:i] {
					if !c.uses(prev) {
						c.release(prev)
					}
				}
				return err
			}
		}
	}
	r := &registration{binding: b, target: target, values: append([]tracker.Value(nil), values...)}
	if c.inTick {
		c.pending = append(c.pending, op{add: r})
		return nil
	}
	c.regs = append(c.regs, r)
	return nil
}

// Unregister removes a binding. During a tick the removal is queued.
func (c *Clock) Unregister(b Binding) error {
	if c.state == Stopped {
		return ErrStopped
	}
	if b == nil || !c.registered(b) {
		name := ""
		if b != nil {
			name = b.Name()
		}
		return diagnostics.Configf("unregister", name, "binding is not registered")
	}
	if c.inTick {
		c.pending = append(c.pending, op{del: b})
		return nil
	}
	c.remove(b)
	return nil
}

// Tick advances every value by dt and applies every binding. Ticks on an
// Idle clock do nothing; ticks on a Stopped clock return ErrStopped.
func (c *Clock) Tick(dt float64) error {
	switch c.state {
	case Stopped:
		return ErrStopped
	case Idle:
		return nil
	}
	if c.inTick {
		return diagnostics.Configf("tick", c.name, "tick called re-entrantly")
	}
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return diagnostics.Domainf("tick", c.name, "dt %v must be finite and non-negative", dt)
	}

	start := time.Now()
	c.inTick = true
	err := c.step(dt)
	c.inTick = false
	if err != nil {
		c.fault(err)
		return err
	}

	c.frame++
	c.elapsed += dt
	c.flush()
	took := time.Since(start)
	for _, o := range c.obs {
		o.ObserveTick(c.frame, len(c.regs), took)
	}
	if c.stopping {
		c.stopping = false
		c.Stop()
	}
	return nil
}

func (c *Clock) step(dt float64) error {
	for _, d := range c.drivers {
		if err := d.Drive(dt); err != nil {
			return fmt.Errorf("driver: %w", err)
		}
	}

	snap := make(map[tracker.Value]float64)
	for _, r := range c.regs {
		for _, v := range r.values {
			if _, ok := snap[v]; ok {
				continue
			}
			nv, err := v.Advance(dt)
			if err != nil {
				return fmt.Errorf("binding %q: %w", r.binding.Name(), err)
			}
			snap[v] = nv
		}
	}

	last := make(map[string]float64, len(snap))
	for _, r := range c.regs {
		in := make(Inputs, len(r.values))
		for i, v := range r.values {
			in[i] = snap[v]
			last[v.Name()] = in[i]
		}
		st, err := r.binding.Compute(in)
		if err != nil {
			return fmt.Errorf("binding %q: %w", r.binding.Name(), err)
		}
		if err := r.target.Apply(st); err != nil {
			return fmt.Errorf("binding %q: apply: %w", r.binding.Name(), err)
		}
	}
	c.last = last
	return nil
}

func (c *Clock) fault(err error) {
	c.err = err
	kind, _ := diagnostics.KindOf(err)
	c.log.Error().Err(err).Uint64("frame", c.frame).Str("kind", string(kind)).Msg("tick failed; stopping clock")
	for _, o := range c.obs {
		o.ObserveFault(err)
	}
	c.pending = nil
	c.stopping = false
	c.halt()
}

func (c *Clock) halt() {
	c.state = Stopped
	for _, r := range c.regs {
		for _, v := range r.values {
			c.release(v)
		}
	}
	for _, p := range c.pending {
		if p.add != nil {
			for _, v := range p.add.values {
				c.release(v)
			}
		}
	}
	c.pending = nil
}

func (c *Clock) flush() {
	ops := c.pending
	c.pending = nil
	for _, p := range ops {
		if p.add != nil {
			c.regs = append(c.regs, p.add)
			continue
		}
		c.remove(p.del)
	}
}

func (c *Clock) remove(b Binding) {
	for i, r := range c.regs {
		if r.binding != b {
			continue
		}
		c.regs = append(c.regs[:i], c.regs[i+1:]...)
		for _, v := range r.values {
			if !c.uses(v) {
				c.release(v)
			}
		}
		return
	}
}

// registered reports whether b is active or queued for addition, and not
// queued for removal.
func (c *Clock) registered(b Binding) bool {
	in := false
	for _, r := range c.regs {
		if r.binding == b {
			in = true
			break
		}
	}
	for _, p := range c.pending {
		switch {
		case p.add != nil && p.add.binding == b:
			in = true
		case p.del == b:
			in = false
		}
	}
	return in
}

func (c *Clock) uses(v tracker.Value) bool {
	for _, r := range c.regs {
		for _, rv := range r.values {
			if rv == v {
				return true
			}
		}
	}
	for _, p := range c.pending {
		if p.add == nil {
			continue
		}
		for _, rv := range p.add.values {
			if rv == v {
				return true
			}
		}
	}
	return false
}

func (c *Clock) release(v tracker.Value) {
	if o, ok := v.(tracker.Owned); ok {
		o.Release(c)
	}
}
