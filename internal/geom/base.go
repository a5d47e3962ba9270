package geom

import (
	"gonum.org/v1/gonum/num/quat"

	"github.com/coreman2200/funtimes-arcanim/internal/diagnostics"
)

// Base is a saved reference shape. Every derived state is computed from the
// saved shapes by an absolute transform, so repeated frames never compound
// rounding from earlier frames.
type Base struct {
	name     string
	state    State
	disposed bool
}

func NewBase(name string, s State) *Base {
	return &Base{name: name, state: s.Clone()}
}

func (b *Base) Name() string { return b.name }

// State returns a copy of the saved shapes.
func (b *Base) State() (State, error) {
	if err := b.check("restore"); err != nil {
		return State{}, err
	}
	return b.state.Clone(), nil
}

// Rotated returns the base rotated about pivot by the absolute angle.
func (b *Base) Rotated(pivot Vec3, angle float64) (State, error) {
	return b.Transformed(func(s Shape) Shape { return s.Rotate(pivot, angle) })
}

// Rotated3 returns the base rotated about pivot by unit quaternion q.
func (b *Base) Rotated3(pivot Vec3, q quat.Number) (State, error) {
	return b.Transformed(func(s Shape) Shape { return s.Rotate3(pivot, q) })
}

// Transformed maps fn over a copy of the saved shapes.
func (b *Base) Transformed(fn func(Shape) Shape) (State, error) {
	if err := b.check("transform"); err != nil {
		return State{}, err
	}
	out := make([]Shape, len(b.state.Shapes))
	for i, s := range b.state.Shapes {
		out[i] = fn(s)
	}
	return State{Shapes: out}, nil
}

// Dispose invalidates the base; later transforms fail.
func (b *Base) Dispose() { b.disposed = true }

func (b *Base) Disposed() bool { return b.disposed }

func (b *Base) check(op string) error {
	if b == nil {
		return diagnostics.Stalef(op, "", "base geometry is nil")
	}
	if b.disposed {
		return diagnostics.Stalef(op, b.name, "base geometry was disposed")
	}
	return nil
}
