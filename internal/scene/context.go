package scene

import (
	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-arcanim/internal/clock"
	"github.com/coreman2200/funtimes-arcanim/internal/sequence"
	"github.com/coreman2200/funtimes-arcanim/internal/tracker"
)

// Context is what a scene builds itself on.
type Context struct {
	Clock  *clock.Clock
	Stage  *Stage
	Player *sequence.Player
	Log    zerolog.Logger
	Params map[string]any

	scene string
}

// Decode fills dst (pre-filled with defaults) from the scene's parameters.
func (c *Context) Decode(dst any) error { return DecodeParams(c.scene, c.Params, dst) }

// Show computes b from the current values, places the result on stage as
// object, and registers b to keep it updated.
func (c *Context) Show(object string, b clock.Binding, values ...tracker.Value) error {
	in := make(clock.Inputs, len(values))
	for i, v := range values {
		if v != nil {
			in[i] = v.Get()
		}
	}
	st, err := b.Compute(in)
	if err != nil {
		return err
	}
	if err := c.Stage.Add(object, st); err != nil {
		return err
	}
	return c.Clock.Register(b, c.Stage.Target(object), values...)
}

// Play loads prog into the player, drives it from the clock and starts it.
func (c *Context) Play(prog sequence.Program) error {
	if err := c.Player.Load(prog); err != nil {
		return err
	}
	if err := c.Clock.AddDriver(c.Player); err != nil {
		return err
	}
	return c.Player.Start()
}
