package clock

import (
	"context"
	"errors"
	"strings"
	"time"

	"periph.io/x/conn/v3/physic"

	"github.com/coreman2200/funtimes-arcanim/internal/diagnostics"
)

// Timing selects how Run derives dt.
type Timing string

const (
	// Fixed feeds every tick exactly one frame period.
	Fixed Timing = "fixed"
	// Wall feeds the measured time since the previous tick.
	Wall Timing = "wall"
)

// ParseTiming maps "" to Fixed.
func ParseTiming(s string) (Timing, error) {
	switch Timing(strings.ToLower(strings.TrimSpace(s))) {
	case "", Fixed:
		return Fixed, nil
	case Wall:
		return Wall, nil
	}
	return "", diagnostics.Configf("timing", s, "want %q or %q", Fixed, Wall)
}

// Command is a control request handled by Run between ticks.
type Command string

const (
	Pause  Command = "pause"
	Resume Command = "resume"
	Halt   Command = "stop"
)

// ParseCommand accepts pause, resume and stop.
func ParseCommand(s string) (Command, error) {
	switch c := Command(strings.ToLower(strings.TrimSpace(s))); c {
	case Pause, Resume, Halt:
		return c, nil
	}
	return "", diagnostics.Configf("command", s, "unknown command")
}

// Run starts the clock and ticks it at rate until ctx is cancelled, the
// clock stops, or a tick fails. Commands on ctrl are applied between ticks;
// a paused clock receives no ticks. ctrl may be nil.
func (c *Clock) Run(ctx context.Context, rate physic.Frequency, timing Timing, ctrl <-chan Command) error {
	if rate <= 0 {
		return diagnostics.Configf("run", c.name, "frame rate must be positive, got %s", rate)
	}
	if err := c.Start(); err != nil {
		return err
	}
	period := rate.Period()
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	paused := false
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			c.Stop()
			return nil
		case cmd := <-ctrl:
			switch cmd {
			case Pause:
				paused = true
			case Resume:
				paused = false
				last = time.Now()
			case Halt:
				c.Stop()
				return nil
			}
			c.log.Debug().Str("command", string(cmd)).Bool("paused", paused).Msg("control")
		case now := <-ticker.C:
			if paused {
				continue
			}
			dt := period.Seconds()
			if timing == Wall {
				dt = now.Sub(last).Seconds()
			}
			last = now
			if err := c.Tick(dt); err != nil {
				if errors.Is(err, ErrStopped) {
					return nil
				}
				return err
			}
			if c.State() == Stopped {
				return nil
			}
		}
	}
}
