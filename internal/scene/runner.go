package scene

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/physic"

	"github.com/coreman2200/funtimes-arcanim/internal/clock"
	"github.com/coreman2200/funtimes-arcanim/internal/diagnostics"
	"github.com/coreman2200/funtimes-arcanim/internal/sequence"
)

// Options control one scene run.
type Options struct {
	Rate   physic.Frequency
	Timing clock.Timing
	// Duration overrides Scene.Duration when positive.
	Duration float64
	Params   map[string]any
	Observer clock.Observer
}

// Summary describes a finished run.
type Summary struct {
	Scene   string
	Frames  uint64
	Elapsed float64
}

type Runner struct {
	Sinks []Sink
	Log   zerolog.Logger
}

func NewRunner(log zerolog.Logger, sinks ...Sink) *Runner {
	return &Runner{Sinks: sinks, Log: log}
}

// emitter writes a frame to every sink after each completed tick.
type emitter struct {
	name  string
	clk   *clock.Clock
	stage *Stage
	sinks []Sink
	log   zerolog.Logger
	err   error
}

func (e *emitter) ObserveTick(uint64, int, time.Duration) { e.emit() }
func (e *emitter) ObserveFault(error) {}

func (e *emitter) emit() {
	f := Frame{
		Scene:   e.name,
		Index:   e.clk.Frame(),
		T:       e.clk.Elapsed(),
		Values:  e.clk.Values(),
		Objects: e.stage.Objects(),
	}
	for _, s := range e.sinks {
		if err := s.Write(f); err != nil {
			e.log.Warn().Err(err).Uint64("frame", f.Index).Msg("sink write failed")
			if e.err == nil {
				e.err = err
			}
		}
	}
}

func (r *Runner) prepare(sc Scene, opts Options) (*Context, *emitter, error) {
	if sc == nil {
		return nil, nil, diagnostics.Configf("prepare", "", "scene is nil")
	}
	log := r.Log.With().Str("scene", sc.Name()).Logger()
	em := &emitter{name: sc.Name(), stage: NewStage(), sinks: r.Sinks, log: log}
	clk := clock.New(
		clock.WithName(sc.Name()),
		clock.WithLogger(log),
		clock.WithObserver(opts.Observer),
		clock.WithObserver(em),
	)
	em.clk = clk
	ctx := &Context{
		Clock:  clk,
		Stage:  em.stage,
		Player: sequence.NewPlayer(sequence.Hooks{}, log),
		Log:    log,
		Params: opts.Params,
		scene:  sc.Name(),
	}
	if err := sc.Construct(ctx); err != nil {
		return nil, nil, err
	}
	log.Info().Int("objects", ctx.Stage.Len()).Int("bindings", clk.Len()).Float64("duration", sc.Duration()).Msg("scene constructed")
	return ctx, em, nil
}

// Render ticks sc headless at a fixed dt of one frame period until its
// duration is covered, writing the initial frame and one frame per tick.
func (r *Runner) Render(ctx context.Context, sc Scene, opts Options) (Summary, error) {
	if opts.Rate <= 0 {
		return Summary{}, diagnostics.Configf("render", "", "frame rate must be positive")
	}
	c, em, err := r.prepare(sc, opts)
	if err != nil {
		return Summary{}, err
	}
	clk := c.Clock
	defer clk.Stop()

	duration := opts.Duration
	if duration <= 0 {
		duration = sc.Duration()
	}
	dt := float64(physic.Hertz) / float64(opts.Rate)
	frames := int(math.Ceil(duration/dt - 1e-9))

	if err := clk.Start(); err != nil {
		return Summary{}, err
	}
	em.emit()
	if em.err != nil {
		return Summary{}, em.err
	}
	for i := 0; i < frames; i++ {
		if err := ctx.Err(); err != nil {
			return r.summary(sc, clk), err
		}
		if err := clk.Tick(dt); err != nil {
			return r.summary(sc, clk), err
		}
		if em.err != nil {
			return r.summary(sc, clk), em.err
		}
		if clk.State() == clock.Stopped {
			break
		}
	}
	s := r.summary(sc, clk)
	r.Log.Info().Str("scene", s.Scene).Uint64("frames", s.Frames).Float64("elapsed", s.Elapsed).Msg("render complete")
	return s, nil
}

// Live ticks sc in real time until ctx is done, ctrl halts it, the duration
// (if set) passes, or a tick fails. Sink failures are logged, not fatal.
func (r *Runner) Live(ctx context.Context, sc Scene, opts Options, ctrl <-chan clock.Command) (Summary, error) {
	c, em, err := r.prepare(sc, opts)
	if err != nil {
		return Summary{}, err
	}
	if opts.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(opts.Duration*float64(time.Second)))
		defer cancel()
	}
	em.emit()
	err = c.Clock.Run(ctx, opts.Rate, opts.Timing, ctrl)
	return r.summary(sc, c.Clock), err
}

func (r *Runner) summary(sc Scene, clk *clock.Clock) Summary {
	return Summary{Scene: sc.Name(), Frames: clk.Frame(), Elapsed: clk.Elapsed()}
}
