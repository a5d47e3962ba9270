// Package timeline plays an arbitrary clip program and draws each animated
// value as a horizontal meter.
package timeline

import (
	"fmt"
	"math"
	"sort"

	"github.com/coreman2200/funtimes-arcanim/internal/clock"
	"github.com/coreman2200/funtimes-arcanim/internal/geom"
	"github.com/coreman2200/funtimes-arcanim/internal/scene"
	"github.com/coreman2200/funtimes-arcanim/internal/sequence"
	"github.com/coreman2200/funtimes-arcanim/internal/tracker"
)

const Name = "timeline"

// Params configure the scene. Envelopes are keyframed values that run beside
// the program, one meter each, below the program's meters.
type Params struct {
	Program   sequence.Program            `mapstructure:"program" yaml:"program"`
	Envelopes map[string]tracker.Envelope `mapstructure:"envelopes" yaml:"envelopes,omitempty"`
	Spacing   float64                     `mapstructure:"spacing" yaml:"spacing"`
	Scale     float64                     `mapstructure:"scale" yaml:"scale"`
}

func Defaults() Params {
	return Params{
		Program: sequence.Program{
			Version: "seq.v1",
			Clips: []sequence.Clip{
				{Name: "rise", DurationS: 1, Animations: []sequence.Animation{{Value: "a", To: 1, Ease: "smooth"}}},
				{Name: "cross", DurationS: 2, Animations: []sequence.Animation{
					{Value: "a", To: 0, Ease: "cubic"},
					{Value: "b", To: 1, Ease: "linear"},
				}},
				{Name: "hold", DurationS: 1},
			},
		},
		Envelopes: map[string]tracker.Envelope{
			"pulse": {Keys: []tracker.Keyframe{
				{T: 0, V: 0, Ease: "smooth"},
				{T: 2, V: 1, Ease: "smooth"},
				{T: 4, V: 0},
			}},
		},
		Spacing: 1,
		Scale:   4,
	}
}

type Scene struct {
	params Params
	preset *sequence.Program
}

func New() scene.Scene { return &Scene{params: Defaults()} }

// WithProgram plays prog regardless of the configured program. Only
// configured envelopes run beside it.
func WithProgram(prog sequence.Program) *Scene {
	p := Defaults()
	p.Envelopes = nil
	return &Scene{params: p, preset: &prog}
}

func (s *Scene) Name() string { return Name }

func (s *Scene) Describe() string { return "plays a clip program, one meter per animated value" }

// Duration covers the program and the longest envelope.
func (s *Scene) Duration() float64 {
	d := s.params.Program.Duration()
	if s.preset != nil {
		d = s.preset.Duration()
	}
	for _, env := range s.params.Envelopes {
		d = math.Max(d, env.End())
	}
	return d
}

// Meter draws one value as a bar from the origin of its row. Rows are
// Spacing apart; Scale maps the value to bar length.
type Meter struct {
	Value   string
	Row     int
	Spacing float64
	Scale   float64
}

func (m *Meter) Name() string { return "meter-" + m.Value }

func (m *Meter) Compute(in clock.Inputs) (geom.State, error) {
	y := -float64(m.Row) * m.Spacing
	start := geom.Vec3{Y: y}
	end := geom.Vec3{X: in[0] * m.Scale, Y: y}
	return geom.State{Shapes: []geom.Shape{
		{Kind: geom.Label, Center: geom.Vec3{X: -0.5, Y: y}, Color: geom.White, Text: m.Value},
		geom.Segment(geom.Line, start, end, geom.Yellow),
		geom.Round(geom.Dot, end, 0.08, geom.White),
	}}, nil
}

func (s *Scene) Construct(ctx *scene.Context) error {
	if err := ctx.Decode(&s.params); err != nil {
		return err
	}
	if s.preset != nil {
		s.params.Program = *s.preset
	}
	p := s.params
	row := 0
	for _, name := range p.Program.Values() {
		v, err := tracker.NewInterpolated(name, 0)
		if err != nil {
			return err
		}
		if err := ctx.Player.Bind(name, v); err != nil {
			return err
		}
		m := &Meter{Value: name, Row: row, Spacing: p.Spacing, Scale: p.Scale}
		if err := ctx.Show(fmt.Sprintf("meter-%s", name), m, v); err != nil {
			return err
		}
		row++
	}
	names := make([]string, 0, len(p.Envelopes))
	for name := range p.Envelopes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		k, err := tracker.NewKeyed(name, p.Envelopes[name])
		if err != nil {
			return err
		}
		m := &Meter{Value: name, Row: row, Spacing: p.Spacing, Scale: p.Scale}
		if err := ctx.Show(fmt.Sprintf("meter-%s", name), m, k); err != nil {
			return err
		}
		row++
	}
	ctx.Player.SetHooks(sequence.Hooks{
		OnClipStart: func(c sequence.Clip) error {
			ctx.Log.Debug().Str("clip", c.Name).Float64("duration", c.DurationS).Msg("clip")
			return nil
		},
	})
	return ctx.Play(p.Program)
}
