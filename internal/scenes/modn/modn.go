// Package modn draws the times-table chords i → i·m mod N on a circle while m
// sweeps upward.
package modn

import (
	"math"

	"github.com/coreman2200/funtimes-arcanim/internal/clock"
	"github.com/coreman2200/funtimes-arcanim/internal/diagnostics"
	"github.com/coreman2200/funtimes-arcanim/internal/geom"
	"github.com/coreman2200/funtimes-arcanim/internal/scene"
	"github.com/coreman2200/funtimes-arcanim/internal/sequence"
	"github.com/coreman2200/funtimes-arcanim/internal/tracker"
)

const Name = "modn"

type Params struct {
	Lines     int      `mapstructure:"number_of_lines" yaml:"number_of_lines"`
	EndValue  float64  `mapstructure:"end_value" yaml:"end_value"`
	TotalTime float64  `mapstructure:"total_time" yaml:"total_time"`
	Wait      float64  `mapstructure:"wait" yaml:"wait"`
	Height    float64  `mapstructure:"height" yaml:"height"`
	Gradient  []string `mapstructure:"gradient_colors" yaml:"gradient_colors"`
}

func Defaults() Params {
	return Params{
		Lines:     1000,
		EndValue:  100,
		TotalTime: 10,
		Wait:      3,
		Height:    5,
		Gradient:  []string{"red", "yellow", "blue"},
	}
}

type Scene struct {
	params Params
}

func New() scene.Scene { return &Scene{params: Defaults()} }

func (s *Scene) Name() string { return Name }

func (s *Scene) Describe() string {
	return "chords i → i·m mod N on a circle as m sweeps from 0 to end_value"
}

func (s *Scene) Duration() float64 { return 2*s.params.Wait + s.params.TotalTime }

// Chords is the binding from m, and optionally the radius, to N+1 chords.
type Chords struct {
	N      int
	Radius float64
	Colors []geom.Color // N+1 entries
}

func (c *Chords) Name() string { return "chords" }

// Point is the circle point at proportion p of a turn from +X,
// counterclockwise.
func (c *Chords) Point(p float64) geom.Vec3 {
	s, co := math.Sincos(geom.Tau * p)
	return geom.Vec3{X: c.Radius * co, Y: c.Radius * s}
}

func (c *Chords) Compute(in clock.Inputs) (geom.State, error) {
	if c.N <= 0 {
		return geom.State{}, diagnostics.Domainf("compute", "chords", "N %d must be positive", c.N)
	}
	m := in[0]
	if len(in) > 1 {
		cc := *c
		cc.Radius = in[1]
		c = &cc
	}
	n := float64(c.N)
	shapes := make([]geom.Shape, c.N+1)
	for i := range shapes {
		start := c.Point(float64(i%c.N) / n)
		end := c.Point(mod(float64(i)*m, n) / n)
		col := geom.White
		if i < len(c.Colors) {
			col = c.Colors[i]
		}
		shapes[i] = geom.Segment(geom.Line, start, end, col)
	}
	return geom.State{Shapes: shapes}, nil
}

// Rim draws the circle the chords sit on.
type Rim struct{}

func (Rim) Name() string { return "rim" }

func (Rim) Compute(in clock.Inputs) (geom.State, error) {
	return geom.State{Shapes: []geom.Shape{geom.Round(geom.Circle, geom.Origin, in[0], geom.White)}}, nil
}

// mod is the floored remainder, always in [0, n).
func mod(x, n float64) float64 {
	r := math.Mod(x, n)
	if r < 0 {
		r += n
	}
	return r
}

func (s *Scene) Construct(ctx *scene.Context) error {
	if err := ctx.Decode(&s.params); err != nil {
		return err
	}
	p := s.params
	if p.Lines <= 0 {
		return diagnostics.Configf("construct", Name, "number_of_lines %d must be positive", p.Lines)
	}
	stops := make([]geom.Color, 0, len(p.Gradient))
	for _, name := range p.Gradient {
		c, err := geom.ParseColor(name)
		if err != nil {
			return err
		}
		stops = append(stops, c)
	}

	radius, err := tracker.NewScalar("radius", p.Height/2)
	if err != nil {
		return err
	}
	if err := ctx.Show("circle", Rim{}, radius); err != nil {
		return err
	}

	m, err := tracker.NewInterpolated("m", 0)
	if err != nil {
		return err
	}
	if err := ctx.Player.Bind("m", m); err != nil {
		return err
	}
	chords := &Chords{N: p.Lines, Radius: radius.Get(), Colors: geom.Gradient(stops, p.Lines+1)}
	if err := ctx.Show("lines", chords, m, radius); err != nil {
		return err
	}
	return ctx.Play(sequence.Program{
		Version: "seq.v1",
		Clips: []sequence.Clip{
			{Name: "wait", DurationS: p.Wait},
			{Name: "sweep", DurationS: p.TotalTime, Animations: []sequence.Animation{{Value: "m", To: p.EndValue, Ease: "linear"}}},
			{Name: "hold", DurationS: p.Wait},
		},
	})
}
