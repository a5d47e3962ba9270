// Package gravity fans arrows around a circle, each released from its own
// angle and swinging toward straight down on its own pendulum clock.
package gravity

import (
	"fmt"
	"math"

	"github.com/coreman2200/funtimes-arcanim/internal/clock"
	"github.com/coreman2200/funtimes-arcanim/internal/diagnostics"
	"github.com/coreman2200/funtimes-arcanim/internal/geom"
	"github.com/coreman2200/funtimes-arcanim/internal/scene"
	"github.com/coreman2200/funtimes-arcanim/internal/tracker"
)

const Name = "gravity"

type Params struct {
	G          float64 `mapstructure:"g" yaml:"g"`
	Radius     float64 `mapstructure:"radius" yaml:"radius"`
	StartAngle float64 `mapstructure:"start_angle" yaml:"start_angle"` // radians
	NumArrows  int     `mapstructure:"num_arrows" yaml:"num_arrows"`
	DtFactor   float64 `mapstructure:"dt_factor" yaml:"dt_factor"`
	TotalTime  float64 `mapstructure:"total_time" yaml:"total_time"`
}

func Defaults() Params {
	return Params{
		G:          9.8,
		Radius:     3,
		StartAngle: -math.Pi / 4,
		NumArrows:  20,
		DtFactor:   1,
		TotalTime:  10,
	}
}

type Scene struct {
	params Params
}

func New() scene.Scene { return &Scene{params: Defaults()} }

func (s *Scene) Name() string { return Name }

func (s *Scene) Describe() string {
	return "num_arrows+1 arrows around a circle, each swinging on its own clock"
}

func (s *Scene) Duration() float64 { return s.params.TotalTime }

// ReleaseAngle is the starting direction of arrow i of n, folded into
// (-3π/2, π/2] so every arrow swings the short way to straight down.
func ReleaseAngle(start float64, i, n int) float64 {
	a := start + 2*float64(i)*math.Pi/float64(n)
	switch {
	case a > math.Pi/2:
		a -= 2 * math.Pi
	case a < -3*math.Pi/2:
		a += 2 * math.Pi
	}
	return a
}

// hand points an arrow at -π/2-θ, measured from the saved horizontal arrow.
type hand struct {
	name string
	base *geom.Base
}

func (h *hand) Name() string { return h.name }

func (h *hand) Compute(in clock.Inputs) (geom.State, error) {
	return h.base.Rotated(geom.Origin, -math.Pi/2-in[0])
}

func (s *Scene) Construct(ctx *scene.Context) error {
	if err := ctx.Decode(&s.params); err != nil {
		return err
	}
	p := s.params
	if p.NumArrows <= 0 {
		return diagnostics.Configf("construct", Name, "num_arrows %d must be positive", p.NumArrows)
	}
	if p.TotalTime < 0 {
		return diagnostics.Domainf("construct", Name, "total_time %v is negative", p.TotalTime)
	}

	circle := geom.Round(geom.Circle, geom.Origin, p.Radius, geom.White)
	if err := ctx.Stage.Add("circle", geom.State{Shapes: []geom.Shape{circle}}); err != nil {
		return err
	}

	arrow := geom.State{Shapes: []geom.Shape{
		geom.Segment(geom.Arrow, geom.Origin, geom.Right.Scale(p.Radius), geom.White),
	}}
	for i := 0; i <= p.NumArrows; i++ {
		maxTheta := -math.Pi/2 - ReleaseAngle(p.StartAngle, i, p.NumArrows)
		f, err := tracker.Harmonic(maxTheta, p.G, p.Radius)
		if err != nil {
			return err
		}
		name := fmt.Sprintf("arrow-%02d", i)
		theta, err := tracker.NewClosedForm(fmt.Sprintf("theta-%02d", i), f, tracker.WithTimeScale(p.DtFactor))
		if err != nil {
			return err
		}
		b := &hand{name: name, base: geom.NewBase(name, arrow)}
		if err := ctx.Show(name, b, theta); err != nil {
			return err
		}
	}
	return nil
}
