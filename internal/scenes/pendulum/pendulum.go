// Package pendulum lifts a simple pendulum to its release angle, holds it,
// then lets it swing on the small-angle solution θmax·cos(t·√(g/L)).
package pendulum

import (
	"math"

	"github.com/coreman2200/funtimes-arcanim/internal/clock"
	"github.com/coreman2200/funtimes-arcanim/internal/diagnostics"
	"github.com/coreman2200/funtimes-arcanim/internal/geom"
	"github.com/coreman2200/funtimes-arcanim/internal/scene"
	"github.com/coreman2200/funtimes-arcanim/internal/sequence"
	"github.com/coreman2200/funtimes-arcanim/internal/tracker"
)

const Name = "pendulum"

type Params struct {
	ThetaMaxDeg float64 `mapstructure:"theta_max_deg" yaml:"theta_max_deg"`
	Length      float64 `mapstructure:"length" yaml:"length"`
	Gravity     float64 `mapstructure:"gravity" yaml:"gravity"`
	DtFactor    float64 `mapstructure:"dt_factor" yaml:"dt_factor"`
	TotalTime   float64 `mapstructure:"total_time" yaml:"total_time"`
	MassRadius  float64 `mapstructure:"mass_radius" yaml:"mass_radius"`
	Top         float64 `mapstructure:"top" yaml:"top"` // y of the pivot
}

func Defaults() Params {
	return Params{
		ThetaMaxDeg: 10,
		Length:      5,
		Gravity:     9.8,
		DtFactor:    3,
		TotalTime:   13,
		MassRadius:  0.5,
		Top:         3.5,
	}
}

// intro is lift, hold and equation clips, one second each.
const intro = 3

type Scene struct {
	params Params
}

func New() scene.Scene { return &Scene{params: Defaults()} }

func (s *Scene) Name() string { return Name }

func (s *Scene) Describe() string {
	return "pendulum lifted to θmax then swinging as θmax·cos(t·√(g/L))"
}

func (s *Scene) Duration() float64 { return intro + s.params.TotalTime }

// rotor turns the saved string and mass about the pivot by its input angle.
type rotor struct {
	name  string
	base  *geom.Base
	pivot geom.Vec3
}

func (r *rotor) Name() string { return r.name }

func (r *rotor) Compute(in clock.Inputs) (geom.State, error) {
	return r.base.Rotated(r.pivot, in[0])
}

func (s *Scene) Construct(ctx *scene.Context) error {
	if err := ctx.Decode(&s.params); err != nil {
		return err
	}
	p := s.params
	if !(p.MassRadius >= 0) {
		return diagnostics.Configf("construct", Name, "mass_radius %v must be non-negative", p.MassRadius)
	}
	thetaMax := p.ThetaMaxDeg * math.Pi / 180
	pivot := geom.Vec3{Y: p.Top}

	swingFn, err := tracker.Harmonic(thetaMax, p.Gravity, p.Length)
	if err != nil {
		return err
	}
	theta, err := tracker.NewClosedForm("theta", swingFn, tracker.WithTimeScale(p.DtFactor))
	if err != nil {
		return err
	}
	lift, err := tracker.NewInterpolated("lift", 0)
	if err != nil {
		return err
	}

	end := pivot.Add(geom.Down.Scale(p.Length))
	base := geom.NewBase(Name, geom.State{Shapes: []geom.Shape{
		geom.Segment(geom.Line, pivot, end, geom.White),
		geom.Round(geom.Dot, end, p.MassRadius, geom.Red),
	}})
	lifting := &rotor{name: "lift", base: base, pivot: pivot}
	swinging := &rotor{name: "swing", base: base, pivot: pivot}

	if err := ctx.Stage.Add("roof", roof(pivot, 0.2)); err != nil {
		return err
	}
	if err := ctx.Player.Bind("lift", lift); err != nil {
		return err
	}
	if err := ctx.Show(Name, lifting, lift); err != nil {
		return err
	}

	ctx.Player.SetHooks(sequence.Hooks{OnClipStart: func(c sequence.Clip) error {
		switch c.Name {
		case "equation":
			eq := geom.Shape{Kind: geom.Label, Center: geom.Vec3{X: 4.5, Y: -3.3}, Color: geom.White,
				Text: `\theta = \theta_{max}\cos\left(\sqrt{\frac{g}{L}}\cdot t\right)`}
			return ctx.Stage.Add("equation", geom.State{Shapes: []geom.Shape{eq}})
		case "swing":
			ctx.Log.Debug().Float64("theta_max", thetaMax).Msg("releasing pendulum")
			if err := ctx.Clock.Unregister(lifting); err != nil {
				return err
			}
			return ctx.Clock.Register(swinging, ctx.Stage.Target(Name), theta)
		}
		return nil
	}})

	return ctx.Play(sequence.Program{
		Version: "seq.v1",
		Clips: []sequence.Clip{
			{Name: "lift", DurationS: 1, Animations: []sequence.Animation{{Value: "lift", To: thetaMax, Ease: "smooth"}}},
			{Name: "hold", DurationS: 1},
			{Name: "equation", DurationS: 1},
			{Name: "swing", DurationS: p.TotalTime},
		},
	})
}

// roof is a hatched beam whose bottom edge is centred on pivot.
func roof(pivot geom.Vec3, size float64) geom.State {
	const n = 30
	x0 := pivot.X - n*size/2
	shapes := make([]geom.Shape, 0, n+1)
	for i := 0; i < n; i++ {
		a := geom.Vec3{X: x0 + float64(i)*size, Y: pivot.Y}
		shapes = append(shapes, geom.Segment(geom.Line, a, a.Add(geom.Vec3{X: size, Y: size}), geom.White))
	}
	shapes = append(shapes, geom.Segment(geom.Line, geom.Vec3{X: x0, Y: pivot.Y}, geom.Vec3{X: x0 + n*size, Y: pivot.Y}, geom.White))
	return geom.State{Shapes: shapes}
}
