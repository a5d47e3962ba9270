// Package geomatrix draws 2×2 complex matrices as grids of cells: each cell
// a square, a circle scaled by |m| and an arrow turned to arg(m).
package geomatrix

import (
	"fmt"
	"math/cmplx"
	"strings"

	"github.com/coreman2200/funtimes-arcanim/internal/clock"
	"github.com/coreman2200/funtimes-arcanim/internal/diagnostics"
	"github.com/coreman2200/funtimes-arcanim/internal/geom"
	"github.com/coreman2200/funtimes-arcanim/internal/scene"
	"github.com/coreman2200/funtimes-arcanim/internal/sequence"
	"github.com/coreman2200/funtimes-arcanim/internal/tracker"
)

const Name = "geomatrix"

type Params struct {
	Gates   []string `mapstructure:"gates" yaml:"gates"`
	Scale   float64  `mapstructure:"scale" yaml:"scale"`
	Spacing float64  `mapstructure:"spacing" yaml:"spacing"`
	RunTime float64  `mapstructure:"run_time" yaml:"run_time"`
	To      float64  `mapstructure:"to" yaml:"to"` // final angle, radians
}

func Defaults() Params {
	return Params{
		Gates:   []string{"rx", "ry", "rz"},
		Scale:   1,
		Spacing: 2.5,
		RunTime: 5,
		To:      geom.Tau,
	}
}

type Scene struct {
	params Params
}

func New() scene.Scene { return &Scene{params: Defaults()} }

func (s *Scene) Name() string { return Name }

func (s *Scene) Describe() string {
	return "RX/RY/RZ(θ) drawn as magnitude circles and phase arrows while θ runs to 2π"
}

func (s *Scene) Duration() float64 { return 1 + s.params.RunTime }

// Cells draws Gate(θ) centred on Origin.
type Cells struct {
	Label  string
	Gate   Gate
	Origin geom.Vec3
	Scale  float64
}

func (c *Cells) Name() string { return strings.ToLower(c.Label) }

// Center is the centre of cell (i, j): rows run along +X, columns down.
func (c *Cells) Center(i, j int) geom.Vec3 {
	s := c.Scale
	return c.Origin.
		Add(geom.Right.Scale((float64(i) + 0.5 - 1) * s)).
		Add(geom.Down.Scale((float64(j) + 0.5 - 1) * s))
}

func (c *Cells) Compute(in clock.Inputs) (geom.State, error) {
	if c.Gate == nil {
		return geom.State{}, diagnostics.Configf("compute", c.Label, "no gate")
	}
	theta := in[0]
	m := c.Gate(theta)
	s := c.Scale
	shapes := make([]geom.Shape, 0, 13)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			shapes = append(shapes, geom.Round(geom.Square, c.Center(i, j), s/2, geom.White))
		}
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			shapes = append(shapes, geom.Round(geom.Circle, c.Center(i, j), s/2*cmplx.Abs(m[i][j]), geom.White))
		}
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			shapes = append(shapes, arrow(c.Center(i, j), m[i][j], s))
		}
	}
	shapes = append(shapes, geom.Shape{
		Kind:   geom.Label,
		Center: c.Origin.Add(geom.Up.Scale(s + 0.5)),
		Color:  geom.White,
		Text:   fmt.Sprintf("%s(%.2f)", c.Label, theta),
	})
	return geom.State{Shapes: shapes}, nil
}

// arrow points from the cell centre along arg(m); a zero entry has no
// direction and collapses to a point.
func arrow(center geom.Vec3, m complex128, scale float64) geom.Shape {
	if m == 0 {
		return geom.Segment(geom.Arrow, center, center, geom.Red)
	}
	a := geom.Segment(geom.Arrow, center, center.Add(geom.Right.Scale(0.5*scale)), geom.Red)
	return a.Rotate(center, cmplx.Phase(m))
}

func (s *Scene) Construct(ctx *scene.Context) error {
	if err := ctx.Decode(&s.params); err != nil {
		return err
	}
	p := s.params
	if !(p.Scale > 0) {
		return diagnostics.Configf("construct", Name, "scale %v must be positive", p.Scale)
	}
	theta, err := tracker.NewInterpolated("theta", 0)
	if err != nil {
		return err
	}
	if err := ctx.Player.Bind("theta", theta); err != nil {
		return err
	}
	mid := float64(len(p.Gates)-1) / 2
	for k, name := range p.Gates {
		gate, err := LookupGate(name)
		if err != nil {
			return err
		}
		cells := &Cells{
			Label:  "R_" + strings.TrimPrefix(name, "r"),
			Gate:   gate,
			Origin: geom.Right.Scale((float64(k) - mid) * p.Spacing),
			Scale:  p.Scale,
		}
		if err := ctx.Show(name, cells, theta); err != nil {
			return err
		}
	}
	return ctx.Play(sequence.Program{
		Version: "seq.v1",
		Clips: []sequence.Clip{
			{Name: "create", DurationS: 1},
			{Name: "rotate", DurationS: p.RunTime, Animations: []sequence.Animation{{Value: "theta", To: p.To, Ease: "smooth"}}},
		},
	})
}
