// Package qubit turns a Bloch vector from |0⟩ through a sequence of
// single-qubit gates, one gate per clip.
package qubit

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/num/quat"

	"github.com/coreman2200/funtimes-arcanim/internal/clock"
	"github.com/coreman2200/funtimes-arcanim/internal/diagnostics"
	"github.com/coreman2200/funtimes-arcanim/internal/geom"
	"github.com/coreman2200/funtimes-arcanim/internal/scene"
	"github.com/coreman2200/funtimes-arcanim/internal/sequence"
	"github.com/coreman2200/funtimes-arcanim/internal/tracker"
)

const Name = "qubit"

// Step is a gate as a rotation of the Bloch sphere.
type Step struct {
	Label string
	Axis  geom.Vec3
	Angle float64
}

func (s Step) quat(frac float64) quat.Number { return geom.AxisAngle(s.Axis, s.Angle*frac) }

var steps = map[string]Step{
	"h":  {Label: "H", Axis: geom.Vec3{X: 1, Z: 1}, Angle: math.Pi},
	"x":  {Label: "X", Axis: geom.Right, Angle: math.Pi},
	"y":  {Label: "Y", Axis: geom.Up, Angle: math.Pi},
	"z":  {Label: "Z", Axis: geom.Out, Angle: math.Pi},
	"s":  {Label: "S", Axis: geom.Out, Angle: math.Pi / 2},
	"rx": {Label: "R_x(π/2)", Axis: geom.Right, Angle: math.Pi / 2},
	"ry": {Label: "R_y(π/2)", Axis: geom.Up, Angle: math.Pi / 2},
	"rz": {Label: "R_z(π/2)", Axis: geom.Out, Angle: math.Pi / 2},
}

// LookupStep finds a gate by name.
func LookupStep(name string) (Step, error) {
	s, ok := steps[name]
	if !ok {
		names := make([]string, 0, len(steps))
		for k := range steps {
			names = append(names, k)
		}
		sort.Strings(names)
		return Step{}, diagnostics.Configf("gate", name, "unknown gate; have %v", names)
	}
	return s, nil
}

type Params struct {
	Gates    []string `mapstructure:"gates" yaml:"gates"`
	GateTime float64  `mapstructure:"gate_time" yaml:"gate_time"`
}

func Defaults() Params {
	return Params{Gates: []string{"h", "rz", "rx", "ry"}, GateTime: 1}
}

type Scene struct {
	params Params
}

func New() scene.Scene { return &Scene{params: Defaults()} }

func (s *Scene) Name() string { return Name }

func (s *Scene) Describe() string {
	return "Bloch vector from |0⟩ rotated gate by gate (H, Rz, Rx, Ry by default)"
}

// Duration covers the lead-in (wait, axes, create), the gates, and the
// lead-out (uncreate, wait).
func (s *Scene) Duration() float64 {
	return 5 + float64(len(s.params.Gates))*s.params.GateTime
}

// Bloch orients the state vector after g gates: completed gates compose in
// order and gate ⌊g⌋ is applied by the fraction g-⌊g⌋. Every frame rotates
// the saved |0⟩ vector.
type Bloch struct {
	Base  *geom.Base
	Steps []Step
}

func (b *Bloch) Name() string { return "bloch" }

func (b *Bloch) Orientation(g float64) (quat.Number, error) {
	if math.IsNaN(g) {
		return quat.Number{}, diagnostics.Domainf("orient", "bloch", "gate progress is NaN")
	}
	g = math.Max(0, math.Min(g, float64(len(b.Steps))))
	k := int(math.Floor(g))
	q := quat.Number{Real: 1}
	for _, s := range b.Steps[:k] {
		q = geom.Then(q, s.quat(1))
	}
	if frac := g - float64(k); k < len(b.Steps) && frac > 0 {
		q = geom.Then(q, b.Steps[k].quat(frac))
	}
	return q, nil
}

func (b *Bloch) Compute(in clock.Inputs) (geom.State, error) {
	q, err := b.Orientation(in[0])
	if err != nil {
		return geom.State{}, err
	}
	return b.Base.Rotated3(geom.Origin, q)
}

// GateLabel names the gate in progress; nothing before the first starts.
type GateLabel struct {
	Steps []Step
	At    geom.Vec3
}

func (l *GateLabel) Name() string { return "gate-label" }

func (l *GateLabel) Compute(in clock.Inputs) (geom.State, error) {
	g := in[0]
	if !(g > 0) || len(l.Steps) == 0 {
		return geom.State{}, nil
	}
	i := int(math.Ceil(g)) - 1
	if i >= len(l.Steps) {
		i = len(l.Steps) - 1
	}
	return geom.State{Shapes: []geom.Shape{{Kind: geom.Label, Center: l.At, Color: geom.White, Text: l.Steps[i].Label}}}, nil
}

func axes() geom.State {
	const half = 2.75
	return geom.State{Shapes: []geom.Shape{
		geom.Segment(geom.Arrow, geom.Left.Scale(half), geom.Right.Scale(half), geom.White),
		geom.Segment(geom.Arrow, geom.Down.Scale(half), geom.Up.Scale(half), geom.White),
		geom.Segment(geom.Arrow, geom.In.Scale(half), geom.Out.Scale(half), geom.White),
	}}
}

func kets() geom.State {
	label := func(at geom.Vec3, text string) geom.Shape {
		return geom.Shape{Kind: geom.Label, Center: at.Scale(3), Color: geom.White, Text: text}
	}
	return geom.State{Shapes: []geom.Shape{
		label(geom.Out, "|0⟩"),
		label(geom.In, "|1⟩"),
		label(geom.Right, "|+⟩"),
		label(geom.Left, "|-⟩"),
		label(geom.Up, "|+i⟩"),
		label(geom.Down, "|-i⟩"),
	}}
}

func (s *Scene) Construct(ctx *scene.Context) error {
	if err := ctx.Decode(&s.params); err != nil {
		return err
	}
	p := s.params
	if len(p.Gates) == 0 {
		return diagnostics.Configf("construct", Name, "no gates")
	}
	seq := make([]Step, 0, len(p.Gates))
	for _, name := range p.Gates {
		st, err := LookupStep(name)
		if err != nil {
			return err
		}
		seq = append(seq, st)
	}

	g, err := tracker.NewInterpolated("g", 0, tracker.WithBounds(0, float64(len(seq))))
	if err != nil {
		return err
	}
	if err := ctx.Player.Bind("g", g); err != nil {
		return err
	}
	bloch := &Bloch{
		Base:  geom.NewBase("arrow", geom.State{Shapes: []geom.Shape{geom.Segment(geom.Arrow, geom.Origin, geom.Out, geom.Red)}}),
		Steps: seq,
	}
	label := &GateLabel{Steps: seq, At: geom.Vec3{Y: 3.5}}

	objects := []string{"axes", "sphere", "kets", "arrow", "gate"}
	ctx.Player.SetHooks(sequence.Hooks{OnClipStart: func(c sequence.Clip) error {
		switch c.Name {
		case "axes":
			return ctx.Stage.Add("axes", axes())
		case "create":
			if err := ctx.Stage.Add("sphere", geom.State{Shapes: []geom.Shape{geom.Round(geom.Circle, geom.Origin, 1, geom.White)}}); err != nil {
				return err
			}
			if err := ctx.Stage.Add("kets", kets()); err != nil {
				return err
			}
			if err := ctx.Show("arrow", bloch, g); err != nil {
				return err
			}
			return ctx.Show("gate", label, g)
		case "uncreate":
			if err := ctx.Clock.Unregister(bloch); err != nil {
				return err
			}
			return ctx.Clock.Unregister(label)
		case "fin":
			for _, name := range objects {
				if err := ctx.Stage.Remove(name); err != nil {
					return err
				}
			}
			bloch.Base.Dispose()
		}
		return nil
	}})

	clips := []sequence.Clip{
		{Name: "wait", DurationS: 1},
		{Name: "axes", DurationS: 1},
		{Name: "create", DurationS: 1},
	}
	for i, st := range seq {
		clips = append(clips, sequence.Clip{
			Name:       st.Label,
			DurationS:  p.GateTime,
			Animations: []sequence.Animation{{Value: "g", To: float64(i + 1), Ease: "smooth"}},
		})
	}
	clips = append(clips, sequence.Clip{Name: "uncreate", DurationS: 1}, sequence.Clip{Name: "fin", DurationS: 1})
	return ctx.Play(sequence.Program{Version: "seq.v1", Clips: clips})
}
