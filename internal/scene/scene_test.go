package scene

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/physic"

	"github.com/coreman2200/funtimes-arcanim/internal/clock"
	"github.com/coreman2200/funtimes-arcanim/internal/diagnostics"
	"github.com/coreman2200/funtimes-arcanim/internal/geom"
	"github.com/coreman2200/funtimes-arcanim/internal/tracker"
)

type rotor struct{ base *geom.Base }

func (r *rotor) Name() string { return "rotor" }

func (r *rotor) Compute(in clock.Inputs) (geom.State, error) {
	return r.base.Rotated(geom.Origin, in[0])
}

type spinParams struct {
	Speed   float64 `mapstructure:"speed"`
	Seconds float64 `mapstructure:"seconds"`
}

// spin turns a unit line about the origin at a constant rate.
type spin struct {
	name    string
	params  spinParams
	onBuild func(ctx *Context) error
}

func newSpin() Scene { return &spin{name: "spin", params: spinParams{Speed: 1, Seconds: 1}} }

func (s *spin) Name() string { return s.name }
func (s *spin) Describe() string { return "a spinning line" }
func (s *spin) Duration() float64 { return s.params.Seconds }
func (s *spin) Construct(ctx *Context) error {
	if err := ctx.Decode(&s.params); err != nil {
		return err
	}
	speed := s.params.Speed
	theta, err := tracker.NewClosedForm("theta", func(t float64) float64 { return speed * t })
	if err != nil {
		return err
	}
	line := geom.State{Shapes: []geom.Shape{geom.Segment(geom.Line, geom.Origin, geom.Right, geom.White)}}
	if err := ctx.Stage.Add("axis", line); err != nil {
		return err
	}
	if err := ctx.Show("line", &rotor{base: geom.NewBase("line", line)}, theta); err != nil {
		return err
	}
	if s.onBuild != nil {
		return s.onBuild(ctx)
	}
	return nil
}

type frames struct{ got []Frame }

func (f *frames) Write(fr Frame) error { f.got = append(f.got, fr); return nil }

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(newSpin))
	require.NoError(t, reg.Register(func() Scene { return &spin{name: "alpha"} }))
	assert.ErrorIs(t, reg.Register(newSpin), diagnostics.ErrConfiguration)
	assert.ErrorIs(t, reg.Register(nil), diagnostics.ErrConfiguration)
	assert.ErrorIs(t, reg.Register(func() Scene { return &spin{} }), diagnostics.ErrConfiguration)

	assert.Equal(t, []string{"alpha", "spin"}, reg.List())
	a, ok := reg.Get("spin")
	require.True(t, ok)
	b, _ := reg.Get("spin")
	assert.NotSame(t, a, b)
	_, ok = reg.Get("nope")
	assert.False(t, ok)
}

func TestRenderFixedFrames(t *testing.T) {
	rec := &frames{}
	r := NewRunner(zerolog.Nop(), rec)
	sum, err := r.Render(context.Background(), newSpin(), Options{
		Rate:   10 * physic.Hertz,
		Params: map[string]any{"speed": math.Pi / 2, "seconds": "1"},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 10, sum.Frames)
	assert.InDelta(t, 1, sum.Elapsed, 1e-9)
	require.Len(t, rec.got, 11, "initial frame plus one per tick")

	first := rec.got[0]
	assert.EqualValues(t, 0, first.Index)
	require.Len(t, first.Objects, 2)
	assert.Equal(t, "axis", first.Objects[0].Name)
	assert.Equal(t, "line", first.Objects[1].Name)

	last := rec.got[10]
	end := last.Objects[1].Shapes[0].End
	assert.InDelta(t, 0, end.X, 1e-9)
	assert.InDelta(t, 1, end.Y, 1e-9)
	assert.InDelta(t, math.Pi/2, last.Values["theta"], 1e-9)
	assert.Equal(t, geom.Right, last.Objects[0].Shapes[0].End, "static objects are untouched")
}

func TestRenderParamErrors(t *testing.T) {
	r := NewRunner(zerolog.Nop())
	for name, params := range map[string]map[string]any{
		"unknown key": {"sped": 2},
		"bad type":    {"speed": "fast"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := r.Render(context.Background(), newSpin(), Options{Rate: 10 * physic.Hertz, Params: params})
			assert.ErrorIs(t, err, diagnostics.ErrConfiguration)
		})
	}
	_, err := r.Render(context.Background(), newSpin(), Options{})
	assert.ErrorIs(t, err, diagnostics.ErrConfiguration)
	_, err = r.Render(context.Background(), nil, Options{Rate: physic.Hertz})
	assert.ErrorIs(t, err, diagnostics.ErrConfiguration)
}

func TestRenderStopsOnRemovedObject(t *testing.T) {
	sc := newSpin().(*spin)
	sc.onBuild = func(ctx *Context) error {
		return ctx.Clock.AddDriver(clock.DriverFunc(func(float64) error {
			if ctx.Clock.Frame() == 3 {
				return ctx.Stage.Remove("line")
			}
			return nil
		}))
	}
	rec := &frames{}
	sum, err := NewRunner(zerolog.Nop(), rec).Render(context.Background(), sc, Options{Rate: 10 * physic.Hertz})
	require.Error(t, err)
	assert.ErrorIs(t, err, diagnostics.ErrStaleReference)
	assert.EqualValues(t, 3, sum.Frames)
	assert.Len(t, rec.got, 4)
}

func TestRenderSinkErrorIsReturned(t *testing.T) {
	boom := errors.New("disk full")
	bad := SinkFunc(func(f Frame) error {
		if f.Index == 2 {
			return boom
		}
		return nil
	})
	_, err := NewRunner(zerolog.Nop(), bad).Render(context.Background(), newSpin(), Options{Rate: 10 * physic.Hertz})
	assert.ErrorIs(t, err, boom)
}

func TestRenderDurationOverride(t *testing.T) {
	rec := &frames{}
	sum, err := NewRunner(zerolog.Nop(), rec).Render(context.Background(), newSpin(), Options{Rate: 60 * physic.Hertz, Duration: 0.5})
	require.NoError(t, err)
	assert.EqualValues(t, 30, sum.Frames)
}

func TestLiveRunsUntilDuration(t *testing.T) {
	rec := &frames{}
	sum, err := NewRunner(zerolog.Nop(), rec).Live(context.Background(), newSpin(), Options{
		Rate:     1 * physic.KiloHertz,
		Timing:   clock.Wall,
		Duration: 0.05,
	}, nil)
	require.NoError(t, err)
	assert.Positive(t, sum.Frames)
	assert.Len(t, rec.got, int(sum.Frames)+1)
}

func TestStage(t *testing.T) {
	s := NewStage()
	st := geom.State{Shapes: []geom.Shape{geom.Round(geom.Dot, geom.Origin, 0.1, geom.Red)}}
	require.NoError(t, s.Add("a", st))
	require.NoError(t, s.Add("b", st))
	assert.ErrorIs(t, s.Add("a", st), diagnostics.ErrConfiguration)
	assert.ErrorIs(t, s.Add("", st), diagnostics.ErrConfiguration)

	moved := geom.State{Shapes: []geom.Shape{st.Shapes[0].Translate(geom.Up)}}
	require.NoError(t, s.Target("a").Apply(moved))
	got, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, geom.Up, got.Shapes[0].Center)

	moved.Shapes[0].Center = geom.Down
	got, _ = s.Get("a")
	assert.Equal(t, geom.Up, got.Shapes[0].Center, "stage keeps its own copy")

	require.NoError(t, s.Remove("a"))
	assert.ErrorIs(t, s.Apply("a", st), diagnostics.ErrStaleReference)
	assert.ErrorIs(t, s.Remove("a"), diagnostics.ErrStaleReference)
	objs := s.Objects()
	require.Len(t, objs, 1)
	assert.Equal(t, "b", objs[0].Name)
}

func TestDecodeParamsReplacesSlices(t *testing.T) {
	type params struct {
		Gates []string `mapstructure:"gates"`
		Scale float64  `mapstructure:"scale"`
	}
	p := params{Gates: []string{"rx", "ry", "rz"}, Scale: 1}
	require.NoError(t, DecodeParams("demo", map[string]any{"gates": []any{"ry"}}, &p))
	assert.Equal(t, params{Gates: []string{"ry"}, Scale: 1}, p)

	require.NoError(t, DecodeParams("demo", nil, &p))
	assert.Equal(t, 1.0, p.Scale)

	err := DecodeParams("demo", map[string]any{"scale": map[string]any{"a": 1}}, &p)
	require.Error(t, err)
	var de *diagnostics.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "demo", de.Subject)
}
