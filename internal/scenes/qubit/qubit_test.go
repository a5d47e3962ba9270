package qubit

import (
	"context"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/physic"

	"github.com/coreman2200/funtimes-arcanim/internal/clock"
	"github.com/coreman2200/funtimes-arcanim/internal/diagnostics"
	"github.com/coreman2200/funtimes-arcanim/internal/geom"
	"github.com/coreman2200/funtimes-arcanim/internal/scene"
)

func tip(t *testing.T, b *Bloch, g float64) geom.Vec3 {
	t.Helper()
	st, err := b.Compute(clock.Inputs{g})
	require.NoError(t, err)
	require.Len(t, st.Shapes, 1)
	assert.Equal(t, geom.Origin, st.Shapes[0].Start)
	return st.Shapes[0].End
}

func assertVec(t *testing.T, want, got geom.Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-12, "x")
	assert.InDelta(t, want.Y, got.Y, 1e-12, "y")
	assert.InDelta(t, want.Z, got.Z, 1e-12, "z")
}

func defaultBloch(t *testing.T) *Bloch {
	t.Helper()
	var seq []Step
	for _, name := range Defaults().Gates {
		s, err := LookupStep(name)
		require.NoError(t, err)
		seq = append(seq, s)
	}
	return &Bloch{
		Base:  geom.NewBase("arrow", geom.State{Shapes: []geom.Shape{geom.Segment(geom.Arrow, geom.Origin, geom.Out, geom.Red)}}),
		Steps: seq,
	}
}

func TestBlochGateSequence(t *testing.T) {
	b := defaultBloch(t)
	assertVec(t, geom.Out, tip(t, b, 0))
	assertVec(t, geom.Right, tip(t, b, 1)) // H|0⟩ = |+⟩
	assertVec(t, geom.Up, tip(t, b, 2))    // Rz: |+⟩ → |+i⟩
	assertVec(t, geom.Out, tip(t, b, 3))   // Rx: |+i⟩ → |0⟩
	assertVec(t, geom.Right, tip(t, b, 4)) // Ry: |0⟩ → |+⟩
	assertVec(t, geom.Right, tip(t, b, 9))
}

func TestBlochPartialGate(t *testing.T) {
	b := defaultBloch(t)
	// half of H: a quarter turn about (x+z)/√2
	assertVec(t, geom.Vec3{X: 0.5, Y: -math.Sqrt2 / 2, Z: 0.5}, tip(t, b, 0.5))

	first := tip(t, b, 2.37)
	for i := 0; i < 100; i++ {
		tip(t, b, float64(i)/25)
	}
	assert.Equal(t, first, tip(t, b, 2.37), "orientation depends only on g")

	_, err := b.Compute(clock.Inputs{math.NaN()})
	assert.ErrorIs(t, err, diagnostics.ErrDomain)

	b.Base.Dispose()
	_, err = b.Compute(clock.Inputs{1})
	assert.ErrorIs(t, err, diagnostics.ErrStaleReference)
}

func TestGateLabel(t *testing.T) {
	b := defaultBloch(t)
	l := &GateLabel{Steps: b.Steps}
	for g, want := range map[float64]string{0.2: "H", 1: "H", 1.5: "R_z(π/2)", 4: "R_y(π/2)", 7: "R_y(π/2)"} {
		st, err := l.Compute(clock.Inputs{g})
		require.NoError(t, err)
		require.Len(t, st.Shapes, 1)
		assert.Equal(t, want, st.Shapes[0].Text, "g=%v", g)
	}
	st, err := l.Compute(clock.Inputs{0})
	require.NoError(t, err)
	assert.Empty(t, st.Shapes)
}

func TestQubitScene(t *testing.T) {
	var frames []scene.Frame
	rec := scene.SinkFunc(func(f scene.Frame) error { frames = append(frames, f); return nil })
	s := New()
	_, err := scene.NewRunner(zerolog.Nop(), rec).Render(context.Background(), s, scene.Options{Rate: 10 * physic.Hertz})
	require.NoError(t, err)
	assert.Equal(t, 9.0, s.Duration())
	require.Len(t, frames, 91)

	names := func(f scene.Frame) []string {
		var out []string
		for _, o := range f.Objects {
			out = append(out, o.Name)
		}
		return out
	}
	assert.Empty(t, frames[10].Objects)
	assert.Equal(t, []string{"axes"}, names(frames[11]))
	assert.Equal(t, []string{"axes", "sphere", "kets", "arrow", "gate"}, names(frames[21]))

	arrow := func(f scene.Frame) geom.Vec3 { return f.Objects[3].Shapes[0].End }
	assertVec(t, geom.Out, arrow(frames[30]))
	assert.Empty(t, frames[30].Objects[4].Shapes, "no gate label before the first gate")
	assert.Equal(t, 1.0, frames[40].Values["g"])
	assertVec(t, geom.Right, arrow(frames[40]))
	assertVec(t, geom.Up, arrow(frames[50]))
	assertVec(t, geom.Out, arrow(frames[60]))
	assertVec(t, geom.Right, arrow(frames[70]))
	assert.Equal(t, "R_y(π/2)", frames[70].Objects[4].Shapes[0].Text)

	assert.Len(t, frames[80].Objects, 5)
	assert.Empty(t, frames[81].Objects)
	assert.Empty(t, frames[90].Objects)
}

func TestQubitParams(t *testing.T) {
	r := scene.NewRunner(zerolog.Nop())
	_, err := r.Render(context.Background(), New(), scene.Options{Rate: physic.Hertz, Params: map[string]any{"gates": []string{"h", "t"}}})
	assert.ErrorIs(t, err, diagnostics.ErrConfiguration)
	_, err = r.Render(context.Background(), New(), scene.Options{Rate: physic.Hertz, Params: map[string]any{"gates": []string{}}})
	assert.ErrorIs(t, err, diagnostics.ErrConfiguration)
	_, err = r.Render(context.Background(), New(), scene.Options{Rate: physic.Hertz, Params: map[string]any{"gate_time": -1}})
	assert.ErrorIs(t, err, diagnostics.ErrDomain)
}
