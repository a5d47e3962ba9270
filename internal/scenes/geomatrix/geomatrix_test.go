package geomatrix

import (
	"context"
	"math"
	"math/cmplx"
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

func TestGatesAreUnitary(t *testing.T) {
	for _, name := range GateNames() {
		g, err := LookupGate(name)
		require.NoError(t, err)
		for _, theta := range []float64{0, 0.3, math.Pi / 2, math.Pi, 5} {
			m := g(theta)
			for i := 0; i < 2; i++ {
				for j := 0; j < 2; j++ {
					var sum complex128
					for k := 0; k < 2; k++ {
						sum += m[i][k] * cmplx.Conj(m[j][k])
					}
					want := 0.0
					if i == j {
						want = 1
					}
					assert.InDelta(t, want, real(sum), 1e-12, "%s(%v)", name, theta)
					assert.InDelta(t, 0, imag(sum), 1e-12, "%s(%v)", name, theta)
				}
			}
		}
	}
	_, err := LookupGate("cx")
	assert.ErrorIs(t, err, diagnostics.ErrConfiguration)
}

func TestCellsAtZero(t *testing.T) {
	c := &Cells{Label: "R_x", Gate: RX, Origin: geom.Origin, Scale: 1}
	st, err := c.Compute(clock.Inputs{0})
	require.NoError(t, err)
	require.Len(t, st.Shapes, 13)

	assert.Equal(t, geom.Vec3{X: -0.5, Y: 0.5}, c.Center(0, 0))
	assert.Equal(t, geom.Vec3{X: 0.5, Y: -0.5}, c.Center(1, 1))

	squares, circles, arrows := st.Shapes[0:4], st.Shapes[4:8], st.Shapes[8:12]
	for _, s := range squares {
		assert.Equal(t, geom.Square, s.Kind)
		assert.Equal(t, 0.5, s.Radius)
	}
	// cells are (0,0) (0,1) (1,0) (1,1); the off-diagonal entries are zero
	assert.Equal(t, 0.5, circles[0].Radius)
	assert.True(t, circles[1].Degenerate())
	assert.True(t, circles[2].Degenerate())
	assert.True(t, arrows[1].Degenerate(), "zero entry draws a point, not an error")
	assert.Equal(t, c.Center(0, 0).Add(geom.Vec3{X: 0.5}), arrows[0].End)
	assert.Equal(t, "R_x(0.00)", st.Shapes[12].Text)

	again, err := c.Compute(clock.Inputs{0})
	require.NoError(t, err)
	assert.Equal(t, st, again)
}

func TestCellsPhaseArrows(t *testing.T) {
	c := &Cells{Label: "R_z", Gate: RZ, Origin: geom.Vec3{X: 2.5}, Scale: 1}
	st, err := c.Compute(clock.Inputs{math.Pi})
	require.NoError(t, err)
	down := st.Shapes[8]
	assert.InDelta(t, c.Center(0, 0).X, down.End.X, 1e-12)
	assert.InDelta(t, c.Center(0, 0).Y-0.5, down.End.Y, 1e-12, "e^{-iπ/2} points down")
	up := st.Shapes[11]
	assert.InDelta(t, c.Center(1, 1).Y+0.5, up.End.Y, 1e-12)
	assert.True(t, st.Shapes[9].Degenerate())

	_, err = (&Cells{Label: "none", Scale: 1}).Compute(clock.Inputs{0})
	assert.ErrorIs(t, err, diagnostics.ErrConfiguration)
}

func TestGeoMatrixScene(t *testing.T) {
	var frames []scene.Frame
	rec := scene.SinkFunc(func(f scene.Frame) error { frames = append(frames, f); return nil })
	_, err := scene.NewRunner(zerolog.Nop(), rec).Render(context.Background(), New(), scene.Options{Rate: 10 * physic.Hertz})
	require.NoError(t, err)
	require.Len(t, frames, 61)

	first := frames[0]
	require.Len(t, first.Objects, 3)
	assert.Equal(t, []string{"rx", "ry", "rz"}, []string{first.Objects[0].Name, first.Objects[1].Name, first.Objects[2].Name})
	assert.InDelta(t, -2.5-0.5, first.Objects[0].Shapes[0].Center.X, 1e-12)

	last := frames[60]
	assert.Equal(t, geom.Tau, last.Values["theta"])
	assert.Equal(t, "R_x(6.28)", last.Objects[0].Shapes[12].Text)
	// RY(2π) = -I: diagonal arrows point left
	ry := last.Objects[1].Shapes
	assert.InDelta(t, -0.5-0.5, ry[8].End.X, 1e-9)

	_, err = scene.NewRunner(zerolog.Nop()).Render(context.Background(), New(), scene.Options{
		Rate: physic.Hertz, Params: map[string]any{"gates": []string{"rq"}},
	})
	assert.ErrorIs(t, err, diagnostics.ErrConfiguration)
}
