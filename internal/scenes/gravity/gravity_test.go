package gravity

import (
	"context"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/physic"

	"github.com/coreman2200/funtimes-arcanim/internal/diagnostics"
	"github.com/coreman2200/funtimes-arcanim/internal/geom"
	"github.com/coreman2200/funtimes-arcanim/internal/scene"
)

func TestReleaseAngleFolding(t *testing.T) {
	for i := 0; i <= 20; i++ {
		a := ReleaseAngle(-math.Pi/4, i, 20)
		assert.LessOrEqual(t, a, math.Pi/2+1e-12, "arrow %d", i)
		assert.GreaterOrEqual(t, a, -3*math.Pi/2-1e-12, "arrow %d", i)
	}
	assert.InDelta(t, -math.Pi/4, ReleaseAngle(-math.Pi/4, 0, 20), 1e-15)
	assert.InDelta(t, -math.Pi/4, ReleaseAngle(-math.Pi/4, 20, 20), 1e-12, "last arrow wraps onto the first")
	// 3π/4 is past π/2 and folds down by a full turn.
	assert.InDelta(t, 3*math.Pi/4-2*math.Pi, ReleaseAngle(-math.Pi/4, 10, 20), 1e-12)
	assert.InDelta(t, math.Pi/4, ReleaseAngle(-7*math.Pi/4, 0, 1), 1e-12)
}

func TestGravityArrowsSwing(t *testing.T) {
	var frames []scene.Frame
	rec := scene.SinkFunc(func(f scene.Frame) error { frames = append(frames, f); return nil })
	_, err := scene.NewRunner(zerolog.Nop(), rec).Render(context.Background(), New(), scene.Options{
		Rate:     30 * physic.Hertz,
		Duration: 1,
		Params:   map[string]any{"num_arrows": 4},
	})
	require.NoError(t, err)
	require.Len(t, frames, 31)
	require.Len(t, frames[0].Objects, 1+5)

	p := Defaults()
	w := math.Sqrt(p.G / p.Radius)
	for i := 0; i <= 4; i++ {
		obj := frames[0].Objects[1+i]
		release := ReleaseAngle(p.StartAngle, i, 4)
		end := obj.Shapes[0].End
		assert.InDelta(t, p.Radius*math.Cos(release), end.X, 1e-9, "arrow %d starts at its release angle", i)
		assert.InDelta(t, p.Radius*math.Sin(release), end.Y, 1e-9)

		maxTheta := -math.Pi/2 - release
		theta := maxTheta * math.Cos(1*w)
		end = frames[30].Objects[1+i].Shapes[0].End
		dir := -math.Pi/2 - theta
		assert.InDelta(t, p.Radius*math.Cos(dir), end.X, 1e-9, "arrow %d after 1s", i)
		assert.InDelta(t, p.Radius*math.Sin(dir), end.Y, 1e-9)
		assert.Equal(t, geom.Origin, frames[30].Objects[1+i].Shapes[0].Start)
	}
}

func TestGravityParams(t *testing.T) {
	r := scene.NewRunner(zerolog.Nop())
	_, err := r.Render(context.Background(), New(), scene.Options{Rate: physic.Hertz, Params: map[string]any{"num_arrows": 0}})
	assert.ErrorIs(t, err, diagnostics.ErrConfiguration)
	_, err = r.Render(context.Background(), New(), scene.Options{Rate: physic.Hertz, Params: map[string]any{"radius": -3}})
	assert.ErrorIs(t, err, diagnostics.ErrConfiguration)
}
