package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-arcanim/internal/clock"
	"github.com/coreman2200/funtimes-arcanim/internal/diagnostics"
	"github.com/coreman2200/funtimes-arcanim/internal/geom"
)

var _ clock.Observer = (*Collector)(nil)

type still struct{}

func (still) Name() string { return "still" }
func (still) Compute(clock.Inputs) (geom.State, error) { return geom.State{}, nil }

func TestCollectorCountsTicks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg, "demo")
	require.NoError(t, err)

	c := clock.New(clock.WithObserver(m))
	require.NoError(t, c.Register(still{}, clock.TargetFunc(func(geom.State) error { return nil })))
	require.NoError(t, c.Start())
	for i := 0; i < 3; i++ {
		require.NoError(t, c.Tick(0.1))
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(m.Ticks.WithLabelValues("demo")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Bindings.WithLabelValues("demo")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Duration))

	_, err = New(reg, "demo")
	assert.Error(t, err, "collectors register once per registry")
}

func TestCollectorFaultKinds(t *testing.T) {
	m, err := New(nil, "demo")
	require.NoError(t, err)
	m.ObserveFault(diagnostics.Domainf("advance", "x", "bad"))
	m.ObserveFault(diagnostics.Stalef("apply", "y", "gone"))
	m.ObserveFault(errors.New("plain"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Faults.WithLabelValues("demo", "domain")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Faults.WithLabelValues("demo", "stale_reference")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Faults.WithLabelValues("demo", "other")))
	m.ObserveTick(1, 2, time.Millisecond)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Bindings.WithLabelValues("demo")))
}
