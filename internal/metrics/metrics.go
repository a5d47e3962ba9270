// Package metrics exports clock activity as Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/coreman2200/funtimes-arcanim/internal/diagnostics"
)

// Collector implements clock.Observer.
type Collector struct {
	Ticks    *prometheus.CounterVec
	Duration *prometheus.HistogramVec
	Bindings *prometheus.GaugeVec
	Faults   *prometheus.CounterVec

	scene string
}

// New builds the collectors for one scene and registers them with reg.
func New(reg prometheus.Registerer, scene string) (*Collector, error) {
	c := &Collector{
		Ticks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arcanim_ticks_total",
				Help: "Completed clock ticks",
			},
			[]string{"scene"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "arcanim_tick_duration_seconds",
				Help:    "Wall time spent inside one tick",
				Buckets: prometheus.ExponentialBuckets(0.00005, 2, 12),
			},
			[]string{"scene"},
		),
		Bindings: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "arcanim_bindings",
				Help: "Active bindings after the last tick",
			},
			[]string{"scene"},
		),
		Faults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arcanim_faults_total",
				Help: "Ticks that failed and stopped the clock",
			},
			[]string{"scene", "kind"},
		),
		scene: scene,
	}
	if reg != nil {
		for _, col := range []prometheus.Collector{c.Ticks, c.Duration, c.Bindings, c.Faults} {
			if err := reg.Register(col); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}

func (c *Collector) ObserveTick(_ uint64, bindings int, took time.Duration) {
	c.Ticks.WithLabelValues(c.scene).Inc()
	c.Duration.WithLabelValues(c.scene).Observe(took.Seconds())
	c.Bindings.WithLabelValues(c.scene).Set(float64(bindings))
}

func (c *Collector) ObserveFault(err error) {
	kind, ok := diagnostics.KindOf(err)
	if !ok {
		kind = "other"
	}
	c.Faults.WithLabelValues(c.scene, string(kind)).Inc()
}
