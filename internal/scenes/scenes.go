// Package scenes registers the built-in scenes.
package scenes

import (
	"github.com/mitchellh/mapstructure"

	"github.com/coreman2200/funtimes-arcanim/internal/scene"
	"github.com/coreman2200/funtimes-arcanim/internal/scenes/geomatrix"
	"github.com/coreman2200/funtimes-arcanim/internal/scenes/gravity"
	"github.com/coreman2200/funtimes-arcanim/internal/scenes/modn"
	"github.com/coreman2200/funtimes-arcanim/internal/scenes/pendulum"
	"github.com/coreman2200/funtimes-arcanim/internal/scenes/qubit"
	"github.com/coreman2200/funtimes-arcanim/internal/scenes/timeline"
)

// Registry returns a registry holding every built-in scene.
func Registry() (*scene.Registry, error) {
	reg := scene.NewRegistry()
	for _, f := range []scene.Factory{pendulum.New, gravity.New, modn.New, geomatrix.New, qubit.New, timeline.New} {
		if err := reg.Register(f); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Defaults returns each scene's default parameters keyed by scene name,
// in the shape the config file uses.
func Defaults() (map[string]map[string]any, error) {
	all := map[string]any{
		pendulum.Name:  pendulum.Defaults(),
		gravity.Name:   gravity.Defaults(),
		modn.Name:      modn.Defaults(),
		geomatrix.Name: geomatrix.Defaults(),
		qubit.Name:     qubit.Defaults(),
		timeline.Name:  timeline.Defaults(),
	}
	out := make(map[string]map[string]any, len(all))
	for name, p := range all {
		m := map[string]any{}
		if err := mapstructure.Decode(p, &m); err != nil {
			return nil, err
		}
		out[name] = m
	}
	return out, nil
}
