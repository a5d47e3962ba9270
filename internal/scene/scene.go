// Package scene hosts animation scenes: it builds a clock, a stage of live
// objects and a timeline for each scene, then ticks them headless or in real
// time while streaming frames to sinks.
package scene

import (
	"sort"

	"github.com/coreman2200/funtimes-arcanim/internal/diagnostics"
)

// Scene declares objects, tracked values and bindings on a Context.
type Scene interface {
	Name() string
	Describe() string
	// Duration is the natural running time in seconds, valid after Construct.
	Duration() float64
	Construct(ctx *Context) error
}

// Factory returns a fresh, unconstructed scene.
type Factory func() Scene

type Registry struct{ m map[string]Factory }

func NewRegistry() *Registry { return &Registry{m: map[string]Factory{}} }

func (r *Registry) Register(f Factory) error {
	if f == nil {
		return diagnostics.Configf("register", "", "factory is nil")
	}
	sc := f()
	if sc == nil || sc.Name() == "" {
		return diagnostics.Configf("register", "", "factory returned an unnamed scene")
	}
	if _, dup := r.m[sc.Name()]; dup {
		return diagnostics.Configf("register", sc.Name(), "scene already registered")
	}
	r.m[sc.Name()] = f
	return nil
}

// Get returns a new instance of the named scene.
func (r *Registry) Get(name string) (Scene, bool) {
	f, ok := r.m[name]
	if !ok {
		return nil, false
	}
	return f(), true
}

func (r *Registry) List() []string {
	out := make([]string, 0, len(r.m))
	for k := range r.m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
