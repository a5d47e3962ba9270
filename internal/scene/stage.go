package scene

import (
	"github.com/coreman2200/funtimes-arcanim/internal/clock"
	"github.com/coreman2200/funtimes-arcanim/internal/diagnostics"
	"github.com/coreman2200/funtimes-arcanim/internal/geom"
)

// Object is a named live object as a sink sees it.
type Object struct {
	Name   string       `json:"name"`
	Shapes []geom.Shape `json:"shapes"`
}

// Stage holds the live objects bindings write into. It is owned by the
// ticking goroutine.
type Stage struct {
	objects map[string]geom.State
	order   []string
}

func NewStage() *Stage { return &Stage{objects: map[string]geom.State{}} }

// Add places a new object. Objects are listed in the order added.
func (s *Stage) Add(name string, st geom.State) error {
	if name == "" {
		return diagnostics.Configf("add", name, "object name is empty")
	}
	if _, dup := s.objects[name]; dup {
		return diagnostics.Configf("add", name, "object already on stage")
	}
	s.objects[name] = st.Clone()
	s.order = append(s.order, name)
	return nil
}

// Remove takes an object off the stage. Later Applies to it are stale.
func (s *Stage) Remove(name string) error {
	if _, ok := s.objects[name]; !ok {
		return diagnostics.Stalef("remove", name, "object is not on stage")
	}
	delete(s.objects, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Apply copies st onto the live object in place.
func (s *Stage) Apply(name string, st geom.State) error {
	if _, ok := s.objects[name]; !ok {
		return diagnostics.Stalef("apply", name, "object is not on stage")
	}
	s.objects[name] = st.Clone()
	return nil
}

func (s *Stage) Get(name string) (geom.State, bool) {
	st, ok := s.objects[name]
	return st.Clone(), ok
}

// Target adapts the named object for clock registration.
func (s *Stage) Target(name string) clock.Target {
	return clock.TargetFunc(func(st geom.State) error { return s.Apply(name, st) })
}

func (s *Stage) Len() int { return len(s.order) }

// Objects copies every object in stage order.
func (s *Stage) Objects() []Object {
	out := make([]Object, 0, len(s.order))
	for _, n := range s.order {
		out = append(out, Object{Name: n, Shapes: s.objects[n].Clone().Shapes})
	}
	return out
}
