package tracker

import (
	"math"

	"github.com/coreman2200/funtimes-arcanim/internal/diagnostics"
)

// Scalar only changes when Set is called.
type Scalar struct {
	base
	v float64
}

func NewScalar(name string, initial float64, opts ...Option) (*Scalar, error) {
	b, err := newBase(name, opts)
	if err != nil {
		return nil, err
	}
	s := &Scalar{base: b}
	s.v = s.clamp(initial)
	return s, nil
}

func (s *Scalar) Get() float64 { return s.v }

func (s *Scalar) Set(v float64) error {
	if math.IsNaN(v) {
		return diagnostics.Domainf("set", s.name, "value is NaN")
	}
	s.v = s.clamp(v)
	return nil
}

func (s *Scalar) Advance(dt float64) (float64, error) {
	if err := s.checkDT(dt); err != nil {
		return s.v, err
	}
	return s.v, nil
}
