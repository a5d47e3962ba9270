package geom

import (
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/num/quat"
)

type Kind string

const (
	Line   Kind = "line"
	Arrow  Kind = "arrow"
	Dot    Kind = "dot"
	Circle Kind = "circle"
	Square Kind = "square"
	Label  Kind = "label"
)

// Shape is one primitive. Segments (line, arrow) use Start/End; the others
// use Center and Radius (half side for squares).
type Shape struct {
	Kind   Kind    `json:"kind"`
	Start  Vec3    `json:"start"`
	End    Vec3    `json:"end"`
	Center Vec3    `json:"center"`
	Radius float64 `json:"radius,omitempty"`
	Color  Color   `json:"color"`
	Text   string  `json:"text,omitempty"`
}

func Segment(kind Kind, start, end Vec3, c Color) Shape {
	return Shape{Kind: kind, Start: start, End: end, Center: start.Add(end).Scale(0.5), Color: c}
}

func Round(kind Kind, center Vec3, radius float64, c Color) Shape {
	return Shape{Kind: kind, Center: center, Radius: radius, Color: c}
}

// Degenerate reports a zero-length segment or zero-radius round shape.
func (s Shape) Degenerate() bool {
	switch s.Kind {
	case Line, Arrow:
		return s.Start == s.End
	case Label:
		return false
	default:
		return s.Radius == 0
	}
}

// Rotate turns the shape about pivot in the XY plane.
func (s Shape) Rotate(pivot Vec3, angle float64) Shape {
	s.Start = Rotate2(s.Start, pivot, angle)
	s.End = Rotate2(s.End, pivot, angle)
	s.Center = Rotate2(s.Center, pivot, angle)
	return s
}

// Rotate3 turns the shape about pivot by the unit quaternion q.
func (s Shape) Rotate3(pivot Vec3, q quat.Number) Shape {
	s.Start = Rotate3(s.Start, pivot, q)
	s.End = Rotate3(s.End, pivot, q)
	s.Center = Rotate3(s.Center, pivot, q)
	return s
}

func (s Shape) Translate(d Vec3) Shape {
	s.Start = s.Start.Add(d)
	s.End = s.End.Add(d)
	s.Center = s.Center.Add(d)
	return s
}

// State is the snapshot a binding produces for one live object.
type State struct {
	Shapes []Shape `json:"shapes"`
}

func (s State) Clone() State {
	if s.Shapes == nil {
		return State{}
	}
	out := make([]Shape, len(s.Shapes))
	copy(out, s.Shapes)
	return State{Shapes: out}
}

// ApproxEqual compares every coordinate and radius within tol; kinds,
// colors and text must match exactly.
func (s State) ApproxEqual(o State, tol float64) bool {
	if len(s.Shapes) != len(o.Shapes) {
		return false
	}
	for i := range s.Shapes {
		a, b := s.Shapes[i], o.Shapes[i]
		if a.Kind != b.Kind || a.Color != b.Color || a.Text != b.Text {
			return false
		}
		x, y := a.numbers(), b.numbers()
		for j := range x {
			if !scalar.EqualWithinAbs(x[j], y[j], tol) {
				return false
			}
		}
	}
	return true
}

func (s Shape) numbers() [10]float64 {
	return [10]float64{
		s.Start.X, s.Start.Y, s.Start.Z,
		s.End.X, s.End.Y, s.End.Z,
		s.Center.X, s.Center.Y, s.Center.Z,
		s.Radius,
	}
}
