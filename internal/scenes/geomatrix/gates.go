package geomatrix

import (
	"math"
	"math/cmplx"
	"sort"

	"github.com/coreman2200/funtimes-arcanim/internal/diagnostics"
)

// Matrix is a single-qubit operator, indexed [row][col].
type Matrix [2][2]complex128

// Gate is a rotation family parameterised by angle.
type Gate func(theta float64) Matrix

func RX(theta float64) Matrix {
	c, s := math.Cos(theta/2), math.Sin(theta/2)
	return Matrix{
		{complex(c, 0), complex(0, -s)},
		{complex(0, -s), complex(c, 0)},
	}
}

func RY(theta float64) Matrix {
	c, s := math.Cos(theta/2), math.Sin(theta/2)
	return Matrix{
		{complex(c, 0), complex(-s, 0)},
		{complex(s, 0), complex(c, 0)},
	}
}

func RZ(theta float64) Matrix {
	return Matrix{
		{cmplx.Exp(complex(0, -theta/2)), 0},
		{0, cmplx.Exp(complex(0, theta/2))},
	}
}

var gates = map[string]Gate{"rx": RX, "ry": RY, "rz": RZ}

// LookupGate finds a rotation family by name (rx, ry, rz).
func LookupGate(name string) (Gate, error) {
	g, ok := gates[name]
	if !ok {
		return nil, diagnostics.Configf("gate", name, "unknown gate; have %v", GateNames())
	}
	return g, nil
}

func GateNames() []string {
	out := make([]string, 0, len(gates))
	for k := range gates {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
