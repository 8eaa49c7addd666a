package ana

import (
	"math"

	"github.com/poromech/gopore/mporous"
)

// Mandel is the pore pressure solution for a poroelastic slab of half-width
// a squeezed between rigid frictionless plates and drained at the vertical
// edges. F is the applied compressive force per unit out-of-plane thickness
// and per half-width, so the mean total stress is -F/a.
type Mandel struct {
	A      float64 // half-width
	F      float64
	Consol float64
	B      float64 // Skempton coefficient
	Nu     float64 // drained Poisson ratio
	NuU    float64 // undrained Poisson ratio
	roots  []float64
}

func NewMandel(m *mporous.Model, a, force float64, terms int) *Mandel {
	p := m.Props
	ku := p.K + m.Alpha*m.Alpha*m.Q
	md := &Mandel{
		A:      a,
		F:      force,
		Consol: m.Consol,
		B:      m.Alpha * m.Q / ku,
		Nu:     (3*p.K - 2*p.G) / (2 * (3*p.K + p.G)),
		NuU:    (3*ku - 2*p.G) / (2 * (3*ku + p.G)),
	}
	md.roots = mandelRoots((1-md.Nu)/(md.NuU-md.Nu), terms)
	return md
}

// mandelRoots solves tan(x) = m*x by bisection; the n-th root lies in
// (n*pi, (n+1/2)*pi) where sin(x) - m*x*cos(x) changes sign. With m > 1
// that includes the dominant first root inside (0, pi/2).
func mandelRoots(m float64, terms int) (roots []float64) {
	g := func(x float64) float64 { return math.Sin(x) - m*x*math.Cos(x) }
	for n := 0; n < terms; n++ {
		lo := math.Max(float64(n)*math.Pi, 1e-12)
		hi := (float64(n) + 0.5) * math.Pi
		glo := g(lo)
		for it := 0; it < 200; it++ {
			mid := (lo + hi) / 2
			if gm := g(mid); (gm < 0) == (glo < 0) {
				lo, glo = mid, gm
			} else {
				hi = mid
			}
		}
		roots = append(roots, (lo+hi)/2)
	}
	return
}

func (m *Mandel) Roots() []float64 { return m.roots }

// InitialPressure is the uniform undrained response B(1+nu_u)F/(3a)
func (m *Mandel) InitialPressure() float64 {
	return m.B * (1 + m.NuU) * m.F / (3 * m.A)
}

// Pressure evaluates p(x,t) with x measured from the slab center
func (m *Mandel) Pressure(x, time float64) float64 {
	if time <= 0 {
		return m.InitialPressure()
	}
	var sum float64
	for _, an := range m.roots {
		sum += math.Sin(an) / (an - math.Sin(an)*math.Cos(an)) *
			(math.Cos(an*x/m.A) - math.Cos(an)) *
			math.Exp(-an*an*m.Consol*time/(m.A*m.A))
	}
	return 2 * m.InitialPressure() * sum
}
