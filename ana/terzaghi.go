// Package ana provides the closed-form reference solutions the benchmark
// runs are validated against.
package ana

import (
	"math"

	"github.com/poromech/gopore/mporous"
)

// DefaultTerms truncates the series solutions; the exponentials decay fast
// enough that this is beyond machine precision for any time of interest
const DefaultTerms = 200

// Terzaghi is the 1D consolidation solution for a column of height L,
// sealed and fixed at the base, drained and loaded with sigmab on top.
type Terzaghi struct {
	P0     float64 // instantaneous undrained pressure
	Consol float64
	L      float64
	Alpha  float64
	Mv     float64
	SigmaB float64
	Terms  int
}

func NewTerzaghi(m *mporous.Model, L, sigmab float64) *Terzaghi {
	return &Terzaghi{
		P0:     m.UndrainedPressure(sigmab),
		Consol: m.Consol,
		L:      L,
		Alpha:  m.Alpha,
		Mv:     m.Mv,
		SigmaB: sigmab,
		Terms:  DefaultTerms,
	}
}

// Pressure evaluates p(y,t) with y measured from the sealed base
func (t *Terzaghi) Pressure(y, time float64) float64 {
	if time <= 0 {
		return t.P0
	}
	var sum float64
	for k := 0; k < t.Terms; k++ {
		m := float64(2*k + 1)
		sum += math.Sin(m*math.Pi*(t.L-y)/(2*t.L)) *
			math.Exp(-m*m*math.Pi*math.Pi*t.Consol*time/(4*t.L*t.L)) / m
	}
	return t.P0 * 4 / math.Pi * sum
}

// AveragePressure is the column mean of p at time t
func (t *Terzaghi) AveragePressure(time float64) float64 {
	if time <= 0 {
		return t.P0
	}
	var sum float64
	for k := 0; k < t.Terms; k++ {
		m := float64(2*k + 1)
		sum += math.Exp(-m*m*math.Pi*math.Pi*t.Consol*time/(4*t.L*t.L)) * 8 / (m * m * math.Pi * math.Pi)
	}
	return t.P0 * sum
}

// Degree is the consolidation degree U(t) in [0,1]
func (t *Terzaghi) Degree(time float64) float64 {
	if t.P0 == 0 {
		return 1
	}
	return 1 - t.AveragePressure(time)/t.P0
}

// Settlement is the top displacement at time t. The total stress is uniform
// through the column, so the settlement follows the mean pressure exactly.
func (t *Terzaghi) Settlement(time float64) float64 {
	return t.L / t.Mv * (t.SigmaB + t.Alpha*t.AveragePressure(time))
}
