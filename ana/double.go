package ana

import (
	"math"

	"github.com/poromech/gopore/mporous"
)

// LeakingColumn is the reference for a fully sealed dual porosity column
// under a sudden confined load: both pressure fields stay spatially uniform
// and relax toward a common equilibrium through inter-porosity leakage
// alone. With the leakage coefficient zero the undrained state persists,
// which is the storage benchmark.
type LeakingColumn struct {
	P1_0, P2_0 float64 // undrained initial pressures
	PEq        float64 // common equilibrium pressure
	Rate       float64 // exponential decay rate of p1 - p2

	w1, w2 float64 // split of the difference mode between the networks
}

func NewLeakingColumn(d *mporous.DualModel, sigmab float64) *LeakingColumn {
	// undrained storage matrix A = S + psi psi^T alpha^2 / Mv governs the
	// sealed dynamics: A dp/dt = -Leak (p1-p2) [1,-1]^T
	a11 := d.S11 + d.PsiPore*d.PsiPore*d.Alpha*d.Alpha/d.Mv
	a12 := d.S12 + d.PsiPore*d.PsiFrac*d.Alpha*d.Alpha/d.Mv
	a22 := d.S22 + d.PsiFrac*d.PsiFrac*d.Alpha*d.Alpha/d.Mv
	det := a11*a22 - a12*a12
	quad := a11 + 2*a12 + a22

	p1, p2 := d.UndrainedPressures(sigmab)
	l := &LeakingColumn{
		P1_0: p1,
		P2_0: p2,
		// (1,1).A.p is conserved by the exchange
		PEq:  ((a11+a12)*p1 + (a12+a22)*p2) / quad,
		Rate: d.Leak * quad / det,
		w1:   (a12 + a22) / quad,
		w2:   (a11 + a12) / quad,
	}
	return l
}

// Pressures evaluates both network pressures at time t
func (l *LeakingColumn) Pressures(time float64) (p1, p2 float64) {
	d := (l.P1_0 - l.P2_0) * math.Exp(-l.Rate*time)
	return l.PEq + l.w1*d, l.PEq - l.w2*d
}
