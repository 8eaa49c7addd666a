package ana

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/poromech/gopore/mporous"
)

func bereaModel(t *testing.T) *mporous.Model {
	m, err := mporous.NewModel(mporous.Properties{
		G:     6e9,
		K:     8e9,
		Ks:    36e9,
		RhoS:  2600,
		Kf:    3.3e9,
		Phi:   0.19,
		Kappa: 1.9e-13,
		Mu:    1e-3,
		RhoF:  1000,
	})
	assert.NoError(t, err)
	return m
}

func TestTerzaghiLimits(t *testing.T) {
	m := bereaModel(t)
	const L, sigmab = 6.0, -10e3
	tz := NewTerzaghi(m, L, sigmab)

	assert.Positive(t, tz.P0)
	// drained boundary
	assert.InDelta(t, 0, tz.Pressure(L, 100), 1e-9)
	// instantaneous response fills the column
	assert.InDelta(t, tz.P0, tz.Pressure(L/2, 0), 1e-12)
	// long-time decay to the drained state
	tEnd := 100 * L * L / tz.Consol
	assert.InDelta(t, 0, tz.Pressure(0, tEnd), 1e-9*tz.P0)

	// series converges to P0 at t -> 0+ away from the boundary; the
	// truncated alternating series limits the accuracy to O(1/Terms)
	assert.InDelta(t, tz.P0, tz.Pressure(0, 1e-9*L*L/tz.Consol), 1e-2*tz.P0)
}

func TestTerzaghiMonotone(t *testing.T) {
	m := bereaModel(t)
	tz := NewTerzaghi(m, 6, -10e3)
	tau := 36 / tz.Consol // characteristic time

	// the sealed base drains last: pressure decreases with time and
	// increases away from the drain
	prev := tz.P0
	for _, f := range []float64{0.01, 0.05, 0.2, 1, 5} {
		p := tz.Pressure(0, f*tau)
		assert.Less(t, p, prev)
		prev = p
	}
	p1 := tz.Pressure(1, 0.1*tau)
	p5 := tz.Pressure(5, 0.1*tau)
	assert.Greater(t, p1, p5)
}

func TestTerzaghiDegreeAndSettlement(t *testing.T) {
	m := bereaModel(t)
	const L, sigmab = 6.0, -10e3
	tz := NewTerzaghi(m, L, sigmab)
	tau := L * L / tz.Consol

	assert.InDelta(t, 0, tz.Degree(0), 1e-12)
	assert.InDelta(t, 1, tz.Degree(100*tau), 1e-9)

	// settlement starts at the undrained response and ends at the drained
	// response sigmab*L/Mv
	s0 := tz.Settlement(0)
	assert.InDelta(t, L*m.UndrainedStrain(sigmab), s0, 1e-9*math.Abs(s0))
	sEnd := tz.Settlement(100 * tau)
	assert.InDelta(t, sigmab*L/m.Mv, sEnd, 1e-9*math.Abs(sEnd))
	// consolidation adds settlement
	assert.Less(t, sEnd, s0)
}

func TestMandelRoots(t *testing.T) {
	m := bereaModel(t)
	md := NewMandel(m, 2.5, 10e3*2.5, 50)

	assert.Greater(t, md.NuU, md.Nu)
	ratio := (1 - md.Nu) / (md.NuU - md.Nu)
	// the dominant first root sits below pi/2, not in the second branch
	assert.Greater(t, ratio, 1.0)
	assert.Greater(t, md.Roots()[0], 0.0)
	assert.Less(t, md.Roots()[0], math.Pi/2)
	for n, a := range md.Roots() {
		// each root solves tan(x) = ratio*x in its own branch
		assert.InDelta(t, math.Tan(a), ratio*a, 1e-6*ratio*a, "root %d", n)
		lo := float64(n) * math.Pi
		assert.Greater(t, a, lo)
		assert.Less(t, a, lo+math.Pi/2)
	}
}

func TestMandelPressure(t *testing.T) {
	m := bereaModel(t)
	const a = 2.5
	md := NewMandel(m, a, 10e3*a, DefaultTerms)
	p0 := md.InitialPressure()
	assert.Positive(t, p0)

	tau := a * a / md.Consol
	// drained edges
	assert.InDelta(t, 0, md.Pressure(a, 0.1*tau), 1e-9*p0)
	// series reproduces the uniform undrained state at early time, up to
	// the O(1/Terms) truncation of the alternating series
	assert.InDelta(t, p0, md.Pressure(0, 1e-9*tau), 1e-2*p0)
	// Mandel-Cryer effect: the center pressure first rises above p0
	var pMax float64
	for _, f := range []float64{0.005, 0.01, 0.05, 0.1, 0.2} {
		if p := md.Pressure(0, f*tau); p > pMax {
			pMax = p
		}
	}
	assert.Greater(t, pMax, p0)
	// full dissipation
	assert.InDelta(t, 0, md.Pressure(0, 100*tau), 1e-9*p0)
}

func dualModel(t *testing.T) *mporous.DualModel {
	d, err := mporous.NewDualModel(mporous.DualProperties{
		Properties: mporous.Properties{
			G:     6e9,
			K:     8e9,
			Ks:    36e9,
			RhoS:  2600,
			Kf:    3.3e9,
			Phi:   0.19,
			Kappa: 1.9e-13,
			Mu:    1e-3,
			RhoF:  1000,
		},
		PorePorosityFraction: 2.0 / 3.0,
		PorePermFraction:     1.0 / 1000.0,
		ShapeFactor:          11,
	})
	assert.NoError(t, err)
	return d
}

func TestLeakingColumn(t *testing.T) {
	d := dualModel(t)
	const sigmab = -10e3
	lc := NewLeakingColumn(d, sigmab)

	p1, p2 := lc.Pressures(0)
	u1, u2 := d.UndrainedPressures(sigmab)
	assert.InDelta(t, u1, p1, 1e-9*math.Abs(u1))
	assert.InDelta(t, u2, p2, 1e-9*math.Abs(u2))

	assert.Positive(t, lc.Rate)

	// the networks equilibrate to a common pressure between the initials
	tEnd := 100 / lc.Rate
	e1, e2 := lc.Pressures(tEnd)
	assert.InDelta(t, e1, e2, 1e-9*math.Abs(e1))
	assert.InDelta(t, lc.PEq, e1, 1e-9*math.Abs(e1))
	lo, hi := math.Min(u1, u2), math.Max(u1, u2)
	assert.GreaterOrEqual(t, lc.PEq, lo)
	assert.LessOrEqual(t, lc.PEq, hi)

	// the difference decays monotonically
	prev := math.Abs(p1 - p2)
	for _, f := range []float64{0.5, 1, 2, 5} {
		q1, q2 := lc.Pressures(f / lc.Rate)
		cur := math.Abs(q1 - q2)
		assert.Less(t, cur, prev)
		prev = cur
	}
}

func TestStorageColumnHoldsState(t *testing.T) {
	// zero shape factor: no leakage, the undrained state persists
	d := dualModel(t)
	dd, err := mporous.NewDualModel(mporous.DualProperties{
		Properties:           d.Props,
		PorePorosityFraction: 2.0 / 3.0,
		PorePermFraction:     1.0 / 1000.0,
		ShapeFactor:          0,
	})
	assert.NoError(t, err)
	lc := NewLeakingColumn(dd, -10e3)
	assert.Zero(t, lc.Rate)
	p1a, p2a := lc.Pressures(0)
	p1b, p2b := lc.Pressures(1e6)
	assert.Equal(t, p1a, p1b)
	assert.Equal(t, p2a, p2b)
}
