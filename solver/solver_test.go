package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/poromech/gopore/FV2D"
)

func testConstants() FV2D.Constants {
	return FV2D.Constants{
		G:      1.5,
		Lambda: 1.0,
		Alpha:  0.9,
		Perm:   1e-2,
		Visc:   1e-3,
		Q:      2.0,
	}
}

func dirichletBCs(p float64) *FV2D.BCTable {
	var kinds [4][]FV2D.BCKind
	var values [4][]float64
	for s := 0; s < 4; s++ {
		kinds[s] = []FV2D.BCKind{FV2D.Dirichlet, FV2D.Dirichlet, FV2D.Dirichlet}
		values[s] = []float64{0, 0, p}
	}
	t, err := FV2D.NewBCTable(kinds, values)
	if err != nil {
		panic(err)
	}
	return t
}

func buildSystem(t *testing.T, nt int, bcs *FV2D.BCTable) (*FV2D.Grid, *Stepper) {
	corners := [4][2]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	g, err := FV2D.NewGrid(2, 2, nt, 1, 1, 1, FV2D.Collocated, corners)
	assert.NoError(t, err)
	cn := testConstants()
	A, err := FV2D.NewCoefficientAssembler(g, bcs, FV2D.CDS, cn).Assemble()
	assert.NoError(t, err)
	rhs := FV2D.NewRHSAssembler(g, bcs, FV2D.CDS, cn)
	s, err := NewStepper(g, A, rhs, false)
	assert.NoError(t, err)
	return g, s
}

func TestStepperLifecycle(t *testing.T) {
	g, s := buildSystem(t, 4, dirichletBCs(0))
	assert.Equal(t, Factorized, s.State())

	f := g.NewFields()
	assert.NoError(t, s.Step(f, 0))
	assert.Equal(t, Stepping, s.State())
	assert.NoError(t, s.Step(f, 1))
	assert.NoError(t, s.Step(f, 2))
	assert.Equal(t, Done, s.State())

	// a finished run refuses more work
	assert.ErrorIs(t, s.Step(f, 0), FV2D.ErrConfiguration)
}

// A uniform pressure state matching the Dirichlet data is a fixed point of
// the march: every level must reproduce the seed exactly (up to the solve).
func TestStationaryStateHolds(t *testing.T) {
	const pbar = 5.0
	g, s := buildSystem(t, 4, dirichletBCs(pbar))
	f := g.NewFields()
	f.P.SetColConstant(0, pbar)

	assert.NoError(t, s.Run(f, nil))
	for step := 1; step < g.Nt; step++ {
		for n := 0; n < g.P.N(); n++ {
			assert.InDelta(t, pbar, f.P.At(n, step), 1e-9)
		}
		for n := 0; n < g.U.N(); n++ {
			assert.InDelta(t, 0, f.U.At(n, step), 1e-9)
			assert.InDelta(t, 0, f.V.At(n, step), 1e-9)
		}
	}
}

// Draining to a zero Dirichlet boundary from a pressurized interior must
// decay monotonically toward zero.
func TestDrainageDecays(t *testing.T) {
	const p0 = 100.0
	g, s := buildSystem(t, 6, dirichletBCs(0))
	f := g.NewFields()
	f.P.SetColConstant(0, p0)

	assert.NoError(t, s.Run(f, nil))
	prev := p0
	for step := 1; step < g.Nt; step++ {
		cur := f.P.Col(step).NormInf()
		assert.Less(t, cur, prev, "pressure must decay at step %d", step)
		prev = cur
	}
}

func TestProgressCallback(t *testing.T) {
	g, s := buildSystem(t, 5, dirichletBCs(0))
	f := g.NewFields()
	var steps []int
	assert.NoError(t, s.Run(f, func(step int) { steps = append(steps, step) }))
	assert.Equal(t, []int{0, 1, 2, 3}, steps)
}

func TestSingularMatrixRejected(t *testing.T) {
	// pure Neumann data leaves the displacement rows without a diagonal:
	// rigid body translation is unconstrained and the factorization must
	// report it rather than march with garbage
	var kinds [4][]FV2D.BCKind
	var values [4][]float64
	for s := 0; s < 4; s++ {
		kinds[s] = []FV2D.BCKind{FV2D.Neumann, FV2D.Neumann, FV2D.Dirichlet}
		values[s] = []float64{0, 0, 0}
	}
	bcs, err := FV2D.NewBCTable(kinds, values)
	assert.NoError(t, err)

	corners := [4][2]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	g, err := FV2D.NewGrid(2, 2, 3, 1, 1, 1, FV2D.Collocated, corners)
	assert.NoError(t, err)
	cn := testConstants()
	A, err := FV2D.NewCoefficientAssembler(g, bcs, FV2D.CDS, cn).Assemble()
	assert.NoError(t, err)
	_, err = NewStepper(g, A, FV2D.NewRHSAssembler(g, bcs, FV2D.CDS, cn), false)
	assert.ErrorIs(t, err, ErrFactorization)
}

func TestSizeMismatchRejected(t *testing.T) {
	bcs := dirichletBCs(0)
	corners := [4][2]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	g, err := FV2D.NewGrid(2, 2, 3, 1, 1, 1, FV2D.Collocated, corners)
	assert.NoError(t, err)
	g2, err := FV2D.NewGrid(3, 3, 3, 1, 1, 1, FV2D.Collocated, corners)
	assert.NoError(t, err)

	cn := testConstants()
	A, err := FV2D.NewCoefficientAssembler(g, bcs, FV2D.CDS, cn).Assemble()
	assert.NoError(t, err)
	// rhs built for the wrong grid
	_, err = NewStepper(g2, A, FV2D.NewRHSAssembler(g2, bcs, FV2D.CDS, cn), false)
	assert.ErrorIs(t, err, FV2D.ErrConfiguration)
}
