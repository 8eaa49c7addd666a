package FV2D

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func testConstants() Constants {
	return Constants{
		G:      1.5,
		Lambda: 1.0,
		Alpha:  0.9,
		Perm:   1e-2,
		Visc:   1e-3,
		Q:      2.0,
		Rho:    0,
	}
}

func testDual() DualConstants {
	return DualConstants{
		S11: 0.4, S12: -0.05, S22: 0.2,
		PsiPore: 2.0 / 3.0, PsiFrac: 1.0 / 3.0,
		PermFrac: 1e-5,
		Leak:     3.0,
	}
}

// dirichletBCs clamps every variable on every side to the given values
func dirichletBCs(p float64, dual bool) *BCTable {
	nv := 3
	if dual {
		nv = 4
	}
	var kinds [4][]BCKind
	var values [4][]float64
	for s := 0; s < 4; s++ {
		kinds[s] = make([]BCKind, nv)
		values[s] = make([]float64, nv)
		for k := 0; k < nv; k++ {
			kinds[s][k] = Dirichlet
		}
		values[s][2] = p
		if dual {
			values[s][3] = p
		}
	}
	t, err := NewBCTable(kinds, values)
	if err != nil {
		panic(err)
	}
	return t
}

func mustGrid(t *testing.T, nx, ny, nt int, lt float64, gt GridType) *Grid {
	corners := [4][2]float64{{0, 0}, {1, 0}, {0, 2}, {1, 2}}
	g, err := NewGrid(nx, ny, nt, 1, 2, lt, gt, corners)
	assert.NoError(t, err)
	return g
}

func TestNullForcing(t *testing.T) {
	// homogeneous Dirichlet data and zero fields make the forcing vanish
	for _, gt := range []GridType{Collocated, Staggered} {
		g := mustGrid(t, 3, 4, 3, 1, gt)
		bcs := dirichletBCs(0, false)
		rhs := NewRHSAssembler(g, bcs, CDS, testConstants())
		f := g.NewFields()
		b, err := rhs.Assemble(f, 0)
		assert.NoError(t, err)
		assert.Equal(t, 0., b.NormInf(), "grid type %v", gt)
	}
}

func TestAssembleDeterministic(t *testing.T) {
	g := mustGrid(t, 3, 3, 3, 1, Collocated)
	bcs := dirichletBCs(1, false)
	a1 := NewCoefficientAssembler(g, bcs, PIS1D, testConstants())
	a2 := NewCoefficientAssembler(g, bcs, PIS1D, testConstants())
	A1, err := a1.Assemble()
	assert.NoError(t, err)
	A2, err := a2.Assemble()
	assert.NoError(t, err)
	assert.Equal(t, A1.Triplets(), A2.Triplets())
}

func TestMissingBCEntryFails(t *testing.T) {
	g := mustGrid(t, 2, 2, 3, 1, Collocated)
	bcs := &BCTable{}
	bcs.Set(North, VarU, BC{Kind: Dirichlet})
	a := NewCoefficientAssembler(g, bcs, CDS, testConstants())
	_, err := a.Assemble()
	assert.ErrorIs(t, err, ErrAssembly)
}

func TestStepBounds(t *testing.T) {
	g := mustGrid(t, 2, 2, 3, 1, Collocated)
	rhs := NewRHSAssembler(g, dirichletBCs(0, false), CDS, testConstants())
	f := g.NewFields()
	_, err := rhs.Assemble(f, 2) // levels 0..2 allow steps 0 and 1 only
	assert.ErrorIs(t, err, ErrConfiguration)
	_, err = rhs.Assemble(f, -1)
	assert.ErrorIs(t, err, ErrConfiguration)
}

// TestTransientSplit verifies the matrix is a static flux part plus a
// transient part scaling with 1/dt: fitting the split from two step sizes
// must predict a third exactly.
func TestTransientSplit(t *testing.T) {
	for _, gt := range []GridType{Collocated, Staggered} {
		bcs := dirichletBCs(1, false)
		dense := func(lt float64) (D *mat.Dense, dt float64) {
			g := mustGrid(t, 2, 3, 3, lt, gt)
			A, err := NewCoefficientAssembler(g, bcs, CDS, testConstants()).Assemble()
			assert.NoError(t, err)
			return A.ToDense().M, g.Dt
		}
		A1, dt1 := dense(1)
		A2, dt2 := dense(2)
		A3, dt3 := dense(5)

		n, _ := A1.Dims()
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				tr := (A1.At(i, j) - A2.At(i, j)) / (1/dt1 - 1/dt2)
				fl := A1.At(i, j) - tr/dt1
				assert.InDelta(t, A3.At(i, j), fl+tr/dt3, 1e-9*(1+mat.Norm(A3, 1)),
					"grid type %v entry (%d,%d)", gt, i, j)
			}
		}
	}
}

// TestUniformPressureStationary seeds a spatially uniform pressure matching
// Dirichlet data everywhere; that state must be an exact fixed point of the
// discrete system: A x = b(x).
func TestUniformPressureStationary(t *testing.T) {
	const pbar = 5.0
	for _, gt := range []GridType{Collocated, Staggered} {
		for _, scheme := range []InterpScheme{CDS, PIS1D} {
			for _, dual := range []bool{false, true} {
				g := mustGrid(t, 3, 4, 3, 1, gt)
				bcs := dirichletBCs(pbar, dual)
				cn := testConstants()

				var ca *CoefficientAssembler
				var ra *RHSAssembler
				if dual {
					ca = NewDualPorosityAssembler(g, bcs, scheme, cn, testDual())
					ra = NewDualPorosityRHSAssembler(g, bcs, scheme, cn, testDual())
				} else {
					ca = NewCoefficientAssembler(g, bcs, scheme, cn)
					ra = NewRHSAssembler(g, bcs, scheme, cn)
				}

				f := g.NewFields()
				f.P.SetColConstant(0, pbar)
				if dual {
					f.AddFracturePressure()
				}

				A, err := ca.Assemble()
				assert.NoError(t, err)
				b, err := ra.Assemble(f, 0)
				assert.NoError(t, err)

				off := g.Layout(dual)
				x := GatherState(g, off, f, 0)
				var r mat.VecDense
				r.MulVec(A.ToDense().M, x.V)
				r.SubVec(&r, b.V)
				assert.InDelta(t, 0, mat.Norm(&r, 1), 1e-9,
					"grid %v scheme %v dual %v", gt, scheme, dual)
			}
		}
	}
}

func TestRigidPlateRows(t *testing.T) {
	g := mustGrid(t, 3, 3, 3, 1, Collocated)
	bcs := dirichletBCs(0, false)
	// traction-driven top for the plate
	bcs.Set(North, VarV, BC{Kind: StressFlux, Value: -10})
	bcs.Set(North, VarU, BC{Kind: StressFlux, Value: 0})

	A, err := NewCoefficientAssembler(g, bcs, CDS, testConstants()).WithRigidPlate().Assemble()
	assert.NoError(t, err)

	off := g.Layout(false)
	anchor := off.V + g.V.At(0, 2)
	for i := 1; i < 3; i++ {
		r := off.V + g.V.At(i, 2)
		assert.Equal(t, 1., A.At(r, r))
		assert.Equal(t, -1., A.At(r, anchor))
	}

	// the tied rows carry no forcing
	rhs := NewRHSAssembler(g, bcs, CDS, testConstants()).WithRigidPlate()
	f := g.NewFields()
	b, err := rhs.Assemble(f, 0)
	assert.NoError(t, err)
	for i := 1; i < 3; i++ {
		assert.Equal(t, 0., b.AtVec(off.V+g.V.At(i, 2)))
	}
}

func TestPerCellOverride(t *testing.T) {
	// sealing part of a drained surface must change only the affected
	// pressure rows
	g := mustGrid(t, 4, 3, 3, 1, Collocated)
	base := dirichletBCs(0, false)
	A0, err := NewCoefficientAssembler(g, base, CDS, testConstants()).Assemble()
	assert.NoError(t, err)

	sealed := dirichletBCs(0, false)
	sealed.SetAt(North, VarP, 0, BC{Kind: StressFlux, Value: 0})
	sealed.SetAt(North, VarP, 1, BC{Kind: StressFlux, Value: 0})
	A1, err := NewCoefficientAssembler(g, sealed, CDS, testConstants()).Assemble()
	assert.NoError(t, err)

	off := g.Layout(false)
	mob := testConstants().Perm / testConstants().Visc
	for i := 0; i < 4; i++ {
		r := off.P + g.P.At(i, 2)
		diff := A1.At(r, r) - A0.At(r, r)
		if i < 2 {
			// the Dirichlet half-cell flux coefficient is gone
			assert.InDelta(t, -2*mob/g.Dy*g.Dx, diff, 1e-12)
		} else {
			assert.Equal(t, 0., diff)
		}
	}
}
