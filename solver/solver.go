// Package solver marches the discretized poroelastic system through time.
// The coefficient matrix is constant across a run, so it is factorized once
// and the factorization is reused for every step; only the independent
// terms are rebuilt.
package solver

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/poromech/gopore/FV2D"
	"github.com/poromech/gopore/utils"
)

var (
	// ErrFactorization marks a singular or numerically rank-deficient
	// coefficient matrix
	ErrFactorization = errors.New("factorization failed")
	// ErrSolve marks a failed triangular solve
	ErrSolve = errors.New("solve failed")
)

// State is the stepper lifecycle. A stepper is born Factorized, moves to
// Stepping on the first step and ends Done or Failed; a failed stepper
// refuses further work.
type State uint8

const (
	Factorized State = iota
	Stepping
	Done
	Failed
)

var stateNames = []string{"factorized", "stepping", "done", "failed"}

func (s State) String() string { return stateNames[s] }

// Stepper owns the factorized system and the per-step forcing assembly.
// Momentum rows scale with the elastic moduli and mass rows with the
// mobility, many orders of magnitude apart in SI data, so the system is row
// equilibrated before factorization and the forcing is scaled to match on
// every step.
type Stepper struct {
	grid     *FV2D.Grid
	off      FV2D.Offsets
	rhs      *FV2D.RHSAssembler
	lu       mat.LU
	rowScale []float64
	state    State
}

// NewStepper factorizes the assembled coefficient matrix. The RHS assembler
// must be configured identically to the one that produced A.
func NewStepper(g *FV2D.Grid, A utils.DOK, rhs *FV2D.RHSAssembler, dualPorosity bool) (s *Stepper, err error) {
	nr, nc := A.Dims()
	off := g.Layout(dualPorosity)
	if nr != nc || nr != off.Total || rhs.Size() != off.Total {
		return nil, fmt.Errorf("%w: system is %dx%d but the layout carries %d unknowns (rhs %d)",
			FV2D.ErrConfiguration, nr, nc, off.Total, rhs.Size())
	}
	s = &Stepper{grid: g, off: off, rhs: rhs, state: Failed}

	D := A.ToDense().M
	s.rowScale = make([]float64, nr)
	for i := 0; i < nr; i++ {
		var rmax float64
		for j := 0; j < nc; j++ {
			if a := math.Abs(D.At(i, j)); a > rmax {
				rmax = a
			}
		}
		if rmax == 0 {
			return nil, fmt.Errorf("%w: row %d is identically zero", ErrFactorization, i)
		}
		s.rowScale[i] = 1 / rmax
		for j := 0; j < nc; j++ {
			D.Set(i, j, D.At(i, j)*s.rowScale[i])
		}
	}

	s.lu.Factorize(D)
	if cond := s.lu.Cond(); math.IsInf(cond, 1) || math.IsNaN(cond) || cond > condLimit {
		return nil, fmt.Errorf("%w: coefficient matrix is singular to working precision (cond=%g)",
			ErrFactorization, cond)
	}
	s.state = Factorized
	return
}

// condLimit caps the acceptable condition estimate; beyond it the reused
// factorization would amplify roundoff into the entire time history
const condLimit = 1e15

func (s *Stepper) State() State { return s.state }

// Step advances the fields from level step to step+1
func (s *Stepper) Step(f *FV2D.Fields, step int) (err error) {
	switch s.state {
	case Failed:
		return fmt.Errorf("%w: stepper has failed", ErrSolve)
	case Done:
		return fmt.Errorf("%w: run already complete", FV2D.ErrConfiguration)
	}
	s.state = Stepping

	b, err := s.rhs.Assemble(f, step)
	if err != nil {
		s.state = Failed
		return
	}
	data := b.DataP()
	for i, sc := range s.rowScale {
		data[i] *= sc
	}
	var x mat.VecDense
	if err = s.lu.SolveVecTo(&x, false, b.V); err != nil {
		s.state = Failed
		return fmt.Errorf("%w: step %d: %v", ErrSolve, step, err)
	}
	FV2D.ScatterState(s.grid, s.off, utils.Vector{V: &x}, f, step+1)
	if step == s.grid.Nt-2 {
		s.state = Done
	}
	return nil
}

// Run marches every step of the grid's time axis. The optional progress
// callback fires after each completed step.
func (s *Stepper) Run(f *FV2D.Fields, progress func(step int)) error {
	for step := 0; step < s.grid.Nt-1; step++ {
		if err := s.Step(f, step); err != nil {
			return err
		}
		if progress != nil {
			progress(step)
		}
	}
	return nil
}
