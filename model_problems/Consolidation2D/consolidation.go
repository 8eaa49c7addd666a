package Consolidation2D

import (
	"fmt"
	"path/filepath"

	"github.com/poromech/gopore/FV2D"
	"github.com/poromech/gopore/ana"
	"github.com/poromech/gopore/mporous"
	"github.com/poromech/gopore/out"
	"github.com/poromech/gopore/solver"
)

// Consolidation is one prepared benchmark run: grid, material, boundary
// conditions, seeded initial state and the factorized stepper.
type Consolidation struct {
	Scenario   Scenario
	Model      *mporous.Model
	Dual       *mporous.DualModel
	Grid       *FV2D.Grid
	BCs        *FV2D.BCTable
	Fields     *FV2D.Fields
	Stepper    *solver.Stepper
	StripCells int
}

// New prepares a benchmark run: it derives the material coefficients,
// builds grid and boundary conditions, assembles and factorizes the system
// and seeds the undrained initial state.
func New(sc Scenario, props mporous.Properties) (c *Consolidation, err error) {
	if err = sc.validate(); err != nil {
		return nil, err
	}
	c = &Consolidation{Scenario: sc}

	if c.Model, err = mporous.NewModel(props); err != nil {
		return nil, err
	}
	if sc.Benchmark.DualPorosity() {
		c.Dual, err = mporous.NewDualModel(mporous.DualProperties{
			Properties:           props,
			PorePorosityFraction: sc.PorePorosityFraction,
			PorePermFraction:     sc.PorePermFraction,
			ShapeFactor:          sc.ShapeFactor,
		})
		if err != nil {
			return nil, err
		}
		if sc.Benchmark == LeakingDouble {
			// couple the networks through the drained confined modulus
			s12 := -c.Dual.PsiPore * c.Dual.Alpha * c.Dual.PsiFrac * c.Dual.Alpha / c.Dual.Mv
			if err = c.Dual.SetCrossStorage(s12); err != nil {
				return nil, err
			}
		}
	}

	nx, ny, lx, ly, stripCells := sc.geometry()
	c.StripCells = stripCells
	lt := sc.TimeFactor * c.referenceTime(lx, ly)
	corners := [4][2]float64{{0, 0}, {lx, 0}, {0, ly}, {lx, ly}}
	if c.Grid, err = FV2D.NewGrid(nx, ny, sc.Nt, lx, ly, lt, sc.GridType, corners); err != nil {
		return nil, err
	}
	if c.BCs, err = sc.bcTable(stripCells, props.RhoF); err != nil {
		return nil, err
	}

	cn := c.Model.Constants(sc.Gravity)
	var ca *FV2D.CoefficientAssembler
	var ra *FV2D.RHSAssembler
	if c.Dual != nil {
		cn = c.Dual.Constants(sc.Gravity)
		dc := c.Dual.DualConstants()
		ca = FV2D.NewDualPorosityAssembler(c.Grid, c.BCs, sc.Scheme, cn, dc)
		ra = FV2D.NewDualPorosityRHSAssembler(c.Grid, c.BCs, sc.Scheme, cn, dc)
	} else {
		ca = FV2D.NewCoefficientAssembler(c.Grid, c.BCs, sc.Scheme, cn)
		ra = FV2D.NewRHSAssembler(c.Grid, c.BCs, sc.Scheme, cn)
	}
	if sc.Benchmark == Mandel {
		ca.WithRigidPlate()
		ra.WithRigidPlate()
	}

	A, err := ca.Assemble()
	if err != nil {
		return nil, err
	}
	if c.Stepper, err = solver.NewStepper(c.Grid, A, ra, c.Dual != nil); err != nil {
		return nil, err
	}

	c.Fields = c.Grid.NewFields()
	if c.Dual != nil {
		c.Fields.AddFracturePressure()
	}
	c.seed()
	return
}

// referenceTime is the natural time scale the run is measured in
func (c *Consolidation) referenceTime(lx, ly float64) float64 {
	switch c.Scenario.Benchmark {
	case Mandel, Stripfoot, StripfootDouble:
		return lx * lx / c.Model.Consol
	case SealedDouble, LeakingDouble:
		return 1 / ana.NewLeakingColumn(c.Dual, c.Scenario.Load).Rate
	default:
		return ly * ly / c.Model.Consol
	}
}

// seed writes the instantaneous undrained response into time level zero for
// the benchmarks that load at t=0; the others start from rest and the first
// implicit step produces the undrained response.
func (c *Consolidation) seed() {
	sc := c.Scenario
	switch sc.Benchmark {
	case TerzaghiDouble, SealedDouble, StripfootDouble:
		return
	case Mandel:
		// uniform undrained pressure; the plate establishes the stress
		// field on the first step
		c.Fields.P.SetColConstant(0, c.mandelReference().InitialPressure())
		return
	case StorageDouble, LeakingDouble:
		p1, p2 := c.Dual.UndrainedPressures(sc.Load)
		c.Fields.P.SetColConstant(0, p1)
		c.Fields.PFrac.SetColConstant(0, p2)
		c.seedSettlement(c.Dual.UndrainedStrain(sc.Load))
		return
	}
	// single porosity: uniform pressure, linear settlement from the base
	c.Fields.P.SetColConstant(0, c.Model.UndrainedPressure(sc.Load))
	c.seedSettlement(c.Model.UndrainedStrain(sc.Load))
}

func (c *Consolidation) seedSettlement(eps float64) {
	for n := 0; n < c.Grid.V.N(); n++ {
		c.Fields.V.Set(n, 0, eps*c.Grid.YV(c.Grid.V.Coord(n)))
	}
}

func (c *Consolidation) mandelReference() *ana.Mandel {
	return ana.NewMandel(c.Model, c.Grid.Lx, -c.Scenario.Load*c.Grid.Lx, ana.DefaultTerms)
}

// Run marches the full time axis, printing progress every eighth of the run
func (c *Consolidation) Run(verbose bool) error {
	if verbose {
		fmt.Printf("Benchmark: %s, grid: %s, scheme: %s\n",
			c.Scenario.Benchmark, c.Grid.Type, c.Scenario.Scheme)
		fmt.Printf("%dx%dx%d (h=%g, dt=%g, dt_min=%g)\n",
			c.Grid.Ny, c.Grid.Nx, c.Grid.Nt-1, c.Grid.H, c.Grid.Dt,
			c.Model.StableTimeStep(c.Grid.H))
	}
	report := (c.Grid.Nt - 1) / 8
	if report < 1 {
		report = 1
	}
	return c.Stepper.Run(c.Fields, func(step int) {
		if verbose && (step+1)%report == 0 {
			t := float64(step+1) * c.Grid.Dt
			fmt.Printf("step %5d / %5d, t = %10.4e, |p|_inf = %10.4e\n",
				step+1, c.Grid.Nt-1, t, c.Fields.P.Col(step+1).NormInf())
		}
	})
}

// Time converts a step index to physical time
func (c *Consolidation) Time(step int) float64 { return float64(step) * c.Grid.Dt }

// CenterPressure samples the pressure nearest the domain center
func (c *Consolidation) CenterPressure(step int) float64 {
	n := c.Grid.P.At(c.Grid.Nx/2, c.Grid.Ny/2)
	return c.Fields.P.At(n, step)
}

// ColumnProfile extracts y coordinates and pressures along the first cell
// column at one time level
func (c *Consolidation) ColumnProfile(step int) (ys, ps []float64) {
	for j := 0; j < c.Grid.Ny; j++ {
		n := c.Grid.P.At(0, j)
		co := c.Grid.P.Coord(n)
		ys = append(ys, c.Grid.YP(co))
		ps = append(ps, c.Fields.P.At(n, step))
	}
	return
}

// RowProfile extracts x coordinates and pressures along the first cell row
func (c *Consolidation) RowProfile(step int) (xs, ps []float64) {
	for i := 0; i < c.Grid.Nx; i++ {
		n := c.Grid.P.At(i, 0)
		co := c.Grid.P.Coord(n)
		xs = append(xs, c.Grid.XP(co))
		ps = append(ps, c.Fields.P.At(n, step))
	}
	return
}

// Export writes the snapshot CSVs and, where a closed form exists, the
// numeric-versus-reference comparisons
func (c *Consolidation) Export(dir string) error {
	var extra []int
	if c.Scenario.Benchmark == Mandel {
		// the pressure overshoot peaks early and needs a finer first level
		extra = append(extra, 16)
	}
	steps := out.ExportSteps(c.Grid.Nt, extra...)
	prefix := c.Scenario.Benchmark.String()
	if err := out.WriteSnapshots(dir, prefix, c.Grid, c.Fields, steps); err != nil {
		return err
	}

	sc := c.Scenario
	switch sc.Benchmark {
	case Terzaghi, Convergence:
		tz := ana.NewTerzaghi(c.Model, c.Grid.Ly, sc.Load)
		for _, step := range steps {
			ys, ps := c.ColumnProfile(step)
			ref := make([]float64, len(ys))
			for i, y := range ys {
				ref[i] = tz.Pressure(y, c.Time(step))
			}
			fn := filepath.Join(dir, fmt.Sprintf("%s_cmp_%04d.csv", prefix, step))
			if err := out.WriteComparison(fn, ys, ps, ref); err != nil {
				return err
			}
		}

	case Mandel:
		md := c.mandelReference()
		for _, step := range steps {
			xs, ps := c.RowProfile(step)
			ref := make([]float64, len(xs))
			for i, x := range xs {
				ref[i] = md.Pressure(x, c.Time(step))
			}
			fn := filepath.Join(dir, fmt.Sprintf("%s_cmp_%04d.csv", prefix, step))
			if err := out.WriteComparison(fn, xs, ps, ref); err != nil {
				return err
			}
		}

	case SealedColumn:
		p0 := c.Model.UndrainedPressure(sc.Load)
		var times, num, ref []float64
		for _, step := range steps {
			times = append(times, c.Time(step))
			num = append(num, c.CenterPressure(step))
			ref = append(ref, p0)
		}
		fn := filepath.Join(dir, prefix+"_cmp.csv")
		if err := out.WriteComparison(fn, times, num, ref); err != nil {
			return err
		}

	case SealedDouble, StorageDouble, LeakingDouble:
		lc := ana.NewLeakingColumn(c.Dual, sc.Load)
		var times, num1, ref1, num2, ref2 []float64
		nc := c.Grid.P.At(c.Grid.Nx/2, c.Grid.Ny/2)
		for _, step := range steps {
			t := c.Time(step)
			r1, r2 := lc.Pressures(t)
			times = append(times, t)
			num1 = append(num1, c.Fields.P.At(nc, step))
			num2 = append(num2, c.Fields.PFrac.At(nc, step))
			ref1 = append(ref1, r1)
			ref2 = append(ref2, r2)
		}
		if err := out.WriteComparison(filepath.Join(dir, prefix+"_cmp_pore.csv"), times, num1, ref1); err != nil {
			return err
		}
		if err := out.WriteComparison(filepath.Join(dir, prefix+"_cmp_frac.csv"), times, num2, ref2); err != nil {
			return err
		}
	}
	return nil
}
