// Package Consolidation2D drives the plane-strain consolidation benchmark
// suite: soil column and footing problems on single and dual porosity
// media, marched implicitly and compared against their closed-form
// references.
package Consolidation2D

import (
	"fmt"

	"github.com/poromech/gopore/FV2D"
)

type Benchmark uint8

const (
	SealedColumn Benchmark = iota
	Terzaghi
	Convergence
	Mandel
	Stripfoot
	TerzaghiDouble
	SealedDouble
	StripfootDouble
	StorageDouble
	LeakingDouble
)

var benchmarkNames = []string{
	"sealedColumn", "terzaghi", "convergence", "mandel", "stripfoot",
	"terzaghiDouble", "sealedDouble", "stripfootDouble", "storageDouble", "leakingDouble",
}

func (b Benchmark) String() string { return benchmarkNames[b] }

func ParseBenchmark(name string) (Benchmark, error) {
	for i, n := range benchmarkNames {
		if n == name {
			return Benchmark(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown benchmark %q", FV2D.ErrConfiguration, name)
}

// DualPorosity reports whether the benchmark runs the two-network medium
func (b Benchmark) DualPorosity() bool { return b >= TerzaghiDouble }

// Scenario collects everything a benchmark run is parameterized by
type Scenario struct {
	Benchmark Benchmark
	MeshSize  int // refinement multiplier m
	GridType  FV2D.GridType
	Scheme    FV2D.InterpScheme

	Nt         int
	TimeFactor float64 // simulated span as a multiple of the reference time
	Load       float64 // applied boundary stress, compression negative
	Gravity    float64

	// dual porosity partition
	PorePorosityFraction float64
	PorePermFraction     float64
	ShapeFactor          float64
}

// NewScenario fills the benchmark defaults: the standard column load, the
// canonical porosity/permeability split and the thesis leakage shape factor.
func NewScenario(b Benchmark, meshSize int) Scenario {
	s := Scenario{
		Benchmark:            b,
		MeshSize:             meshSize,
		GridType:             FV2D.Collocated,
		Scheme:               FV2D.CDS,
		Nt:                   65,
		TimeFactor:           1,
		Load:                 -10e3,
		PorePorosityFraction: 2.0 / 3.0,
		PorePermFraction:     1.0 / 1000.0,
		ShapeFactor:          11,
	}
	if b == StorageDouble {
		// the storage benchmark isolates the storage coupling: no leakage
		s.ShapeFactor = 0
	}
	return s
}

// geometry gives the mesh shape: columns are 1x6 slender, the footing and
// plate problems square, with the footing covering meshSize cells.
func (s Scenario) geometry() (nx, ny int, lx, ly float64, stripCells int) {
	m := s.MeshSize
	switch s.Benchmark {
	case Mandel, Stripfoot, StripfootDouble:
		nx, ny = 5*m, 5*m
		lx, ly = 5, 5
		stripCells = m
	default:
		nx, ny = m, 6*m
		lx, ly = 1, 6
	}
	return
}

func (s Scenario) validate() error {
	switch {
	case s.MeshSize < 1:
		return fmt.Errorf("%w: mesh size %d must be at least 1", FV2D.ErrConfiguration, s.MeshSize)
	case s.Nt < 2:
		return fmt.Errorf("%w: at least two time levels required, got %d", FV2D.ErrConfiguration, s.Nt)
	case s.TimeFactor <= 0:
		return fmt.Errorf("%w: time factor %g must be positive", FV2D.ErrConfiguration, s.TimeFactor)
	case int(s.Benchmark) >= len(benchmarkNames):
		return fmt.Errorf("%w: unknown benchmark %d", FV2D.ErrConfiguration, s.Benchmark)
	}
	return nil
}

// bcTable builds the side tables in the driver convention: north first,
// then counterclockwise; per side u, v, p (and pFrac for the dual medium,
// always conditioned like p). Sealed horizontal boundaries of the single
// porosity problems carry the hydrostatic gradient rhoF*g; it vanishes for
// the standard zero-gravity runs.
func (s Scenario) bcTable(stripCells int, rhoF float64) (*FV2D.BCTable, error) {
	const (
		D = FV2D.Dirichlet
		N = FV2D.Neumann
		S = FV2D.StressFlux
	)
	dual := s.Benchmark.DualPorosity()
	hydro := rhoF * s.Gravity

	type sideRow struct {
		kinds  []FV2D.BCKind
		values []float64
	}
	row := func(u, v, p FV2D.BCKind, uv, vv, pv float64) sideRow {
		r := sideRow{
			kinds:  []FV2D.BCKind{u, v, p},
			values: []float64{uv, vv, pv},
		}
		if dual {
			r.kinds = append(r.kinds, p)
			r.values = append(r.values, pv)
		}
		return r
	}

	var kinds [4][]FV2D.BCKind
	var values [4][]float64
	set := func(sd FV2D.Side, r sideRow) {
		kinds[sd] = r.kinds
		values[sd] = r.values
	}

	switch s.Benchmark {
	case SealedColumn:
		// loaded column, sealed on every side
		set(FV2D.North, row(S, S, N, 0, s.Load, hydro))
		set(FV2D.West, row(D, S, S, 0, 0, 0))
		set(FV2D.South, row(S, D, N, 0, 0, hydro))
		set(FV2D.East, row(D, S, S, 0, 0, 0))

	case SealedDouble, StorageDouble, LeakingDouble:
		// loaded column, both networks sealed on every side
		set(FV2D.North, row(S, S, S, 0, s.Load, 0))
		set(FV2D.West, row(D, S, S, 0, 0, 0))
		set(FV2D.South, row(S, D, S, 0, 0, 0))
		set(FV2D.East, row(D, S, S, 0, 0, 0))

	case Terzaghi, Convergence:
		// as the sealed column but drained through the loaded top
		set(FV2D.North, row(S, S, D, 0, s.Load, 0))
		set(FV2D.West, row(D, S, S, 0, 0, 0))
		set(FV2D.South, row(S, D, N, 0, 0, hydro))
		set(FV2D.East, row(D, S, S, 0, 0, 0))

	case TerzaghiDouble:
		set(FV2D.North, row(S, S, D, 0, s.Load, 0))
		set(FV2D.West, row(D, S, S, 0, 0, 0))
		set(FV2D.South, row(S, D, S, 0, 0, 0))
		set(FV2D.East, row(D, S, S, 0, 0, 0))

	case Mandel:
		// west/south symmetry planes, drained free east edge, rigid
		// frictionless plate on top
		set(FV2D.North, row(S, S, N, 0, s.Load, hydro))
		set(FV2D.West, row(D, S, S, 0, 0, 0))
		set(FV2D.South, row(S, D, N, 0, 0, hydro))
		set(FV2D.East, row(S, S, D, 0, 0, 0))

	case Stripfoot, StripfootDouble:
		// drained traction-free surface; the footing patch west of the
		// symmetry plane is loaded and sealed
		set(FV2D.North, row(S, S, D, 0, 0, 0))
		set(FV2D.West, row(D, S, S, 0, 0, 0))
		set(FV2D.South, row(S, D, S, 0, 0, 0))
		set(FV2D.East, row(D, S, S, 0, 0, 0))
	}

	t, err := FV2D.NewBCTable(kinds, values)
	if err != nil {
		return nil, err
	}
	if s.Benchmark == Stripfoot || s.Benchmark == StripfootDouble {
		for i := 0; i < stripCells; i++ {
			t.SetAt(FV2D.North, FV2D.VarV, i, FV2D.BC{Kind: S, Value: s.Load})
			t.SetAt(FV2D.North, FV2D.VarP, i, FV2D.BC{Kind: S, Value: 0})
			if dual {
				t.SetAt(FV2D.North, FV2D.VarPFrac, i, FV2D.BC{Kind: S, Value: 0})
			}
		}
	}
	return t, nil
}
