package FV2D

import (
	"errors"
	"fmt"
	"math"

	"github.com/poromech/gopore/utils"
)

// ErrConfiguration marks invalid scenario/grid parameters. Configuration
// errors are fatal and surfaced before any assembly work begins.
var ErrConfiguration = errors.New("configuration error")

type GridType uint8

const (
	Collocated GridType = iota
	Staggered
)

var gridTypeNames = []string{"collocated", "staggered"}

func (gt GridType) String() string { return gridTypeNames[gt] }

func ParseGridType(name string) (GridType, error) {
	for i, n := range gridTypeNames {
		if n == name {
			return GridType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown grid type %q", ErrConfiguration, name)
}

// FaceStatus classifies an internal face of the mesh. Sides follow the
// benchmark convention: north first, then counterclockwise.
type FaceStatus uint8

const (
	FaceInterior FaceStatus = iota
	FaceNorth
	FaceWest
	FaceSouth
	FaceEast
)

// Coord is a 2D placement on a variable's coordinate plane. For cell-centered
// variables it is the cell index pair; for staggered displacement variables it
// is the face index pair.
type Coord struct {
	I, J int
}

// DOFMap assigns every active placement of one variable kind a dense linear
// index 0..N-1 and keeps the inverse map. Inactive placements carry -1.
type DOFMap struct {
	NI, NJ int
	index  []int
	coords []Coord
}

func newDOFMap(nI, nJ int, active func(i, j int) bool) (m *DOFMap) {
	m = &DOFMap{
		NI:    nI,
		NJ:    nJ,
		index: make([]int, nI*nJ),
	}
	var next int
	for j := 0; j < nJ; j++ {
		for i := 0; i < nI; i++ {
			if active(i, j) {
				m.index[j*nI+i] = next
				m.coords = append(m.coords, Coord{I: i, J: j})
				next++
			} else {
				m.index[j*nI+i] = -1
			}
		}
	}
	return
}

// N is the count of active DOFs of this kind
func (m *DOFMap) N() int { return len(m.coords) }

// At returns the linear index at (i,j), or -1 when the placement is inactive
// or out of the coordinate plane
func (m *DOFMap) At(i, j int) int {
	if i < 0 || i >= m.NI || j < 0 || j >= m.NJ {
		return -1
	}
	return m.index[j*m.NI+i]
}

func (m *DOFMap) Active(i, j int) bool { return m.At(i, j) >= 0 }

// Coord inverts the linear index
func (m *DOFMap) Coord(n int) Coord { return m.coords[n] }

// Indices returns all active linear indices in coordinate order
func (m *DOFMap) Indices() (I utils.Index) {
	I = utils.NewIndex(m.N())
	for n := range I {
		I[n] = n
	}
	return
}

// FaceMap tags each face of one orientation with its status
type FaceMap struct {
	NI, NJ int
	status []FaceStatus
}

func (f *FaceMap) At(i, j int) FaceStatus { return f.status[j*f.NI+i] }

// Grid is the indexed finite volume mesh. Immutable after construction.
type Grid struct {
	Type       GridType
	Nx, Ny, Nt int
	Lx, Ly, Lt float64

	Dx, Dy, Dt float64
	H          float64 // characteristic mesh size

	U, V, P *DOFMap

	// HorFaces are faces with a y-normal (Nx x Ny+1), VerFaces have an
	// x-normal (Nx+1 x Ny)
	HorFaces, VerFaces *FaceMap
}

// NewGrid builds the mesh and the DOF index maps for the chosen variable
// arrangement. The corner list must describe the axis-aligned rectangle
// [0,Lx]x[0,Ly], matching the benchmark drivers' sCoordinates convention.
func NewGrid(nx, ny, nt int, lx, ly, lt float64, gt GridType, corners [4][2]float64) (g *Grid, err error) {
	switch {
	case nx < 1 || ny < 1:
		return nil, fmt.Errorf("%w: cell counts must be positive, got Nx=%d Ny=%d", ErrConfiguration, nx, ny)
	case nt < 2:
		return nil, fmt.Errorf("%w: at least two time levels required, got Nt=%d", ErrConfiguration, nt)
	case lx <= 0 || ly <= 0 || lt <= 0:
		return nil, fmt.Errorf("%w: extents must be positive, got Lx=%g Ly=%g Lt=%g", ErrConfiguration, lx, ly, lt)
	}
	if err = checkRectangle(corners, lx, ly); err != nil {
		return nil, err
	}

	g = &Grid{
		Type: gt,
		Nx:   nx, Ny: ny, Nt: nt,
		Lx: lx, Ly: ly, Lt: lt,
		Dx: lx / float64(nx),
		Dy: ly / float64(ny),
		Dt: lt / float64(nt-1),
	}
	g.H = math.Max(g.Dx, g.Dy)

	allActive := func(i, j int) bool { return true }
	g.P = newDOFMap(nx, ny, allActive)
	switch gt {
	case Collocated:
		g.U = newDOFMap(nx, ny, allActive)
		g.V = newDOFMap(nx, ny, allActive)
	case Staggered:
		// Displacements live on faces; the boundary-normal face nodes are
		// redundant (their values follow from the boundary conditions) and
		// are excluded from the unknown set.
		g.U = newDOFMap(nx+1, ny, func(i, j int) bool { return i > 0 && i < nx })
		g.V = newDOFMap(nx, ny+1, func(i, j int) bool { return j > 0 && j < ny })
	}

	g.HorFaces = &FaceMap{NI: nx, NJ: ny + 1, status: make([]FaceStatus, nx*(ny+1))}
	for j := 0; j <= ny; j++ {
		for i := 0; i < nx; i++ {
			var s FaceStatus
			switch j {
			case 0:
				s = FaceSouth
			case ny:
				s = FaceNorth
			default:
				s = FaceInterior
			}
			g.HorFaces.status[j*nx+i] = s
		}
	}
	g.VerFaces = &FaceMap{NI: nx + 1, NJ: ny, status: make([]FaceStatus, (nx+1)*ny)}
	for j := 0; j < ny; j++ {
		for i := 0; i <= nx; i++ {
			var s FaceStatus
			switch i {
			case 0:
				s = FaceWest
			case nx:
				s = FaceEast
			default:
				s = FaceInterior
			}
			g.VerFaces.status[j*(nx+1)+i] = s
		}
	}
	return
}

func checkRectangle(c [4][2]float64, lx, ly float64) error {
	want := map[[2]float64]bool{
		{0, 0}: false, {lx, 0}: false, {0, ly}: false, {lx, ly}: false,
	}
	for _, pt := range c {
		if _, ok := want[pt]; !ok {
			return fmt.Errorf("%w: corner (%g,%g) does not lie on the axis-aligned rectangle %gx%g",
				ErrConfiguration, pt[0], pt[1], lx, ly)
		}
		want[pt] = true
	}
	for pt, seen := range want {
		if !seen {
			return fmt.Errorf("%w: corner (%g,%g) missing from reservoir outline", ErrConfiguration, pt[0], pt[1])
		}
	}
	return nil
}

// XU/YU, XV/YV, XP/YP give the physical coordinates of a DOF placement.
func (g *Grid) XP(c Coord) float64 { return (float64(c.I) + 0.5) * g.Dx }
func (g *Grid) YP(c Coord) float64 { return (float64(c.J) + 0.5) * g.Dy }

func (g *Grid) XU(c Coord) float64 {
	if g.Type == Staggered {
		return float64(c.I) * g.Dx
	}
	return g.XP(c)
}

func (g *Grid) YU(c Coord) float64 { return g.YP(c) }

func (g *Grid) XV(c Coord) float64 { return g.XP(c) }

func (g *Grid) YV(c Coord) float64 {
	if g.Type == Staggered {
		return float64(c.J) * g.Dy
	}
	return g.YP(c)
}

// Fields holds one solution history per variable kind: one column per time
// level, one row per DOF. PFrac is allocated on demand for dual-porosity runs.
type Fields struct {
	U, V, P utils.Matrix
	PFrac   utils.Matrix
	HasFrac bool
}

// NewFields allocates zero-initialized field histories sized for this grid
func (g *Grid) NewFields() *Fields {
	return &Fields{
		U: utils.NewMatrix(maxInt(g.U.N(), 1), g.Nt),
		V: utils.NewMatrix(maxInt(g.V.N(), 1), g.Nt),
		P: utils.NewMatrix(maxInt(g.P.N(), 1), g.Nt),
	}
}

// AddFracturePressure allocates the second pressure history for
// dual-porosity media, copying the pore-pressure initial level
func (f *Fields) AddFracturePressure() {
	f.PFrac = f.P.Copy()
	f.HasFrac = true
}

// Offsets locate each variable block inside the global unknown ordering:
// u rows, then v rows, then pressure rows, then (dual porosity) fracture
// pressure rows.
type Offsets struct {
	U, V, P, PFrac int
	Total          int
}

func (g *Grid) Layout(dualPorosity bool) (o Offsets) {
	o.U = 0
	o.V = g.U.N()
	o.P = o.V + g.V.N()
	o.PFrac = o.P + g.P.N()
	o.Total = o.PFrac
	if dualPorosity {
		o.Total += g.P.N()
	}
	return
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
