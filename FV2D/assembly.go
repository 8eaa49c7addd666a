package FV2D

import (
	"errors"
	"fmt"

	"github.com/poromech/gopore/utils"
)

// ErrAssembly marks a DOF left unreached by the assembly stencils or a
// boundary condition table missing a required entry. Both indicate a
// topology/scheme mismatch bug and are fatal.
var ErrAssembly = errors.New("assembly error")

// Constants carries the material and loading constants shared by the
// coefficient and independent-terms assembly: G, lambda, alpha,
// permeability, fluid viscosity, the storage modulus Q, the mixture density
// and gravity. Mesh spacings come from the grid.
type Constants struct {
	G, Lambda  float64
	Alpha      float64
	Perm, Visc float64
	Q          float64
	Rho        float64
	Gravity    float64
}

// aConst is Constants plus the grid spacings, resolved once so the stencil
// builders read a single source
type aConst struct {
	Constants
	Dx, Dy, Dt float64
}

// DualConstants extends Constants for dual-porosity media: the 2x2 storage
// matrix, the pore/fracture partition coefficients, the fracture network
// permeability and the inter-porosity leakage coefficient.
type DualConstants struct {
	S11, S12, S22    float64
	PsiPore, PsiFrac float64
	PermFrac         float64
	Leak             float64
}

// term is one coefficient applied to a global unknown
type term struct {
	col  int
	coef float64
}

// lin is a linear expression over the global unknowns plus a constant.
// Face values, boundary closures and flux components are all built as lins
// so the same stencil feeds both assemblers.
type lin struct {
	t []term
	c float64
}

func (l *lin) term(col int, coef float64) {
	if col < 0 {
		panic("stencil references an inactive DOF")
	}
	l.t = append(l.t, term{col: col, coef: coef})
}

func (l *lin) add(o lin, scale float64) {
	for _, tm := range o.t {
		l.t = append(l.t, term{col: tm.col, coef: tm.coef * scale})
	}
	l.c += o.c * scale
}

// rowEq is one assembled row of the global system:
//
//	sum(terms . x_new) + c - (sum(hist . x_old) + hc) = 0
//
// terms feed the coefficient matrix; c, hist and hc feed the per-step
// independent terms: b = -c + hist.x_old + hc.
type rowEq struct {
	terms []term
	c     float64
	hist  []term
	hc    float64
}

func (r *rowEq) addStatic(l lin, scale float64) {
	for _, tm := range l.t {
		r.terms = append(r.terms, term{col: tm.col, coef: tm.coef * scale})
	}
	r.c += l.c * scale
}

// addTransient adds scale*(L(x_new) - L(x_old)), the implicit-Euler
// difference of the same expression across the time levels
func (r *rowEq) addTransient(l lin, scale float64) {
	for _, tm := range l.t {
		r.terms = append(r.terms, term{col: tm.col, coef: tm.coef * scale})
		r.hist = append(r.hist, term{col: tm.col, coef: tm.coef * scale})
	}
	r.c += l.c * scale
	r.hc += l.c * scale
}

// context is the shared assembly state: grid, BC table, scheme and
// constants, resolved once at configuration time so the hot loops contain
// no name dispatch.
type context struct {
	g          *Grid
	bc         *BCTable
	scheme     InterpScheme
	cn         aConst
	dual       *DualConstants
	off        Offsets
	rigidPlate bool
}

func newContext(g *Grid, bc *BCTable, scheme InterpScheme, cn Constants, dual *DualConstants) *context {
	return &context{
		g:      g,
		bc:     bc,
		scheme: scheme,
		cn:     aConst{Constants: cn, Dx: g.Dx, Dy: g.Dy, Dt: g.Dt},
		dual:   dual,
		off:    g.Layout(dual != nil),
	}
}

func (ctx *context) colU(i, j int) int { return ctx.off.U + ctx.g.U.At(i, j) }
func (ctx *context) colV(i, j int) int { return ctx.off.V + ctx.g.V.At(i, j) }
func (ctx *context) colP(i, j int) int { return ctx.off.P + ctx.g.P.At(i, j) }
func (ctx *context) colPF(i, j int) int {
	return ctx.off.PFrac + ctx.g.P.At(i, j)
}

// pEff is the effective pore-pressure coupling at cell (i,j): alpha*p for
// single porosity, psi1*alpha*p1 + psi2*alpha*p2 for dual porosity.
func (ctx *context) pEff(i, j int) (l lin) {
	if ctx.dual == nil {
		l.term(ctx.colP(i, j), ctx.cn.Alpha)
		return
	}
	l.term(ctx.colP(i, j), ctx.dual.PsiPore*ctx.cn.Alpha)
	l.term(ctx.colPF(i, j), ctx.dual.PsiFrac*ctx.cn.Alpha)
	return
}

// buildAll assembles every row equation in the fixed global ordering
func (ctx *context) buildAll() (rows []rowEq, err error) {
	rows = make([]rowEq, ctx.off.Total)
	build := func(n int, f func() (rowEq, error)) bool {
		var r rowEq
		if r, err = f(); err != nil {
			return false
		}
		rows[n] = r
		return true
	}
	for n := 0; n < ctx.g.U.N(); n++ {
		c := ctx.g.U.Coord(n)
		if !build(ctx.off.U+n, func() (rowEq, error) { return ctx.rowU(c) }) {
			return nil, err
		}
	}
	for n := 0; n < ctx.g.V.N(); n++ {
		c := ctx.g.V.Coord(n)
		if !build(ctx.off.V+n, func() (rowEq, error) { return ctx.rowV(c) }) {
			return nil, err
		}
	}
	for n := 0; n < ctx.g.P.N(); n++ {
		c := ctx.g.P.Coord(n)
		if !build(ctx.off.P+n, func() (rowEq, error) { return ctx.rowP(c, false) }) {
			return nil, err
		}
	}
	if ctx.dual != nil {
		for n := 0; n < ctx.g.P.N(); n++ {
			c := ctx.g.P.Coord(n)
			if !build(ctx.off.PFrac+n, func() (rowEq, error) { return ctx.rowP(c, true) }) {
				return nil, err
			}
		}
	}
	if ctx.rigidPlate {
		if err = ctx.applyRigidPlate(rows); err != nil {
			return nil, err
		}
	}
	return
}

// applyRigidPlate rewrites the momentum rows of the topmost vertical
// displacement unknowns into a rigid loading plate: the first row becomes
// the force balance of the whole top strip (the sum telescopes the interior
// shear fluxes away) and the remaining rows tie the displacements together.
// The applied load enters through the north traction condition.
func (ctx *context) applyRigidPlate(rows []rowEq) error {
	topJ := ctx.g.Ny - 1
	var plate []int
	for i := 0; i < ctx.g.Nx; i++ {
		if n := ctx.g.V.At(i, topJ); n >= 0 {
			plate = append(plate, ctx.off.V+n)
		}
	}
	if len(plate) < 2 {
		return fmt.Errorf("%w: rigid plate needs at least two vertical displacement unknowns on the top row", ErrConfiguration)
	}
	var sum rowEq
	for _, r := range plate {
		sum.terms = append(sum.terms, rows[r].terms...)
		sum.hist = append(sum.hist, rows[r].hist...)
		sum.c += rows[r].c
		sum.hc += rows[r].hc
	}
	rows[plate[0]] = sum
	anchor := plate[0]
	for _, r := range plate[1:] {
		rows[r] = rowEq{terms: []term{{col: r, coef: 1}, {col: anchor, coef: -1}}}
	}
	return nil
}

func (ctx *context) rowU(c Coord) (rowEq, error) {
	if ctx.g.Type == Staggered {
		return ctx.rowUStaggered(c)
	}
	return ctx.rowUCollocated(c)
}

func (ctx *context) rowV(c Coord) (rowEq, error) {
	if ctx.g.Type == Staggered {
		return ctx.rowVStaggered(c)
	}
	return ctx.rowVCollocated(c)
}

func (ctx *context) rowP(c Coord, frac bool) (rowEq, error) {
	if ctx.g.Type == Staggered {
		return ctx.rowPStaggered(c, frac)
	}
	return ctx.rowPCollocated(c, frac)
}

// CoefficientAssembler builds the sparse coefficient matrix for the
// discretized momentum and mass balances. The matrix is assembled once per
// scenario; only the independent terms change across time steps.
type CoefficientAssembler struct {
	ctx  *context
	rows []rowEq
}

func NewCoefficientAssembler(g *Grid, bc *BCTable, scheme InterpScheme, cn Constants) *CoefficientAssembler {
	return &CoefficientAssembler{ctx: newContext(g, bc, scheme, cn, nil)}
}

// NewDualPorosityAssembler augments the system with the fracture pressure
// block and the storage/leakage coupling
func NewDualPorosityAssembler(g *Grid, bc *BCTable, scheme InterpScheme, cn Constants, dc DualConstants) *CoefficientAssembler {
	return &CoefficientAssembler{ctx: newContext(g, bc, scheme, cn, &dc)}
}

// WithRigidPlate turns the north boundary into a rigid loading plate
// (Mandel's problem). Must be set before the first Assemble call.
func (a *CoefficientAssembler) WithRigidPlate() *CoefficientAssembler {
	a.ctx.rigidPlate = true
	return a
}

func (a *CoefficientAssembler) Size() int { return a.ctx.off.Total }

func (a *CoefficientAssembler) Assemble() (A utils.DOK, err error) {
	if a.rows == nil {
		if a.rows, err = a.ctx.buildAll(); err != nil {
			return
		}
	}
	N := a.ctx.off.Total
	A = utils.NewDOK(N, N)
	for r, row := range a.rows {
		for _, tm := range row.terms {
			A.Add(r, tm.col, tm.coef)
		}
	}
	if empty := A.EmptyRows(); len(empty) != 0 {
		err = fmt.Errorf("%w: %d rows left unassigned (first: %d); a zero row makes the matrix singular",
			ErrAssembly, len(empty), empty[0])
		return
	}
	return
}

// RHSAssembler builds the independent terms array once per time step from
// the previous level's fields and the boundary values. It shares the row
// equations with the coefficient assembler, so the interpolation scheme is
// threaded identically into both by construction.
type RHSAssembler struct {
	ctx  *context
	rows []rowEq
}

func NewRHSAssembler(g *Grid, bc *BCTable, scheme InterpScheme, cn Constants) *RHSAssembler {
	return &RHSAssembler{ctx: newContext(g, bc, scheme, cn, nil)}
}

func NewDualPorosityRHSAssembler(g *Grid, bc *BCTable, scheme InterpScheme, cn Constants, dc DualConstants) *RHSAssembler {
	return &RHSAssembler{ctx: newContext(g, bc, scheme, cn, &dc)}
}

// WithRigidPlate must mirror the coefficient assembler's setting
func (a *RHSAssembler) WithRigidPlate() *RHSAssembler {
	a.ctx.rigidPlate = true
	return a
}

func (a *RHSAssembler) Size() int { return a.ctx.off.Total }

// Assemble builds the forcing vector for the solve from level step to
// step+1
func (a *RHSAssembler) Assemble(f *Fields, step int) (b utils.Vector, err error) {
	if a.rows == nil {
		if a.rows, err = a.ctx.buildAll(); err != nil {
			return
		}
	}
	if step < 0 || step >= a.ctx.g.Nt-1 {
		err = fmt.Errorf("%w: time step %d outside [0,%d)", ErrConfiguration, step, a.ctx.g.Nt-1)
		return
	}
	xOld := GatherState(a.ctx.g, a.ctx.off, f, step)
	b = utils.NewVector(a.ctx.off.Total)
	data := b.DataP()
	for r, row := range a.rows {
		val := -row.c + row.hc
		for _, tm := range row.hist {
			val += tm.coef * xOld.AtVec(tm.col)
		}
		data[r] = val
	}
	return
}

// GatherState packs the field values at one time level into a global vector
// aligned with the matrix ordering
func GatherState(g *Grid, off Offsets, f *Fields, step int) (x utils.Vector) {
	x = utils.NewVector(off.Total)
	for n := 0; n < g.U.N(); n++ {
		x.Set(off.U+n, f.U.At(n, step))
	}
	for n := 0; n < g.V.N(); n++ {
		x.Set(off.V+n, f.V.At(n, step))
	}
	for n := 0; n < g.P.N(); n++ {
		x.Set(off.P+n, f.P.At(n, step))
	}
	if off.Total > off.PFrac {
		for n := 0; n < g.P.N(); n++ {
			x.Set(off.PFrac+n, f.PFrac.At(n, step))
		}
	}
	return
}

// ScatterState writes a solved global vector back into the field histories
// at one time level
func ScatterState(g *Grid, off Offsets, x utils.Vector, f *Fields, step int) {
	for n := 0; n < g.U.N(); n++ {
		f.U.Set(n, step, x.AtVec(off.U+n))
	}
	for n := 0; n < g.V.N(); n++ {
		f.V.Set(n, step, x.AtVec(off.V+n))
	}
	for n := 0; n < g.P.N(); n++ {
		f.P.Set(n, step, x.AtVec(off.P+n))
	}
	if off.Total > off.PFrac {
		for n := 0; n < g.P.N(); n++ {
			f.PFrac.Set(n, step, x.AtVec(off.PFrac+n))
		}
	}
}
