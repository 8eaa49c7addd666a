package FV2D

import "fmt"

// stencil builds the face-value and flux expressions for one row equation.
// Boundary condition lookups that fail record the first error; callers check
// err once per row instead of threading errors through every face.
type stencil struct {
	ctx *context
	err error
}

// bc resolves the condition for variable k on side sd at boundary cell
// `along` (the cell column on north/south, the cell row on west/east)
func (s *stencil) bc(sd Side, k VarKind, along int) BC {
	if s.err != nil {
		return BC{}
	}
	b, err := s.ctx.bc.At(sd, k, along)
	if err != nil {
		s.err = err
	}
	return b
}

func (s *stencil) fail(format string, args ...interface{}) lin {
	if s.err == nil {
		s.err = fmt.Errorf("%w: "+format, append([]interface{}{ErrAssembly}, args...)...)
	}
	return lin{}
}

func (ctx *context) pCol(i, j int, frac bool) int {
	if frac {
		return ctx.colPF(i, j)
	}
	return ctx.colP(i, j)
}

func pVar(frac bool) VarKind {
	if frac {
		return VarPFrac
	}
	return VarP
}

func clampInt(v, hi int) int {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}

// cornerSides lists the boundary sides a face corner (ci,cj) lies on
func cornerSides(ci, cj, nx, ny int) (sides []Side) {
	if ci == 0 {
		sides = append(sides, West)
	}
	if ci == nx {
		sides = append(sides, East)
	}
	if cj == 0 {
		sides = append(sides, South)
	}
	if cj == ny {
		sides = append(sides, North)
	}
	return
}

// cellCorner reconstructs a cell-centered variable at a face corner by
// averaging the surrounding in-plane cells. On a boundary corner a Dirichlet
// value for the variable takes over, since the corner lies on the boundary
// itself. Collocated arrangement only.
func (s *stencil) cellCorner(k VarKind, ci, cj int) (l lin) {
	g := s.ctx.g
	for _, sd := range cornerSides(ci, cj, g.Nx, g.Ny) {
		along := clampInt(ci, g.Nx-1)
		if sd == West || sd == East {
			along = clampInt(cj, g.Ny-1)
		}
		if b := s.bc(sd, k, along); b.Kind == Dirichlet {
			l.c = b.Value
			return
		}
	}
	var cols []int
	for _, d := range [4][2]int{{ci - 1, cj - 1}, {ci, cj - 1}, {ci - 1, cj}, {ci, cj}} {
		if d[0] < 0 || d[0] >= g.Nx || d[1] < 0 || d[1] >= g.Ny {
			continue
		}
		switch k {
		case VarU:
			cols = append(cols, s.ctx.colU(d[0], d[1]))
		case VarV:
			cols = append(cols, s.ctx.colV(d[0], d[1]))
		}
	}
	if len(cols) == 0 {
		return s.fail("corner (%d,%d) has no in-plane cells for %v", ci, cj, k)
	}
	w := 1 / float64(len(cols))
	for _, c := range cols {
		l.term(c, w)
	}
	return
}

// darcyX is the Darcy flux in +x at vertical face (fi,j) for the pressure
// field selected by k, with mobility perm/visc. Neumann prescribes the
// outward normal pressure gradient, StressFlux the outward volumetric flux.
func (s *stencil) darcyX(fi, j int, k VarKind, perm float64) (l lin) {
	ctx := s.ctx
	frac := k == VarPFrac
	mob := perm / ctx.cn.Visc
	dx := ctx.cn.Dx
	switch ctx.g.VerFaces.At(fi, j) {
	case FaceInterior:
		l.term(ctx.pCol(fi, j, frac), -mob/dx)
		l.term(ctx.pCol(fi-1, j, frac), mob/dx)
	case FaceWest:
		b := s.bc(West, k, j)
		switch b.Kind {
		case Dirichlet:
			l.term(ctx.pCol(0, j, frac), -2*mob/dx)
			l.c += 2 * mob / dx * b.Value
		case Neumann:
			l.c = mob * b.Value
		case StressFlux:
			l.c = -b.Value
		}
	case FaceEast:
		b := s.bc(East, k, j)
		switch b.Kind {
		case Dirichlet:
			l.term(ctx.pCol(ctx.g.Nx-1, j, frac), 2*mob/dx)
			l.c += -2 * mob / dx * b.Value
		case Neumann:
			l.c = -mob * b.Value
		case StressFlux:
			l.c = b.Value
		}
	}
	return
}

// darcyY is the Darcy flux in +y at horizontal face (i,fj)
func (s *stencil) darcyY(i, fj int, k VarKind, perm float64) (l lin) {
	ctx := s.ctx
	frac := k == VarPFrac
	mob := perm / ctx.cn.Visc
	dy := ctx.cn.Dy
	switch ctx.g.HorFaces.At(i, fj) {
	case FaceInterior:
		l.term(ctx.pCol(i, fj, frac), -mob/dy)
		l.term(ctx.pCol(i, fj-1, frac), mob/dy)
	case FaceSouth:
		b := s.bc(South, k, i)
		switch b.Kind {
		case Dirichlet:
			l.term(ctx.pCol(i, 0, frac), -2*mob/dy)
			l.c += 2 * mob / dy * b.Value
		case Neumann:
			l.c = mob * b.Value
		case StressFlux:
			l.c = -b.Value
		}
	case FaceNorth:
		b := s.bc(North, k, i)
		switch b.Kind {
		case Dirichlet:
			l.term(ctx.pCol(i, ctx.g.Ny-1, frac), 2*mob/dy)
			l.c += -2 * mob / dy * b.Value
		case Neumann:
			l.c = -mob * b.Value
		case StressFlux:
			l.c = b.Value
		}
	}
	return
}

// rowPressure assembles one mass balance row given the topology's face
// displacement divergence. The storage and coupling blocks carry the 1/dt
// scaling; the Darcy block does not, so the matrix splits into a flux part
// plus a transient part proportional to 1/dt.
func (ctx *context) rowPressure(s *stencil, c Coord, frac bool, div lin) (eq rowEq) {
	cn := ctx.cn
	vol := cn.Dx * cn.Dy
	i, j := c.I, c.J

	perm := cn.Perm
	coupling := cn.Alpha
	if ctx.dual != nil {
		dc := ctx.dual
		var pPore, pFrac lin
		pPore.term(ctx.colP(i, j), 1)
		pFrac.term(ctx.colPF(i, j), 1)
		if !frac {
			eq.addTransient(pPore, dc.S11*vol/cn.Dt)
			eq.addTransient(pFrac, dc.S12*vol/cn.Dt)
			var leak lin
			leak.term(ctx.colP(i, j), 1)
			leak.term(ctx.colPF(i, j), -1)
			eq.addStatic(leak, dc.Leak*vol)
			coupling = dc.PsiPore * cn.Alpha
		} else {
			eq.addTransient(pFrac, dc.S22*vol/cn.Dt)
			eq.addTransient(pPore, dc.S12*vol/cn.Dt)
			var leak lin
			leak.term(ctx.colPF(i, j), 1)
			leak.term(ctx.colP(i, j), -1)
			eq.addStatic(leak, dc.Leak*vol)
			coupling = dc.PsiFrac * cn.Alpha
			perm = dc.PermFrac
		}
	} else {
		var storage lin
		storage.term(ctx.colP(i, j), 1)
		eq.addTransient(storage, vol/(cn.Q*cn.Dt))
	}

	eq.addTransient(div, coupling/cn.Dt)

	k := pVar(frac)
	eq.addStatic(s.darcyX(i+1, j, k, perm), cn.Dy)
	eq.addStatic(s.darcyX(i, j, k, perm), -cn.Dy)
	eq.addStatic(s.darcyY(i, j+1, k, perm), cn.Dx)
	eq.addStatic(s.darcyY(i, j, k, perm), -cn.Dx)
	return
}
