package FV2D

// Staggered stencils. Displacements live on the faces their derivatives are
// needed at; boundary-normal face values are closed from the boundary
// conditions instead of being carried as unknowns.

// uAtFace resolves the u displacement at vertical face (fi,j): the face DOF
// when active, otherwise the boundary closure. Stress closures drop the
// lambda dv/dy contribution to the one-sided gradient.
func (s *stencil) uAtFace(fi, j int) (l lin) {
	ctx := s.ctx
	cn := ctx.cn
	m := 2*cn.G + cn.Lambda
	if ctx.g.U.Active(fi, j) {
		l.term(ctx.colU(fi, j), 1)
		return
	}
	adj := func(fa int, sd Side) bool {
		if !ctx.g.U.Active(fa, j) {
			s.fail("%v u closure at face (%d,%d) has no interior neighbor", sd, fi, j)
			return false
		}
		return true
	}
	switch ctx.g.VerFaces.At(fi, j) {
	case FaceWest:
		b := s.bc(West, VarU, j)
		switch b.Kind {
		case Dirichlet:
			l.c = b.Value
		case Neumann:
			if adj(1, West) {
				l.term(ctx.colU(1, j), 1)
				l.c += b.Value * cn.Dx
			}
		case StressFlux:
			if adj(1, West) {
				l.term(ctx.colU(1, j), 1)
				l.add(ctx.pEff(0, j), -cn.Dx/m)
				l.c += -cn.Dx / m * b.Value
			}
		}
	case FaceEast:
		b := s.bc(East, VarU, j)
		nx := ctx.g.Nx
		switch b.Kind {
		case Dirichlet:
			l.c = b.Value
		case Neumann:
			if adj(nx-1, East) {
				l.term(ctx.colU(nx-1, j), 1)
				l.c += b.Value * cn.Dx
			}
		case StressFlux:
			if adj(nx-1, East) {
				l.term(ctx.colU(nx-1, j), 1)
				l.add(ctx.pEff(nx-1, j), cn.Dx/m)
				l.c += cn.Dx / m * b.Value
			}
		}
	default:
		s.fail("inactive interior u face (%d,%d)", fi, j)
	}
	return
}

// vAtFace mirrors uAtFace for horizontal face (i,fj)
func (s *stencil) vAtFace(i, fj int) (l lin) {
	ctx := s.ctx
	cn := ctx.cn
	m := 2*cn.G + cn.Lambda
	if ctx.g.V.Active(i, fj) {
		l.term(ctx.colV(i, fj), 1)
		return
	}
	adj := func(fa int, sd Side) bool {
		if !ctx.g.V.Active(i, fa) {
			s.fail("%v v closure at face (%d,%d) has no interior neighbor", sd, i, fj)
			return false
		}
		return true
	}
	switch ctx.g.HorFaces.At(i, fj) {
	case FaceSouth:
		b := s.bc(South, VarV, i)
		switch b.Kind {
		case Dirichlet:
			l.c = b.Value
		case Neumann:
			if adj(1, South) {
				l.term(ctx.colV(i, 1), 1)
				l.c += b.Value * cn.Dy
			}
		case StressFlux:
			if adj(1, South) {
				l.term(ctx.colV(i, 1), 1)
				l.add(ctx.pEff(i, 0), -cn.Dy/m)
				l.c += -cn.Dy / m * b.Value
			}
		}
	case FaceNorth:
		b := s.bc(North, VarV, i)
		ny := ctx.g.Ny
		switch b.Kind {
		case Dirichlet:
			l.c = b.Value
		case Neumann:
			if adj(ny-1, North) {
				l.term(ctx.colV(i, ny-1), 1)
				l.c += b.Value * cn.Dy
			}
		case StressFlux:
			if adj(ny-1, North) {
				l.term(ctx.colV(i, ny-1), 1)
				l.add(ctx.pEff(i, ny-1), cn.Dy/m)
				l.c += cn.Dy / m * b.Value
			}
		}
	default:
		s.fail("inactive interior v face (%d,%d)", i, fj)
	}
	return
}

// cellSigmaXX is the x-normal total stress at the center of cell (i,j),
// exact on the staggered arrangement since both face displacements surround
// the cell
func (s *stencil) cellSigmaXX(i, j int) (l lin) {
	cn := s.ctx.cn
	m := 2*cn.G + cn.Lambda
	l.add(s.uAtFace(i+1, j), m/cn.Dx)
	l.add(s.uAtFace(i, j), -m/cn.Dx)
	l.add(s.vAtFace(i, j+1), cn.Lambda/cn.Dy)
	l.add(s.vAtFace(i, j), -cn.Lambda/cn.Dy)
	l.add(s.ctx.pEff(i, j), -1)
	return
}

// cellSigmaYY is the y-normal total stress at the center of cell (i,j)
func (s *stencil) cellSigmaYY(i, j int) (l lin) {
	cn := s.ctx.cn
	m := 2*cn.G + cn.Lambda
	l.add(s.vAtFace(i, j+1), m/cn.Dy)
	l.add(s.vAtFace(i, j), -m/cn.Dy)
	l.add(s.uAtFace(i+1, j), cn.Lambda/cn.Dx)
	l.add(s.uAtFace(i, j), -cn.Lambda/cn.Dx)
	l.add(s.ctx.pEff(i, j), -1)
	return
}

// cornerShear is the shear stress G(du/dy + dv/dx) at mesh corner (fi,fj).
// Momentum control volumes of both displacement components meet here, so a
// single builder serves both rows. Callers never request a domain corner:
// u rows keep fi interior and v rows keep fj interior.
func (s *stencil) cornerShear(fi, fj int) (l lin) {
	ctx := s.ctx
	cn := ctx.cn
	g := ctx.g
	dvdx := func() (d lin) {
		d.add(s.vAtFace(fi, fj), cn.G/cn.Dx)
		d.add(s.vAtFace(fi-1, fj), -cn.G/cn.Dx)
		return
	}
	dudy := func() (d lin) {
		d.add(s.uAtFace(fi, fj), cn.G/cn.Dy)
		d.add(s.uAtFace(fi, fj-1), -cn.G/cn.Dy)
		return
	}
	switch {
	case fj == 0:
		b := s.bc(South, VarU, clampInt(fi, g.Nx-1))
		switch b.Kind {
		case StressFlux:
			l.c = b.Value
		case Dirichlet:
			l.term(ctx.colU(fi, 0), 2*cn.G/cn.Dy)
			l.c += -2 * cn.G / cn.Dy * b.Value
			l.add(dvdx(), 1)
		case Neumann:
			l.c += -cn.G * b.Value
			l.add(dvdx(), 1)
		}
	case fj == g.Ny:
		b := s.bc(North, VarU, clampInt(fi, g.Nx-1))
		switch b.Kind {
		case StressFlux:
			l.c = b.Value
		case Dirichlet:
			l.term(ctx.colU(fi, g.Ny-1), -2*cn.G/cn.Dy)
			l.c += 2 * cn.G / cn.Dy * b.Value
			l.add(dvdx(), 1)
		case Neumann:
			l.c += cn.G * b.Value
			l.add(dvdx(), 1)
		}
	case fi == 0:
		b := s.bc(West, VarV, clampInt(fj, g.Ny-1))
		switch b.Kind {
		case StressFlux:
			l.c = b.Value
		case Dirichlet:
			l.term(ctx.colV(0, fj), 2*cn.G/cn.Dx)
			l.c += -2 * cn.G / cn.Dx * b.Value
			l.add(dudy(), 1)
		case Neumann:
			l.c += -cn.G * b.Value
			l.add(dudy(), 1)
		}
	case fi == g.Nx:
		b := s.bc(East, VarV, clampInt(fj, g.Ny-1))
		switch b.Kind {
		case StressFlux:
			l.c = b.Value
		case Dirichlet:
			l.term(ctx.colV(g.Nx-1, fj), -2*cn.G/cn.Dx)
			l.c += 2 * cn.G / cn.Dx * b.Value
			l.add(dudy(), 1)
		case Neumann:
			l.c += cn.G * b.Value
			l.add(dudy(), 1)
		}
	default:
		l.add(dudy(), 1)
		l.add(dvdx(), 1)
	}
	return
}

func (ctx *context) rowUStaggered(c Coord) (eq rowEq, err error) {
	s := &stencil{ctx: ctx}
	fi, j := c.I, c.J
	eq.addStatic(s.cellSigmaXX(fi, j), ctx.cn.Dy)
	eq.addStatic(s.cellSigmaXX(fi-1, j), -ctx.cn.Dy)
	eq.addStatic(s.cornerShear(fi, j+1), ctx.cn.Dx)
	eq.addStatic(s.cornerShear(fi, j), -ctx.cn.Dx)
	return eq, s.err
}

func (ctx *context) rowVStaggered(c Coord) (eq rowEq, err error) {
	s := &stencil{ctx: ctx}
	i, fj := c.I, c.J
	eq.addStatic(s.cornerShear(i+1, fj), ctx.cn.Dy)
	eq.addStatic(s.cornerShear(i, fj), -ctx.cn.Dy)
	eq.addStatic(s.cellSigmaYY(i, fj), ctx.cn.Dx)
	eq.addStatic(s.cellSigmaYY(i, fj-1), -ctx.cn.Dx)
	eq.c += -ctx.cn.Rho * ctx.cn.Gravity * ctx.cn.Dx * ctx.cn.Dy
	return eq, s.err
}

func (ctx *context) rowPStaggered(c Coord, frac bool) (eq rowEq, err error) {
	s := &stencil{ctx: ctx}
	i, j := c.I, c.J
	var div lin
	div.add(s.uAtFace(i+1, j), ctx.cn.Dy)
	div.add(s.uAtFace(i, j), -ctx.cn.Dy)
	div.add(s.vAtFace(i, j+1), ctx.cn.Dx)
	div.add(s.vAtFace(i, j), -ctx.cn.Dx)
	eq = ctx.rowPressure(s, c, frac, div)
	return eq, s.err
}
