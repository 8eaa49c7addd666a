package FV2D

// Collocated stencils. All variables live at cell centers; face values come
// from central averaging, one-sided boundary closures, or (1DPIS) the
// pressure-corrected displacement interpolation.

// sigmaXX builds the x-normal total stress at vertical face (fi,j):
// (2G+lambda) du/dx + lambda dv/dy - pEff
func (s *stencil) sigmaXX(fi, j int) (l lin) {
	ctx := s.ctx
	cn := ctx.cn
	m := 2*cn.G + cn.Lambda
	dvdy := func(ci int) (d lin) {
		d.add(s.cellCorner(VarV, ci, j+1), cn.Lambda/cn.Dy)
		d.add(s.cellCorner(VarV, ci, j), -cn.Lambda/cn.Dy)
		return
	}
	switch ctx.g.VerFaces.At(fi, j) {
	case FaceInterior:
		l.term(ctx.colU(fi, j), m/cn.Dx)
		l.term(ctx.colU(fi-1, j), -m/cn.Dx)
		l.add(dvdy(fi), 1)
		l.add(s.ctx.pEff(fi, j), -0.5)
		l.add(s.ctx.pEff(fi-1, j), -0.5)
	case FaceWest:
		b := s.bc(West, VarU, j)
		if b.Kind == StressFlux {
			l.c = b.Value
			return
		}
		if b.Kind == Dirichlet {
			l.term(ctx.colU(0, j), 2*m/cn.Dx)
			l.c += -2 * m / cn.Dx * b.Value
		} else {
			l.c += -m * b.Value
		}
		l.add(dvdy(0), 1)
		l.add(s.ctx.pEff(0, j), -1)
	case FaceEast:
		b := s.bc(East, VarU, j)
		if b.Kind == StressFlux {
			l.c = b.Value
			return
		}
		nx := ctx.g.Nx
		if b.Kind == Dirichlet {
			l.term(ctx.colU(nx-1, j), -2*m/cn.Dx)
			l.c += 2 * m / cn.Dx * b.Value
		} else {
			l.c += m * b.Value
		}
		l.add(dvdy(nx), 1)
		l.add(s.ctx.pEff(nx-1, j), -1)
	}
	return
}

// sigmaYY builds the y-normal total stress at horizontal face (i,fj)
func (s *stencil) sigmaYY(i, fj int) (l lin) {
	ctx := s.ctx
	cn := ctx.cn
	m := 2*cn.G + cn.Lambda
	dudx := func(cj int) (d lin) {
		d.add(s.cellCorner(VarU, i+1, cj), cn.Lambda/cn.Dx)
		d.add(s.cellCorner(VarU, i, cj), -cn.Lambda/cn.Dx)
		return
	}
	switch ctx.g.HorFaces.At(i, fj) {
	case FaceInterior:
		l.term(ctx.colV(i, fj), m/cn.Dy)
		l.term(ctx.colV(i, fj-1), -m/cn.Dy)
		l.add(dudx(fj), 1)
		l.add(s.ctx.pEff(i, fj), -0.5)
		l.add(s.ctx.pEff(i, fj-1), -0.5)
	case FaceSouth:
		b := s.bc(South, VarV, i)
		if b.Kind == StressFlux {
			l.c = b.Value
			return
		}
		if b.Kind == Dirichlet {
			l.term(ctx.colV(i, 0), 2*m/cn.Dy)
			l.c += -2 * m / cn.Dy * b.Value
		} else {
			l.c += -m * b.Value
		}
		l.add(dudx(0), 1)
		l.add(s.ctx.pEff(i, 0), -1)
	case FaceNorth:
		b := s.bc(North, VarV, i)
		if b.Kind == StressFlux {
			l.c = b.Value
			return
		}
		ny := ctx.g.Ny
		if b.Kind == Dirichlet {
			l.term(ctx.colV(i, ny-1), -2*m/cn.Dy)
			l.c += 2 * m / cn.Dy * b.Value
		} else {
			l.c += m * b.Value
		}
		l.add(dudx(ny), 1)
		l.add(s.ctx.pEff(i, ny-1), -1)
	}
	return
}

// shearU builds the shear stress G(du/dy + dv/dx) at horizontal face (i,fj),
// as seen by the u momentum balance
func (s *stencil) shearU(i, fj int) (l lin) {
	ctx := s.ctx
	cn := ctx.cn
	dvdx := func(cj int) (d lin) {
		d.add(s.cellCorner(VarV, i+1, cj), cn.G/cn.Dx)
		d.add(s.cellCorner(VarV, i, cj), -cn.G/cn.Dx)
		return
	}
	switch ctx.g.HorFaces.At(i, fj) {
	case FaceInterior:
		l.term(ctx.colU(i, fj), cn.G/cn.Dy)
		l.term(ctx.colU(i, fj-1), -cn.G/cn.Dy)
		l.add(dvdx(fj), 1)
	case FaceSouth:
		b := s.bc(South, VarU, i)
		if b.Kind == StressFlux {
			l.c = b.Value
			return
		}
		if b.Kind == Dirichlet {
			l.term(ctx.colU(i, 0), 2*cn.G/cn.Dy)
			l.c += -2 * cn.G / cn.Dy * b.Value
		} else {
			l.c += -cn.G * b.Value
		}
		l.add(dvdx(0), 1)
	case FaceNorth:
		b := s.bc(North, VarU, i)
		if b.Kind == StressFlux {
			l.c = b.Value
			return
		}
		ny := ctx.g.Ny
		if b.Kind == Dirichlet {
			l.term(ctx.colU(i, ny-1), -2*cn.G/cn.Dy)
			l.c += 2 * cn.G / cn.Dy * b.Value
		} else {
			l.c += cn.G * b.Value
		}
		l.add(dvdx(ny), 1)
	}
	return
}

// shearV builds the shear stress G(dv/dx + du/dy) at vertical face (fi,j),
// as seen by the v momentum balance
func (s *stencil) shearV(fi, j int) (l lin) {
	ctx := s.ctx
	cn := ctx.cn
	dudy := func(ci int) (d lin) {
		d.add(s.cellCorner(VarU, ci, j+1), cn.G/cn.Dy)
		d.add(s.cellCorner(VarU, ci, j), -cn.G/cn.Dy)
		return
	}
	switch ctx.g.VerFaces.At(fi, j) {
	case FaceInterior:
		l.term(ctx.colV(fi, j), cn.G/cn.Dx)
		l.term(ctx.colV(fi-1, j), -cn.G/cn.Dx)
		l.add(dudy(fi), 1)
	case FaceWest:
		b := s.bc(West, VarV, j)
		if b.Kind == StressFlux {
			l.c = b.Value
			return
		}
		if b.Kind == Dirichlet {
			l.term(ctx.colV(0, j), 2*cn.G/cn.Dx)
			l.c += -2 * cn.G / cn.Dx * b.Value
		} else {
			l.c += -cn.G * b.Value
		}
		l.add(dudy(0), 1)
	case FaceEast:
		b := s.bc(East, VarV, j)
		if b.Kind == StressFlux {
			l.c = b.Value
			return
		}
		nx := ctx.g.Nx
		if b.Kind == Dirichlet {
			l.term(ctx.colV(nx-1, j), -2*cn.G/cn.Dx)
			l.c += 2 * cn.G / cn.Dx * b.Value
		} else {
			l.c += cn.G * b.Value
		}
		l.add(dudy(nx), 1)
	}
	return
}

// uFace reconstructs the face-normal displacement at vertical face (fi,j)
// for the mass balance divergence. With 1DPIS the central average gains a
// pressure-difference correction from the local momentum balance.
func (s *stencil) uFace(fi, j int) (l lin) {
	ctx := s.ctx
	cn := ctx.cn
	m := 2*cn.G + cn.Lambda
	switch ctx.g.VerFaces.At(fi, j) {
	case FaceInterior:
		l.term(ctx.colU(fi-1, j), 0.5)
		l.term(ctx.colU(fi, j), 0.5)
		if ctx.scheme == PIS1D {
			beta := cn.Dx / (4 * m)
			l.add(ctx.pEff(fi-1, j), beta)
			l.add(ctx.pEff(fi, j), -beta)
		}
	case FaceWest:
		b := s.bc(West, VarU, j)
		switch b.Kind {
		case Dirichlet:
			l.c = b.Value
		case Neumann:
			l.term(ctx.colU(0, j), 1)
			l.c += b.Value * cn.Dx / 2
		case StressFlux:
			l.term(ctx.colU(0, j), 1)
			l.add(ctx.pEff(0, j), -cn.Dx/(2*m))
			l.c += -cn.Dx / (2 * m) * b.Value
		}
	case FaceEast:
		b := s.bc(East, VarU, j)
		nx := ctx.g.Nx
		switch b.Kind {
		case Dirichlet:
			l.c = b.Value
		case Neumann:
			l.term(ctx.colU(nx-1, j), 1)
			l.c += b.Value * cn.Dx / 2
		case StressFlux:
			l.term(ctx.colU(nx-1, j), 1)
			l.add(ctx.pEff(nx-1, j), cn.Dx/(2*m))
			l.c += cn.Dx / (2 * m) * b.Value
		}
	}
	return
}

// vFace mirrors uFace for horizontal face (i,fj)
func (s *stencil) vFace(i, fj int) (l lin) {
	ctx := s.ctx
	cn := ctx.cn
	m := 2*cn.G + cn.Lambda
	switch ctx.g.HorFaces.At(i, fj) {
	case FaceInterior:
		l.term(ctx.colV(i, fj-1), 0.5)
		l.term(ctx.colV(i, fj), 0.5)
		if ctx.scheme == PIS1D {
			beta := cn.Dy / (4 * m)
			l.add(ctx.pEff(i, fj-1), beta)
			l.add(ctx.pEff(i, fj), -beta)
		}
	case FaceSouth:
		b := s.bc(South, VarV, i)
		switch b.Kind {
		case Dirichlet:
			l.c = b.Value
		case Neumann:
			l.term(ctx.colV(i, 0), 1)
			l.c += b.Value * cn.Dy / 2
		case StressFlux:
			l.term(ctx.colV(i, 0), 1)
			l.add(ctx.pEff(i, 0), -cn.Dy/(2*m))
			l.c += -cn.Dy / (2 * m) * b.Value
		}
	case FaceNorth:
		b := s.bc(North, VarV, i)
		ny := ctx.g.Ny
		switch b.Kind {
		case Dirichlet:
			l.c = b.Value
		case Neumann:
			l.term(ctx.colV(i, ny-1), 1)
			l.c += b.Value * cn.Dy / 2
		case StressFlux:
			l.term(ctx.colV(i, ny-1), 1)
			l.add(ctx.pEff(i, ny-1), cn.Dy/(2*m))
			l.c += cn.Dy / (2 * m) * b.Value
		}
	}
	return
}

func (ctx *context) rowUCollocated(c Coord) (eq rowEq, err error) {
	s := &stencil{ctx: ctx}
	i, j := c.I, c.J
	eq.addStatic(s.sigmaXX(i+1, j), ctx.cn.Dy)
	eq.addStatic(s.sigmaXX(i, j), -ctx.cn.Dy)
	eq.addStatic(s.shearU(i, j+1), ctx.cn.Dx)
	eq.addStatic(s.shearU(i, j), -ctx.cn.Dx)
	return eq, s.err
}

func (ctx *context) rowVCollocated(c Coord) (eq rowEq, err error) {
	s := &stencil{ctx: ctx}
	i, j := c.I, c.J
	eq.addStatic(s.shearV(i+1, j), ctx.cn.Dy)
	eq.addStatic(s.shearV(i, j), -ctx.cn.Dy)
	eq.addStatic(s.sigmaYY(i, j+1), ctx.cn.Dx)
	eq.addStatic(s.sigmaYY(i, j), -ctx.cn.Dx)
	eq.c += -ctx.cn.Rho * ctx.cn.Gravity * ctx.cn.Dx * ctx.cn.Dy
	return eq, s.err
}

func (ctx *context) rowPCollocated(c Coord, frac bool) (eq rowEq, err error) {
	s := &stencil{ctx: ctx}
	i, j := c.I, c.J
	var div lin
	div.add(s.uFace(i+1, j), ctx.cn.Dy)
	div.add(s.uFace(i, j), -ctx.cn.Dy)
	div.add(s.vFace(i, j+1), ctx.cn.Dx)
	div.add(s.vFace(i, j), -ctx.cn.Dx)
	eq = ctx.rowPressure(s, c, frac, div)
	return eq, s.err
}
