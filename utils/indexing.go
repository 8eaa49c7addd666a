package utils

// Index is a list of linear DOF indices
type Index []int

func NewIndex(N int) (I Index) {
	I = make(Index, N)
	return
}

func NewRange(min, max int) (I Index) {
	I = make(Index, max-min+1)
	for i := range I {
		I[i] = min + i
	}
	return
}

func (I Index) Contains(val int) bool {
	for _, ind := range I {
		if ind == val {
			return true
		}
	}
	return false
}

func (I Index) Min() (min int) {
	min = I[0]
	for _, ind := range I {
		if ind < min {
			min = ind
		}
	}
	return
}

func (I Index) Max() (max int) {
	max = I[0]
	for _, ind := range I {
		if ind > max {
			max = ind
		}
	}
	return
}

// Index2D composes (i,j) grid coordinates into a linear index over an
// Nx x Ny coordinate plane, row (j) outer
type Index2D struct {
	Nx, Ny int
}

func (ix Index2D) Of(i, j int) int {
	return j*ix.Nx + i
}

func (ix Index2D) Coords(ind int) (i, j int) {
	j = ind / ix.Nx
	i = ind - j*ix.Nx
	return
}
