package utils

import (
	"fmt"
	"sort"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// DOK wraps the dictionary-of-keys sparse matrix used during assembly.
// Accumulation happens through Add, so stencil contributions from different
// faces can land on the same (i,j) entry in any order.
type DOK struct {
	M        *sparse.DOK
	readOnly bool
	name     string
}

func NewDOK(nr, nc int) (R DOK) {
	R = DOK{
		sparse.NewDOK(nr, nc),
		false,
		"unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m DOK) Dims() (r, c int)    { return m.M.Dims() }
func (m DOK) At(i, j int) float64 { return m.M.At(i, j) }
func (m DOK) T() mat.Matrix      { return m.M.T() }

func (m *DOK) SetReadOnly(name ...string) DOK {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
	return *m
}

func (m DOK) Set(i, j int, val float64) DOK { // Changes receiver
	m.checkWritable()
	m.M.Set(i, j, val)
	return m
}

func (m DOK) Add(i, j int, val float64) DOK { // Changes receiver
	m.checkWritable()
	m.M.Set(i, j, m.M.At(i, j)+val)
	return m
}

func (m DOK) ToCSR() *sparse.CSR {
	return m.M.ToCSR()
}

// ToDense materializes the assembled system for the direct factorization
func (m DOK) ToDense() Matrix {
	var (
		nr, nc = m.Dims()
		R      = NewMatrix(nr, nc)
	)
	m.M.DoNonZero(func(i, j int, val float64) {
		R.M.Set(i, j, val)
	})
	return R
}

// Triplet is one (row, col, value) entry of the assembled sparse matrix
type Triplet struct {
	I, J int
	Val  float64
}

// Triplets returns the nonzero entries in row-major order. The DOK map has
// no iteration order of its own, so callers comparing assemblies rely on
// this sort.
func (m DOK) Triplets() (T []Triplet) {
	m.M.DoNonZero(func(i, j int, val float64) {
		T = append(T, Triplet{I: i, J: j, Val: val})
	})
	sort.Slice(T, func(a, b int) bool {
		if T[a].I != T[b].I {
			return T[a].I < T[b].I
		}
		return T[a].J < T[b].J
	})
	return
}

// EmptyRows returns the indices of rows with no nonzero entries. A row left
// unassigned by assembly makes the matrix singular and is a fatal assembly
// bug, not something to paper over with a default.
func (m DOK) EmptyRows() (I Index) {
	var (
		nr, _ = m.Dims()
		seen  = make([]bool, nr)
	)
	m.M.DoNonZero(func(i, j int, val float64) {
		if val != 0 {
			seen[i] = true
		}
	})
	for i := 0; i < nr; i++ {
		if !seen[i] {
			I = append(I, i)
		}
	}
	return
}

func (m DOK) checkWritable() {
	if m.readOnly {
		err := fmt.Errorf("attempt to write to a read only matrix named: \"%v\"", m.name)
		panic(err)
	}
}
