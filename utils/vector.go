package utils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

type Vector struct {
	V *mat.VecDense
}

func NewVector(n int, dataO ...[]float64) (R Vector) {
	var m *mat.VecDense
	if len(dataO) != 0 {
		if len(dataO[0]) != n {
			err := fmt.Errorf("mismatch in allocation: NewVector n = %v, len(data[0]) = %v\n", n, len(dataO[0]))
			panic(err)
		}
		m = mat.NewVecDense(n, dataO[0])
	} else {
		m = mat.NewVecDense(n, make([]float64, n))
	}
	R = Vector{m}
	return
}

func NewVectorConstant(n int, val float64) (R Vector) {
	data := make([]float64, n)
	for i := range data {
		data[i] = val
	}
	return NewVector(n, data)
}

func (v Vector) Len() int            { return v.V.Len() }
func (v Vector) AtVec(i int) float64 { return v.V.AtVec(i) }
func (v Vector) DataP() []float64    { return v.V.RawVector().Data }

func (v Vector) Set(i int, val float64) Vector { // Changes receiver
	v.V.SetVec(i, val)
	return v
}

func (v Vector) SetAll(val float64) Vector { // Changes receiver
	data := v.DataP()
	for i := range data {
		data[i] = val
	}
	return v
}

func (v Vector) Zero() Vector { // Changes receiver
	return v.SetAll(0)
}

func (v Vector) Copy() (R Vector) {
	data := make([]float64, v.Len())
	copy(data, v.DataP())
	return NewVector(v.Len(), data)
}

func (v Vector) Scale(a float64) Vector { // Changes receiver
	v.V.ScaleVec(a, v.V)
	return v
}

func (v Vector) Add(a Vector) Vector { // Changes receiver
	v.V.AddVec(v.V, a.V)
	return v
}

func (v Vector) Subtract(a Vector) Vector { // Changes receiver
	v.V.SubVec(v.V, a.V)
	return v
}

func (v Vector) Min() (min float64) {
	data := v.DataP()
	min = data[0]
	for _, val := range data {
		if val < min {
			min = val
		}
	}
	return
}

func (v Vector) Max() (max float64) {
	data := v.DataP()
	max = data[0]
	for _, val := range data {
		if val > max {
			max = val
		}
	}
	return
}

// NormInf is the largest absolute entry
func (v Vector) NormInf() (norm float64) {
	for _, val := range v.DataP() {
		if math.Abs(val) > norm {
			norm = math.Abs(val)
		}
	}
	return
}

// Norm2 is the discrete L2 norm, not scaled by the vector length
func (v Vector) Norm2() (norm float64) {
	for _, val := range v.DataP() {
		norm += val * val
	}
	norm = math.Sqrt(norm)
	return
}
