package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrix(t *testing.T) {
	// Copy is independent of the receiver
	{
		M := NewMatrix(2, 2, []float64{1, 2, 3, 4})
		A := M.Copy()
		A.Set(0, 0, -1)
		assert.Equal(t, 1., M.At(0, 0))
		assert.Equal(t, -1., A.At(0, 0))
	}
	// Col copies out a column
	{
		M := NewMatrix(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		V := M.Col(1)
		assert.Equal(t, []float64{2, 5}, V.DataP())
		V.Set(0, 99)
		assert.Equal(t, 2., M.At(0, 1))
	}
	// Min / Max
	{
		M := NewMatrix(2, 2, []float64{-3, 0, 7, 1})
		assert.Equal(t, -3., M.Min())
		assert.Equal(t, 7., M.Max())
	}
}

func TestVector(t *testing.T) {
	{
		V := NewVector(3, []float64{1, -2, 3})
		assert.Equal(t, 3, V.Len())
		assert.Equal(t, -2., V.AtVec(1))
		assert.Equal(t, 3., V.NormInf())
	}
	{
		V := NewVectorConstant(4, 2)
		V.Scale(0.5)
		assert.Equal(t, []float64{1, 1, 1, 1}, V.DataP())
		V.Zero()
		assert.Equal(t, 0., V.NormInf())
	}
}

func TestDOK(t *testing.T) {
	// Add accumulates
	{
		A := NewDOK(3, 3)
		A.Add(1, 1, 2)
		A.Add(1, 1, 3)
		A.Add(0, 2, -1)
		assert.Equal(t, 5., A.At(1, 1))
		assert.Equal(t, -1., A.At(0, 2))
	}
	// Triplets are row-major sorted regardless of insertion order
	{
		A := NewDOK(3, 3)
		A.Add(2, 0, 1)
		A.Add(0, 1, 2)
		A.Add(0, 0, 3)
		T := A.Triplets()
		assert.Equal(t, []Triplet{
			{I: 0, J: 0, Val: 3},
			{I: 0, J: 1, Val: 2},
			{I: 2, J: 0, Val: 1},
		}, T)
	}
	// EmptyRows flags unassigned rows
	{
		A := NewDOK(3, 3)
		A.Add(0, 0, 1)
		A.Add(2, 2, 1)
		assert.Equal(t, Index{1}, A.EmptyRows())
	}
	// ToDense round trip
	{
		A := NewDOK(2, 2)
		A.Add(0, 1, 4)
		D := A.ToDense()
		assert.Equal(t, 4., D.At(0, 1))
		assert.Equal(t, 0., D.At(1, 0))
	}
}

func TestIndex2D(t *testing.T) {
	ix := Index2D{Nx: 3, Ny: 2}
	assert.Equal(t, 4, ix.Of(1, 1))
	i, j := ix.Coords(4)
	assert.Equal(t, 1, i)
	assert.Equal(t, 1, j)
}
