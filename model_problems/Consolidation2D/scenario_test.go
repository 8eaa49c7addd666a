package Consolidation2D

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poromech/gopore/FV2D"
)

var allSides = []FV2D.Side{FV2D.North, FV2D.West, FV2D.South, FV2D.East}

// Every benchmark must produce a complete side table: u, v and p on all
// four sides, plus the fracture pressure on the dual media.
func TestBoundaryTablesComplete(t *testing.T) {
	for b := SealedColumn; b <= LeakingDouble; b++ {
		sc := NewScenario(b, 2)
		_, _, _, _, stripCells := sc.geometry()
		tab, err := sc.bcTable(stripCells, 1000)
		require.NoError(t, err, b.String())

		for _, sd := range allSides {
			for _, k := range []FV2D.VarKind{FV2D.VarU, FV2D.VarV, FV2D.VarP} {
				_, err := tab.Get(sd, k)
				assert.NoError(t, err, "%s %v %v", b, sd, k)
			}
			_, err := tab.Get(sd, FV2D.VarPFrac)
			if b.DualPorosity() {
				assert.NoError(t, err, "%s %v pFrac", b, sd)
			} else {
				assert.Error(t, err, "%s %v pFrac", b, sd)
			}
		}
	}
}

func TestBoundaryTableEntries(t *testing.T) {
	load := NewScenario(Terzaghi, 1).Load

	// the loaded top of the Terzaghi column drains, the base does not move
	tab, err := NewScenario(Terzaghi, 1).bcTable(0, 1000)
	require.NoError(t, err)
	bc, err := tab.Get(FV2D.North, FV2D.VarP)
	require.NoError(t, err)
	assert.Equal(t, FV2D.Dirichlet, bc.Kind)
	assert.Zero(t, bc.Value)
	bc, err = tab.Get(FV2D.North, FV2D.VarV)
	require.NoError(t, err)
	assert.Equal(t, FV2D.StressFlux, bc.Kind)
	assert.Equal(t, load, bc.Value)
	bc, err = tab.Get(FV2D.South, FV2D.VarV)
	require.NoError(t, err)
	assert.Equal(t, FV2D.Dirichlet, bc.Kind)

	// Mandel: symmetry plane west, drained free edge east
	tab, err = NewScenario(Mandel, 1).bcTable(0, 1000)
	require.NoError(t, err)
	bc, err = tab.Get(FV2D.West, FV2D.VarU)
	require.NoError(t, err)
	assert.Equal(t, FV2D.Dirichlet, bc.Kind)
	bc, err = tab.Get(FV2D.East, FV2D.VarP)
	require.NoError(t, err)
	assert.Equal(t, FV2D.Dirichlet, bc.Kind)
}

// The footing loads and seals the patch next to the symmetry plane while
// the rest of the surface stays drained and traction free.
func TestStripfootOverrides(t *testing.T) {
	sc := NewScenario(Stripfoot, 2)
	_, _, _, _, stripCells := sc.geometry()
	require.Equal(t, 2, stripCells)
	tab, err := sc.bcTable(stripCells, 1000)
	require.NoError(t, err)

	for i := 0; i < stripCells; i++ {
		bc, err := tab.At(FV2D.North, FV2D.VarV, i)
		require.NoError(t, err)
		assert.Equal(t, FV2D.StressFlux, bc.Kind)
		assert.Equal(t, sc.Load, bc.Value)
		bc, err = tab.At(FV2D.North, FV2D.VarP, i)
		require.NoError(t, err)
		assert.Equal(t, FV2D.StressFlux, bc.Kind)
	}
	bc, err := tab.At(FV2D.North, FV2D.VarV, stripCells)
	require.NoError(t, err)
	assert.Equal(t, FV2D.StressFlux, bc.Kind)
	assert.Zero(t, bc.Value)
	bc, err = tab.At(FV2D.North, FV2D.VarP, stripCells)
	require.NoError(t, err)
	assert.Equal(t, FV2D.Dirichlet, bc.Kind)
}
