package cmd

import (
	"testing"

	"github.com/magiconair/properties/assert"

	"github.com/poromech/gopore/InputParameters"
)

func TestParseSimulationParameters(t *testing.T) {
	var (
		err error
	)
	fileInput := []byte(`
Title: Test Case
Benchmark: mandel
GridType: staggered
InterpScheme: 1DPIS
MeshSize: 8
NTimeLevels: 129
TimeFactor: 2.
Load: -10000.
ShapeFactor: 0.
PropertiesFile: berea.dat
`)
	var input InputParameters.SimulationParameters
	if err = input.Parse(fileInput); err != nil {
		panic(err)
	}
	assert.Equal(t, input.Benchmark, "mandel")
	assert.Equal(t, input.GridType, "staggered")
	assert.Equal(t, input.MeshSize, 8)
	assert.Equal(t, input.TimeFactor, 2.)
	input.Print()
	assert.Equal(t, input.Load, -10000.)
	// an explicit zero survives parsing as a set value
	assert.Equal(t, *input.ShapeFactor, 0.)
}

func TestShapeFactorOverride(t *testing.T) {
	sp := &InputParameters.SimulationParameters{
		GridType:     "collocated",
		InterpScheme: "CDS",
		MeshSize:     1,
		NTimeLevels:  3,
		TimeFactor:   1.,
		Load:         -10000.,
	}

	// unset keeps the benchmark defaults
	sc, err := toScenario(sp, "leakingDouble", true)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, sc.ShapeFactor, 11.)
	sc, err = toScenario(sp, "storageDouble", true)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, sc.ShapeFactor, 0.)

	// an explicit zero switches leakage off
	zero := 0.
	sp.ShapeFactor = &zero
	sc, err = toScenario(sp, "leakingDouble", true)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, sc.ShapeFactor, 0.)
}
