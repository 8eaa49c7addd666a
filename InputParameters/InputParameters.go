package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type SimulationParameters struct {
	Title                string  `yaml:"Title"`
	Benchmark            string  `yaml:"Benchmark"`
	GridType             string  `yaml:"GridType"`
	InterpScheme         string  `yaml:"InterpScheme"`
	MeshSize             int     `yaml:"MeshSize"`
	NTimeLevels          int     `yaml:"NTimeLevels"`
	TimeFactor           float64 `yaml:"TimeFactor"`
	Load                 float64 `yaml:"Load"`
	Gravity              float64 `yaml:"Gravity"`
	PorePorosityFraction float64 `yaml:"PorePorosityFraction"`
	PorePermFraction     float64 `yaml:"PorePermFraction"`
	// nil keeps the benchmark default; an explicit zero switches leakage off
	ShapeFactor *float64 `yaml:"ShapeFactor"`
	PropertiesFile       string  `yaml:"PropertiesFile"`
	OutputDir            string  `yaml:"OutputDir"`
}

func (sp *SimulationParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, sp)
}

func (sp *SimulationParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", sp.Title)
	fmt.Printf("[%s]\t\t= Benchmark\n", sp.Benchmark)
	fmt.Printf("[%s]\t\t= Grid Type\n", sp.GridType)
	fmt.Printf("[%s]\t\t\t= Interpolation Scheme\n", sp.InterpScheme)
	fmt.Printf("[%d]\t\t\t\t= Mesh Size\n", sp.MeshSize)
	fmt.Printf("[%d]\t\t\t\t= Time Levels\n", sp.NTimeLevels)
	fmt.Printf("%8.5f\t\t= Time Factor\n", sp.TimeFactor)
	fmt.Printf("%8.3e\t\t= Load\n", sp.Load)
	fmt.Printf("\"%s\"\t= Properties File\n", sp.PropertiesFile)
}
