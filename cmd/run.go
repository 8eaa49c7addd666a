/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/poromech/gopore/FV2D"
	"github.com/poromech/gopore/InputParameters"
	"github.com/poromech/gopore/model_problems/Consolidation2D"
	"github.com/poromech/gopore/mporous"
	"github.com/poromech/gopore/readfiles"
)

func addBenchmarkFlags(c *cobra.Command, defBenchmark string) {
	c.Flags().StringP("benchmark", "b", defBenchmark, "benchmark to run, or a comma separated list")
	c.Flags().StringP("gridType", "g", "collocated", "variable arrangement: collocated or staggered")
	c.Flags().StringP("scheme", "s", "CDS", "face interpolation scheme: CDS or 1DPIS")
	c.Flags().IntP("meshSize", "m", 4, "mesh refinement multiplier")
	c.Flags().IntP("timeLevels", "n", 65, "number of time levels including the initial one")
	c.Flags().Float64P("timeFactor", "t", 1, "simulated span as a multiple of the reference time")
	c.Flags().Float64("load", -10e3, "applied boundary stress, compression negative")
	c.Flags().Float64("gravity", 0, "gravity magnitude")
	c.Flags().StringP("propertiesFile", "P", "", "material properties data file")
	c.Flags().StringP("inputParametersFile", "I", "", "YAML file overriding the flag parameters")
	c.Flags().StringP("outputDir", "o", ".", "directory the CSV output is written to")
	c.Flags().Bool("cpuprofile", false, "write a CPU profile of the run")
}

func processInput(cmd *cobra.Command) (sp *InputParameters.SimulationParameters) {
	sp = &InputParameters.SimulationParameters{}
	sp.Benchmark, _ = cmd.Flags().GetString("benchmark")
	sp.GridType, _ = cmd.Flags().GetString("gridType")
	sp.InterpScheme, _ = cmd.Flags().GetString("scheme")
	sp.MeshSize, _ = cmd.Flags().GetInt("meshSize")
	sp.NTimeLevels, _ = cmd.Flags().GetInt("timeLevels")
	sp.TimeFactor, _ = cmd.Flags().GetFloat64("timeFactor")
	sp.Load, _ = cmd.Flags().GetFloat64("load")
	sp.Gravity, _ = cmd.Flags().GetFloat64("gravity")
	sp.PropertiesFile, _ = cmd.Flags().GetString("propertiesFile")
	sp.OutputDir, _ = cmd.Flags().GetString("outputDir")
	if f := cmd.Flags().Lookup("porePorosityFraction"); f != nil {
		sp.PorePorosityFraction, _ = cmd.Flags().GetFloat64("porePorosityFraction")
		sp.PorePermFraction, _ = cmd.Flags().GetFloat64("porePermFraction")
		// only an explicitly set flag overrides the benchmark default, so
		// --shapeFactor 0 switches leakage off while the storage benchmark
		// keeps its zero default
		if cmd.Flags().Changed("shapeFactor") {
			v, _ := cmd.Flags().GetFloat64("shapeFactor")
			sp.ShapeFactor = &v
		}
	}

	if fn, _ := cmd.Flags().GetString("inputParametersFile"); len(fn) != 0 {
		data, err := os.ReadFile(fn)
		if err != nil {
			panic(err)
		}
		if err = sp.Parse(data); err != nil {
			panic(err)
		}
	}

	if len(sp.PropertiesFile) == 0 {
		err := fmt.Errorf("must supply a properties file (-P, --propertiesFile)")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
berea sandstone
6.0e9 8.0e9 36.0e9 2600.0
3.3e9 0.19
1.9e-13 1.0e-3 1000.0
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	return
}

// toScenario translates the parsed parameters for one named benchmark
func toScenario(sp *InputParameters.SimulationParameters, name string, wantDual bool) (sc Consolidation2D.Scenario, err error) {
	b, err := Consolidation2D.ParseBenchmark(name)
	if err != nil {
		return
	}
	if b.DualPorosity() != wantDual {
		if wantDual {
			return sc, fmt.Errorf("benchmark %q is single porosity, run it with the single command", name)
		}
		return sc, fmt.Errorf("benchmark %q is dual porosity, run it with the double command", name)
	}

	sc = Consolidation2D.NewScenario(b, sp.MeshSize)
	if sc.GridType, err = FV2D.ParseGridType(sp.GridType); err != nil {
		return
	}
	if sc.Scheme, err = FV2D.ParseInterpScheme(sp.InterpScheme); err != nil {
		return
	}
	sc.Nt = sp.NTimeLevels
	sc.TimeFactor = sp.TimeFactor
	sc.Load = sp.Load
	sc.Gravity = sp.Gravity
	if wantDual {
		if sp.PorePorosityFraction != 0 {
			sc.PorePorosityFraction = sp.PorePorosityFraction
		}
		if sp.PorePermFraction != 0 {
			sc.PorePermFraction = sp.PorePermFraction
		}
		if sp.ShapeFactor != nil {
			sc.ShapeFactor = *sp.ShapeFactor
		}
	}
	return
}

// runBenchmark runs every listed benchmark; a failed scenario is reported
// and the remaining independent scenarios still run.
func runBenchmark(cmd *cobra.Command, wantDual bool) {
	sp := processInput(cmd)
	sp.Print()

	name, props := readfiles.ReadProperties(sp.PropertiesFile, true)
	fmt.Printf("Material: %s\n", name)

	if prof, _ := cmd.Flags().GetBool("cpuprofile"); prof {
		defer profile.Start().Stop()
	}

	var failed int
	benchmarks := strings.Split(sp.Benchmark, ",")
	for _, bname := range benchmarks {
		bname = strings.TrimSpace(bname)
		if err := runOne(sp, bname, wantDual, props); err != nil {
			fmt.Printf("error: benchmark %s: %s\n", bname, err.Error())
			failed++
		}
	}
	if failed != 0 {
		fmt.Printf("%d of %d benchmarks failed\n", failed, len(benchmarks))
		os.Exit(1)
	}
	fmt.Printf("Output written to %s\n", sp.OutputDir)
}

func runOne(sp *InputParameters.SimulationParameters, bname string, wantDual bool, props mporous.Properties) error {
	sc, err := toScenario(sp, bname, wantDual)
	if err != nil {
		return err
	}
	c, err := Consolidation2D.New(sc, props)
	if err != nil {
		return err
	}
	if err = c.Run(true); err != nil {
		return err
	}
	return c.Export(sp.OutputDir)
}
