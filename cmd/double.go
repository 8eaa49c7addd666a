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

	"github.com/spf13/cobra"
)

// DoubleCmd represents the dual porosity benchmark command
var DoubleCmd = &cobra.Command{
	Use:   "double",
	Short: "Dual porosity consolidation benchmarks",
	Long: `
Runs one of the dual porosity benchmarks: terzaghiDouble, sealedDouble,
stripfootDouble, storageDouble or leakingDouble,

gopore double -b leakingDouble -P materials/berea.dat`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("double called")
		runBenchmark(cmd, true)
	},
}

func init() {
	rootCmd.AddCommand(DoubleCmd)
	addBenchmarkFlags(DoubleCmd, "terzaghiDouble")
	DoubleCmd.Flags().Float64("porePorosityFraction", 2.0/3.0, "fraction of the porosity assigned to the pore network")
	DoubleCmd.Flags().Float64("porePermFraction", 1.0/1000.0, "fraction of the permeability assigned to the pore network")
	DoubleCmd.Flags().Float64("shapeFactor", 11, "inter-porosity leakage shape factor")
}
