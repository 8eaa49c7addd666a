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

// SingleCmd represents the single porosity benchmark command
var SingleCmd = &cobra.Command{
	Use:   "single",
	Short: "Single porosity consolidation benchmarks",
	Long: `
Runs one of the single porosity benchmarks: sealedColumn, terzaghi,
convergence, mandel or stripfoot,

gopore single -b terzaghi -P materials/berea.dat`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("single called")
		runBenchmark(cmd, false)
	},
}

func init() {
	rootCmd.AddCommand(SingleCmd)
	addBenchmarkFlags(SingleCmd, "terzaghi")
}
