package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
)

// Reads the coord/numeric/reference comparison files written by a sequence
// of runs at increasing mesh refinement and prints the error norms and the
// observed convergence order between successive refinements.
func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s cmpFile ...\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "list the comparison files coarsest first\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	files := flag.Args()
	if len(files) < 2 {
		flag.Usage()
		os.Exit(1)
	}
	var prev *ErrorNorms
	for _, fn := range files {
		en := readComparison(fn)
		fmt.Printf("%s: N = %4d, RMS = %12.5e, MAX = %12.5e", fn, en.numPTS, en.rms, en.max)
		if prev != nil {
			// mesh spacing scales with 1/N along the sampled profile
			ratio := float64(en.numPTS) / float64(prev.numPTS)
			fmt.Printf(", order(RMS) = %5.2f, order(MAX) = %5.2f",
				math.Log(prev.rms/en.rms)/math.Log(ratio),
				math.Log(prev.max/en.max)/math.Log(ratio))
		}
		fmt.Printf("\n")
		prev = en
	}
}

type ErrorNorms struct {
	numPTS   int
	rms, max float64
}

func readComparison(fn string) (en *ErrorNorms) {
	var (
		records [][]string
		err     error
		f       *os.File
	)
	if f, err = os.Open(fn); err != nil {
		panic(err)
	}
	defer f.Close()
	r := csv.NewReader(bufio.NewReader(f))
	if records, err = r.ReadAll(); err != nil {
		panic(err)
	}
	en = &ErrorNorms{}
	var sumSq float64
	for i, rec := range records {
		if i == 0 {
			// header line
			continue
		}
		if len(rec) != 3 {
			panic(fmt.Errorf("%s: record %d has %d fields, want 3", fn, i, len(rec)))
		}
		var num, ref float64
		if num, err = strconv.ParseFloat(rec[1], 64); err != nil {
			panic(err)
		}
		if ref, err = strconv.ParseFloat(rec[2], 64); err != nil {
			panic(err)
		}
		diff := math.Abs(num - ref)
		sumSq += diff * diff
		if diff > en.max {
			en.max = diff
		}
		en.numPTS++
	}
	if en.numPTS == 0 {
		panic(fmt.Errorf("%s: no data records", fn))
	}
	en.rms = math.Sqrt(sumSq / float64(en.numPTS))
	return
}
