// Package out writes solution snapshots and profile comparisons as CSV
// files for postprocessing.
package out

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/poromech/gopore/FV2D"
)

// ExportSteps selects the time levels a run writes out: the first computed
// level plus a logarithmic spread to the final one. A two-level run has
// only one computed level, so only that is exported. Extra divisors add
// benchmark-specific levels, like the early level resolving the Mandel
// pressure overshoot.
func ExportSteps(nt int, extraDivisors ...int) (steps []int) {
	last := nt - 1
	if last <= 1 {
		return []int{1}
	}
	cands := []int{1, last / 8, last / 4, last / 2, last}
	for _, d := range extraDivisors {
		cands = append(cands, last/d)
	}
	seen := make(map[int]bool)
	for _, s := range cands {
		if s >= 1 && !seen[s] {
			seen[s] = true
			steps = append(steps, s)
		}
	}
	sort.Ints(steps)
	return
}

// cellU averages the displacement u to the center of cell (i,j). On the
// collocated arrangement it is stored there already; on the staggered
// arrangement the surrounding face values are averaged, falling back to the
// single interior face next to a boundary.
func cellU(g *FV2D.Grid, f *FV2D.Fields, step, i, j int) float64 {
	if g.Type == FV2D.Collocated {
		return f.U.At(g.U.At(i, j), step)
	}
	var sum float64
	var n int
	for _, fi := range []int{i, i + 1} {
		if k := g.U.At(fi, j); k >= 0 {
			sum += f.U.At(k, step)
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func cellV(g *FV2D.Grid, f *FV2D.Fields, step, i, j int) float64 {
	if g.Type == FV2D.Collocated {
		return f.V.At(g.V.At(i, j), step)
	}
	var sum float64
	var n int
	for _, fj := range []int{j, j + 1} {
		if k := g.V.At(i, fj); k >= 0 {
			sum += f.V.At(k, step)
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// WriteSnapshots writes one CSV per exported time level with the cell
// center coordinates and all field values
func WriteSnapshots(dir, prefix string, g *FV2D.Grid, f *FV2D.Fields, steps []int) error {
	for _, step := range steps {
		if step < 1 || step >= g.Nt {
			return fmt.Errorf("%w: export step %d outside (0,%d)", FV2D.ErrConfiguration, step, g.Nt)
		}
		fn := filepath.Join(dir, fmt.Sprintf("%s_%04d.csv", prefix, step))
		if err := writeSnapshot(fn, g, f, step); err != nil {
			return err
		}
	}
	return nil
}

func writeSnapshot(fn string, g *FV2D.Grid, f *FV2D.Fields, step int) error {
	file, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer file.Close()
	w := csv.NewWriter(file)
	defer w.Flush()

	header := []string{"x", "y", "u", "v", "p"}
	if f.HasFrac {
		header = append(header, "pFrac")
	}
	if err = w.Write(header); err != nil {
		return err
	}
	for n := 0; n < g.P.N(); n++ {
		c := g.P.Coord(n)
		rec := []string{
			fmtG(g.XP(c)),
			fmtG(g.YP(c)),
			fmtG(cellU(g, f, step, c.I, c.J)),
			fmtG(cellV(g, f, step, c.I, c.J)),
			fmtG(f.P.At(n, step)),
		}
		if f.HasFrac {
			rec = append(rec, fmtG(f.PFrac.At(n, step)))
		}
		if err = w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// WriteComparison writes a coordinate/numeric/reference triple, the format
// the benchmark validation plots consume
func WriteComparison(fn string, coord, numeric, reference []float64) error {
	if len(numeric) != len(coord) || len(reference) != len(coord) {
		return fmt.Errorf("%w: comparison columns disagree in length (%d, %d, %d)",
			FV2D.ErrConfiguration, len(coord), len(numeric), len(reference))
	}
	file, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer file.Close()
	w := csv.NewWriter(file)
	defer w.Flush()

	if err = w.Write([]string{"coord", "numeric", "reference"}); err != nil {
		return err
	}
	for i := range coord {
		if err = w.Write([]string{fmtG(coord[i]), fmtG(numeric[i]), fmtG(reference[i])}); err != nil {
			return err
		}
	}
	return nil
}

func fmtG(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
