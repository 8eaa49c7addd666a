package FV2D

import "fmt"

// InterpScheme selects how face values are reconstructed from cell-center
// values on the collocated arrangement. CDS is plain central averaging;
// PIS1D augments the averaged face displacement with a pressure-difference
// term derived from the local 1D momentum balance, which suppresses the
// checkerboard pressure modes central averaging admits. The staggered
// arrangement stores displacements on the faces it needs and ignores the
// selector for the primary coupling terms.
//
// The same scheme value must drive both the coefficient matrix and the
// independent-terms assembly; mixing schemes between the two produces
// spurious modes.
type InterpScheme uint8

const (
	CDS InterpScheme = iota
	PIS1D
)

var schemeNames = []string{"CDS", "1DPIS"}

func (s InterpScheme) String() string { return schemeNames[s] }

func ParseInterpScheme(name string) (InterpScheme, error) {
	for i, n := range schemeNames {
		if n == name {
			return InterpScheme(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown interpolation scheme %q", ErrConfiguration, name)
}
