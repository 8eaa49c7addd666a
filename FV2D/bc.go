package FV2D

import "fmt"

// Side of the rectangular domain. The benchmark tables start on "north" and
// proceed counterclockwise.
type Side uint8

const (
	North Side = iota
	West
	South
	East
	numSides
)

var sideNames = []string{"north", "west", "south", "east"}

func (s Side) String() string { return sideNames[s] }

// sideOf translates a boundary face status into the side it belongs to
func sideOf(fs FaceStatus) Side {
	switch fs {
	case FaceNorth:
		return North
	case FaceWest:
		return West
	case FaceSouth:
		return South
	default:
		return East
	}
}

// VarKind selects a variable inside the BC table and the global ordering
type VarKind uint8

const (
	VarU VarKind = iota
	VarV
	VarP
	VarPFrac
	numVarKinds
)

var varKindNames = []string{"u", "v", "p", "pFrac"}

func (k VarKind) String() string { return varKindNames[k] }

// BCKind is the 3-way boundary condition encoding of the benchmark tables:
// Dirichlet=1, Neumann=0, Stress/Flux=-1.
type BCKind int8

const (
	Neumann    BCKind = 0
	Dirichlet  BCKind = 1
	StressFlux BCKind = -1
)

func (k BCKind) String() string {
	switch k {
	case Dirichlet:
		return "Dirichlet"
	case Neumann:
		return "Neumann"
	default:
		return "Stress/Flux"
	}
}

// BC is one boundary condition entry: its kind and prescribed value.
// Dirichlet prescribes the variable on the boundary; Neumann prescribes its
// outward normal gradient; StressFlux prescribes the total normal traction
// (momentum rows) or the outward volumetric flux (pressure rows).
type BC struct {
	Kind  BCKind
	Value float64
}

// BCTable is the {side, variable} -> condition table consumed by both
// assemblers. Entries can additionally be overridden per boundary cell,
// which is how the strip footing prescribes a loaded, sealed patch on an
// otherwise traction-free drained surface.
type BCTable struct {
	entries   [numSides][numVarKinds]BC
	set       [numSides][numVarKinds]bool
	overrides [numSides][numVarKinds]map[int]BC
}

func (t *BCTable) Set(s Side, k VarKind, bc BC) *BCTable {
	t.entries[s][k] = bc
	t.set[s][k] = true
	return t
}

// SetAt overrides the condition for one boundary cell. The along index
// counts cells west to east on the north/south sides and south to north on
// the west/east sides.
func (t *BCTable) SetAt(s Side, k VarKind, along int, bc BC) *BCTable {
	if t.overrides[s][k] == nil {
		t.overrides[s][k] = make(map[int]BC)
	}
	t.overrides[s][k][along] = bc
	return t
}

// Get fails when the entry was never provided; a missing entry for a
// required side/variable is a topology/scheme mismatch, not a default.
func (t *BCTable) Get(s Side, k VarKind) (BC, error) {
	if !t.set[s][k] {
		return BC{}, fmt.Errorf("%w: no boundary condition for %v on %v side", ErrAssembly, k, s)
	}
	return t.entries[s][k], nil
}

// At resolves the condition for one boundary cell, honoring overrides
func (t *BCTable) At(s Side, k VarKind, along int) (BC, error) {
	if m := t.overrides[s][k]; m != nil {
		if b, ok := m[along]; ok {
			return b, nil
		}
	}
	return t.Get(s, k)
}

// NewBCTable builds the table from per-side kind/value rows ordered north,
// west, south, east, each row ordered u, v, p (and optionally pFrac), the
// exact shape of the benchmark driver tables.
func NewBCTable(kinds [4][]BCKind, values [4][]float64) (t *BCTable, err error) {
	t = &BCTable{}
	for s := 0; s < int(numSides); s++ {
		if len(kinds[s]) != len(values[s]) {
			return nil, fmt.Errorf("%w: side %v has %d BC kinds but %d values",
				ErrConfiguration, Side(s), len(kinds[s]), len(values[s]))
		}
		for k, kind := range kinds[s] {
			if kind != Dirichlet && kind != Neumann && kind != StressFlux {
				return nil, fmt.Errorf("%w: side %v variable %v: invalid BC kind %d",
					ErrConfiguration, Side(s), VarKind(k), kind)
			}
			t.Set(Side(s), VarKind(k), BC{Kind: kind, Value: values[s][k]})
		}
	}
	return
}
