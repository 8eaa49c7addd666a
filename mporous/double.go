package mporous

import (
	"fmt"

	"github.com/poromech/gopore/FV2D"
)

// DualProperties extend the raw data with the pore/fracture partition: the
// fraction of total porosity and permeability assigned to the pore network,
// and the leakage shape factor (zero disables inter-porosity flow).
type DualProperties struct {
	Properties
	PorePorosityFraction float64
	PorePermFraction     float64
	ShapeFactor          float64
}

// DualModel carries the derived dual porosity coefficients. The elastic
// skeleton is shared with the single porosity model built from the total
// porosity; the flow side splits into a pore and a fracture network coupled
// through the storage matrix S and the leakage coefficient.
type DualModel struct {
	Model

	PhiPore, PhiFrac   float64
	PermPore, PermFrac float64
	PsiPore, PsiFrac   float64
	S11, S12, S22      float64
	Leak               float64
}

func NewDualModel(dp DualProperties) (d *DualModel, err error) {
	m, err := NewModel(dp.Properties)
	if err != nil {
		return nil, err
	}
	switch {
	case dp.PorePorosityFraction <= 0 || dp.PorePorosityFraction >= 1:
		return nil, fmt.Errorf("%w: pore porosity fraction %g outside (0,1)",
			ErrProperties, dp.PorePorosityFraction)
	case dp.PorePermFraction <= 0 || dp.PorePermFraction >= 1:
		return nil, fmt.Errorf("%w: pore permeability fraction %g outside (0,1)",
			ErrProperties, dp.PorePermFraction)
	case dp.ShapeFactor < 0:
		return nil, fmt.Errorf("%w: negative shape factor %g", ErrProperties, dp.ShapeFactor)
	}
	d = &DualModel{Model: *m}
	p := dp.Properties
	d.PhiPore = dp.PorePorosityFraction * p.Phi
	d.PhiFrac = p.Phi - d.PhiPore
	d.PermPore = dp.PorePermFraction * p.Kappa
	d.PermFrac = p.Kappa - d.PermPore
	d.PsiPore = d.PhiPore / p.Phi
	d.PsiFrac = d.PhiFrac / p.Phi

	cs := 1 / p.Ks
	cf := 1 / p.Kf
	d.S11 = d.PhiPore*cf + (d.PsiPore*d.Alpha-d.PhiPore)*cs
	d.S22 = d.PhiFrac*cf + (d.PsiFrac*d.Alpha-d.PhiFrac)*cs
	d.S12 = -d.PsiPore * d.PsiFrac * d.Alpha * cs
	d.Leak = dp.ShapeFactor * d.PermPore / p.Mu

	if err = d.checkStorage(); err != nil {
		return nil, err
	}
	return
}

// SetCrossStorage replaces the membrane cross-storage coefficient; the
// leaking benchmark couples the networks through the drained confined
// modulus instead of the grain compressibility.
func (d *DualModel) SetCrossStorage(s12 float64) error {
	d.S12 = s12
	return d.checkStorage()
}

// checkStorage enforces positive definiteness of the storage matrix; an
// indefinite S makes the undrained response ill posed.
func (d *DualModel) checkStorage() error {
	if d.S11 <= 0 || d.S11*d.S22-d.S12*d.S12 <= 0 {
		return fmt.Errorf("%w: storage matrix [%g %g; %g %g] is not positive definite",
			ErrProperties, d.S11, d.S12, d.S12, d.S22)
	}
	return nil
}

// DualConstants packs the dual porosity coupling block for the assemblers;
// the single porosity Constants (with the pore network permeability) carry
// the rest.
func (d *DualModel) DualConstants() FV2D.DualConstants {
	return FV2D.DualConstants{
		S11: d.S11, S12: d.S12, S22: d.S22,
		PsiPore: d.PsiPore, PsiFrac: d.PsiFrac,
		PermFrac: d.PermFrac,
		Leak:     d.Leak,
	}
}

// Constants mirrors Model.Constants with the pore network permeability
func (d *DualModel) Constants(gravity float64) FV2D.Constants {
	c := d.Model.Constants(gravity)
	c.Perm = d.PermPore
	return c
}

// UndrainedPressures solves the instantaneous two-network response to a
// sudden confined load: zero fluid content change in both networks plus the
// confined momentum balance.
func (d *DualModel) UndrainedPressures(sigmab float64) (pPore, pFrac float64) {
	// (S + psi psi^T alpha^2/Mv) p = -psi alpha sigmab / Mv
	a11 := d.S11 + d.PsiPore*d.PsiPore*d.Alpha*d.Alpha/d.Mv
	a12 := d.S12 + d.PsiPore*d.PsiFrac*d.Alpha*d.Alpha/d.Mv
	a22 := d.S22 + d.PsiFrac*d.PsiFrac*d.Alpha*d.Alpha/d.Mv
	b1 := -d.PsiPore * d.Alpha * sigmab / d.Mv
	b2 := -d.PsiFrac * d.Alpha * sigmab / d.Mv
	det := a11*a22 - a12*a12
	pPore = (b1*a22 - b2*a12) / det
	pFrac = (a11*b2 - a12*b1) / det
	return
}

// UndrainedStrain is the instantaneous vertical strain under the undrained
// two-network pressures
func (d *DualModel) UndrainedStrain(sigmab float64) float64 {
	p1, p2 := d.UndrainedPressures(sigmab)
	return (sigmab + d.Alpha*(d.PsiPore*p1+d.PsiFrac*p2)) / d.Mv
}
