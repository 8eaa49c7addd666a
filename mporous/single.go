// Package mporous derives the poroelastic coefficients the assembly
// consumes from raw laboratory properties: shear and bulk moduli, solid
// grain and fluid compressibilities, porosity, permeability and densities.
package mporous

import (
	"errors"
	"fmt"

	"github.com/poromech/gopore/FV2D"
)

// ErrProperties marks physically inadmissible material data
var ErrProperties = errors.New("inadmissible material properties")

// Properties are the raw medium properties in the order the data files
// list them: G, K, Ks, rho_s, Kf, phi, kappa, mu, rho_f.
type Properties struct {
	G     float64 // shear modulus
	K     float64 // drained bulk modulus
	Ks    float64 // solid grain bulk modulus
	RhoS  float64 // solid density
	Kf    float64 // fluid bulk modulus
	Phi   float64 // porosity
	Kappa float64 // intrinsic permeability
	Mu    float64 // fluid viscosity
	RhoF  float64 // fluid density
}

// Model carries the derived single porosity coefficients
type Model struct {
	Props Properties

	Alpha  float64 // Biot-Willis coefficient 1 - K/Ks
	Q      float64 // storage modulus, 1/Q = phi/Kf + (alpha-phi)/Ks
	Lambda float64 // Lame first parameter
	Mv     float64 // confined modulus 2G + lambda
	Consol float64 // consolidation coefficient
	Rho    float64 // mixture density
}

func NewModel(p Properties) (m *Model, err error) {
	switch {
	case p.G <= 0 || p.K <= 0 || p.Ks <= 0 || p.Kf <= 0:
		return nil, fmt.Errorf("%w: moduli must be positive (G=%g K=%g Ks=%g Kf=%g)",
			ErrProperties, p.G, p.K, p.Ks, p.Kf)
	case p.Phi <= 0 || p.Phi >= 1:
		return nil, fmt.Errorf("%w: porosity %g outside (0,1)", ErrProperties, p.Phi)
	case p.Kappa <= 0 || p.Mu <= 0:
		return nil, fmt.Errorf("%w: permeability %g and viscosity %g must be positive",
			ErrProperties, p.Kappa, p.Mu)
	case p.K > p.Ks:
		return nil, fmt.Errorf("%w: drained bulk modulus %g exceeds the grain modulus %g",
			ErrProperties, p.K, p.Ks)
	case p.RhoS < 0 || p.RhoF < 0:
		return nil, fmt.Errorf("%w: negative density", ErrProperties)
	}
	m = &Model{Props: p}
	m.Alpha = 1 - p.K/p.Ks
	m.Q = 1 / (p.Phi/p.Kf + (m.Alpha-p.Phi)/p.Ks)
	m.Lambda = p.K - 2*p.G/3
	m.Mv = p.K + 4*p.G/3
	m.Consol = (p.Kappa / p.Mu) / (1/m.Q + m.Alpha*m.Alpha/m.Mv)
	m.Rho = p.Phi*p.RhoF + (1-p.Phi)*p.RhoS
	return
}

// Constants packs the coefficients for the assemblers
func (m *Model) Constants(gravity float64) FV2D.Constants {
	return FV2D.Constants{
		G:       m.Props.G,
		Lambda:  m.Lambda,
		Alpha:   m.Alpha,
		Perm:    m.Props.Kappa,
		Visc:    m.Props.Mu,
		Q:       m.Q,
		Rho:     m.Rho,
		Gravity: gravity,
	}
}

// UndrainedPressure is the instantaneous pore pressure response to a sudden
// confined load sigmab (compression negative)
func (m *Model) UndrainedPressure(sigmab float64) float64 {
	return -m.Alpha * m.Q * sigmab / (m.Mv + m.Alpha*m.Alpha*m.Q)
}

// UndrainedStrain is the matching instantaneous vertical strain
func (m *Model) UndrainedStrain(sigmab float64) float64 {
	return (sigmab + m.Alpha*m.UndrainedPressure(sigmab)) / m.Mv
}

// StableTimeStep is the smallest step the pressure field resolves without
// spurious early-time oscillations on a mesh of spacing h
func (m *Model) StableTimeStep(h float64) float64 {
	return h * h / (6 * m.Consol)
}
