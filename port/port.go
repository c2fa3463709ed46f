// Package port models a ported-box vent: its end-corrected acoustic mass,
// leakage resistance, and radiation loss into the medium (§4.4).
package port

import (
	"fmt"
	"math"

	"github.com/wokhouse/viberesp-sub001/medium"
	"github.com/wokhouse/viberesp-sub001/radiation"
)

// EndCorrection presets, exposed rather than auto-calibrated: k_end is a
// property of the design (flanged, flared, free-standing), not a tuning
// knob the solver picks for the user (§4.4).
const (
	EndCorrectionNone       = 0.0
	EndCorrectionUnflanged  = 0.6
	EndCorrectionFlanged    = 0.85
	EndCorrectionFlared     = 1.2
	EndCorrectionWellFlared = 1.46
	EndCorrectionMax        = 1.7
)

// DefaultLeakageQ is Thiele's conventional leakage quality factor when no
// measured value is available.
const DefaultLeakageQ = 7.0

// Port is a single cylindrical-equivalent vent of area SP (m^2) and
// physical length LP (m), with a single end-correction term applied per
// §3/§4.4's single-port model.
type Port struct {
	SP   float64
	LP   float64
	KEnd float64
	QL   float64 // leakage resistance quality factor; 0 uses DefaultLeakageQ
}

// Validate checks Port's geometric invariants.
func (p Port) Validate() error {
	if p.SP <= 0 {
		return fmt.Errorf("port: area must be positive, got %g", p.SP)
	}
	if p.LP <= 0 {
		return fmt.Errorf("port: length must be positive, got %g", p.LP)
	}
	if p.KEnd < 0 || p.KEnd > EndCorrectionMax {
		return fmt.Errorf("port: end correction must be in [0,%.2f], got %g", EndCorrectionMax, p.KEnd)
	}
	return nil
}

func (p Port) leakageQ() float64 {
	if p.QL == 0 {
		return DefaultLeakageQ
	}
	return p.QL
}

// EffectiveLength returns L_eff = L_p + k_end*sqrt(S_p/π), the
// end-corrected acoustic length. Omitting this shifts the predicted tuning
// frequency from the measured one by 20-30% (§4.7).
func (p Port) EffectiveLength() float64 {
	return p.LP + p.KEnd*math.Sqrt(p.SP/math.Pi)
}

// AcousticMass returns M_ap = ρ0*L_eff/S_p.
func (p Port) AcousticMass(med medium.Medium) float64 {
	return med.Rho0 * p.EffectiveLength() / p.SP
}

// LeakageResistance returns R_al = (ρ0*c/S_p)/Q_L.
func (p Port) LeakageResistance(med medium.Medium) float64 {
	return (med.Rho0 * med.C / p.SP) / p.leakageQ()
}

// Impedance returns the port's acoustic impedance branch
//
//	Z_port = jωM_ap + R_al + Z_rad_port
//
// where Z_rad_port is the radiation impedance (§4.1) of a piston of area
// S_p into med at frequency f (§4.4).
func (p Port) Impedance(f float64, med medium.Medium, backend radiation.Backend) (complex128, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if f < 0 {
		return 0, fmt.Errorf("port: frequency must be non-negative, got %g", f)
	}
	omega := 2 * math.Pi * f
	zRad, err := radiation.Impedance(f, p.SP, med, backend)
	if err != nil {
		return 0, fmt.Errorf("port: %w", err)
	}
	return complex(p.LeakageResistance(med), omega*p.AcousticMass(med)) + zRad, nil
}

// HelmholtzFrequency returns f_b = (c/2π)*sqrt(S_p/(L_eff*V_b)), the tuning
// frequency of the port against a box of volume vB (m^3).
func (p Port) HelmholtzFrequency(vB float64, med medium.Medium) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if vB <= 0 {
		return 0, fmt.Errorf("port: box volume must be positive, got %g", vB)
	}
	return (med.C / (2 * math.Pi)) * math.Sqrt(p.SP/(p.EffectiveLength()*vB)), nil
}
