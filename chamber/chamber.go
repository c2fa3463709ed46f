// Package chamber computes the acoustic impedance of lumped air volumes:
// the rear chamber behind a sealed or ported driver, and the optional
// throat/front chamber ahead of a horn driver (§4.3).
package chamber

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/wokhouse/viberesp-sub001/medium"
)

// MaxPipeModes bounds the number of front-chamber standing-wave terms a
// caller may request (§4.3).
const MaxPipeModes = 3

// Compliance returns the acoustic compliance C_ab = V/(ρ0*c^2) of an air
// volume v (m^3) in medium med.
func Compliance(v float64, med medium.Medium) float64 {
	return v / (med.Rho0 * med.C * med.C)
}

// Rear is the rear (sealed-box) chamber: a pure compliance, optionally
// paralleled with a leakage resistance set by a quality factor at the box
// resonance frequency (§4.3).
type Rear struct {
	Volume   float64 // V_rc, m^3
	QL       float64 // leakage quality factor at FBox; 0 disables the loss term
	FBox     float64 // box resonance frequency the QL loss is referred to, Hz
}

// Validate checks Rear's geometric invariants.
func (r Rear) Validate() error {
	if r.Volume <= 0 {
		return fmt.Errorf("chamber: rear volume must be positive, got %g", r.Volume)
	}
	if r.QL < 0 {
		return fmt.Errorf("chamber: rear QL must be non-negative, got %g", r.QL)
	}
	if r.QL > 0 && r.FBox <= 0 {
		return fmt.Errorf("chamber: rear FBox must be positive when QL loss is modelled, got %g", r.FBox)
	}
	return nil
}

// Impedance returns the rear chamber's acoustic impedance at frequency f:
// the compliance 1/(jωC_ab), optionally in parallel with a leakage
// resistance R_L = 1/(ωBox*C_ab*QL) evaluated at the box resonance.
func (r Rear) Impedance(f float64, med medium.Medium) (complex128, error) {
	if err := r.Validate(); err != nil {
		return 0, err
	}
	if f < 0 {
		return 0, fmt.Errorf("chamber: frequency must be non-negative, got %g", f)
	}
	cab := Compliance(r.Volume, med)
	omega := 2 * math.Pi * f
	var zCompliance complex128
	if omega == 0 {
		zCompliance = complex(0, math.Inf(1))
	} else {
		zCompliance = complex(0, -1/(omega*cab))
	}
	if r.QL <= 0 {
		return zCompliance, nil
	}
	omegaBox := 2 * math.Pi * r.FBox
	rLeak := complex(1/(omegaBox*cab*r.QL), 0)
	return parallel(zCompliance, rLeak), nil
}

// Front is the optional throat/front chamber ahead of a horn driver: a
// compliance, optionally with a small number of pipe-mode standing-wave
// terms when the chamber is long enough to behave like a short duct
// rather than a lumped volume (§4.3).
type Front struct {
	Volume    float64 // V_tc, m^3; 0 disables the front chamber entirely
	Length    float64 // L_fc, m; required when Modes>0
	Modes     int     // number of standing-wave terms to add, 0..MaxPipeModes
	ModeQ     float64 // quality factor of each pipe-mode resonance; 0 means lossless (infinite Q)
}

// Validate checks Front's geometric invariants.
func (fc Front) Validate() error {
	if fc.Volume < 0 {
		return fmt.Errorf("chamber: front volume must be non-negative, got %g", fc.Volume)
	}
	if fc.Modes < 0 || fc.Modes > MaxPipeModes {
		return fmt.Errorf("chamber: front pipe modes must be in [0,%d], got %d", MaxPipeModes, fc.Modes)
	}
	if fc.Modes > 0 && fc.Length <= 0 {
		return fmt.Errorf("chamber: front chamber length must be positive when pipe modes are requested, got %g", fc.Length)
	}
	return nil
}

// Impedance returns the front chamber's acoustic impedance at frequency f.
// A zero-volume front chamber is not modelled (infinite impedance, i.e. no
// parallel branch). Each requested pipe mode n (1-indexed) contributes a
// resonance at f_n = n*c/(2*L_fc), modelled as a compliance-like term that
// peaks there; see Validate for the mode-count bound (§4.3).
func (fc Front) Impedance(f float64, med medium.Medium) (complex128, error) {
	if err := fc.Validate(); err != nil {
		return 0, err
	}
	if f < 0 {
		return 0, fmt.Errorf("chamber: frequency must be non-negative, got %g", f)
	}
	if fc.Volume == 0 {
		return complex(math.Inf(1), 0), nil
	}
	cab := Compliance(fc.Volume, med)
	omega := 2 * math.Pi * f
	var z complex128
	if omega == 0 {
		z = complex(0, math.Inf(1))
	} else {
		z = complex(0, -1/(omega*cab))
	}
	for n := 1; n <= fc.Modes; n++ {
		fn := float64(n) * med.C / (2 * fc.Length)
		z = parallel(z, pipeModeImpedance(f, fn, fc.ModeQ, cab))
	}
	return z, nil
}

// pipeModeImpedance models one standing-wave term as a simple damped
// resonance in the compliance's reactance, peaking at fn. A zero ModeQ is
// treated as lossless (a pure reactive pole).
func pipeModeImpedance(f, fn, q, cab float64) complex128 {
	omega := 2 * math.Pi * f
	omegaN := 2 * math.Pi * fn
	if omega == 0 {
		return complex(0, math.Inf(1))
	}
	denom := complex(omegaN*omegaN-omega*omega, 0)
	if q > 0 {
		denom += complex(0, omega*omegaN/q)
	}
	// Scaled so the term's reactance has the same order of magnitude as
	// the lumped compliance it supplements, rather than an independent
	// arbitrary constant.
	return complex(0, omegaN*omegaN/(omega*cab)) / denom
}

// Parallel combines two acoustic impedance branches: 1/Z = 1/Z1 + 1/Z2.
// An infinite branch (open circuit) is treated as contributing nothing.
// Exported for enclosure solvers that combine chamber impedances with
// radiation and port impedances from other packages.
func Parallel(z1, z2 complex128) complex128 {
	return parallel(z1, z2)
}

func parallel(z1, z2 complex128) complex128 {
	if cmplx.IsInf(z1) {
		return z2
	}
	if cmplx.IsInf(z2) {
		return z1
	}
	return (z1 * z2) / (z1 + z2)
}
