// Package driver implements the electro-mechano-acoustical model of a
// moving-coil transducer characterised by Thiele-Small parameters: its
// mechanical and electrical impedance, and the volume velocity and cone
// excursion a drive voltage produces against a given acoustic load (§4.5).
package driver

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/wokhouse/viberesp-sub001/medium"
	"github.com/wokhouse/viberesp-sub001/radiation"
)

// ThieleSmall is a driver's small-signal parameter set.
type ThieleSmall struct {
	ID   string
	Fs   float64 // Hz
	Qes  float64
	Qms  float64
	Vas  float64 // m^3
	Sd   float64 // m^2
	Re   float64 // ohm
	BL   float64 // T*m
	Mmd  float64 // kg, diaphragm-only mass
	Le   float64 // H
	Re2  float64 // ohm, Leach lossy-inductor parameter; 0 disables the lossy model
	Xmax float64 // m, informational
}

// Qts returns the derived total quality factor Qes*Qms/(Qes+Qms).
func (d ThieleSmall) Qts() float64 {
	return d.Qes * d.Qms / (d.Qes + d.Qms)
}

// Validate checks the Thiele-Small invariants (§3).
func (d ThieleSmall) Validate() error {
	if d.Fs <= 0 {
		return fmt.Errorf("driver: Fs must be positive, got %g", d.Fs)
	}
	if d.Qes <= 0 {
		return fmt.Errorf("driver: Qes must be positive, got %g", d.Qes)
	}
	if d.Qms <= 0 {
		return fmt.Errorf("driver: Qms must be positive, got %g", d.Qms)
	}
	if d.Qts() > d.Qms {
		return fmt.Errorf("driver: derived Qts (%g) must not exceed Qms (%g)", d.Qts(), d.Qms)
	}
	if d.Vas <= 0 {
		return fmt.Errorf("driver: Vas must be positive, got %g", d.Vas)
	}
	if d.Sd <= 0 {
		return fmt.Errorf("driver: Sd must be positive, got %g", d.Sd)
	}
	if d.Re <= 0 {
		return fmt.Errorf("driver: Re must be positive, got %g", d.Re)
	}
	if d.BL <= 0 {
		return fmt.Errorf("driver: BL must be positive, got %g", d.BL)
	}
	if d.Mmd <= 0 {
		return fmt.Errorf("driver: Mmd must be positive, got %g", d.Mmd)
	}
	if d.Le < 0 {
		return fmt.Errorf("driver: Le must be non-negative, got %g", d.Le)
	}
	if d.Re2 < 0 {
		return fmt.Errorf("driver: Re2 must be non-negative, got %g", d.Re2)
	}
	return nil
}

// Cms returns the mechanical compliance C_ms = V_as/(ρ0*c^2*Sd^2).
func (d ThieleSmall) Cms(med medium.Medium) float64 {
	return d.Vas / (med.Rho0 * med.C * med.C * d.Sd * d.Sd)
}

// Rms returns the mechanical resistance implied by Qms at resonance:
// R_ms = sqrt(M_ms/C_ms)/Q_ms, using the fixed-point total moving mass.
func (d ThieleSmall) Rms(med medium.Medium, backend radiation.Backend) (float64, error) {
	mms, err := d.Mms(med, backend)
	if err != nil {
		return 0, err
	}
	cms := d.Cms(med)
	return math.Sqrt(mms/cms) / d.Qms, nil
}

// mmsIterations is the number of fixed-point passes used to resolve M_ms
// against the radiation mass at resonance. m_rad is evaluated at the fixed
// frequency F_s and does not depend on M_ms, so every pass yields the same
// value as the first.
const mmsIterations = 8

// Mms solves the fixed point M_ms = M_md + 2*m_rad(F_s) for the total
// moving mass, where m_rad is the front-side radiation reactive mass
// (§4.5) and the factor 2 accounts for both the front and back (assumed
// equal-area, free-air) radiation loading of an unenclosed diaphragm. All
// enclosure solvers use this two-sided value.
func (d ThieleSmall) Mms(med medium.Medium, backend radiation.Backend) (float64, error) {
	mms := d.Mmd
	for i := 0; i < mmsIterations; i++ {
		mrad, err := radiation.ReactiveMass(d.Fs, d.Sd, med, backend)
		if err != nil {
			return 0, err
		}
		mms = d.Mmd + 2*mrad
	}
	return mms, nil
}

// MechanicalImpedance returns
//
//	Z_mech = R_ms + jωM_ms + 1/(jωC_ms) + Sd^2*Z_ac_load
//
// at frequency f (Hz, ω=2πf), given the acoustic load zAcLoad the
// diaphragm sees (§4.5).
func (d ThieleSmall) MechanicalImpedance(f float64, med medium.Medium, backend radiation.Backend, zAcLoad complex128) (complex128, error) {
	bare, err := d.bareMechanicalImpedance(f, med, backend)
	if err != nil {
		return 0, err
	}
	return bare + complex(d.Sd*d.Sd, 0)*zAcLoad, nil
}

// MechanicalImpedanceFromReflectedLoad adds an already Sd^2-reflected
// acoustic load (as produced by ReflectThroatLoad) directly to the bare
// suspension/mass impedance, without a further Sd^2 multiplication. Horn
// solvers use this instead of MechanicalImpedance because the throat
// reflection is computed once, centrally, by ReflectThroatLoad (§4.5).
func (d ThieleSmall) MechanicalImpedanceFromReflectedLoad(f float64, med medium.Medium, backend radiation.Backend, reflectedZacLoad complex128) (complex128, error) {
	bare, err := d.bareMechanicalImpedance(f, med, backend)
	if err != nil {
		return 0, err
	}
	return bare + reflectedZacLoad, nil
}

// bareMechanicalImpedance returns R_ms + jωM_ms + 1/(jωC_ms), the
// suspension and mass impedance before any acoustic load is added.
func (d ThieleSmall) bareMechanicalImpedance(f float64, med medium.Medium, backend radiation.Backend) (complex128, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}
	rms, err := d.Rms(med, backend)
	if err != nil {
		return 0, err
	}
	mms, err := d.Mms(med, backend)
	if err != nil {
		return 0, err
	}
	cms := d.Cms(med)
	omega := 2 * math.Pi * f
	var zCompliance complex128
	if omega == 0 {
		zCompliance = complex(0, math.Inf(-1))
	} else {
		zCompliance = complex(0, -1/(omega*cms))
	}
	zMass := complex(0, omega*mms)
	return complex(rms, 0) + zMass + zCompliance, nil
}

// LossyInductance returns the Leach (2002) model of the voice-coil's
// frequency-dependent electrical impedance:
//
//	Z_L = (jω*Le*Re2)/(Re2+jω*Le)
//
// or, when Re2 is 0 (no lossy parameters supplied), the simple jωLe.
func (d ThieleSmall) LossyInductance(f float64) complex128 {
	omega := 2 * math.Pi * f
	zL := complex(0, omega*d.Le)
	if d.Re2 <= 0 {
		return zL
	}
	return (zL * complex(d.Re2, 0)) / (complex(d.Re2, 0) + zL)
}

// ElectricalImpedance returns
//
//	Z_e = R_e + Z_L(ω) + (BL)^2/Z_mech
//
// given the mechanical impedance zMech at the same frequency (§4.5).
func (d ThieleSmall) ElectricalImpedance(f float64, zMech complex128) complex128 {
	return complex(d.Re, 0) + d.LossyInductance(f) + complex(d.BL*d.BL, 0)/zMech
}

// VolumeVelocity returns the diaphragm volume velocity
//
//	U_d = (BL*V/Z_e)*Sd/Z_mech
//
// for drive voltage v (volts, phasor magnitude on the real axis) at
// electrical impedance zE and mechanical impedance zMech (§4.5).
func (d ThieleSmall) VolumeVelocity(v float64, zE, zMech complex128) complex128 {
	force := complex(d.BL*v, 0) / zE
	return force * complex(d.Sd, 0) / zMech
}

// Excursion returns the cone excursion magnitude |x| = |U_d|/(ω*Sd).
func Excursion(uD complex128, f, sd float64) float64 {
	omega := 2 * math.Pi * f
	if omega == 0 {
		return math.Inf(1)
	}
	return cmplx.Abs(uD) / (omega * sd)
}

// ReflectThroatLoad returns the acoustic load a horn driver's diaphragm
// sees given the horn's throat impedance, centralising the
// compression-ratio coupling that was a repeated source of error in the
// original system (§4.5): Z_ac_load = Z_throat*S_throat^2*(Sd/S_throat)^2,
// which always simplifies to Z_throat*Sd^2 regardless of S_throat. The
// S_throat argument is kept so call sites read as the physical coupling
// they are, even though it cancels algebraically.
func ReflectThroatLoad(zThroat complex128, sThroat, sd float64) complex128 {
	return zThroat * complex(sd*sd, 0)
}
