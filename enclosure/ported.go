package enclosure

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/wokhouse/viberesp-sub001/chamber"
	"github.com/wokhouse/viberesp-sub001/diagnostics"
	"github.com/wokhouse/viberesp-sub001/driver"
	"github.com/wokhouse/viberesp-sub001/medium"
	"github.com/wokhouse/viberesp-sub001/port"
	"github.com/wokhouse/viberesp-sub001/radiation"
)

// HelmholtzToleranceHz is the maximum allowed disagreement between a
// ported geometry's declared F_b and the F_b implied by its own (V_b,
// S_p, L_eff) before it is flagged inconsistent (§3).
const HelmholtzToleranceHz = 0.5

// Ported is a vented-box geometry: a shared box volume, a target tuning
// frequency, a port, and a combined box-loss quality factor split into
// leakage, absorption and port-friction components per convention (§3).
type Ported struct {
	Vb   float64 // m^3
	Fb   float64 // target tuning, Hz
	Port port.Port
	QL   float64 // box leakage Q
	QA   float64 // absorption Q
	QP   float64 // port friction Q
}

// Validate checks Ported's geometric invariants, including that the
// Helmholtz tuning implied by (Vb, Port) matches the declared Fb within
// HelmholtzToleranceHz.
func (p Ported) Validate() error {
	if p.Vb <= 0 {
		return fmt.Errorf("enclosure: ported Vb must be positive, got %g", p.Vb)
	}
	if p.Fb <= 0 {
		return fmt.Errorf("enclosure: ported Fb must be positive, got %g", p.Fb)
	}
	if err := p.Port.Validate(); err != nil {
		return err
	}
	implied, err := p.Port.HelmholtzFrequency(p.Vb, medium.Standard())
	if err != nil {
		return err
	}
	if math.Abs(implied-p.Fb) > HelmholtzToleranceHz {
		return fmt.Errorf("enclosure: ported Fb=%g Hz inconsistent with geometry-implied Helmholtz frequency %g Hz (tolerance %g Hz)", p.Fb, implied, HelmholtzToleranceHz)
	}
	return nil
}

// combinedLossQ folds the three classical vented-box loss mechanisms
// (leakage, absorption, port friction) into the single quality factor a
// lumped chamber.Rear loss resistance expects: 1/Q = 1/Q_L+1/Q_A+1/Q_P,
// the standard combination from vented-box alignment theory. A zero
// component is treated as lossless (no contribution), not infinite loss.
func combinedLossQ(ql, qa, qp float64) float64 {
	inv := 0.0
	any := false
	for _, q := range []float64{ql, qa, qp} {
		if q > 0 {
			inv += 1 / q
			any = true
		}
	}
	if !any {
		return 0
	}
	return 1 / inv
}

// SolvePorted evaluates a vented-box system over freqs at the nominal
// drive voltage (§4.7). The box compliance and port present a common
// pressure node; solving the Kirchhoff balance there reduces to the
// driver seeing the parallel combination of the box compliance and the
// port impedance as its acoustic load, and the port volume velocity
// following as a current divider of the driver's volume velocity.
// Radiated pressure at 1 m is the coherent complex sum of the cone and
// port contributions, not a magnitude or power sum (§4.7).
func SolvePorted(d driver.ThieleSmall, p Ported, freqs []float64, med medium.Medium, backend radiation.Backend, sinks ...diagnostics.Sink) (ResponseBundle, error) {
	if err := d.Validate(); err != nil {
		return ResponseBundle{}, err
	}
	if err := p.Validate(); err != nil {
		return ResponseBundle{}, err
	}
	if err := ValidateFrequencyGrid(freqs); err != nil {
		return ResponseBundle{}, err
	}
	sink := diagnostics.Resolve(sinks...)

	box := chamber.Rear{Volume: p.Vb, QL: combinedLossQ(p.QL, p.QA, p.QP), FBox: p.Fb}

	n := len(freqs)
	out := ResponseBundle{
		Frequencies: freqs,
		Ze:          make([]complex128, n),
		SPL:         make([]float64, n),
		Ud:          make([]complex128, n),
		Uout:        make([]complex128, n),
		Excursion:   make([]float64, n),
	}

	for i, f := range freqs {
		zBox, err := box.Impedance(f, med)
		if err != nil {
			return ResponseBundle{}, fmt.Errorf("enclosure: ported f=%g: %w", f, err)
		}
		zPort, err := p.Port.Impedance(f, med, backend)
		if err != nil {
			return ResponseBundle{}, fmt.Errorf("enclosure: ported f=%g: %w", f, err)
		}
		zAcLoad := chamber.Parallel(zBox, zPort)

		denom := zPort + zBox
		scale := cmplx.Abs(zPort) + cmplx.Abs(zBox)
		if scale > 0 && cmplx.Abs(denom)/scale < singularityThreshold {
			sink.Emit(diagnostics.Event{
				Kind:    diagnostics.NumericalRegime,
				Message: "port/box impedance sum near singular",
				Fields:  map[string]any{"frequency": f, "denominator_magnitude": cmplx.Abs(denom)},
			})
		}

		zMech, err := d.MechanicalImpedance(f, med, backend, zAcLoad)
		if err != nil {
			return ResponseBundle{}, fmt.Errorf("enclosure: ported f=%g: %w", f, err)
		}
		zE := d.ElectricalImpedance(f, zMech)
		ud := d.VolumeVelocity(NominalDriveVoltage, zE, zMech)
		uPort := ud * zBox / (zPort + zBox)

		zRadCone, err := radiation.Impedance(f, d.Sd, med, backend)
		if err != nil {
			return ResponseBundle{}, fmt.Errorf("enclosure: ported f=%g: %w", f, err)
		}
		zRadPort, err := radiation.Impedance(f, p.Port.SP, med, backend)
		if err != nil {
			return ResponseBundle{}, fmt.Errorf("enclosure: ported f=%g: %w", f, err)
		}

		out.Ze[i] = zE
		out.Ud[i] = ud
		out.Uout[i] = uPort
		out.Excursion[i] = driver.Excursion(ud, f, d.Sd)
		out.SPL[i] = splFromCoherentSum(ud, zRadCone, uPort, zRadPort, med)
	}
	return out, nil
}

// splFromCoherentSum combines the cone and port radiated pressure as a
// complex phasor sum before converting to SPL — both radiate coherently
// at low frequency, so magnitude or power summation understates the
// actual peak (§4.7).
func splFromCoherentSum(uCone, zRadCone, uPort, zRadPort complex128, med medium.Medium) float64 {
	pCone := coherentPressure(uCone, zRadCone, med)
	pPort := coherentPressure(uPort, zRadPort, med)
	p := pCone + pPort
	mag := math.Hypot(real(p), imag(p))
	if mag <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(mag/med.PRef)
}

// coherentPressure returns the complex on-axis pressure phasor at 1 m a
// volume velocity u produces radiating through impedance zRad, preserving
// phase so contributions from multiple sources can be summed before
// taking magnitude (§4.7): p = U*sqrt(Re(Z_rad)*ρ0*c/(2Ω)), carrying U's
// phase.
func coherentPressure(u, zRad complex128, med medium.Medium) complex128 {
	re := real(zRad)
	if re <= 0 {
		return 0
	}
	scale := math.Sqrt(re * med.Rho0 * med.C / (2 * float64(med.Space)))
	return u * complex(scale, 0)
}
