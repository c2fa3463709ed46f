package enclosure

import (
	"fmt"

	"github.com/wokhouse/viberesp-sub001/chamber"
	"github.com/wokhouse/viberesp-sub001/diagnostics"
	"github.com/wokhouse/viberesp-sub001/driver"
	"github.com/wokhouse/viberesp-sub001/medium"
	"github.com/wokhouse/viberesp-sub001/radiation"
)

// NominalDriveVoltage is the reference 2.83 V (1 W into 8 Ω) drive level
// SPL is always reported at (§3).
const NominalDriveVoltage = 2.83

// Sealed is a sealed-box geometry: a single rear chamber (§3).
type Sealed struct {
	Vb float64 // m^3
	QL float64 // rear chamber leakage quality factor; 0 disables the loss term
}

// Validate checks Sealed's geometric invariants.
func (s Sealed) Validate() error {
	if s.Vb <= 0 {
		return fmt.Errorf("enclosure: sealed Vb must be positive, got %g", s.Vb)
	}
	return nil
}

// SolveSealed evaluates a sealed-box system over freqs at the nominal
// drive voltage (§4.7): Z_ac_load is the parallel of the rear-chamber
// compliance and the front radiation impedance, and SPL is computed from
// the diaphragm volume velocity U_d.
// sinks is accepted for signature parity with SolvePorted/SolveHorn,
// which do have numerically sensitive regimes to report (§7); a sealed
// box's single lumped compliance has no evanescent or near-singular
// branch, so sinks is otherwise unused here.
func SolveSealed(d driver.ThieleSmall, s Sealed, freqs []float64, med medium.Medium, backend radiation.Backend, sinks ...diagnostics.Sink) (ResponseBundle, error) {
	if err := d.Validate(); err != nil {
		return ResponseBundle{}, err
	}
	if err := s.Validate(); err != nil {
		return ResponseBundle{}, err
	}
	if err := ValidateFrequencyGrid(freqs); err != nil {
		return ResponseBundle{}, err
	}

	_, fc := SealedAlignment(d.Fs, d.Qts(), d.Vas, s.Vb)
	rear := chamber.Rear{Volume: s.Vb, QL: s.QL, FBox: fc}

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
		zRear, err := rear.Impedance(f, med)
		if err != nil {
			return ResponseBundle{}, fmt.Errorf("enclosure: sealed f=%g: %w", f, err)
		}
		zRad, err := radiation.Impedance(f, d.Sd, med, backend)
		if err != nil {
			return ResponseBundle{}, fmt.Errorf("enclosure: sealed f=%g: %w", f, err)
		}
		zAcLoad := chamber.Parallel(zRear, zRad)

		zMech, err := d.MechanicalImpedance(f, med, backend, zAcLoad)
		if err != nil {
			return ResponseBundle{}, fmt.Errorf("enclosure: sealed f=%g: %w", f, err)
		}
		zE := d.ElectricalImpedance(f, zMech)
		ud := d.VolumeVelocity(NominalDriveVoltage, zE, zMech)

		out.Ze[i] = zE
		out.Ud[i] = ud
		out.Uout[i] = ud // sealed box: the cone is the only radiator
		out.Excursion[i] = driver.Excursion(ud, f, d.Sd)
		out.SPL[i] = splFromVolumeVelocity(ud, zRad, med)
	}
	return out, nil
}
