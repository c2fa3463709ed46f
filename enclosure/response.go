// Package enclosure implements the sealed-box, ported-box, and horn
// solvers: pure functions from a driver, a typed geometry, and a
// frequency grid to a response bundle of electrical impedance, SPL,
// volume velocities and cone excursion (§4.7). There is no shared mutable
// state and no virtual dispatch between families — each family is a free
// function over its own geometry type.
package enclosure

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/wokhouse/viberesp-sub001/medium"
)

// ResponseBundle is the result of one solver call: parallel slices, one
// entry per frequency in the grid that produced it (§3).
type ResponseBundle struct {
	Frequencies []float64
	Ze          []complex128
	SPL         []float64
	Ud          []complex128
	Uout        []complex128
	Excursion   []float64
}

// ValidateFrequencyGrid checks the grid invariant: a strictly increasing,
// non-empty sequence of positive Hz values (§3).
func ValidateFrequencyGrid(freqs []float64) error {
	if len(freqs) == 0 {
		return fmt.Errorf("enclosure: frequency grid must not be empty")
	}
	prev := 0.0
	for i, f := range freqs {
		if f <= 0 {
			return fmt.Errorf("enclosure: frequency grid entry %d must be positive, got %g", i, f)
		}
		if i > 0 && f <= prev {
			return fmt.Errorf("enclosure: frequency grid must be strictly increasing, entry %d (%g) <= entry %d (%g)", i, f, i-1, prev)
		}
		prev = f
	}
	return nil
}

// splFromVolumeVelocity converts a volume velocity phasor u radiating
// through impedance zRad into on-axis SPL at 1 m (§4.6):
//
//	I = 0.5*Re(Z_rad)*|U|^2 / Ω
//	p = sqrt(I*ρ0*c)
//	SPL = 20*log10(p/p_ref)
func splFromVolumeVelocity(u, zRad complex128, med medium.Medium) float64 {
	power := 0.5 * real(zRad) * cmplx.Abs(u) * cmplx.Abs(u)
	if power <= 0 {
		return math.Inf(-1)
	}
	intensity := power / float64(med.Space)
	p := math.Sqrt(intensity * med.Rho0 * med.C)
	return 20 * math.Log10(p/med.PRef)
}
