package enclosure

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/wokhouse/viberesp-sub001/chamber"
	"github.com/wokhouse/viberesp-sub001/diagnostics"
	"github.com/wokhouse/viberesp-sub001/driver"
	"github.com/wokhouse/viberesp-sub001/horn"
	"github.com/wokhouse/viberesp-sub001/medium"
	"github.com/wokhouse/viberesp-sub001/radiation"
)

// singularityThreshold is the relative size below which a horn's
// throat-impedance denominator (C*Z_mouth+D) is reported as a numerically
// sensitive regime rather than silently evaluated (§7).
const singularityThreshold = 1e-6

// AreaContinuityTolerance is the fractional tolerance adjacent horn
// segments' areas must agree within (§3).
const AreaContinuityTolerance = 0.01

// Horn is a horn-loaded geometry: an ordered, non-empty sequence of
// segments, throat-to-mouth, with optional throat/front and rear
// chambers (§3).
type Horn struct {
	Segments      []horn.Segment
	ThroatChamber chamber.Front
	RearChamber   chamber.Rear
}

// ThroatArea returns the area of the first segment's throat face.
func (h Horn) ThroatArea() float64 {
	return h.Segments[0].SIn
}

// MouthArea returns the area of the last segment's mouth face.
func (h Horn) MouthArea() float64 {
	return h.Segments[len(h.Segments)-1].SOut
}

// Validate checks Horn's geometric invariants: a non-empty segment
// sequence, and area continuity between adjacent segments within
// AreaContinuityTolerance (§3).
func (h Horn) Validate() error {
	if len(h.Segments) == 0 {
		return fmt.Errorf("enclosure: horn geometry must have at least one segment")
	}
	for i, seg := range h.Segments {
		if err := seg.Validate(); err != nil {
			return fmt.Errorf("enclosure: horn segment %d: %w", i, err)
		}
		if i > 0 {
			prevOut := h.Segments[i-1].SOut
			if math.Abs(seg.SIn-prevOut) > AreaContinuityTolerance*prevOut {
				return fmt.Errorf("enclosure: horn segment %d S_in (%g) not area-continuous with segment %d S_out (%g)", i, seg.SIn, i-1, prevOut)
			}
		}
	}
	if err := h.ThroatChamber.Validate(); err != nil {
		return err
	}
	// A zero-volume rear chamber means the horn has none.
	if h.RearChamber.Volume != 0 {
		if err := h.RearChamber.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// SolveHorn evaluates a horn-loaded system over freqs at the nominal
// drive voltage (§4.7). The throat impedance is built mouth-to-throat
// (the mouth terminated in its own radiation impedance, cascaded back
// through the composed transfer matrix), any throat/front chamber is
// added in parallel at the throat node, and the rear chamber loads the
// diaphragm in parallel with the reflected throat impedance. Below the
// horn's cutoff the throat impedance is evanescent-dominated; it is
// reported, not suppressed or clamped (§4.7).
func SolveHorn(d driver.ThieleSmall, h Horn, freqs []float64, med medium.Medium, backend radiation.Backend, sinks ...diagnostics.Sink) (ResponseBundle, error) {
	if err := d.Validate(); err != nil {
		return ResponseBundle{}, err
	}
	if err := h.Validate(); err != nil {
		return ResponseBundle{}, err
	}
	if err := ValidateFrequencyGrid(freqs); err != nil {
		return ResponseBundle{}, err
	}
	sink := diagnostics.Resolve(sinks...)

	n := len(freqs)
	out := ResponseBundle{
		Frequencies: freqs,
		Ze:          make([]complex128, n),
		SPL:         make([]float64, n),
		Ud:          make([]complex128, n),
		Uout:        make([]complex128, n),
		Excursion:   make([]float64, n),
	}

	throatArea := h.ThroatArea()
	mouthArea := h.MouthArea()

	for i, f := range freqs {
		for si, seg := range h.Segments {
			if fc := seg.CutoffFrequency(med); fc > 0 && f < fc {
				sink.Emit(diagnostics.Event{
					Kind:    diagnostics.EvanescentRegion,
					Message: "frequency below segment cutoff; evanescent, not suppressed",
					Fields:  map[string]any{"segment": si, "frequency": f, "cutoff": fc},
				})
			}
		}

		zMouth, err := radiation.Impedance(f, mouthArea, med, backend)
		if err != nil {
			return ResponseBundle{}, fmt.Errorf("enclosure: horn f=%g: %w", f, err)
		}
		mTotal, err := horn.Compose(h.Segments, f, med)
		if err != nil {
			return ResponseBundle{}, fmt.Errorf("enclosure: horn f=%g: %w", f, err)
		}

		denom := mTotal.C*zMouth + mTotal.D
		scale := cmplx.Abs(mTotal.C*zMouth) + cmplx.Abs(mTotal.D)
		if scale > 0 && cmplx.Abs(denom)/scale < singularityThreshold {
			sink.Emit(diagnostics.Event{
				Kind:    diagnostics.NumericalRegime,
				Message: "horn throat-impedance denominator near singular",
				Fields:  map[string]any{"frequency": f, "denominator_magnitude": cmplx.Abs(denom)},
			})
		}

		zThroat := mTotal.ThroatImpedance(zMouth)

		if h.ThroatChamber.Volume > 0 {
			zFront, err := h.ThroatChamber.Impedance(f, med)
			if err != nil {
				return ResponseBundle{}, fmt.Errorf("enclosure: horn f=%g: %w", f, err)
			}
			zThroat = chamber.Parallel(zThroat, zFront)
		}

		reflected := driver.ReflectThroatLoad(zThroat, throatArea, d.Sd)
		if h.RearChamber.Volume > 0 {
			zRear, err := h.RearChamber.Impedance(f, med)
			if err != nil {
				return ResponseBundle{}, fmt.Errorf("enclosure: horn f=%g: %w", f, err)
			}
			// ReflectThroatLoad already reflects the throat impedance into
			// the mechanical domain; reflect the rear chamber by the same
			// Sd^2 factor before combining so both branches of the parallel
			// are in the same domain.
			reflected = chamber.Parallel(reflected, zRear*complex(d.Sd*d.Sd, 0))
		}

		zMech, err := d.MechanicalImpedanceFromReflectedLoad(f, med, backend, reflected)
		if err != nil {
			return ResponseBundle{}, fmt.Errorf("enclosure: horn f=%g: %w", f, err)
		}
		zE := d.ElectricalImpedance(f, zMech)
		ud := d.VolumeVelocity(NominalDriveVoltage, zE, zMech)
		uMouth := mTotal.MouthVolumeVelocity(ud, zMouth)

		out.Ze[i] = zE
		out.Ud[i] = ud
		out.Uout[i] = uMouth
		out.Excursion[i] = driver.Excursion(ud, f, d.Sd)
		out.SPL[i] = splFromVolumeVelocity(uMouth, zMouth, med)
	}
	return out, nil
}
