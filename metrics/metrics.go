// Package metrics reduces a response bundle to the scalar objectives the
// optimizer and sweep facility consume: bass extension (F3), passband
// flatness, reference efficiency, and enclosure volume (§4.8).
package metrics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/wokhouse/viberesp-sub001/driver"
	"github.com/wokhouse/viberesp-sub001/enclosure"
)

// ReferenceBand is the frequency range (Hz) a reference SPL level is
// averaged over before computing F3.
type ReferenceBand struct {
	Lo, Hi float64
}

// DefaultReferenceBand is a mid-passband band callers can pass to F3;
// F3 itself always takes its band explicitly.
var DefaultReferenceBand = ReferenceBand{Lo: 200, Hi: 500}

// F3 returns the reference-relative -3 dB crossing frequency (§4.8): the
// reference level is the mean SPL over band, and F3 is the first
// upward crossing (from below reference-3dB to at-or-above it) scanning
// from the lowest frequency in the grid, linearly interpolated between
// the bracketing samples. Returns +Inf if no crossing exists; the low end
// of the grid is never a valid answer.
func F3(bundle enclosure.ResponseBundle, band ReferenceBand) (float64, error) {
	n := len(bundle.Frequencies)
	if n < 2 {
		return 0, fmt.Errorf("metrics: response bundle needs at least 2 points for F3")
	}
	ref, err := bandMean(bundle, band)
	if err != nil {
		return 0, err
	}
	threshold := ref - 3

	below := bundle.SPL[0] < threshold
	for i := 1; i < n; i++ {
		at := bundle.SPL[i] >= threshold
		if below && at {
			f0, f1 := bundle.Frequencies[i-1], bundle.Frequencies[i]
			s0, s1 := bundle.SPL[i-1], bundle.SPL[i]
			frac := (threshold - s0) / (s1 - s0)
			return f0 + frac*(f1-f0), nil
		}
		below = !at
	}
	return math.Inf(1), nil
}

// bandMean returns the mean SPL over [band.Lo, band.Hi], requiring at
// least one sample inside the band.
func bandMean(bundle enclosure.ResponseBundle, band ReferenceBand) (float64, error) {
	var inBand []float64
	for i, f := range bundle.Frequencies {
		if f >= band.Lo && f <= band.Hi {
			inBand = append(inBand, bundle.SPL[i])
		}
	}
	if len(inBand) == 0 {
		return 0, fmt.Errorf("metrics: no response samples in reference band [%g,%g] Hz", band.Lo, band.Hi)
	}
	return stat.Mean(inBand, nil), nil
}

// Family names the enclosure family a response bundle was produced by,
// used to pick the adaptive flatness band (§4.8).
type Family int

const (
	BassBox Family = iota
	MidrangeHorn
	TweeterHorn
)

// FlatnessBand returns the adaptive frequency range flatness is measured
// over (§4.8): a bass box always uses [20,500] Hz; a midrange horn with
// cutoff fc in [100,500] Hz uses [1.5*fc, max(5000,20*fc)]; a tweeter horn
// uses [1.5*fc, 20000]. Hard-coded narrow ranges were a prior bug this
// adaptivity replaces.
func FlatnessBand(family Family, fc float64) ReferenceBand {
	switch family {
	case MidrangeHorn:
		hi := math.Max(5000, 20*fc)
		return ReferenceBand{Lo: 1.5 * fc, Hi: hi}
	case TweeterHorn:
		return ReferenceBand{Lo: 1.5 * fc, Hi: 20000}
	default:
		return ReferenceBand{Lo: 20, Hi: 500}
	}
}

// Flatness returns the standard deviation of SPL over band (§4.8): lower
// is flatter. Requires at least one sample inside the band.
func Flatness(bundle enclosure.ResponseBundle, band ReferenceBand) (float64, error) {
	var inBand []float64
	for i, f := range bundle.Frequencies {
		if f >= band.Lo && f <= band.Hi {
			inBand = append(inBand, bundle.SPL[i])
		}
	}
	if len(inBand) == 0 {
		return 0, fmt.Errorf("metrics: no response samples in flatness band [%g,%g] Hz", band.Lo, band.Hi)
	}
	return stat.StdDev(inBand, nil), nil
}

// PeakToPeak returns max(SPL)-min(SPL) over band, an alternative flatness
// statistic to the standard deviation (§4.8).
func PeakToPeak(bundle enclosure.ResponseBundle, band ReferenceBand) (float64, error) {
	var inBand []float64
	for i, f := range bundle.Frequencies {
		if f >= band.Lo && f <= band.Hi {
			inBand = append(inBand, bundle.SPL[i])
		}
	}
	if len(inBand) == 0 {
		return 0, fmt.Errorf("metrics: no response samples in flatness band [%g,%g] Hz", band.Lo, band.Hi)
	}
	lo, hi := inBand[0], inBand[0]
	for _, v := range inBand[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return hi - lo, nil
}

// ReferenceEfficiency returns Small's (1972) reference efficiency
//
//	η0 = (4π²/c³)*Fs³*Vas/Qes
//
// as a fraction (§4.8).
func ReferenceEfficiency(d driver.ThieleSmall, c float64) float64 {
	return (4 * math.Pi * math.Pi / (c * c * c)) * d.Fs * d.Fs * d.Fs * d.Vas / d.Qes
}

// Volume returns the enclosure size metric: the sum of the given chamber
// volumes (m^3). Horn flare geometry volume is informational and is not
// included unless the caller folds a cabinet chamber into the sum (§4.8).
func Volume(chamberVolumes ...float64) float64 {
	total := 0.0
	for _, v := range chamberVolumes {
		total += v
	}
	return total
}
