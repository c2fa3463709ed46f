// Package radiation computes the acoustic radiation impedance of a circular
// piston, the load every direct radiator and horn mouth in viberesp
// terminates into (§4.1).
package radiation

import (
	"fmt"
	"math"

	"github.com/wokhouse/viberesp-sub001/medium"
)

// Backend selects which numerical method computes R1/X1.
type Backend int

const (
	// Exact uses the Bessel-J1/Struve-H1 series-and-asymptotic evaluation
	// in bessel.go: accurate across the whole ka range, a little slower.
	Exact Backend = iota
	// AartsJanssen evaluates X1 from the Aarts & Janssen (2003) closed-form
	// approximation of Struve H1 (built on J0, sine and cosine) and R1 from
	// the same J1 evaluator as Exact. Its X1 stays within about 0.9% of
	// Exact (largest deviation near x=2ka≈6, about 0.1% at small ka), and
	// it is cheap enough to call millions of times from the optimizer (§4.10).
	AartsJanssen
)

// R1 returns the normalised piston radiation resistance function at
// argument x=2ka.
func R1(x float64, backend Backend) float64 {
	if x == 0 {
		return 0
	}
	if backend == AartsJanssen {
		// The resistance function has no troublesome large-cancellation
		// regime, so this backend reuses the same exact-J1 evaluator;
		// the speed/accuracy tradeoff Aarts & Janssen target is entirely
		// in X1.
		return 1 - 2*besselJ1(x)/x
	}
	return 1 - 2*besselJ1(x)/x
}

// X1 returns the normalised piston radiation reactance function at
// argument x=2ka.
func X1(x float64, backend Backend) float64 {
	if x == 0 {
		return 0
	}
	if backend == AartsJanssen {
		// Aarts & Janssen's closed form for Struve H1:
		// H1(x) ≈ 2/π - J0(x) + (16/π-5)*sin(x)/x + (12-36/π)*(1-cos(x))/x².
		// Below x=0.01 its terms cancel to rounding noise, so the leading
		// small-argument term X1(x) ≈ 4x/(3π) is returned instead.
		if x < 0.01 {
			return 4 * x / (3 * math.Pi)
		}
		h1 := 2/math.Pi - math.J0(x) + (16/math.Pi-5)*math.Sin(x)/x + (12-36/math.Pi)*(1-math.Cos(x))/(x*x)
		return 2 * h1 / x
	}
	return 2 * struveH1(x) / x
}

// Impedance returns the complex acoustic radiation impedance
//
//	Z_rad = (ρ0*c/S) * (2π/Ω) * [R1(2ka) + j*X1(2ka)]
//
// for a circular piston of area S (m^2) radiating at frequency f (Hz) into
// medium m, using the requested backend. Negative f or S is a domain error
// (§4.1). At f=0 the result is the reactive low-frequency mass limit,
// Re=0, Im=(8/3π)*ρ0*ω*a/S, scaled for the radiation space; with ω=0 both
// parts are exactly 0 — never NaN.
func Impedance(f, s float64, m medium.Medium, backend Backend) (complex128, error) {
	if f < 0 {
		return 0, fmt.Errorf("radiation: frequency must be non-negative, got %g", f)
	}
	if s <= 0 {
		return 0, fmt.Errorf("radiation: piston area must be positive, got %g", s)
	}
	a := math.Sqrt(s / math.Pi)
	omega := 2 * math.Pi * f
	spaceScale := 2 * math.Pi / float64(m.Space)

	if f == 0 {
		im := spaceScale * (8.0 / (3.0 * math.Pi)) * m.Rho0 * omega * a / s
		return complex(0, im), nil
	}

	k := omega / m.C
	x := 2 * k * a
	r1 := R1(x, backend)
	x1 := X1(x, backend)
	base := m.Rho0 * m.C / s
	return complex(base*spaceScale*r1, base*spaceScale*x1), nil
}

// ReactiveMass returns the low-frequency reactive mass load
// m_rad = Im(Z_rad)*S^2/ω, the acoustic radiation reactance reflected into
// the mechanical (diaphragm) domain. The driver electro-mechanical model's
// fixed-point solve for total moving mass (§3, §4.5) uses this:
// M_ms = M_md + 2*m_rad(F_s).
func ReactiveMass(f, s float64, m medium.Medium, backend Backend) (float64, error) {
	z, err := Impedance(f, s, m, backend)
	if err != nil {
		return 0, err
	}
	if f == 0 {
		return 0, fmt.Errorf("radiation: reactive mass undefined at f=0")
	}
	omega := 2 * math.Pi * f
	return imag(z) * s * s / omega, nil
}
