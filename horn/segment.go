// Package horn models the acoustic transmission line formed by a horn's
// flare: each geometric segment becomes a 2x2 transfer matrix, and segments
// cascade throat-to-mouth into a single matrix describing the whole horn
// (§4.2, §4.3).
package horn

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/wokhouse/viberesp-sub001/medium"
)

// Shape selects a segment's area-vs-length profile.
type Shape int

const (
	// Exponential grows area as S(x) = Sin*exp(2*m*x).
	Exponential Shape = iota
	// Hyperbolic (Salmon) grows radius as r(x) = r_in*(cosh(mx)+T*sinh(mx)),
	// with T=0 giving the catenoidal profile and T=1 degenerating exactly
	// to Exponential.
	Hyperbolic
	// Conical grows radius linearly with x (straight-sided cone).
	Conical
)

func (s Shape) String() string {
	switch s {
	case Exponential:
		return "exponential"
	case Hyperbolic:
		return "hyperbolic"
	case Conical:
		return "conical"
	default:
		return fmt.Sprintf("horn.Shape(%d)", int(s))
	}
}

// Segment describes one length of horn flare, throat-side area SIn to
// mouth-side area SOut over length L. T only applies to Hyperbolic
// segments; it is ignored for the others.
type Segment struct {
	Shape Shape
	SIn   float64
	SOut  float64
	L     float64
	T     float64
}

// Validate checks the geometric invariants every segment must satisfy
// regardless of shape (§4.2).
func (s Segment) Validate() error {
	if s.SIn <= 0 {
		return fmt.Errorf("horn: segment S_in must be positive, got %g", s.SIn)
	}
	if s.SOut <= 0 {
		return fmt.Errorf("horn: segment S_out must be positive, got %g", s.SOut)
	}
	if s.L <= 0 {
		return fmt.Errorf("horn: segment length must be positive, got %g", s.L)
	}
	if s.Shape == Conical && s.SIn == s.SOut {
		return fmt.Errorf("horn: conical segment requires S_in != S_out")
	}
	return nil
}

// FlareConstant returns the Kolbrek pressure-amplitude flare constant
//
//	m = ln(sqrt(S_out/S_in)) / L
//
// half the area-flare constant of the Olson convention, used by both the
// Exponential and Hyperbolic segment forms.
func (s Segment) FlareConstant() float64 {
	return math.Log(math.Sqrt(s.SOut/s.SIn)) / s.L
}

// CutoffFrequency returns the theoretical plane-wave cutoff f_c = c*m/(2π)
// below which Exponential and Hyperbolic segments stop propagating and
// become purely reactive (§4.2, §8 property 3). Conical segments have no
// cutoff; CutoffFrequency returns 0 for them.
func (s Segment) CutoffFrequency(med medium.Medium) float64 {
	if s.Shape == Conical {
		return 0
	}
	m := s.FlareConstant()
	return med.C * math.Abs(m) / (2 * math.Pi)
}

// TMatrix returns the 2x2 transfer matrix of the segment at frequency f in
// medium med (§4.2). All three shapes report C via the reciprocity identity
// C=(A*D-1)/B once A, B and D are known, which holds exactly for any
// lossless passive two-port and guarantees det(M)=1 to floating-point
// precision regardless of which closed form produced A, B and D.
func (s Segment) TMatrix(f float64, med medium.Medium) (Matrix, error) {
	if err := s.Validate(); err != nil {
		return Matrix{}, err
	}
	if f < 0 {
		return Matrix{}, fmt.Errorf("horn: frequency must be non-negative, got %g", f)
	}
	k := 2 * math.Pi * f / med.C

	rhoC := med.Rho0 * med.C
	switch s.Shape {
	case Exponential:
		return salmonMatrix(s.SIn, s.SOut, s.L, s.FlareConstant(), 1.0, k, rhoC), nil
	case Hyperbolic:
		return salmonMatrix(s.SIn, s.SOut, s.L, s.FlareConstant(), s.T, k, rhoC), nil
	case Conical:
		return conicalMatrix(s.SIn, s.SOut, s.L, k, rhoC), nil
	default:
		return Matrix{}, fmt.Errorf("horn: unknown segment shape %v", s.Shape)
	}
}

// salmonMatrix implements the exact hyperbolic/Salmon-family transfer
// matrix (§4.2):
//
//	A = (r_in/r_out)*(cos(μL) - g_in*sincμL)
//	D = (r_out/r_in)*(cos(μL) + g_out*sincμL)
//	B = j*k*ρ0*c/sqrt(S_in*S_out) * sincμL
//	C = (A*D-1)/B
//
// where sincμL = sin(μL)/μ, g_in = m*T, g_out = m*(sinh(mL)+T*cosh(mL)) /
// (cosh(mL)+T*sinh(mL)), and μ = sqrt(k²-m²). Below cutoff μ is imaginary;
// cos/sinc analytically continue to cosh/sinh forms automatically via
// complex arithmetic. T=1 makes g_in=g_out=m and μ the Exponential γ,
// degenerating exactly to the Exponential segment (§8 property 2); T=0 is
// the catenoidal horn.
func salmonMatrix(sIn, sOut, length, m, t, k, rhoC float64) Matrix {
	rIn := math.Sqrt(sIn / math.Pi)
	rOut := math.Sqrt(sOut / math.Pi)

	mu := cmplx.Sqrt(complex(k*k-m*m, 0))
	cosMuL := cmplx.Cos(mu * complex(length, 0))
	var sincMuL complex128
	if cmplx.Abs(mu) < 1e-12 {
		sincMuL = complex(length, 0)
	} else {
		sincMuL = cmplx.Sin(mu*complex(length, 0)) / mu
	}

	sinhML := math.Sinh(m * length)
	coshML := math.Cosh(m * length)
	gIn := m * t
	gOut := m * (sinhML + t*coshML) / (coshML + t*sinhML)

	a := complex(rIn/rOut, 0) * (cosMuL - complex(gIn, 0)*sincMuL)
	d := complex(rOut/rIn, 0) * (cosMuL + complex(gOut, 0)*sincMuL)
	b := complex(0, k*rhoC) * sincMuL / complex(math.Sqrt(sIn*sOut), 0)

	c := (a*d - 1) / b
	return Matrix{A: a, B: b, C: c, D: d}
}

// conicalMatrix implements the standard spherical-wave transfer matrix for
// a straight-sided cone of half-angle determined by sIn, sOut and length,
// with apex distances x1 (throat) and x2=x1+length (mouth) measured from
// the (possibly virtual) cone apex (§4.2):
//
//	A = (x2/x1)*cos(kL) - sin(kL)/(k*x1)
//	D = (x1/x2)*cos(kL) + sin(kL)/(k*x2)
//	B = j*ρ0*c*sin(kL)/sqrt(S_in*S_out)
//	C = (A*D-1)/B
func conicalMatrix(sIn, sOut, length, k, rhoC float64) Matrix {
	rIn := math.Sqrt(sIn / math.Pi)
	rOut := math.Sqrt(sOut / math.Pi)

	coskL := math.Cos(k * length)
	sinkL := math.Sin(k * length)

	x1 := rIn * length / (rOut - rIn)
	x2 := x1 + length

	a := complex((x2/x1)*coskL-sinkL/(k*x1), 0)
	d := complex((x1/x2)*coskL+sinkL/(k*x2), 0)
	b := complex(0, rhoC*sinkL) / complex(math.Sqrt(sIn*sOut), 0)

	c := (a*d - 1) / b
	return Matrix{A: a, B: b, C: c, D: d}
}
