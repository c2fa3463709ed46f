package enclosure

import "math"

// SealedAlignment returns the classical closed-box alignment derived
// quantities (§4.7): Q_tc = Q_ts*sqrt(1+α) and F_c = F_s*sqrt(1+α), with
// α=V_as/V_b the box-to-driver compliance ratio. The solver itself does
// not assume any particular alignment (Butterworth, Bessel, ...);
// SolveSealed uses only F_c, as the reference frequency of the box's Q_L
// leakage loss.
func SealedAlignment(fs, qts, vas, vb float64) (qtc, fc float64) {
	alpha := vas / vb
	factor := math.Sqrt(1 + alpha)
	return qts * factor, fs * factor
}
