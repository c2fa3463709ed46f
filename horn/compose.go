package horn

import (
	"fmt"

	"github.com/wokhouse/viberesp-sub001/medium"
)

// Compose cascades segments throat-to-mouth into a single transfer matrix
// M_total = M_1 * M_2 * ... * M_N (§4.3). segments must be given in
// throat-to-mouth order, each segment's SIn matching the previous
// segment's SOut.
func Compose(segments []Segment, f float64, med medium.Medium) (Matrix, error) {
	if len(segments) == 0 {
		return Matrix{}, fmt.Errorf("horn: no segments to compose")
	}
	total := Identity
	for i, seg := range segments {
		if i > 0 && seg.SIn != segments[i-1].SOut {
			return Matrix{}, fmt.Errorf("horn: segment %d S_in (%g) does not match segment %d S_out (%g)", i, seg.SIn, i-1, segments[i-1].SOut)
		}
		m, err := seg.TMatrix(f, med)
		if err != nil {
			return Matrix{}, fmt.Errorf("horn: segment %d: %w", i, err)
		}
		if i == 0 {
			total = m
		} else {
			total = total.Mul(m)
		}
	}
	return total, nil
}

// ThroatState bundles the acoustic pressure and volume velocity at the
// throat of a composed horn, computed from a mouth termination.
type ThroatState struct {
	Impedance      complex128
	VolumeVelocity complex128
}

// ThroatFromMouth drives the cascaded matrix m backward from a known mouth
// termination impedance and mouth volume velocity, returning the throat
// impedance and the volume velocity that produces the given mouth volume
// velocity (§4.3).
func ThroatFromMouth(m Matrix, zMouth, uMouth complex128) ThroatState {
	zThroat := m.ThroatImpedance(zMouth)
	pMouth := zMouth * uMouth
	uThroat := m.C*pMouth + m.D*uMouth
	return ThroatState{Impedance: zThroat, VolumeVelocity: uThroat}
}
