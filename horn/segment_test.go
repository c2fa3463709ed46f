package horn

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wokhouse/viberesp-sub001/medium"
)

func TestValidateRejectsBadGeometry(t *testing.T) {
	med := medium.Standard()
	_, err := Segment{Shape: Exponential, SIn: 0, SOut: 1, L: 1}.TMatrix(100, med)
	require.Error(t, err)

	_, err = Segment{Shape: Exponential, SIn: 1, SOut: -1, L: 1}.TMatrix(100, med)
	require.Error(t, err)

	_, err = Segment{Shape: Exponential, SIn: 1, SOut: 2, L: 0}.TMatrix(100, med)
	require.Error(t, err)

	_, err = Segment{Shape: Conical, SIn: 1, SOut: 1, L: 1}.TMatrix(100, med)
	require.Error(t, err)
}

func TestZeroLengthIsIdentity(t *testing.T) {
	// A segment whose S_in equals S_out and is vanishingly short should
	// behave like a straight pipe of negligible length: A,D near 1 and
	// B near 0.
	med := medium.Standard()
	seg := Segment{Shape: Exponential, SIn: 0.02, SOut: 0.02, L: 1e-6}
	m, err := seg.TMatrix(1000, med)
	require.NoError(t, err)
	assert.InDelta(t, 1, real(m.A), 1e-3)
	assert.InDelta(t, 1, real(m.D), 1e-3)
	assert.InDelta(t, 0, cmplx.Abs(m.B), 0.5)
}

func TestCutoffFrequencyMatchesFlareConstant(t *testing.T) {
	med := medium.Standard()
	seg := Segment{Shape: Exponential, SIn: 0.001, SOut: 0.1, L: 0.5}
	fc := seg.CutoffFrequency(med)
	want := med.C * seg.FlareConstant() / (2 * math.Pi)
	assert.InDelta(t, want, fc, 1e-9)
}

func TestConicalHasNoCutoff(t *testing.T) {
	med := medium.Standard()
	seg := Segment{Shape: Conical, SIn: 0.001, SOut: 0.1, L: 0.5}
	assert.Equal(t, 0.0, seg.CutoffFrequency(med))
}

func TestComposeRejectsAreaMismatch(t *testing.T) {
	med := medium.Standard()
	segs := []Segment{
		{Shape: Exponential, SIn: 0.001, SOut: 0.01, L: 0.2},
		{Shape: Exponential, SIn: 0.02, SOut: 0.1, L: 0.2},
	}
	_, err := Compose(segs, 500, med)
	require.Error(t, err)
}

func TestComposeMatchesSingleSegment(t *testing.T) {
	med := medium.Standard()
	seg := Segment{Shape: Exponential, SIn: 0.001, SOut: 0.01, L: 0.3}
	direct, err := seg.TMatrix(800, med)
	require.NoError(t, err)

	mid := math.Sqrt(seg.SIn * seg.SOut)
	half1 := Segment{Shape: Exponential, SIn: seg.SIn, SOut: mid, L: seg.L / 2}
	half2 := Segment{Shape: Exponential, SIn: mid, SOut: seg.SOut, L: seg.L / 2}
	composed, err := Compose([]Segment{half1, half2}, 800, med)
	require.NoError(t, err)

	assert.InDelta(t, real(direct.A), real(composed.A), 1e-6)
	assert.InDelta(t, imag(direct.B), imag(composed.B), 1e-6)
}

func TestThroatImpedanceRigidMouth(t *testing.T) {
	med := medium.Standard()
	seg := Segment{Shape: Exponential, SIn: 0.001, SOut: 0.01, L: 0.3}
	m, err := seg.TMatrix(1000, med)
	require.NoError(t, err)
	// An infinite mouth impedance (perfectly rigid termination) makes
	// Z_throat -> A/C. The residual real part falls as 1/(|C|^2*Z_mouth);
	// |C| is about 6e-6 here, so 1e20 stands in for infinity.
	zThroat := m.ThroatImpedance(complex(1e20, 0))
	assert.InDelta(t, real(m.A/m.C), real(zThroat), math.Abs(real(m.A/m.C))*1e-3+1e-6)
}
