package chamber

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wokhouse/viberesp-sub001/medium"
)

func TestRearValidate(t *testing.T) {
	require.Error(t, Rear{Volume: 0}.Validate())
	require.Error(t, Rear{Volume: 0.02, QL: -1}.Validate())
	require.Error(t, Rear{Volume: 0.02, QL: 5, FBox: 0}.Validate())
	require.NoError(t, Rear{Volume: 0.02}.Validate())
}

func TestRearImpedanceIsCapacitive(t *testing.T) {
	med := medium.Standard()
	r := Rear{Volume: 0.02}
	z, err := r.Impedance(50, med)
	require.NoError(t, err)
	assert.Equal(t, 0.0, real(z))
	assert.Less(t, imag(z), 0.0) // capacitive: negative reactance
}

func TestRearImpedanceScalesInverselyWithFrequency(t *testing.T) {
	med := medium.Standard()
	r := Rear{Volume: 0.02}
	zLow, err := r.Impedance(40, med)
	require.NoError(t, err)
	zHigh, err := r.Impedance(80, med)
	require.NoError(t, err)
	// |Z| at 40 Hz should be ~2x |Z| at 80 Hz for a pure compliance.
	assert.InDelta(t, 2, math.Abs(imag(zLow))/math.Abs(imag(zHigh)), 1e-9)
}

func TestRearLeakageAddsResistivePart(t *testing.T) {
	med := medium.Standard()
	lossy := Rear{Volume: 0.02, QL: 7, FBox: 40}
	z, err := lossy.Impedance(40, med)
	require.NoError(t, err)
	assert.Greater(t, real(z), 0.0)
}

func TestFrontZeroVolumeIsOpenCircuit(t *testing.T) {
	med := medium.Standard()
	fc := Front{Volume: 0}
	z, err := fc.Impedance(500, med)
	require.NoError(t, err)
	assert.True(t, math.IsInf(real(z), 1))
}

func TestFrontValidateRejectsTooManyModes(t *testing.T) {
	require.Error(t, Front{Volume: 0.0001, Modes: MaxPipeModes + 1, Length: 0.05}.Validate())
	require.Error(t, Front{Volume: 0.0001, Modes: 1, Length: 0}.Validate())
	require.NoError(t, Front{Volume: 0.0001, Modes: MaxPipeModes, Length: 0.05}.Validate())
}

func TestFrontWithoutModesIsPureCompliance(t *testing.T) {
	med := medium.Standard()
	fc := Front{Volume: 0.0001}
	z, err := fc.Impedance(2000, med)
	require.NoError(t, err)
	cab := Compliance(fc.Volume, med)
	want := -1 / (2 * math.Pi * 2000 * cab)
	assert.InDelta(t, want, imag(z), math.Abs(want)*1e-9)
}
