package medium

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardIsValid(t *testing.T) {
	require.NoError(t, Standard().Validate())
}

func TestValidateRejectsNonPositive(t *testing.T) {
	m := Standard()
	m.Rho0 = 0
	assert.Error(t, m.Validate())

	m = Standard()
	m.C = -1
	assert.Error(t, m.Validate())

	m = Standard()
	m.PRef = 0
	assert.Error(t, m.Validate())

	m = Standard()
	m.Space = 0
	assert.Error(t, m.Validate())
}

func TestSpaceRatioDB(t *testing.T) {
	m := Standard()
	m.Space = HalfSpace
	assert.InDelta(t, 10*math.Log10(2), m.SpaceRatioDB(), 1e-9)

	m.Space = FullSpace
	assert.InDelta(t, 0, m.SpaceRatioDB(), 1e-9)

	m.Space = QuarterSpace
	assert.InDelta(t, 10*math.Log10(4), m.SpaceRatioDB(), 1e-9)
}

func TestWavenumber(t *testing.T) {
	m := Standard()
	k := m.Wavenumber(1000)
	assert.InDelta(t, 2*math.Pi*1000/m.C, k, 1e-12)
}
