package enclosure

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wokhouse/viberesp-sub001/chamber"
	"github.com/wokhouse/viberesp-sub001/diagnostics"
	"github.com/wokhouse/viberesp-sub001/horn"
	"github.com/wokhouse/viberesp-sub001/medium"
	"github.com/wokhouse/viberesp-sub001/radiation"
)

// recordingSink is a diagnostics.Sink test double that keeps every event it
// receives, in order, for assertion.
type recordingSink struct {
	events []diagnostics.Event
}

func (r *recordingSink) Emit(ev diagnostics.Event) {
	r.events = append(r.events, ev)
}

func (r *recordingSink) has(kind diagnostics.Kind) bool {
	for _, ev := range r.events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}

func sampleHorn() Horn {
	return Horn{
		Segments: []horn.Segment{
			{Shape: horn.Exponential, SIn: 0.001, SOut: 0.02, L: 0.4},
		},
	}
}

func TestHornValidateRejectsEmptySegments(t *testing.T) {
	require.Error(t, Horn{}.Validate())
}

func TestHornValidateRejectsAreaDiscontinuity(t *testing.T) {
	h := Horn{Segments: []horn.Segment{
		{Shape: horn.Exponential, SIn: 0.001, SOut: 0.01, L: 0.2},
		{Shape: horn.Conical, SIn: 0.05, SOut: 0.08, L: 0.2},
	}}
	require.Error(t, h.Validate())
}

func TestHornThroatAndMouthArea(t *testing.T) {
	h := sampleHorn()
	assert.Equal(t, 0.001, h.ThroatArea())
	assert.Equal(t, 0.02, h.MouthArea())
}

func TestSolveHornProducesOneEntryPerFrequency(t *testing.T) {
	freqs := logGrid(50, 5000, 60)
	out, err := SolveHorn(sampleDriver(), sampleHorn(), freqs, medium.Standard(), radiation.Exact)
	require.NoError(t, err)
	assert.Len(t, out.SPL, len(freqs))
	for _, spl := range out.SPL {
		assert.False(t, math.IsNaN(spl))
	}
}

func TestSolveHornBelowCutoffIsNotSuppressed(t *testing.T) {
	h := sampleHorn()
	fc := h.Segments[0].CutoffFrequency(medium.Standard())
	freqs := []float64{fc * 0.2}
	out, err := SolveHorn(sampleDriver(), h, freqs, medium.Standard(), radiation.Exact)
	require.NoError(t, err)
	// Below cutoff the solver still reports a finite, non-suppressed value
	// rather than clamping or erroring.
	assert.False(t, math.IsNaN(out.SPL[0]))
	assert.False(t, math.IsInf(out.SPL[0], 0))
}

func TestSolveHornWithChambersStillProducesFiniteResponse(t *testing.T) {
	h := sampleHorn()
	h.ThroatChamber = chamber.Front{Volume: 0.00005}
	h.RearChamber = chamber.Rear{Volume: 0.01}
	freqs := logGrid(50, 5000, 20)
	out, err := SolveHorn(sampleDriver(), h, freqs, medium.Standard(), radiation.Exact)
	require.NoError(t, err)
	for _, spl := range out.SPL {
		assert.False(t, math.IsNaN(spl))
	}
}

// TestExponentialHornCutoffMatchesDocumentedFixture pins each segment's
// cutoff frequency against spec.md §8 Scenario C's 2-segment exponential
// horn fixture (S_throat=1.67cm^2, S_mid=305cm^2, S_mouth=506cm^2,
// L1=32.9cm, L2=59.87cm -> F12~433Hz, F23~23Hz, computed from the
// pressure-amplitude flare constant, not the area-flare constant that
// would give the documented wrong answers of 864Hz and 46Hz).
func TestExponentialHornCutoffMatchesDocumentedFixture(t *testing.T) {
	med := medium.Standard()
	seg1 := horn.Segment{Shape: horn.Exponential, SIn: 1.67e-4, SOut: 305e-4, L: 0.329}
	seg2 := horn.Segment{Shape: horn.Exponential, SIn: 305e-4, SOut: 506e-4, L: 0.5987}

	assert.InDelta(t, 433, seg1.CutoffFrequency(med), 3)
	assert.InDelta(t, 23, seg2.CutoffFrequency(med), 1)
}

// TestSolveHornEmitsEvanescentRegionBelowCutoff confirms the EvanescentRegion
// event wired into SolveHorn's per-segment cutoff check actually fires, not
// just that the production code path exists (§7).
func TestSolveHornEmitsEvanescentRegionBelowCutoff(t *testing.T) {
	h := sampleHorn()
	fc := h.Segments[0].CutoffFrequency(medium.Standard())
	sink := &recordingSink{}
	_, err := SolveHorn(sampleDriver(), h, []float64{fc * 0.2}, medium.Standard(), radiation.Exact, sink)
	require.NoError(t, err)
	assert.True(t, sink.has(diagnostics.EvanescentRegion))
}

// TestSolveHornOmitsEvanescentRegionAboveCutoff confirms the same check does
// not fire spuriously once the frequency clears the segment's cutoff.
func TestSolveHornOmitsEvanescentRegionAboveCutoff(t *testing.T) {
	h := sampleHorn()
	fc := h.Segments[0].CutoffFrequency(medium.Standard())
	sink := &recordingSink{}
	_, err := SolveHorn(sampleDriver(), h, []float64{fc * 5}, medium.Standard(), radiation.Exact, sink)
	require.NoError(t, err)
	assert.False(t, sink.has(diagnostics.EvanescentRegion))
}

func TestSolveHornRejectsInconsistentGeometry(t *testing.T) {
	bad := Horn{Segments: []horn.Segment{
		{Shape: horn.Exponential, SIn: 0.001, SOut: 0.01, L: 0.2},
		{Shape: horn.Conical, SIn: 0.05, SOut: 0.08, L: 0.2},
	}}
	_, err := SolveHorn(sampleDriver(), bad, []float64{100}, medium.Standard(), radiation.Exact)
	require.Error(t, err)
}
