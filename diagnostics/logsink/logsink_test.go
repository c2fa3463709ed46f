package logsink

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"

	"github.com/wokhouse/viberesp-sub001/diagnostics"
)

func TestEmitWritesEvanescentRegionAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)
	sink := New(logger)

	sink.Emit(diagnostics.Event{Kind: diagnostics.EvanescentRegion, Message: "below horn cutoff"})
	assert.Contains(t, buf.String(), "below horn cutoff")
}

func TestEmitWritesConstraintInfeasibleAtWarn(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	sink := New(logger)

	sink.Emit(diagnostics.Event{Kind: diagnostics.ConstraintInfeasible, Message: "Sthroat/Sd out of range", Fields: map[string]any{"value": -0.4}})
	out := buf.String()
	assert.Contains(t, out, "Sthroat/Sd out of range")
	assert.Contains(t, out, "value")
}

func TestSinkImplementsDiagnosticsSink(t *testing.T) {
	var _ diagnostics.Sink = New(log.New(&bytes.Buffer{}))
}
