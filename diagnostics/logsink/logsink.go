// Package logsink adapts diagnostics.Sink to github.com/charmbracelet/log,
// for callers that want the core's diagnostic events surfaced as
// structured log lines instead of silently discarded (§7).
package logsink

import (
	"github.com/charmbracelet/log"

	"github.com/wokhouse/viberesp-sub001/diagnostics"
)

// Sink logs every diagnostic.Event to an underlying *log.Logger at a
// level chosen by the event's Kind: constraint infeasibility and
// numerical-regime reports log at Warn, evanescent-region reports — an
// expected operating condition below a horn's cutoff — log at Debug.
type Sink struct {
	logger *log.Logger
}

// New wraps logger as a diagnostics.Sink.
func New(logger *log.Logger) *Sink {
	return &Sink{logger: logger}
}

// Emit implements diagnostics.Sink.
func (s *Sink) Emit(ev diagnostics.Event) {
	fields := make([]any, 0, len(ev.Fields)*2+2)
	fields = append(fields, "kind", ev.Kind.String())
	for k, v := range ev.Fields {
		fields = append(fields, k, v)
	}
	switch ev.Kind {
	case diagnostics.EvanescentRegion:
		s.logger.Debug(ev.Message, fields...)
	default:
		s.logger.Warn(ev.Message, fields...)
	}
}

var _ diagnostics.Sink = (*Sink)(nil)
