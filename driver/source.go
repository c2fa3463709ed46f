package driver

import "fmt"

// Source supplies a Thiele-Small record given an identifier (§6): the
// minimal collaborator interface the core consumes, backed externally by
// a YAML/JSON catalogue that is out of scope for this module.
type Source interface {
	Driver(id string) (ThieleSmall, error)
}

// StaticSource is an in-memory, map-backed Source useful for tests and
// for callers that have already decoded catalogue data and just want to
// hand it to the core without implementing their own Source.
type StaticSource struct {
	drivers map[string]ThieleSmall
}

// NewStaticSource builds a StaticSource from a list of records, keyed by
// their own ID field.
func NewStaticSource(drivers ...ThieleSmall) *StaticSource {
	s := &StaticSource{drivers: make(map[string]ThieleSmall, len(drivers))}
	for _, d := range drivers {
		s.drivers[d.ID] = d
	}
	return s
}

// Driver returns the record registered under id, or an error if none was.
func (s *StaticSource) Driver(id string) (ThieleSmall, error) {
	d, ok := s.drivers[id]
	if !ok {
		return ThieleSmall{}, fmt.Errorf("driver: no record registered for id %q", id)
	}
	return d, nil
}
