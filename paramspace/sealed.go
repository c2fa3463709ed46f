package paramspace

import (
	"github.com/wokhouse/viberesp-sub001/enclosure"
)

// SealedSlots is the parameter vector for a sealed-box geometry: a single
// box volume, searched in log-space since practical volumes span decades
// (§4.9).
func SealedSlots(minVb, maxVb float64) []Slot {
	return []Slot{
		{Name: "Vb", Min: minVb, Max: maxVb, Scale: Log},
	}
}

// DecodeSealed builds a Sealed geometry from a parameter vector produced
// against SealedSlots.
func DecodeSealed(slots []Slot, x []float64) (enclosure.Sealed, error) {
	if err := ValidateVector(slots, x); err != nil {
		return enclosure.Sealed{}, err
	}
	return enclosure.Sealed{Vb: x[0]}, nil
}

// SealedConstraints has no inequality constraints beyond the slot bounds
// themselves, so it always returns a single trivially-satisfied entry.
func SealedConstraints(s enclosure.Sealed) []Violation {
	return []Violation{{Name: "Vb positive", Value: s.Vb}}
}
