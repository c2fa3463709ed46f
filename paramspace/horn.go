package paramspace

import (
	"fmt"

	"github.com/wokhouse/viberesp-sub001/chamber"
	"github.com/wokhouse/viberesp-sub001/enclosure"
	"github.com/wokhouse/viberesp-sub001/horn"
)

// HornTemplate fixes the per-segment shape sequence a horn parameter
// vector decodes against; only areas, lengths and (for Hyperbolic
// segments) T are searched, since the shape sequence itself is a design
// choice made before optimization, not a continuous parameter (§4.9).
type HornTemplate struct {
	Shapes    []horn.Shape
	MaxLength float64 // total horn length bound, used by LengthConstraint
}

// HornSlots builds the parameter vector for a HornTemplate: throat area,
// then per segment an area-out and a length, plus a T in [0,1] for every
// Hyperbolic segment. All areas are searched in log-space (§4.9).
func (tpl HornTemplate) HornSlots(minArea, maxArea, minLen, maxLen float64) []Slot {
	slots := []Slot{{Name: "Sthroat", Min: minArea, Max: maxArea, Scale: Log}}
	for i, shape := range tpl.Shapes {
		slots = append(slots, Slot{Name: fmt.Sprintf("Sout%d", i), Min: minArea, Max: maxArea, Scale: Log})
		slots = append(slots, Slot{Name: fmt.Sprintf("L%d", i), Min: minLen, Max: maxLen, Scale: Linear})
		if shape == horn.Hyperbolic {
			slots = append(slots, Slot{Name: fmt.Sprintf("T%d", i), Min: 0, Max: 1, Scale: Linear})
		}
	}
	return slots
}

// DecodeHorn builds a Horn geometry from a parameter vector produced
// against HornSlots, chaining each segment's throat area to the previous
// segment's mouth area so the decoded geometry is always
// area-continuous by construction.
func (tpl HornTemplate) DecodeHorn(slots []Slot, x []float64, throatChamber chamber.Front, rearChamber chamber.Rear) (enclosure.Horn, error) {
	if err := ValidateVector(slots, x); err != nil {
		return enclosure.Horn{}, err
	}
	segments := make([]horn.Segment, len(tpl.Shapes))
	sIn := x[0]
	idx := 1
	for i, shape := range tpl.Shapes {
		sOut := x[idx]
		length := x[idx+1]
		idx += 2
		t := 0.0
		if shape == horn.Hyperbolic {
			t = x[idx]
			idx++
		}
		segments[i] = horn.Segment{Shape: shape, SIn: sIn, SOut: sOut, L: length, T: t}
		sIn = sOut
	}
	return enclosure.Horn{Segments: segments, ThroatChamber: throatChamber, RearChamber: rearChamber}, nil
}

// ThroatRatioConstraint enforces S_throat/S_d within [0.2, 2] (§4.9).
func ThroatRatioConstraint(h enclosure.Horn, sd float64) Violation {
	ratio := h.ThroatArea() / sd
	margin := 0.2 - ratio
	if ratio > 1 {
		margin = ratio - 2
		return Violation{Name: "Sthroat/Sd <= 2", Value: -margin}
	}
	return Violation{Name: "Sthroat/Sd >= 0.2", Value: -margin}
}

// MonotoneAreaConstraints enforces monotone area expansion per segment:
// each segment's mouth area must exceed its throat area (§4.9).
func MonotoneAreaConstraints(h enclosure.Horn) []Violation {
	vs := make([]Violation, len(h.Segments))
	for i, seg := range h.Segments {
		vs[i] = Violation{Name: fmt.Sprintf("segment %d area expands", i), Value: seg.SOut - seg.SIn}
	}
	return vs
}

// LengthConstraint enforces total horn length <= tpl.MaxLength (§4.9).
func (tpl HornTemplate) LengthConstraint(h enclosure.Horn) Violation {
	total := 0.0
	for _, seg := range h.Segments {
		total += seg.L
	}
	return Violation{Name: "total length <= max", Value: tpl.MaxLength - total}
}
