package paramspace

import (
	"github.com/wokhouse/viberesp-sub001/enclosure"
	"github.com/wokhouse/viberesp-sub001/medium"
	"github.com/wokhouse/viberesp-sub001/port"
)

// PortedSlots is the parameter vector for a vented-box geometry: box
// volume and port area searched in log-space, port length linear (§4.9).
// Fb is not a free parameter; it is derived from (Vb, port) so the
// decoded geometry is always internally consistent.
func PortedSlots(minVb, maxVb, minSP, maxSP, minLP, maxLP float64) []Slot {
	return []Slot{
		{Name: "Vb", Min: minVb, Max: maxVb, Scale: Log},
		{Name: "Sp", Min: minSP, Max: maxSP, Scale: Log},
		{Name: "Lp", Min: minLP, Max: maxLP, Scale: Linear},
	}
}

// DecodePorted builds a Ported geometry from a parameter vector produced
// against PortedSlots, deriving Fb from the decoded (Vb, Port) pair so the
// Helmholtz-tuning invariant enclosure.Ported.Validate checks is satisfied
// by construction rather than by a fourth free parameter.
func DecodePorted(slots []Slot, x []float64, med medium.Medium, kEnd float64, ql, qa, qp float64) (enclosure.Ported, error) {
	if err := ValidateVector(slots, x); err != nil {
		return enclosure.Ported{}, err
	}
	vb, sp, lp := x[0], x[1], x[2]
	p := port.Port{SP: sp, LP: lp, KEnd: kEnd}
	fb, err := p.HelmholtzFrequency(vb, med)
	if err != nil {
		return enclosure.Ported{}, err
	}
	return enclosure.Ported{Vb: vb, Fb: fb, Port: p, QL: ql, QA: qa, QP: qp}, nil
}

// PortedConstraints checks the port/driver area-ratio bound S_throat's
// analogue for a direct-radiating port carries (§4.9): here the port area
// to box internal cross-section is not modelled, so the only inequality
// constraint enforced is a sane port-to-driver area ratio passed in by the
// caller (driverSd), within [0.2, 2] as the spec's horn throat-ratio bound
// generalises to any coupling area ratio.
func PortedConstraints(p enclosure.Ported, driverSd float64) []Violation {
	ratio := p.Port.SP / driverSd
	lo := ratio - 0.2
	hi := 2 - ratio
	return []Violation{
		{Name: "Sp/Sd >= 0.2", Value: lo},
		{Name: "Sp/Sd <= 2", Value: hi},
	}
}
