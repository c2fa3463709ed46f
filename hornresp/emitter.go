// Package hornresp emits and reads the Hornresp `.txt` interchange format
// (§6): a validation collaborator, not a simulation engine — it never
// computes a response itself, only translates to/from the core's own
// types.
package hornresp

import (
	"fmt"
	"strings"

	"github.com/wokhouse/viberesp-sub001/chamber"
	"github.com/wokhouse/viberesp-sub001/driver"
	"github.com/wokhouse/viberesp-sub001/enclosure"
)

// MaxSegments is the number of horn segment slots a Hornresp project file
// declares; segments beyond what a design uses are emitted zeroed (§6).
const MaxSegments = 18

// RadiationAngle selects the Hornresp "Ang" field: half-space (2π)
// requires no rear-chamber volume, full-space (4π) requires one (§6).
type RadiationAngle int

const (
	HalfSpace RadiationAngle = 2
	FullSpace RadiationAngle = 4
)

// Design is the typed input the Hornresp emitter consumes: a driver, one
// enclosure family's geometry, and an optional free-text comment (§6).
// Exactly one of Sealed, Ported or Horn is set.
type Design struct {
	Driver  driver.ThieleSmall
	Ang     RadiationAngle
	Comment string

	Sealed *enclosure.Sealed
	Ported *enclosure.Ported
	Horn   *enclosure.Horn
}

// crlf joins lines with CRLF, the line ending Hornresp project files use.
func crlf(lines []string) string {
	return strings.Join(lines, "\r\n") + "\r\n"
}

// Emit renders a Design as Hornresp `.txt` text (§6).
func Emit(d Design) (string, error) {
	if err := validateAng(d); err != nil {
		return "", err
	}

	var lines []string
	lines = append(lines, "|Driver Parameters")
	lines = append(lines, driverLines(d.Driver)...)

	lines = append(lines, "|Horn Parameters")
	lines = append(lines, hornLines(d.Horn)...)

	lines = append(lines, "|Chamber Parameters")
	lines = append(lines, chamberLines(d)...)

	lines = append(lines, "|Notes")
	if d.Comment != "" {
		lines = append(lines, fmt.Sprintf("Comment = %s", d.Comment))
	} else {
		lines = append(lines, "Comment = ")
	}

	return crlf(lines), nil
}

func validateAng(d Design) error {
	if d.Ang == HalfSpace {
		return nil
	}
	if d.Ang == FullSpace {
		if rearVolume(d) <= 0 {
			return fmt.Errorf("hornresp: full-space radiation (Ang=4pi) requires Vrc > 0")
		}
		return nil
	}
	return fmt.Errorf("hornresp: unknown radiation angle %v", d.Ang)
}

func rearVolume(d Design) float64 {
	switch {
	case d.Sealed != nil:
		return d.Sealed.Vb
	case d.Ported != nil:
		return d.Ported.Vb
	case d.Horn != nil:
		return d.Horn.RearChamber.Volume
	default:
		return 0
	}
}

// driverLines renders the Thiele-Small block: Cms in scientific notation
// with exactly two fractional digits, mass in grams, inductance in
// millihenries, area in cm² (§6).
func driverLines(d driver.ThieleSmall) []string {
	cms := d.Vas / (1.204 * 343.0 * 343.0 * d.Sd * d.Sd) // m/N, matches driver.Cms at standard air
	return []string{
		fmt.Sprintf("Fs = %g", d.Fs),
		fmt.Sprintf("Re = %g", d.Re),
		fmt.Sprintf("Qes = %g", d.Qes),
		fmt.Sprintf("Qms = %g", d.Qms),
		fmt.Sprintf("Sd = %g", d.Sd*1e4), // m^2 -> cm^2
		fmt.Sprintf("Bl = %g", d.BL),
		fmt.Sprintf("Cms = %s", sciTwoDigits(cms)),
		fmt.Sprintf("Mmd = %g", d.Mmd*1000), // kg -> g
		fmt.Sprintf("Le = %g", d.Le*1000),   // H -> mH
		fmt.Sprintf("Xmax = %g", d.Xmax*1000),
	}
}

// sciTwoDigits formats v in scientific notation with exactly two
// fractional digits, e.g. 1.23e-04, the format Hornresp's Cms field uses.
func sciTwoDigits(v float64) string {
	return fmt.Sprintf("%.2e", v)
}

// hornLines renders one `Exp = <length_cm>` line per segment (Hornresp's
// overload of Exp for per-segment length, not flare constant), padding
// unused segment slots up to MaxSegments with zeroed parameters (§6).
func hornLines(h *enclosure.Horn) []string {
	var lines []string
	n := 0
	if h != nil {
		n = len(h.Segments)
		for i, seg := range h.Segments {
			lines = append(lines,
				fmt.Sprintf("S%d = %g", i+1, seg.SIn*1e4),
				fmt.Sprintf("Exp = %g", seg.L*100),
			)
		}
	}
	for i := n; i < MaxSegments; i++ {
		lines = append(lines,
			fmt.Sprintf("S%d = 0", i+1),
			"Exp = 0",
		)
	}
	return lines
}

// chamberLines renders the rear (and, for a horn, throat/front) chamber
// volumes in the units Hornresp expects: the SI m^3 volumes are converted
// to liters.
func chamberLines(d Design) []string {
	switch {
	case d.Sealed != nil:
		return []string{fmt.Sprintf("Vrc = %g", d.Sealed.Vb*1000)}
	case d.Ported != nil:
		return []string{
			fmt.Sprintf("Vrc = %g", d.Ported.Vb*1000),
			fmt.Sprintf("Sp = %g", d.Ported.Port.SP*1e4),
			fmt.Sprintf("Lp = %g", d.Ported.Port.LP*100),
		}
	case d.Horn != nil:
		return []string{
			fmt.Sprintf("Vrc = %g", d.Horn.RearChamber.Volume*1000),
			fmt.Sprintf("Vtc = %g", throatVolume(d.Horn.ThroatChamber)),
		}
	default:
		return nil
	}
}

func throatVolume(f chamber.Front) float64 {
	return f.Volume * 1000
}
