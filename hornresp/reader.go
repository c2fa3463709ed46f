package hornresp

import "fmt"

// Result is a parallel-array reader type for Hornresp simulation output,
// used only for validation comparisons against this module's own solvers
// (§6): every slice has one entry per frequency, in the same order.
type Result struct {
	Frequency []float64
	Re        []float64
	Xe        []float64
	SPL       []float64
}

// Validate checks Result's slices are non-empty and all the same length.
func (r Result) Validate() error {
	n := len(r.Frequency)
	if n == 0 {
		return fmt.Errorf("hornresp: result has no frequency samples")
	}
	for name, s := range map[string][]float64{"Re": r.Re, "Xe": r.Xe, "SPL": r.SPL} {
		if len(s) != n {
			return fmt.Errorf("hornresp: %s has %d entries, want %d", name, len(s), n)
		}
	}
	return nil
}

// ZeAt returns the complex electrical impedance Re(f)+j*Xe(f) at sample
// index i, for direct comparison against a ResponseBundle.Ze entry.
func (r Result) ZeAt(i int) complex128 {
	return complex(r.Re[i], r.Xe[i])
}
