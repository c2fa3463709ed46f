// Package optimize implements NSGA-II, the non-dominated sorting genetic
// algorithm the engine uses to search an enclosure family's parameter
// space for Pareto-optimal geometries (§4.10).
package optimize

import "github.com/wokhouse/viberesp-sub001/paramspace"

// Individual is one candidate in a generation: its parameter vector, the
// objective vector an Evaluator produced for it, and the bookkeeping
// fields non-dominated sorting and crowding distance fill in.
type Individual struct {
	X          []float64
	Objectives []float64
	Violations []paramspace.Violation
	Rank       int
	Crowding   float64
}

// TotalViolation is the scalar infeasible individuals are ranked by.
func (ind Individual) TotalViolation() float64 {
	return paramspace.TotalViolation(ind.Violations)
}

// Feasible reports whether ind satisfies every constraint.
func (ind Individual) Feasible() bool {
	return paramspace.Feasible(ind.Violations)
}

// dominates reports whether ind Pareto-dominates other under pure
// objective comparison (all objectives minimised, <=, at least one <):
// used only once both individuals are known feasible, since infeasible
// comparisons go through constraintDominates instead.
func dominates(a, b Individual) bool {
	atLeastOneBetter := false
	for i := range a.Objectives {
		if a.Objectives[i] > b.Objectives[i] {
			return false
		}
		if a.Objectives[i] < b.Objectives[i] {
			atLeastOneBetter = true
		}
	}
	return atLeastOneBetter
}

// constraintDominates implements §4.10's constraint-dominance rule: a
// feasible individual dominates any infeasible one; two infeasible
// individuals compare by total violation; two feasible individuals compare
// by standard Pareto dominance.
func constraintDominates(a, b Individual) bool {
	aFeasible, bFeasible := a.Feasible(), b.Feasible()
	if aFeasible && !bFeasible {
		return true
	}
	if !aFeasible && bFeasible {
		return false
	}
	if !aFeasible && !bFeasible {
		return a.TotalViolation() < b.TotalViolation()
	}
	return dominates(a, b)
}
