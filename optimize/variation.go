package optimize

import (
	"math"
	"math/rand/v2"

	"github.com/wokhouse/viberesp-sub001/paramspace"
)

// sbxCrossover performs simulated binary crossover (§4.10) on two parent
// vectors, producing two children, with distribution index eta. Each gene
// independently crosses with probability 0.5, mirroring the classical
// NSGA-II reference implementation.
func sbxCrossover(rng *rand.Rand, a, b []float64, slots []paramspace.Slot, eta float64) ([]float64, []float64) {
	childA := append([]float64(nil), a...)
	childB := append([]float64(nil), b...)
	for i := range a {
		if rng.Float64() > 0.5 {
			continue
		}
		if math.Abs(a[i]-b[i]) < 1e-14 {
			continue
		}
		x1, x2 := a[i], b[i]
		if x1 > x2 {
			x1, x2 = x2, x1
		}
		lo, hi := slots[i].Min, slots[i].Max
		u := rng.Float64()
		beta := sbxBeta(u, eta)
		c1 := 0.5 * ((x1 + x2) - beta*(x2-x1))
		c2 := 0.5 * ((x1 + x2) + beta*(x2-x1))
		childA[i] = slots[i].Clamp(clampRange(c1, lo, hi))
		childB[i] = slots[i].Clamp(clampRange(c2, lo, hi))
	}
	return childA, childB
}

func sbxBeta(u, eta float64) float64 {
	if u <= 0.5 {
		return math.Pow(2*u, 1/(eta+1))
	}
	return math.Pow(1/(2*(1-u)), 1/(eta+1))
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// polynomialMutation applies polynomial mutation (§4.10) in place, with
// distribution index eta and per-gene probability 1/len(x).
func polynomialMutation(rng *rand.Rand, x []float64, slots []paramspace.Slot, eta float64) {
	pMutate := 1.0 / float64(len(x))
	for i := range x {
		if rng.Float64() > pMutate {
			continue
		}
		lo, hi := slots[i].Min, slots[i].Max
		if hi <= lo {
			continue
		}
		u := rng.Float64()
		delta1 := (x[i] - lo) / (hi - lo)
		delta2 := (hi - x[i]) / (hi - lo)
		var deltaQ float64
		if u < 0.5 {
			val := 2*u + (1-2*u)*math.Pow(1-delta1, eta+1)
			deltaQ = math.Pow(val, 1/(eta+1)) - 1
		} else {
			val := 2*(1-u) + 2*(u-0.5)*math.Pow(1-delta2, eta+1)
			deltaQ = 1 - math.Pow(val, 1/(eta+1))
		}
		x[i] = slots[i].Clamp(x[i] + deltaQ*(hi-lo))
	}
}

// binaryTournament picks the better of two random candidates by
// constraint dominance, falling back to crowding distance within the same
// rank (§4.10).
func binaryTournament(rng *rand.Rand, population []Individual) Individual {
	i, j := rng.IntN(len(population)), rng.IntN(len(population))
	a, b := population[i], population[j]
	if a.Rank != b.Rank {
		if a.Rank < b.Rank {
			return a
		}
		return b
	}
	if a.Crowding > b.Crowding {
		return a
	}
	return b
}
