package optimize

import (
	"math"
	"sort"
)

// nonDominatedSort partitions population into fronts F1, F2, ... under
// constraintDominates, the fast non-dominated sort of NSGA-II generalised
// to constraint dominance (§4.10). Each individual's Rank is set to its
// front index (0-based).
func nonDominatedSort(population []Individual) [][]int {
	n := len(population)
	dominatedBy := make([][]int, n)
	dominationCount := make([]int, n)
	var fronts [][]int
	front0 := []int{}

	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			if p == q {
				continue
			}
			if constraintDominates(population[p], population[q]) {
				dominatedBy[p] = append(dominatedBy[p], q)
			} else if constraintDominates(population[q], population[p]) {
				dominationCount[p]++
			}
		}
		if dominationCount[p] == 0 {
			population[p].Rank = 0
			front0 = append(front0, p)
		}
	}
	fronts = append(fronts, front0)

	i := 0
	for len(fronts[i]) > 0 {
		var next []int
		for _, p := range fronts[i] {
			for _, q := range dominatedBy[p] {
				dominationCount[q]--
				if dominationCount[q] == 0 {
					population[q].Rank = i + 1
					next = append(next, q)
				}
			}
		}
		i++
		if len(next) == 0 {
			break
		}
		fronts = append(fronts, next)
	}
	return fronts
}

// crowdingDistance computes and assigns the crowding distance (§4.10) of
// every individual in one front, indexed by position in population.
func crowdingDistance(population []Individual, front []int) {
	if len(front) == 0 {
		return
	}
	for _, idx := range front {
		population[idx].Crowding = 0
	}
	if len(front) <= 2 {
		for _, idx := range front {
			population[idx].Crowding = math.Inf(1)
		}
		return
	}
	nObjectives := len(population[front[0]].Objectives)
	for m := 0; m < nObjectives; m++ {
		ordered := append([]int(nil), front...)
		sort.Slice(ordered, func(i, j int) bool {
			return population[ordered[i]].Objectives[m] < population[ordered[j]].Objectives[m]
		})
		lo := population[ordered[0]].Objectives[m]
		hi := population[ordered[len(ordered)-1]].Objectives[m]
		population[ordered[0]].Crowding = math.Inf(1)
		population[ordered[len(ordered)-1]].Crowding = math.Inf(1)
		span := hi - lo
		if span == 0 {
			continue
		}
		for i := 1; i < len(ordered)-1; i++ {
			prevObj := population[ordered[i-1]].Objectives[m]
			nextObj := population[ordered[i+1]].Objectives[m]
			population[ordered[i]].Crowding += (nextObj - prevObj) / span
		}
	}
}

