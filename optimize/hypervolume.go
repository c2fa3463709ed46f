package optimize

import "sort"

// HyperVolume2D computes the hyper-volume indicator of a 2-objective,
// minimised, non-dominated front against a reference point (§4.10): the
// area of the region dominated by the front and bounded by ref. Both
// objectives of ref must exceed every point in the front (ref is a
// worst-case corner, not a member of the front).
func HyperVolume2D(front []Individual, ref [2]float64) float64 {
	if len(front) == 0 {
		return 0
	}
	points := make([][2]float64, len(front))
	for i, ind := range front {
		points[i] = [2]float64{ind.Objectives[0], ind.Objectives[1]}
	}
	sort.Slice(points, func(i, j int) bool { return points[i][0] < points[j][0] })

	area := 0.0
	for i, p := range points {
		nextX := ref[0]
		if i+1 < len(points) {
			nextX = points[i+1][0]
		}
		area += (nextX - p[0]) * (ref[1] - p[1])
	}
	return area
}
