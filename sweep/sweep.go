// Package sweep implements the one-dimensional parameter sweep facility:
// vary a single named parameter of a base design over a range, evaluate
// an objective at each sample, and report sensitivity and trend (§4.11).
package sweep

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Objective evaluates one parameter value into a scalar objective (e.g.
// F3, volume). It must be pure, mirroring optimize.Evaluator.
type Objective func(paramValue float64) (float64, error)

// Trend classifies the shape of a sweep's objective series (§4.11).
type Trend int

const (
	Monotone Trend = iota
	UShape
	Plateau
)

func (t Trend) String() string {
	switch t {
	case Monotone:
		return "monotone"
	case UShape:
		return "u-shape"
	case Plateau:
		return "plateau"
	default:
		return fmt.Sprintf("sweep.Trend(%d)", int(t))
	}
}

// Result is one parameter's swept response (§4.11).
type Result struct {
	ParamValues []float64
	Objective   []float64
	Sensitivity []float64 // normalised Δobjective/Δparameter, fractional-change scaled
	Trend       Trend
	GoodEnough  []bool // true where the sample is within the good-enough band of the best
}

// Run samples obj at n log- or linearly-spaced points between lo and hi
// (inclusive), and reduces the series to sensitivity, trend, and a
// "good enough" band (§4.11).
func Run(obj Objective, lo, hi float64, n int, log bool, goodEnoughFraction float64) (Result, error) {
	if n < 2 {
		return Result{}, fmt.Errorf("sweep: step count must be at least 2, got %d", n)
	}
	if hi <= lo {
		return Result{}, fmt.Errorf("sweep: hi (%g) must exceed lo (%g)", hi, lo)
	}

	values := make([]float64, n)
	if log {
		logLo, logHi := math.Log(lo), math.Log(hi)
		for i := 0; i < n; i++ {
			frac := float64(i) / float64(n-1)
			values[i] = math.Exp(logLo + frac*(logHi-logLo))
		}
	} else {
		for i := 0; i < n; i++ {
			frac := float64(i) / float64(n-1)
			values[i] = lo + frac*(hi-lo)
		}
	}

	series := make([]float64, n)
	for i, v := range values {
		y, err := obj(v)
		if err != nil {
			return Result{}, fmt.Errorf("sweep: evaluating parameter=%g: %w", v, err)
		}
		series[i] = y
	}

	sensitivity := normalizedSensitivity(values, series)
	trend := classifyTrend(series)
	goodEnough := goodEnoughBand(series, goodEnoughFraction)

	return Result{
		ParamValues: values,
		Objective:   series,
		Sensitivity: sensitivity,
		Trend:       trend,
		GoodEnough:  goodEnough,
	}, nil
}

// normalizedSensitivity returns, for each interior sample, the fractional
// change in objective per fractional change in parameter:
//
//	((y[i+1]-y[i-1])/y[i]) / ((x[i+1]-x[i-1])/x[i])
//
// with the differences taken directly in a loop; endpoints use a
// one-sided difference (§4.11).
func normalizedSensitivity(x, y []float64) []float64 {
	n := len(x)
	out := make([]float64, n)
	dy := make([]float64, n)
	copy(dy, y)
	// central differences in the interior, one-sided at the endpoints
	for i := 0; i < n; i++ {
		var num, den float64
		switch {
		case i == 0:
			num = y[1] - y[0]
			den = x[1] - x[0]
		case i == n-1:
			num = y[n-1] - y[n-2]
			den = x[n-1] - x[n-2]
		default:
			num = y[i+1] - y[i-1]
			den = x[i+1] - x[i-1]
		}
		if y[i] == 0 || x[i] == 0 || den == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = (num / y[i]) / (den / x[i])
	}
	return out
}

// classifyTrend labels a series monotone, U-shaped, or a plateau (§4.11):
// plateau when the peak-to-peak variation is under 1% of the series mean;
// monotone when the series never reverses direction beyond noise;
// U-shape otherwise (one or more reversals).
func classifyTrend(series []float64) Trend {
	if len(series) < 2 {
		return Plateau
	}
	mean := floats.Sum(series) / float64(len(series))
	lo, hi := floats.Min(series), floats.Max(series)
	if mean != 0 && (hi-lo)/math.Abs(mean) < 0.01 {
		return Plateau
	}

	signChanges := 0
	prevSign := 0
	noise := (hi - lo) * 0.02
	for i := 1; i < len(series); i++ {
		d := series[i] - series[i-1]
		if math.Abs(d) < noise {
			continue
		}
		sign := 1
		if d < 0 {
			sign = -1
		}
		if prevSign != 0 && sign != prevSign {
			signChanges++
		}
		prevSign = sign
	}
	if signChanges == 0 {
		return Monotone
	}
	return UShape
}

// goodEnoughBand marks every sample within fraction of the best (minimum)
// objective value, the heuristic "good enough" band of §4.11.
func goodEnoughBand(series []float64, fraction float64) []bool {
	best := floats.Min(series)
	out := make([]bool, len(series))
	threshold := best * (1 + fraction)
	if best < 0 {
		threshold = best * (1 - fraction)
	}
	for i, v := range series {
		out[i] = v <= threshold
	}
	return out
}
