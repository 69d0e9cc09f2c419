package projection

import "math"

const (
	solverTolerance = 1e-5
	solverMaxIter   = 100
)

// newton refines x0 toward a root of f until the step falls to tol. An
// iterate beyond ±limit stops the search at that boundary. It returns false
// when the search hit the boundary, the derivative vanished, or maxIter
// steps did not converge.
func newton(f, df func(float64) float64, x0, tol, limit float64, maxIter int) (float64, bool) {
	x := x0
	for i := 0; i < maxIter; i++ {
		d := df(x)
		if d == 0 || math.IsNaN(d) {
			return x, false
		}
		step := -f(x) / d
		x += step
		if math.IsNaN(x) {
			return x0, false
		}
		if math.Abs(x) > limit {
			return math.Copysign(limit, x), false
		}
		if math.Abs(step) <= tol {
			return x, true
		}
	}
	return x, false
}

// bracketStart chooses the Newton start for a root lying in (0, bound] or
// [-bound, 0): it returns +delta or -delta when f changes sign between that
// start and the matching boundary, and false when neither side brackets.
func bracketStart(f func(float64) float64, delta, bound float64) (float64, bool) {
	if f(delta)*f(bound) < 0 {
		return delta, true
	}
	if f(-delta)*f(-bound) < 0 {
		return -delta, true
	}
	return 0, false
}

// scanLatitudes evaluates f on n latitudes spaced evenly over [-π/2, π/2]
// and widens [lo, hi] to include every value f reports.
func scanLatitudes(n int, lo, hi float64, f func(lat float64) (float64, bool)) (float64, float64) {
	for i := 0; i < n; i++ {
		lat := float64(i)*math.Pi/float64(n-1) - math.Pi/2
		v, ok := f(lat)
		if !ok {
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// rimTolerance absorbs rounding for points the forward mapping places exactly
// on a disk edge.
const rimTolerance = 1e-9

// unitArg clamps an asin/acos argument into [-1, 1]. Values further out than
// rimTolerance, or NaN, are off the disk.
func unitArg(v float64) (float64, bool) {
	if !(math.Abs(v) <= 1+rimTolerance) {
		return 0, false
	}
	return math.Max(-1, math.Min(1, v)), true
}
