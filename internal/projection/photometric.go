package projection

import (
	"math"

	"gonum.org/v1/gonum/interp"
)

const photoSamples = 10

// photoTable is a piecewise-linear limb-darkening lookup over the cosine
// of the angle between surface normal and observer.
type photoTable struct {
	last float64
	pl   interp.PiecewiseLinear
}

// limbDarkening is the brightness of a surface element seen at cos(angle) = mu.
func limbDarkening(mu float64) float64 {
	return math.Sqrt(mu)
}

func newPhotoTable() *photoTable {
	xs := make([]float64, photoSamples)
	ys := make([]float64, photoSamples)
	for i := range xs {
		xs[i] = float64(i) / float64(photoSamples-1)
		ys[i] = limbDarkening(xs[i])
	}
	t := &photoTable{last: xs[photoSamples-1]}
	if err := t.pl.Fit(xs, ys); err != nil {
		// xs is strictly increasing and the same length as ys.
		panic(err)
	}
	return t
}

// Lookup returns 0 for unlit points (mu < 0), 1 at or past the last sample.
func (t *photoTable) Lookup(mu float64) float64 {
	if mu < 0 || math.IsNaN(mu) {
		return 0
	}
	if mu >= t.last {
		return 1
	}
	return t.pl.Predict(mu)
}
