package dist

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/Farmhouse121/quantfit/optim"
)

// GeneralizedError is the generalized error distribution (GED). The single
// shape parameter nu controls the tail weight: nu=2 recovers the Gaussian
// (with standard deviation scale/sqrt(2)), nu=1 the Laplace, nu→∞ the
// uniform. The density is valid for every nu > 0.
type GeneralizedError struct{}

func (GeneralizedError) LogDensity(x, loc, scale float64, shape ...float64) float64 {
	nu := shape[0]
	if nu <= 0 || scale <= 0 {
		return math.Inf(-1)
	}
	lg, _ := math.Lgamma(1 / nu)
	z := math.Abs(x-loc) / scale
	return math.Log(nu) - math.Ln2 - math.Log(scale) - lg - math.Pow(z, nu)
}

func (GeneralizedError) NumShape() int { return 1 }

func (GeneralizedError) Name() string { return "GeneralizedError" }

// ShapeDomain is the optimizer-visible feasible region for a distribution's
// shape parameters: box bounds plus the same region expressed as the linear
// system A·x ≥ b, for optimizers that only accept inequality form.
type ShapeDomain interface {
	Bounds() []optim.Bound
	Constraints() (*mat.Dense, []float64)
}

// StandardGEDDomain is the conventional fit region for the GED tail
// parameter. It excludes part of the valid domain: the GED is defined for
// every positive nu, but the conventional region stops at nu=1.
type StandardGEDDomain struct{}

func (StandardGEDDomain) Bounds() []optim.Bound {
	return []optim.Bound{{Lower: 1, Upper: 10}}
}

func (d StandardGEDDomain) Constraints() (*mat.Dense, []float64) {
	return intervalConstraints(d.Bounds()[0])
}

// RelaxedGEDDomain admits every positive tail parameter. The upper bound of
// 100 is a practical cap that keeps the optimizer in a numerically stable
// region, not a theoretical limit.
type RelaxedGEDDomain struct{}

func (RelaxedGEDDomain) Bounds() []optim.Bound {
	return []optim.Bound{{Lower: 0, Upper: 100}}
}

func (d RelaxedGEDDomain) Constraints() (*mat.Dense, []float64) {
	return intervalConstraints(d.Bounds()[0])
}

// intervalConstraints encodes lower ≤ x ≤ upper as the two one-sided rows
// x ≥ lower and -x ≥ -upper.
func intervalConstraints(b optim.Bound) (*mat.Dense, []float64) {
	a := mat.NewDense(2, 1, []float64{1, -1})
	return a, []float64{b.Lower, -b.Upper}
}
