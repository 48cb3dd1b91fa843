// Package garch provides the optimizer-visible feasible region for
// GARCH-family volatility models: box bounds scaled to the empirical
// residual magnitude, plus the linear inequality system that keeps the
// variance process positive and stationary.
//
// The parameter vector covered by these policies is ordered
// [omega, alpha_1..alpha_p, gamma_1..gamma_o, beta_1..beta_q]: the variance
// intercept, the symmetric shock coefficients, the asymmetric (leverage)
// coefficients and the lag coefficients. The inequality convention is
// A·x ≥ b.
package garch

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/Farmhouse121/quantfit/optim"
	"github.com/Farmhouse121/quantfit/pkg/errors"
)

// VarianceBounder produces the feasible region for a volatility model's
// latent parameters. The estimator driver depends only on this interface,
// never on a concrete model variant.
type VarianceBounder interface {
	// Bounds returns one interval per latent parameter, scaled to the
	// supplied residual series.
	Bounds(resids []float64) []optim.Bound

	// Constraints returns the linear inequality system A·x ≥ b over the
	// same parameters.
	Constraints() (*mat.Dense, []float64)
}

// Model is a GARCH(p, o, q) volatility specification: p symmetric shock
// terms, o asymmetric terms, q variance lags. Power is the exponent applied
// to absolute residuals when scaling the variance-intercept bound; 2 targets
// the variance.
type Model struct {
	P     int
	O     int
	Q     int
	Power float64
}

// New creates a GARCH(p, o, q) model with Power 2.
func New(p, o, q int) (*Model, error) {
	if p < 0 || o < 0 || q < 0 {
		return nil, errors.NewValidationError("order", "orders must be non-negative", [3]int{p, o, q})
	}
	if p+o+q == 0 {
		return nil, errors.NewDomainError("garch.New", "at least one of p, o, q must be positive")
	}
	return &Model{P: p, O: o, Q: q, Power: 2}, nil
}

// NumParams is the number of latent parameters: the variance intercept plus
// one coefficient per order term.
func (m *Model) NumParams() int {
	return 1 + m.P + m.O + m.Q
}

// Bounds returns the base feasible box: the variance intercept scaled to
// v = mean(|resids|^power), shock coefficients in [0, 1], asymmetric
// coefficients in [-1, 2], lag coefficients in [0, 1].
func (m *Model) Bounds(resids []float64) []optim.Bound {
	v := m.residualScale(resids)
	bounds := make([]optim.Bound, 0, m.NumParams())
	bounds = append(bounds, optim.Bound{Lower: 1e-8 * v, Upper: 10 * v})
	for i := 0; i < m.P; i++ {
		bounds = append(bounds, optim.Bound{Lower: 0, Upper: 1})
	}
	for i := 0; i < m.O; i++ {
		bounds = append(bounds, optim.Bound{Lower: -1, Upper: 2})
	}
	for i := 0; i < m.Q; i++ {
		bounds = append(bounds, optim.Bound{Lower: 0, Upper: 1})
	}
	return bounds
}

// Constraints returns the base inequality system, (p+o+q+2) rows over the
// (p+o+q+1) latent parameters:
//
//	rows 0..k:   each parameter ≥ 0, except that the asymmetric rows read
//	             alpha_i + gamma_i ≥ 0 when a matching alpha exists
//	row  k+1:    -Σalpha - ½Σgamma - Σbeta ≥ -1 (persistence below one)
//
// where k = p+o+q.
func (m *Model) Constraints() (*mat.Dense, []float64) {
	k := m.P + m.O + m.Q
	a := mat.NewDense(k+2, k+1, nil)
	for i := 0; i <= k; i++ {
		a.Set(i, i, 1)
	}
	for i := 0; i < m.O; i++ {
		if i < m.P {
			a.Set(i+m.P+1, i+1, 1)
		}
	}
	for j := 1; j <= k; j++ {
		a.Set(k+1, j, -1)
	}
	for j := m.P + 1; j <= m.P+m.O; j++ {
		a.Set(k+1, j, -0.5)
	}
	b := make([]float64, k+2)
	b[k+1] = -1
	return a, b
}

func (m *Model) residualScale(resids []float64) float64 {
	if len(resids) == 0 {
		return 1
	}
	powered := make([]float64, len(resids))
	for i, r := range resids {
		powered[i] = math.Pow(math.Abs(r), m.Power)
	}
	return stat.Mean(powered, nil)
}

// Relaxed widens the feasible region of the base model so that fits rarely
// pin coefficients exactly at a boundary, which would bias standard-error
// estimates.
type Relaxed struct {
	*Model
}

// NewRelaxed creates the relaxed variant of a GARCH(p, o, q) model.
func NewRelaxed(p, o, q int) (*Relaxed, error) {
	m, err := New(p, o, q)
	if err != nil {
		return nil, err
	}
	return &Relaxed{Model: m}, nil
}

// Bounds widens every order coefficient to [-1, 2]; the variance-intercept
// interval keeps the base model's residual scaling.
func (m *Relaxed) Bounds(resids []float64) []optim.Bound {
	v := m.residualScale(resids)
	bounds := make([]optim.Bound, 0, m.NumParams())
	bounds = append(bounds, optim.Bound{Lower: 1e-8 * v, Upper: 10 * v})
	for i := 0; i < m.P+m.O+m.Q; i++ {
		bounds = append(bounds, optim.Bound{Lower: -1, Upper: 2})
	}
	return bounds
}

// Constraints inherits the base system and relaxes the alpha and gamma
// non-negativity rows (indices 1..p+o) to ≥ -1, matching the widened lower
// bound.
func (m *Relaxed) Constraints() (*mat.Dense, []float64) {
	a, b := m.Model.Constraints()
	for i := 1; i <= m.P+m.O; i++ {
		b[i] = -1
	}
	return a, b
}
