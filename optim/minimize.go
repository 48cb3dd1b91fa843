// Package optim wraps gonum's optimize package with box bounds and optional
// linear inequality constraints. It is a thin shim, not a solver: infeasible
// points are mapped to +Inf and the wrapped method never sees them as
// candidates for the minimum.
package optim

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"

	"github.com/Farmhouse121/quantfit/pkg/errors"
)

// Bound is a closed interval for a single parameter.
type Bound struct {
	Lower float64
	Upper float64
}

// Unbounded returns the interval (-Inf, +Inf).
func Unbounded() Bound {
	return Bound{Lower: math.Inf(-1), Upper: math.Inf(1)}
}

// Contains reports whether x lies inside the bound.
func (b Bound) Contains(x float64) bool {
	return x >= b.Lower && x <= b.Upper
}

// Constraints is a linear inequality system over the parameter vector.
// The convention is A·x ≥ b, one inequality per row of A.
type Constraints struct {
	A *mat.Dense
	B []float64
}

// Satisfied reports whether x satisfies every row of the system.
func (c *Constraints) Satisfied(x []float64) bool {
	if c == nil || c.A == nil {
		return true
	}
	rows, cols := c.A.Dims()
	if cols != len(x) {
		return false
	}
	var ax mat.VecDense
	ax.MulVec(c.A, mat.NewVecDense(len(x), x))
	for i := 0; i < rows; i++ {
		if ax.AtVec(i) < c.B[i] {
			return false
		}
	}
	return true
}

// Problem describes a bounded minimization.
type Problem struct {
	// Objective is the scalar function to minimize. Non-finite values are
	// treated as infeasible.
	Objective func(x []float64) float64

	// Start is the initial parameter vector. It is clamped into Bounds
	// before the first evaluation.
	Start []float64

	// Bounds gives one interval per parameter. Nil means unbounded.
	Bounds []Bound

	// Linear is an optional inequality system A·x ≥ b.
	Linear *Constraints

	// MaxIterations caps the major iterations. Zero means DefaultMaxIterations.
	MaxIterations int

	// Method selects the gonum optimizer. Nil means Nelder-Mead, which
	// tolerates the infinite penalty without gradient information.
	Method optimize.Method
}

// DefaultMaxIterations is the iteration budget used when none is given.
const DefaultMaxIterations = 1000

// Result reports the terminal state of a minimization.
type Result struct {
	// X is the best parameter vector found.
	X []float64

	// F is the objective value at X.
	F float64

	// Converged is true when the optimizer stopped on a convergence
	// criterion rather than the iteration budget or a failure.
	Converged bool

	// Status is the optimizer's terminal status.
	Status optimize.Status

	// Iterations is the number of major iterations performed.
	Iterations int

	// FuncEvaluations is the number of objective evaluations.
	FuncEvaluations int
}

// Minimize runs a bounded, optionally constrained minimization. Optimizer
// failures are surfaced unmodified; the returned Result is valid even when
// err is non-nil so callers can inspect the last point evaluated.
func Minimize(p Problem) (*Result, error) {
	n := len(p.Start)
	if n == 0 {
		return nil, errors.NewValidationError("start", "start vector must not be empty", n)
	}
	if p.Bounds != nil && len(p.Bounds) != n {
		return nil, errors.NewValidationError("bounds", "bounds length must match start length", len(p.Bounds))
	}
	if p.Objective == nil {
		return nil, errors.NewValueError("optim.Minimize", "objective function is nil")
	}

	start := clampToBounds(p.Start, p.Bounds)

	wrapped := func(x []float64) float64 {
		if !feasible(x, p.Bounds, p.Linear) {
			return math.Inf(1)
		}
		f := p.Objective(x)
		if math.IsNaN(f) {
			return math.Inf(1)
		}
		return f
	}

	maxIter := p.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}

	method := p.Method
	if method == nil {
		method = &optimize.NelderMead{}
	}

	problem := optimize.Problem{Func: wrapped}
	settings := &optimize.Settings{MajorIterations: maxIter}

	result, err := optimize.Minimize(problem, start, settings, method)
	if result == nil {
		return nil, err
	}

	out := &Result{
		X:               result.X,
		F:               result.F,
		Status:          result.Status,
		Iterations:      result.MajorIterations,
		FuncEvaluations: result.FuncEvaluations,
	}
	out.Converged = err == nil && converged(result.Status)

	return out, err
}

func converged(s optimize.Status) bool {
	switch s {
	case optimize.IterationLimit, optimize.FunctionEvaluationLimit,
		optimize.RuntimeLimit, optimize.Failure, optimize.NotTerminated:
		return false
	}
	return true
}

func feasible(x []float64, bounds []Bound, linear *Constraints) bool {
	for i, b := range bounds {
		if !b.Contains(x[i]) {
			return false
		}
	}
	return linear.Satisfied(x)
}

func clampToBounds(start []float64, bounds []Bound) []float64 {
	out := make([]float64, len(start))
	copy(out, start)
	for i, b := range bounds {
		out[i] = errors.ClipValue(out[i], b.Lower, b.Upper)
	}
	return out
}
