// Package dist adapts univariate probability distributions to the interface
// the likelihood evaluator needs: log-density evaluation under an explicit
// location and scale, with any extra shape parameters passed through.
//
// The Normal and Student's t adapters delegate to gonum's stat/distuv. The
// generalized error distribution is implemented here because distuv has no
// equivalent.
package dist

import (
	"gonum.org/v1/gonum/stat/distuv"
)

// Distribution is a univariate probability law parameterized by location,
// scale and zero or more shape parameters.
type Distribution interface {
	// LogDensity evaluates the log of the probability density at x.
	// The shape slice must have length NumShape.
	LogDensity(x, loc, scale float64, shape ...float64) float64

	// NumShape reports how many extra shape parameters the law takes
	// beyond location and scale.
	NumShape() int

	// Name identifies the distribution in logs and summaries.
	Name() string
}

// Normal is the Gaussian law. Scale is the standard deviation.
type Normal struct{}

func (Normal) LogDensity(x, loc, scale float64, _ ...float64) float64 {
	return distuv.Normal{Mu: loc, Sigma: scale}.LogProb(x)
}

func (Normal) NumShape() int { return 0 }

func (Normal) Name() string { return "Normal" }

// StudentsT is the location-scale Student's t law. The single shape
// parameter is the degrees of freedom.
type StudentsT struct{}

func (StudentsT) LogDensity(x, loc, scale float64, shape ...float64) float64 {
	return distuv.StudentsT{Mu: loc, Sigma: scale, Nu: shape[0]}.LogProb(x)
}

func (StudentsT) NumShape() int { return 1 }

func (StudentsT) Name() string { return "StudentsT" }
