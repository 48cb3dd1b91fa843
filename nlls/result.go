package nlls

import (
	"fmt"
	"strings"
)

// FitResult is the outcome of a successful Fit: the point estimates, the
// named-parameter mapping, the degrees-of-freedom bookkeeping and the
// optimizer diagnostics.
type FitResult struct {
	// Params is the fitted parameter vector in layout order.
	Params []float64

	// ParamNames gives the parameter naming in layout order: regressor
	// names, then sigma and the extra latent variables.
	ParamNames []string

	// NamedParams maps each parameter name to its estimate.
	NamedParams map[string]float64

	// NumParams is the count of named parameters.
	NumParams int

	// DFResid is the residual degrees of freedom:
	// observations - coefficients - latent variables.
	DFResid int

	// DFModel is the model degrees of freedom:
	// total parameters - constant-term count.
	DFModel int

	// LogLik is the maximized log-likelihood.
	LogLik float64

	// AIC and BIC are the information criteria at the maximum.
	AIC float64
	BIC float64

	// Iterations and FuncEvaluations report the optimizer's effort.
	Iterations      int
	FuncEvaluations int

	// Status is the optimizer's terminal status string.
	Status string

	// Diagnostics is the evaluator state at the fitted parameters.
	Diagnostics Diagnostics
}

// Coef returns the estimate for a named parameter, with ok reporting
// whether the name exists.
func (r *FitResult) Coef(name string) (float64, bool) {
	v, ok := r.NamedParams[name]
	return v, ok
}

// Residuals returns the fitted residual series, sigma times the innovations.
func (r *FitResult) Residuals() []float64 {
	sigma, ok := r.NamedParams["sigma"]
	if !ok {
		return nil
	}
	out := make([]float64, len(r.Diagnostics.Innovation))
	for i, z := range r.Diagnostics.Innovation {
		out[i] = z * sigma
	}
	return out
}

// Summary renders a plain-text report of the fit.
func (r *FitResult) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "NLLS Regression Results\n")
	fmt.Fprintf(&b, "=======================\n")
	fmt.Fprintf(&b, "Log-likelihood: %12.4f\n", r.LogLik)
	fmt.Fprintf(&b, "AIC:            %12.4f\n", r.AIC)
	fmt.Fprintf(&b, "BIC:            %12.4f\n", r.BIC)
	fmt.Fprintf(&b, "DF (resid):     %12d\n", r.DFResid)
	fmt.Fprintf(&b, "DF (model):     %12d\n", r.DFModel)
	fmt.Fprintf(&b, "Status:         %12s (%d iterations)\n", r.Status, r.Iterations)
	fmt.Fprintf(&b, "-----------------------\n")
	for i, name := range r.ParamNames {
		fmt.Fprintf(&b, "%-12s %12.6f\n", name, r.Params[i])
	}
	return b.String()
}
