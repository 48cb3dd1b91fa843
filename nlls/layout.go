package nlls

import (
	"github.com/Farmhouse121/quantfit/pkg/errors"
)

// ParamLayout fixes the ordering of a flat parameter vector:
// [beta_0..beta_K-1, sigma, extra_0..extra_E-1]. K mean-process
// coefficients are followed by the dispersion scale and any extra
// distribution shape parameters. Split and Join are exact inverses.
type ParamLayout struct {
	k int // mean-process coefficients
	e int // extra shape parameters beyond sigma
}

// NewParamLayout creates a layout for K mean-process coefficients and E
// extra shape parameters. The dispersion parameter is always present, so
// the latent-variable count is 1+E; a configuration that would make it zero
// is a DomainError.
func NewParamLayout(k, e int) (*ParamLayout, error) {
	if k < 0 {
		return nil, errors.NewValidationError("k", "coefficient count must be non-negative", k)
	}
	if 1+e < 1 {
		return nil, errors.NewDomainError("nlls.NewParamLayout", "the number of latent variables cannot be zero")
	}
	return &ParamLayout{k: k, e: e}, nil
}

// K is the number of mean-process coefficients.
func (l *ParamLayout) K() int { return l.k }

// E is the number of extra shape parameters.
func (l *ParamLayout) E() int { return l.e }

// NumLatent is the number of latent variables: sigma plus the extras.
func (l *ParamLayout) NumLatent() int { return 1 + l.e }

// Len is the total parameter count K+1+E.
func (l *ParamLayout) Len() int { return l.k + 1 + l.e }

// Split divides params into mean-process coefficients, the dispersion scale
// and the extra shape parameters. The last 1+E entries are [sigma, extra...].
func (l *ParamLayout) Split(params []float64) (beta []float64, sigma float64, extra []float64, err error) {
	if len(params) != l.Len() {
		return nil, 0, nil, errors.NewValidationError("params", "length must equal K+1+E", len(params))
	}

	n := l.NumLatent()
	beta = params[:len(params)-n]
	sigma = params[len(params)-n]
	extra = params[len(params)-n+1:]
	return beta, sigma, extra, nil
}

// Join is the inverse of Split.
func (l *ParamLayout) Join(beta []float64, sigma float64, extra []float64) []float64 {
	params := make([]float64, 0, len(beta)+1+len(extra))
	params = append(params, beta...)
	params = append(params, sigma)
	params = append(params, extra...)
	return params
}
