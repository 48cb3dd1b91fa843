// Package nlls fits non-linear least-squares models by maximum likelihood.
//
// The estimator regresses a univariate response on a design matrix under an
// explicit error distribution, treating the dispersion of the errors (and
// any extra distribution shape parameters) as latent variables appended to
// the parameter vector. With the default linear mean process and Normal
// errors the fit is equivalent to OLS, only slower; the value of the method
// is that the mean process and the error distribution are both swappable.
//
// The regression is performed by a bounded derivative-free minimizer and in
// practice can be brittle: if the default start parameters or latent-variable
// bounds are wrong for your model, supply your own.
package nlls

import (
	"log/slog"
	"math"
	"strconv"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"

	"github.com/Farmhouse121/quantfit/dist"
	"github.com/Farmhouse121/quantfit/optim"
	"github.com/Farmhouse121/quantfit/pkg/errors"
	"github.com/Farmhouse121/quantfit/pkg/log"
)

// epsilon is the strictly positive lower bound given to the dispersion
// parameter so the optimizer cannot collapse it to zero.
const epsilon = 1e-7

// MeanFunc computes the mean-process prediction from the design matrix and
// the mean-process coefficients. Replace it to fit a mean process that is
// nonlinear in the covariates; the rest of the estimator is unaffected.
type MeanFunc func(exog *mat.Dense, beta []float64) []float64

// Diagnostics is the evaluator state recorded by the most recent likelihood
// evaluation: the parameter vector, the mean prediction and the scaled
// innovation series.
type Diagnostics struct {
	Params     []float64
	Mean       []float64
	Innovation []float64
}

// NLLS is a maximum-likelihood regression estimator for a univariate
// response. One instance supports one Fit at a time; concurrent fits need
// one estimator per goroutine.
type NLLS struct {
	endog []float64
	exog  *mat.Dense

	distribution dist.Distribution
	exogNames    []string
	latentNames  []string
	layout       *ParamLayout
	kConstant    int
	meanFunc     MeanFunc
	logger       *slog.Logger

	dfResid int
	dfModel int

	diag Diagnostics
}

// Option configures an NLLS estimator at construction.
type Option func(*NLLS)

// WithDistribution sets the error distribution. The default is the Normal.
func WithDistribution(d dist.Distribution) Option {
	return func(m *NLLS) { m.distribution = d }
}

// WithExtraParams declares extra latent variables beyond sigma, by name.
// They are appended to the parameter vector after sigma and forwarded to the
// distribution as shape arguments.
func WithExtraParams(names ...string) Option {
	return func(m *NLLS) { m.latentNames = append([]string{"sigma"}, names...) }
}

// WithExogNames sets the mean-process regressor names used in the fitted
// result. The default is const, x1, x2, ...
func WithExogNames(names ...string) Option {
	return func(m *NLLS) { m.exogNames = names }
}

// WithMeanFunc replaces the linear mean process.
func WithMeanFunc(f MeanFunc) Option {
	return func(m *NLLS) { m.meanFunc = f }
}

// WithLogger sets the structured logger used during fitting.
func WithLogger(logger *slog.Logger) Option {
	return func(m *NLLS) { m.logger = logger }
}

// New creates an NLLS estimator for the response endog and design matrix
// exog. Only univariate responses are supported: endog must be a single
// column. A nil exog substitutes a constant column of ones.
func New(endog mat.Matrix, exog mat.Matrix, opts ...Option) (*NLLS, error) {
	if endog == nil {
		return nil, errors.NewValidationError("endog", "response must not be nil", nil)
	}
	n, c := endog.Dims()
	if c != 1 {
		return nil, errors.NewValidationError("endog", "only univariate processes are supported", c)
	}
	if n == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "NLLS.New")
	}

	m := &NLLS{
		endog:        make([]float64, n),
		distribution: dist.Normal{},
		latentNames:  []string{"sigma"},
		logger:       slog.Default(),
	}
	for i := 0; i < n; i++ {
		m.endog[i] = endog.At(i, 0)
	}

	if exog == nil {
		ones := make([]float64, n)
		for i := range ones {
			ones[i] = 1
		}
		m.exog = mat.NewDense(n, 1, ones)
	} else {
		r, k := exog.Dims()
		if r != n {
			return nil, errors.NewDimensionError("NLLS.New", n, r, 0)
		}
		if k == 0 {
			return nil, errors.Wrap(errors.ErrEmptyData, "NLLS.New: exog has no columns")
		}
		m.exog = mat.DenseCopyOf(exog)
	}

	for _, opt := range opts {
		opt(m)
	}

	_, k := m.exog.Dims()
	e := len(m.latentNames) - 1

	if m.distribution.NumShape() > e {
		return nil, errors.NewValidationError("extra_params",
			"distribution requires more shape parameters than declared", e)
	}

	layout, err := NewParamLayout(k, e)
	if err != nil {
		return nil, err
	}
	m.layout = layout

	if m.meanFunc == nil {
		m.meanFunc = linearMean
	}
	if m.exogNames == nil {
		m.exogNames = defaultExogNames(m.exog)
	} else if len(m.exogNames) != k {
		return nil, errors.NewValidationError("exog_names", "one name per regressor column required", len(m.exogNames))
	}
	if constantColumn(m.exog) >= 0 {
		m.kConstant = 1
	}

	// Degrees of freedom are fixed at construction: the latent variables
	// count against the residual degrees of freedom, and the constant does
	// not count toward the model degrees of freedom.
	m.dfResid = n - k - layout.NumLatent()
	m.dfModel = layout.Len() - m.kConstant

	return m, nil
}

// Layout returns the estimator's parameter layout.
func (m *NLLS) Layout() *ParamLayout { return m.layout }

// NumObs is the number of observations.
func (m *NLLS) NumObs() int { return len(m.endog) }

// DFResid is the residual degrees of freedom: observations minus model
// parameters minus latent variables.
func (m *NLLS) DFResid() int { return m.dfResid }

// DFModel is the model degrees of freedom: total parameters minus the
// constant-term count.
func (m *NLLS) DFModel() int { return m.dfModel }

// ParamNames returns the full parameter naming, regressors then latents.
func (m *NLLS) ParamNames() []string {
	names := make([]string, 0, m.layout.Len())
	names = append(names, m.exogNames...)
	names = append(names, m.latentNames...)
	return names
}

// Predict returns the mean-process prediction. A nil exog uses the stored
// design matrix; nil params use the last-evaluated parameter vector.
func (m *NLLS) Predict(exog *mat.Dense, params []float64) ([]float64, error) {
	if params == nil {
		if m.diag.Params == nil {
			return nil, errors.NewValueError("NLLS.Predict", "no parameters set; pass params or call Fit first")
		}
		params = m.diag.Params
	}
	beta, _, _, err := m.layout.Split(params)
	if err != nil {
		return nil, err
	}
	x := exog
	if x == nil {
		x = m.exog
	}
	return m.meanFunc(x, beta), nil
}

// NegLogLikelihood returns the per-observation negative log-likelihood at
// params. The distribution is located at zero because the mean process
// already explains location; only dispersion and shape remain. Each call
// records the evaluated parameters, mean and innovations as diagnostics.
func (m *NLLS) NegLogLikelihood(params []float64) ([]float64, error) {
	beta, sigma, extra, err := m.layout.Split(params)
	if err != nil {
		return nil, err
	}

	mean := m.meanFunc(m.exog, beta)

	n := len(m.endog)
	resid := make([]float64, n)
	floats.SubTo(resid, m.endog, mean)

	innovation := make([]float64, n)
	copy(innovation, resid)
	floats.Scale(1/sigma, innovation)

	m.diag = Diagnostics{
		Params:     append([]float64(nil), params...),
		Mean:       mean,
		Innovation: innovation,
	}

	nll := make([]float64, n)
	for i, r := range resid {
		nll[i] = -m.distribution.LogDensity(r, 0, sigma, extra...)
	}
	return nll, nil
}

// Diagnostics returns a copy of the evaluator state recorded by the most
// recent likelihood evaluation.
func (m *NLLS) Diagnostics() Diagnostics {
	return Diagnostics{
		Params:     append([]float64(nil), m.diag.Params...),
		Mean:       append([]float64(nil), m.diag.Mean...),
		Innovation: append([]float64(nil), m.diag.Innovation...),
	}
}

// DefaultStartParams synthesizes the start vector used when Fit is not given
// one: zero mean coefficients, the sample standard deviation for sigma, one
// for each extra parameter. When the design matrix carries a constant column
// the first coefficient starts at the sample mean instead. Seeding sigma
// from the sample standard deviation stabilizes convergence across scales.
func (m *NLLS) DefaultStartParams() []float64 {
	k := m.layout.K()
	start := make([]float64, 0, m.layout.Len())
	for i := 0; i < k; i++ {
		start = append(start, 0)
	}
	start = append(start, stat.StdDev(m.endog, nil))
	for i := 0; i < m.layout.E(); i++ {
		start = append(start, 1)
	}
	if m.kConstant > 0 {
		start[0] = stat.Mean(m.endog, nil)
	}
	return start
}

// DefaultBounds synthesizes the bounds used when Fit is not given any:
// unconstrained mean coefficients, a strictly positive dispersion, and
// unconstrained extra parameters. The extra-parameter default assumes an
// unrestricted shape domain; override it when that is wrong.
func (m *NLLS) DefaultBounds() []optim.Bound {
	bounds := make([]optim.Bound, 0, m.layout.Len())
	for i := 0; i < m.layout.K(); i++ {
		bounds = append(bounds, optim.Unbounded())
	}
	bounds = append(bounds, optim.Bound{Lower: epsilon, Upper: math.Inf(1)})
	for i := 0; i < m.layout.E(); i++ {
		bounds = append(bounds, optim.Unbounded())
	}
	return bounds
}

// FitOption configures a single Fit call.
type FitOption func(*fitOptions)

type fitOptions struct {
	start   []float64
	bounds  []optim.Bound
	linear  *optim.Constraints
	maxIter int
	domain  dist.ShapeDomain
}

// WithStartParams sets the start parameter vector.
func WithStartParams(start []float64) FitOption {
	return func(o *fitOptions) { o.start = start }
}

// WithBounds sets the per-parameter box bounds.
func WithBounds(bounds []optim.Bound) FitOption {
	return func(o *fitOptions) { o.bounds = bounds }
}

// WithConstraints adds a linear inequality system A·x ≥ b over the full
// parameter vector.
func WithConstraints(c *optim.Constraints) FitOption {
	return func(o *fitOptions) { o.linear = c }
}

// WithMaxIter caps the optimizer's major iterations. The default is 1000.
func WithMaxIter(maxIter int) FitOption {
	return func(o *fitOptions) { o.maxIter = maxIter }
}

// WithShapeDomain restricts the extra shape parameters to the feasible
// region a distribution policy declares, leaving the coefficient and sigma
// bounds at their defaults (or whatever WithBounds supplied).
func WithShapeDomain(domain dist.ShapeDomain) FitOption {
	return func(o *fitOptions) { o.domain = domain }
}

// Fit runs the regression: it synthesizes default start parameters and
// bounds where none are supplied, minimizes the mean per-observation
// negative log-likelihood under those bounds, and packages the fitted
// result. Optimizer failures surface as a ConvergenceError carrying the
// last evaluated parameter vector; re-seeding is the caller's
// responsibility.
func (m *NLLS) Fit(opts ...FitOption) (*FitResult, error) {
	cfg := fitOptions{maxIter: 1000}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.start == nil {
		cfg.start = m.DefaultStartParams()
	}
	if cfg.bounds == nil {
		cfg.bounds = m.DefaultBounds()
		if m.layout.E() > 0 && cfg.domain == nil {
			errors.Warn(errors.NewUnboundedShapeWarning("NLLS.Fit", m.latentNames[1:]))
		}
	}
	nparams := m.layout.Len()
	if len(cfg.start) != nparams {
		return nil, errors.NewValidationError("start_params", "length must equal the total parameter count", len(cfg.start))
	}
	if len(cfg.bounds) != nparams {
		return nil, errors.NewValidationError("bounds", "length must equal the total parameter count", len(cfg.bounds))
	}
	if cfg.domain != nil {
		if err := m.applyShapeDomain(cfg.bounds, cfg.domain); err != nil {
			return nil, err
		}
	}

	n := len(m.endog)
	began := time.Now()
	m.logger.Info("fit started",
		log.ModelNameKey, "NLLS",
		log.OperationKey, "fit",
		log.DistributionKey, m.distribution.Name(),
		log.SamplesKey, n,
		log.RegressorsKey, m.layout.K(),
		log.LatentKey, m.layout.NumLatent(),
	)

	objective := func(x []float64) float64 {
		nll, err := m.NegLogLikelihood(x)
		if err != nil {
			return math.Inf(1)
		}
		return floats.Sum(nll) / float64(n)
	}

	result, err := optim.Minimize(optim.Problem{
		Objective:     objective,
		Start:         cfg.start,
		Bounds:        cfg.bounds,
		Linear:        cfg.linear,
		MaxIterations: cfg.maxIter,
	})
	if err != nil && result == nil {
		return nil, err
	}
	if err != nil || !result.Converged {
		status := result.Status.String()
		if result.Status == optimize.IterationLimit {
			errors.Warn(errors.NewConvergenceWarning("NLLS.Fit", result.Iterations, ""))
		}
		return nil, errors.NewConvergenceError("NLLS.Fit", result.Iterations, status, result.X)
	}

	if ferr := errors.CheckNumericalStability("NLLS.Fit", result.X, result.Iterations); ferr != nil {
		return nil, ferr
	}

	// Re-evaluate at the solution so the diagnostics record reflects the
	// fitted parameters rather than the optimizer's last trial point.
	nll, nerr := m.NegLogLikelihood(result.X)
	if nerr != nil {
		return nil, nerr
	}
	loglik := -floats.Sum(nll)

	names := m.ParamNames()
	named := make(map[string]float64, len(names))
	for i, name := range names {
		named[name] = result.X[i]
	}

	fitted := &FitResult{
		Params:          append([]float64(nil), result.X...),
		ParamNames:      names,
		NamedParams:     named,
		NumParams:       len(named),
		DFResid:         m.dfResid,
		DFModel:         m.dfModel,
		LogLik:          loglik,
		AIC:             2*float64(nparams) - 2*loglik,
		BIC:             math.Log(float64(n))*float64(nparams) - 2*loglik,
		Iterations:      result.Iterations,
		FuncEvaluations: result.FuncEvaluations,
		Status:          result.Status.String(),
		Diagnostics:     m.Diagnostics(),
	}

	m.logger.Info("fit finished",
		log.ModelNameKey, "NLLS",
		log.OperationKey, "fit",
		log.IterationsKey, result.Iterations,
		log.LogLikKey, loglik,
		log.StatusKey, fitted.Status,
		log.DurationMsKey, time.Since(began).Milliseconds(),
	)

	return fitted, nil
}

// applyShapeDomain overwrites the extra-parameter slots of bounds with the
// domain's region. The domain must cover exactly the E extra parameters.
func (m *NLLS) applyShapeDomain(bounds []optim.Bound, domain dist.ShapeDomain) error {
	region := domain.Bounds()
	if len(region) != m.layout.E() {
		return errors.NewValidationError("shape_domain", "domain must cover exactly the extra shape parameters", len(region))
	}
	offset := m.layout.K() + 1
	for i, b := range region {
		bounds[offset+i] = b
	}
	return nil
}

// linearMean is the default mean process, exog·beta.
func linearMean(exog *mat.Dense, beta []float64) []float64 {
	n, _ := exog.Dims()
	out := mat.NewVecDense(n, nil)
	out.MulVec(exog, mat.NewVecDense(len(beta), beta))
	return out.RawVector().Data
}

// constantColumn returns the index of the first column whose entries are all
// equal and nonzero, or -1 when there is none.
func constantColumn(exog *mat.Dense) int {
	n, k := exog.Dims()
	for j := 0; j < k; j++ {
		v := exog.At(0, j)
		if v == 0 {
			continue
		}
		constant := true
		for i := 1; i < n; i++ {
			if exog.At(i, j) != v {
				constant = false
				break
			}
		}
		if constant {
			return j
		}
	}
	return -1
}

// defaultExogNames names a detected constant column "const" and the rest
// x1, x2, ... by position.
func defaultExogNames(exog *mat.Dense) []string {
	_, k := exog.Dims()
	constIdx := constantColumn(exog)
	names := make([]string, k)
	next := 1
	for j := 0; j < k; j++ {
		if j == constIdx {
			names[j] = "const"
			continue
		}
		names[j] = "x" + strconv.Itoa(next)
		next++
	}
	return names
}
