// Package quantfit provides constrained maximum-likelihood estimation for
// quantitative-finance time series.
//
// The centerpiece is the nlls package: a maximum-likelihood regression of a
// univariate response on a design matrix, with the error dispersion (and any
// extra distribution shape parameters) estimated as latent variables. The
// mean process and the error distribution are both swappable, so the same
// driver fits OLS-equivalent linear models, heavy-tailed error models and
// nonlinear mean processes.
//
// Supporting packages:
//
//   - dist: univariate distribution adapters over gonum's stat/distuv plus a
//     native generalized error distribution, with the shape-parameter
//     feasible-region policies the optimizer consumes.
//   - garch: bounds and linear inequality constraints for GARCH(p, o, q)
//     volatility models, in a base and a deliberately relaxed variant.
//   - optim: a thin bounded/constrained shim over gonum's optimize package.
//   - metrics: regression diagnostics (MSE, RMSE, MAE, R²).
//   - plotfmt: dollar, percent and basis-point tick formatters for
//     gonum/plot axes.
//
// A minimal fit:
//
//	m, err := nlls.New(endog, exog)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := m.Fit()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Summary())
package quantfit
