// Standard attribute keys for estimation operations. Using a shared
// vocabulary keeps fit logs filterable across models.

package log

// Model and operation context.
const (
	// ModelNameKey identifies the estimator type, e.g. "NLLS".
	ModelNameKey = "model.name"

	// OperationKey names the operation being performed.
	// Standard values: "fit", "predict", "nloglikeobs".
	OperationKey = "ml.operation"

	// DistributionKey names the error distribution in use,
	// e.g. "Normal", "GeneralizedError".
	DistributionKey = "model.distribution"
)

// Data shape.
const (
	// SamplesKey is the number of observations (N).
	SamplesKey = "data.samples"

	// RegressorsKey is the number of mean-process regressors (K).
	RegressorsKey = "data.regressors"

	// LatentKey is the number of latent variables (1 + E).
	LatentKey = "model.latent"
)

// Fit diagnostics.
const (
	// IterationsKey is the optimizer iteration count.
	IterationsKey = "fit.iterations"

	// LogLikKey is the maximized log-likelihood.
	LogLikKey = "fit.loglik"

	// StatusKey is the optimizer's terminal status string.
	StatusKey = "fit.status"

	// DurationMsKey is the wall-clock fit duration in milliseconds.
	DurationMsKey = "fit.duration_ms"
)
