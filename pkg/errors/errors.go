// Package errors provides the error and warning types used across the
// quantfit estimation packages. Errors carry stack traces via
// cockroachdb/errors; warning types implement zerolog's object marshaler so
// they can be emitted as structured log events.
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Global warning handling
//
// ===========================================================================

var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		log.Printf("quantfit-warning: %v\n", w)
	}
	// zerolog sink, wired lazily from pkg/log to avoid an import cycle
	zerologWarnFunc func(warning error)
)

// SetWarningHandler replaces the library-wide warning handler. Use this to
// silence or redirect non-fatal conditions such as a ConvergenceWarning.
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc installs a zerolog-backed warning sink. When set it
// takes precedence over the plain handler.
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn emits a warning through the configured sink.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}
	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	Warning types
//
// ===========================================================================

// ConvergenceWarning reports an optimizer that stopped on its iteration
// budget rather than on a convergence criterion.
type ConvergenceWarning struct {
	Algorithm  string
	Iterations int
	Message    string
}

func (w *ConvergenceWarning) Error() string {
	if w.Message != "" {
		return fmt.Sprintf("%s failed to converge after %d iterations: %s", w.Algorithm, w.Iterations, w.Message)
	}
	return fmt.Sprintf("%s failed to converge after %d iterations. Consider increasing the iteration budget or re-seeding start parameters.", w.Algorithm, w.Iterations)
}

// MarshalZerologObject adds the structured warning fields to a zerolog event.
func (w *ConvergenceWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("algorithm", w.Algorithm).
		Int("iterations", w.Iterations).
		Str("message", w.Message).
		Str("type", "ConvergenceWarning")
}

// NewConvergenceWarning creates a ConvergenceWarning.
func NewConvergenceWarning(algorithm string, iterations int, message string) *ConvergenceWarning {
	return &ConvergenceWarning{Algorithm: algorithm, Iterations: iterations, Message: message}
}

// UnboundedShapeWarning reports that default, unconstrained bounds were
// synthesized for extra distribution shape parameters. The defaults are
// technically valid but statistically wrong for distributions whose shape
// parameter has a restricted domain.
type UnboundedShapeWarning struct {
	Estimator string
	Params    []string
}

func (w *UnboundedShapeWarning) Error() string {
	return fmt.Sprintf("%s: extra shape parameters %v were given unconstrained default bounds; supply bounds if the shape domain is restricted", w.Estimator, w.Params)
}

// MarshalZerologObject adds the structured warning fields to a zerolog event.
func (w *UnboundedShapeWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("estimator", w.Estimator).
		Strs("params", w.Params).
		Str("type", "UnboundedShapeWarning")
}

// NewUnboundedShapeWarning creates an UnboundedShapeWarning.
func NewUnboundedShapeWarning(estimator string, params []string) *UnboundedShapeWarning {
	return &UnboundedShapeWarning{Estimator: estimator, Params: params}
}

// ===========================================================================
//
//	Structured error types
//
// ===========================================================================

// ValidationError indicates that an input parameter failed validation, for
// example mismatched start-parameter and bounds lengths.
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("quantfit: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError creates a ValidationError with a stack trace.
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// DimensionError indicates that input data has unexpected dimensions.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns
}

func (e *DimensionError) Error() string {
	axisName := "columns"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("quantfit: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("type", "DimensionError")
}

// NewDimensionError creates a DimensionError with a stack trace.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// DomainError indicates an impossible model configuration, such as a
// parameter layout with zero latent variables. Fatal at construction time.
type DomainError struct {
	Op     string
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("quantfit: %s: invalid model domain: %s", e.Op, e.Reason)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *DomainError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("reason", e.Reason).
		Str("type", "DomainError")
}

// NewDomainError creates a DomainError with a stack trace.
func NewDomainError(op, reason string) error {
	err := &DomainError{Op: op, Reason: reason}
	return errors.WithStack(err)
}

// ConvergenceError indicates that the optimizer failed to converge. It
// carries the optimizer's own status text and the last parameter vector it
// evaluated, for diagnosability.
type ConvergenceError struct {
	Op         string
	Iterations int
	Status     string
	LastParams []float64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("quantfit: %s: optimizer failed to converge after %d iterations (status: %s); last params: %v",
		e.Op, e.Iterations, e.Status, e.LastParams)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *ConvergenceError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("iterations", e.Iterations).
		Str("status", e.Status).
		Floats64("last_params", e.LastParams).
		Str("type", "ConvergenceError")
}

// NewConvergenceError creates a ConvergenceError with a stack trace.
func NewConvergenceError(op string, iterations int, status string, lastParams []float64) error {
	err := &ConvergenceError{Op: op, Iterations: iterations, Status: status, LastParams: lastParams}
	return errors.WithStack(err)
}

// ValueError indicates an argument whose value is invalid for the operation.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("quantfit: %s: %s", e.Op, e.Message)
}

// NewValueError creates a ValueError with a stack trace.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// NumericalInstabilityError reports NaN or Inf values produced by a numeric
// operation.
type NumericalInstabilityError struct {
	Operation string
	Values    []float64
	Iteration int
}

func (e *NumericalInstabilityError) Error() string {
	valStr := ""
	for i, v := range e.Values {
		if i > 0 {
			valStr += ", "
		}
		if i >= 5 {
			valStr += "..."
			break
		}
		valStr += fmt.Sprintf("%.6g", v)
	}
	return fmt.Sprintf("quantfit: numerical instability detected in %s at iteration %d. Values: [%s]",
		e.Operation, e.Iteration, valStr)
}

// NewNumericalInstabilityError creates a NumericalInstabilityError with a
// stack trace.
func NewNumericalInstabilityError(operation string, values []float64, iteration int) error {
	err := &NumericalInstabilityError{
		Operation: operation,
		Values:    values,
		Iteration: iteration,
	}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates err with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Sentinel errors
//
// ===========================================================================

var (
	// ErrEmptyData is returned when an empty data set is supplied.
	ErrEmptyData = New("empty data")

	// ErrSingularMatrix is returned when a matrix operation fails on a
	// singular matrix.
	ErrSingularMatrix = New("singular matrix")
)
