// Package errors provides the structured error types used across the
// attrition pipeline. Every error kind carries the offending column or
// predictor name so a failed run can be traced back to the data or
// configuration problem that caused it. Constructors attach stack traces
// via cockroachdb/errors.
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// SchemaError reports a required column that is missing from an input table.
type SchemaError struct {
	Op     string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("attrigo: %s: required column %q not found in table", e.Op, e.Column)
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *SchemaError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("column", e.Column).
		Str("type", "SchemaError")
}

// NewSchemaError creates a SchemaError with a stack trace attached.
func NewSchemaError(op, column string) error {
	err := &SchemaError{Op: op, Column: column}
	return errors.WithStack(err)
}

// SingularMatrixError reports an exact linear dependency in a design matrix
// that prevents a fit or a VIF regression from being solved. Predictor names
// the column involved when it is known.
type SingularMatrixError struct {
	Op        string
	Predictor string
}

func (e *SingularMatrixError) Error() string {
	if e.Predictor != "" {
		return fmt.Sprintf("attrigo: %s: design matrix is singular (predictor %q is a linear combination of the others)", e.Op, e.Predictor)
	}
	return fmt.Sprintf("attrigo: %s: design matrix is singular", e.Op)
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *SingularMatrixError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("predictor", e.Predictor).
		Str("type", "SingularMatrixError")
}

// NewSingularMatrixError creates a SingularMatrixError with a stack trace attached.
func NewSingularMatrixError(op, predictor string) error {
	err := &SingularMatrixError{Op: op, Predictor: predictor}
	return errors.WithStack(err)
}

// ConvergenceError reports an iterative fit that hit its iteration bound
// without meeting the convergence tolerance.
type ConvergenceError struct {
	Op         string
	Iterations int
	Tolerance  float64
	LastChange float64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("attrigo: %s: failed to converge after %d iterations (last deviance change %.3g, tolerance %.3g); increase the iteration bound or revise the predictor set",
		e.Op, e.Iterations, e.LastChange, e.Tolerance)
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *ConvergenceError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("iterations", e.Iterations).
		Float64("tolerance", e.Tolerance).
		Float64("last_change", e.LastChange).
		Str("type", "ConvergenceError")
}

// NewConvergenceError creates a ConvergenceError with a stack trace attached.
func NewConvergenceError(op string, iterations int, tolerance, lastChange float64) error {
	err := &ConvergenceError{Op: op, Iterations: iterations, Tolerance: tolerance, LastChange: lastChange}
	return errors.WithStack(err)
}

// EmptyPartitionError reports a train/holdout split that left one partition
// without any instance of a label class.
type EmptyPartitionError struct {
	Op        string
	Partition string // "train" or "holdout"
	Class     int
}

func (e *EmptyPartitionError) Error() string {
	return fmt.Sprintf("attrigo: %s: %s partition contains no instance of class %d; adjust the split ratio", e.Op, e.Partition, e.Class)
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *EmptyPartitionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("partition", e.Partition).
		Int("class", e.Class).
		Str("type", "EmptyPartitionError")
}

// NewEmptyPartitionError creates an EmptyPartitionError with a stack trace attached.
func NewEmptyPartitionError(op, partition string, class int) error {
	err := &EmptyPartitionError{Op: op, Partition: partition, Class: class}
	return errors.WithStack(err)
}

// NotFittedError is returned when Predict or Transform is called on an
// estimator whose Fit has not completed.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("attrigo: %s: this estimator is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a NotFittedError with a stack trace attached.
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError reports an input whose shape differs from what the
// operation expects.
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
	return fmt.Sprintf("attrigo: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "columns"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError creates a DimensionError with a stack trace attached.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValueError reports an argument whose value is invalid for the operation.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("attrigo: %s: %s", e.Op, e.Message)
}

// NewValueError creates a ValueError with a stack trace attached.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

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

// New creates a new error.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack attaches a stack trace to an error.
func WithStack(err error) error {
	return errors.WithStack(err)
}

var (
	// ErrEmptyData is returned when an operation receives an empty table or matrix.
	ErrEmptyData = New("empty data")
)
