// Package preprocessing converts the mixed-type employee table into the
// fully numeric design matrix used by the regression fits.
package preprocessing

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/attrigo/core/model"
	"github.com/YuminosukeSato/attrigo/dataset"
	"github.com/YuminosukeSato/attrigo/pkg/errors"
)

// Vocabulary maps a categorical column to its sorted level list. The first
// level is the implicit reference and is dropped during encoding.
type Vocabulary map[string][]string

// Levels returns the fitted level list of a column, or nil.
func (v Vocabulary) Levels(column string) []string {
	return v[column]
}

// Reference returns the dropped reference level of a column, or "".
func (v Vocabulary) Reference(column string) string {
	levels := v[column]
	if len(levels) == 0 {
		return ""
	}
	return levels[0]
}

// OneHotEncoder encodes categorical columns as k-1 binary indicators with
// the lexicographically first level dropped as reference. The vocabulary is
// derived once by Fit and reused by every Transform, so every subset of the
// data encodes to an identical column set. Indicator columns are named
// "column=level".
type OneHotEncoder struct {
	model.BaseEstimator

	// Columns are the categorical columns to encode, in declared order.
	Columns []string

	// Vocab holds the fitted levels per column.
	Vocab Vocabulary

	// drop lists pass-through columns excluded from the design matrix,
	// typically the label.
	drop map[string]bool
}

// OneHotEncoderOption is a functional option for OneHotEncoder.
type OneHotEncoderOption func(*OneHotEncoder)

// WithDropColumns excludes the named pass-through columns from the design
// matrix. Use it to keep the label out of the predictors.
func WithDropColumns(names ...string) OneHotEncoderOption {
	return func(e *OneHotEncoder) {
		for _, name := range names {
			e.drop[name] = true
		}
	}
}

// NewOneHotEncoder creates an encoder for the given categorical columns.
func NewOneHotEncoder(columns []string, opts ...OneHotEncoderOption) *OneHotEncoder {
	e := &OneHotEncoder{
		Columns: append([]string(nil), columns...),
		drop:    make(map[string]bool),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Fit derives the vocabulary from the table: the sorted distinct levels of
// every declared categorical column. The vocabulary is fixed afterwards;
// refitting on a subset of the data is a correctness hazard and callers must
// fit exactly once, on the full table.
func (e *OneHotEncoder) Fit(t *dataset.Table) error {
	if t.NumRows() == 0 {
		return errors.Wrap(errors.ErrEmptyData, "OneHotEncoder.Fit")
	}
	vocab := make(Vocabulary, len(e.Columns))
	for _, column := range e.Columns {
		values, err := t.Categorical(column)
		if err != nil {
			return errors.NewSchemaError("OneHotEncoder.Fit", column)
		}
		seen := make(map[string]bool)
		var levels []string
		for _, v := range values {
			if !seen[v] {
				seen[v] = true
				levels = append(levels, v)
			}
		}
		sort.Strings(levels)
		vocab[column] = levels
	}
	e.Vocab = vocab
	e.SetFitted()
	return nil
}

// Transform encodes a table against the fitted vocabulary, producing the
// design matrix and its ordered column names. Numeric columns pass through
// unchanged (minus the dropped ones) followed by the indicator columns. A
// level never seen during Fit encodes as all zeros, like the reference.
func (e *OneHotEncoder) Transform(t *dataset.Table) (*mat.Dense, []string, error) {
	if !e.IsFitted() {
		return nil, nil, errors.NewNotFittedError("OneHotEncoder", "Transform")
	}

	encoded := make(map[string]bool, len(e.Columns))
	for _, column := range e.Columns {
		if !t.HasColumn(column) {
			return nil, nil, errors.NewSchemaError("OneHotEncoder.Transform", column)
		}
		encoded[column] = true
	}

	var names []string
	var columns [][]float64

	for _, name := range t.Columns() {
		if encoded[name] || e.drop[name] || t.IsCategorical(name) {
			continue
		}
		values, err := t.Numeric(name)
		if err != nil {
			return nil, nil, err
		}
		names = append(names, name)
		columns = append(columns, values)
	}

	for _, column := range e.Columns {
		values, err := t.Categorical(column)
		if err != nil {
			return nil, nil, err
		}
		levels := e.Vocab[column]
		// levels[0] is the reference and gets no indicator.
		for _, level := range levels[1:] {
			indicator := make([]float64, len(values))
			for i, v := range values {
				if v == level {
					indicator[i] = 1
				}
			}
			names = append(names, column+"="+level)
			columns = append(columns, indicator)
		}
	}

	rows := t.NumRows()
	X := mat.NewDense(rows, len(columns), nil)
	for j, col := range columns {
		for i := 0; i < rows; i++ {
			X.Set(i, j, col[i])
		}
	}
	return X, names, nil
}

// FitTransform fits the vocabulary and encodes the same table.
func (e *OneHotEncoder) FitTransform(t *dataset.Table) (*mat.Dense, []string, error) {
	if err := e.Fit(t); err != nil {
		return nil, nil, err
	}
	return e.Transform(t)
}
