// Package dataset provides the in-memory employee table consumed by the
// attrition pipeline, together with the valuable-leaver filter and a CSV
// loading collaborator. Columns are looked up by exact, case-sensitive name.
package dataset

import (
	"github.com/YuminosukeSato/attrigo/pkg/errors"
)

// Canonical column names of the employee schema.
const (
	ColSatisfaction  = "satisfaction_level"
	ColEvaluation    = "last_evaluation"
	ColProjects      = "number_project"
	ColMonthlyHours  = "average_monthly_hours"
	ColTenure        = "time_spend_company"
	ColAccident      = "work_accident"
	ColLeft          = "left"
	ColPromotion     = "promotion_last_5years"
	ColDepartment    = "department"
	ColSalary        = "salary"
)

type columnKind int

const (
	kindNumeric columnKind = iota
	kindCategorical
)

// Table is a column-ordered, in-memory table with numeric and categorical
// columns. It is the input of every pipeline stage; stages never mutate a
// Table they receive.
type Table struct {
	order       []string
	kinds       map[string]columnKind
	numeric     map[string][]float64
	categorical map[string][]string
	nRows       int
}

// NewTable creates an empty table expecting nRows rows per column.
func NewTable(nRows int) *Table {
	return &Table{
		kinds:       make(map[string]columnKind),
		numeric:     make(map[string][]float64),
		categorical: make(map[string][]string),
		nRows:       nRows,
	}
}

// AddNumeric appends a numeric column. The slice is copied.
func (t *Table) AddNumeric(name string, values []float64) error {
	if len(values) != t.nRows {
		return errors.NewDimensionError("Table.AddNumeric", t.nRows, len(values), 0)
	}
	if _, exists := t.kinds[name]; exists {
		return errors.NewValueError("Table.AddNumeric", "column "+name+" already present")
	}
	t.order = append(t.order, name)
	t.kinds[name] = kindNumeric
	t.numeric[name] = append([]float64(nil), values...)
	return nil
}

// AddCategorical appends a categorical column. The slice is copied.
func (t *Table) AddCategorical(name string, values []string) error {
	if len(values) != t.nRows {
		return errors.NewDimensionError("Table.AddCategorical", t.nRows, len(values), 0)
	}
	if _, exists := t.kinds[name]; exists {
		return errors.NewValueError("Table.AddCategorical", "column "+name+" already present")
	}
	t.order = append(t.order, name)
	t.kinds[name] = kindCategorical
	t.categorical[name] = append([]string(nil), values...)
	return nil
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	return t.nRows
}

// Columns returns the column names in insertion order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.order...)
}

// HasColumn reports whether the table contains the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.kinds[name]
	return ok
}

// IsCategorical reports whether the named column is categorical.
// A missing column is not categorical.
func (t *Table) IsCategorical(name string) bool {
	return t.kinds[name] == kindCategorical && t.HasColumn(name)
}

// Numeric returns the values of a numeric column. The returned slice is
// shared with the table and must not be modified.
func (t *Table) Numeric(name string) ([]float64, error) {
	values, ok := t.numeric[name]
	if !ok {
		return nil, errors.NewSchemaError("Table.Numeric", name)
	}
	return values, nil
}

// Categorical returns the values of a categorical column. The returned slice
// is shared with the table and must not be modified.
func (t *Table) Categorical(name string) ([]string, error) {
	values, ok := t.categorical[name]
	if !ok {
		return nil, errors.NewSchemaError("Table.Categorical", name)
	}
	return values, nil
}

// Select returns a new table containing the given rows, in order. Row
// indices out of range are a ValueError.
func (t *Table) Select(rows []int) (*Table, error) {
	for _, r := range rows {
		if r < 0 || r >= t.nRows {
			return nil, errors.NewValueError("Table.Select", "row index out of range")
		}
	}
	out := NewTable(len(rows))
	for _, name := range t.order {
		switch t.kinds[name] {
		case kindNumeric:
			src := t.numeric[name]
			values := make([]float64, len(rows))
			for i, r := range rows {
				values[i] = src[r]
			}
			if err := out.AddNumeric(name, values); err != nil {
				return nil, err
			}
		case kindCategorical:
			src := t.categorical[name]
			values := make([]string, len(rows))
			for i, r := range rows {
				values[i] = src[r]
			}
			if err := out.AddCategorical(name, values); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// requireNumeric fetches several numeric columns at once, reporting the
// first missing one as a SchemaError attributed to op.
func (t *Table) requireNumeric(op string, names ...string) ([][]float64, error) {
	cols := make([][]float64, len(names))
	for i, name := range names {
		values, ok := t.numeric[name]
		if !ok {
			return nil, errors.NewSchemaError(op, name)
		}
		cols[i] = values
	}
	return cols, nil
}
