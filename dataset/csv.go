package dataset

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/YuminosukeSato/attrigo/pkg/errors"
)

// categoricalColumns lists the columns parsed as strings; every other column
// of the employee schema is numeric.
var categoricalColumns = map[string]bool{
	ColDepartment: true,
	ColSalary:     true,
}

// requiredColumns is the full employee schema. ReadCSV rejects a header that
// is missing any of them.
var requiredColumns = []string{
	ColSatisfaction, ColEvaluation, ColProjects, ColMonthlyHours,
	ColTenure, ColAccident, ColLeft, ColPromotion, ColDepartment, ColSalary,
}

// ReadCSV parses a delimited employee dataset into a Table. The header row
// must contain the full schema; extra columns are ignored. This is the I/O
// collaborator around the core, which only ever sees the Table.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "ReadCSV: reading header")
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			return nil, errors.NewSchemaError("ReadCSV", name)
		}
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "ReadCSV: reading rows")
	}

	table := NewTable(len(records))
	for _, name := range requiredColumns {
		col := index[name]
		if categoricalColumns[name] {
			values := make([]string, len(records))
			for i, record := range records {
				values[i] = record[col]
			}
			if err := table.AddCategorical(name, values); err != nil {
				return nil, err
			}
			continue
		}
		values := make([]float64, len(records))
		for i, record := range records {
			v, err := strconv.ParseFloat(record[col], 64)
			if err != nil {
				return nil, errors.Wrapf(err, "ReadCSV: column %q row %d", name, i+1)
			}
			values[i] = v
		}
		if err := table.AddNumeric(name, values); err != nil {
			return nil, err
		}
	}
	return table, nil
}
