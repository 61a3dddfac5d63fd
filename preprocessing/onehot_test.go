package preprocessing

import (
	"testing"

	"github.com/YuminosukeSato/attrigo/dataset"
	"github.com/YuminosukeSato/attrigo/pkg/errors"
)

func buildTable(t *testing.T, hours []float64, salary []string) *dataset.Table {
	t.Helper()
	table := dataset.NewTable(len(hours))
	if err := table.AddNumeric(dataset.ColMonthlyHours, hours); err != nil {
		t.Fatalf("AddNumeric() error = %v", err)
	}
	if err := table.AddCategorical(dataset.ColSalary, salary); err != nil {
		t.Fatalf("AddCategorical() error = %v", err)
	}
	return table
}

func TestOneHotEncoderFitTransform(t *testing.T) {
	table := buildTable(t,
		[]float64{150, 200, 250, 300},
		[]string{"medium", "low", "high", "low"},
	)

	encoder := NewOneHotEncoder([]string{dataset.ColSalary})
	X, names, err := encoder.FitTransform(table)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	// Three levels, lexicographically sorted: high is the reference, so
	// exactly k-1 = 2 indicator columns appear.
	wantNames := []string{dataset.ColMonthlyHours, "salary=low", "salary=medium"}
	if len(names) != len(wantNames) {
		t.Fatalf("names = %v, want %v", names, wantNames)
	}
	for i, want := range wantNames {
		if names[i] != want {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want)
		}
	}
	if ref := encoder.Vocab.Reference(dataset.ColSalary); ref != "high" {
		t.Errorf("reference level = %q, want %q", ref, "high")
	}

	// Round-trip: the indicators plus the implicit reference reconstruct
	// the original value for every row.
	salary, _ := table.Categorical(dataset.ColSalary)
	for i, want := range salary {
		low := X.At(i, 1)
		medium := X.At(i, 2)
		var got string
		switch {
		case low == 1 && medium == 0:
			got = "low"
		case low == 0 && medium == 1:
			got = "medium"
		case low == 0 && medium == 0:
			got = "high"
		default:
			t.Fatalf("row %d: indicators (%v, %v) are not one-hot", i, low, medium)
		}
		if got != want {
			t.Errorf("row %d: reconstructed %q, want %q", i, got, want)
		}
	}

	// Numeric pass-through is untouched.
	hours, _ := table.Numeric(dataset.ColMonthlyHours)
	for i, want := range hours {
		if X.At(i, 0) != want {
			t.Errorf("row %d: hours = %v, want %v", i, X.At(i, 0), want)
		}
	}
}

func TestOneHotEncoderSharedVocabulary(t *testing.T) {
	full := buildTable(t,
		[]float64{150, 200, 250},
		[]string{"low", "medium", "high"},
	)
	// The subset is missing the "high" level entirely.
	subset := buildTable(t,
		[]float64{150, 200},
		[]string{"low", "medium"},
	)

	encoder := NewOneHotEncoder([]string{dataset.ColSalary})
	if err := encoder.Fit(full); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	_, fullNames, err := encoder.Transform(full)
	if err != nil {
		t.Fatalf("Transform(full) error = %v", err)
	}
	_, subsetNames, err := encoder.Transform(subset)
	if err != nil {
		t.Fatalf("Transform(subset) error = %v", err)
	}

	if len(fullNames) != len(subsetNames) {
		t.Fatalf("column sets differ: %v vs %v", fullNames, subsetNames)
	}
	for i := range fullNames {
		if fullNames[i] != subsetNames[i] {
			t.Errorf("column %d differs: %q vs %q", i, fullNames[i], subsetNames[i])
		}
	}
}

func TestOneHotEncoderDropColumns(t *testing.T) {
	table := buildTable(t,
		[]float64{150, 200},
		[]string{"low", "high"},
	)
	if err := table.AddNumeric(dataset.ColLeft, []float64{1, 0}); err != nil {
		t.Fatalf("AddNumeric() error = %v", err)
	}

	encoder := NewOneHotEncoder([]string{dataset.ColSalary},
		WithDropColumns(dataset.ColLeft))
	_, names, err := encoder.FitTransform(table)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}
	for _, name := range names {
		if name == dataset.ColLeft {
			t.Errorf("label column %q leaked into the design matrix", dataset.ColLeft)
		}
	}
}

func TestOneHotEncoderErrors(t *testing.T) {
	table := buildTable(t, []float64{150}, []string{"low"})

	encoder := NewOneHotEncoder([]string{dataset.ColSalary})
	if _, _, err := encoder.Transform(table); err == nil {
		t.Error("Transform() before Fit should fail")
	} else {
		var notFitted *errors.NotFittedError
		if !errors.As(err, &notFitted) {
			t.Errorf("Transform() error = %v, want NotFittedError", err)
		}
	}

	missing := NewOneHotEncoder([]string{dataset.ColDepartment})
	err := missing.Fit(table)
	var schemaErr *errors.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Fit() error = %v, want SchemaError", err)
	}
	if schemaErr.Column != dataset.ColDepartment {
		t.Errorf("SchemaError.Column = %q, want %q", schemaErr.Column, dataset.ColDepartment)
	}
}
