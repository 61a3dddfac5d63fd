package dataset

import (
	"strings"
	"testing"

	"github.com/YuminosukeSato/attrigo/pkg/errors"
)

func TestTableColumnAccess(t *testing.T) {
	table := NewTable(2)
	if err := table.AddNumeric(ColSatisfaction, []float64{0.5, 0.6}); err != nil {
		t.Fatalf("AddNumeric() error = %v", err)
	}
	if err := table.AddCategorical(ColSalary, []string{"low", "high"}); err != nil {
		t.Fatalf("AddCategorical() error = %v", err)
	}

	if !table.HasColumn(ColSalary) || table.HasColumn("missing") {
		t.Error("HasColumn() gave wrong answers")
	}
	if !table.IsCategorical(ColSalary) || table.IsCategorical(ColSatisfaction) {
		t.Error("IsCategorical() gave wrong answers")
	}

	if _, err := table.Numeric("missing"); !isSchemaError(err) {
		t.Errorf("Numeric(missing) error = %v, want SchemaError", err)
	}
	if _, err := table.Categorical("missing"); !isSchemaError(err) {
		t.Errorf("Categorical(missing) error = %v, want SchemaError", err)
	}
	// A categorical column is not reachable through Numeric.
	if _, err := table.Numeric(ColSalary); !isSchemaError(err) {
		t.Errorf("Numeric(salary) error = %v, want SchemaError", err)
	}
}

func TestTableRejectsLengthMismatch(t *testing.T) {
	table := NewTable(3)
	err := table.AddNumeric(ColSatisfaction, []float64{0.5})
	var dimErr *errors.DimensionError
	if !errors.As(err, &dimErr) {
		t.Fatalf("AddNumeric() error = %v, want DimensionError", err)
	}
}

func TestTableSelect(t *testing.T) {
	table := NewTable(3)
	_ = table.AddNumeric(ColTenure, []float64{1, 2, 3})
	_ = table.AddCategorical(ColDepartment, []string{"sales", "hr", "it"})

	subset, err := table.Select([]int{2, 0})
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	tenure, _ := subset.Numeric(ColTenure)
	if tenure[0] != 3 || tenure[1] != 1 {
		t.Errorf("Select() tenure = %v, want [3 1]", tenure)
	}
	department, _ := subset.Categorical(ColDepartment)
	if department[0] != "it" || department[1] != "sales" {
		t.Errorf("Select() department = %v, want [it sales]", department)
	}

	if _, err := table.Select([]int{3}); err == nil {
		t.Error("Select() with out-of-range row should fail")
	}
}

func TestReadCSV(t *testing.T) {
	csv := strings.Join([]string{
		"satisfaction_level,last_evaluation,number_project,average_monthly_hours,time_spend_company,work_accident,left,promotion_last_5years,department,salary",
		"0.38,0.53,2,157,3,0,1,0,sales,low",
		"0.80,0.86,5,262,6,0,1,0,technical,medium",
	}, "\n")

	table, err := ReadCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if table.NumRows() != 2 {
		t.Fatalf("ReadCSV() rows = %d, want 2", table.NumRows())
	}
	hours, _ := table.Numeric(ColMonthlyHours)
	if hours[1] != 262 {
		t.Errorf("average_monthly_hours[1] = %v, want 262", hours[1])
	}
	salary, _ := table.Categorical(ColSalary)
	if salary[0] != "low" {
		t.Errorf("salary[0] = %q, want %q", salary[0], "low")
	}
}

func TestReadCSVMissingColumn(t *testing.T) {
	csv := "satisfaction_level,left\n0.5,1\n"
	_, err := ReadCSV(strings.NewReader(csv))
	if !isSchemaError(err) {
		t.Fatalf("ReadCSV() error = %v, want SchemaError", err)
	}
}

func isSchemaError(err error) bool {
	var schemaErr *errors.SchemaError
	return errors.As(err, &schemaErr)
}
