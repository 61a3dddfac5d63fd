package dataset

// Thresholds of the valuable-employee rule: a strong evaluation, long
// tenure or a heavy project load makes an employee worth a retention effort.
const (
	valuableEvaluationMin = 0.70
	valuableTenureMin     = 4
	valuableProjectsOver  = 5
)

func valuableRows(t *Table, requireLeft bool) ([]int, error) {
	cols, err := t.requireNumeric("FilterValuable",
		ColLeft, ColEvaluation, ColTenure, ColProjects)
	if err != nil {
		return nil, err
	}
	left, evaluation, tenure, projects := cols[0], cols[1], cols[2], cols[3]

	var rows []int
	for i := 0; i < t.NumRows(); i++ {
		if requireLeft && left[i] != 1 {
			continue
		}
		if evaluation[i] >= valuableEvaluationMin ||
			tenure[i] >= valuableTenureMin ||
			projects[i] > valuableProjectsOver {
			rows = append(rows, i)
		}
	}
	return rows, nil
}

// FilterValuable returns the modeling population: every employee, departed
// or not, with last_evaluation >= 0.70, or time_spend_company >= 4, or
// number_project > 5. The result is a copy; the input is never modified.
func FilterValuable(t *Table) (*Table, error) {
	rows, err := valuableRows(t, false)
	if err != nil {
		return nil, err
	}
	return t.Select(rows)
}

// FilterValuableLeavers returns the subset of FilterValuable with left = 1:
// the employees the company lost and should have retained. Used for
// descriptive reporting; the model fits on FilterValuable so both label
// classes are present.
func FilterValuableLeavers(t *Table) (*Table, error) {
	rows, err := valuableRows(t, true)
	if err != nil {
		return nil, err
	}
	return t.Select(rows)
}
