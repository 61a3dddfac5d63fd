package attrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/attrigo/dataset"
)

// employeeTable fabricates n employees with a planted attrition signal
// plus label noise, so every fit along the refinement path converges.
func employeeTable(t *testing.T, n int) *dataset.Table {
	t.Helper()

	departments := []string{"sales", "technical", "support", "hr"}
	salaries := []string{"low", "medium", "high"}

	satisfaction := make([]float64, n)
	evaluation := make([]float64, n)
	projects := make([]float64, n)
	hours := make([]float64, n)
	tenure := make([]float64, n)
	accident := make([]float64, n)
	left := make([]float64, n)
	promotion := make([]float64, n)
	department := make([]string, n)
	salary := make([]string, n)

	for i := 0; i < n; i++ {
		satisfaction[i] = float64(i%97) / 97
		evaluation[i] = 0.4 + 0.6*float64(i%53)/53
		projects[i] = float64(2 + i%6)
		hours[i] = 130 + float64((i*37)%180)
		tenure[i] = float64(2 + i%7)
		if i%13 == 0 {
			accident[i] = 1
		}
		if i%29 == 0 {
			promotion[i] = 1
		}
		department[i] = departments[i%len(departments)]
		salary[i] = salaries[(i/3)%len(salaries)]

		risk := (1-satisfaction[i])*1.4 + (hours[i]-130)/180*0.8
		if risk > 1.3 {
			left[i] = 1
		}
		if i%11 == 0 {
			left[i] = 1 - left[i]
		}
	}

	table := dataset.NewTable(n)
	require.NoError(t, table.AddNumeric(dataset.ColSatisfaction, satisfaction))
	require.NoError(t, table.AddNumeric(dataset.ColEvaluation, evaluation))
	require.NoError(t, table.AddNumeric(dataset.ColProjects, projects))
	require.NoError(t, table.AddNumeric(dataset.ColMonthlyHours, hours))
	require.NoError(t, table.AddNumeric(dataset.ColTenure, tenure))
	require.NoError(t, table.AddNumeric(dataset.ColAccident, accident))
	require.NoError(t, table.AddNumeric(dataset.ColLeft, left))
	require.NoError(t, table.AddNumeric(dataset.ColPromotion, promotion))
	require.NoError(t, table.AddCategorical(dataset.ColDepartment, department))
	require.NoError(t, table.AddCategorical(dataset.ColSalary, salary))
	return table
}

func TestPipelineRunBackward(t *testing.T) {
	table := employeeTable(t, 600)

	cfg := DefaultConfig()
	cfg.TopN = 10

	pipeline, err := NewPipeline(cfg, nil)
	require.NoError(t, err)

	outcome, err := pipeline.Run(table)
	require.NoError(t, err)

	require.NotNil(t, outcome.Selected)
	assert.NotEmpty(t, outcome.Selected.Coefficients)
	assert.Greater(t, outcome.ValuableEmployees, 0)
	assert.Less(t, outcome.ValuableLeavers, outcome.ValuableEmployees)

	// The vocabulary covers both categorical columns.
	assert.ElementsMatch(t, []string{"hr", "sales", "support", "technical"},
		outcome.Vocabulary.Levels(dataset.ColDepartment))
	assert.ElementsMatch(t, []string{"high", "low", "medium"},
		outcome.Vocabulary.Levels(dataset.ColSalary))

	require.NotNil(t, outcome.Evaluation)
	assert.Equal(t, len(outcome.Evaluation.HoldoutRows), outcome.Evaluation.Confusion.Total())
	assert.Greater(t, outcome.Evaluation.Confusion.Accuracy(), 0.5)

	require.NotEmpty(t, outcome.Shortlist)
	assert.LessOrEqual(t, len(outcome.Shortlist), cfg.TopN)
	for i := 1; i < len(outcome.Shortlist); i++ {
		assert.GreaterOrEqual(t, outcome.Shortlist[i-1].Priority, outcome.Shortlist[i].Priority,
			"shortlist must be ordered by priority")
	}
}

func TestPipelineRunStepwise(t *testing.T) {
	table := employeeTable(t, 600)

	cfg := DefaultConfig()
	cfg.Strategy = StrategyStepwise
	cfg.TopN = 10

	pipeline, err := NewPipeline(cfg, nil)
	require.NoError(t, err)

	outcome, err := pipeline.Run(table)
	require.NoError(t, err)

	require.NotNil(t, outcome.Selected)
	for _, step := range outcome.Steps {
		assert.Less(t, step.AICAfter, step.AICBefore,
			"every stepwise change must lower AIC")
	}
}

func TestPipelineDeterministic(t *testing.T) {
	table := employeeTable(t, 400)

	cfg := DefaultConfig()
	cfg.TopN = 5

	pipeline, err := NewPipeline(cfg, nil)
	require.NoError(t, err)

	first, err := pipeline.Run(table)
	require.NoError(t, err)
	second, err := pipeline.Run(table)
	require.NoError(t, err)

	assert.Equal(t, first.Evaluation.Confusion, second.Evaluation.Confusion)
	require.Equal(t, len(first.Shortlist), len(second.Shortlist))
	for i := range first.Shortlist {
		assert.Equal(t, first.Shortlist[i].Row, second.Shortlist[i].Row)
	}
}

func TestNewPipelineRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Strategy = "exhaustive"

	_, err := NewPipeline(cfg, nil)
	assert.Error(t, err)
}

func TestPipelineMissingColumn(t *testing.T) {
	table := dataset.NewTable(3)
	require.NoError(t, table.AddNumeric(dataset.ColSatisfaction, []float64{0.1, 0.2, 0.3}))

	pipeline, err := NewPipeline(DefaultConfig(), nil)
	require.NoError(t, err)

	_, err = pipeline.Run(table)
	assert.Error(t, err)
}

func TestReportRenders(t *testing.T) {
	table := employeeTable(t, 400)

	cfg := DefaultConfig()
	cfg.TopN = 5

	pipeline, err := NewPipeline(cfg, nil)
	require.NoError(t, err)
	outcome, err := pipeline.Run(table)
	require.NoError(t, err)

	report := Report(outcome)
	assert.Contains(t, report, "Holdout evaluation")
	assert.Contains(t, report, "probability_to_leave")
	assert.Contains(t, report, "AIC")
}
