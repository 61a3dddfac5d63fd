// Package attrition wires the pipeline stages together: encode the employee
// table, filter the valuable leavers, select a model, evaluate it on a
// holdout and rank the retention shortlist. The core packages stay silent;
// this facade logs one structured event per stage.
package attrition

import (
	"log/slog"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/attrigo/dataset"
	"github.com/YuminosukeSato/attrigo/evaluation"
	"github.com/YuminosukeSato/attrigo/glm"
	"github.com/YuminosukeSato/attrigo/pkg/errors"
	logattr "github.com/YuminosukeSato/attrigo/pkg/log"
	"github.com/YuminosukeSato/attrigo/preprocessing"
	"github.com/YuminosukeSato/attrigo/ranking"
	"github.com/YuminosukeSato/attrigo/selection"
)

// Outcome carries everything a presentation layer needs from one run.
type Outcome struct {
	// Vocabulary is the shared categorical encoding, fitted once on the
	// full table and reused for every subset.
	Vocabulary preprocessing.Vocabulary
	// Selected is the model chosen by the refinement strategy, fitted on
	// the full valuable-leaver set.
	Selected *glm.Model
	// Steps is the refinement trace.
	Steps []selection.Step
	// Evaluation holds the train/holdout refit and the confusion matrix.
	Evaluation *evaluation.Result
	// Shortlist is the ranked retention list.
	Shortlist []ranking.Entry
	// ValuableEmployees is the size of the modeling population.
	ValuableEmployees int
	// ValuableLeavers counts the departed employees within it.
	ValuableLeavers int
}

// Pipeline runs the whole attrition workflow over an in-memory table.
type Pipeline struct {
	cfg    Config
	logger *slog.Logger
}

// NewPipeline creates a pipeline with a validated configuration. Start from
// DefaultConfig and override fields; a nil logger falls back to
// slog.Default().
func NewPipeline(cfg Config, logger *slog.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{cfg: cfg, logger: logger}, nil
}

// Run executes encode, filter, select, evaluate and rank in order. Any
// stage error aborts the run; there are no partial results.
func (p *Pipeline) Run(table *dataset.Table) (*Outcome, error) {
	fitOpts := []glm.Option{glm.WithMaxIter(p.cfg.MaxIter), glm.WithTol(p.cfg.Tolerance)}

	// The vocabulary is fitted on the full table so every subset encodes
	// to the same column set.
	encoder := preprocessing.NewOneHotEncoder(
		[]string{dataset.ColDepartment, dataset.ColSalary},
		preprocessing.WithDropColumns(dataset.ColLeft),
	)
	if err := encoder.Fit(table); err != nil {
		return nil, err
	}
	p.logger.Info("vocabulary fitted",
		slog.String(logattr.StageKey, "encode"),
		slog.Int(logattr.SamplesKey, table.NumRows()))

	valuable, err := dataset.FilterValuable(table)
	if err != nil {
		return nil, err
	}
	leavers, err := dataset.FilterValuableLeavers(table)
	if err != nil {
		return nil, err
	}
	p.logger.Info("valuable employees filtered",
		slog.String(logattr.StageKey, "filter"),
		slog.Int(logattr.SamplesKey, valuable.NumRows()),
		slog.Int("valuable_leavers", leavers.NumRows()))

	X, names, err := encoder.Transform(valuable)
	if err != nil {
		return nil, err
	}
	left, err := valuable.Numeric(dataset.ColLeft)
	if err != nil {
		return nil, err
	}
	y := mat.NewVecDense(len(left), append([]float64(nil), left...))

	strategy, err := p.strategy(fitOpts)
	if err != nil {
		return nil, err
	}
	selected, cols, steps, err := strategy.Select(X, y, names)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		// Intercept-only: every employee scores the same probability, so
		// there is nothing to evaluate or rank.
		return nil, errors.NewValueError("Pipeline.Run",
			"refinement removed every predictor; the data carries no attrition signal")
	}
	_, nFeatures := X.Dims()
	p.logger.Info("model selected",
		slog.String(logattr.StageKey, "select"),
		slog.Int(logattr.FeaturesKey, nFeatures),
		slog.Int("selected_predictors", len(cols)),
		slog.Float64(logattr.AICKey, selected.AIC),
		slog.Float64(logattr.DevianceKey, selected.Deviance),
		slog.Int(logattr.IterationKey, selected.Iterations))

	selectedX := columns(X, cols)
	result, err := evaluation.Evaluate(selectedX, y, selected.Names(),
		p.cfg.TrainRatio, p.cfg.Seed, p.cfg.Threshold, fitOpts...)
	if err != nil {
		return nil, err
	}
	p.logger.Info("holdout evaluated",
		slog.String(logattr.StageKey, "evaluate"),
		slog.Int(logattr.SamplesKey, result.Confusion.Total()),
		slog.Int64(logattr.SeedKey, p.cfg.Seed),
		slog.Float64(logattr.ThresholdKey, p.cfg.Threshold),
		slog.Float64(logattr.AccuracyKey, result.Confusion.Accuracy()),
		slog.Float64(logattr.SensitivityKey, result.Confusion.Sensitivity()),
		slog.Float64(logattr.SpecificityKey, result.Confusion.Specificity()))

	performance, err := valuable.Numeric(dataset.ColEvaluation)
	if err != nil {
		return nil, err
	}
	shortlist, err := ranking.Rank(result.Predictions, performance, p.cfg.TopN)
	if err != nil {
		return nil, err
	}
	p.logger.Info("shortlist ranked",
		slog.String(logattr.StageKey, "rank"),
		slog.Int(logattr.SamplesKey, len(shortlist)))

	return &Outcome{
		Vocabulary:        encoder.Vocab,
		Selected:          selected,
		Steps:             steps,
		Evaluation:        result,
		Shortlist:         shortlist,
		ValuableEmployees: valuable.NumRows(),
		ValuableLeavers:   leavers.NumRows(),
	}, nil
}

func (p *Pipeline) strategy(fitOpts []glm.Option) (selection.Strategy, error) {
	switch p.cfg.Strategy {
	case StrategyBackward:
		return selection.NewBackwardRefiner(
			selection.WithVIFThreshold(p.cfg.VIFThreshold),
			selection.WithPCutoff(p.cfg.PCutoff),
			selection.WithFitOptions(fitOpts...),
		), nil
	case StrategyStepwise:
		return selection.NewStepwiseAIC(
			selection.WithStepwiseFitOptions(fitOpts...),
		), nil
	default:
		return nil, errors.NewValueError("Pipeline.strategy", "unknown strategy "+p.cfg.Strategy)
	}
}

func columns(X *mat.Dense, cols []int) *mat.Dense {
	r, _ := X.Dims()
	out := mat.NewDense(r, len(cols), nil)
	for k, j := range cols {
		for i := 0; i < r; i++ {
			out.Set(i, k, X.At(i, j))
		}
	}
	return out
}
