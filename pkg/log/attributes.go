// Package log defines the slog setup and standard attribute keys used by
// the pipeline facade. Core packages do not log; they return errors and the
// facade records one structured event per pipeline stage with these keys.
package log

// Stage context.
const (
	// StageKey identifies the pipeline stage emitting the event.
	// Values: "encode", "filter", "select", "evaluate", "rank".
	StageKey = "pipeline.stage"
)

// Data shape.
const (
	// SamplesKey is the number of rows processed by a stage.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of design-matrix columns.
	FeaturesKey = "data.features"
)

// Fit and evaluation metrics.
const (
	// AICKey records the AIC of a fitted model.
	AICKey = "fit.aic"

	// DevianceKey records the residual deviance of a fitted model.
	DevianceKey = "fit.deviance"

	// IterationKey records iteration counts of iterative procedures.
	IterationKey = "fit.iterations"

	// AccuracyKey records holdout accuracy.
	AccuracyKey = "metrics.accuracy"

	// SensitivityKey records holdout sensitivity (true positive rate).
	SensitivityKey = "metrics.sensitivity"

	// SpecificityKey records holdout specificity (true negative rate).
	SpecificityKey = "metrics.specificity"

	// ThresholdKey records the decision threshold applied to probabilities.
	ThresholdKey = "preds.threshold"

	// SeedKey records the random seed of the split, for reproducibility.
	SeedKey = "config.random_seed"
)
