package evaluation

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/attrigo/glm"
	"github.com/YuminosukeSato/attrigo/pkg/errors"
)

// DefaultThreshold is the decision threshold applied to predicted
// probabilities: predict positive when probability >= threshold.
const DefaultThreshold = 0.5

// Prediction is one scored holdout row.
type Prediction struct {
	// Row is the row index into the evaluated design matrix.
	Row int
	// Probability is the predicted attrition probability.
	Probability float64
	// Predicted is the thresholded binary prediction.
	Predicted int
	// Actual is the true label.
	Actual int
}

// Result bundles the training refit and the holdout assessment.
type Result struct {
	Model       *glm.Model
	TrainRows   []int
	HoldoutRows []int
	Predictions []Prediction
	Confusion   ConfusionMatrix
}

// Evaluate performs the train/holdout assessment of a selected predictor
// set: a stratified split deterministic in seed, a refit on the training
// partition only, probability predictions on the holdout and a confusion
// matrix at the given threshold.
func Evaluate(X *mat.Dense, y *mat.VecDense, names []string, trainRatio float64, seed int64, threshold float64, opts ...glm.Option) (*Result, error) {
	if threshold < 0 || threshold > 1 {
		return nil, errors.NewValueError("evaluation.Evaluate", "threshold must be in [0, 1]")
	}

	train, holdout, err := TrainTestSplit(y, trainRatio, seed)
	if err != nil {
		return nil, err
	}

	trainX := selectRows(X, train)
	trainY := selectVec(y, train)
	model, err := glm.Fit(trainX, trainY, names, opts...)
	if err != nil {
		return nil, err
	}

	holdX := selectRows(X, holdout)
	probs, err := model.PredictProba(holdX)
	if err != nil {
		return nil, err
	}

	predictions := make([]Prediction, len(holdout))
	yPred := mat.NewVecDense(len(holdout), nil)
	yTrue := mat.NewVecDense(len(holdout), nil)
	for k, row := range holdout {
		prob := probs.AtVec(k)
		predicted := 0
		if prob >= threshold {
			predicted = 1
		}
		actual := int(y.AtVec(row))
		predictions[k] = Prediction{Row: row, Probability: prob, Predicted: predicted, Actual: actual}
		yPred.SetVec(k, float64(predicted))
		yTrue.SetVec(k, float64(actual))
	}

	confusion, err := NewConfusionMatrix(yTrue, yPred)
	if err != nil {
		return nil, err
	}

	return &Result{
		Model:       model,
		TrainRows:   train,
		HoldoutRows: holdout,
		Predictions: predictions,
		Confusion:   confusion,
	}, nil
}

func selectRows(X *mat.Dense, rows []int) *mat.Dense {
	_, c := X.Dims()
	out := mat.NewDense(len(rows), c, nil)
	for i, row := range rows {
		for j := 0; j < c; j++ {
			out.Set(i, j, X.At(row, j))
		}
	}
	return out
}

func selectVec(v *mat.VecDense, rows []int) *mat.VecDense {
	out := mat.NewVecDense(len(rows), nil)
	for i, row := range rows {
		out.SetVec(i, v.AtVec(row))
	}
	return out
}
