package evaluation

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/attrigo/pkg/errors"
)

// ConfusionMatrix holds the 2x2 counts of a binary evaluation. The positive
// class is attrition (left = 1).
type ConfusionMatrix struct {
	TP, TN, FP, FN int
}

// NewConfusionMatrix compares predicted against true binary labels.
func NewConfusionMatrix(yTrue, yPred *mat.VecDense) (ConfusionMatrix, error) {
	var cm ConfusionMatrix
	n := yTrue.Len()
	if n == 0 {
		return cm, errors.Wrap(errors.ErrEmptyData, "evaluation.NewConfusionMatrix")
	}
	if yPred.Len() != n {
		return cm, errors.NewDimensionError("evaluation.NewConfusionMatrix", n, yPred.Len(), 0)
	}
	for i := 0; i < n; i++ {
		actual, predicted := yTrue.AtVec(i), yPred.AtVec(i)
		if (actual != 0 && actual != 1) || (predicted != 0 && predicted != 1) {
			return cm, errors.NewValueError("evaluation.NewConfusionMatrix", "labels must be 0 or 1")
		}
		switch {
		case actual == 1 && predicted == 1:
			cm.TP++
		case actual == 0 && predicted == 0:
			cm.TN++
		case actual == 0 && predicted == 1:
			cm.FP++
		default:
			cm.FN++
		}
	}
	return cm, nil
}

// Total returns TP+TN+FP+FN, the number of evaluated rows.
func (cm ConfusionMatrix) Total() int {
	return cm.TP + cm.TN + cm.FP + cm.FN
}

// Accuracy is the fraction of correct predictions.
func (cm ConfusionMatrix) Accuracy() float64 {
	total := cm.Total()
	if total == 0 {
		return 0
	}
	return float64(cm.TP+cm.TN) / float64(total)
}

// Sensitivity is the true positive rate, TP/(TP+FN).
// It is 0 when there are no positive instances.
func (cm ConfusionMatrix) Sensitivity() float64 {
	if cm.TP+cm.FN == 0 {
		return 0
	}
	return float64(cm.TP) / float64(cm.TP+cm.FN)
}

// Specificity is the true negative rate, TN/(TN+FP).
// It is 0 when there are no negative instances.
func (cm ConfusionMatrix) Specificity() float64 {
	if cm.TN+cm.FP == 0 {
		return 0
	}
	return float64(cm.TN) / float64(cm.TN+cm.FP)
}

// String renders the matrix for inclusion in the text report.
func (cm ConfusionMatrix) String() string {
	return fmt.Sprintf(
		"          predicted 0  predicted 1\nactual 0  %11d  %11d\nactual 1  %11d  %11d\naccuracy=%.4f sensitivity=%.4f specificity=%.4f",
		cm.TN, cm.FP, cm.FN, cm.TP, cm.Accuracy(), cm.Sensitivity(), cm.Specificity())
}
