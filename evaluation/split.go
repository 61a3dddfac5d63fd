// Package evaluation partitions the data into training and holdout sets,
// refits the selected model on the training partition and scores the
// holdout against a decision threshold.
package evaluation

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/attrigo/pkg/errors"
)

// TrainTestSplit produces a stratified random split of the rows of y:
// per label class, floor(trainRatio * count) rows go to training and the
// rest to the holdout, preserving the class proportions. The split is
// deterministic for a given seed; the returned index slices are sorted
// ascending so downstream row order matches the original table.
//
// A partition left without at least one instance of each class is an
// EmptyPartitionError.
func TrainTestSplit(y *mat.VecDense, trainRatio float64, seed int64) (train, holdout []int, err error) {
	n := y.Len()
	if n == 0 {
		return nil, nil, errors.Wrap(errors.ErrEmptyData, "evaluation.TrainTestSplit")
	}
	if trainRatio <= 0 || trainRatio >= 1 {
		return nil, nil, errors.NewValueError("evaluation.TrainTestSplit", "train ratio must be in (0, 1)")
	}

	// Group rows by class, classes in ascending order for determinism.
	byClass := make(map[int][]int)
	for i := 0; i < n; i++ {
		v := y.AtVec(i)
		if v != math.Trunc(v) {
			return nil, nil, errors.NewValueError("evaluation.TrainTestSplit", "labels must be integral")
		}
		class := int(v)
		byClass[class] = append(byClass[class], i)
	}
	classes := make([]int, 0, len(byClass))
	for class := range byClass {
		classes = append(classes, class)
	}
	sort.Ints(classes)

	rng := rand.New(rand.NewSource(seed))
	for _, class := range classes {
		rows := byClass[class]
		rng.Shuffle(len(rows), func(i, j int) {
			rows[i], rows[j] = rows[j], rows[i]
		})
		nTrain := int(math.Floor(trainRatio * float64(len(rows))))
		if nTrain == 0 {
			return nil, nil, errors.NewEmptyPartitionError("evaluation.TrainTestSplit", "train", class)
		}
		if nTrain == len(rows) {
			return nil, nil, errors.NewEmptyPartitionError("evaluation.TrainTestSplit", "holdout", class)
		}
		train = append(train, rows[:nTrain]...)
		holdout = append(holdout, rows[nTrain:]...)
	}

	sort.Ints(train)
	sort.Ints(holdout)
	return train, holdout, nil
}
