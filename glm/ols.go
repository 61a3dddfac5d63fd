package glm

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/attrigo/pkg/errors"
)

// OLSRSquared regresses column target of X on all remaining columns plus an
// intercept, by ordinary least squares, and returns the R² of that fit. It
// is the auxiliary regression behind the variance inflation factor.
//
// A target column that is constant is perfectly explained by the intercept
// and reports R² = 1. A singular normal-equation system is a
// SingularMatrixError.
func OLSRSquared(X mat.Matrix, target int) (float64, error) {
	n, p := X.Dims()
	if n == 0 || p == 0 {
		return 0, errors.Wrap(errors.ErrEmptyData, "glm.OLSRSquared")
	}
	if target < 0 || target >= p {
		return 0, errors.NewValueError("glm.OLSRSquared", "target column out of range")
	}

	// Response and regressors: [1, X without target].
	yCol := make([]float64, n)
	A := mat.NewDense(n, p, nil)
	for i := 0; i < n; i++ {
		yCol[i] = X.At(i, target)
		A.Set(i, 0, 1)
		k := 1
		for j := 0; j < p; j++ {
			if j == target {
				continue
			}
			A.Set(i, k, X.At(i, j))
			k++
		}
	}
	y := mat.NewVecDense(n, yCol)

	var at mat.Dense
	at.CloneFrom(A.T())

	var ata mat.Dense
	ata.Mul(&at, A)

	var ataInv mat.Dense
	if err := ataInv.Inverse(&ata); err != nil {
		return 0, errors.NewSingularMatrixError("glm.OLSRSquared", "")
	}

	var aty mat.VecDense
	aty.MulVec(&at, y)

	var coef mat.VecDense
	coef.MulVec(&ataInv, &aty)

	var yMean float64
	for i := 0; i < n; i++ {
		yMean += yCol[i]
	}
	yMean /= float64(n)

	var tss, rss float64
	for i := 0; i < n; i++ {
		var pred float64
		for j := 0; j < p; j++ {
			pred += A.At(i, j) * coef.AtVec(j)
		}
		diff := yCol[i] - pred
		rss += diff * diff
		dev := yCol[i] - yMean
		tss += dev * dev
	}

	if tss == 0 {
		// Constant column: the intercept alone reproduces it exactly.
		return 1, nil
	}
	r2 := 1 - rss/tss
	if r2 > 1 {
		r2 = 1
	}
	return r2, nil
}
