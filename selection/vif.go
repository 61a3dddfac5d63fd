// Package selection implements the diagnostic-driven refinement of the
// attrition model: variance inflation factors for collinearity, a backward
// elimination loop gated on significance and AIC, and an AIC-only stepwise
// strategy. Both strategies are deterministic; ties break by the earliest
// position in the original predictor ordering.
package selection

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/attrigo/glm"
	"github.com/YuminosukeSato/attrigo/pkg/errors"
)

// exactDependenceEps bounds how close 1-R² may get to zero before the
// dependency is treated as exact.
const exactDependenceEps = 1e-12

// VIF computes the variance inflation factor of every predictor in X:
// VIF_i = 1/(1-R²_i), with R²_i from regressing predictor i on all others.
//
// An exact dependency (R² = 1) makes the VIF infinite; it is reported as a
// SingularMatrixError naming the predictor, never as a finite value.
func VIF(X mat.Matrix, names []string) ([]float64, error) {
	_, p := X.Dims()
	if len(names) != p {
		return nil, errors.NewDimensionError("selection.VIF", p, len(names), 1)
	}

	vifs := make([]float64, p)
	for j := 0; j < p; j++ {
		r2, err := glm.OLSRSquared(X, j)
		if err != nil {
			var singular *errors.SingularMatrixError
			if errors.As(err, &singular) {
				return nil, errors.NewSingularMatrixError("selection.VIF", names[j])
			}
			return nil, err
		}
		if 1-r2 <= exactDependenceEps {
			return nil, errors.NewSingularMatrixError("selection.VIF", names[j])
		}
		vifs[j] = 1 / (1 - r2)
	}
	return vifs, nil
}
