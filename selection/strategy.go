package selection

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/attrigo/glm"
)

// Action describes what a refinement step did to the predictor set.
type Action string

const (
	// ActionDrop removes a predictor from the set.
	ActionDrop Action = "drop"
	// ActionAdd brings a predictor back into the set (stepwise only).
	ActionAdd Action = "add"
)

// Reason describes why a predictor was dropped.
type Reason string

const (
	// ReasonCollinearity marks a removal driven by a high VIF.
	ReasonCollinearity Reason = "collinearity"
	// ReasonSignificance marks a removal driven by a weak p-value.
	ReasonSignificance Reason = "significance"
	// ReasonAIC marks a stepwise change driven purely by AIC.
	ReasonAIC Reason = "aic"
)

// Step is one entry of the refinement trace.
type Step struct {
	Action    Action
	Predictor string
	Reason    Reason
	VIF       float64 // VIF of the predictor at removal time, if computed
	PValue    float64 // p-value of the predictor at removal time, if computed
	AICBefore float64
	AICAfter  float64
}

// Strategy selects a final model from a design matrix, a label vector and
// the ordered predictor names, returning the fitted model, the surviving
// predictor column indices into the original matrix, and the step trace.
type Strategy interface {
	Select(X *mat.Dense, y *mat.VecDense, names []string) (*glm.Model, []int, []Step, error)
}

// subMatrix extracts the given columns of X, preserving their order.
func subMatrix(X *mat.Dense, cols []int) *mat.Dense {
	r, _ := X.Dims()
	out := mat.NewDense(r, len(cols), nil)
	for k, j := range cols {
		for i := 0; i < r; i++ {
			out.Set(i, k, X.At(i, j))
		}
	}
	return out
}

func subNames(names []string, cols []int) []string {
	out := make([]string, len(cols))
	for k, j := range cols {
		out[k] = names[j]
	}
	return out
}
