package selection

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/attrigo/glm"
	"github.com/YuminosukeSato/attrigo/pkg/errors"
)

// StepwiseAIC refines the predictor set on AIC alone: every single add or
// drop from the candidate pool is tried, the one change yielding the lowest
// AIC is applied, and the procedure repeats until no single change improves
// on the current AIC. It starts from the full pool and may end at the
// intercept-only model when no predictor earns its parameter.
//
// Determinism: candidate changes are evaluated in original column order;
// on equal AIC the earlier column wins and a drop beats an add.
type StepwiseAIC struct {
	fitOpts []glm.Option
}

// StepwiseOption is a functional option for StepwiseAIC.
type StepwiseOption func(*StepwiseAIC)

// WithStepwiseFitOptions forwards options to every underlying glm.Fit call.
func WithStepwiseFitOptions(opts ...glm.Option) StepwiseOption {
	return func(s *StepwiseAIC) {
		s.fitOpts = append(s.fitOpts, opts...)
	}
}

// NewStepwiseAIC creates the stepwise strategy.
func NewStepwiseAIC(opts ...StepwiseOption) *StepwiseAIC {
	s := &StepwiseAIC{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Select runs the stepwise search. It returns the final model, the
// surviving column indices into X, and the change trace.
func (s *StepwiseAIC) Select(X *mat.Dense, y *mat.VecDense, names []string) (*glm.Model, []int, []Step, error) {
	_, p := X.Dims()
	if len(names) != p {
		return nil, nil, nil, errors.NewDimensionError("StepwiseAIC.Select", p, len(names), 1)
	}
	if p == 0 {
		return nil, nil, nil, errors.NewValueError("StepwiseAIC.Select", "no predictors supplied")
	}

	inSet := make([]bool, p)
	for j := range inSet {
		inSet[j] = true
	}

	model, err := glm.Fit(X, y, names, s.fitOpts...)
	if err != nil {
		return nil, nil, nil, err
	}

	var steps []Step

	for {
		bestAIC := model.AIC
		bestCol := -1
		var bestAction Action
		var bestModel *glm.Model

		// Drops first, then adds, each in column order, so the documented
		// tie-break falls out of strict improvement checks.
		for _, action := range []Action{ActionDrop, ActionAdd} {
			for j := 0; j < p; j++ {
				if (action == ActionDrop) != inSet[j] {
					continue
				}
				candidate := toggled(inSet, j)
				cols := setColumns(candidate)
				var m *glm.Model
				var err error
				if len(cols) == 0 {
					m, err = glm.FitIntercept(y, s.fitOpts...)
				} else {
					m, err = glm.Fit(subMatrix(X, cols), y, subNames(names, cols), s.fitOpts...)
				}
				if err != nil {
					// A candidate set may be singular even when the current
					// one is not; such a move is simply unavailable.
					var singular *errors.SingularMatrixError
					if errors.As(err, &singular) {
						continue
					}
					return nil, nil, nil, err
				}
				if m.AIC < bestAIC {
					bestAIC = m.AIC
					bestCol = j
					bestAction = action
					bestModel = m
				}
			}
		}

		if bestCol < 0 {
			break // no single change lowers AIC
		}

		steps = append(steps, Step{
			Action:    bestAction,
			Predictor: names[bestCol],
			Reason:    ReasonAIC,
			AICBefore: model.AIC,
			AICAfter:  bestAIC,
		})
		inSet[bestCol] = !inSet[bestCol]
		model = bestModel
	}

	return model, setColumns(inSet), steps, nil
}

func toggled(inSet []bool, j int) []bool {
	out := append([]bool(nil), inSet...)
	out[j] = !out[j]
	return out
}

func setColumns(inSet []bool) []int {
	var cols []int
	for j, b := range inSet {
		if b {
			cols = append(cols, j)
		}
	}
	return cols
}
