package selection

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/attrigo/glm"
	"github.com/YuminosukeSato/attrigo/pkg/errors"
)

const (
	defaultVIFThreshold = 5.0
	defaultPCutoff      = 0.05
)

// BackwardRefiner removes one predictor per iteration, guided by VIF and
// coefficient significance and guarded by AIC:
//
//  1. Fit the current set and compute VIFs.
//  2. If a predictor exceeds the VIF threshold and dropping the worst one
//     does not increase AIC, drop it.
//  3. Otherwise drop the least significant predictor whose p-value exceeds
//     the cutoff, unless dropping it would increase AIC, in which case the
//     predictor is kept and refinement stops.
//  4. Stop when no predictor violates either diagnostic, or when only the
//     intercept remains. The last predictor is subject to the same rules as
//     any other: removing it yields the intercept-only model.
//
// All choices are deterministic; ties break by the earliest position in the
// original predictor ordering.
type BackwardRefiner struct {
	vifThreshold float64
	pCutoff      float64
	fitOpts      []glm.Option
}

// BackwardOption is a functional option for BackwardRefiner.
type BackwardOption func(*BackwardRefiner)

// WithVIFThreshold sets the collinearity flag threshold (default 5).
func WithVIFThreshold(threshold float64) BackwardOption {
	return func(r *BackwardRefiner) {
		r.vifThreshold = threshold
	}
}

// WithPCutoff sets the significance cutoff (default 0.05).
func WithPCutoff(cutoff float64) BackwardOption {
	return func(r *BackwardRefiner) {
		r.pCutoff = cutoff
	}
}

// WithFitOptions forwards options to every underlying glm.Fit call.
func WithFitOptions(opts ...glm.Option) BackwardOption {
	return func(r *BackwardRefiner) {
		r.fitOpts = append(r.fitOpts, opts...)
	}
}

// NewBackwardRefiner creates a refiner with the conventional defaults.
func NewBackwardRefiner(opts ...BackwardOption) *BackwardRefiner {
	r := &BackwardRefiner{
		vifThreshold: defaultVIFThreshold,
		pCutoff:      defaultPCutoff,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Select runs the refinement to its fixed point. It returns the final
// model, the surviving column indices into X, and the removal trace.
func (r *BackwardRefiner) Select(X *mat.Dense, y *mat.VecDense, names []string) (*glm.Model, []int, []Step, error) {
	_, p := X.Dims()
	if len(names) != p {
		return nil, nil, nil, errors.NewDimensionError("BackwardRefiner.Select", p, len(names), 1)
	}
	if p == 0 {
		return nil, nil, nil, errors.NewValueError("BackwardRefiner.Select", "no predictors supplied")
	}

	current := make([]int, p)
	for j := range current {
		current[j] = j
	}

	var steps []Step

	model, err := glm.Fit(subMatrix(X, current), y, subNames(names, current), r.fitOpts...)
	if err != nil {
		return nil, nil, nil, err
	}

	for len(current) > 0 {
		sub := subMatrix(X, current)
		vifs, err := VIF(sub, subNames(names, current))
		if err != nil {
			return nil, nil, nil, err
		}

		// Worst collinear predictor: highest VIF above the threshold,
		// ties by earliest original position (current preserves order).
		worstVIF := -1
		for k, v := range vifs {
			if v > r.vifThreshold && (worstVIF < 0 || v > vifs[worstVIF]) {
				worstVIF = k
			}
		}

		// Least significant predictor: largest p-value above the cutoff.
		worstP := -1
		for k, c := range model.Coefficients {
			if c.PValue > r.pCutoff && (worstP < 0 || c.PValue > model.Coefficients[worstP].PValue) {
				worstP = k
			}
		}

		if worstVIF < 0 && worstP < 0 {
			break // fixed point: every diagnostic is satisfied
		}

		dropped := false
		if worstVIF >= 0 {
			reduced, reducedModel, err := r.refitWithout(X, y, names, current, worstVIF)
			if err != nil {
				return nil, nil, nil, err
			}
			if reducedModel.AIC <= model.AIC {
				steps = append(steps, Step{
					Action:    ActionDrop,
					Predictor: names[current[worstVIF]],
					Reason:    ReasonCollinearity,
					VIF:       vifs[worstVIF],
					PValue:    model.Coefficients[worstVIF].PValue,
					AICBefore: model.AIC,
					AICAfter:  reducedModel.AIC,
				})
				current = reduced
				model = reducedModel
				dropped = true
			}
		}

		if !dropped {
			if worstP < 0 {
				// Collinearity flagged but removal would worsen AIC and
				// every coefficient is significant: keep and stop.
				break
			}
			reduced, reducedModel, err := r.refitWithout(X, y, names, current, worstP)
			if err != nil {
				return nil, nil, nil, err
			}
			if reducedModel.AIC > model.AIC {
				// Removing the next candidate would increase AIC: the
				// pre-removal model is final.
				break
			}
			steps = append(steps, Step{
				Action:    ActionDrop,
				Predictor: names[current[worstP]],
				Reason:    ReasonSignificance,
				VIF:       vifs[worstP],
				PValue:    model.Coefficients[worstP].PValue,
				AICBefore: model.AIC,
				AICAfter:  reducedModel.AIC,
			})
			current = reduced
			model = reducedModel
		}
	}

	return model, current, steps, nil
}

// refitWithout fits the current set minus the predictor at position drop.
// Removing the last predictor yields the intercept-only fit.
func (r *BackwardRefiner) refitWithout(X *mat.Dense, y *mat.VecDense, names []string, current []int, drop int) ([]int, *glm.Model, error) {
	reduced := make([]int, 0, len(current)-1)
	for k, j := range current {
		if k != drop {
			reduced = append(reduced, j)
		}
	}
	if len(reduced) == 0 {
		model, err := glm.FitIntercept(y, r.fitOpts...)
		if err != nil {
			return nil, nil, err
		}
		return reduced, model, nil
	}
	model, err := glm.Fit(subMatrix(X, reduced), y, subNames(names, reduced), r.fitOpts...)
	if err != nil {
		return nil, nil, err
	}
	return reduced, model, nil
}
