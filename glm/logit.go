// Package glm fits binomial generalized linear models by iteratively
// reweighted least squares and reports the inference statistics the model
// selection step relies on: coefficient standard errors, z statistics,
// two-tailed p-values, null and residual deviance, and AIC.
package glm

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/attrigo/pkg/errors"
)

const (
	defaultMaxIter = 25
	defaultTol     = 1e-8

	// probClip keeps fitted probabilities away from 0 and 1 so the working
	// weights and the deviance stay finite.
	probClip = 1e-10
)

// Coefficient is one fitted model term with its inference statistics.
type Coefficient struct {
	Name     string
	Estimate float64
	StdErr   float64
	Z        float64
	PValue   float64
}

// Model is an immutable fitted binomial GLM. Refinement never modifies a
// Model; it fits a new one on a reduced predictor set.
type Model struct {
	// Intercept is the fitted intercept term.
	Intercept Coefficient

	// Coefficients are the fitted predictor terms, in design-matrix order.
	Coefficients []Coefficient

	// NullDeviance is the deviance of the intercept-only fit.
	NullDeviance float64

	// Deviance is the residual deviance of the full fit.
	Deviance float64

	// DF is the residual degrees of freedom, n - (p+1).
	DF int

	// AIC is the Akaike information criterion, Deviance + 2*(p+1).
	AIC float64

	// Iterations is the number of IRLS iterations performed.
	Iterations int

	// N is the number of observations.
	N int
}

// Names returns the predictor names in design-matrix order.
func (m *Model) Names() []string {
	names := make([]string, len(m.Coefficients))
	for i, c := range m.Coefficients {
		names[i] = c.Name
	}
	return names
}

// PredictProba applies the model to a design matrix with the same column
// set and order as the fit, returning per-row probabilities.
func (m *Model) PredictProba(X mat.Matrix) (*mat.VecDense, error) {
	r, c := X.Dims()
	if c != len(m.Coefficients) {
		return nil, errors.NewDimensionError("Model.PredictProba", len(m.Coefficients), c, 1)
	}
	probs := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		eta := m.Intercept.Estimate
		for j := 0; j < c; j++ {
			eta += X.At(i, j) * m.Coefficients[j].Estimate
		}
		probs.SetVec(i, sigmoid(eta))
	}
	return probs, nil
}

// Option is a functional option for Fit.
type Option func(*fitConfig)

type fitConfig struct {
	maxIter int
	tol     float64
}

// WithMaxIter sets the IRLS iteration bound.
func WithMaxIter(maxIter int) Option {
	return func(c *fitConfig) {
		c.maxIter = maxIter
	}
}

// WithTol sets the convergence tolerance on the deviance change.
func WithTol(tol float64) Option {
	return func(c *fitConfig) {
		c.tol = tol
	}
}

// Fit fits a binomial logistic regression of y on X by maximum likelihood.
// X is the n×p design matrix, y the n-vector of 0/1 labels, names the p
// predictor names. The intercept is always included and reported separately.
//
// Errors: SingularMatrixError when the weighted normal equations cannot be
// solved, ConvergenceError when the iteration bound is reached before the
// deviance change drops below the tolerance.
func Fit(X mat.Matrix, y *mat.VecDense, names []string, opts ...Option) (*Model, error) {
	cfg := fitConfig{maxIter: defaultMaxIter, tol: defaultTol}
	for _, opt := range opts {
		opt(&cfg)
	}

	n, p := X.Dims()
	if n == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "glm.Fit")
	}
	if y.Len() != n {
		return nil, errors.NewDimensionError("glm.Fit", n, y.Len(), 0)
	}
	if len(names) != p {
		return nil, errors.NewDimensionError("glm.Fit", p, len(names), 1)
	}
	if err := checkLabels("glm.Fit", y); err != nil {
		return nil, err
	}

	// Augment with the intercept column: Xa = [1, X].
	Xa := mat.NewDense(n, p+1, nil)
	for i := 0; i < n; i++ {
		Xa.Set(i, 0, 1)
		for j := 0; j < p; j++ {
			Xa.Set(i, j+1, X.At(i, j))
		}
	}
	return irls("glm.Fit", Xa, y, names, cfg)
}

// FitIntercept fits the intercept-only model: no predictors, one constant
// fitted probability. It is the terminal state of a refinement that removes
// every predictor, where the residual deviance equals the null deviance.
func FitIntercept(y *mat.VecDense, opts ...Option) (*Model, error) {
	cfg := fitConfig{maxIter: defaultMaxIter, tol: defaultTol}
	for _, opt := range opts {
		opt(&cfg)
	}

	n := y.Len()
	if n == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "glm.FitIntercept")
	}
	if err := checkLabels("glm.FitIntercept", y); err != nil {
		return nil, err
	}

	Xa := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		Xa.Set(i, 0, 1)
	}
	return irls("glm.FitIntercept", Xa, y, nil, cfg)
}

func checkLabels(op string, y *mat.VecDense) error {
	for i := 0; i < y.Len(); i++ {
		if v := y.AtVec(i); v != 0 && v != 1 {
			return errors.NewValueError(op, "labels must be 0 or 1")
		}
	}
	return nil
}

// irls runs the reweighted least squares loop over the augmented design
// matrix Xa = [1, X]. names holds the p = cols-1 predictor names.
func irls(op string, Xa *mat.Dense, y *mat.VecDense, names []string, cfg fitConfig) (*Model, error) {
	n, cols := Xa.Dims()
	p := cols - 1

	beta := make([]float64, p+1)
	w := make([]float64, n)
	z := make([]float64, n)

	deviance := math.Inf(1)
	lastChange := math.Inf(1)
	converged := false
	iterations := 0

	var fisherInv mat.Dense

	for iter := 0; iter < cfg.maxIter; iter++ {
		iterations = iter + 1

		for i := 0; i < n; i++ {
			e := beta[0]
			for j := 0; j < p; j++ {
				e += Xa.At(i, j+1) * beta[j+1]
			}
			m := clipProb(sigmoid(e))
			w[i] = m * (1 - m)
			z[i] = e + (y.AtVec(i)-m)/w[i]
		}

		// Weighted normal equations: (Xa' W Xa) beta = Xa' W z.
		xtwx := mat.NewDense(p+1, p+1, nil)
		xtwz := mat.NewVecDense(p+1, nil)
		for j := 0; j <= p; j++ {
			var rhs float64
			for i := 0; i < n; i++ {
				rhs += Xa.At(i, j) * w[i] * z[i]
			}
			xtwz.SetVec(j, rhs)
			for k := j; k <= p; k++ {
				var s float64
				for i := 0; i < n; i++ {
					s += Xa.At(i, j) * w[i] * Xa.At(i, k)
				}
				xtwx.Set(j, k, s)
				xtwx.Set(k, j, s)
			}
		}

		if err := fisherInv.Inverse(xtwx); err != nil {
			return nil, errors.NewSingularMatrixError(op, "")
		}

		var next mat.VecDense
		next.MulVec(&fisherInv, xtwz)
		for j := 0; j <= p; j++ {
			beta[j] = next.AtVec(j)
		}

		newDeviance := binomialDeviance(y, Xa, beta)
		lastChange = math.Abs(deviance - newDeviance)
		deviance = newDeviance
		if lastChange < cfg.tol {
			converged = true
			break
		}
	}

	if !converged {
		return nil, errors.NewConvergenceError(op, cfg.maxIter, cfg.tol, lastChange)
	}

	model := &Model{
		Coefficients: make([]Coefficient, p),
		NullDeviance: nullDeviance(y),
		Deviance:     deviance,
		DF:           n - (p + 1),
		AIC:          deviance + 2*float64(p+1),
		Iterations:   iterations,
		N:            n,
	}
	model.Intercept = makeCoefficient("(Intercept)", beta[0], fisherInv.At(0, 0))
	for j := 0; j < p; j++ {
		model.Coefficients[j] = makeCoefficient(names[j], beta[j+1], fisherInv.At(j+1, j+1))
	}
	return model, nil
}

func makeCoefficient(name string, estimate, variance float64) Coefficient {
	se := math.Sqrt(variance)
	z := estimate / se
	return Coefficient{
		Name:     name,
		Estimate: estimate,
		StdErr:   se,
		Z:        z,
		PValue:   2 * distuv.UnitNormal.Survival(math.Abs(z)),
	}
}

// binomialDeviance is -2 times the binomial log-likelihood at beta.
func binomialDeviance(y *mat.VecDense, Xa *mat.Dense, beta []float64) float64 {
	n, cols := Xa.Dims()
	var ll float64
	for i := 0; i < n; i++ {
		var e float64
		for j := 0; j < cols; j++ {
			e += Xa.At(i, j) * beta[j]
		}
		m := clipProb(sigmoid(e))
		if y.AtVec(i) == 1 {
			ll += math.Log(m)
		} else {
			ll += math.Log(1 - m)
		}
	}
	return -2 * ll
}

// nullDeviance is the deviance of the intercept-only fit, whose maximum
// likelihood probability is the label mean.
func nullDeviance(y *mat.VecDense) float64 {
	n := y.Len()
	var sum float64
	for i := 0; i < n; i++ {
		sum += y.AtVec(i)
	}
	m := clipProb(sum / float64(n))
	var ll float64
	for i := 0; i < n; i++ {
		if y.AtVec(i) == 1 {
			ll += math.Log(m)
		} else {
			ll += math.Log(1 - m)
		}
	}
	return -2 * ll
}

func clipProb(p float64) float64 {
	if p < probClip {
		return probClip
	}
	if p > 1-probClip {
		return 1 - probClip
	}
	return p
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}
