package glm

import (
	"fmt"
	"strings"
)

// Summary renders the fit as a text report: one line per term with
// estimate, standard error, z and p, followed by the deviances and AIC.
// Presentation layers consume this string; nothing in the package prints.
func (m *Model) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-28s %12s %12s %8s %10s\n", "", "Estimate", "Std. Error", "z value", "Pr(>|z|)")
	writeTerm(&b, m.Intercept)
	for _, c := range m.Coefficients {
		writeTerm(&b, c)
	}
	fmt.Fprintf(&b, "\nNull deviance: %.2f on %d degrees of freedom\n", m.NullDeviance, m.N-1)
	fmt.Fprintf(&b, "Residual deviance: %.2f on %d degrees of freedom\n", m.Deviance, m.DF)
	fmt.Fprintf(&b, "AIC: %.2f\n", m.AIC)
	return b.String()
}

func writeTerm(b *strings.Builder, c Coefficient) {
	fmt.Fprintf(b, "%-28s %12.6f %12.6f %8.3f %10.3g %s\n",
		c.Name, c.Estimate, c.StdErr, c.Z, c.PValue, significanceCode(c.PValue))
}

// significanceCode mirrors the conventional significance stars.
func significanceCode(p float64) string {
	switch {
	case p < 0.001:
		return "***"
	case p < 0.01:
		return "**"
	case p < 0.05:
		return "*"
	case p < 0.1:
		return "."
	default:
		return ""
	}
}
