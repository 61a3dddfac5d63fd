package attrition

import (
	"fmt"
	"strings"
)

// Report renders an Outcome as the text report consumed by the CLI and any
// external presentation layer.
func Report(o *Outcome) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Valuable employees: %d (of whom %d left)\n\n",
		o.ValuableEmployees, o.ValuableLeavers)

	b.WriteString("Selected model\n")
	b.WriteString("==============\n")
	b.WriteString(o.Selected.Summary())

	if len(o.Steps) > 0 {
		b.WriteString("\nRefinement trace\n")
		b.WriteString("----------------\n")
		for i, step := range o.Steps {
			fmt.Fprintf(&b, "%2d. %s %-24s (%s) AIC %.2f -> %.2f\n",
				i+1, step.Action, step.Predictor, step.Reason, step.AICBefore, step.AICAfter)
		}
	}

	b.WriteString("\nHoldout evaluation\n")
	b.WriteString("==================\n")
	b.WriteString(o.Evaluation.Confusion.String())
	b.WriteString("\n")

	b.WriteString("\nRetention shortlist\n")
	b.WriteString("===================\n")
	fmt.Fprintf(&b, "%6s %20s %12s %10s\n", "row_id", "probability_to_leave", "performance", "priority")
	for _, e := range o.Shortlist {
		fmt.Fprintf(&b, "%6d %20.4f %12.4f %10.4f\n", e.Row, e.Probability, e.Performance, e.Priority)
	}

	return b.String()
}
