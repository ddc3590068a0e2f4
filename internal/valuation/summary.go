package valuation

import (
	"sort"

	"cp-valuation/internal/linear"
)

// TermSummary condenses one objective term for display.
type TermSummary struct {
	Name             string
	Constant         float64
	Variables        int
	CoefficientTotal float64
}

// SummarizeTerms returns one summary per term, sorted by name.
func SummarizeTerms(terms map[string]linear.Expr) []TermSummary {
	names := make([]string, 0, len(terms))
	for name := range terms {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]TermSummary, 0, len(names))
	for _, name := range names {
		expr := terms[name]
		vars := expr.Vars()
		total := 0.0
		for _, v := range vars {
			total += expr.Coeffs[v]
		}
		out = append(out, TermSummary{
			Name:             name,
			Constant:         expr.Constant,
			Variables:        len(vars),
			CoefficientTotal: total,
		})
	}
	return out
}
