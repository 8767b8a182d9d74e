package summary

import (
	"fmt"
	"strings"
)

// Digest is the structured compliance snapshot the prompt is built from. It
// carries counts and headline facts, never raw records, to keep token usage
// bounded.
type Digest struct {
	Address         string
	Borough         string
	Units           int
	OpenViolations  int
	TotalViolations int
	ViolationSample []string
	ActivePermits   int
	TotalPermits    int
	PermitSample    []string
	TaxOutstanding  int64
	TaxOverdueCount int
	OpenWorkOrders  int
}

// BuildPrompt constructs the default summarization prompt. The rules pin the
// model to the digest so it cannot invent violations or dollar figures.
func BuildPrompt(d Digest) string {
	var b strings.Builder

	b.WriteString(`You are summarizing the compliance position of a New York City property for its portfolio manager.

RULES:
1. Use ONLY the facts below. Do not infer agency actions, deadlines, or amounts that are not listed.
2. If a figure is zero, say the area is clear rather than omitting it.
3. Lead with the most urgent item: overdue taxes, then open violations, then permits.
4. Plain prose, no headings, no bullet lists.

Property:
`)
	fmt.Fprintf(&b, "- Address: %s, %s\n", d.Address, d.Borough)
	if d.Units > 0 {
		fmt.Fprintf(&b, "- Units: %d\n", d.Units)
	}
	fmt.Fprintf(&b, "- Violations: %d open of %d total\n", d.OpenViolations, d.TotalViolations)
	for _, v := range sample(d.ViolationSample, 5) {
		fmt.Fprintf(&b, "  - %s\n", v)
	}
	fmt.Fprintf(&b, "- Permit applications: %d active of %d total\n", d.ActivePermits, d.TotalPermits)
	for _, p := range sample(d.PermitSample, 5) {
		fmt.Fprintf(&b, "  - %s\n", p)
	}
	fmt.Fprintf(&b, "- Outstanding tax balance: $%.2f across %d overdue periods\n",
		float64(d.TaxOutstanding)/100, d.TaxOverdueCount)
	fmt.Fprintf(&b, "- Open work orders: %d\n", d.OpenWorkOrders)

	b.WriteString("\nProvide a 3-4 sentence summary of where this property stands.")
	return b.String()
}

func sample(items []string, limit int) []string {
	if len(items) <= limit {
		return items
	}
	return items[:limit]
}
