package violation

import (
	"sort"
	"strings"
)

// Query is the caller-owned filter state for the violation list view. The
// zero value returns everything.
type Query struct {
	Agency string
	Class  string
	Status Status
	Text   string
}

// SearchResult is the derived list view, recomputed per call.
type SearchResult struct {
	Violations []*Violation `json:"violations"`
	OpenCount  int          `json:"open_count"`
	TotalCount int          `json:"total_count"`
}

// Search filters, deduplicates, and sorts a violation snapshot. Pure and
// single-pass per stage: filter, then dedupe by violation number keeping the
// most recent inspection, then sort by issued date descending (missing dates
// last). Counts are computed over the deduplicated set.
func Search(violations []*Violation, q Query) SearchResult {
	var filtered []*Violation
	for _, v := range violations {
		if q.Agency != "" && !strings.EqualFold(v.Agency, q.Agency) {
			continue
		}
		if q.Class != "" && !strings.EqualFold(v.Class, q.Class) {
			continue
		}
		if q.Status != "" && v.Status != q.Status {
			continue
		}
		if q.Text != "" {
			t := strings.ToLower(q.Text)
			if !strings.Contains(strings.ToLower(v.ViolationNumber), t) &&
				!strings.Contains(strings.ToLower(v.Description), t) {
				continue
			}
		}
		filtered = append(filtered, v)
	}

	// Dedupe by violation number: keep the row with the latest inspection
	// date; ties keep the first occurrence in input order.
	byNumber := make(map[string]*Violation, len(filtered))
	var order []string
	for _, v := range filtered {
		existing, ok := byNumber[v.ViolationNumber]
		if !ok {
			byNumber[v.ViolationNumber] = v
			order = append(order, v.ViolationNumber)
			continue
		}
		if inspectionAfter(v, existing) {
			byNumber[v.ViolationNumber] = v
		}
	}

	deduped := make([]*Violation, 0, len(order))
	for _, num := range order {
		deduped = append(deduped, byNumber[num])
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		return issuedKey(deduped[i]) > issuedKey(deduped[j])
	})

	open := 0
	for _, v := range deduped {
		if v.IsOpen() {
			open++
		}
	}

	return SearchResult{
		Violations: deduped,
		OpenCount:  open,
		TotalCount: len(deduped),
	}
}

func inspectionAfter(a, b *Violation) bool {
	if a.InspectionDate == nil {
		return false
	}
	if b.InspectionDate == nil {
		return true
	}
	return a.InspectionDate.After(*b.InspectionDate)
}

func issuedKey(v *Violation) string {
	if v.IssuedDate == nil {
		return ""
	}
	return v.IssuedDate.Format("2006-01-02")
}
