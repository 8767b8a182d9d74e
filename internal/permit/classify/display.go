package classify

import "sort"

// Result is the derived display state for one classification run. It is
// recomputed from scratch on every call; nothing here is cached or shared.
type Result struct {
	// Display holds the top-level rows: standalone records, initial filings,
	// and subsequent filings whose initial was filtered out, sorted by filing
	// date descending.
	Display []Record
	// Related maps a displayed record's ID to the other members of its filing
	// family, drawn from the unfiltered record set so nested rows survive
	// filtering of their siblings.
	Related map[string][]Record
	// ActiveCount counts filtered records whose decoded status is not
	// completed. TotalCount is the filtered set size.
	ActiveCount int
	TotalCount  int
}

// BuildDisplay reconciles filing families and selects the primary row per
// family.
//
// filtered is the record set after the caller's search/status filtering; all
// is the full unfiltered set for the same scope (used only to populate
// related filings). Every filtered record lands either in Display or in some
// displayed record's Related list; nothing is dropped.
func BuildDisplay(filtered, all []Record) Result {
	initialByPrefix := make(map[string]Record)
	for _, r := range filtered {
		fn := ParseFilingNumber(r.Number)
		if fn.HasSuffix() && fn.IsInitial() {
			// First initial wins; duplicate initials in dirty data fall
			// through to the related list so a family keeps one primary.
			if _, ok := initialByPrefix[fn.Prefix]; !ok {
				initialByPrefix[fn.Prefix] = r
			}
		}
	}

	display := make([]Record, 0, len(filtered))
	for _, r := range filtered {
		fn := ParseFilingNumber(r.Number)
		switch {
		case !fn.HasSuffix():
			display = append(display, r)
		case fn.IsInitial():
			if initialByPrefix[fn.Prefix].ID == r.ID {
				display = append(display, r)
			}
		default:
			// A subsequent filing surfaces only when its family has no
			// initial filing in the filtered set.
			if _, ok := initialByPrefix[fn.Prefix]; !ok {
				display = append(display, r)
			}
		}
	}

	// Descending by filing date; missing dates sort as the earliest. Stable
	// so equal dates keep input order across calls.
	sort.SliceStable(display, func(i, j int) bool {
		return dateKey(display[i]) > dateKey(display[j])
	})

	families := GroupFamilies(all)
	related := make(map[string][]Record)
	for _, r := range display {
		fn := ParseFilingNumber(r.Number)
		if !fn.HasSuffix() {
			continue
		}
		for _, member := range families[fn.Prefix] {
			if member.ID == r.ID {
				continue
			}
			related[r.ID] = append(related[r.ID], member)
		}
	}

	active := 0
	for _, r := range filtered {
		if IsActive(r) {
			active++
		}
	}

	return Result{
		Display:     display,
		Related:     related,
		ActiveCount: active,
		TotalCount:  len(filtered),
	}
}

// IsActive reports whether a record's decoded status is not completed. Family
// membership plays no part; each record is judged on its own status.
func IsActive(r Record) bool {
	return !IsCompleted(Decode(r.RawStatus, r.Source))
}

func dateKey(r Record) string {
	if r.FilingDate == nil {
		return ""
	}
	return r.FilingDate.Format("2006-01-02")
}
