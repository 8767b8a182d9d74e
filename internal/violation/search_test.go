package violation

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func date(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func makeViolation(number, agency, class string, status Status) *Violation {
	return &Violation{
		ID:              uuid.New(),
		PropertyID:      uuid.New(),
		ViolationNumber: number,
		Agency:          agency,
		Class:           class,
		Status:          status,
	}
}

func numbers(res SearchResult) []string {
	out := make([]string, 0, len(res.Violations))
	for _, v := range res.Violations {
		out = append(out, v.ViolationNumber)
	}
	return out
}

func TestSearchFilters(t *testing.T) {
	hpd := makeViolation("V100", "HPD", "B", StatusOpen)
	hpd.Description = "broken smoke detector"
	ecb := makeViolation("V200", "ECB", "2", StatusResolved)
	ecb.Description = "facade scaffold"
	input := []*Violation{hpd, ecb}

	t.Run("agency filter is case-insensitive", func(t *testing.T) {
		res := Search(input, Query{Agency: "hpd"})
		if got := numbers(res); len(got) != 1 || got[0] != "V100" {
			t.Fatalf("unexpected result %v", got)
		}
	})

	t.Run("class filter", func(t *testing.T) {
		res := Search(input, Query{Class: "2"})
		if got := numbers(res); len(got) != 1 || got[0] != "V200" {
			t.Fatalf("unexpected result %v", got)
		}
	})

	t.Run("status filter", func(t *testing.T) {
		res := Search(input, Query{Status: StatusResolved})
		if got := numbers(res); len(got) != 1 || got[0] != "V200" {
			t.Fatalf("unexpected result %v", got)
		}
	})

	t.Run("text matches number or description", func(t *testing.T) {
		res := Search(input, Query{Text: "smoke"})
		if got := numbers(res); len(got) != 1 || got[0] != "V100" {
			t.Fatalf("unexpected result %v", got)
		}
		res = Search(input, Query{Text: "v200"})
		if got := numbers(res); len(got) != 1 || got[0] != "V200" {
			t.Fatalf("unexpected result %v", got)
		}
	})

	t.Run("zero query returns everything", func(t *testing.T) {
		res := Search(input, Query{})
		if res.TotalCount != 2 {
			t.Fatalf("expected 2 violations, got %d", res.TotalCount)
		}
	})
}

func TestSearchDedupeKeepsLatestInspection(t *testing.T) {
	older := makeViolation("V300", "DOB", "", StatusOpen)
	older.InspectionDate = date("2023-01-15")
	newer := makeViolation("V300", "DOB", "", StatusResolved)
	newer.InspectionDate = date("2023-06-20")
	noDate := makeViolation("V300", "DOB", "", StatusOpen)

	res := Search([]*Violation{older, noDate, newer}, Query{})
	if res.TotalCount != 1 {
		t.Fatalf("expected 1 violation after dedupe, got %d", res.TotalCount)
	}
	if res.Violations[0].Status != StatusResolved {
		t.Fatalf("expected the latest inspection row to win, got status %q", res.Violations[0].Status)
	}
}

func TestSearchDedupeTiesKeepFirst(t *testing.T) {
	first := makeViolation("V400", "HPD", "A", StatusOpen)
	first.InspectionDate = date("2023-03-01")
	second := makeViolation("V400", "HPD", "A", StatusDismissed)
	second.InspectionDate = date("2023-03-01")

	res := Search([]*Violation{first, second}, Query{})
	if res.Violations[0].ID != first.ID {
		t.Fatalf("tie must keep the first occurrence")
	}
}

func TestSearchSortOrder(t *testing.T) {
	a := makeViolation("V1", "DOB", "", StatusOpen)
	a.IssuedDate = date("2022-01-01")
	b := makeViolation("V2", "DOB", "", StatusOpen)
	b.IssuedDate = date("2023-01-01")
	c := makeViolation("V3", "DOB", "", StatusOpen)
	// No issued date: sorts last.

	res := Search([]*Violation{a, c, b}, Query{})
	got := numbers(res)
	want := []string{"V2", "V1", "V3"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order %v, want %v", got, want)
		}
	}
}

func TestSearchCounts(t *testing.T) {
	open := makeViolation("V1", "HPD", "C", StatusOpen)
	certified := makeViolation("V2", "HPD", "B", StatusCertified)
	resolved := makeViolation("V3", "HPD", "A", StatusResolved)
	dismissed := makeViolation("V4", "ECB", "", StatusDismissed)

	res := Search([]*Violation{open, certified, resolved, dismissed}, Query{})
	if res.TotalCount != 4 {
		t.Fatalf("expected total 4, got %d", res.TotalCount)
	}
	if res.OpenCount != 2 {
		t.Fatalf("open and certified both count as open; got %d", res.OpenCount)
	}
}

func TestSearchEmptyInput(t *testing.T) {
	res := Search(nil, Query{})
	if res.TotalCount != 0 || res.OpenCount != 0 {
		t.Fatalf("empty input must yield zero counts")
	}
}
