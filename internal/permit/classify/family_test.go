package classify

import "testing"

func TestParseFilingNumber(t *testing.T) {
	cases := []struct {
		number     string
		wantPrefix string
		wantSuffix string
	}{
		{"B00020213-I1-EL", "B00020213", "I1-EL"},
		{"B00020213-P1-EL", "B00020213", "P1-EL"},
		{"B00020213-I1", "B00020213", "I1"},
		{"M00031444-S12", "M00031444", "S12"},
		{"C00099999", "C00099999", ""},
		{"b123-i1-el", "b123", "I1-EL"},
		{"", "", ""},
		{"no-pattern-here", "no-pattern-here", ""},
		{"dash-only-", "dash-only-", ""},
		{"-I1", "-I1", ""},
		// Multiple filing-code segments: the last one wins.
		{"X-I1-P2", "X-I1", "P2"},
		{"I1", "I1", ""},
	}
	for _, tc := range cases {
		t.Run(tc.number, func(t *testing.T) {
			got := ParseFilingNumber(tc.number)
			if got.Prefix != tc.wantPrefix || got.Suffix != tc.wantSuffix {
				t.Fatalf("ParseFilingNumber(%q) = {%q, %q}, want {%q, %q}",
					tc.number, got.Prefix, got.Suffix, tc.wantPrefix, tc.wantSuffix)
			}
			// Total and stable: a second parse agrees, and the prefix is
			// never empty for non-empty input.
			again := ParseFilingNumber(tc.number)
			if again != got {
				t.Fatalf("parse not stable for %q", tc.number)
			}
			if tc.number != "" && got.Prefix == "" {
				t.Fatalf("empty prefix for non-empty number %q", tc.number)
			}
		})
	}
}

func TestFilingNumberIsInitial(t *testing.T) {
	cases := []struct {
		number string
		want   bool
	}{
		{"B1-I1-EL", true},
		{"B1-I12", true},
		{"B1-P1-EL", false},
		{"B1-S3", false},
		{"standalone", false},
	}
	for _, tc := range cases {
		if got := ParseFilingNumber(tc.number).IsInitial(); got != tc.want {
			t.Errorf("IsInitial(%q) = %v, want %v", tc.number, got, tc.want)
		}
	}
}

func TestGroupFamilies(t *testing.T) {
	records := []Record{
		{ID: "1", Number: "B1-I1-EL"},
		{ID: "2", Number: "B1-P1-EL"},
		{ID: "3", Number: "B1-S2"},
		{ID: "4", Number: "C00099999"},
		{ID: "5", Number: "M2-I1"},
	}

	families := GroupFamilies(records)
	if len(families) != 2 {
		t.Fatalf("expected 2 families, got %d", len(families))
	}
	if len(families["B1"]) != 3 {
		t.Fatalf("expected 3 members in B1, got %d", len(families["B1"]))
	}
	if len(families["M2"]) != 1 {
		t.Fatalf("expected 1 member in M2, got %d", len(families["M2"]))
	}
	// Standalone records never join a family.
	if _, ok := families["C00099999"]; ok {
		t.Fatalf("standalone record must not form a family entry")
	}
}
