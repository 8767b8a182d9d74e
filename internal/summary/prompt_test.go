package summary

import (
	"strings"
	"testing"
)

func TestBuildPrompt(t *testing.T) {
	d := Digest{
		Address:         "350 Broadway",
		Borough:         "Manhattan",
		Units:           12,
		OpenViolations:  3,
		TotalViolations: 7,
		ViolationSample: []string{"HPD V1 (open): no heat", "DOB V2 (certified): facade"},
		ActivePermits:   2,
		TotalPermits:    4,
		TaxOutstanding:  250050,
		TaxOverdueCount: 1,
		OpenWorkOrders:  1,
	}

	prompt := BuildPrompt(d)

	for _, want := range []string{
		"350 Broadway, Manhattan",
		"Units: 12",
		"3 open of 7 total",
		"HPD V1 (open): no heat",
		"2 active of 4 total",
		"$2500.50 across 1 overdue periods",
		"Open work orders: 1",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPromptTruncatesSamples(t *testing.T) {
	d := Digest{Address: "1 Main St", Borough: "Queens"}
	for i := 0; i < 10; i++ {
		d.ViolationSample = append(d.ViolationSample, "HPD V (open): x")
	}

	prompt := BuildPrompt(d)
	if got := strings.Count(prompt, "HPD V (open): x"); got != 5 {
		t.Fatalf("expected 5 sampled violations in the prompt, got %d", got)
	}
}

func TestBuildPromptOmitsZeroUnits(t *testing.T) {
	prompt := BuildPrompt(Digest{Address: "1 Main St", Borough: "Queens"})
	if strings.Contains(prompt, "Units:") {
		t.Fatal("zero units must not appear in the prompt")
	}
}
