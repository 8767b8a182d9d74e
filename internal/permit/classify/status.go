package classify

import (
	"strings"
	"unicode"
)

// StatusUnknown is returned for records carrying no status at all.
const StatusUnknown = "Unknown"

// legacyStatusCodes maps the legacy ledger's letter codes to display labels.
// Keys are upper-case; lookups are case-insensitive. Codes absent from the
// table pass through verbatim.
var legacyStatusCodes = map[string]string{
	"A":  "Pre-Filing",
	"B":  "Application Processed",
	"C":  "Application Assigned",
	"D":  "Plan Exam - In Process",
	"F":  "Pending Fee Estimation",
	"G":  "PAA Fee Due",
	"H":  "Completed",
	"J":  "Permit Issued - Partial Job",
	"K":  "Permit Issued - Entire Job",
	"L":  "Letter of Completion Issued",
	"P":  "Plan Exam - Approved",
	"Q":  "Permit Issued",
	"R":  "Permit Renewed",
	"U":  "Disapproved",
	"W":  "Withdrawn",
	"X":  "Signed Off / Completed",
	"CO": "CO Issued",
}

// Decode maps a raw status plus its source to a display label.
//
// Empty statuses decode to StatusUnknown. Legacy-ledger codes of at most two
// characters go through the fixed table, unknown codes passing through
// unchanged. Everything else is treated as free text: a leading "Filing "
// prefix is stripped and the first rune is upper-cased.
//
// Decode is referentially transparent: the same (raw, source) pair always
// yields the same label.
func Decode(raw string, source Source) string {
	if raw == "" {
		return StatusUnknown
	}
	if source == SourceLegacyLedger && len(raw) <= 2 {
		if label, ok := legacyStatusCodes[strings.ToUpper(raw)]; ok {
			return label
		}
		return raw
	}
	return normalizeFreeText(raw)
}

func normalizeFreeText(raw string) string {
	s := raw
	if len(s) >= len("filing ") && strings.EqualFold(s[:len("filing ")], "filing ") {
		s = s[len("filing "):]
	}
	runes := []rune(s)
	if len(runes) > 0 {
		runes[0] = unicode.ToUpper(runes[0])
	}
	return string(runes)
}

// Bucket is the severity styling class of a decoded status. The presentation
// layer maps buckets to badge styles.
type Bucket string

const (
	BucketFinalized        Bucket = "finalized"
	BucketIssued           Bucket = "issued"
	BucketInProgress       Bucket = "in-progress"
	BucketTerminalNegative Bucket = "terminal-negative"
	BucketUnclassified     Bucket = "unclassified"
)

// styleBuckets is the classification priority list. Order is load-bearing:
// "CO Issued" must resolve to finalized even though it also contains "issued",
// so finalized is checked first. Keep this as data, not conditionals.
var styleBuckets = []struct {
	bucket   Bucket
	keywords []string
}{
	{BucketFinalized, []string{"signed off", "completed", "co issued", "letter of completion"}},
	{BucketIssued, []string{"permit issued", "permit renewed", "issued"}},
	{BucketInProgress, []string{"pre-filing", "plan exam", "pending", "in process", "assigned", "application processed", "fee"}},
	{BucketTerminalNegative, []string{"disapproved", "withdrawn", "expired", "denied"}},
}

// StyleBucket classifies a decoded status into a styling bucket by
// case-insensitive substring match, first matching bucket wins.
func StyleBucket(decoded string) Bucket {
	lower := strings.ToLower(decoded)
	for _, b := range styleBuckets {
		for _, kw := range b.keywords {
			if strings.Contains(lower, kw) {
				return b.bucket
			}
		}
	}
	return BucketUnclassified
}

// completedKeywords designate a decoded status as completed for default-filter
// purposes. Matching is case-insensitive substring.
var completedKeywords = []string{
	"signed off",
	"completed",
	"co issued",
	"letter of completion",
}

// IsCompleted reports whether a decoded status counts as completed. Records
// whose status is not completed are "active" for counts and default filtering.
func IsCompleted(decoded string) bool {
	lower := strings.ToLower(decoded)
	for _, kw := range completedKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
