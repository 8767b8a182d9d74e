package classify

import (
	"regexp"
	"strings"
)

// FilingNumber is the parsed form of an application number. Suffix is empty
// for standalone records that are not part of a multi-filing family.
type FilingNumber struct {
	Prefix string
	Suffix string
}

// HasSuffix reports whether the number carried a filing-code suffix.
func (f FilingNumber) HasSuffix() bool { return f.Suffix != "" }

// IsInitial reports whether the suffix marks the family's initial filing.
// The agency tag, if any, is ignored: "I1-EL" and "I1" are both initial.
func (f FilingNumber) IsInitial() bool {
	if f.Suffix == "" {
		return false
	}
	code, _, _ := strings.Cut(f.Suffix, "-")
	return strings.HasPrefix(code, "I")
}

// filingNumberRe matches <prefix>-<filingCode>[-<agencyTag>] where filingCode
// is I, P, or S followed by digits and agencyTag is one or more letters,
// e.g. "B00020213-I1-EL". The greedy prefix means the last filing-code
// segment wins when a number contains several.
var filingNumberRe = regexp.MustCompile(`^(.+)-([IPSips][0-9]+)(?:-([A-Za-z]+))?$`)

// ParseFilingNumber splits an application number into its family prefix and
// filing suffix. The parse is total: anything that does not match the filing
// pattern comes back as a standalone number with an empty suffix, and the
// prefix is never empty for non-empty input.
func ParseFilingNumber(number string) FilingNumber {
	m := filingNumberRe.FindStringSubmatch(number)
	if m == nil {
		return FilingNumber{Prefix: number}
	}
	suffix := strings.ToUpper(m[2])
	if m[3] != "" {
		suffix += "-" + strings.ToUpper(m[3])
	}
	return FilingNumber{Prefix: m[1], Suffix: suffix}
}

// GroupFamilies maps family prefix to the records sharing it. Only records
// whose number parses with a suffix join a family; standalone records never
// become family members.
func GroupFamilies(records []Record) map[string][]Record {
	families := make(map[string][]Record)
	for _, r := range records {
		fn := ParseFilingNumber(r.Number)
		if !fn.HasSuffix() {
			continue
		}
		families[fn.Prefix] = append(families[fn.Prefix], r)
	}
	return families
}
