// Package tax tracks property tax obligations and the per-property balance
// rollup the dashboard shows.
package tax

import (
	"strings"
	"time"

	"github.com/google/uuid"

	dErrors "parapet/pkg/domain-errors"
)

// Record mirrors the tax_records table. Amounts are integer cents.
type Record struct {
	ID         uuid.UUID  `json:"id"`
	PropertyID uuid.UUID  `json:"property_id"`
	Period     string     `json:"period"`
	AmountDue  int64      `json:"amount_due_cents"`
	AmountPaid int64      `json:"amount_paid_cents"`
	DueDate    *time.Time `json:"due_date,omitempty"`
	PaidDate   *time.Time `json:"paid_date,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Outstanding is the unpaid remainder, floored at zero so overpayments do not
// show as credit.
func (r *Record) Outstanding() int64 {
	if rem := r.AmountDue - r.AmountPaid; rem > 0 {
		return rem
	}
	return 0
}

// IsOverdue reports whether the record still carries a balance past its due
// date as of now.
func (r *Record) IsOverdue(now time.Time) bool {
	return r.Outstanding() > 0 && r.DueDate != nil && r.DueDate.Before(now)
}

func (r *Record) Validate() error {
	if r.PropertyID == uuid.Nil {
		return dErrors.New(dErrors.CodeBadRequest, "property_id is required")
	}
	if strings.TrimSpace(r.Period) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "period is required")
	}
	if r.AmountDue < 0 || r.AmountPaid < 0 {
		return dErrors.New(dErrors.CodeBadRequest, "amounts must not be negative")
	}
	return nil
}

// Rollup is the per-property balance summary derived from a record list.
type Rollup struct {
	Records          []*Record `json:"records"`
	TotalDue         int64     `json:"total_due_cents"`
	TotalPaid        int64     `json:"total_paid_cents"`
	TotalOutstanding int64     `json:"total_outstanding_cents"`
	OverdueCount     int       `json:"overdue_count"`
}

// BuildRollup derives balances from a snapshot. Pure; callers pass now so
// overdue classification stays testable.
func BuildRollup(records []*Record, now time.Time) Rollup {
	ro := Rollup{Records: records}
	if ro.Records == nil {
		ro.Records = []*Record{}
	}
	for _, r := range records {
		ro.TotalDue += r.AmountDue
		ro.TotalPaid += r.AmountPaid
		ro.TotalOutstanding += r.Outstanding()
		if r.IsOverdue(now) {
			ro.OverdueCount++
		}
	}
	return ro
}
