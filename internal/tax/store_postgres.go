package tax

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"parapet/pkg/platform/sentinel"
)

// PostgresStore persists tax records in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const taxColumns = `id, property_id, period, amount_due_cents, amount_paid_cents,
	due_date, paid_date, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, r *Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tax_records (`+taxColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		r.ID, r.PropertyID, r.Period, r.AmountDue, r.AmountPaid,
		r.DueDate, r.PaidDate, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create tax record: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+taxColumns+` FROM tax_records WHERE id = $1`, id)
	r, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get tax record: %w", err)
	}
	return r, nil
}

func (s *PostgresStore) Update(ctx context.Context, r *Record) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE tax_records SET
			period = $2, amount_due_cents = $3, amount_paid_cents = $4,
			due_date = $5, paid_date = $6, updated_at = $7
		WHERE id = $1`,
		r.ID, r.Period, r.AmountDue, r.AmountPaid, r.DueDate, r.PaidDate, r.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update tax record: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tax_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tax record: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+taxColumns+` FROM tax_records
		WHERE property_id = $1
		ORDER BY period DESC, id`, propertyID)
	if err != nil {
		return nil, fmt.Errorf("list tax records: %w", err)
	}
	defer rows.Close()

	var out []*Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tax record: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var r Record
	err := row.Scan(
		&r.ID, &r.PropertyID, &r.Period, &r.AmountDue, &r.AmountPaid,
		&r.DueDate, &r.PaidDate, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
