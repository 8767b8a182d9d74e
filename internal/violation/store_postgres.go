package violation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"parapet/pkg/platform/sentinel"
)

// PostgresStore persists violations in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const violationColumns = `id, property_id, violation_number, agency, class, status,
	description, issued_date, inspection_date, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, v *Violation) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO violations (`+violationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		v.ID, v.PropertyID, v.ViolationNumber, v.Agency, v.Class, string(v.Status),
		v.Description, v.IssuedDate, v.InspectionDate, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create violation: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (*Violation, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+violationColumns+` FROM violations WHERE id = $1`, id)
	v, err := scanViolation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get violation: %w", err)
	}
	return v, nil
}

func (s *PostgresStore) Update(ctx context.Context, v *Violation) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE violations SET
			violation_number = $2, agency = $3, class = $4, status = $5,
			description = $6, issued_date = $7, inspection_date = $8, updated_at = $9
		WHERE id = $1`,
		v.ID, v.ViolationNumber, v.Agency, v.Class, string(v.Status),
		v.Description, v.IssuedDate, v.InspectionDate, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update violation: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM violations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete violation: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*Violation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+violationColumns+` FROM violations
		WHERE property_id = $1
		ORDER BY created_at, id`, propertyID)
	if err != nil {
		return nil, fmt.Errorf("list violations: %w", err)
	}
	defer rows.Close()

	var out []*Violation
	for rows.Next() {
		v, err := scanViolation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan violation: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanViolation(row rowScanner) (*Violation, error) {
	var v Violation
	var status string
	err := row.Scan(
		&v.ID, &v.PropertyID, &v.ViolationNumber, &v.Agency, &v.Class, &status,
		&v.Description, &v.IssuedDate, &v.InspectionDate, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	v.Status = Status(status)
	return &v, nil
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
