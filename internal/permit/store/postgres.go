package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"parapet/internal/permit/classify"
	"parapet/internal/permit/models"
	"parapet/pkg/platform/sentinel"
)

// PostgresStore persists applications in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed application store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const applicationColumns = `id, property_id, application_number, source, raw_status,
	agency, work_type, description, applicant, estimated_cost_cents,
	filing_date, approval_date, expiration_date, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, app *models.Application) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO applications (`+applicationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		app.ID, app.PropertyID, app.ApplicationNumber, string(app.Source), app.RawStatus,
		app.Agency, app.WorkType, app.Description, app.Applicant, app.EstimatedCost,
		app.FilingDate, app.ApprovalDate, app.ExpirationDate, app.CreatedAt, app.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create application: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get application: %w", err)
	}
	return app, nil
}

func (s *PostgresStore) Update(ctx context.Context, app *models.Application) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE applications SET
			application_number = $2, source = $3, raw_status = $4, agency = $5,
			work_type = $6, description = $7, applicant = $8,
			estimated_cost_cents = $9, filing_date = $10, approval_date = $11,
			expiration_date = $12, updated_at = $13
		WHERE id = $1`,
		app.ID, app.ApplicationNumber, string(app.Source), app.RawStatus, app.Agency,
		app.WorkType, app.Description, app.Applicant, app.EstimatedCost,
		app.FilingDate, app.ApprovalDate, app.ExpirationDate, app.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update application: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete application: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*models.Application, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+applicationColumns+` FROM applications
		WHERE property_id = $1
		ORDER BY created_at, id`, propertyID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var out []*models.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		out = append(out, app)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (*models.Application, error) {
	var app models.Application
	var source string
	err := row.Scan(
		&app.ID, &app.PropertyID, &app.ApplicationNumber, &source, &app.RawStatus,
		&app.Agency, &app.WorkType, &app.Description, &app.Applicant, &app.EstimatedCost,
		&app.FilingDate, &app.ApprovalDate, &app.ExpirationDate, &app.CreatedAt, &app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	app.Source = classify.Source(source)
	return &app, nil
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
