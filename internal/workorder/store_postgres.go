package workorder

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"parapet/pkg/platform/sentinel"
)

// PostgresStore persists work orders in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const workOrderColumns = `id, property_id, violation_id, vendor_id, title, description,
	status, cost_cents, due_date, completed_at, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, w *WorkOrder) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO work_orders (`+workOrderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		w.ID, w.PropertyID, w.ViolationID, w.VendorID, w.Title, w.Description,
		string(w.Status), w.Cost, w.DueDate, w.CompletedAt, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create work order: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (*WorkOrder, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+workOrderColumns+` FROM work_orders WHERE id = $1`, id)
	w, err := scanWorkOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get work order: %w", err)
	}
	return w, nil
}

func (s *PostgresStore) Update(ctx context.Context, w *WorkOrder) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE work_orders SET
			violation_id = $2, vendor_id = $3, title = $4, description = $5,
			status = $6, cost_cents = $7, due_date = $8, completed_at = $9,
			updated_at = $10
		WHERE id = $1`,
		w.ID, w.ViolationID, w.VendorID, w.Title, w.Description,
		string(w.Status), w.Cost, w.DueDate, w.CompletedAt, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update work order: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM work_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete work order: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*WorkOrder, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+workOrderColumns+` FROM work_orders
		WHERE property_id = $1
		ORDER BY created_at, id`, propertyID)
	if err != nil {
		return nil, fmt.Errorf("list work orders: %w", err)
	}
	defer rows.Close()

	var out []*WorkOrder
	for rows.Next() {
		w, err := scanWorkOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan work order: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorkOrder(row rowScanner) (*WorkOrder, error) {
	var w WorkOrder
	var status string
	err := row.Scan(
		&w.ID, &w.PropertyID, &w.ViolationID, &w.VendorID, &w.Title, &w.Description,
		&status, &w.Cost, &w.DueDate, &w.CompletedAt, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	w.Status = Status(status)
	return &w, nil
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
