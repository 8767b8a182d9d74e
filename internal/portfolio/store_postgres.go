package portfolio

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"parapet/pkg/platform/sentinel"
)

// PostgresStore persists portfolios in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const portfolioColumns = `id, name, description, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, p *Portfolio) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO portfolios (`+portfolioColumns+`)
		VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.Name, p.Description, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create portfolio: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (*Portfolio, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+portfolioColumns+` FROM portfolios WHERE id = $1`, id)
	var p Portfolio
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get portfolio: %w", err)
	}
	return &p, nil
}

func (s *PostgresStore) Update(ctx context.Context, p *Portfolio) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE portfolios SET name = $2, description = $3, updated_at = $4
		WHERE id = $1`,
		p.ID, p.Name, p.Description, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update portfolio: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM portfolios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete portfolio: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) List(ctx context.Context) ([]*Portfolio, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+portfolioColumns+` FROM portfolios ORDER BY lower(name)`)
	if err != nil {
		return nil, fmt.Errorf("list portfolios: %w", err)
	}
	defer rows.Close()

	var out []*Portfolio
	for rows.Next() {
		var p Portfolio
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan portfolio: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
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
