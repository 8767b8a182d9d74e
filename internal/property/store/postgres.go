package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"parapet/internal/property/models"
	"parapet/pkg/platform/sentinel"
)

// PostgresStore persists properties in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed property store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const propertyColumns = `id, address, borough, block, lot, bin, units,
	portfolio_id, notes, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, p *models.Property) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO properties (`+propertyColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.Address, p.Borough, p.Block, p.Lot, p.BIN, p.Units,
		p.PortfolioID, p.Notes, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create property: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+propertyColumns+` FROM properties WHERE id = $1`, id)
	p, err := scanProperty(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get property: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) Update(ctx context.Context, p *models.Property) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE properties SET
			address = $2, borough = $3, block = $4, lot = $5, bin = $6,
			units = $7, portfolio_id = $8, notes = $9, updated_at = $10
		WHERE id = $1`,
		p.ID, p.Address, p.Borough, p.Block, p.Lot, p.BIN,
		p.Units, p.PortfolioID, p.Notes, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update property: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) List(ctx context.Context, portfolioID *uuid.UUID) ([]*models.Property, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+propertyColumns+` FROM properties
		WHERE $1::uuid IS NULL OR portfolio_id = $1
		ORDER BY address`, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()

	var out []*models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProperty(row rowScanner) (*models.Property, error) {
	var p models.Property
	err := row.Scan(
		&p.ID, &p.Address, &p.Borough, &p.Block, &p.Lot, &p.BIN, &p.Units,
		&p.PortfolioID, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
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
