package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/htmw/2025Su-ByteSquad/internal/domain"
	"github.com/htmw/2025Su-ByteSquad/pkg/database"
	apperrors "github.com/htmw/2025Su-ByteSquad/pkg/errors"
)

const supplementColumns = `id, name, description, price, price_ref, image_url, category, brand, stock_quantity, usage_instructions, benefits, is_available, created_at, updated_at`

// SupplementRepository implements repository.SupplementRepository using PostgreSQL.
type SupplementRepository struct {
	db DBTX
}

// NewSupplementRepository creates a new PostgreSQL-backed supplement repository.
func NewSupplementRepository(db DBTX) *SupplementRepository {
	return &SupplementRepository{db: db}
}

// List returns available supplements, optionally filtered by category.
func (r *SupplementRepository) List(ctx context.Context, category string) (_ []domain.Supplement, err error) {
	query := `
		SELECT ` + supplementColumns + `
		FROM supplements
		WHERE is_available = true`
	var args []any

	if category != "" {
		query += ` AND category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY name ASC`

	ctx, end := database.TraceQuery(ctx, "ListSupplements", query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list supplements: %w", err)
	}
	defer rows.Close()

	var supplements []domain.Supplement
	for rows.Next() {
		s, err := scanSupplement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supplement row: %w", err)
		}
		supplements = append(supplements, *s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate supplement rows: %w", err)
	}

	if supplements == nil {
		supplements = []domain.Supplement{}
	}

	return supplements, nil
}

// GetByID retrieves a single supplement by its ID.
func (r *SupplementRepository) GetByID(ctx context.Context, id string) (_ *domain.Supplement, err error) {
	query := `
		SELECT ` + supplementColumns + `
		FROM supplements
		WHERE id = $1`

	ctx, end := database.TraceQuery(ctx, "GetSupplement", query)
	defer func() { end(err) }()

	row := r.db.QueryRow(ctx, query, id)
	s, err := scanSupplement(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("supplement", id)
		}
		return nil, fmt.Errorf("get supplement: %w", err)
	}

	return s, nil
}

// scanSupplement reads one supplement from a row scanner.
func scanSupplement(row pgx.Row) (*domain.Supplement, error) {
	var s domain.Supplement
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Description,
		&s.Price,
		&s.PriceRef,
		&s.ImageURL,
		&s.Category,
		&s.Brand,
		&s.StockQuantity,
		&s.UsageInstructions,
		&s.Benefits,
		&s.IsAvailable,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
