package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/ncc-parade-api/internal/models"
)

// CadetRepository reads the cadet roster. The roster itself is owned by a
// separate management tool; this service never writes to it.
type CadetRepository struct {
	db *sqlx.DB
}

// NewCadetRepository constructs the repository.
func NewCadetRepository(db *sqlx.DB) *CadetRepository {
	return &CadetRepository{db: db}
}

// ListActive returns active cadets matching the filter, ordered by enrollment
// number.
func (r *CadetRepository) ListActive(ctx context.Context, filter models.CadetFilter) ([]models.Cadet, error) {
	where := []string{"is_active = TRUE"}
	args := []interface{}{}

	if len(filter.Categories) > 0 {
		where = append(where, fmt.Sprintf("category = ANY($%d)", len(args)+1))
		args = append(args, pq.Array(filter.Categories))
	}
	if filter.Category != "" {
		where = append(where, fmt.Sprintf("category = $%d", len(args)+1))
		args = append(args, filter.Category)
	}
	if filter.Division != "" {
		where = append(where, fmt.Sprintf("division = $%d", len(args)+1))
		args = append(args, filter.Division)
	}
	if filter.Search != "" {
		where = append(where, fmt.Sprintf("name ILIKE $%d", len(args)+1))
		args = append(args, "%"+filter.Search+"%")
	}

	query := fmt.Sprintf(`SELECT id, enrollment_no, rank, name, category, division, is_active, created_at
FROM cadets
WHERE %s
ORDER BY enrollment_no ASC`, strings.Join(where, " AND "))

	var cadets []models.Cadet
	if err := r.db.SelectContext(ctx, &cadets, query, args...); err != nil {
		return nil, fmt.Errorf("list cadets: %w", err)
	}
	return cadets, nil
}
