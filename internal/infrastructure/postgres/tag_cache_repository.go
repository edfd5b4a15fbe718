package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mynt/inventory-tracker/internal/domain/entity"
	"github.com/mynt/inventory-tracker/internal/domain/repository"
)

var _ repository.TagCacheRepository = (*TagCacheRepo)(nil)

// TagCacheRepo implementación sobre PostgreSQL (usable con pool o tx).
type TagCacheRepo struct {
	q Querier
}

// NewTagCacheRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTagCacheRepository(q Querier) *TagCacheRepo {
	return &TagCacheRepo{q: q}
}

// Get devuelve la entrada del producto, o nil si no hay.
func (r *TagCacheRepo) Get(productID string) (*entity.TagCache, error) {
	var c entity.TagCache
	err := r.q.QueryRow(context.Background(),
		`SELECT product_id, tags_raw, base_type, updated_at FROM product_base_tag_cache WHERE product_id = $1`,
		productID,
	).Scan(&c.ProductID, &c.TagsRaw, &c.BaseType, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tag cache: %w", err)
	}
	return &c, nil
}

// Upsert crea o reemplaza la entrada del producto. Cada clave es
// independiente: upserts concurrentes de productos distintos no compiten.
func (r *TagCacheRepo) Upsert(c *entity.TagCache) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO product_base_tag_cache (product_id, tags_raw, base_type, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_id)
		DO UPDATE SET tags_raw = EXCLUDED.tags_raw, base_type = EXCLUDED.base_type, updated_at = EXCLUDED.updated_at`,
		c.ProductID, c.TagsRaw, c.BaseType, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert tag cache: %w", err)
	}
	return nil
}
