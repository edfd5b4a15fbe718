package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mynt/inventory-tracker/internal/domain/entity"
	"github.com/mynt/inventory-tracker/internal/domain/repository"
)

var _ repository.StartRecordRepository = (*StartRecordRepo)(nil)

// StartRecordRepo implementación sobre PostgreSQL (usable con pool o tx).
type StartRecordRepo struct {
	q Querier
}

// NewStartRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStartRecordRepository(q Querier) *StartRecordRepo {
	return &StartRecordRepo{q: q}
}

// UpsertStartQty crea o actualiza la cantidad inicial de la clave. El unique
// de (base_type, category, size) resuelve el conflicto; min_qty no se toca.
func (r *StartRecordRepo) UpsertStartQty(key entity.InventoryKey, startQty int) (*entity.StartRecord, error) {
	return r.upsert(key, "start_qty", startQty)
}

// UpsertMinQty crea o actualiza el umbral mínimo de la clave; start_qty no se toca.
func (r *StartRecordRepo) UpsertMinQty(key entity.InventoryKey, minQty int) (*entity.StartRecord, error) {
	return r.upsert(key, "min_qty", minQty)
}

func (r *StartRecordRepo) upsert(key entity.InventoryKey, column string, qty int) (*entity.StartRecord, error) {
	query := fmt.Sprintf(`
		INSERT INTO inventory_starts (id, base_type, category, size, %[1]s, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		ON CONFLICT (base_type, category, size)
		DO UPDATE SET %[1]s = EXCLUDED.%[1]s, updated_at = now()
		RETURNING id, base_type, category, size, start_qty, min_qty, created_at, updated_at`, column)

	var s entity.StartRecord
	err := r.q.QueryRow(context.Background(), query,
		uuid.New().String(), key.BaseType, key.Category, key.Size, qty,
	).Scan(&s.ID, &s.BaseType, &s.Category, &s.Size, &s.StartQty, &s.MinQty, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert %s: %w", column, err)
	}
	return &s, nil
}

// List devuelve todos los registros ordenados por (base, categoría, tamaño).
func (r *StartRecordRepo) List() ([]*entity.StartRecord, error) {
	query := `
		SELECT id, base_type, category, size, start_qty, min_qty, created_at, updated_at
		FROM inventory_starts
		ORDER BY base_type ASC, category ASC, size ASC`

	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list start records: %w", err)
	}
	defer rows.Close()

	var list []*entity.StartRecord
	for rows.Next() {
		var s entity.StartRecord
		if err := rows.Scan(&s.ID, &s.BaseType, &s.Category, &s.Size, &s.StartQty, &s.MinQty, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan start record: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
