package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mynt/inventory-tracker/internal/domain/entity"
	"github.com/mynt/inventory-tracker/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento de consumo.
func (r *MovementRepo) Create(m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO inventory_movements (id, order_id, order_created_at, base_type, category, size, qty_used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.OrderID, m.OrderCreatedAt, m.BaseType, m.Category, m.Size, m.QtyUsed, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// SumUsedSince devuelve el consumo agrupado por clave para movimientos con
// order_created_at >= from. from nil suma todo el histórico.
func (r *MovementRepo) SumUsedSince(from *time.Time) ([]entity.UsedAggregate, error) {
	query := `
		SELECT base_type, category, size, COALESCE(SUM(qty_used), 0) AS used
		FROM inventory_movements`
	args := []any{}
	if from != nil {
		query += ` WHERE order_created_at >= $1`
		args = append(args, *from)
	}
	query += `
		GROUP BY base_type, category, size
		ORDER BY base_type ASC, category ASC, size ASC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("sum used: %w", err)
	}
	defer rows.Close()

	var aggs []entity.UsedAggregate
	for rows.Next() {
		var a entity.UsedAggregate
		if err := rows.Scan(&a.Key.BaseType, &a.Key.Category, &a.Key.Size, &a.QtyUsed); err != nil {
			return nil, fmt.Errorf("scan used aggregate: %w", err)
		}
		aggs = append(aggs, a)
	}
	return aggs, rows.Err()
}

// DeleteWindow elimina los movimientos con order_created_at >= cutoff.
func (r *MovementRepo) DeleteWindow(cutoff time.Time) (int64, error) {
	tag, err := r.q.Exec(context.Background(),
		`DELETE FROM inventory_movements WHERE order_created_at >= $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete movement window: %w", err)
	}
	return tag.RowsAffected(), nil
}
