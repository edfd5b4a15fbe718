package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/mynt/inventory-tracker/internal/domain"
	"github.com/mynt/inventory-tracker/internal/domain/entity"
	"github.com/mynt/inventory-tracker/internal/domain/repository"
)

var _ repository.ProcessedOrderRepository = (*ProcessedOrderRepo)(nil)

// ProcessedOrderRepo implementación sobre PostgreSQL (usable con pool o tx).
type ProcessedOrderRepo struct {
	q Querier
}

// NewProcessedOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProcessedOrderRepository(q Querier) *ProcessedOrderRepo {
	return &ProcessedOrderRepo{q: q}
}

// Create inserta la fila del libro mayor. El unique por order_id convierte el
// doble registro en domain.ErrDuplicate.
func (r *ProcessedOrderRepo) Create(po *entity.ProcessedOrder) error {
	if po.ProcessedAt.IsZero() {
		po.ProcessedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO processed_orders (order_id, order_name, order_created_at, processed_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		po.OrderID, po.OrderName, po.OrderCreatedAt, po.ProcessedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create processed order: %w", err)
	}
	return nil
}

// Exists indica si la orden ya fue conciliada.
func (r *ProcessedOrderRepo) Exists(orderID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM processed_orders WHERE order_id = $1)`, orderID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("processed order exists: %w", err)
	}
	return exists, nil
}

// DeleteWindow elimina las filas con order_created_at >= cutoff.
func (r *ProcessedOrderRepo) DeleteWindow(cutoff time.Time) (int64, error) {
	tag, err := r.q.Exec(context.Background(),
		`DELETE FROM processed_orders WHERE order_created_at >= $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete processed order window: %w", err)
	}
	return tag.RowsAffected(), nil
}

// List devuelve el libro mayor paginado, más reciente primero.
func (r *ProcessedOrderRepo) List(limit, offset int) ([]*entity.ProcessedOrder, error) {
	query := `
		SELECT order_id, order_name, order_created_at, processed_at
		FROM processed_orders
		ORDER BY order_created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list processed orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.ProcessedOrder
	for rows.Next() {
		var po entity.ProcessedOrder
		if err := rows.Scan(&po.OrderID, &po.OrderName, &po.OrderCreatedAt, &po.ProcessedAt); err != nil {
			return nil, fmt.Errorf("scan processed order: %w", err)
		}
		list = append(list, &po)
	}
	return list, rows.Err()
}
