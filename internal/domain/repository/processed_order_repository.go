package repository

import (
	"time"

	"github.com/mynt/inventory-tracker/internal/domain/entity"
)

// ProcessedOrderRepository persiste el libro mayor de órdenes conciliadas.
type ProcessedOrderRepository interface {
	// Create inserta la fila del libro mayor. Devuelve domain.ErrDuplicate si
	// la orden ya estaba registrada (violación del unique por OrderID).
	Create(po *entity.ProcessedOrder) error
	// Exists indica si la orden ya fue procesada.
	Exists(orderID string) (bool, error)
	// DeleteWindow elimina las filas con OrderCreatedAt >= cutoff y devuelve
	// cuántas borró.
	DeleteWindow(cutoff time.Time) (int64, error)
	// List devuelve el libro mayor paginado, más reciente primero.
	List(limit, offset int) ([]*entity.ProcessedOrder, error)
}
