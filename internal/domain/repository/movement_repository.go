package repository

import (
	"time"

	"github.com/mynt/inventory-tracker/internal/domain/entity"
)

// MovementRepository persiste los eventos de consumo. Los movimientos solo se
// insertan (dentro de la transacción de su orden) o se borran en bloque al
// reconstruir una ventana.
type MovementRepository interface {
	// Create inserta un movimiento.
	Create(m *entity.Movement) error
	// SumUsedSince devuelve el consumo agrupado por clave para movimientos con
	// OrderCreatedAt >= from. from nil suma todo el histórico.
	SumUsedSince(from *time.Time) ([]entity.UsedAggregate, error)
	// DeleteWindow elimina los movimientos con OrderCreatedAt >= cutoff y
	// devuelve cuántos borró.
	DeleteWindow(cutoff time.Time) (int64, error)
}
