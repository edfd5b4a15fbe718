package entity

import "time"

// Movement es un evento inmutable de consumo: una orden usó QtyUsed unidades
// de una clave de inventario. Nunca se actualiza en sitio; solo se inserta o
// se elimina en bloque cuando se reconstruye una ventana de tiempo.
type Movement struct {
	ID             string
	OrderID        string
	OrderCreatedAt time.Time
	BaseType       string
	Category       string
	Size           string
	QtyUsed        int
	CreatedAt      time.Time
}

// Key devuelve la clave de inventario del movimiento.
func (m *Movement) Key() InventoryKey {
	return InventoryKey{BaseType: m.BaseType, Category: m.Category, Size: m.Size}
}

// UsedAggregate es el consumo sumado por clave desde un corte (resultado de
// GROUP BY en el repositorio).
type UsedAggregate struct {
	Key     InventoryKey
	QtyUsed int
}
