package entity

import "time"

// StartRecord guarda, por InventoryKey, la cantidad inicial y el umbral mínimo
// de alerta. Lo crea y modifica el operador; el escaneo nunca lo toca.
type StartRecord struct {
	ID        string
	BaseType  string
	Category  string
	Size      string
	StartQty  int
	MinQty    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Key devuelve la clave de inventario del registro.
func (s *StartRecord) Key() InventoryKey {
	return InventoryKey{BaseType: s.BaseType, Category: s.Category, Size: s.Size}
}
