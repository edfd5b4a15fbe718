package entity

import "fmt"

// InventoryKey identifica un bucket físico de inventario.
// La tripleta (BaseType, Category, Size) es la identidad completa:
// clave única de los registros de arranque y clave de agregación del consumo.
type InventoryKey struct {
	BaseType string
	Category string
	Size     string
}

// String devuelve la representación canónica "base|categoría|tamaño".
func (k InventoryKey) String() string {
	return fmt.Sprintf("%s|%s|%s", k.BaseType, k.Category, k.Size)
}

// IsZero indica si la clave está vacía.
func (k InventoryKey) IsZero() bool {
	return k.BaseType == "" && k.Category == "" && k.Size == ""
}
