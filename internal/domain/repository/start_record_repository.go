package repository

import "github.com/mynt/inventory-tracker/internal/domain/entity"

// StartRecordRepository persiste los registros de arranque (start/min) por
// clave de inventario. Propiedad del operador: el motor de escaneo no los crea.
type StartRecordRepository interface {
	// UpsertStartQty crea o actualiza la cantidad inicial de la clave.
	UpsertStartQty(key entity.InventoryKey, startQty int) (*entity.StartRecord, error)
	// UpsertMinQty crea o actualiza el umbral mínimo de alerta de la clave.
	UpsertMinQty(key entity.InventoryKey, minQty int) (*entity.StartRecord, error)
	// List devuelve todos los registros ordenados por (base, categoría, tamaño).
	List() ([]*entity.StartRecord, error)
}
