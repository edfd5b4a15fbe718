package repository

import "github.com/mynt/inventory-tracker/internal/domain/entity"

// TagCacheRepository persiste el caché de tags por producto. Cada upsert es
// independiente por clave, así que lecturas y escrituras concurrentes de
// resoluciones distintas no se estorban.
type TagCacheRepository interface {
	// Get devuelve la entrada del producto, o nil si no hay.
	Get(productID string) (*entity.TagCache, error)
	// Upsert crea o reemplaza la entrada del producto.
	Upsert(c *entity.TagCache) error
}
