package entity

import "time"

// TagCacheTTL es la ventana de frescura del caché de tags por producto.
const TagCacheTTL = 7 * 24 * time.Hour

// TagCache guarda, por producto, los tags crudos de la fuente externa y el
// base type derivado de ellos. BaseType nil significa "sin tag base
// reconocido" y también es cacheable: evita re-consultar productos que no
// participan del inventario.
type TagCache struct {
	ProductID string
	TagsRaw   string
	BaseType  *string
	UpdatedAt time.Time
}

// Fresh indica si la entrada sigue vigente respecto de now.
func (c *TagCache) Fresh(now time.Time) bool {
	return now.Sub(c.UpdatedAt) < TagCacheTTL
}
