package classify

import (
	"strings"

	"github.com/mynt/inventory-tracker/internal/domain/entity"
)

// Convención legada: los items sin color se guardaban como
// (baseType = etiqueta legada, category = nombre del item, size = centinela).
// La convención nueva los identifica por (nombre del item, categoría, tamaño).
// La derivación pasa en tiempo de lectura, sin migrar datos: shim de
// compatibilidad, no patrón general.

// LegacySizeSentinel es el valor centinela de tamaño de los registros legados.
const LegacySizeSentinel = "Stück"

// Etiquetas legadas de base type.
const (
	LegacyLabelWand        = "Wandprodukt"
	LegacyLabelLack        = "Lackprodukt"
	LegacyLabelGrundierung = "Grundierung"
)

// IsLegacyRecord indica si (baseType, size) siguen la convención vieja.
func IsLegacyRecord(baseType, size string) bool {
	if size != LegacySizeSentinel {
		return false
	}
	switch baseType {
	case LegacyLabelWand, LegacyLabelLack, LegacyLabelGrundierung:
		return true
	}
	return false
}

// DeriveLegacyKey traduce un registro legado a su clave de convención nueva:
// el campo categoría viejo (el nombre del item) pasa a ser el base, y la
// categoría nueva sale de la etiqueta legada; para Grundierung decide el
// prefijo del nombre ("lack..." es Lack, el resto Wandfarbe).
func DeriveLegacyKey(label, itemName, size string) entity.InventoryKey {
	category := CategoryWandfarbe
	switch label {
	case LegacyLabelLack:
		category = CategoryLack
	case LegacyLabelGrundierung:
		if strings.HasPrefix(strings.ToLower(itemName), "lack") {
			category = CategoryLack
		}
	}
	return entity.InventoryKey{BaseType: itemName, Category: category, Size: size}
}
