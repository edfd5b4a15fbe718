package entity

import "time"

// SourceOrder es el contrato de datos consumido de la fuente de órdenes:
// una orden pagada con sus líneas. El transporte es asunto del adaptador.
type SourceOrder struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	LineItems []LineItem
}

// LineItem es una línea de orden tal como la entrega la fuente.
// ProductID puede ser nil (líneas manuales o productos borrados).
type LineItem struct {
	ProductID    *int64
	Name         string
	VariantTitle string
	Quantity     int
	Properties   []LineItemProperty
}

// LineItemProperty es un par nombre/valor del property bag de la línea
// (ahí viaja, por ejemplo, la opción de pigmento de un color personalizado).
type LineItemProperty struct {
	Name  string
	Value string
}
