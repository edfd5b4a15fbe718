package entity

import "time"

// ProcessedOrder es el libro mayor de órdenes ya conciliadas. A lo sumo una
// fila por OrderID, para siempre (insert-once): su existencia es la garantía
// de procesamiento at-most-once del motor de conciliación.
type ProcessedOrder struct {
	OrderID        string
	OrderName      string
	OrderCreatedAt time.Time
	ProcessedAt    time.Time
}
