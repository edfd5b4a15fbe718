package entity

import "time"

// AlertKindDaily es el único tipo de alerta actual: el aviso diario de
// bajo stock.
const AlertKindDaily = "daily"

// EmailAlertLog es el libro mayor de deduplicación de alertas, único por
// (Kind, ForDate). ForDate es el día truncado a medianoche UTC; la presencia
// de la fila significa que la alerta de ese día ya se envió.
type EmailAlertLog struct {
	Kind      string
	ForDate   time.Time
	ItemCount int
	SentAt    time.Time
}
