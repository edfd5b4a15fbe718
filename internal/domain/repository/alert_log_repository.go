package repository

import (
	"time"

	"github.com/mynt/inventory-tracker/internal/domain/entity"
)

// AlertLogRepository persiste el libro mayor de deduplicación de alertas.
// Las filas se crean a lo sumo una vez por (kind, forDate) y nunca se mutan.
type AlertLogRepository interface {
	// Exists indica si ya hay fila para (kind, forDate).
	Exists(kind string, forDate time.Time) (bool, error)
	// Create inserta la fila. Devuelve domain.ErrDuplicate si otro proceso la
	// insertó primero (violación del unique).
	Create(logRow *entity.EmailAlertLog) error
}
