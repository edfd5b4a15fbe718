package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/mynt/inventory-tracker/internal/domain"
	"github.com/mynt/inventory-tracker/internal/domain/entity"
	"github.com/mynt/inventory-tracker/internal/domain/repository"
)

var _ repository.AlertLogRepository = (*AlertLogRepo)(nil)

// AlertLogRepo implementación sobre PostgreSQL (usable con pool o tx).
type AlertLogRepo struct {
	q Querier
}

// NewAlertLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAlertLogRepository(q Querier) *AlertLogRepo {
	return &AlertLogRepo{q: q}
}

// Exists indica si ya hay fila para (kind, for_date).
func (r *AlertLogRepo) Exists(kind string, forDate time.Time) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM email_alert_logs WHERE kind = $1 AND for_date = $2)`,
		kind, forDate,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("alert log exists: %w", err)
	}
	return exists, nil
}

// Create inserta la fila de deduplicación. El unique por (kind, for_date)
// convierte la carrera entre dos verificaciones en domain.ErrDuplicate.
func (r *AlertLogRepo) Create(logRow *entity.EmailAlertLog) error {
	if logRow.SentAt.IsZero() {
		logRow.SentAt = time.Now().UTC()
	}
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO email_alert_logs (kind, for_date, item_count, sent_at)
		VALUES ($1, $2, $3, $4)`,
		logRow.Kind, logRow.ForDate, logRow.ItemCount, logRow.SentAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create alert log: %w", err)
	}
	return nil
}
