package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/mynt/inventory-tracker/internal/domain/entity"
	"github.com/mynt/inventory-tracker/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo implementación sobre PostgreSQL (usable con pool o tx).
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// Get devuelve la fila única de configuración, o nil si todavía no existe.
func (r *SettingsRepo) Get() (*entity.Settings, error) {
	var s entity.Settings
	err := r.q.QueryRow(context.Background(),
		`SELECT id, default_from, updated_at FROM inventory_settings WHERE id = $1`,
		entity.SettingsID,
	).Scan(&s.ID, &s.DefaultFrom, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

// UpsertDefaultFrom fija (o limpia, con nil) el corte por defecto.
func (r *SettingsRepo) UpsertDefaultFrom(defaultFrom *time.Time) (*entity.Settings, error) {
	var s entity.Settings
	err := r.q.QueryRow(context.Background(), `
		INSERT INTO inventory_settings (id, default_from, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (id)
		DO UPDATE SET default_from = EXCLUDED.default_from, updated_at = now()
		RETURNING id, default_from, updated_at`,
		entity.SettingsID, defaultFrom,
	).Scan(&s.ID, &s.DefaultFrom, &s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert settings: %w", err)
	}
	return &s, nil
}
