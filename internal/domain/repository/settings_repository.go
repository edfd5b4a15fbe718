package repository

import (
	"time"

	"github.com/mynt/inventory-tracker/internal/domain/entity"
)

// SettingsRepository persiste la fila única de configuración del operador.
type SettingsRepository interface {
	// Get devuelve la configuración, o nil si todavía no existe.
	Get() (*entity.Settings, error)
	// UpsertDefaultFrom fija (o limpia, con nil) el corte por defecto.
	UpsertDefaultFrom(defaultFrom *time.Time) (*entity.Settings, error)
}
