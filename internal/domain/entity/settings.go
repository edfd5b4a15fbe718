package entity

import "time"

// SettingsID es el id de la fila única de configuración del operador.
const SettingsID = "default"

// Settings es un singleton con el corte por defecto configurado por el
// operador. Se usa cuando un escaneo no recibe corte explícito.
type Settings struct {
	ID          string
	DefaultFrom *time.Time
	UpdatedAt   time.Time
}
