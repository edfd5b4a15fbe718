package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/mynt/inventory-tracker/internal/domain"
	"github.com/mynt/inventory-tracker/internal/domain/entity"
	"github.com/mynt/inventory-tracker/internal/domain/repository"
)

// Límites de largo de los campos de clave (mismos topes que el esquema).
const (
	maxBaseTypeLen = 60
	maxCategoryLen = 120
	maxSizeLen     = 60
)

// AdminUseCase agrupa las acciones explícitas del operador: cantidades de
// arranque, umbrales mínimos y el corte por defecto. Es el único camino que
// crea StartRecords; el escaneo jamás los auto-crea.
type AdminUseCase struct {
	starts   repository.StartRecordRepository
	settings repository.SettingsRepository
}

// NewAdminUseCase construye el caso de uso.
func NewAdminUseCase(starts repository.StartRecordRepository, settings repository.SettingsRepository) *AdminUseCase {
	return &AdminUseCase{starts: starts, settings: settings}
}

// SetStartQty fija la cantidad inicial de la clave (upsert).
func (uc *AdminUseCase) SetStartQty(key entity.InventoryKey, startQty int) (*entity.StartRecord, error) {
	key = trimKey(key)
	if err := validateKey(key); err != nil {
		return nil, err
	}
	if startQty < 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.starts.UpsertStartQty(key, startQty)
}

// SetMinQty fija el umbral mínimo de alerta de la clave (upsert).
func (uc *AdminUseCase) SetMinQty(key entity.InventoryKey, minQty int) (*entity.StartRecord, error) {
	key = trimKey(key)
	if err := validateKey(key); err != nil {
		return nil, err
	}
	if minQty < 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.starts.UpsertMinQty(key, minQty)
}

// ListStartRecords devuelve todos los registros de arranque.
func (uc *AdminUseCase) ListStartRecords() ([]*entity.StartRecord, error) {
	return uc.starts.List()
}

// GetDefaultFrom devuelve el corte por defecto, o nil si no hay.
func (uc *AdminUseCase) GetDefaultFrom() (*time.Time, error) {
	s, err := uc.settings.Get()
	if err != nil {
		return nil, fmt.Errorf("leer settings: %w", err)
	}
	if s == nil {
		return nil, nil
	}
	return s.DefaultFrom, nil
}

// SetDefaultFrom fija (o limpia, con nil) el corte por defecto.
func (uc *AdminUseCase) SetDefaultFrom(defaultFrom *time.Time) (*entity.Settings, error) {
	return uc.settings.UpsertDefaultFrom(defaultFrom)
}

func trimKey(key entity.InventoryKey) entity.InventoryKey {
	key.BaseType = strings.TrimSpace(key.BaseType)
	key.Category = strings.TrimSpace(key.Category)
	key.Size = strings.TrimSpace(key.Size)
	return key
}

func validateKey(key entity.InventoryKey) error {
	if key.BaseType == "" || len(key.BaseType) > maxBaseTypeLen {
		return domain.ErrInvalidInput
	}
	if key.Category == "" || len(key.Category) > maxCategoryLen {
		return domain.ErrInvalidInput
	}
	if key.Size == "" || len(key.Size) > maxSizeLen {
		return domain.ErrInvalidInput
	}
	return nil
}
