package inventory

import (
	"fmt"
	"sort"
	"time"

	"github.com/mynt/inventory-tracker/internal/domain/classify"
	"github.com/mynt/inventory-tracker/internal/domain/entity"
	"github.com/mynt/inventory-tracker/internal/domain/repository"
)

// StockRow es una fila de la vista materializada de stock restante.
type StockRow struct {
	BaseType     string
	Category     string
	Size         string
	StartQty     int
	MinQty       int
	UsedQty      int
	RemainingQty int
}

// Key devuelve la clave de inventario de la fila.
func (r StockRow) Key() entity.InventoryKey {
	return entity.InventoryKey{BaseType: r.BaseType, Category: r.Category, Size: r.Size}
}

// ProjectorUseCase calcula el stock restante por clave: cantidad inicial
// menos consumo acumulado desde el corte. Solo lee; recalcula en cada llamada
// y nunca muta el store.
type ProjectorUseCase struct {
	starts    repository.StartRecordRepository
	movements repository.MovementRepository
}

// NewProjectorUseCase construye el proyector.
func NewProjectorUseCase(starts repository.StartRecordRepository, movements repository.MovementRepository) *ProjectorUseCase {
	return &ProjectorUseCase{starts: starts, movements: movements}
}

// Project devuelve una fila por clave con start/min/usado/restante, ordenadas
// por (base, categoría, tamaño). from nil suma el consumo de todo el
// histórico.
//
// Los registros de convención legada además alimentan su clave derivada de
// convención nueva, salvo que esa clave ya tenga registro propio: un registro
// explícito siempre le gana al derivado. Claves con consumo pero sin registro
// de arranque aparecen con StartQty 0.
func (uc *ProjectorUseCase) Project(from *time.Time) ([]StockRow, error) {
	starts, err := uc.starts.List()
	if err != nil {
		return nil, fmt.Errorf("listar registros de arranque: %w", err)
	}
	aggs, err := uc.movements.SumUsedSince(from)
	if err != nil {
		return nil, fmt.Errorf("sumar consumo: %w", err)
	}

	used := make(map[entity.InventoryKey]int, len(aggs))
	for _, a := range aggs {
		used[a.Key] = a.QtyUsed
	}

	explicit := make(map[entity.InventoryKey]*entity.StartRecord, len(starts))
	for _, s := range starts {
		explicit[s.Key()] = s
	}

	covered := make(map[entity.InventoryKey]bool)
	rows := make([]StockRow, 0, len(starts))

	appendRow := func(key entity.InventoryKey, startQty, minQty int) {
		u := used[key]
		rows = append(rows, StockRow{
			BaseType:     key.BaseType,
			Category:     key.Category,
			Size:         key.Size,
			StartQty:     startQty,
			MinQty:       minQty,
			UsedQty:      u,
			RemainingQty: startQty - u,
		})
		covered[key] = true
	}

	for _, s := range starts {
		appendRow(s.Key(), s.StartQty, s.MinQty)
	}

	// Fan-out legado: shim de compatibilidad en lectura, sin migración.
	for _, s := range starts {
		if !classify.IsLegacyRecord(s.BaseType, s.Size) {
			continue
		}
		derived := classify.DeriveLegacyKey(s.BaseType, s.Category, s.Size)
		if _, owns := explicit[derived]; owns {
			continue
		}
		if covered[derived] {
			continue
		}
		appendRow(derived, s.StartQty, s.MinQty)
	}

	for _, a := range aggs {
		if !covered[a.Key] {
			appendRow(a.Key, 0, 0)
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].BaseType != rows[j].BaseType {
			return rows[i].BaseType < rows[j].BaseType
		}
		if rows[i].Category != rows[j].Category {
			return rows[i].Category < rows[j].Category
		}
		return rows[i].Size < rows[j].Size
	})
	return rows, nil
}
