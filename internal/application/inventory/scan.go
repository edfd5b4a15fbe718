package inventory

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/mynt/inventory-tracker/internal/domain/classify"
	"github.com/mynt/inventory-tracker/internal/domain/entity"
	"github.com/mynt/inventory-tracker/internal/domain/repository"
)

// ScanResult son los contadores estructurados de una pasada de conciliación.
type ScanResult struct {
	Processed        int
	Skipped          int
	MovementsCreated int
	IgnoredLineItems int
	OrdersFetched    int
	// From es el corte efectivo usado (explícito, el por defecto de Settings,
	// o nil si se escaneó todo el histórico).
	From *time.Time
}

// ScanUseCase es el motor de conciliación: trae las órdenes pagadas, las
// clasifica y registra el consumo exactamente una vez por orden. Las órdenes
// se procesan en secuencia; la corrección del libro mayor pesa más que el
// throughput, y el caller serializa escaneos concurrentes.
type ScanUseCase struct {
	txRunner   TxRunner
	processed  repository.ProcessedOrderRepository
	settings   repository.SettingsRepository
	source     OrderSource
	classifier *classify.Classifier
	now        func() time.Time
}

// NewScanUseCase construye el caso de uso. Las escrituras de movimientos van
// siempre por los repositorios atados a la transacción del TxRunner.
func NewScanUseCase(
	txRunner TxRunner,
	processed repository.ProcessedOrderRepository,
	settings repository.SettingsRepository,
	source OrderSource,
	classifier *classify.Classifier,
) *ScanUseCase {
	return &ScanUseCase{
		txRunner:   txRunner,
		processed:  processed,
		settings:   settings,
		source:     source,
		classifier: classifier,
		now:        time.Now,
	}
}

// Scan ejecuta una pasada de conciliación. from nil usa el corte por defecto
// de Settings; si el corte efectivo no es nil, primero reconstruye la ventana
// (borra movimientos y libro mayor con orderCreatedAt >= corte), con lo que
// re-escanear esa ventana es repetible sin limpieza manual.
//
// Rerunnable por diseño: el libro mayor de órdenes hace que una segunda
// pasada sin reconstrucción salte todo lo ya conciliado.
func (uc *ScanUseCase) Scan(ctx context.Context, from *time.Time) (*ScanResult, error) {
	effective := from
	if effective == nil {
		s, err := uc.settings.Get()
		if err != nil {
			return nil, fmt.Errorf("leer settings: %w", err)
		}
		if s != nil {
			effective = s.DefaultFrom
		}
	}

	if effective != nil {
		cutoff := *effective
		err := uc.txRunner.Run(ctx, func(proc repository.ProcessedOrderRepository, mov repository.MovementRepository) error {
			if _, err := mov.DeleteWindow(cutoff); err != nil {
				return err
			}
			if _, err := proc.DeleteWindow(cutoff); err != nil {
				return err
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("reconstruir ventana desde %s: %w", cutoff.Format("2006-01-02"), err)
		}
	}

	orders, err := uc.source.FetchPaidOrders(ctx, effective)
	if err != nil {
		return nil, fmt.Errorf("obtener órdenes pagadas: %w", err)
	}

	res := &ScanResult{OrdersFetched: len(orders), From: effective}

	for _, o := range orders {
		orderID := strconv.FormatInt(o.ID, 10)

		exists, err := uc.processed.Exists(orderID)
		if err != nil {
			return nil, fmt.Errorf("consultar libro mayor de la orden %s: %w", orderID, err)
		}
		if exists {
			res.Skipped++
			continue
		}

		// Agregar por clave dentro de la orden: a lo sumo un movimiento por
		// clave y orden.
		totals := make(map[entity.InventoryKey]int)
		var keys []entity.InventoryKey
		for _, li := range o.LineItems {
			key, err := uc.classifier.Classify(ctx, li)
			if err != nil {
				return nil, fmt.Errorf("clasificar línea de la orden %s: %w", orderID, err)
			}
			if key == nil {
				res.IgnoredLineItems++
				continue
			}
			if _, seen := totals[*key]; !seen {
				keys = append(keys, *key)
			}
			totals[*key] += li.Quantity
		}

		created := 0
		err = uc.txRunner.Run(ctx, func(proc repository.ProcessedOrderRepository, mov repository.MovementRepository) error {
			if err := proc.Create(&entity.ProcessedOrder{
				OrderID:        orderID,
				OrderName:      o.Name,
				OrderCreatedAt: o.CreatedAt,
				ProcessedAt:    uc.now().UTC(),
			}); err != nil {
				return err
			}
			for _, k := range keys {
				qty := totals[k]
				if qty <= 0 {
					continue
				}
				if err := mov.Create(&entity.Movement{
					OrderID:        orderID,
					OrderCreatedAt: o.CreatedAt,
					BaseType:       k.BaseType,
					Category:       k.Category,
					Size:           k.Size,
					QtyUsed:        qty,
				}); err != nil {
					return err
				}
				created++
			}
			return nil
		})
		if err != nil {
			// Sin reintento acá: la orden quedó sin registrar y el libro mayor
			// deja el re-escaneo posterior en estado seguro.
			return nil, fmt.Errorf("conciliar orden %s: %w", orderID, err)
		}

		res.Processed++
		res.MovementsCreated += created
	}

	return res, nil
}
