package inventory

import (
	"context"
	"time"

	"github.com/mynt/inventory-tracker/internal/domain/entity"
	"github.com/mynt/inventory-tracker/internal/domain/repository"
)

// OrderSource entrega las órdenes pagadas de la tienda, siguiendo la
// paginación hasta el final. createdAtMin nil trae todo el histórico.
// Los errores transitorios (429/5xx) ya vienen reintentados por el adaptador;
// un error acá es definitivo y aborta el escaneo.
type OrderSource interface {
	FetchPaidOrders(ctx context.Context, createdAtMin *time.Time) ([]entity.SourceOrder, error)
}

// TagSource entrega el string crudo de tags de un producto.
type TagSource interface {
	FetchProductTags(ctx context.Context, productID string) (string, error)
}

// AlertSink despacha una notificación ya renderizada. Éxito/fallo es todo el
// contrato que ve el guard de alertas.
type AlertSink interface {
	Send(ctx context.Context, to, subject, body string) error
}

// TxRunner ejecuta fn dentro de una transacción de BD, con repositorios
// atados a esa tx. Es la unidad de exclusión mutua del motor: la fila del
// libro mayor y los movimientos de una orden entran juntos o no entran.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		procRepo repository.ProcessedOrderRepository,
		movRepo repository.MovementRepository,
	) error) error
}
