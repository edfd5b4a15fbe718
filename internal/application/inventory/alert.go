package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mynt/inventory-tracker/internal/domain/entity"
	"github.com/mynt/inventory-tracker/internal/domain/repository"
)

// Razones estructuradas del resultado del guard de alertas.
const (
	AlertReasonAlreadySent = "already_sent_today"
	AlertReasonNoLowStock  = "no_low_stock"
	AlertReasonEmailError  = "email_error"
)

// AlertResult es el resultado de una verificación de alerta diaria.
type AlertResult struct {
	Sent   bool
	Reason string
	Count  int
	Error  string
}

// AlertGuard calcula los items bajo mínimo y despacha a lo sumo una
// notificación por día UTC. La deduplicación vive en el libro mayor
// (EmailAlertLog), no en memoria del proceso: un proceso nuevo por corrida
// sigue deduplicando bien.
type AlertGuard struct {
	projector *ProjectorUseCase
	alertLog  repository.AlertLogRepository
	sink      AlertSink
	recipient string
	appURL    string
	now       func() time.Time
}

// NewAlertGuard construye el guard.
func NewAlertGuard(projector *ProjectorUseCase, alertLog repository.AlertLogRepository, sink AlertSink, recipient, appURL string) *AlertGuard {
	return &AlertGuard{
		projector: projector,
		alertLog:  alertLog,
		sink:      sink,
		recipient: recipient,
		appURL:    appURL,
		now:       time.Now,
	}
}

// MaybeSendDailyAlert proyecta el stock desde from, filtra lo que está bajo
// mínimo y, si hoy (UTC) todavía no se avisó, envía una notificación y
// registra el día en el libro mayor.
//
// El orden es enviar primero y registrar después: si la escritura del libro
// mayor falla tras un envío exitoso, un reintento puede duplicar el mail.
// Trade-off aceptado: para el operador un aviso repetido es más barato que un
// día de bajo stock sin aviso. Si en cambio falla el envío, no se escribe el
// libro mayor y un reintento dentro del mismo día todavía puede avisar.
func (g *AlertGuard) MaybeSendDailyAlert(ctx context.Context, from *time.Time) (*AlertResult, error) {
	today := g.today()

	sent, err := g.alertLog.Exists(entity.AlertKindDaily, today)
	if err != nil {
		return nil, fmt.Errorf("consultar libro mayor de alertas: %w", err)
	}
	if sent {
		return &AlertResult{Sent: false, Reason: AlertReasonAlreadySent}, nil
	}

	rows, err := g.projector.Project(from)
	if err != nil {
		return nil, fmt.Errorf("proyectar stock: %w", err)
	}

	low := make([]StockRow, 0)
	for _, r := range rows {
		if r.RemainingQty < r.MinQty {
			low = append(low, r)
		}
	}
	if len(low) == 0 {
		// Sin fila en el libro mayor: si el stock cae más tarde, hoy sigue
		// siendo elegible para avisar.
		return &AlertResult{Sent: false, Reason: AlertReasonNoLowStock}, nil
	}

	// Más deficitario primero.
	sort.Slice(low, func(i, j int) bool {
		return low[i].RemainingQty-low[i].MinQty < low[j].RemainingQty-low[j].MinQty
	})

	subject := fmt.Sprintf("Lagerbestand unter Minimum (%d Artikel)", len(low))
	body := renderLowStockBody(low, g.appURL, today)

	if err := g.sink.Send(ctx, g.recipient, subject, body); err != nil {
		return &AlertResult{Sent: false, Reason: AlertReasonEmailError, Error: err.Error()}, nil
	}

	if err := g.alertLog.Create(&entity.EmailAlertLog{
		Kind:      entity.AlertKindDaily,
		ForDate:   today,
		ItemCount: len(low),
		SentAt:    g.now().UTC(),
	}); err != nil {
		return &AlertResult{Sent: true, Count: len(low)},
			fmt.Errorf("registrar alerta enviada: %w", err)
	}

	return &AlertResult{Sent: true, Count: len(low)}, nil
}

// today devuelve la fecha actual truncada a medianoche UTC.
func (g *AlertGuard) today() time.Time {
	n := g.now().UTC()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

// renderLowStockBody arma el cuerpo de texto plano del aviso.
func renderLowStockBody(low []StockRow, appURL string, day time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Bestandswarnung für %s\n\n", day.Format("2006-01-02"))
	fmt.Fprintf(&b, "%d Artikel unter Mindestbestand:\n\n", len(low))
	for _, r := range low {
		fmt.Fprintf(&b, "  - %s / %s / %s: Rest %d (Minimum %d)\n",
			r.BaseType, r.Category, r.Size, r.RemainingQty, r.MinQty)
	}
	if appURL != "" {
		fmt.Fprintf(&b, "\nBestand: %s/inventory\n", appURL)
	}
	return b.String()
}
