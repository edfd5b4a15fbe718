package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mynt/inventory-tracker/internal/application/dto"
	"github.com/mynt/inventory-tracker/internal/application/inventory"
	"github.com/mynt/inventory-tracker/pkg/logger"
)

// CronHandler es el punto de entrada del scheduler externo: corre el escaneo
// diario con el corte por defecto y después el guard de alertas.
type CronHandler struct {
	scan  *inventory.ScanUseCase
	guard *inventory.AlertGuard
	admin *inventory.AdminUseCase
	log   *logger.Logger
}

// NewCronHandler construye el handler.
func NewCronHandler(scan *inventory.ScanUseCase, guard *inventory.AlertGuard, admin *inventory.AdminUseCase, log *logger.Logger) *CronHandler {
	return &CronHandler{scan: scan, guard: guard, admin: admin, log: log}
}

// Daily ejecuta la pasada diaria. Un fallo del guard de alertas nunca hace
// fallar la respuesta del escaneo: se degrada a un resultado con razón.
func (h *CronHandler) Daily(c *fiber.Ctx) error {
	scanRes, err := h.scan.Scan(c.Context(), nil)
	if err != nil {
		h.log.Error().Err(err).Msg("escaneo diario fallido")
		return c.Status(fiber.StatusInternalServerError).
			JSON(dto.ErrorResponse{Code: "SCAN_FAILED", Message: err.Error()})
	}

	alertRes := h.runAlert(c)

	return c.JSON(fiber.Map{
		"ok":    true,
		"ranAt": time.Now().UTC().Format(time.RFC3339),
		"scan":  toScanResponse(scanRes),
		"alert": alertRes,
	})
}

func (h *CronHandler) runAlert(c *fiber.Ctx) dto.AlertResponse {
	from, err := h.admin.GetDefaultFrom()
	if err != nil {
		h.log.Error().Err(err).Msg("leer corte por defecto para la alerta")
		return dto.AlertResponse{Sent: false, Reason: "settings_error", Error: err.Error()}
	}

	res, err := h.guard.MaybeSendDailyAlert(c.Context(), from)
	if err != nil {
		h.log.Error().Err(err).Msg("verificación de alerta fallida")
		if res == nil {
			return dto.AlertResponse{Sent: false, Reason: "alert_error", Error: err.Error()}
		}
		// Enviada pero sin registrar: posible duplicado en el reintento,
		// trade-off documentado del guard.
		return dto.AlertResponse{Sent: res.Sent, Count: res.Count, Error: err.Error()}
	}

	h.log.Info().Bool("sent", res.Sent).Str("reason", res.Reason).Int("count", res.Count).
		Msg("verificación de alerta diaria")
	return dto.AlertResponse{Sent: res.Sent, Reason: res.Reason, Count: res.Count, Error: res.Error}
}
