package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mynt/inventory-tracker/internal/application/dto"
	"github.com/mynt/inventory-tracker/internal/application/inventory"
	"github.com/mynt/inventory-tracker/pkg/logger"
)

// ScanHandler dispara pasadas de conciliación.
type ScanHandler struct {
	scan *inventory.ScanUseCase
	log  *logger.Logger
}

// NewScanHandler construye el handler.
func NewScanHandler(scan *inventory.ScanUseCase, log *logger.Logger) *ScanHandler {
	return &ScanHandler{scan: scan, log: log}
}

// Scan ejecuta un escaneo. El query param "from" (YYYY-MM-DD) es el corte
// explícito; sin él se usa el corte por defecto de Settings, o todo el
// histórico.
func (h *ScanHandler) Scan(c *fiber.Ctx) error {
	from, err := parseDateParam(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser YYYY-MM-DD"})
	}

	res, err := h.scan.Scan(c.Context(), from)
	if err != nil {
		h.log.Error().Err(err).Msg("escaneo fallido")
		return c.Status(fiber.StatusInternalServerError).
			JSON(dto.ErrorResponse{Code: "SCAN_FAILED", Message: err.Error()})
	}

	h.log.Info().
		Int("processed", res.Processed).
		Int("skipped", res.Skipped).
		Int("movements", res.MovementsCreated).
		Int("ignored", res.IgnoredLineItems).
		Int("fetched", res.OrdersFetched).
		Msg("escaneo completado")

	return c.JSON(toScanResponse(res))
}

func toScanResponse(res *inventory.ScanResult) dto.ScanResponse {
	out := dto.ScanResponse{
		OK:               true,
		Processed:        res.Processed,
		Skipped:          res.Skipped,
		MovementsCreated: res.MovementsCreated,
		IgnoredLineItems: res.IgnoredLineItems,
		OrdersFetched:    res.OrdersFetched,
	}
	if res.From != nil {
		s := res.From.UTC().Format("2006-01-02")
		out.From = &s
	}
	return out
}

// parseDateParam interpreta YYYY-MM-DD como medianoche UTC. Vacío es nil.
func parseDateParam(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	d, err := time.ParseInLocation("2006-01-02", v, time.UTC)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
