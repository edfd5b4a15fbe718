package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mynt/inventory-tracker/internal/application/dto"
	"github.com/mynt/inventory-tracker/internal/application/inventory"
	"github.com/mynt/inventory-tracker/internal/domain"
	"github.com/mynt/inventory-tracker/internal/domain/entity"
	"github.com/mynt/inventory-tracker/internal/domain/repository"
)

// InventoryHandler maneja las peticiones del operador: registros de arranque,
// umbrales, settings, la vista de stock y el libro mayor de órdenes.
type InventoryHandler struct {
	admin      *inventory.AdminUseCase
	projector  *inventory.ProjectorUseCase
	processed  repository.ProcessedOrderRepository
	scanSecret string
}

// NewInventoryHandler construye el handler. scanSecret valida los POST, que
// llevan el secreto en el body.
func NewInventoryHandler(
	admin *inventory.AdminUseCase,
	projector *inventory.ProjectorUseCase,
	processed repository.ProcessedOrderRepository,
	scanSecret string,
) *InventoryHandler {
	return &InventoryHandler{admin: admin, projector: projector, processed: processed, scanSecret: scanSecret}
}

// checkBodySecret replica el contrato del guard para secretos en el body.
// Con secreto ausente o inválido escribe la respuesta de error y devuelve
// ok=false; el caller corta ahí, antes de cualquier escritura.
func (h *InventoryHandler) checkBodySecret(c *fiber.Ctx, got string) (bool, error) {
	if h.scanSecret == "" {
		return false, c.Status(fiber.StatusInternalServerError).
			JSON(dto.ErrorResponse{Code: "CONFIG", Message: "secreto no configurado"})
	}
	if !secretMatches(got, h.scanSecret) {
		return false, c.Status(fiber.StatusUnauthorized).
			JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "secreto inválido"})
	}
	return true, nil
}

// PostStart upsertea la cantidad inicial de una clave.
func (h *InventoryHandler) PostStart(c *fiber.Ctx) error {
	var in dto.StartUpsertRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if ok, err := h.checkBodySecret(c, in.Secret); !ok {
		return err
	}

	row, err := h.admin.SetStartQty(entity.InventoryKey{
		BaseType: in.BaseType, Category: in.Category, Size: in.Size,
	}, in.StartQty)
	if err != nil {
		return mapAdminError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true, "row": toStartRecordDTO(row)})
}

// PostMin upsertea el umbral mínimo de alerta de una clave.
func (h *InventoryHandler) PostMin(c *fiber.Ctx) error {
	var in dto.MinUpsertRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if ok, err := h.checkBodySecret(c, in.Secret); !ok {
		return err
	}

	row, err := h.admin.SetMinQty(entity.InventoryKey{
		BaseType: in.BaseType, Category: in.Category, Size: in.Size,
	}, in.MinQty)
	if err != nil {
		return mapAdminError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true, "row": toStartRecordDTO(row)})
}

// GetStart lista los registros de arranque.
func (h *InventoryHandler) GetStart(c *fiber.Ctx) error {
	rows, err := h.admin.ListStartRecords()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.StartRecordDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, toStartRecordDTO(r))
	}
	return c.JSON(fiber.Map{"ok": true, "rows": out})
}

// GetSettings devuelve el corte por defecto (YYYY-MM-DD o null).
func (h *InventoryHandler) GetSettings(c *fiber.Ctx) error {
	from, err := h.admin.GetDefaultFrom()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"ok": true, "defaultFrom": formatDatePtr(from)})
}

// PostSettings fija el corte por defecto. defaultFrom vacío o null lo limpia.
func (h *InventoryHandler) PostSettings(c *fiber.Ctx) error {
	var in dto.SettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if ok, err := h.checkBodySecret(c, in.Secret); !ok {
		return err
	}

	var from *time.Time
	if in.DefaultFrom != nil && *in.DefaultFrom != "" {
		parsed, err := parseDateParam(*in.DefaultFrom)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).
				JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "defaultFrom debe ser YYYY-MM-DD"})
		}
		from = parsed
	}

	row, err := h.admin.SetDefaultFrom(from)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"ok": true, "defaultFrom": formatDatePtr(row.DefaultFrom)})
}

// GetStock devuelve la proyección de stock restante. El query param "from"
// (YYYY-MM-DD) acota el consumo; sin él se usa el corte por defecto.
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	from, err := parseDateParam(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser YYYY-MM-DD"})
	}
	if from == nil {
		if from, err = h.admin.GetDefaultFrom(); err != nil {
			return c.Status(fiber.StatusInternalServerError).
				JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}

	rows, err := h.projector.Project(from)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.StockRowDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.StockRowDTO{
			BaseType:     r.BaseType,
			Category:     r.Category,
			Size:         r.Size,
			StartQty:     r.StartQty,
			MinQty:       r.MinQty,
			UsedQty:      r.UsedQty,
			RemainingQty: r.RemainingQty,
		})
	}
	return c.JSON(fiber.Map{"ok": true, "from": formatDatePtr(from), "rows": out})
}

// GetScannedOrders devuelve el libro mayor de órdenes conciliadas, paginado.
func (h *InventoryHandler) GetScannedOrders(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	rows, err := h.processed.List(limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.ProcessedOrderDTO, 0, len(rows))
	for _, po := range rows {
		out = append(out, dto.ProcessedOrderDTO{
			OrderID:        po.OrderID,
			OrderName:      po.OrderName,
			OrderCreatedAt: po.OrderCreatedAt.UTC().Format(time.RFC3339),
			ProcessedAt:    po.ProcessedAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(fiber.Map{"ok": true, "rows": out})
}

func mapAdminError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).
			JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	}
	return c.Status(fiber.StatusInternalServerError).
		JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func toStartRecordDTO(r *entity.StartRecord) dto.StartRecordDTO {
	return dto.StartRecordDTO{
		BaseType: r.BaseType,
		Category: r.Category,
		Size:     r.Size,
		StartQty: r.StartQty,
		MinQty:   r.MinQty,
	}
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format("2006-01-02")
	return &s
}
