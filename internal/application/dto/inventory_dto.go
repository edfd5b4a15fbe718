package dto

// ErrorResponse es la respuesta de error estándar de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StartUpsertRequest fija la cantidad inicial de una clave de inventario.
type StartUpsertRequest struct {
	Secret   string `json:"secret"`
	BaseType string `json:"baseType"`
	Category string `json:"category"`
	Size     string `json:"size"`
	StartQty int    `json:"startQty"`
}

// MinUpsertRequest fija el umbral mínimo de alerta de una clave.
type MinUpsertRequest struct {
	Secret   string `json:"secret"`
	BaseType string `json:"baseType"`
	Category string `json:"category"`
	Size     string `json:"size"`
	MinQty   int    `json:"minQty"`
}

// SettingsRequest fija el corte por defecto (YYYY-MM-DD; vacío lo limpia).
type SettingsRequest struct {
	Secret      string  `json:"secret"`
	DefaultFrom *string `json:"defaultFrom"`
}

// StartRecordDTO es un registro de arranque en respuestas.
type StartRecordDTO struct {
	BaseType string `json:"baseType"`
	Category string `json:"category"`
	Size     string `json:"size"`
	StartQty int    `json:"startQty"`
	MinQty   int    `json:"minQty"`
}

// ScanResponse son los contadores de una pasada de conciliación.
type ScanResponse struct {
	OK               bool    `json:"ok"`
	Processed        int     `json:"processed"`
	Skipped          int     `json:"skipped"`
	MovementsCreated int     `json:"movementsCreated"`
	IgnoredLineItems int     `json:"ignoredLineItems"`
	OrdersFetched    int     `json:"ordersFetched"`
	From             *string `json:"from"`
}

// StockRowDTO es una fila de la proyección de stock restante.
type StockRowDTO struct {
	BaseType     string `json:"baseType"`
	Category     string `json:"category"`
	Size         string `json:"size"`
	StartQty     int    `json:"startQty"`
	MinQty       int    `json:"minQty"`
	UsedQty      int    `json:"usedQty"`
	RemainingQty int    `json:"remainingQty"`
}

// ProcessedOrderDTO es una fila del libro mayor de órdenes escaneadas.
type ProcessedOrderDTO struct {
	OrderID        string `json:"orderId"`
	OrderName      string `json:"orderName"`
	OrderCreatedAt string `json:"orderCreatedAt"`
	ProcessedAt    string `json:"processedAt"`
}

// AlertResponse es el resultado de la verificación de alerta diaria.
type AlertResponse struct {
	Sent   bool   `json:"sent"`
	Reason string `json:"reason,omitempty"`
	Count  int    `json:"count,omitempty"`
	Error  string `json:"error,omitempty"`
}
