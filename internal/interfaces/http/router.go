package http

import (
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ScanHandler      *ScanHandler
	InventoryHandler *InventoryHandler
	CronHandler      *CronHandler
	ScanSecret       string
	CronSecret       string
}

// Router registra las rutas de la API. Los GET van detrás del guard por query
// param; los POST llevan el secreto en el body y lo validan en el handler.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	inv := api.Group("/inventory")
	scanGuard := SecretGuard(deps.ScanSecret)

	inv.Get("/scan", scanGuard, deps.ScanHandler.Scan)
	inv.Get("/stock", scanGuard, deps.InventoryHandler.GetStock)
	inv.Get("/start", scanGuard, deps.InventoryHandler.GetStart)
	inv.Post("/start", deps.InventoryHandler.PostStart)
	inv.Post("/min", deps.InventoryHandler.PostMin)
	inv.Get("/settings", scanGuard, deps.InventoryHandler.GetSettings)
	inv.Post("/settings", deps.InventoryHandler.PostSettings)

	api.Get("/scanned-orders", scanGuard, deps.InventoryHandler.GetScannedOrders)

	// Scheduler externo, con secreto propio.
	api.Get("/cron/daily", SecretGuard(deps.CronSecret), deps.CronHandler.Daily)
}
