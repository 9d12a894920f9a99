package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"pantry/internal/repository"
	"pantry/internal/service"
)

// Deps are the collaborators the HTTP routes need.
type Deps struct {
	Records service.RecordService
	Export  service.ExportService
	// Health is pinged by /health; nil means always healthy.
	Health repository.Pinger
	// Metrics serves /metrics when set.
	Metrics fiber.Handler
	// Now is the clock used for "today"; defaults to time.Now.
	Now      func() time.Time
	ShareTTL time.Duration
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.ShareTTL <= 0 {
		d.ShareTTL = service.DefaultShareTTL
	}

	app.Get("/health", HealthCheck(d.Health))
	app.Get("/healthz", LivenessProbe())
	if d.Metrics != nil {
		app.Get("/metrics", d.Metrics)
	}

	items := app.Group("/items")
	// export routes first so "export.csv" is not taken for an :id
	items.Get("/export.csv", ExportCSV(d.Export))
	items.Post("/export/share", ShareExport(d.Export, d.ShareTTL))

	items.Get("/", ListItems(d.Records))
	items.Post("/", CreateItem(d.Records, d.Now))
	items.Get("/:id", GetItem(d.Records))
	items.Patch("/:id", UpdateItem(d.Records))
	items.Post("/:id/toggle", ToggleItem(d.Records))
	items.Delete("/:id", DeleteItem(d.Records))
}
