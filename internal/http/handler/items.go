package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"pantry/internal/export"
	"pantry/internal/notify"
	"pantry/internal/query"
	"pantry/internal/repository"
	"pantry/internal/service"
)

// HealthCheck reports whether the persistence slot is reachable. Slots that
// cannot be pinged are always healthy.
//
// @Summary Readiness check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} errorPayload
// @Router /health [get]
func HealthCheck(p repository.Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if p != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := p.Ping(ctx); err != nil {
				return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
			}
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe always answers 200.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// ListItems returns the filtered, sorted view plus collection-wide counts.
//
// @Summary List items
// @Tags items
// @Produce json
// @Param q query string false "Text search on name or category"
// @Param filter query string false "all, near, expired or consumed"
// @Param sort query string false "soonest, newest or name"
// @Success 200 {object} query.Result
// @Router /items [get]
func ListItems(svc service.RecordService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := query.Query{
			Text:   c.Query("q"),
			Filter: query.ParseFilter(c.Query("filter")),
			Sort:   query.ParseSort(c.Query("sort")),
		}
		return c.JSON(svc.View(c.UserContext(), q))
	}
}

// GetItem returns one item.
//
// @Summary Get item
// @Tags items
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} model.Record
// @Failure 404 {object} errorPayload
// @Router /items/{id} [get]
func GetItem(svc service.RecordService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rec, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(rec)
	}
}

// CreateItem adds an item. now supplies "today" for the expiry notice.
//
// @Summary Add item
// @Tags items
// @Accept json
// @Produce json
// @Param item body createItemRequest true "New item"
// @Success 201 {object} createItemResponse
// @Failure 400 {object} errorPayload
// @Router /items [post]
func CreateItem(svc service.RecordService, now func() time.Time) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createItemRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		}
		rec, err := svc.Add(c.UserContext(), req.input())
		if err != nil {
			return writeServiceError(c, err)
		}
		res := createItemResponse{Item: rec}
		if days, ok := notify.ShouldAlert(*rec, now()); ok {
			res.Notice = notify.NewAlert(*rec, days).Toast()
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// UpdateItem edits an item. Omitted fields are left alone.
//
// @Summary Edit item
// @Tags items
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param item body updateItemRequest true "Changed fields"
// @Success 200 {object} model.Record
// @Failure 404 {object} errorPayload
// @Router /items/{id} [patch]
func UpdateItem(svc service.RecordService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req updateItemRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		}
		rec, err := svc.Update(c.UserContext(), c.Params("id"), req.patch())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(rec)
	}
}

// @Summary Toggle consumed
// @Tags items
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} model.Record
// @Failure 404 {object} errorPayload
// @Router /items/{id}/toggle [post]
func ToggleItem(svc service.RecordService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rec, err := svc.ToggleConsumed(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(rec)
	}
}

// DeleteItem removes an item. Unknown IDs also answer 204.
//
// @Summary Delete item
// @Tags items
// @Param id path string true "Item ID"
// @Success 204
// @Router /items/{id} [delete]
func DeleteItem(svc service.RecordService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Remove(c.UserContext(), c.Params("id")); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ExportCSV downloads the whole collection as CSV.
//
// @Summary Export CSV
// @Tags export
// @Produce text/csv
// @Success 200 {string} string
// @Failure 404 {object} errorPayload
// @Router /items/export.csv [get]
func ExportCSV(svc service.ExportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, err := svc.CSV(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		c.Attachment(export.Filename)
		c.Set(fiber.HeaderContentType, export.ContentType)
		return c.Send(data)
	}
}

// ShareExport uploads the CSV and returns a time-limited download link.
// The optional ttl query parameter is a Go duration such as "2h".
//
// @Summary Share CSV export
// @Tags export
// @Produce json
// @Param ttl query string false "Link lifetime, e.g. 2h"
// @Success 200 {object} shareResponse
// @Failure 404 {object} errorPayload
// @Failure 501 {object} errorPayload
// @Router /items/export/share [post]
func ShareExport(svc service.ExportService, defaultTTL time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ttl := defaultTTL
		if raw := c.Query("ttl"); raw != "" {
			d, err := time.ParseDuration(raw)
			if err != nil || d <= 0 {
				return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "invalid ttl")
			}
			ttl = d
		}
		url, err := svc.Share(c.UserContext(), ttl)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(shareResponse{URL: url, ExpiresIn: ttl.String()})
	}
}
