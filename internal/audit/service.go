package audit

import (
	"encoding/json"
	"fmt"
	"log"

	"transport-console/internal/auth"
	"transport-console/internal/database"
	"transport-console/internal/models"

	"github.com/gofiber/fiber/v2"
)

type LogOptions struct {
	Actor       string
	EntityType  string
	EntityID    string
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

// snapshot encodes v for a jsonb column; nil and unencodable values become
// the JSON literal null.
func snapshot(v any) string {
	if v == nil {
		return "null"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

// WriteLog stores one entry with JSON snapshots of the entity before and
// after the change.
func WriteLog(opts LogOptions) error {
	entry := models.AuditLog{
		Actor:       opts.Actor,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  snapshot(opts.Before),
		AfterData:   snapshot(opts.After),
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		return fmt.Errorf("save audit entry for %s %s: %w", opts.EntityType, opts.EntityID, err)
	}
	return nil
}

// Record writes a log for the request's actor. A failure is logged and
// otherwise ignored; the audited change has already been committed.
func Record(c *fiber.Ctx, opts LogOptions) {
	opts.Actor = auth.Actor(c)
	if err := WriteLog(opts); err != nil {
		log.Printf("[WARN] %s %s %s: %v", opts.Action, opts.EntityType, opts.EntityID, err)
	}
}
