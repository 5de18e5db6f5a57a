// Package server assembles the REST API.
package server

import (
	"log"
	"strings"

	"transport-console/internal/audit"
	"transport-console/internal/auth"
	"transport-console/internal/config"
	"transport-console/internal/dispatch"
	"transport-console/internal/events"
	"transport-console/internal/fleet"
	"transport-console/internal/idgen"
	"transport-console/internal/inventory"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// ErrorHandler renders every error as {"error": message}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{
			"error": e.Message,
		})
	}
	log.Println("[ERROR] unexpected error:", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal server error",
	})
}

// New builds the API app. A nil pub publishes nothing; a nil gen uses
// idgen.Default.
func New(cfg *config.Config, pub events.Publisher, gen idgen.Generator) *fiber.App {
	if pub == nil {
		pub = events.Noop{}
	}
	if gen == nil {
		gen = idgen.Default
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	protected := app.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	// Transport types
	protected.Get("/transport-types", fleet.ListTransportTypesHandler())
	protected.Post("/transport-types", fleet.CreateTransportTypeHandler())
	protected.Get("/transport-types/:id", fleet.GetTransportTypeHandler())
	protected.Put("/transport-types/:id", fleet.UpdateTransportTypeHandler())
	protected.Delete("/transport-types/:id", fleet.DeleteTransportTypeHandler())

	// Vehicle types
	protected.Get("/vechicle-types", fleet.ListVehicleTypesHandler())
	protected.Post("/vechicle-types", fleet.CreateVehicleTypeHandler())
	protected.Get("/vechicle-types/:id", fleet.GetVehicleTypeHandler())
	protected.Put("/vechicle-types/:id", fleet.UpdateVehicleTypeHandler())
	protected.Delete("/vechicle-types/:id", fleet.DeleteVehicleTypeHandler())

	// Materials
	protected.Get("/material-categories", inventory.ListMaterialCategoriesHandler())
	protected.Post("/material-categories", inventory.CreateMaterialCategoryHandler())
	protected.Get("/materials", inventory.ListMaterialsHandler())
	protected.Post("/materials", inventory.CreateMaterialHandler())
	protected.Get("/materials/:id", inventory.GetMaterialHandler())
	protected.Put("/materials/:id", inventory.UpdateMaterialHandler())
	protected.Delete("/materials/:id", inventory.DeleteMaterialHandler())

	// Shipments
	protected.Get("/shipments", dispatch.ListShipmentsHandler())
	protected.Post("/shipments", dispatch.CreateShipmentHandler(pub, gen))
	protected.Post("/shipments/upload", dispatch.UploadShipmentsHandler(pub, gen))
	protected.Get("/shipments/status-summary/:id", dispatch.ShipmentSummaryHandler())
	protected.Get("/shipments/:id", dispatch.GetShipmentHandler())
	protected.Put("/shipments/:id", dispatch.UpdateShipmentHandler(pub))
	protected.Patch("/shipments/:id", dispatch.UpdateShipmentHandler(pub))
	protected.Delete("/shipments/:id", dispatch.DeleteShipmentHandler(pub))

	// Audit logs
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())

	return app
}
