// Package fleet serves the transport providers and vehicle types.
package fleet

import (
	"errors"
	"strings"

	"transport-console/internal/audit"
	"transport-console/internal/contracts"
	"transport-console/internal/database"
	"transport-console/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func toTransport(t models.TransportType) contracts.Transport {
	created, updated := t.CreatedAt, t.UpdatedAt
	return contracts.Transport{
		ID:            t.ID,
		Name:          t.Name,
		VehicleNumber: t.VehicleNumber,
		Address:       t.Address,
		EmailID:       t.EmailID,
		CreatedAt:     &created,
		UpdatedAt:     &updated,
	}
}

func validEmail(s string) bool {
	return strings.Contains(s, "@")
}

// GET /transport-types
func ListTransportTypesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var list []models.TransportType
		if err := database.DB.Order("name asc").Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Transports could not be listed")
		}

		resp := make([]contracts.Transport, 0, len(list))
		for _, t := range list {
			resp = append(resp, toTransport(t))
		}
		return c.JSON(resp)
	}
}

// GET /transport-types/:id
func GetTransportTypeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		t, err := findTransport(c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(toTransport(*t))
	}
}

// POST /transport-types
func CreateTransportTypeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body contracts.CreateTransportDTO
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		t := models.TransportType{
			Name:          strings.TrimSpace(body.Name),
			VehicleNumber: strings.TrimSpace(body.VehicleNumber),
			Address:       strings.TrimSpace(body.Address),
			EmailID:       strings.TrimSpace(body.EmailID),
		}
		if t.Name == "" || t.VehicleNumber == "" || t.Address == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name, vehicle_number and address are required")
		}
		if !validEmail(t.EmailID) {
			return fiber.NewError(fiber.StatusBadRequest, "emailId must be a valid email")
		}

		if err := database.DB.Create(&t).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Transport could not be created")
		}

		resp := toTransport(t)
		audit.Record(c, audit.LogOptions{
			EntityType:  "transport_type",
			EntityID:    t.ID,
			Action:      models.AuditActionCreate,
			Description: "Transport added: " + t.Name,
			After:       resp,
		})

		return c.Status(fiber.StatusCreated).JSON(resp)
	}
}

// PUT /transport-types/:id
func UpdateTransportTypeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		t, err := findTransport(c.Params("id"))
		if err != nil {
			return err
		}
		before := toTransport(*t)

		var body contracts.UpdateTransportDTO
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "name cannot be empty")
			}
			t.Name = name
		}
		if body.VehicleNumber != nil {
			t.VehicleNumber = strings.TrimSpace(*body.VehicleNumber)
		}
		if body.Address != nil {
			t.Address = strings.TrimSpace(*body.Address)
		}
		if body.EmailID != nil {
			email := strings.TrimSpace(*body.EmailID)
			if !validEmail(email) {
				return fiber.NewError(fiber.StatusBadRequest, "emailId must be a valid email")
			}
			t.EmailID = email
		}

		if err := database.DB.Save(t).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Transport could not be updated")
		}

		resp := toTransport(*t)
		audit.Record(c, audit.LogOptions{
			EntityType:  "transport_type",
			EntityID:    t.ID,
			Action:      models.AuditActionUpdate,
			Description: "Transport updated: " + t.Name,
			Before:      before,
			After:       resp,
		})

		return c.JSON(resp)
	}
}

// DELETE /transport-types/:id
func DeleteTransportTypeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		t, err := findTransport(c.Params("id"))
		if err != nil {
			return err
		}

		var used int64
		database.DB.Model(&models.Shipment{}).Where("transport_type_id = ?", t.ID).Count(&used)
		if used > 0 {
			return fiber.NewError(fiber.StatusConflict, "Transport is used by shipments")
		}

		if err := database.DB.Delete(t).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Transport could not be deleted")
		}

		audit.Record(c, audit.LogOptions{
			EntityType:  "transport_type",
			EntityID:    t.ID,
			Action:      models.AuditActionDelete,
			Description: "Transport deleted: " + t.Name,
			Before:      toTransport(*t),
		})

		return c.JSON(fiber.Map{"message": "Transport deleted"})
	}
}

func findTransport(id string) (*models.TransportType, error) {
	var t models.TransportType
	if err := database.DB.First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Transport not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Transport could not be loaded")
	}
	return &t, nil
}
