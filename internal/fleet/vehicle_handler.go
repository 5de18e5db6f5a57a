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

func toVehicle(v models.VehicleType) contracts.Vehicle {
	created, updated := v.CreatedAt, v.UpdatedAt
	return contracts.Vehicle{
		ID:        v.ID,
		Name:      v.Name,
		Weight:    v.Weight,
		Volume:    v.Volume,
		CreatedAt: &created,
		UpdatedAt: &updated,
	}
}

// GET /vechicle-types
func ListVehicleTypesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var list []models.VehicleType
		if err := database.DB.Order("name asc").Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Vehicles could not be listed")
		}

		resp := make([]contracts.Vehicle, 0, len(list))
		for _, v := range list {
			resp = append(resp, toVehicle(v))
		}
		return c.JSON(resp)
	}
}

// GET /vechicle-types/:id
func GetVehicleTypeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		v, err := findVehicle(c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(toVehicle(*v))
	}
}

// POST /vechicle-types
func CreateVehicleTypeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body contracts.CreateVehicleDTO
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		v := models.VehicleType{
			Name:   strings.TrimSpace(body.Name),
			Weight: body.Weight,
			Volume: body.Volume,
		}
		if v.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name is required")
		}
		if v.Weight <= 0 || v.Volume <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "weight and volume must be greater than 0")
		}

		if err := database.DB.Create(&v).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Vehicle could not be created")
		}

		resp := toVehicle(v)
		audit.Record(c, audit.LogOptions{
			EntityType:  "vehicle_type",
			EntityID:    v.ID,
			Action:      models.AuditActionCreate,
			Description: "Vehicle added: " + v.Name,
			After:       resp,
		})

		return c.Status(fiber.StatusCreated).JSON(resp)
	}
}

// PUT /vechicle-types/:id
func UpdateVehicleTypeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		v, err := findVehicle(c.Params("id"))
		if err != nil {
			return err
		}
		before := toVehicle(*v)

		var body contracts.UpdateVehicleDTO
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "name cannot be empty")
			}
			v.Name = name
		}
		if body.Weight != nil {
			if *body.Weight <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "weight must be greater than 0")
			}
			v.Weight = *body.Weight
		}
		if body.Volume != nil {
			if *body.Volume <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "volume must be greater than 0")
			}
			v.Volume = *body.Volume
		}

		if err := database.DB.Save(v).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Vehicle could not be updated")
		}

		resp := toVehicle(*v)
		audit.Record(c, audit.LogOptions{
			EntityType:  "vehicle_type",
			EntityID:    v.ID,
			Action:      models.AuditActionUpdate,
			Description: "Vehicle updated: " + v.Name,
			Before:      before,
			After:       resp,
		})

		return c.JSON(resp)
	}
}

// DELETE /vechicle-types/:id
func DeleteVehicleTypeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		v, err := findVehicle(c.Params("id"))
		if err != nil {
			return err
		}

		var used int64
		database.DB.Model(&models.Shipment{}).Where("vehicle_type_id = ?", v.ID).Count(&used)
		if used > 0 {
			return fiber.NewError(fiber.StatusConflict, "Vehicle is used by shipments")
		}

		if err := database.DB.Delete(v).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Vehicle could not be deleted")
		}

		audit.Record(c, audit.LogOptions{
			EntityType:  "vehicle_type",
			EntityID:    v.ID,
			Action:      models.AuditActionDelete,
			Description: "Vehicle deleted: " + v.Name,
			Before:      toVehicle(*v),
		})

		return c.JSON(fiber.Map{"message": "Vehicle deleted"})
	}
}

func findVehicle(id string) (*models.VehicleType, error) {
	var v models.VehicleType
	if err := database.DB.First(&v, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Vehicle not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Vehicle could not be loaded")
	}
	return &v, nil
}
