// Package inventory serves materials and their categories.
package inventory

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

// ToMaterial renders a material with its category as an embedded reference
// when linked, or as the bare inline name.
func ToMaterial(m models.Material) contracts.Material {
	created, updated := m.CreatedAt, m.UpdatedAt
	out := contracts.Material{
		ID:            m.ID,
		Name:          m.Name,
		Description:   m.Description,
		Category:      contracts.IDRef(m.CategoryName),
		WeightPerUnit: m.WeightPerUnit,
		VolumePerUnit: m.VolumePerUnit,
		CreatedAt:     &created,
		UpdatedAt:     &updated,
	}
	if m.Category != nil {
		out.Category = contracts.NamedRef(m.Category.ID, m.Category.Name)
	}
	return out
}

// resolveCategory links value to a MaterialCategory by id or by name, or
// keeps it as an inline name.
func resolveCategory(m *models.Material, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fiber.NewError(fiber.StatusBadRequest, "category is required")
	}

	var cat models.MaterialCategory
	err := database.DB.Where("id = ?", value).Or("LOWER(name) = LOWER(?)", value).First(&cat).Error
	switch {
	case err == nil:
		m.CategoryID = &cat.ID
		m.Category = &cat
		m.CategoryName = cat.Name
	case errors.Is(err, gorm.ErrRecordNotFound):
		m.CategoryID = nil
		m.Category = nil
		m.CategoryName = value
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "Category could not be loaded")
	}
	return nil
}

// GET /materials
func ListMaterialsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var list []models.Material
		if err := database.DB.Preload("Category").Order("name asc").Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Materials could not be listed")
		}

		resp := make([]contracts.Material, 0, len(list))
		for _, m := range list {
			resp = append(resp, ToMaterial(m))
		}
		return c.JSON(resp)
	}
}

// GET /materials/:id
func GetMaterialHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		m, err := findMaterial(c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(ToMaterial(*m))
	}
}

// POST /materials
func CreateMaterialHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body contracts.CreateMaterialDTO
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		m := models.Material{
			Name:          strings.TrimSpace(body.Name),
			Description:   strings.TrimSpace(body.Description),
			WeightPerUnit: body.WeightPerUnit,
			VolumePerUnit: body.VolumePerUnit,
		}
		if m.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name is required")
		}
		if m.WeightPerUnit <= 0 || m.VolumePerUnit <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "weightPerUnit and volumePerUnit must be greater than 0")
		}
		if err := resolveCategory(&m, body.Category); err != nil {
			return err
		}

		if err := database.DB.Omit("Category").Create(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Material could not be created")
		}

		resp := ToMaterial(m)
		audit.Record(c, audit.LogOptions{
			EntityType:  "material",
			EntityID:    m.ID,
			Action:      models.AuditActionCreate,
			Description: "Material added: " + m.Name,
			After:       resp,
		})

		return c.Status(fiber.StatusCreated).JSON(resp)
	}
}

// PUT /materials/:id
func UpdateMaterialHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		m, err := findMaterial(c.Params("id"))
		if err != nil {
			return err
		}
		before := ToMaterial(*m)

		var body contracts.UpdateMaterialDTO
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "name cannot be empty")
			}
			m.Name = name
		}
		if body.Description != nil {
			m.Description = strings.TrimSpace(*body.Description)
		}
		if body.Category != nil {
			if err := resolveCategory(m, *body.Category); err != nil {
				return err
			}
		}
		if body.WeightPerUnit != nil {
			if *body.WeightPerUnit <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "weightPerUnit must be greater than 0")
			}
			m.WeightPerUnit = *body.WeightPerUnit
		}
		if body.VolumePerUnit != nil {
			if *body.VolumePerUnit <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "volumePerUnit must be greater than 0")
			}
			m.VolumePerUnit = *body.VolumePerUnit
		}

		if err := database.DB.Omit("Category").Save(m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Material could not be updated")
		}

		resp := ToMaterial(*m)
		audit.Record(c, audit.LogOptions{
			EntityType:  "material",
			EntityID:    m.ID,
			Action:      models.AuditActionUpdate,
			Description: "Material updated: " + m.Name,
			Before:      before,
			After:       resp,
		})

		return c.JSON(resp)
	}
}

// DELETE /materials/:id
func DeleteMaterialHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		m, err := findMaterial(c.Params("id"))
		if err != nil {
			return err
		}

		var used int64
		database.DB.Model(&models.ShipmentMaterial{}).Where("material_id = ?", m.ID).Count(&used)
		if used > 0 {
			return fiber.NewError(fiber.StatusConflict, "Material is used by shipments")
		}

		if err := database.DB.Delete(m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Material could not be deleted")
		}

		audit.Record(c, audit.LogOptions{
			EntityType:  "material",
			EntityID:    m.ID,
			Action:      models.AuditActionDelete,
			Description: "Material deleted: " + m.Name,
			Before:      ToMaterial(*m),
		})

		return c.JSON(fiber.Map{"message": "Material deleted"})
	}
}

func findMaterial(id string) (*models.Material, error) {
	var m models.Material
	if err := database.DB.Preload("Category").First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Material not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Material could not be loaded")
	}
	return &m, nil
}
