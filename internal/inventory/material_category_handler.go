package inventory

import (
	"strings"

	"transport-console/internal/audit"
	"transport-console/internal/contracts"
	"transport-console/internal/database"
	"transport-console/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /material-categories
func ListMaterialCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var categories []models.MaterialCategory
		if err := database.DB.Order("name asc").Find(&categories).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Categories could not be listed")
		}

		res := make([]contracts.MaterialCategory, 0, len(categories))
		for _, cat := range categories {
			res = append(res, contracts.MaterialCategory{ID: cat.ID, Name: cat.Name})
		}
		return c.JSON(res)
	}
}

// POST /material-categories
func CreateMaterialCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body contracts.CreateMaterialCategoryDTO
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Category name is required")
		}

		var exists int64
		database.DB.Model(&models.MaterialCategory{}).Where("LOWER(name) = LOWER(?)", body.Name).Count(&exists)
		if exists > 0 {
			return fiber.NewError(fiber.StatusConflict, "A category with this name already exists")
		}

		cat := models.MaterialCategory{Name: body.Name}
		if err := database.DB.Create(&cat).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Category could not be created")
		}

		resp := contracts.MaterialCategory{ID: cat.ID, Name: cat.Name}
		audit.Record(c, audit.LogOptions{
			EntityType:  "material_category",
			EntityID:    cat.ID,
			Action:      models.AuditActionCreate,
			Description: "Category added: " + cat.Name,
			After:       resp,
		})

		return c.Status(fiber.StatusCreated).JSON(resp)
	}
}
