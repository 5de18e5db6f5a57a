package dispatch

import (
	"errors"
	"fmt"
	"strings"

	"transport-console/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lineSet collects new lines for one shipment. Positions continue after the
// lines the shipment already has.
type lineSet struct {
	shipmentID string
	next       int
	locations  []models.ShipmentLocation
	materials  []models.ShipmentMaterial
}

func newLineSet(shipmentID string, existing int) *lineSet {
	return &lineSet{shipmentID: shipmentID, next: existing}
}

func (ls *lineSet) location(kind models.LocationKind, location string, orderNumber int64) error {
	location = strings.TrimSpace(location)
	if location == "" {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("%s location cannot be empty", kind))
	}
	if orderNumber <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "orderNumber must be a positive integer")
	}
	ls.next++
	ls.locations = append(ls.locations, models.ShipmentLocation{
		ShipmentID:  ls.shipmentID,
		Kind:        kind,
		Location:    location,
		OrderNumber: orderNumber,
		Status:      models.ShipmentPending,
		Position:    ls.next,
	})
	return nil
}

func (ls *lineSet) material(materialID string, quantity float64, orderNumber int64) error {
	materialID = strings.TrimSpace(materialID)
	if materialID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "material is required")
	}
	if quantity <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "quantity must be greater than 0")
	}
	if orderNumber <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "orderNumber must be a positive integer")
	}
	ls.next++
	ls.materials = append(ls.materials, models.ShipmentMaterial{
		ShipmentID:  ls.shipmentID,
		MaterialID:  materialID,
		Quantity:    quantity,
		OrderNumber: orderNumber,
		Position:    ls.next,
	})
	return nil
}

// lastPosition locks the shipment row for the rest of tx and returns the
// highest position among its lines.
func lastPosition(tx *gorm.DB, shipmentID string) (int, error) {
	var s models.Shipment
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").First(&s, "id = ?", shipmentID).Error; err != nil {
		return 0, fmt.Errorf("lock shipment %s: %w", shipmentID, err)
	}
	var locations, materials int
	if err := tx.Model(&models.ShipmentLocation{}).Where("shipment_id = ?", shipmentID).
		Select("COALESCE(MAX(position), 0)").Scan(&locations).Error; err != nil {
		return 0, fmt.Errorf("read location positions: %w", err)
	}
	if err := tx.Model(&models.ShipmentMaterial{}).Where("shipment_id = ?", shipmentID).
		Select("COALESCE(MAX(position), 0)").Scan(&materials).Error; err != nil {
		return 0, fmt.Errorf("read material positions: %w", err)
	}
	return max(locations, materials), nil
}

// assign sets the shipment of lines collected before it was inserted.
func (ls *lineSet) assign(shipmentID string) {
	ls.shipmentID = shipmentID
	for i := range ls.locations {
		ls.locations[i].ShipmentID = shipmentID
	}
	for i := range ls.materials {
		ls.materials[i].ShipmentID = shipmentID
	}
}

func (ls *lineSet) empty() bool {
	return len(ls.locations) == 0 && len(ls.materials) == 0
}

// save checks that every referenced material exists and inserts the lines.
func (ls *lineSet) save(tx *gorm.DB) error {
	if err := checkMaterials(tx, ls.materials); err != nil {
		return err
	}
	if len(ls.locations) > 0 {
		if err := tx.Omit(clause.Associations).Create(&ls.locations).Error; err != nil {
			return fmt.Errorf("insert locations: %w", err)
		}
	}
	if len(ls.materials) > 0 {
		if err := tx.Omit(clause.Associations).Create(&ls.materials).Error; err != nil {
			return fmt.Errorf("insert materials: %w", err)
		}
	}
	return nil
}

func checkMaterials(tx *gorm.DB, lines []models.ShipmentMaterial) error {
	if len(lines) == 0 {
		return nil
	}
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.MaterialID)
	}
	var found []string
	if err := tx.Model(&models.Material{}).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return fmt.Errorf("load materials: %w", err)
	}
	known := make(map[string]bool, len(found))
	for _, id := range found {
		known[id] = true
	}
	for _, id := range ids {
		if !known[id] {
			return fiber.NewError(fiber.StatusBadRequest, "Material not found: "+id)
		}
	}
	return nil
}

func checkTransport(tx *gorm.DB, id string) error {
	return checkExists(tx, &models.TransportType{}, id, "Transport type not found")
}

func checkVehicle(tx *gorm.DB, id string) error {
	return checkExists(tx, &models.VehicleType{}, id, "Vehicle type not found")
}

func checkExists(tx *gorm.DB, model any, id, notFound string) error {
	if strings.TrimSpace(id) == "" {
		return fiber.NewError(fiber.StatusBadRequest, notFound)
	}
	err := tx.Select("id").First(model, "id = ?", id).Error
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fiber.NewError(fiber.StatusBadRequest, notFound)
	default:
		return fmt.Errorf("load %T: %w", model, err)
	}
}
