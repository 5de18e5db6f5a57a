// Package dispatch serves shipments: creation, additive updates, the per
// order summary and spreadsheet imports.
package dispatch

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"transport-console/internal/audit"
	"transport-console/internal/contracts"
	"transport-console/internal/database"
	"transport-console/internal/events"
	"transport-console/internal/idgen"
	"transport-console/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func withLines(db *gorm.DB) *gorm.DB {
	byPosition := func(db *gorm.DB) *gorm.DB { return db.Order("position asc, id asc") }
	return db.
		Preload("TransportType").
		Preload("VehicleType").
		Preload("Locations", byPosition).
		Preload("Materials", byPosition).
		Preload("Materials.Material")
}

func loadShipment(db *gorm.DB, id string) (*models.Shipment, error) {
	var s models.Shipment
	if err := withLines(db).First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Shipment not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Shipment could not be loaded")
	}
	return &s, nil
}

// asFiberError keeps client errors raised inside a transaction and hides
// everything else behind msg.
func asFiberError(err error, msg string) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe
	}
	log.Printf("[ERROR] %s: %v", msg, err)
	return fiber.NewError(fiber.StatusInternalServerError, msg)
}

func eventFor(t events.Type, s contracts.Shipment) events.Event {
	return events.Event{
		Type:          t,
		ShipmentID:    s.ID,
		GroupID:       s.GroupID,
		Status:        string(s.Status),
		TotalWeight:   s.TotalWeight,
		TotalVolume:   s.TotalVolume,
		TotalQuantity: s.TotalQuantity,
	}
}

// POST /shipments
//
// Source i and destination i belong to orderNumber[i]; material line i to
// orderNumber[min(i, n-1)]. Missing order numbers and a missing groupId are
// generated.
func CreateShipmentHandler(pub events.Publisher, gen idgen.Generator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body contracts.CreateShipmentDTO
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		switch {
		case len(body.Source) == 0:
			return fiber.NewError(fiber.StatusBadRequest, "At least one source location is required")
		case len(body.Destination) == 0:
			return fiber.NewError(fiber.StatusBadRequest, "At least one destination location is required")
		case len(body.Materials) == 0:
			return fiber.NewError(fiber.StatusBadRequest, "At least one material is required")
		}

		orders := body.OrderNumber
		for len(orders) < max(len(body.Source), len(body.Destination)) {
			orders = append(orders, gen.OrderNumber())
		}
		groupID := body.GroupID
		if groupID <= 0 {
			groupID = gen.GroupID()
		}

		shipment := models.Shipment{
			TransportTypeID: body.TransportType,
			VehicleTypeID:   body.VehicleType,
			GroupID:         groupID,
			Status:          models.ShipmentPending,
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := checkTransport(tx, body.TransportType); err != nil {
				return err
			}
			if err := checkVehicle(tx, body.VehicleType); err != nil {
				return err
			}
			if err := tx.Omit(clause.Associations).Create(&shipment).Error; err != nil {
				return fmt.Errorf("insert shipment: %w", err)
			}

			lines := newLineSet(shipment.ID, 0)
			for i, loc := range body.Source {
				if err := lines.location(models.LocationSource, loc, orders[i]); err != nil {
					return err
				}
			}
			for i, loc := range body.Destination {
				if err := lines.location(models.LocationDestination, loc, orders[i]); err != nil {
					return err
				}
			}
			for i, m := range body.Materials {
				if err := lines.material(m.Material, m.Quantity, orders[min(i, len(orders)-1)]); err != nil {
					return err
				}
			}
			if err := lines.save(tx); err != nil {
				return err
			}
			return recalculate(tx, shipment.ID)
		})
		if err != nil {
			return asFiberError(err, "Shipment could not be created")
		}

		s, err := loadShipment(database.DB, shipment.ID)
		if err != nil {
			return err
		}
		resp := ToShipment(*s)

		audit.Record(c, audit.LogOptions{
			EntityType:  "shipment",
			EntityID:    s.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Shipment added: group %d, %d order(s)", s.GroupID, len(orders)),
			After:       resp,
		})
		events.Emit(pub, eventFor(events.ShipmentCreated, resp))

		return c.Status(fiber.StatusCreated).JSON(resp)
	}
}

// GET /shipments?status=pending&groupId=123
func ListShipmentsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := withLines(database.DB)

		if status := c.Query("status"); status != "" {
			st, err := contracts.ParseStatus(status)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			dbq = dbq.Where("status = ?", string(st))
		}
		if g := c.Query("groupId"); g != "" {
			groupID, err := strconv.ParseInt(g, 10, 64)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "groupId must be an integer")
			}
			dbq = dbq.Where("group_id = ?", groupID)
		}

		var list []models.Shipment
		if err := dbq.Order("created_at DESC").Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Shipments could not be listed")
		}

		resp := make([]contracts.Shipment, 0, len(list))
		for _, s := range list {
			resp = append(resp, ToShipment(s))
		}
		return c.JSON(resp)
	}
}

// GET /shipments/:id
func GetShipmentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := loadShipment(database.DB, c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(ToShipment(*s))
	}
}

// GET /shipments/status-summary/:id
func ShipmentSummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := loadShipment(database.DB, c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(ToSummary(*s))
	}
}

// PUT|PATCH /shipments/:id
//
// Set fields replace their current value; sourceDetails, destinationDetails
// and materials are appended. Totals are recomputed.
func UpdateShipmentHandler(pub events.Publisher) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body contracts.UpdateShipmentDTO
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.IsEmpty() {
			return fiber.NewError(fiber.StatusBadRequest, "Nothing to update")
		}

		current, err := loadShipment(database.DB, c.Params("id"))
		if err != nil {
			return err
		}
		before := ToShipment(*current)

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			last, err := lastPosition(tx, current.ID)
			if err != nil {
				return err
			}
			updates := map[string]any{"updated_at": time.Now()}
			if body.TransportType != nil {
				if err := checkTransport(tx, *body.TransportType); err != nil {
					return err
				}
				updates["transport_type_id"] = *body.TransportType
			}
			if body.VehicleType != nil {
				if err := checkVehicle(tx, *body.VehicleType); err != nil {
					return err
				}
				updates["vehicle_type_id"] = *body.VehicleType
			}
			if body.GroupID != nil {
				if *body.GroupID <= 0 {
					return fiber.NewError(fiber.StatusBadRequest, "groupId must be a positive integer")
				}
				updates["group_id"] = *body.GroupID
			}
			if body.Status != nil {
				if !body.Status.Valid() {
					return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("unknown shipment status %q", *body.Status))
				}
				updates["status"] = string(*body.Status)
			}
			if err := tx.Model(&models.Shipment{}).Where("id = ?", current.ID).Updates(updates).Error; err != nil {
				return fmt.Errorf("update shipment: %w", err)
			}

			lines := newLineSet(current.ID, last)
			for _, l := range body.SourceDetails {
				if err := lines.location(models.LocationSource, l.Location, l.OrderNumber); err != nil {
					return err
				}
			}
			for _, l := range body.DestinationDetails {
				if err := lines.location(models.LocationDestination, l.Location, l.OrderNumber); err != nil {
					return err
				}
			}
			for _, m := range body.Materials {
				if err := lines.material(m.Material, m.Quantity, m.OrderNumber); err != nil {
					return err
				}
			}
			if lines.empty() {
				return nil
			}
			if err := lines.save(tx); err != nil {
				return err
			}
			return recalculate(tx, current.ID)
		})
		if err != nil {
			return asFiberError(err, "Shipment could not be updated")
		}

		s, err := loadShipment(database.DB, current.ID)
		if err != nil {
			return err
		}
		resp := ToShipment(*s)

		audit.Record(c, audit.LogOptions{
			EntityType:  "shipment",
			EntityID:    s.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Shipment updated: group %d", s.GroupID),
			Before:      before,
			After:       resp,
		})
		events.Emit(pub, eventFor(events.ShipmentUpdated, resp))

		return c.JSON(resp)
	}
}

// DELETE /shipments/:id
func DeleteShipmentHandler(pub events.Publisher) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := loadShipment(database.DB, c.Params("id"))
		if err != nil {
			return err
		}
		before := ToShipment(*s)

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("shipment_id = ?", s.ID).Delete(&models.ShipmentLocation{}).Error; err != nil {
				return err
			}
			if err := tx.Where("shipment_id = ?", s.ID).Delete(&models.ShipmentMaterial{}).Error; err != nil {
				return err
			}
			return tx.Omit(clause.Associations).Delete(&models.Shipment{}, "id = ?", s.ID).Error
		})
		if err != nil {
			return asFiberError(err, "Shipment could not be deleted")
		}

		audit.Record(c, audit.LogOptions{
			EntityType:  "shipment",
			EntityID:    s.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Shipment deleted: group %d", s.GroupID),
			Before:      before,
		})
		events.Emit(pub, eventFor(events.ShipmentDeleted, before))

		return c.JSON(fiber.Map{"message": "Shipment deleted"})
	}
}
