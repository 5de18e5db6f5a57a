package dispatch

import (
	"fmt"
	"strings"

	"transport-console/internal/audit"
	"transport-console/internal/contracts"
	"transport-console/internal/database"
	"transport-console/internal/events"
	"transport-console/internal/idgen"
	"transport-console/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Sheet columns: Source | Destination | Material (name or id) | Quantity
const (
	colSource = iota
	colDestination
	colMaterial
	colQuantity
)

// sheetRow is one order read from the sheet. Line is the 1-based row number.
type sheetRow struct {
	Line        int
	Source      string
	Destination string
	Material    string
	Quantity    float64
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func parseQuantity(s string) (float64, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}

// parseSheet reads orders from rows. A first row whose quantity cell is not
// a number is taken as the header. Blank rows are ignored; malformed rows
// are reported in skipped.
func parseSheet(rows [][]string) (orders []sheetRow, skipped []string) {
	for i, row := range rows {
		line := i + 1

		blank := true
		for _, v := range row {
			if strings.TrimSpace(v) != "" {
				blank = false
				break
			}
		}
		if blank {
			continue
		}

		qtyCell := cell(row, colQuantity)
		qty, qtyErr := parseQuantity(qtyCell)
		if i == 0 && qtyErr != nil {
			continue
		}

		r := sheetRow{
			Line:        line,
			Source:      cell(row, colSource),
			Destination: cell(row, colDestination),
			Material:    cell(row, colMaterial),
			Quantity:    qty,
		}
		switch {
		case r.Source == "" || r.Destination == "" || r.Material == "":
			skipped = append(skipped, fmt.Sprintf("row %d: source, destination and material are required", line))
		case qtyErr != nil:
			skipped = append(skipped, fmt.Sprintf("row %d: invalid quantity %q", line, qtyCell))
		case qty <= 0:
			skipped = append(skipped, fmt.Sprintf("row %d: quantity must be greater than 0", line))
		default:
			orders = append(orders, r)
		}
	}
	return orders, skipped
}

// materialIndex resolves a sheet value to a material id, by id or by
// case-insensitive name.
func materialIndex(db *gorm.DB) (func(string) (string, bool), error) {
	var list []models.Material
	if err := db.Select("id", "name").Find(&list).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]bool, len(list))
	byName := make(map[string]string, len(list))
	for _, m := range list {
		byID[m.ID] = true
		byName[strings.ToLower(m.Name)] = m.ID
	}
	return func(v string) (string, bool) {
		if byID[v] {
			return v, true
		}
		id, ok := byName[strings.ToLower(v)]
		return id, ok
	}, nil
}

// POST /shipments/upload
//
// multipart: xlsx (file), transportType, vehicleType. Every valid row of the
// first sheet becomes one order of a single new shipment.
func UploadShipmentsHandler(pub events.Publisher, gen idgen.Generator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		transportType := strings.TrimSpace(c.FormValue("transportType"))
		vehicleType := strings.TrimSpace(c.FormValue("vehicleType"))
		if transportType == "" || vehicleType == "" {
			return fiber.NewError(fiber.StatusBadRequest, "transportType and vehicleType are required")
		}

		fileHeader, err := c.FormFile("xlsx")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "File could not be uploaded: "+err.Error())
		}
		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "File could not be opened: "+err.Error())
		}
		defer file.Close()

		book, err := excelize.OpenReader(file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Excel file could not be read: "+err.Error())
		}
		defer book.Close()

		sheets := book.GetSheetList()
		if len(sheets) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Excel file has no sheets")
		}
		rows, err := book.GetRows(sheets[0])
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Sheet could not be read: "+err.Error())
		}

		parsed, skipped := parseSheet(rows)
		resolve, err := materialIndex(database.DB)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Materials could not be loaded")
		}

		shipment := models.Shipment{
			TransportTypeID: transportType,
			VehicleTypeID:   vehicleType,
			GroupID:         gen.GroupID(),
			Status:          models.ShipmentPending,
		}
		imported := 0

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := checkTransport(tx, transportType); err != nil {
				return err
			}
			if err := checkVehicle(tx, vehicleType); err != nil {
				return err
			}

			lines := newLineSet("", 0)
			for _, r := range parsed {
				materialID, ok := resolve(r.Material)
				if !ok {
					skipped = append(skipped, fmt.Sprintf("row %d: unknown material %q", r.Line, r.Material))
					continue
				}
				order := gen.OrderNumber()
				if err := lines.location(models.LocationSource, r.Source, order); err != nil {
					return err
				}
				if err := lines.location(models.LocationDestination, r.Destination, order); err != nil {
					return err
				}
				if err := lines.material(materialID, r.Quantity, order); err != nil {
					return err
				}
				imported++
			}
			if imported == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "No valid rows found in the sheet")
			}

			if err := tx.Omit(clause.Associations).Create(&shipment).Error; err != nil {
				return fmt.Errorf("insert shipment: %w", err)
			}
			lines.assign(shipment.ID)
			if err := lines.save(tx); err != nil {
				return err
			}
			return recalculate(tx, shipment.ID)
		})
		if err != nil {
			return asFiberError(err, "Shipment could not be imported")
		}

		s, err := loadShipment(database.DB, shipment.ID)
		if err != nil {
			return err
		}
		resp := contracts.UploadResult{Shipment: ToShipment(*s), Imported: imported, Skipped: skipped}
		if resp.Skipped == nil {
			resp.Skipped = []string{}
		}

		audit.Record(c, audit.LogOptions{
			EntityType:  "shipment",
			EntityID:    s.ID,
			Action:      models.AuditActionImport,
			Description: fmt.Sprintf("Imported %s: %d order(s), %d row(s) skipped", fileHeader.Filename, imported, len(skipped)),
			After:       resp.Shipment,
		})
		events.Emit(pub, eventFor(events.ShipmentImported, resp.Shipment))

		return c.Status(fiber.StatusCreated).JSON(resp)
	}
}
