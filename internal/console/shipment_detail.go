package console

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"

	"transport-console/internal/contracts"
	"transport-console/internal/format"
	"transport-console/internal/table"
)

// visibleMaterials is how many materials an order row shows before the rest
// move to the hover list.
const visibleMaterials = 2

var errNothingToUpdate = invalid("Nothing to update")

// Snapshot is the state of a shipment when an edit session started.
type Snapshot struct {
	TransportType string
	VehicleType   string
	GroupID       int64
	Status        contracts.Status
}

// EditSession appends lines to a shipment and optionally changes its
// reference fields. A nil field keeps the current value. Every appended line
// carries OrderNumber, generated once when the session started.
type EditSession struct {
	Current     Snapshot
	OrderNumber int64

	TransportType *string
	VehicleType   *string
	GroupID       *int64
	Status        *contracts.Status

	Pickups   []string
	Drops     []string
	Materials []MaterialEntry
}

func (e *EditSession) AddPickup()   { e.Pickups = append(e.Pickups, "") }
func (e *EditSession) AddDrop()     { e.Drops = append(e.Drops, "") }
func (e *EditSession) AddMaterial() { e.Materials = append(e.Materials, MaterialEntry{}) }

// Payload builds the update from the complete rows and the set fields.
func (e *EditSession) Payload() (contracts.UpdateShipmentDTO, error) {
	dto := contracts.UpdateShipmentDTO{
		TransportType: trimmed(e.TransportType),
		VehicleType:   trimmed(e.VehicleType),
		GroupID:       e.GroupID,
		Status:        e.Status,
	}
	if dto.Status != nil && !dto.Status.Valid() {
		return dto, invalid("Please select a valid status")
	}
	for _, loc := range compact(e.Pickups) {
		dto.SourceDetails = append(dto.SourceDetails, contracts.NewLocation{Location: loc, OrderNumber: e.OrderNumber})
	}
	for _, loc := range compact(e.Drops) {
		dto.DestinationDetails = append(dto.DestinationDetails, contracts.NewLocation{Location: loc, OrderNumber: e.OrderNumber})
	}
	for _, m := range materialLines(e.Materials) {
		dto.Materials = append(dto.Materials, contracts.NewMaterialLine{Material: m.Material, Quantity: m.Quantity, OrderNumber: e.OrderNumber})
	}
	if dto.IsEmpty() {
		return dto, errNothingToUpdate
	}
	return dto, nil
}

// trimmed treats a blank selection as unset.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// Totals of a shipment as shown in the detail panel.
type Totals struct {
	Weight   float64
	Volume   float64
	Quantity float64
}

// OrderRow is one line of the per-order breakdown.
type OrderRow struct {
	OrderNumber int64
	Source      string
	Destination string
	Materials   []string
	Overflow    []string
	Quantity    float64
}

// ShipmentDetail is the panel opened on a shipment row.
type ShipmentDetail struct {
	page *ShipmentPage

	Shipment     contracts.Shipment
	Summary      *contracts.ShipmentSummary
	SummaryError string

	Edit  *EditSession
	Alert string
}

func (d *ShipmentDetail) refreshSummary(ctx context.Context) {
	sum, err := d.page.api.Summary(ctx, d.Shipment.ID)
	if err != nil {
		log.Printf("[ERROR] loading summary of shipment %s: %v", d.Shipment.ID, err)
		d.SummaryError = AlertSummaryFailed
		return
	}
	d.Summary = sum
	d.SummaryError = ""
}

// Totals prefers the summary and falls back to the list-level totals.
func (d *ShipmentDetail) Totals() Totals {
	if d.Summary != nil {
		return Totals{Weight: d.Summary.TotalWeight, Volume: d.Summary.TotalVolume, Quantity: d.Summary.TotalQuantity}
	}
	return Totals{Weight: d.Shipment.TotalWeight, Volume: d.Shipment.TotalVolume, Quantity: d.Shipment.TotalQuantity}
}

func (d *ShipmentDetail) Rows() []OrderRow {
	if d.Summary == nil {
		return nil
	}
	rows := make([]OrderRow, 0, len(d.Summary.Orders))
	for _, o := range d.Summary.Orders {
		r := OrderRow{
			OrderNumber: o.OrderNumber,
			Source:      strings.Join(o.Pickups, ", "),
			Destination: strings.Join(o.Drops, ", "),
		}
		for i, m := range o.Materials {
			label := d.page.MaterialName(m.Material) + " (" + format.Quantity(m.Quantity) + ")"
			if i < visibleMaterials {
				r.Materials = append(r.Materials, label)
			} else {
				r.Overflow = append(r.Overflow, label)
			}
			r.Quantity += m.Quantity
		}
		rows = append(rows, r)
	}
	return rows
}

func (d *ShipmentDetail) OrdersTable() table.View {
	materials := table.FuncColumn("Materials", func(r OrderRow) string {
		s := strings.Join(r.Materials, ", ")
		if n := len(r.Overflow); n > 0 {
			s += " +" + strconv.Itoa(n) + " more"
		}
		return s
	})
	materials.Hover = func(r OrderRow) []string { return r.Overflow }

	return table.New(d.Rows(),
		table.KeyColumn[OrderRow]("Source", "Source"),
		table.KeyColumn[OrderRow]("Destination", "Destination"),
		table.KeyColumn[OrderRow]("Order Number", "OrderNumber"),
		materials,
		table.FuncColumn("Quantity", func(r OrderRow) string { return format.Quantity(r.Quantity) }),
	).View()
}

// StartEdit opens an edit session on the current state with a fresh order
// number.
func (d *ShipmentDetail) StartEdit() *EditSession {
	d.Edit = d.Resume(d.page.gen.OrderNumber())
	d.Edit.Pickups = []string{""}
	d.Edit.Drops = []string{""}
	d.Edit.Materials = []MaterialEntry{{}}
	d.Alert = ""
	return d.Edit
}

// Resume returns an empty session for an order number handed out by an
// earlier StartEdit.
func (d *ShipmentDetail) Resume(orderNumber int64) *EditSession {
	return &EditSession{
		Current: Snapshot{
			TransportType: d.Shipment.TransportType.ID,
			VehicleType:   d.Shipment.VehicleType.ID,
			GroupID:       d.Shipment.GroupID,
			Status:        d.Shipment.Status,
		},
		OrderNumber: orderNumber,
	}
}

func (d *ShipmentDetail) CancelEdit() {
	d.Edit = nil
	d.Alert = ""
}

// Save sends the session as an update, then refetches the shipment list and
// then the summary. The session is cleared only after both fetches returned;
// on failure it stays open with Alert set.
func (d *ShipmentDetail) Save(ctx context.Context, s *EditSession) error {
	d.Edit = s
	dto, err := s.Payload()
	if err != nil {
		d.Alert = err.Error()
		return err
	}
	if _, err := d.page.api.Update(ctx, d.Shipment.ID, dto); err != nil {
		log.Printf("[ERROR] updating shipment %s: %v", d.Shipment.ID, err)
		d.Alert = AlertUpdateShipmentFailed
		return err
	}

	d.page.LoadList(ctx)
	if fresh, ok := d.page.Find(d.Shipment.ID); ok {
		d.Shipment = fresh
	}
	d.refreshSummary(ctx)

	d.Edit = nil
	d.Alert = ""
	return nil
}

// IsValidation reports whether err was raised by form validation, before any
// network call.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
