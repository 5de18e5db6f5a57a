package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"transport-console/internal/contracts"
	"transport-console/internal/format"
	"transport-console/internal/idgen"
	"transport-console/internal/table"
)

// ShipmentPage is the shipment list with its create form and spreadsheet
// upload. It also loads the transports, vehicles and materials the forms
// choose from.
type ShipmentPage struct {
	api        ShipmentAPI
	transports TransportLister
	vehicles   VehicleLister
	materials  MaterialLister
	gen        idgen.Generator

	Shipments  []contracts.Shipment
	Transports []contracts.Transport
	Vehicles   []contracts.Vehicle
	Materials  []contracts.Material
	LoadError  string
	RefError   string

	Form   *CreateForm
	Alert  string
	Notice string
}

func NewShipmentPage(api ShipmentAPI, transports TransportLister, vehicles VehicleLister, materials MaterialLister, gen idgen.Generator) *ShipmentPage {
	if gen == nil {
		gen = idgen.Default
	}
	return &ShipmentPage{
		api:        api,
		transports: transports,
		vehicles:   vehicles,
		materials:  materials,
		gen:        gen,
	}
}

// Load fetches the shipment list and the reference data.
func (p *ShipmentPage) Load(ctx context.Context) {
	p.LoadList(ctx)

	p.RefError = ""
	var failed []string
	if list, err := p.transports.List(ctx); err != nil {
		log.Printf("[ERROR] loading transports: %v", err)
		failed = append(failed, "transports")
	} else {
		p.Transports = list
	}
	if list, err := p.vehicles.List(ctx); err != nil {
		log.Printf("[ERROR] loading vehicles: %v", err)
		failed = append(failed, "vehicles")
	} else {
		p.Vehicles = list
	}
	if list, err := p.materials.List(ctx); err != nil {
		log.Printf("[ERROR] loading materials: %v", err)
		failed = append(failed, "materials")
	} else {
		p.Materials = list
	}
	if len(failed) > 0 {
		p.RefError = "Failed to load " + strings.Join(failed, ", ")
	}
}

// LoadList refetches only the shipment list.
func (p *ShipmentPage) LoadList(ctx context.Context) {
	list, err := p.api.List(ctx)
	if err != nil {
		log.Printf("[ERROR] loading shipments: %v", err)
		p.LoadError = "Failed to load shipments"
		return
	}
	p.Shipments = list
	p.LoadError = ""
}

func (p *ShipmentPage) OpenForm() { p.Form = NewCreateForm() }

// Create validates form and posts it. Validation errors never reach the
// network. Any failure leaves the form open with Alert set.
func (p *ShipmentPage) Create(ctx context.Context, form CreateForm) error {
	p.Form = &form
	dto, err := form.Build(p.gen)
	if err != nil {
		p.Alert = err.Error()
		return err
	}
	if _, err := p.api.Create(ctx, dto); err != nil {
		log.Printf("[ERROR] creating shipment group %d: %v", dto.GroupID, err)
		p.Alert = AlertCreateShipmentFailed
		return err
	}
	p.Form = nil
	p.Alert = ""
	p.LoadList(ctx)
	return nil
}

// UploadAccepts reports whether filename passes the upload extension filter.
func UploadAccepts(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls":
		return true
	}
	return false
}

// Upload sends a spreadsheet of orders. On success Notice summarises what was
// imported and skipped and the list is refetched.
func (p *ShipmentPage) Upload(ctx context.Context, filename string, contents io.Reader, transportType, vehicleType string) (*contracts.UploadResult, error) {
	if !UploadAccepts(filename) {
		p.Alert = "Please upload an .xlsx or .xls file"
		return nil, invalid(p.Alert)
	}
	if strings.TrimSpace(transportType) == "" || strings.TrimSpace(vehicleType) == "" {
		p.Alert = "Please select transport type and vehicle type"
		return nil, invalid(p.Alert)
	}
	res, err := p.api.Upload(ctx, filename, contents, transportType, vehicleType)
	if err != nil {
		log.Printf("[ERROR] uploading %s: %v", filename, err)
		p.Alert = AlertUploadFailed
		return nil, err
	}
	p.Alert = ""
	p.Notice = fmt.Sprintf("Imported %d order(s)", res.Imported)
	if n := len(res.Skipped); n > 0 {
		p.Notice += fmt.Sprintf(", skipped %d row(s)", n)
	}
	p.LoadList(ctx)
	return res, nil
}

// Find returns the loaded shipment with the given id.
func (p *ShipmentPage) Find(id string) (contracts.Shipment, bool) {
	for _, s := range p.Shipments {
		if s.ID == id {
			return s, true
		}
	}
	return contracts.Shipment{}, false
}

var ErrShipmentNotFound = errors.New("shipment not found")

// Open loads the detail panel for the shipment id. The list must be loaded.
func (p *ShipmentPage) Open(ctx context.Context, id string) (*ShipmentDetail, error) {
	s, ok := p.Find(id)
	if !ok {
		return nil, ErrShipmentNotFound
	}
	d := &ShipmentDetail{page: p, Shipment: s}
	d.refreshSummary(ctx)
	return d, nil
}

// TransportName resolves a transport reference to a display name using the
// loaded transports when the reference is a bare id.
func (p *ShipmentPage) TransportName(r contracts.Ref) string {
	if r.Embedded {
		return r.Label()
	}
	for _, t := range p.Transports {
		if t.ID == r.ID {
			return t.Name
		}
	}
	return r.Label()
}

func (p *ShipmentPage) VehicleName(r contracts.Ref) string {
	if r.Embedded {
		return r.Label()
	}
	for _, v := range p.Vehicles {
		if v.ID == r.ID {
			return v.Name
		}
	}
	return r.Label()
}

func (p *ShipmentPage) MaterialName(r contracts.Ref) string {
	if r.Embedded {
		return r.Label()
	}
	for _, m := range p.Materials {
		if m.ID == r.ID {
			return m.Name
		}
	}
	return r.Label()
}

func (p *ShipmentPage) Table() table.View {
	return table.New(p.Shipments,
		table.KeyColumn[contracts.Shipment]("Group ID", "groupId"),
		table.FuncColumn("Transport", func(s contracts.Shipment) string { return p.TransportName(s.TransportType) }),
		table.FuncColumn("Vehicle Type", func(s contracts.Shipment) string { return p.VehicleName(s.VehicleType) }),
		table.FuncColumn("Weight (kg)", func(s contracts.Shipment) string { return format.Grouped(s.TotalWeight) }),
		table.FuncColumn("Volume (CFT)", func(s contracts.Shipment) string { return format.Fixed(s.TotalVolume, 2) }),
		table.FuncColumn("Quantity", func(s contracts.Shipment) string { return format.Quantity(s.TotalQuantity) }),
		table.FuncColumn("Status", func(s contracts.Shipment) string { return format.StatusLabel(s.Status) }),
	).WithKey(func(s contracts.Shipment) string { return s.ID }).View()
}
