package console

import (
	"context"
	"log"
	"strings"

	"transport-console/internal/contracts"
	"transport-console/internal/format"
	"transport-console/internal/table"
)

// VehicleForm keeps the numbers as typed so a rejected form re-renders
// unchanged.
type VehicleForm struct {
	Name   string
	Weight string
	Volume string
}

func (f VehicleForm) Build() (contracts.CreateVehicleDTO, error) {
	dto := contracts.CreateVehicleDTO{Name: strings.TrimSpace(f.Name)}
	if dto.Name == "" {
		return dto, invalid("Please enter the vehicle name")
	}
	var ok bool
	if dto.Weight, ok = parsePositive(f.Weight); !ok {
		return dto, invalid("Weight must be a number greater than 0")
	}
	if dto.Volume, ok = parsePositive(f.Volume); !ok {
		return dto, invalid("Volume must be a number greater than 0")
	}
	return dto, nil
}

type VehiclePage struct {
	api VehicleAPI

	Vehicles  []contracts.Vehicle
	LoadError string

	Form  *VehicleForm
	Alert string
}

func NewVehiclePage(api VehicleAPI) *VehiclePage {
	return &VehiclePage{api: api}
}

func (p *VehiclePage) Load(ctx context.Context) {
	list, err := p.api.List(ctx)
	if err != nil {
		log.Printf("[ERROR] loading vehicles: %v", err)
		p.LoadError = "Failed to load vehicles"
		return
	}
	p.Vehicles = list
	p.LoadError = ""
}

func (p *VehiclePage) OpenForm() { p.Form = &VehicleForm{} }

func (p *VehiclePage) Submit(ctx context.Context, form VehicleForm) error {
	p.Form = &form
	dto, err := form.Build()
	if err != nil {
		p.Alert = err.Error()
		return err
	}
	if _, err := p.api.Create(ctx, dto); err != nil {
		log.Printf("[ERROR] creating vehicle %q: %v", dto.Name, err)
		p.Alert = AlertCreateVehicleFailed
		return err
	}
	p.Form = nil
	p.Alert = ""
	p.Load(ctx)
	return nil
}

func (p *VehiclePage) Table() table.View {
	return table.New(p.Vehicles,
		table.KeyColumn[contracts.Vehicle]("Vehicle Name", "name"),
		table.FuncColumn("Weight (kg)", func(v contracts.Vehicle) string { return format.Grouped(v.Weight) }),
		table.FuncColumn("Volume (CFT)", func(v contracts.Vehicle) string { return format.Fixed(v.Volume, 2) }),
		table.FuncColumn("Created At", func(v contracts.Vehicle) string { return format.Date(v.CreatedAt) }),
	).View()
}
