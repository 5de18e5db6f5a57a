package console

import (
	"context"
	"log"
	"strings"

	"transport-console/internal/contracts"
	"transport-console/internal/format"
	"transport-console/internal/table"
)

type TransportForm struct {
	Name          string
	VehicleNumber string
	Address       string
	EmailID       string
}

func (f TransportForm) Build() (contracts.CreateTransportDTO, error) {
	dto := contracts.CreateTransportDTO{
		Name:          strings.TrimSpace(f.Name),
		VehicleNumber: strings.TrimSpace(f.VehicleNumber),
		Address:       strings.TrimSpace(f.Address),
		EmailID:       strings.TrimSpace(f.EmailID),
	}
	switch {
	case dto.Name == "":
		return dto, invalid("Please enter the transport name")
	case dto.VehicleNumber == "":
		return dto, invalid("Please enter the vehicle number")
	case dto.Address == "":
		return dto, invalid("Please enter the address")
	case !strings.Contains(dto.EmailID, "@"):
		return dto, invalid("Please enter a valid email")
	}
	return dto, nil
}

type TransportPage struct {
	api TransportAPI

	Transports []contracts.Transport
	LoadError  string

	Form  *TransportForm // nil while the form is closed
	Alert string
}

func NewTransportPage(api TransportAPI) *TransportPage {
	return &TransportPage{api: api}
}

func (p *TransportPage) Load(ctx context.Context) {
	list, err := p.api.List(ctx)
	if err != nil {
		log.Printf("[ERROR] loading transports: %v", err)
		p.LoadError = "Failed to load transports"
		return
	}
	p.Transports = list
	p.LoadError = ""
}

func (p *TransportPage) OpenForm() { p.Form = &TransportForm{} }

// Submit validates and posts the form. On success the form is closed and the
// list refetched; on failure the form stays open with Alert set.
func (p *TransportPage) Submit(ctx context.Context, form TransportForm) error {
	p.Form = &form
	dto, err := form.Build()
	if err != nil {
		p.Alert = err.Error()
		return err
	}
	if _, err := p.api.Create(ctx, dto); err != nil {
		log.Printf("[ERROR] creating transport %q: %v", dto.Name, err)
		p.Alert = AlertCreateTransportFailed
		return err
	}
	p.Form = nil
	p.Alert = ""
	p.Load(ctx)
	return nil
}

func (p *TransportPage) Table() table.View {
	return table.New(p.Transports,
		table.KeyColumn[contracts.Transport]("Transport Name", "name"),
		table.KeyColumn[contracts.Transport]("Vehicle Number", "vehicle_number"),
		table.KeyColumn[contracts.Transport]("Address", "address"),
		table.KeyColumn[contracts.Transport]("Email", "emailId"),
		table.FuncColumn("Created At", func(t contracts.Transport) string { return format.Date(t.CreatedAt) }),
	).View()
}
