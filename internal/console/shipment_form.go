package console

import (
	"strings"

	"transport-console/internal/contracts"
	"transport-console/internal/idgen"
)

// MaterialEntry is one material row of a shipment form. Quantity is kept as
// typed.
type MaterialEntry struct {
	Material string
	Quantity string
}

// CreateForm is the shipment creation form. Every list starts with one blank
// row; rows that are still blank on submit are dropped.
type CreateForm struct {
	TransportType string
	VehicleType   string
	Sources       []string
	Destinations  []string
	Materials     []MaterialEntry
}

func NewCreateForm() *CreateForm {
	return &CreateForm{
		Sources:      []string{""},
		Destinations: []string{""},
		Materials:    []MaterialEntry{{}},
	}
}

func (f *CreateForm) AddSource()      { f.Sources = append(f.Sources, "") }
func (f *CreateForm) AddDestination() { f.Destinations = append(f.Destinations, "") }
func (f *CreateForm) AddMaterial()    { f.Materials = append(f.Materials, MaterialEntry{}) }

// Build validates the form and assembles the create payload with one fresh
// group id and max(sources, destinations) order numbers.
func (f CreateForm) Build(gen idgen.Generator) (contracts.CreateShipmentDTO, error) {
	var dto contracts.CreateShipmentDTO

	sources := compact(f.Sources)
	destinations := compact(f.Destinations)
	materials := materialLines(f.Materials)

	switch {
	case len(sources) == 0:
		return dto, invalid("Please add at least one source location")
	case len(destinations) == 0:
		return dto, invalid("Please add at least one destination location")
	case len(materials) == 0:
		return dto, invalid("Please add at least one material with quantity")
	case strings.TrimSpace(f.TransportType) == "" || strings.TrimSpace(f.VehicleType) == "":
		return dto, invalid("Please select transport type and vehicle type")
	}

	dto = contracts.CreateShipmentDTO{
		Source:        sources,
		Destination:   destinations,
		TransportType: strings.TrimSpace(f.TransportType),
		VehicleType:   strings.TrimSpace(f.VehicleType),
		Materials:     materials,
		OrderNumber:   idgen.OrderNumbers(gen, max(len(sources), len(destinations))),
		GroupID:       gen.GroupID(),
	}
	return dto, nil
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func materialLines(in []MaterialEntry) []contracts.MaterialQuantity {
	out := make([]contracts.MaterialQuantity, 0, len(in))
	for _, m := range in {
		id := strings.TrimSpace(m.Material)
		qty, ok := parsePositive(m.Quantity)
		if id == "" || !ok {
			continue
		}
		out = append(out, contracts.MaterialQuantity{Material: id, Quantity: qty})
	}
	return out
}
