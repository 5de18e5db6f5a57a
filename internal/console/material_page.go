package console

import (
	"context"
	"log"
	"strings"

	"transport-console/internal/contracts"
	"transport-console/internal/format"
	"transport-console/internal/table"
)

// MaterialForm.Category holds a category id picked from the list, or a
// free-text category name.
type MaterialForm struct {
	Name          string
	Description   string
	Category      string
	WeightPerUnit string
	VolumePerUnit string
}

func (f MaterialForm) Build() (contracts.CreateMaterialDTO, error) {
	dto := contracts.CreateMaterialDTO{
		Name:        strings.TrimSpace(f.Name),
		Description: strings.TrimSpace(f.Description),
		Category:    strings.TrimSpace(f.Category),
	}
	if dto.Name == "" {
		return dto, invalid("Please enter the material name")
	}
	if dto.Category == "" {
		return dto, invalid("Please select a category")
	}
	var ok bool
	if dto.WeightPerUnit, ok = parsePositive(f.WeightPerUnit); !ok {
		return dto, invalid("Weight per unit must be a number greater than 0")
	}
	if dto.VolumePerUnit, ok = parsePositive(f.VolumePerUnit); !ok {
		return dto, invalid("Volume per unit must be a number greater than 0")
	}
	return dto, nil
}

type MaterialPage struct {
	api MaterialAPI

	Materials  []contracts.Material
	Categories []contracts.MaterialCategory
	LoadError  string

	Form  *MaterialForm
	Alert string
}

func NewMaterialPage(api MaterialAPI) *MaterialPage {
	return &MaterialPage{api: api}
}

// Load fetches the materials and the category choices for the form.
func (p *MaterialPage) Load(ctx context.Context) {
	p.LoadError = ""
	list, err := p.api.List(ctx)
	if err != nil {
		log.Printf("[ERROR] loading materials: %v", err)
		p.LoadError = "Failed to load materials"
	} else {
		p.Materials = list
	}

	cats, err := p.api.Categories(ctx)
	if err != nil {
		log.Printf("[ERROR] loading material categories: %v", err)
		if p.LoadError == "" {
			p.LoadError = "Failed to load material categories"
		}
		return
	}
	p.Categories = cats
}

func (p *MaterialPage) OpenForm() { p.Form = &MaterialForm{} }

func (p *MaterialPage) Submit(ctx context.Context, form MaterialForm) error {
	p.Form = &form
	dto, err := form.Build()
	if err != nil {
		p.Alert = err.Error()
		return err
	}
	if _, err := p.api.Create(ctx, dto); err != nil {
		log.Printf("[ERROR] creating material %q: %v", dto.Name, err)
		p.Alert = AlertCreateMaterialFailed
		return err
	}
	p.Form = nil
	p.Alert = ""
	p.Load(ctx)
	return nil
}

func (p *MaterialPage) Table() table.View {
	return table.New(p.Materials,
		table.KeyColumn[contracts.Material]("Material Name", "name"),
		table.KeyColumn[contracts.Material]("Description", "description"),
		table.FuncColumn("Category", func(m contracts.Material) string { return m.Category.Label() }),
		table.FuncColumn("Weight/Unit (kg)", func(m contracts.Material) string { return format.Fixed(m.WeightPerUnit, 2) }),
		table.FuncColumn("Volume/Unit (CFT)", func(m contracts.Material) string { return format.Fixed(m.VolumePerUnit, 3) }),
	).View()
}
