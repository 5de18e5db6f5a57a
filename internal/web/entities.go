package web

import (
	"transport-console/internal/console"

	"github.com/gofiber/fiber/v2"
)

// GET /transport?form=open
func (h *Handler) transportPage(c *fiber.Ctx) error {
	p := console.NewTransportPage(h.deps.Transports)
	p.Load(c.UserContext())
	if c.Query("form") == "open" {
		p.OpenForm()
	}
	return h.render(c, fiber.StatusOK, "transport", view{Title: "Transport", Active: "transport", Page: p})
}

// POST /transport
func (h *Handler) createTransport(c *fiber.Ctx) error {
	ctx := c.UserContext()
	p := console.NewTransportPage(h.deps.Transports)
	form := console.TransportForm{
		Name:          c.FormValue("name"),
		VehicleNumber: c.FormValue("vehicleNumber"),
		Address:       c.FormValue("address"),
		EmailID:       c.FormValue("emailId"),
	}
	if err := p.Submit(ctx, form); err != nil {
		p.Load(ctx)
		return h.render(c, failureStatus(err), "transport", view{Title: "Transport", Active: "transport", Page: p})
	}
	return c.Redirect("/transport", fiber.StatusSeeOther)
}

// GET /vehicle?form=open
func (h *Handler) vehiclePage(c *fiber.Ctx) error {
	p := console.NewVehiclePage(h.deps.Vehicles)
	p.Load(c.UserContext())
	if c.Query("form") == "open" {
		p.OpenForm()
	}
	return h.render(c, fiber.StatusOK, "vehicle", view{Title: "Vehicle", Active: "vehicle", Page: p})
}

// POST /vehicle
func (h *Handler) createVehicle(c *fiber.Ctx) error {
	ctx := c.UserContext()
	p := console.NewVehiclePage(h.deps.Vehicles)
	form := console.VehicleForm{
		Name:   c.FormValue("name"),
		Weight: c.FormValue("weight"),
		Volume: c.FormValue("volume"),
	}
	if err := p.Submit(ctx, form); err != nil {
		p.Load(ctx)
		return h.render(c, failureStatus(err), "vehicle", view{Title: "Vehicle", Active: "vehicle", Page: p})
	}
	return c.Redirect("/vehicle", fiber.StatusSeeOther)
}

// GET /material?form=open
func (h *Handler) materialPage(c *fiber.Ctx) error {
	p := console.NewMaterialPage(h.deps.Materials)
	p.Load(c.UserContext())
	if c.Query("form") == "open" {
		p.OpenForm()
	}
	return h.render(c, fiber.StatusOK, "material", view{Title: "Material", Active: "material", Page: p})
}

// POST /material
func (h *Handler) createMaterial(c *fiber.Ctx) error {
	ctx := c.UserContext()
	p := console.NewMaterialPage(h.deps.Materials)
	form := console.MaterialForm{
		Name:          c.FormValue("name"),
		Description:   c.FormValue("description"),
		Category:      c.FormValue("category"),
		WeightPerUnit: c.FormValue("weightPerUnit"),
		VolumePerUnit: c.FormValue("volumePerUnit"),
	}
	if err := p.Submit(ctx, form); err != nil {
		p.Load(ctx)
		return h.render(c, failureStatus(err), "material", view{Title: "Material", Active: "material", Page: p})
	}
	return c.Redirect("/material", fiber.StatusSeeOther)
}
