package web

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"transport-console/internal/console"
	"transport-console/internal/contracts"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) shipmentPage() *console.ShipmentPage {
	return console.NewShipmentPage(h.deps.Shipments, h.deps.Transports, h.deps.Vehicles, h.deps.Materials, h.deps.Generator)
}

func shipmentsView(p *console.ShipmentPage) view {
	return view{Title: "Shipment", Active: "shipment", Page: p}
}

// GET /shipment?form=open&notice=...
func (h *Handler) shipmentList(c *fiber.Ctx) error {
	p := h.shipmentPage()
	p.Load(c.UserContext())
	if c.Query("form") == "open" {
		p.OpenForm()
	}
	p.Notice = c.Query("notice")
	return h.render(c, fiber.StatusOK, "shipments", shipmentsView(p))
}

func readCreateForm(c *fiber.Ctx) console.CreateForm {
	return console.CreateForm{
		TransportType: c.FormValue("transportType"),
		VehicleType:   c.FormValue("vehicleType"),
		Sources:       atLeastOne(formValues(c, "source")),
		Destinations:  atLeastOne(formValues(c, "destination")),
		Materials:     atLeastOne(materialEntries(c)),
	}
}

// POST /shipment
//
// op=add-source|add-destination|add-material grows the form; op=submit
// creates the shipment.
func (h *Handler) createShipment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	p := h.shipmentPage()
	p.Load(ctx)
	form := readCreateForm(c)

	switch c.FormValue("op") {
	case "add-source":
		form.AddSource()
	case "add-destination":
		form.AddDestination()
	case "add-material":
		form.AddMaterial()
	default:
		if err := p.Create(ctx, form); err != nil {
			return h.render(c, failureStatus(err), "shipments", shipmentsView(p))
		}
		return c.Redirect("/shipment", fiber.StatusSeeOther)
	}
	p.Form = &form
	return h.render(c, fiber.StatusOK, "shipments", shipmentsView(p))
}

// POST /shipment/upload (multipart: file, transportType, vehicleType)
func (h *Handler) uploadShipments(c *fiber.Ctx) error {
	ctx := c.UserContext()
	p := h.shipmentPage()
	p.Load(ctx)

	fh, err := c.FormFile("file")
	if err != nil {
		p.Alert = "Please choose a file to upload"
		return h.render(c, fiber.StatusUnprocessableEntity, "shipments", shipmentsView(p))
	}
	f, err := fh.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "File could not be read")
	}
	defer f.Close()

	if _, err := p.Upload(ctx, fh.Filename, f, c.FormValue("transportType"), c.FormValue("vehicleType")); err != nil {
		return h.render(c, failureStatus(err), "shipments", shipmentsView(p))
	}
	return c.Redirect("/shipment?notice="+url.QueryEscape(p.Notice), fiber.StatusSeeOther)
}

// openDetail loads the list and the reference data, then the detail panel of
// the :id shipment.
func (h *Handler) openDetail(c *fiber.Ctx) (*console.ShipmentPage, *console.ShipmentDetail, error) {
	ctx := c.UserContext()
	p := h.shipmentPage()
	p.Load(ctx)
	if p.LoadError != "" {
		return nil, nil, fiber.NewError(fiber.StatusBadGateway, p.LoadError)
	}
	d, err := p.Open(ctx, c.Params("id"))
	if errors.Is(err, console.ErrShipmentNotFound) {
		return nil, nil, fiber.NewError(fiber.StatusNotFound, "Shipment not found")
	}
	if err != nil {
		return nil, nil, err
	}
	return p, d, nil
}

func detailView(p *console.ShipmentPage, d *console.ShipmentDetail) view {
	return view{Title: "Shipment " + strconv.FormatInt(d.Shipment.GroupID, 10), Active: "shipment", Page: p, Detail: d}
}

// GET /shipment/:id?mode=edit
func (h *Handler) shipmentDetail(c *fiber.Ctx) error {
	p, d, err := h.openDetail(c)
	if err != nil {
		return err
	}
	if c.Query("mode") == "edit" {
		d.StartEdit()
	}
	return h.render(c, fiber.StatusOK, "shipment", detailView(p, d))
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// readEditSession rebuilds the session posted by the edit form. The order
// number travels in a hidden field so it stays fixed across re-renders.
func readEditSession(c *fiber.Ctx, d *console.ShipmentDetail) (*console.EditSession, error) {
	order, err := strconv.ParseInt(c.FormValue("orderNumber"), 10, 64)
	if err != nil || order <= 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid order number")
	}
	s := d.Resume(order)
	s.TransportType = optional(c.FormValue("transportType"))
	s.VehicleType = optional(c.FormValue("vehicleType"))
	if st := optional(c.FormValue("status")); st != nil {
		status := contracts.Status(*st)
		s.Status = &status
	}
	s.Pickups = atLeastOne(formValues(c, "pickup"))
	s.Drops = atLeastOne(formValues(c, "drop"))
	s.Materials = atLeastOne(materialEntries(c))

	if g := optional(c.FormValue("groupId")); g != nil {
		groupID, err := strconv.ParseInt(*g, 10, 64)
		if err != nil || groupID <= 0 {
			d.Edit = s
			d.Alert = "Group ID must be a positive integer"
			return s, &console.ValidationError{Message: d.Alert}
		}
		s.GroupID = &groupID
	}
	return s, nil
}

// POST /shipment/:id/edit
//
// op=add-pickup|add-drop|add-material grows the form; op=save sends the
// update.
func (h *Handler) editShipment(c *fiber.Ctx) error {
	p, d, err := h.openDetail(c)
	if err != nil {
		return err
	}
	s, err := readEditSession(c, d)
	if err != nil {
		if console.IsValidation(err) {
			return h.render(c, fiber.StatusUnprocessableEntity, "shipment", detailView(p, d))
		}
		return err
	}

	switch c.FormValue("op") {
	case "add-pickup":
		s.AddPickup()
	case "add-drop":
		s.AddDrop()
	case "add-material":
		s.AddMaterial()
	default:
		if err := d.Save(c.UserContext(), s); err != nil {
			return h.render(c, failureStatus(err), "shipment", detailView(p, d))
		}
		return c.Redirect("/shipment/"+url.PathEscape(d.Shipment.ID), fiber.StatusSeeOther)
	}
	d.Edit = s
	return h.render(c, fiber.StatusOK, "shipment", detailView(p, d))
}
