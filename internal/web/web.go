// Package web serves the operator console: server-rendered pages over the
// console workflows, with plain HTML forms posting back to the same paths.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log"
	"strconv"
	"strings"

	"transport-console/internal/console"
	"transport-console/internal/contracts"
	"transport-console/internal/format"
	"transport-console/internal/idgen"
	"transport-console/internal/table"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

//go:embed templates/*.html
var templateFS embed.FS

// tableData is what the "table" template renders. A non-empty Link turns the
// first cell of each keyed row into a link to Link+key.
type tableData struct {
	View table.View
	Link string
}

var funcs = template.FuncMap{
	"grouped":  format.Grouped,
	"fixed":    format.Fixed,
	"qty":      format.Quantity,
	"date":     format.Date,
	"status":   format.StatusLabel,
	"statuses": func() []contracts.Status { return contracts.Statuses },
	"join":     strings.Join,
	"plain":    func(v table.View) tableData { return tableData{View: v} },
	"linked":   func(v table.View, link string) tableData { return tableData{View: v, Link: link} },
	"selected": selected,
	"optInt": func(p *int64) string {
		if p == nil {
			return ""
		}
		return strconv.FormatInt(*p, 10)
	},
}

// selected reports whether an optional selection holds v.
func selected(p any, v string) bool {
	switch x := p.(type) {
	case *string:
		return x != nil && *x == v
	case *contracts.Status:
		return x != nil && string(*x) == v
	}
	return false
}

var pages = []string{"home", "transport", "vehicle", "material", "shipments", "shipment", "error"}

func parseViews() map[string]*template.Template {
	views := make(map[string]*template.Template, len(pages))
	for _, name := range pages {
		views[name] = template.Must(template.New(name).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html", "templates/"+name+".html"))
	}
	return views
}

// view is the data of every page: the chrome plus the page state.
type view struct {
	Title  string
	Active string
	Page   any
	Detail *console.ShipmentDetail
}

type errorPage struct {
	Code    int
	Message string
}

// Deps are the services the console pages call.
type Deps struct {
	Transports console.TransportAPI
	Vehicles   console.VehicleAPI
	Materials  console.MaterialAPI
	Shipments  console.ShipmentAPI
	Generator  idgen.Generator
}

type Handler struct {
	deps  Deps
	views map[string]*template.Template
}

func NewHandler(deps Deps) *Handler {
	if deps.Generator == nil {
		deps.Generator = idgen.Default
	}
	return &Handler{deps: deps, views: parseViews()}
}

func (h *Handler) render(c *fiber.Ctx, status int, name string, data view) error {
	t, ok := h.views[name]
	if !ok {
		return fmt.Errorf("unknown view %q", name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}

// errorHandler renders failed requests as an HTML page.
func (h *Handler) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Something went wrong"
	if e, ok := err.(*fiber.Error); ok {
		code, msg = e.Code, e.Message
	} else {
		log.Println("[ERROR] console:", err)
	}
	if rerr := h.render(c, code, "error", view{Title: "Error", Page: errorPage{Code: code, Message: msg}}); rerr != nil {
		log.Println("[ERROR] rendering error page:", rerr)
		return c.Status(code).SendString(msg)
	}
	return nil
}

// failureStatus is the status of a page re-rendered after a failed form.
func failureStatus(err error) int {
	if console.IsValidation(err) {
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusBadGateway
}

// formValues returns every posted value of key, in order.
func formValues(c *fiber.Ctx, key string) []string {
	raw := c.Request().PostArgs().PeekMulti(key)
	if len(raw) == 0 {
		if form, err := c.MultipartForm(); err == nil {
			return form.Value[key]
		}
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		out = append(out, string(v))
	}
	return out
}

// materialEntries pairs the posted material and quantity fields.
func materialEntries(c *fiber.Ctx) []console.MaterialEntry {
	ids := formValues(c, "material")
	qty := formValues(c, "quantity")
	out := make([]console.MaterialEntry, 0, len(ids))
	for i, id := range ids {
		e := console.MaterialEntry{Material: id}
		if i < len(qty) {
			e.Quantity = qty[i]
		}
		out = append(out, e)
	}
	return out
}

func atLeastOne[T any](s []T) []T {
	if len(s) == 0 {
		var zero T
		return []T{zero}
	}
	return s
}

// New builds the console app.
func New(deps Deps) *fiber.App {
	h := NewHandler(deps)
	app := fiber.New(fiber.Config{
		ErrorHandler:          h.errorHandler,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	h.Register(app)
	return app
}

func (h *Handler) Register(r fiber.Router) {
	r.Get("/", h.home)

	r.Get("/transport", h.transportPage)
	r.Post("/transport", h.createTransport)
	r.Get("/vehicle", h.vehiclePage)
	r.Post("/vehicle", h.createVehicle)
	r.Get("/material", h.materialPage)
	r.Post("/material", h.createMaterial)

	r.Get("/shipment", h.shipmentList)
	r.Post("/shipment", h.createShipment)
	r.Post("/shipment/upload", h.uploadShipments)
	r.Get("/shipment/:id", h.shipmentDetail)
	r.Post("/shipment/:id/edit", h.editShipment)
}

// GET /
func (h *Handler) home(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, "home", view{Title: "Home", Active: "home"})
}
