// Package services maps the console's domain operations onto the REST
// endpoints of the transport API.
package services

import (
	"context"
	"io"
	"net/url"

	"transport-console/internal/api"
	"transport-console/internal/contracts"
)

// Requester is the part of *api.Client the services need.
type Requester interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string, out any) error
	PostMultipart(ctx context.Context, path string, file api.File, fields map[string]string, out any) error
}

func itemPath(base, id string) string {
	return base + "/" + url.PathEscape(id)
}

// Services bundles one service per entity over a shared client.
type Services struct {
	Transports *TransportService
	Vehicles   *VehicleService
	Materials  *MaterialService
	Shipments  *ShipmentService
}

func New(r Requester) *Services {
	return &Services{
		Transports: NewTransportService(r),
		Vehicles:   NewVehicleService(r),
		Materials:  NewMaterialService(r),
		Shipments:  NewShipmentService(r),
	}
}

const transportsPath = "/transport-types"

type TransportService struct{ r Requester }

func NewTransportService(r Requester) *TransportService { return &TransportService{r: r} }

func (s *TransportService) List(ctx context.Context) ([]contracts.Transport, error) {
	var out []contracts.Transport
	if err := s.r.Get(ctx, transportsPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *TransportService) Get(ctx context.Context, id string) (*contracts.Transport, error) {
	var out contracts.Transport
	if err := s.r.Get(ctx, itemPath(transportsPath, id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *TransportService) Create(ctx context.Context, dto contracts.CreateTransportDTO) (*contracts.Transport, error) {
	var out contracts.Transport
	if err := s.r.Post(ctx, transportsPath, dto, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *TransportService) Update(ctx context.Context, id string, dto contracts.UpdateTransportDTO) (*contracts.Transport, error) {
	var out contracts.Transport
	if err := s.r.Put(ctx, itemPath(transportsPath, id), dto, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *TransportService) Delete(ctx context.Context, id string) error {
	return s.r.Delete(ctx, itemPath(transportsPath, id), nil)
}

// vehiclesPath keeps the deployed API's spelling.
const vehiclesPath = "/vechicle-types"

type VehicleService struct{ r Requester }

func NewVehicleService(r Requester) *VehicleService { return &VehicleService{r: r} }

func (s *VehicleService) List(ctx context.Context) ([]contracts.Vehicle, error) {
	var out []contracts.Vehicle
	if err := s.r.Get(ctx, vehiclesPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *VehicleService) Get(ctx context.Context, id string) (*contracts.Vehicle, error) {
	var out contracts.Vehicle
	if err := s.r.Get(ctx, itemPath(vehiclesPath, id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *VehicleService) Create(ctx context.Context, dto contracts.CreateVehicleDTO) (*contracts.Vehicle, error) {
	var out contracts.Vehicle
	if err := s.r.Post(ctx, vehiclesPath, dto, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *VehicleService) Update(ctx context.Context, id string, dto contracts.UpdateVehicleDTO) (*contracts.Vehicle, error) {
	var out contracts.Vehicle
	if err := s.r.Put(ctx, itemPath(vehiclesPath, id), dto, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *VehicleService) Delete(ctx context.Context, id string) error {
	return s.r.Delete(ctx, itemPath(vehiclesPath, id), nil)
}

const (
	materialsPath  = "/materials"
	categoriesPath = "/material-categories"
)

type MaterialService struct{ r Requester }

func NewMaterialService(r Requester) *MaterialService { return &MaterialService{r: r} }

func (s *MaterialService) List(ctx context.Context) ([]contracts.Material, error) {
	var out []contracts.Material
	if err := s.r.Get(ctx, materialsPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MaterialService) Get(ctx context.Context, id string) (*contracts.Material, error) {
	var out contracts.Material
	if err := s.r.Get(ctx, itemPath(materialsPath, id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *MaterialService) Categories(ctx context.Context) ([]contracts.MaterialCategory, error) {
	var out []contracts.MaterialCategory
	if err := s.r.Get(ctx, categoriesPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MaterialService) Create(ctx context.Context, dto contracts.CreateMaterialDTO) (*contracts.Material, error) {
	var out contracts.Material
	if err := s.r.Post(ctx, materialsPath, dto, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *MaterialService) Update(ctx context.Context, id string, dto contracts.UpdateMaterialDTO) (*contracts.Material, error) {
	var out contracts.Material
	if err := s.r.Put(ctx, itemPath(materialsPath, id), dto, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *MaterialService) Delete(ctx context.Context, id string) error {
	return s.r.Delete(ctx, itemPath(materialsPath, id), nil)
}

const (
	shipmentsPath = "/shipments"
	summaryPath   = "/shipments/status-summary"
	uploadPath    = "/shipments/upload"
)

type ShipmentService struct{ r Requester }

func NewShipmentService(r Requester) *ShipmentService { return &ShipmentService{r: r} }

func (s *ShipmentService) List(ctx context.Context) ([]contracts.Shipment, error) {
	var out []contracts.Shipment
	if err := s.r.Get(ctx, shipmentsPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ShipmentService) Get(ctx context.Context, id string) (*contracts.Shipment, error) {
	var out contracts.Shipment
	if err := s.r.Get(ctx, itemPath(shipmentsPath, id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ShipmentService) Summary(ctx context.Context, id string) (*contracts.ShipmentSummary, error) {
	var out contracts.ShipmentSummary
	if err := s.r.Get(ctx, itemPath(summaryPath, id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ShipmentService) Create(ctx context.Context, dto contracts.CreateShipmentDTO) (*contracts.Shipment, error) {
	var out contracts.Shipment
	if err := s.r.Post(ctx, shipmentsPath, dto, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update appends the lines in dto and changes the fields that are set.
func (s *ShipmentService) Update(ctx context.Context, id string, dto contracts.UpdateShipmentDTO) (*contracts.Shipment, error) {
	var out contracts.Shipment
	if err := s.r.Put(ctx, itemPath(shipmentsPath, id), dto, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ShipmentService) Delete(ctx context.Context, id string) error {
	return s.r.Delete(ctx, itemPath(shipmentsPath, id), nil)
}

// Upload posts a spreadsheet of orders as one shipment.
func (s *ShipmentService) Upload(ctx context.Context, filename string, contents io.Reader, transportType, vehicleType string) (*contracts.UploadResult, error) {
	var out contracts.UploadResult
	err := s.r.PostMultipart(ctx, uploadPath,
		api.File{Field: "xlsx", Name: filename, Contents: contents},
		map[string]string{"transportType": transportType, "vehicleType": vehicleType},
		&out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
