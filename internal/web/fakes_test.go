package web

import (
	"context"
	"io"

	"transport-console/internal/contracts"
)

type fakeTransports struct {
	list    []contracts.Transport
	created []contracts.CreateTransportDTO
}

func (f *fakeTransports) List(ctx context.Context) ([]contracts.Transport, error) { return f.list, nil }

func (f *fakeTransports) Create(ctx context.Context, dto contracts.CreateTransportDTO) (*contracts.Transport, error) {
	f.created = append(f.created, dto)
	return &contracts.Transport{ID: "new", Name: dto.Name}, nil
}

type fakeVehicles struct {
	list    []contracts.Vehicle
	created []contracts.CreateVehicleDTO
}

func (f *fakeVehicles) List(ctx context.Context) ([]contracts.Vehicle, error) { return f.list, nil }

func (f *fakeVehicles) Create(ctx context.Context, dto contracts.CreateVehicleDTO) (*contracts.Vehicle, error) {
	f.created = append(f.created, dto)
	return &contracts.Vehicle{ID: "new", Name: dto.Name}, nil
}

type fakeMaterials struct {
	list       []contracts.Material
	categories []contracts.MaterialCategory
	created    []contracts.CreateMaterialDTO
}

func (f *fakeMaterials) List(ctx context.Context) ([]contracts.Material, error) { return f.list, nil }

func (f *fakeMaterials) Categories(ctx context.Context) ([]contracts.MaterialCategory, error) {
	return f.categories, nil
}

func (f *fakeMaterials) Create(ctx context.Context, dto contracts.CreateMaterialDTO) (*contracts.Material, error) {
	f.created = append(f.created, dto)
	return &contracts.Material{ID: "new", Name: dto.Name}, nil
}

type fakeShipments struct {
	list      []contracts.Shipment
	summary   *contracts.ShipmentSummary
	createErr error
	uploadRes *contracts.UploadResult

	created []contracts.CreateShipmentDTO
	updated []contracts.UpdateShipmentDTO
	uploads []string
}

func (f *fakeShipments) List(ctx context.Context) ([]contracts.Shipment, error) { return f.list, nil }

func (f *fakeShipments) Summary(ctx context.Context, id string) (*contracts.ShipmentSummary, error) {
	return f.summary, nil
}

func (f *fakeShipments) Create(ctx context.Context, dto contracts.CreateShipmentDTO) (*contracts.Shipment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, dto)
	return &contracts.Shipment{ID: "new", GroupID: dto.GroupID}, nil
}

func (f *fakeShipments) Update(ctx context.Context, id string, dto contracts.UpdateShipmentDTO) (*contracts.Shipment, error) {
	f.updated = append(f.updated, dto)
	return &contracts.Shipment{ID: id}, nil
}

func (f *fakeShipments) Upload(ctx context.Context, filename string, contents io.Reader, transportType, vehicleType string) (*contracts.UploadResult, error) {
	b, _ := io.ReadAll(contents)
	f.uploads = append(f.uploads, filename+":"+string(b)+":"+transportType+":"+vehicleType)
	return f.uploadRes, nil
}
