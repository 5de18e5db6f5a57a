package console

import (
	"context"
	"io"

	"transport-console/internal/contracts"
)

// fakeShipments records calls in order; calls is shared with the reference
// fakes so tests can check ordering across services.
type fakeShipments struct {
	calls *[]string

	list      []contracts.Shipment
	listErr   error
	summary   *contracts.ShipmentSummary
	sumErr    error
	createErr error
	updateErr error
	uploadRes *contracts.UploadResult
	uploadErr error

	created []contracts.CreateShipmentDTO
	updated []contracts.UpdateShipmentDTO
	uploads []string
}

func (f *fakeShipments) record(c string) {
	if f.calls != nil {
		*f.calls = append(*f.calls, c)
	}
}

func (f *fakeShipments) List(ctx context.Context) ([]contracts.Shipment, error) {
	f.record("list")
	return f.list, f.listErr
}

func (f *fakeShipments) Summary(ctx context.Context, id string) (*contracts.ShipmentSummary, error) {
	f.record("summary " + id)
	return f.summary, f.sumErr
}

func (f *fakeShipments) Create(ctx context.Context, dto contracts.CreateShipmentDTO) (*contracts.Shipment, error) {
	f.record("create")
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, dto)
	return &contracts.Shipment{ID: "new", GroupID: dto.GroupID}, nil
}

func (f *fakeShipments) Update(ctx context.Context, id string, dto contracts.UpdateShipmentDTO) (*contracts.Shipment, error) {
	f.record("update " + id)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updated = append(f.updated, dto)
	return &contracts.Shipment{ID: id}, nil
}

func (f *fakeShipments) Upload(ctx context.Context, filename string, contents io.Reader, transportType, vehicleType string) (*contracts.UploadResult, error) {
	f.record("upload " + filename)
	f.uploads = append(f.uploads, filename)
	return f.uploadRes, f.uploadErr
}

type fakeTransports struct {
	list      []contracts.Transport
	err       error
	createErr error
	created   []contracts.CreateTransportDTO
}

func (f *fakeTransports) List(ctx context.Context) ([]contracts.Transport, error) {
	return f.list, f.err
}

func (f *fakeTransports) Create(ctx context.Context, dto contracts.CreateTransportDTO) (*contracts.Transport, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, dto)
	t := contracts.Transport{ID: "t-new", Name: dto.Name, VehicleNumber: dto.VehicleNumber, Address: dto.Address, EmailID: dto.EmailID}
	f.list = append(f.list, t)
	return &t, nil
}

type fakeVehicles struct {
	list      []contracts.Vehicle
	err       error
	createErr error
	created   []contracts.CreateVehicleDTO
}

func (f *fakeVehicles) List(ctx context.Context) ([]contracts.Vehicle, error) {
	return f.list, f.err
}

func (f *fakeVehicles) Create(ctx context.Context, dto contracts.CreateVehicleDTO) (*contracts.Vehicle, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, dto)
	v := contracts.Vehicle{ID: "v-new", Name: dto.Name, Weight: dto.Weight, Volume: dto.Volume}
	f.list = append(f.list, v)
	return &v, nil
}

type fakeMaterials struct {
	list       []contracts.Material
	categories []contracts.MaterialCategory
	err        error
	catErr     error
	createErr  error
	created    []contracts.CreateMaterialDTO
}

func (f *fakeMaterials) List(ctx context.Context) ([]contracts.Material, error) {
	return f.list, f.err
}

func (f *fakeMaterials) Categories(ctx context.Context) ([]contracts.MaterialCategory, error) {
	return f.categories, f.catErr
}

func (f *fakeMaterials) Create(ctx context.Context, dto contracts.CreateMaterialDTO) (*contracts.Material, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, dto)
	m := contracts.Material{ID: "m-new", Name: dto.Name, Category: contracts.IDRef(dto.Category), WeightPerUnit: dto.WeightPerUnit, VolumePerUnit: dto.VolumePerUnit}
	f.list = append(f.list, m)
	return &m, nil
}
