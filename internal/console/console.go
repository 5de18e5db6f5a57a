// Package console holds the state of each console page and the workflows
// behind its forms. Pages are built per request: they fetch what they show,
// validate what the operator typed and call the REST services.
package console

import (
	"context"
	"io"
	"math"
	"strconv"
	"strings"

	"transport-console/internal/contracts"
)

// User-facing alert texts.
const (
	AlertCreateTransportFailed = "Failed to create transport. Please try again."
	AlertCreateVehicleFailed   = "Failed to create vehicle. Please try again."
	AlertCreateMaterialFailed  = "Failed to create material. Please try again."
	AlertCreateShipmentFailed  = "Failed to create shipment. Please try again."
	AlertUpdateShipmentFailed  = "Failed to update shipment. Please try again."
	AlertUploadFailed          = "Failed to upload file. Please try again."
	AlertSummaryFailed         = "Failed to load shipment details"
)

// ValidationError is a form problem detected before any network call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) error { return &ValidationError{Message: msg} }

type TransportLister interface {
	List(ctx context.Context) ([]contracts.Transport, error)
}

type TransportAPI interface {
	TransportLister
	Create(ctx context.Context, dto contracts.CreateTransportDTO) (*contracts.Transport, error)
}

type VehicleLister interface {
	List(ctx context.Context) ([]contracts.Vehicle, error)
}

type VehicleAPI interface {
	VehicleLister
	Create(ctx context.Context, dto contracts.CreateVehicleDTO) (*contracts.Vehicle, error)
}

type MaterialLister interface {
	List(ctx context.Context) ([]contracts.Material, error)
}

type MaterialAPI interface {
	MaterialLister
	Categories(ctx context.Context) ([]contracts.MaterialCategory, error)
	Create(ctx context.Context, dto contracts.CreateMaterialDTO) (*contracts.Material, error)
}

type ShipmentAPI interface {
	List(ctx context.Context) ([]contracts.Shipment, error)
	Summary(ctx context.Context, id string) (*contracts.ShipmentSummary, error)
	Create(ctx context.Context, dto contracts.CreateShipmentDTO) (*contracts.Shipment, error)
	Update(ctx context.Context, id string, dto contracts.UpdateShipmentDTO) (*contracts.Shipment, error)
	Upload(ctx context.Context, filename string, contents io.Reader, transportType, vehicleType string) (*contracts.UploadResult, error)
}

// parsePositive reads a user-typed number; ok is false for blanks, garbage
// non-finite values and values <= 0.
func parsePositive(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return v, true
}
