package contracts

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusInTransit Status = "in-transit"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Statuses in the order the console offers them.
var Statuses = []Status{StatusPending, StatusInTransit, StatusCompleted, StatusCancelled}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown shipment status %q", s)
	}
	return st, nil
}

// LocationDetail is one pickup (sourceDetails) or drop (destinationDetails).
type LocationDetail struct {
	Location    string `json:"location"`
	OrderNumber int64  `json:"orderNumber"`
	Status      Status `json:"status"`
}

// MaterialLine is one material with its quantity inside an order.
type MaterialLine struct {
	Material    Ref     `json:"material"`
	Quantity    float64 `json:"quantity"`
	OrderNumber int64   `json:"orderNumber"`
}

type Shipment struct {
	ID                 string           `json:"_id,omitempty"`
	TransportType      Ref              `json:"transportType"`
	VehicleType        Ref              `json:"vehicleType"`
	TotalWeight        float64          `json:"totalWeight"`
	TotalVolume        float64          `json:"totalVolume"`
	TotalQuantity      float64          `json:"totalQuantity"`
	GroupID            int64            `json:"groupId"`
	Status             Status           `json:"status"`
	SourceDetails      []LocationDetail `json:"sourceDetails"`
	DestinationDetails []LocationDetail `json:"destinationDetails"`
	Materials          []MaterialLine   `json:"materials,omitempty"`
	CreatedAt          *time.Time       `json:"createdAt,omitempty"`
	UpdatedAt          *time.Time       `json:"updatedAt,omitempty"`
}

type MaterialQuantity struct {
	Material string  `json:"material"`
	Quantity float64 `json:"quantity"`
}

// CreateShipmentDTO is the payload of POST /shipments. Source i and
// destination i belong to OrderNumber[i].
type CreateShipmentDTO struct {
	Source        []string           `json:"source"`
	Destination   []string           `json:"destination"`
	TransportType string             `json:"transportType"`
	VehicleType   string             `json:"vehicleType"`
	Materials     []MaterialQuantity `json:"materials"`
	OrderNumber   []int64            `json:"orderNumber"`
	GroupID       int64              `json:"groupId"`
}

type NewLocation struct {
	Location    string `json:"location"`
	OrderNumber int64  `json:"orderNumber"`
}

type NewMaterialLine struct {
	Material    string  `json:"material"`
	Quantity    float64 `json:"quantity"`
	OrderNumber int64   `json:"orderNumber"`
}

// UpdateShipmentDTO is the payload of PUT/PATCH /shipments/:id. Nil fields
// keep their current value; the lists are appended, never replaced.
type UpdateShipmentDTO struct {
	TransportType      *string           `json:"transportType,omitempty"`
	VehicleType        *string           `json:"vehicleType,omitempty"`
	GroupID            *int64            `json:"groupId,omitempty"`
	Status             *Status           `json:"status,omitempty"`
	SourceDetails      []NewLocation     `json:"sourceDetails,omitempty"`
	DestinationDetails []NewLocation     `json:"destinationDetails,omitempty"`
	Materials          []NewMaterialLine `json:"materials,omitempty"`
}

func (d UpdateShipmentDTO) IsEmpty() bool {
	return d.TransportType == nil && d.VehicleType == nil && d.GroupID == nil && d.Status == nil &&
		len(d.SourceDetails) == 0 && len(d.DestinationDetails) == 0 && len(d.Materials) == 0
}

type OrderMaterial struct {
	Material Ref     `json:"material"`
	Quantity float64 `json:"quantity"`
}

// Order is derived by the API from the lines sharing one orderNumber.
type Order struct {
	OrderNumber int64           `json:"orderNumber"`
	Pickups     []string        `json:"pickups"`
	Drops       []string        `json:"drops"`
	Materials   []OrderMaterial `json:"materials"`
}

// ShipmentSummary is the body of GET /shipments/status-summary/:id.
type ShipmentSummary struct {
	ID            string  `json:"_id"`
	TransportType Ref     `json:"transportType"`
	VehicleType   Ref     `json:"vehicleType"`
	TotalWeight   float64 `json:"totalWeight"`
	TotalVolume   float64 `json:"totalVolume"`
	TotalQuantity float64 `json:"totalQuantity"`
	GroupID       int64   `json:"groupId"`
	Status        Status  `json:"status"`
	Orders        []Order `json:"orders"`
}

// UploadResult is the body returned by POST /shipments/upload.
type UploadResult struct {
	Shipment Shipment `json:"shipment"`
	Imported int      `json:"imported"`
	Skipped  []string `json:"skipped"`
}

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error string `json:"error"`
}
