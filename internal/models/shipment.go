package models

import (
	"time"

	"gorm.io/gorm"
)

type ShipmentStatus string

const (
	ShipmentPending   ShipmentStatus = "pending"
	ShipmentInTransit ShipmentStatus = "in-transit"
	ShipmentCompleted ShipmentStatus = "completed"
	ShipmentCancelled ShipmentStatus = "cancelled"
)

type LocationKind string

const (
	LocationSource      LocationKind = "source"
	LocationDestination LocationKind = "destination"
)

// Shipment: one creation transaction (GroupID) grouping one or more orders.
// Totals are recomputed from Materials after every write.
type Shipment struct {
	ID              string `gorm:"primaryKey;size:36"`
	TransportTypeID string `gorm:"size:36;index;not null"`
	TransportType   TransportType
	VehicleTypeID   string `gorm:"size:36;index;not null"`
	VehicleType     VehicleType
	TotalWeight     float64
	TotalVolume     float64
	TotalQuantity   float64
	GroupID         int64          `gorm:"index;not null"`
	Status          ShipmentStatus `gorm:"size:20;default:pending"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Locations []ShipmentLocation `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
	Materials []ShipmentMaterial `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
}

func (s *Shipment) BeforeCreate(tx *gorm.DB) error {
	assignID(&s.ID)
	return nil
}

// ShipmentLocation: a pickup (source) or drop (destination) of one order.
// Position keeps the insertion order.
type ShipmentLocation struct {
	ID          uint           `gorm:"primaryKey"`
	ShipmentID  string         `gorm:"size:36;index;not null"`
	Kind        LocationKind   `gorm:"size:20;not null"`
	Location    string         `gorm:"size:255;not null"`
	OrderNumber int64          `gorm:"index;not null"`
	Status      ShipmentStatus `gorm:"size:20;default:pending"`
	Position    int
	CreatedAt   time.Time
}

// ShipmentMaterial: a material line of one order
type ShipmentMaterial struct {
	ID          uint    `gorm:"primaryKey"`
	ShipmentID  string  `gorm:"size:36;index;not null"`
	MaterialID  string  `gorm:"size:36;index;not null"`
	Material    Material
	Quantity    float64 `gorm:"not null"`
	OrderNumber int64   `gorm:"index;not null"`
	Position    int
	CreatedAt   time.Time
}
