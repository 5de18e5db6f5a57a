package models

import (
	"time"

	"gorm.io/gorm"
)

// TransportType: a transport provider (carrier)
type TransportType struct {
	ID            string `gorm:"primaryKey;size:36"`
	Name          string `gorm:"size:150;not null"`
	VehicleNumber string `gorm:"size:50"`
	Address       string `gorm:"size:255"`
	EmailID       string `gorm:"size:150"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (t *TransportType) BeforeCreate(tx *gorm.DB) error {
	assignID(&t.ID)
	return nil
}

// VehicleType: vehicle class with its capacity (kg, CFT)
type VehicleType struct {
	ID        string  `gorm:"primaryKey;size:36"`
	Name      string  `gorm:"size:150;not null"`
	Weight    float64 `gorm:"not null"`
	Volume    float64 `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (v *VehicleType) BeforeCreate(tx *gorm.DB) error {
	assignID(&v.ID)
	return nil
}
