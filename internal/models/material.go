package models

import (
	"time"

	"gorm.io/gorm"
)

type MaterialCategory struct {
	ID        string `gorm:"primaryKey;size:36"`
	Name      string `gorm:"size:100;not null;unique"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *MaterialCategory) BeforeCreate(tx *gorm.DB) error {
	assignID(&c.ID)
	return nil
}

// Material: either linked to a MaterialCategory (CategoryID) or carrying an
// inline category name (CategoryName).
type Material struct {
	ID            string            `gorm:"primaryKey;size:36"`
	Name          string            `gorm:"size:150;not null;index"`
	Description   string            `gorm:"size:255"`
	CategoryID    *string           `gorm:"size:36;index"`
	Category      *MaterialCategory `gorm:"constraint:OnDelete:SET NULL"`
	CategoryName  string            `gorm:"size:100"`
	WeightPerUnit float64           `gorm:"not null"` // kg
	VolumePerUnit float64           `gorm:"not null"` // CFT
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (m *Material) BeforeCreate(tx *gorm.DB) error {
	assignID(&m.ID)
	return nil
}
