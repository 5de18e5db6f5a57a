package contracts

import "time"

// Transport is a transport provider (/transport-types).
type Transport struct {
	ID            string     `json:"_id,omitempty"`
	Name          string     `json:"name"`
	VehicleNumber string     `json:"vehicle_number"`
	Address       string     `json:"address"`
	EmailID       string     `json:"emailId"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

type CreateTransportDTO struct {
	Name          string `json:"name"`
	VehicleNumber string `json:"vehicle_number"`
	Address       string `json:"address"`
	EmailID       string `json:"emailId"`
}

type UpdateTransportDTO struct {
	Name          *string `json:"name,omitempty"`
	VehicleNumber *string `json:"vehicle_number,omitempty"`
	Address       *string `json:"address,omitempty"`
	EmailID       *string `json:"emailId,omitempty"`
}

// Vehicle is a vehicle type (/vechicle-types).
type Vehicle struct {
	ID        string     `json:"_id,omitempty"`
	Name      string     `json:"name"`
	Weight    float64    `json:"weight"`
	Volume    float64    `json:"volume"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type CreateVehicleDTO struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
	Volume float64 `json:"volume"`
}

type UpdateVehicleDTO struct {
	Name   *string  `json:"name,omitempty"`
	Weight *float64 `json:"weight,omitempty"`
	Volume *float64 `json:"volume,omitempty"`
}

type MaterialCategory struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

type CreateMaterialCategoryDTO struct {
	Name string `json:"name"`
}

type Material struct {
	ID            string     `json:"_id,omitempty"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Category      Ref        `json:"category"`
	WeightPerUnit float64    `json:"weightPerUnit"`
	VolumePerUnit float64    `json:"volumePerUnit"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

// CreateMaterialDTO.Category is a MaterialCategory id or an inline category
// name.
type CreateMaterialDTO struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	WeightPerUnit float64 `json:"weightPerUnit"`
	VolumePerUnit float64 `json:"volumePerUnit"`
}

type UpdateMaterialDTO struct {
	Name          *string  `json:"name,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Category      *string  `json:"category,omitempty"`
	WeightPerUnit *float64 `json:"weightPerUnit,omitempty"`
	VolumePerUnit *float64 `json:"volumePerUnit,omitempty"`
}
