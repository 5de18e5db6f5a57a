package dispatch

import (
	"fmt"

	"transport-console/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Totals of a shipment: sum of quantity x weightPerUnit, quantity x
// volumePerUnit and quantity over all material lines.
type Totals struct {
	Weight   decimal.Decimal
	Volume   decimal.Decimal
	Quantity decimal.Decimal
}

// ComputeTotals expects Material to be loaded on every line.
func ComputeTotals(lines []models.ShipmentMaterial) Totals {
	t := Totals{Weight: decimal.Zero, Volume: decimal.Zero, Quantity: decimal.Zero}
	for _, l := range lines {
		q := decimal.NewFromFloat(l.Quantity)
		t.Quantity = t.Quantity.Add(q)
		t.Weight = t.Weight.Add(q.Mul(decimal.NewFromFloat(l.Material.WeightPerUnit)))
		t.Volume = t.Volume.Add(q.Mul(decimal.NewFromFloat(l.Material.VolumePerUnit)))
	}
	return t
}

// recalculate stores fresh totals on shipment id from its material lines.
func recalculate(tx *gorm.DB, id string) error {
	var lines []models.ShipmentMaterial
	if err := tx.Preload("Material").Where("shipment_id = ?", id).Find(&lines).Error; err != nil {
		return fmt.Errorf("load material lines: %w", err)
	}
	t := ComputeTotals(lines)
	return tx.Model(&models.Shipment{}).Where("id = ?", id).Updates(map[string]any{
		"total_weight":   t.Weight.Round(3).InexactFloat64(),
		"total_volume":   t.Volume.Round(3).InexactFloat64(),
		"total_quantity": t.Quantity.Round(3).InexactFloat64(),
	}).Error
}
