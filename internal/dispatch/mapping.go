package dispatch

import (
	"transport-console/internal/contracts"
	"transport-console/internal/models"
)

func ref(id, name string, loaded bool) contracts.Ref {
	if loaded {
		return contracts.NamedRef(id, name)
	}
	return contracts.IDRef(id)
}

// ToShipment renders s; references are embedded when their rows were
// preloaded.
func ToShipment(s models.Shipment) contracts.Shipment {
	created, updated := s.CreatedAt, s.UpdatedAt
	out := contracts.Shipment{
		ID:                 s.ID,
		TransportType:      ref(s.TransportTypeID, s.TransportType.Name, s.TransportType.ID != ""),
		VehicleType:        ref(s.VehicleTypeID, s.VehicleType.Name, s.VehicleType.ID != ""),
		TotalWeight:        s.TotalWeight,
		TotalVolume:        s.TotalVolume,
		TotalQuantity:      s.TotalQuantity,
		GroupID:            s.GroupID,
		Status:             contracts.Status(s.Status),
		SourceDetails:      []contracts.LocationDetail{},
		DestinationDetails: []contracts.LocationDetail{},
		Materials:          []contracts.MaterialLine{},
		CreatedAt:          &created,
		UpdatedAt:          &updated,
	}

	for _, l := range s.Locations {
		d := contracts.LocationDetail{Location: l.Location, OrderNumber: l.OrderNumber, Status: contracts.Status(l.Status)}
		if l.Kind == models.LocationSource {
			out.SourceDetails = append(out.SourceDetails, d)
		} else {
			out.DestinationDetails = append(out.DestinationDetails, d)
		}
	}
	for _, m := range s.Materials {
		out.Materials = append(out.Materials, contracts.MaterialLine{
			Material:    ref(m.MaterialID, m.Material.Name, m.Material.ID != ""),
			Quantity:    m.Quantity,
			OrderNumber: m.OrderNumber,
		})
	}
	return out
}

// BuildOrders groups the lines of s by order number, in the order each
// number first appears.
func BuildOrders(s models.Shipment) []contracts.Order {
	orders := []contracts.Order{}
	index := map[int64]int{}
	order := func(n int64) *contracts.Order {
		i, ok := index[n]
		if !ok {
			i = len(orders)
			index[n] = i
			orders = append(orders, contracts.Order{
				OrderNumber: n,
				Pickups:     []string{},
				Drops:       []string{},
				Materials:   []contracts.OrderMaterial{},
			})
		}
		return &orders[i]
	}

	for _, l := range s.Locations {
		o := order(l.OrderNumber)
		if l.Kind == models.LocationSource {
			o.Pickups = append(o.Pickups, l.Location)
		} else {
			o.Drops = append(o.Drops, l.Location)
		}
	}
	for _, m := range s.Materials {
		o := order(m.OrderNumber)
		o.Materials = append(o.Materials, contracts.OrderMaterial{
			Material: ref(m.MaterialID, m.Material.Name, m.Material.ID != ""),
			Quantity: m.Quantity,
		})
	}
	return orders
}

func ToSummary(s models.Shipment) contracts.ShipmentSummary {
	sh := ToShipment(s)
	return contracts.ShipmentSummary{
		ID:            sh.ID,
		TransportType: sh.TransportType,
		VehicleType:   sh.VehicleType,
		TotalWeight:   sh.TotalWeight,
		TotalVolume:   sh.TotalVolume,
		TotalQuantity: sh.TotalQuantity,
		GroupID:       sh.GroupID,
		Status:        sh.Status,
		Orders:        BuildOrders(s),
	}
}
