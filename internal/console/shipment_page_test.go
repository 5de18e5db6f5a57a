package console

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transport-console/internal/api"
	"transport-console/internal/contracts"
	"transport-console/internal/idgen"
)

func newShipmentPage(calls *[]string) (*ShipmentPage, *fakeShipments) {
	ships := &fakeShipments{calls: calls}
	p := NewShipmentPage(ships,
		&fakeTransports{list: []contracts.Transport{{ID: "t1", Name: "Swift Carriers"}}},
		&fakeVehicles{list: []contracts.Vehicle{{ID: "v1", Name: "Cargo Van"}}},
		&fakeMaterials{list: []contracts.Material{{ID: "m1", Name: "Steel Bars"}}},
		&idgen.Sequence{NextOrder: 10, NextGroup: 90},
	)
	return p, ships
}

func TestShipmentPage_EmptySourcesNeverCallTheAPI(t *testing.T) {
	var calls []string
	p, ships := newShipmentPage(&calls)

	f := validForm()
	f.Sources = nil
	err := p.Create(context.Background(), f)

	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Empty(t, calls)
	assert.Empty(t, ships.created)
	assert.Equal(t, "Please add at least one source location", p.Alert)
	require.NotNil(t, p.Form, "form stays open")
}

func TestShipmentPage_NonFiniteQuantityNeverCallsTheAPI(t *testing.T) {
	for _, q := range []string{"NaN", "Inf", "+Inf", "-Inf"} {
		var calls []string
		p, ships := newShipmentPage(&calls)

		f := validForm()
		f.Materials = []MaterialEntry{{Material: "m1", Quantity: q}}
		err := p.Create(context.Background(), f)

		require.Error(t, err, q)
		assert.True(t, IsValidation(err), q)
		assert.Empty(t, calls, q)
		assert.Empty(t, ships.created, q)
		assert.Equal(t, "Please add at least one material with quantity", p.Alert)
	}
}

func TestShipmentPage_CreateRefetchesList(t *testing.T) {
	var calls []string
	p, ships := newShipmentPage(&calls)
	ships.list = []contracts.Shipment{{ID: "s1", GroupID: 91}}

	require.NoError(t, p.Create(context.Background(), validForm()))

	assert.Equal(t, []string{"create", "list"}, calls)
	require.Len(t, ships.created, 1)
	assert.Equal(t, []int64{11}, ships.created[0].OrderNumber)
	assert.Equal(t, int64(91), ships.created[0].GroupID)
	assert.Nil(t, p.Form)
	assert.Empty(t, p.Alert)
	assert.Len(t, p.Shipments, 1)
}

func TestShipmentPage_CreateFailureKeepsForm(t *testing.T) {
	p, ships := newShipmentPage(nil)
	ships.createErr = &api.Error{Method: "POST", Path: "/shipments", StatusCode: 500}

	err := p.Create(context.Background(), validForm())
	require.Error(t, err)
	assert.False(t, IsValidation(err))
	assert.Equal(t, AlertCreateShipmentFailed, p.Alert)
	require.NotNil(t, p.Form)
	assert.Equal(t, []string{"Warehouse A"}, p.Form.Sources)
}

func TestShipmentPage_LoadFailure(t *testing.T) {
	p, ships := newShipmentPage(nil)
	ships.listErr = &api.Error{StatusCode: 500}

	p.Load(context.Background())
	assert.Equal(t, "Failed to load shipments", p.LoadError)
	assert.Empty(t, p.RefError)
	assert.Len(t, p.Transports, 1)
}

func TestShipmentPage_TableResolvesNames(t *testing.T) {
	p, ships := newShipmentPage(nil)
	ships.list = []contracts.Shipment{{
		ID:            "s1",
		GroupID:       1003,
		TransportType: contracts.IDRef("t1"),
		VehicleType:   contracts.NamedRef("v9", "Flatbed"),
		TotalWeight:   12000,
		TotalVolume:   45.5,
		TotalQuantity: 30,
		Status:        contracts.StatusInTransit,
	}}
	p.Load(context.Background())

	v := p.Table()
	require.Len(t, v.Rows, 1)
	var got []string
	for _, c := range v.Rows[0].Cells {
		got = append(got, c.Text)
	}
	assert.Equal(t, []string{"1003", "Swift Carriers", "Flatbed", "12,000", "45.50", "30", "In-transit"}, got)
	assert.Equal(t, "s1", v.Rows[0].Key)
}

func TestShipmentPage_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects other extensions", func(t *testing.T) {
		p, ships := newShipmentPage(nil)
		_, err := p.Upload(ctx, "orders.csv", strings.NewReader(""), "t1", "v1")
		assert.True(t, IsValidation(err))
		assert.Equal(t, "Please upload an .xlsx or .xls file", p.Alert)
		assert.Empty(t, ships.uploads)
	})

	t.Run("requires types", func(t *testing.T) {
		p, ships := newShipmentPage(nil)
		_, err := p.Upload(ctx, "orders.xlsx", strings.NewReader(""), "", "v1")
		assert.True(t, IsValidation(err))
		assert.Empty(t, ships.uploads)
	})

	t.Run("reports result", func(t *testing.T) {
		var calls []string
		p, ships := newShipmentPage(&calls)
		ships.uploadRes = &contracts.UploadResult{Imported: 3, Skipped: []string{"row 4"}}

		res, err := p.Upload(ctx, "Orders.XLSX", strings.NewReader("x"), "t1", "v1")
		require.NoError(t, err)
		assert.Equal(t, 3, res.Imported)
		assert.Equal(t, "Imported 3 order(s), skipped 1 row(s)", p.Notice)
		assert.Equal(t, []string{"upload Orders.XLSX", "list"}, calls)
	})
}

func TestUploadAccepts(t *testing.T) {
	assert.True(t, UploadAccepts("a.xlsx"))
	assert.True(t, UploadAccepts("a.XLS"))
	assert.False(t, UploadAccepts("a.csv"))
	assert.False(t, UploadAccepts("xlsx"))
}
