package console

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transport-console/internal/api"
	"transport-console/internal/contracts"
)

func openDetail(t *testing.T, calls *[]string) (*ShipmentDetail, *fakeShipments) {
	t.Helper()
	p, ships := newShipmentPage(calls)
	ships.list = []contracts.Shipment{{
		ID:            "s1",
		TransportType: contracts.NamedRef("t1", "Swift Carriers"),
		VehicleType:   contracts.IDRef("v1"),
		GroupID:       1003,
		Status:        contracts.StatusPending,
		TotalWeight:   100,
		TotalVolume:   2,
		TotalQuantity: 4,
	}}
	ships.summary = &contracts.ShipmentSummary{
		ID:            "s1",
		TotalWeight:   250,
		TotalVolume:   5,
		TotalQuantity: 10,
		Orders: []contracts.Order{{
			OrderNumber: 7,
			Pickups:     []string{"Warehouse A", "Yard C"},
			Drops:       []string{"Site B"},
			Materials: []contracts.OrderMaterial{
				{Material: contracts.IDRef("m1"), Quantity: 4},
				{Material: contracts.NamedRef("m2", "Cement"), Quantity: 3},
				{Material: contracts.NamedRef("m3", "Sand"), Quantity: 2},
				{Material: contracts.NamedRef("m4", "Gravel"), Quantity: 1},
			},
		}},
	}
	p.Load(context.Background())
	d, err := p.Open(context.Background(), "s1")
	require.NoError(t, err)
	if calls != nil {
		*calls = nil
	}
	return d, ships
}

func TestShipmentPage_OpenUnknown(t *testing.T) {
	p, _ := newShipmentPage(nil)
	_, err := p.Open(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrShipmentNotFound)
}

func TestShipmentDetail_TotalsFallBackToList(t *testing.T) {
	d, _ := openDetail(t, nil)
	assert.Equal(t, Totals{Weight: 250, Volume: 5, Quantity: 10}, d.Totals())

	d.Summary = nil
	assert.Equal(t, Totals{Weight: 100, Volume: 2, Quantity: 4}, d.Totals())
	assert.Nil(t, d.Rows())
}

func TestShipmentDetail_SummaryFailure(t *testing.T) {
	p, ships := newShipmentPage(nil)
	ships.list = []contracts.Shipment{{ID: "s1", TotalWeight: 1}}
	ships.sumErr = &api.Error{StatusCode: 404}
	p.LoadList(context.Background())

	d, err := p.Open(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, AlertSummaryFailed, d.SummaryError)
	assert.Equal(t, 1.0, d.Totals().Weight)
}

func TestShipmentDetail_RowsOverflow(t *testing.T) {
	d, _ := openDetail(t, nil)

	rows := d.Rows()
	require.Len(t, rows, 1)
	r := rows[0]
	assert.Equal(t, "Warehouse A, Yard C", r.Source)
	assert.Equal(t, "Site B", r.Destination)
	assert.Equal(t, []string{"Steel Bars (4)", "Cement (3)"}, r.Materials)
	assert.Equal(t, []string{"Sand (2)", "Gravel (1)"}, r.Overflow)
	assert.Equal(t, 10.0, r.Quantity)

	v := d.OrdersTable()
	cells := v.Rows[0].Cells
	assert.Equal(t, "7", cells[2].Text)
	assert.Equal(t, "Steel Bars (4), Cement (3) +2 more", cells[3].Text)
	assert.Equal(t, r.Overflow, cells[3].Hover)
}

func TestEditSession_Payload(t *testing.T) {
	d, _ := openDetail(t, nil)
	s := d.StartEdit()
	assert.Equal(t, Snapshot{TransportType: "t1", VehicleType: "v1", GroupID: 1003, Status: contracts.StatusPending}, s.Current)
	assert.Equal(t, int64(11), s.OrderNumber)

	_, err := s.Payload()
	assert.EqualError(t, err, "Nothing to update")

	status := contracts.StatusInTransit
	s.Status = &status
	s.Pickups = []string{"Dock 4", ""}
	s.Materials = []MaterialEntry{{Material: "m2", Quantity: "5"}, {Material: "m3"}}

	dto, err := s.Payload()
	require.NoError(t, err)
	assert.Nil(t, dto.TransportType)
	assert.Nil(t, dto.GroupID)
	assert.Equal(t, &status, dto.Status)
	assert.Equal(t, []contracts.NewLocation{{Location: "Dock 4", OrderNumber: 11}}, dto.SourceDetails)
	assert.Empty(t, dto.DestinationDetails)
	assert.Equal(t, []contracts.NewMaterialLine{{Material: "m2", Quantity: 5, OrderNumber: 11}}, dto.Materials)
}

func TestEditSession_BlankSelectionIsUnset(t *testing.T) {
	blank := " "
	s := &EditSession{TransportType: &blank}
	_, err := s.Payload()
	assert.EqualError(t, err, "Nothing to update")
}

func TestEditSession_DropsNonFiniteQuantities(t *testing.T) {
	s := &EditSession{OrderNumber: 3, Materials: []MaterialEntry{{Material: "m1", Quantity: "NaN"}, {Material: "m2", Quantity: "Inf"}}}
	_, err := s.Payload()
	assert.EqualError(t, err, "Nothing to update")
}

func TestEditSession_InvalidStatus(t *testing.T) {
	bad := contracts.Status("lost")
	s := &EditSession{Status: &bad}
	_, err := s.Payload()
	assert.True(t, IsValidation(err))
}

func TestShipmentDetail_SaveOrdering(t *testing.T) {
	var calls []string
	d, ships := openDetail(t, &calls)
	s := d.StartEdit()
	s.Drops = []string{"Site Z"}

	ships.list[0].TotalWeight = 999
	require.NoError(t, d.Save(context.Background(), s))

	assert.Equal(t, []string{"update s1", "list", "summary s1"}, calls)
	assert.Nil(t, d.Edit)
	assert.Empty(t, d.Alert)
	assert.Equal(t, 999.0, d.Shipment.TotalWeight)
	require.Len(t, ships.updated, 1)
	assert.Equal(t, []contracts.NewLocation{{Location: "Site Z", OrderNumber: s.OrderNumber}}, ships.updated[0].DestinationDetails)
}

func TestShipmentDetail_SaveFailureKeepsSession(t *testing.T) {
	var calls []string
	d, ships := openDetail(t, &calls)
	ships.updateErr = &api.Error{StatusCode: 500}
	s := d.StartEdit()
	s.Pickups = []string{"Dock 1"}

	err := d.Save(context.Background(), s)
	require.Error(t, err)
	assert.Equal(t, AlertUpdateShipmentFailed, d.Alert)
	assert.Same(t, s, d.Edit)
	assert.Equal(t, []string{"update s1"}, calls)
}

func TestShipmentDetail_CancelEdit(t *testing.T) {
	d, _ := openDetail(t, nil)
	d.StartEdit()
	d.CancelEdit()
	assert.Nil(t, d.Edit)
}

func TestShipmentDetail_ResumeKeepsOrderNumber(t *testing.T) {
	d, _ := openDetail(t, nil)
	s := d.Resume(4242)
	assert.Equal(t, int64(4242), s.OrderNumber)
	assert.Equal(t, int64(1003), s.Current.GroupID)
	assert.Empty(t, s.Pickups)
	assert.Nil(t, d.Edit)
}
