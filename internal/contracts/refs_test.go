package contracts

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRef_DecodesBareStringAndObject(t *testing.T) {
	var s Shipment
	body := `{"_id":"s1","transportType":"t-1","vehicleType":{"_id":"v-1","name":"Cargo Van"},"groupId":7,"status":"pending"}`
	require.NoError(t, json.Unmarshal([]byte(body), &s))

	assert.Equal(t, "t-1", s.TransportType.Label())
	assert.False(t, s.TransportType.Embedded)
	assert.Equal(t, "Cargo Van", s.VehicleType.Label())
	assert.Equal(t, "v-1", s.VehicleType.ID)
}

func TestRef_NullIsZero(t *testing.T) {
	var m Material
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Steel","category":null}`), &m))
	assert.True(t, m.Category.IsZero())
}

func TestRef_RejectsNumbers(t *testing.T) {
	var r Ref
	assert.Error(t, json.Unmarshal([]byte(`42`), &r))
}

func TestRef_EncodesInTheFormItWasBuilt(t *testing.T) {
	b, err := json.Marshal(IDRef("Raw Material"))
	require.NoError(t, err)
	assert.JSONEq(t, `"Raw Material"`, string(b))

	b, err = json.Marshal(NamedRef("c1", "Construction"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"_id":"c1","name":"Construction"}`, string(b))
}

func TestUpdateShipmentDTO_OmitsUnsetFields(t *testing.T) {
	vt := "v-2"
	b, err := json.Marshal(UpdateShipmentDTO{VehicleType: &vt})
	require.NoError(t, err)
	assert.JSONEq(t, `{"vehicleType":"v-2"}`, string(b))
	assert.True(t, UpdateShipmentDTO{}.IsEmpty())
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("in-transit")
	require.NoError(t, err)
	assert.Equal(t, StatusInTransit, st)

	_, err = ParseStatus("lost")
	assert.Error(t, err)
}
