package table

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type vehicle struct {
	ID     string  `json:"_id"`
	Name   string  `json:"name"`
	Volume float64 `json:"volume"`
	Owner  *string `json:"owner"`
}

func vehicleColumns() []Column[vehicle] {
	return []Column[vehicle]{
		KeyColumn[vehicle]("Vehicle Name", "name"),
		KeyColumn[vehicle]("ID", "ID"),
		FuncColumn("Loud", func(v vehicle) string { return strings.ToUpper(v.Name) }),
	}
}

func TestView_EmptyDataRendersOnePlaceholderRow(t *testing.T) {
	v := New[vehicle](nil, vehicleColumns()...).View()

	assert.True(t, v.Empty)
	assert.Equal(t, []string{"Vehicle Name", "ID", "Loud"}, v.Headers)
	require.Len(t, v.Rows, 1)
	require.Len(t, v.Rows[0].Cells, 1)
	assert.Equal(t, Placeholder, v.Rows[0].Cells[0].Text)
	assert.Equal(t, 3, v.Span)
}

func TestView_OneRowPerItem(t *testing.T) {
	for _, n := range []int{1, 2, 7} {
		data := make([]vehicle, n)
		for i := range data {
			data[i] = vehicle{ID: "v", Name: "van"}
		}
		v := New(data, vehicleColumns()...).View()
		assert.False(t, v.Empty)
		assert.Len(t, v.Rows, n)
		for _, r := range v.Rows {
			assert.Len(t, r.Cells, 3)
		}
	}
}

func TestView_KeyAndAccessorColumns(t *testing.T) {
	owner := "fleet"
	data := []vehicle{{ID: "v1", Name: "Cargo Van", Volume: 120, Owner: &owner}, {ID: "v2", Name: "Truck"}}
	cols := append(vehicleColumns(),
		KeyColumn[vehicle]("Volume", "volume"),
		KeyColumn[vehicle]("Owner", "owner"),
		KeyColumn[vehicle]("Missing", "nope"),
	)

	v := New(data, cols...).View()

	first := v.Rows[0].Cells
	assert.Equal(t, "Cargo Van", first[0].Text)
	assert.Equal(t, "v1", first[1].Text)
	assert.Equal(t, "CARGO VAN", first[2].Text)
	assert.Equal(t, "120", first[3].Text)
	assert.Equal(t, "fleet", first[4].Text)
	assert.Equal(t, "", first[5].Text)
	assert.Equal(t, "", v.Rows[1].Cells[4].Text, "nil pointer renders empty")
}

func TestView_DoesNotMutateInput(t *testing.T) {
	data := []vehicle{{ID: "v1", Name: "van"}}
	before := append([]vehicle(nil), data...)
	_ = New(data, vehicleColumns()...).View()
	assert.Equal(t, before, data)
}

func TestView_MapRows(t *testing.T) {
	rows := []map[string]any{{"name": "Steel"}}
	v := New(rows, KeyColumn[map[string]any]("Name", "name")).View()
	assert.Equal(t, "Steel", v.Rows[0].Cells[0].Text)
}

func TestView_Hover(t *testing.T) {
	col := FuncColumn("Materials", func(v vehicle) string { return v.Name })
	col.Hover = func(v vehicle) []string { return []string{"a", "b"} }
	v := New([]vehicle{{Name: "x"}}, col).View()
	assert.Equal(t, []string{"a", "b"}, v.Rows[0].Cells[0].Hover)
}

func TestView_RowKey(t *testing.T) {
	data := []vehicle{{ID: "v1", Name: "van"}, {ID: "v2", Name: "truck"}}
	v := New(data, vehicleColumns()...).WithKey(func(v vehicle) string { return v.ID }).View()
	assert.Equal(t, "v1", v.Rows[0].Key)
	assert.Equal(t, "v2", v.Rows[1].Key)

	empty := New[vehicle](nil, vehicleColumns()...).WithKey(func(v vehicle) string { return v.ID }).View()
	assert.Equal(t, "", empty.Rows[0].Key)
}
