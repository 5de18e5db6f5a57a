package database

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transport-console/internal/models"
)

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open("mysql", "x")
	assert.ErrorContains(t, err, `unknown database driver "mysql"`)
}

func TestMigrate_CreatesTablesAndAssignsIDs(t *testing.T) {
	db, err := Open("sqlite", MemoryDSN(uuid.NewString()))
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db), "migrations are repeatable")

	for _, table := range []string{"transport_types", "vehicle_types", "material_categories", "materials", "shipments", "shipment_locations", "shipment_materials", "audit_logs"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	v := models.VehicleType{Name: "Cargo Van", Weight: 1500, Volume: 300}
	require.NoError(t, db.Create(&v).Error)
	_, err = uuid.Parse(v.ID)
	assert.NoError(t, err)

	fixed := models.VehicleType{ID: "given", Name: "Truck", Weight: 8500, Volume: 1200}
	require.NoError(t, db.Create(&fixed).Error)
	assert.Equal(t, "given", fixed.ID)
}
