package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transport-console/internal/audit"
	"transport-console/internal/auth"
	"transport-console/internal/config"
	"transport-console/internal/contracts"
	"transport-console/internal/database"
	"transport-console/internal/idgen"
)

const secret = "0123456789abcdef0123456789abcdef"

func newApp(t *testing.T, cfg *config.Config) *fiber.App {
	t.Helper()
	db, err := database.Open("sqlite", database.MemoryDSN(uuid.NewString()))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db
	if cfg.CORSOrigins == "" {
		cfg.CORSOrigins = "http://localhost:5173"
	}
	return New(cfg, nil, &idgen.Sequence{NextOrder: 10, NextGroup: 20})
}

func call(t *testing.T, app *fiber.App, method, url, token string, body, out any) int {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, url, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestHealthIsPublic(t *testing.T) {
	app := newApp(t, &config.Config{JWTSecret: secret})
	var body map[string]string
	assert.Equal(t, fiber.StatusOK, call(t, app, "GET", "/health", "", nil, &body))
	assert.Equal(t, "ok", body["status"])
}

func TestErrorsRenderAsJSON(t *testing.T) {
	app := newApp(t, &config.Config{JWTSecret: secret})

	var e contracts.ErrorResponse
	assert.Equal(t, fiber.StatusUnauthorized, call(t, app, "GET", "/shipments", "", nil, &e))
	assert.Equal(t, "Authorization header missing", e.Error)

	token, err := auth.GenerateToken(secret, "console", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, call(t, app, "GET", "/shipments/nope", token, nil, &e))
	assert.Equal(t, "Shipment not found", e.Error)
}

func TestEndToEnd(t *testing.T) {
	app := newApp(t, &config.Config{JWTSecret: secret})
	token, err := auth.GenerateToken(secret, "console", time.Hour)
	require.NoError(t, err)

	var tr contracts.Transport
	require.Equal(t, fiber.StatusCreated, call(t, app, "POST", "/transport-types", token,
		contracts.CreateTransportDTO{Name: "Swift Carriers", VehicleNumber: "KA-01-1234", Address: "12 Dock Rd", EmailID: "ops@swift.example"}, &tr))

	var v contracts.Vehicle
	require.Equal(t, fiber.StatusCreated, call(t, app, "POST", "/vechicle-types", token,
		contracts.CreateVehicleDTO{Name: "Truck", Weight: 8500, Volume: 1200}, &v))

	var m contracts.Material
	require.Equal(t, fiber.StatusCreated, call(t, app, "POST", "/materials", token,
		contracts.CreateMaterialDTO{Name: "Steel Bars", Category: "Metals", WeightPerUnit: 25, VolumePerUnit: 0.05}, &m))

	var s contracts.Shipment
	require.Equal(t, fiber.StatusCreated, call(t, app, "POST", "/shipments", token, contracts.CreateShipmentDTO{
		Source:        []string{"Warehouse A"},
		Destination:   []string{"Site B"},
		TransportType: tr.ID,
		VehicleType:   v.ID,
		Materials:     []contracts.MaterialQuantity{{Material: m.ID, Quantity: 4}},
	}, &s))
	assert.Equal(t, int64(21), s.GroupID)
	assert.Equal(t, 100.0, s.TotalWeight)

	var sum contracts.ShipmentSummary
	require.Equal(t, fiber.StatusOK, call(t, app, "GET", "/shipments/status-summary/"+s.ID, token, nil, &sum))
	require.Len(t, sum.Orders, 1)
	assert.Equal(t, int64(11), sum.Orders[0].OrderNumber)

	completed := contracts.StatusCompleted
	require.Equal(t, fiber.StatusOK, call(t, app, "PATCH", "/shipments/"+s.ID, token, contracts.UpdateShipmentDTO{Status: &completed}, &s))
	assert.Equal(t, contracts.StatusCompleted, s.Status)

	var e contracts.ErrorResponse
	assert.Equal(t, fiber.StatusConflict, call(t, app, "DELETE", "/materials/"+m.ID, token, nil, &e))

	var logs []audit.AuditLogResponse
	require.Equal(t, fiber.StatusOK, call(t, app, "GET", "/audit-logs?entity_type=shipment", token, nil, &logs))
	require.Len(t, logs, 2)
	assert.Equal(t, "console", logs[0].Actor)
	assert.True(t, strings.HasPrefix(logs[1].Description, "Shipment added"))
}

func TestWithoutSecretRequestsPass(t *testing.T) {
	app := newApp(t, &config.Config{})
	var list []contracts.Shipment
	assert.Equal(t, fiber.StatusOK, call(t, app, "GET", "/shipments", "", nil, &list))
	assert.Empty(t, list)
}
