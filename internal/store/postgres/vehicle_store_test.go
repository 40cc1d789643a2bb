package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GarageLog/garage-log-backend/internal/store"
	"github.com/GarageLog/garage-log-backend/types"
)

func vehicleRow(id string, now time.Time) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "tenant_id", "nickname", "make", "model", "year", "vin", "created_at", "updated_at",
	}).AddRow(id, testTenantID, "Daily", "Honda", "Civic", 2019, "1HGBH41JXMN109186", now, now)
}

func TestVehicleStore_CreateVehicle(t *testing.T) {
	mockPool := newMockPool(t)
	s := NewVehicleStore(mockPool)

	vehicle := &types.Vehicle{
		TenantID: testTenantID,
		Nickname: "Daily",
		Make:     "Honda",
		Model:    "Civic",
		Year:     2019,
		VIN:      "1HGBH41JXMN109186",
	}

	mockPool.ExpectQuery(`INSERT INTO vehicles`).
		WithArgs(vehicle.TenantID, vehicle.Nickname, vehicle.Make, vehicle.Model, vehicle.Year, vehicle.VIN).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("veh-123"))

	id, err := s.CreateVehicle(context.Background(), vehicle)

	require.NoError(t, err)
	assert.Equal(t, "veh-123", id)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestVehicleStore_GetVehicle(t *testing.T) {
	mockPool := newMockPool(t)
	s := NewVehicleStore(mockPool)
	now := time.Now().UTC()

	mockPool.ExpectQuery(`FROM vehicles`).
		WithArgs("veh-123", testTenantID).
		WillReturnRows(vehicleRow("veh-123", now))

	vehicle, err := s.GetVehicle(context.Background(), testTenantID, "veh-123")

	require.NoError(t, err)
	assert.Equal(t, "Daily", vehicle.Nickname)
	assert.Equal(t, 2019, vehicle.Year)
}

func TestVehicleStore_UpdateVehicle_PartialFields(t *testing.T) {
	mockPool := newMockPool(t)
	s := NewVehicleStore(mockPool)
	now := time.Now().UTC()

	nickname := "Weekend Car"
	mockPool.ExpectQuery(`UPDATE vehicles`).
		WithArgs("veh-123", testTenantID, nickname).
		WillReturnRows(vehicleRow("veh-123", now))

	_, err := s.UpdateVehicle(context.Background(), testTenantID, "veh-123", &types.UpdateVehicleRequest{
		Nickname: &nickname,
	})

	require.NoError(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestVehicleStore_DeleteVehicle_NotFound(t *testing.T) {
	mockPool := newMockPool(t)
	s := NewVehicleStore(mockPool)

	mockPool.ExpectExec(`UPDATE vehicles`).
		WithArgs("missing", testTenantID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.DeleteVehicle(context.Background(), testTenantID, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
