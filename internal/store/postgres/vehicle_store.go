package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/GarageLog/garage-log-backend/internal/store"
	"github.com/GarageLog/garage-log-backend/types"
	"github.com/jackc/pgx/v5"
)

// VehicleStore implements store.VehicleStore using PostgreSQL.
type VehicleStore struct {
	pool DBPool
}

var _ store.VehicleStore = (*VehicleStore)(nil)

// NewVehicleStore creates a new VehicleStore instance.
func NewVehicleStore(pool DBPool) *VehicleStore {
	return &VehicleStore{pool: pool}
}

const vehicleColumns = `id, tenant_id, nickname, make, model, year, vin, created_at, updated_at`

// CreateVehicle inserts a new vehicle and returns its generated ID.
func (s *VehicleStore) CreateVehicle(ctx context.Context, vehicle *types.Vehicle) (string, error) {
	query := `
		INSERT INTO vehicles (tenant_id, nickname, make, model, year, vin)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	var id string
	err := s.pool.QueryRow(ctx, query,
		vehicle.TenantID,
		vehicle.Nickname,
		vehicle.Make,
		vehicle.Model,
		vehicle.Year,
		vehicle.VIN,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to insert vehicle: %w", err)
	}
	return id, nil
}

// GetVehicle retrieves a vehicle by tenant+id.
func (s *VehicleStore) GetVehicle(ctx context.Context, tenantID, id string) (*types.Vehicle, error) {
	query := `
		SELECT ` + vehicleColumns + `
		FROM vehicles
		WHERE id = $1 AND tenant_id = $2 AND deleted_at IS NULL`

	vehicle, err := scanVehicle(s.pool.QueryRow(ctx, query, id, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return vehicle, nil
}

// ListVehicles retrieves all vehicles for a tenant.
func (s *VehicleStore) ListVehicles(ctx context.Context, tenantID string) ([]*types.Vehicle, error) {
	query := `
		SELECT ` + vehicleColumns + `
		FROM vehicles
		WHERE tenant_id = $1 AND deleted_at IS NULL
		ORDER BY created_at ASC`

	rows, err := s.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []*types.Vehicle
	for rows.Next() {
		v := &types.Vehicle{}
		err := rows.Scan(
			&v.ID,
			&v.TenantID,
			&v.Nickname,
			&v.Make,
			&v.Model,
			&v.Year,
			&v.VIN,
			&v.CreatedAt,
			&v.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return vehicles, nil
}

// UpdateVehicle applies a partial update and returns the updated row.
func (s *VehicleStore) UpdateVehicle(ctx context.Context, tenantID, id string, update *types.UpdateVehicleRequest) (*types.Vehicle, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []any{id, tenantID}

	addClause := func(column string, value any) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Nickname != nil {
		addClause("nickname", *update.Nickname)
	}
	if update.Make != nil {
		addClause("make", *update.Make)
	}
	if update.Model != nil {
		addClause("model", *update.Model)
	}
	if update.Year != nil {
		addClause("year", *update.Year)
	}
	if update.VIN != nil {
		addClause("vin", *update.VIN)
	}

	query := fmt.Sprintf(`
		UPDATE vehicles
		SET %s
		WHERE id = $1 AND tenant_id = $2 AND deleted_at IS NULL
		RETURNING %s`, strings.Join(setClauses, ", "), vehicleColumns)

	vehicle, err := scanVehicle(s.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return vehicle, nil
}

// DeleteVehicle soft-deletes a vehicle.
func (s *VehicleStore) DeleteVehicle(ctx context.Context, tenantID, id string) error {
	query := `
		UPDATE vehicles
		SET deleted_at = NOW()
		WHERE id = $1 AND tenant_id = $2 AND deleted_at IS NULL`

	tag, err := s.pool.Exec(ctx, query, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func scanVehicle(row pgx.Row) (*types.Vehicle, error) {
	v := &types.Vehicle{}
	err := row.Scan(
		&v.ID,
		&v.TenantID,
		&v.Nickname,
		&v.Make,
		&v.Model,
		&v.Year,
		&v.VIN,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return v, nil
}
