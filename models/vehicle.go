package models

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/GarageLog/garage-log-backend/errors"
	"github.com/GarageLog/garage-log-backend/internal/store"
	"github.com/GarageLog/garage-log-backend/logger"
	"github.com/GarageLog/garage-log-backend/types"
)

// VehicleModel owns vehicle business logic: validation, tenant scoping, and
// change notifications.
type VehicleModel struct {
	store     store.VehicleStore
	publisher types.EventPublisher
}

func NewVehicleModel(store store.VehicleStore, publisher types.EventPublisher) *VehicleModel {
	return &VehicleModel{
		store:     store,
		publisher: publisher,
	}
}

func (vm *VehicleModel) CreateVehicle(ctx context.Context, tenantID, userID string, req *types.CreateVehicleRequest) (*types.Vehicle, error) {
	log := logger.GetLogger()

	if strings.TrimSpace(req.Nickname) == "" {
		return nil, errors.ValidationFailed("invalid vehicle", "nickname is required")
	}

	vehicle := &types.Vehicle{
		TenantID: tenantID,
		Nickname: strings.TrimSpace(req.Nickname),
		Make:     req.Make,
		Model:    req.Model,
		Year:     req.Year,
		VIN:      strings.ToUpper(strings.TrimSpace(req.VIN)),
	}

	id, err := vm.store.CreateVehicle(ctx, vehicle)
	if err != nil {
		log.Errorw("Failed to create vehicle", "tenantId", tenantID, "error", err)
		return nil, errors.NewDatabaseError(err)
	}
	vehicle.ID = id

	publishChange(ctx, vm.publisher, types.EventVehicleCreated, vehicle.ID, userID, vehicle)
	return vehicle, nil
}

func (vm *VehicleModel) GetVehicle(ctx context.Context, tenantID, id string) (*types.Vehicle, error) {
	vehicle, err := vm.store.GetVehicle(ctx, tenantID, id)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("Vehicle", id)
		}
		return nil, errors.NewDatabaseError(err)
	}
	return vehicle, nil
}

func (vm *VehicleModel) ListVehicles(ctx context.Context, tenantID string) ([]*types.Vehicle, error) {
	vehicles, err := vm.store.ListVehicles(ctx, tenantID)
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}
	return vehicles, nil
}

func (vm *VehicleModel) UpdateVehicle(ctx context.Context, tenantID, userID, id string, update *types.UpdateVehicleRequest) (*types.Vehicle, error) {
	if update.Nickname != nil && strings.TrimSpace(*update.Nickname) == "" {
		return nil, errors.ValidationFailed("invalid vehicle update", "nickname cannot be empty")
	}

	vehicle, err := vm.store.UpdateVehicle(ctx, tenantID, id, update)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("Vehicle", id)
		}
		return nil, errors.NewDatabaseError(err)
	}

	publishChange(ctx, vm.publisher, types.EventVehicleUpdated, vehicle.ID, userID, vehicle)
	return vehicle, nil
}

func (vm *VehicleModel) DeleteVehicle(ctx context.Context, tenantID, userID, id string) error {
	if err := vm.store.DeleteVehicle(ctx, tenantID, id); err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return errors.NotFound("Vehicle", id)
		}
		return errors.NewDatabaseError(err)
	}

	publishChange(ctx, vm.publisher, types.EventVehicleDeleted, id, userID, nil)
	return nil
}
