package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/GarageLog/garage-log-backend/types"
)

type MockVehicleStore struct {
	mock.Mock
}

func (m *MockVehicleStore) CreateVehicle(ctx context.Context, vehicle *types.Vehicle) (string, error) {
	args := m.Called(ctx, vehicle)
	return args.String(0), args.Error(1)
}

func (m *MockVehicleStore) GetVehicle(ctx context.Context, tenantID, id string) (*types.Vehicle, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Vehicle), args.Error(1)
}

func (m *MockVehicleStore) ListVehicles(ctx context.Context, tenantID string) ([]*types.Vehicle, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*types.Vehicle), args.Error(1)
}

func (m *MockVehicleStore) UpdateVehicle(ctx context.Context, tenantID, id string, update *types.UpdateVehicleRequest) (*types.Vehicle, error) {
	args := m.Called(ctx, tenantID, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Vehicle), args.Error(1)
}

func (m *MockVehicleStore) DeleteVehicle(ctx context.Context, tenantID, id string) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

type MockTimelineStore struct {
	mock.Mock
}

func (m *MockTimelineStore) CreateItem(ctx context.Context, item *types.TimelineItem) (string, error) {
	args := m.Called(ctx, item)
	return args.String(0), args.Error(1)
}

func (m *MockTimelineStore) GetItem(ctx context.Context, tenantID, vehicleID, id string) (*types.TimelineItem, error) {
	args := m.Called(ctx, tenantID, vehicleID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TimelineItem), args.Error(1)
}

func (m *MockTimelineStore) ListItems(ctx context.Context, tenantID, vehicleID string, limit, offset int) ([]*types.TimelineItem, int, error) {
	args := m.Called(ctx, tenantID, vehicleID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*types.TimelineItem), args.Int(1), args.Error(2)
}

func (m *MockTimelineStore) UpdateItem(ctx context.Context, tenantID, vehicleID, id string, update *types.UpdateTimelineItemRequest) (*types.TimelineItem, error) {
	args := m.Called(ctx, tenantID, vehicleID, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TimelineItem), args.Error(1)
}

func (m *MockTimelineStore) DeleteItem(ctx context.Context, tenantID, vehicleID, id string) error {
	args := m.Called(ctx, tenantID, vehicleID, id)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, vehicleID string, event types.ChangeEvent) error {
	args := m.Called(ctx, vehicleID, event)
	return args.Error(0)
}

type MockExtractionService struct {
	mock.Mock
}

func (m *MockExtractionService) Extract(ctx context.Context, userID string, req types.ExtractionRequest) (*types.ExtractionResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ExtractionResponse), args.Error(1)
}
