package models

import (
	"context"
	"testing"
	"time"

	apperrors "github.com/GarageLog/garage-log-backend/errors"
	"github.com/GarageLog/garage-log-backend/internal/store"
	"github.com/GarageLog/garage-log-backend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

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
		return nil, 0, args.Error(2)
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

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, vehicleID string, event types.ChangeEvent) error {
	args := m.Called(ctx, vehicleID, event)
	return args.Error(0)
}

func setupTimelineModel(t *testing.T) (*TimelineModel, *MockTimelineStore, *MockVehicleStore, *MockPublisher) {
	timelineStore := new(MockTimelineStore)
	vehicleStore := new(MockVehicleStore)
	publisher := new(MockPublisher)
	vehicleModel := NewVehicleModel(vehicleStore, publisher)
	return NewTimelineModel(timelineStore, vehicleModel, publisher), timelineStore, vehicleStore, publisher
}

func TestTimelineModel_CreateItem(t *testing.T) {
	tm, timelineStore, vehicleStore, publisher := setupTimelineModel(t)
	ctx := context.Background()

	vehicleStore.On("GetVehicle", ctx, "tenant-1", "vehicle-1").
		Return(&types.Vehicle{ID: "vehicle-1", TenantID: "tenant-1", Nickname: "Daily"}, nil)
	timelineStore.On("CreateItem", ctx, mock.AnythingOfType("*types.TimelineItem")).
		Return("item-1", nil)
	publisher.On("Publish", ctx, "vehicle-1", mock.MatchedBy(func(e types.ChangeEvent) bool {
		return e.Type == types.EventTimelineItemCreated && e.VehicleID == "vehicle-1"
	})).Return(nil)

	mileage := 77338
	item, err := tm.CreateItem(ctx, "tenant-1", "user-1", "vehicle-1", &types.CreateTimelineItemRequest{
		Type:          types.EventTypeFuel,
		Mileage:       &mileage,
		ExtractedData: types.ExtractedData{"cost": 42.5},
	})

	require.NoError(t, err)
	assert.Equal(t, "item-1", item.ID)
	assert.Equal(t, "tenant-1", item.TenantID)
	assert.False(t, item.Timestamp.IsZero(), "timestamp defaults to now")
	timelineStore.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestTimelineModel_CreateItem_Validation(t *testing.T) {
	tm, _, _, _ := setupTimelineModel(t)
	ctx := context.Background()

	_, err := tm.CreateItem(ctx, "tenant-1", "user-1", "vehicle-1", &types.CreateTimelineItemRequest{})
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ValidationError, appErr.Type)

	negative := -5
	_, err = tm.CreateItem(ctx, "tenant-1", "user-1", "vehicle-1", &types.CreateTimelineItemRequest{
		Type:    types.EventTypeOdometer,
		Mileage: &negative,
	})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ValidationError, appErr.Type)
}

func TestTimelineModel_CreateItem_UnknownVehicle(t *testing.T) {
	tm, _, vehicleStore, _ := setupTimelineModel(t)
	ctx := context.Background()

	vehicleStore.On("GetVehicle", ctx, "tenant-1", "ghost").
		Return(nil, store.ErrNotFound)

	_, err := tm.CreateItem(ctx, "tenant-1", "user-1", "ghost", &types.CreateTimelineItemRequest{
		Type: types.EventTypeFuel,
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.NotFoundError, appErr.Type)
}

func TestTimelineModel_GetFeed_RendersEveryRow(t *testing.T) {
	tm, timelineStore, _, _ := setupTimelineModel(t)
	ctx := context.Background()

	mileage := 52000
	items := []*types.TimelineItem{
		{
			ID: "item-1", TenantID: "tenant-1", VehicleID: "vehicle-1",
			Type: types.EventTypeService, Timestamp: time.Now(), Mileage: &mileage,
			ExtractedData: types.ExtractedData{"cost": 89.99, "next_service_miles": 50000.0},
		},
		{
			ID: "item-2", TenantID: "tenant-1", VehicleID: "vehicle-1",
			Type: "mystery_future_type", Timestamp: time.Now(),
			ExtractedData: types.ExtractedData{"some_field": "some value"},
		},
		{
			ID: "item-3", TenantID: "tenant-1", VehicleID: "vehicle-1",
			Type: types.EventTypeFuel, Timestamp: time.Now(),
		},
	}
	timelineStore.On("ListItems", ctx, "tenant-1", "vehicle-1", 20, 0).
		Return(items, 3, nil)

	entries, page, err := tm.GetFeed(ctx, "tenant-1", "vehicle-1", 0, 0)

	require.NoError(t, err)
	require.Len(t, entries, 3, "sparse and unknown-type rows still render")

	assert.NotNil(t, entries[0].Card.Hero)
	assert.NotEmpty(t, entries[0].Card.Badges, "overdue service carries its badge")

	assert.Equal(t, "Mystery Future Type", entries[1].Title)
	assert.Len(t, entries[1].Card.Data, 1)

	assert.Equal(t, "Fuel Fill-Up", entries[2].Title)
	assert.Nil(t, entries[2].Card.Hero, "empty payload yields a bare card, not an error")

	require.NotNil(t, page)
	assert.Equal(t, int64(3), page.Total)
	assert.False(t, page.HasMore)
}

func TestTimelineModel_GetFeed_ClampsLimit(t *testing.T) {
	tm, timelineStore, _, _ := setupTimelineModel(t)
	ctx := context.Background()

	timelineStore.On("ListItems", ctx, "tenant-1", "vehicle-1", maxFeedLimit, 0).
		Return([]*types.TimelineItem{}, 0, nil)

	_, _, err := tm.GetFeed(ctx, "tenant-1", "vehicle-1", 5000, -3)
	require.NoError(t, err)
	timelineStore.AssertExpectations(t)
}

func TestTimelineModel_DeleteItem_NotFound(t *testing.T) {
	tm, timelineStore, _, _ := setupTimelineModel(t)
	ctx := context.Background()

	timelineStore.On("DeleteItem", ctx, "tenant-1", "vehicle-1", "gone").
		Return(store.ErrNotFound)

	err := tm.DeleteItem(ctx, "tenant-1", "user-1", "vehicle-1", "gone")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.NotFoundError, appErr.Type)
}

func TestTimelineModel_PublishFailureDoesNotSurface(t *testing.T) {
	tm, timelineStore, vehicleStore, publisher := setupTimelineModel(t)
	ctx := context.Background()

	vehicleStore.On("GetVehicle", ctx, "tenant-1", "vehicle-1").
		Return(&types.Vehicle{ID: "vehicle-1"}, nil)
	timelineStore.On("CreateItem", ctx, mock.Anything).Return("item-1", nil)
	publisher.On("Publish", ctx, "vehicle-1", mock.Anything).
		Return(assert.AnError)

	item, err := tm.CreateItem(ctx, "tenant-1", "user-1", "vehicle-1", &types.CreateTimelineItemRequest{
		Type: types.EventTypeFuel,
	})

	require.NoError(t, err, "publish is best-effort after the write commits")
	assert.Equal(t, "item-1", item.ID)
}
