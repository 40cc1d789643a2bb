// Package store defines the persistence contracts for the application.
// All operations are keyed by tenant, so a store implementation can enforce
// row-level isolation between accounts.
package store

import (
	"context"

	"github.com/GarageLog/garage-log-backend/types"
)

// VehicleStore handles vehicle-related data operations.
type VehicleStore interface {
	CreateVehicle(ctx context.Context, vehicle *types.Vehicle) (string, error)
	GetVehicle(ctx context.Context, tenantID, id string) (*types.Vehicle, error)
	ListVehicles(ctx context.Context, tenantID string) ([]*types.Vehicle, error)
	UpdateVehicle(ctx context.Context, tenantID, id string, update *types.UpdateVehicleRequest) (*types.Vehicle, error)
	DeleteVehicle(ctx context.Context, tenantID, id string) error
}

// TimelineStore handles timeline-item data operations. Rows are keyed by
// tenant+vehicle+id; the extracted_data payload is stored as-is (JSONB) and
// interpreted only at render time.
type TimelineStore interface {
	CreateItem(ctx context.Context, item *types.TimelineItem) (string, error)
	GetItem(ctx context.Context, tenantID, vehicleID, id string) (*types.TimelineItem, error)
	ListItems(ctx context.Context, tenantID, vehicleID string, limit, offset int) ([]*types.TimelineItem, int, error)
	UpdateItem(ctx context.Context, tenantID, vehicleID, id string, update *types.UpdateTimelineItemRequest) (*types.TimelineItem, error)
	DeleteItem(ctx context.Context, tenantID, vehicleID, id string) error
}
