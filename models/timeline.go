// Package models holds the business layer: validation, tenant scoping, store
// orchestration, and change notifications. Display projection lives in the
// timeline package and is applied here when building the rendered feed.
package models

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/GarageLog/garage-log-backend/errors"
	"github.com/GarageLog/garage-log-backend/internal/store"
	"github.com/GarageLog/garage-log-backend/logger"
	"github.com/GarageLog/garage-log-backend/timeline"
	"github.com/GarageLog/garage-log-backend/types"
	"github.com/google/uuid"
)

const (
	defaultFeedLimit = 20
	maxFeedLimit     = 100
)

// TimelineModel owns timeline-item business logic.
type TimelineModel struct {
	store        store.TimelineStore
	vehicleModel *VehicleModel
	publisher    types.EventPublisher
}

func NewTimelineModel(store store.TimelineStore, vehicleModel *VehicleModel, publisher types.EventPublisher) *TimelineModel {
	return &TimelineModel{
		store:        store,
		vehicleModel: vehicleModel,
		publisher:    publisher,
	}
}

func (tm *TimelineModel) CreateItem(ctx context.Context, tenantID, userID, vehicleID string, req *types.CreateTimelineItemRequest) (*types.TimelineItem, error) {
	log := logger.GetLogger()

	if err := validateCreateItem(req); err != nil {
		return nil, err
	}
	// Verify the vehicle exists under this tenant before attaching events.
	if _, err := tm.vehicleModel.GetVehicle(ctx, tenantID, vehicleID); err != nil {
		return nil, err
	}

	timestamp := time.Now().UTC()
	if req.Timestamp != nil {
		timestamp = *req.Timestamp
	}

	item := &types.TimelineItem{
		TenantID:      tenantID,
		VehicleID:     vehicleID,
		Type:          req.Type,
		Timestamp:     timestamp,
		Mileage:       req.Mileage,
		ExtractedData: req.ExtractedData,
		Notes:         req.Notes,
		PhotoKey:      req.PhotoKey,
	}

	id, err := tm.store.CreateItem(ctx, item)
	if err != nil {
		log.Errorw("Failed to create timeline item",
			"vehicleId", vehicleID,
			"type", req.Type,
			"error", err,
		)
		return nil, errors.NewDatabaseError(err)
	}
	item.ID = id

	publishChange(ctx, tm.publisher, types.EventTimelineItemCreated, vehicleID, userID, item)
	return item, nil
}

func (tm *TimelineModel) GetItem(ctx context.Context, tenantID, vehicleID, id string) (*types.TimelineItem, error) {
	item, err := tm.store.GetItem(ctx, tenantID, vehicleID, id)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("Timeline item", id)
		}
		return nil, errors.NewDatabaseError(err)
	}
	return item, nil
}

// GetFeed returns a page of rendered timeline entries, newest first. Every
// stored row renders: unknown event types and sparse payloads degrade to a
// generic card rather than dropping out of the feed.
func (tm *TimelineModel) GetFeed(ctx context.Context, tenantID, vehicleID string, limit, offset int) ([]types.TimelineFeedEntry, *types.PageInfo, error) {
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	if limit > maxFeedLimit {
		limit = maxFeedLimit
	}
	if offset < 0 {
		offset = 0
	}

	items, total, err := tm.store.ListItems(ctx, tenantID, vehicleID, limit, offset)
	if err != nil {
		return nil, nil, errors.NewDatabaseError(err)
	}

	entries := make([]types.TimelineFeedEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, timeline.Render(item))
	}

	page := &types.PageInfo{
		Limit:   limit,
		Offset:  offset,
		Total:   int64(total),
		HasMore: offset+len(items) < total,
	}
	return entries, page, nil
}

func (tm *TimelineModel) UpdateItem(ctx context.Context, tenantID, userID, vehicleID, id string, update *types.UpdateTimelineItemRequest) (*types.TimelineItem, error) {
	if update.Mileage != nil && *update.Mileage < 0 {
		return nil, errors.ValidationFailed("invalid timeline item update", "mileage cannot be negative")
	}

	item, err := tm.store.UpdateItem(ctx, tenantID, vehicleID, id, update)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("Timeline item", id)
		}
		return nil, errors.NewDatabaseError(err)
	}

	publishChange(ctx, tm.publisher, types.EventTimelineItemUpdated, vehicleID, userID, item)
	return item, nil
}

func (tm *TimelineModel) DeleteItem(ctx context.Context, tenantID, userID, vehicleID, id string) error {
	if err := tm.store.DeleteItem(ctx, tenantID, vehicleID, id); err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return errors.NotFound("Timeline item", id)
		}
		return errors.NewDatabaseError(err)
	}

	publishChange(ctx, tm.publisher, types.EventTimelineItemDeleted, vehicleID, userID, nil)
	return nil
}

func validateCreateItem(req *types.CreateTimelineItemRequest) error {
	if req.Type == "" {
		return errors.ValidationFailed("invalid timeline item", "type is required")
	}
	if req.Mileage != nil && *req.Mileage < 0 {
		return errors.ValidationFailed("invalid timeline item", "mileage cannot be negative")
	}
	return nil
}

// publishChange emits a change notification. Publishing is best-effort: a
// failed publish is logged, never surfaced, because the write has already
// committed.
func publishChange(ctx context.Context, publisher types.EventPublisher, eventType types.ChangeEventType, vehicleID, userID string, payload interface{}) {
	if publisher == nil {
		return
	}

	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			logger.GetLogger().Errorw("Failed to marshal event payload", "type", eventType, "error", err)
			return
		}
		raw = data
	}

	event := types.ChangeEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		VehicleID: vehicleID,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Payload:   raw,
	}
	if err := publisher.Publish(ctx, vehicleID, event); err != nil {
		logger.GetLogger().Errorw("Failed to publish change event",
			"type", eventType,
			"vehicleId", vehicleID,
			"error", err,
		)
	}
}
