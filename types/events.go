package types

import (
	"context"
	"encoding/json"
	"time"

	"github.com/GarageLog/garage-log-backend/errors"
)

// ChangeEventType labels a published change notification.
type ChangeEventType string

const (
	CategoryTimeline = "TIMELINE"
	CategoryVehicle  = "VEHICLE"
)

const (
	EventTimelineItemCreated ChangeEventType = CategoryTimeline + "_ITEM_CREATED"
	EventTimelineItemUpdated ChangeEventType = CategoryTimeline + "_ITEM_UPDATED"
	EventTimelineItemDeleted ChangeEventType = CategoryTimeline + "_ITEM_DELETED"

	EventVehicleCreated ChangeEventType = CategoryVehicle + "_CREATED"
	EventVehicleUpdated ChangeEventType = CategoryVehicle + "_UPDATED"
	EventVehicleDeleted ChangeEventType = CategoryVehicle + "_DELETED"
)

// ChangeEvent is the envelope published to realtime consumers whenever a
// vehicle or timeline row changes.
type ChangeEvent struct {
	ID        string          `json:"id"`
	Type      ChangeEventType `json:"type"`
	VehicleID string          `json:"vehicleId"`
	UserID    string          `json:"userId,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// Validate checks the envelope's required fields.
func (e ChangeEvent) Validate() error {
	if e.ID == "" {
		return errors.ValidationFailed("invalid event", "event ID is required")
	}
	if e.Type == "" {
		return errors.ValidationFailed("invalid event", "event type is required")
	}
	if e.VehicleID == "" {
		return errors.ValidationFailed("invalid event", "vehicle ID is required")
	}
	if e.Timestamp.IsZero() {
		return errors.ValidationFailed("invalid event", "timestamp is required")
	}
	return nil
}

// EventPublisher publishes change notifications. Implementations must be safe
// for concurrent use.
type EventPublisher interface {
	Publish(ctx context.Context, vehicleID string, event ChangeEvent) error
}
