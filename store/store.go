// Package store provides re-exports of core store interfaces
package store

import (
	internalstore "github.com/GarageLog/garage-log-backend/internal/store"
)

// Re-export internal store interfaces
type (
	// VehicleStore handles vehicle-related data operations
	VehicleStore = internalstore.VehicleStore
	// TimelineStore handles timeline-item data operations
	TimelineStore = internalstore.TimelineStore
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = internalstore.ErrNotFound
