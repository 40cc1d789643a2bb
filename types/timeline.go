package types

import "time"

// EventType is the discriminator for a timeline item. Unrecognized values are
// valid: upstream producers may introduce new types at any time, and the
// renderer registry falls back to a generic renderer for them.
type EventType string

const (
	EventTypeOdometer         EventType = "odometer"
	EventTypeFuel             EventType = "fuel"
	EventTypeService          EventType = "service"
	EventTypeTireTread        EventType = "tire_tread"
	EventTypeTirePressure     EventType = "tire_pressure"
	EventTypeTrip             EventType = "trip"
	EventTypeModification     EventType = "modification"
	EventTypeDashboardWarning EventType = "dashboard_warning"
	EventTypeDocument         EventType = "document"
	EventTypeParking          EventType = "parking"
	EventTypeInspection       EventType = "inspection"
	EventTypeRecall           EventType = "recall"
	EventTypeCarWash          EventType = "car_wash"
	EventTypeExpense          EventType = "expense"
)

// ExtractedData is the schema-less payload attached to a timeline item.
// It is populated by OCR/AI vision extraction, manual entry, or legacy
// migration; different producers may use different key names for the same
// concept, and any value may be missing or of an unexpected shape.
type ExtractedData map[string]interface{}

// TimelineItem is one recorded occurrence in a vehicle's history. Rows are
// stored denormalized: the typed top-level fields plus the open-ended
// extracted_data JSONB payload.
type TimelineItem struct {
	ID            string        `json:"id"`
	TenantID      string        `json:"tenantId"`
	VehicleID     string        `json:"vehicleId"`
	Type          EventType     `json:"type"`
	Timestamp     time.Time     `json:"timestamp"`
	Mileage       *int          `json:"mileage,omitempty"`
	ExtractedData ExtractedData `json:"extractedData,omitempty"`
	Notes         string        `json:"notes,omitempty"`
	PhotoKey      string        `json:"photoKey,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// CreateTimelineItemRequest is the request body for creating a timeline item.
type CreateTimelineItemRequest struct {
	Type          EventType     `json:"type" binding:"required"`
	Timestamp     *time.Time    `json:"timestamp,omitempty"`
	Mileage       *int          `json:"mileage,omitempty"`
	ExtractedData ExtractedData `json:"extractedData,omitempty"`
	Notes         string        `json:"notes,omitempty"`
	PhotoKey      string        `json:"photoKey,omitempty"`
}

// UpdateTimelineItemRequest is the request body for updating a timeline item.
// Nil fields are left unchanged.
type UpdateTimelineItemRequest struct {
	Timestamp     *time.Time    `json:"timestamp,omitempty"`
	Mileage       *int          `json:"mileage,omitempty"`
	ExtractedData ExtractedData `json:"extractedData,omitempty"`
	Notes         *string       `json:"notes,omitempty"`
}

// TimelineFeedEntry is one rendered entry in the timeline feed: the raw item
// plus the display projection derived from it.
type TimelineFeedEntry struct {
	Item     *TimelineItem `json:"item"`
	Title    string        `json:"title"`
	Subtitle string        `json:"subtitle,omitempty"`
	Card     EventCardData `json:"card"`
}
