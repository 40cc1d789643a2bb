// Package timeline projects raw, loosely-typed timeline rows into normalized
// display cards. Every renderer is a pure, total function of its input: a
// row with sparse or malformed extracted_data yields a card with fewer rows,
// never an error. A single bad record must never blank out a timeline view.
package timeline

import (
	"github.com/GarageLog/garage-log-backend/types"
)

// Renderer turns one timeline item into its display projection. All three
// operations are pure and must not panic regardless of the payload's shape.
// Subtitle returns "" when nothing suitable is present; it never guesses a
// value not found in the data.
type Renderer interface {
	Title(item *types.TimelineItem) string
	Subtitle(item *types.TimelineItem) string
	CardData(item *types.TimelineItem) types.EventCardData
}

// RendererFor maps an event type to its renderer. The switch is exhaustive
// over the known types; anything else — including future types introduced by
// upstream producers — gets the generic fallback, so lookup is total and
// new event types render something reasonable with zero code changes here.
func RendererFor(t types.EventType) Renderer {
	switch t {
	case types.EventTypeOdometer:
		return odometerRenderer{}
	case types.EventTypeFuel:
		return fuelRenderer{}
	case types.EventTypeService:
		return serviceRenderer{}
	case types.EventTypeTireTread:
		return tireTreadRenderer{}
	case types.EventTypeTirePressure:
		return tirePressureRenderer{}
	case types.EventTypeTrip:
		return tripRenderer{}
	case types.EventTypeModification:
		return modificationRenderer{}
	case types.EventTypeDashboardWarning:
		return dashboardWarningRenderer{}
	case types.EventTypeDocument:
		return documentRenderer{}
	case types.EventTypeParking:
		return parkingRenderer{}
	case types.EventTypeInspection:
		return inspectionRenderer{}
	case types.EventTypeRecall:
		return recallRenderer{}
	case types.EventTypeCarWash:
		return carWashRenderer{}
	case types.EventTypeExpense:
		return expenseRenderer{}
	default:
		return defaultRenderer{}
	}
}

// Render is a convenience wrapper producing a full feed entry for one item.
func Render(item *types.TimelineItem) types.TimelineFeedEntry {
	r := RendererFor(item.Type)
	return types.TimelineFeedEntry{
		Item:     item,
		Title:    r.Title(item),
		Subtitle: r.Subtitle(item),
		Card:     r.CardData(item),
	}
}
