package timeline

import (
	"fmt"

	"github.com/GarageLog/garage-log-backend/types"
)

// odometerRenderer renders a plain odometer reading. The reading itself is
// the hero; a previous reading, when present, yields a derived miles-driven
// row; round-number readings earn a milestone badge.
type odometerRenderer struct{}

func (odometerRenderer) Title(item *types.TimelineItem) string {
	return "Odometer Reading"
}

func (odometerRenderer) Subtitle(item *types.TimelineItem) string {
	if s, ok := stringField(item.ExtractedData, "location"); ok {
		return s
	}
	return ""
}

func (odometerRenderer) CardData(item *types.TimelineItem) types.EventCardData {
	var card types.EventCardData
	d := item.ExtractedData

	reading, hasReading := itemMileage(item)
	if hasReading {
		card.Hero = &types.HeroMetric{
			Value:   formatMiles(reading),
			Subtext: "Current reading",
		}
	}

	if prev, ok := intField(d, "previous_reading", "previous_mileage", "last_reading"); ok {
		card.Data = append(card.Data, types.DataRow{
			Label: "Previous reading",
			Value: formatMiles(prev),
		})
		if hasReading && reading >= prev {
			card.Data = append(card.Data, types.DataRow{
				Label: "Driven since",
				Value: formatMiles(reading - prev),
			})
		}
	}
	if src, ok := stringField(d, "source", "reading_source"); ok {
		card.Data = append(card.Data, types.DataRow{Label: "Source", Value: src})
	}

	if hasReading {
		if badge, ok := milestoneBadge(reading); ok {
			card.Badges = append(card.Badges, badge)
		}
	}

	return finishCard(item, card)
}

// milestoneBadge awards a success badge when the reading is an exact multiple
// of a milestone interval. Intervals are checked in order, so 50,000 reads as
// a 10,000-mile milestone rather than a 5,000-mile one.
func milestoneBadge(reading int) (types.Badge, bool) {
	if reading <= 0 {
		return types.Badge{}, false
	}
	for _, interval := range MilestoneIntervals {
		if interval > 0 && reading%interval == 0 {
			return types.Badge{
				Text:    fmt.Sprintf("%s-mile milestone", formatInt(interval)),
				Variant: types.BadgeSuccess,
			}, true
		}
	}
	return types.Badge{}, false
}
