package timeline

import (
	"github.com/GarageLog/garage-log-backend/types"
)

// tripRenderer renders a logged drive. Distance is the dominant field,
// derived from end−start mileage when an explicit distance is absent.
type tripRenderer struct{}

func (tripRenderer) Title(item *types.TimelineItem) string {
	if s, ok := stringField(item.ExtractedData, "title", "trip_name"); ok {
		return s
	}
	return "Trip"
}

func (tripRenderer) Subtitle(item *types.TimelineItem) string {
	if s, ok := stringField(item.ExtractedData, "destination", "route", "to"); ok {
		return s
	}
	return ""
}

func (tripRenderer) CardData(item *types.TimelineItem) types.EventCardData {
	var card types.EventCardData
	d := item.ExtractedData

	start, hasStart := intField(d, "start_mileage", "starting_mileage")
	end, hasEnd := intField(d, "end_mileage", "ending_mileage")

	distance, hasDistance := intField(d, "distance_miles", "distance", "trip_distance")
	if !hasDistance && hasStart && hasEnd && end >= start {
		distance = end - start
		hasDistance = true
	}
	if hasDistance {
		card.Hero = &types.HeroMetric{
			Value:   formatMiles(distance),
			Subtext: "Distance traveled",
		}
	}

	if hasStart {
		card.Data = append(card.Data, types.DataRow{Label: "Start odometer", Value: formatMiles(start)})
	}
	if hasEnd {
		card.Data = append(card.Data, types.DataRow{Label: "End odometer", Value: formatMiles(end)})
	}
	if duration, ok := stringField(d, "duration"); ok {
		card.Data = append(card.Data, types.DataRow{Label: "Duration", Value: duration})
	} else if hours, ok := numberField(d, "duration_hours"); ok {
		card.Data = append(card.Data, types.DataRow{Label: "Duration", Value: formatFloat(hours) + " hr"})
	}
	if fuel, ok := numberField(d, "fuel_used", "fuel_used_gallons"); ok {
		card.Data = append(card.Data, types.DataRow{Label: "Fuel used", Value: formatFloat(fuel) + " gal"})
	}
	if mpg, ok := numberField(d, "mpg", "average_mpg"); ok {
		card.Data = append(card.Data, types.DataRow{
			Label:     "Efficiency",
			Value:     formatFloat(mpg) + " MPG",
			Highlight: mpg >= GoodMPGThreshold,
		})
	}
	if purpose, ok := stringField(d, "purpose", "trip_type"); ok {
		card.Data = append(card.Data, types.DataRow{Label: "Purpose", Value: purpose})
	}

	return finishCard(item, card)
}
