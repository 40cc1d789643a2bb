package timeline

import (
	"github.com/GarageLog/garage-log-backend/types"
)

// serviceRenderer renders a maintenance/service visit. Cost is the hero;
// the "next service due" row is derived from next_service_miles against the
// current odometer, flipping to an overdue presentation (with highlight and
// a warning badge) once the target has been passed.
type serviceRenderer struct{}

func (serviceRenderer) Title(item *types.TimelineItem) string {
	if s, ok := stringField(item.ExtractedData, "service_type", "type_of_service", "title"); ok {
		return s
	}
	return "Service"
}

func (serviceRenderer) Subtitle(item *types.TimelineItem) string {
	if s, ok := stringField(item.ExtractedData, "provider", "shop", "shop_name", "service_provider", "location"); ok {
		return s
	}
	return ""
}

func (serviceRenderer) CardData(item *types.TimelineItem) types.EventCardData {
	var card types.EventCardData
	d := item.ExtractedData

	if cost, ok := numberField(d, "cost", "total_cost"); ok {
		card.Hero = &types.HeroMetric{Value: formatMoney(cost), Subtext: "Total cost"}
	}

	mileage, hasMileage := itemMileage(item)
	if hasMileage {
		card.Data = append(card.Data, types.DataRow{
			Label: "Odometer",
			Value: formatMiles(mileage),
		})
	}
	if parts, ok := numberField(d, "parts_cost"); ok {
		card.Data = append(card.Data, types.DataRow{Label: "Parts", Value: formatMoney(parts)})
	}
	if labor, ok := numberField(d, "labor_cost"); ok {
		card.Data = append(card.Data, types.DataRow{Label: "Labor", Value: formatMoney(labor)})
	}
	if warranty, ok := stringField(d, "warranty"); ok {
		card.Data = append(card.Data, types.DataRow{Label: "Warranty", Value: warranty})
	}

	if next, ok := intField(d, "next_service_miles", "next_service_mileage"); ok {
		row, overdue := nextServiceRow(next, mileage, hasMileage)
		card.Data = append(card.Data, row)
		if overdue {
			card.Badges = append(card.Badges, types.Badge{
				Text:    "Overdue",
				Variant: types.BadgeWarning,
			})
		}
	}

	return finishCard(item, card)
}

// nextServiceRow derives the "next service due" presentation. With a known
// current odometer the remaining distance is shown, sign-flipped to
// "Overdue by N mi" (highlighted) when the target has been passed; without
// one, only the absolute target can be stated.
func nextServiceRow(next, current int, hasCurrent bool) (types.DataRow, bool) {
	if !hasCurrent {
		return types.DataRow{
			Label: "Next service due",
			Value: "At " + formatMiles(next),
		}, false
	}
	remaining := next - current
	if remaining < 0 {
		return types.DataRow{
			Label:     "Next service due",
			Value:     "Overdue by " + formatMiles(-remaining),
			Highlight: true,
		}, true
	}
	return types.DataRow{
		Label: "Next service due",
		Value: "In " + formatMiles(remaining),
	}, false
}
