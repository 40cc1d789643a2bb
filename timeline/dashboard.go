package timeline

import (
	"fmt"

	"github.com/GarageLog/garage-log-backend/types"
)

// dashboardWarningRenderer renders a dashboard snapshot. The warning_lights
// field is the classic wrong-shape case: OCR extraction emits an array,
// manual entry a single string; both are normalized before rendering.
type dashboardWarningRenderer struct{}

func (dashboardWarningRenderer) Title(item *types.TimelineItem) string {
	return "Dashboard Warning"
}

func (dashboardWarningRenderer) Subtitle(item *types.TimelineItem) string {
	if s, ok := stringField(item.ExtractedData, "severity", "status"); ok {
		return s
	}
	return ""
}

func (dashboardWarningRenderer) CardData(item *types.TimelineItem) types.EventCardData {
	var card types.EventCardData
	d := item.ExtractedData

	lights := stringList(d["warning_lights"])
	if len(lights) == 0 {
		lights = stringList(d["warning_light"])
	}
	for _, light := range lights {
		card.Data = append(card.Data, types.DataRow{
			Label:     "Warning light",
			Value:     light,
			Highlight: true,
		})
	}

	if mileage, ok := itemMileage(item); ok {
		card.Data = append(card.Data, types.DataRow{Label: "Odometer", Value: formatMiles(mileage)})
	}
	if fuel, ok := stringField(d, "fuel_level"); ok {
		card.Data = append(card.Data, types.DataRow{Label: "Fuel level", Value: fuel})
	}
	if temp, ok := stringField(d, "engine_temp", "coolant_temp"); ok {
		card.Data = append(card.Data, types.DataRow{Label: "Engine temp", Value: temp})
	}

	if len(lights) > 0 {
		card.Badges = append(card.Badges, warningBadge(lights))
	}

	return finishCard(item, card)
}

func warningBadge(lights []string) types.Badge {
	text := lights[0]
	if len(lights) > 1 {
		text = fmt.Sprintf("%d warnings active", len(lights))
	}
	return types.Badge{Text: text, Variant: types.BadgeDanger}
}
