package timeline

import (
	"github.com/GarageLog/garage-log-backend/types"
)

// modificationRenderer renders an aftermarket part install or other mod.
type modificationRenderer struct{}

func (modificationRenderer) Title(item *types.TimelineItem) string {
	if s, ok := stringField(item.ExtractedData, "modification", "part", "part_name", "title"); ok {
		return s
	}
	return "Modification"
}

func (modificationRenderer) Subtitle(item *types.TimelineItem) string {
	if s, ok := stringField(item.ExtractedData, "installer", "shop", "location"); ok {
		return s
	}
	return ""
}

func (modificationRenderer) CardData(item *types.TimelineItem) types.EventCardData {
	var card types.EventCardData
	d := item.ExtractedData

	if cost, ok := numberField(d, "cost", "total_cost"); ok {
		card.Hero = &types.HeroMetric{Value: formatMoney(cost), Subtext: "Total cost"}
	}

	if brand, ok := stringField(d, "brand", "manufacturer"); ok {
		card.Data = append(card.Data, types.DataRow{Label: "Brand", Value: brand})
	}
	if part, ok := stringField(d, "part_number"); ok {
		card.Data = append(card.Data, types.DataRow{Label: "Part number", Value: part})
	}
	if category, ok := stringField(d, "category"); ok {
		card.Data = append(card.Data, types.DataRow{Label: "Category", Value: category})
	}
	if mileage, ok := itemMileage(item); ok {
		card.Data = append(card.Data, types.DataRow{Label: "Installed at", Value: formatMiles(mileage)})
	}
	if hours, ok := numberField(d, "labor_hours"); ok {
		card.Data = append(card.Data, types.DataRow{Label: "Labor", Value: formatFloat(hours) + " hr"})
	}

	return finishCard(item, card)
}
