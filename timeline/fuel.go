package timeline

import (
	"fmt"

	"github.com/GarageLog/garage-log-backend/types"
)

// fuelRenderer renders a fuel fill-up. Cost is the dominant field; gallons
// and price-per-gallon feed the hero subtext, and the price is derived from
// cost/gallons when the receipt didn't carry it explicitly.
type fuelRenderer struct{}

func (fuelRenderer) Title(item *types.TimelineItem) string {
	return "Fuel Fill-Up"
}

func (fuelRenderer) Subtitle(item *types.TimelineItem) string {
	if s, ok := stringField(item.ExtractedData, "location", "station", "station_name"); ok {
		return s
	}
	return ""
}

func (fuelRenderer) CardData(item *types.TimelineItem) types.EventCardData {
	var card types.EventCardData
	d := item.ExtractedData

	cost, hasCost := numberField(d, "cost", "total_cost")
	gallons, hasGallons := numberField(d, "gallons", "volume_gallons", "fuel_amount")
	pricePerGal, hasPrice := numberField(d, "price_per_gallon", "unit_price")
	if !hasPrice && hasCost && hasGallons && gallons > 0 {
		pricePerGal = cost / gallons
		hasPrice = true
	}

	if hasCost {
		card.Hero = &types.HeroMetric{
			Value:   formatMoney(cost),
			Subtext: fuelHeroSubtext(gallons, hasGallons, pricePerGal, hasPrice),
		}
	}

	if mileage, ok := itemMileage(item); ok {
		card.Data = append(card.Data, types.DataRow{
			Label: "Odometer",
			Value: formatMiles(mileage),
		})
	}
	if hasGallons {
		card.Data = append(card.Data, types.DataRow{
			Label: "Gallons",
			Value: formatFloat(gallons) + " gal",
		})
	}
	if hasPrice {
		card.Data = append(card.Data, types.DataRow{
			Label: "Price/Gallon",
			Value: formatMoney(pricePerGal) + "/gal",
		})
	}
	if mpg, ok := numberField(d, "mpg_calculated", "mpg", "fuel_economy"); ok {
		card.Data = append(card.Data, types.DataRow{
			Label:     "Efficiency",
			Value:     formatFloat(mpg) + " MPG",
			Highlight: mpg >= GoodMPGThreshold,
		})
	}
	if fuelType, ok := stringField(d, "fuel_type", "grade", "octane"); ok {
		card.Data = append(card.Data, types.DataRow{Label: "Fuel type", Value: fuelType})
	}
	if payment, ok := stringField(d, "payment_method"); ok {
		card.Data = append(card.Data, types.DataRow{Label: "Payment", Value: payment})
	}

	return finishCard(item, card)
}

func fuelHeroSubtext(gallons float64, hasGallons bool, price float64, hasPrice bool) string {
	switch {
	case hasGallons && hasPrice:
		return fmt.Sprintf("%s gal @ %s/gal", formatFloat(gallons), formatMoney(price))
	case hasGallons:
		return formatFloat(gallons) + " gal"
	default:
		return ""
	}
}
