package timeline

import (
	"strings"

	"github.com/GarageLog/garage-log-backend/types"
)

// parkingRenderer renders a parking record.
type parkingRenderer struct{}

func (parkingRenderer) Title(item *types.TimelineItem) string {
	return "Parking"
}

func (parkingRenderer) Subtitle(item *types.TimelineItem) string {
	if s, ok := stringField(item.ExtractedData, "location", "garage", "lot"); ok {
		return s
	}
	return ""
}

func (parkingRenderer) CardData(item *types.TimelineItem) types.EventCardData {
	var card types.EventCardData
	d := item.ExtractedData

	if cost, ok := numberField(d, "cost", "total_cost"); ok {
		card.Hero = &types.HeroMetric{Value: formatMoney(cost)}
	}
	if spot, ok := stringField(d, "spot", "space"); ok {
		card.Data = append(card.Data, types.DataRow{Label: "Spot", Value: spot})
	}
	if level, ok := stringField(d, "level", "floor"); ok {
		card.Data = append(card.Data, types.DataRow{Label: "Level", Value: level})
	}
	if rate, ok := numberField(d, "hourly_rate", "rate"); ok {
		card.Data = append(card.Data, types.DataRow{Label: "Rate", Value: formatMoney(rate) + "/hr"})
	}
	if duration, ok := stringField(d, "duration"); ok {
		card.Data = append(card.Data, types.DataRow{Label: "Duration", Value: duration})
	}

	return finishCard(item, card)
}

// inspectionRenderer renders a state/safety inspection with a pass/fail badge.
type inspectionRenderer struct{}

func (inspectionRenderer) Title(item *types.TimelineItem) string {
	if s, ok := stringField(item.ExtractedData, "inspection_type", "title"); ok {
		return s
	}
	return "Inspection"
}

func (inspectionRenderer) Subtitle(item *types.TimelineItem) string {
	if s, ok := stringField(item.ExtractedData, "station", "location", "inspector"); ok {
		return s
	}
	return ""
}

func (inspectionRenderer) CardData(item *types.TimelineItem) types.EventCardData {
	var card types.EventCardData
	d := item.ExtractedData

	result, hasResult := stringField(d, "result", "status", "outcome")
	if hasResult {
		card.Data = append(card.Data, types.DataRow{Label: "Result", Value: result})
	}
	if cert, ok := stringField(d, "certificate_number", "sticker_number"); ok {
		card.Data = append(card.Data, types.DataRow{Label: "Certificate", Value: cert})
	}
	if expires, ok := stringField(d, "expiry_date", "expires"); ok {
		card.Data = append(card.Data, types.DataRow{Label: "Expires", Value: expires})
	}
	if mileage, ok := itemMileage(item); ok {
		card.Data = append(card.Data, types.DataRow{Label: "Odometer", Value: formatMiles(mileage)})
	}

	if hasResult {
		switch lower := strings.ToLower(result); {
		case strings.Contains(lower, "fail"):
			card.Badges = append(card.Badges, types.Badge{Text: "Failed", Variant: types.BadgeDanger})
		case strings.Contains(lower, "pass"):
			card.Badges = append(card.Badges, types.Badge{Text: "Passed", Variant: types.BadgeSuccess})
		}
	}

	return finishCard(item, card)
}

// recallRenderer renders a manufacturer recall notice. An unresolved recall
// carries a warning badge; a completed one reads as resolved.
type recallRenderer struct{}

func (recallRenderer) Title(item *types.TimelineItem) string {
	if s, ok := stringField(item.ExtractedData, "title", "component"); ok {
		return s
	}
	return "Recall Notice"
}

func (recallRenderer) Subtitle(item *types.TimelineItem) string {
	if s, ok := stringField(item.ExtractedData, "manufacturer", "issuer"); ok {
		return s
	}
	return ""
}

func (recallRenderer) CardData(item *types.TimelineItem) types.EventCardData {
	var card types.EventCardData
	d := item.ExtractedData

	if component, ok := stringField(d, "component"); ok {
		card.Data = append(card.Data, types.DataRow{Label: "Component", Value: component})
	}
	if num, ok := stringField(d, "recall_number", "nhtsa_number", "campaign_number"); ok {
		card.Data = append(card.Data, types.DataRow{Label: "Recall number", Value: num})
	}
	if remedy, ok := stringField(d, "remedy"); ok {
		card.Data = append(card.Data, types.DataRow{Label: "Remedy", Value: remedy})
	}
	status, hasStatus := stringField(d, "status")
	if hasStatus {
		card.Data = append(card.Data, types.DataRow{Label: "Status", Value: status})
	}

	if recallResolved(status, hasStatus) {
		card.Badges = append(card.Badges, types.Badge{Text: "Resolved", Variant: types.BadgeSuccess})
	} else {
		card.Badges = append(card.Badges, types.Badge{Text: "Open recall", Variant: types.BadgeWarning})
	}

	return finishCard(item, card)
}

func recallResolved(status string, hasStatus bool) bool {
	if !hasStatus {
		return false
	}
	switch strings.ToLower(status) {
	case "repaired", "completed", "closed", "resolved":
		return true
	}
	return false
}

// carWashRenderer renders a car wash record.
type carWashRenderer struct{}

func (carWashRenderer) Title(item *types.TimelineItem) string {
	return "Car Wash"
}

func (carWashRenderer) Subtitle(item *types.TimelineItem) string {
	if s, ok := stringField(item.ExtractedData, "location"); ok {
		return s
	}
	return ""
}

func (carWashRenderer) CardData(item *types.TimelineItem) types.EventCardData {
	var card types.EventCardData
	d := item.ExtractedData

	if cost, ok := numberField(d, "cost", "total_cost"); ok {
		card.Hero = &types.HeroMetric{Value: formatMoney(cost)}
	}
	if washType, ok := stringField(d, "wash_type", "package"); ok {
		card.Data = append(card.Data, types.DataRow{Label: "Wash type", Value: washType})
	}
	if extras, ok := stringField(d, "extras", "add_ons"); ok {
		card.Data = append(card.Data, types.DataRow{Label: "Extras", Value: extras})
	}

	return finishCard(item, card)
}

// expenseRenderer renders a miscellaneous vehicle expense.
type expenseRenderer struct{}

func (expenseRenderer) Title(item *types.TimelineItem) string {
	if s, ok := stringField(item.ExtractedData, "description", "title", "category"); ok {
		return s
	}
	return "Expense"
}

func (expenseRenderer) Subtitle(item *types.TimelineItem) string {
	if s, ok := stringField(item.ExtractedData, "vendor", "merchant", "location"); ok {
		return s
	}
	return ""
}

func (expenseRenderer) CardData(item *types.TimelineItem) types.EventCardData {
	var card types.EventCardData
	d := item.ExtractedData

	if cost, ok := numberField(d, "cost", "total_cost", "amount"); ok {
		card.Hero = &types.HeroMetric{Value: formatMoney(cost)}
	}
	if category, ok := stringField(d, "category"); ok {
		card.Data = append(card.Data, types.DataRow{Label: "Category", Value: category})
	}
	if payment, ok := stringField(d, "payment_method"); ok {
		card.Data = append(card.Data, types.DataRow{Label: "Payment", Value: payment})
	}
	if mileage, ok := itemMileage(item); ok {
		card.Data = append(card.Data, types.DataRow{Label: "Odometer", Value: formatMiles(mileage)})
	}

	return finishCard(item, card)
}
