package timeline

import (
	"github.com/GarageLog/garage-log-backend/types"
)

// tireCorner maps a display label to the payload aliases for one wheel
// position. The order fixes row priority on both tire card types.
type tireCorner struct {
	label   string
	aliases []string
}

var tireCorners = []tireCorner{
	{"Front left", []string{"front_left", "front_left_depth", "fl"}},
	{"Front right", []string{"front_right", "front_right_depth", "fr"}},
	{"Rear left", []string{"rear_left", "rear_left_depth", "rl"}},
	{"Rear right", []string{"rear_right", "rear_right_depth", "rr"}},
}

// tireTreadRenderer renders a tread-depth check. The average depth is the
// hero; any corner strictly below the low-tread threshold earns a single
// "Replace soon" warning badge.
type tireTreadRenderer struct{}

func (tireTreadRenderer) Title(item *types.TimelineItem) string {
	return "Tire Tread Check"
}

func (tireTreadRenderer) Subtitle(item *types.TimelineItem) string {
	if s, ok := stringField(item.ExtractedData, "location", "shop"); ok {
		return s
	}
	return ""
}

func (tireTreadRenderer) CardData(item *types.TimelineItem) types.EventCardData {
	var card types.EventCardData
	d := item.ExtractedData

	var readings []float64
	for _, corner := range tireCorners {
		depth, ok := numberField(d, corner.aliases...)
		if !ok {
			continue
		}
		readings = append(readings, depth)
		card.Data = append(card.Data, types.DataRow{
			Label:     corner.label,
			Value:     formatTread(depth),
			Highlight: depth < LowTreadThreshold,
		})
	}

	avg, hasAvg := numberField(d, "average", "average_depth", "avg_tread")
	if !hasAvg && len(readings) > 0 {
		var sum float64
		for _, r := range readings {
			sum += r
		}
		avg = sum / float64(len(readings))
		hasAvg = true
	}
	if hasAvg {
		card.Hero = &types.HeroMetric{
			Value:   formatTread(avg),
			Subtext: "Average tread depth",
		}
	}

	if lowestTread(readings, avg, hasAvg) {
		card.Badges = append(card.Badges, types.Badge{
			Text:    "Replace soon",
			Variant: types.BadgeWarning,
		})
	}

	return finishCard(item, card)
}

// lowestTread reports whether any reading is strictly below the threshold.
// A depth of exactly the threshold does not trigger the badge. With no
// per-corner readings the average stands in.
func lowestTread(readings []float64, avg float64, hasAvg bool) bool {
	if len(readings) == 0 {
		return hasAvg && avg < LowTreadThreshold
	}
	for _, r := range readings {
		if r < LowTreadThreshold {
			return true
		}
	}
	return false
}

// tirePressureRenderer renders a pressure check: one row per wheel plus the
// recommended pressure, with a "Low pressure" badge when any wheel reads
// strictly below the threshold. No hero; no single value dominates here.
type tirePressureRenderer struct{}

func (tirePressureRenderer) Title(item *types.TimelineItem) string {
	return "Tire Pressure Check"
}

func (tirePressureRenderer) Subtitle(item *types.TimelineItem) string {
	if s, ok := stringField(item.ExtractedData, "location"); ok {
		return s
	}
	return ""
}

func (tirePressureRenderer) CardData(item *types.TimelineItem) types.EventCardData {
	var card types.EventCardData
	d := item.ExtractedData

	low := false
	for _, corner := range tireCorners {
		psi, ok := numberField(d, corner.aliases...)
		if !ok {
			continue
		}
		if psi < LowPressureThreshold {
			low = true
		}
		card.Data = append(card.Data, types.DataRow{
			Label:     corner.label,
			Value:     formatPSI(psi),
			Highlight: psi < LowPressureThreshold,
		})
	}
	if rec, ok := numberField(d, "recommended", "recommended_psi", "spec_pressure"); ok {
		card.Data = append(card.Data, types.DataRow{
			Label: "Recommended",
			Value: formatPSI(rec),
		})
	}

	if low {
		card.Badges = append(card.Badges, types.Badge{
			Text:    "Low pressure",
			Variant: types.BadgeWarning,
		})
	}

	return finishCard(item, card)
}
