package timeline

import (
	"sort"

	"github.com/GarageLog/garage-log-backend/types"
)

// defaultRenderer handles any event type without a dedicated renderer. It is
// what keeps the pipeline total over an open-ended type space: the title
// comes from the payload or the formatted type string, a hero only from a
// cost-like field, and the data rows from a generic pass over the payload.
type defaultRenderer struct{}

// excludedKeys are payload keys consumed elsewhere on the card (title,
// subtitle, hero, AI summary) and therefore skipped by the generic row pass.
var excludedKeys = map[string]bool{
	"title":         true,
	"description":   true,
	"location":      true,
	"cost":          true,
	"total_cost":    true,
	"ai_summary":    true,
	"ai_confidence": true,
}

func (defaultRenderer) Title(item *types.TimelineItem) string {
	if title, ok := stringField(item.ExtractedData, "title"); ok {
		return title
	}
	return formatEventType(item.Type)
}

func (defaultRenderer) Subtitle(item *types.TimelineItem) string {
	if s, ok := stringField(item.ExtractedData, "description", "location"); ok {
		return s
	}
	return ""
}

func (defaultRenderer) CardData(item *types.TimelineItem) types.EventCardData {
	var card types.EventCardData

	if cost, ok := numberField(item.ExtractedData, "cost", "total_cost"); ok {
		card.Hero = &types.HeroMetric{Value: formatMoney(cost)}
	}

	// Go maps have no iteration order, so sort keys for a deterministic
	// card. Values that are themselves objects or arrays are skipped; no
	// recursive flattening.
	keys := make([]string, 0, len(item.ExtractedData))
	for k := range item.ExtractedData {
		if !excludedKeys[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		if len(card.Data) >= fallbackRowCap {
			break
		}
		value, ok := scalarString(item.ExtractedData[k])
		if !ok {
			continue
		}
		card.Data = append(card.Data, types.DataRow{
			Label: titleCaseKey(k),
			Value: value,
		})
	}

	return finishCard(item, card)
}
