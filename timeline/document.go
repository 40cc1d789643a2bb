package timeline

import (
	"github.com/GarageLog/garage-log-backend/types"
)

// documentRenderer renders a captured document (insurance card, registration,
// title). Documents have no dominant metric, so no hero is emitted.
type documentRenderer struct{}

func (documentRenderer) Title(item *types.TimelineItem) string {
	if s, ok := stringField(item.ExtractedData, "title", "document_type", "name"); ok {
		return s
	}
	return "Document"
}

func (documentRenderer) Subtitle(item *types.TimelineItem) string {
	if s, ok := stringField(item.ExtractedData, "issuer", "provider", "company"); ok {
		return s
	}
	return ""
}

func (documentRenderer) CardData(item *types.TimelineItem) types.EventCardData {
	var card types.EventCardData
	d := item.ExtractedData

	if docType, ok := stringField(d, "document_type"); ok {
		card.Data = append(card.Data, types.DataRow{Label: "Type", Value: docType})
	}
	if num, ok := stringField(d, "document_number", "policy_number", "number"); ok {
		card.Data = append(card.Data, types.DataRow{Label: "Number", Value: num})
	}
	if issued, ok := stringField(d, "issued_date", "issue_date"); ok {
		card.Data = append(card.Data, types.DataRow{Label: "Issued", Value: issued})
	}
	if expires, ok := stringField(d, "expiry_date", "expiration_date", "expires"); ok {
		card.Data = append(card.Data, types.DataRow{Label: "Expires", Value: expires})
	}

	return finishCard(item, card)
}
