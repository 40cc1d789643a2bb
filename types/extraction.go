package types

// Vision extraction contracts.
//
// Architecture:
//   Mobile → camera capture →
//   POST /v1/vehicles/:id/extract →
//   OpenAI vision model (structured extraction) →
//   Return JSON → pre-fill a timeline item for user review
//
// Rate limit: extractions per user per hour, configured via EXTRACTION_REQUESTS_PER_HOUR.

// ExtractionRequest is the request body for document/photo extraction.
// Either a base64-encoded photo or pre-recognized OCR text must be supplied.
type ExtractionRequest struct {
	PhotoBase64 string    `json:"photoBase64,omitempty"`
	OCRText     string    `json:"ocrText,omitempty"`
	TypeHint    EventType `json:"typeHint,omitempty"` // optional hint
}

// ExtractionResponse is returned by the extraction endpoint. ExtractedData
// carries whatever fields the model could read; SuggestedType is the event
// type the model believes the capture represents. ReviewLevel tells the
// client how much user review the result needs.
type ExtractionResponse struct {
	ExtractedData ExtractedData `json:"extractedData"`
	SuggestedType EventType     `json:"suggestedType"`
	Confidence    float64       `json:"confidence"` // 0-1 overall
	Mileage       *int          `json:"mileage,omitempty"`
	ReviewLevel   ReviewLevel   `json:"reviewLevel"`
}

// ReviewLevel classifies extraction confidence into the client-side flow the
// result should take.
type ReviewLevel string

const (
	// ReviewLevelManual: warn the user and suggest manual entry.
	ReviewLevelManual ReviewLevel = "manual"
	// ReviewLevelReview: show an editable review screen with pre-filled fields.
	ReviewLevelReview ReviewLevel = "review"
	// ReviewLevelAutofill: auto-fill the timeline item.
	ReviewLevelAutofill ReviewLevel = "autofill"
)

// Confidence thresholds separating the review levels.
const (
	ExtractionConfidenceLow  = 0.5
	ExtractionConfidenceHigh = 0.8
)

// ReviewLevelFor maps an overall confidence score to its review level.
func ReviewLevelFor(confidence float64) ReviewLevel {
	switch {
	case confidence >= ExtractionConfidenceHigh:
		return ReviewLevelAutofill
	case confidence >= ExtractionConfidenceLow:
		return ReviewLevelReview
	default:
		return ReviewLevelManual
	}
}
