package types

// EventCardData is the normalized display projection of a timeline item.
// It is derived fresh on every render and never persisted; a card with
// sparse source data simply has fewer rows, no hero, and no badges.
type EventCardData struct {
	Hero      *HeroMetric `json:"hero,omitempty"`
	Data      []DataRow   `json:"data,omitempty"`
	AISummary *AISummary  `json:"aiSummary,omitempty"`
	Badges    []Badge     `json:"badges,omitempty"`
	Compact   bool        `json:"compact,omitempty"`
}

// HeroMetric is the single dominant value shown on a card (a cost, a
// mileage reading). It is only present when the source data contains a
// clearly dominant field; it is never fabricated from placeholders.
type HeroMetric struct {
	Value   string `json:"value"`
	Subtext string `json:"subtext,omitempty"`
}

// DataRow is one secondary fact on a card. Highlight marks rows the
// presentation layer should emphasize (favorable efficiency, overdue
// service).
type DataRow struct {
	Label     string `json:"label"`
	Value     string `json:"value"`
	Highlight bool   `json:"highlight,omitempty"`
}

// Confidence grades an AI-generated summary.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// AISummary is a verbatim AI-generated narrative relayed from the extracted
// payload; renderers never synthesize one.
type AISummary struct {
	Text       string     `json:"text"`
	Confidence Confidence `json:"confidence,omitempty"`
}

// BadgeVariant selects the visual treatment of a badge.
type BadgeVariant string

const (
	BadgeSuccess BadgeVariant = "success"
	BadgeWarning BadgeVariant = "warning"
	BadgeDanger  BadgeVariant = "danger"
	BadgeInfo    BadgeVariant = "info"
)

// Badge is a short status indicator derived from a policy check on the
// event's data ("Overdue", "Milestone", "Replace soon").
type Badge struct {
	Text    string       `json:"text"`
	Variant BadgeVariant `json:"variant"`
	Icon    string       `json:"icon,omitempty"`
}
