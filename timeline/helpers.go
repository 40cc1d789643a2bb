package timeline

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/GarageLog/garage-log-backend/types"
	"github.com/shopspring/decimal"
)

// The extracted_data payload is schema-less and multi-sourced: OCR extraction,
// manual entry, and legacy migration all populate it with slightly different
// key names and value shapes. Every accessor in this file is defensive —
// missing keys and wrong-shape values resolve to "absent", never to a panic
// or a fabricated zero.

// stringField returns the first present, non-empty string among the alias
// keys, tried in order.
func stringField(d types.ExtractedData, keys ...string) (string, bool) {
	for _, k := range keys {
		v, ok := d[k]
		if !ok || v == nil {
			continue
		}
		if s, ok := v.(string); ok {
			s = strings.TrimSpace(s)
			if s != "" {
				return s, true
			}
		}
	}
	return "", false
}

// numberField returns the first present numeric value among the alias keys,
// tried in order. JSON decoding yields float64, but manual entry and legacy
// rows may carry ints, json.Number, or numeric strings.
func numberField(d types.ExtractedData, keys ...string) (float64, bool) {
	for _, k := range keys {
		v, ok := d[k]
		if !ok || v == nil {
			continue
		}
		if f, ok := asNumber(v); ok {
			return f, true
		}
	}
	return 0, false
}

// intField is numberField rounded to the nearest integer.
func intField(d types.ExtractedData, keys ...string) (int, bool) {
	f, ok := numberField(d, keys...)
	if !ok {
		return 0, false
	}
	if f >= 0 {
		return int(f + 0.5), true
	}
	return int(f - 0.5), true
}

func asNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// scalarString coerces a scalar payload value to its display string.
// Objects, arrays, and nils are reported as non-displayable.
func scalarString(v interface{}) (string, bool) {
	switch s := v.(type) {
	case nil:
		return "", false
	case string:
		s = strings.TrimSpace(s)
		return s, s != ""
	case bool:
		if s {
			return "Yes", true
		}
		return "No", true
	case float64:
		return formatFloat(s), true
	case float32:
		return formatFloat(float64(s)), true
	case int:
		return strconv.Itoa(s), true
	case int64:
		return strconv.FormatInt(s, 10), true
	case json.Number:
		return s.String(), true
	default:
		return "", false
	}
}

// itemMileage resolves the odometer reading for an item: the typed top-level
// field wins, then the usual payload aliases.
func itemMileage(item *types.TimelineItem) (int, bool) {
	if item.Mileage != nil && *item.Mileage >= 0 {
		return *item.Mileage, true
	}
	return intField(item.ExtractedData, "mileage", "odometer", "odometer_reading", "current_mileage")
}

// aiSummaryFrom relays a verbatim AI narrative from the payload. The text is
// never synthesized or rewritten; an unlabeled confidence defaults to medium.
func aiSummaryFrom(d types.ExtractedData) *types.AISummary {
	text, ok := stringField(d, "ai_summary")
	if !ok {
		return nil
	}
	confidence := types.ConfidenceMedium
	if c, ok := stringField(d, "ai_confidence"); ok {
		switch types.Confidence(strings.ToLower(c)) {
		case types.ConfidenceLow:
			confidence = types.ConfidenceLow
		case types.ConfidenceHigh:
			confidence = types.ConfidenceHigh
		}
	}
	return &types.AISummary{Text: text, Confidence: confidence}
}

// finishCard applies the shared per-card policy: AI summary passthrough and
// the compact flag, which is a deterministic function of row count.
func finishCard(item *types.TimelineItem, card types.EventCardData) types.EventCardData {
	if card.AISummary == nil {
		card.AISummary = aiSummaryFrom(item.ExtractedData)
	}
	card.Compact = len(card.Data) > compactRowThreshold
	return card
}

// groupThousands inserts comma separators into a non-negative integer string.
func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// formatMiles renders an odometer value or distance, e.g. "77,338 mi".
func formatMiles(n int) string {
	return formatInt(n) + " mi"
}

func formatInt(n int) string {
	if n < 0 {
		return "-" + groupThousands(strconv.Itoa(-n))
	}
	return groupThousands(strconv.Itoa(n))
}

// formatMoney renders a dollar amount with cents, e.g. "$42.50" or
// "$1,234.00". Decimal arithmetic avoids float rounding surprises on the
// cents digits.
func formatMoney(v float64) string {
	d := decimal.NewFromFloat(v)
	s := d.Abs().StringFixed(2)
	parts := strings.SplitN(s, ".", 2)
	out := "$" + groupThousands(parts[0]) + "." + parts[1]
	if d.IsNegative() {
		return "-" + out
	}
	return out
}

// formatFloat renders a float without trailing zeros ("32.5", "13").
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatTread renders a tread depth in 32nds of an inch, e.g. `6/32"`.
func formatTread(v float64) string {
	return fmt.Sprintf("%s/32\"", formatFloat(v))
}

// formatPSI renders a tire pressure, e.g. "34 PSI".
func formatPSI(v float64) string {
	return formatFloat(v) + " PSI"
}

// titleCaseKey turns a snake_case payload key into a display label:
// "mpg_calculated" → "Mpg Calculated".
func titleCaseKey(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if r == utf8.RuneError && size <= 1 {
			continue
		}
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// formatEventType turns a raw type discriminator into a human label:
// "tire_tread" → "Tire Tread". Used whenever no type-specific title exists.
func formatEventType(t types.EventType) string {
	return titleCaseKey(string(t))
}

// stringList normalizes a payload value that should be a list of strings but
// may arrive as a single string, a JSON array of mixed scalars, or garbage.
func stringList(v interface{}) []string {
	switch l := v.(type) {
	case string:
		s := strings.TrimSpace(l)
		if s == "" {
			return nil
		}
		return []string{s}
	case []interface{}:
		var out []string
		for _, e := range l {
			if s, ok := scalarString(e); ok {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return l
	default:
		return nil
	}
}
