package timeline

import (
	"testing"

	"github.com/GarageLog/garage-log-backend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The AI summary is relayed verbatim; an unlabeled confidence defaults to
// medium.
func TestAISummaryPassthrough(t *testing.T) {
	tests := []struct {
		name     string
		data     types.ExtractedData
		expected *types.AISummary
	}{
		{
			name:     "summary without confidence defaults to medium",
			data:     types.ExtractedData{"ai_summary": "X"},
			expected: &types.AISummary{Text: "X", Confidence: types.ConfidenceMedium},
		},
		{
			name:     "explicit high confidence",
			data:     types.ExtractedData{"ai_summary": "Routine fill-up at Shell.", "ai_confidence": "high"},
			expected: &types.AISummary{Text: "Routine fill-up at Shell.", Confidence: types.ConfidenceHigh},
		},
		{
			name:     "unknown confidence label defaults to medium",
			data:     types.ExtractedData{"ai_summary": "X", "ai_confidence": "certain"},
			expected: &types.AISummary{Text: "X", Confidence: types.ConfidenceMedium},
		},
		{
			name:     "no summary means no annotation",
			data:     types.ExtractedData{"ai_confidence": "high"},
			expected: nil,
		},
		{
			name:     "wrong-shape summary is skipped",
			data:     types.ExtractedData{"ai_summary": 42},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, aiSummaryFrom(tt.data))
		})
	}
}

func TestAISummary_AttachedByEveryRenderer(t *testing.T) {
	data := types.ExtractedData{"ai_summary": "Looks routine."}
	for _, et := range []types.EventType{
		types.EventTypeFuel, types.EventTypeService, types.EventTypeOdometer, "unknown_type",
	} {
		card := RendererFor(et).CardData(newItem(et, nil, data))
		require.NotNil(t, card.AISummary, "type %q", et)
		assert.Equal(t, "Looks routine.", card.AISummary.Text)
	}
}

func TestNumberField_AliasOrderAndCoercion(t *testing.T) {
	data := types.ExtractedData{
		"total_cost": 50.0,
		"as_string":  "12.5",
		"as_int":     7,
		"bad":        []interface{}{1},
	}

	// First alias missing, second present.
	v, ok := numberField(data, "cost", "total_cost")
	require.True(t, ok)
	assert.Equal(t, 50.0, v)

	v, ok = numberField(data, "as_string")
	require.True(t, ok)
	assert.Equal(t, 12.5, v)

	v, ok = numberField(data, "as_int")
	require.True(t, ok)
	assert.Equal(t, 7.0, v)

	_, ok = numberField(data, "bad")
	assert.False(t, ok)

	_, ok = numberField(data, "missing")
	assert.False(t, ok)

	_, ok = numberField(nil, "anything")
	assert.False(t, ok)
}

func TestStringField_SkipsEmptyAndNonStrings(t *testing.T) {
	data := types.ExtractedData{
		"blank":    "   ",
		"number":   99,
		"provider": "Joe's Garage",
	}

	s, ok := stringField(data, "blank", "number", "provider")
	require.True(t, ok)
	assert.Equal(t, "Joe's Garage", s)

	_, ok = stringField(data, "blank", "number")
	assert.False(t, ok)
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "77,338 mi", formatMiles(77338))
	assert.Equal(t, "500 mi", formatMiles(500))
	assert.Equal(t, "1,234,567", formatInt(1234567))
	assert.Equal(t, "$42.50", formatMoney(42.5))
	assert.Equal(t, "$1,234.00", formatMoney(1234))
	assert.Equal(t, "-$10.25", formatMoney(-10.25))
	assert.Equal(t, "32.5", formatFloat(32.5))
	assert.Equal(t, "13", formatFloat(13))
	assert.Equal(t, `6/32"`, formatTread(6))
	assert.Equal(t, "34 PSI", formatPSI(34))
	assert.Equal(t, "Mpg Calculated", titleCaseKey("mpg_calculated"))
	assert.Equal(t, "Tire Tread", formatEventType("tire_tread"))
}

func TestTitleCaseKeyNonASCII(t *testing.T) {
	// Payload keys from manual entry are not guaranteed ASCII; the first rune
	// must be upper-cased whole, not byte-sliced.
	assert.Equal(t, "Óleo Motor", titleCaseKey("óleo_motor"))
	assert.Equal(t, "Überprüfung", titleCaseKey("überprüfung"))
	assert.Equal(t, "A  B", titleCaseKey("a__b"))
	assert.Equal(t, "", titleCaseKey(""))
}

func TestStringList_WrongShapeCoercion(t *testing.T) {
	assert.Equal(t, []string{"Check Engine"}, stringList("Check Engine"))
	assert.Equal(t, []string{"ABS", "Oil Pressure"},
		stringList([]interface{}{"ABS", "Oil Pressure", map[string]interface{}{"x": 1}}))
	assert.Nil(t, stringList(nil))
	assert.Nil(t, stringList(42.0))
	assert.Nil(t, stringList(map[string]interface{}{"a": 1}))
}

func TestItemMileage_TopLevelWinsOverPayload(t *testing.T) {
	item := newItem(types.EventTypeOdometer, intPtr(80000), types.ExtractedData{"odometer": 70000})
	v, ok := itemMileage(item)
	require.True(t, ok)
	assert.Equal(t, 80000, v)

	item = newItem(types.EventTypeOdometer, nil, types.ExtractedData{"odometer_reading": 70000})
	v, ok = itemMileage(item)
	require.True(t, ok)
	assert.Equal(t, 70000, v)

	item = newItem(types.EventTypeOdometer, nil, nil)
	_, ok = itemMileage(item)
	assert.False(t, ok)
}
