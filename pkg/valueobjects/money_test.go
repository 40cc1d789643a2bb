package valueobjects

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	m, err := NewMoney(decimal.NewFromFloat(42.505))
	require.NoError(t, err)
	assert.Equal(t, "42.51", m.String())

	_, err = NewMoney(decimal.NewFromFloat(-1))
	assert.Error(t, err)
}

func TestNewMoneyFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain", input: "42.50", want: "42.50"},
		{name: "dollar sign", input: "$42.5", want: "42.50"},
		{name: "thousands separators", input: "$1,234.00", want: "1234.00"},
		{name: "whitespace", input: "  19.99 ", want: "19.99"},
		{name: "garbage", input: "about forty", wantErr: true},
		{name: "negative", input: "-5.00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMoneyFromString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.String())
		})
	}
}

func TestMoneyDisplay(t *testing.T) {
	m, err := NewMoneyFromFloat(42.5)
	require.NoError(t, err)
	assert.Equal(t, "$42.50", m.Display())
}

func TestMoneyAdd(t *testing.T) {
	a, _ := NewMoneyFromString("10.25")
	b, _ := NewMoneyFromString("5.75")
	assert.Equal(t, "16.00", a.Add(b).String())
}
