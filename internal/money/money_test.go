package money

import (
	"testing"

	"github.com/Veraticus/finpilot/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{input: "250", want: 250},
		{input: "1,250.50", want: 1250.5},
		{input: "$80", want: 80},
		{input: " 12.345 ", want: 12.35},
		{input: "50_000", want: 50000},
		{input: "0", wantErr: true},
		{input: "-5", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.0001)
		})
	}
}

func TestRoundUnits(t *testing.T) {
	assert.Equal(t, 12500.0, RoundUnits(12499.6))
	assert.Equal(t, 7500.0, RoundUnits(7500.4))
	assert.Equal(t, 3.0, RoundUnits(2.5))
	assert.Equal(t, 0.0, RoundUnits(0))
}

func TestSum(t *testing.T) {
	assert.Equal(t, 0.3, Sum(0.1, 0.2))
	assert.Equal(t, 0.0, Sum())
}

func TestFormat(t *testing.T) {
	tests := []struct {
		want  string
		input float64
	}{
		{input: 0, want: "$0"},
		{input: 999, want: "$999"},
		{input: 1250, want: "$1,250"},
		{input: 1250.5, want: "$1,250.50"},
		{input: 1234567.891, want: "$1,234,567.89"},
		{input: -12.5, want: "-$12.50"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.input))
		})
	}
}
