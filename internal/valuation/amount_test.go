package valuation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "1000", want: "1000"},
		{in: "1250.50", want: "1250.5"},
		{in: "$1,250.50", want: "1250.5"},
		{in: "12 %", want: "12"},
		{in: "", want: "0"},
		{in: "abc", want: "0"},
		{in: "1.2.3", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assertDecimal(t, tt.want, ParseAmount(tt.in))
		})
	}
}

func TestParseAmountStrict(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "1000", want: "1000"},
		{in: "$1,250.50", want: "1250.5"},
		{in: "12 %", want: "12"},
		{in: "-1000", want: "-1000"},
		{in: "-$1,000.00", want: "-1000"},
		{in: "-5", want: "-5"},
		{in: "", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "-", wantErr: true},
		{in: "1.2.3", wantErr: true},
		{in: "10-5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmountStrict(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assertDecimal(t, tt.want, got)
		})
	}
}
