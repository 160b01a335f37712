package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCurrency(t *testing.T) {
	cases := map[string]float64{
		"$23.50":    23.50,
		"$1,250.00": 1250.00,
		"€9.99":     9.99,
		" $5.00 ":   5.00,
		"12.34":     12.34,
	}
	for in, want := range cases {
		got, err := ParseCurrency(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got, "input %q", in)
	}
}

func TestParseCurrencyRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "$", "free", "$12.x"} {
		_, err := ParseCurrency(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "0 minutes"},
		{59, "0 minutes"},
		{60, "1 minutes"},
		{1800, "30 minutes"},
		{3599, "59 minutes"},
		{3600, "1h 0m"},
		{3661, "1h 1m"},
		{7200, "2h 0m"},
		{14400, "4h 0m"},
		{-5, "0 minutes"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatDuration(tc.seconds), "seconds=%d", tc.seconds)
	}
}

func TestRatePerMile(t *testing.T) {
	assert.Equal(t, "$2.50/mi", RatePerMile("$20.00", 8.0))
	assert.Equal(t, RateUnavailable, RatePerMile("$20.00", 0), "zero distance must not divide")
	assert.Equal(t, RateUnavailable, RatePerMile("n/a", 8.0))
}
