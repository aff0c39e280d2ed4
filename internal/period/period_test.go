package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMonth(t *testing.T) {
	tests := []struct {
		year, month int
		want        string
	}{
		{2024, 1, "2024-01"},
		{2024, 12, "2024-12"},
		{999, 3, "0999-03"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMonth(tt.year, tt.month))
	}
}

func TestMonthOf(t *testing.T) {
	assert.Equal(t, "2024-02", MonthOf(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)))
}

func TestParseMonth(t *testing.T) {
	year, month, err := ParseMonth("2024-07")
	require.NoError(t, err)
	assert.Equal(t, 2024, year)
	assert.Equal(t, 7, month)
}

func TestParseMonth_Invalid(t *testing.T) {
	for _, key := range []string{"", "2024", "2024-7", "24-07", "2024-13", "2024-00", "abcd-01", "2024-07-01", "January"} {
		_, _, err := ParseMonth(key)
		assert.Error(t, err, "key %q", key)
	}
}

func TestYear(t *testing.T) {
	assert.Equal(t, "2024", Year(2024))
}
