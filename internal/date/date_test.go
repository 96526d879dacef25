package date

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	got, err := Parse("2024-02-29/23:59")
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 2, 29, 23, 59, 0, 0, time.UTC), got)
	require.Equal(t, "2024-02-29/23:59", Format(got))
}

func TestParseFormatErrors(t *testing.T) {
	for _, s := range []string{
		"",
		"2024-1-01/10:00",
		"2024-01-01 10:00",
		"2024-01-01/1:00",
		" 2024-01-01/10:00",
		"2024-01-01/10:00x",
		"24-01-01/10:00",
	} {
		t.Run(s, func(t *testing.T) {
			_, err := Parse(s)
			require.ErrorIs(t, err, ErrFormat)
		})
	}
}

func TestParseRangeErrors(t *testing.T) {
	for _, s := range []string{
		"0999-01-01/10:00",
		"2024-00-01/10:00",
		"2024-13-01/10:00",
		"2024-01-00/10:00",
		"2024-04-31/10:00",
		"2023-02-29/10:00",
		"1900-02-29/10:00",
		"2024-01-01/24:00",
		"2024-01-01/10:60",
	} {
		t.Run(s, func(t *testing.T) {
			_, err := Parse(s)
			require.ErrorIs(t, err, ErrRange)
		})
	}
}

func TestLeapCentury(t *testing.T) {
	_, err := Parse("2000-02-29/00:00")
	require.NoError(t, err)
}

func TestFormatInvalid(t *testing.T) {
	require.Equal(t, "0000-00-00/00:00", Format(time.Time{}))
	require.False(t, Valid(time.Date(2024, 1, 1, 10, 0, 30, 0, time.UTC)))
}
