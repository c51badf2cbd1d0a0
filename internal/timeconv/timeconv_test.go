package timeconv

import (
	"delivery-itinerary-service/internal/domain"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinuteOfDay(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"2022-04-26T08:30:00", 510},
		{"2022-04-26T00:01:59", 1},
		{"2022-04-26T23:59:00", 1439},
		{"2022-04-26T00:00:00", 1440},
		{"2022-04-27T00:00:45", 1440},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := MinuteOfDay(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.GreaterOrEqual(t, got, 1)
			assert.LessOrEqual(t, got, EndOfDay)
		})
	}
}

func TestMinuteOfDayRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "08:30", "2022-04-26 08:30:00", "2022-04-26T25:00:00"} {
		_, err := MinuteOfDay(in)
		require.Error(t, err, in)
		assert.True(t, errors.Is(err, domain.ErrParse), "err = %v", err)

		var pe *domain.ParseError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, in, pe.Value)
	}
}

func TestConverterFormat(t *testing.T) {
	c := Default()

	assert.Equal(t, "2022-04-26T00:00:00Z", c.Format(0))
	assert.Equal(t, "2022-04-26T01:05:00Z", c.Format(65))
	assert.Equal(t, "2022-04-26T00:00:30Z", c.Format(0.5))
	assert.Equal(t, "2022-04-27T00:10:00Z", c.Format(1450))
}

func TestNewConverterCustomLayout(t *testing.T) {
	c, err := NewConverter("2024-01-15", "15:04")
	require.NoError(t, err)
	assert.Equal(t, "13:20", c.Format(800))

	_, err = NewConverter("15/01/2024", "")
	require.Error(t, err)
}
