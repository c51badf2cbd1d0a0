// Package timeconv converts between wall-clock timestamps and the
// minute-of-day integers used in time-window arithmetic.
package timeconv

import (
	"delivery-itinerary-service/internal/domain"
	"fmt"
	"math"
	"time"
)

const (
	// InputLayout is the wire format of timestamps in order and vehicle tables.
	InputLayout = "2006-01-02T15:04:05"
	// OutputLayout is the default format of reconstructed arrival times.
	OutputLayout = "2006-01-02T15:04:05Z"
	// ReferenceDate is the planning day arrivals are measured from.
	ReferenceDate = "2022-04-26"

	// EndOfDay stands in for midnight so minute-of-day values are never 0.
	EndOfDay = 1440
)

// MinuteOfDay returns hour*60+minute for an InputLayout timestamp.
// Midnight maps to EndOfDay, so the result is always in [1,1440].
func MinuteOfDay(s string) (int, error) {
	ts, err := time.Parse(InputLayout, s)
	if err != nil {
		return 0, &domain.ParseError{Value: s, Layout: InputLayout, Err: err}
	}

	m := ts.Hour()*60 + ts.Minute()
	if m == 0 {
		return EndOfDay, nil
	}
	return m, nil
}

// Converter formats minute offsets from a fixed reference date.
type Converter struct {
	date   time.Time
	layout string
}

func NewConverter(date string, layout string) (*Converter, error) {
	if date == "" {
		date = ReferenceDate
	}
	if layout == "" {
		layout = OutputLayout
	}

	d, err := time.ParseInLocation(time.DateOnly, date, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("new converter: reference date %q: %w", date, err)
	}

	return &Converter{date: d, layout: layout}, nil
}

// Default uses ReferenceDate and OutputLayout.
func Default() *Converter {
	c, _ := NewConverter(ReferenceDate, OutputLayout)
	return c
}

// Time returns the instant that lies minutes after the reference date.
// Fractional minutes are kept to the second.
func (c *Converter) Time(minutes float64) time.Time {
	secs := math.Round(minutes * 60)
	return c.date.Add(time.Duration(secs) * time.Second)
}

// Format renders minutes since the reference date; offsets past one day
// roll onto the following dates.
func (c *Converter) Format(minutes float64) string {
	return c.Time(minutes).Format(c.layout)
}
