package bookings

import (
	"math"
	"strings"
	"time"
)

// DateTimeLayout is the zone-less wire layout for booking dates
const DateTimeLayout = "2006-01-02T15:04:05"

const shortLayoutLength = len("2006-01-02T15:04")

// ParseDateTime parses the wire layout, appending seconds to the short form
func ParseDateTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) == shortLayoutLength {
		raw += ":00"
	}
	return time.ParseInLocation(DateTimeLayout, raw, time.UTC)
}

// FormatDateTime renders t in the wire layout
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateTimeLayout)
}

// RentalDays counts started 24h periods, never less than one
func RentalDays(pickup, dropoff time.Time) int {
	diff := dropoff.Sub(pickup)
	if diff < 0 {
		diff = -diff
	}
	days := int(math.Ceil(diff.Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

// TotalAmount prices a rental, rounded to cents
func TotalAmount(pricePerDay float64, days int) float64 {
	return math.Round(pricePerDay*float64(days)*100) / 100
}
