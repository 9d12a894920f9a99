// Package freshness derives the freshness class of a record from its expiry
// date and consumed flag relative to a reference day.
package freshness

import (
	"fmt"
	"math"
	"strings"
	"time"

	"pantry/internal/model"
)

// Class is the derived freshness category of a record.
type Class string

const (
	Consumed Class = "consumed"
	Unknown  Class = "unknown"
	Expired  Class = "expired"
	Near     Class = "near"
	Safe     Class = "safe"
)

// NearWindowDays is the inclusive upper bound of the near band.
const NearWindowDays = 7

// Infinite is returned by DaysUntil for absent or malformed dates.
// It is larger than any real distance so it sorts last in soonest-first order.
const Infinite = math.MaxInt

// DateLayout is the calendar date format used for purchase and expiry dates.
const DateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// ParseDate parses a calendar date. The result is midnight UTC of that date.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DaysUntil returns the signed number of calendar days from today to date.
// Both ends are reduced to midnight of their calendar day, so a date later
// today is 0, tomorrow is 1 and yesterday is -1. Absent or malformed dates
// return Infinite.
func DaysUntil(date string, today time.Time) int {
	d, ok := ParseDate(date)
	if !ok {
		return Infinite
	}
	y, m, dd := today.Date()
	ref := time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
	// Both ends are midnight UTC, so the difference is a whole number of days.
	return int((d.Unix() - ref.Unix()) / secondsPerDay)
}

// IsFinite reports whether days is a real distance rather than Infinite.
func IsFinite(days int) bool {
	return days != Infinite
}

// Classify maps a record to its freshness class as of today.
// Consumed takes priority over every date-based class.
func Classify(r model.Record, today time.Time) Class {
	if r.Consumed {
		return Consumed
	}
	d := DaysUntil(r.ExpiryDate, today)
	if !IsFinite(d) {
		return Unknown
	}
	switch {
	case d < 0:
		return Expired
	case d <= NearWindowDays:
		return Near
	default:
		return Safe
	}
}

// Label is the short badge text shown next to a record.
func Label(c Class) string {
	switch c {
	case Expired:
		return "Expired"
	case Near:
		return "Near"
	case Safe:
		return "Safe"
	case Consumed:
		return "Consumed"
	default:
		return "Unknown"
	}
}

// DaysLeftText renders the distance to an expiry date for people.
func DaysLeftText(date string, today time.Time) string {
	d := DaysUntil(date, today)
	switch {
	case !IsFinite(d):
		return ""
	case d < 0:
		return fmt.Sprintf("%d day(s) overdue", -d)
	case d == 0:
		return "Expires today"
	default:
		return fmt.Sprintf("%d day(s) left", d)
	}
}
