package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/hard75/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == constants.DefaultTimezone {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return loc, nil
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, err
	}
	return time.Now().In(loc), nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}

// CalendarDate returns the calendar date of t as seen in loc, as midnight UTC.
// Dates normalized this way subtract to whole days regardless of DST.
func CalendarDate(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from `from` to `to` in loc.
// Negative when `to` falls on an earlier date.
func DaysBetween(from, to time.Time, loc *time.Location) int {
	diff := CalendarDate(to, loc).Sub(CalendarDate(from, loc))
	return int(diff.Hours() / 24)
}

// FormatDate formats t's calendar date in loc as YYYY-MM-DD.
func FormatDate(t time.Time, loc *time.Location) string {
	return CalendarDate(t, loc).Format(constants.DateFormat)
}

// NextMidnight returns the start of the calendar day after now in loc.
func NextMidnight(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, loc)
}

// TimeUntilMidnight returns how long until the next calendar day begins in loc.
func TimeUntilMidnight(now time.Time, loc *time.Location) time.Duration {
	return NextMidnight(now, loc).Sub(now)
}

// FormatCountdown renders a duration as "5h 3m 9s". Negative durations render as zero.
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%dh %dm %ds", total/3600, (total%3600)/60, total%60)
}

// FormatTimestamp renders a timestamp the way it is persisted.
func FormatTimestamp(t time.Time) string {
	return t.Format(constants.TimestampFormat)
}

// ParseTimestamp parses a persisted timestamp. Plain dates are accepted as midnight UTC.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(constants.DateFormat, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q (expected RFC 3339)", s)
}
