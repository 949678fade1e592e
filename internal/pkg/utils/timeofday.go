package utils

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used in storage keys, query params and responses.
const DateLayout = "2006-01-02"

// TimeOfDay is a wall-clock time stored as seconds since midnight.
type TimeOfDay int

const secondsPerDay = 24 * 60 * 60

var timeOfDayLayouts = []string{
	"15:04:05",
	"15:04",
	"03:04 PM",
	"3:04 PM",
	"03:04:05 PM",
}

// NewTimeOfDay builds a TimeOfDay from its components.
func NewTimeOfDay(hour, minute, second int) TimeOfDay {
	return TimeOfDay(hour*3600 + minute*60 + second)
}

// TimeOfDayOf returns the wall-clock part of t in t's location.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return NewTimeOfDay(t.Hour(), t.Minute(), t.Second())
}

// ParseTimeOfDay accepts 24h ("15:04", "15:04:05") and 12h ("03:04 PM") forms.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range timeOfDayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDayOf(t), nil
		}
	}
	return 0, fmt.Errorf("invalid time of day %q", s)
}

func (t TimeOfDay) Hour() int   { return int(t) / 3600 }
func (t TimeOfDay) Minute() int { return int(t) % 3600 / 60 }
func (t TimeOfDay) Second() int { return int(t) % 60 }

// String renders the 24h storage form.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

// Format12h renders the display form, e.g. "09:05 AM".
func (t TimeOfDay) Format12h() string {
	return time.Date(2000, 1, 1, t.Hour(), t.Minute(), t.Second(), 0, time.UTC).Format("03:04 PM")
}

// Sub returns t-u on the same day. The result is negative when u is later than t.
func (t TimeOfDay) Sub(u TimeOfDay) time.Duration {
	return time.Duration(int(t)-int(u)) * time.Second
}

// SpanWrapped returns end-start, adding a day when end is before start.
func SpanWrapped(start, end TimeOfDay) time.Duration {
	d := end.Sub(start)
	if d < 0 {
		d += secondsPerDay * time.Second
	}
	return d
}

// On places t on the calendar date of day in loc.
func (t TimeOfDay) On(day time.Time, loc *time.Location) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), 0, loc)
}

// DateOf truncates t to its calendar date (as seen in t's location), returned as UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date into UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// DateKey is the map key used for per-day lookups.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// MinDate returns the earlier of a and b.
func MinDate(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}

// DaysInRange counts calendar days in [from, to]; zero when to is before from.
func DaysInRange(from, to time.Time) int {
	from, to = DateOf(from), DateOf(to)
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from).Hours()/24) + 1
}

// MinutesToHHMM renders whole minutes in the stored "H:MM" total-hours form.
func MinutesToHHMM(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}
