package service

import (
	"strings"
	"time"

	"food-journal/internal/model"
)

// ParseDay reads a calendar date given as YYYY-MM-DD or an RFC 3339 instant.
// The result is midnight of that date in loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if d, err := time.ParseInLocation(model.DateLayout, s, loc); err == nil {
		return d, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return StartOfDay(t.In(loc)), nil
	}
	return time.Time{}, model.ErrInvalidDate
}

// ResolveDay returns the day named by s, or today when s is empty or unparsable.
func ResolveDay(s string, now time.Time, loc *time.Location) time.Time {
	if d, err := ParseDay(s, loc); err == nil {
		return d
	}
	return StartOfDay(now.In(loc))
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayBounds returns the inclusive [00:00:00.000, 23:59:59.999] range of day.
func DayBounds(day time.Time) (time.Time, time.Time) {
	start := StartOfDay(day)
	y, m, d := start.Date()
	end := time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), start.Location())
	return start, end
}

// ResolveConsumedAt turns submitted date and time fields into an instant.
//
//   - neither: now
//   - date only: that date at the current hour, minute and second
//   - time only: today at that time
//   - both: that date at that time
func ResolveConsumedAt(date, clock string, now time.Time, loc *time.Location) (time.Time, error) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	local := now.In(loc)

	if date == "" && clock == "" {
		return now, nil
	}

	day := StartOfDay(local)
	if date != "" {
		d, err := ParseDay(date, loc)
		if err != nil {
			return time.Time{}, err
		}
		day = d
	}

	hour, minute, second := local.Clock()
	if clock != "" {
		hm, err := time.Parse(model.TimeLayout, clock)
		if err != nil {
			return time.Time{}, model.ErrInvalidTime
		}
		hour, minute, second = hm.Hour(), hm.Minute(), 0
	}

	y, m, d := day.Date()
	return time.Date(y, m, d, hour, minute, second, 0, loc), nil
}
