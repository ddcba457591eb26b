package utils

import (
	"fmt"
	"regexp"
	"time"
)

const (
	MinDurationHours = 1
	MaxDurationHours = 6
	MaxDisplaySlots  = 6
)

// Both halves must be zero-padded 24-hour HH:MM. 24:00 is accepted by the
// pattern but only legal as a range end; ParseTimeRange enforces that.
var timeRangeRe = regexp.MustCompile(`^([01][0-9]|2[0-4]):([0-5][0-9]) - ([01][0-9]|2[0-4]):([0-5][0-9])$`)

// FormatTimeRange renders the draft's display string, e.g. "09:00 - 12:00".
// Callers validate startHour+duration <= 24 first; the end is never wrapped.
func FormatTimeRange(startHour, duration int) string {
	return fmt.Sprintf("%02d:00 - %02d:00", startHour, startHour+duration)
}

// ParseTimeRange parses an "HH:MM - HH:MM" string into offsets from midnight.
// The end must be strictly after the start and may be 24:00 (midnight of the
// following day); 24:00 as a start is rejected.
func ParseTimeRange(s string) (start, end time.Duration, err error) {
	m := timeRangeRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, fmt.Errorf("invalid time range %q, expected \"HH:MM - HH:MM\"", s)
	}
	var sh, sm, eh, em int
	fmt.Sscanf(m[1], "%d", &sh)
	fmt.Sscanf(m[2], "%d", &sm)
	fmt.Sscanf(m[3], "%d", &eh)
	fmt.Sscanf(m[4], "%d", &em)

	if sh == 24 || (eh == 24 && em != 0) {
		return 0, 0, fmt.Errorf("invalid time range %q: hour out of range", s)
	}
	start = time.Duration(sh)*time.Hour + time.Duration(sm)*time.Minute
	end = time.Duration(eh)*time.Hour + time.Duration(em)*time.Minute
	if end <= start {
		return 0, 0, fmt.Errorf("invalid time range %q: end must be after start", s)
	}
	return start, end, nil
}

// BookingHorizon returns the latest admissible booking start: the end of
// tomorrow, 23:59:59. A single horizon is used at draft collection and at
// submission.
func BookingHorizon(now time.Time) time.Time {
	tomorrow := now.AddDate(0, 0, 1)
	return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 23, 59, 59, 0, now.Location())
}

// WithinHorizon reports whether a booking start is admissible: not in the
// past and no later than the horizon.
func WithinHorizon(now, start time.Time) bool {
	return !start.Before(now) && !start.After(BookingHorizon(now))
}

// IntervalsOverlap reports whether [aStart, aEnd) overlaps [bStart, bEnd)
// under any of the three cases: a starts inside b, a ends inside b, or a
// fully contains b.
func IntervalsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return (!aStart.Before(bStart) && aStart.Before(bEnd)) ||
		(aEnd.After(bStart) && !aEnd.After(bEnd)) ||
		(!aStart.After(bStart) && !aEnd.Before(bEnd))
}

// ParseDate parses a calendar date in "2006-01-02" form, UTC.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return d, nil
}
