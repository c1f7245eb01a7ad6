// Package shifttime holds the wall-clock arithmetic shared by shift conflict
// checking, lateness detection and payroll duration math. Shift times are
// "15:04" strings in the business timezone; an end time of "00:00" means
// next-day midnight.
package shifttime

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const minutesPerDay = 24 * 60

// MinutesOfDay parses "15:04" into minutes since midnight.
func MinutesOfDay(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0, errors.Errorf("invalid time %q", s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, errors.Wrapf(err, "invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, errors.Wrapf(err, "invalid minute in %q", s)
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, errors.Errorf("time out of range %q", s)
	}

	return hour*60 + minute, nil
}

// endMinutes normalizes an end-of-shift time: "00:00" is day-end, not
// day-start.
func endMinutes(s string) (int, error) {
	m, err := MinutesOfDay(s)
	if err != nil {
		return 0, err
	}
	if m == 0 {
		return minutesPerDay, nil
	}
	return m, nil
}

// Overlaps applies the half-open interval test [start, end) to two shifts on
// the same date.
func Overlaps(aStart, aEnd, bStart, bEnd string) (bool, error) {
	as, err := MinutesOfDay(aStart)
	if err != nil {
		return false, err
	}
	ae, err := endMinutes(aEnd)
	if err != nil {
		return false, err
	}
	bs, err := MinutesOfDay(bStart)
	if err != nil {
		return false, err
	}
	be, err := endMinutes(bEnd)
	if err != nil {
		return false, err
	}

	return as < be && ae > bs, nil
}

// DurationHours returns the length of a shift in fractional hours.
func DurationHours(start, end string) (float64, error) {
	s, err := MinutesOfDay(start)
	if err != nil {
		return 0, err
	}
	e, err := endMinutes(end)
	if err != nil {
		return 0, err
	}

	if e < s {
		return 0, errors.Errorf("shift ends before it starts: %s-%s", start, end)
	}

	return float64(e-s) / 60.0, nil
}

// Combine builds the absolute timestamp of a shift boundary from its calendar
// day ("2006-01-02"), wall-clock time and the business timezone. An end time
// of "00:00" lands on the following midnight.
func Combine(date, clock string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parsing date %q", date)
	}

	m, err := MinutesOfDay(clock)
	if err != nil {
		return time.Time{}, err
	}

	return day.Add(time.Duration(m) * time.Minute), nil
}

// CombineEnd is Combine with end-of-shift normalization applied.
func CombineEnd(date, clock string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parsing date %q", date)
	}

	m, err := endMinutes(clock)
	if err != nil {
		return time.Time{}, err
	}

	return day.Add(time.Duration(m) * time.Minute), nil
}

// Lateness reports whether a clock-in at now is late against the shift start,
// and by how many whole minutes.
func Lateness(now, shiftStart time.Time, grace time.Duration) (bool, int) {
	if !now.After(shiftStart.Add(grace)) {
		return false, 0
	}
	return true, int(now.Sub(shiftStart).Minutes())
}

// Window formats an interval for conflict error messages.
func Window(start, end string) string {
	return fmt.Sprintf("%s to %s", start, end)
}
