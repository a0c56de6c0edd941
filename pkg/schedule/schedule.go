// Package schedule holds the pure scheduling rules: local wall-clock to
// UTC conversion, recurrence evaluation and the dose time windows shared
// between client and server.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	errorvalues "github.com/limbo/medtrack/internal/error_values"
	"github.com/limbo/medtrack/pkg/entity"
)

const (
	// EarlyTakeWindowMinutes is how long before its scheduled time a dose
	// may be marked taken. Protocol-level contract with the client, never
	// configurable per request.
	EarlyTakeWindowMinutes = 15

	// FuzzyMatchWindowMinutes bounds the (medicineID, scheduledTime)
	// lookup used when the client has no dose log id.
	FuzzyMatchWindowMinutes = 30

	// HorizonDays is the generation horizon for future dose logs.
	HorizonDays = 30
)

// Zone is a resolved timezone for a medicine. Degraded marks the legacy
// mode where no IANA name was stored and local times are interpreted in
// the process default zone; callers should treat it as a data-quality
// gap and surface it for migration.
type Zone struct {
	Location *time.Location
	Degraded bool
}

// ResolveZone loads the IANA zone with the given name. An empty name
// yields the degraded local-clock variant.
func ResolveZone(name string) (Zone, error) {
	if name == "" {
		return Zone{Location: time.Local, Degraded: true}, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return Zone{}, errorvalues.ErrInvalidTimezone
	}
	return Zone{Location: loc}, nil
}

// ParseClock splits an "HH:MM" string into hour and minute.
func ParseClock(hhmm string) (hour, minute int, err error) {
	parts := strings.Split(hhmm, ":")
	if len(parts) != 2 {
		return 0, 0, errorvalues.ErrInvalidTimeOfDay
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, errorvalues.ErrInvalidTimeOfDay
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, errorvalues.ErrInvalidTimeOfDay
	}
	return hour, minute, nil
}

// LocalTimeToUTC combines the calendar day of date, as it falls in the
// zone, with the "HH:MM" wall-clock time in that same zone and returns
// the absolute UTC instant. Nonexistent or ambiguous local times around
// DST transitions resolve through the zone database normalization done
// by time.Date, not by offset arithmetic.
func (z Zone) LocalTimeToUTC(date time.Time, hhmm string) (time.Time, error) {
	hour, minute, err := ParseClock(hhmm)
	if err != nil {
		return time.Time{}, err
	}
	year, month, day := date.In(z.Location).Date()
	return time.Date(year, month, day, hour, minute, 0, 0, z.Location).UTC(), nil
}

// WithinPreWindow reports whether now has reached the opening of the
// pre-dose window: now >= scheduled - minutesBefore. The boundary is
// inclusive, so exactly minutesBefore early is allowed.
func WithinPreWindow(now, scheduled time.Time, minutesBefore int) bool {
	opens := scheduled.Add(-time.Duration(minutesBefore) * time.Minute)
	return !now.Before(opens)
}

// ShouldOccur decides whether a medicine with the given frequency and
// start date has a dose instance on date. Start/end bounds are the
// caller's business; only the recurrence rule is evaluated here.
func ShouldOccur(freq entity.Frequency, startDate, date time.Time, zone Zone) bool {
	switch freq {
	case entity.FrequencyDaily:
		return true
	case entity.FrequencyWeekly:
		return date.In(zone.Location).Weekday() == startDate.In(zone.Location).Weekday()
	case entity.FrequencyAsNeeded:
		// As-needed doses are never time-anchored.
		return false
	default:
		return false
	}
}

// DayBounds returns the [midnight, next midnight) window of the day
// containing t in the given zone, expressed in UTC.
func DayBounds(t time.Time, zone Zone) (start, end time.Time) {
	year, month, day := t.In(zone.Location).Date()
	start = time.Date(year, month, day, 0, 0, 0, 0, zone.Location)
	return start.UTC(), start.AddDate(0, 0, 1).UTC()
}

// DayKey is the calendar date of t in the zone, normalized to UTC
// midnight, usable as a stable per-day storage key.
func DayKey(t time.Time, zone Zone) time.Time {
	year, month, day := t.In(zone.Location).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string as a calendar day in the zone.
func ParseDate(s string, zone Zone) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", s, zone.Location)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return day, nil
}
