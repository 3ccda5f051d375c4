// Package schedule implements the recurring-reminder engine: it turns a
// class's (day-of-week, start-time, lead-minutes) description into a weekly
// fire spec, keeps the fire specs registered while classes are created,
// updated and deleted, and dispatches the reminder when a spec comes due.
package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	minutesPerDay  = 24 * 60
	minutesPerWeek = 7 * minutesPerDay
)

// ErrInvalidSchedule is returned when a class carries a malformed weekday,
// an out-of-range time or a negative lead time.
var ErrInvalidSchedule = errors.New("invalid schedule input")

// Clock is a wall-clock time of day with no date and no timezone.
type Clock struct {
	Hour   int
	Minute int
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// ParseClock parses a 24-hour "HH:MM" string.
func ParseClock(s string) (Clock, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return Clock{}, fmt.Errorf("%w: time %q is not in HH:MM format", ErrInvalidSchedule, s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return Clock{}, fmt.Errorf("%w: time %q is not in HH:MM format", ErrInvalidSchedule, s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return Clock{}, fmt.Errorf("%w: time %q is not in HH:MM format", ErrInvalidSchedule, s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Clock{}, fmt.Errorf("%w: time %q out of range", ErrInvalidSchedule, s)
	}
	return Clock{Hour: hour, Minute: minute}, nil
}

// ParseWeekday accepts a full English weekday name, case-insensitively.
func ParseWeekday(name string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sunday":
		return time.Sunday, nil
	case "monday":
		return time.Monday, nil
	case "tuesday":
		return time.Tuesday, nil
	case "wednesday":
		return time.Wednesday, nil
	case "thursday":
		return time.Thursday, nil
	case "friday":
		return time.Friday, nil
	case "saturday":
		return time.Saturday, nil
	}
	return 0, fmt.Errorf("%w: unknown weekday %q", ErrInvalidSchedule, name)
}

// CanonicalWeekday maps a weekday name accepted in any case to the
// capitalized form, so stored records compare equal to
// time.Weekday.String() wherever days are filtered by name.
func CanonicalWeekday(name string) (string, error) {
	day, err := ParseWeekday(name)
	if err != nil {
		return "", err
	}
	return day.String(), nil
}

// FireSpec is the weekly recurrence at which a reminder is dispatched.
type FireSpec struct {
	Day    time.Weekday
	Hour   int
	Minute int
}

func (f FireSpec) String() string {
	return fmt.Sprintf("%s %02d:%02d", f.Day, f.Hour, f.Minute)
}

// Matches reports whether t lands on this spec's weekly slot.
func (f FireSpec) Matches(t time.Time) bool {
	return t.Weekday() == f.Day && t.Hour() == f.Hour && t.Minute() == f.Minute
}

// ComputeFireSpec subtracts leadMinutes from the class start in full
// weekly-minute space. Subtracting on the time-of-day alone would put the
// reminder on the wrong day whenever the lead crosses midnight, so the
// subtraction wraps modulo the week: Monday 00:10 with a 30 minute lead
// fires Sunday 23:40.
func ComputeFireSpec(day time.Weekday, start Clock, leadMinutes int) (FireSpec, error) {
	if day < time.Sunday || day > time.Saturday {
		return FireSpec{}, fmt.Errorf("%w: weekday %d out of range", ErrInvalidSchedule, day)
	}
	if start.Hour < 0 || start.Hour > 23 || start.Minute < 0 || start.Minute > 59 {
		return FireSpec{}, fmt.Errorf("%w: time %s out of range", ErrInvalidSchedule, start)
	}
	if leadMinutes < 0 {
		return FireSpec{}, fmt.Errorf("%w: lead minutes %d is negative", ErrInvalidSchedule, leadMinutes)
	}

	total := int(day)*minutesPerDay + start.Hour*60 + start.Minute - leadMinutes
	total %= minutesPerWeek
	if total < 0 {
		total += minutesPerWeek
	}

	return FireSpec{
		Day:    time.Weekday(total / minutesPerDay),
		Hour:   (total % minutesPerDay) / 60,
		Minute: total % 60,
	}, nil
}

// FireSpecFor computes the fire spec from the boundary representation
// (weekday name, "HH:MM") used by class records.
func FireSpecFor(dayOfWeek, startTime string, leadMinutes int) (FireSpec, error) {
	day, err := ParseWeekday(dayOfWeek)
	if err != nil {
		return FireSpec{}, err
	}
	start, err := ParseClock(startTime)
	if err != nil {
		return FireSpec{}, err
	}
	return ComputeFireSpec(day, start, leadMinutes)
}
