package schedule

import (
	"strconv"
	"strings"
	"time"
)

// DayHours is the owner-supplied open/close pair for a single weekday, as "HH:MM" strings.
type DayHours struct {
	In  string `json:"in"`
	Out string `json:"out"`
}

// Slot is one open window on one weekday.
type Slot struct {
	Day  time.Weekday `json:"day"`
	From ClockTime    `json:"from"`
	To   ClockTime    `json:"to"`
}

// ClockTime is a time of day in minutes since midnight.
type ClockTime int

func (c ClockTime) String() string {
	return twoDigits(int(c)/60) + ":" + twoDigits(int(c)%60)
}

func twoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// ParseClock parses an "HH:MM" string. ok is false for anything else.
func ParseClock(s string) (ClockTime, bool) {
	h, m, found := strings.Cut(s, ":")
	if !found {
		return 0, false
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}
	return ClockTime(hour*60 + minute), true
}

// ClockOf extracts the time-of-day component of t in t's own location.
func ClockOf(t time.Time) ClockTime {
	return ClockTime(t.Hour()*60 + t.Minute())
}

// weekdayOrder is the canonical Monday-first day ordering used for normalized tables.
var weekdayOrder = [7]time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// dayNames maps a weekday to its lowercase schedule key, indexed by time.Weekday.
var dayNames = [7]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// DayName returns the lowercase schedule key for a weekday.
func DayName(day time.Weekday) string {
	return dayNames[day]
}

// Normalize converts a sparse lowercase-weekday map of open hours into an ordered
// slot list, Monday through Sunday. Days that are absent or whose times do not parse
// as "HH:MM" are treated as closed and produce no slot. Inverted windows (from >= to)
// are passed through unvalidated; the matcher never finds an interval inside them.
func Normalize(hours map[string]DayHours) []Slot {
	var slots []Slot
	for _, day := range weekdayOrder {
		dh, ok := hours[DayName(day)]
		if !ok {
			continue
		}
		from, ok := ParseClock(dh.In)
		if !ok {
			continue
		}
		to, ok := ParseClock(dh.Out)
		if !ok {
			continue
		}
		slots = append(slots, Slot{Day: day, From: from, To: to})
	}
	return slots
}

// Matches reports whether the requested interval falls inside the slot declared for
// the weekday of start. Only the clock-time component of start and end is compared;
// the calendar date is discarded, so an interval whose end lands on a later date is
// still judged on clock time alone.
func Matches(slots []Slot, start, end time.Time) bool {
	day := start.Weekday()
	for _, slot := range slots {
		if slot.Day != day {
			continue
		}
		return ClockOf(start) >= slot.From && ClockOf(end) <= slot.To
	}
	return false
}
