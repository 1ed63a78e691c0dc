package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		want ClockTime
		ok   bool
	}{
		{"00:00", 0, true},
		{"09:00", 540, true},
		{"23:59", 1439, true},
		{"24:00", 0, false},
		{"09:60", 0, false},
		{"9am", 0, false},
		{"", 0, false},
		{"09", 0, false},
		{"-1:00", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseClock(c.in)
		assert.Equal(t, c.ok, ok, "ParseClock(%q) ok", c.in)
		if c.ok {
			assert.Equal(t, c.want, got, "ParseClock(%q)", c.in)
		}
	}
}

func TestClockTimeString(t *testing.T) {
	assert.Equal(t, "09:05", ClockTime(545).String())
	assert.Equal(t, "00:00", ClockTime(0).String())
	assert.Equal(t, "23:59", ClockTime(1439).String())
}

func TestNormalizeSingleDay(t *testing.T) {
	days := map[string]time.Weekday{
		"monday":    time.Monday,
		"tuesday":   time.Tuesday,
		"wednesday": time.Wednesday,
		"thursday":  time.Thursday,
		"friday":    time.Friday,
		"saturday":  time.Saturday,
		"sunday":    time.Sunday,
	}
	for name, day := range days {
		slots := Normalize(map[string]DayHours{
			name: {In: "09:00", Out: "17:00"},
		})
		require.Len(t, slots, 1, "schedule with only %s", name)
		assert.Equal(t, day, slots[0].Day)
		assert.Equal(t, ClockTime(540), slots[0].From)
		assert.Equal(t, ClockTime(1020), slots[0].To)
	}
}

func TestNormalizeOrdersMondayFirst(t *testing.T) {
	slots := Normalize(map[string]DayHours{
		"sunday":    {In: "10:00", Out: "12:00"},
		"wednesday": {In: "08:00", Out: "20:00"},
		"monday":    {In: "09:00", Out: "17:00"},
	})
	require.Len(t, slots, 3)
	assert.Equal(t, time.Monday, slots[0].Day)
	assert.Equal(t, time.Wednesday, slots[1].Day)
	assert.Equal(t, time.Sunday, slots[2].Day)
}

func TestNormalizeSkipsMalformedEntries(t *testing.T) {
	slots := Normalize(map[string]DayHours{
		"monday":    {In: "9am", Out: "17:00"},
		"tuesday":   {In: "09:00", Out: "25:00"},
		"wednesday": {In: "", Out: "17:00"},
		"thursday":  {In: "09:00", Out: "17:00"},
		"someday":   {In: "09:00", Out: "17:00"},
	})
	require.Len(t, slots, 1)
	assert.Equal(t, time.Thursday, slots[0].Day)
}

func TestNormalizeEmptySchedule(t *testing.T) {
	assert.Empty(t, Normalize(nil))
	assert.Empty(t, Normalize(map[string]DayHours{}))
}

func TestNormalizePassesInvertedWindowThrough(t *testing.T) {
	slots := Normalize(map[string]DayHours{
		"friday": {In: "17:00", Out: "09:00"},
	})
	require.Len(t, slots, 1)
	assert.Equal(t, ClockTime(1020), slots[0].From)
	assert.Equal(t, ClockTime(540), slots[0].To)
}

func TestNormalizeIdempotent(t *testing.T) {
	input := map[string]DayHours{
		"monday":   {In: "09:00", Out: "17:00"},
		"saturday": {In: "10:00", Out: "14:00"},
	}
	first := Normalize(input)
	second := Normalize(input)
	assert.Equal(t, first, second)
}

// 2024-03-04 is a Monday.
func mondayAt(hour, minute int) time.Time {
	return time.Date(2024, 3, 4, hour, minute, 0, 0, time.UTC)
}

func TestMatchesInsideWindow(t *testing.T) {
	slots := Normalize(map[string]DayHours{
		"monday": {In: "09:00", Out: "17:00"},
	})

	assert.True(t, Matches(slots, mondayAt(10, 0), mondayAt(12, 0)))
	assert.True(t, Matches(slots, mondayAt(9, 0), mondayAt(17, 0)), "window boundaries are inclusive")
	assert.False(t, Matches(slots, mondayAt(8, 0), mondayAt(12, 0)), "starts before open")
	assert.False(t, Matches(slots, mondayAt(10, 0), mondayAt(18, 0)), "ends after close")
}

func TestMatchesWrongWeekday(t *testing.T) {
	slots := Normalize(map[string]DayHours{
		"tuesday": {In: "00:00", Out: "23:59"},
	})
	// Tuesday's window would satisfy the clock comparison, but the query is a Monday.
	assert.False(t, Matches(slots, mondayAt(10, 0), mondayAt(12, 0)))
}

func TestMatchesNoSlots(t *testing.T) {
	assert.False(t, Matches(nil, mondayAt(10, 0), mondayAt(12, 0)))
}

func TestMatchesInvertedSlotSameDay(t *testing.T) {
	slots := []Slot{{Day: time.Monday, From: 1020, To: 540}}
	assert.False(t, Matches(slots, mondayAt(10, 0), mondayAt(12, 0)))
	assert.False(t, Matches(slots, mondayAt(18, 0), mondayAt(20, 0)))
}

func TestMatchesComparesClockTimeOnly(t *testing.T) {
	slots := Normalize(map[string]DayHours{
		"monday": {In: "09:00", Out: "17:00"},
	})
	// The calendar date of the end timestamp is discarded: an interval ending
	// two days later still matches on clock time alone.
	end := mondayAt(11, 0).AddDate(0, 0, 2)
	assert.True(t, Matches(slots, mondayAt(10, 0), end))
}
