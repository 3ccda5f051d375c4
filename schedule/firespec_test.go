package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeFireSpecNoRollover(t *testing.T) {
	spec, err := ComputeFireSpec(time.Wednesday, Clock{Hour: 16, Minute: 0}, 30)
	require.NoError(t, err)
	assert.Equal(t, FireSpec{Day: time.Wednesday, Hour: 15, Minute: 30}, spec)
}

func TestComputeFireSpecMidnightRollover(t *testing.T) {
	// A naive same-day subtraction would land on Monday with a negative
	// minute; the correct reminder is the preceding Sunday night.
	spec, err := ComputeFireSpec(time.Monday, Clock{Hour: 0, Minute: 10}, 30)
	require.NoError(t, err)
	assert.Equal(t, FireSpec{Day: time.Sunday, Hour: 23, Minute: 40}, spec)
}

func TestComputeFireSpecWeekWrap(t *testing.T) {
	spec, err := ComputeFireSpec(time.Sunday, Clock{Hour: 0, Minute: 5}, 10)
	require.NoError(t, err)
	assert.Equal(t, FireSpec{Day: time.Saturday, Hour: 23, Minute: 55}, spec)

	// A lead longer than a whole week wraps the same way.
	spec, err = ComputeFireSpec(time.Monday, Clock{Hour: 10, Minute: 0}, minutesPerWeek+10)
	require.NoError(t, err)
	assert.Equal(t, FireSpec{Day: time.Monday, Hour: 9, Minute: 50}, spec)
}

func TestComputeFireSpecRoundTrip(t *testing.T) {
	// Adding the lead back in weekly-minute space must recover the input.
	for day := time.Sunday; day <= time.Saturday; day++ {
		for _, clock := range []Clock{{0, 0}, {0, 10}, {9, 30}, {16, 0}, {23, 59}} {
			for _, lead := range []int{0, 1, 15, 30, 45, 90, 1440, 3000, minutesPerWeek - 1} {
				spec, err := ComputeFireSpec(day, clock, lead)
				require.NoError(t, err)

				total := int(spec.Day)*minutesPerDay + spec.Hour*60 + spec.Minute + lead
				total %= minutesPerWeek
				assert.Equal(t, int(day), total/minutesPerDay,
					"day mismatch for %v %v lead=%d", day, clock, lead)
				assert.Equal(t, clock.Hour, (total%minutesPerDay)/60,
					"hour mismatch for %v %v lead=%d", day, clock, lead)
				assert.Equal(t, clock.Minute, total%60,
					"minute mismatch for %v %v lead=%d", day, clock, lead)
			}
		}
	}
}

func TestComputeFireSpecNegativeLead(t *testing.T) {
	_, err := ComputeFireSpec(time.Monday, Clock{Hour: 10, Minute: 0}, -1)
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestFireSpecFor(t *testing.T) {
	spec, err := FireSpecFor("Friday", "18:00", 15)
	require.NoError(t, err)
	assert.Equal(t, FireSpec{Day: time.Friday, Hour: 17, Minute: 45}, spec)

	for _, tc := range []struct {
		day, start string
		lead       int
	}{
		{"Funday", "18:00", 15},
		{"Friday", "25:00", 15},
		{"Friday", "18:70", 15},
		{"Friday", "noon", 15},
		{"Friday", "18:00", -5},
	} {
		_, err := FireSpecFor(tc.day, tc.start, tc.lead)
		assert.ErrorIs(t, err, ErrInvalidSchedule, "%v", tc)
	}
}

func TestParseWeekday(t *testing.T) {
	for name, want := range map[string]time.Weekday{
		"Monday":    time.Monday,
		"monday":    time.Monday,
		"SUNDAY":    time.Sunday,
		" Saturday": time.Saturday,
	} {
		got, err := ParseWeekday(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseWeekday("Mon")
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestParseClock(t *testing.T) {
	clock, err := ParseClock("14:30")
	require.NoError(t, err)
	assert.Equal(t, Clock{Hour: 14, Minute: 30}, clock)
	assert.Equal(t, "14:30", clock.String())

	for _, s := range []string{"1430", "14:3x", "x:30", "24:00", "14:60", ""} {
		_, err := ParseClock(s)
		assert.ErrorIs(t, err, ErrInvalidSchedule, "%q", s)
	}
}

func TestCanonicalWeekday(t *testing.T) {
	for name, want := range map[string]string{
		"friday":  "Friday",
		"FRIDAY":  "Friday",
		"Friday":  "Friday",
		"sunday ": "Sunday",
	} {
		got, err := CanonicalWeekday(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := CanonicalWeekday("Fri")
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestFireSpecMatches(t *testing.T) {
	spec := FireSpec{Day: time.Friday, Hour: 17, Minute: 45}

	// 2024-01-05 is a Friday.
	assert.True(t, spec.Matches(time.Date(2024, time.January, 5, 17, 45, 12, 0, time.UTC)))
	assert.False(t, spec.Matches(time.Date(2024, time.January, 5, 17, 46, 0, 0, time.UTC)))
	assert.False(t, spec.Matches(time.Date(2024, time.January, 6, 17, 45, 0, 0, time.UTC)))
}
