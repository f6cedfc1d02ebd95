package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func minutes(h, m int) int { return h*60 + m }

func TestFreeIntervalsEmptyDay(t *testing.T) {
	work := Interval{Start: minutes(9, 0), End: minutes(12, 0)}
	free := FreeIntervals(work, nil)
	require.Len(t, free, 1)
	assert.Equal(t, work, free[0])
}

func TestFreeIntervalsSplitsAroundBookings(t *testing.T) {
	work := Interval{Start: minutes(9, 0), End: minutes(17, 0)}
	booked := []Interval{
		{Start: minutes(10, 0), End: minutes(11, 0)},
		{Start: minutes(14, 0), End: minutes(14, 30)},
	}
	free := FreeIntervals(work, booked)
	assert.Equal(t, []Interval{
		{Start: minutes(9, 0), End: minutes(10, 0)},
		{Start: minutes(11, 0), End: minutes(14, 0)},
		{Start: minutes(14, 30), End: minutes(17, 0)},
	}, free)
}

func TestFreeIntervalsOverlappingBookings(t *testing.T) {
	work := Interval{Start: minutes(9, 0), End: minutes(12, 0)}
	booked := []Interval{
		{Start: minutes(9, 30), End: minutes(10, 30)},
		{Start: minutes(10, 0), End: minutes(11, 0)},
	}
	free := FreeIntervals(work, booked)
	assert.Equal(t, []Interval{
		{Start: minutes(9, 0), End: minutes(9, 30)},
		{Start: minutes(11, 0), End: minutes(12, 0)},
	}, free)
}

func TestCandidateStartsScenario(t *testing.T) {
	// Monday 09:00-12:00 with a 60-minute lesson at 10:00; 30-minute request.
	work := Interval{Start: minutes(9, 0), End: minutes(12, 0)}
	booked := []Interval{{Start: minutes(10, 0), End: minutes(11, 0)}}

	starts := CandidateStarts(work, booked, 30, QuarterHour)
	assert.Equal(t, []int{
		minutes(9, 0), minutes(9, 15), minutes(9, 30),
		minutes(11, 0), minutes(11, 15), minutes(11, 30),
	}, starts)
}

func TestCandidateStartsFullGridWhenUnbooked(t *testing.T) {
	work := Interval{Start: minutes(9, 0), End: minutes(10, 0)}
	starts := CandidateStarts(work, nil, 30, QuarterHour)
	assert.Equal(t, []int{minutes(9, 0), minutes(9, 15), minutes(9, 30)}, starts)
}

func TestCandidateStartsUnalignedWorkStart(t *testing.T) {
	work := Interval{Start: minutes(9, 10), End: minutes(10, 10)}
	starts := CandidateStarts(work, nil, 30, QuarterHour)
	// First candidate rounds up to 09:15.
	assert.Equal(t, []int{minutes(9, 15), minutes(9, 30)}, starts)
}

func TestCandidateStartsDurationTooLong(t *testing.T) {
	work := Interval{Start: minutes(9, 0), End: minutes(10, 0)}
	assert.Nil(t, CandidateStarts(work, nil, 90, QuarterHour))
}

func TestCandidateStartsSlotFeasibility(t *testing.T) {
	work := Interval{Start: minutes(9, 0), End: minutes(18, 0)}
	booked := []Interval{
		{Start: minutes(9, 45), End: minutes(10, 45)},
		{Start: minutes(13, 0), End: minutes(14, 0)},
		{Start: minutes(13, 30), End: minutes(15, 0)},
	}
	for _, duration := range []int{20, 30, 45, 60} {
		for _, start := range CandidateStarts(work, booked, duration, QuarterHour) {
			end := start + duration
			assert.LessOrEqual(t, end, work.End)
			for _, b := range booked {
				overlap := start < b.End && end > b.Start
				assert.False(t, overlap, "start %d overlaps booking %+v", start, b)
			}
		}
	}
}

func TestCandidateStartsMonotonicity(t *testing.T) {
	work := Interval{Start: minutes(9, 0), End: minutes(18, 0)}
	booked := []Interval{{Start: minutes(10, 0), End: minutes(11, 0)}}

	before := CandidateStarts(work, booked, 30, QuarterHour)
	withMore := CandidateStarts(work, append(booked, Interval{Start: minutes(15, 0), End: minutes(16, 0)}), 30, QuarterHour)

	assert.LessOrEqual(t, len(withMore), len(before))
	set := make(map[int]bool, len(before))
	for _, s := range before {
		set[s] = true
	}
	for _, s := range withMore {
		assert.True(t, set[s], "new start %d appeared after adding a booking", s)
	}
}

func TestFirstFit(t *testing.T) {
	work := Interval{Start: minutes(9, 0), End: minutes(12, 0)}
	booked := []Interval{{Start: minutes(9, 0), End: minutes(10, 0)}}

	start, ok := FirstFit(work, booked, 30)
	require.True(t, ok)
	assert.Equal(t, minutes(10, 0), start)
}

func TestFirstFitGapBetweenBookings(t *testing.T) {
	work := Interval{Start: minutes(9, 0), End: minutes(17, 0)}
	booked := []Interval{
		{Start: minutes(9, 0), End: minutes(9, 30)},
		{Start: minutes(10, 0), End: minutes(11, 0)},
	}

	start, ok := FirstFit(work, booked, 30)
	require.True(t, ok)
	assert.Equal(t, minutes(9, 30), start)
}

func TestFirstFitNoRoom(t *testing.T) {
	work := Interval{Start: minutes(9, 0), End: minutes(10, 0)}
	booked := []Interval{{Start: minutes(9, 0), End: minutes(9, 45)}}

	_, ok := FirstFit(work, booked, 30)
	assert.False(t, ok)
}

func TestFirstFitEmptyDay(t *testing.T) {
	work := Interval{Start: minutes(9, 0), End: minutes(18, 0)}
	start, ok := FirstFit(work, nil, 45)
	require.True(t, ok)
	assert.Equal(t, minutes(9, 0), start)
}
