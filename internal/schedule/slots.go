// Package schedule computes open lesson slots for a single working day.
// All times are minutes since midnight; all computations are pure.
package schedule

import "sort"

// Grid steps used when enumerating candidate start times.
const (
	QuarterHour = 15
	HalfHour    = 30
)

// Interval is a half-open [Start, End) span of minutes within a day.
type Interval struct {
	Start int
	End   int
}

// Len returns the interval length in minutes.
func (i Interval) Len() int {
	return i.End - i.Start
}

// sortedByStart returns a copy of booked ordered by start ascending. Bookings
// are never mutated; overlapping entries are a data anomaly the sweep
// tolerates.
func sortedByStart(booked []Interval) []Interval {
	out := make([]Interval, len(booked))
	copy(out, booked)
	sort.SliceStable(out, func(a, b int) bool { return out[a].Start < out[b].Start })
	return out
}

// FreeIntervals returns the sub-intervals of work not covered by any booking.
func FreeIntervals(work Interval, booked []Interval) []Interval {
	var free []Interval
	cursor := work.Start
	for _, b := range sortedByStart(booked) {
		if b.Start > cursor {
			end := b.Start
			if end > work.End {
				end = work.End
			}
			if end > cursor {
				free = append(free, Interval{Start: cursor, End: end})
			}
		}
		if b.End > cursor {
			cursor = b.End
		}
		if cursor >= work.End {
			return free
		}
	}
	if cursor < work.End {
		free = append(free, Interval{Start: cursor, End: work.End})
	}
	return free
}

// CandidateStarts enumerates grid-aligned start times within work where a
// lesson of duration minutes fits without overlapping a booking. The grid
// origin is midnight; a work start that is not grid-aligned rounds up to the
// next boundary. A duration longer than the working window yields nil.
func CandidateStarts(work Interval, booked []Interval, duration, step int) []int {
	if duration <= 0 || step <= 0 || duration > work.Len() {
		return nil
	}

	var starts []int
	cursor := work.Start
	emit := func(gapEnd int) {
		for at := alignUp(cursor, step); at+duration <= gapEnd; at += step {
			starts = append(starts, at)
		}
	}

	for _, b := range sortedByStart(booked) {
		if b.Start > cursor {
			gapEnd := b.Start
			if gapEnd > work.End {
				gapEnd = work.End
			}
			emit(gapEnd)
		}
		if b.End > cursor {
			cursor = b.End
		}
		if cursor >= work.End {
			return starts
		}
	}
	emit(work.End)
	return starts
}

// FirstFit returns the earliest start time at which a lesson of duration
// minutes fits, without grid alignment. The second return is false when no
// slot exists before the end of the working window.
func FirstFit(work Interval, booked []Interval, duration int) (int, bool) {
	if duration <= 0 {
		return 0, false
	}

	cursor := work.Start
	for _, b := range sortedByStart(booked) {
		if cursor+duration <= b.Start {
			break
		}
		if b.End > cursor {
			cursor = b.End
		}
	}
	if cursor+duration > work.End {
		return 0, false
	}
	return cursor, true
}

func alignUp(minute, step int) int {
	if rem := minute % step; rem != 0 {
		return minute + step - rem
	}
	return minute
}
