// Package streak derives a user's consecutive-day reading streak from the
// date of their most recent reading event. It is event-driven: state only
// changes when a reading is logged, never by a background tick, so a lapsed
// streak is observed lazily on the next read.
package streak

import "time"

// State is the streak record embedded in the user row.
// Invariant after any Advance: Longest >= Current.
type State struct {
	Current  int        `json:"current"`
	Longest  int        `json:"longest"`
	LastDate *time.Time `json:"lastDate"`
}

// DateOnly strips the time of day, normalizing to midnight UTC. All streak
// comparisons happen on these normalized dates so that two reads within the
// same calendar day are a single streak day regardless of clock time.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Advance applies a reading event at time now and returns the new state.
//
// First-ever read starts the streak at 1. A repeat read on the same calendar
// day is a no-op for the counters. A read the day after the last one extends
// the streak. Anything older resets to 1. A stored LastDate in the future is
// not a reachable state under normal operation and falls through to the
// reset branch, matching the behavior this logic was migrated from.
// LastDate is set to today on every branch, including the same-day no-op.
func (s State) Advance(now time.Time) State {
	today := DateOnly(now)
	yesterday := today.AddDate(0, 0, -1)

	next := s
	switch {
	case s.LastDate == nil:
		next.Current = 1
	case DateOnly(*s.LastDate).Equal(today):
		// Already counted today.
	case DateOnly(*s.LastDate).Equal(yesterday):
		next.Current = s.Current + 1
	default:
		next.Current = 1
	}

	if next.Current > next.Longest {
		next.Longest = next.Current
	}
	next.LastDate = &today
	return next
}
