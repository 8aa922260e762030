package service

import "time"

// Defaults applied when a caller supplies no explicit window: washes
// start almost immediately and run for half an hour.
const (
	defaultStartDelay = 5 * time.Second
	defaultWashLength = 30 * time.Minute
)

// TimeInput carries the timing fields a caller may supply. Nil means
// not supplied, which is distinct from a zero value.
type TimeInput struct {
	ScheduledAt      *time.Time
	FinishAt         *time.Time
	ETAMinutes       *int
	CountdownSeconds *int64
}

// ResolvedTimes is the canonical timing triple stored on a booking,
// plus the legacy countdown kept consistent with it at write time.
type ResolvedTimes struct {
	ScheduledAt      time.Time
	FinishAt         time.Time
	TotalSeconds     int64
	RemainingSeconds int64
}

// ResolveTimes turns partial timing input into a full triple:
//
//  1. Explicit scheduled and finish instants are used verbatim.
//  2. A missing scheduled instant defaults to now plus a short delay.
//     A missing finish instant is derived from the ETA when one is
//     given, otherwise it defaults to now plus the standard length.
//  3. The duration is derived from the window unless the caller
//     supplied an explicit countdown, which wins even when it
//     disagrees with the window. The mismatch is deliberate caller
//     override semantics, not something to repair here.
//
// ResolveTimes never fails; unparseable timestamps are rejected at the
// transport boundary before this runs.
func ResolveTimes(in TimeInput, now time.Time) ResolvedTimes {
	var resolved ResolvedTimes

	if in.ScheduledAt != nil {
		resolved.ScheduledAt = *in.ScheduledAt
	} else {
		resolved.ScheduledAt = now.Add(defaultStartDelay)
	}

	switch {
	case in.FinishAt != nil:
		resolved.FinishAt = *in.FinishAt
	case in.ETAMinutes != nil:
		resolved.FinishAt = resolved.ScheduledAt.Add(time.Duration(*in.ETAMinutes) * time.Minute)
	default:
		resolved.FinishAt = now.Add(defaultWashLength)
	}

	resolved.TotalSeconds = int64(resolved.FinishAt.Sub(resolved.ScheduledAt) / time.Second)
	if in.CountdownSeconds != nil {
		resolved.TotalSeconds = *in.CountdownSeconds
	}
	resolved.RemainingSeconds = resolved.TotalSeconds

	return resolved
}
