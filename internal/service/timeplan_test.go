package service

import (
	"testing"
	"time"
)

func TestResolveTimesExplicitWindow(t *testing.T) {
	now := time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC)
	scheduled := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	finish := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	got := ResolveTimes(TimeInput{ScheduledAt: &scheduled, FinishAt: &finish}, now)

	if !got.ScheduledAt.Equal(scheduled) || !got.FinishAt.Equal(finish) {
		t.Fatalf("ResolveTimes() window = %v..%v, want %v..%v", got.ScheduledAt, got.FinishAt, scheduled, finish)
	}
	if got.TotalSeconds != 3600 {
		t.Errorf("TotalSeconds = %d, want 3600", got.TotalSeconds)
	}
	if got.RemainingSeconds != 3600 {
		t.Errorf("RemainingSeconds = %d, want 3600", got.RemainingSeconds)
	}
}

func TestResolveTimesScheduledPlusETA(t *testing.T) {
	now := time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC)
	scheduled := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	eta := 30

	got := ResolveTimes(TimeInput{ScheduledAt: &scheduled, ETAMinutes: &eta}, now)

	wantFinish := time.Date(2026, 8, 30, 9, 30, 0, 0, time.UTC)
	if !got.FinishAt.Equal(wantFinish) {
		t.Errorf("FinishAt = %v, want %v", got.FinishAt, wantFinish)
	}
	if got.TotalSeconds != 1800 {
		t.Errorf("TotalSeconds = %d, want 1800", got.TotalSeconds)
	}
}

func TestResolveTimesDefaults(t *testing.T) {
	now := time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC)

	got := ResolveTimes(TimeInput{}, now)

	if !got.ScheduledAt.Equal(now.Add(5 * time.Second)) {
		t.Errorf("ScheduledAt = %v, want now+5s", got.ScheduledAt)
	}
	if !got.FinishAt.Equal(now.Add(30 * time.Minute)) {
		t.Errorf("FinishAt = %v, want now+30m", got.FinishAt)
	}
	if got.TotalSeconds != 30*60-5 {
		t.Errorf("TotalSeconds = %d, want %d", got.TotalSeconds, 30*60-5)
	}
}

func TestResolveTimesFinishOnly(t *testing.T) {
	now := time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC)
	finish := time.Date(2026, 8, 30, 8, 45, 0, 0, time.UTC)

	got := ResolveTimes(TimeInput{FinishAt: &finish}, now)

	if !got.ScheduledAt.Equal(now.Add(5 * time.Second)) {
		t.Errorf("ScheduledAt = %v, want now+5s", got.ScheduledAt)
	}
	if !got.FinishAt.Equal(finish) {
		t.Errorf("FinishAt = %v, want %v", got.FinishAt, finish)
	}
}

// An explicit countdown wins over the derived duration even when it
// disagrees with the window. Caller override semantics, kept on purpose.
func TestResolveTimesCountdownOverride(t *testing.T) {
	now := time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC)
	scheduled := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	finish := scheduled.Add(30 * time.Minute)
	countdown := int64(900)

	got := ResolveTimes(TimeInput{ScheduledAt: &scheduled, FinishAt: &finish, CountdownSeconds: &countdown}, now)

	if got.TotalSeconds != 900 {
		t.Errorf("TotalSeconds = %d, want overridden 900", got.TotalSeconds)
	}
	if got.RemainingSeconds != 900 {
		t.Errorf("RemainingSeconds = %d, want overridden 900", got.RemainingSeconds)
	}
	if !got.FinishAt.Equal(finish) {
		t.Errorf("FinishAt = %v, want untouched %v", got.FinishAt, finish)
	}
}
