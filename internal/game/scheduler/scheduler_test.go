package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var base = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func TestTickFiresDueTasks(t *testing.T) {
	s := New(nil)

	var fired int
	s.Schedule("test", base.Add(time.Minute), func(now time.Time) time.Time {
		fired++
		return now.Add(time.Minute)
	})

	assert.Zero(t, s.Tick(base), "not due yet")
	assert.Equal(t, 1, s.Tick(base.Add(time.Minute)))
	assert.Equal(t, 1, fired)

	// Rescheduled from fire time.
	assert.Zero(t, s.Tick(base.Add(90*time.Second)))
	assert.Equal(t, 1, s.Tick(base.Add(2*time.Minute)))
}

func TestLateTickFiresOnce(t *testing.T) {
	s := New(nil)

	var fired int
	s.Schedule("test", base.Add(time.Minute), func(now time.Time) time.Time {
		fired++
		return now.Add(time.Minute)
	})

	// Hours late: still exactly one fire for this tick.
	s.Tick(base.Add(5 * time.Hour))
	assert.Equal(t, 1, fired)
}

func TestZeroDeadlineRemovesTask(t *testing.T) {
	s := New(nil)
	s.Schedule("once", base, func(now time.Time) time.Time {
		return time.Time{}
	})

	assert.Equal(t, 1, s.Tick(base))
	assert.Zero(t, s.Tick(base.Add(time.Hour)))

	_, ok := s.NextDeadline()
	assert.False(t, ok)
}

func TestNextDeadline(t *testing.T) {
	s := New(nil)
	s.Schedule("late", base.Add(2*time.Hour), func(now time.Time) time.Time { return time.Time{} })
	s.Schedule("early", base.Add(time.Hour), func(now time.Time) time.Time { return time.Time{} })

	due, ok := s.NextDeadline()
	assert.True(t, ok)
	assert.Equal(t, base.Add(time.Hour), due)
}

func TestNextMidnight(t *testing.T) {
	next := NextMidnight(base)
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), next)

	// Exactly at midnight: next boundary is the following day.
	midnight := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), NextMidnight(midnight))
}
