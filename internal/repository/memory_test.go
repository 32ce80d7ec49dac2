package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habittracker/internal/model"
)

func seedHabit(t *testing.T, s *MemoryHabitStore, ownerID int64, startTime time.Time, public bool) int64 {
	t.Helper()
	id, err := s.Insert(context.Background(), &model.Habit{
		OwnerID:   ownerID,
		Place:     "home",
		Action:    "test",
		StartTime: startTime,
		Interval:  model.IntervalDaily,
		Duration:  60 * time.Second,
		IsPublic:  public,
	})
	require.NoError(t, err)
	return id
}

func TestMemoryHabitStoreListDueBetweenBoundaries(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryHabitStore()

	lower := time.Date(2024, 1, 17, 12, 0, 0, 0, time.UTC)
	upper := lower.Add(10 * time.Minute)

	atLower := seedHabit(t, s, 1, lower, false)
	inside := seedHabit(t, s, 1, lower.Add(5*time.Minute), false)
	seedHabit(t, s, 1, upper, false)                    // == upper, excluded
	seedHabit(t, s, 1, lower.Add(-time.Second), false)  // before window
	seedHabit(t, s, 1, upper.Add(time.Second), false)   // after window

	due, err := s.ListDueBetween(ctx, lower, upper)
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, atLower, due[0].ID, "start_time == lower is included")
	assert.Equal(t, inside, due[1].ID)
}

func TestMemoryHabitStoreListVisible(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryHabitStore()
	now := time.Now()

	ownPrivate := seedHabit(t, s, 1, now, false)
	ownPublic := seedHabit(t, s, 1, now, true)
	otherPublic := seedHabit(t, s, 2, now, true)
	seedHabit(t, s, 2, now, false) // other user's private habit, invisible

	visible, err := s.ListVisible(ctx, 1, 10, 0)
	require.NoError(t, err)
	require.Len(t, visible, 3, "own public habit must not be double counted")
	assert.Equal(t, []int64{ownPrivate, ownPublic, otherPublic},
		[]int64{visible[0].ID, visible[1].ID, visible[2].ID}, "ordered by id ascending")
}

func TestMemoryHabitStoreListVisiblePagination(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryHabitStore()
	now := time.Now()

	for i := 0; i < 7; i++ {
		seedHabit(t, s, 1, now, false)
	}

	page, err := s.ListVisible(ctx, 1, 5, 0)
	require.NoError(t, err)
	assert.Len(t, page, 5)

	page, err = s.ListVisible(ctx, 1, 5, 5)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	page, err = s.ListVisible(ctx, 1, 5, 100)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestMemoryHabitStoreUpdateStartTime(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryHabitStore()
	start := time.Now()

	id := seedHabit(t, s, 1, start, false)
	next := start.AddDate(0, 0, 1)

	require.NoError(t, s.UpdateStartTime(ctx, id, next))

	h, err := s.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, h.StartTime.Equal(next))

	// habit deleted mid-sweep
	err = s.UpdateStartTime(ctx, 999, next)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryUserStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryUserStore()

	u := &model.User{Email: "anna@example.com", TgChatID: "1234567890", FirstName: "Anna"}
	require.NoError(t, s.CreateUser(ctx, u))
	assert.Equal(t, int64(1), u.ID)

	found, err := s.FindByEmail(ctx, "anna@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	_, err = s.FindByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	found.FirstName = "Test"
	require.NoError(t, s.UpdateUser(ctx, found))

	reloaded, err := s.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test", reloaded.FirstName)
}
