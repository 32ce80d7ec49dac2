package habit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habittracker/internal/model"
)

func validDraft() *model.Habit {
	return &model.Habit{
		OwnerID:   1,
		Place:     "home",
		Action:    "stretch for two minutes",
		StartTime: time.Now().Add(time.Hour),
		Interval:  model.IntervalDaily,
		Duration:  60 * time.Second,
	}
}

func TestValidateAccepts(t *testing.T) {
	t.Run("plain habit with reward", func(t *testing.T) {
		h := validDraft()
		h.Reward = "a cup of coffee"
		require.NoError(t, Validate(h, nil))
	})

	t.Run("habit with nice companion", func(t *testing.T) {
		h := validDraft()
		companionID := int64(7)
		h.RelatedTo = &companionID
		companion := &model.Habit{ID: companionID, IsNice: true}
		require.NoError(t, Validate(h, companion))
	})

	t.Run("nice habit without extras", func(t *testing.T) {
		h := validDraft()
		h.IsNice = true
		require.NoError(t, Validate(h, nil))
	})

	t.Run("habit with neither reward nor companion", func(t *testing.T) {
		require.NoError(t, Validate(validDraft(), nil))
	})
}

func TestValidateCompanionRewardConflict(t *testing.T) {
	h := validDraft()
	companionID := int64(7)
	h.RelatedTo = &companionID
	h.Reward = "rest"

	err := Validate(h, &model.Habit{ID: companionID, IsNice: true})
	assert.ErrorIs(t, err, ErrCompanionRewardConflict)
}

func TestValidateCompanionMustBeNice(t *testing.T) {
	h := validDraft()
	companionID := int64(7)
	h.RelatedTo = &companionID

	err := Validate(h, &model.Habit{ID: companionID, IsNice: false})
	assert.ErrorIs(t, err, ErrCompanionNotNice)

	// unresolved companion is rejected the same way
	err = Validate(h, nil)
	assert.ErrorIs(t, err, ErrCompanionNotNice)
}

func TestValidateNiceHabitHasNoExtras(t *testing.T) {
	t.Run("nice with reward", func(t *testing.T) {
		h := validDraft()
		h.IsNice = true
		h.Reward = "rest"
		assert.ErrorIs(t, Validate(h, nil), ErrNiceHabitHasExtras)
	})

	t.Run("nice with companion", func(t *testing.T) {
		h := validDraft()
		h.IsNice = true
		companionID := int64(7)
		h.RelatedTo = &companionID
		assert.ErrorIs(t, Validate(h, &model.Habit{ID: companionID, IsNice: true}), ErrNiceHabitHasExtras)
	})
}

func TestValidateDuration(t *testing.T) {
	h := validDraft()
	h.Duration = 121 * time.Second
	assert.ErrorIs(t, Validate(h, nil), ErrDurationTooLong)

	h.Duration = 120 * time.Second
	assert.NoError(t, Validate(h, nil), "exactly 120s is allowed")
}

func TestValidateInterval(t *testing.T) {
	h := validDraft()
	h.Interval = "once in a blue moon"
	assert.ErrorIs(t, Validate(h, nil), ErrBadInterval)
}

func TestValidateIsPure(t *testing.T) {
	h := validDraft()
	companionID := int64(7)
	h.RelatedTo = &companionID
	h.Reward = "rest"
	before := *h

	_ = Validate(h, &model.Habit{ID: companionID, IsNice: true})
	assert.Equal(t, before, *h, "validation must not mutate the candidate")
}
