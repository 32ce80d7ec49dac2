package habit

import (
	"habittracker/internal/model"
)

// Validate applies the cross-field business rules to a habit candidate.
// related must be the resolved companion habit when candidate.RelatedTo is
// set; it is ignored otherwise. Pure and deterministic, no side effects.
func Validate(candidate *model.Habit, related *model.Habit) error {
	if candidate.RelatedTo != nil {
		if candidate.Reward != "" {
			return ErrCompanionRewardConflict
		}
		if related == nil || !related.IsNice {
			return ErrCompanionNotNice
		}
	}

	if candidate.IsNice && (candidate.Reward != "" || candidate.RelatedTo != nil) {
		return ErrNiceHabitHasExtras
	}

	if candidate.Duration > model.MaxHabitDuration {
		return ErrDurationTooLong
	}

	if !candidate.Interval.Valid() {
		return ErrBadInterval
	}

	return nil
}
