package habit

import "errors"

// Validation failures. Each maps to a distinct 400 response.
var (
	ErrCompanionRewardConflict = errors.New("companion habit and reward are mutually exclusive")
	ErrCompanionNotNice        = errors.New("companion habit must be a pleasant habit")
	ErrNiceHabitHasExtras      = errors.New("pleasant habits carry no reward or companion")
	ErrDurationTooLong         = errors.New("duration exceeds the 120 second maximum")
	ErrBadInterval             = errors.New("interval must be one of daily, every_2_days, every_3_days, weekly")
)

// Access failures.
var (
	ErrNotFound = errors.New("habit not found")
	ErrNotOwner = errors.New("habit belongs to another user")
)

// IsValidationError reports whether err is one of the business-rule
// rejections that should surface as a 400 to the API caller.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrCompanionRewardConflict) ||
		errors.Is(err, ErrCompanionNotNice) ||
		errors.Is(err, ErrNiceHabitHasExtras) ||
		errors.Is(err, ErrDurationTooLong) ||
		errors.Is(err, ErrBadInterval)
}
