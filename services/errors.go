package services

import "github.com/cockroachdb/errors"

// Validation and submission error taxonomy. These surface directly to the
// submitting contestant and are all recoverable by resubmitting.
var (
	// ErrIncompletePicks means the submission does not carry exactly one
	// ATS pick for every game in the week.
	ErrIncompletePicks = errors.New("incomplete picks: every game requires exactly one ATS pick")

	// ErrInsufficientParlayLegs means the parlay carries fewer legs than
	// the house minimum.
	ErrInsufficientParlayLegs = errors.New("insufficient parlay legs")

	// ErrDuplicateGameInParlay means two parlay legs reference the same game.
	ErrDuplicateGameInParlay = errors.New("duplicate game in parlay")

	// ErrSubmissionLocked means the lock deadline passed and house rules
	// disallow late submissions.
	ErrSubmissionLocked = errors.New("submission window is locked")

	// ErrInconsistentLineData means a game had no usable line at pick
	// time. The submission fails rather than defaulting the spread to
	// zero, which would mask a feed problem.
	ErrInconsistentLineData = errors.New("inconsistent line data at pick time")

	// ErrSubmissionConflict means a concurrent submission for the same
	// contestant and week won the write. Retryable.
	ErrSubmissionConflict = errors.New("concurrent submission conflict")

	// ErrUnknownContestant means the submission names a contestant the
	// league does not know.
	ErrUnknownContestant = errors.New("unknown contestant")

	// ErrUnknownGame means a pick or leg references a game that is not
	// part of the week, or a team not playing in it.
	ErrUnknownGame = errors.New("pick references unknown game or team")
)

// IsValidationError reports whether err belongs to the taxonomy a
// contestant can fix by resubmitting.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrIncompletePicks) ||
		errors.Is(err, ErrInsufficientParlayLegs) ||
		errors.Is(err, ErrDuplicateGameInParlay) ||
		errors.Is(err, ErrSubmissionLocked) ||
		errors.Is(err, ErrInconsistentLineData) ||
		errors.Is(err, ErrUnknownContestant) ||
		errors.Is(err, ErrUnknownGame)
}
