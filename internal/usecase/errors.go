package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrUnknownParticipant means the submission references an identity that
	// never completed the sync-on-login flow.
	ErrUnknownParticipant = errors.New("unknown participant")
	// ErrUnregisteredIdentity means a social link arrived for a profile with
	// no matching internal identity; linking never auto-provisions.
	ErrUnregisteredIdentity = errors.New("unregistered identity")
	// ErrSubmissionLocked means the lock deadline has passed; terminal for
	// the request.
	ErrSubmissionLocked = errors.New("submission locked")
	// ErrDuplicateIngestion means a stat row for the same (player, match)
	// pair was already ingested.
	ErrDuplicateIngestion = errors.New("duplicate stat ingestion")
)
