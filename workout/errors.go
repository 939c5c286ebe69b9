package workout

import (
	"errors"

	"github.com/grit-cli/grit/internal/apperr"
)

// ErrCanceled is returned when the user cancels an operation at a prompt
// or declines a confirmation. No mutation has happened when it is seen.
var ErrCanceled = errors.New("operation canceled")

var (
	errActiveExists = &apperr.Error{
		Kind:    apperr.InvalidArgument,
		Message: "session %q is still active: end it before starting a new one",
	}

	errNoActive = &apperr.Error{
		Kind:    apperr.InvalidArgument,
		Message: "no session is active",
	}

	errNoExercise = &apperr.Error{
		Kind:    apperr.InvalidArgument,
		Message: "the active session has no exercises: add one before recording a set",
	}

	errDateTimePair = &apperr.Error{
		Kind:    apperr.InvalidArgument,
		Message: "provide both d/ and t/, or neither",
	}

	errOverlap = &apperr.Error{
		Kind:    apperr.Conflict,
		Message: "overlaps with %q (%s)",
	}

	errEndNotAfterStart = &apperr.Error{
		Kind:    apperr.Conflict,
		Message: "the end time must be after the session start (%s)",
	}

	errSwallow = &apperr.Error{
		Kind:    apperr.Conflict,
		Message: "ending at %s would overlap %q, which starts at %s",
	}

	errNoSuchIndex = &apperr.Error{
		Kind:    apperr.NotFound,
		Message: "no session numbered %d in %s",
	}

	errTagExists = &apperr.Error{
		Kind:    apperr.InvalidArgument,
		Message: "session %q already has the tag %q",
	}
)
