package argparse

import "github.com/grit-cli/grit/internal/apperr"

var (
	errFlagRequired = &apperr.Error{
		Kind:    apperr.InvalidArgument,
		Message: "the %s/ flag is required",
	}

	errDuplicateFlag = &apperr.Error{
		Kind:    apperr.InvalidArgument,
		Message: "the %s/ flag may only appear once",
	}

	errFlagOrder = &apperr.Error{
		Kind:    apperr.InvalidArgument,
		Message: "%s/ must come before %s/",
	}

	errMissingValue = &apperr.Error{
		Kind:    apperr.InvalidArgument,
		Message: "%s missing after %s/",
	}

	errSpaceAfterFlag = &apperr.Error{
		Kind:    apperr.InvalidArgument,
		Message: "remove the space after %s/",
	}

	errUnexpectedText = &apperr.Error{
		Kind:    apperr.InvalidArgument,
		Message: "unexpected text %q after %s/ value",
	}

	errUnexpectedLeadingText = &apperr.Error{
		Kind:    apperr.InvalidArgument,
		Message: "unexpected text %q before the first flag",
	}

	errUnsupportedFlag = &apperr.Error{
		Kind:    apperr.InvalidArgument,
		Message: "unsupported flag %s/",
	}

	errIllegalNameChar = &apperr.Error{
		Kind:    apperr.InvalidArgument,
		Message: "%s contains an illegal character %q: only letters, digits, spaces, - and _ are allowed",
	}

	errNameTooLong = &apperr.Error{
		Kind:    apperr.InvalidArgument,
		Message: "%s must be %d characters or less",
	}

	errBadDateFormat = &apperr.Error{
		Kind:    apperr.InvalidArgument,
		Message: "%s must be in DD/MM/YY format",
	}

	errBadMonthFormat = &apperr.Error{
		Kind:    apperr.InvalidArgument,
		Message: "%s must be in MM/YY format",
	}

	errMonthOutOfRange = &apperr.Error{
		Kind:    apperr.InvalidArgument,
		Message: "the month in %s must be between 01 and 12",
	}

	errDayOutOfRange = &apperr.Error{
		Kind:    apperr.InvalidArgument,
		Message: "day %02d does not exist in %02d/%02d",
	}

	errDateTooEarly = &apperr.Error{
		Kind:    apperr.InvalidArgument,
		Message: "%s is before %s, the month the app was first used",
	}

	errDateTooLate = &apperr.Error{
		Kind:    apperr.InvalidArgument,
		Message: "the year in %s must not exceed 2100",
	}

	errBadTimeFormat = &apperr.Error{
		Kind:    apperr.InvalidArgument,
		Message: "%s must be in HHMM 24-hour format",
	}

	errClockOutOfRange = &apperr.Error{
		Kind:    apperr.InvalidArgument,
		Message: "%s is not a valid 24-hour clock time",
	}

	errRepsOutOfRange = &apperr.Error{
		Kind:    apperr.InvalidArgument,
		Message: "reps must be 1..1000",
	}

	errBadInteger = &apperr.Error{
		Kind:    apperr.InvalidArgument,
		Message: "%s must be a positive number",
	}

	errBadWeight = &apperr.Error{
		Kind:    apperr.InvalidArgument,
		Message: "%s must be a number between 0.1 and 999.9 with at most one decimal place",
	}
)
