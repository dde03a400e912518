package app

import "github.com/studytrack/studytrack/internal/apperr"

var (
	errMissingArg = &apperr.Error{
		Message: "missing %s: see '%s --help'",
	}

	errNothingToUpdate = &apperr.Error{
		Message: "nothing to update: pass at least one of %s",
	}

	errInvalidDate = &apperr.Error{
		Message: "invalid date",
	}

	errUnknownPeriod = &apperr.Error{
		Message: "unknown period %q: expected one of %s",
	}
)
