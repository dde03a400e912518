package timer

import "github.com/studytrack/studytrack/internal/apperr"

var (
	errInvalidSoundFormat = &apperr.Error{
		Message: "%s: sound file must be in mp3, ogg, flac, or wav format",
	}

	errParseSessionCmd = &apperr.Error{
		Message: "unable to parse session command",
	}

	errTaskCompleted = &apperr.Error{
		Message: "task %q is already completed",
	}
)
