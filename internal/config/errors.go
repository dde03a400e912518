package config

import "github.com/studytrack/studytrack/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errUnknownSound = &apperr.Error{
		Message: "sound file not found",
	}

	errInvalidSoundFormat = &apperr.Error{
		Message: "invalid sound file format: %s (must be mp3, ogg, flac, or wav)",
	}

	errInvalidColor = &apperr.Error{
		Message: "%s color must be a valid hex color code (e.g. #FF0000), got %s",
	}

	errEmptyMsg = &apperr.Error{
		Message: "%s message cannot be empty",
	}

	errInvalidDuration = &apperr.Error{
		Message: "%s duration must be between %v and %v",
	}

	errInvalidConfigDuration = &apperr.Error{
		Message: "%s in config file: %v",
	}

	errInvalidCLIDuration = &apperr.Error{
		Message: "invalid --%s duration: %v",
	}

	errInvalidPeriod = &apperr.Error{
		Message: "invalid stats period %q: expected one of %v",
	}
)
