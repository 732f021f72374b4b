package config

import "errors"

var (
	errInvalidDuration = errors.New(
		"session durations must be greater than zero",
	)

	errInvalidActionPoll = errors.New(
		"settings.action_poll must be positive and below one second",
	)

	errReadingInput = errors.New(
		"an error occurred while reading input, please try again",
	)
)
