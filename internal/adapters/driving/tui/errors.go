package tui

import "errors"

// ErrMissingQuizFactory is returned when the quiz factory is not provided.
var ErrMissingQuizFactory = errors.New("tui: quiz factory is required")
