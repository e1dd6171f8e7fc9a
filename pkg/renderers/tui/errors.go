package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoSaver is returned when saving is requested without a saver.
	ErrNoSaver = errors.New("tui: saving is not configured")
)
