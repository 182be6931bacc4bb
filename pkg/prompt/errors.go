package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrUnknownChoice is returned when a select answer matches no option.
	ErrUnknownChoice = errors.New("prompt: answer matches no option")
)
