package viz

import (
	"errors"
	"fmt"
)

// Configuration and runtime errors.
var (
	// ErrHistoryDepth indicates a history depth outside [1, MaxHistoryDepth].
	ErrHistoryDepth = errors.New("viz: history depth out of range")

	// ErrInvalidFPS indicates a non-positive frame rate.
	ErrInvalidFPS = errors.New("viz: fps must be positive")

	// ErrInvalidWidth indicates a non-positive image width.
	ErrInvalidWidth = errors.New("viz: image width must be positive")

	// ErrInterrupted is returned by a key source when the user hits Ctrl-C
	// while the terminal is in raw mode.
	ErrInterrupted = errors.New("viz: interrupted")
)

// FrameError wraps an I/O failure with the frame it happened on.
type FrameError struct {
	Frame   int
	Op      string
	Wrapped error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("viz: %s frame %d: %v", e.Op, e.Frame, e.Wrapped)
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}
