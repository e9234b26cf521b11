package speech

import "context"

// Recognizer defines the interface for single-shot speech recognition.
// This interface enables testability by allowing mock implementations.
type Recognizer interface {
	Recognize(ctx context.Context, req Request) (string, error)
}

// Ensure Client implements the interface
var _ Recognizer = (*Client)(nil)
