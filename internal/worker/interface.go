package worker

import (
	"context"

	"github.com/nara/thaiquest/internal/models"
)

// SessionIntentSink defines the interface for delivering asynchronous
// recognition outcomes into a running session.
// This avoids import cycles by not importing the services package
type SessionIntentSink interface {
	ApplyRecognition(ctx context.Context, sessionID string, promptIndex int, result models.IntentMatchResult) error
}
