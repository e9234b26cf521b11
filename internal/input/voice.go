package input

import (
	"context"
	"errors"
	"sync"

	apperrors "github.com/nara/thaiquest/internal/errors"
	"github.com/nara/thaiquest/internal/intent"
	"github.com/nara/thaiquest/internal/logger"
	"github.com/nara/thaiquest/internal/models"
	"github.com/nara/thaiquest/internal/speech"
)

// VoiceAdapter turns one speech recognition into an IntentMatchResult.
//
// Recognition failures never escape as errors: an unsupported platform, a
// service failure, or an empty transcript all come back as an unmatched
// result so the session keeps running. Only "a recognition is already
// pending" and cancellation are reported to the caller.
type VoiceAdapter struct {
	recognizer speech.Recognizer
	cfg        intent.MatcherConfig

	mu     sync.Mutex
	cancel context.CancelFunc
}

func NewVoiceAdapter(recognizer speech.Recognizer, cfg intent.MatcherConfig) *VoiceAdapter {
	return &VoiceAdapter{recognizer: recognizer, cfg: cfg}
}

// Listen performs one single-shot recognition and matches the transcript
// against the targets. At most one recognition may be in flight; a second
// Listen while one is pending returns a conflict error.
func (a *VoiceAdapter) Listen(ctx context.Context, req speech.Request, targets []models.IntentTarget) (models.IntentMatchResult, error) {
	log := logger.FromContext(ctx).WithPrefix("voice")

	a.mu.Lock()
	if a.cancel != nil {
		a.mu.Unlock()
		return models.Unmatched(""), apperrors.NewConflictError("a recognition is already in progress")
	}
	listenCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.mu.Unlock()

	defer func() {
		cancel()
		a.mu.Lock()
		a.cancel = nil
		a.mu.Unlock()
	}()

	transcript, err := a.recognizer.Recognize(listenCtx, req)
	if err != nil {
		if listenCtx.Err() != nil {
			// Stopped mid-flight; the result must be discarded, not applied.
			log.Debug("recognition cancelled")
			return models.Unmatched(""), listenCtx.Err()
		}
		if errors.Is(err, speech.ErrUnsupported) {
			log.Debug("recognition unsupported, yielding unmatched")
		} else {
			log.Warn("recognition failed, yielding unmatched: %v", err)
		}
		return models.Unmatched(""), nil
	}

	return intent.MatchSpokenIntentWith(a.cfg, transcript, targets), nil
}

// Stop cancels the in-flight recognition, if any. Safe to call at any time.
func (a *VoiceAdapter) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}
