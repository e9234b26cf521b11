package worker

import (
	"context"

	"github.com/nara/thaiquest/internal/input"
	"github.com/nara/thaiquest/internal/logger"
	"github.com/nara/thaiquest/internal/models"
	"github.com/nara/thaiquest/internal/speech"
)

// RecognitionJob runs one speech recognition off the request path and feeds
// the outcome back into its session. The targets and prompt index are
// snapshotted at enqueue time; the sink re-checks the session phase before
// applying the result so a transcript that arrives after the session ended
// or moved on is discarded.
type RecognitionJob struct {
	Sessions    SessionIntentSink
	Voice       *input.VoiceAdapter
	SessionID   string
	PromptIndex int
	Request     speech.Request
	Targets     []models.IntentTarget
}

func (j *RecognitionJob) Name() string { return "recognize_intent" }

func (j *RecognitionJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("session_id", j.SessionID)

	result, err := j.Voice.Listen(ctx, j.Request, j.Targets)
	if err != nil {
		// Conflict or cancellation; nothing to apply.
		log.Debug("recognition yielded no applicable result: %v", err)
		return nil
	}

	return j.Sessions.ApplyRecognition(ctx, j.SessionID, j.PromptIndex, result)
}
