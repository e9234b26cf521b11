package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/nara/thaiquest/internal/errors"
	"github.com/nara/thaiquest/internal/input"
	"github.com/nara/thaiquest/internal/intent"
	"github.com/nara/thaiquest/internal/logger"
	"github.com/nara/thaiquest/internal/minigame"
	"github.com/nara/thaiquest/internal/models"
	"github.com/nara/thaiquest/internal/repository"
	"github.com/nara/thaiquest/internal/speech"
	"github.com/nara/thaiquest/internal/worker"
)

// SessionService owns the live mini-game sessions. Each session wraps one
// engine behind its own mutex, so engine calls are serialized per session
// as the state machine requires.
type SessionService interface {
	LevelDefinition(ctx context.Context, levelID int) (*minigame.Definition, error)
	CreateSession(ctx context.Context, userID string, levelID int) (*SessionView, error)
	StartSession(ctx context.Context, sessionID string) (*SessionView, error)
	TickSession(ctx context.Context, sessionID string) (*SessionView, error)
	PauseSession(ctx context.Context, sessionID string) (*SessionView, error)
	ResumeSession(ctx context.Context, sessionID string) (*SessionView, error)
	SubmitText(ctx context.Context, sessionID, text string) (*SubmitView, error)
	SubmitVoice(ctx context.Context, sessionID string, audio []byte) error
	EndSession(ctx context.Context, sessionID string) (*minigame.Results, error)
	SessionResults(ctx context.Context, sessionID string) (*minigame.Results, error)
	Snapshot(ctx context.Context, sessionID string) (*SessionView, error)
	CloseSession(ctx context.Context, sessionID string) error

	// ApplyRecognition delivers an asynchronous recognition outcome. Stale
	// results (session ended, paused, or moved past the prompt the audio
	// was captured for) are discarded.
	ApplyRecognition(ctx context.Context, sessionID string, promptIndex int, result models.IntentMatchResult) error
}

// SessionView is the read-only projection handed to the host: a state
// snapshot plus enough definition context to render.
type SessionView struct {
	SessionID  string              `json:"session_id"`
	LevelID    int                 `json:"level_id"`
	Definition minigame.Definition `json:"definition"`
	State      minigame.State      `json:"state"`
}

// SubmitView pairs an intent resolution with the state it produced.
type SubmitView struct {
	Match models.IntentMatchResult `json:"match"`
	State minigame.State           `json:"state"`
}

type session struct {
	mu     sync.Mutex
	id     string
	userID string
	engine *minigame.Engine
	voice  *input.VoiceAdapter

	persisted bool
}

type sessionService struct {
	vocab    repository.VocabularyRepository
	results  repository.ResultRepository
	profiles ProfileService

	recognizer speech.Recognizer
	pool       *worker.Pool
	tap        *input.TapAdapter
	matcherCfg intent.MatcherConfig

	locale     string
	vocabLimit int

	mu       sync.RWMutex
	sessions map[string]*session
}

// SessionServiceOptions bundles the collaborators and tuning the session
// service needs.
type SessionServiceOptions struct {
	Vocab      repository.VocabularyRepository
	Results    repository.ResultRepository
	Profiles   ProfileService
	Recognizer speech.Recognizer
	Pool       *worker.Pool
	MatcherCfg intent.MatcherConfig
	Locale     string
	VocabLimit int
}

// NewSessionService creates a new SessionService
func NewSessionService(opts SessionServiceOptions) SessionService {
	limit := opts.VocabLimit
	if limit <= 0 {
		limit = 12
	}
	return &sessionService{
		vocab:      opts.Vocab,
		results:    opts.Results,
		profiles:   opts.Profiles,
		recognizer: opts.Recognizer,
		pool:       opts.Pool,
		tap:        input.NewTapAdapter(opts.MatcherCfg),
		matcherCfg: opts.MatcherCfg,
		locale:     opts.Locale,
		vocabLimit: limit,
		sessions:   make(map[string]*session),
	}
}

// LevelDefinition builds the session definition for a level from its
// vocabulary pool. An unknown level or empty pool is a typed absence, not
// an internal error.
func (s *sessionService) LevelDefinition(ctx context.Context, levelID int) (*minigame.Definition, error) {
	log := logger.FromContext(ctx)
	log.Debug("building definition: level_id=%d", levelID)

	pool, err := s.vocab.LevelVocab(ctx, levelID, s.vocabLimit)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	def, err := minigame.BuildDefinition(levelID, pool)
	if err != nil {
		log.Debug("no playable content: level_id=%d", levelID)
		return nil, errors.NewUnavailableError("level not available yet")
	}
	return def, nil
}

func (s *sessionService) CreateSession(ctx context.Context, userID string, levelID int) (*SessionView, error) {
	log := logger.FromContext(ctx)

	if userID == "" {
		return nil, errors.NewValidationError("user_id", "cannot be empty")
	}

	def, err := s.LevelDefinition(ctx, levelID)
	if err != nil {
		return nil, err
	}

	sess := &session{
		id:     uuid.NewString(),
		userID: userID,
		engine: minigame.NewEngine(*def),
		voice:  input.NewVoiceAdapter(s.recognizer, s.matcherCfg),
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	log.Info("session created: session_id=%s, user_id=%s, level_id=%d", sess.id, userID, levelID)
	return s.view(sess), nil
}

func (s *sessionService) StartSession(ctx context.Context, sessionID string) (*SessionView, error) {
	return s.transition(ctx, sessionID, func(e *minigame.Engine) { e.Start() })
}

func (s *sessionService) TickSession(ctx context.Context, sessionID string) (*SessionView, error) {
	return s.transition(ctx, sessionID, func(e *minigame.Engine) { e.Tick() })
}

func (s *sessionService) PauseSession(ctx context.Context, sessionID string) (*SessionView, error) {
	return s.transition(ctx, sessionID, func(e *minigame.Engine) { e.Pause() })
}

func (s *sessionService) ResumeSession(ctx context.Context, sessionID string) (*SessionView, error) {
	return s.transition(ctx, sessionID, func(e *minigame.Engine) { e.Resume() })
}

// SubmitText handles the synchronous input path: a tapped tile label or a
// typed answer. Unmatched input is reported back without touching the
// engine, so a garbled answer costs nothing.
func (s *sessionService) SubmitText(ctx context.Context, sessionID, text string) (*SubmitView, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	match := s.tap.Resolve(text, sess.engine.Definition().IntentMap)
	state := sess.engine.Snapshot()
	if match.Matched {
		state = sess.engine.SubmitIntent(match.Intent)
	}
	s.maybePersist(ctx, sess)
	return &SubmitView{Match: match, State: state}, nil
}

// SubmitVoice enqueues one asynchronous recognition for the current
// prompt. The prompt index and targets are snapshotted now; the result is
// validated against the live session when it arrives.
func (s *sessionService) SubmitVoice(ctx context.Context, sessionID string, audio []byte) error {
	log := logger.FromContext(ctx)

	if len(audio) == 0 {
		return errors.NewValidationError("audio", "cannot be empty")
	}

	sess, err := s.get(sessionID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	snapshot := sess.engine.Snapshot()
	def := sess.engine.Definition()
	voice := sess.voice
	sess.mu.Unlock()

	if snapshot.Complete || snapshot.Paused || !snapshot.Started() {
		return errors.NewConflictError("session is not accepting input")
	}

	job := &worker.RecognitionJob{
		Sessions:    s,
		Voice:       voice,
		SessionID:   sessionID,
		PromptIndex: snapshot.CurrentPromptIndex,
		Request:     speech.Request{Audio: audio, Locale: s.locale},
		Targets:     def.IntentMap,
	}
	if !s.pool.TrySubmit(job) {
		log.Warn("recognition queue full: session_id=%s", sessionID)
		return errors.NewConflictError("recognition queue is full")
	}
	return nil
}

func (s *sessionService) ApplyRecognition(ctx context.Context, sessionID string, promptIndex int, result models.IntentMatchResult) error {
	log := logger.FromContext(ctx)

	sess, err := s.get(sessionID)
	if err != nil {
		// Session torn down while recognition was in flight.
		log.Debug("discarding recognition for closed session: %s", sessionID)
		return nil
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	state := sess.engine.Snapshot()
	if state.Complete || state.Paused || state.CurrentPromptIndex != promptIndex {
		log.Debug("discarding stale recognition: session_id=%s, prompt_index=%d", sessionID, promptIndex)
		return nil
	}
	if !result.Matched {
		log.Debug("recognition unmatched: session_id=%s, transcript=%q", sessionID, result.NormalizedTranscript)
		return nil
	}

	sess.engine.SubmitIntent(result.Intent)
	s.maybePersist(ctx, sess)
	return nil
}

func (s *sessionService) EndSession(ctx context.Context, sessionID string) (*minigame.Results, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.voice.Stop()
	sess.engine.End()
	s.maybePersist(ctx, sess)
	results := sess.engine.ReportResults()
	return &results, nil
}

func (s *sessionService) SessionResults(ctx context.Context, sessionID string) (*minigame.Results, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	results := sess.engine.ReportResults()
	return &results, nil
}

func (s *sessionService) Snapshot(ctx context.Context, sessionID string) (*SessionView, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.view(sess), nil
}

// CloseSession tears a session down, cancelling any in-flight recognition.
func (s *sessionService) CloseSession(ctx context.Context, sessionID string) error {
	sess, err := s.get(sessionID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	sess.voice.Stop()
	sess.mu.Unlock()

	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	logger.FromContext(ctx).Info("session closed: session_id=%s", sessionID)
	return nil
}

func (s *sessionService) get(sessionID string) (*session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, errors.NewNotFoundError("session", sessionID)
	}
	return sess, nil
}

func (s *sessionService) transition(ctx context.Context, sessionID string, apply func(*minigame.Engine)) (*SessionView, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	apply(sess.engine)
	s.maybePersist(ctx, sess)
	return s.view(sess), nil
}

// view builds the host-facing projection. Caller must hold the session
// lock (or own the session exclusively, as CreateSession does).
func (s *sessionService) view(sess *session) *SessionView {
	def := sess.engine.Definition()
	return &SessionView{
		SessionID:  sess.id,
		LevelID:    def.LevelID,
		Definition: def,
		State:      sess.engine.Snapshot(),
	}
}

// maybePersist writes the result row and applies the completion award the
// first time a session reaches Complete. Persistence failures are logged,
// not surfaced: the in-memory results stay valid and the host may retry.
func (s *sessionService) maybePersist(ctx context.Context, sess *session) {
	state := sess.engine.Snapshot()
	if !state.Complete || sess.persisted {
		return
	}
	sess.persisted = true

	log := logger.FromContext(ctx)
	results := sess.engine.ReportResults()

	record := models.GameResult{
		UserID:         sess.userID,
		LevelID:        results.LevelID,
		Accuracy:       results.Accuracy,
		SpeedScore:     results.SpeedScore,
		CorrectCount:   results.CorrectCount,
		IncorrectCount: results.IncorrectCount,
		UsedVocabCount: results.UsedVocabCount,
		Score:          results.CorrectCount * 100,
		TimeSeconds:    float64(results.ElapsedMs) / 1000,
	}
	if _, err := s.results.InsertResult(ctx, record); err != nil {
		log.Warn("failed to persist game result: %v", err)
	}
	if _, err := s.profiles.AwardCompletion(ctx, sess.userID, results.LevelID); err != nil {
		log.Warn("failed to apply completion award: %v", err)
	}
}

// Ensure the service satisfies the worker-side sink.
var _ worker.SessionIntentSink = (SessionService)(nil)
