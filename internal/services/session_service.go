package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/spamms1985-sudo/gpa-lernapp/internal/contentbank"
	"github.com/spamms1985-sudo/gpa-lernapp/internal/events"
	"github.com/spamms1985-sudo/gpa-lernapp/internal/models"
	"github.com/spamms1985-sudo/gpa-lernapp/internal/repositories"
	"github.com/spamms1985-sudo/gpa-lernapp/internal/session"
)

// SessionView is the client-facing projection of a session: progress counters
// plus the current item with all solution fields stripped.
type SessionView struct {
	ID          string                `json:"id"`
	StudentCode string                `json:"student_code"`
	Topic       string                `json:"topic"`
	SkillArea   string                `json:"skill_area,omitempty"`
	Mode        models.AttemptMode    `json:"mode"`
	Level       models.DifficultyTier `json:"level"`
	LevelLabel  string                `json:"level_label"`
	Total       int                   `json:"total"`
	Index       int                   `json:"index"`
	CorrectN    int                   `json:"correct_n"`
	State       session.State         `json:"state"`
	Item        *models.Item          `json:"item,omitempty"` // nil once completed
}

// SubmitResult is what answering one question yields: the grade, the advanced
// session view, and a summary once the run is over.
type SubmitResult struct {
	Grade   models.GradeResult `json:"grade"`
	Session SessionView        `json:"session"`
	Summary *SessionSummary    `json:"summary,omitempty"`
}

// SessionSummary closes out a completed run.
type SessionSummary struct {
	Total     int                   `json:"total"`
	CorrectN  int                   `json:"correct_n"`
	Ratio     float64               `json:"ratio"`
	NextLevel models.DifficultyTier `json:"next_level"`
}

// SessionService runs diagnostic and practice quiz sessions end to end:
// item selection, answer grading, attempt recording, and session state.
type SessionService interface {
	// StartDiagnostic opens a session of n items stratified across the
	// topic's skill areas.
	StartDiagnostic(ctx context.Context, studentCode, topic string, n int) (*SessionView, error)

	// StartPractice opens an adaptive session of k items for (topic, area).
	// A nil target derives the tier from the student's mastery estimate.
	StartPractice(ctx context.Context, studentCode, topic, area string, target *models.DifficultyTier, k int) (*SessionView, error)

	// Get returns the current view of a session.
	Get(ctx context.Context, sessionID string) (*SessionView, error)

	// SubmitAnswer grades raw against the session's current item, records
	// the attempt, and advances the session one step.
	SubmitAnswer(ctx context.Context, sessionID, itemID string, raw json.RawMessage) (*SubmitResult, error)
}

type sessionService struct {
	bank      *contentbank.Bank
	store     session.Store
	selector  SelectorService
	grading   GradingService
	attempts  AttemptService
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
}

func NewSessionService(
	bank *contentbank.Bank,
	store session.Store,
	selector SelectorService,
	grading GradingService,
	attempts AttemptService,
	repo repositories.Repository,
	publisher events.EventPublisher,
	logger *slog.Logger,
) SessionService {
	return &sessionService{
		bank:      bank,
		store:     store,
		selector:  selector,
		grading:   grading,
		attempts:  attempts,
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *sessionService) StartDiagnostic(ctx context.Context, studentCode, topic string, n int) (*SessionView, error) {
	if !models.IsTopic(topic) {
		return nil, ErrTopicNotFound
	}
	if n <= 0 {
		n = defaultDiagN
	}

	if err := s.repo.Student().Ensure(ctx, studentCode); err != nil {
		return nil, fmt.Errorf("failed to ensure student: %w", err)
	}

	items := s.selector.Diagnostic(topic, n)
	if len(items) == 0 {
		return nil, ErrSessionEmpty
	}

	// The nominal tier of a diagnostic round follows the student's previous
	// diagnostic showing; the stratified selection itself ignores it.
	level := DiagnosticLevel(s.prevDiagnosticRatio(ctx, studentCode, topic))

	sess := session.New(studentCode, topic, "", models.ModeDiagnostic, level, itemIDs(items))
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.logger.Info("Diagnostic session started",
		"session_id", sess.ID, "student", studentCode, "topic", topic, "items", len(items))

	return s.view(sess), nil
}

func (s *sessionService) StartPractice(ctx context.Context, studentCode, topic, area string, target *models.DifficultyTier, k int) (*SessionView, error) {
	if !models.IsTopic(topic) {
		return nil, ErrTopicNotFound
	}
	if area != "" && !models.IsSkillArea(topic, area) {
		return nil, ErrSkillAreaNotFound
	}
	if k <= 0 {
		k = defaultBatchK
	}

	if err := s.repo.Student().Ensure(ctx, studentCode); err != nil {
		return nil, fmt.Errorf("failed to ensure student: %w", err)
	}

	level := models.TierBasic
	if target != nil {
		level = *target
	} else {
		attempts, err := s.repo.Attempt().GetByStudentScope(ctx, studentCode, topic, area, repositories.AttemptFilters{})
		if err != nil {
			return nil, fmt.Errorf("failed to load attempts: %w", err)
		}
		record := EstimateFromAttempts(attempts, models.MasteryKey{Topic: topic, SkillArea: area})
		level = record.Level
	}

	seen, err := s.attempts.SeenItemIDs(ctx, studentCode, topic)
	if err != nil {
		return nil, fmt.Errorf("failed to load seen items: %w", err)
	}

	items := s.selector.Adaptive(topic, area, level, seen, k)
	if len(items) == 0 {
		return nil, ErrSessionEmpty
	}

	sess := session.New(studentCode, topic, area, models.ModePractice, level, itemIDs(items))
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.logger.Info("Practice session started",
		"session_id", sess.ID, "student", studentCode, "topic", topic,
		"skill_area", area, "level", level, "items", len(items))

	return s.view(sess), nil
}

func (s *sessionService) Get(ctx context.Context, sessionID string) (*SessionView, error) {
	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

func (s *sessionService) SubmitAnswer(ctx context.Context, sessionID, itemID string, raw json.RawMessage) (*SubmitResult, error) {
	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	current, ok := sess.CurrentItemID()
	if !ok {
		return nil, ErrSessionCompleted
	}
	if current != itemID {
		return nil, ErrItemNotCurrent
	}

	item, ok := s.bank.Get(itemID)
	if !ok {
		return nil, ErrItemNotFound
	}

	grade, err := s.grading.Grade(item, raw)
	if err != nil {
		// Malformed payload: the session does not advance, the client
		// re-prompts the same question.
		return nil, err
	}

	if _, err := s.attempts.Record(ctx, sess.StudentCode, item, sess.Mode, grade, raw); err != nil {
		return nil, err
	}

	if err := sess.Advance(itemID, grade.Correct); err != nil {
		return nil, mapSessionErr(err)
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	result := &SubmitResult{Grade: grade, Session: *s.view(sess)}

	if sess.State == session.StateCompleted {
		result.Summary = s.summarize(ctx, sess)
	}

	return result, nil
}

// summarize closes a finished run: ratio, the recommended next tier, and the
// session.completed event.
func (s *sessionService) summarize(ctx context.Context, sess *session.Session) *SessionSummary {
	ratio := 0.0
	if sess.Total() > 0 {
		ratio = float64(sess.CorrectN) / float64(sess.Total())
	}

	var next models.DifficultyTier
	if sess.Mode == models.ModeDiagnostic {
		next = DiagnosticLevel(&ratio)
	} else {
		next = LevelForAccuracy(ratio)
	}

	now := time.Now().UTC()
	event := &events.ActivityEvent{
		ID:        uuid.NewString(),
		Type:      events.EventSessionCompleted,
		Timestamp: now,
		Source:    eventSource,
		Version:   eventVersion,
		Data: events.SessionCompletedEvent{
			SessionID:   sess.ID,
			StudentCode: sess.StudentCode,
			Topic:       sess.Topic,
			SkillArea:   sess.SkillArea,
			Mode:        sess.Mode,
			Total:       sess.Total(),
			CorrectN:    sess.CorrectN,
			NextLevel:   next,
			CompletedAt: now,
		},
	}
	if err := s.publisher.PublishActivityEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish session completed event", "session_id", sess.ID, "error", err)
	}

	return &SessionSummary{
		Total:     sess.Total(),
		CorrectN:  sess.CorrectN,
		Ratio:     ratio,
		NextLevel: next,
	}
}

func (s *sessionService) prevDiagnosticRatio(ctx context.Context, studentCode, topic string) *float64 {
	mode := models.ModeDiagnostic
	attempts, err := s.repo.Attempt().GetByStudentScope(ctx, studentCode, topic, "", repositories.AttemptFilters{Mode: &mode})
	if err != nil {
		s.logger.Warn("Failed to load diagnostic history", "student", studentCode, "topic", topic, "error", err)
		return nil
	}
	if len(attempts) == 0 {
		return nil
	}
	correct := 0
	for _, a := range attempts {
		if a.Correct {
			correct++
		}
	}
	ratio := float64(correct) / float64(len(attempts))
	return &ratio
}

func (s *sessionService) load(ctx context.Context, sessionID string) (*session.Session, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if errors.Is(err, session.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return sess, nil
}

func (s *sessionService) view(sess *session.Session) *SessionView {
	view := &SessionView{
		ID:          sess.ID,
		StudentCode: sess.StudentCode,
		Topic:       sess.Topic,
		SkillArea:   sess.SkillArea,
		Mode:        sess.Mode,
		Level:       sess.Level,
		LevelLabel:  models.TierLabels[sess.Level],
		Total:       sess.Total(),
		Index:       sess.Index,
		CorrectN:    sess.CorrectN,
		State:       sess.State,
	}
	if id, ok := sess.CurrentItemID(); ok {
		if item, found := s.bank.Get(id); found {
			public := item.Public()
			view.Item = &public
		}
	}
	return view
}

func mapSessionErr(err error) error {
	switch {
	case errors.Is(err, session.ErrSessionCompleted):
		return ErrSessionCompleted
	case errors.Is(err, session.ErrWrongItem):
		return ErrItemNotCurrent
	default:
		return err
	}
}

func itemIDs(items []models.Item) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}
