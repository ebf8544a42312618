package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/spamms1985-sudo/gpa-lernapp/internal/cache"
	"github.com/spamms1985-sudo/gpa-lernapp/internal/events"
	"github.com/spamms1985-sudo/gpa-lernapp/internal/models"
	"github.com/spamms1985-sudo/gpa-lernapp/internal/repositories"
)

const eventSource = "gpa-lernapp"
const eventVersion = "1.0"

// AttemptService owns the append-only attempt log: writes, the topic reset,
// and the read side exposed as history.
type AttemptService interface {
	// Record persists one graded answer. The student row is ensured on first
	// contact; mastery caches for the scope are invalidated after the write.
	Record(ctx context.Context, studentCode string, item models.Item, mode models.AttemptMode, result models.GradeResult, response []byte) (*models.Attempt, error)

	// ResetTopic deletes the student's attempt history for one topic and
	// returns how many rows were removed.
	ResetTopic(ctx context.Context, studentCode, topic string) (int64, error)

	// History returns the student's attempts for a topic, newest first.
	History(ctx context.Context, studentCode, topic string, filters repositories.AttemptFilters) ([]models.Attempt, error)

	// SeenItemIDs returns the ids already answered by the student in a topic.
	SeenItemIDs(ctx context.Context, studentCode, topic string) (map[string]struct{}, error)
}

type attemptService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	publisher events.EventPublisher
	logger    *slog.Logger
}

func NewAttemptService(repo repositories.Repository, cacheService cache.CacheService, publisher events.EventPublisher, logger *slog.Logger) AttemptService {
	return &attemptService{
		repo:      repo,
		cache:     cacheService,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *attemptService) Record(ctx context.Context, studentCode string, item models.Item, mode models.AttemptMode, result models.GradeResult, response []byte) (*models.Attempt, error) {
	if err := s.repo.Student().Ensure(ctx, studentCode); err != nil {
		return nil, fmt.Errorf("failed to ensure student: %w", err)
	}

	attempt := &models.Attempt{
		StudentCode: studentCode,
		ItemID:      item.ID,
		Topic:       item.Topic,
		SkillArea:   item.SkillArea,
		Difficulty:  item.Difficulty,
		ItemType:    item.Type,
		Mode:        mode,
		Correct:     result.Correct,
		Score:       result.Score,
		Response:    datatypes.JSON(response),
	}

	if err := s.repo.Attempt().Create(ctx, attempt); err != nil {
		return nil, fmt.Errorf("failed to record attempt: %w", err)
	}

	s.invalidate(ctx, studentCode, item.Topic)

	s.publish(ctx, events.EventAttemptRecorded, events.AttemptRecordedEvent{
		AttemptID:   attempt.ID,
		StudentCode: studentCode,
		ItemID:      item.ID,
		Topic:       item.Topic,
		SkillArea:   item.SkillArea,
		Difficulty:  item.Difficulty,
		Mode:        mode,
		Correct:     result.Correct,
		Score:       result.Score,
		RecordedAt:  attempt.CreatedAt,
	})

	return attempt, nil
}

func (s *attemptService) ResetTopic(ctx context.Context, studentCode, topic string) (int64, error) {
	if !models.IsTopic(topic) {
		return 0, ErrTopicNotFound
	}
	if _, err := s.repo.Student().Get(ctx, studentCode); err != nil {
		if repositories.IsNotFoundError(err) {
			return 0, ErrStudentNotFound
		}
		return 0, fmt.Errorf("failed to load student: %w", err)
	}

	deleted, err := s.repo.Attempt().DeleteByStudentTopic(ctx, studentCode, topic)
	if err != nil {
		return 0, fmt.Errorf("failed to reset topic: %w", err)
	}

	s.invalidate(ctx, studentCode, topic)
	s.logger.Info("Topic history reset", "student", studentCode, "topic", topic, "deleted", deleted)

	s.publish(ctx, events.EventTopicReset, events.TopicResetEvent{
		StudentCode: studentCode,
		Topic:       topic,
		Deleted:     deleted,
		ResetAt:     time.Now().UTC(),
	})

	return deleted, nil
}

func (s *attemptService) History(ctx context.Context, studentCode, topic string, filters repositories.AttemptFilters) ([]models.Attempt, error) {
	if !models.IsTopic(topic) {
		return nil, ErrTopicNotFound
	}
	return s.repo.Attempt().GetByStudentScope(ctx, studentCode, topic, "", filters)
}

func (s *attemptService) SeenItemIDs(ctx context.Context, studentCode, topic string) (map[string]struct{}, error) {
	return s.repo.Attempt().SeenItemIDs(ctx, studentCode, topic)
}

// invalidate drops the derived caches a write makes stale: the student's
// mastery entries for the topic and the class overview.
func (s *attemptService) invalidate(ctx context.Context, studentCode, topic string) {
	if err := s.cache.DeletePattern(ctx, cache.StudentPattern(studentCode, topic)); err != nil {
		s.logger.Warn("Mastery cache invalidation failed", "student", studentCode, "topic", topic, "error", err)
	}
	if err := s.cache.Delete(ctx, cache.OverviewKeyFor(topic)); err != nil {
		s.logger.Warn("Overview cache invalidation failed", "topic", topic, "error", err)
	}
}

// publish fires an activity event. Publishing is best effort: a broker hiccup
// must never fail the student-facing request.
func (s *attemptService) publish(ctx context.Context, eventType events.EventType, data interface{}) {
	event := &events.ActivityEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
	if err := s.publisher.PublishActivityEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish activity event", "type", eventType, "error", err)
	}
}
