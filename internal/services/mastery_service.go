package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spamms1985-sudo/gpa-lernapp/internal/cache"
	"github.com/spamms1985-sudo/gpa-lernapp/internal/models"
	"github.com/spamms1985-sudo/gpa-lernapp/internal/repositories"
)

// Difficulty-to-weight table: a correct answer on a harder item is stronger
// evidence of mastery.
var tierWeights = map[models.DifficultyTier]float64{
	models.TierBasic: 1.0,
	models.TierSolid: 1.3,
	models.TierExam:  1.7,
}

// Level thresholds on the weighted accuracy. Global constants, not per-topic.
const (
	levelSolidThreshold = 0.45
	levelExamThreshold  = 0.75
)

// Mastery estimates are recomputed from the attempt log on demand; the cache
// entry only papers over request bursts and is invalidated on every write.
const masteryCacheTTL = 5 * time.Minute

// MasteryService derives a student's mastery per (topic, skill area) from
// their attempt history.
type MasteryService interface {
	// Estimate computes the mastery record for one (student, topic, area) key.
	Estimate(ctx context.Context, studentCode string, key models.MasteryKey) (*models.MasteryRecord, error)

	// TopicOverview computes one AreaMastery per skill area of the topic.
	TopicOverview(ctx context.Context, studentCode, topic string) ([]AreaMastery, error)
}

// AreaMastery is the per-area view handed to clients: the derived record plus
// the levels follow-up work should target.
type AreaMastery struct {
	SkillArea       string                `json:"skill_area"`
	Label           string                `json:"label"`
	Mastery         models.MasteryRecord  `json:"mastery"`
	PracticeLevel   models.DifficultyTier `json:"practice_level"`
	DiagnosticLevel models.DifficultyTier `json:"diagnostic_level"`
}

type masteryService struct {
	repo   repositories.Repository
	cache  cache.CacheService
	logger *slog.Logger
}

func NewMasteryService(repo repositories.Repository, cacheService cache.CacheService, logger *slog.Logger) MasteryService {
	return &masteryService{
		repo:   repo,
		cache:  cacheService,
		logger: logger,
	}
}

// EstimateFromAttempts is the pure estimator: it filters the attempts matching
// the key and reduces them to a weighted accuracy and a discrete level. An
// empty skill area widens the key to the whole topic. An empty history yields
// {0.0, level 1, n 0}, which is an unknown state, not an error.
func EstimateFromAttempts(attempts []models.Attempt, key models.MasteryKey) models.MasteryRecord {
	var weightSum, correctSum float64
	n := 0

	for _, attempt := range attempts {
		if attempt.Topic != key.Topic {
			continue
		}
		if key.SkillArea != "" && attempt.SkillArea != key.SkillArea {
			continue
		}
		weight := tierWeights[attempt.Difficulty]
		weightSum += weight
		if attempt.Correct {
			correctSum += weight
		}
		n++
	}

	if n == 0 || weightSum == 0 {
		return models.MasteryRecord{Accuracy: 0, Level: models.TierBasic, N: 0}
	}

	accuracy := correctSum / weightSum
	return models.MasteryRecord{
		Accuracy: accuracy,
		Level:    LevelForAccuracy(accuracy),
		N:        n,
	}
}

// LevelForAccuracy maps a weighted accuracy to the discrete mastery level.
// Boundary-exact: 0.45 is already level 2 and 0.75 already level 3.
func LevelForAccuracy(accuracy float64) models.DifficultyTier {
	switch {
	case accuracy < levelSolidThreshold:
		return models.TierBasic
	case accuracy < levelExamThreshold:
		return models.TierSolid
	default:
		return models.TierExam
	}
}

// DiagnosticLevel implements the step-up/down rule for picking the tier of the
// next diagnostic round: start in the middle, step down on a very weak
// previous ratio, up on a very strong one.
func DiagnosticLevel(prevRatio *float64) models.DifficultyTier {
	if prevRatio == nil {
		return models.TierSolid
	}
	if *prevRatio >= 0.8 {
		return models.TierExam
	}
	if *prevRatio <= 0.4 {
		return models.TierBasic
	}
	return models.TierSolid
}

func (s *masteryService) Estimate(ctx context.Context, studentCode string, key models.MasteryKey) (*models.MasteryRecord, error) {
	if !models.IsTopic(key.Topic) {
		return nil, ErrTopicNotFound
	}
	if !models.IsSkillArea(key.Topic, key.SkillArea) {
		return nil, ErrSkillAreaNotFound
	}

	cacheKey := cache.MasteryKeyFor(studentCode, key.Topic, key.SkillArea)
	var cached models.MasteryRecord
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("Mastery cache read failed", "key", cacheKey, "error", err)
	}

	attempts, err := s.repo.Attempt().GetByStudentScope(ctx, studentCode, key.Topic, key.SkillArea, repositories.AttemptFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to load attempts: %w", err)
	}

	record := EstimateFromAttempts(attempts, key)
	if err := s.cache.Set(ctx, cacheKey, record, masteryCacheTTL); err != nil {
		s.logger.Warn("Mastery cache write failed", "key", cacheKey, "error", err)
	}

	return &record, nil
}

func (s *masteryService) TopicOverview(ctx context.Context, studentCode, topic string) ([]AreaMastery, error) {
	areas, ok := models.TopicAreas[topic]
	if !ok {
		return nil, ErrTopicNotFound
	}

	attempts, err := s.repo.Attempt().GetByStudentScope(ctx, studentCode, topic, "", repositories.AttemptFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to load attempts: %w", err)
	}

	diagMode := models.ModeDiagnostic
	overview := make([]AreaMastery, 0, len(areas))
	for _, area := range areas {
		key := models.MasteryKey{Topic: topic, SkillArea: area.Key}
		record := EstimateFromAttempts(attempts, key)

		// The next diagnostic tier follows the student's previous diagnostic
		// showing, not their overall mastery.
		var prevRatio *float64
		diag := EstimateFromAttempts(filterByMode(attempts, diagMode), key)
		if diag.N > 0 {
			prevRatio = &diag.Accuracy
		}

		overview = append(overview, AreaMastery{
			SkillArea:       area.Key,
			Label:           area.Label,
			Mastery:         record,
			PracticeLevel:   record.Level,
			DiagnosticLevel: DiagnosticLevel(prevRatio),
		})
	}

	return overview, nil
}

func filterByMode(attempts []models.Attempt, mode models.AttemptMode) []models.Attempt {
	out := make([]models.Attempt, 0, len(attempts))
	for _, attempt := range attempts {
		if attempt.Mode == mode {
			out = append(out, attempt)
		}
	}
	return out
}
