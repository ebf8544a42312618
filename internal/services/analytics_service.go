package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/spamms1985-sudo/gpa-lernapp/internal/cache"
	"github.com/spamms1985-sudo/gpa-lernapp/internal/models"
	"github.com/spamms1985-sudo/gpa-lernapp/internal/repositories"
)

// The class overview walks every attempt of a topic; cache it briefly so a
// teacher refreshing the dashboard does not re-aggregate each time.
const overviewCacheTTL = 2 * time.Minute

// StudentOverview is one row of the teacher's class view: a student and their
// per-area standing within the topic.
type StudentOverview struct {
	StudentCode string        `json:"student_code"`
	Areas       []AreaMastery `json:"areas"`
	Attempts    int           `json:"attempts"`
	LastSeen    time.Time     `json:"last_seen"`
}

// ClassOverview is the aggregated teacher view of one topic.
type ClassOverview struct {
	Topic      string            `json:"topic"`
	TopicLabel string            `json:"topic_label"`
	Students   []StudentOverview `json:"students"`
}

// ActivityRow is one line of the activity view, an ActivityStat joined with
// its human-readable area label.
type ActivityRow struct {
	SkillArea string          `json:"skill_area"`
	AreaLabel string          `json:"area_label"`
	ItemType  models.ItemType `json:"item_type"`
	Total     int64           `json:"total"`
	Correct   int64           `json:"correct"`
}

// AnalyticsService builds the teacher-facing aggregations over the attempt log.
type AnalyticsService interface {
	// Overview aggregates every student's per-area standing for a topic.
	Overview(ctx context.Context, topic string) (*ClassOverview, error)

	// Activity returns practice volume per (skill area, item type) for a
	// topic, busiest first.
	Activity(ctx context.Context, topic string) ([]ActivityRow, error)

	// Students lists every registered student code.
	Students(ctx context.Context) ([]models.Student, error)
}

type analyticsService struct {
	repo   repositories.Repository
	cache  cache.CacheService
	logger *slog.Logger
}

func NewAnalyticsService(repo repositories.Repository, cacheService cache.CacheService, logger *slog.Logger) AnalyticsService {
	return &analyticsService{
		repo:   repo,
		cache:  cacheService,
		logger: logger,
	}
}

func (s *analyticsService) Overview(ctx context.Context, topic string) (*ClassOverview, error) {
	areas, ok := models.TopicAreas[topic]
	if !ok {
		return nil, ErrTopicNotFound
	}

	cacheKey := cache.OverviewKeyFor(topic)
	var cached ClassOverview
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("Overview cache read failed", "topic", topic, "error", err)
	}

	attempts, err := s.repo.Attempt().GetByTopic(ctx, topic, repositories.AttemptFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to load topic attempts: %w", err)
	}

	byStudent := make(map[string][]models.Attempt)
	for _, attempt := range attempts {
		byStudent[attempt.StudentCode] = append(byStudent[attempt.StudentCode], attempt)
	}

	overview := &ClassOverview{
		Topic:      topic,
		TopicLabel: topicLabel(topic),
		Students:   make([]StudentOverview, 0, len(byStudent)),
	}

	for code, studentAttempts := range byStudent {
		row := StudentOverview{
			StudentCode: code,
			Areas:       make([]AreaMastery, 0, len(areas)),
			Attempts:    len(studentAttempts),
		}
		// Attempts come back newest first.
		if len(studentAttempts) > 0 {
			row.LastSeen = studentAttempts[0].CreatedAt
		}

		diag := filterByMode(studentAttempts, models.ModeDiagnostic)
		for _, area := range areas {
			key := models.MasteryKey{Topic: topic, SkillArea: area.Key}
			record := EstimateFromAttempts(studentAttempts, key)

			var prevRatio *float64
			if diagRecord := EstimateFromAttempts(diag, key); diagRecord.N > 0 {
				prevRatio = &diagRecord.Accuracy
			}

			row.Areas = append(row.Areas, AreaMastery{
				SkillArea:       area.Key,
				Label:           area.Label,
				Mastery:         record,
				PracticeLevel:   record.Level,
				DiagnosticLevel: DiagnosticLevel(prevRatio),
			})
		}
		overview.Students = append(overview.Students, row)
	}

	sort.Slice(overview.Students, func(i, j int) bool {
		return overview.Students[i].StudentCode < overview.Students[j].StudentCode
	})

	if err := s.cache.Set(ctx, cacheKey, overview, overviewCacheTTL); err != nil {
		s.logger.Warn("Overview cache write failed", "topic", topic, "error", err)
	}

	return overview, nil
}

func (s *analyticsService) Activity(ctx context.Context, topic string) ([]ActivityRow, error) {
	areas, ok := models.TopicAreas[topic]
	if !ok {
		return nil, ErrTopicNotFound
	}

	labels := make(map[string]string, len(areas))
	for _, area := range areas {
		labels[area.Key] = area.Label
	}

	stats, err := s.repo.Attempt().ActivityStats(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity stats: %w", err)
	}

	rows := make([]ActivityRow, 0, len(stats))
	for _, stat := range stats {
		rows = append(rows, ActivityRow{
			SkillArea: stat.SkillArea,
			AreaLabel: labels[stat.SkillArea],
			ItemType:  stat.ItemType,
			Total:     stat.Total,
			Correct:   stat.Correct,
		})
	}

	return rows, nil
}

func (s *analyticsService) Students(ctx context.Context) ([]models.Student, error) {
	students, err := s.repo.Student().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}

func topicLabel(code string) string {
	for _, t := range models.Topics {
		if t.Code == code {
			return t.Label
		}
	}
	return code
}
