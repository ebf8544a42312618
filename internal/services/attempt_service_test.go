package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/spamms1985-sudo/gpa-lernapp/internal/cache"
	"github.com/spamms1985-sudo/gpa-lernapp/internal/events"
	"github.com/spamms1985-sudo/gpa-lernapp/internal/models"
)

func TestAttemptService_Record(t *testing.T) {
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher(testLogger())
	service := NewAttemptService(repo, cache.NewMemoryCache(), publisher, testLogger())

	item := models.Item{
		ID:         "lf4-haut-1",
		Topic:      "LF4",
		SkillArea:  "haut_grundlagen",
		Difficulty: models.TierBasic,
		Type:       models.SingleChoice,
	}

	repo.student.On("Ensure", mock.Anything, "anna").Return(nil).Once()
	repo.attempt.On("Create", mock.Anything, mock.AnythingOfType("*models.Attempt")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Attempt).ID = 7
		}).
		Return(nil).Once()

	result := models.GradeResult{Score: 1.0, Correct: true}
	attempt, err := service.Record(context.Background(), "anna", item, models.ModePractice, result, []byte(`{"selected":"A"}`))
	require.NoError(t, err)

	assert.Equal(t, uint(7), attempt.ID)
	assert.Equal(t, "anna", attempt.StudentCode)
	assert.Equal(t, "LF4", attempt.Topic)
	assert.Equal(t, "haut_grundlagen", attempt.SkillArea)
	assert.Equal(t, models.TierBasic, attempt.Difficulty)
	assert.Equal(t, models.ModePractice, attempt.Mode)
	assert.True(t, attempt.Correct)
	assert.JSONEq(t, `{"selected":"A"}`, string(attempt.Response))

	published := publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventAttemptRecorded, published[0].Type)
	assert.Equal(t, "gpa-lernapp", published[0].Source)

	data, ok := published[0].Data.(events.AttemptRecordedEvent)
	require.True(t, ok)
	assert.Equal(t, uint(7), data.AttemptID)
	assert.Equal(t, "lf4-haut-1", data.ItemID)

	repo.attempt.AssertExpectations(t)
	repo.student.AssertExpectations(t)
}

func TestAttemptService_Record_InvalidatesMasteryCache(t *testing.T) {
	repo := newMockRepository()
	memCache := cache.NewMemoryCache()
	service := NewAttemptService(repo, memCache, events.NewMockEventPublisher(testLogger()), testLogger())

	ctx := context.Background()
	cacheKey := cache.MasteryKeyFor("anna", "LF4", "haut_grundlagen")
	require.NoError(t, memCache.Set(ctx, cacheKey, models.MasteryRecord{Accuracy: 0.5}, masteryCacheTTL))

	repo.student.On("Ensure", mock.Anything, "anna").Return(nil)
	repo.attempt.On("Create", mock.Anything, mock.Anything).Return(nil)

	item := models.Item{ID: "x", Topic: "LF4", SkillArea: "haut_grundlagen", Difficulty: models.TierBasic, Type: models.TrueFalse}
	_, err := service.Record(ctx, "anna", item, models.ModeDiagnostic, models.GradeResult{}, nil)
	require.NoError(t, err)

	var stale models.MasteryRecord
	assert.ErrorIs(t, memCache.Get(ctx, cacheKey, &stale), cache.ErrCacheMiss)
}

func TestAttemptService_ResetTopic(t *testing.T) {
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher(testLogger())
	service := NewAttemptService(repo, cache.NewMemoryCache(), publisher, testLogger())

	repo.student.On("Get", mock.Anything, "anna").
		Return(&models.Student{Code: "anna"}, nil).Once()
	repo.attempt.On("DeleteByStudentTopic", mock.Anything, "anna", "LF4").
		Return(int64(12), nil).Once()

	deleted, err := service.ResetTopic(context.Background(), "anna", "LF4")
	require.NoError(t, err)
	assert.Equal(t, int64(12), deleted)

	published := publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventTopicReset, published[0].Type)

	data, ok := published[0].Data.(events.TopicResetEvent)
	require.True(t, ok)
	assert.Equal(t, int64(12), data.Deleted)

	repo.attempt.AssertExpectations(t)
}

func TestAttemptService_ResetTopic_UnknownStudent(t *testing.T) {
	repo := newMockRepository()
	service := NewAttemptService(repo, cache.NewMemoryCache(), events.NewMockEventPublisher(testLogger()), testLogger())

	repo.student.On("Get", mock.Anything, "ghost").
		Return(nil, gorm.ErrRecordNotFound).Once()

	_, err := service.ResetTopic(context.Background(), "ghost", "LF4")
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestAttemptService_ResetTopic_UnknownTopic(t *testing.T) {
	service := NewAttemptService(newMockRepository(), cache.NewMemoryCache(), events.NewMockEventPublisher(testLogger()), testLogger())

	_, err := service.ResetTopic(context.Background(), "anna", "LF99")
	assert.ErrorIs(t, err, ErrTopicNotFound)
}

func TestAttemptService_RecordThenEstimate(t *testing.T) {
	// One correct tier-1 answer gives weighted accuracy 1.0 and level 3.
	repo := newMockRepository()
	memCache := cache.NewMemoryCache()
	attemptSvc := NewAttemptService(repo, memCache, events.NewMockEventPublisher(testLogger()), testLogger())
	masterySvc := NewMasteryService(repo, memCache, testLogger())

	stored := make([]models.Attempt, 0, 1)
	repo.student.On("Ensure", mock.Anything, "anna").Return(nil)
	repo.attempt.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			stored = append(stored, *args.Get(1).(*models.Attempt))
		}).
		Return(nil)

	ctx := context.Background()
	item := models.Item{ID: "x", Topic: "LF4", SkillArea: "haut_grundlagen", Difficulty: models.TierBasic, Type: models.TrueFalse}
	_, err := attemptSvc.Record(ctx, "anna", item, models.ModePractice, models.GradeResult{Score: 1, Correct: true}, nil)
	require.NoError(t, err)

	repo.attempt.On("GetByStudentScope", mock.Anything, "anna", "LF4", "haut_grundlagen", mock.Anything).
		Return(stored, nil)

	record, err := masterySvc.Estimate(ctx, "anna", models.MasteryKey{Topic: "LF4", SkillArea: "haut_grundlagen"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, record.Accuracy)
	assert.Equal(t, models.TierExam, record.Level)
	assert.Equal(t, 1, record.N)
}
