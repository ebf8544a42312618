package services

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spamms1985-sudo/gpa-lernapp/internal/cache"
	"github.com/spamms1985-sudo/gpa-lernapp/internal/models"
	"github.com/spamms1985-sudo/gpa-lernapp/internal/repositories"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func attempt(topic, area string, tier models.DifficultyTier, correct bool) models.Attempt {
	return models.Attempt{
		Topic:      topic,
		SkillArea:  area,
		Difficulty: tier,
		Correct:    correct,
		Mode:       models.ModePractice,
	}
}

func TestEstimateFromAttempts_EmptyHistory(t *testing.T) {
	record := EstimateFromAttempts(nil, models.MasteryKey{Topic: "LF4", SkillArea: "koerperpflege"})

	assert.Equal(t, 0.0, record.Accuracy)
	assert.Equal(t, models.TierBasic, record.Level)
	assert.Equal(t, 0, record.N)
}

func TestEstimateFromAttempts_WeightedAccuracy(t *testing.T) {
	// One correct tier-2 answer against one wrong tier-1 and one wrong tier-2:
	// weights 1.3 correct out of 1.0 + 1.3 + 1.3 total.
	attempts := []models.Attempt{
		attempt("LF4", "koerperpflege", models.TierSolid, true),
		attempt("LF4", "koerperpflege", models.TierBasic, false),
		attempt("LF4", "koerperpflege", models.TierSolid, false),
	}

	record := EstimateFromAttempts(attempts, models.MasteryKey{Topic: "LF4", SkillArea: "koerperpflege"})

	assert.InDelta(t, 1.3/3.6, record.Accuracy, 1e-9)
	assert.Equal(t, 3, record.N)
}

func TestEstimateFromAttempts_HarderItemsWeighMore(t *testing.T) {
	// Correct on the exam-tier item, wrong on the basic one: 1.7/2.7 ≈ 0.63,
	// above the unweighted 0.5.
	attempts := []models.Attempt{
		attempt("LF6", "sturzrisiko", models.TierExam, true),
		attempt("LF6", "sturzrisiko", models.TierBasic, false),
	}

	record := EstimateFromAttempts(attempts, models.MasteryKey{Topic: "LF6", SkillArea: "sturzrisiko"})

	assert.InDelta(t, 1.7/2.7, record.Accuracy, 1e-9)
	assert.Equal(t, models.TierSolid, record.Level)
}

func TestEstimateFromAttempts_ScopeFiltering(t *testing.T) {
	attempts := []models.Attempt{
		attempt("LF4", "koerperpflege", models.TierBasic, true),
		attempt("LF4", "prophylaxen", models.TierBasic, false),
		attempt("LF5", "koerperpflege", models.TierBasic, false),
	}

	record := EstimateFromAttempts(attempts, models.MasteryKey{Topic: "LF4", SkillArea: "koerperpflege"})
	assert.Equal(t, 1, record.N)
	assert.Equal(t, 1.0, record.Accuracy)

	// Empty area widens to the whole topic.
	topicWide := EstimateFromAttempts(attempts, models.MasteryKey{Topic: "LF4"})
	assert.Equal(t, 2, topicWide.N)
}

func TestLevelForAccuracy_Boundaries(t *testing.T) {
	tests := []struct {
		accuracy float64
		want     models.DifficultyTier
	}{
		{0.0, models.TierBasic},
		{0.4499, models.TierBasic},
		{0.45, models.TierSolid},
		{0.7499, models.TierSolid},
		{0.75, models.TierExam},
		{1.0, models.TierExam},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelForAccuracy(tt.accuracy), "accuracy %v", tt.accuracy)
	}
}

func TestDiagnosticLevel(t *testing.T) {
	assert.Equal(t, models.TierSolid, DiagnosticLevel(nil))

	low := 0.4
	assert.Equal(t, models.TierBasic, DiagnosticLevel(&low))

	mid := 0.6
	assert.Equal(t, models.TierSolid, DiagnosticLevel(&mid))

	high := 0.8
	assert.Equal(t, models.TierExam, DiagnosticLevel(&high))
}

func TestMasteryService_Estimate_CachesResult(t *testing.T) {
	repo := newMockRepository()
	memCache := cache.NewMemoryCache()
	service := NewMasteryService(repo, memCache, testLogger())

	attempts := []models.Attempt{
		attempt("LF4", "koerperpflege", models.TierBasic, true),
	}
	repo.attempt.On("GetByStudentScope", mock.Anything, "anna", "LF4", "koerperpflege", mock.Anything).
		Return(attempts, nil).Once()

	ctx := context.Background()
	key := models.MasteryKey{Topic: "LF4", SkillArea: "koerperpflege"}

	first, err := service.Estimate(ctx, "anna", key)
	require.NoError(t, err)
	assert.Equal(t, 1.0, first.Accuracy)
	assert.Equal(t, models.TierExam, first.Level)

	// Second call must come from the cache; the mock allows one repo hit only.
	second, err := service.Estimate(ctx, "anna", key)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	repo.attempt.AssertExpectations(t)
}

func TestMasteryService_Estimate_UnknownScope(t *testing.T) {
	service := NewMasteryService(newMockRepository(), cache.NewMemoryCache(), testLogger())

	_, err := service.Estimate(context.Background(), "anna", models.MasteryKey{Topic: "LF99", SkillArea: "x"})
	assert.ErrorIs(t, err, ErrTopicNotFound)

	_, err = service.Estimate(context.Background(), "anna", models.MasteryKey{Topic: "LF4", SkillArea: "nope"})
	assert.ErrorIs(t, err, ErrSkillAreaNotFound)

	// The blank-area widening belongs to EstimateFromAttempts only; the
	// cached estimate always names a concrete area.
	_, err = service.Estimate(context.Background(), "anna", models.MasteryKey{Topic: "LF4"})
	assert.ErrorIs(t, err, ErrSkillAreaNotFound)
}

func TestMasteryService_TopicOverview(t *testing.T) {
	repo := newMockRepository()
	service := NewMasteryService(repo, cache.NewMemoryCache(), testLogger())

	diag := attempt("LF2", "vitalzeichen", models.TierSolid, true)
	diag.Mode = models.ModeDiagnostic
	attempts := []models.Attempt{
		diag,
		attempt("LF2", "vitalzeichen", models.TierBasic, true),
		attempt("LF2", "vitalzeichen", models.TierBasic, false),
	}
	repo.attempt.On("GetByStudentScope", mock.Anything, "ben", "LF2", "", mock.Anything).
		Return(attempts, nil)

	overview, err := service.TopicOverview(context.Background(), "ben", "LF2")
	require.NoError(t, err)
	require.Len(t, overview, len(models.TopicAreas["LF2"]))

	byArea := make(map[string]AreaMastery)
	for _, area := range overview {
		byArea[area.SkillArea] = area
	}

	vital := byArea["vitalzeichen"]
	assert.Equal(t, 3, vital.Mastery.N)
	assert.Equal(t, vital.Mastery.Level, vital.PracticeLevel)
	// The only diagnostic attempt was correct, so the next round steps up.
	assert.Equal(t, models.TierExam, vital.DiagnosticLevel)

	// Untouched areas default to the middle diagnostic tier and level 1.
	untouched := byArea["gesundheit_praevention"]
	assert.Equal(t, 0, untouched.Mastery.N)
	assert.Equal(t, models.TierBasic, untouched.PracticeLevel)
	assert.Equal(t, models.TierSolid, untouched.DiagnosticLevel)
}

func TestMasteryService_TopicOverview_UnknownTopic(t *testing.T) {
	service := NewMasteryService(newMockRepository(), cache.NewMemoryCache(), testLogger())

	_, err := service.TopicOverview(context.Background(), "ben", "LF99")
	assert.ErrorIs(t, err, ErrTopicNotFound)
}

var _ repositories.Repository = (*mockRepository)(nil)
