package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/spamms1985-sudo/gpa-lernapp/internal/models"
	"github.com/spamms1985-sudo/gpa-lernapp/internal/repositories"
)

// MockAttemptRepository is a mock implementation of AttemptRepository
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) Create(ctx context.Context, attempt *models.Attempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockAttemptRepository) GetByStudentScope(ctx context.Context, studentCode, topic, area string, filters repositories.AttemptFilters) ([]models.Attempt, error) {
	args := m.Called(ctx, studentCode, topic, area, filters)
	return args.Get(0).([]models.Attempt), args.Error(1)
}

func (m *MockAttemptRepository) GetByTopic(ctx context.Context, topic string, filters repositories.AttemptFilters) ([]models.Attempt, error) {
	args := m.Called(ctx, topic, filters)
	return args.Get(0).([]models.Attempt), args.Error(1)
}

func (m *MockAttemptRepository) SeenItemIDs(ctx context.Context, studentCode, topic string) (map[string]struct{}, error) {
	args := m.Called(ctx, studentCode, topic)
	return args.Get(0).(map[string]struct{}), args.Error(1)
}

func (m *MockAttemptRepository) DeleteByStudentTopic(ctx context.Context, studentCode, topic string) (int64, error) {
	args := m.Called(ctx, studentCode, topic)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAttemptRepository) ActivityStats(ctx context.Context, topic string) ([]repositories.ActivityStat, error) {
	args := m.Called(ctx, topic)
	return args.Get(0).([]repositories.ActivityStat), args.Error(1)
}

// MockStudentRepository is a mock implementation of StudentRepository
type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) Ensure(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockStudentRepository) Get(ctx context.Context, code string) (*models.Student, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *MockStudentRepository) List(ctx context.Context) ([]models.Student, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Student), args.Error(1)
}

// mockRepository bundles the mocks behind the Repository interface
type mockRepository struct {
	attempt *MockAttemptRepository
	student *MockStudentRepository
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		attempt: new(MockAttemptRepository),
		student: new(MockStudentRepository),
	}
}

func (r *mockRepository) Attempt() repositories.AttemptRepository { return r.attempt }
func (r *mockRepository) Student() repositories.StudentRepository { return r.student }

// fakeRand is a deterministic Rand for selector tests: no jitter, identity
// permutations.
type fakeRand struct{}

func (fakeRand) Float64() float64 { return 0 }
func (fakeRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return n - 1
}
func (fakeRand) Perm(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
