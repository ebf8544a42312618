package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/spamms1985-sudo/gpa-lernapp/internal/models"
	"gorm.io/gorm"
)

// ===== SHARED FILTER STRUCTS =====

type AttemptFilters struct {
	Mode     *models.AttemptMode `json:"mode"`
	DateFrom *time.Time          `json:"date_from"`
	DateTo   *time.Time          `json:"date_to"`
	Limit    int                 `json:"limit"`
	Offset   int                 `json:"offset"`
}

// ===== SHARED STATISTICS STRUCTS =====

// ActivityStat is one row of the teacher activity view: practice volume for a
// (skill area, item type) pair within a topic.
type ActivityStat struct {
	SkillArea string          `json:"skill_area"`
	ItemType  models.ItemType `json:"item_type"`
	Total     int64           `json:"total"`
	Correct   int64           `json:"correct"`
}

// ===== REPOSITORY INTERFACES =====

type AttemptRepository interface {
	Create(ctx context.Context, attempt *models.Attempt) error

	// GetByStudentScope returns a student's attempts for (topic, skill area),
	// newest first. An empty area widens the scope to the whole topic.
	GetByStudentScope(ctx context.Context, studentCode, topic, area string, filters AttemptFilters) ([]models.Attempt, error)

	// GetByTopic returns every attempt recorded for a topic, newest first.
	// Feeds the class-wide teacher aggregation.
	GetByTopic(ctx context.Context, topic string, filters AttemptFilters) ([]models.Attempt, error)

	// SeenItemIDs returns the ids of all items the student has already
	// answered within a topic.
	SeenItemIDs(ctx context.Context, studentCode, topic string) (map[string]struct{}, error)

	// DeleteByStudentTopic is the only bulk delete: a student explicitly
	// resetting their history for one topic. Returns the rows removed.
	DeleteByStudentTopic(ctx context.Context, studentCode, topic string) (int64, error)

	// ActivityStats aggregates practice attempts of a topic grouped by
	// (skill area, item type), busiest first.
	ActivityStats(ctx context.Context, topic string) ([]ActivityStat, error)
}

type StudentRepository interface {
	// Ensure creates the student row on first contact; existing rows are
	// left untouched.
	Ensure(ctx context.Context, code string) error
	Get(ctx context.Context, code string) (*models.Student, error)
	List(ctx context.Context) ([]models.Student, error)
}

// Repository bundles all repositories behind one dependency.
type Repository interface {
	Attempt() AttemptRepository
	Student() StudentRepository
}

// IsNotFoundError reports whether err is the storage layer's not-found error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
