package postgres

import (
	"context"

	"github.com/spamms1985-sudo/gpa-lernapp/internal/models"
	"github.com/spamms1985-sudo/gpa-lernapp/internal/repositories"
	"gorm.io/gorm"
)

type AttemptPostgreSQL struct {
	db *gorm.DB
}

func NewAttemptPostgreSQL(db *gorm.DB) repositories.AttemptRepository {
	return &AttemptPostgreSQL{db: db}
}

func (a *AttemptPostgreSQL) Create(ctx context.Context, attempt *models.Attempt) error {
	return a.db.WithContext(ctx).Create(attempt).Error
}

func (a *AttemptPostgreSQL) GetByStudentScope(ctx context.Context, studentCode, topic, area string, filters repositories.AttemptFilters) ([]models.Attempt, error) {
	var attempts []models.Attempt

	query := a.db.WithContext(ctx).Model(&models.Attempt{}).
		Where("student_code = ? AND topic = ?", studentCode, topic)
	if area != "" {
		query = query.Where("skill_area = ?", area)
	}
	query = a.applyFilters(query, filters)

	if err := query.Order("created_at DESC, id DESC").Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

func (a *AttemptPostgreSQL) GetByTopic(ctx context.Context, topic string, filters repositories.AttemptFilters) ([]models.Attempt, error) {
	var attempts []models.Attempt

	query := a.db.WithContext(ctx).Model(&models.Attempt{}).Where("topic = ?", topic)
	query = a.applyFilters(query, filters)

	if err := query.Order("created_at DESC, id DESC").Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

func (a *AttemptPostgreSQL) SeenItemIDs(ctx context.Context, studentCode, topic string) (map[string]struct{}, error) {
	var ids []string
	if err := a.db.WithContext(ctx).Model(&models.Attempt{}).
		Distinct("item_id").
		Where("student_code = ? AND topic = ?", studentCode, topic).
		Pluck("item_id", &ids).Error; err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	return seen, nil
}

func (a *AttemptPostgreSQL) DeleteByStudentTopic(ctx context.Context, studentCode, topic string) (int64, error) {
	result := a.db.WithContext(ctx).
		Where("student_code = ? AND topic = ?", studentCode, topic).
		Delete(&models.Attempt{})
	return result.RowsAffected, result.Error
}

func (a *AttemptPostgreSQL) ActivityStats(ctx context.Context, topic string) ([]repositories.ActivityStat, error) {
	var stats []repositories.ActivityStat

	err := a.db.WithContext(ctx).Model(&models.Attempt{}).
		Select("skill_area, item_type, COUNT(*) AS total, SUM(CASE WHEN correct THEN 1 ELSE 0 END) AS correct").
		Where("topic = ? AND mode = ?", topic, models.ModePractice).
		Group("skill_area, item_type").
		Order("total DESC").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (a *AttemptPostgreSQL) applyFilters(query *gorm.DB, filters repositories.AttemptFilters) *gorm.DB {
	if filters.Mode != nil {
		query = query.Where("mode = ?", *filters.Mode)
	}
	if filters.DateFrom != nil {
		query = query.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("created_at <= ?", *filters.DateTo)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}
	return query
}
