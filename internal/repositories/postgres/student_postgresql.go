package postgres

import (
	"context"

	"github.com/spamms1985-sudo/gpa-lernapp/internal/models"
	"github.com/spamms1985-sudo/gpa-lernapp/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StudentPostgreSQL struct {
	db *gorm.DB
}

func NewStudentPostgreSQL(db *gorm.DB) repositories.StudentRepository {
	return &StudentPostgreSQL{db: db}
}

func (s *StudentPostgreSQL) Ensure(ctx context.Context, code string) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Student{Code: code}).Error
}

func (s *StudentPostgreSQL) Get(ctx context.Context, code string) (*models.Student, error) {
	var student models.Student
	if err := s.db.WithContext(ctx).First(&student, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *StudentPostgreSQL) List(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	if err := s.db.WithContext(ctx).Order("code").Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}
