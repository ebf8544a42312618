package postgres

import (
	"github.com/spamms1985-sudo/gpa-lernapp/internal/repositories"
	"gorm.io/gorm"
)

type gormRepository struct {
	attempt repositories.AttemptRepository
	student repositories.StudentRepository
}

// NewRepository bundles the PostgreSQL repositories over one gorm handle.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &gormRepository{
		attempt: NewAttemptPostgreSQL(db),
		student: NewStudentPostgreSQL(db),
	}
}

func (r *gormRepository) Attempt() repositories.AttemptRepository {
	return r.attempt
}

func (r *gormRepository) Student() repositories.StudentRepository {
	return r.student
}
