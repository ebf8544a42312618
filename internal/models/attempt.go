package models

import (
	"time"

	"gorm.io/datatypes"
)

type AttemptMode string

const (
	ModeDiagnostic AttemptMode = "diagnostic"
	ModePractice   AttemptMode = "practice"
)

// Attempt is one recorded answer event. Rows are append-only: the only delete
// path is a student explicitly resetting their history for a topic.
type Attempt struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	StudentCode string         `json:"student_code" gorm:"not null;size:40;index:idx_attempts_scope"`
	ItemID      string         `json:"item_id" gorm:"not null;size:80"`
	Topic       string         `json:"topic" gorm:"not null;size:10;index:idx_attempts_scope;index:idx_attempts_topic"`
	SkillArea   string         `json:"skill_area" gorm:"not null;size:60;index:idx_attempts_scope"`
	Difficulty  DifficultyTier `json:"difficulty" gorm:"not null"` // copied from the item at answer time
	ItemType    ItemType       `json:"item_type" gorm:"not null;size:30"`
	Mode        AttemptMode    `json:"mode" gorm:"not null;size:12"`
	Correct     bool           `json:"correct" gorm:"not null"`
	Score       float64        `json:"score" gorm:"not null"` // continuous score in [0,1]
	Response    datatypes.JSON `json:"response" gorm:"type:jsonb"`
	CreatedAt   time.Time      `json:"created_at"`
}

func (Attempt) TableName() string {
	return "attempts"
}

// Student is a learner identified by a self-chosen short code (Kürzel).
type Student struct {
	Code      string    `json:"code" gorm:"primaryKey;size:40" validate:"required,min=2,max=40"`
	CreatedAt time.Time `json:"created_at"`
}

func (Student) TableName() string {
	return "students"
}

// MasteryKey scopes a mastery estimate to one (topic, skill area) pair.
type MasteryKey struct {
	Topic     string `json:"topic"`
	SkillArea string `json:"skill_area"`
}

// MasteryRecord is derived on demand from the attempt history and never stored,
// so it cannot go stale.
type MasteryRecord struct {
	Accuracy float64        `json:"accuracy"` // weighted ratio in [0,1]
	Level    DifficultyTier `json:"level"`
	N        int            `json:"n"` // attempts considered
}
