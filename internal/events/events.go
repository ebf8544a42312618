package events

import (
	"time"

	"github.com/spamms1985-sudo/gpa-lernapp/internal/models"
)

// EventType names the activity events published by the service.
type EventType string

const (
	EventAttemptRecorded  EventType = "attempt.recorded"
	EventTopicReset       EventType = "attempt.topic_reset"
	EventSessionCompleted EventType = "session.completed"
)

// ActivityEvent is the envelope for all published events.
type ActivityEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Event payloads

type AttemptRecordedEvent struct {
	AttemptID   uint                  `json:"attempt_id"`
	StudentCode string                `json:"student_code"`
	ItemID      string                `json:"item_id"`
	Topic       string                `json:"topic"`
	SkillArea   string                `json:"skill_area"`
	Difficulty  models.DifficultyTier `json:"difficulty"`
	Mode        models.AttemptMode    `json:"mode"`
	Correct     bool                  `json:"correct"`
	Score       float64               `json:"score"`
	RecordedAt  time.Time             `json:"recorded_at"`
}

type TopicResetEvent struct {
	StudentCode string    `json:"student_code"`
	Topic       string    `json:"topic"`
	Deleted     int64     `json:"deleted"`
	ResetAt     time.Time `json:"reset_at"`
}

type SessionCompletedEvent struct {
	SessionID   string                `json:"session_id"`
	StudentCode string                `json:"student_code"`
	Topic       string                `json:"topic"`
	SkillArea   string                `json:"skill_area,omitempty"`
	Mode        models.AttemptMode    `json:"mode"`
	Total       int                   `json:"total"`
	CorrectN    int                   `json:"correct_n"`
	NextLevel   models.DifficultyTier `json:"next_level"`
	CompletedAt time.Time             `json:"completed_at"`
}
