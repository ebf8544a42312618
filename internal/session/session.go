package session

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/spamms1985-sudo/gpa-lernapp/internal/models"
)

// State is the lifecycle state of a practice or diagnostic session.
type State string

const (
	StateNotStarted State = "not_started"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
)

var (
	ErrSessionCompleted = errors.New("session already completed")
	ErrWrongItem        = errors.New("submitted item is not the current session item")
)

// Session is an explicit handle for one quiz run. The question index lives
// here and nowhere else; the state machine is NotStarted → InProgress →
// Completed, advancing one step per submitted answer.
type Session struct {
	ID          string                `json:"id"`
	StudentCode string                `json:"student_code"`
	Topic       string                `json:"topic"`
	SkillArea   string                `json:"skill_area,omitempty"` // empty for mixed practice
	Mode        models.AttemptMode    `json:"mode"`
	Level       models.DifficultyTier `json:"level"` // target tier the items were picked for
	ItemIDs     []string              `json:"item_ids"`
	Index       int                   `json:"index"`
	CorrectN    int                   `json:"correct_n"`
	State       State                 `json:"state"`
	CreatedAt   time.Time             `json:"created_at"`
}

// New creates a session over the given items, in state NotStarted.
func New(studentCode, topic, area string, mode models.AttemptMode, level models.DifficultyTier, itemIDs []string) *Session {
	return &Session{
		ID:          uuid.NewString(),
		StudentCode: studentCode,
		Topic:       topic,
		SkillArea:   area,
		Mode:        mode,
		Level:       level,
		ItemIDs:     itemIDs,
		State:       StateNotStarted,
		CreatedAt:   time.Now().UTC(),
	}
}

// Total returns the number of items in the session.
func (s *Session) Total() int {
	return len(s.ItemIDs)
}

// CurrentItemID returns the id of the item awaiting an answer.
func (s *Session) CurrentItemID() (string, bool) {
	if s.State == StateCompleted || s.Index >= len(s.ItemIDs) {
		return "", false
	}
	return s.ItemIDs[s.Index], true
}

// Advance records an answer for itemID and moves the machine one step:
// NotStarted becomes InProgress on the first answer, and the session
// completes when the last item is answered.
func (s *Session) Advance(itemID string, correct bool) error {
	if s.State == StateCompleted {
		return ErrSessionCompleted
	}

	current, ok := s.CurrentItemID()
	if !ok {
		return ErrSessionCompleted
	}
	if current != itemID {
		return ErrWrongItem
	}

	s.State = StateInProgress
	if correct {
		s.CorrectN++
	}
	s.Index++

	if s.Index == len(s.ItemIDs) {
		s.State = StateCompleted
	}
	return nil
}
