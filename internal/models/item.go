package models

type ItemType string

const (
	SingleChoice     ItemType = "single_choice"
	MultiChoice      ItemType = "multi_choice"
	TrueFalse        ItemType = "true_false"
	FillBlank        ItemType = "fill_blank"
	Ordering         ItemType = "ordering"
	Matching         ItemType = "matching"
	FreeText         ItemType = "free_text"
	CaseSingleChoice ItemType = "case_single_choice"
)

type DifficultyTier int

const (
	TierBasic DifficultyTier = 1 // "Basis"
	TierSolid DifficultyTier = 2 // "Sicher"
	TierExam  DifficultyTier = 3 // "Prüfungsnah"
)

// TierLabels maps a difficulty tier to the label shown to students.
var TierLabels = map[DifficultyTier]string{
	TierBasic: "Basis",
	TierSolid: "Sicher",
	TierExam:  "Prüfungsnah",
}

// Item is one static content unit of the question bank. Items are loaded once
// at startup and never mutated afterwards.
type Item struct {
	ID         string         `json:"id" validate:"required"`
	Topic      string         `json:"topic" validate:"required,topic_code"`
	SkillArea  string         `json:"skill_area" validate:"required"`
	Difficulty DifficultyTier `json:"difficulty" validate:"required,difficulty_tier"`
	Type       ItemType       `json:"type" validate:"required,item_type"`

	Prompt      string `json:"prompt" validate:"required"`
	CaseStem    string `json:"case_stem,omitempty"` // only for case_single_choice
	Explanation string `json:"explanation,omitempty"`

	// Type-specific payload. Which fields are set depends on Type; the bank
	// loader checks coherence.
	Options       []string          `json:"options,omitempty"`        // single/multi/case choice
	CorrectOption string            `json:"correct_option,omitempty"` // single/case choice
	CorrectSet    []string          `json:"correct_set,omitempty"`    // multi choice
	BoolAnswer    *bool             `json:"bool_answer,omitempty"`    // true/false
	BlankAnswer   string            `json:"blank_answer,omitempty"`   // fill blank
	Hints         []string          `json:"hints,omitempty"`          // fill blank
	Steps         []string          `json:"steps,omitempty"`          // ordering choices
	Solution      []string          `json:"solution,omitempty"`       // ordering gold order
	Left          []string          `json:"left,omitempty"`           // matching
	Right         []string          `json:"right,omitempty"`          // matching
	Pairs         map[string]string `json:"pairs,omitempty"`          // matching gold pairs
	Keywords      []string          `json:"keywords,omitempty"`       // free text
	Rubric        string            `json:"rubric,omitempty"`         // free text model answer
}

// Public returns a copy of the item with all solution fields stripped, safe to
// hand to a student client.
func (i Item) Public() Item {
	out := i
	out.CorrectOption = ""
	out.CorrectSet = nil
	out.BoolAnswer = nil
	out.BlankAnswer = ""
	out.Solution = nil
	out.Pairs = nil
	out.Keywords = nil
	out.Rubric = ""
	out.Explanation = ""
	return out
}
