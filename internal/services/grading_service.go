package services

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/spamms1985-sudo/gpa-lernapp/internal/models"
)

// Fill-blank answers at or above this length tolerate substring matches in
// either direction, so "Dekubitusprophylaxe" passes for "Prophylaxe gegen
// Dekubitus" style answers.
const blankLeniencyMinLen = 6

// Free-text answers with no keywords on the item count as correct from this
// many runes on.
const freeTextMinRunes = 20

// GradingService scores a raw answer payload against an item. Grading is a
// heuristic for self-study feedback, not an authoritative exam score.
type GradingService interface {
	// Grade decodes raw into the answer shape matching the item type and
	// scores it. A payload that does not decode yields a *ResponseError so
	// the caller can re-prompt instead of failing the session.
	Grade(item models.Item, raw json.RawMessage) (models.GradeResult, error)
}

type gradingService struct{}

func NewGradingService() GradingService {
	return &gradingService{}
}

func (g *gradingService) Grade(item models.Item, raw json.RawMessage) (models.GradeResult, error) {
	switch item.Type {
	case models.SingleChoice, models.CaseSingleChoice:
		var ans models.SingleChoiceAnswer
		if err := decode(raw, &ans, item.ID); err != nil {
			return models.GradeResult{}, err
		}
		return g.finish(item, boolScore(normalize(ans.Selected) == normalize(item.CorrectOption))), nil

	case models.TrueFalse:
		var ans models.TrueFalseAnswer
		if err := decode(raw, &ans, item.ID); err != nil {
			return models.GradeResult{}, err
		}
		return g.finish(item, boolScore(item.BoolAnswer != nil && ans.Answer == *item.BoolAnswer)), nil

	case models.FillBlank:
		var ans models.FillBlankAnswer
		if err := decode(raw, &ans, item.ID); err != nil {
			return models.GradeResult{}, err
		}
		return g.finish(item, boolScore(blankMatches(ans.Text, item.BlankAnswer))), nil

	case models.MultiChoice:
		var ans models.MultiChoiceAnswer
		if err := decode(raw, &ans, item.ID); err != nil {
			return models.GradeResult{}, err
		}
		return g.finish(item, multiChoiceScore(ans.Selected, item.CorrectSet)), nil

	case models.Ordering:
		var ans models.OrderingAnswer
		if err := decode(raw, &ans, item.ID); err != nil {
			return models.GradeResult{}, err
		}
		return g.finish(item, orderingScore(ans.Order, item.Solution)), nil

	case models.Matching:
		var ans models.MatchingAnswer
		if err := decode(raw, &ans, item.ID); err != nil {
			return models.GradeResult{}, err
		}
		return g.finish(item, matchingScore(ans.Pairs, item.Pairs)), nil

	case models.FreeText:
		var ans models.FreeTextAnswer
		if err := decode(raw, &ans, item.ID); err != nil {
			return models.GradeResult{}, err
		}
		return g.gradeFreeText(item, ans.Text), nil
	}

	return models.GradeResult{}, NewResponseError(item.ID, "unsupported item type "+string(item.Type))
}

func (g *gradingService) finish(item models.Item, score float64) models.GradeResult {
	return models.GradeResult{
		Score:       score,
		Correct:     score >= 0.999,
		Explanation: item.Explanation,
	}
}

func (g *gradingService) gradeFreeText(item models.Item, text string) models.GradeResult {
	answer := normalize(text)

	if len(item.Keywords) == 0 {
		long := utf8.RuneCountInString(strings.TrimSpace(text)) >= freeTextMinRunes
		return models.GradeResult{
			Score:       boolScore(long),
			Correct:     long,
			Explanation: item.Explanation,
			Rubric:      item.Rubric,
		}
	}

	hits := 0
	for _, kw := range item.Keywords {
		if strings.Contains(answer, normalize(kw)) {
			hits++
		}
	}

	need := len(item.Keywords) / 4
	if need < 1 {
		need = 1
	}

	denom := len(item.Keywords)
	if denom > 6 {
		denom = 6
	}
	if denom < 3 {
		denom = 3
	}

	score := float64(hits) / float64(denom)
	if score > 1 {
		score = 1
	}

	return models.GradeResult{
		Score:       score,
		Correct:     hits >= need,
		Explanation: item.Explanation,
		Rubric:      item.Rubric,
	}
}

// ===== SCORING PRIMITIVES =====

func blankMatches(got, want string) bool {
	g, w := normalize(got), normalize(want)
	if g == "" {
		return false
	}
	if g == w {
		return true
	}
	if utf8.RuneCountInString(w) >= blankLeniencyMinLen {
		return strings.Contains(g, w) || strings.Contains(w, g)
	}
	return false
}

// multiChoiceScore gives partial credit for the selected set: each correct
// pick counts, each pick outside the gold set cancels one, floored at zero.
func multiChoiceScore(selected, gold []string) float64 {
	if len(gold) == 0 {
		return 0
	}

	goldSet := make(map[string]struct{}, len(gold))
	for _, opt := range gold {
		goldSet[normalize(opt)] = struct{}{}
	}

	picked := make(map[string]struct{}, len(selected))
	for _, opt := range selected {
		picked[normalize(opt)] = struct{}{}
	}

	overlap, excess := 0, 0
	for opt := range picked {
		if _, ok := goldSet[opt]; ok {
			overlap++
		} else {
			excess++
		}
	}

	raw := overlap - excess
	if raw < 0 {
		raw = 0
	}
	return float64(raw) / float64(len(gold))
}

func orderingScore(got, solution []string) float64 {
	if len(solution) == 0 {
		return 0
	}
	matches := 0
	for i, step := range solution {
		if i < len(got) && normalize(got[i]) == normalize(step) {
			matches++
		}
	}
	return float64(matches) / float64(len(solution))
}

func matchingScore(got, gold map[string]string) float64 {
	if len(gold) == 0 {
		return 0
	}
	matches := 0
	for left, right := range gold {
		if normalize(got[left]) == normalize(right) {
			matches++
		}
	}
	return float64(matches) / float64(len(gold))
}

func boolScore(ok bool) float64 {
	if ok {
		return 1
	}
	return 0
}

// normalize lowers case and collapses runs of whitespace so comparisons
// ignore formatting noise.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func decode(raw json.RawMessage, dst interface{}, itemID string) error {
	if len(raw) == 0 {
		return NewResponseError(itemID, "missing answer payload")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return NewResponseError(itemID, "answer payload does not match item type")
	}
	return nil
}
