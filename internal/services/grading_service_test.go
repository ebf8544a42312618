package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spamms1985-sudo/gpa-lernapp/internal/models"
)

func grade(t *testing.T, item models.Item, answer interface{}) models.GradeResult {
	t.Helper()
	raw, err := json.Marshal(answer)
	require.NoError(t, err)

	result, err := NewGradingService().Grade(item, raw)
	require.NoError(t, err)
	return result
}

func TestGrade_SingleChoice(t *testing.T) {
	item := models.Item{
		ID:            "sc1",
		Type:          models.SingleChoice,
		Options:       []string{"Puls", "Blutdruck"},
		CorrectOption: "Puls",
		Explanation:   "Der Puls wird palpiert.",
	}

	correct := grade(t, item, models.SingleChoiceAnswer{Selected: "puls"})
	assert.True(t, correct.Correct)
	assert.Equal(t, 1.0, correct.Score)
	assert.Equal(t, "Der Puls wird palpiert.", correct.Explanation)

	wrong := grade(t, item, models.SingleChoiceAnswer{Selected: "Blutdruck"})
	assert.False(t, wrong.Correct)
	assert.Equal(t, 0.0, wrong.Score)
}

func TestGrade_TrueFalse(t *testing.T) {
	yes := true
	item := models.Item{ID: "tf1", Type: models.TrueFalse, BoolAnswer: &yes}

	assert.True(t, grade(t, item, models.TrueFalseAnswer{Answer: true}).Correct)
	assert.False(t, grade(t, item, models.TrueFalseAnswer{Answer: false}).Correct)
}

func TestGrade_FillBlank(t *testing.T) {
	item := models.Item{ID: "fb1", Type: models.FillBlank, BlankAnswer: "Dekubitus"}

	t.Run("exact match ignores case and spacing", func(t *testing.T) {
		assert.True(t, grade(t, item, models.FillBlankAnswer{Text: "  dekubitus "}).Correct)
	})

	t.Run("containment accepted for long answers", func(t *testing.T) {
		assert.True(t, grade(t, item, models.FillBlankAnswer{Text: "ein dekubitus entsteht durch druck"}).Correct)
	})

	t.Run("short expected answers require exact match", func(t *testing.T) {
		short := models.Item{ID: "fb2", Type: models.FillBlank, BlankAnswer: "Soor"}
		assert.True(t, grade(t, short, models.FillBlankAnswer{Text: "Soor"}).Correct)
		assert.False(t, grade(t, short, models.FillBlankAnswer{Text: "Soorprophylaxe"}).Correct)
	})

	t.Run("empty answer is wrong", func(t *testing.T) {
		assert.False(t, grade(t, item, models.FillBlankAnswer{Text: "   "}).Correct)
	})
}

func TestGrade_MultiChoice_PartialCredit(t *testing.T) {
	item := models.Item{
		ID:         "mc1",
		Type:       models.MultiChoice,
		Options:    []string{"Rötung", "Schwellung", "Fieber", "Juckreiz"},
		CorrectSet: []string{"Rötung", "Schwellung", "Fieber"},
	}

	t.Run("full match", func(t *testing.T) {
		result := grade(t, item, models.MultiChoiceAnswer{Selected: []string{"Rötung", "Schwellung", "Fieber"}})
		assert.True(t, result.Correct)
		assert.InDelta(t, 1.0, result.Score, 1e-9)
	})

	t.Run("partial match", func(t *testing.T) {
		result := grade(t, item, models.MultiChoiceAnswer{Selected: []string{"Rötung", "Schwellung"}})
		assert.False(t, result.Correct)
		assert.InDelta(t, 2.0/3.0, result.Score, 1e-9)
	})

	t.Run("wrong picks cancel right ones", func(t *testing.T) {
		result := grade(t, item, models.MultiChoiceAnswer{Selected: []string{"Rötung", "Juckreiz"}})
		assert.InDelta(t, 0.0, result.Score, 1e-9)
	})

	t.Run("score floors at zero", func(t *testing.T) {
		result := grade(t, item, models.MultiChoiceAnswer{Selected: []string{"Juckreiz"}})
		assert.Equal(t, 0.0, result.Score)
	})
}

func TestGrade_Ordering(t *testing.T) {
	item := models.Item{
		ID:       "or1",
		Type:     models.Ordering,
		Steps:    []string{"Hände desinfizieren", "Material richten", "Patient informieren", "Durchführen"},
		Solution: []string{"Hände desinfizieren", "Material richten", "Patient informieren", "Durchführen"},
	}

	full := grade(t, item, models.OrderingAnswer{Order: item.Solution})
	assert.True(t, full.Correct)
	assert.Equal(t, 1.0, full.Score)

	// First two positions right, last two swapped.
	partial := grade(t, item, models.OrderingAnswer{Order: []string{
		"Hände desinfizieren", "Material richten", "Durchführen", "Patient informieren",
	}})
	assert.False(t, partial.Correct)
	assert.InDelta(t, 0.5, partial.Score, 1e-9)
}

func TestGrade_Matching(t *testing.T) {
	item := models.Item{
		ID:    "ma1",
		Type:  models.Matching,
		Left:  []string{"Zyanose", "Ikterus"},
		Right: []string{"bläulich", "gelblich"},
		Pairs: map[string]string{"Zyanose": "bläulich", "Ikterus": "gelblich"},
	}

	full := grade(t, item, models.MatchingAnswer{Pairs: map[string]string{
		"Zyanose": "bläulich", "Ikterus": "gelblich",
	}})
	assert.True(t, full.Correct)

	half := grade(t, item, models.MatchingAnswer{Pairs: map[string]string{
		"Zyanose": "gelblich", "Ikterus": "gelblich",
	}})
	assert.False(t, half.Correct)
	assert.InDelta(t, 0.5, half.Score, 1e-9)

	missing := grade(t, item, models.MatchingAnswer{Pairs: map[string]string{}})
	assert.Equal(t, 0.0, missing.Score)
}

func TestGrade_FreeText_Keywords(t *testing.T) {
	item := models.Item{
		ID:       "ft1",
		Type:     models.FreeText,
		Keywords: []string{"Druck", "Lagerung", "Haut", "Bewegung"},
		Rubric:   "Druckentlastung durch regelmäßige Lagerung, Hautbeobachtung, Bewegungsförderung.",
	}

	t.Run("three hits out of four keywords", func(t *testing.T) {
		result := grade(t, item, models.FreeTextAnswer{
			Text: "Regelmäßige Lagerung entlastet den Druck und schützt die Haut.",
		})
		assert.True(t, result.Correct)
		// Score denominator is clamped to [3,6]; 3 hits / 4 keywords.
		assert.InDelta(t, 0.75, result.Score, 1e-9)
		assert.Equal(t, item.Rubric, result.Rubric)
	})

	t.Run("one hit meets the minimum for four keywords", func(t *testing.T) {
		result := grade(t, item, models.FreeTextAnswer{Text: "Lagerung ist wichtig"})
		assert.True(t, result.Correct)
		assert.InDelta(t, 0.25, result.Score, 1e-9)
	})

	t.Run("no hits is wrong", func(t *testing.T) {
		result := grade(t, item, models.FreeTextAnswer{Text: "Keine Ahnung"})
		assert.False(t, result.Correct)
		assert.Equal(t, 0.0, result.Score)
	})

	t.Run("eight keywords require two hits", func(t *testing.T) {
		wide := models.Item{
			ID:       "ft2",
			Type:     models.FreeText,
			Keywords: []string{"a1", "b2", "c3", "d4", "e5", "f6", "g7", "h8"},
		}
		one := grade(t, wide, models.FreeTextAnswer{Text: "nur a1 genannt"})
		assert.False(t, one.Correct)

		two := grade(t, wide, models.FreeTextAnswer{Text: "a1 und b2 genannt"})
		assert.True(t, two.Correct)
		// Denominator clamps at 6.
		assert.InDelta(t, 2.0/6.0, two.Score, 1e-9)
	})
}

func TestGrade_FreeText_NoKeywords(t *testing.T) {
	item := models.Item{ID: "ft3", Type: models.FreeText, Rubric: "Eigene Haltung beschreiben."}

	long := grade(t, item, models.FreeTextAnswer{
		Text: "Ich würde zuerst das Gespräch suchen und in Ruhe zuhören.",
	})
	assert.True(t, long.Correct)

	short := grade(t, item, models.FreeTextAnswer{Text: "Gespräch."})
	assert.False(t, short.Correct)
}

func TestGrade_MalformedPayload(t *testing.T) {
	item := models.Item{ID: "sc1", Type: models.SingleChoice, CorrectOption: "A"}

	_, err := NewGradingService().Grade(item, json.RawMessage(`{"selected": 42}`))
	require.Error(t, err)
	assert.True(t, IsResponseError(err))

	_, err = NewGradingService().Grade(item, nil)
	require.Error(t, err)
	assert.True(t, IsResponseError(err))
}
