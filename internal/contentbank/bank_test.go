package contentbank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spamms1985-sudo/gpa-lernapp/internal/models"
	"github.com/spamms1985-sudo/gpa-lernapp/internal/validator"
)

func TestLoad_EmbeddedBank(t *testing.T) {
	bank, err := Load(validator.New())
	require.NoError(t, err)
	assert.Greater(t, bank.Len(), 0)

	// Every item must be retrievable by id and land in its topic index.
	for _, topic := range models.Topics {
		for _, item := range bank.ByTopic(topic.Code) {
			got, ok := bank.Get(item.ID)
			require.True(t, ok, "item %s missing from id index", item.ID)
			assert.Equal(t, topic.Code, got.Topic)
			assert.True(t, models.IsSkillArea(got.Topic, got.SkillArea),
				"item %s references unknown area %s", item.ID, got.SkillArea)
		}
	}
}

func TestLoadBytes_DuplicateID(t *testing.T) {
	data := []byte(`[
		{"id": "dup", "topic": "LF1", "skill_area": "rolle_team", "difficulty": 1,
		 "type": "single_choice", "prompt": "A?", "options": ["x", "y"], "correct_option": "x"},
		{"id": "dup", "topic": "LF1", "skill_area": "rolle_team", "difficulty": 1,
		 "type": "single_choice", "prompt": "B?", "options": ["x", "y"], "correct_option": "y"}
	]`)

	_, err := LoadBytes(data, validator.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate item id")
}

func TestLoadBytes_UnknownSkillArea(t *testing.T) {
	data := []byte(`[
		{"id": "x1", "topic": "LF1", "skill_area": "not_an_area", "difficulty": 1,
		 "type": "single_choice", "prompt": "A?", "options": ["x", "y"], "correct_option": "x"}
	]`)

	_, err := LoadBytes(data, validator.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not belong to topic")
}

func TestLoadBytes_IncoherentPayload(t *testing.T) {
	// A single-choice item whose correct option is not among the options.
	data := []byte(`[
		{"id": "x1", "topic": "LF1", "skill_area": "rolle_team", "difficulty": 1,
		 "type": "single_choice", "prompt": "A?", "options": ["x", "y"], "correct_option": "z"}
	]`)

	_, err := LoadBytes(data, validator.New())
	assert.Error(t, err)
}

func TestBank_ByScopeAndHasLevel(t *testing.T) {
	data := []byte(`[
		{"id": "a", "topic": "LF1", "skill_area": "rolle_team", "difficulty": 1,
		 "type": "single_choice", "prompt": "A?", "options": ["x", "y"], "correct_option": "x"},
		{"id": "b", "topic": "LF1", "skill_area": "recht_ethik", "difficulty": 3,
		 "type": "single_choice", "prompt": "B?", "options": ["x", "y"], "correct_option": "y"}
	]`)

	bank, err := LoadBytes(data, validator.New())
	require.NoError(t, err)

	assert.Len(t, bank.ByScope("LF1", "rolle_team"), 1)
	assert.Len(t, bank.ByScope("LF1", ""), 2)
	assert.Empty(t, bank.ByScope("LF2", ""))

	assert.True(t, bank.HasLevel("LF1", "rolle_team", models.TierBasic))
	assert.False(t, bank.HasLevel("LF1", "rolle_team", models.TierExam))
	assert.True(t, bank.HasLevel("LF1", "", models.TierExam))
}
