package contentbank

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/spamms1985-sudo/gpa-lernapp/internal/models"
	"github.com/spamms1985-sudo/gpa-lernapp/internal/validator"
)

//go:embed bank.json
var bankJSON []byte

// Bank is the immutable item registry. It is built once at startup from the
// embedded content file and only read afterwards.
type Bank struct {
	items   []models.Item
	byID    map[string]models.Item
	byTopic map[string][]models.Item
	byScope map[string][]models.Item // topic + "|" + area
}

// Load builds the bank from the embedded content file.
func Load(v *validator.Validator) (*Bank, error) {
	return LoadBytes(bankJSON, v)
}

// LoadBytes builds a bank from raw JSON. Every item is validated (struct tags
// plus type/payload coherence); duplicate ids or items referencing unknown
// skill areas are load errors.
func LoadBytes(data []byte, v *validator.Validator) (*Bank, error) {
	var items []models.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode content bank: %w", err)
	}

	bank := &Bank{
		items:   items,
		byID:    make(map[string]models.Item, len(items)),
		byTopic: make(map[string][]models.Item),
		byScope: make(map[string][]models.Item),
	}

	for i := range items {
		item := items[i]

		if err := v.ValidateStruct(&item); err != nil {
			return nil, fmt.Errorf("invalid item %s: %w", item.ID, err)
		}
		if err := v.Item().ValidateContent(&item); err != nil {
			return nil, err
		}
		if !models.IsSkillArea(item.Topic, item.SkillArea) {
			return nil, fmt.Errorf("item %s: skill area %q does not belong to topic %s",
				item.ID, item.SkillArea, item.Topic)
		}
		if _, exists := bank.byID[item.ID]; exists {
			return nil, fmt.Errorf("duplicate item id %s", item.ID)
		}

		bank.byID[item.ID] = item
		bank.byTopic[item.Topic] = append(bank.byTopic[item.Topic], item)
		key := scopeKey(item.Topic, item.SkillArea)
		bank.byScope[key] = append(bank.byScope[key], item)
	}

	return bank, nil
}

// Len returns the number of items in the bank.
func (b *Bank) Len() int {
	return len(b.items)
}

// Get returns the item with the given id.
func (b *Bank) Get(id string) (models.Item, bool) {
	item, ok := b.byID[id]
	return item, ok
}

// ByTopic returns all items of a topic. The returned slice must not be mutated.
func (b *Bank) ByTopic(topic string) []models.Item {
	return b.byTopic[topic]
}

// ByScope returns all items of a (topic, area) pair, or all topic items when
// area is empty. The returned slice must not be mutated.
func (b *Bank) ByScope(topic, area string) []models.Item {
	if area == "" {
		return b.byTopic[topic]
	}
	return b.byScope[scopeKey(topic, area)]
}

// HasLevel reports whether the scope holds at least one item of the tier.
func (b *Bank) HasLevel(topic, area string, level models.DifficultyTier) bool {
	for _, item := range b.ByScope(topic, area) {
		if item.Difficulty == level {
			return true
		}
	}
	return false
}

func scopeKey(topic, area string) string {
	return topic + "|" + area
}
