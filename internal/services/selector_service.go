package services

import (
	"math/rand"
	"sort"
	"time"

	"github.com/spamms1985-sudo/gpa-lernapp/internal/contentbank"
	"github.com/spamms1985-sudo/gpa-lernapp/internal/models"
)

// Fixed penalty added to items the student has already seen, and the jitter
// magnitude used as a randomized tie-break so repeated sessions do not show
// identical sequences.
const (
	seenPenalty   = 0.6
	jitterMax     = 0.2
	defaultDiagN  = 6
	defaultBatchK = 3
)

// fallbackLevels is the search order used when the target tier holds no items
// for a scope. The order (2, then 1, then 3) is deliberate and asymmetric.
var fallbackLevels = []models.DifficultyTier{models.TierSolid, models.TierBasic, models.TierExam}

// Rand is the random source the selector draws from. *rand.Rand satisfies it;
// tests inject a seeded or zero source.
type Rand interface {
	Float64() float64
	Intn(n int) int
	Perm(n int) []int
}

// SelectorService picks item batches from the bank, trading off difficulty
// match against novelty.
type SelectorService interface {
	// Adaptive picks up to k items near the target tier for (topic, area).
	// An empty area widens the scope to the whole topic. An empty scope pool
	// yields an empty slice, not an error: there is nothing to practice.
	Adaptive(topic, area string, target models.DifficultyTier, seen map[string]struct{}, k int) []models.Item

	// Diagnostic picks up to n items stratified across all skill areas of the
	// topic, ignoring difficulty: its purpose is to measure, not to match.
	Diagnostic(topic string, n int) []models.Item
}

type selectorService struct {
	bank *contentbank.Bank
	rng  Rand
}

func NewSelectorService(bank *contentbank.Bank, rng Rand) SelectorService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &selectorService{bank: bank, rng: rng}
}

func (s *selectorService) Adaptive(topic, area string, target models.DifficultyTier, seen map[string]struct{}, k int) []models.Item {
	candidates := s.bank.ByScope(topic, area)
	if len(candidates) == 0 || k <= 0 {
		return nil
	}

	effective := s.effectiveTarget(topic, area, target)

	type scored struct {
		item  models.Item
		score float64
	}

	ranked := make([]scored, 0, len(candidates))
	for _, item := range candidates {
		score := distance(item.Difficulty, effective)
		if _, ok := seen[item.ID]; ok {
			score += seenPenalty
		}
		score += s.rng.Float64() * jitterMax
		ranked = append(ranked, scored{item: item, score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score < ranked[j].score
	})

	if k > len(ranked) {
		k = len(ranked)
	}
	out := make([]models.Item, 0, k)
	for _, r := range ranked[:k] {
		out = append(out, r.item)
	}
	return out
}

// effectiveTarget keeps the requested tier when the scope has items there,
// otherwise walks the declared fallback order.
func (s *selectorService) effectiveTarget(topic, area string, target models.DifficultyTier) models.DifficultyTier {
	if s.bank.HasLevel(topic, area, target) {
		return target
	}
	for _, level := range fallbackLevels {
		if s.bank.HasLevel(topic, area, level) {
			return level
		}
	}
	return target
}

func (s *selectorService) Diagnostic(topic string, n int) []models.Item {
	areas := models.TopicAreas[topic]
	if len(areas) == 0 || n <= 0 {
		return nil
	}

	// Roughly equal share per area; the first areas absorb the remainder.
	base := n / len(areas)
	extra := n % len(areas)

	picked := make([]models.Item, 0, n)
	taken := make(map[string]struct{}, n)

	for i, area := range areas {
		want := base
		if i < extra {
			want++
		}
		pool := s.bank.ByScope(topic, area.Key)
		for _, idx := range s.rng.Perm(len(pool)) {
			if want == 0 {
				break
			}
			picked = append(picked, pool[idx])
			taken[pool[idx].ID] = struct{}{}
			want--
		}
	}

	// Top up from the full topic pool when some areas ran short.
	if len(picked) < n {
		pool := s.bank.ByTopic(topic)
		for _, idx := range s.rng.Perm(len(pool)) {
			if len(picked) == n {
				break
			}
			item := pool[idx]
			if _, ok := taken[item.ID]; ok {
				continue
			}
			picked = append(picked, item)
			taken[item.ID] = struct{}{}
		}
	}

	// Shuffle so the areas do not always appear in curriculum order.
	for i := len(picked) - 1; i > 0; i-- {
		j := s.rng.Intn(i + 1)
		picked[i], picked[j] = picked[j], picked[i]
	}

	return picked
}

func distance(a, b models.DifficultyTier) float64 {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	return float64(d)
}
