// Package deck builds the card deck from settings and picks which card the
// learner sees next. The deck is always regenerated whole: the fact space
// and weights are deterministic from settings alone, so there is no
// incremental diffing.
package deck

import (
	"math/rand"

	"github.com/brzaa/math-practice-kids/internal/config"
	"github.com/brzaa/math-practice-kids/internal/facts"
	"github.com/brzaa/math-practice-kids/internal/models"
	"github.com/brzaa/math-practice-kids/internal/scheduler"
)

// Generate builds a freshly shuffled deck for the given settings. Every
// enumerated fact becomes one card with a computed weight and a
// never-reviewed scheduling state. An empty fact space yields an empty
// deck, which callers treat as a non-fatal empty state. The shuffle only
// removes enumeration-order presentation bias; order carries no meaning.
func Generate(s *config.Settings, sched *scheduler.Scheduler, rng *rand.Rand) []models.Card {
	fs := facts.Enumerate(s.MinNumber, s.MaxNumber, s.OperationMode, s.NonNegativeSubtraction)
	targets := facts.BoundaryTargets(s.MinNumber, s.MaxNumber)

	cards := make([]models.Card, 0, len(fs))
	for _, f := range fs {
		cards = append(cards, models.Card{
			Fact:   f,
			Weight: facts.Weigh(f, s.DifficultyMode, targets),
			Sched:  sched.NewState(),
		})
	}

	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return cards
}

// Reweigh recomputes every card's weight for the given settings without
// touching scheduling state. Used when only the difficulty mode changed,
// so the learner's progress survives the switch.
func Reweigh(cards []models.Card, s *config.Settings) {
	targets := facts.BoundaryTargets(s.MinNumber, s.MaxNumber)
	for i := range cards {
		cards[i].Weight = facts.Weigh(cards[i].Fact, s.DifficultyMode, targets)
	}
}
