package deck

import (
	"math/rand"
	"time"

	fsrs "github.com/open-spaced-repetition/go-fsrs"

	"github.com/brzaa/math-practice-kids/internal/models"
	"github.com/brzaa/math-practice-kids/internal/scheduler"
)

// SelectNext picks the card to present. Due Learning and Relearning cards
// come first (they are short-interval corrections and shouldn't wait),
// then due Review cards, then New cards, then — if nothing else is
// eligible — the not-yet-due remainder, so a non-empty deck always yields
// a card. Within a group the pick is random with probability proportional
// to difficulty weight. SelectNext only reads; no card state changes.
func SelectNext(cards []models.Card, now time.Time, rng *rand.Rand) *models.Card {
	if len(cards) == 0 {
		return nil
	}

	var dueLearning, dueReview, fresh, rest []int
	for i := range cards {
		st := scheduler.Classify(cards[i].Sched)
		due := !scheduler.Due(cards[i].Sched).After(now)
		switch {
		case st == fsrs.New:
			fresh = append(fresh, i)
		case due && (st == fsrs.Learning || st == fsrs.Relearning):
			dueLearning = append(dueLearning, i)
		case due && st == fsrs.Review:
			dueReview = append(dueReview, i)
		default:
			rest = append(rest, i)
		}
	}

	for _, group := range [][]int{dueLearning, dueReview, fresh, rest} {
		if len(group) > 0 {
			return &cards[weightedPick(cards, group, rng)]
		}
	}
	return nil
}

// weightedPick selects one index from group with probability proportional
// to the card's weight. Weights below 1 count as 1 so no card is starved.
func weightedPick(cards []models.Card, group []int, rng *rand.Rand) int {
	total := 0
	for _, i := range group {
		total += weightOf(cards[i])
	}

	r := rng.Intn(total)
	for _, i := range group {
		r -= weightOf(cards[i])
		if r < 0 {
			return i
		}
	}
	return group[len(group)-1]
}

func weightOf(c models.Card) int {
	if c.Weight < 1 {
		return 1
	}
	return c.Weight
}

// Counts aggregates the deck by scheduling state. Due counts the non-New
// cards whose due timestamp has passed; New cards are always available so
// they are reported separately.
type Counts struct {
	Total      int
	Due        int
	New        int
	Learning   int
	Review     int
	Relearning int
}

// Stats classifies every card and tallies the counts. Recomputed on
// demand; the deck is bounded so a linear pass is fine.
func Stats(cards []models.Card, now time.Time) Counts {
	var c Counts
	c.Total = len(cards)
	for i := range cards {
		st := scheduler.Classify(cards[i].Sched)
		switch st {
		case fsrs.New:
			c.New++
		case fsrs.Learning:
			c.Learning++
		case fsrs.Review:
			c.Review++
		case fsrs.Relearning:
			c.Relearning++
		}
		if st != fsrs.New && !scheduler.Due(cards[i].Sched).After(now) {
			c.Due++
		}
	}
	return c
}
