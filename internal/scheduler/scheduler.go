// Package scheduler wraps the FSRS implementation behind the small
// surface the rest of the app needs: a fresh state for a new card, one
// transition per graded answer, and state classification. Interval math
// lives entirely in go-fsrs.
package scheduler

import (
	"time"

	fsrs "github.com/open-spaced-repetition/go-fsrs"
)

// Scheduler applies FSRS transitions with a fixed parameter set.
type Scheduler struct {
	params fsrs.Parameters
}

// New returns a scheduler with the default FSRS parameters.
func New() *Scheduler {
	return &Scheduler{params: fsrs.DefaultParam()}
}

// NewState returns the scheduling state for a card that has never been
// reviewed.
func (s *Scheduler) NewState() fsrs.Card {
	return fsrs.NewCard()
}

// Review applies one rating at the given time and returns the replacement
// state. The input state is not modified.
func (s *Scheduler) Review(state fsrs.Card, rating fsrs.Rating, now time.Time) fsrs.Card {
	return s.params.Repeat(state, now)[rating].Card
}

// Classify returns the card's learning stage. A state outside the known
// range (e.g. hydrated from a corrupt row) is treated as New so the card
// simply re-enters the queue from the start.
func Classify(state fsrs.Card) fsrs.State {
	if state.State < fsrs.New || state.State > fsrs.Relearning {
		return fsrs.New
	}
	return state.State
}

// Due returns the card's due timestamp. New cards report their zero or
// creation-time due date, which makes them immediately available.
func Due(state fsrs.Card) time.Time {
	return state.Due
}
