package models

import (
	"fmt"
	"time"

	fsrs "github.com/open-spaced-repetition/go-fsrs"
)

// Operation identifies the arithmetic operation of a fact.
type Operation string

const (
	Addition    Operation = "addition"
	Subtraction Operation = "subtraction"
)

// Valid reports whether op is a known operation.
func (op Operation) Valid() bool {
	return op == Addition || op == Subtraction
}

// Symbol returns the operator sign used when presenting a fact.
func (op Operation) Symbol() string {
	if op == Subtraction {
		return "-"
	}
	return "+"
}

// OperationMode selects which operations the deck covers.
type OperationMode string

const (
	ModeAddition    OperationMode = "addition"
	ModeSubtraction OperationMode = "subtraction"
	ModeMixed       OperationMode = "mixed"
)

// Valid reports whether m is a known operation mode.
func (m OperationMode) Valid() bool {
	return m == ModeAddition || m == ModeSubtraction || m == ModeMixed
}

// DifficultyMode selects how difficulty weights are assigned.
type DifficultyMode string

const (
	DifficultyBalanced        DifficultyMode = "balanced"
	DifficultyFocusBoundaries DifficultyMode = "focus-boundaries"
)

// Valid reports whether m is a known difficulty mode.
func (m DifficultyMode) Valid() bool {
	return m == DifficultyBalanced || m == DifficultyFocusBoundaries
}

// Fact is a single arithmetic problem: two operands and an operation.
type Fact struct {
	Op    Operation `json:"op"`
	Left  int       `json:"left"`
	Right int       `json:"right"`
}

// ID returns the deterministic identity of the fact, e.g. "addition:2:3".
// It is the primary key for the card built from this fact.
func (f Fact) ID() string {
	return fmt.Sprintf("%s:%d:%d", f.Op, f.Left, f.Right)
}

// Answer returns the correct result of the fact.
func (f Fact) Answer() int {
	if f.Op == Subtraction {
		return f.Left - f.Right
	}
	return f.Left + f.Right
}

// String renders the fact as shown to the learner, e.g. "2 + 3".
func (f Fact) String() string {
	return fmt.Sprintf("%d %s %d", f.Left, f.Op.Symbol(), f.Right)
}

// Card pairs a fact with its difficulty weight and scheduling state.
// Sched is opaque to everything except the scheduler package; it is
// replaced wholly on each graded response, never mutated in place.
type Card struct {
	Fact   Fact      `json:"fact"`
	Weight int       `json:"weight"`
	Sched  fsrs.Card `json:"sched"`
}

// ID returns the card's identity, which is its fact's identity.
func (c Card) ID() string {
	return c.Fact.ID()
}

// ResponseRecord is one graded answer, appended to the response log.
type ResponseRecord struct {
	ID         int
	CardID     string
	Answer     int
	Correct    bool
	TimeMs     int
	AnsweredAt time.Time
}
