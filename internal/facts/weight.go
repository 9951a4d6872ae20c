package facts

import "github.com/brzaa/math-practice-kids/internal/models"

// Weights are a selection bias only. Crossing a ten-boundary (a carry or a
// borrow) is where kids make the most mistakes, so those facts weigh heaviest.
// The exact values are tuning constants, not invariants.
const (
	WeightBase     = 1
	WeightBoundary = 2
	WeightCrossing = 3

	// boundaryWindow is how close an operand or result must be to a
	// boundary target to count as "near" it.
	boundaryWindow = 2
)

// Weigh assigns the difficulty weight for a fact. In balanced mode every
// fact weighs WeightBase. In focus-boundaries mode facts that carry or
// borrow weigh WeightCrossing, facts near a boundary target weigh
// WeightBoundary, and everything else weighs WeightBase.
func Weigh(f models.Fact, mode models.DifficultyMode, targets []int) int {
	if mode != models.DifficultyFocusBoundaries {
		return WeightBase
	}

	if crossesBoundary(f) {
		return WeightCrossing
	}

	if nearTarget(f.Left, targets) || nearTarget(f.Right, targets) || nearTarget(f.Answer(), targets) {
		return WeightBoundary
	}

	return WeightBase
}

// crossesBoundary reports whether solving f requires a carry (addition) or
// a borrow (subtraction).
func crossesBoundary(f models.Fact) bool {
	switch f.Op {
	case models.Addition:
		return f.Left%10+f.Right%10 >= 10
	case models.Subtraction:
		return f.Left >= f.Right && f.Left%10 < f.Right%10
	}
	return false
}

func nearTarget(n int, targets []int) bool {
	for _, t := range targets {
		d := n - t
		if d < 0 {
			d = -d
		}
		if d <= boundaryWindow {
			return true
		}
	}
	return false
}
