// Package facts enumerates the arithmetic fact space for a settings range
// and assigns each fact a difficulty weight used to bias card selection.
package facts

import "github.com/brzaa/math-practice-kids/internal/models"

// Enumerate returns every valid fact for the given inclusive range and mode,
// without duplicates. Subtraction pairs with left < right are excluded when
// nonNegative is set. The caller must ensure min <= max; the range is assumed
// valid here. Cost is quadratic in the range size, so callers keep ranges
// small (practical UI ranges are <= 100).
func Enumerate(min, max int, mode models.OperationMode, nonNegative bool) []models.Fact {
	var out []models.Fact

	if mode == models.ModeAddition || mode == models.ModeMixed {
		for left := min; left <= max; left++ {
			for right := min; right <= max; right++ {
				out = append(out, models.Fact{Op: models.Addition, Left: left, Right: right})
			}
		}
	}

	if mode == models.ModeSubtraction || mode == models.ModeMixed {
		for left := min; left <= max; left++ {
			for right := min; right <= max; right++ {
				if nonNegative && left < right {
					continue
				}
				out = append(out, models.Fact{Op: models.Subtraction, Left: left, Right: right})
			}
		}
	}

	return out
}

// BoundaryTargets returns the ascending multiples of ten inside [min, max]
// plus the range maximum itself. These are the "round number" anchors the
// focus-boundaries weighting measures proximity to.
func BoundaryTargets(min, max int) []int {
	var targets []int
	for t := ((min + 9) / 10) * 10; t <= max; t += 10 {
		if t >= min {
			targets = append(targets, t)
		}
	}
	if len(targets) == 0 || targets[len(targets)-1] != max {
		targets = append(targets, max)
	}
	return targets
}
