package deck

import (
	"math"
	"time"

	fsrs "github.com/open-spaced-repetition/go-fsrs"

	"github.com/brzaa/math-practice-kids/internal/models"
	"github.com/brzaa/math-practice-kids/internal/scheduler"
)

// Forecast counts, for each of the next days calendar days, the cards
// whose due date falls on that day. Index 0 is today and also absorbs any
// overdue backlog, since those cards will be reviewed today anyway. Cards
// still classified New are excluded: they have no meaningful due date
// before their first review.
func Forecast(cards []models.Card, days int, now time.Time) []int {
	if days <= 0 {
		return nil
	}
	counts := make([]int, days)

	today := startOfDay(now)
	for i := range cards {
		if scheduler.Classify(cards[i].Sched) == fsrs.New {
			continue
		}
		due := startOfDay(scheduler.Due(cards[i].Sched))
		// Rounding keeps day arithmetic stable across DST shifts.
		day := int(math.Round(due.Sub(today).Hours() / 24))
		if day < 0 {
			day = 0
		}
		if day < days {
			counts[day]++
		}
	}
	return counts
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
