package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	fsrs "github.com/open-spaced-repetition/go-fsrs"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/brzaa/math-practice-kids/internal/deck"
	"github.com/brzaa/math-practice-kids/internal/grading"
	"github.com/brzaa/math-practice-kids/internal/models"
	"github.com/brzaa/math-practice-kids/internal/speed"
)

var drillLimit int

var drillCmd = &cobra.Command{
	Use:   "drill",
	Short: "Start a practice session",
	Long: `Start a practice session. Cards are presented by due-state
priority (learning corrections first, then due reviews, then new facts),
biased toward the facts you get wrong most. Type the answer and press
Enter; type q to stop early.`,
	Run: func(cmd *cobra.Command, args []string) {
		a, err := openApp()
		if err != nil {
			fmt.Println("❌ Startup error:", err)
			return
		}
		defer a.close()

		cards, regenerated, err := a.ensureDeck()
		if err != nil {
			fmt.Println("❌ Deck error:", err)
			return
		}
		if regenerated {
			fmt.Printf("🔄 Deck rebuilt from settings: %d facts\n", len(cards))
		}
		if len(cards) == 0 {
			fmt.Println("⚠️ No facts to practice. Check your settings range.")
			return
		}

		stats, sessionStart := a.resumeOrStartSession()

		limit := drillLimit
		if limit <= 0 {
			limit = a.settings.SessionLimit
		}

		reader := bufio.NewReader(os.Stdin)
		answered, correctCount := 0, 0

		for answered < limit {
			now := time.Now()
			counts := deck.Stats(cards, now)
			if counts.Due+counts.New == 0 {
				fmt.Println("\n✅ All caught up! Nothing due right now.")
				break
			}

			card := deck.SelectNext(cards, now, a.rng)
			if card == nil {
				break
			}

			fmt.Printf("\n[%d/%d] %s = ", answered+1, limit, card.Fact)
			start := time.Now()
			input, err := reader.ReadString('\n')
			if err != nil {
				fmt.Println()
				break
			}

			// The review timestamp is when the answer arrived, not when
			// the prompt was shown: the learner may think for a while.
			answeredAt := time.Now()
			elapsed := int(answeredAt.Sub(start).Milliseconds())
			if elapsed < 0 {
				elapsed = 0
			}

			input = strings.TrimSpace(input)
			if input == "q" || input == "quit" {
				break
			}
			answer, err := strconv.Atoi(input)
			if err != nil {
				fmt.Println("⚠️ Please enter a number (or q to quit).")
				continue
			}

			next, rating, correct, err := a.applyResponse(card, answer, elapsed, answeredAt, stats, sessionStart)
			if err != nil {
				fmt.Println("❌", err)
				return
			}
			stats = next

			if correct {
				correctCount++
				fmt.Printf("✅ Correct! [%s] Next review: %s\n",
					grading.Label(rating), card.Sched.Due.Format("2006-01-02 15:04"))
			} else {
				fmt.Printf("❌ Not quite: %s = %d\n", card.Fact, card.Fact.Answer())
			}
			answered++
		}

		if answered > 0 {
			fmt.Printf("\n🎉 Session done: %d/%d correct.\n", correctCount, answered)
		}
	},
}

// applyResponse handles one answered card: grade against the percentiles
// computed before this answer's own sample, transition the card at
// answeredAt, persist card and response, and only then absorb the sample
// into the session statistics.
func (a *app) applyResponse(card *models.Card, answer, elapsed int, answeredAt time.Time, stats speed.Stats, sessionStart time.Time) (speed.Stats, fsrs.Rating, bool, error) {
	correct := answer == card.Fact.Answer()

	rating := grading.Grade(correct, elapsed, stats)
	card.Sched = a.sched.Review(card.Sched, rating, answeredAt)

	if err := a.store.UpdateCard(*card); err != nil {
		return stats, rating, correct, fmt.Errorf("saving card: %w", err)
	}
	if err := a.store.AppendResponse(models.ResponseRecord{
		CardID:     card.ID(),
		Answer:     answer,
		Correct:    correct,
		TimeMs:     elapsed,
		AnsweredAt: answeredAt,
	}); err != nil {
		return stats, rating, correct, fmt.Errorf("saving response: %w", err)
	}

	stats = speed.Record(stats, elapsed, a.settings.WarmupTarget)
	if err := a.store.SaveSession(stats, sessionStart); err != nil {
		return stats, rating, correct, fmt.Errorf("saving session: %w", err)
	}
	return stats, rating, correct, nil
}

// resumeOrStartSession loads the session speed statistics, starting fresh
// when none exist, they are unreadable, or the learner has been away
// longer than the inactivity threshold.
func (a *app) resumeOrStartSession() (speed.Stats, time.Time) {
	now := time.Now()

	last, ok, err := a.store.LastAnsweredAt()
	if err != nil {
		a.log.Debug("cannot read last response time", zap.Error(err))
	} else if ok {
		gap := now.Sub(last)
		if gap > time.Duration(a.settings.InactivityHours)*time.Hour {
			a.log.Debug("inactivity gap, starting new session", zap.Duration("gap", gap))
			a.store.ResetSession()
			return speed.Stats{}, now
		}
	}

	stats, err := a.store.LoadSession()
	if err != nil {
		a.log.Warn("session stats unreadable, starting fresh", zap.Error(err))
		a.store.ResetSession()
		return speed.Stats{}, now
	}
	return stats, now
}

func init() {
	rootCmd.AddCommand(drillCmd)
	drillCmd.Flags().IntVarP(&drillLimit, "limit", "l", 0, "Cards per session (default from settings)")
}
