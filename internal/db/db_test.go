package db

import (
	"errors"
	"testing"
	"time"

	fsrs "github.com/open-spaced-repetition/go-fsrs"
	"go.uber.org/zap"

	"github.com/brzaa/math-practice-kids/internal/models"
	"github.com/brzaa/math-practice-kids/internal/speed"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleDeck() []models.Card {
	due := time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC)
	return []models.Card{
		{
			Fact:   models.Fact{Op: models.Addition, Left: 2, Right: 3},
			Weight: 1,
			Sched:  fsrs.NewCard(),
		},
		{
			Fact:   models.Fact{Op: models.Subtraction, Left: 7, Right: 4},
			Weight: 3,
			Sched: fsrs.Card{
				Due:           due,
				Stability:     3.5,
				Difficulty:    5.2,
				ElapsedDays:   1,
				ScheduledDays: 2,
				Reps:          4,
				Lapses:        1,
				State:         fsrs.Review,
				LastReview:    due.Add(-48 * time.Hour),
			},
		},
	}
}

func TestDeckRoundTrip(t *testing.T) {
	s := testStore(t)
	deck := sampleDeck()

	if err := s.ReplaceDeck(deck, "addition|0|10|true", "balanced"); err != nil {
		t.Fatalf("ReplaceDeck: %v", err)
	}

	loaded, err := s.LoadDeck()
	if err != nil {
		t.Fatalf("LoadDeck: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("loaded %d cards, want 2", len(loaded))
	}

	byID := map[string]models.Card{}
	for _, c := range loaded {
		byID[c.ID()] = c
	}

	got, ok := byID["subtraction:7:4"]
	if !ok {
		t.Fatal("subtraction:7:4 missing after round trip")
	}
	want := deck[1]
	if got.Weight != want.Weight {
		t.Errorf("Weight = %d, want %d", got.Weight, want.Weight)
	}
	if got.Sched.State != want.Sched.State {
		t.Errorf("State = %v, want %v", got.Sched.State, want.Sched.State)
	}
	if got.Sched.Reps != want.Sched.Reps || got.Sched.Lapses != want.Sched.Lapses {
		t.Errorf("Reps/Lapses = %d/%d, want %d/%d",
			got.Sched.Reps, got.Sched.Lapses, want.Sched.Reps, want.Sched.Lapses)
	}
	if got.Sched.Stability != want.Sched.Stability {
		t.Errorf("Stability = %v, want %v", got.Sched.Stability, want.Sched.Stability)
	}
	if got.Sched.Due.Unix() != want.Sched.Due.Unix() {
		t.Errorf("Due = %v, want %v", got.Sched.Due, want.Sched.Due)
	}

	fp, ok, err := s.Fingerprint()
	if err != nil || !ok {
		t.Fatalf("Fingerprint: ok=%v err=%v", ok, err)
	}
	if fp != "addition|0|10|true" {
		t.Errorf("fingerprint = %q", fp)
	}
}

func TestReplaceDeckDiscardsEverything(t *testing.T) {
	s := testStore(t)
	deck := sampleDeck()

	if err := s.ReplaceDeck(deck, "fp1", "balanced"); err != nil {
		t.Fatalf("ReplaceDeck: %v", err)
	}
	if err := s.AppendResponse(models.ResponseRecord{
		CardID: deck[0].ID(), Answer: 5, Correct: true, TimeMs: 1200,
		AnsweredAt: time.Now(),
	}); err != nil {
		t.Fatalf("AppendResponse: %v", err)
	}
	if err := s.SaveSession(speed.Record(speed.Stats{}, 1200, 5), time.Now()); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}

	if err := s.ReplaceDeck(deck[:1], "fp2", "balanced"); err != nil {
		t.Fatalf("ReplaceDeck: %v", err)
	}

	loaded, err := s.LoadDeck()
	if err != nil {
		t.Fatalf("LoadDeck: %v", err)
	}
	if len(loaded) != 1 {
		t.Errorf("loaded %d cards, want 1", len(loaded))
	}

	if _, ok, _ := s.LastAnsweredAt(); ok {
		t.Error("responses survived deck replacement")
	}
	stats, err := s.LoadSession()
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if stats.Count() != 0 {
		t.Errorf("session stats survived deck replacement: %d samples", stats.Count())
	}
}

func TestUpdateCard(t *testing.T) {
	s := testStore(t)
	deck := sampleDeck()
	if err := s.ReplaceDeck(deck, "fp", "balanced"); err != nil {
		t.Fatalf("ReplaceDeck: %v", err)
	}

	c := deck[0]
	c.Sched.State = fsrs.Learning
	c.Sched.Reps = 1
	c.Sched.Due = time.Date(2025, 3, 10, 9, 10, 0, 0, time.UTC)
	if err := s.UpdateCard(c); err != nil {
		t.Fatalf("UpdateCard: %v", err)
	}

	loaded, err := s.LoadDeck()
	if err != nil {
		t.Fatalf("LoadDeck: %v", err)
	}
	for _, lc := range loaded {
		if lc.ID() != c.ID() {
			continue
		}
		if lc.Sched.State != fsrs.Learning || lc.Sched.Reps != 1 {
			t.Errorf("update not persisted: state=%v reps=%d", lc.Sched.State, lc.Sched.Reps)
		}
		return
	}
	t.Fatal("updated card not found")
}

func TestMalformedOperationRejected(t *testing.T) {
	s := testStore(t)
	if err := s.ReplaceDeck(sampleDeck(), "fp", "balanced"); err != nil {
		t.Fatalf("ReplaceDeck: %v", err)
	}

	if _, err := s.db.Exec("UPDATE cards SET op = 'modulo'"); err != nil {
		t.Fatalf("corrupting row: %v", err)
	}

	_, err := s.LoadDeck()
	if !errors.Is(err, ErrMalformedDeck) {
		t.Errorf("LoadDeck = %v, want ErrMalformedDeck", err)
	}
}

func TestOutOfRangeStateLoads(t *testing.T) {
	s := testStore(t)
	if err := s.ReplaceDeck(sampleDeck(), "fp", "balanced"); err != nil {
		t.Fatalf("ReplaceDeck: %v", err)
	}

	// An unclassifiable state is not a malformed deck: classification
	// degrades it to New instead.
	if _, err := s.db.Exec("UPDATE cards SET state = 42"); err != nil {
		t.Fatalf("corrupting row: %v", err)
	}
	loaded, err := s.LoadDeck()
	if err != nil {
		t.Fatalf("LoadDeck: %v", err)
	}
	if len(loaded) != 2 {
		t.Errorf("loaded %d cards, want 2", len(loaded))
	}
}

func TestSessionRoundTrip(t *testing.T) {
	s := testStore(t)

	stats := speed.Stats{}
	for _, ms := range []int{1200, 800, 2400} {
		stats = speed.Record(stats, ms, 3)
	}

	if err := s.SaveSession(stats, time.Now()); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}

	loaded, err := s.LoadSession()
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if loaded.Count() != 3 {
		t.Errorf("samples = %d, want 3", loaded.Count())
	}
	if !loaded.WarmedUp {
		t.Error("warmed-up flag lost")
	}
	if loaded.P50 != stats.P50 {
		t.Errorf("p50 = %v, want %v", loaded.P50, stats.P50)
	}
}

func TestLoadSessionEmpty(t *testing.T) {
	s := testStore(t)
	stats, err := s.LoadSession()
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if stats.Count() != 0 || stats.WarmedUp {
		t.Errorf("expected zero stats, got %+v", stats)
	}
}

func TestResponsesAndLastAnsweredAt(t *testing.T) {
	s := testStore(t)
	if err := s.ReplaceDeck(sampleDeck(), "fp", "balanced"); err != nil {
		t.Fatalf("ReplaceDeck: %v", err)
	}

	if _, ok, err := s.LastAnsweredAt(); err != nil || ok {
		t.Fatalf("LastAnsweredAt on empty log: ok=%v err=%v", ok, err)
	}

	first := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	second := first.Add(time.Minute)
	for _, r := range []models.ResponseRecord{
		{CardID: "addition:2:3", Answer: 5, Correct: true, TimeMs: 1500, AnsweredAt: first},
		{CardID: "addition:2:3", Answer: 4, Correct: false, TimeMs: 900, AnsweredAt: second},
	} {
		if err := s.AppendResponse(r); err != nil {
			t.Fatalf("AppendResponse: %v", err)
		}
	}

	last, ok, err := s.LastAnsweredAt()
	if err != nil || !ok {
		t.Fatalf("LastAnsweredAt: ok=%v err=%v", ok, err)
	}
	if last.Unix() != second.Unix() {
		t.Errorf("last = %v, want %v", last, second)
	}
}
