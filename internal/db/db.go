// Package db is the local persistence collaborator: a sqlite store for the
// deck, the response log and the current session's speed statistics. The
// core packages never touch it directly; commands load state here, run the
// core, and save the results back.
package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	fsrs "github.com/open-spaced-repetition/go-fsrs"
	"go.uber.org/zap"

	"github.com/brzaa/math-practice-kids/internal/models"
	"github.com/brzaa/math-practice-kids/internal/speed"
)

// ErrMalformedDeck signals persisted card data that cannot be hydrated.
// Callers respond by regenerating the deck from settings.
var ErrMalformedDeck = errors.New("malformed deck data")

const (
	metaFingerprint    = "deck_fingerprint"
	metaDifficultyMode = "difficulty_mode"
)

type Store struct {
	db  *sql.DB
	log *zap.Logger
}

// NewStore opens (and if needed creates) the sqlite database in dir.
func NewStore(dir string, log *zap.Logger) (*Store, error) {
	path := filepath.Join(dir, "mathkids.db")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	log.Debug("store opened", zap.String("path", path))
	return &Store{db: db, log: log}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func initSchema(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS cards (
			id TEXT PRIMARY KEY,
			op TEXT NOT NULL,
			left_operand INTEGER NOT NULL,
			right_operand INTEGER NOT NULL,
			weight INTEGER NOT NULL DEFAULT 1,
			due DATETIME,
			stability REAL NOT NULL DEFAULT 0,
			difficulty REAL NOT NULL DEFAULT 0,
			elapsed_days INTEGER NOT NULL DEFAULT 0,
			scheduled_days INTEGER NOT NULL DEFAULT 0,
			reps INTEGER NOT NULL DEFAULT 0,
			lapses INTEGER NOT NULL DEFAULT 0,
			state INTEGER NOT NULL DEFAULT 0,
			last_review DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS responses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			card_id TEXT NOT NULL,
			answer INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			time_ms INTEGER NOT NULL,
			answered_at DATETIME NOT NULL,
			FOREIGN KEY (card_id) REFERENCES cards(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS session (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			samples TEXT NOT NULL,
			warmed_up INTEGER NOT NULL DEFAULT 0,
			started_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
	}

	for _, q := range queries {
		if _, err := db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// ReplaceDeck discards every card, its response history and the session
// statistics, then inserts the new deck and records the fingerprint of the
// settings it was generated from. One transaction: a half-replaced deck is
// never observable.
func (s *Store) ReplaceDeck(cards []models.Card, fingerprint, difficultyMode string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, q := range []string{
		"DELETE FROM responses", "DELETE FROM cards", "DELETE FROM session",
	} {
		if _, err := tx.Exec(q); err != nil {
			return err
		}
	}

	stmt, err := tx.Prepare(`
		INSERT INTO cards (id, op, left_operand, right_operand, weight,
			due, stability, difficulty, elapsed_days, scheduled_days,
			reps, lapses, state, last_review)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range cards {
		sc := c.Sched
		if _, err := stmt.Exec(
			c.ID(), string(c.Fact.Op), c.Fact.Left, c.Fact.Right, c.Weight,
			sc.Due, sc.Stability, sc.Difficulty, int64(sc.ElapsedDays), int64(sc.ScheduledDays),
			int64(sc.Reps), int64(sc.Lapses), int64(sc.State), sc.LastReview,
		); err != nil {
			return err
		}
	}

	for k, v := range map[string]string{
		metaFingerprint:    fingerprint,
		metaDifficultyMode: difficultyMode,
	} {
		if _, err := tx.Exec(
			"INSERT INTO meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value=excluded.value",
			k, v,
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.log.Debug("deck replaced", zap.Int("cards", len(cards)), zap.String("fingerprint", fingerprint))
	return nil
}

// LoadDeck hydrates every card. Rows that cannot be mapped back onto the
// card shape (unknown operation, unreadable scheduling fields) make the
// whole deck malformed; the caller regenerates rather than guessing.
func (s *Store) LoadDeck() ([]models.Card, error) {
	rows, err := s.db.Query(`
		SELECT op, left_operand, right_operand, weight,
			due, stability, difficulty, elapsed_days, scheduled_days,
			reps, lapses, state, last_review
		FROM cards`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		var c models.Card
		var op string
		var due, last sql.NullTime
		var elapsed, sched, reps, lapses, state int64
		if err := rows.Scan(&op, &c.Fact.Left, &c.Fact.Right, &c.Weight,
			&due, &c.Sched.Stability, &c.Sched.Difficulty, &elapsed, &sched,
			&reps, &lapses, &state, &last); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedDeck, err)
		}

		c.Fact.Op = models.Operation(op)
		if !c.Fact.Op.Valid() {
			return nil, fmt.Errorf("%w: unknown operation %q", ErrMalformedDeck, op)
		}
		if elapsed < 0 || sched < 0 || reps < 0 || lapses < 0 {
			return nil, fmt.Errorf("%w: negative scheduling counter", ErrMalformedDeck)
		}

		c.Sched.Due = due.Time
		c.Sched.LastReview = last.Time
		c.Sched.ElapsedDays = uint64(elapsed)
		c.Sched.ScheduledDays = uint64(sched)
		c.Sched.Reps = uint64(reps)
		c.Sched.Lapses = uint64(lapses)
		// Out-of-range states are kept as-is; classification degrades
		// them to New instead of rejecting the deck.
		c.Sched.State = fsrs.State(state)

		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// UpdateCard persists a card's weight and replacement scheduling state
// after a graded response.
func (s *Store) UpdateCard(c models.Card) error {
	sc := c.Sched
	_, err := s.db.Exec(`
		UPDATE cards
		SET weight=?, due=?, stability=?, difficulty=?, elapsed_days=?,
			scheduled_days=?, reps=?, lapses=?, state=?, last_review=?
		WHERE id=?`,
		c.Weight, sc.Due, sc.Stability, sc.Difficulty, int64(sc.ElapsedDays),
		int64(sc.ScheduledDays), int64(sc.Reps), int64(sc.Lapses), int64(sc.State), sc.LastReview,
		c.ID(),
	)
	return err
}

// UpdateWeights rewrites every card's weight, leaving scheduling state
// alone. Used after a difficulty-mode change.
func (s *Store) UpdateWeights(cards []models.Card, difficultyMode string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, c := range cards {
		if _, err := tx.Exec("UPDATE cards SET weight=? WHERE id=?", c.Weight, c.ID()); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(
		"INSERT INTO meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value=excluded.value",
		metaDifficultyMode, difficultyMode,
	); err != nil {
		return err
	}
	return tx.Commit()
}

// AppendResponse adds one graded answer to the append-only response log.
func (s *Store) AppendResponse(r models.ResponseRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO responses (card_id, answer, correct, time_ms, answered_at)
		VALUES (?, ?, ?, ?, ?)`,
		r.CardID, r.Answer, r.Correct, r.TimeMs, r.AnsweredAt,
	)
	return err
}

// LastAnsweredAt returns the timestamp of the most recent response, if any.
func (s *Store) LastAnsweredAt() (time.Time, bool, error) {
	var t sql.NullTime
	err := s.db.QueryRow("SELECT MAX(answered_at) FROM responses").Scan(&t)
	if err != nil {
		return time.Time{}, false, err
	}
	return t.Time, t.Valid, nil
}

// LoadSession returns the persisted session speed statistics, or zero
// stats when no session exists yet. Unreadable stats come back as an
// error so the caller can start a fresh session.
func (s *Store) LoadSession() (speed.Stats, error) {
	var (
		samples  string
		warmedUp bool
	)
	err := s.db.QueryRow("SELECT samples, warmed_up FROM session WHERE id = 1").Scan(&samples, &warmedUp)
	if errors.Is(err, sql.ErrNoRows) {
		return speed.Stats{}, nil
	}
	if err != nil {
		return speed.Stats{}, err
	}

	var stats speed.Stats
	if err := json.Unmarshal([]byte(samples), &stats.Samples); err != nil {
		return speed.Stats{}, fmt.Errorf("corrupt session samples: %w", err)
	}
	stats.WarmedUp = warmedUp

	// Percentiles are derived, so replay them instead of storing them.
	rebuilt := speed.Stats{WarmedUp: false}
	for _, v := range stats.Samples {
		rebuilt = speed.Record(rebuilt, int(v), len(stats.Samples)+1)
	}
	rebuilt.WarmedUp = stats.WarmedUp
	return rebuilt, nil
}

// SaveSession persists the session speed statistics.
func (s *Store) SaveSession(stats speed.Stats, startedAt time.Time) error {
	samples, err := json.Marshal(stats.Samples)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO session (id, samples, warmed_up, started_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET samples=excluded.samples, warmed_up=excluded.warmed_up`,
		string(samples), stats.WarmedUp, startedAt,
	)
	return err
}

// ResetSession discards the session speed statistics.
func (s *Store) ResetSession() error {
	_, err := s.db.Exec("DELETE FROM session")
	return err
}

// Fingerprint returns the stored deck fingerprint, if a deck was ever
// generated.
func (s *Store) Fingerprint() (string, bool, error) {
	return s.meta(metaFingerprint)
}

// DifficultyMode returns the difficulty mode the stored weights were
// computed under.
func (s *Store) DifficultyMode() (string, bool, error) {
	return s.meta(metaDifficultyMode)
}

func (s *Store) meta(key string) (string, bool, error) {
	var v string
	err := s.db.QueryRow("SELECT value FROM meta WHERE key = ?", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}
