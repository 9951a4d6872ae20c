package cmd

import (
	"errors"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/brzaa/math-practice-kids/internal/config"
	"github.com/brzaa/math-practice-kids/internal/db"
	"github.com/brzaa/math-practice-kids/internal/deck"
	"github.com/brzaa/math-practice-kids/internal/logger"
	"github.com/brzaa/math-practice-kids/internal/models"
	"github.com/brzaa/math-practice-kids/internal/scheduler"
)

// app wires the pieces every command needs: settings snapshot, store,
// scheduler and a seeded random source.
type app struct {
	settings *config.Settings
	store    *db.Store
	sched    *scheduler.Scheduler
	rng      *rand.Rand
	log      *zap.Logger
}

func openApp() (*app, error) {
	log, err := logger.New(verbose)
	if err != nil {
		return nil, err
	}

	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}

	settings, err := config.Load(dir)
	if err != nil {
		return nil, err
	}

	store, err := db.NewStore(dir, log)
	if err != nil {
		return nil, err
	}

	return &app{
		settings: settings,
		store:    store,
		sched:    scheduler.New(),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		log:      log,
	}, nil
}

func (a *app) close() {
	a.store.Close()
	a.log.Sync()
}

// ensureDeck loads the persisted deck, regenerating it when it is missing,
// malformed, or was built from different fact-space settings. A change of
// difficulty mode alone only reweighs the cards in place, so scheduling
// progress survives. The returned bool reports whether a regeneration
// happened.
func (a *app) ensureDeck() ([]models.Card, bool, error) {
	cards, err := a.store.LoadDeck()
	if err != nil {
		if !errors.Is(err, db.ErrMalformedDeck) {
			return nil, false, err
		}
		a.log.Warn("persisted deck unreadable, regenerating", zap.Error(err))
		cards, err = a.regenerate()
		return cards, true, err
	}

	fp, ok, err := a.store.Fingerprint()
	if err != nil {
		return nil, false, err
	}
	if len(cards) == 0 || !ok || fp != a.settings.DeckFingerprint() {
		cards, err = a.regenerate()
		return cards, true, err
	}

	dm, ok, err := a.store.DifficultyMode()
	if err != nil {
		return nil, false, err
	}
	if !ok || dm != string(a.settings.DifficultyMode) {
		deck.Reweigh(cards, a.settings)
		if err := a.store.UpdateWeights(cards, string(a.settings.DifficultyMode)); err != nil {
			return nil, false, err
		}
		a.log.Debug("weights recomputed", zap.String("difficulty_mode", string(a.settings.DifficultyMode)))
	}

	return cards, false, nil
}

// regenerate builds a fresh deck from the current settings and replaces
// everything persisted, including the session statistics.
func (a *app) regenerate() ([]models.Card, error) {
	cards := deck.Generate(a.settings, a.sched, a.rng)
	if err := a.store.ReplaceDeck(cards, a.settings.DeckFingerprint(), string(a.settings.DifficultyMode)); err != nil {
		return nil, err
	}
	return cards, nil
}
