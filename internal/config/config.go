// Package config loads and persists the learner's settings. Settings are
// read-only to the core packages; they are consumed as a snapshot at deck
// generation and drill time.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/brzaa/math-practice-kids/internal/models"
)

const configName = "config"

// Settings is everything the learner can tune. The first four fields shape
// the fact space: changing any of them invalidates the deck.
type Settings struct {
	OperationMode          models.OperationMode  `mapstructure:"operation_mode"`
	MinNumber              int                   `mapstructure:"min_number"`
	MaxNumber              int                   `mapstructure:"max_number"`
	NonNegativeSubtraction bool                  `mapstructure:"non_negative_subtraction"`
	DifficultyMode         models.DifficultyMode `mapstructure:"difficulty_mode"`
	WarmupTarget           int                   `mapstructure:"warmup_target"`
	InactivityHours        int                   `mapstructure:"inactivity_hours"`
	SessionLimit           int                   `mapstructure:"session_limit"`
}

// Keys lists the settable configuration keys, for the settings command.
var Keys = []string{
	"operation_mode",
	"min_number",
	"max_number",
	"non_negative_subtraction",
	"difficulty_mode",
	"warmup_target",
	"inactivity_hours",
	"session_limit",
}

// Validate checks the settings for shape errors. Range validation here is
// what keeps the enumerator's assumption (min <= max) honest.
func (s *Settings) Validate() error {
	if !s.OperationMode.Valid() {
		return fmt.Errorf("invalid operation_mode %q", s.OperationMode)
	}
	if !s.DifficultyMode.Valid() {
		return fmt.Errorf("invalid difficulty_mode %q", s.DifficultyMode)
	}
	if s.MinNumber < 0 {
		return errors.New("min_number must be >= 0")
	}
	if s.MinNumber > s.MaxNumber {
		return fmt.Errorf("min_number %d exceeds max_number %d", s.MinNumber, s.MaxNumber)
	}
	if s.MaxNumber-s.MinNumber > 100 {
		return errors.New("range wider than 100 makes the deck unmanageable")
	}
	if s.WarmupTarget < 1 {
		return errors.New("warmup_target must be >= 1")
	}
	if s.InactivityHours < 0 {
		return errors.New("inactivity_hours must be >= 0")
	}
	return nil
}

// DeckFingerprint identifies the fact space these settings produce. Decks
// are regenerated whenever the stored fingerprint no longer matches.
// DifficultyMode is deliberately absent: it only affects weights, which
// are recomputed in place without discarding scheduling progress.
func (s *Settings) DeckFingerprint() string {
	return fmt.Sprintf("%s|%d|%d|%t",
		s.OperationMode, s.MinNumber, s.MaxNumber, s.NonNegativeSubtraction)
}

// Dir returns the data directory (~/.mathkids), creating it if needed.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	dir := filepath.Join(home, ".mathkids")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("cannot create data directory: %w", err)
	}
	return dir, nil
}

func newViper(dir string) *viper.Viper {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetDefault("operation_mode", string(models.ModeAddition))
	v.SetDefault("min_number", 0)
	v.SetDefault("max_number", 10)
	v.SetDefault("non_negative_subtraction", true)
	v.SetDefault("difficulty_mode", string(models.DifficultyBalanced))
	v.SetDefault("warmup_target", 5)
	v.SetDefault("inactivity_hours", 4)
	v.SetDefault("session_limit", 20)

	return v
}

// Load reads settings from the config file in dir, falling back to
// defaults when the file is absent.
func Load(dir string) (*Settings, error) {
	v := newViper(dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Set updates a single key and writes the config file back, rejecting the
// change if the resulting settings would be invalid.
func Set(dir, key, value string) (*Settings, error) {
	known := false
	for _, k := range Keys {
		if k == key {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf("unknown setting %q", key)
	}

	v := newViper(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	v.Set(key, value)

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	if err := v.WriteConfigAs(filepath.Join(dir, configName+".yaml")); err != nil {
		return nil, fmt.Errorf("error writing config file: %w", err)
	}
	return &s, nil
}
