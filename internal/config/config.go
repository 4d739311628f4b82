package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is everything tunable from the environment. Trait values outside
// [0,1] are clamped by the mood engine, not here.
type Config struct {
	StoragePath   string        `env:"STORAGE_PATH" envDefault:"companion.json"`
	TickInterval  time.Duration `env:"TICK_INTERVAL" envDefault:"60s"`
	AutosaveEvery time.Duration `env:"AUTOSAVE_EVERY" envDefault:"5m"`

	TraitCuriosity    float64 `env:"TRAIT_CURIOSITY" envDefault:"0.5"`
	TraitCheerfulness float64 `env:"TRAIT_CHEERFULNESS" envDefault:"0.5"`
	TraitVerbosity    float64 `env:"TRAIT_VERBOSITY" envDefault:"0.5"`
	TraitPlayfulness  float64 `env:"TRAIT_PLAYFULNESS" envDefault:"0.5"`
	TraitEmpathy      float64 `env:"TRAIT_EMPATHY" envDefault:"0.5"`
	TraitIndependence float64 `env:"TRAIT_INDEPENDENCE" envDefault:"0.5"`

	DecayPerMinute float64 `env:"MOOD_DECAY_PER_MINUTE" envDefault:"0.1"`

	QuietHoursStart int `env:"QUIET_HOURS_START" envDefault:"22"`
	QuietHoursEnd   int `env:"QUIET_HOURS_END" envDefault:"7"`

	HourlyXPCap int `env:"HOURLY_XP_CAP" envDefault:"100"`
	DailyXPCap  int `env:"DAILY_XP_CAP" envDefault:"500"`
	PerGrantMax int `env:"PER_GRANT_MAX_XP" envDefault:"100"`
	PrestigeCap int `env:"PRESTIGE_CAP" envDefault:"10"`

	DisabledBehaviors []string `env:"DISABLED_BEHAVIORS" envSeparator:","`
}

// New loads .env if present, then parses the environment.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, falling back to system environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if cfg.QuietHoursStart < 0 || cfg.QuietHoursStart > 23 || cfg.QuietHoursEnd < 0 || cfg.QuietHoursEnd > 23 {
		return nil, fmt.Errorf("quiet hours must be within 0..23, got %d..%d", cfg.QuietHoursStart, cfg.QuietHoursEnd)
	}
	if cfg.TickInterval <= 0 {
		return nil, fmt.Errorf("tick interval must be positive, got %s", cfg.TickInterval)
	}
	return cfg, nil
}
