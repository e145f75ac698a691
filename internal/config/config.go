package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CONDENGINE_"

// Conditiond holds all configuration for the condition daemon.
type Conditiond struct {
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`

	// Database
	Database DatabaseConfig `yaml:"database" envPrefix:"DATABASE_"`

	// Condition engine tuning
	Engine Engine `yaml:"engine" envPrefix:"ENGINE_"`

	// Persistence
	AutosaveInterval time.Duration `yaml:"autosave_interval" env:"AUTOSAVE_INTERVAL"`

	// Hosted characters
	Roster []RosterEntry `yaml:"roster"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled" env:"ENABLED"`
	Host     string `yaml:"host" env:"HOST"`
	Port     int    `yaml:"port" env:"PORT"`
	User     string `yaml:"user" env:"USER"`
	Password string `yaml:"password" env:"PASSWORD"`
	DBName   string `yaml:"dbname" env:"DBNAME"`
	SSLMode  string `yaml:"sslmode" env:"SSLMODE"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Engine tunes the condition scheduler and factory.
type Engine struct {
	TickInterval       int32 `yaml:"tick_interval" env:"TICK_INTERVAL"`               // ms
	DamageTickInterval int32 `yaml:"damage_tick_interval" env:"DAMAGE_TICK_INTERVAL"` // ms
	RegenerationTicks  int32 `yaml:"regeneration_ticks" env:"REGENERATION_TICKS"`     // ms

	// MaxConditions caps conditions per creature, 0 = unlimited.
	MaxConditions int `yaml:"max_conditions_per_creature" env:"MAX_CONDITIONS_PER_CREATURE"`
}

// TickDuration returns TickInterval as a duration.
func (e Engine) TickDuration() time.Duration {
	return time.Duration(e.TickInterval) * time.Millisecond
}

// RosterEntry describes a character hosted at startup.
type RosterEntry struct {
	ID         uint32 `yaml:"id"`
	Name       string `yaml:"name"`
	Player     bool   `yaml:"player"`
	BaseSpeed  int32  `yaml:"base_speed"`
	MaxHealth  int32  `yaml:"max_health"`
	MaxMana    int32  `yaml:"max_mana"`
	MagicLevel int32  `yaml:"magic_level"`
	Soul       int32  `yaml:"soul"`
	X          uint16 `yaml:"x"`
	Y          uint16 `yaml:"y"`
	Z          uint8  `yaml:"z"`

	// Conditions are attached when nothing was restored for the character.
	Conditions []RosterCondition `yaml:"conditions"`
}

// RosterCondition is a condition attached to a roster character at startup.
type RosterCondition struct {
	Type  string `yaml:"type"`
	Ticks int32  `yaml:"ticks"`
	Param int32  `yaml:"param"`
	Buff  bool   `yaml:"buff"`
}

// DefaultConditiond returns Conditiond config with sensible defaults.
func DefaultConditiond() Conditiond {
	return Conditiond{
		LogLevel: "info",
		Database: DatabaseConfig{
			Enabled:  false,
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "condengine",
			Password: "condengine",
			DBName:   "condengine",
			SSLMode:  "disable",
		},
		Engine: Engine{
			TickInterval:       1000,
			DamageTickInterval: 2000,
			RegenerationTicks:  1000,
		},
		AutosaveInterval: 5 * time.Minute,
	}
}

// LoadConditiond loads daemon config from a YAML file and applies
// CONDENGINE_* environment overrides on top.
// If the file doesn't exist, overrides are applied to defaults.
func LoadConditiond(path string) (Conditiond, error) {
	cfg := DefaultConditiond()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ParseLogLevel maps debug|info|warn|error to a slog level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
